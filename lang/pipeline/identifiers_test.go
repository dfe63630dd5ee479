package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierFQNamesResolvesTopLevelDeclaration(t *testing.T) {
	s := compile(t, "fn f() -> void { return; }")
	names := s.IdentifierFQNames()

	found := false
	for _, fq := range names {
		if fq == "f" {
			found = true
		}
	}
	require.True(t, found)
}

func TestIdentifierFQNamesQualifiesNamespacedDeclaration(t *testing.T) {
	s := compile(t, "namespace n { fn f() -> void { return; } }")
	names := s.IdentifierFQNames()

	var fqs []string
	for _, fq := range names {
		fqs = append(fqs, fq)
	}
	require.Contains(t, fqs, "n")
	require.Contains(t, fqs, "n::f")
}

func TestIdentifierFQNamesResolvesTypeSpecifierReference(t *testing.T) {
	s := compile(t, "class A;\nclass B { a: A*; }\n")
	names := s.IdentifierFQNames()

	var fqs []string
	for _, fq := range names {
		fqs = append(fqs, fq)
	}
	require.Contains(t, fqs, "A")
	require.Contains(t, fqs, "B")
}

func TestIdentifierFQNamesOmitsLocalVariables(t *testing.T) {
	s := compile(t, "fn add(a: i32, b: i32) -> i32 { return a + b; }")
	names := s.IdentifierFQNames()

	for _, fq := range names {
		require.NotEqual(t, "a", fq)
		require.NotEqual(t, "b", fq)
	}
}
