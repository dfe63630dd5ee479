package pipeline_test

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/pipeline"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *pipeline.Session {
	t.Helper()
	files := token.NewFileTable()
	file := files.Intern("test.j")
	s := pipeline.NewSession(files)
	require.NoError(t, s.Compile(file, []byte(src)))
	return s
}

func TestReturnTypeMismatchIsReported(t *testing.T) {
	s := compile(t, "fn f() -> i32 { return 1.0f; }")
	require.True(t, s.Diags.HasErrors())
	require.Equal(t, 1, s.Diags.Size())
	err := s.Diags.Get(0)
	require.Contains(t, err.Headline, "f32")
	require.Contains(t, err.Headline, "i32")
	require.Len(t, err.Messages, 2)
}

func TestUnreachableAfterReturnIsReported(t *testing.T) {
	s := compile(t, "fn f() -> i32 { return 1; return 2; }")
	require.True(t, s.Diags.HasErrors())
	require.Equal(t, 1, s.Diags.Size())
	require.Contains(t, s.Diags.Get(0).Headline, "UnreachableStatement")
}

func TestIncompleteCompositeInlineIsReported(t *testing.T) {
	s := compile(t, "class A;\nclass B { a: A; }\n")
	require.True(t, s.Diags.HasErrors())
	found := false
	for _, e := range s.Diags.All() {
		if e.Headline == "field a has incomplete type A" {
			found = true
			require.Len(t, e.Messages, 2)
		}
	}
	require.True(t, found)
}

func TestWellTypedFunctionLowersCleanly(t *testing.T) {
	s := compile(t, "fn add(a: i32, b: i32) -> i32 { return a + b; }")
	require.False(t, s.Diags.HasErrors())
	fn, ok := s.MIR.Functions["add"]
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "i32", fn.Return.Name())
}

func TestNamespacedFunctionIsQualifiedInMIR(t *testing.T) {
	s := compile(t, "namespace n { fn f() -> void { return; } }")
	require.False(t, s.Diags.HasErrors())
	_, ok := s.MIR.Functions["n::f"]
	require.True(t, ok)
}
