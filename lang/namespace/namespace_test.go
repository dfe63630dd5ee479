package namespace

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func newCtx() (*NamespaceContext, *diag.Diagnostics) {
	d := diag.New(token.NewTokenStream())
	return New(d), d
}

func TestDefineAndLocal(t *testing.T) {
	nc, _ := newCtx()
	sym, err := nc.Root.Define("T", TypeName, token.SourceRef{Line: 1})
	require.NoError(t, err)
	require.Equal(t, TypeName, sym.Kind)

	_, err = nc.Root.Define("T", TypeName, token.SourceRef{Line: 2})
	require.Error(t, err)
	var dup *DuplicateSymbolError
	require.ErrorAs(t, err, &dup)
}

func TestFullyQualifiedName(t *testing.T) {
	nc, _ := newCtx()
	a := nc.PushScope("a")
	b := nc.PushScope("b")
	require.Equal(t, "a", a.FullyQualifiedName())
	require.Equal(t, "a::b", b.FullyQualifiedName())
	require.Equal(t, "a::b::T", b.Qualify("T"))
	nc.PopScope()
	nc.PopScope()
	require.Equal(t, "", nc.Root.FullyQualifiedName())
}

func TestResolveWalksOutward(t *testing.T) {
	nc, d := newCtx()
	nc.Root.Define("Outer", TypeName, token.SourceRef{Line: 1})
	inner := nc.PushScope("inner")
	sym := nc.Resolve(inner, "Outer", token.SourceRef{Line: 5})
	require.False(t, d.HasErrors())
	require.Equal(t, TypeName, sym.Kind)
}

func TestResolveUndefinedInsertsPlaceholder(t *testing.T) {
	nc, d := newCtx()
	sym := nc.Resolve(nc.Root, "Missing", token.SourceRef{Line: 1})
	require.True(t, d.HasErrors())
	require.Equal(t, undefinedKind, sym.Kind)

	// second lookup must not cascade another diagnostic
	sym2 := nc.Resolve(nc.Root, "Missing", token.SourceRef{Line: 2})
	require.Equal(t, 1, d.Size())
	require.Same(t, sym, sym2)
}

func TestAmbiguousReferenceViaUsingImports(t *testing.T) {
	nc, d := newCtx()
	ns1 := nc.PushScope("ns1")
	ns1.Define("T", TypeName, token.SourceRef{Line: 1})
	nc.PopScope()

	ns2 := nc.PushScope("ns2")
	ns2.Define("T", TypeName, token.SourceRef{Line: 2})
	nc.PopScope()

	nc.Root.AddImport(ns1)
	nc.Root.AddImport(ns2)

	sym := nc.Resolve(nc.Root, "T", token.SourceRef{Line: 10})
	require.True(t, d.HasErrors())
	require.Contains(t, d.Get(0).Headline, "ambiguous reference: T")
	require.Len(t, d.Get(0).Messages, 3) // reference + 2 candidates
	require.Equal(t, TypeName, sym.Kind)
}

func TestQualifiedLookup(t *testing.T) {
	nc, d := newCtx()
	a := nc.Root
	a.Define("a", NamespaceName, token.SourceRef{Line: 1})
	nsA := nc.PushScope("a")
	nsA.Define("b", NamespaceName, token.SourceRef{Line: 2})
	nsB := nc.PushScope("b")
	nsB.Define("c", TypeName, token.SourceRef{Line: 3})
	nc.PopScope()
	nc.PopScope()

	sym := nc.Qualified(nc.Root, []string{"a", "b", "c"}, token.SourceRef{Line: 10})
	require.False(t, d.HasErrors())
	require.Equal(t, TypeName, sym.Kind)
	require.Equal(t, "c", sym.Name)
}
