package typegraph

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func TestPrimitivesSeeded(t *testing.T) {
	g := New()
	i32 := g.Primitive(I32)
	require.NotNil(t, i32)
	require.Equal(t, "i32", i32.Name())
	require.True(t, i32.IsComplete())
	require.Equal(t, KindPrimitive, i32.Kind())

	void := g.Primitive(VoidKind)
	require.True(t, void.IsVoid())
}

func TestPointerReferenceArrayAreInterned(t *testing.T) {
	g := New()
	i32 := g.Primitive(I32)
	src := token.SourceRef{Line: 1}

	p1 := g.PointerTo(i32, src)
	p2 := g.PointerTo(i32, src)
	require.Same(t, p1, p2)
	require.Equal(t, "i32*", p1.Name())

	r1 := g.ReferenceTo(i32, src)
	require.Equal(t, "i32&", r1.Name())
	require.NotSame(t, p1, r1)

	a1 := g.ArrayOf(i32, 4, src)
	a2 := g.ArrayOf(i32, 4, src)
	require.Same(t, a1, a2)
	require.Equal(t, "i32[4]", a1.Name())

	a3 := g.ArrayOf(i32, 8, src)
	require.NotSame(t, a1, a3)
}

func TestCompositeDeclareThenComplete(t *testing.T) {
	g := New()
	src := token.SourceRef{Line: 1}

	widget := g.DeclareComposite("Widget", src)
	require.False(t, widget.IsComplete())

	// Re-declaring returns the same incomplete handle (forward reference).
	same := g.DeclareComposite("Widget", src)
	require.Same(t, widget, same)

	i32 := g.Primitive(I32)
	widget.CompleteComposite(
		[]Field{{Name: "x", Type: i32, Src: src}},
		[]Method{{Name: "reset", Params: nil, Return: g.Primitive(VoidKind), Src: src}},
	)
	require.True(t, widget.IsComplete())

	f, ok := widget.Field("x")
	require.True(t, ok)
	require.Equal(t, i32, f.Type)

	_, ok = widget.Field("missing")
	require.False(t, ok)

	m, ok := widget.Method("reset")
	require.True(t, ok)
	require.True(t, m.Return.IsVoid())
}

func TestCompositeCompleteTwicePanics(t *testing.T) {
	g := New()
	src := token.SourceRef{Line: 1}
	widget := g.DeclareComposite("Widget", src)
	widget.CompleteComposite(nil, nil)
	require.Panics(t, func() { widget.CompleteComposite(nil, nil) })
}

func TestEnumTags(t *testing.T) {
	g := New()
	src := token.SourceRef{Line: 1}
	i32 := g.Primitive(I32)

	e := g.DeclareEnum("Color", i32, []EnumTag{
		{Name: "Red", Value: 0},
		{Name: "Green", Value: 1},
	}, src)
	require.True(t, e.IsComplete())

	tag, ok := e.EnumTag("Green")
	require.True(t, ok)
	require.Equal(t, int64(1), tag.Value)
}

func TestFunctionPointerCanonicalNameAndInterning(t *testing.T) {
	g := New()
	src := token.SourceRef{Line: 1}
	i32 := g.Primitive(I32)
	f64 := g.Primitive(F64)

	fp1 := g.FunctionPointer([]*Type{i32, f64}, g.Primitive(VoidKind), src)
	fp2 := g.FunctionPointer([]*Type{i32, f64}, g.Primitive(VoidKind), src)
	require.Same(t, fp1, fp2)
	require.Equal(t, "fn(i32,f64)->void", fp1.Name())
}
