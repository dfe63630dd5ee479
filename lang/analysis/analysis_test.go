package analysis

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/lowering"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
	"github.com/stretchr/testify/require"
)

func newLowerer() (*lowering.FuncLowerer, *typegraph.Graph, *diag.Diagnostics) {
	d := diag.New(token.NewTokenStream())
	ns := namespace.New(d)
	g := typegraph.New()
	return lowering.NewFuncLowerer(g, ns, d), g, d
}

func ident(name string) *cst.IdentExpr {
	return &cst.IdentExpr{Path: []*cst.Terminal{{Kind: token.IDENT, Text: name}}}
}

func intLit(text string) *cst.IntLiteralExpr {
	return &cst.IntLiteralExpr{Tok: &cst.Terminal{Kind: token.INT, Text: text}}
}

func floatLit(text string) *cst.FloatLiteralExpr {
	return &cst.FloatLiteralExpr{Tok: &cst.Terminal{Kind: token.FLOAT, Text: text}}
}

func typeSpec(name string) *cst.TypeSpecifierSimple {
	return &cst.TypeSpecifierSimple{Path: []*cst.Terminal{{Kind: token.IDENT, Text: name}}}
}

func headlines(d *diag.Diagnostics) []string {
	var out []string
	for i := 0; i < d.Size(); i++ {
		out = append(out, d.Get(i).Headline)
	}
	return out
}

func TestUnreachableAfterSecondReturn(t *testing.T) {
	l, g, d := newLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{Value: intLit("1"), Src: src},
		&cst.ReturnStmt{Value: intLit("2"), Src: token.SourceRef{Line: 2}},
	}}
	fn := l.LowerFunction("f", nil, i32, body, src)
	require.False(t, d.HasErrors())

	Unreachable(fn, d)
	require.Contains(t, headlines(d), "UnreachableStatement")
}

func TestReachableCodeIsNotFlagged(t *testing.T) {
	l, g, d := newLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.IfStmt{
			Cond: &cst.BoolLiteralExpr{Tok: &cst.Terminal{Text: "true"}, Src: src},
			Then: &cst.Block{Src: src, Stmts: []cst.Stmt{&cst.ReturnStmt{Value: intLit("1"), Src: src}}},
			Else: &cst.Block{Src: src, Stmts: []cst.Stmt{&cst.ReturnStmt{Value: intLit("2"), Src: src}}},
			Src:  src,
		},
	}}
	fn := l.LowerFunction("f", nil, i32, body, src)
	require.False(t, d.HasErrors())

	Unreachable(fn, d)
	require.NotContains(t, headlines(d), "UnreachableStatement")
}

func TestReturnTypeMismatchIsReported(t *testing.T) {
	l, g, d := newLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{Value: floatLit("1.0f32"), Src: src},
	}}
	fn := l.LowerFunction("f", nil, i32, body, src)
	require.False(t, d.HasErrors())

	Returns(fn, d)
	require.Equal(t, 1, d.Size())
	require.Contains(t, d.Get(0).Headline, "f32")
	require.Contains(t, d.Get(0).Headline, "i32")
	require.Len(t, d.Get(0).Messages, 2)
}

func TestReturnVoidInNonVoidFunctionIsReported(t *testing.T) {
	d := diag.New(token.NewTokenStream())
	g := typegraph.New()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	fn := mir.NewFunction("f", i32, nil, src)
	blk := fn.NewBlock(src)
	fn.Entry = blk.ID
	blk.Operations = append(blk.Operations, mir.Operation{Kind: mir.OpReturnVoid, Src: src})

	Returns(fn, d)
	require.Equal(t, 1, d.Size())
	require.Contains(t, d.Get(0).Headline, "without a value")
}

func TestMatchingReturnTypeIsNotReported(t *testing.T) {
	l, g, d := newLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{Value: intLit("1"), Src: src},
	}}
	fn := l.LowerFunction("f", nil, i32, body, src)
	require.False(t, d.HasErrors())

	Returns(fn, d)
	require.Equal(t, 0, d.Size())
}

func TestCompletenessFlagsIncompleteInlineField(t *testing.T) {
	g := typegraph.New()
	d := diag.New(token.NewTokenStream())
	src := token.SourceRef{Line: 1}

	a := g.DeclareComposite("A", src)
	b := g.DeclareComposite("B", token.SourceRef{Line: 2})
	b.CompleteComposite([]typegraph.Field{{Name: "a", Type: a, Src: token.SourceRef{Line: 3}}}, nil)

	Completeness(g, d)
	require.Equal(t, 1, d.Size())
	require.Contains(t, d.Get(0).Headline, "A")
}

func TestCompletenessAllowsPointerToIncomplete(t *testing.T) {
	g := typegraph.New()
	d := diag.New(token.NewTokenStream())
	src := token.SourceRef{Line: 1}

	a := g.DeclareComposite("A", src)
	ptr := g.PointerTo(a, src)
	b := g.DeclareComposite("B", token.SourceRef{Line: 2})
	b.CompleteComposite([]typegraph.Field{{Name: "a", Type: ptr, Src: token.SourceRef{Line: 3}}}, nil)

	Completeness(g, d)
	require.Equal(t, 0, d.Size())
}

func TestCompletenessFlagsIncompleteArrayElement(t *testing.T) {
	g := typegraph.New()
	d := diag.New(token.NewTokenStream())
	src := token.SourceRef{Line: 1}

	a := g.DeclareComposite("A", src)
	arr := g.ArrayOf(a, 4, src)
	b := g.DeclareComposite("B", token.SourceRef{Line: 2})
	b.CompleteComposite([]typegraph.Field{{Name: "items", Type: arr, Src: token.SourceRef{Line: 3}}}, nil)

	Completeness(g, d)
	require.Equal(t, 1, d.Size())
}

func TestUseBeforeAssignFlagsUninitializedRead(t *testing.T) {
	l, g, d := newLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.LetStmt{Name: &cst.Terminal{Text: "x"}, Type: typeSpec("i32"), Src: src},
		&cst.ReturnStmt{Value: ident("x"), Src: token.SourceRef{Line: 2}},
	}}
	fn := l.LowerFunction("f", nil, i32, body, src)
	require.False(t, d.HasErrors())

	UseBeforeAssign(fn, d)
	require.Equal(t, 1, d.Size())
	require.Contains(t, d.Get(0).Headline, "UseBeforeAssignment")
}

func TestUseBeforeAssignAllowsReadAfterInit(t *testing.T) {
	l, g, d := newLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.LetStmt{Name: &cst.Terminal{Text: "x"}, Init: intLit("1"), Src: src},
		&cst.ReturnStmt{Value: ident("x"), Src: src},
	}}
	fn := l.LowerFunction("f", nil, i32, body, src)
	require.False(t, d.HasErrors())

	UseBeforeAssign(fn, d)
	require.Equal(t, 0, d.Size())
}

func TestUseBeforeAssignFlagsInitOnOnlyOneBranchThenJoinedRead(t *testing.T) {
	l, g, d := newLowerer()
	voidT := g.Primitive(typegraph.VoidKind)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.LetStmt{Name: &cst.Terminal{Text: "x"}, Type: typeSpec("i32"), Src: src},
		&cst.IfStmt{
			Cond: &cst.BoolLiteralExpr{Tok: &cst.Terminal{Text: "true"}, Src: src},
			Then: &cst.Block{Src: src, Stmts: []cst.Stmt{
				&cst.AssignStmt{Target: ident("x"), Value: intLit("1"), Src: src},
			}},
			Src: src,
		},
		&cst.ExprStmt{X: ident("x"), Src: token.SourceRef{Line: 5}},
		&cst.ReturnStmt{Src: src},
	}}
	fn := l.LowerFunction("f", nil, voidT, body, src)
	require.False(t, d.HasErrors())

	UseBeforeAssign(fn, d)
	require.Equal(t, 1, d.Size())
	require.Contains(t, d.Get(0).Headline, "UseBeforeAssignment")
}

func TestBorrowExtractsEdgesAndLoansWithoutReportingViolations(t *testing.T) {
	l, g, d := newLowerer()
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.LetStmt{Name: &cst.Terminal{Text: "x"}, Init: intLit("1"), Src: src},
		&cst.LetStmt{
			Name: &cst.Terminal{Text: "p"},
			Init: &cst.UnaryExpr{Op: &cst.Terminal{Text: "&"}, Operand: ident("x"), Src: src},
			Src:  src,
		},
		&cst.ReturnStmt{Src: src},
	}}
	fn := l.LowerFunction("f", nil, g.Primitive(typegraph.VoidKind), body, src)
	require.False(t, d.HasErrors())

	edges := ExtractEdges(fn)
	require.NotEmpty(t, edges)
	loans := ExtractLoans(fn)
	require.NotEmpty(t, loans)

	Borrow(fn, d)
	require.Equal(t, 0, d.Size())
}

func TestRunOrdersDiagnosticsByFunctionName(t *testing.T) {
	d := diag.New(token.NewTokenStream())
	ns := namespace.New(d)
	g := typegraph.New()
	src := token.SourceRef{Line: 1}

	m := mir.New(g)
	for _, name := range []string{"zeta", "alpha"} {
		l := lowering.NewFuncLowerer(g, ns, d)
		body := &cst.Block{Src: src, Stmts: []cst.Stmt{
			&cst.ReturnStmt{Value: floatLit("1.0f32"), Src: src},
		}}
		fn := l.LowerFunction(name, nil, g.Primitive(typegraph.I32), body, src)
		m.DefineFunction(fn)
	}

	Run(m, d)
	require.Equal(t, 2, d.Size())
	require.Contains(t, d.Get(0).Messages[1].Prose, "alpha")
	require.Contains(t, d.Get(1).Messages[1].Prose, "zeta")
}
