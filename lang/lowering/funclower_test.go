package lowering

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
	"github.com/stretchr/testify/require"
)

func newFuncLowerer() (*FuncLowerer, *typegraph.Graph, *diag.Diagnostics) {
	d := diag.New(token.NewTokenStream())
	ns := namespace.New(d)
	g := typegraph.New()
	return NewFuncLowerer(g, ns, d), g, d
}

func ident(name string) *cst.IdentExpr {
	return &cst.IdentExpr{Path: []*cst.Terminal{{Kind: token.IDENT, Text: name}}}
}

func intLit(text string) *cst.IntLiteralExpr {
	return &cst.IntLiteralExpr{Tok: &cst.Terminal{Kind: token.IDENT, Text: text}}
}

func countOps(fn *mir.Function, kind mir.OpKind) int {
	n := 0
	for _, b := range fn.Blocks {
		for _, op := range b.Operations {
			if op.Kind == kind {
				n++
			}
		}
	}
	return n
}

func TestReturnLowersAndFunctionValidates(t *testing.T) {
	l, g, d := newFuncLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{Value: intLit("42"), Src: src},
	}}
	fn := l.LowerFunction("answer", nil, i32, body, src)

	require.False(t, d.HasErrors())
	require.True(t, fn.Validate())
	require.Equal(t, 1, countOps(fn, mir.OpReturn))
}

func TestLetThenAssignEmitsStoreTwice(t *testing.T) {
	l, g, d := newFuncLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.LetStmt{Name: &cst.Terminal{Text: "x"}, Init: intLit("1"), Src: src},
		&cst.AssignStmt{Target: ident("x"), Value: intLit("2"), Src: src},
		&cst.ReturnStmt{Src: src},
	}}
	fn := l.LowerFunction("f", nil, g.Primitive(typegraph.VoidKind), body, src)

	require.False(t, d.HasErrors())
	require.True(t, fn.Validate())
	require.Equal(t, 2, countOps(fn, mir.OpStore))
}

func TestIfElseAllocatesBlocksForEachBranch(t *testing.T) {
	l, g, d := newFuncLowerer()
	boolT := g.Primitive(typegraph.BoolKind)
	voidT := g.Primitive(typegraph.VoidKind)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.IfStmt{
			Cond: &cst.BoolLiteralExpr{Tok: &cst.Terminal{Text: "true"}, Src: src},
			Then: &cst.Block{Src: src, Stmts: []cst.Stmt{&cst.ReturnStmt{Src: src}}},
			Else: &cst.Block{Src: src, Stmts: []cst.Stmt{&cst.ReturnStmt{Src: src}}},
			Src:  src,
		},
	}}
	_ = boolT
	fn := l.LowerFunction("f", nil, voidT, body, src)

	require.False(t, d.HasErrors())
	require.True(t, fn.Validate())
	// at least entry + then + else + after; returning inside each branch
	// also opens a trailing (unreachable) block per branch, per the
	// "fresh block after every terminator" rule.
	require.GreaterOrEqual(t, len(fn.Blocks), 4)
	require.Equal(t, 1, countOps(fn, mir.OpCondBranch))
}

func TestWhileLoopBackEdgeAndBreakContinue(t *testing.T) {
	l, g, d := newFuncLowerer()
	voidT := g.Primitive(typegraph.VoidKind)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.WhileStmt{
			Cond: &cst.BoolLiteralExpr{Tok: &cst.Terminal{Text: "true"}, Src: src},
			Body: &cst.Block{Src: src, Stmts: []cst.Stmt{
				&cst.IfStmt{
					Cond: &cst.BoolLiteralExpr{Tok: &cst.Terminal{Text: "true"}, Src: src},
					Then: &cst.Block{Src: src, Stmts: []cst.Stmt{&cst.BreakStmt{Src: src}}},
				},
				&cst.ContinueStmt{Src: src},
			}},
			Src: src,
		},
		&cst.ReturnStmt{Src: src},
	}}
	fn := l.LowerFunction("f", nil, voidT, body, src)

	require.False(t, d.HasErrors())
	require.True(t, fn.Validate())
	require.GreaterOrEqual(t, countOps(fn, mir.OpBranch), 2) // break + continue
}

func TestBinaryAddWidensToWiderSignedInt(t *testing.T) {
	l, g, d := newFuncLowerer()
	i64 := g.Primitive(typegraph.I64)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.LetStmt{
			Name: &cst.Terminal{Text: "x"},
			Init: &cst.BinaryExpr{
				Op:    &cst.Terminal{Text: "+"},
				Left:  intLit("1i32"),
				Right: intLit("2i64"),
				Src:   src,
			},
			Src: src,
		},
		&cst.ReturnStmt{Src: src},
	}}
	fn := l.LowerFunction("f", nil, g.Primitive(typegraph.VoidKind), body, src)

	require.False(t, d.HasErrors())
	found := false
	for _, b := range fn.Blocks {
		for _, op := range b.Operations {
			if op.Kind == mir.OpBinary {
				require.Equal(t, i64, op.Type)
				found = true
			}
		}
	}
	require.True(t, found)
}

func TestMismatchedSignednessReportsTypeMismatch(t *testing.T) {
	l, g, d := newFuncLowerer()
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ExprStmt{
			X: &cst.BinaryExpr{
				Op:    &cst.Terminal{Text: "+"},
				Left:  intLit("1i32"),
				Right: intLit("2u32"),
				Src:   src,
			},
			Src: src,
		},
		&cst.ReturnStmt{Src: src},
	}}
	l.LowerFunction("f", nil, g.Primitive(typegraph.VoidKind), body, src)

	require.True(t, d.HasErrors())
	require.Contains(t, d.Get(0).Headline, "TypeMismatch")
}

func TestGotoSkipsInitializationIsReportedThroughTracker(t *testing.T) {
	l, g, d := newFuncLowerer()
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.GotoStmt{Label: &cst.Terminal{Text: "skip"}, Src: src},
		&cst.Block{Src: src, Stmts: []cst.Stmt{
			&cst.LetStmt{Name: &cst.Terminal{Text: "x"}, Init: intLit("1"), Src: src},
			&cst.LabelStmt{Name: &cst.Terminal{Text: "skip"}, Src: src},
		}},
		&cst.ReturnStmt{Src: src},
	}}
	l.LowerFunction("f", nil, g.Primitive(typegraph.VoidKind), body, src)

	require.True(t, d.HasErrors())
	foundSkip := false
	for i := 0; i < d.Size(); i++ {
		if d.Get(i).Headline == "goto skips initialization of x" {
			foundSkip = true
		}
	}
	require.True(t, foundSkip)
}

func TestParamsAreBoundAsLocals(t *testing.T) {
	l, g, d := newFuncLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{Value: ident("a"), Src: src},
	}}
	fn := l.LowerFunction("f", []mir.Param{{Name: "a", Type: i32}}, i32, body, src)

	require.False(t, d.HasErrors())
	require.Equal(t, 1, countOps(fn, mir.OpLoad))
}
