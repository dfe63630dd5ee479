package lowering

import (
	"strings"
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
	"github.com/stretchr/testify/require"
)

func TestDumpFunctionRendersEntryAndReturn(t *testing.T) {
	l, g, d := newFuncLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{Value: intLit("42"), Src: src},
	}}
	fn := l.LowerFunction("answer", nil, i32, body, src)
	require.False(t, d.HasErrors())

	var sb strings.Builder
	require.NoError(t, NewDumper(&sb).DumpFunction(fn))
	out := sb.String()

	require.Contains(t, out, "function answer() -> i32 {")
	require.Contains(t, out, "(entry)")
	require.Contains(t, out, "return ")
	require.Contains(t, out, "}")
}

func TestDumpFunctionRendersParamsAndBinary(t *testing.T) {
	l, g, d := newFuncLowerer()
	i32 := g.Primitive(typegraph.I32)
	src := token.SourceRef{Line: 1}

	body := &cst.Block{Src: src, Stmts: []cst.Stmt{
		&cst.ReturnStmt{
			Value: &cst.BinaryExpr{Op: &cst.Terminal{Text: "+"}, Left: ident("a"), Right: ident("b"), Src: src},
			Src:   src,
		},
	}}
	fn := l.LowerFunction("add", []mir.Param{{Name: "a", Type: i32}, {Name: "b", Type: i32}}, i32, body, src)
	require.False(t, d.HasErrors())

	var sb strings.Builder
	require.NoError(t, NewDumper(&sb).DumpFunction(fn))
	out := sb.String()

	require.Contains(t, out, "function add(a: i32, b: i32) -> i32 {")
	require.Contains(t, out, "binary + ")
}
