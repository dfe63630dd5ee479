package mir

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
	"github.com/stretchr/testify/require"
)

func TestOpKindIsTerminator(t *testing.T) {
	require.True(t, OpReturn.IsTerminator())
	require.True(t, OpReturnVoid.IsTerminator())
	require.True(t, OpBranch.IsTerminator())
	require.True(t, OpCondBranch.IsTerminator())
	require.True(t, OpUnreachable.IsTerminator())
	require.False(t, OpBinary.IsTerminator())
	require.False(t, OpCall.IsTerminator())
}

func TestBasicBlockValidate(t *testing.T) {
	ret := &Operation{Kind: OpReturnVoid}
	b := &BasicBlock{ID: 0, Operations: []Operation{{Kind: OpBinary}, *ret}}
	require.True(t, b.Validate())

	empty := &BasicBlock{ID: 1}
	require.False(t, empty.Validate())

	noTerm := &BasicBlock{ID: 2, Operations: []Operation{{Kind: OpBinary}}}
	require.False(t, noTerm.Validate())

	earlyTerm := &BasicBlock{ID: 3, Operations: []Operation{{Kind: OpReturnVoid}, {Kind: OpBinary}}}
	require.False(t, earlyTerm.Validate())
}

func TestFunctionAllocatesBlocksAndTmps(t *testing.T) {
	g := typegraph.New()
	i32 := g.Primitive(typegraph.I32)

	fn := NewFunction("f", i32, nil, token.SourceRef{Line: 1})
	entry := fn.NewBlock(token.SourceRef{Line: 1})
	fn.Entry = entry.ID

	tmp := fn.NewTmp(i32)
	result := tmp
	entry.Operations = append(entry.Operations,
		Operation{Kind: OpIntLiteral, Operands: []Operand{IntLiteral(1, i32)}, Result: &result, Type: i32},
		Operation{Kind: OpReturn, Operands: []Operand{TmpOperand(tmp, i32)}},
	)

	require.True(t, fn.Validate())
	require.Len(t, fn.Blocks, 1)
	require.Equal(t, i32, fn.TmpVars[tmp])
}

func TestMIRRegistersFunctionsAndGlobals(t *testing.T) {
	g := typegraph.New()
	m := New(g)
	fn := NewFunction("main", g.Primitive(typegraph.VoidKind), nil, token.SourceRef{})
	m.DefineFunction(fn)
	m.DefineGlobal(&Global{Name: "counter", Type: g.Primitive(typegraph.I32)})

	require.Same(t, fn, m.Functions["main"])
	require.Equal(t, "counter", m.Globals["counter"].Name)
}
