// Package mir implements the mid-level intermediate representation: a
// typed, three-address form organized into basic blocks, one per
// function, per spec §3 "MIR Function" / §9 Mid-level IR.
package mir

import "github.com/jlang-gyoji/gyoji/lang/typegraph"

// TmpID names a function-local temporary value produced by some
// operation's Result.
type TmpID uint32

// OperandKind discriminates the ways an Operation can reference a value.
type OperandKind uint8

// List of operand kinds.
const (
	OperandTmp OperandKind = iota
	OperandIntLiteral
	OperandFloatLiteral
	OperandBoolLiteral
	OperandLocalAddr
	OperandGlobalRef
	OperandBlockRef
	OperandLabelRef
)

// Operand is one reference an Operation reads: a previously computed
// temporary, a literal constant, the address of a local variable, a
// reference to a global symbol, or (for branch operations) a target
// block.
type Operand struct {
	Kind OperandKind

	Tmp TmpID

	IntValue   int64
	UintValue  uint64
	FloatValue float64
	BoolValue  bool

	LocalName  string // OperandLocalAddr
	GlobalName string // OperandGlobalRef

	Block BlockID // OperandBlockRef
	Label string   // OperandLabelRef

	Type *typegraph.Type
}

// TmpOperand returns an operand referencing the result of a previous
// operation.
func TmpOperand(id TmpID, t *typegraph.Type) Operand {
	return Operand{Kind: OperandTmp, Tmp: id, Type: t}
}

// IntLiteral returns an operand holding a signed integer constant.
func IntLiteral(v int64, t *typegraph.Type) Operand {
	return Operand{Kind: OperandIntLiteral, IntValue: v, Type: t}
}

// UintLiteral returns an operand holding an unsigned integer constant.
func UintLiteral(v uint64, t *typegraph.Type) Operand {
	return Operand{Kind: OperandIntLiteral, UintValue: v, Type: t}
}

// FloatLiteral returns an operand holding a floating-point constant.
func FloatLiteral(v float64, t *typegraph.Type) Operand {
	return Operand{Kind: OperandFloatLiteral, FloatValue: v, Type: t}
}

// BoolLiteral returns an operand holding a boolean constant.
func BoolLiteral(v bool, t *typegraph.Type) Operand {
	return Operand{Kind: OperandBoolLiteral, BoolValue: v, Type: t}
}

// LocalAddr returns an operand holding the address of local variable name.
func LocalAddr(name string, t *typegraph.Type) Operand {
	return Operand{Kind: OperandLocalAddr, LocalName: name, Type: t}
}

// GlobalRef returns an operand referencing global symbol name.
func GlobalRef(name string, t *typegraph.Type) Operand {
	return Operand{Kind: OperandGlobalRef, GlobalName: name, Type: t}
}

// BlockRef returns an operand naming a branch target block.
func BlockRef(id BlockID) Operand {
	return Operand{Kind: OperandBlockRef, Block: id}
}
