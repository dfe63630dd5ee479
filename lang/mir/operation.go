package mir

import (
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// OpKind names the operation an Operation performs. Every kind that
// ends a basic block's straight-line execution is a terminator; see
// IsTerminator.
type OpKind uint8

// List of operation kinds.
const (
	OpIntLiteral OpKind = iota
	OpFloatLiteral
	OpBoolLiteral
	OpLocalAddr
	OpGlobalRef
	OpLoad
	OpStore
	OpBinary
	OpCall
	OpLabel
	OpBranch     // terminator: unconditional jump
	OpCondBranch // terminator: conditional jump to two blocks
	OpReturn     // terminator
	OpReturnVoid // terminator
	OpUnreachable
)

var opKindNames = [...]string{
	OpIntLiteral:  "int_literal",
	OpFloatLiteral: "float_literal",
	OpBoolLiteral: "bool_literal",
	OpLocalAddr:   "local_addr",
	OpGlobalRef:   "global_ref",
	OpLoad:        "load",
	OpStore:       "store",
	OpBinary:      "binary",
	OpCall:        "call",
	OpLabel:       "label",
	OpBranch:      "branch",
	OpCondBranch:  "cond_branch",
	OpReturn:      "return",
	OpReturnVoid:  "return_void",
	OpUnreachable: "unreachable",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "?"
}

// IsTerminator reports whether k ends a basic block: branch, cond_branch,
// return, return_void, or unreachable, per spec §3/GLOSSARY.
func (k OpKind) IsTerminator() bool {
	switch k {
	case OpBranch, OpCondBranch, OpReturn, OpReturnVoid, OpUnreachable:
		return true
	default:
		return false
	}
}

// BinaryOp names the operator of an OpBinary operation.
type BinaryOp uint8

// List of binary operators.
const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinXor
	BinShl
	BinShr
	BinLt
	BinLe
	BinGt
	BinGe
	BinEq
	BinNe
	BinLogAnd
	BinLogOr
)

var binaryOpNames = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%",
	BinAnd: "&", BinOr: "|", BinXor: "^", BinShl: "<<", BinShr: ">>",
	BinLt: "<", BinLe: "<=", BinGt: ">", BinGe: ">=", BinEq: "==", BinNe: "!=",
	BinLogAnd: "&&", BinLogOr: "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// Operation is one three-address instruction within a BasicBlock:
// a kind, its operands, an optional result temporary, and the source
// location it lowers from (spec §3 "Operation").
type Operation struct {
	Kind     OpKind
	Operands []Operand
	Result   *TmpID // nil when the operation produces no value
	Type     *typegraph.Type
	Binary   BinaryOp // meaningful only when Kind == OpBinary
	Callee   string   // meaningful only when Kind == OpCall
	Src      token.SourceRef
}

// IsTerminator reports whether this operation ends its basic block.
func (op *Operation) IsTerminator() bool { return op.Kind.IsTerminator() }
