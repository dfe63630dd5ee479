package lowering

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// Dumper renders a lowered MIR program as human-readable text: one
// function block at a time, blocks in ID order, each operation on its
// own line. This is a read-only view used by the compile CLI command
// and by lowering tests to assert on shape without reaching into MIR
// structs directly; unlike the teacher's assembler format it is never
// parsed back, since MIR is produced only by function lowering.
type Dumper struct {
	Output io.Writer
}

// NewDumper returns a Dumper writing to w.
func NewDumper(w io.Writer) *Dumper { return &Dumper{Output: w} }

// DumpProgram writes every function in m, in name-sorted order for
// determinism, followed by the global symbol table.
func (d *Dumper) DumpProgram(m *mir.MIR) error {
	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := d.DumpFunction(m.Functions[name]); err != nil {
			return err
		}
	}

	globalNames := make([]string, 0, len(m.Globals))
	for name := range m.Globals {
		globalNames = append(globalNames, name)
	}
	slices.Sort(globalNames)
	for _, name := range globalNames {
		g := m.Globals[name]
		if _, err := fmt.Fprintf(d.Output, "global %s : %s\n", g.Name, typeName(g.Type)); err != nil {
			return err
		}
	}
	return nil
}

// DumpFunction writes fn's signature and every block, in ID order.
func (d *Dumper) DumpFunction(fn *mir.Function) error {
	if _, err := fmt.Fprintf(d.Output, "function %s(%s) -> %s {\n", fn.Name, formatParams(fn.Params), typeName(fn.Return)); err != nil {
		return err
	}

	ids := make([]mir.BlockID, 0, len(fn.Blocks))
	for id := range fn.Blocks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		b := fn.Blocks[id]
		marker := ""
		if id == fn.Entry {
			marker = " (entry)"
		}
		if _, err := fmt.Fprintf(d.Output, "block%d%s:\n", id, marker); err != nil {
			return err
		}
		for _, op := range b.Operations {
			if _, err := fmt.Fprintf(d.Output, "    %s\n", formatOperation(op)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(d.Output, "}")
	return err
}

func formatParams(params []mir.Param) string {
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.Name + ": " + typeName(p.Type)
	}
	return s
}

func formatOperation(op mir.Operation) string {
	result := ""
	if op.Result != nil {
		result = fmt.Sprintf("%%%d = ", *op.Result)
	}

	switch op.Kind {
	case mir.OpBinary:
		return fmt.Sprintf("%s%s %s %s, %s : %s", result, op.Kind, op.Binary, formatOperand(op.Operands[0]), formatOperand(op.Operands[1]), typeName(op.Type))
	case mir.OpCall:
		return fmt.Sprintf("%scall %s(%s) : %s", result, op.Callee, formatOperandList(op.Operands), typeName(op.Type))
	case mir.OpCondBranch:
		return fmt.Sprintf("cond_branch %s, %s, %s", formatOperand(op.Operands[0]), formatOperand(op.Operands[1]), formatOperand(op.Operands[2]))
	case mir.OpBranch:
		return fmt.Sprintf("branch %s", formatOperand(op.Operands[0]))
	case mir.OpReturn:
		return fmt.Sprintf("return %s", formatOperand(op.Operands[0]))
	case mir.OpReturnVoid:
		return "return_void"
	case mir.OpUnreachable:
		return "unreachable"
	case mir.OpLabel:
		return fmt.Sprintf("label %s", formatOperand(op.Operands[0]))
	default:
		if len(op.Operands) == 0 {
			return fmt.Sprintf("%s%s : %s", result, op.Kind, typeName(op.Type))
		}
		return fmt.Sprintf("%s%s %s : %s", result, op.Kind, formatOperandList(op.Operands), typeName(op.Type))
	}
}

func formatOperandList(ops []mir.Operand) string {
	s := ""
	for i, o := range ops {
		if i > 0 {
			s += ", "
		}
		s += formatOperand(o)
	}
	return s
}

func formatOperand(o mir.Operand) string {
	switch o.Kind {
	case mir.OperandTmp:
		return fmt.Sprintf("%%%d", o.Tmp)
	case mir.OperandIntLiteral:
		if o.Type != nil && o.Type.Kind() == typegraph.KindPrimitive {
			if k := o.Type.Primitive(); k.IsInteger() && !k.IsSigned() {
				return fmt.Sprintf("%d", o.UintValue)
			}
		}
		return fmt.Sprintf("%d", o.IntValue)
	case mir.OperandFloatLiteral:
		return fmt.Sprintf("%g", o.FloatValue)
	case mir.OperandBoolLiteral:
		return fmt.Sprintf("%t", o.BoolValue)
	case mir.OperandLocalAddr:
		return "&" + o.LocalName
	case mir.OperandGlobalRef:
		return "@" + o.GlobalName
	case mir.OperandBlockRef:
		return fmt.Sprintf("block%d", o.Block)
	case mir.OperandLabelRef:
		return "~" + o.Label
	default:
		return "?"
	}
}

func typeName(t *typegraph.Type) string {
	if t == nil {
		return "void"
	}
	return t.Name()
}
