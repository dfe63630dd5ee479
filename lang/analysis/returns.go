package analysis

import (
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// Returns checks every Return/ReturnVoid operation in fn against its
// declared return type, per §4.8.2.
func Returns(fn *mir.Function, diags *diag.Diagnostics) {
	for _, b := range fn.Blocks {
		for _, op := range b.Operations {
			switch op.Kind {
			case mir.OpReturn:
				checkReturn(fn, op, diags)
			case mir.OpReturnVoid:
				checkReturnVoid(fn, op, diags)
			}
		}
	}
}

func checkReturn(fn *mir.Function, op mir.Operation, diags *diag.Diagnostics) {
	got := op.Operands[0].Type
	if got == fn.Return {
		return
	}
	err := diag.NewError("return value of type " + typeOrVoidName(got) + " but function is declared to return " + typeOrVoidName(fn.Return)).
		AddMessage(op.Src, "returned here").
		AddMessage(fn.Src, "function "+fn.Name+" declared here")
	diags.Add(err)
}

func checkReturnVoid(fn *mir.Function, op mir.Operation, diags *diag.Diagnostics) {
	if fn.Return != nil && fn.Return.IsVoid() {
		return
	}
	err := diag.NewError("return without a value but function is declared to return " + typeOrVoidName(fn.Return)).
		AddMessage(op.Src, "returned here").
		AddMessage(fn.Src, "function "+fn.Name+" declared here")
	diags.Add(err)
}

func typeOrVoidName(t *typegraph.Type) string {
	if t == nil {
		return "void"
	}
	return t.Name()
}
