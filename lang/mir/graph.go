package mir

import "github.com/jlang-gyoji/gyoji/lang/typegraph"

// Global is a top-level variable declaration lowered alongside functions.
type Global struct {
	Name string
	Type *typegraph.Type
}

// MIR is the lowered program as a whole: every function reachable from
// the translation units given to function lowering, plus the global
// symbol table they share.
type MIR struct {
	Functions map[string]*Function
	Globals   map[string]*Global
	Types     *typegraph.Graph
}

// New returns an empty MIR bound to the given (already populated) type
// graph.
func New(types *typegraph.Graph) *MIR {
	return &MIR{
		Functions: make(map[string]*Function),
		Globals:   make(map[string]*Global),
		Types:     types,
	}
}

// DefineFunction registers fn under its name. Overwriting an existing
// entry is a programming error the caller (function lowering) is
// expected to have already rejected via namespace duplicate-definition
// checks.
func (m *MIR) DefineFunction(fn *Function) { m.Functions[fn.Name] = fn }

// DefineGlobal registers g under its name.
func (m *MIR) DefineGlobal(g *Global) { m.Globals[g.Name] = g }
