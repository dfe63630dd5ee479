// Package analysis implements the MIR analysis passes of §4.8:
// unreachable-statement detection, return-type consistency, type
// completeness, use-before-assignment, and a borrow-check skeleton.
// Each pass takes the already-lowered MIR and the shared Diagnostics
// sink; passes are idempotent and order-independent among themselves
// (type lowering, which populates the type graph they read, must
// already have run).
package analysis

import (
	"golang.org/x/exp/slices"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
)

// Run applies every analysis pass to m, in function-name order so
// diagnostic order is deterministic across runs.
func Run(m *mir.MIR, diags *diag.Diagnostics) {
	Completeness(m.Types, diags)

	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fn := m.Functions[name]
		Unreachable(fn, diags)
		Returns(fn, diags)
		UseBeforeAssign(fn, diags)
		Borrow(fn, diags)
	}
}
