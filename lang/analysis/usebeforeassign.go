package analysis

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
)

// assignedSet is the lattice value for the use-before-assignment
// dataflow problem: the set of local-variable names known to be
// assigned on every path reaching a program point. The meet of two
// states is their intersection ("maybe-uninit wins", §4.8.4).
type assignedSet map[string]bool

func (s assignedSet) clone() assignedSet {
	out := make(assignedSet, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersect(a, b assignedSet) assignedSet {
	out := make(assignedSet)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func equalSets(a, b assignedSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// isPlainLocal excludes the synthetic address names function lowering
// builds for member/field lvalues ("base.member", "$tmp3.member"),
// which are not the named local variables this pass tracks.
func isPlainLocal(name string) bool {
	return !strings.Contains(name, ".")
}

// predecessors inverts fn's CFG edges.
func predecessors(fn *mir.Function) map[mir.BlockID][]mir.BlockID {
	preds := make(map[mir.BlockID][]mir.BlockID)
	for id, b := range fn.Blocks {
		if len(b.Operations) == 0 {
			continue
		}
		for _, s := range successors(b.Terminator()) {
			preds[s] = append(preds[s], id)
		}
	}
	return preds
}

// UseBeforeAssign runs the forward "must be assigned" dataflow skeleton
// described in §4.8.4 and reports every local-variable load that may
// read an uninitialized value.
func UseBeforeAssign(fn *mir.Function, diags *diag.Diagnostics) {
	entry := make(assignedSet, len(fn.Params))
	for _, p := range fn.Params {
		entry[p.Name] = true
	}

	ids := make([]mir.BlockID, 0, len(fn.Blocks))
	for id := range fn.Blocks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	preds := predecessors(fn)
	reachable := reachableBlocks(fn)

	in := make(map[mir.BlockID]assignedSet, len(ids))
	out := make(map[mir.BlockID]assignedSet, len(ids))
	universe := allPlainLocalNames(fn)
	for _, id := range ids {
		if id == fn.Entry {
			in[id] = entry.clone()
		} else {
			in[id] = universe.clone()
		}
		out[id] = storeEffect(in[id], fn.Blocks[id])
	}

	// Fixpoint: narrow in-states by intersecting predecessor out-states
	// until nothing changes. Bounded by len(ids)+1 passes, which always
	// suffices for a monotonically shrinking lattice over a finite CFG.
	for pass := 0; pass <= len(ids); pass++ {
		changed := false
		for _, id := range ids {
			if id == fn.Entry || !reachable[id] {
				continue // unreachable blocks are reported by Unreachable, not here
			}
			newIn := universe.clone()
			for _, p := range preds[id] {
				newIn = intersect(newIn, out[p])
			}
			if !equalSets(newIn, in[id]) {
				in[id] = newIn
				out[id] = storeEffect(newIn, fn.Blocks[id])
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, id := range ids {
		if !reachable[id] {
			continue
		}
		reportReads(fn.Blocks[id], in[id], diags)
	}
}

func allPlainLocalNames(fn *mir.Function) assignedSet {
	names := make(assignedSet)
	for _, b := range fn.Blocks {
		for _, op := range b.Operations {
			for _, operand := range op.Operands {
				if operand.Kind == mir.OperandLocalAddr && isPlainLocal(operand.LocalName) {
					names[operand.LocalName] = true
				}
			}
		}
	}
	return names
}

// storeEffect applies every OpStore in b to a copy of in, marking the
// stored-to local assigned; loads never change the lattice value.
func storeEffect(in assignedSet, b *mir.BasicBlock) assignedSet {
	if b == nil {
		return in.clone()
	}
	state := in.clone()
	for _, op := range b.Operations {
		if op.Kind != mir.OpStore {
			continue
		}
		addr := op.Operands[0]
		if addr.Kind == mir.OperandLocalAddr && isPlainLocal(addr.LocalName) {
			state[addr.LocalName] = true
		}
	}
	return state
}

// reportReads walks b once more with its finalized entry state, flagging
// the first read of each maybe-uninitialized local.
func reportReads(b *mir.BasicBlock, in assignedSet, diags *diag.Diagnostics) {
	if b == nil {
		return
	}
	state := in.clone()
	for _, op := range b.Operations {
		switch op.Kind {
		case mir.OpLoad:
			addr := op.Operands[0]
			if addr.Kind != mir.OperandLocalAddr || !isPlainLocal(addr.LocalName) {
				continue
			}
			if !state[addr.LocalName] {
				diags.AddSimple(op.Src, "UseBeforeAssignment", "use of possibly uninitialized variable "+addr.LocalName)
				state[addr.LocalName] = true // report once per block
			}
		case mir.OpStore:
			addr := op.Operands[0]
			if addr.Kind == mir.OperandLocalAddr && isPlainLocal(addr.LocalName) {
				state[addr.LocalName] = true
			}
		}
	}
}
