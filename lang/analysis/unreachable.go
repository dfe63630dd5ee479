package analysis

import (
	"golang.org/x/exp/slices"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
)

// successors returns the blocks a terminator operation can transfer
// control to.
func successors(op *mir.Operation) []mir.BlockID {
	switch op.Kind {
	case mir.OpBranch:
		return []mir.BlockID{op.Operands[0].Block}
	case mir.OpCondBranch:
		return []mir.BlockID{op.Operands[1].Block, op.Operands[2].Block}
	default:
		return nil
	}
}

// reachableBlocks returns the set of blocks reachable from fn.Entry by
// following terminator edges.
func reachableBlocks(fn *mir.Function) map[mir.BlockID]bool {
	seen := map[mir.BlockID]bool{fn.Entry: true}
	queue := []mir.BlockID{fn.Entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		b, ok := fn.Blocks[id]
		if !ok || len(b.Operations) == 0 {
			continue
		}
		for _, s := range successors(b.Terminator()) {
			if !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}
	}
	return seen
}

// Unreachable reports every non-empty block of fn that no path from the
// entry block reaches, per §4.8.1. Function lowering always opens a
// fresh block after a terminating statement (return/break/continue/
// goto), so a statement following one in the source becomes exactly
// such an orphaned block.
func Unreachable(fn *mir.Function, diags *diag.Diagnostics) {
	reachable := reachableBlocks(fn)

	ids := make([]mir.BlockID, 0, len(fn.Blocks))
	for id := range fn.Blocks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if reachable[id] {
			continue
		}
		b := fn.Blocks[id]
		if len(b.Operations) == 0 {
			continue
		}
		diags.AddSimple(b.Operations[0].Src, "UnreachableStatement", "statement is unreachable")
	}
}
