package mir

import "github.com/jlang-gyoji/gyoji/lang/token"

// BlockID identifies a BasicBlock within a Function.
type BlockID uint32

// BasicBlock is a maximal straight-line sequence of operations ending in
// exactly one terminating operation, which must be last (spec §3
// invariant).
type BasicBlock struct {
	ID         BlockID
	Operations []Operation
	Src        token.SourceRef
}

// Terminator returns the block's terminating operation. It panics if the
// block is empty or its last operation is not a terminator, since both
// violate the BasicBlock invariant and indicate a bug in function
// lowering rather than a condition callers should handle.
func (b *BasicBlock) Terminator() *Operation {
	if len(b.Operations) == 0 {
		panic("mir: empty basic block has no terminator")
	}
	last := &b.Operations[len(b.Operations)-1]
	if !last.IsTerminator() {
		panic("mir: basic block does not end in a terminating operation")
	}
	return last
}

// Validate reports whether b satisfies the BasicBlock invariant: it is
// non-empty, its last operation is a terminator, and no earlier operation
// is a terminator.
func (b *BasicBlock) Validate() bool {
	if len(b.Operations) == 0 {
		return false
	}
	for _, op := range b.Operations[:len(b.Operations)-1] {
		if op.IsTerminator() {
			return false
		}
	}
	return b.Operations[len(b.Operations)-1].IsTerminator()
}
