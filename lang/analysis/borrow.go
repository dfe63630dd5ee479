package analysis

import (
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Point identifies one operation within a function: the block and the
// index of the operation inside it.
type Point struct {
	Block mir.BlockID
	Index int
}

// Edge is one control-flow edge between two points, the unit the
// Polonius-style solver reasons over (§4.8.5).
type Edge struct {
	From, To Point
}

// Loan is a reference value issued by taking the address of a local
// variable. Region tracking and the solver proper are not implemented;
// this records where a loan originates so a future solver has
// something to consume.
type Loan struct {
	Local string
	Src   token.SourceRef
	At    Point
}

// ExtractEdges returns every intra- and inter-block control-flow edge
// of fn: successive operations within a block, plus each terminator's
// edges to its target blocks' first operation.
func ExtractEdges(fn *mir.Function) []Edge {
	var edges []Edge
	for id, b := range fn.Blocks {
		for i := range b.Operations {
			if i+1 < len(b.Operations) {
				edges = append(edges, Edge{From: Point{id, i}, To: Point{id, i + 1}})
			}
		}
		if len(b.Operations) == 0 {
			continue
		}
		last := len(b.Operations) - 1
		for _, target := range successors(&b.Operations[last]) {
			if tgt := fn.Blocks[target]; tgt != nil && len(tgt.Operations) > 0 {
				edges = append(edges, Edge{From: Point{id, last}, To: Point{target, 0}})
			}
		}
	}
	return edges
}

// ExtractLoans scans fn for address-of-local values: an OperandLocalAddr
// flowing into an operation as a plain value rather than being
// immediately dereferenced by an OpLoad at that same operand slot (i.e.
// "&x" stored, passed, or returned, per §4.8.5 "loans created at &x").
func ExtractLoans(fn *mir.Function) []Loan {
	var loans []Loan
	for id, b := range fn.Blocks {
		for i, op := range b.Operations {
			if op.Kind == mir.OpLoad {
				continue // the address here is dereferenced, not captured as a loan
			}
			for j, operand := range op.Operands {
				if op.Kind == mir.OpStore && j == 0 {
					continue // the store's destination is written through, not captured
				}
				if operand.Kind == mir.OperandLocalAddr {
					loans = append(loans, Loan{
						Local: operand.LocalName,
						Src:   op.Src,
						At:    Point{id, i},
					})
				}
			}
		}
	}
	return loans
}

// Borrow runs the fixed-interface borrow check of §4.8.5: it builds the
// control-flow edge list and loan set described there but the
// Polonius-style liveness/region solver that would flag invalidated
// loans is not implemented, so it always reports no violations. The
// extraction stays available for a future solver to consume.
func Borrow(fn *mir.Function, diags *diag.Diagnostics) {
	_ = ExtractEdges(fn)
	_ = ExtractLoans(fn)
}
