// Package scopetracker validates goto/label usage within one function
// body, per spec §3 "Scope Tracker state" and §4.6. Function lowering
// feeds it a linear trace of scope-push/pop, declaration, label, and
// goto events as it walks the CST; Finalise then checks label
// uniqueness, goto resolution, and that no goto skips the
// initialization of a variable still in scope at its target.
package scopetracker

import (
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// ScopeID names one lexical scope entered during function lowering.
type ScopeID uint32

// FunctionPoint identifies a position within a function's emitted MIR:
// a basic block plus an operation index within it.
type FunctionPoint struct {
	Block mir.BlockID
	Index int
}

type eventKind uint8

const (
	evScopePush eventKind = iota
	evScopePop
	evDeclare
	evLabelDefine
	evGoto
)

type event struct {
	kind  eventKind
	scope ScopeID
	name  string
	point FunctionPoint
	src   token.SourceRef
}

// ScopeTracker records the linear trace of scope events for one function
// and validates it on Finalise.
type ScopeTracker struct {
	diags *diag.Diagnostics

	events    []event
	stack     []ScopeID
	nextScope ScopeID
}

// New returns an empty tracker reporting to diags.
func New(diags *diag.Diagnostics) *ScopeTracker {
	return &ScopeTracker{diags: diags}
}

// PushScope enters a new lexical scope and returns its ID.
func (t *ScopeTracker) PushScope() ScopeID {
	id := t.nextScope
	t.nextScope++
	t.stack = append(t.stack, id)
	t.events = append(t.events, event{kind: evScopePush, scope: id})
	return id
}

// PopScope leaves the innermost lexical scope. It panics if called with
// no open scope, which is always a bug in the caller (function
// lowering), not a condition arising from user source.
func (t *ScopeTracker) PopScope() {
	if len(t.stack) == 0 {
		panic("scopetracker: PopScope called with no open scope")
	}
	id := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	t.events = append(t.events, event{kind: evScopePop, scope: id})
}

// Declare records a variable declaration in the innermost open scope.
func (t *ScopeTracker) Declare(name string, src token.SourceRef) {
	t.events = append(t.events, event{kind: evDeclare, scope: t.current(), name: name, src: src})
}

// LabelDefine records the definition of label name at point.
func (t *ScopeTracker) LabelDefine(name string, point FunctionPoint, src token.SourceRef) {
	t.events = append(t.events, event{kind: evLabelDefine, scope: t.current(), name: name, point: point, src: src})
}

// Goto records a goto statement referencing label name from point.
func (t *ScopeTracker) Goto(name string, point FunctionPoint, src token.SourceRef) {
	t.events = append(t.events, event{kind: evGoto, scope: t.current(), name: name, point: point, src: src})
}

func (t *ScopeTracker) current() ScopeID {
	if len(t.stack) == 0 {
		return 0
	}
	return t.stack[len(t.stack)-1]
}

// Finalise validates the recorded trace: label uniqueness, goto
// resolution, and the forward-jump-skips-initialization rule. It
// reports every violation to diags and returns false if any were found.
func (t *ScopeTracker) Finalise() bool {
	ok := true

	labelPos := map[string]int{}
	for i, ev := range t.events {
		if ev.kind != evLabelDefine {
			continue
		}
		if _, dup := labelPos[ev.name]; dup {
			t.diags.AddSimple(ev.src, "DuplicateLabel", "duplicate label: "+ev.name)
			ok = false
			continue
		}
		labelPos[ev.name] = i
	}

	scopeSpan := t.scopeSpans()

	for gotoPos, ev := range t.events {
		if ev.kind != evGoto {
			continue
		}
		labelIdx, found := labelPos[ev.name]
		if !found {
			t.diags.AddSimple(ev.src, "UndefinedLabel", "undefined label: "+ev.name)
			ok = false
			continue
		}

		if !t.checkJump(gotoPos, labelIdx, scopeSpan) {
			ok = false
		}
	}

	return ok
}

type span struct{ start, end int } // [start, end): positions the scope is open

func (t *ScopeTracker) scopeSpans() map[ScopeID]span {
	open := map[ScopeID]int{}
	spans := map[ScopeID]span{}
	for i, ev := range t.events {
		switch ev.kind {
		case evScopePush:
			open[ev.scope] = i
		case evScopePop:
			spans[ev.scope] = span{start: open[ev.scope], end: i}
		}
	}
	return spans
}

func openAt(spans map[ScopeID]span, pos int) map[ScopeID]bool {
	out := map[ScopeID]bool{}
	for id, sp := range spans {
		if sp.start <= pos && pos < sp.end {
			out[id] = true
		}
	}
	return out
}

// checkJump applies the rule from spec §4.6 points 3 and 4.
//
// Forward jump (point 3): any Declare strictly between the goto and the
// label, in a scope still open at the label, never runs; the jump
// skipped it outright, regardless of whether that scope was already
// open back at the goto.
//
// Backward jump (point 4): re-executing earlier code is generally safe,
// since forward execution will reach any intervening declarations
// naturally. The exception is a scope open at the label but already
// closed by the time of the goto: jumping back re-enters that scope
// without running the declarations between its start and the label.
func (t *ScopeTracker) checkJump(gotoPos, labelPos int, spans map[ScopeID]span) bool {
	if gotoPos < labelPos {
		ok := true
		for i := gotoPos + 1; i < labelPos; i++ {
			ev := t.events[i]
			if ev.kind != evDeclare {
				continue
			}
			if sp, has := spans[ev.scope]; has && sp.end <= labelPos {
				continue // this declare's scope already closed before the label
			}
			t.reportSkip(gotoPos, labelPos, ev)
			ok = false
		}
		return ok
	}

	atGoto := openAt(spans, gotoPos)
	atLabel := openAt(spans, labelPos)

	ok := true
	for id := range atLabel {
		if atGoto[id] {
			continue // already open at the source, not (re-)entered by this jump
		}
		sp := spans[id]
		for i := sp.start; i < labelPos; i++ {
			ev := t.events[i]
			if ev.kind != evDeclare || ev.scope != id {
				continue
			}
			t.reportSkip(gotoPos, labelPos, ev)
			ok = false
		}
	}
	return ok
}

func (t *ScopeTracker) reportSkip(gotoPos, labelPos int, declare event) {
	err := diag.NewError("goto skips initialization of " + declare.name).
		AddMessage(t.events[gotoPos].src, "goto here").
		AddMessage(t.events[labelPos].src, "label defined here").
		AddMessage(declare.src, "skips initialization of "+declare.name+" declared here")
	t.diags.Add(err)
}
