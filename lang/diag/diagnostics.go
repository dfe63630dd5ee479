// Package diag implements the diagnostics subsystem: an append-only sink
// of structured Errors, each carrying an ordered list of Messages that
// are enriched with surrounding source context at insertion time.
package diag

import "github.com/jlang-gyoji/gyoji/lang/token"

// Message is a single point of a diagnostic: a source reference, a
// prose description, and the lines of source surrounding it (filled in
// when the owning Error is added to a Diagnostics sink).
type Message struct {
	Src     token.SourceRef
	Prose   string
	Context []token.LineText
}

// NewMessage creates a message with no context attached yet.
func NewMessage(src token.SourceRef, prose string) *Message {
	return &Message{Src: src, Prose: prose}
}

// Error is an ordered group of related messages under one headline, e.g.
// "return value of type f32 but function is declared to return i32"
// with messages pointing at the offending return and at the function
// signature.
type Error struct {
	Headline string
	Messages []*Message
}

// NewError creates an error with the given headline and no messages.
func NewError(headline string) *Error {
	return &Error{Headline: headline}
}

// AddMessage appends a message to the error. Context is not filled in
// until the error is added to a Diagnostics sink.
func (e *Error) AddMessage(src token.SourceRef, prose string) *Error {
	e.Messages = append(e.Messages, NewMessage(src, prose))
	return e
}

// Diagnostics is the append-only sink of Errors produced across every
// stage of the pipeline. Order of insertion is preserved; nothing is
// ever removed or reordered.
type Diagnostics struct {
	errors []*Error
	tokens *token.TokenStream
}

// New returns an empty Diagnostics sink that draws its source-line
// context from ts.
func New(ts *token.TokenStream) *Diagnostics {
	return &Diagnostics{tokens: ts}
}

// Add appends err to the sink, enriching each of its messages with
// source context drawn from the token stream: the two lines before the
// message's line, that line, and the line after.
func (d *Diagnostics) Add(err *Error) {
	for _, msg := range err.Messages {
		if d.tokens != nil {
			msg.Context = d.tokens.Context(msg.Src.Line-2, msg.Src.Line+1)
		}
	}
	d.errors = append(d.errors, err)
}

// AddSimple is a convenience wrapper that builds a one-message Error and
// adds it.
func (d *Diagnostics) AddSimple(src token.SourceRef, headline, prose string) {
	d.Add(NewError(headline).AddMessage(src, prose))
}

// AddInternal records a "compiler bug" diagnostic: an invariant from the
// data model was violated. These point at the offending location and
// ask the user to report the issue, per the Internal taxonomy bucket.
func (d *Diagnostics) AddInternal(src token.SourceRef, what string) {
	d.AddSimple(src, "compiler bug, please report this", what)
}

// Size returns the number of errors recorded.
func (d *Diagnostics) Size() int { return len(d.errors) }

// Get returns the i'th error, in insertion order.
func (d *Diagnostics) Get(i int) *Error { return d.errors[i] }

// All returns every recorded error, in insertion order. The slice must
// not be mutated by the caller.
func (d *Diagnostics) All() []*Error { return d.errors }

// HasErrors reports whether any error has been recorded.
func (d *Diagnostics) HasErrors() bool { return len(d.errors) > 0 }
