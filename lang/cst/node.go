// Package cst defines the concrete syntax tree: a closed, tagged-variant
// tree where interior nodes carry a production label and leaves are
// terminals with verbatim text, per spec §3/§9. Every node is uniquely
// owned by its parent (no shared sub-trees).
package cst

import "github.com/jlang-gyoji/gyoji/lang/token"

// Node is implemented by every CST production and by Terminal (leaves).
// It deliberately does not implement fmt.Formatter the way the teacher's
// ast.Node does; printing is the job of package format.
type Node interface {
	// SourceRef returns the range of source text this node spans.
	SourceRef() token.SourceRef
	// Children returns this node's direct syntax children, in source
	// order. Whitespace and comment tokens never appear here — the
	// parser always discards them (see Terminal) — package format
	// reinserts them as trivia by cross-referencing the token stream a
	// tree was parsed from.
	Children() []Node
	// Production names the grammar production this node represents
	// ("Terminal" for leaves).
	Production() string
}

// Terminal is a leaf node: a single token participating in the grammar
// (as opposed to whitespace/comment tokens, which a CST built for
// parsing omits, but which a format-identity-oriented token stream
// still retains).
type Terminal struct {
	Kind token.Kind
	Text string
	Src  token.SourceRef
}

func (t *Terminal) SourceRef() token.SourceRef { return t.Src }
func (t *Terminal) Children() []Node           { return nil }
func (t *Terminal) Production() string         { return "Terminal" }

var _ Node = (*Terminal)(nil)
