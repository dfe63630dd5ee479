// Package parser implements the hand-written recursive-descent parser:
// a token.TokenStream to a lang/cst.TranslationUnit. Grounded on the
// teacher's lang/parser/{parser,chunk,stmt,expr}.go driver shape -- a
// position cursor over a pre-scanned token sequence, an expect() helper
// that consumes an expected token or panics with a sentinel error, and
// recovery from that panic at a statement/declaration boundary that
// synthesizes a placeholder node and resynchronizes to a safe point
// (spec's record-and-continue diagnostic recovery). Syntax errors are
// reported directly to a lang/diag.Diagnostics sink, the same one the
// later lowering stages write to, rather than a separate error channel.
package parser

import (
	"strconv"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// errPanicMode is the sentinel recovered at a statement or top-level
// declaration boundary to synthesize a Bad* node and keep parsing.
var errPanicMode = strError("parser: panic mode")

type strError string

func (e strError) Error() string { return string(e) }

// Parser walks a token.TokenStream, skipping whitespace and comment
// tokens, and builds a cst.TranslationUnit.
type Parser struct {
	stream *token.TokenStream
	diags  *diag.Diagnostics

	idx int
	tok token.Token
}

// New returns a Parser positioned at the first significant token of
// stream. Syntax errors encountered while parsing are recorded to diags.
func New(stream *token.TokenStream, diags *diag.Diagnostics) *Parser {
	p := &Parser{stream: stream, diags: diags, idx: -1}
	p.advance()
	return p
}

// Parse builds a CST TranslationUnit from stream. Parsing never fails
// outright: it always returns a (possibly partial) tree, and callers
// should consult diags.HasErrors() before handing the result to later
// stages.
func Parse(stream *token.TokenStream, diags *diag.Diagnostics) *cst.TranslationUnit {
	return New(stream, diags).parseTranslationUnit()
}

// nonSyntax reports whether a token kind never participates in the
// grammar and should be skipped over by advance/peekKind.
func nonSyntax(k token.Kind) bool {
	switch k {
	case token.WHITESPACE, token.COMMENT_SINGLE, token.COMMENT_MULTI, token.FILE_METADATA:
		return true
	default:
		return false
	}
}

func (p *Parser) advance() {
	for {
		p.idx++
		if p.idx >= p.stream.Len() {
			p.tok = token.Token{Kind: token.EOF}
			return
		}
		t := p.stream.At(p.idx)
		if !nonSyntax(t.Kind) {
			p.tok = t
			return
		}
	}
}

// peekKind returns the kind of the next significant token after the
// current one, without consuming anything. Used for the one-token
// lookahead that disambiguates a label statement ("name:") from an
// expression statement starting with an identifier.
func (p *Parser) peekKind() token.Kind {
	for i := p.idx + 1; i < p.stream.Len(); i++ {
		t := p.stream.At(i)
		if !nonSyntax(t.Kind) {
			return t.Kind
		}
	}
	return token.EOF
}

func (p *Parser) at(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

// expect consumes the current token and returns it as a Terminal if its
// kind is one of kinds; otherwise it records a syntax error and panics
// with errPanicMode, to be recovered at the nearest statement or
// declaration boundary.
func (p *Parser) expect(kinds ...token.Kind) *cst.Terminal {
	cur := p.tok
	for _, k := range kinds {
		if cur.Kind == k {
			p.advance()
			return &cst.Terminal{Kind: cur.Kind, Text: cur.Text, Src: cur.Src}
		}
	}
	p.errorExpected(kinds)
	panic(errPanicMode)
}

func (p *Parser) errorExpected(kinds []token.Kind) {
	var msg strings.Builder
	msg.WriteString("expected ")
	if len(kinds) > 1 {
		msg.WriteString("one of ")
	}
	for i, k := range kinds {
		if i > 0 {
			msg.WriteString(", ")
		}
		msg.WriteString(k.GoString())
	}
	msg.WriteString(", found ")
	msg.WriteString(p.tok.Kind.GoString())
	if p.tok.Text != "" {
		msg.WriteString(" ")
		msg.WriteString(strconv.Quote(p.tok.Text))
	}
	p.diags.AddSimple(p.tok.Src, "SyntaxError", msg.String())
}
