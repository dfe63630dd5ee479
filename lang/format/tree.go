package format

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// FQResolver maps an identifier-bearing terminal to its fully qualified
// name, when one is known (typically backed by a resolved
// namespace.NamespaceContext lookup). Tree omits the fq attribute
// entirely when resolve is nil or returns ok=false.
type FQResolver func(t *cst.Terminal) (fq string, ok bool)

// Tree writes root as the XML shape format-tree emits: one
// <node type='K'> element per CST production, terminals as self-closed
// <node type='Terminal' value='…' lineno='…'/> elements (plus fq='…'
// when resolve identifies one), and the whitespace/comment tokens the
// parser discarded reinserted as <whitespace>, <comment-single-line>,
// and <comment-multi-line> trivia elements immediately before the
// terminal that follows them in source order.
//
// tokens must be the stream root was parsed from — Tree walks it
// alongside the CST, matching each Terminal back to its source token by
// SourceRef to recover the trivia the parser skipped over. The CST
// itself never carries that trivia as children (see cst.Node); this is
// the one place it's stitched back in.
func Tree(w io.Writer, root cst.Node, tokens *token.TokenStream, resolve FQResolver) error {
	p := &treePrinter{w: w, all: tokens.All(), resolve: resolve}
	cst.Walk(p, root)
	p.flushTrailingTrivia()
	return p.err
}

type treePrinter struct {
	w       io.Writer
	all     []token.Token
	cursor  int
	resolve FQResolver
	err     error
}

func (p *treePrinter) Visit(n cst.Node, dir cst.VisitDirection) cst.Visitor {
	if p.err != nil {
		return nil
	}
	if dir == cst.VisitExit {
		p.printf("</node>\n")
		return nil
	}

	if term, ok := n.(*cst.Terminal); ok {
		p.emitLeadingTrivia(term.Src)
		p.emitTerminal(term)
		return nil
	}

	p.printf("<node type=%s>\n", xmlAttr(n.Production()))
	return p
}

func (p *treePrinter) emitTerminal(t *cst.Terminal) {
	attrs := fmt.Sprintf(" value=%s lineno=%s", xmlAttr(t.Text), xmlAttr(fmt.Sprintf("%d", t.Src.Line)))
	if p.resolve != nil {
		if fq, ok := p.resolve(t); ok {
			attrs += fmt.Sprintf(" fq=%s", xmlAttr(fq))
		}
	}
	p.printf("<node type='Terminal'%s/>\n", attrs)
	p.advancePast(t.Src)
}

// emitLeadingTrivia writes every non-syntax token between the cursor and
// the token matching target, leaving the cursor positioned on target
// itself for advancePast to consume.
func (p *treePrinter) emitLeadingTrivia(target token.SourceRef) {
	for p.cursor < len(p.all) && p.all[p.cursor].Src != target {
		p.emitTrivia(p.all[p.cursor])
		p.cursor++
	}
}

// flushTrailingTrivia emits whatever non-syntax tokens remain after the
// last terminal (e.g. trailing whitespace before EOF).
func (p *treePrinter) flushTrailingTrivia() {
	for p.cursor < len(p.all) {
		p.emitTrivia(p.all[p.cursor])
		p.cursor++
	}
}

func (p *treePrinter) advancePast(target token.SourceRef) {
	if p.cursor < len(p.all) && p.all[p.cursor].Src == target {
		p.cursor++
	}
}

func (p *treePrinter) emitTrivia(t token.Token) {
	tag, ok := triviaTag(t.Kind)
	if !ok {
		return
	}
	p.printf("<%s><![CDATA[%s]]></%s>\n", tag, cdataEscape(t.Text), tag)
}

func triviaTag(k token.Kind) (string, bool) {
	switch k {
	case token.WHITESPACE:
		return "whitespace", true
	case token.COMMENT_SINGLE:
		return "comment-single-line", true
	case token.COMMENT_MULTI:
		return "comment-multi-line", true
	default:
		return "", false
	}
}

func (p *treePrinter) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// cdataEscape splits on "]]>", the one byte sequence a CDATA section
// cannot contain, by closing and reopening the section around it.
func cdataEscape(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

// xmlAttr renders s as a single-quoted, XML-escaped attribute value.
func xmlAttr(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('\'')
	_ = xml.EscapeText(&buf, []byte(s))
	buf.WriteByte('\'')
	return buf.String()
}
