package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Printer renders Diagnostics to an io.Writer in the format described by
// spec §6: "Error: <headline>", then for each message, four-space
// indented source context with line numbers, an arrow under the
// offending column, and the wrapped, indented prose.
type Printer struct {
	Out      io.Writer
	Files    *token.FileTable
	NoColor  bool
}

// NewPrinter returns a Printer writing to out, honoring cfg for color.
func NewPrinter(out io.Writer, files *token.FileTable, cfg PrinterConfig) *Printer {
	return &Printer{Out: out, Files: files, NoColor: cfg.NoColor}
}

// Print renders every error in d, in order.
func (p *Printer) Print(d *Diagnostics) {
	for _, e := range d.All() {
		p.printError(e)
	}
}

func (p *Printer) printError(e *Error) {
	fmt.Fprintf(p.Out, "Error: %s\n", e.Headline)
	for _, msg := range e.Messages {
		p.printMessage(msg)
	}
}

func (p *Printer) printMessage(msg *Message) {
	line := msg.Src.Line
	column := msg.Src.Column
	for _, lt := range msg.Context {
		fmt.Fprintf(p.Out, "%4d: %s", lt.Line, lt.Text)
		if len(lt.Text) == 0 || lt.Text[len(lt.Text)-1] != '\n' {
			fmt.Fprintln(p.Out)
		}
		if lt.Line != line {
			continue
		}
		drawArrow(p.Out, column+5)
		if column < 40 {
			wrapped := wrapText(80-column, msg.Prose)
			fmt.Fprintln(p.Out, indentText(column+5, wrapped))
		} else {
			wrapped := wrapText(column, msg.Prose)
			fmt.Fprintln(p.Out, indentText(5, wrapped))
		}
	}
}

func padString(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func drawArrow(w io.Writer, column int) {
	prefix := padString(column)
	fmt.Fprintln(w, prefix+"^")
	fmt.Fprintln(w, prefix+"|")
}

// wrapText inserts a newline in place of the first whitespace character
// once the running line length exceeds maxWidth, mirroring the original
// word-wrap: non-whitespace is never split, only replaced whitespace
// resets the counter.
func wrapText(maxWidth int, input string) string {
	var wrapped strings.Builder
	lineLen := 0
	for _, c := range input {
		lineLen++
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if lineLen > maxWidth {
				wrapped.WriteByte('\n')
				lineLen = 0
				continue
			}
		}
		wrapped.WriteRune(c)
	}
	return wrapped.String()
}

func indentText(indent int, input string) string {
	pad := padString(indent)
	var out strings.Builder
	out.WriteString(pad)
	for _, c := range input {
		out.WriteRune(c)
		if c == '\n' {
			out.WriteString(pad)
		}
	}
	return out.String()
}
