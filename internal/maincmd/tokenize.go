package maincmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mna/mainer"

	"github.com/jlang-gyoji/gyoji/lang/scanner"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Tokenize implements the tokenize command (spec.md §6): one token per
// line, "<line> <col> <kind> <text_escaped>".
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles is the tokenize command's free-function driver, kept
// separate from the Cmd method per the teacher's own split so tests and
// other entry points can call it without going through mainer.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, paths ...string) error {
	files := token.NewFileTable()
	var firstErr error
	for _, path := range paths {
		id, src, err := readFile(files, path)
		if err != nil {
			printError(stdio, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ts, lexErr := scanner.Tokenize(id, src)
		for _, tok := range ts.All() {
			fmt.Fprintf(stdio.Stdout, "%d %d %s %s\n", tok.Src.Line, tok.Src.Column, tok.Kind, strconv.Quote(tok.Text))
		}
		if lexErr != nil {
			printError(stdio, lexErr)
			if firstErr == nil {
				firstErr = lexErr
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return firstErr
}
