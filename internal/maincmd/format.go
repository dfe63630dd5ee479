package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/format"
	"github.com/jlang-gyoji/gyoji/lang/pipeline"
	"github.com/jlang-gyoji/gyoji/lang/scanner"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// FormatIdentity implements the format-identity command (spec.md §6):
// reconstruct each file's bytes verbatim from its token stream.
func (c *Cmd) FormatIdentity(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return FormatIdentityFiles(ctx, stdio, args...)
}

// FormatIdentityFiles is the format-identity driver. A file that fails
// to tokenize still has whatever was scanned emitted, matching
// tokenize's own "print what we have, then report the error" behavior.
func FormatIdentityFiles(ctx context.Context, stdio mainer.Stdio, paths ...string) error {
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
		fmt.Fprint(stdio.Stdout, format.Identity(ts))
		if lexErr != nil {
			printError(stdio, lexErr)
			if firstErr == nil {
				firstErr = lexErr
			}
		}
	}
	return firstErr
}

// FormatTree implements the format-tree command (spec.md §6): print the
// parsed CST as XML, trivia interleaved.
func (c *Cmd) FormatTree(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return FormatTreeFiles(ctx, stdio, args...)
}

// FormatTreeFiles is the format-tree driver. It runs a full Session the
// same way dump-namespaces does (internal/maincmd/namespaces.go), so
// that identifier-bearing terminals can be attributed a fully-qualified
// name from the resolved namespace tree (spec.md §6's fq attribute),
// then prints format.Tree's XML rendering over the Session's own parsed
// tree and token stream.
func FormatTreeFiles(ctx context.Context, stdio mainer.Stdio, paths ...string) error {
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

		s := pipeline.NewSession(files)
		lexErr := s.Compile(id, src)

		names := s.IdentifierFQNames()
		resolve := func(t *cst.Terminal) (string, bool) {
			fq, ok := names[t.Src]
			return fq, ok
		}

		if err := format.Tree(stdio.Stdout, s.Tree, s.Tokens, resolve); err != nil {
			printError(stdio, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if lexErr != nil {
			printError(stdio, lexErr)
			if firstErr == nil {
				firstErr = lexErr
			}
		}
		if s.Diags.HasErrors() {
			printDiags(stdio, files, s.Diags)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: errors", path)
			}
		}
	}
	return firstErr
}

func printDiags(stdio mainer.Stdio, files *token.FileTable, diags *diag.Diagnostics) {
	cfg, _ := diag.LoadPrinterConfig()
	diag.NewPrinter(stdio.Stderr, files, cfg).Print(diags)
}
