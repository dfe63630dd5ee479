package maincmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mna/mainer"
	"golang.org/x/exp/slices"

	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/pipeline"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// DumpNamespaces implements the dump-namespaces command (spec.md §6):
// compile each file and print the resulting tree of namespaces and
// symbols.
func (c *Cmd) DumpNamespaces(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return DumpNamespacesFiles(ctx, stdio, args...)
}

// DumpNamespacesFiles is the dump-namespaces driver: one Session per
// file (see pipeline.NewSession's doc comment on why this repo doesn't
// share a namespace tree across files), running the whole
// Session.Compile pipeline and printing its resolved scope tree, then
// every diagnostic any stage raised.
func DumpNamespacesFiles(ctx context.Context, stdio mainer.Stdio, paths ...string) error {
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
		_ = s.Compile(id, src)

		fmt.Fprintf(stdio.Stdout, "%s:\n", path)
		printScope(stdio.Stdout, s.NS.Root, 0)

		if s.Diags.HasErrors() {
			printDiags(stdio, files, s.Diags)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: errors", path)
			}
		}
	}
	return firstErr
}

// printScope writes scope and its descendants depth-first, symbols
// before child namespaces, both sorted by name for deterministic
// output across runs.
func printScope(w io.Writer, scope *namespace.Scope, depth int) {
	indent := strings.Repeat("  ", depth)
	name := scope.Name
	if name == "" {
		name = "<root>"
	}
	fmt.Fprintf(w, "%snamespace %s\n", indent, name)

	syms := scope.Symbols()
	slices.SortFunc(syms, func(a, b *namespace.Symbol) int { return strings.Compare(a.Name, b.Name) })
	for _, sym := range syms {
		fmt.Fprintf(w, "%s  %s %s\n", indent, sym.Kind, sym.Name)
	}

	children := append([]*namespace.Scope(nil), scope.Children...)
	slices.SortFunc(children, func(a, b *namespace.Scope) int { return strings.Compare(a.Name, b.Name) })
	for _, child := range children {
		printScope(w, child, depth+1)
	}
}
