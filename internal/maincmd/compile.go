package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/jlang-gyoji/gyoji/lang/lowering"
	"github.com/jlang-gyoji/gyoji/lang/pipeline"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Compile implements the compile command (spec.md §6): run every
// pipeline stage and write a MIR text dump to -o, standing in for the
// "object" a real code generator would otherwise produce (code
// generation is an external collaborator this repo never implements,
// spec.md §1).
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(ctx, stdio, c.Output, c.Verbose, args...)
}

// CompileFiles is the compile command's driver: one Session per input
// file, each function-lowered and analyzed MIR appended to a single
// output file in argument order.
func CompileFiles(ctx context.Context, stdio mainer.Stdio, output string, verbose bool, paths ...string) error {
	out, err := os.Create(output)
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", output, err))
	}
	defer out.Close()

	files := token.NewFileTable()
	dumper := lowering.NewDumper(out)

	var hadErrors bool
	for _, path := range paths {
		id, src, err := readFile(files, path)
		if err != nil {
			printError(stdio, err)
			hadErrors = true
			continue
		}

		if verbose {
			fmt.Fprintf(stdio.Stderr, "compiling %s\n", path)
		}

		s := pipeline.NewSession(files)
		_ = s.Compile(id, src)

		if s.Diags.HasErrors() {
			printDiags(stdio, files, s.Diags)
			hadErrors = true
			continue
		}

		if err := dumper.DumpProgram(s.MIR); err != nil {
			printError(stdio, fmt.Errorf("%s: %w", path, err))
			hadErrors = true
		}
	}

	if hadErrors {
		return fmt.Errorf("compilation failed")
	}
	return nil
}
