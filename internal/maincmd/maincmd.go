// Package maincmd implements the CLI dispatch layer: a Cmd struct whose
// methods are discovered by reflection and mapped to subcommand names,
// matching spec.md §6's command table. Grounded on the teacher's
// internal/maincmd package (same Cmd shape, same mainer-reflection
// dispatch), adapted to J's five commands instead of the teacher's
// three.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "gyojic"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler front-end and middle-end for the J programming language.

The <command> can be one of:
       tokenize                  Scan the file(s) and print one token per
                                  line.
       format-identity            Round-trip the file(s) back to stdout
                                  byte-for-byte.
       format-tree                Print the parsed concrete syntax tree
                                  as XML, including whitespace and
                                  comments.
       dump-namespaces            Print the resolved tree of namespaces
                                  and symbols.
       compile                    Run the full pipeline and write a MIR
                                  text dump to the -o output.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <compile> command are:
       -o --output <path>        Write the MIR dump to this path
                                  (required).
       -O <n>                    Optimization level (accepted, unused:
                                  this repo never reaches code
                                  generation).
       --verbose                 Print one line per compiled file to
                                  stderr.

More information on the J language repository:
       https://github.com/jlang-gyoji/gyoji
`, binName)
)

// Cmd is the CLI's top-level state: global flags plus whichever
// per-command flags the invoked subcommand consults. Flags unrelated to
// the chosen command are rejected by Validate, the same way the
// teacher's WithComments flag is scoped to parse/resolve only.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Output  string `flag:"o,output"`
	OptOpt  string `flag:"O"`
	Verbose bool   `flag:"verbose"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	if cmdName == "compile" {
		if c.Output == "" {
			return errors.New("compile: -o/--output is required")
		}
	} else if c.Output != "" || c.OptOpt != "" || c.Verbose {
		return fmt.Errorf("%s: invalid flag for this command", cmdName)
	}

	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds discovers every Cmd method matching the
// func(context.Context, mainer.Stdio, []string) error shape and maps it
// by lowercased, hyphenated command name. Command names with a hyphen
// (format-identity, format-tree, dump-namespaces) are registered
// explicitly below since Go method names can't contain one.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		fn := vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
		cmds[commandName(m.Name)] = fn
	}
	return cmds
}

// commandName maps a Cmd method name to its hyphenated CLI command
// name, covering the few commands whose name isn't just the lowercased
// method name.
func commandName(method string) string {
	switch method {
	case "FormatIdentity":
		return "format-identity"
	case "FormatTree":
		return "format-tree"
	case "DumpNamespaces":
		return "dump-namespaces"
	default:
		return strings.ToLower(method)
	}
}
