// Package pipeline implements the single-session orchestration of §5:
// one compilation, one owner of every intermediate structure, stages
// run strictly in order on one goroutine with no suspension points.
package pipeline

import (
	gotoken "go/token"

	goscanner "go/scanner"

	"github.com/jlang-gyoji/gyoji/lang/analysis"
	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/lowering"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/parser"
	"github.com/jlang-gyoji/gyoji/lang/scanner"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// Session owns every structure one compilation produces: the token
// stream, the diagnostics sink, the namespace tree, the type graph, and
// the lowered MIR. Ownership is strictly hierarchical (§5) and nothing
// here is safe for concurrent use — Compile runs tokenize, parse, type
// lowering, function lowering, and analysis strictly in that order on
// the calling goroutine.
type Session struct {
	Files *token.FileTable

	Tokens *token.TokenStream
	Diags  *diag.Diagnostics
	NS     *namespace.NamespaceContext
	Types  *typegraph.Graph
	MIR    *mir.MIR

	Tree *cst.TranslationUnit
}

// NewSession returns a Session whose diagnostics attribute source
// positions against files. files may be shared across several Sessions
// compiled one after another, so that diagnostics from unrelated
// sessions still print correct filenames; nothing else is shared — a
// new type graph, namespace tree, and MIR are built fresh here, since
// the core does not specify cross-file linking (spec.md §1 scopes a
// module system beyond nested namespaces out).
func NewSession(files *token.FileTable) *Session {
	types := typegraph.New()
	return &Session{
		Files: files,
		Types: types,
		MIR:   mir.New(types),
	}
}

// Compile runs every stage over one file's bytes. It always runs
// function lowering and analysis even when type lowering reported
// errors, so that Diagnostics accumulates everything it can in one
// pass (§5 "record and continue"); the only stage actually skipped on
// error is code generation, which this repo never implements regardless
// (spec.md §1 scopes it to an external collaborator). Compile returns
// the lexical error from tokenizing, if any, purely as a convenience
// for callers that want a single early-exit check — the same failure is
// already recorded in Diags.
func (s *Session) Compile(file token.FileID, src []byte) error {
	tokens, lexErr := scanner.Tokenize(file, src)
	s.Tokens = tokens
	s.Diags = diag.New(tokens)
	recordLexErrors(s.Diags, file, lexErr)

	s.Tree = parser.Parse(tokens, s.Diags)

	s.NS = namespace.New(s.Diags)
	lowering.NewTypeLowerer(s.Types, s.NS, s.Diags).LowerFile(s.Tree)

	lowerFunctionBodies(s.Tree, s.NS, s.Types, s.MIR, s.Diags)

	analysis.Run(s.MIR, s.Diags)

	return lexErr
}

// recordLexErrors folds the scanner's go/scanner.ErrorList into Diags,
// so a lexical failure surfaces through the same sink every other
// stage reports to instead of a side channel only Compile's caller
// sees.
func recordLexErrors(diags *diag.Diagnostics, file token.FileID, err error) {
	list, ok := err.(goscanner.ErrorList)
	if !ok {
		return
	}
	for _, e := range list {
		diags.AddSimple(lexErrorRef(file, e.Pos), "LexError", e.Msg)
	}
}

func lexErrorRef(file token.FileID, pos gotoken.Position) token.SourceRef {
	return token.SourceRef{File: file, Line: pos.Line, Column: pos.Column}
}

// lowerFunctionBodies walks tu the same way TypeLowerer's complete pass
// does — entering and leaving NamespaceDefinition scopes in lockstep so
// NS.Current() matches the scope each FunctionDefinition's signature was
// resolved in — but lowers bodies instead of signatures, registering
// each resulting mir.Function under its namespace-qualified name.
func lowerFunctionBodies(tu *cst.TranslationUnit, ns *namespace.NamespaceContext, graph *typegraph.Graph, m *mir.MIR, diags *diag.Diagnostics) {
	lowerStatements(tu.Statements, ns, graph, m, diags)
}

func lowerStatements(stmts []cst.FileStatement, ns *namespace.NamespaceContext, graph *typegraph.Graph, m *mir.MIR, diags *diag.Diagnostics) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *cst.FunctionDefinition:
			lowerOneFunction(n, ns, graph, m, diags)

		case *cst.NamespaceDefinition:
			ns.EnterNamed(n.Name.Text)
			lowerStatements(n.Statements, ns, graph, m, diags)
			ns.PopScope()
		}
	}
}

func lowerOneFunction(n *cst.FunctionDefinition, ns *namespace.NamespaceContext, graph *typegraph.Graph, m *mir.MIR, diags *diag.Diagnostics) {
	sym, ok := ns.Current().Local(n.Name.Text)
	if !ok || sym.Type == nil {
		diags.AddInternal(n.Src, "function definition has no resolved signature")
		return
	}

	sig := sym.Type
	params := make([]mir.Param, len(n.Params))
	sigParams := sig.FuncParams()
	for i, p := range n.Params {
		t := graph.Primitive(typegraph.VoidKind)
		if i < len(sigParams) {
			t = sigParams[i]
		}
		params[i] = mir.Param{Name: p.Name.Text, Type: t}
	}

	fn := lowering.NewFuncLowerer(graph, ns, diags).LowerFunction(
		ns.Current().Qualify(n.Name.Text), params, sig.FuncReturn(), n.Body, n.Src,
	)
	m.DefineFunction(fn)
}
