package pipeline

import (
	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// IdentifierFQNames returns the fully-qualified name of every
// identifier-bearing terminal this session's namespace tree can answer
// for, keyed by source position: declaration names
// (class/enum/enum-tag/typedef/function/namespace), unqualified type
// references, and unqualified expression identifiers. format-tree
// (spec.md §6) uses this to fill in each terminal's fq attribute.
//
// Only NamespaceDefinition changes scope in this grammar — class
// bodies, function signatures, and function bodies all resolve names
// against their enclosing namespace's scope (lang/lowering/typelower.go,
// lang/pipeline/session.go's lowerStatements) — so this walk only needs
// to track NS.Current() across NamespaceDefinition boundaries at the
// file-statement level; everything nested under one file statement
// resolves in that same fixed scope and is collected by one generic
// cst.Walk. Field and method names themselves are never namespace
// symbols (they live on the composite's typegraph.Type, not in a
// Scope), so they get no fq; nor do multi-segment qualified names
// ("a::b") or TypeSpecifierTemplate names, which this walk does not
// attempt to resolve.
func (s *Session) IdentifierFQNames() map[token.SourceRef]string {
	out := make(map[token.SourceRef]string)
	if s.Tree == nil || s.NS == nil {
		return out
	}
	collectFileStatements(s.Tree.Statements, s.NS, out)
	return out
}

func recordName(ns *namespace.NamespaceContext, name *cst.Terminal, out map[token.SourceRef]string) {
	if sym, ok := ns.Lookup(ns.Current(), name.Text); ok {
		out[name.Src] = sym.Scope.Qualify(sym.Name)
	}
}

// collectSubtree records every unqualified identifier and type-name
// reference under n, a subtree that cannot itself contain a
// NamespaceDefinition, using ns's current scope for every reference it
// finds.
func collectSubtree(n cst.Node, ns *namespace.NamespaceContext, out map[token.SourceRef]string) {
	if n == nil {
		return
	}
	cst.Walk(&identifierCollector{ns: ns, out: out}, n)
}

type identifierCollector struct {
	ns  *namespace.NamespaceContext
	out map[token.SourceRef]string
}

func (c *identifierCollector) Visit(n cst.Node, dir cst.VisitDirection) cst.Visitor {
	if dir == cst.VisitExit {
		return nil
	}
	switch t := n.(type) {
	case *cst.IdentExpr:
		if len(t.Path) == 1 {
			recordName(c.ns, t.Path[0], c.out)
		}
		return nil
	case *cst.TypeSpecifierSimple:
		if len(t.Path) == 1 {
			recordName(c.ns, t.Path[0], c.out)
		}
		return nil
	}
	return c
}

func collectFileStatements(stmts []cst.FileStatement, ns *namespace.NamespaceContext, out map[token.SourceRef]string) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *cst.ClassDeclaration:
			recordName(ns, n.Name, out)

		case *cst.ClassDefinition:
			recordName(ns, n.Name, out)
			for _, f := range n.Fields {
				collectSubtree(f.Type, ns, out)
			}
			for _, m := range n.Methods {
				for _, p := range m.Params {
					collectSubtree(p.Type, ns, out)
				}
				collectSubtree(m.Return, ns, out)
				collectSubtree(m.Body, ns, out)
			}

		case *cst.EnumDefinition:
			recordName(ns, n.Name, out)
			for _, v := range n.Values {
				recordName(ns, v.Name, out)
			}

		case *cst.TypeDefinition:
			recordName(ns, n.Name, out)
			collectSubtree(n.Aliased, ns, out)

		case *cst.FunctionDeclaration:
			recordName(ns, n.Name, out)
			for _, p := range n.Params {
				collectSubtree(p.Type, ns, out)
			}
			collectSubtree(n.Return, ns, out)

		case *cst.FunctionDefinition:
			recordName(ns, n.Name, out)
			for _, p := range n.Params {
				collectSubtree(p.Type, ns, out)
			}
			collectSubtree(n.Return, ns, out)
			collectSubtree(n.Body, ns, out)

		case *cst.NamespaceDefinition:
			recordName(ns, n.Name, out)
			ns.EnterNamed(n.Name.Text)
			collectFileStatements(n.Statements, ns, out)
			ns.PopScope()
		}
	}
}
