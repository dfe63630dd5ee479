// Package lowering implements the two-pass CST→type-graph walk (type
// lowering, spec §4.4) and the CST→MIR function body walk (function
// lowering, spec §4.5).
package lowering

import (
	"strconv"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// TypeLowerer walks one or more translation units in two passes: first
// registering every declared name (possibly incomplete), then resolving
// every type specifier and completing composites, per spec §4.4.
type TypeLowerer struct {
	Graph *typegraph.Graph
	NS    *namespace.NamespaceContext
	Diags *diag.Diagnostics

	// completed tracks composites this lowerer has already installed
	// fields/methods on, so a second full definition of the same name is
	// reported as a duplicate rather than silently overwritten.
	completed map[*typegraph.Type]bool
}

// NewTypeLowerer returns a lowerer writing into graph and ns, reporting
// to diags.
func NewTypeLowerer(graph *typegraph.Graph, ns *namespace.NamespaceContext, diags *diag.Diagnostics) *TypeLowerer {
	return &TypeLowerer{Graph: graph, NS: ns, Diags: diags, completed: make(map[*typegraph.Type]bool)}
}

// LowerFile runs both passes over one translation unit.
func (l *TypeLowerer) LowerFile(tu *cst.TranslationUnit) {
	l.declarePass(tu.Statements)
	l.completePass(tu.Statements)
}

// --- pass 1: declarations ---------------------------------------------

func (l *TypeLowerer) declarePass(stmts []cst.FileStatement) {
	for _, s := range stmts {
		l.declareOne(s)
	}
}

func (l *TypeLowerer) declareOne(s cst.FileStatement) {
	switch n := s.(type) {
	case *cst.ClassDeclaration:
		l.declareComposite(n.Name.Text, n.Src)

	case *cst.ClassDefinition:
		l.declareComposite(n.Name.Text, n.Src)

	case *cst.EnumDefinition:
		l.declareEnum(n)

	case *cst.TypeDefinition:
		l.declareSymbol(n.Name.Text, namespace.TypeName, n.Src)

	case *cst.FunctionDeclaration:
		l.declareSymbol(n.Name.Text, namespace.FunctionName, n.Src)

	case *cst.FunctionDefinition:
		l.declareSymbol(n.Name.Text, namespace.FunctionName, n.Src)

	case *cst.NamespaceDefinition:
		if _, err := l.NS.Current().Define(n.Name.Text, namespace.NamespaceName, n.Src); err != nil {
			if _, ok := asDuplicate(err); !ok {
				l.Diags.AddSimple(n.Src, "DuplicateSymbol", err.Error())
			}
		}
		l.NS.EnterNamed(n.Name.Text)
		l.declarePass(n.Statements)
		l.NS.PopScope()

	case *cst.UsingDirective:
		// resolved in the complete pass, once every namespace exists.
	}
}

func (l *TypeLowerer) declareSymbol(name string, kind namespace.SymbolKind, src token.SourceRef) *namespace.Symbol {
	sym, err := l.NS.Current().Define(name, kind, src)
	if err == nil {
		return sym
	}
	if d, ok := asDuplicate(err); ok {
		if d.Existing.Kind == kind {
			return d.Existing
		}
	}
	l.Diags.AddSimple(src, "DuplicateSymbol", err.Error())
	local, _ := l.NS.Current().Local(name)
	return local
}

func asDuplicate(err error) (*namespace.DuplicateSymbolError, bool) {
	d, ok := err.(*namespace.DuplicateSymbolError)
	return d, ok
}

func (l *TypeLowerer) declareComposite(name string, src token.SourceRef) *typegraph.Type {
	sym := l.declareSymbol(name, namespace.TypeName, src)
	if sym.Type == nil {
		sym.Type = l.Graph.DeclareComposite(l.NS.Current().Qualify(name), src)
	}
	return sym.Type
}

func (l *TypeLowerer) declareEnum(n *cst.EnumDefinition) {
	underlying := l.Graph.Primitive(typegraph.I32)
	var tags []typegraph.EnumTag
	var next int64
	for _, v := range n.Values {
		val := next
		if v.Value != nil {
			parsed, err := strconv.ParseInt(v.Value.Text, 0, 64)
			if err != nil {
				l.Diags.AddSimple(v.Src, "LiteralOutOfRange", "enum value is not a valid integer literal: "+v.Value.Text)
			} else {
				val = parsed
			}
		}
		tags = append(tags, typegraph.EnumTag{Name: v.Name.Text, Value: val})
		next = val + 1
	}
	sym := l.declareSymbol(n.Name.Text, namespace.TypeName, n.Src)
	if sym.Type == nil {
		sym.Type = l.Graph.DeclareEnum(l.NS.Current().Qualify(n.Name.Text), underlying, tags, n.Src)
	}
	for _, tag := range tags {
		l.declareSymbol(tag.Name, namespace.EnumTag, n.Src)
	}
}

// --- pass 2: completion -------------------------------------------------

func (l *TypeLowerer) completePass(stmts []cst.FileStatement) {
	for _, s := range stmts {
		l.completeOne(s)
	}
}

func (l *TypeLowerer) completeOne(s cst.FileStatement) {
	switch n := s.(type) {
	case *cst.ClassDefinition:
		l.completeClass(n)

	case *cst.TypeDefinition:
		sym, _ := l.NS.Current().Local(n.Name.Text)
		sym.Type = l.resolveTypeSpec(n.Aliased, n.Src)

	case *cst.FunctionDeclaration:
		l.completeFunctionSignature(n.Name.Text, n.Params, n.Return, n.Src)

	case *cst.FunctionDefinition:
		l.completeFunctionSignature(n.Name.Text, n.Params, n.Return, n.Src)

	case *cst.NamespaceDefinition:
		l.NS.EnterNamed(n.Name.Text)
		l.completePass(n.Statements)
		l.NS.PopScope()

	case *cst.UsingDirective:
		segs := make([]string, len(n.Path))
		for i, p := range n.Path {
			segs[i] = p.Text
		}
		target := l.NS.Qualified(l.NS.Current(), segs, n.Src)
		if target.Kind == namespace.NamespaceName {
			l.NS.Current().AddImport(target.Scope)
		}
	}
}

func (l *TypeLowerer) completeClass(n *cst.ClassDefinition) {
	sym, _ := l.NS.Current().Local(n.Name.Text)
	t := sym.Type
	if l.completed[t] {
		l.Diags.AddSimple(n.Src, "DuplicateSymbol", "class "+n.Name.Text+" is fully defined more than once")
		return
	}

	var fields []typegraph.Field
	for _, f := range n.Fields {
		fields = append(fields, typegraph.Field{
			Name: f.Name.Text,
			Type: l.resolveTypeSpec(f.Type, f.Src),
			Src:  f.Src,
		})
	}

	var methods []typegraph.Method
	for _, m := range n.Methods {
		params := make([]*typegraph.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = l.resolveTypeSpec(p.Type, p.Src)
		}
		ret := l.Graph.Primitive(typegraph.VoidKind)
		if m.Return != nil {
			ret = l.resolveTypeSpec(m.Return, m.Src)
		}
		methods = append(methods, typegraph.Method{Name: m.Name.Text, Params: params, Return: ret, Src: m.Src})
	}

	t.CompleteComposite(fields, methods)
	l.completed[t] = true
}

func (l *TypeLowerer) completeFunctionSignature(name string, params []*cst.Param, ret cst.TypeSpecifier, src token.SourceRef) {
	sym, _ := l.NS.Current().Local(name)
	paramTypes := make([]*typegraph.Type, len(params))
	for i, p := range params {
		paramTypes[i] = l.resolveTypeSpec(p.Type, p.Src)
	}
	retType := l.Graph.Primitive(typegraph.VoidKind)
	if ret != nil {
		retType = l.resolveTypeSpec(ret, src)
	}
	sym.Type = l.Graph.FunctionPointer(paramTypes, retType, src)
}

// resolveTypeSpec lowers a CST type specifier to its interned Type,
// recursively lowering any nested specifier and resolving named types
// through the namespace (spec §4.4 "recursively lowering any referenced
// type specifiers").
func (l *TypeLowerer) resolveTypeSpec(ts cst.TypeSpecifier, src token.SourceRef) *typegraph.Type {
	switch t := ts.(type) {
	case *cst.TypeSpecifierSimple:
		return l.resolveNamed(t, src)

	case *cst.TypeSpecifierTemplate:
		name := templateCanonicalName(t)
		if existing := l.Graph.Get(name); existing != nil {
			return existing
		}
		return l.Graph.DeclareComposite(name, src)

	case *cst.TypeSpecifierPointerTo:
		return l.Graph.PointerTo(l.resolveTypeSpec(t.Inner, src), src)

	case *cst.TypeSpecifierReferenceTo:
		return l.Graph.ReferenceTo(l.resolveTypeSpec(t.Inner, src), src)

	case *cst.TypeSpecifierArray:
		inner := l.resolveTypeSpec(t.Inner, src)
		n, err := strconv.Atoi(t.Size.Text)
		if err != nil {
			l.Diags.AddSimple(src, "LiteralOutOfRange", "array length is not a valid integer literal: "+t.Size.Text)
			n = 0
		}
		return l.Graph.ArrayOf(inner, n, src)

	case *cst.TypeSpecifierFunctionPointer:
		params := make([]*typegraph.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = l.resolveTypeSpec(p, src)
		}
		return l.Graph.FunctionPointer(params, l.resolveTypeSpec(t.Return, src), src)
	}
	return l.Graph.Primitive(typegraph.VoidKind)
}

func (l *TypeLowerer) resolveNamed(t *cst.TypeSpecifierSimple, src token.SourceRef) *typegraph.Type {
	name := t.Name()
	if direct := l.Graph.Get(name); direct != nil {
		return direct
	}

	var sym *namespace.Symbol
	if len(t.Path) == 1 {
		sym = l.NS.Resolve(l.NS.Current(), t.Path[0].Text, src)
	} else {
		segs := make([]string, len(t.Path))
		for i, p := range t.Path {
			segs[i] = p.Text
		}
		sym = l.NS.Qualified(l.NS.Current(), segs, src)
	}
	if sym != nil && sym.Type != nil {
		return sym.Type
	}
	// Undefined symbol; NS.Resolve/Qualified already reported it. Degrade
	// to void so downstream lowering can continue without a nil Type.
	return l.Graph.Primitive(typegraph.VoidKind)
}

func templateCanonicalName(t *cst.TypeSpecifierTemplate) string {
	var b strings.Builder
	b.WriteString(t.Name.Text)
	b.WriteString("<")
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(",")
		}
		if s, ok := a.(*cst.TypeSpecifierSimple); ok {
			b.WriteString(s.Name())
		} else {
			b.WriteString(a.Production())
		}
	}
	b.WriteString(">")
	return b.String()
}
