// Package namespace implements the rooted scope tree that backs
// declaration and lookup of type names, enum tags, function names,
// variables, and nested namespaces (spec §3 NamespaceContext, §4.3).
package namespace

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// SymbolKind classifies what a name is bound to in a scope.
type SymbolKind uint8

const (
	TypeName SymbolKind = iota
	EnumTag
	FunctionName
	Variable
	NamespaceName
	undefinedKind
)

func (k SymbolKind) String() string {
	switch k {
	case TypeName:
		return "type"
	case EnumTag:
		return "enum tag"
	case FunctionName:
		return "function"
	case Variable:
		return "variable"
	case NamespaceName:
		return "namespace"
	default:
		return "undefined"
	}
}

// Symbol is a single name bound in some Scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Scope *Scope // owning scope
	Src   token.SourceRef

	// Type is filled in by type lowering for TypeName, EnumTag, FunctionName
	// and Variable symbols; it is nil until lowering resolves it, and nil
	// forever for NamespaceName symbols.
	Type *typegraph.Type
}

// Scope is one node of the namespace tree. The root scope has an empty
// Name. Children are owned by their parent; Parent is a non-owning
// back-reference used only to walk outward during lookup and to
// assemble fully-qualified names.
type Scope struct {
	Name     string
	Parent   *Scope
	Children []*Scope
	Imports  []*Scope // using-imported namespaces, lexically scoped to this Scope

	bindings *swiss.Map[string, *Symbol]
}

func newScope(name string, parent *Scope) *Scope {
	return &Scope{Name: name, Parent: parent, bindings: swiss.NewMap[string, *Symbol](4)}
}

// FullyQualifiedName concatenates this scope's ancestry with "::",
// dropping empty segments (the root scope contributes nothing).
func (s *Scope) FullyQualifiedName() string {
	var segs []string
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Name != "" {
			segs = append([]string{cur.Name}, segs...)
		}
	}
	return strings.Join(segs, "::")
}

// Qualify prefixes name with this scope's fully-qualified name.
func (s *Scope) Qualify(name string) string {
	fq := s.FullyQualifiedName()
	if fq == "" {
		return name
	}
	return fq + "::" + name
}

// DuplicateSymbolError is returned by Define when name is already bound
// in the local scope.
type DuplicateSymbolError struct {
	Name     string
	Existing *Symbol
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q (already declared as %s)", e.Name, e.Existing.Kind)
}

// Define binds name to kind in this scope. It fails with
// DuplicateSymbolError if the local scope already binds name.
func (s *Scope) Define(name string, kind SymbolKind, src token.SourceRef) (*Symbol, error) {
	if existing, ok := s.bindings.Get(name); ok {
		return nil, &DuplicateSymbolError{Name: name, Existing: existing}
	}
	sym := &Symbol{Name: name, Kind: kind, Scope: s, Src: src}
	s.bindings.Put(name, sym)
	return sym, nil
}

// Local returns the symbol bound to name directly in this scope, if any.
func (s *Scope) Local(name string) (*Symbol, bool) {
	return s.bindings.Get(name)
}

// Symbols returns every symbol bound directly in this scope (not its
// children), for tools that need to enumerate a scope rather than look
// up one name — e.g. the dump-namespaces command. Order is unspecified.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, s.bindings.Count())
	s.bindings.Iter(func(_ string, sym *Symbol) (stop bool) {
		out = append(out, sym)
		return false
	})
	return out
}

// AddImport records a lexically-scoped `using` of ns: unqualified lookups
// performed from this scope (and, per the search-path rule, from this
// scope's tier during the outward walk) also consider ns's locals.
func (s *Scope) AddImport(ns *Scope) {
	s.Imports = append(s.Imports, ns)
}

// NamespaceContext owns the namespace tree and reports resolution
// diagnostics (undefined symbol, ambiguous reference) to diags.
type NamespaceContext struct {
	Root    *Scope
	current *Scope
	diags   *diag.Diagnostics
}

// New returns a namespace context with an empty root scope.
func New(diags *diag.Diagnostics) *NamespaceContext {
	root := newScope("", nil)
	return &NamespaceContext{Root: root, current: root, diags: diags}
}

// Current returns the innermost scope currently being defined.
func (nc *NamespaceContext) Current() *Scope { return nc.current }

// PushScope creates and enters a new child scope of the current scope.
func (nc *NamespaceContext) PushScope(name string) *Scope {
	child := newScope(name, nc.current)
	nc.current.Children = append(nc.current.Children, child)
	nc.current = child
	return child
}

// EnterNamed pushes the named child scope of the current scope, creating
// it if this is the first visit (e.g. the declare pass of type lowering)
// or reusing it if a prior pass already created it (the complete pass,
// walking the same namespace body a second time). This is how the same
// NamespaceDefinition body is visited under the same Scope across both
// lowering passes.
func (nc *NamespaceContext) EnterNamed(name string) *Scope {
	for _, c := range nc.current.Children {
		if c.Name == name {
			nc.current = c
			return c
		}
	}
	return nc.PushScope(name)
}

// PopScope leaves the current scope, returning to its parent. It panics
// if called on the root scope (a programming error in the caller).
func (nc *NamespaceContext) PopScope() {
	if nc.current.Parent == nil {
		panic("namespace: PopScope called on root scope")
	}
	nc.current = nc.current.Parent
}

// Resolve looks up name starting from scope, walking outward per the
// search path described in spec §4.3. It never returns nil: on success
// it returns the unique matching Symbol; on no match it records an
// undefined-symbol diagnostic, inserts a placeholder Undefined binding
// (to suppress cascading errors on repeat lookups) and returns that
// placeholder; on more than one distinct match in the same tier, it
// records an AmbiguousReference diagnostic and returns the first match.
func (nc *NamespaceContext) Resolve(scope *Scope, name string, src token.SourceRef) *Symbol {
	for tier := scope; tier != nil; tier = tier.Parent {
		var found []*Symbol
		if sym, ok := tier.Local(name); ok {
			found = append(found, sym)
		}
		for _, imp := range tier.Imports {
			if sym, ok := imp.Local(name); ok {
				found = append(found, sym)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0]
		default:
			nc.reportAmbiguous(name, src, found)
			return found[0]
		}
	}

	nc.diags.AddSimple(src, "UndefinedSymbol", fmt.Sprintf("undefined symbol: %s", name))
	placeholder := &Symbol{Name: name, Kind: undefinedKind, Scope: scope, Src: src}
	scope.bindings.Put(name, placeholder)
	return placeholder
}

// Lookup searches for name starting from scope using the same outward
// search path as Resolve, but reports nothing and inserts no
// placeholder on a miss: it is read-only, for callers (format-tree's
// fully-qualified-name attribution) that want to know what a name
// refers to without perturbing diagnostics already recorded by a prior
// Resolve pass over the same tree. Ambiguous references resolve to
// their first match, same as Resolve, silently.
func (nc *NamespaceContext) Lookup(scope *Scope, name string) (*Symbol, bool) {
	for tier := scope; tier != nil; tier = tier.Parent {
		if sym, ok := tier.Local(name); ok {
			return sym, true
		}
		for _, imp := range tier.Imports {
			if sym, ok := imp.Local(name); ok {
				return sym, true
			}
		}
	}
	return nil, false
}

func (nc *NamespaceContext) reportAmbiguous(name string, src token.SourceRef, found []*Symbol) {
	err := diag.NewError(fmt.Sprintf("ambiguous reference: %s", name)).
		AddMessage(src, "referenced here")
	for _, sym := range found {
		err.AddMessage(sym.Src, fmt.Sprintf("candidate: %s", sym.Scope.Qualify(sym.Name)))
	}
	nc.diags.Add(err)
}

// Qualified resolves a qualified name such as "a::b::c" by walking the
// namespace tree segment by segment, short-circuiting at the first
// scope whose children match the next segment. It reports undefined
// symbol if any segment fails to resolve.
func (nc *NamespaceContext) Qualified(scope *Scope, segments []string, src token.SourceRef) *Symbol {
	if len(segments) == 0 {
		return nil
	}
	if len(segments) == 1 {
		return nc.Resolve(scope, segments[0], src)
	}

	// find the starting namespace scope for the first segment
	start := nc.findNamespaceChild(scope, segments[0])
	if start == nil {
		nc.diags.AddSimple(src, "UndefinedSymbol", fmt.Sprintf("undefined namespace: %s", segments[0]))
		return &Symbol{Name: segments[0], Kind: undefinedKind, Scope: scope, Src: src}
	}

	cur := start
	for _, seg := range segments[1 : len(segments)-1] {
		next := nc.findNamespaceChild(cur, seg)
		if next == nil {
			nc.diags.AddSimple(src, "UndefinedSymbol", fmt.Sprintf("undefined namespace: %s", cur.Qualify(seg)))
			return &Symbol{Name: seg, Kind: undefinedKind, Scope: cur, Src: src}
		}
		cur = next
	}

	last := segments[len(segments)-1]
	if sym, ok := cur.Local(last); ok {
		return sym
	}
	nc.diags.AddSimple(src, "UndefinedSymbol", fmt.Sprintf("undefined symbol: %s", cur.Qualify(last)))
	placeholder := &Symbol{Name: last, Kind: undefinedKind, Scope: cur, Src: src}
	cur.bindings.Put(last, placeholder)
	return placeholder
}

// findNamespaceChild searches scope's child scopes (and, failing that,
// each ancestor's child scopes, walking outward) for one named name, and
// returns it, or nil.
func (nc *NamespaceContext) findNamespaceChild(scope *Scope, name string) *Scope {
	for tier := scope; tier != nil; tier = tier.Parent {
		for _, child := range tier.Children {
			if child.Name == name {
				return child
			}
		}
	}
	return nil
}
