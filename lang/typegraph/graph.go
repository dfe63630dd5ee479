// Package typegraph implements the interned type graph: every distinct
// canonical type name maps to exactly one *Type handle, shared by every
// occurrence in the program (spec §3 Type, §8 "type interning").
package typegraph

import (
	"github.com/dolthub/swiss"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Graph owns every Type reachable in a compilation: primitives seeded at
// construction, composites/enums/function-pointers declared by the type
// lowering pass, and pointer/reference/array types synthesized on demand.
type Graph struct {
	byName *swiss.Map[string, *Type]
}

// New returns a Graph pre-seeded with the primitive types.
func New() *Graph {
	g := &Graph{byName: swiss.NewMap[string, *Type](32)}
	g.seedPrimitives()
	return g
}

// Get returns the Type named name, or nil if none has been defined or
// synthesized yet.
func (g *Graph) Get(name string) *Type {
	t, _ := g.byName.Get(name)
	return t
}

// define installs t under its canonical name. It is a programming error
// to define the same name twice; callers must check Get first.
func (g *Graph) define(t *Type) *Type {
	g.byName.Put(t.name, t)
	return t
}

// DeclareComposite installs an incomplete composite type named name,
// reserving its canonical-name slot so that forward references (pointer
// or reference to it) can resolve before its members are known. Returns
// the existing Type if name is already declared.
func (g *Graph) DeclareComposite(name string, src token.SourceRef) *Type {
	if existing := g.Get(name); existing != nil {
		return existing
	}
	t := &Type{name: name, kind: KindComposite, src: src}
	return g.define(t)
}

// DeclareEnum installs an enum type with its tag set already known (enum
// definitions are never forward-declared in the grammar, so enums are
// always complete at declaration time).
func (g *Graph) DeclareEnum(name string, underlying *Type, tags []EnumTag, src token.SourceRef) *Type {
	if existing := g.Get(name); existing != nil {
		return existing
	}
	t := &Type{name: name, kind: KindEnum, src: src, enumUnderlying: underlying, enumTags: tags, complete: true}
	return g.define(t)
}

// PointerTo returns the (interned) pointer-to-t type, synthesizing it on
// first request.
func (g *Graph) PointerTo(t *Type, src token.SourceRef) *Type {
	name := t.name + "*"
	if existing := g.Get(name); existing != nil {
		return existing
	}
	return g.define(&Type{name: name, kind: KindPointer, src: src, elem: t, complete: true})
}

// ReferenceTo returns the (interned) reference-to-t type.
func (g *Graph) ReferenceTo(t *Type, src token.SourceRef) *Type {
	name := t.name + "&"
	if existing := g.Get(name); existing != nil {
		return existing
	}
	return g.define(&Type{name: name, kind: KindReference, src: src, elem: t, complete: true})
}

// ArrayOf returns the (interned) length-size array-of-t type.
func (g *Graph) ArrayOf(t *Type, length int, src token.SourceRef) *Type {
	name := canonicalArrayName(t, length)
	if existing := g.Get(name); existing != nil {
		return existing
	}
	return g.define(&Type{name: name, kind: KindArray, src: src, elem: t, arrayLen: length, complete: t.complete})
}

// FunctionPointer returns the (interned) function-pointer type for the
// given parameter and return types.
func (g *Graph) FunctionPointer(params []*Type, ret *Type, src token.SourceRef) *Type {
	name := canonicalFuncName(params, ret)
	if existing := g.Get(name); existing != nil {
		return existing
	}
	return g.define(&Type{name: name, kind: KindFunctionPointer, src: src, funcParams: params, funcReturn: ret, complete: true})
}

// All returns every type currently in the graph, for diagnostics and
// MIR dumping. Order is unspecified.
func (g *Graph) All() []*Type {
	out := make([]*Type, 0, g.byName.Count())
	g.byName.Iter(func(_ string, t *Type) (stop bool) {
		out = append(out, t)
		return false
	})
	return out
}
