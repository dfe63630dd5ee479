package typegraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Kind discriminates the variants of Type. It plays the role the
// original compiler's Type::TypeType enum plays, but as a closed set of
// Go methods rather than a tagged switch scattered across call sites.
type Kind uint8

// List of type-graph kinds.
const (
	KindPrimitive Kind = iota
	KindPointer
	KindReference
	KindArray
	KindComposite
	KindEnum
	KindFunctionPointer
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindComposite:
		return "composite"
	case KindEnum:
		return "enum"
	case KindFunctionPointer:
		return "function-pointer"
	default:
		return "?"
	}
}

// Field is one member of a composite type.
type Field struct {
	Name string
	Type *Type
	Src  token.SourceRef
}

// Method is one member function of a composite type. Methods do not
// participate in field-completeness checking: a method whose parameter
// or return type is incomplete is still a legal forward reference,
// since calling it doesn't require the type's layout.
type Method struct {
	Name   string
	Params []*Type
	Return *Type
	Src    token.SourceRef
}

// EnumTag is one named discriminant of an enum type.
type EnumTag struct {
	Name  string
	Value int64
}

// Type is one node of the interned type graph: a primitive, a
// pointer-to/reference-to/array-of some other Type, a composite
// (struct-like, possibly still incomplete), an enum, or a function
// pointer. The zero value is never used directly; every *Type in a
// program comes from a Graph.
type Type struct {
	name string
	kind Kind
	src  token.SourceRef

	// complete is false for a composite between its forward declaration
	// and CompleteComposite, and for an array whose element type was
	// incomplete when the array type was synthesized (it keeps that value);
	// every other kind is complete the moment it is constructed.
	complete bool

	primitive PrimitiveKind // KindPrimitive

	elem     *Type // KindPointer, KindReference, KindArray
	arrayLen int   // KindArray

	fields  []Field  // KindComposite
	methods []Method // KindComposite

	enumUnderlying *Type     // KindEnum
	enumTags       []EnumTag // KindEnum

	funcParams []*Type // KindFunctionPointer
	funcReturn *Type   // KindFunctionPointer
}

// Name returns the type's canonical name, e.g. "ns::Widget*[4]".
func (t *Type) Name() string { return t.name }

// String satisfies fmt.Stringer by returning the canonical name.
func (t *Type) String() string { return t.name }

// Kind returns which variant of Type this is.
func (t *Type) Kind() Kind { return t.kind }

// SourceRef returns where this type was declared, or the builtin zero
// reference for primitives and synthesized pointer/reference/array types.
func (t *Type) SourceRef() token.SourceRef { return t.src }

// IsComplete reports whether this type's layout is fully known. A
// composite is incomplete between its forward declaration and a later
// CompleteComposite call; an array is incomplete if its element type was
// incomplete when ArrayOf first synthesized it.
func (t *Type) IsComplete() bool { return t.complete }

// IsVoid reports whether this is exactly the primitive void type.
func (t *Type) IsVoid() bool { return t.kind == KindPrimitive && t.primitive == VoidKind }

// Primitive returns the primitive kind of a KindPrimitive type. Calling
// it on any other kind is a programming error.
func (t *Type) Primitive() PrimitiveKind {
	if t.kind != KindPrimitive {
		panic(fmt.Sprintf("typegraph: Primitive() called on %s type %q", t.kind, t.name))
	}
	return t.primitive
}

// Elem returns the pointed-to/referenced/array-element type. Calling it
// on any other kind is a programming error.
func (t *Type) Elem() *Type {
	if t.kind != KindPointer && t.kind != KindReference && t.kind != KindArray {
		panic(fmt.Sprintf("typegraph: Elem() called on %s type %q", t.kind, t.name))
	}
	return t.elem
}

// ArrayLen returns the element count of a KindArray type.
func (t *Type) ArrayLen() int {
	if t.kind != KindArray {
		panic(fmt.Sprintf("typegraph: ArrayLen() called on %s type %q", t.kind, t.name))
	}
	return t.arrayLen
}

// Fields returns a composite's fields, in declaration order. Nil until
// CompleteComposite has run.
func (t *Type) Fields() []Field { return t.fields }

// Field looks up a composite's field by name.
func (t *Type) Field(name string) (Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Methods returns a composite's methods, in declaration order.
func (t *Type) Methods() []Method { return t.methods }

// Method looks up a composite's method by name.
func (t *Type) Method(name string) (Method, bool) {
	for _, m := range t.methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// CompleteComposite installs fields and methods on a composite declared
// via Graph.DeclareComposite, marking it complete. Calling it twice, or
// on a non-composite, is a programming error.
func (t *Type) CompleteComposite(fields []Field, methods []Method) {
	if t.kind != KindComposite {
		panic(fmt.Sprintf("typegraph: CompleteComposite called on %s type %q", t.kind, t.name))
	}
	if t.complete {
		panic(fmt.Sprintf("typegraph: CompleteComposite called twice on %q", t.name))
	}
	t.fields = fields
	t.methods = methods
	t.complete = true
}

// EnumUnderlying returns the integer type backing an enum's discriminants.
func (t *Type) EnumUnderlying() *Type {
	if t.kind != KindEnum {
		panic(fmt.Sprintf("typegraph: EnumUnderlying() called on %s type %q", t.kind, t.name))
	}
	return t.enumUnderlying
}

// EnumTags returns an enum's tags, in declaration order.
func (t *Type) EnumTags() []EnumTag { return t.enumTags }

// EnumTag looks up an enum's tag by name.
func (t *Type) EnumTag(name string) (EnumTag, bool) {
	for _, tag := range t.enumTags {
		if tag.Name == name {
			return tag, true
		}
	}
	return EnumTag{}, false
}

// FuncParams returns a function-pointer type's parameter types.
func (t *Type) FuncParams() []*Type {
	if t.kind != KindFunctionPointer {
		panic(fmt.Sprintf("typegraph: FuncParams() called on %s type %q", t.kind, t.name))
	}
	return t.funcParams
}

// FuncReturn returns a function-pointer type's return type.
func (t *Type) FuncReturn() *Type {
	if t.kind != KindFunctionPointer {
		panic(fmt.Sprintf("typegraph: FuncReturn() called on %s type %q", t.kind, t.name))
	}
	return t.funcReturn
}

func canonicalArrayName(t *Type, length int) string {
	return t.name + "[" + strconv.Itoa(length) + "]"
}

func canonicalFuncName(params []*Type, ret *Type) string {
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(p.name)
	}
	b.WriteString(")->")
	b.WriteString(ret.name)
	return b.String()
}
