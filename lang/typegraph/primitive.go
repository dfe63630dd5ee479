package typegraph

import "github.com/jlang-gyoji/gyoji/lang/token"

// PrimitiveKind names one of the built-in scalar types.
type PrimitiveKind uint8

// List of primitive kinds.
const (
	I8 PrimitiveKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	BoolKind
	VoidKind
)

func (k PrimitiveKind) String() string {
	switch k {
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case BoolKind:
		return "bool"
	case VoidKind:
		return "void"
	default:
		return "?"
	}
}

// IsSigned reports whether k is one of the signed integer kinds.
func (k PrimitiveKind) IsSigned() bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is an integer kind (signed or unsigned).
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is a floating-point kind.
func (k PrimitiveKind) IsFloat() bool { return k == F32 || k == F64 }

var primitiveOrder = []PrimitiveKind{I8, I16, I32, I64, U8, U16, U32, U64, F32, F64, BoolKind, VoidKind}

// zeroSourceRef is the builtin-attributed location used for types the
// graph seeds itself rather than the user's source, mirroring the
// original compiler's "builtin" zero source reference.
var zeroSourceRef = token.SourceRef{File: 0, Line: 0, Column: 0, Length: 0}

func (g *Graph) seedPrimitives() {
	for _, p := range primitiveOrder {
		g.define(&Type{
			name:      p.String(),
			kind:      KindPrimitive,
			src:       zeroSourceRef,
			complete:  true,
			primitive: p,
		})
	}
}

// Primitive returns the singleton Type for primitive kind k. It is only
// ever called after New, so it never returns nil.
func (g *Graph) Primitive(k PrimitiveKind) *Type { return g.Get(k.String()) }
