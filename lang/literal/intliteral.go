// Package literal implements parsing of integer literal tokens into a
// concrete width/signedness and value, per spec §4.7.
package literal

import (
	"strconv"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// IntKind names the primitive integer type an IntLiteralExpr was parsed as.
type IntKind uint8

// List of integer kinds, ordered narrowest to widest within each
// signedness, matching the fields of Result.
const (
	I8 IntKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
)

func (k IntKind) String() string {
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
	default:
		return "?"
	}
}

var suffixKinds = map[string]IntKind{
	"i8": I8, "i16": I16, "i32": I32, "i64": I64,
	"u8": U8, "u16": U16, "u32": U32, "u64": U64,
}

// Result is the outcome of parsing one integer literal token: the chosen
// kind plus the value in every field whose kind matches (mirroring the
// original compiler's ParseLiteralIntResult, where exactly one field is
// meaningful and the rest are zero).
type Result struct {
	Kind IntKind

	I8Value  int8
	I16Value int16
	I32Value int32
	I64Value int64

	U8Value  uint8
	U16Value uint16
	U32Value uint32
	U64Value uint64
}

// Parse parses the verbatim text of an integer literal token (e.g. "42",
// "0xFFu8", "0b101i16", "-7") and records a LiteralOutOfRange diagnostic
// at src if no candidate type can hold the value.
//
// Prefix: "0x" (hex), "0b" (binary), "0o" (octal), or none (decimal).
// Suffix: one of the IntKind names above; when absent the narrowest of
// {i32, i64, u64} that fits the magnitude is chosen, per spec §4.7.
func Parse(d *diag.Diagnostics, text string, src token.SourceRef) Result {
	negative := strings.HasPrefix(text, "-")
	body := strings.TrimPrefix(text, "-")

	base := 10
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		base, body = 16, body[2:]
	case strings.HasPrefix(body, "0b"), strings.HasPrefix(body, "0B"):
		base, body = 2, body[2:]
	case strings.HasPrefix(body, "0o"), strings.HasPrefix(body, "0O"):
		base, body = 8, body[2:]
	}

	digits, explicit := splitSuffix(body)

	magnitude, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		d.AddSimple(src, "LiteralOutOfRange", "integer literal is not representable in any integer type")
		return Result{Kind: I32}
	}

	if explicit != "" {
		kind, ok := suffixKinds[explicit]
		if !ok {
			d.AddSimple(src, "LiteralOutOfRange", "unknown integer literal suffix: "+explicit)
			return Result{Kind: I32}
		}
		return fit(d, kind, magnitude, negative, src)
	}

	for _, kind := range []IntKind{I32, I64, U64} {
		if fits(kind, magnitude, negative) {
			return fit(d, kind, magnitude, negative, src)
		}
	}

	d.AddSimple(src, "LiteralOutOfRange", "integer literal exceeds i32, i64, and u64")
	return Result{Kind: I32}
}

func splitSuffix(body string) (digits, suffix string) {
	for name := range suffixKinds {
		if strings.HasSuffix(body, name) {
			return strings.TrimSuffix(body, name), name
		}
	}
	return body, ""
}

func fits(kind IntKind, magnitude uint64, negative bool) bool {
	signed := negative
	var v int64
	if signed {
		if magnitude > 1<<63 {
			return false
		}
		v = -int64(magnitude)
	}
	switch kind {
	case I8:
		return signed && v >= -128 && v <= 127 || !signed && magnitude <= 127
	case I16:
		return signed && v >= -32768 && v <= 32767 || !signed && magnitude <= 32767
	case I32:
		return signed && v >= -2147483648 && v <= 2147483647 || !signed && magnitude <= 2147483647
	case I64:
		return signed || magnitude <= 1<<63-1
	case U8:
		return !signed && magnitude <= 255
	case U16:
		return !signed && magnitude <= 65535
	case U32:
		return !signed && magnitude <= 4294967295
	case U64:
		return !signed
	}
	return false
}

func fit(d *diag.Diagnostics, kind IntKind, magnitude uint64, negative bool, src token.SourceRef) Result {
	if !fits(kind, magnitude, negative) {
		d.AddSimple(src, "LiteralOutOfRange", "integer literal does not fit in "+kind.String())
		return Result{Kind: kind}
	}
	r := Result{Kind: kind}
	sign := int64(1)
	if negative {
		sign = -1
	}
	switch kind {
	case I8:
		r.I8Value = int8(sign * int64(magnitude))
	case I16:
		r.I16Value = int16(sign * int64(magnitude))
	case I32:
		r.I32Value = int32(sign * int64(magnitude))
	case I64:
		r.I64Value = sign * int64(magnitude)
	case U8:
		r.U8Value = uint8(magnitude)
	case U16:
		r.U16Value = uint16(magnitude)
	case U32:
		r.U32Value = uint32(magnitude)
	case U64:
		r.U64Value = magnitude
	}
	return r
}
