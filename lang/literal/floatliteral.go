package literal

import (
	"strconv"
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// FloatKind names the primitive floating-point type a FloatLiteralExpr
// was parsed as.
type FloatKind uint8

// List of float kinds.
const (
	F32 FloatKind = iota
	F64
)

func (k FloatKind) String() string {
	if k == F32 {
		return "f32"
	}
	return "f64"
}

var floatSuffixKinds = map[string]FloatKind{"f": F32, "f32": F32, "f64": F64}

// FloatResult is the outcome of parsing one float literal token.
type FloatResult struct {
	Kind  FloatKind
	Value float64
}

// ParseFloat parses the verbatim text of a float literal token (e.g.
// "1.0", "1.0f32", "6.022e23f64") and records a LiteralOutOfRange
// diagnostic at src if the digits don't scan as a float.
//
// Suffix: "f" or "f32" (both F32), or "f64"; when absent the literal
// defaults to f64, the wider of the two float widths.
func ParseFloat(d *diag.Diagnostics, text string, src token.SourceRef) FloatResult {
	digits, explicit := splitFloatSuffix(text)

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		d.AddSimple(src, "LiteralOutOfRange", "float literal is not representable")
		return FloatResult{Kind: F64}
	}

	kind := F64
	if explicit != "" {
		kind = floatSuffixKinds[explicit]
	}

	if kind == F32 {
		value = float64(float32(value))
	}
	return FloatResult{Kind: kind, Value: value}
}

func splitFloatSuffix(body string) (digits, suffix string) {
	for name := range floatSuffixKinds {
		if strings.HasSuffix(body, name) {
			return strings.TrimSuffix(body, name), name
		}
	}
	return body, ""
}
