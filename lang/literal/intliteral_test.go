package literal

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func newDiags() *diag.Diagnostics {
	return diag.New(token.NewTokenStream())
}

func TestParsePicksSmallestFittingDefault(t *testing.T) {
	d := newDiags()
	r := Parse(d, "42", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, I32, r.Kind)
	require.Equal(t, int32(42), r.I32Value)
}

func TestParseOverflowsToI64(t *testing.T) {
	d := newDiags()
	r := Parse(d, "4294967296", token.SourceRef{Line: 1}) // > i32 max
	require.False(t, d.HasErrors())
	require.Equal(t, I64, r.Kind)
	require.Equal(t, int64(4294967296), r.I64Value)
}

func TestParseOverflowsToU64WhenTooLargeForI64(t *testing.T) {
	d := newDiags()
	r := Parse(d, "18446744073709551615", token.SourceRef{Line: 1}) // uint64 max
	require.False(t, d.HasErrors())
	require.Equal(t, U64, r.Kind)
	require.Equal(t, uint64(18446744073709551615), r.U64Value)
}

func TestParseExplicitSuffix(t *testing.T) {
	d := newDiags()
	r := Parse(d, "255u8", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, U8, r.Kind)
	require.Equal(t, uint8(255), r.U8Value)
}

func TestParseHexAndBinaryPrefixes(t *testing.T) {
	d := newDiags()
	r := Parse(d, "0xFF", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, int32(255), r.I32Value)

	d2 := newDiags()
	r2 := Parse(d2, "0b1010", token.SourceRef{Line: 1})
	require.False(t, d2.HasErrors())
	require.Equal(t, int32(10), r2.I32Value)
}

func TestParseNegativeLiteral(t *testing.T) {
	d := newDiags()
	r := Parse(d, "-5", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, I32, r.Kind)
	require.Equal(t, int32(-5), r.I32Value)
}

func TestParseSuffixOverflowReportsOutOfRange(t *testing.T) {
	d := newDiags()
	r := Parse(d, "999u8", token.SourceRef{Line: 1})
	require.True(t, d.HasErrors())
	require.Equal(t, U8, r.Kind)
	require.Contains(t, d.Get(0).Headline, "LiteralOutOfRange")
}
