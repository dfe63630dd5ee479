package literal

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func TestParseFloatDefaultsToF64(t *testing.T) {
	d := newDiags()
	r := ParseFloat(d, "1.5", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, F64, r.Kind)
	require.Equal(t, 1.5, r.Value)
}

func TestParseFloatExplicitF32Suffix(t *testing.T) {
	d := newDiags()
	r := ParseFloat(d, "1.0f32", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, F32, r.Kind)
	require.Equal(t, float64(float32(1.0)), r.Value)
}

func TestParseFloatBareFSuffixIsF32(t *testing.T) {
	d := newDiags()
	r := ParseFloat(d, "1.0f", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, F32, r.Kind)
	require.Equal(t, float64(float32(1.0)), r.Value)
}

func TestParseFloatExplicitF64Suffix(t *testing.T) {
	d := newDiags()
	r := ParseFloat(d, "6.022e23f64", token.SourceRef{Line: 1})
	require.False(t, d.HasErrors())
	require.Equal(t, F64, r.Kind)
	require.InDelta(t, 6.022e23, r.Value, 1e15)
}

func TestParseFloatMalformedDigitsReportsOutOfRange(t *testing.T) {
	d := newDiags()
	ParseFloat(d, "1.0.0", token.SourceRef{Line: 1})
	require.True(t, d.HasErrors())
	require.Contains(t, d.Get(0).Headline, "LiteralOutOfRange")
}
