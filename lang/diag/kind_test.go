package diag_test

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func TestKindOfClassifiesTaggedHeadlines(t *testing.T) {
	cases := []struct {
		headline string
		want     diag.Kind
	}{
		{"LiteralOutOfRange", diag.KindLexical},
		{"AmbiguousReference", diag.KindNameResolution},
		{"IncompleteType", diag.KindTypeResolution},
		{"UnreachableStatement", diag.KindSemantic},
		{"InvalidatedReference", diag.KindBorrow},
		{"compiler bug, please report this", diag.KindInternal},
	}
	for _, c := range cases {
		err := diag.NewError(c.headline).AddMessage(token.SourceRef{Line: 1}, "x")
		require.Equal(t, c.want, diag.KindOf(err), c.headline)
	}
}

func TestKindOfDefaultsToSemanticForProseHeadlines(t *testing.T) {
	err := diag.NewError("return value of type f32 but function is declared to return i32")
	require.Equal(t, diag.KindSemantic, diag.KindOf(err))
}
