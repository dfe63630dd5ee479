package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		lit  string
		want Kind
	}{
		{"class", CLASS},
		{"fn", FN},
		{"i32", I32},
		{"void", VOID},
		{"foo", IDENT},
		{"Class", IDENT}, // case-sensitive
	}
	for _, c := range cases {
		require.Equal(t, c.want, LookupIdent(c.lit), "lit=%q", c.lit)
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "class", CLASS.String())
	require.Equal(t, "'class'", CLASS.GoString())
	require.Equal(t, "identifier", IDENT.String())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestIsPrimitive(t *testing.T) {
	require.True(t, I8.IsPrimitive())
	require.True(t, VOID.IsPrimitive())
	require.False(t, CLASS.IsPrimitive())
	require.False(t, IDENT.IsPrimitive())
}

func TestFileTableIntern(t *testing.T) {
	ft := NewFileTable()
	a := ft.Intern("a.j")
	b := ft.Intern("b.j")
	a2 := ft.Intern("a.j")
	require.Equal(t, a, a2)
	require.NotEqual(t, a, b)
	require.Equal(t, "a.j", ft.Name(a))
	require.Equal(t, "b.j", ft.Name(b))
	require.Equal(t, "", ft.Name(FileID(99)))
}
