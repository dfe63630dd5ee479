package scanner

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(ts *token.TokenStream) []token.Kind {
	var ks []token.Kind
	for _, tok := range ts.All() {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func significant(ts *token.TokenStream) []token.Token {
	var out []token.Token
	for _, tok := range ts.All() {
		switch tok.Kind {
		case token.WHITESPACE, token.COMMENT_SINGLE, token.COMMENT_MULTI, token.EOF:
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestIdentifiersAndKeywords(t *testing.T) {
	ts, err := Tokenize(1, []byte("fn add let x"))
	require.NoError(t, err)
	sig := significant(ts)
	require.Equal(t, []token.Kind{token.FN, token.IDENT, token.LET, token.IDENT}, []token.Kind{sig[0].Kind, sig[1].Kind, sig[2].Kind, sig[3].Kind})
	require.Equal(t, "add", sig[1].Text)
}

func TestTwoCharPunctuation(t *testing.T) {
	ts, err := Tokenize(1, []byte("-> :: << >> <= >= == != && ||"))
	require.NoError(t, err)
	sig := significant(ts)
	want := []token.Kind{
		token.ARROW, token.COLONCOLON, token.SHL, token.SHR,
		token.LE, token.GE, token.EQ, token.NE, token.ANDAND, token.OROR,
	}
	require.Len(t, sig, len(want))
	for i, k := range want {
		require.Equal(t, k, sig[i].Kind, "token %d", i)
	}
}

func TestIntegerLiteralShapes(t *testing.T) {
	ts, err := Tokenize(1, []byte("42 0x7Fu8 0b101i16 0o17"))
	require.NoError(t, err)
	sig := significant(ts)
	require.Len(t, sig, 4)
	for _, tok := range sig {
		require.Equal(t, token.INT, tok.Kind)
	}
	require.Equal(t, "0x7Fu8", sig[1].Text)
	require.Equal(t, "0b101i16", sig[2].Text)
}

func TestFloatLiteralShapes(t *testing.T) {
	ts, err := Tokenize(1, []byte("1.5 1.0e10 2.5f32 .5"))
	require.NoError(t, err)
	sig := significant(ts)
	require.Len(t, sig, 4)
	for _, tok := range sig {
		require.Equal(t, token.FLOAT, tok.Kind)
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	ts, err := Tokenize(1, []byte(`"hello\nworld"`))
	require.NoError(t, err)
	sig := significant(ts)
	require.Len(t, sig, 1)
	require.Equal(t, token.STRING, sig[0].Kind)
	require.Equal(t, `"hello\nworld"`, sig[0].Text)
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, err := Tokenize(1, []byte(`"no closing quote`))
	require.Error(t, err)
}

func TestInvalidEscapeIsLexicalError(t *testing.T) {
	_, err := Tokenize(1, []byte(`"bad \q escape"`))
	require.Error(t, err)
}

func TestIllegalCharacterIsLexicalError(t *testing.T) {
	_, err := Tokenize(1, []byte("let x = 1 @ 2;"))
	require.Error(t, err)
}

func TestLineCommentRoundTrips(t *testing.T) {
	src := "let x = 1; // trailing comment\nlet y = 2;\n"
	ts, err := Tokenize(1, []byte(src))
	require.NoError(t, err)
	require.Equal(t, src, ts.Identity())
}

func TestBlockCommentSpanningLinesRoundTrips(t *testing.T) {
	src := "let x = 1;\n/* a\n   multi-line\n   comment */\nlet y = 2;\n"
	ts, err := Tokenize(1, []byte(src))
	require.NoError(t, err)
	require.Equal(t, src, ts.Identity())

	var found bool
	for _, tok := range ts.All() {
		if tok.Kind == token.COMMENT_MULTI {
			found = true
			require.Contains(t, tok.Text, "multi-line")
		}
	}
	require.True(t, found)
}

func TestUnterminatedBlockCommentIsLexicalError(t *testing.T) {
	_, err := Tokenize(1, []byte("/* never closed"))
	require.Error(t, err)
}

func TestEveryByteIsAccountedForByIdentity(t *testing.T) {
	src := "fn main() -> i32 {\n  let x: i32 = 41 + 1;\n  return x;\n}\n"
	ts, err := Tokenize(1, []byte(src))
	require.NoError(t, err)
	require.Equal(t, src, ts.Identity())
}

func TestWhitespaceAndEOFAreEmitted(t *testing.T) {
	ts, err := Tokenize(1, []byte("x"))
	require.NoError(t, err)
	last := ts.At(ts.Len() - 1)
	require.Equal(t, token.EOF, last.Kind)
}
