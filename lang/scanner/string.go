package scanner

import (
	"strings"

	"github.com/jlang-gyoji/gyoji/lang/token"
)

// scanString consumes a double-quoted string literal starting at the
// opening quote and returns its verbatim source text (including both
// quotes), validating escape sequences as it goes. An unterminated
// literal or an unrecognized escape is recorded as a lexical error but
// does not stop scanning -- the caller still gets a best-effort token so
// the rest of the file can be tokenized.
func (s *Scanner) scanString(quote rune, start token.SourceRef) string {
	var b strings.Builder
	b.WriteRune(quote)
	s.advance()

	for {
		switch {
		case s.cur == quote:
			b.WriteRune(s.cur)
			s.advance()
			return b.String()

		case s.cur == -1 || s.cur == '\n':
			s.error(s.off, "unterminated string literal")
			return b.String()

		case s.cur == '\\':
			b.WriteRune(s.cur)
			s.advance()
			if !isValidEscape(s.cur) {
				s.error(s.off, "invalid escape sequence")
			}
			if s.cur != -1 && s.cur != '\n' {
				b.WriteRune(s.cur)
				s.advance()
			}

		default:
			b.WriteRune(s.cur)
			s.advance()
		}
	}
}

func isValidEscape(r rune) bool {
	switch r {
	case 'n', 't', 'r', '\\', '"', '\'', '0':
		return true
	default:
		return false
	}
}
