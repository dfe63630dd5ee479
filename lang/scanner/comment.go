package scanner

import "github.com/jlang-gyoji/gyoji/lang/token"

// scanLineComment consumes a "//..." comment up to (not including) the
// terminating newline and emits one COMMENT_SINGLE token.
func (s *Scanner) scanLineComment(start token.SourceRef) {
	from := s.off
	for s.cur != '\n' && s.cur != -1 {
		s.advance()
	}
	s.emit(token.COMMENT_SINGLE, string(s.src[from:s.off]), start)
}

// scanBlockComment consumes a "/*...*/" comment, starting at the
// opening '/', and emits it as a COMMENT_MULTI token built up
// piecemeal: one AddToken at the start, then one AppendToLast per line
// discovered, matching TokenStream's documented support for a
// multi-line token the scanner assembles incrementally rather than all
// at once. Reaching end-of-file before the closing "*/" is a lexical
// error; the comment is still emitted with whatever text was read.
func (s *Scanner) scanBlockComment(start token.SourceRef) {
	from := s.off
	s.stream.AddToken(token.COMMENT_MULTI, "", start)
	s.advance() // consume '/'
	s.advance() // consume '*'

	flush := func(to int) {
		if to > from {
			s.stream.AppendToLast(string(s.src[from:to]))
			from = to
		}
	}

	for {
		switch {
		case s.cur == -1:
			flush(s.off)
			s.error(s.off, "unterminated multi-line comment")
			return

		case s.cur == '\n':
			s.advance()
			flush(s.off)

		case s.cur == '*' && s.peek() == '/':
			s.advance()
			s.advance()
			flush(s.off)
			return

		default:
			s.advance()
		}
	}
}
