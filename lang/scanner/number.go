package scanner

import "github.com/jlang-gyoji/gyoji/lang/token"

func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDecimalDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }

func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

// scanNumber consumes an integer or floating-point literal starting at
// the scanner's current position (s.cur is already its first digit, or
// '.' followed by a digit) and returns its token kind and verbatim
// text. It recognizes shape only -- optional base prefix, digits,
// optional fractional part and exponent, optional type suffix -- the
// exact value and width are resolved later by lang/literal (spec §4.7).
func (s *Scanner) scanNumber() (token.Kind, string) {
	start := s.off
	kind := token.INT

	switch {
	case s.cur == '0' && (s.peek() == 'x' || s.peek() == 'X'):
		s.advance()
		s.advance()
		s.scanDigits(isHexDigit)
	case s.cur == '0' && (s.peek() == 'b' || s.peek() == 'B'):
		s.advance()
		s.advance()
		s.scanDigits(isBinaryDigit)
	case s.cur == '0' && (s.peek() == 'o' || s.peek() == 'O'):
		s.advance()
		s.advance()
		s.scanDigits(isOctalDigit)
	default:
		s.scanDigits(isDecimalDigit)
		if s.cur == '.' && isDecimalDigit(s.peek()) {
			kind = token.FLOAT
			s.advance()
			s.scanDigits(isDecimalDigit)
		}
		if (s.cur == 'e' || s.cur == 'E') && (isDecimalDigit(s.peek()) || s.peek() == '+' || s.peek() == '-') {
			kind = token.FLOAT
			s.advance()
			if s.cur == '+' || s.cur == '-' {
				s.advance()
			}
			s.scanDigits(isDecimalDigit)
		}
	}

	// optional type suffix (i8..u64, f32, f64): a letter-led run of
	// letters and digits, left for lang/literal to validate.
	if isLetter(s.cur) {
		for isIdentRune(s.cur) {
			s.advance()
		}
	}

	return kind, string(s.src[start:s.off])
}

func (s *Scanner) scanDigits(valid func(rune) bool) {
	for valid(s.cur) {
		s.advance()
	}
}
