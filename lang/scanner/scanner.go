// Package scanner implements the hand-written lexer: source bytes to a
// token.TokenStream, one token per lexical unit -- including whitespace
// and comments, so that TokenStream.Identity reproduces the input
// exactly (the round-trip requirement). Grounded on the teacher's
// lang/scanner/scanner.go character-at-a-time design (advance/peek,
// BOM skipping, the big token-dispatch switch), adapted from a
// rune/Pos-addressed go/scanner.File to directly populate a
// token.TokenStream.
package scanner

import (
	goscanner "go/scanner"
	gotoken "go/token"
	"unicode"
	"unicode/utf8"

	"github.com/jlang-gyoji/gyoji/lang/token"
)

// Scanner tokenizes one source file's bytes into a token.TokenStream.
type Scanner struct {
	file token.FileID
	src  []byte

	stream *token.TokenStream
	errs   goscanner.ErrorList

	cur  rune
	off  int
	roff int
	line int
	col  int
}

var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

// New returns a Scanner over src, appending every token it discovers to
// stream. stream should be freshly created for this file.
func New(file token.FileID, src []byte, stream *token.TokenStream) *Scanner {
	s := &Scanner{file: file, src: src, stream: stream, line: 1, col: -1}
	s.cur = ' '
	if len(src) >= len(utf8BOM) && string(src[:len(utf8BOM)]) == string(utf8BOM[:]) {
		s.roff = len(utf8BOM)
	}
	s.advance()
	return s
}

// Tokenize scans src in one call and returns the populated stream
// together with any accumulated lexical errors (nil on success). A
// non-nil error is a go/scanner.ErrorList, sorted by position.
func Tokenize(file token.FileID, src []byte) (*token.TokenStream, error) {
	ts := token.NewTokenStream()
	err := New(file, src, ts).ScanAll()
	return ts, err
}

func (s *Scanner) peek() rune {
	if s.roff < len(s.src) {
		return rune(s.src[s.roff])
	}
	return 0
}

func (s *Scanner) advance() {
	wasNewline := s.cur == '\n'
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
	} else {
		s.off = s.roff
		r, w := rune(s.src[s.roff]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.roff:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.off, "illegal UTF-8 encoding")
			}
		}
		s.roff += w
		s.cur = r
	}
	if wasNewline {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
}

func (s *Scanner) error(off int, msg string) {
	s.errs.Add(gotoken.Position{Line: s.line, Column: s.col, Offset: off}, msg)
}

func (s *Scanner) startRef() token.SourceRef {
	return token.SourceRef{File: s.file, Line: s.line, Column: s.col}
}

func (s *Scanner) emit(kind token.Kind, text string, start token.SourceRef) {
	start.Length = utf8.RuneCountInString(text)
	s.stream.AddToken(kind, text, start)
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isIdentRune(r rune) bool {
	return isLetter(r) || isDecimalDigit(r)
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// ScanAll tokenizes the whole file and returns the accumulated lexical
// errors, if any.
func (s *Scanner) ScanAll() error {
	for s.scanOne() {
	}
	if len(s.errs) == 0 {
		return nil
	}
	s.errs.Sort()
	return s.errs.Err()
}

// scanOne reads and emits exactly one token, returning false once EOF
// has been emitted.
func (s *Scanner) scanOne() bool {
	if s.cur == -1 {
		s.emit(token.EOF, "", s.startRef())
		return false
	}

	if isWhitespace(s.cur) {
		s.scanWhitespace()
		return true
	}

	start := s.startRef()
	switch {
	case isLetter(s.cur):
		from := s.off
		for isIdentRune(s.cur) {
			s.advance()
		}
		lit := string(s.src[from:s.off])
		s.emit(token.LookupIdent(lit), lit, start)

	case isDecimalDigit(s.cur) || (s.cur == '.' && isDecimalDigit(s.peek())):
		kind, lit := s.scanNumber()
		s.emit(kind, lit, start)

	case s.cur == '"':
		lit := s.scanString('"', start)
		s.emit(token.STRING, lit, start)

	case s.cur == '/' && s.peek() == '/':
		s.scanLineComment(start)

	case s.cur == '/' && s.peek() == '*':
		s.scanBlockComment(start)

	default:
		s.scanPunct(start)
	}
	return true
}

func (s *Scanner) scanWhitespace() {
	start := s.startRef()
	from := s.off
	for isWhitespace(s.cur) {
		s.advance()
	}
	s.emit(token.WHITESPACE, string(s.src[from:s.off]), start)
}

func (s *Scanner) scanPunct(start token.SourceRef) {
	from := s.off
	cur := s.cur
	s.advance()

	two := func(next rune, ifYes, ifNo token.Kind) token.Kind {
		if s.cur == next {
			s.advance()
			return ifYes
		}
		return ifNo
	}

	var kind token.Kind
	switch cur {
	case '+':
		kind = token.PLUS
	case '-':
		kind = two('>', token.ARROW, token.MINUS)
	case '*':
		kind = token.STAR
	case '/':
		kind = token.SLASH
	case '%':
		kind = token.PERCENT
	case '&':
		kind = two('&', token.ANDAND, token.AMP)
	case '|':
		kind = two('|', token.OROR, token.PIPE)
	case '^':
		kind = token.CARET
	case '~':
		kind = token.TILDE
	case '<':
		if s.cur == '<' {
			s.advance()
			kind = token.SHL
		} else {
			kind = two('=', token.LE, token.LT)
		}
	case '>':
		if s.cur == '>' {
			s.advance()
			kind = token.SHR
		} else {
			kind = two('=', token.GE, token.GT)
		}
	case '.':
		kind = token.DOT
	case ',':
		kind = token.COMMA
	case '=':
		kind = two('=', token.EQ, token.ASSIGN)
	case ';':
		kind = token.SEMI
	case ':':
		kind = two(':', token.COLONCOLON, token.COLON)
	case '(':
		kind = token.LPAREN
	case ')':
		kind = token.RPAREN
	case '[':
		kind = token.LBRACK
	case ']':
		kind = token.RBRACK
	case '{':
		kind = token.LBRACE
	case '}':
		kind = token.RBRACE
	case '!':
		kind = two('=', token.NE, token.NOT)
	default:
		s.error(from, "illegal character")
		kind = token.ILLEGAL
	}
	s.emit(kind, string(s.src[from:s.off]), start)
}
