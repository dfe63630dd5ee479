package token

// Token is a single lexical unit: its kind, the verbatim source text it
// was read from, and the source range it occupies. Every character of
// input is represented by some Token, including whitespace and comments,
// so that a TokenStream can reconstruct its file byte-for-byte.
type Token struct {
	Kind Kind
	Text string
	Src  SourceRef
}

// TokenStream is an append-only, source-ordered record of every token
// read from a file. It is the backing store the diagnostics subsystem
// draws surrounding source lines from, and the sole source of truth for
// round-trip (format-identity) reconstruction.
type TokenStream struct {
	tokens []Token
	byLine map[int][]int // line number -> indices into tokens, in order
}

// NewTokenStream returns an empty stream.
func NewTokenStream() *TokenStream {
	return &TokenStream{byLine: make(map[int][]int)}
}

// AddToken appends a new token to the stream and returns it. Tokens must
// be added in source order; the stream does not sort or otherwise
// reorder them.
func (ts *TokenStream) AddToken(kind Kind, text string, src SourceRef) Token {
	tok := Token{Kind: kind, Text: text, Src: src}
	idx := len(ts.tokens)
	ts.tokens = append(ts.tokens, tok)
	ts.byLine[src.Line] = append(ts.byLine[src.Line], idx)
	return tok
}

// AppendToLast appends text to the most recently added token's Text,
// used by the scanner when a single logical token (such as a multi-line
// comment) is discovered piecemeal. It is a no-op on an empty stream.
func (ts *TokenStream) AppendToLast(text string) {
	if len(ts.tokens) == 0 {
		return
	}
	ts.tokens[len(ts.tokens)-1].Text += text
}

// Len returns the number of tokens recorded.
func (ts *TokenStream) Len() int { return len(ts.tokens) }

// At returns the token at index i.
func (ts *TokenStream) At(i int) Token { return ts.tokens[i] }

// All returns every token recorded, in source order. The returned slice
// must not be mutated by the caller.
func (ts *TokenStream) All() []Token { return ts.tokens }

// CurrentSourceRef returns the source reference of the most recently
// added token, or the zero SourceRef if the stream is empty.
func (ts *TokenStream) CurrentSourceRef() SourceRef {
	if len(ts.tokens) == 0 {
		return SourceRef{}
	}
	return ts.tokens[len(ts.tokens)-1].Src
}

// GetLine concatenates, in order, the text of every token whose source
// line equals line, reconstructing that line of source text verbatim. It
// returns "" if no token was recorded on that line.
func (ts *TokenStream) GetLine(line int) string {
	idxs, ok := ts.byLine[line]
	if !ok {
		return ""
	}
	var sb []byte
	for _, i := range idxs {
		sb = append(sb, ts.tokens[i].Text...)
	}
	return string(sb)
}

// Context returns the (line number, line text) pairs for every line
// number in [start, end] that has at least one recorded token, in
// ascending line order. Lines with no tokens are omitted, and start may
// be less than 1 (it is simply never matched).
func (ts *TokenStream) Context(start, end int) []LineText {
	var out []LineText
	for l := start; l <= end; l++ {
		if l < 1 {
			continue
		}
		if _, ok := ts.byLine[l]; !ok {
			continue
		}
		out = append(out, LineText{Line: l, Text: ts.GetLine(l)})
	}
	return out
}

// LineText pairs a 1-based line number with its reconstructed text.
type LineText struct {
	Line int
	Text string
}

// Identity concatenates the Text of every token in the stream, in order.
// For any file that was tokenized without error, Identity reproduces the
// original bytes exactly (the round-trip property).
func (ts *TokenStream) Identity() string {
	var sb []byte
	for _, t := range ts.tokens {
		sb = append(sb, t.Text...)
	}
	return string(sb)
}
