package parser

import (
	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

// binopInfo holds the left/right binding power of a binary operator for
// precedence-climbing; right < left would make it right-associative,
// but every operator J supports is left-associative so the two always
// match.
type binopInfo struct{ left, right int }

var binopPriority = map[token.Kind]binopInfo{
	token.OROR:    {1, 1},
	token.ANDAND:  {2, 2},
	token.PIPE:    {3, 3},
	token.CARET:   {4, 4},
	token.AMP:     {5, 5},
	token.EQ:      {6, 6},
	token.NE:      {6, 6},
	token.LT:      {7, 7},
	token.LE:      {7, 7},
	token.GT:      {7, 7},
	token.GE:      {7, 7},
	token.SHL:     {8, 8},
	token.SHR:     {8, 8},
	token.PLUS:    {9, 9},
	token.MINUS:   {9, 9},
	token.STAR:    {10, 10},
	token.SLASH:   {10, 10},
	token.PERCENT: {10, 10},
}

const unaryPriority = 11

func (p *Parser) parseExpr() cst.Expr {
	return p.parseSubExpr(0)
}

// parseSubExpr parses an expression containing only binary operators
// whose left binding power exceeds priority, recursing with each
// operator's right binding power for its right-hand operand
// (precedence climbing).
func (p *Parser) parseSubExpr(priority int) cst.Expr {
	left := p.parseUnaryExpr()

	for {
		info, ok := binopPriority[p.tok.Kind]
		if !ok || info.left <= priority {
			break
		}
		start := left.SourceRef()
		op := p.expect(p.tok.Kind)
		right := p.parseSubExpr(info.right)
		left = &cst.BinaryExpr{Op: op, Left: left, Right: right, Src: start}
	}
	return left
}

func (p *Parser) parseUnaryExpr() cst.Expr {
	start := p.tok.Src
	switch {
	case p.at(token.STAR):
		star := p.expect(token.STAR)
		operand := p.parseSubExpr(unaryPriority)
		return &cst.DerefExpr{Star: star, Operand: operand, Src: start}

	case p.at(token.MINUS, token.NOT, token.AMP):
		op := p.expect(p.tok.Kind)
		operand := p.parseSubExpr(unaryPriority)
		return &cst.UnaryExpr{Op: op, Operand: operand, Src: start}

	default:
		return p.parseSuffixedExpr()
	}
}

// parseSuffixedExpr parses a primary expression followed by any number
// of member-access, index, or call suffixes, left to right.
func (p *Parser) parseSuffixedExpr() cst.Expr {
	e := p.parsePrimaryExpr()
	for {
		switch {
		case p.at(token.DOT):
			start := e.SourceRef()
			p.expect(token.DOT)
			member := p.expect(token.IDENT)
			e = &cst.MemberExpr{Base: e, Member: member, Src: start}

		case p.at(token.LBRACK):
			start := e.SourceRef()
			p.expect(token.LBRACK)
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			e = &cst.IndexExpr{Base: e, Index: idx, Src: start}

		case p.at(token.LPAREN):
			start := e.SourceRef()
			p.expect(token.LPAREN)
			var args []cst.Expr
			for !p.at(token.RPAREN, token.EOF) {
				args = append(args, p.parseExpr())
				if p.at(token.COMMA) {
					p.expect(token.COMMA)
				} else {
					break
				}
			}
			p.expect(token.RPAREN)
			e = &cst.CallExpr{Callee: e, Args: args, Src: start}

		default:
			return e
		}
	}
}

var primaryStartKinds = []token.Kind{
	token.IDENT, token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.LPAREN,
}

func (p *Parser) parsePrimaryExpr() cst.Expr {
	start := p.tok.Src
	switch p.tok.Kind {
	case token.INT:
		tok := p.expect(token.INT)
		return &cst.IntLiteralExpr{Tok: tok, Src: start}

	case token.FLOAT:
		tok := p.expect(token.FLOAT)
		return &cst.FloatLiteralExpr{Tok: tok, Src: start}

	case token.STRING:
		tok := p.expect(token.STRING)
		return &cst.StringLiteralExpr{Tok: tok, Src: start}

	case token.TRUE, token.FALSE:
		tok := p.expect(p.tok.Kind)
		return &cst.BoolLiteralExpr{Tok: tok, Src: start}

	case token.IDENT:
		return p.parseIdentExpr()

	case token.LPAREN:
		p.expect(token.LPAREN)
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return &cst.ParenExpr{Inner: inner, Src: start}

	default:
		p.errorExpected(primaryStartKinds)
		panic(errPanicMode)
	}
}

func (p *Parser) parseIdentExpr() *cst.IdentExpr {
	start := p.tok.Src
	path := []*cst.Terminal{p.expect(token.IDENT)}
	for p.at(token.COLONCOLON) {
		p.expect(token.COLONCOLON)
		path = append(path, p.expect(token.IDENT))
	}
	return &cst.IdentExpr{Path: path, Src: start}
}
