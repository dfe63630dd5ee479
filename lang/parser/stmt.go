package parser

import (
	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

var stmtSyncKinds = []token.Kind{
	token.SEMI, token.RBRACE, token.IF, token.WHILE, token.FOR,
	token.RETURN, token.BREAK, token.CONTINUE, token.GOTO, token.LET,
}

func (p *Parser) parseBlock() *cst.Block {
	start := p.tok.Src
	p.expect(token.LBRACE)
	var stmts []cst.Stmt
	for !p.at(token.RBRACE, token.EOF) {
		if s := p.parseStmtRecover(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE)
	return &cst.Block{Stmts: stmts, Src: start}
}

// parseStmtRecover parses one statement, recovering from a
// panic(errPanicMode) by resynchronizing to the next safe statement
// boundary and returning a BadStmt covering the skipped span.
func (p *Parser) parseStmtRecover() (stmt cst.Stmt) {
	start := p.tok.Src
	defer func() {
		if r := recover(); r != nil {
			if r == errPanicMode {
				p.syncStmt()
				stmt = &cst.BadStmt{Src: start}
				return
			}
			panic(r)
		}
	}()
	return p.parseStmt()
}

func (p *Parser) syncStmt() {
	for !p.at(token.EOF) {
		if p.at(stmtSyncKinds...) {
			if p.tok.Kind == token.SEMI {
				p.advance()
			}
			return
		}
		p.advance()
	}
}

// parseStmt returns nil for a statement that contributes nothing to the
// tree (a bare ";").
func (p *Parser) parseStmt() cst.Stmt {
	switch p.tok.Kind {
	case token.SEMI:
		p.expect(token.SEMI)
		return nil
	case token.LBRACE:
		return p.parseBlock()
	case token.LET:
		return p.parseLetStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.GOTO:
		return p.parseGotoStmt()
	case token.IDENT:
		if p.peekKind() == token.COLON {
			return p.parseLabelStmt()
		}
		return p.parseExprOrAssignStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLetStmtNoSemi() *cst.LetStmt {
	start := p.tok.Src
	p.expect(token.LET)
	name := p.expect(token.IDENT)
	var typ cst.TypeSpecifier
	if p.at(token.COLON) {
		p.expect(token.COLON)
		typ = p.parseTypeSpecifier()
	}
	var init cst.Expr
	if p.at(token.ASSIGN) {
		p.expect(token.ASSIGN)
		init = p.parseExpr()
	}
	return &cst.LetStmt{Name: name, Type: typ, Init: init, Src: start}
}

func (p *Parser) parseLetStmt() *cst.LetStmt {
	n := p.parseLetStmtNoSemi()
	p.expect(token.SEMI)
	return n
}

func (p *Parser) parseIfStmt() *cst.IfStmt {
	start := p.tok.Src
	p.expect(token.IF)
	cond := p.parseExpr()
	then := p.parseBlock()

	var elseBlock *cst.Block
	if p.at(token.ELSE) {
		p.expect(token.ELSE)
		if p.at(token.IF) {
			elseIf := p.parseIfStmt()
			elseBlock = &cst.Block{Stmts: []cst.Stmt{elseIf}, Src: elseIf.Src}
		} else {
			elseBlock = p.parseBlock()
		}
	}
	return &cst.IfStmt{Cond: cond, Then: then, Else: elseBlock, Src: start}
}

func (p *Parser) parseWhileStmt() *cst.WhileStmt {
	start := p.tok.Src
	p.expect(token.WHILE)
	cond := p.parseExpr()
	body := p.parseBlock()
	return &cst.WhileStmt{Cond: cond, Body: body, Src: start}
}

func (p *Parser) parseForStmt() *cst.ForStmt {
	start := p.tok.Src
	p.expect(token.FOR)

	var init cst.Stmt
	if !p.at(token.SEMI) {
		init = p.parseSimpleStmtNoSemi()
	}
	p.expect(token.SEMI)

	var cond cst.Expr
	if !p.at(token.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)

	var post cst.Stmt
	if !p.at(token.LBRACE) {
		post = p.parseSimpleStmtNoSemi()
	}

	body := p.parseBlock()
	return &cst.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Src: start}
}

// parseSimpleStmtNoSemi parses the let/assign/expr statement forms
// allowed in a for-loop's init and post clauses, which are delimited by
// the loop's own semicolons (or the body's "{") rather than their own.
func (p *Parser) parseSimpleStmtNoSemi() cst.Stmt {
	if p.at(token.LET) {
		return p.parseLetStmtNoSemi()
	}
	return p.parseExprOrAssignStmtNoSemi()
}

func (p *Parser) parseExprOrAssignStmtNoSemi() cst.Stmt {
	start := p.tok.Src
	e := p.parseExpr()
	if p.at(token.ASSIGN) {
		p.expect(token.ASSIGN)
		value := p.parseExpr()
		return &cst.AssignStmt{Target: e, Value: value, Src: start}
	}
	return &cst.ExprStmt{X: e, Src: start}
}

func (p *Parser) parseExprOrAssignStmt() cst.Stmt {
	s := p.parseExprOrAssignStmtNoSemi()
	p.expect(token.SEMI)
	return s
}

func (p *Parser) parseReturnStmt() *cst.ReturnStmt {
	start := p.tok.Src
	p.expect(token.RETURN)
	var value cst.Expr
	if !p.at(token.SEMI) {
		value = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &cst.ReturnStmt{Value: value, Src: start}
}

func (p *Parser) parseBreakStmt() *cst.BreakStmt {
	start := p.tok.Src
	p.expect(token.BREAK)
	p.expect(token.SEMI)
	return &cst.BreakStmt{Src: start}
}

func (p *Parser) parseContinueStmt() *cst.ContinueStmt {
	start := p.tok.Src
	p.expect(token.CONTINUE)
	p.expect(token.SEMI)
	return &cst.ContinueStmt{Src: start}
}

func (p *Parser) parseGotoStmt() *cst.GotoStmt {
	start := p.tok.Src
	p.expect(token.GOTO)
	label := p.expect(token.IDENT)
	p.expect(token.SEMI)
	return &cst.GotoStmt{Label: label, Src: start}
}

func (p *Parser) parseLabelStmt() *cst.LabelStmt {
	start := p.tok.Src
	name := p.expect(token.IDENT)
	p.expect(token.COLON)
	return &cst.LabelStmt{Name: name, Src: start}
}
