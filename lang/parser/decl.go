package parser

import (
	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/token"
)

var fileStatementStartKinds = []token.Kind{
	token.USING, token.NAMESPACE, token.CLASS, token.ENUM, token.TYPEDEF,
	token.UNSAFE, token.FN,
}

func (p *Parser) parseTranslationUnit() *cst.TranslationUnit {
	start := p.tok.Src
	var stmts []cst.FileStatement
	for !p.at(token.EOF) {
		if s := p.parseFileStatementRecover(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &cst.TranslationUnit{Statements: stmts, Src: start}
}

// parseFileStatementRecover parses one top-level or namespace-body
// statement, recovering from a panic(errPanicMode) by resynchronizing to
// the next recognizable declaration keyword and returning a BadDecl
// covering the skipped span.
func (p *Parser) parseFileStatementRecover() (stmt cst.FileStatement) {
	start := p.tok.Src
	defer func() {
		if r := recover(); r != nil {
			if r == errPanicMode {
				p.syncFileStatement()
				if p.tok.Src == start && !p.at(token.EOF) {
					p.advance() // e.g. a stray top-level "}", which sync stops at
				}
				stmt = &cst.BadDecl{Src: start}
				return
			}
			panic(r)
		}
	}()
	return p.parseFileStatement()
}

func (p *Parser) syncFileStatement() {
	for !p.at(token.EOF, token.RBRACE) && !p.at(fileStatementStartKinds...) {
		p.advance()
	}
}

func (p *Parser) parseFileStatement() cst.FileStatement {
	switch p.tok.Kind {
	case token.USING:
		return p.parseUsingDirective()
	case token.NAMESPACE:
		return p.parseNamespaceDefinition()
	case token.CLASS:
		return p.parseClassDeclOrDef()
	case token.ENUM:
		return p.parseEnumDefinition()
	case token.TYPEDEF:
		return p.parseTypeDefinition()
	case token.UNSAFE, token.FN:
		return p.parseFunctionDeclOrDef()
	default:
		p.errorExpected(fileStatementStartKinds)
		panic(errPanicMode)
	}
}

func (p *Parser) parseUsingDirective() *cst.UsingDirective {
	start := p.tok.Src
	p.expect(token.USING)
	path := []*cst.Terminal{p.expect(token.IDENT)}
	for p.at(token.COLONCOLON) {
		p.expect(token.COLONCOLON)
		path = append(path, p.expect(token.IDENT))
	}
	p.expect(token.SEMI)
	return &cst.UsingDirective{Path: path, Src: start}
}

func (p *Parser) parseNamespaceDefinition() *cst.NamespaceDefinition {
	start := p.tok.Src
	p.expect(token.NAMESPACE)
	name := p.expect(token.IDENT)
	p.expect(token.LBRACE)
	var stmts []cst.FileStatement
	for !p.at(token.RBRACE, token.EOF) {
		if s := p.parseFileStatementRecover(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE)
	return &cst.NamespaceDefinition{Name: name, Statements: stmts, Src: start}
}

func (p *Parser) parseClassDeclOrDef() cst.FileStatement {
	start := p.tok.Src
	p.expect(token.CLASS)
	name := p.expect(token.IDENT)
	if p.at(token.SEMI) {
		p.expect(token.SEMI)
		return &cst.ClassDeclaration{Name: name, Src: start}
	}

	p.expect(token.LBRACE)
	var fields []*cst.FieldDeclaration
	var methods []*cst.MethodDefinition
	for !p.at(token.RBRACE, token.EOF) {
		if p.at(token.UNSAFE, token.FN) {
			methods = append(methods, p.parseMethodDefinition())
		} else {
			fields = append(fields, p.parseFieldDeclaration())
		}
	}
	p.expect(token.RBRACE)
	return &cst.ClassDefinition{Name: name, Fields: fields, Methods: methods, Src: start}
}

func (p *Parser) parseFieldDeclaration() *cst.FieldDeclaration {
	start := p.tok.Src
	name := p.expect(token.IDENT)
	p.expect(token.COLON)
	typ := p.parseTypeSpecifier()
	p.expect(token.SEMI)
	return &cst.FieldDeclaration{Name: name, Type: typ, Src: start}
}

func (p *Parser) parseMethodDefinition() *cst.MethodDefinition {
	start := p.tok.Src
	var unsafeTok *cst.Terminal
	if p.at(token.UNSAFE) {
		unsafeTok = p.expect(token.UNSAFE)
	}
	p.expect(token.FN)
	name := p.expect(token.IDENT)
	params := p.parseParamList()
	var ret cst.TypeSpecifier
	if p.at(token.ARROW) {
		p.expect(token.ARROW)
		ret = p.parseTypeSpecifier()
	}
	body := p.parseBlock()
	return &cst.MethodDefinition{Unsafe: unsafeTok, Name: name, Params: params, Return: ret, Body: body, Src: start}
}

func (p *Parser) parseEnumDefinition() *cst.EnumDefinition {
	start := p.tok.Src
	p.expect(token.ENUM)
	name := p.expect(token.IDENT)
	p.expect(token.LBRACE)
	var values []*cst.EnumValue
	for !p.at(token.RBRACE, token.EOF) {
		values = append(values, p.parseEnumValue())
		if p.at(token.COMMA) {
			p.expect(token.COMMA)
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return &cst.EnumDefinition{Name: name, Values: values, Src: start}
}

func (p *Parser) parseEnumValue() *cst.EnumValue {
	start := p.tok.Src
	name := p.expect(token.IDENT)
	var value *cst.Terminal
	if p.at(token.ASSIGN) {
		p.expect(token.ASSIGN)
		value = p.expect(token.INT)
	}
	return &cst.EnumValue{Name: name, Value: value, Src: start}
}

func (p *Parser) parseTypeDefinition() *cst.TypeDefinition {
	start := p.tok.Src
	p.expect(token.TYPEDEF)
	name := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	aliased := p.parseTypeSpecifier()
	p.expect(token.SEMI)
	return &cst.TypeDefinition{Name: name, Aliased: aliased, Src: start}
}

func (p *Parser) parseFunctionDeclOrDef() cst.FileStatement {
	start := p.tok.Src
	var unsafeTok *cst.Terminal
	if p.at(token.UNSAFE) {
		unsafeTok = p.expect(token.UNSAFE)
	}
	p.expect(token.FN)
	name := p.expect(token.IDENT)
	params := p.parseParamList()
	var ret cst.TypeSpecifier
	if p.at(token.ARROW) {
		p.expect(token.ARROW)
		ret = p.parseTypeSpecifier()
	}
	if p.at(token.SEMI) {
		p.expect(token.SEMI)
		return &cst.FunctionDeclaration{Unsafe: unsafeTok, Name: name, Params: params, Return: ret, Src: start}
	}
	body := p.parseBlock()
	return &cst.FunctionDefinition{Unsafe: unsafeTok, Name: name, Params: params, Return: ret, Body: body, Src: start}
}

func (p *Parser) parseParamList() []*cst.Param {
	p.expect(token.LPAREN)
	var params []*cst.Param
	for !p.at(token.RPAREN, token.EOF) {
		params = append(params, p.parseParam())
		if p.at(token.COMMA) {
			p.expect(token.COMMA)
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParam() *cst.Param {
	start := p.tok.Src
	name := p.expect(token.IDENT)
	p.expect(token.COLON)
	typ := p.parseTypeSpecifier()
	return &cst.Param{Name: name, Type: typ, Src: start}
}
