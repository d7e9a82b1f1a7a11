package parser

import (
	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/lexer"
)

// parseStatement dispatches on the leading token, per spec.md §4.2.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseVarDecl(false)
	case lexer.FUN:
		return p.parseFuncDecl(false)
	case lexer.STRUCT:
		return p.parseStructDecl(false)
	case lexer.ENUM:
		return p.parseEnumDecl(false)
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IMPORT:
		return p.parseImportStatement()
	case lexer.EXPORT:
		return p.parseExportedDecl()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseExportedDecl() ast.Statement {
	p.advance() // consume 'export'
	switch p.curToken.Type {
	case lexer.FUN:
		return p.parseFuncDecl(true)
	case lexer.STRUCT:
		return p.parseStructDecl(true)
	case lexer.ENUM:
		return p.parseEnumDecl(true)
	case lexer.LET:
		return p.parseVarDecl(true)
	default:
		p.fail(errcodes.ParseError, "expected a declaration after 'export'", p.curToken)
		return nil
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.curToken
	p.advance() // consume '{'
	block := &ast.BlockStatement{Token: tok}

	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			return block
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}

	p.expect(lexer.RBRACE)
	return block
}

func (p *Parser) parseVarDecl(exported bool) ast.Statement {
	tok := p.curToken
	p.advance() // consume 'let'

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected variable name after 'let'", p.curToken)
		return nil
	}
	name := p.curToken.Literal
	p.advance()

	decl := &ast.VarDecl{Token: tok, Name: name, IsExported: exported}

	if p.curIs(lexer.COLON) {
		p.advance()
		decl.DeclaredType = p.parseTypeAnnotation()
		if p.failed() {
			return nil
		}
	}

	if !p.expect(lexer.ASSIGN) {
		return nil
	}

	decl.Value = p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return decl
}

// parseExpressionOrAssignStatement parses the LHS as an expression (with
// struct-literal recognition suppressed per spec.md §9), then decides
// between an AssignStatement and a plain ExprStatement based on whether
// '=' follows. This is how `obj.field[i] = v` is handled: the target is
// just an expression, validated afterwards rather than parsed by a
// separate grammar (spec.md §4.2, "Assignment targets").
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	startTok := p.curToken
	p.suppressStructLiteralOnce = true
	expr := p.parseExpression(LOWEST)
	p.suppressStructLiteralOnce = false
	if p.failed() {
		return nil
	}

	// A bare identifier directly followed by '{' ends the statement there:
	// the '{' opens a block statement of its own.
	if _, ok := expr.(*ast.Identifier); ok && p.curIs(lexer.LBRACE) {
		return &ast.ExprStatement{Token: startTok, Expression: expr}
	}

	if p.curIs(lexer.ASSIGN) {
		if !ast.IsAssignTarget(expr) {
			p.fail(errcodes.InvalidAssignTarget, "invalid assignment target", startTok)
			return nil
		}
		assignTok := p.curToken
		p.advance()
		value := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.SEMICOLON) {
			return nil
		}
		return &ast.AssignStatement{Token: assignTok, Target: expr, Value: value}
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return &ast.ExprStatement{Token: startTok, Expression: expr}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	p.advance() // consume 'if'

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	then := p.parseBlockOrFail()
	if p.failed() {
		return nil
	}

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}

	for p.curIs(lexer.ELSEIF) {
		p.advance()
		if !p.expect(lexer.LPAREN) {
			return nil
		}
		eiCond := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		eiBlock := p.parseBlockOrFail()
		if p.failed() {
			return nil
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIfClause{Condition: eiCond, Block: eiBlock})
	}

	if p.curIs(lexer.ELSE) {
		p.advance()
		stmt.Else = p.parseBlockOrFail()
		if p.failed() {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseBlockOrFail() *ast.BlockStatement {
	if !p.curIs(lexer.LBRACE) {
		p.fail(errcodes.ParseError, "expected '{' to start a block", p.curToken)
		return nil
	}
	return p.parseBlockStatement()
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.advance() // consume 'while'

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	body := p.parseBlockOrFail()
	if p.failed() {
		return nil
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

// parseForStatement parses the C-style `for (init; cond; step) { ... }`
// loop from spec.md §4.2. init and step may each be empty.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	p.advance() // consume 'for'

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	var init ast.Statement
	if !p.curIs(lexer.SEMICOLON) {
		if p.curIs(lexer.LET) {
			init = p.parseVarDeclNoTerminator()
		} else {
			init = p.parseAssignNoTerminator()
		}
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	cond := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	var step ast.Statement
	if !p.curIs(lexer.RPAREN) {
		step = p.parseAssignNoTerminator()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	body := p.parseBlockOrFail()
	if p.failed() {
		return nil
	}

	return &ast.ForStatement{Token: tok, Init: init, Condition: cond, Step: step, Body: body}
}

// parseVarDeclNoTerminator parses `let name[: T] = expr` without
// consuming a trailing ';' — used for the `for` loop's init clause,
// which is itself followed by the loop's own ';'.
func (p *Parser) parseVarDeclNoTerminator() ast.Statement {
	tok := p.curToken
	p.advance() // consume 'let'

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected variable name after 'let'", p.curToken)
		return nil
	}
	name := p.curToken.Literal
	p.advance()

	decl := &ast.VarDecl{Token: tok, Name: name}
	if p.curIs(lexer.COLON) {
		p.advance()
		decl.DeclaredType = p.parseTypeAnnotation()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	decl.Value = p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	return decl
}

// parseAssignNoTerminator parses `target = expr` without consuming a
// trailing ';' — used for the `for` loop's step clause.
func (p *Parser) parseAssignNoTerminator() ast.Statement {
	startTok := p.curToken
	target := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	if !ast.IsAssignTarget(target) {
		p.fail(errcodes.InvalidAssignTarget, "invalid assignment target", startTok)
		return nil
	}
	assignTok := p.curToken
	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	return &ast.AssignStatement{Token: assignTok, Target: target, Value: value}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	p.advance() // consume 'return'

	stmt := &ast.ReturnStatement{Token: tok}
	if !p.curIs(lexer.SEMICOLON) {
		stmt.Value = p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseFuncDecl(exported bool) ast.Statement {
	tok := p.curToken
	p.advance() // consume 'fun'

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected function name after 'fun'", p.curToken)
		return nil
	}
	name := p.curToken.Literal
	p.advance()

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) {
		if !p.curIs(lexer.IDENT) {
			p.fail(errcodes.ParseError, "expected parameter name", p.curToken)
			return nil
		}
		pname := p.curToken.Literal
		p.advance()
		if !p.expect(lexer.COLON) {
			return nil
		}
		ptype := p.parseTypeAnnotation()
		if p.failed() {
			return nil
		}
		params = append(params, ast.Param{Name: pname, Type: ptype})

		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	decl := &ast.FuncDecl{Token: tok, Name: name, Params: params, IsExported: exported}

	if p.curIs(lexer.ARROW) {
		p.advance()
		decl.ReturnType = p.parseTypeAnnotation()
		if p.failed() {
			return nil
		}
	}

	decl.Body = p.parseBlockOrFail()
	if p.failed() {
		return nil
	}
	return decl
}

func (p *Parser) parseStructDecl(exported bool) ast.Statement {
	tok := p.curToken
	p.advance() // consume 'struct'

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected struct name", p.curToken)
		return nil
	}
	name := p.curToken.Literal
	p.advance()

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	decl := &ast.StructDecl{Token: tok, Name: name, IsExported: exported}
	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			p.fail(errcodes.ParseError, "expected field name in struct declaration", p.curToken)
			return nil
		}
		fname := p.curToken.Literal
		p.advance()
		if !p.expect(lexer.COLON) {
			return nil
		}
		ftype := p.parseTypeAnnotation()
		if p.failed() {
			return nil
		}
		decl.Fields = append(decl.Fields, ast.StructField{Name: fname, Type: ftype})

		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return decl
}

func (p *Parser) parseEnumDecl(exported bool) ast.Statement {
	tok := p.curToken
	p.advance() // consume 'enum'

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected enum name", p.curToken)
		return nil
	}
	name := p.curToken.Literal
	p.advance()

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	decl := &ast.EnumDecl{Token: tok, Name: name, IsExported: exported}
	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			p.fail(errcodes.ParseError, "expected variant name in enum declaration", p.curToken)
			return nil
		}
		decl.Variants = append(decl.Variants, p.curToken.Literal)
		p.advance()

		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return decl
}

// parseImportStatement parses the three forms from spec.md §4.2:
// `import name;`, `import name from "path";`, `import { a, b } from "path";`.
func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	p.advance() // consume 'import'

	stmt := &ast.ImportStatement{Token: tok}

	if p.curIs(lexer.LBRACE) {
		p.advance()
		for !p.curIs(lexer.RBRACE) {
			if !p.curIs(lexer.IDENT) {
				p.fail(errcodes.ParseError, "expected name in import list", p.curToken)
				return nil
			}
			stmt.Names = append(stmt.Names, p.curToken.Literal)
			p.advance()
			if p.curIs(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if !p.expect(lexer.RBRACE) {
			return nil
		}
		if !p.expect(lexer.FROM) {
			return nil
		}
		if !p.curIs(lexer.STRING) {
			p.fail(errcodes.ParseError, "expected module path string after 'from'", p.curToken)
			return nil
		}
		stmt.ModulePath = p.curToken.Literal
		p.advance()
		if !p.expect(lexer.SEMICOLON) {
			return nil
		}
		return stmt
	}

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected module name after 'import'", p.curToken)
		return nil
	}
	alias := p.curToken.Literal
	stmt.Alias = alias
	stmt.ModulePath = alias
	p.advance()

	if p.curIs(lexer.FROM) {
		p.advance()
		if !p.curIs(lexer.STRING) {
			p.fail(errcodes.ParseError, "expected module path string after 'from'", p.curToken)
			return nil
		}
		stmt.ModulePath = p.curToken.Literal
		p.advance()
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}
