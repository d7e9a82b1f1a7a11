package parser

import (
	"strconv"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/lexer"
)

// parseExpression is the Pratt-precedence climbing loop: one prefix
// parse followed by zero or more infix extensions bound more tightly
// than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.fail(errcodes.ParseError, "no prefix parse function for "+p.curToken.Type.String(), p.curToken)
		return nil
	}
	left := prefix()

	for !p.failed() && precedence < peekPrecedence(p.curToken) {
		infix, ok := p.infixParseFns[p.curToken.Type]
		if !ok {
			break
		}
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifierOrStructLiteral() ast.Expression {
	tok := p.curToken
	suppress := p.suppressStructLiteralOnce
	p.suppressStructLiteralOnce = false
	p.advance()

	if !suppress && p.curIs(lexer.LBRACE) {
		return p.parseStructLiteral(tok)
	}
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseStructLiteral(nameTok lexer.Token) ast.Expression {
	lit := &ast.StructLiteral{Token: nameTok, TypeName: nameTok.Literal}
	p.advance() // consume '{'

	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			p.fail(errcodes.ParseError, "expected field name in struct literal", p.curToken)
			return nil
		}
		fieldName := p.curToken.Literal
		p.advance()
		if !p.expect(lexer.COLON) {
			return nil
		}
		value := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		lit.Fields = append(lit.Fields, ast.StructFieldLiteral{Name: fieldName, Value: value})

		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return lit
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.fail(errcodes.ParseError, "invalid integer literal '"+tok.Literal+"'", tok)
		return nil
	}
	p.advance()
	return &ast.IntLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.fail(errcodes.ParseError, "invalid float literal '"+tok.Literal+"'", tok)
		return nil
	}
	p.advance()
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curToken
	p.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	op := tok.Literal
	p.advance()
	operand := p.parseExpression(PREFIX_PREC)
	if p.failed() {
		return nil
	}
	return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // consume '('
	// Allow struct literals inside parens, same as any nested expression.
	saved := p.suppressStructLiteralOnce
	p.suppressStructLiteralOnce = false
	expr := p.parseExpression(LOWEST)
	p.suppressStructLiteralOnce = saved
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	p.advance() // consume '['
	lit := &ast.ArrayLiteral{Token: tok}

	for !p.curIs(lexer.RBRACKET) {
		elem := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		lit.Elements = append(lit.Elements, elem)

		if p.curIs(lexer.COMMA) {
			p.advance()
			if p.curIs(lexer.RBRACKET) { // trailing comma
				break
			}
			continue
		}
		break
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return lit
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Literal
	prec := peekPrecedence(tok)
	p.advance()
	right := p.parseExpression(prec)
	if p.failed() {
		return nil
	}
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.curToken // '('
	args := p.parseArgumentList()
	if p.failed() {
		return nil
	}
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseArgumentList() []ast.Expression {
	p.advance() // consume '('
	var args []ast.Expression

	for !p.curIs(lexer.RPAREN) {
		arg := p.parseExpression(LOWEST)
		if p.failed() {
			return nil
		}
		args = append(args, arg)

		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return args
}

func (p *Parser) parseIndexExpression(receiver ast.Expression) ast.Expression {
	tok := p.curToken // '['
	p.advance()
	idx := p.parseExpression(LOWEST)
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return &ast.IndexExpression{Token: tok, Receiver: receiver, Index: idx}
}

// parseFieldOrMethodExpression handles the `.` postfix: FieldAccess, or
// MethodCall when the field name is immediately followed by '('.
func (p *Parser) parseFieldOrMethodExpression(receiver ast.Expression) ast.Expression {
	dotTok := p.curToken // '.'
	p.advance()

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected field name after '.'", p.curToken)
		return nil
	}
	nameTok := p.curToken
	p.advance()

	if p.curIs(lexer.LPAREN) {
		args := p.parseArgumentList()
		if p.failed() {
			return nil
		}
		return &ast.MethodCallExpression{Token: nameTok, Receiver: receiver, Name: nameTok.Literal, Args: args}
	}

	return &ast.FieldAccessExpression{Token: dotTok, Receiver: receiver, Name: nameTok.Literal}
}

// parseEnumPathExpression handles `Enum::Variant`. The receiver must be a
// bare Identifier naming the enum; anything else is a parse error.
func (p *Parser) parseEnumPathExpression(receiver ast.Expression) ast.Expression {
	tok := p.curToken // '::'
	ident, ok := receiver.(*ast.Identifier)
	if !ok {
		p.fail(errcodes.ParseError, "'::' must follow an enum name", tok)
		return nil
	}
	p.advance()

	if !p.curIs(lexer.IDENT) {
		p.fail(errcodes.ParseError, "expected variant name after '::'", p.curToken)
		return nil
	}
	variant := p.curToken.Literal
	p.advance()

	return &ast.EnumPathExpression{Token: ident.Token, Enum: ident.Value, Variant: variant}
}
