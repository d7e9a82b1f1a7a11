package parser

import (
	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/lexer"
)

// parseTypeAnnotation parses a type name optionally followed by any
// number of `[]` suffixes: `int`, `string[]`, `Point[][]`.
func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	if !p.curIs(lexer.IDENT) && !p.curIs(lexer.VOID) {
		p.fail(errcodes.ParseError, "expected a type name, got "+p.curToken.Type.String(), p.curToken)
		return nil
	}

	tok := p.curToken
	name := p.curToken.Literal
	if p.curIs(lexer.VOID) {
		name = "void"
	}
	p.advance()

	t := &ast.TypeAnnotation{Token: tok, Name: name}

	for p.curIs(lexer.LBRACKET) {
		if !p.peekIs(lexer.RBRACKET) {
			p.fail(errcodes.ParseError, "expected ']' to close array type", p.curToken)
			return nil
		}
		p.advance() // consume '['
		p.advance() // consume ']'
		t = &ast.TypeAnnotation{Token: tok, Element: t}
	}

	return t
}
