// Package parser implements Raven's recursive-descent, Pratt-precedence
// parser: tokens in, a typed AST out. Each stage reports the first error
// and stops (spec.md §2), so the parser collects at most one error before
// aborting.
package parser

import (
	"fmt"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/lexer"
)

// Precedence levels, lowest to highest, per spec.md §4.2.
const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	EQUALS_PREC
	COMPARE_PREC
	SUM_PREC
	PRODUCT_PREC
	PREFIX_PREC
	POSTFIX_PREC // call, index, field access, enum path
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       OR_PREC,
	lexer.AND:      AND_PREC,
	lexer.EQ:       EQUALS_PREC,
	lexer.NOT_EQ:   EQUALS_PREC,
	lexer.LT:       COMPARE_PREC,
	lexer.GT:       COMPARE_PREC,
	lexer.LT_EQ:    COMPARE_PREC,
	lexer.GT_EQ:    COMPARE_PREC,
	lexer.PLUS:     SUM_PREC,
	lexer.MINUS:    SUM_PREC,
	lexer.ASTERISK: PRODUCT_PREC,
	lexer.SLASH:    PRODUCT_PREC,
	lexer.PERCENT:  PRODUCT_PREC,
	lexer.LPAREN:   POSTFIX_PREC,
	lexer.LBRACKET: POSTFIX_PREC,
	lexer.DOT:      POSTFIX_PREC,
	lexer.DCOLON:   POSTFIX_PREC,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into a *ast.Program. It keeps exactly one
// token of lookahead (cur/peek) as required by spec.md §4.2.
type Parser struct {
	l      *lexer.Lexer
	source string
	file   string

	curToken  lexer.Token
	peekToken lexer.Token

	err *errcodes.CompilerError // first error only; parsing aborts once set

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	// suppressStructLiteralOnce disables struct-literal recognition for
	// the next identifier prefix-parse inside a statement's leading
	// expression, and is cleared once that expression ends. It implements the
	// statement-start disambiguation rule from spec.md §9: `Name { ... }`
	// at the head of a statement is an identifier followed by a block,
	// never a struct literal — struct literals only occur in expression
	// positions reached from inside another construct (let/assign RHS,
	// call arguments, array elements, ...).
	suppressStructLiteralOnce bool
}

// New creates a Parser over source text, with file used only for error
// messages (may be empty).
func New(source, file string) *Parser {
	p := &Parser{l: lexer.New(source), source: source, file: file}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifierOrStructLiteral,
		lexer.INT:      p.parseIntLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBoolLiteral,
		lexer.FALSE:    p.parseBoolLiteral,
		lexer.NOT:      p.parseUnaryExpression,
		lexer.MINUS:    p.parseUnaryExpression,
		lexer.LPAREN:   p.parseGroupedExpression,
		lexer.LBRACKET: p.parseArrayLiteral,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseBinaryExpression,
		lexer.MINUS:    p.parseBinaryExpression,
		lexer.ASTERISK: p.parseBinaryExpression,
		lexer.SLASH:    p.parseBinaryExpression,
		lexer.PERCENT:  p.parseBinaryExpression,
		lexer.EQ:       p.parseBinaryExpression,
		lexer.NOT_EQ:   p.parseBinaryExpression,
		lexer.LT:       p.parseBinaryExpression,
		lexer.GT:       p.parseBinaryExpression,
		lexer.LT_EQ:    p.parseBinaryExpression,
		lexer.GT_EQ:    p.parseBinaryExpression,
		lexer.AND:      p.parseBinaryExpression,
		lexer.OR:       p.parseBinaryExpression,
		lexer.LPAREN:   p.parseCallExpression,
		lexer.LBRACKET: p.parseIndexExpression,
		lexer.DOT:      p.parseFieldOrMethodExpression,
		lexer.DCOLON:   p.parseEnumPathExpression,
	}

	p.advance()
	p.advance()
	return p
}

// Err returns the first parse error, or nil if parsing succeeded.
func (p *Parser) Err() *errcodes.CompilerError { return p.err }

func (p *Parser) fail(kind errcodes.Kind, msg string, pos lexer.Token) {
	if p.err != nil {
		return // first error wins
	}
	p.err = errcodes.New(kind, msg, pos.Pos, p.source, p.file)
}

func (p *Parser) failed() bool { return p.err != nil }

// advance pulls the next token from the lexer and promotes the lexer's
// first recorded error (invalid escape, unterminated string, ...) to a
// LexError CompilerError, so a lexical failure aborts parsing instead of
// silently producing a recovered token (spec.md §4.1, §7).
func (p *Parser) advance() {
	p.curToken = p.peekToken
	before := len(p.l.Errors())
	p.peekToken = p.l.NextToken()
	if errs := p.l.Errors(); len(errs) > before && p.err == nil {
		lexErr := errs[before]
		p.err = errcodes.New(errcodes.LexError, lexErr.Message, lexErr.Pos, p.source, p.file)
	}
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekToken.Type == tt }

// expect advances past curToken if it has type tt, else records
// ExpectedToken and returns false.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.advance()
		return true
	}
	p.fail(errcodes.ParseError,
		fmt.Sprintf("expected %s, got %s %q", tt, p.curToken.Type, p.curToken.Literal),
		p.curToken)
	return false
}

func peekPrecedence(t lexer.Token) int {
	if prec, ok := precedences[t.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program. On the
// first error, parsing stops and the partial program is still returned
// (callers should check Err() before using it) — this matches the
// "parser totality" property from spec.md §8.1: either a full AST, or a
// single error with a valid span, never a silently partial success used
// as if it were complete.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curIs(lexer.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	return program
}
