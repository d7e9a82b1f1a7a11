package lexer

import "github.com/martian56/raven/internal/source"

// Token is a single lexical unit: its kind, the literal text that produced
// it, and the position of its first byte in the source.
type Token struct {
	Type    TokenType
	Literal string
	Pos     source.Position
}

// Is reports whether the token has the given type. Convenience for the
// parser's lookahead checks.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}
