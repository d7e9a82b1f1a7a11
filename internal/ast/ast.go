// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the type checker and evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/martian56/raven/internal/lexer"
	"github.com/martian56/raven/internal/source"
	"github.com/martian56/raven/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() source.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// Statement is any node that performs an action but does not itself
// produce a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed file: a flat list of top-level
// statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() source.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return source.Position{Line: 1, Column: 1}
}

// TypeAnnotation is the syntactic spelling of a type in source: a bare
// name ("int", "Point"), or an array suffix ("int[]").
type TypeAnnotation struct {
	Token   lexer.Token
	Name    string
	Element *TypeAnnotation // non-nil for "T[]"
}

func (t *TypeAnnotation) String() string {
	if t.Element != nil {
		return t.Element.String() + "[]"
	}
	return t.Name
}

func (t *TypeAnnotation) Pos() source.Position { return t.Token.Pos }

// Resolve converts a syntactic TypeAnnotation into a static types.Type.
// lookupKind resolves a bare name to Struct/Enum/Unknown-basic when it is
// not one of the built-in scalar names.
func (t *TypeAnnotation) Resolve(lookupKind func(name string) (types.Type, bool)) types.Type {
	if t == nil {
		return types.Void
	}
	if t.Element != nil {
		return types.Array(t.Element.Resolve(lookupKind))
	}
	switch t.Name {
	case "int":
		return types.Int
	case "float":
		return types.Float
	case "bool":
		return types.Bool
	case "string":
		return types.Str
	case "void":
		return types.Void
	}
	if kind, ok := lookupKind(t.Name); ok {
		return kind
	}
	return types.Unknown
}

// typedExprBase factors the Type/GetType/SetType boilerplate shared by
// every Expression implementation.
type typedExprBase struct {
	Type *types.Type
}

func (b *typedExprBase) GetType() *types.Type    { return b.Type }
func (b *typedExprBase) SetType(t *types.Type)    { b.Type = t }

// Identifier is a bare name reference: a variable, function, or
// parameter use.
type Identifier struct {
	typedExprBase
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Value }
func (i *Identifier) Pos() source.Position   { return i.Token.Pos }

// IntLiteral is an integer literal.
type IntLiteral struct {
	typedExprBase
	Token lexer.Token
	Value int64
}

func (l *IntLiteral) expressionNode()      {}
func (l *IntLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntLiteral) String() string       { return l.Token.Literal }
func (l *IntLiteral) Pos() source.Position { return l.Token.Pos }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	typedExprBase
	Token lexer.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) String() string       { return l.Token.Literal }
func (l *FloatLiteral) Pos() source.Position { return l.Token.Pos }

// stringEscaper re-applies the escapes the lexer understands, so a printed
// StringLiteral lexes back to the same Value.
var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// StringLiteral is a string literal, already unescaped by the lexer.
type StringLiteral struct {
	typedExprBase
	Token lexer.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) String() string       { return "\"" + stringEscaper.Replace(l.Value) + "\"" }
func (l *StringLiteral) Pos() source.Position { return l.Token.Pos }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	typedExprBase
	Token lexer.Token
	Value bool
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BoolLiteral) String() string       { return l.Token.Literal }
func (l *BoolLiteral) Pos() source.Position { return l.Token.Pos }
