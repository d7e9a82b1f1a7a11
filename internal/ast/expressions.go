package ast

import (
	"bytes"
	"strings"

	"github.com/martian56/raven/internal/lexer"
	"github.com/martian56/raven/internal/source"
)

// BinaryExpression is a binary operation: `left op right`.
type BinaryExpression struct {
	typedExprBase
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpression) Pos() source.Position { return e.Token.Pos }
func (e *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(e.Left.String())
	out.WriteString(" " + e.Operator + " ")
	out.WriteString(e.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpression is a prefix operation: `!x` or `-x`.
type UnaryExpression struct {
	typedExprBase
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (e *UnaryExpression) expressionNode()      {}
func (e *UnaryExpression) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpression) Pos() source.Position { return e.Token.Pos }
func (e *UnaryExpression) String() string {
	return "(" + e.Operator + e.Operand.String() + ")"
}

// CallExpression is a function call: `callee(args...)`.
type CallExpression struct {
	typedExprBase
	Token  lexer.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) Pos() source.Position { return e.Callee.Pos() }
func (e *CallExpression) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// IndexExpression is `receiver[index]`.
type IndexExpression struct {
	typedExprBase
	Token    lexer.Token // the '[' token
	Receiver Expression
	Index    Expression
}

func (e *IndexExpression) expressionNode()      {}
func (e *IndexExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IndexExpression) Pos() source.Position { return e.Receiver.Pos() }
func (e *IndexExpression) String() string {
	return e.Receiver.String() + "[" + e.Index.String() + "]"
}

// FieldAccessExpression is `receiver.name`.
type FieldAccessExpression struct {
	typedExprBase
	Token    lexer.Token // the '.' token
	Receiver Expression
	Name     string
}

func (e *FieldAccessExpression) expressionNode()      {}
func (e *FieldAccessExpression) TokenLiteral() string { return e.Token.Literal }
func (e *FieldAccessExpression) Pos() source.Position { return e.Receiver.Pos() }
func (e *FieldAccessExpression) String() string {
	return e.Receiver.String() + "." + e.Name
}

// MethodCallExpression is `receiver.name(args...)`, distinguished from a
// FieldAccessExpression by the immediately following '('.
type MethodCallExpression struct {
	typedExprBase
	Token    lexer.Token // the 'name' token
	Receiver Expression
	Name     string
	Args     []Expression
}

func (e *MethodCallExpression) expressionNode()      {}
func (e *MethodCallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *MethodCallExpression) Pos() source.Position { return e.Receiver.Pos() }
func (e *MethodCallExpression) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Receiver.String() + "." + e.Name + "(" + strings.Join(args, ", ") + ")"
}

// EnumPathExpression is `EnumName::VariantName`.
type EnumPathExpression struct {
	typedExprBase
	Token   lexer.Token // the enum name token
	Enum    string
	Variant string
}

func (e *EnumPathExpression) expressionNode()      {}
func (e *EnumPathExpression) TokenLiteral() string { return e.Token.Literal }
func (e *EnumPathExpression) Pos() source.Position { return e.Token.Pos }
func (e *EnumPathExpression) String() string       { return e.Enum + "::" + e.Variant }

// StructFieldLiteral is one `name: expr` entry inside a StructLiteral.
type StructFieldLiteral struct {
	Name  string
	Value Expression
}

// StructLiteral is `TypeName { field: expr, ... }`.
type StructLiteral struct {
	typedExprBase
	Token    lexer.Token // the type name token
	TypeName string
	Fields   []StructFieldLiteral
}

func (e *StructLiteral) expressionNode()      {}
func (e *StructLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StructLiteral) Pos() source.Position { return e.Token.Pos }
func (e *StructLiteral) String() string {
	var out bytes.Buffer
	out.WriteString(e.TypeName + " { ")
	for i, f := range e.Fields {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(f.Name + ": " + f.Value.String())
	}
	out.WriteString(" }")
	return out.String()
}

// ArrayLiteral is `[elem, elem, ...]`.
type ArrayLiteral struct {
	typedExprBase
	Token    lexer.Token // the '[' token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *ArrayLiteral) Pos() source.Position { return e.Token.Pos }
func (e *ArrayLiteral) String() string {
	elems := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = el.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// IsAssignTarget reports whether expr is a legal assignment target per
// spec.md: an Identifier, or an Index/FieldAccess whose receiver is
// itself a legal target.
func IsAssignTarget(expr Expression) bool {
	switch e := expr.(type) {
	case *Identifier:
		return true
	case *IndexExpression:
		return IsAssignTarget(e.Receiver)
	case *FieldAccessExpression:
		return IsAssignTarget(e.Receiver)
	default:
		return false
	}
}
