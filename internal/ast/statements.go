package ast

import (
	"bytes"
	"strings"

	"github.com/martian56/raven/internal/lexer"
	"github.com/martian56/raven/internal/source"
)

// BlockStatement is a `{ ... }` sequence of statements; it is both the
// body of control-flow constructs and the unit the evaluator's return
// unwinding stops at.
type BlockStatement struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() source.Position { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl is `let name[: Type] = expr;`.
type VarDecl struct {
	Token        lexer.Token // the 'let' token
	Name         string
	DeclaredType *TypeAnnotation // nil if inferred
	Value        Expression
	IsExported   bool
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() source.Position { return v.Token.Pos }
func (v *VarDecl) String() string {
	var out bytes.Buffer
	if v.IsExported {
		out.WriteString("export ")
	}
	out.WriteString("let " + v.Name)
	if v.DeclaredType != nil {
		out.WriteString(": " + v.DeclaredType.String())
	}
	out.WriteString(" = " + v.Value.String() + ";")
	return out.String()
}

// AssignStatement is `target = expr;` where target is any legal
// assignment target (see IsAssignTarget).
type AssignStatement struct {
	Token  lexer.Token // the '=' token
	Target Expression
	Value  Expression
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStatement) Pos() source.Position { return a.Target.Pos() }
func (a *AssignStatement) String() string {
	return a.Target.String() + " = " + a.Value.String() + ";"
}

// ExprStatement wraps an expression evaluated for its side effects (e.g.
// a bare call), discarding its value.
type ExprStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (e *ExprStatement) statementNode()       {}
func (e *ExprStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStatement) Pos() source.Position { return e.Token.Pos }
func (e *ExprStatement) String() string       { return e.Expression.String() + ";" }

// ElseIfClause is one `elseif (cond) { ... }` link in an If chain.
type ElseIfClause struct {
	Condition Expression
	Block     *BlockStatement
}

// IfStatement is `if (cond) {...} elseif (cond) {...}* else {...}?`.
type IfStatement struct {
	Token       lexer.Token // the 'if' token
	Condition   Expression
	Then        *BlockStatement
	ElseIfs     []ElseIfClause
	Else        *BlockStatement // nil if absent
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) Pos() source.Position { return s.Token.Pos }
func (s *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + s.Condition.String() + ") " + s.Then.String())
	for _, ei := range s.ElseIfs {
		out.WriteString(" elseif (" + ei.Condition.String() + ") " + ei.Block.String())
	}
	if s.Else != nil {
		out.WriteString(" else " + s.Else.String())
	}
	return out.String()
}

// WhileStatement is `while (cond) { ... }`.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStatement) Pos() source.Position { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// ForStatement is the C-style `for (init; cond; step) { ... }` loop.
// Init and Step may be nil for the empty-clause form.
type ForStatement struct {
	Token     lexer.Token
	Init      Statement // *VarDecl or *AssignStatement, or nil
	Condition Expression
	Step      Statement // *AssignStatement, or nil
	Body      *BlockStatement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForStatement) Pos() source.Position { return s.Token.Pos }
func (s *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if s.Init != nil {
		out.WriteString(strings.TrimSuffix(s.Init.String(), ";"))
	}
	out.WriteString("; " + s.Condition.String() + "; ")
	if s.Step != nil {
		out.WriteString(strings.TrimSuffix(s.Step.String(), ";"))
	}
	out.WriteString(") " + s.Body.String())
	return out.String()
}

// ReturnStatement is `return expr?;`.
type ReturnStatement struct {
	Token lexer.Token
	Value Expression // nil for bare `return;`
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) Pos() source.Position { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// Param is one function parameter: `name: Type`.
type Param struct {
	Name string
	Type *TypeAnnotation
}

// FuncDecl is `fun name(params) -> ReturnType { ... }`.
type FuncDecl struct {
	Token      lexer.Token
	Name       string
	Params     []Param
	ReturnType *TypeAnnotation // nil means void
	Body       *BlockStatement
	IsExported bool
}

func (f *FuncDecl) statementNode()       {}
func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) Pos() source.Position { return f.Token.Pos }
func (f *FuncDecl) String() string {
	var out bytes.Buffer
	if f.IsExported {
		out.WriteString("export ")
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	out.WriteString("fun " + f.Name + "(" + strings.Join(params, ", ") + ")")
	if f.ReturnType != nil {
		out.WriteString(" -> " + f.ReturnType.String())
	}
	out.WriteString(" " + f.Body.String())
	return out.String()
}

// StructField is one `name: Type` member of a struct declaration.
type StructField struct {
	Name string
	Type *TypeAnnotation
}

// StructDecl is `struct Name { field: Type, ... }`.
type StructDecl struct {
	Token      lexer.Token
	Name       string
	Fields     []StructField
	IsExported bool
}

func (s *StructDecl) statementNode()       {}
func (s *StructDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructDecl) Pos() source.Position { return s.Token.Pos }
func (s *StructDecl) String() string {
	var out bytes.Buffer
	if s.IsExported {
		out.WriteString("export ")
	}
	out.WriteString("struct " + s.Name + " { ")
	for i, f := range s.Fields {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(f.Name + ": " + f.Type.String())
	}
	out.WriteString(" }")
	return out.String()
}

// EnumDecl is `enum Name { Variant, Variant, ... }`.
type EnumDecl struct {
	Token      lexer.Token
	Name       string
	Variants   []string
	IsExported bool
}

func (e *EnumDecl) statementNode()       {}
func (e *EnumDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EnumDecl) Pos() source.Position { return e.Token.Pos }
func (e *EnumDecl) String() string {
	var out bytes.Buffer
	if e.IsExported {
		out.WriteString("export ")
	}
	out.WriteString("enum " + e.Name + " { " + strings.Join(e.Variants, ", ") + " }")
	return out.String()
}

// ImportStatement is one of the three import forms described in spec.md
// §4.2: `import name;`, `import name from "path";`, or
// `import { a, b } from "path";`.
type ImportStatement struct {
	Token      lexer.Token
	ModulePath string   // resolved module name ("name" or the quoted path)
	Alias      string   // non-empty for `import name [from ...]`
	Names      []string // non-empty for `import { a, b } from ...`
}

func (i *ImportStatement) statementNode()       {}
func (i *ImportStatement) TokenLiteral() string { return i.Token.Literal }
func (i *ImportStatement) Pos() source.Position { return i.Token.Pos }
func (i *ImportStatement) String() string {
	if len(i.Names) > 0 {
		return "import { " + strings.Join(i.Names, ", ") + " } from \"" + i.ModulePath + "\";"
	}
	if i.ModulePath != i.Alias {
		return "import " + i.Alias + " from \"" + i.ModulePath + "\";"
	}
	return "import " + i.Alias + ";"
}
