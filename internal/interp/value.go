// Package interp implements Raven's tree-walking evaluator: environments,
// runtime values, and the statement/expression walk that executes a
// type-checked AST (spec.md §5).
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/martian56/raven/internal/ast"
)

// Value is any runtime value the evaluator produces or consumes.
type Value interface {
	Type() string
	String() string
}

// IntValue is a 64-bit signed integer.
type IntValue struct{ Value int64 }

func (v *IntValue) Type() string   { return "int" }
func (v *IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// FloatValue is a 64-bit IEEE-754 float.
type FloatValue struct{ Value float64 }

func (v *FloatValue) Type() string { return "float" }
func (v *FloatValue) String() string {
	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// BoolValue is `true` or `false`.
type BoolValue struct{ Value bool }

func (v *BoolValue) Type() string   { return "bool" }
func (v *BoolValue) String() string { return strconv.FormatBool(v.Value) }

// StringValue is a UTF-8 string.
type StringValue struct{ Value string }

func (v *StringValue) Type() string   { return "string" }
func (v *StringValue) String() string { return v.Value }

// VoidValue is the sole value of type void, returned by statements and
// procedures with no return value.
type VoidValue struct{}

func (v *VoidValue) Type() string   { return "void" }
func (v *VoidValue) String() string { return "void" }

// Void is the shared VoidValue instance; void carries no data so every
// caller can share one.
var Void = &VoidValue{}

// ArrayValue is a mutable, reference-semantic array (spec.md §3): a
// `let b = a` binding copies the pointer, not the backing slice, so
// mutations through b are visible through a — matching the teacher's
// *ArrayValue pointer-based design.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Type() string { return "array" }
func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StructValue is a mutable, reference-semantic struct instance, keyed
// by field name. Like ArrayValue, it is always passed and stored by
// pointer so `let q = p; q.x = 9;` is visible through p.
type StructValue struct {
	TypeName string
	Fields   map[string]Value
	// FieldOrder preserves declaration order for stable printing.
	FieldOrder []string
}

func (v *StructValue) Type() string { return v.TypeName }
func (v *StructValue) String() string {
	parts := make([]string, len(v.FieldOrder))
	for i, name := range v.FieldOrder {
		parts[i] = fmt.Sprintf("%s: %s", name, v.Fields[name].String())
	}
	return v.TypeName + " { " + strings.Join(parts, ", ") + " }"
}

// FunctionValue is a callable exported from a module, bound into the
// importing scope by `import { name } from "...";` or reached through a
// whole-module namespace (`mod.name(...)`). Owner is the Interpreter
// that declared it, so a call resolves sibling functions/structs/enums
// against its defining module rather than the caller's.
type FunctionValue struct {
	Decl  *ast.FuncDecl
	Owner *Interpreter
}

func (v *FunctionValue) Type() string   { return "function" }
func (v *FunctionValue) String() string { return "<function " + v.Decl.Name + ">" }

// EnumValue is one variant of a declared enum.
type EnumValue struct {
	EnumName string
	Variant  string
}

func (v *EnumValue) Type() string   { return v.EnumName }
func (v *EnumValue) String() string { return v.EnumName + "::" + v.Variant }

// StructTypeValue carries an exported struct declaration across a module
// boundary (spec.md §4.6) so the importing file's struct literals can
// construct instances of it. It is not a constructible/printable program
// value itself — execImportStatement unwraps it into the importing
// Interpreter's own struct table rather than binding it in an Environment.
type StructTypeValue struct {
	Decl *ast.StructDecl
}

func (v *StructTypeValue) Type() string   { return "struct-decl" }
func (v *StructTypeValue) String() string { return "<struct " + v.Decl.Name + ">" }

// EnumTypeValue is StructTypeValue's counterpart for exported enums.
type EnumTypeValue struct {
	Decl *ast.EnumDecl
}

func (v *EnumTypeValue) Type() string   { return "enum-decl" }
func (v *EnumTypeValue) String() string { return "<enum " + v.Decl.Name + ">" }

// TypeName renders the runtime type name the way the `type()` built-in
// reports it (spec.md §4.5): `"int" "float" "bool" "String" "Array"
// "Struct:<N>" "Enum:<E>" "void"`.
func TypeName(v Value) string {
	switch vv := v.(type) {
	case *IntValue:
		return "int"
	case *FloatValue:
		return "float"
	case *BoolValue:
		return "bool"
	case *StringValue:
		return "String"
	case *VoidValue:
		return "void"
	case *ArrayValue:
		return "Array"
	case *StructValue:
		return "Struct:" + vv.TypeName
	case *EnumValue:
		return "Enum:" + vv.EnumName
	default:
		return v.Type()
	}
}
