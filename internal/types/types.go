// Package types defines Raven's static type lattice: the small set of
// types the checker and evaluator agree on, plus the widening rule that
// keeps them in sync.
package types

import "fmt"

// Kind distinguishes the basic shapes a Type can take.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindVoid
	KindArray
	KindStruct
	KindEnum
	KindUnknown // element type of an empty array literal, unified at binding
)

// Type is Raven's static type: one of the scalar kinds, or a parameterized
// Array/Struct/Enum. Struct and Enum carry the declared type name; Array
// carries its element Type.
type Type struct {
	Kind    Kind
	Name    string // Struct/Enum name
	Element *Type  // Array element type
}

var (
	Int     = Type{Kind: KindInt}
	Float   = Type{Kind: KindFloat}
	Bool    = Type{Kind: KindBool}
	Str     = Type{Kind: KindString}
	Void    = Type{Kind: KindVoid}
	Unknown = Type{Kind: KindUnknown}
)

// Array builds the type of an array whose elements have type elem.
func Array(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Element: &e}
}

// StructOf builds the type of a named struct.
func StructOf(name string) Type {
	return Type{Kind: KindStruct, Name: name}
}

// EnumOf builds the type of a named enum.
func EnumOf(name string) Type {
	return Type{Kind: KindEnum, Name: name}
}

// TypeKind renders the kind as an upper-case tag, in the style of a
// compiler's internal type-name dump ("INT", "ARRAY", ...).
func (t Type) TypeKind() string {
	switch t.Kind {
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindBool:
		return "BOOL"
	case KindString:
		return "STRING"
	case KindVoid:
		return "VOID"
	case KindArray:
		return "ARRAY"
	case KindStruct:
		return "STRUCT"
	case KindEnum:
		return "ENUM"
	default:
		return "UNKNOWN"
	}
}

// String renders the type the way it would appear in a Raven type
// annotation or error message: "int", "float", "bool", "string", "void",
// "T[]", "Point", "Color".
func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindArray:
		if t.Element != nil {
			return fmt.Sprintf("%s[]", t.Element.String())
		}
		return "[]"
	case KindStruct, KindEnum:
		return t.Name
	default:
		return "unknown"
	}
}

// Equals reports structural type equality. Two arrays are equal if their
// element types are equal; two structs/enums are equal if they share a
// declared name. Unknown is only equal to itself — callers that want
// "unifies with" semantics should use Widens instead.
func (t Type) Equals(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		if t.Element == nil || other.Element == nil {
			return t.Element == other.Element
		}
		return t.Element.Equals(*other.Element)
	case KindStruct, KindEnum:
		return t.Name == other.Name
	default:
		return true
	}
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return t.Kind == KindInt || t.Kind == KindFloat
}

// Widens reports whether a value of type from may be used where a value
// of type to is expected, per spec.md Invariant 2: the only implicit
// conversion is Int -> Float. An Unknown source (the empty array literal)
// widens to anything; an Unknown element inside an array widens likewise.
func Widens(from, to Type) bool {
	if from.Equals(to) {
		return true
	}
	if from.Kind == KindUnknown {
		return true
	}
	if from.Kind == KindInt && to.Kind == KindFloat {
		return true
	}
	if from.Kind == KindArray && to.Kind == KindArray {
		if from.Element == nil || to.Element == nil {
			return from.Element == to.Element
		}
		return Widens(*from.Element, *to.Element)
	}
	return false
}

// Widen returns the common numeric result type of a binary arithmetic
// expression per spec.md §4.3: Int⊕Int -> Int, anything involving a
// Float -> Float. Callers must only invoke this after confirming both
// sides are numeric.
func Widen(a, b Type) Type {
	if a.Kind == KindFloat || b.Kind == KindFloat {
		return Float
	}
	return Int
}
