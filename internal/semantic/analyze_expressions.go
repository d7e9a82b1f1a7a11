package semantic

import (
	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/types"
)

// analyzeExpression type-checks expr, stamps the resolved type onto the
// node via SetType (consumed later by the evaluator for widening
// coercions), and returns that type. On failure it records an error and
// returns types.Unknown so that callers can keep checking without
// cascading spurious errors.
func (a *Analyzer) analyzeExpression(expr ast.Expression) types.Type {
	t := a.analyzeExpressionUntyped(expr)
	expr.SetType(&t)
	return t
}

func (a *Analyzer) analyzeExpressionUntyped(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return types.Int
	case *ast.FloatLiteral:
		return types.Float
	case *ast.StringLiteral:
		return types.Str
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.BinaryExpression:
		return a.analyzeBinaryExpression(e)
	case *ast.UnaryExpression:
		return a.analyzeUnaryExpression(e)
	case *ast.CallExpression:
		return a.analyzeCallExpression(e)
	case *ast.IndexExpression:
		return a.analyzeIndexExpression(e)
	case *ast.FieldAccessExpression:
		return a.analyzeFieldAccessExpression(e)
	case *ast.MethodCallExpression:
		return a.analyzeMethodCallExpression(e)
	case *ast.EnumPathExpression:
		return a.analyzeEnumPathExpression(e)
	case *ast.StructLiteral:
		return a.analyzeStructLiteral(e)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(e)
	default:
		a.addErrorAt(errcodes.Internal, expr, "unhandled expression type %T", expr)
		return types.Unknown
	}
}

func (a *Analyzer) analyzeIdentifier(ident *ast.Identifier) types.Type {
	if sym, ok := a.symbols.Resolve(ident.Value); ok {
		return sym.Type
	}
	if _, ok := a.functions[ident.Value]; ok {
		a.addErrorAt(errcodes.TypeError, ident, "'%s' is a function and cannot be used as a value", ident.Value)
		return types.Unknown
	}
	a.addErrorAt(errcodes.NameError, ident, "undefined name '%s'", ident.Value)
	return types.Unknown
}

func (a *Analyzer) analyzeBinaryExpression(e *ast.BinaryExpression) types.Type {
	left := a.analyzeExpression(e.Left)
	right := a.analyzeExpression(e.Right)

	switch e.Operator {
	case "+":
		if left.Equals(types.Str) || right.Equals(types.Str) {
			return types.Str
		}
		return a.checkArithmetic(e, left, right)
	case "-", "*", "/", "%":
		return a.checkArithmetic(e, left, right)
	case "==", "!=":
		if left.Kind != types.KindUnknown && right.Kind != types.KindUnknown &&
			!types.Widens(left, right) && !types.Widens(right, left) {
			a.addErrorAt(errcodes.TypeError, e, "'%s' requires operands of the same type, got %s and %s",
				e.Operator, left.String(), right.String())
		}
		return types.Bool
	case "<", ">", "<=", ">=":
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			a.addErrorAt(errcodes.TypeError, e, "comparison operator '%s' requires numeric operands, got %s and %s",
				e.Operator, left.String(), right.String())
		}
		return types.Bool
	case "&&", "||":
		if !left.Equals(types.Bool) || !right.Equals(types.Bool) {
			a.addErrorAt(errcodes.TypeError, e, "'%s' requires bool operands, got %s and %s",
				e.Operator, left.String(), right.String())
		}
		return types.Bool
	default:
		a.addErrorAt(errcodes.Internal, e, "unknown binary operator '%s'", e.Operator)
		return types.Unknown
	}
}

func (a *Analyzer) checkArithmetic(e *ast.BinaryExpression, left, right types.Type) types.Type {
	if !types.IsNumeric(left) || !types.IsNumeric(right) {
		a.addErrorAt(errcodes.TypeError, e, "arithmetic operator '%s' requires numeric operands, got %s and %s",
			e.Operator, left.String(), right.String())
		return types.Unknown
	}
	return types.Widen(left, right)
}

func (a *Analyzer) analyzeUnaryExpression(e *ast.UnaryExpression) types.Type {
	operand := a.analyzeExpression(e.Operand)
	switch e.Operator {
	case "-":
		if !types.IsNumeric(operand) {
			a.addErrorAt(errcodes.TypeError, e, "unary '-' requires a numeric operand, got %s", operand.String())
			return types.Unknown
		}
		return operand
	case "!":
		if !operand.Equals(types.Bool) {
			a.addErrorAt(errcodes.TypeError, e, "unary '!' requires a bool operand, got %s", operand.String())
			return types.Unknown
		}
		return types.Bool
	default:
		a.addErrorAt(errcodes.Internal, e, "unknown unary operator '%s'", e.Operator)
		return types.Unknown
	}
}

func (a *Analyzer) analyzeCallExpression(e *ast.CallExpression) types.Type {
	ident, ok := e.Callee.(*ast.Identifier)
	if !ok {
		a.addErrorAt(errcodes.TypeError, e, "expression is not callable")
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return types.Unknown
	}

	if builtin, ok := builtinSignatures[ident.Value]; ok {
		return a.checkBuiltinCall(e, ident.Value, builtin)
	}

	info, ok := a.functions[ident.Value]
	if !ok {
		// Not a locally declared function — it may be a name pulled in by
		// `import { name } from "...";`, whose real signature is only
		// known once the module resolver has analyzed the target file.
		// Such names are defined with Unknown type; calls through them
		// are checked leniently rather than rejected outright.
		if sym, ok := a.symbols.Resolve(ident.Value); ok {
			for _, arg := range e.Args {
				a.analyzeExpression(arg)
			}
			if sym.Type.Kind != types.KindUnknown {
				a.addErrorAt(errcodes.TypeError, e, "'%s' is not callable", ident.Value)
			}
			return types.Unknown
		}
		a.addErrorAt(errcodes.NameError, e, "undefined function '%s'", ident.Value)
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return types.Unknown
	}

	if len(e.Args) != len(info.Params) {
		a.addErrorAt(errcodes.ArityError, e, "function '%s' expects %d argument(s), got %d",
			ident.Value, len(info.Params), len(e.Args))
	}

	for i, arg := range e.Args {
		argType := a.analyzeExpression(arg)
		if i < len(info.Params) && !types.Widens(argType, info.Params[i]) {
			a.addErrorAt(errcodes.TypeError, arg, "argument %d of '%s': cannot pass %s as %s",
				i+1, ident.Value, argType.String(), info.Params[i].String())
		}
	}

	return info.ReturnType
}

func (a *Analyzer) analyzeIndexExpression(e *ast.IndexExpression) types.Type {
	receiver := a.analyzeExpression(e.Receiver)
	idxType := a.analyzeExpression(e.Index)

	if !idxType.Equals(types.Int) && idxType.Kind != types.KindUnknown {
		a.addErrorAt(errcodes.TypeError, e, "index must be int, got %s", idxType.String())
	}

	switch receiver.Kind {
	case types.KindArray:
		return *receiver.Element
	case types.KindString:
		return types.Str
	case types.KindUnknown:
		return types.Unknown
	default:
		a.addErrorAt(errcodes.IndexError, e, "type %s is not indexable", receiver.String())
		return types.Unknown
	}
}

func (a *Analyzer) analyzeFieldAccessExpression(e *ast.FieldAccessExpression) types.Type {
	receiver := a.analyzeExpression(e.Receiver)
	if receiver.Kind == types.KindUnknown {
		return types.Unknown
	}
	if receiver.Kind != types.KindStruct {
		a.addErrorAt(errcodes.FieldError, e, "type %s has no fields", receiver.String())
		return types.Unknown
	}
	info, ok := a.structs[receiver.Name]
	if !ok {
		if a.importedTypes[receiver.Name] {
			return types.Unknown
		}
		a.addErrorAt(errcodes.Internal, e, "unknown struct type %s", receiver.Name)
		return types.Unknown
	}
	fieldType, ok := info.Fields[e.Name]
	if !ok {
		a.addErrorAt(errcodes.FieldError, e, "struct '%s' has no field '%s'", receiver.Name, e.Name)
		return types.Unknown
	}
	return fieldType
}

// analyzeMethodCallExpression checks the fixed set of built-in methods
// on String and Array(T) from spec.md §4.5: String.slice/split/replace,
// Array(T).push/pop/slice/join (join is Array(String) only).
func (a *Analyzer) analyzeMethodCallExpression(e *ast.MethodCallExpression) types.Type {
	receiver := a.analyzeExpression(e.Receiver)
	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.analyzeExpression(arg)
	}

	if receiver.Kind == types.KindUnknown {
		return types.Unknown
	}

	switch receiver.Kind {
	case types.KindString:
		switch e.Name {
		case "slice":
			a.checkMethodArgs(e, "String.slice", argTypes, types.Int, types.Int)
			return types.Str
		case "split":
			a.checkMethodArgs(e, "String.split", argTypes, types.Str)
			return types.Array(types.Str)
		case "replace":
			a.checkMethodArgs(e, "String.replace", argTypes, types.Str, types.Str)
			return types.Str
		}
	case types.KindArray:
		elem := *receiver.Element
		switch e.Name {
		case "push":
			a.checkMethodArgs(e, "Array.push", argTypes, elem)
			return types.Void
		case "pop":
			a.checkMethodArgs(e, "Array.pop", argTypes)
			return elem
		case "slice":
			a.checkMethodArgs(e, "Array.slice", argTypes, types.Int, types.Int)
			return receiver
		case "join":
			if !elem.Equals(types.Str) {
				a.addErrorAt(errcodes.TypeError, e, "'join' is only defined on Array(String), got %s", receiver.String())
				return types.Unknown
			}
			a.checkMethodArgs(e, "Array.join", argTypes, types.Str)
			return types.Str
		}
	}

	a.addErrorAt(errcodes.FieldError, e, "type %s has no method '%s'", receiver.String(), e.Name)
	return types.Unknown
}

func (a *Analyzer) checkMethodArgs(e *ast.MethodCallExpression, label string, got []types.Type, want ...types.Type) {
	if len(got) != len(want) {
		a.addErrorAt(errcodes.ArityError, e, "%s expects %d argument(s), got %d", label, len(want), len(got))
		return
	}
	for i, w := range want {
		if !types.Widens(got[i], w) {
			a.addErrorAt(errcodes.TypeError, e, "%s argument %d: cannot pass %s as %s", label, i+1, got[i].String(), w.String())
		}
	}
}

func (a *Analyzer) analyzeEnumPathExpression(e *ast.EnumPathExpression) types.Type {
	info, ok := a.enums[e.Enum]
	if !ok {
		if a.importedTypes[e.Enum] {
			return types.EnumOf(e.Enum)
		}
		a.addErrorAt(errcodes.NameError, e, "undefined enum '%s'", e.Enum)
		return types.Unknown
	}
	if !info.Variants[e.Variant] {
		a.addErrorAt(errcodes.VariantError, e, "enum '%s' has no variant '%s'", e.Enum, e.Variant)
		return types.Unknown
	}
	return types.EnumOf(e.Enum)
}

func (a *Analyzer) analyzeStructLiteral(e *ast.StructLiteral) types.Type {
	info, ok := a.structs[e.TypeName]
	if !ok {
		for _, f := range e.Fields {
			a.analyzeExpression(f.Value)
		}
		if a.importedTypes[e.TypeName] {
			return types.StructOf(e.TypeName)
		}
		a.addErrorAt(errcodes.NameError, e, "undefined struct '%s'", e.TypeName)
		return types.Unknown
	}

	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		fieldType := a.analyzeExpression(f.Value)
		expected, known := info.Fields[f.Name]
		if !known {
			a.addErrorAt(errcodes.FieldError, e, "struct '%s' has no field '%s'", e.TypeName, f.Name)
			continue
		}
		if seen[f.Name] {
			a.addErrorAt(errcodes.FieldError, e, "duplicate field '%s' in struct literal", f.Name)
			continue
		}
		seen[f.Name] = true
		if !types.Widens(fieldType, expected) {
			a.addErrorAt(errcodes.TypeError, e, "field '%s': cannot assign %s to %s", f.Name, fieldType.String(), expected.String())
		}
	}

	for _, name := range info.FieldOrder {
		if !seen[name] {
			a.addErrorAt(errcodes.FieldError, e, "struct literal for '%s' is missing field '%s'", e.TypeName, name)
		}
	}

	return types.StructOf(e.TypeName)
}

func (a *Analyzer) analyzeArrayLiteral(e *ast.ArrayLiteral) types.Type {
	if len(e.Elements) == 0 {
		return types.Array(types.Unknown)
	}

	elemType := a.analyzeExpression(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := a.analyzeExpression(el)
		if types.Widens(t, elemType) {
			continue
		}
		if types.Widens(elemType, t) {
			elemType = t
			continue
		}
		a.addErrorAt(errcodes.TypeError, e, "array elements must share a type: found both %s and %s", elemType.String(), t.String())
	}
	return types.Array(elemType)
}
