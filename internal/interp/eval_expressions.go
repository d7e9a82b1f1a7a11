package interp

import (
	"strings"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
)

// evalExpression evaluates expr against env and returns the resulting
// runtime Value.
func (i *Interpreter) evalExpression(expr ast.Expression, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return &IntValue{Value: e.Value}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Value: e.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil
	case *ast.BoolLiteral:
		return &BoolValue{Value: e.Value}, nil
	case *ast.Identifier:
		return i.evalIdentifier(e, env)
	case *ast.BinaryExpression:
		return i.evalBinaryExpression(e, env)
	case *ast.UnaryExpression:
		return i.evalUnaryExpression(e, env)
	case *ast.CallExpression:
		return i.evalCallExpression(e, env)
	case *ast.IndexExpression:
		return i.evalIndexExpression(e, env)
	case *ast.FieldAccessExpression:
		return i.evalFieldAccessExpression(e, env)
	case *ast.MethodCallExpression:
		return i.evalMethodCallExpression(e, env)
	case *ast.EnumPathExpression:
		return i.evalEnumPathExpression(e)
	case *ast.StructLiteral:
		return i.evalStructLiteral(e, env)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(e, env)
	default:
		return nil, i.runtimeErr(errcodes.Internal, expr, "unhandled expression type %T", expr)
	}
}

func (i *Interpreter) evalIdentifier(ident *ast.Identifier, env *Environment) (Value, error) {
	if v, ok := env.Get(ident.Value); ok {
		return v, nil
	}
	return nil, i.runtimeErr(errcodes.NameError, ident, "undefined name '%s'", ident.Value)
}

// asFloat widens an Int/Float value to a float64, used once either
// operand of an arithmetic op is a float (spec.md §2, "Int widens to
// Float").
func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntValue:
		return float64(n.Value), true
	case *FloatValue:
		return n.Value, true
	default:
		return 0, false
	}
}

func (i *Interpreter) evalBinaryExpression(e *ast.BinaryExpression, env *Environment) (Value, error) {
	left, err := i.evalExpression(e.Left, env)
	if err != nil {
		return nil, err
	}

	// Short-circuit before evaluating the right operand.
	if e.Operator == "&&" {
		if !left.(*BoolValue).Value {
			return &BoolValue{Value: false}, nil
		}
		right, err := i.evalExpression(e.Right, env)
		if err != nil {
			return nil, err
		}
		return &BoolValue{Value: right.(*BoolValue).Value}, nil
	}
	if e.Operator == "||" {
		if left.(*BoolValue).Value {
			return &BoolValue{Value: true}, nil
		}
		right, err := i.evalExpression(e.Right, env)
		if err != nil {
			return nil, err
		}
		return &BoolValue{Value: right.(*BoolValue).Value}, nil
	}

	right, err := i.evalExpression(e.Right, env)
	if err != nil {
		return nil, err
	}

	if e.Operator == "+" {
		if ls, ok := left.(*StringValue); ok {
			return &StringValue{Value: ls.Value + right.String()}, nil
		}
		if rs, ok := right.(*StringValue); ok {
			return &StringValue{Value: left.String() + rs.Value}, nil
		}
	}

	switch e.Operator {
	case "+", "-", "*", "/", "%":
		return i.evalArithmetic(e, left, right)
	case "==":
		return &BoolValue{Value: valuesEqual(left, right)}, nil
	case "!=":
		return &BoolValue{Value: !valuesEqual(left, right)}, nil
	case "<", ">", "<=", ">=":
		return i.evalComparison(e, left, right)
	default:
		return nil, i.runtimeErr(errcodes.Internal, e, "unknown binary operator '%s'", e.Operator)
	}
}

func (i *Interpreter) evalArithmetic(e *ast.BinaryExpression, left, right Value) (Value, error) {
	li, lIsInt := left.(*IntValue)
	ri, rIsInt := right.(*IntValue)
	if lIsInt && rIsInt {
		switch e.Operator {
		case "+":
			return &IntValue{Value: li.Value + ri.Value}, nil
		case "-":
			return &IntValue{Value: li.Value - ri.Value}, nil
		case "*":
			return &IntValue{Value: li.Value * ri.Value}, nil
		case "/":
			if ri.Value == 0 {
				return nil, i.runtimeErr(errcodes.DivisionByZero, e, "division by zero")
			}
			return &IntValue{Value: li.Value / ri.Value}, nil
		case "%":
			if ri.Value == 0 {
				return nil, i.runtimeErr(errcodes.DivisionByZero, e, "division by zero")
			}
			return &IntValue{Value: li.Value % ri.Value}, nil
		}
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, i.runtimeErr(errcodes.TypeError, e, "arithmetic operator '%s' requires numeric operands", e.Operator)
	}
	switch e.Operator {
	case "+":
		return &FloatValue{Value: lf + rf}, nil
	case "-":
		return &FloatValue{Value: lf - rf}, nil
	case "*":
		return &FloatValue{Value: lf * rf}, nil
	case "/":
		if rf == 0 {
			return nil, i.runtimeErr(errcodes.DivisionByZero, e, "division by zero")
		}
		return &FloatValue{Value: lf / rf}, nil
	case "%":
		return nil, i.runtimeErr(errcodes.TypeError, e, "'%%' requires int operands")
	default:
		return nil, i.runtimeErr(errcodes.Internal, e, "unknown arithmetic operator '%s'", e.Operator)
	}
}

func (i *Interpreter) evalComparison(e *ast.BinaryExpression, left, right Value) (Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, i.runtimeErr(errcodes.TypeError, e, "comparison operator '%s' requires numeric operands", e.Operator)
	}
	switch e.Operator {
	case "<":
		return &BoolValue{Value: lf < rf}, nil
	case ">":
		return &BoolValue{Value: lf > rf}, nil
	case "<=":
		return &BoolValue{Value: lf <= rf}, nil
	case ">=":
		return &BoolValue{Value: lf >= rf}, nil
	default:
		return nil, i.runtimeErr(errcodes.Internal, e, "unknown comparison operator '%s'", e.Operator)
	}
}

// valuesEqual implements `==`/`!=` across the value kinds the checker
// allows it on: numeric values compare by widened value, everything
// else compares by its own identity/content.
func valuesEqual(left, right Value) bool {
	if lf, lok := asFloat(left); lok {
		if rf, rok := asFloat(right); rok {
			return lf == rf
		}
	}
	switch l := left.(type) {
	case *BoolValue:
		r, ok := right.(*BoolValue)
		return ok && l.Value == r.Value
	case *StringValue:
		r, ok := right.(*StringValue)
		return ok && l.Value == r.Value
	case *EnumValue:
		r, ok := right.(*EnumValue)
		return ok && l.EnumName == r.EnumName && l.Variant == r.Variant
	case *ArrayValue:
		r, ok := right.(*ArrayValue)
		return ok && l == r
	case *StructValue:
		r, ok := right.(*StructValue)
		return ok && l == r
	case *VoidValue:
		_, ok := right.(*VoidValue)
		return ok
	default:
		return false
	}
}

func (i *Interpreter) evalUnaryExpression(e *ast.UnaryExpression, env *Environment) (Value, error) {
	operand, err := i.evalExpression(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		switch v := operand.(type) {
		case *IntValue:
			return &IntValue{Value: -v.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -v.Value}, nil
		default:
			return nil, i.runtimeErr(errcodes.TypeError, e, "unary '-' requires a numeric operand")
		}
	case "!":
		b, ok := operand.(*BoolValue)
		if !ok {
			return nil, i.runtimeErr(errcodes.TypeError, e, "unary '!' requires a bool operand")
		}
		return &BoolValue{Value: !b.Value}, nil
	default:
		return nil, i.runtimeErr(errcodes.Internal, e, "unknown unary operator '%s'", e.Operator)
	}
}

func (i *Interpreter) evalCallExpression(e *ast.CallExpression, env *Environment) (Value, error) {
	ident, ok := e.Callee.(*ast.Identifier)
	if !ok {
		return nil, i.runtimeErr(errcodes.TypeError, e, "expression is not callable")
	}

	args, err := i.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}

	if decl, ok := i.functions[ident.Value]; ok {
		return i.callFunction(decl, args, e)
	}

	if builtin, ok := i.builtins[ident.Value]; ok {
		v, err := builtin(i.ctx, args)
		if err != nil {
			if tagged, ok := err.(*errcodes.Tagged); ok {
				return nil, i.runtimeErr(tagged.Kind, e, "%s", tagged.Message)
			}
			return nil, i.runtimeErr(errcodes.Internal, e, "%v", err)
		}
		return v, nil
	}

	if v, ok := env.Get(ident.Value); ok {
		if fn, ok := v.(*FunctionValue); ok {
			return fn.Owner.callFunction(fn.Decl, args, e)
		}
	}

	return nil, i.runtimeErr(errcodes.NameError, e, "undefined function '%s'", ident.Value)
}

func (i *Interpreter) evalArgs(exprs []ast.Expression, env *Environment) ([]Value, error) {
	args := make([]Value, len(exprs))
	for idx, a := range exprs {
		v, err := i.evalExpression(a, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}
	return args, nil
}

// callFunction runs decl's body in a fresh environment seeded only with
// its parameters — functions never close over the caller's locals
// (spec.md §4.4) — using i's own function/struct/enum tables so a
// function called through an import resolves its module's own siblings.
func (i *Interpreter) callFunction(decl *ast.FuncDecl, args []Value, at ast.Node) (Value, error) {
	if len(args) != len(decl.Params) {
		return nil, i.runtimeErr(errcodes.ArityError, at, "function '%s' expects %d argument(s), got %d",
			decl.Name, len(decl.Params), len(args))
	}

	callEnv := NewEnvironment()
	for idx, p := range decl.Params {
		callEnv.Define(p.Name, args[idx])
	}

	result, err := i.execBlock(decl.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if result.Kind == StepReturning {
		return result.Value, nil
	}
	return Void, nil
}

func (i *Interpreter) evalIndexExpression(e *ast.IndexExpression, env *Environment) (Value, error) {
	receiver, err := i.evalExpression(e.Receiver, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := i.evalExpression(e.Index, env)
	if err != nil {
		return nil, err
	}
	idx := idxVal.(*IntValue).Value

	switch r := receiver.(type) {
	case *ArrayValue:
		if idx < 0 || idx >= int64(len(r.Elements)) {
			return nil, i.runtimeErr(errcodes.IndexError, e, "array index %d out of bounds (length %d)", idx, len(r.Elements))
		}
		return r.Elements[idx], nil
	case *StringValue:
		runes := []rune(r.Value)
		if idx < 0 || idx >= int64(len(runes)) {
			return nil, i.runtimeErr(errcodes.IndexError, e, "string index %d out of bounds (length %d)", idx, len(runes))
		}
		return &StringValue{Value: string(runes[idx])}, nil
	default:
		return nil, i.runtimeErr(errcodes.TypeError, e, "cannot index a %s", receiver.Type())
	}
}

func (i *Interpreter) evalFieldAccessExpression(e *ast.FieldAccessExpression, env *Environment) (Value, error) {
	receiver, err := i.evalExpression(e.Receiver, env)
	if err != nil {
		return nil, err
	}
	st, ok := receiver.(*StructValue)
	if !ok {
		return nil, i.runtimeErr(errcodes.TypeError, e, "cannot access field on a %s", receiver.Type())
	}
	v, ok := st.Fields[e.Name]
	if !ok {
		return nil, i.runtimeErr(errcodes.FieldError, e, "struct '%s' has no field '%s'", st.TypeName, e.Name)
	}
	return v, nil
}

// evalMethodCallExpression dispatches the fixed built-in methods on
// String and Array(T) (spec.md §4.5), plus calls reached through a
// whole-module namespace value (`mod.name(...)`, spec.md §4.6).
func (i *Interpreter) evalMethodCallExpression(e *ast.MethodCallExpression, env *Environment) (Value, error) {
	receiver, err := i.evalExpression(e.Receiver, env)
	if err != nil {
		return nil, err
	}

	switch r := receiver.(type) {
	case *StringValue:
		return i.evalStringMethod(e, r, env)
	case *ArrayValue:
		return i.evalArrayMethod(e, r, env)
	case *StructValue:
		if fn, ok := r.Fields[e.Name].(*FunctionValue); ok {
			args, err := i.evalArgs(e.Args, env)
			if err != nil {
				return nil, err
			}
			return fn.Owner.callFunction(fn.Decl, args, e)
		}
		return nil, i.runtimeErr(errcodes.FieldError, e, "type %s has no method '%s'", receiver.Type(), e.Name)
	default:
		return nil, i.runtimeErr(errcodes.FieldError, e, "type %s has no method '%s'", receiver.Type(), e.Name)
	}
}

func (i *Interpreter) evalStringMethod(e *ast.MethodCallExpression, s *StringValue, env *Environment) (Value, error) {
	args, err := i.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}
	runes := []rune(s.Value)

	switch e.Name {
	case "slice":
		start := args[0].(*IntValue).Value
		end := args[1].(*IntValue).Value
		if start < 0 || end > int64(len(runes)) || start > end {
			return nil, i.runtimeErr(errcodes.IndexError, e, "slice bounds [%d:%d] out of range (length %d)", start, end, len(runes))
		}
		return &StringValue{Value: string(runes[start:end])}, nil
	case "split":
		sep := args[0].(*StringValue).Value
		parts := strings.Split(s.Value, sep)
		elems := make([]Value, len(parts))
		for idx, p := range parts {
			elems[idx] = &StringValue{Value: p}
		}
		return &ArrayValue{Elements: elems}, nil
	case "replace":
		old := args[0].(*StringValue).Value
		newS := args[1].(*StringValue).Value
		return &StringValue{Value: strings.ReplaceAll(s.Value, old, newS)}, nil
	default:
		return nil, i.runtimeErr(errcodes.FieldError, e, "string has no method '%s'", e.Name)
	}
}

func (i *Interpreter) evalArrayMethod(e *ast.MethodCallExpression, arr *ArrayValue, env *Environment) (Value, error) {
	args, err := i.evalArgs(e.Args, env)
	if err != nil {
		return nil, err
	}

	switch e.Name {
	case "push":
		arr.Elements = append(arr.Elements, args[0])
		return Void, nil
	case "pop":
		if len(arr.Elements) == 0 {
			return nil, i.runtimeErr(errcodes.IndexError, e, "pop from an empty array")
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	case "slice":
		start := args[0].(*IntValue).Value
		end := args[1].(*IntValue).Value
		if start < 0 || end > int64(len(arr.Elements)) || start > end {
			return nil, i.runtimeErr(errcodes.IndexError, e, "slice bounds [%d:%d] out of range (length %d)", start, end, len(arr.Elements))
		}
		sliced := make([]Value, end-start)
		copy(sliced, arr.Elements[start:end])
		return &ArrayValue{Elements: sliced}, nil
	case "join":
		sep := args[0].(*StringValue).Value
		parts := make([]string, len(arr.Elements))
		for idx, el := range arr.Elements {
			parts[idx] = el.(*StringValue).Value
		}
		return &StringValue{Value: strings.Join(parts, sep)}, nil
	default:
		return nil, i.runtimeErr(errcodes.FieldError, e, "array has no method '%s'", e.Name)
	}
}

func (i *Interpreter) evalEnumPathExpression(e *ast.EnumPathExpression) (Value, error) {
	return &EnumValue{EnumName: e.Enum, Variant: e.Variant}, nil
}

// evalStructLiteral allocates a fresh *StructValue so each literal
// produces a distinct, independently mutable instance (spec.md §3,
// reference semantics apply to bindings of a value, not to the literal
// that creates it).
func (i *Interpreter) evalStructLiteral(e *ast.StructLiteral, env *Environment) (Value, error) {
	decl, ok := i.structs[e.TypeName]
	if !ok {
		return nil, i.runtimeErr(errcodes.NameError, e, "undefined struct '%s'", e.TypeName)
	}

	fields := make(map[string]Value, len(decl.Fields))
	order := make([]string, len(decl.Fields))
	for idx, f := range decl.Fields {
		order[idx] = f.Name
	}

	for _, fl := range e.Fields {
		v, err := i.evalExpression(fl.Value, env)
		if err != nil {
			return nil, err
		}
		fields[fl.Name] = v
	}

	return &StructValue{TypeName: e.TypeName, Fields: fields, FieldOrder: order}, nil
}

// evalArrayLiteral allocates a fresh *ArrayValue backing slice per
// literal, matching evalStructLiteral's per-literal allocation.
func (i *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral, env *Environment) (Value, error) {
	elements := make([]Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.evalExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements[idx] = v
	}
	return &ArrayValue{Elements: elements}, nil
}
