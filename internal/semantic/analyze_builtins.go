package semantic

import (
	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/types"
)

// builtinSignatures is the set of names reserved for built-ins
// (spec.md §4.5 plus the upper/lower/to_json/json_get supplements) —
// used only to route analyzeCallExpression to checkBuiltinCall instead
// of the user-function table.
var builtinSignatures = map[string]bool{
	"print":            true,
	"input":            true,
	"len":              true,
	"type":             true,
	"format":           true,
	"read_file":        true,
	"write_file":       true,
	"append_file":      true,
	"file_exists":      true,
	"enum_from_string": true,
	"upper":            true,
	"lower":            true,
	"to_json":          true,
	"json_get":         true,
}

// checkBuiltinCall type-checks a call to one of the built-in names.
// Each built-in has a fixed arity except `print` and `format`, which
// accept a trailing variadic tail of any type (spec.md §4.5).
func (a *Analyzer) checkBuiltinCall(e *ast.CallExpression, name string, _ bool) types.Type {
	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.analyzeExpression(arg)
	}

	switch name {
	case "print":
		return types.Void

	case "input":
		a.requireArgs(e, name, argTypes, types.Str)
		return types.Str

	case "len":
		if len(argTypes) != 1 {
			a.addErrorAt(errcodes.ArityError, e, "'len' expects 1 argument, got %d", len(argTypes))
			return types.Unknown
		}
		t := argTypes[0]
		if t.Kind != types.KindString && t.Kind != types.KindArray && t.Kind != types.KindUnknown {
			a.addErrorAt(errcodes.TypeError, e, "'len' expects a string or array, got %s", t.String())
		}
		return types.Int

	case "type":
		if len(argTypes) != 1 {
			a.addErrorAt(errcodes.ArityError, e, "'type' expects 1 argument, got %d", len(argTypes))
		}
		return types.Str

	case "format":
		if len(argTypes) < 1 {
			a.addErrorAt(errcodes.ArityError, e, "'format' expects at least 1 argument")
			return types.Unknown
		}
		if !argTypes[0].Equals(types.Str) {
			a.addErrorAt(errcodes.TypeError, e, "'format' template must be a string, got %s", argTypes[0].String())
		}
		return types.Str

	case "read_file":
		a.requireArgs(e, name, argTypes, types.Str)
		return types.Str
	case "write_file", "append_file":
		a.requireArgs(e, name, argTypes, types.Str, types.Str)
		return types.Void
	case "file_exists":
		a.requireArgs(e, name, argTypes, types.Str)
		return types.Bool

	case "enum_from_string":
		a.requireArgs(e, name, argTypes, types.Str, types.Str)
		// The enum's concrete identity is only known once the first
		// argument's literal value is known (at evaluation time), so
		// static analysis can't narrow the result past Unknown here;
		// the evaluator performs the actual variant lookup and error.
		return types.Unknown

	case "upper", "lower":
		a.requireArgs(e, name, argTypes, types.Str)
		return types.Str

	case "to_json":
		if len(argTypes) != 1 {
			a.addErrorAt(errcodes.ArityError, e, "'to_json' expects 1 argument, got %d", len(argTypes))
		}
		return types.Str

	case "json_get":
		a.requireArgs(e, name, argTypes, types.Str, types.Str)
		return types.Str
	}

	a.addErrorAt(errcodes.Internal, e, "unregistered builtin '%s'", name)
	return types.Unknown
}

func (a *Analyzer) requireArgs(e *ast.CallExpression, name string, got []types.Type, want ...types.Type) {
	if len(got) != len(want) {
		a.addErrorAt(errcodes.ArityError, e, "'%s' expects %d argument(s), got %d", name, len(want), len(got))
		return
	}
	for i, w := range want {
		if !types.Widens(got[i], w) {
			a.addErrorAt(errcodes.TypeError, e, "'%s' argument %d: cannot pass %s as %s", name, i+1, got[i].String(), w.String())
		}
	}
}
