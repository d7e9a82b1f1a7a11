// Package builtins implements Raven's process-wide registry of named
// callables (spec.md §4.5): print/input, len/type/format, file I/O, and
// enum_from_string, plus a handful of supplemental string/JSON helpers
// that round out the ambient stack. Each function matches
// interp.BuiltinFunc so the whole registry wires into an Interpreter via
// interp.WithBuiltins(builtins.All()).
package builtins

import (
	"fmt"
	"io"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

// All returns the complete built-in registry.
func All() map[string]interp.BuiltinFunc {
	return map[string]interp.BuiltinFunc{
		"print":            builtinPrint,
		"input":            builtinInput,
		"len":              builtinLen,
		"type":             builtinType,
		"format":           builtinFormat,
		"read_file":        builtinReadFile,
		"write_file":       builtinWriteFile,
		"append_file":      builtinAppendFile,
		"file_exists":      builtinFileExists,
		"enum_from_string": builtinEnumFromString,
		"upper":            builtinUpper,
		"lower":            builtinLower,
		"to_json":          builtinToJSON,
		"json_get":         builtinJSONGet,
	}
}

// builtinPrint writes each value's textual form separated by a single
// space, followed by one trailing newline (spec.md §4.5).
func builtinPrint(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	for idx, v := range args {
		if idx > 0 {
			fmt.Fprint(ctx.Stdout, " ")
		}
		fmt.Fprint(ctx.Stdout, v.String())
	}
	fmt.Fprintln(ctx.Stdout)
	return interp.Void, nil
}

// builtinInput writes prompt to stdout, then reads one line from stdin
// with its trailing newline stripped.
func builtinInput(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "input() expects 1 argument, got %d", len(args))
	}
	prompt, ok := args[0].(*interp.StringValue)
	if !ok {
		return nil, errcodes.Tag(errcodes.TypeError, "input() expects a string argument")
	}
	fmt.Fprint(ctx.Stdout, prompt.Value)

	line, err := ctx.Stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errcodes.Tag(errcodes.IOError, "input(): %v", err)
	}
	line = trimTrailingNewline(line)
	return &interp.StringValue{Value: line}, nil
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// builtinLen returns the element count of a String or Array(T).
func builtinLen(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "len() expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *interp.StringValue:
		return &interp.IntValue{Value: int64(len([]rune(v.Value)))}, nil
	case *interp.ArrayValue:
		return &interp.IntValue{Value: int64(len(v.Elements))}, nil
	default:
		return nil, errcodes.Tag(errcodes.TypeError, "len() does not accept a %s", v.Type())
	}
}

// builtinType reports the runtime type name of a value via
// interp.TypeName, so every array reports the bare name "Array".
func builtinType(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "type() expects 1 argument, got %d", len(args))
	}
	return &interp.StringValue{Value: interp.TypeName(args[0])}, nil
}
