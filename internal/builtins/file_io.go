package builtins

import (
	"os"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

func stringArg(args []interp.Value, idx int, fn string) (string, error) {
	if idx >= len(args) {
		return "", errcodes.Tag(errcodes.ArityError, "%s() missing argument %d", fn, idx+1)
	}
	s, ok := args[idx].(*interp.StringValue)
	if !ok {
		return "", errcodes.Tag(errcodes.TypeError, "%s() argument %d must be a string", fn, idx+1)
	}
	return s.Value, nil
}

// builtinReadFile returns the full contents of path as a string.
func builtinReadFile(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "read_file() expects 1 argument, got %d", len(args))
	}
	path, err := stringArg(args, 0, "read_file")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errcodes.Tag(errcodes.IOError, "read_file(%q): %v", path, err)
	}
	return &interp.StringValue{Value: string(data)}, nil
}

// builtinWriteFile overwrites path with contents, creating it if needed.
func builtinWriteFile(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, errcodes.Tag(errcodes.ArityError, "write_file() expects 2 arguments, got %d", len(args))
	}
	path, err := stringArg(args, 0, "write_file")
	if err != nil {
		return nil, err
	}
	contents, err := stringArg(args, 1, "write_file")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return nil, errcodes.Tag(errcodes.IOError, "write_file(%q): %v", path, err)
	}
	return interp.Void, nil
}

// builtinAppendFile appends contents to path, creating it if needed.
func builtinAppendFile(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, errcodes.Tag(errcodes.ArityError, "append_file() expects 2 arguments, got %d", len(args))
	}
	path, err := stringArg(args, 0, "append_file")
	if err != nil {
		return nil, err
	}
	contents, err := stringArg(args, 1, "append_file")
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errcodes.Tag(errcodes.IOError, "append_file(%q): %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(contents); err != nil {
		return nil, errcodes.Tag(errcodes.IOError, "append_file(%q): %v", path, err)
	}
	return interp.Void, nil
}

// builtinFileExists reports whether path names an existing file or
// directory.
func builtinFileExists(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "file_exists() expects 1 argument, got %d", len(args))
	}
	path, err := stringArg(args, 0, "file_exists")
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(path)
	return &interp.BoolValue{Value: statErr == nil}, nil
}
