package builtins

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/martian56/raven/internal/interp"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	path := filepath.Join(t.TempDir(), "out.txt")

	if _, err := builtinWriteFile(ctx, []interp.Value{str(path), str("first\n")}); err != nil {
		t.Fatalf("write_file: %v", err)
	}
	if _, err := builtinAppendFile(ctx, []interp.Value{str(path), str("second\n")}); err != nil {
		t.Fatalf("append_file: %v", err)
	}

	v, err := builtinReadFile(ctx, []interp.Value{str(path)})
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	if v.(*interp.StringValue).Value != "first\nsecond\n" {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}

	exists, err := builtinFileExists(ctx, []interp.Value{str(path)})
	if err != nil {
		t.Fatalf("file_exists: %v", err)
	}
	if !exists.(*interp.BoolValue).Value {
		t.Fatal("expected file_exists to report true")
	}

	missing, err := builtinFileExists(ctx, []interp.Value{str(filepath.Join(t.TempDir(), "nope.txt"))})
	if err != nil {
		t.Fatalf("file_exists: %v", err)
	}
	if missing.(*interp.BoolValue).Value {
		t.Fatal("expected file_exists to report false for a missing file")
	}
}
