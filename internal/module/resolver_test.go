package module

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/martian56/raven/internal/builtins"
	"github.com/martian56/raven/internal/interp"
	"github.com/martian56/raven/internal/parser"
	"github.com/martian56/raven/internal/semantic"
)

func writeModule(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// run parses, type-checks, and evaluates source (found at filename, so
// relative imports resolve against its directory), returning whatever
// `print` wrote.
func run(t *testing.T, filename, source string) string {
	t.Helper()

	p := parser.New(source, filename)
	program := p.ParseProgram()
	if p.Err() != nil {
		t.Fatalf("parse error: %v", p.Err())
	}

	an := semantic.NewAnalyzer(source, filename)
	if errs := an.Analyze(program); len(errs) > 0 {
		t.Fatalf("type errors: %v", errs[0])
	}

	var buf bytes.Buffer
	interpreter := interp.New(source, filename,
		interp.WithStdout(&buf),
		interp.WithBuiltins(builtins.All()),
		interp.WithImporter(NewResolver(nil)),
	)
	if err := interpreter.Run(program); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return buf.String()
}

func TestResolveExportsFunctionAndVar(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "mathutil.rv", `
export fun square(n: int) -> int { return n * n; }
export let pi: float = 3.14;
`)
	mainPath := filepath.Join(dir, "main.rv")
	out := run(t, mainPath, `
import { square, pi } from "mathutil";
print(square(4));
print(pi);
`)
	if out != "16\n3.14\n" {
		t.Fatalf("got %q", out)
	}
}

func TestResolveWholeModuleNamespace(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "mathutil.rv", `
export fun square(n: int) -> int { return n * n; }
`)
	mainPath := filepath.Join(dir, "main.rv")
	out := run(t, mainPath, `
import m from "mathutil";
print(m.square(5));
`)
	if out != "25\n" {
		t.Fatalf("got %q", out)
	}
}

func TestResolveExportsStructAndEnum(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "shapes.rv", `
export struct Point { x: int, y: int }
export enum Color { Red, Green }
`)
	mainPath := filepath.Join(dir, "main.rv")
	out := run(t, mainPath, `
import { Point, Color } from "shapes";
let p = Point { x: 1, y: 2 };
print(p.x);
let c = Color::Red;
print(c);
`)
	if out != "1\nColor::Red\n" {
		t.Fatalf("got %q", out)
	}
}

func TestResolveMissingModule(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(nil)
	_, err := r.Resolve(filepath.Join(dir, "main.rv"), "nosuchmodule")
	if err == nil {
		t.Fatal("expected an error for a missing module")
	}
}

func TestResolveCachesByCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "once.rv", `export let loaded: int = 1;`)

	r := NewResolver(nil)
	from := filepath.Join(dir, "main.rv")
	first, err := r.Resolve(from, "once")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve(from, "once")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first["loaded"] != second["loaded"] {
		t.Fatal("expected the cached resolve to return the same exports map entries")
	}
}

func TestLibraryPathsFromEnv(t *testing.T) {
	sep := string(os.PathListSeparator)
	got := LibraryPathsFromEnv("a" + sep + "" + sep + "b")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v", got)
	}
	if LibraryPathsFromEnv("") != nil {
		t.Fatal("expected nil for an empty env value")
	}
}
