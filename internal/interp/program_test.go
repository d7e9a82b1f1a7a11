package interp

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/parser"
	"github.com/martian56/raven/internal/semantic"
)

// testBuiltins stands in for internal/builtins, which this package cannot
// import without creating an import cycle (builtins already imports
// interp for Value/BuiltinFunc). It covers just the built-ins these
// fixtures exercise.
func testBuiltins() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		"print": func(ctx *CallContext, args []Value) (Value, error) {
			for idx, v := range args {
				if idx > 0 {
					fmt.Fprint(ctx.Stdout, " ")
				}
				fmt.Fprint(ctx.Stdout, v.String())
			}
			fmt.Fprintln(ctx.Stdout)
			return Void, nil
		},
		"enum_from_string": func(ctx *CallContext, args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, errcodes.Tag(errcodes.ArityError, "enum_from_string() expects 2 arguments, got %d", len(args))
			}
			enumName, ok1 := args[0].(*StringValue)
			variant, ok2 := args[1].(*StringValue)
			if !ok1 || !ok2 {
				return nil, errcodes.Tag(errcodes.TypeError, "enum_from_string() expects two strings")
			}
			if !ctx.LookupEnumVariant(enumName.Value, variant.Value) {
				return nil, errcodes.Tag(errcodes.VariantError, "enum %s has no variant %s", enumName.Value, variant.Value)
			}
			return &EnumValue{EnumName: enumName.Value, Variant: variant.Value}, nil
		},
	}
}

// runProgram parses, type-checks, and evaluates source, returning
// everything `print` wrote to stdout. It fails the test on a parse or
// type error since every fixture here is expected to be valid.
func runProgram(t *testing.T, source string) string {
	t.Helper()

	p := parser.New(source, "<test>")
	program := p.ParseProgram()
	if p.Err() != nil {
		t.Fatalf("parse error: %v", p.Err())
	}

	an := semantic.NewAnalyzer(source, "<test>")
	if errs := an.Analyze(program); len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("type errors: %s", strings.Join(msgs, "; "))
	}

	var buf bytes.Buffer
	interpreter := New(source, "<test>", WithStdout(&buf), WithBuiltins(testBuiltins()))
	if err := interpreter.Run(program); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return buf.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	out := runProgram(t, `let x: int = 2 + 3 * 4; print(x);`)
	if out != "14\n" {
		t.Fatalf("got %q, want %q", out, "14\n")
	}
}

func TestFactorialRecursion(t *testing.T) {
	out := runProgram(t, `
fun factorial(n: int) -> int {
	if (n <= 1) { return 1; }
	return n * factorial(n - 1);
}
print(factorial(5));
`)
	if out != "120\n" {
		t.Fatalf("got %q, want %q", out, "120\n")
	}
}

func TestArrayReferenceSemantics(t *testing.T) {
	out := runProgram(t, `
let xs: int[] = [1, 2, 3];
xs.push(4);
let ys: int[] = xs;
ys[0] = 9;
print(xs);
print(ys);
`)
	want := "[9, 2, 3, 4]\n[9, 2, 3, 4]\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestStructFieldMutation(t *testing.T) {
	out := runProgram(t, `
struct Point { x: int, y: int }
let p: Point = Point { x: 1, y: 2 };
print(p.x);
p.y = 7;
print(p.y);
`)
	want := "1\n7\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEnumFromString(t *testing.T) {
	out := runProgram(t, `
enum Status { A, B }
let s: Status = enum_from_string("Status", "B");
print(s);
`)
	if out != "Status::B\n" {
		t.Fatalf("got %q, want %q", out, "Status::B\n")
	}
}

func TestWhileLoop(t *testing.T) {
	out := runProgram(t, `
let i: int = 0;
while (i < 3) {
	print(i);
	i = i + 1;
}
`)
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q, want %q", out, "0\n1\n2\n")
	}
}
