package builtins

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

func newCtx(stdout *bytes.Buffer, stdin string) *interp.CallContext {
	return &interp.CallContext{
		Stdout: stdout,
		Stdin:  bufio.NewReader(strings.NewReader(stdin)),
		LookupEnumVariant: func(enumName, variant string) bool {
			return enumName == "Status" && (variant == "A" || variant == "B")
		},
	}
}

func str(s string) *interp.StringValue { return &interp.StringValue{Value: s} }

func TestBuiltinPrint(t *testing.T) {
	var buf bytes.Buffer
	ctx := newCtx(&buf, "")
	_, err := builtinPrint(ctx, []interp.Value{str("a"), &interp.IntValue{Value: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "a 1\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestBuiltinInput(t *testing.T) {
	var buf bytes.Buffer
	ctx := newCtx(&buf, "hello\n")
	v, err := builtinInput(ctx, []interp.Value{str("> ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.StringValue).Value != "hello" {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}
	if buf.String() != "> " {
		t.Fatalf("prompt not written: %q", buf.String())
	}
}

func TestBuiltinLen(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	v, err := builtinLen(ctx, []interp.Value{str("héllo")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.IntValue).Value != 5 {
		t.Fatalf("got %v, want 5 (rune count)", v)
	}
}

func TestBuiltinFormat(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	v, err := builtinFormat(ctx, []interp.Value{str("{} and {}"), &interp.IntValue{Value: 1}, &interp.BoolValue{Value: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.StringValue).Value != "1 and true" {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}
}

func TestBuiltinFormatMissingArgument(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	_, err := builtinFormat(ctx, []interp.Value{str("{} and {}"), &interp.IntValue{Value: 1}})
	tagged, ok := err.(*errcodes.Tagged)
	if !ok || tagged.Kind != errcodes.ArityError {
		t.Fatalf("expected an ArityError for a missing placeholder argument, got %v", err)
	}
}

func TestBuiltinType(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	cases := []struct {
		v    interp.Value
		want string
	}{
		{&interp.IntValue{Value: 1}, "int"},
		{&interp.FloatValue{Value: 1.5}, "float"},
		{&interp.BoolValue{Value: true}, "bool"},
		{str("hi"), "String"},
		{interp.Void, "void"},
		{&interp.ArrayValue{Elements: []interp.Value{&interp.IntValue{Value: 1}}}, "Array"},
		{&interp.StructValue{TypeName: "Point", Fields: map[string]interp.Value{}}, "Struct:Point"},
		{&interp.EnumValue{EnumName: "Status", Variant: "A"}, "Enum:Status"},
	}
	for _, c := range cases {
		v, err := builtinType(ctx, []interp.Value{c.v})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := v.(*interp.StringValue).Value; got != c.want {
			t.Fatalf("type(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestBuiltinEnumFromString(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	v, err := builtinEnumFromString(ctx, []interp.Value{str("Status"), str("A")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ev := v.(*interp.EnumValue)
	if ev.EnumName != "Status" || ev.Variant != "A" {
		t.Fatalf("got %+v", ev)
	}

	_, err = builtinEnumFromString(ctx, []interp.Value{str("Status"), str("Z")})
	if err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
	tagged, ok := err.(*errcodes.Tagged)
	if !ok || tagged.Kind != errcodes.VariantError {
		t.Fatalf("expected a VariantError, got %v", err)
	}
}

func TestBuiltinUpperLower(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	v, err := builtinUpper(ctx, []interp.Value{str("café")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.StringValue).Value != "CAFÉ" {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}

	v, err = builtinLower(ctx, []interp.Value{str("CAFÉ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.StringValue).Value != "café" {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}
}

func TestBuiltinArityErrors(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	_, err := builtinLen(ctx, []interp.Value{})
	tagged, ok := err.(*errcodes.Tagged)
	if !ok || tagged.Kind != errcodes.ArityError {
		t.Fatalf("expected an ArityError, got %v", err)
	}
}
