package builtins

import (
	"bytes"
	"testing"

	"github.com/martian56/raven/internal/interp"
)

func TestValueToJSONScalarsAndStructs(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")

	p := &interp.StructValue{
		TypeName:   "Point",
		FieldOrder: []string{"x", "y"},
		Fields: map[string]interp.Value{
			"x": &interp.IntValue{Value: 1},
			"y": &interp.IntValue{Value: 2},
		},
	}
	v, err := builtinToJSON(ctx, []interp.Value{p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := v.(*interp.StringValue).Value

	xv, err := builtinJSONGet(ctx, []interp.Value{str(doc), str("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if xv.(*interp.StringValue).Value != "1" {
		t.Fatalf("got %q", xv.(*interp.StringValue).Value)
	}

	_, err = builtinJSONGet(ctx, []interp.Value{str(doc), str("missing")})
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

func TestValueToJSONArray(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	arr := &interp.ArrayValue{Elements: []interp.Value{
		&interp.IntValue{Value: 1},
		&interp.IntValue{Value: 2},
		&interp.IntValue{Value: 3},
	}}
	v, err := builtinToJSON(ctx, []interp.Value{arr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.StringValue).Value != `[1,2,3]` {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}
}

func TestValueToJSONString(t *testing.T) {
	ctx := newCtx(&bytes.Buffer{}, "")
	v, err := builtinToJSON(ctx, []interp.Value{str(`say "hi"`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*interp.StringValue).Value != `"say \"hi\""` {
		t.Fatalf("got %q", v.(*interp.StringValue).Value)
	}
}
