package builtins

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

// builtinToJSON renders any Raven value as a JSON document, built
// incrementally with sjson rather than a single marshal call, since
// Raven values have no json struct tags to drive encoding/json.
func builtinToJSON(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "to_json() expects 1 argument, got %d", len(args))
	}
	doc, err := valueToJSON(args[0])
	if err != nil {
		return nil, errcodes.Tag(errcodes.Internal, "to_json(): %v", err)
	}
	return &interp.StringValue{Value: doc}, nil
}

// builtinJSONGet extracts the value at a gjson path from a JSON
// document, returned as its textual form.
func builtinJSONGet(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, errcodes.Tag(errcodes.ArityError, "json_get() expects 2 arguments, got %d", len(args))
	}
	doc, err := stringArg(args, 0, "json_get")
	if err != nil {
		return nil, err
	}
	path, err := stringArg(args, 1, "json_get")
	if err != nil {
		return nil, err
	}
	result := gjson.Get(doc, path)
	if !result.Exists() {
		return nil, errcodes.Tag(errcodes.FieldError, "json_get(): no value at path '%s'", path)
	}
	return &interp.StringValue{Value: result.String()}, nil
}

func valueToJSON(v interp.Value) (string, error) {
	switch vv := v.(type) {
	case *interp.IntValue:
		return strconv.FormatInt(vv.Value, 10), nil
	case *interp.FloatValue:
		return strconv.FormatFloat(vv.Value, 'g', -1, 64), nil
	case *interp.BoolValue:
		return strconv.FormatBool(vv.Value), nil
	case *interp.StringValue:
		quoted, err := json.Marshal(vv.Value)
		return string(quoted), err
	case *interp.EnumValue:
		quoted, err := json.Marshal(vv.Variant)
		return string(quoted), err
	case *interp.ArrayValue:
		doc := "[]"
		for i, el := range vv.Elements {
			elJSON, err := valueToJSON(el)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, strconv.Itoa(i), elJSON)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	case *interp.StructValue:
		doc := "{}"
		for _, name := range vv.FieldOrder {
			fieldJSON, err := valueToJSON(vv.Fields[name])
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, name, fieldJSON)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	default:
		return "null", nil
	}
}
