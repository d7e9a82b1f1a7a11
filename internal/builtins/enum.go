package builtins

import (
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

// builtinEnumFromString looks up a variant by name on a declared enum,
// returning it if present (spec.md §4.5, §8.2 round-trip with EnumPath).
func builtinEnumFromString(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) != 2 {
		return nil, errcodes.Tag(errcodes.ArityError, "enum_from_string() expects 2 arguments, got %d", len(args))
	}
	enumName, err := stringArg(args, 0, "enum_from_string")
	if err != nil {
		return nil, err
	}
	variant, err := stringArg(args, 1, "enum_from_string")
	if err != nil {
		return nil, err
	}
	if ctx.LookupEnumVariant == nil || !ctx.LookupEnumVariant(enumName, variant) {
		return nil, errcodes.Tag(errcodes.VariantError, "enum '%s' has no variant '%s'", enumName, variant)
	}
	return &interp.EnumValue{EnumName: enumName, Variant: variant}, nil
}
