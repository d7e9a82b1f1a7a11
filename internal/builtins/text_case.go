package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

// builtinUpper uppercases s using Unicode case mapping rather than a
// byte-wise ASCII transform, so it behaves correctly on non-ASCII
// scripts as well.
func builtinUpper(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	s, err := stringArg(args, 0, "upper")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "upper() expects 1 argument, got %d", len(args))
	}
	return &interp.StringValue{Value: upperCaser.String(s)}, nil
}

// builtinLower lowercases s using Unicode case mapping.
func builtinLower(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	s, err := stringArg(args, 0, "lower")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errcodes.Tag(errcodes.ArityError, "lower() expects 1 argument, got %d", len(args))
	}
	return &interp.StringValue{Value: lowerCaser.String(s)}, nil
}
