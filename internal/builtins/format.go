package builtins

import (
	"strings"

	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
)

// builtinFormat substitutes each `{}` placeholder in the template (the
// first argument) with the textual form of the corresponding remaining
// argument, in order (spec.md §4.5, §8.2 round-trip with print).
func builtinFormat(ctx *interp.CallContext, args []interp.Value) (interp.Value, error) {
	if len(args) == 0 {
		return nil, errcodes.Tag(errcodes.ArityError, "format() expects at least 1 argument")
	}
	template, ok := args[0].(*interp.StringValue)
	if !ok {
		return nil, errcodes.Tag(errcodes.TypeError, "format() expects its first argument to be a string template")
	}

	var out strings.Builder
	rest := args[1:]
	next := 0
	s := template.Value
	for {
		i := strings.Index(s, "{}")
		if i < 0 {
			out.WriteString(s)
			break
		}
		out.WriteString(s[:i])
		if next >= len(rest) {
			return nil, errcodes.Tag(errcodes.ArityError, "format(): missing argument for placeholder %d", next+1)
		}
		out.WriteString(rest[next].String())
		next++
		s = s[i+2:]
	}
	return &interp.StringValue{Value: out.String()}, nil
}
