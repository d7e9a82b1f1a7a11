// Package errcodes implements Raven's flat error-kind taxonomy (spec.md
// §7) and the source-context formatting shared by every pipeline stage.
package errcodes

import (
	"fmt"
	"strings"

	"github.com/martian56/raven/internal/source"
)

// Kind is one of the flat error kinds named in spec.md §7.
type Kind string

const (
	LexError             Kind = "LexError"
	ParseError           Kind = "ParseError"
	TypeError            Kind = "TypeError"
	NameError             Kind = "NameError"
	ArityError            Kind = "ArityError"
	IndexError             Kind = "IndexError"
	FieldError            Kind = "FieldError"
	VariantError          Kind = "VariantError"
	ImportError           Kind = "ImportError"
	IOError               Kind = "IOError"
	DivisionByZero        Kind = "DivisionByZero"
	InvalidAssignTarget   Kind = "InvalidAssignTarget"
	Internal              Kind = "Internal"
)

// CompilerError is a single pipeline failure: its kind, a human-readable
// message, the offending span (when available), and enough of the
// original source to render a caret under the failure.
type CompilerError struct {
	Kind    Kind
	Message string
	Pos     source.Position
	Source  string
	File    string
}

// New builds a CompilerError. Source and File may be empty when no file
// context is available; Error then names the file "<input>".
func New(kind Kind, message string, pos source.Position, src, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Pos: pos, Source: src, File: file}
}

// Error implements the error interface with the tests-friendly default
// format from spec.md §7: "<Kind>: <msg> at <file>:<line>:<col>".
func (e *CompilerError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s: %s at %s:%d:%d", e.Kind, e.Message, file, e.Pos.Line, e.Pos.Column)
}

// Format renders the error with a source-line gutter and a caret pointing
// at the failing column, optionally with ANSI color for TTY output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Tagged is a plain error carrying a Kind but no position, used by code
// that reports an error kind before a call site is known to attach a
// span to it — built-in functions return these, and the evaluator wraps
// them into a full CompilerError at the call site.
type Tagged struct {
	Kind    Kind
	Message string
}

func (t *Tagged) Error() string { return t.Message }

// Tag builds a Tagged error with a formatted message.
func Tag(kind Kind, format string, args ...interface{}) error {
	return &Tagged{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// FormatAll renders a slice of errors one after another, separated by a
// blank line, as the CLI driver does for a batch of parse/type errors.
func FormatAll(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(e.Format(color))
	}
	return sb.String()
}
