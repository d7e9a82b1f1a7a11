package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
)

// BuiltinFunc is the signature every built-in function implements. args
// are already-evaluated values in call order; ctx gives access to I/O
// and the calling position for error reporting.
type BuiltinFunc func(ctx *CallContext, args []Value) (Value, error)

// CallContext is threaded through every built-in call so it can read
// stdin, write stdout, and touch the filesystem without the builtins
// package importing anything beyond Value.
type CallContext struct {
	Stdout io.Writer
	Stdin  *bufio.Reader

	// LookupEnumVariant reports whether variant is a declared variant of
	// the enum named enumName, for the enum_from_string built-in — the
	// only built-in that needs to consult the program's own declarations.
	LookupEnumVariant func(enumName, variant string) bool
}

// Importer resolves `import` statements: given the file that contains
// the import and the written module path/name, it runs that module
// (if not already cached) and returns its exported bindings keyed by
// name. internal/module implements this; internal/interp only depends
// on the interface to avoid a package cycle (module -> interp already
// needs Value).
type Importer interface {
	Resolve(fromFile, modulePath string) (map[string]Value, error)
}

// Interpreter walks a type-checked Program, threading a chain of
// Environments and a registry of top-level function/struct/enum
// declarations collected during Run's hoist pass.
type Interpreter struct {
	global *Environment

	functions map[string]*ast.FuncDecl
	structs   map[string]*ast.StructDecl
	enums     map[string]*ast.EnumDecl

	builtins map[string]BuiltinFunc
	importer Importer

	source string
	file   string

	ctx *CallContext
}

// Option configures an Interpreter at construction, in the functional-
// options style the lexer also uses.
type Option func(*Interpreter)

// WithBuiltins installs the built-in function registry (internal/builtins
// supplies this via its own All() constructor, wired by the CLI driver).
func WithBuiltins(b map[string]BuiltinFunc) Option {
	return func(i *Interpreter) { i.builtins = b }
}

// WithImporter installs the module resolver used for `import` statements.
func WithImporter(imp Importer) Option {
	return func(i *Interpreter) { i.importer = imp }
}

// WithStdout overrides where `print` writes (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.ctx.Stdout = w }
}

// WithStdin overrides where `input` reads from (default os.Stdin).
func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) { i.ctx.Stdin = bufio.NewReader(r) }
}

// New creates an Interpreter over source/file (used only for runtime
// error context).
func New(source, file string, opts ...Option) *Interpreter {
	i := &Interpreter{
		global:    NewEnvironment(),
		functions: make(map[string]*ast.FuncDecl),
		structs:   make(map[string]*ast.StructDecl),
		enums:     make(map[string]*ast.EnumDecl),
		builtins:  make(map[string]BuiltinFunc),
		source:    source,
		file:      file,
		ctx:       &CallContext{Stdout: os.Stdout, Stdin: bufio.NewReader(os.Stdin)},
	}
	i.ctx.LookupEnumVariant = func(enumName, variant string) bool {
		decl, ok := i.enums[enumName]
		if !ok {
			return false
		}
		for _, v := range decl.Variants {
			if v == variant {
				return true
			}
		}
		return false
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Globals exposes the top-level environment, used by the module
// resolver to read a sub-module's exported bindings after running it.
func (i *Interpreter) Globals() *Environment { return i.global }

// Run hoists every top-level declaration, then executes each top-level
// statement against the global environment in order.
func (i *Interpreter) Run(program *ast.Program) error {
	i.hoistDecls(program.Statements)

	for _, stmt := range program.Statements {
		switch stmt.(type) {
		case *ast.FuncDecl, *ast.StructDecl, *ast.EnumDecl:
			continue // already hoisted; nothing to execute at top level
		}
		result, err := i.execStatement(stmt, i.global)
		if err != nil {
			return err
		}
		if result.Kind == StepReturning {
			return errcodes.New(errcodes.Internal, "'return' outside of a function", stmt.Pos(), i.source, i.file)
		}
	}
	return nil
}

func (i *Interpreter) hoistDecls(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch d := stmt.(type) {
		case *ast.FuncDecl:
			i.functions[d.Name] = d
		case *ast.StructDecl:
			i.structs[d.Name] = d
		case *ast.EnumDecl:
			i.enums[d.Name] = d
		}
	}
}

func (i *Interpreter) runtimeErr(kind errcodes.Kind, pos ast.Node, format string, args ...interface{}) error {
	return errcodes.New(kind, fmt.Sprintf(format, args...), pos.Pos(), i.source, i.file)
}
