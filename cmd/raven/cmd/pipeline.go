package cmd

import (
	"os"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/builtins"
	"github.com/martian56/raven/internal/config"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
	"github.com/martian56/raven/internal/module"
	"github.com/martian56/raven/internal/parser"
	"github.com/martian56/raven/internal/semantic"
)

// readInput resolves the evalExpr/file-argument pattern shared by every
// subcommand: an inline -e string or a named file. With neither, it
// returns errNoInput; standard input is not read.
func readInput(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", readErr
		}
		return string(data), args[0], nil
	}
	return "", "", errNoInput
}

var errNoInput = errNoInputT{}

type errNoInputT struct{}

func (errNoInputT) Error() string { return "provide a file path or use -e for inline code" }

// parseAndCheck runs the lex -> parse -> type-check stages, returning
// the AST only if every stage succeeded. Parse/lex failures and type
// errors are both reported via CompilerError so callers format them
// uniformly.
func parseAndCheck(source, filename string) (*ast.Program, []*errcodes.CompilerError) {
	p := parser.New(source, filename)
	program := p.ParseProgram()
	if p.Err() != nil {
		return nil, []*errcodes.CompilerError{p.Err()}
	}

	an := semantic.NewAnalyzer(source, filename)
	if errs := an.Analyze(program); len(errs) > 0 {
		return nil, errs
	}
	return program, nil
}

// newInterpreter builds an Interpreter wired with the built-in registry
// and a module resolver whose search path is RAVEN_PATH plus any
// raven.yaml module_paths found in the current working directory
// (SPEC_FULL.md §4.6.a).
func newInterpreter(source, filename string, stdout *os.File) *interp.Interpreter {
	libPaths := module.LibraryPathsFromEnv(os.Getenv("RAVEN_PATH"))
	if cfg, err := config.Load("raven.yaml"); err == nil {
		libPaths = append(libPaths, cfg.ModulePaths...)
	}
	resolver := module.NewResolver(libPaths)

	return interp.New(source, filename,
		interp.WithBuiltins(builtins.All()),
		interp.WithImporter(resolver),
		interp.WithStdout(stdout),
	)
}

// parseOnly runs just the lex/parse stage, skipping type checking — used
// by `run --no-check` and by `parse` and `fmt`, which only need the AST.
func parseOnly(source, filename string) (*ast.Program, []*errcodes.CompilerError) {
	p := parser.New(source, filename)
	program := p.ParseProgram()
	if p.Err() != nil {
		return nil, []*errcodes.CompilerError{p.Err()}
	}
	return program, nil
}

// isTerminal reports whether f looks like an interactive terminal, used
// to decide whether error output gets ANSI color. NO_COLOR and a "dumb"
// TERM both disable it outright, matching common CLI convention without
// pulling in a dedicated terminal-detection dependency.
func isTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
