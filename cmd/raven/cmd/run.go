package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martian56/raven/internal/errcodes"
)

var (
	runEvalExpr string
	runDumpAST  bool
	runNoCheck  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Raven program",
	Long: `run lexes, parses, type-checks, and evaluates a Raven program, either
from a file argument or an inline expression passed via -e.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, filename, err := readInput(runEvalExpr, args)
		if err != nil {
			return err
		}

		color := isTerminal(os.Stderr)

		if runNoCheck {
			return runWithoutCheck(source, filename, color)
		}

		program, errs := parseAndCheck(source, filename)
		if len(errs) > 0 {
			fmt.Fprint(os.Stderr, errcodes.FormatAll(errs, color))
			os.Exit(1)
		}

		if runDumpAST {
			fmt.Println(program.String())
			return nil
		}

		interpreter := newInterpreter(source, filename, os.Stdout)
		if err := interpreter.Run(program); err != nil {
			reportRuntimeError(err, color)
			os.Exit(2)
		}
		return nil
	},
}

// runWithoutCheck skips the static type-checking stage (--no-check),
// running straight from a successful parse. Lex/parse errors still exit 1;
// a failure the type checker would otherwise have caught surfaces instead
// as a runtime error and exits 2.
func runWithoutCheck(source, filename string, color bool) error {
	program, errs := parseOnly(source, filename)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, errcodes.FormatAll(errs, color))
		os.Exit(1)
	}

	interpreter := newInterpreter(source, filename, os.Stdout)
	if err := interpreter.Run(program); err != nil {
		reportRuntimeError(err, color)
		os.Exit(2)
	}
	return nil
}

// reportRuntimeError formats a runtime error the same way a parse/type
// error is formatted, so both stages give source-anchored diagnostics.
func reportRuntimeError(err error, color bool) {
	if ce, ok := err.(*errcodes.CompilerError); ok {
		fmt.Fprint(os.Stderr, ce.Format(color))
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func init() {
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate an inline expression instead of reading a file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed program instead of running it")
	runCmd.Flags().BoolVar(&runNoCheck, "no-check", false, "skip static type checking")
	rootCmd.AddCommand(runCmd)
}
