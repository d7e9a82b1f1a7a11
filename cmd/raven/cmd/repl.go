package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martian56/raven/internal/builtins"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/interp"
	"github.com/martian56/raven/internal/module"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start a line-oriented Raven read-eval-print loop",
	Long: `repl reads one line at a time, parses and type-checks it as a complete
program, and runs it in one interpreter kept for the whole session. Each
line is type-checked on its own, so names declared on earlier lines are
not visible to it. A line is parsed as statements only, and the value of
an expression line is not printed; only print() output appears. A line
that fails to parse or type-check is discarded; the session keeps running
(spec.md §7 error recovery).`,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	color := isTerminal(os.Stderr)
	resolver := module.NewResolver(module.LibraryPathsFromEnv(os.Getenv("RAVEN_PATH")))
	interpreter := interp.New("", "<repl>",
		interp.WithBuiltins(builtins.All()),
		interp.WithImporter(resolver),
		interp.WithStdout(os.Stdout),
	)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("raven> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			program, errs := parseAndCheck(line, "<repl>")
			if len(errs) > 0 {
				fmt.Fprint(os.Stderr, errcodes.FormatAll(errs, color))
			} else if err := interpreter.Run(program); err != nil {
				if ce, ok := err.(*errcodes.CompilerError); ok {
					fmt.Fprint(os.Stderr, ce.Format(color))
				} else {
					fmt.Fprintln(os.Stderr, "Error:", err)
				}
			}
		}
		fmt.Print("raven> ")
	}
	fmt.Println()
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(replCmd)
}
