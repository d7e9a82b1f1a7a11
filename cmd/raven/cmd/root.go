// Package cmd implements Raven's cobra-based CLI driver (SPEC_FULL.md
// §6.3): run/lex/parse/check/fmt/repl/version subcommands over the
// lex -> parse -> check -> eval pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, overridable by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "raven",
	Short: "Raven language toolchain",
	Long: `raven is the reference toolchain for the Raven scripting language:
a small, statically-typed language with structs, enums, arrays, and a
file-backed module system.

Subcommands cover each stage of the pipeline independently (lex, parse,
check) alongside the end-to-end driver (run) and a line-oriented REPL.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
