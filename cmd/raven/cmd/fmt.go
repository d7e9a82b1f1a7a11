package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martian56/raven/internal/errcodes"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat a Raven program",
	Long: `fmt parses a Raven program and re-prints its canonical textual form.
Running it twice in a row on its own output must produce identical text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		source := string(data)

		program, errs := parseOnly(source, args[0])
		if len(errs) > 0 {
			fmt.Fprint(os.Stderr, errcodes.FormatAll(errs, isTerminal(os.Stderr)))
			os.Exit(1)
		}

		formatted := program.String() + "\n"
		if fmtWrite {
			return os.WriteFile(args[0], []byte(formatted), 0o644)
		}
		fmt.Print(formatted)
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the formatted output back to the file")
	rootCmd.AddCommand(fmtCmd)
}
