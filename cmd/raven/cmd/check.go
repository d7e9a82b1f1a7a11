package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martian56/raven/internal/errcodes"
)

var checkEvalExpr string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Lex, parse, and type-check a Raven program without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, filename, err := readInput(checkEvalExpr, args)
		if err != nil {
			return err
		}

		_, errs := parseAndCheck(source, filename)
		if len(errs) > 0 {
			fmt.Fprint(os.Stderr, errcodes.FormatAll(errs, isTerminal(os.Stderr)))
			os.Exit(1)
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkEvalExpr, "eval", "e", "", "check inline code instead of reading a file")
	rootCmd.AddCommand(checkCmd)
}
