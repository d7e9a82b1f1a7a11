package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martian56/raven/internal/lexer"
)

var (
	lexEvalExpr  string
	lexShowPos   bool
	lexShowType  bool
	lexOnlyError bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Raven file or expression",
	Long: `lex tokenizes a Raven program and prints the resulting token stream,
one token per line. Useful for debugging the lexer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _, err := readInput(lexEvalExpr, args)
		if err != nil {
			return err
		}

		l := lexer.New(source)
		errorCount := 0
		for {
			tok := l.NextToken()
			if lexOnlyError && tok.Type != lexer.ILLEGAL {
				if tok.Type == lexer.EOF {
					break
				}
				continue
			}
			if tok.Type == lexer.ILLEGAL {
				errorCount++
			}
			printToken(tok)
			if tok.Type == lexer.EOF {
				break
			}
		}

		if errorCount > 0 {
			return fmt.Errorf("found %d illegal token(s)", errorCount)
		}
		return nil
	},
}

func printToken(tok lexer.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	switch {
	case tok.Type == lexer.EOF:
		out += " EOF"
	case tok.Type == lexer.ILLEGAL:
		out += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	case tok.Literal == "":
		out += fmt.Sprintf(" %s", tok.Type)
	default:
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}

func init() {
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&lexOnlyError, "only-errors", false, "show only illegal tokens")
	rootCmd.AddCommand(lexCmd)
}
