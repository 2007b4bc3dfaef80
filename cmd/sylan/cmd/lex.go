package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sylan-lang/go-sylan/internal/lexer"
	"github.com/sylan-lang/go-sylan/pkg/sylan"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

var (
	lexEval    string
	showPos    bool
	showTrivia bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Sylan file or expression",
	Long: `Tokenize (lex) a Sylan program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how Sylan
source code is tokenized.

Examples:
  # Tokenize a script file
  sylan lex script.sy

  # Tokenize an inline expression
  sylan lex -e "var x = 42"

  # Show token positions and attached trivia
  sylan lex --show-pos --show-trivia script.sy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showTrivia, "show-trivia", false, "show the trivia attached to each token")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, filename, err := loadInput(lexEval, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokenCount := 0
	for {
		lexed, err := l.Next()
		if err != nil {
			fmt.Fprintln(os.Stderr, sylan.FormatError(err, input, filename, true))
			return fmt.Errorf("lexing %s failed", filename)
		}

		printToken(lexed)
		if lexed.Token.Kind == token.EOF {
			break
		}
		tokenCount++
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
	}
	return nil
}

func printToken(lexed lexer.Lexed) {
	output := lexed.Token.String()
	if showPos {
		output += fmt.Sprintf(" @%d:%d", lexed.Position.Line, lexed.Position.Column)
	}
	if showTrivia && lexed.Trivia != "" {
		output += fmt.Sprintf(" trivia=%q", lexed.Trivia)
	}
	fmt.Println(output)
}
