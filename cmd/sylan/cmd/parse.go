package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sylan-lang/go-sylan/pkg/ast"
	"github.com/sylan-lang/go-sylan/pkg/sylan"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Sylan source code",
	Long: `Parse Sylan source code into an abstract syntax tree.

If no file is provided, reads from stdin.
Use -e to parse inline source from the command line.
Use --dump-ast to show the full AST structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := loadInput(parseEval, args)
	if err != nil {
		return err
	}

	file, err := sylan.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, sylan.FormatError(err, input, filename, true))
		return fmt.Errorf("parsing %s failed", filename)
	}

	if parseDumpAST {
		fmt.Print(ast.Dump(file))
	} else {
		fmt.Println("successfully parsed")
	}
	return nil
}
