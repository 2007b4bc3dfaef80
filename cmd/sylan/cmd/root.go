package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sylan",
	Short: "Sylan front-end",
	Long: `go-sylan is a Go implementation of the front-end of the Sylan
programming language.

Sylan is a statically typed, object-oriented and functional language. The
front-end lexes and parses Sylan source into an abstract syntax tree ready
for semantic analysis:
  - A streaming lexer with trivia preservation, nested block comments,
    SyDocs, interpolated strings, shebangs, and version literals
  - A recursive-descent parser with bounded lookahead over a concurrent
    token stream`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// loadInput resolves the source text for a command: an inline expression
// when eval is set, the named file when one is given, and stdin otherwise.
// It returns the text and a display name for error messages.
func loadInput(eval string, args []string) (string, string, error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(content), "<stdin>", nil
}
