package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestParseCommandInline(t *testing.T) {
	require.NoError(t, runCommand(t, "parse", "-e", "var x = 1"))
}

func TestParseCommandDumpAST(t *testing.T) {
	require.NoError(t, runCommand(t, "parse", "-e", "var x = 1", "--dump-ast"))
	parseDumpAST = false
}

func TestParseCommandRejectsInvalidSource(t *testing.T) {
	err := runCommand(t, "parse", "-e", "class { }")
	require.Error(t, err)
}

func TestParseCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sy")
	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env sylan\nvar x = 1\n"), 0o644))

	parseEval = ""
	require.NoError(t, runCommand(t, "parse", path))
}

func TestParseCommandMissingFile(t *testing.T) {
	parseEval = ""
	err := runCommand(t, "parse", filepath.Join(t.TempDir(), "missing.sy"))
	require.Error(t, err)
}

func TestLexCommandInline(t *testing.T) {
	require.NoError(t, runCommand(t, "lex", "-e", "var x = 42", "--show-pos", "--show-trivia"))
}

func TestLexCommandRejectsInvalidSource(t *testing.T) {
	err := runCommand(t, "lex", "-e", "'\\q'")
	require.Error(t, err)
}
