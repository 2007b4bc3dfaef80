// Package sylan is the embedding API of the Sylan front-end: it wires the
// lexer worker, the token stream, and the parser together behind a single
// call.
package sylan

import (
	stderrors "errors"

	"github.com/sylan-lang/go-sylan/internal/errors"
	"github.com/sylan-lang/go-sylan/internal/lexer"
	"github.com/sylan-lang/go-sylan/internal/parser"
	"github.com/sylan-lang/go-sylan/pkg/ast"
)

// Parse parses source text into its AST. The lexer runs on a worker
// goroutine streaming tokens to the parser; the worker is joined before
// Parse returns.
func Parse(source string) (*ast.File, error) {
	stream := lexer.New(source).Lex()
	return parser.New(stream).Parse()
}

// FormatError renders err with source context when it carries a position.
// file may be empty for inline input.
func FormatError(err error, source, file string, color bool) string {
	var lexErr *lexer.Error
	if stderrors.As(err, &lexErr) {
		pos := errors.PositionOfOffset(source, lexErr.Offset)
		return errors.New(pos, lexErr.Message, source, file).Format(color)
	}

	// Parse errors carry no positions; report them bare.
	return err.Error()
}
