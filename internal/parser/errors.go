package parser

import (
	"fmt"

	"github.com/sylan-lang/go-sylan/pkg/token"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// Described carries a free-text reason.
	Described ErrorKind = iota

	// Expected means a specific token was required but did not appear.
	Expected

	// Unexpected means a token appeared where no rule accepted it.
	Unexpected

	// PrematureEOF means the input ended inside an unfinished construct.
	PrematureEOF

	// LexerFailed means the lexer worker failed; the underlying lexical
	// error is wrapped.
	LexerFailed
)

// Error is a parse failure. Parsing halts at the first one; no recovery is
// attempted.
type Error struct {
	Kind    ErrorKind
	Message string
	Token   token.Token
	Cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Expected:
		return fmt.Sprintf("parse error: expected %s", e.Token.Kind)
	case Unexpected:
		return fmt.Sprintf("parse error: unexpected %s", e.Token.Kind)
	case PrematureEOF:
		return "parse error: premature end of input"
	case LexerFailed:
		return fmt.Sprintf("parse error: lexer thread failed: %v", e.Cause)
	default:
		return "parse error: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Cause }
