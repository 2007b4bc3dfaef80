// Package errors formats front-end errors with source context: a
// file:line:column header, the offending source line, and a caret pointing
// at the error location.
package errors

import (
	"fmt"
	"strings"

	"github.com/sylan-lang/go-sylan/pkg/token"
)

// FrontEndError is a lexical or parse error tied to a position in a source
// file.
type FrontEndError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a front-end error for the given position.
func New(pos token.Position, message, source, file string) *FrontEndError {
	return &FrontEndError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *FrontEndError) Error() string {
	return e.Format(false)
}

// Format renders the error with source context. If color is true, ANSI color
// codes are used for terminal output.
func (e *FrontEndError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNum := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNum)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNum)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific one-indexed line from the source code.
func (e *FrontEndError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return strings.TrimSuffix(lines[lineNum-1], "\r")
}

// PositionOfOffset converts an absolute rune offset into a full position
// within source, for errors that only carry offsets.
func PositionOfOffset(source string, offset int) token.Position {
	pos := token.Position{Line: 1, Column: 1}
	lastWasCR := false
	for i, r := range []rune(source) {
		if i == offset {
			break
		}
		pos.Offset++
		switch r {
		case '\n':
			if !lastWasCR {
				pos.Line++
			}
			pos.Column = 1
		case '\r':
			pos.Line++
			pos.Column = 1
		default:
			pos.Column++
		}
		lastWasCR = r == '\r'
	}
	return pos
}
