package errors

import (
	"strings"
	"testing"

	"github.com/sylan-lang/go-sylan/pkg/token"
)

func TestFormatWithSourceContext(t *testing.T) {
	source := "var x = 1\nvar y = @\n"
	err := New(token.Position{Offset: 18, Line: 2, Column: 9}, "unknown operator", source, "script.sy")

	formatted := err.Format(false)
	lines := strings.Split(formatted, "\n")

	if lines[0] != "Error in script.sy:2:9" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "   2 | var y = @" {
		t.Errorf("source line = %q", lines[1])
	}
	caretColumn := strings.Index(lines[2], "^")
	atColumn := strings.Index(lines[1], "@")
	if caretColumn != atColumn {
		t.Errorf("caret at %d, offending character at %d:\n%s", caretColumn, atColumn, formatted)
	}
	if lines[3] != "unknown operator" {
		t.Errorf("message = %q", lines[3])
	}
}

func TestFormatWithoutFile(t *testing.T) {
	err := New(token.Position{Line: 1, Column: 1}, "boom", "x", "")
	if !strings.HasPrefix(err.Format(false), "Error at line 1:1") {
		t.Errorf("format = %q", err.Format(false))
	}
}

func TestFormatOutOfRangeLine(t *testing.T) {
	err := New(token.Position{Line: 9, Column: 1}, "boom", "x", "f.sy")
	formatted := err.Format(false)
	if !strings.Contains(formatted, "boom") || strings.Contains(formatted, "|") {
		t.Errorf("format = %q", formatted)
	}
}

func TestPositionOfOffset(t *testing.T) {
	tests := []struct {
		name   string
		source string
		offset int
		line   int
		column int
	}{
		{"start", "abc", 0, 1, 1},
		{"mid line", "abc", 2, 1, 3},
		{"after lf", "a\nb", 2, 2, 1},
		{"after crlf", "a\r\nb", 3, 2, 1},
		{"after lone cr", "a\rb", 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := PositionOfOffset(tt.source, tt.offset)
			if pos.Offset != tt.offset || pos.Line != tt.line || pos.Column != tt.column {
				t.Fatalf("position = %+v, want offset %d line %d column %d",
					pos, tt.offset, tt.line, tt.column)
			}
		})
	}
}
