// Package source provides the positional character buffer the lexer reads
// from. It tracks the absolute offset alongside one-based line and column
// numbers across all three newline conventions (LF, CRLF, and lone CR).
package source

import "github.com/sylan-lang/go-sylan/pkg/token"

// Buffer owns the characters of a single source file and a read position.
// Peek never moves the position; Read and Discard advance it and keep the
// line and column tracking consistent. A CRLF pair increments the line
// exactly once, on the CR.
type Buffer struct {
	content   []rune
	pos       token.Position
	lastWasCR bool
}

// New creates a buffer over the given source text.
func New(text string) *Buffer {
	return &Buffer{
		content: []rune(text),
		pos:     token.Position{Line: 1, Column: 1},
	}
}

// Position returns the position of the next unread character.
func (b *Buffer) Position() token.Position { return b.pos }

// Offset returns the absolute rune index of the next unread character.
func (b *Buffer) Offset() int { return b.pos.Offset }

// PeekMany returns a view of the next n characters, or false if fewer remain.
// The returned slice aliases the buffer and must not be modified.
func (b *Buffer) PeekMany(n int) ([]rune, bool) {
	if len(b.content) < b.pos.Offset+n {
		return nil, false
	}
	return b.content[b.pos.Offset : b.pos.Offset+n], true
}

// ReadMany consumes and returns the next n characters, or false if fewer
// remain, in which case the position is unchanged.
func (b *Buffer) ReadMany(n int) ([]rune, bool) {
	view, ok := b.PeekMany(n)
	if !ok {
		return nil, false
	}
	b.advance(n)
	return view, true
}

// DiscardMany throws away the next n characters, returning false if fewer
// remained; in that case nothing is consumed.
func (b *Buffer) DiscardMany(n int) bool {
	if _, ok := b.PeekMany(n); !ok {
		return false
	}
	b.advance(n)
	return true
}

// Peek returns the next character without consuming it.
func (b *Buffer) Peek() (rune, bool) { return b.PeekNth(0) }

// PeekNth returns the nth next character, zero-indexed, without consuming
// anything.
func (b *Buffer) PeekNth(n int) (rune, bool) {
	if len(b.content) <= b.pos.Offset+n {
		return 0, false
	}
	return b.content[b.pos.Offset+n], true
}

// Read consumes and returns the next character.
func (b *Buffer) Read() (rune, bool) {
	r, ok := b.Peek()
	if !ok {
		return 0, false
	}
	b.advance(1)
	return r, true
}

// Discard throws away the next character, returning false if the buffer was
// already empty.
func (b *Buffer) Discard() bool { return b.DiscardMany(1) }

// MatchNth reports whether the nth next character satisfies the predicate,
// where n is zero-indexed. It returns false past the end of the buffer.
func (b *Buffer) MatchNth(n int, predicate func(rune) bool) bool {
	r, ok := b.PeekNth(n)
	return ok && predicate(r)
}

// MatchNext reports whether the next character satisfies the predicate.
func (b *Buffer) MatchNext(predicate func(rune) bool) bool { return b.MatchNth(0, predicate) }

// NthIs reports whether the nth next character equals r, zero-indexed.
func (b *Buffer) NthIs(n int, r rune) bool {
	c, ok := b.PeekNth(n)
	return ok && c == r
}

// NextIs reports whether the next character equals r.
func (b *Buffer) NextIs(r rune) bool { return b.NthIs(0, r) }

func (b *Buffer) advance(n int) {
	for i := 0; i < n; i++ {
		c := b.content[b.pos.Offset]
		b.pos.Offset++
		switch c {
		case '\n':
			// The LF of a CRLF pair was already counted at the CR.
			if !b.lastWasCR {
				b.pos.Line++
			}
			b.pos.Column = 1
		case '\r':
			b.pos.Line++
			b.pos.Column = 1
		default:
			b.pos.Column++
		}
		b.lastWasCR = c == '\r'
	}
}
