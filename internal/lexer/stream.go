package lexer

import (
	"golang.org/x/sync/errgroup"

	"github.com/sylan-lang/go-sylan/pkg/token"
)

// MaxLookahead is the fixed size of the parser's token lookahead window.
// Every parsing rule must be decidable within this bound.
const MaxLookahead = 5

// tokenChannelCapacity bounds the number of tokens in flight between the
// lexer worker and the parser. The worker blocks when the parser falls
// behind.
const tokenChannelCapacity = 64

// Lex starts the lexer worker and returns the stream the parser reads from.
// The worker lexes until the EOF token or the first lexical error, then
// exits; its error, if any, is surfaced by Stream.Join.
func (l *Lexer) Lex() *Stream {
	ch := make(chan Lexed, tokenChannelCapacity)
	s := &Stream{tokens: ch}

	s.group.Go(func() error {
		defer close(ch)
		for {
			lexed, err := l.Next()
			if err != nil {
				return err
			}
			ch <- lexed
			if lexed.Token.Kind == token.EOF {
				return nil
			}
		}
	})
	return s
}

// Stream bridges the lexer worker and the parser, exposing a peekable window
// of up to MaxLookahead tokens over the token channel. It is used from the
// parser's goroutine only.
//
// The terminal EOF token is idempotently observable: peeking or reading past
// it keeps yielding it. If the worker died on an error before emitting EOF,
// the stream also reads as ended and Join reports the underlying failure.
type Stream struct {
	tokens    <-chan Lexed
	group     errgroup.Group
	window    []Lexed
	exhausted bool
}

// pull extends the lookahead window until it holds n tokens, synthesizing
// EOF entries once the channel is drained.
func (s *Stream) pull(n int) {
	if MaxLookahead < n {
		panic("token lookahead exceeds the supported window")
	}
	for len(s.window) < n {
		if s.exhausted {
			s.window = append(s.window, Lexed{Token: token.Of(token.EOF)})
			continue
		}
		lexed, ok := <-s.tokens
		if !ok {
			s.exhausted = true
			continue
		}
		if lexed.Token.Kind == token.EOF {
			s.exhausted = true
		}
		s.window = append(s.window, lexed)
	}
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() Lexed { return s.PeekNth(0) }

// PeekNth returns the nth next token, zero-indexed, without consuming
// anything. n must be below MaxLookahead.
func (s *Stream) PeekNth(n int) Lexed {
	s.pull(n + 1)
	return s.window[n]
}

// PeekMany returns a view of the next n tokens. The slice aliases the
// lookahead window and is invalidated by the next Read or Discard.
func (s *Stream) PeekMany(n int) []Lexed {
	s.pull(n)
	return s.window[:n]
}

// Read consumes and returns the next token.
func (s *Stream) Read() Lexed {
	s.pull(1)
	next := s.window[0]
	s.window = s.window[:copy(s.window, s.window[1:])]
	return next
}

// Discard throws away the next token.
func (s *Stream) Discard() { s.Read() }

// MatchNth reports whether the nth next token satisfies the predicate.
func (s *Stream) MatchNth(n int, predicate func(token.Token) bool) bool {
	return predicate(s.PeekNth(n).Token)
}

// MatchNext reports whether the next token satisfies the predicate.
func (s *Stream) MatchNext(predicate func(token.Token) bool) bool {
	return s.MatchNth(0, predicate)
}

// NthIs reports whether the nth next token equals the expected token.
func (s *Stream) NthIs(n int, expected token.Token) bool {
	return s.PeekNth(n).Token == expected
}

// NextIs reports whether the next token equals the expected token.
func (s *Stream) NextIs(expected token.Token) bool { return s.NthIs(0, expected) }

// NextKindIs reports whether the next token has the given kind.
func (s *Stream) NextKindIs(kind token.Kind) bool { return s.Peek().Token.Kind == kind }

// NthKindIs reports whether the nth next token has the given kind.
func (s *Stream) NthKindIs(n int, kind token.Kind) bool {
	return s.PeekNth(n).Token.Kind == kind
}

// Join waits for the lexer worker to finish and returns its error, if any.
// It must be called after parsing completes, regardless of success.
func (s *Stream) Join() error {
	for !s.exhausted {
		if _, ok := <-s.tokens; !ok {
			s.exhausted = true
		}
	}
	return s.group.Wait()
}
