package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sylan-lang/go-sylan/pkg/token"
)

func TestStreamDeliversTokensInSourceOrder(t *testing.T) {
	s := New("var x = 1").Lex()

	require.Equal(t, token.Of(token.Var), s.Read().Token)
	require.Equal(t, token.Ident("x"), s.Read().Token)
	require.Equal(t, token.Of(token.Assign), s.Read().Token)
	require.Equal(t, token.Num(1, 0), s.Read().Token)
	require.Equal(t, token.Of(token.EOF), s.Read().Token)
	require.NoError(t, s.Join())
}

func TestStreamPeekDoesNotConsume(t *testing.T) {
	s := New("a b c").Lex()

	require.Equal(t, token.Ident("a"), s.Peek().Token)
	require.Equal(t, token.Ident("a"), s.Peek().Token)
	require.Equal(t, token.Ident("b"), s.PeekNth(1).Token)
	require.Equal(t, token.Ident("c"), s.PeekNth(2).Token)

	require.Equal(t, token.Ident("a"), s.Read().Token)
	require.Equal(t, token.Ident("b"), s.Read().Token)
	require.NoError(t, s.Join())
}

// Peeking n tokens then reading n tokens yields the same tokens in order,
// and PeekNth(k) equals the last element of PeekMany(k+1).
func TestStreamPeekReadAgreement(t *testing.T) {
	s := New("a 1 \"s\" ~ }").Lex()

	peeked := make([]Lexed, MaxLookahead)
	copy(peeked, s.PeekMany(MaxLookahead))
	for k := 0; k < MaxLookahead; k++ {
		require.Equal(t, peeked[k], s.PeekNth(k))
	}
	for k := 0; k < MaxLookahead; k++ {
		require.Equal(t, peeked[k], s.Read())
	}
	require.NoError(t, s.Join())
}

func TestStreamEOFIsIdempotent(t *testing.T) {
	s := New("x").Lex()

	require.Equal(t, token.Ident("x"), s.Read().Token)
	for i := 0; i < MaxLookahead+2; i++ {
		require.Equal(t, token.EOF, s.Read().Token.Kind)
	}
	require.Equal(t, token.EOF, s.PeekNth(MaxLookahead-1).Token.Kind)
	require.NoError(t, s.Join())
}

func TestStreamLookaheadIsBounded(t *testing.T) {
	s := New("a b c d e f g").Lex()
	defer s.Join()

	require.Panics(t, func() { s.PeekNth(MaxLookahead) })
}

func TestStreamSurfacesWorkerErrors(t *testing.T) {
	s := New("abc '\\q'").Lex()

	require.Equal(t, token.Ident("abc"), s.Read().Token)
	// The worker dies on the invalid escape; the stream reads as ended.
	require.Equal(t, token.EOF, s.Read().Token.Kind)

	err := s.Join()
	require.Error(t, err)
	require.ErrorContains(t, err, "invalid escape")
}

func TestStreamJoinAfterAbandonedParse(t *testing.T) {
	// More tokens than the channel holds, abandoned immediately: Join must
	// still drain and reap the worker without deadlocking.
	input := ""
	for i := 0; i < tokenChannelCapacity*2; i++ {
		input += "x "
	}
	s := New(input).Lex()
	require.NoError(t, s.Join())
}

func TestStreamPredicates(t *testing.T) {
	s := New("var x").Lex()

	require.True(t, s.NextIs(token.Of(token.Var)))
	require.False(t, s.NextIs(token.Ident("x")))
	require.True(t, s.NthIs(1, token.Ident("x")))
	require.True(t, s.NextKindIs(token.Var))
	require.True(t, s.NthKindIs(1, token.Identifier))
	require.True(t, s.MatchNext(func(tok token.Token) bool { return tok.Kind.IsBinding() }))

	s.Discard()
	require.True(t, s.NextKindIs(token.Identifier))
	require.NoError(t, s.Join())
}
