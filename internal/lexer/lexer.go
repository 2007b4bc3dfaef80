// Package lexer implements the Sylan scanner.
//
// The lexer reads characters from a source buffer and produces typed tokens,
// attaching the run of whitespace and comments preceding each token as its
// trivia. Lexing runs on a dedicated worker goroutine started by Lex, which
// streams tokens to the parser over a bounded channel; Stream provides the
// parser-side lookahead window over that channel.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sylan-lang/go-sylan/internal/source"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

// charEscapes maps the escape keys valid inside character literals to the
// characters they denote.
var charEscapes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'\'': '\'',
}

// Lexed is a token together with the position of its first character and the
// trivia that preceded it. Trivia is empty when the token followed another
// token directly.
type Lexed struct {
	Token    token.Token
	Position token.Position
	Trivia   string
}

// Error is a lexical error detected at a specific absolute character offset.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Message)
}

// Lexer scans a single source buffer. It is not safe for concurrent use; Lex
// hands ownership of the whole lexer to the worker goroutine.
type Lexer struct {
	src *source.Buffer
}

// New creates a lexer over the given source text.
func New(text string) *Lexer {
	return &Lexer{src: source.New(text)}
}

func (l *Lexer) fail(message string) (token.Token, error) {
	return token.Token{}, &Error{Offset: l.src.Offset(), Message: message}
}

// lexMultiLineComment consumes a block comment whose opening "/*" is next in
// the source, writing its content to buffer. Delimiters of nested comments
// are kept; the outermost pair is elided.
func (l *Lexer) lexMultiLineComment(buffer *strings.Builder) error {
	l.src.DiscardMany(2)

	nesting := 1
	for 1 <= nesting {
		c, ok := l.src.Read()
		if !ok {
			break
		}
		switch {
		case c == '/' && l.src.NthIs(0, '*'):
			buffer.WriteString("/*")
			l.src.Discard()
			nesting++
		case c == '*' && l.src.NthIs(0, '/'):
			if 1 < nesting {
				buffer.WriteString("*/")
			}
			l.src.Discard()
			nesting--
		default:
			buffer.WriteRune(c)
		}
	}

	if 1 <= nesting {
		return &Error{Offset: l.src.Offset(), Message: "premature EOF in multiline comment"}
	}
	return nil
}

// lexSingleLineComment consumes a line comment, keeping its delimiters in
// the buffer. The terminating newline is left for the surrounding trivia
// loop so the run stays character exact.
func (l *Lexer) lexSingleLineComment(buffer *strings.Builder) {
	l.src.DiscardMany(2)
	buffer.WriteString("//")
	for {
		c, ok := l.src.Peek()
		if !ok || c == '\n' || c == '\r' {
			break
		}
		l.src.Discard()
		buffer.WriteRune(c)
	}
}

// startsSyDoc reports whether the next characters open a documentation
// comment: "/**" not immediately closed again. "/**/" is an ordinary, empty
// block comment and therefore trivia.
func (l *Lexer) startsSyDoc() bool {
	return l.src.NthIs(0, '/') && l.src.NthIs(1, '*') && l.src.NthIs(2, '*') &&
		!l.src.NthIs(3, '/')
}

// lexTrivia consumes any run of whitespace, line comments, and block comments
// preceding the next meaningful token, returning it verbatim except that the
// outermost block-comment delimiters are elided. It stops in front of SyDocs,
// which are tokens rather than trivia.
func (l *Lexer) lexTrivia() (string, error) {
	var trivia strings.Builder
	for {
		switch {
		case l.src.NthIs(0, '/') && l.src.NthIs(1, '*') && !l.startsSyDoc():
			if err := l.lexMultiLineComment(&trivia); err != nil {
				return "", err
			}
		case l.src.NthIs(0, '/') && l.src.NthIs(1, '/'):
			l.lexSingleLineComment(&trivia)
		case l.src.MatchNext(unicode.IsSpace):
			c, _ := l.src.Read()
			trivia.WriteRune(c)
		default:
			return trivia.String(), nil
		}
	}
}

func (l *Lexer) lexVersion() (token.Token, error) {
	l.src.Discard()

	whole, fraction, ok := l.lexAbsoluteNumber()
	if !ok || whole < 0 {
		return l.fail("invalid version number")
	}
	return token.Token{Kind: token.Version, Major: uint64(whole), Minor: fraction}, nil
}

func (l *Lexer) lexNumber() (token.Token, error) {
	whole, fraction, ok := l.lexAbsoluteNumber()
	if !ok {
		return l.fail("invalid number")
	}
	return token.Num(whole, fraction), nil
}

// lexAbsoluteNumber scans an optionally signed decimal number with an
// optional fractional part, yielding its two components. The fractional
// component defaults to zero.
func (l *Lexer) lexAbsoluteNumber() (int64, uint64, bool) {
	c, ok := l.src.Read()
	if !ok || !(isDigit(c) || c == '-' || c == '+') {
		return 0, 0, false
	}

	var wholeText, fractionText strings.Builder
	wholeText.WriteRune(c)

	decimalPlaceConsumed := false
	for {
		next, ok := l.src.Peek()
		if !ok {
			break
		}
		if next == '.' && !decimalPlaceConsumed && l.src.MatchNth(1, isDigit) {
			decimalPlaceConsumed = true
			l.src.Discard()
			continue
		}
		if !isDigit(next) {
			break
		}
		if decimalPlaceConsumed {
			fractionText.WriteRune(next)
		} else {
			wholeText.WriteRune(next)
		}
		l.src.Discard()
	}
	if fractionText.Len() == 0 {
		fractionText.WriteByte('0')
	}

	whole, err := strconv.ParseInt(wholeText.String(), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	fraction, err := strconv.ParseUint(fractionText.String(), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return whole, fraction, true
}

func (l *Lexer) lexRestOfWord(buffer *strings.Builder) {
	for {
		c, ok := l.src.Peek()
		if !ok || !(unicode.IsLetter(c) || isDigit(c) || c == '_') {
			break
		}
		l.src.Discard()
		buffer.WriteRune(c)
	}
}

func (l *Lexer) lexString() (token.Token, error) {
	l.src.Discard()

	var text strings.Builder
	for {
		c, ok := l.src.Read()
		if !ok {
			return l.fail("premature EOF in string literal")
		}
		if c == '"' {
			break
		}
		text.WriteRune(c)
	}
	return token.Str(text.String()), nil
}

// lexInterpolatedString scans the whole raw body between backticks. The
// interpolations are resolved later by reentering the lexer from the parser.
func (l *Lexer) lexInterpolatedString() (token.Token, error) {
	l.src.Discard()

	var text strings.Builder
	for {
		c, ok := l.src.Read()
		if !ok {
			return l.fail("premature EOF in interpolated string literal")
		}
		if c == '`' {
			break
		}
		text.WriteRune(c)
	}
	return token.Token{Kind: token.InterpolatedString, Text: text.String()}, nil
}

func (l *Lexer) lexChar() (token.Token, error) {
	l.src.Discard()

	c, ok := l.src.Read()
	if !ok {
		return l.fail("character ended prematurely")
	}

	if c == '\\' {
		escaped, ok := l.src.Read()
		if !ok {
			return l.fail("escaped char ended prematurely")
		}
		decoded, known := charEscapes[escaped]
		if !known {
			return l.fail("invalid escape")
		}
		c = decoded
	}

	if !l.src.NextIs('\'') {
		return l.fail("character literal missing closing quote")
	}
	l.src.Discard()
	return token.Ch(c), nil
}

func (l *Lexer) lexShebang() (token.Token, error) {
	l.src.Discard()

	c, ok := l.src.Read()
	if !ok || c != '!' {
		return l.fail("the shebang was malformed; a '!' should follow the '#'")
	}

	var content strings.Builder
	for {
		next, ok := l.src.Peek()
		if !ok {
			break
		}
		if next == '\r' && l.src.NthIs(1, '\n') {
			l.src.DiscardMany(2)
			break
		}
		if next == '\n' {
			l.src.Discard()
			break
		}
		l.src.Discard()
		content.WriteRune(next)
	}
	return token.Token{Kind: token.Shebang, Text: content.String()}, nil
}

// lexSyDoc scans a documentation comment. Block comments nested within it are
// preserved with their delimiters.
func (l *Lexer) lexSyDoc() (token.Token, error) {
	l.src.DiscardMany(3)

	var content strings.Builder
	for {
		next, ok := l.src.Peek()
		if !ok {
			return l.fail("EOF occurred before end of SyDoc")
		}
		switch {
		case next == '*' && l.src.NthIs(1, '/'):
			l.src.DiscardMany(2)
			return token.Token{Kind: token.SyDoc, Text: content.String()}, nil
		case next == '/' && l.src.NthIs(1, '*'):
			content.WriteString("/*")
			if err := l.lexMultiLineComment(&content); err != nil {
				return token.Token{}, err
			}
			content.WriteString("*/")
		default:
			content.WriteRune(next)
			l.src.Discard()
		}
	}
}

func (l *Lexer) lexOperator() (token.Token, error) {
	c, ok := l.src.Read()
	if !ok {
		return l.fail("premature EOF")
	}

	switch c {
	case '-':
		return l.lexWithLeadingMinus(), nil
	case '<':
		return l.lexWithLeadingLeftAngleBracket(), nil
	case '=':
		return l.matchSecond('=', token.Equals, token.Assign), nil
	case '|':
		return l.lexWithLeadingVerticalBar(), nil
	case '&':
		return l.matchSecond('&', token.And, token.BitwiseAnd), nil
	case '!':
		return l.matchSecond('=', token.NotEquals, token.Not), nil
	case '>':
		return l.lexWithLeadingRightAngleBracket(), nil
	case ':':
		return l.matchSecond(':', token.Compose, token.Colon), nil
	case '.':
		if l.src.NthIs(0, '.') && l.src.NthIs(1, '.') {
			l.src.DiscardMany(2)
			return token.Of(token.Ellipsis), nil
		}
		return token.Of(token.Dot), nil

	case ',':
		return token.Of(token.SubItemSeparator), nil
	case '#':
		return token.Of(token.MethodHandle), nil
	case '~':
		return token.Of(token.BitwiseNot), nil
	case '^':
		return token.Of(token.BitwiseXor), nil
	case '+':
		return token.Of(token.Add), nil
	case '*':
		return token.Of(token.Multiply), nil
	case '/':
		return token.Of(token.Divide), nil
	case '%':
		return token.Of(token.Modulo), nil
	case '?':
		return token.Of(token.Bind), nil
	case '{':
		return token.Of(token.OpenBrace), nil
	case '}':
		return token.Of(token.CloseBrace), nil
	case '(':
		return token.Of(token.OpenParentheses), nil
	case ')':
		return token.Of(token.CloseParentheses), nil
	case '[':
		return token.Of(token.OpenSquareBracket), nil
	case ']':
		return token.Of(token.CloseSquareBracket), nil
	}
	return l.fail("unknown operator")
}

// matchSecond consumes the next character and returns onMatch if it equals
// expected, otherwise returns otherwise and leaves it unconsumed.
func (l *Lexer) matchSecond(expected rune, onMatch, otherwise token.Kind) token.Token {
	if l.src.NextIs(expected) {
		l.src.Discard()
		return token.Of(onMatch)
	}
	return token.Of(otherwise)
}

func (l *Lexer) lexWithLeadingMinus() token.Token {
	if l.src.NextIs('>') {
		l.src.Discard()
		return token.Of(token.LambdaArrow)
	}
	return token.Of(token.Subtract)
}

func (l *Lexer) lexWithLeadingLeftAngleBracket() token.Token {
	switch {
	case l.src.NextIs('-'):
		l.src.Discard()
		return token.Of(token.BindArrow)
	case l.src.NextIs('<'):
		l.src.Discard()
		return token.Of(token.ShiftLeft)
	case l.src.NextIs('='):
		l.src.Discard()
		return token.Of(token.LessThanOrEquals)
	}
	return token.Of(token.LessThan)
}

func (l *Lexer) lexWithLeadingRightAngleBracket() token.Token {
	switch {
	case l.src.NextIs('>'):
		l.src.Discard()
		return token.Of(token.ShiftRight)
	case l.src.NextIs('='):
		l.src.Discard()
		return token.Of(token.GreaterThanOrEquals)
	}
	return token.Of(token.GreaterThan)
}

func (l *Lexer) lexWithLeadingVerticalBar() token.Token {
	switch {
	case l.src.NextIs('|'):
		l.src.Discard()
		return token.Of(token.Or)
	case l.src.NextIs('>'):
		l.src.Discard()
		return token.Of(token.Pipe)
	}
	return token.Of(token.BitwiseOr)
}

func (l *Lexer) lexNonTrivial() (token.Token, error) {
	c, ok := l.src.Peek()
	if !ok {
		return token.Of(token.EOF), nil
	}

	if c == 'v' && l.src.MatchNth(1, isDigit) {
		return l.lexVersion()
	}
	if l.startsSyDoc() {
		return l.lexSyDoc()
	}

	switch {
	case c == '"':
		return l.lexString()
	case c == '`':
		return l.lexInterpolatedString()
	case c == '\'':
		return l.lexChar()
	case c == '#' && l.src.Offset() == 0:
		return l.lexShebang()
	case unicode.IsLetter(c) || c == '_':
		var word strings.Builder
		l.lexRestOfWord(&word)
		return token.LookupWord(word.String()), nil
	case isDigit(c) || ((c == '+' || c == '-') && l.src.MatchNth(1, isDigit)):
		return l.lexNumber()
	default:
		return l.lexOperator()
	}
}

// Next yields one lexed token, consuming its preceding trivia first. After
// the end of input it keeps returning the EOF token.
func (l *Lexer) Next() (Lexed, error) {
	trivia, err := l.lexTrivia()
	if err != nil {
		return Lexed{}, err
	}
	position := l.src.Position()
	tok, err := l.lexNonTrivial()
	if err != nil {
		return Lexed{}, err
	}
	return Lexed{Token: tok, Position: position, Trivia: trivia}, nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }
