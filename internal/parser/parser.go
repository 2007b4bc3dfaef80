// Package parser implements the Sylan recursive-descent parser.
//
// The parser consumes lexed tokens from the lexer's stream through a bounded
// lookahead window and produces the AST rooted at a main file. Sub-parsers
// are reentrant and each expects its whole construct next in the stream, so
// steps that choose between sub-parsers peek rather than read.
//
// Parsing halts on the first contract violation. The lexer worker is always
// joined before Parse returns, and worker failures surface as parse-level
// errors.
package parser

import (
	"fmt"

	"github.com/sylan-lang/go-sylan/internal/lexer"
	"github.com/sylan-lang/go-sylan/pkg/ast"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

// Parser turns a token stream into an abstract syntax tree.
type Parser struct {
	tokens       *lexer.Stream
	currentScope *ast.Block
}

// New creates a parser over a started token stream.
func New(tokens *lexer.Stream) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole main file: an optional shebang, an optional version
// literal, and a main-package body running to the end of input. The lexer
// worker is joined before returning regardless of the outcome, and a worker
// failure takes precedence over the parse result it truncated.
func (p *Parser) Parse() (*ast.File, error) {
	file, parseErr := p.parseMainFile()

	if joinErr := p.tokens.Join(); joinErr != nil {
		return nil, &Error{Kind: LexerFailed, Cause: joinErr}
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return file, nil
}

func (p *Parser) parseMainFile() (*ast.File, error) {
	shebang := p.maybeParseShebang()
	version := p.maybeParseVersion()

	main, err := p.parseMainPackage()
	if err != nil {
		return nil, err
	}

	return &ast.File{
		Shebang: shebang,
		Version: version,
		Package: *main,
	}, nil
}

func (p *Parser) maybeParseShebang() *string {
	if !p.nextKindIs(token.Shebang) {
		return nil
	}
	line := p.tokens.Read().Token.Text
	return &line
}

func (p *Parser) maybeParseVersion() *ast.Version {
	if !p.nextKindIs(token.Version) {
		return nil
	}
	tok := p.tokens.Read().Token
	return &ast.Version{Major: tok.Major, Minor: tok.Minor}
}

// parseMainPackage parses the top level of the entry-point file. Unlike all
// other packages, the main package allows both bindings without type
// annotations, falling back to type inference, and arbitrary expressions;
// they accumulate in the implicit main block.
func (p *Parser) parseMainPackage() (*ast.MainPackage, error) {
	implicitMain := ast.NewRootBlock()
	p.currentScope = implicitMain

	var items []ast.Item
	for {
		next := p.tokens.Peek().Token

		switch next.Kind {
		case token.EOF:
			return &ast.MainPackage{
				Package: ast.Package{
					Accessibility: ast.Public,
					Name:          "main",
					Items:         items,
				},
				Block: implicitMain,
			}, nil

		case token.Class, token.Extend, token.Import, token.Interface,
			token.Package, token.Fun, token.SyDoc:
			item, err := p.parseItem(next.Kind)
			if err != nil {
				return nil, err
			}
			items = append(items, item)

		case token.Var:
			binding, err := p.parseLocalBinding()
			if err != nil {
				return nil, err
			}
			implicitMain.Bindings = append(implicitMain.Bindings, binding)

		default:
			expression, err := p.parseOutermostExpression()
			if err != nil {
				return nil, err
			}
			implicitMain.Expressions = append(implicitMain.Expressions, expression)
		}
	}
}

// parseInsidePackage parses the items of a named package body up to its
// closing brace. Free expressions are forbidden and bindings require type
// annotations.
func (p *Parser) parseInsidePackage() ([]ast.Item, error) {
	var items []ast.Item
	for {
		next := p.tokens.Peek().Token

		switch next.Kind {
		case token.EOF:
			return nil, p.prematureEOF()

		case token.CloseBrace:
			return items, nil

		case token.Class, token.Extend, token.Import, token.Interface,
			token.Package, token.Fun, token.SyDoc:
			item, err := p.parseItem(next.Kind)
			if err != nil {
				return nil, err
			}
			items = append(items, item)

		case token.Var:
			binding, err := p.parsePackageBinding()
			if err != nil {
				return nil, err
			}
			items = append(items, binding)

		default:
			return nil, p.unexpected(next)
		}
	}
}

// parseItem dispatches on an already-peeked declaration head. A SyDoc token
// immediately preceding a class, interface, package, or function declaration
// is attached to it; otherwise it stays a free-standing item.
func (p *Parser) parseItem(head token.Kind) (ast.Item, error) {
	if head == token.SyDoc {
		doc := p.tokens.Read().Token.Text
		next := p.tokens.Peek().Token.Kind
		switch next {
		case token.Class, token.Interface, token.Package, token.Fun:
			item, err := p.parseItem(next)
			if err != nil {
				return nil, err
			}
			attachSyDoc(item, doc)
			return item, nil
		}
		return &ast.SyDoc{Content: doc}, nil
	}

	switch head {
	case token.Class:
		return p.parseClassDefinition()
	case token.Extend:
		return p.parseExtension()
	case token.Import:
		return p.parseImport()
	case token.Interface:
		return p.parseInterfaceDefinition()
	case token.Package:
		return p.parsePackageDefinition()
	case token.Fun:
		return p.parseFun()
	}
	return nil, p.unexpected(p.tokens.Peek().Token)
}

func attachSyDoc(item ast.Item, doc string) {
	switch it := item.(type) {
	case *ast.Package:
		it.SyDoc = &doc
	case *ast.Fun:
		it.SyDoc = &doc
	case *ast.Class:
		it.SyDoc = &doc
	case *ast.Interface:
		it.SyDoc = &doc
	}
}

// Failure helpers. Each returns an error for the caller to propagate; the
// parser holds no error state of its own.

func (p *Parser) fail(message string) error {
	return &Error{Kind: Described, Message: message}
}

func (p *Parser) failf(format string, args ...any) error {
	return &Error{Kind: Described, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) expected(expected token.Token) error {
	return &Error{Kind: Expected, Token: expected}
}

func (p *Parser) unexpected(unexpected token.Token) error {
	if unexpected.Kind == token.EOF {
		return p.prematureEOF()
	}
	return &Error{Kind: Unexpected, Token: unexpected}
}

func (p *Parser) prematureEOF() error {
	return &Error{Kind: PrematureEOF}
}

// expectAndDiscard consumes the next token if it equals expected and fails
// otherwise.
func (p *Parser) expectAndDiscard(expected token.Token) error {
	next := p.tokens.Read().Token
	if next == expected {
		return nil
	}
	if next.Kind == token.EOF {
		return p.prematureEOF()
	}
	return p.expected(expected)
}

func (p *Parser) expectAndDiscardKind(kind token.Kind) error {
	return p.expectAndDiscard(token.Of(kind))
}

func (p *Parser) nextKindIs(kind token.Kind) bool { return p.tokens.NextKindIs(kind) }

func (p *Parser) nthKindIs(n int, kind token.Kind) bool { return p.tokens.NthKindIs(n, kind) }

// parseIdentifier reads the next token, requiring a plain identifier.
func (p *Parser) parseIdentifier() (ast.Identifier, error) {
	next := p.tokens.Read().Token
	switch next.Kind {
	case token.Identifier:
		return ast.Identifier(next.Text), nil
	case token.EOF:
		return "", p.prematureEOF()
	default:
		return "", p.fail("identifier expected")
	}
}

// parseLookup parses a dotted path of identifiers.
func (p *Parser) parseLookup() (ast.Symbol, error) {
	var lookup ast.Symbol
	for {
		identifier, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		lookup = append(lookup, identifier)

		if p.nextKindIs(token.Dot) && p.nthKindIs(1, token.Identifier) {
			p.tokens.Discard()
		} else {
			return lookup, nil
		}
	}
}
