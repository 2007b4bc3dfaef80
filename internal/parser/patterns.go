package parser

import (
	"github.com/sylan-lang/go-sylan/pkg/ast"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

// parsePattern dispatches on the head token: a literal matches by equality,
// an identifier either binds the value or opens a composite deconstruction
// when a parenthesis follows, and the placeholder ignores the value.
func (p *Parser) parsePattern() (ast.Pattern, error) {
	if literal := p.maybeParseLiteral(); literal != nil {
		return ast.Pattern{Item: &ast.LiteralPattern{Literal: literal}}, nil
	}

	next := p.tokens.Peek().Token
	switch next.Kind {
	case token.Identifier:
		if p.compositePatternFollows() {
			composite, err := p.parseCompositePattern()
			if err != nil {
				return ast.Pattern{}, err
			}
			return ast.Pattern{Item: composite}, nil
		}
		p.tokens.Discard()
		return ast.Pattern{Item: &ast.IdentifierPattern{Name: ast.Identifier(next.Text)}}, nil

	case token.Placeholder:
		p.tokens.Discard()
		return ast.Pattern{Item: &ast.IgnoredPattern{}}, nil

	case token.EOF:
		return ast.Pattern{}, p.prematureEOF()
	}
	return ast.Pattern{}, p.unexpected(next)
}

// compositePatternFollows distinguishes `Type(...)` deconstruction from a
// plain identifier pattern. A dotted or bracketed continuation always means
// a composite type name, since identifier patterns are single names.
func (p *Parser) compositePatternFollows() bool {
	return p.nthKindIs(1, token.OpenParentheses) ||
		p.nthKindIs(1, token.OpenSquareBracket) ||
		p.nthKindIs(1, token.Dot)
}

// parseCompositePattern parses `Type(field, label = pattern, ...)`.
func (p *Parser) parseCompositePattern() (*ast.CompositePattern, error) {
	if !p.nextKindIs(token.Identifier) {
		return nil, p.fail("expecting a type name for the composite pattern")
	}

	compositeType, err := p.parseTypeSymbol()
	if err != nil {
		return nil, err
	}
	if err := p.expectAndDiscardKind(token.OpenParentheses); err != nil {
		return nil, err
	}

	var getters []ast.PatternGetter
	for {
		if p.nextKindIs(token.CloseParentheses) {
			p.tokens.Discard()
			return &ast.CompositePattern{
				Type:    compositeType,
				Getters: getters,
			}, nil
		}

		getter, rest, err := p.parseCompositePatternGetter()
		if err != nil {
			return nil, err
		}
		if rest {
			// The rest marker must be the final element.
			if err := p.expectAndDiscardKind(token.CloseParentheses); err != nil {
				return nil, err
			}
			return &ast.CompositePattern{
				Type:       compositeType,
				Getters:    getters,
				IgnoreRest: true,
			}, nil
		}
		getters = append(getters, *getter)

		if p.nextKindIs(token.SubItemSeparator) {
			p.tokens.Discard()
		} else if !p.nextKindIs(token.CloseParentheses) {
			return nil, p.expected(token.Of(token.CloseParentheses))
		}
	}
}

// parseCompositePatternGetter parses a single field: the rest marker, the
// shorthand form where one identifier is both the field label and the bound
// name, or `name = pattern`.
func (p *Parser) parseCompositePatternGetter() (*ast.PatternGetter, bool, error) {
	next := p.tokens.Peek().Token

	if next.Kind == token.Ellipsis {
		p.tokens.Discard()
		return nil, true, nil
	}

	if next.Kind == token.Identifier && !p.nthKindIs(1, token.Assign) {
		p.tokens.Discard()
		name := ast.Identifier(next.Text)
		return &ast.PatternGetter{
			Name:    name,
			Label:   name,
			Pattern: ast.Pattern{Item: &ast.IdentifierPattern{Name: name}},
		}, false, nil
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, false, err
	}
	if err := p.expectAndDiscardKind(token.Assign); err != nil {
		return nil, false, err
	}
	pattern, err := p.parsePattern()
	if err != nil {
		return nil, false, err
	}
	return &ast.PatternGetter{Name: name, Label: name, Pattern: pattern}, false, nil
}

// parseTypeSymbol parses a qualified type reference: a dotted name path plus
// an optional square-bracketed argument list.
func (p *Parser) parseTypeSymbol() (ast.TypeSymbol, error) {
	name, err := p.parseLookup()
	if err != nil {
		return ast.TypeSymbol{}, err
	}

	var arguments []ast.TypeArgument
	if p.nextKindIs(token.OpenSquareBracket) {
		arguments, err = p.parseTypeArgumentList()
		if err != nil {
			return ast.TypeSymbol{}, err
		}
	}
	return ast.TypeSymbol{Name: name, Arguments: arguments}, nil
}

// parseTypeArgumentList parses `[T, label = U]`.
func (p *Parser) parseTypeArgumentList() ([]ast.TypeArgument, error) {
	p.tokens.Discard()

	var arguments []ast.TypeArgument
	for {
		if p.nextKindIs(token.CloseSquareBracket) {
			p.tokens.Discard()
			return arguments, nil
		}

		var label ast.Identifier
		if p.nextKindIs(token.Identifier) && p.nthKindIs(1, token.Assign) {
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			p.tokens.Discard()
			label = name
		}

		value, err := p.parseTypeSymbol()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, ast.TypeArgument{Label: label, Value: value})

		if p.nextKindIs(token.SubItemSeparator) {
			p.tokens.Discard()
		} else if !p.nextKindIs(token.CloseSquareBracket) {
			return nil, p.expected(token.Of(token.CloseSquareBracket))
		}
	}
}

// parseTypeConstraints parses upper bounds joined by `&`.
func (p *Parser) parseTypeConstraints() ([]ast.TypeSymbol, error) {
	var constraints []ast.TypeSymbol
	for {
		constraint, err := p.parseTypeSymbol()
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, constraint)

		if !p.nextKindIs(token.BitwiseAnd) {
			return constraints, nil
		}
		p.tokens.Discard()
	}
}

// parseTypeParameterList parses an optional `[name : Bound & Bound = Default]`
// list.
func (p *Parser) parseTypeParameterList() ([]ast.TypeParameter, error) {
	if !p.nextKindIs(token.OpenSquareBracket) {
		return nil, nil
	}
	p.tokens.Discard()

	var list []ast.TypeParameter
	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		var upperBounds []ast.TypeSymbol
		if p.nextKindIs(token.Colon) {
			p.tokens.Discard()
			upperBounds, err = p.parseTypeConstraints()
			if err != nil {
				return nil, err
			}
		}

		var defaultValue *ast.TypeSymbol
		if p.nextKindIs(token.Assign) {
			p.tokens.Discard()
			symbol, err := p.parseTypeSymbol()
			if err != nil {
				return nil, err
			}
			defaultValue = &symbol
		}

		list = append(list, ast.TypeParameter{
			Name:        name,
			Label:       name,
			UpperBounds: upperBounds,
			Default:     defaultValue,
		})

		if p.nextKindIs(token.CloseSquareBracket) {
			p.tokens.Discard()
			return list, nil
		}
		if err := p.expectAndDiscardKind(token.SubItemSeparator); err != nil {
			return nil, err
		}
	}
}
