package parser

import (
	"github.com/sylan-lang/go-sylan/pkg/ast"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

// parseBindingBody parses `pattern [type] = expression` after the `var`
// keyword (and any modifiers) have been consumed. When requireAnnotation is
// set, omitting the type annotation is an error; that applies to bindings at
// the top level of non-main packages.
func (p *Parser) parseBindingBody(requireAnnotation bool) (*ast.Binding, error) {
	pattern, err := p.parsePattern()
	if err != nil {
		return nil, err
	}

	var annotation *ast.TypeSymbol
	if !p.nextKindIs(token.Assign) {
		symbol, err := p.parseTypeSymbol()
		if err != nil {
			return nil, err
		}
		annotation = &symbol
	} else if requireAnnotation {
		return nil, p.fail("a package-level binding outside the main package requires a type annotation")
	}

	if err := p.expectAndDiscardKind(token.Assign); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Binding{Pattern: pattern, Type: annotation, Value: value}, nil
}

// parseLocalBinding parses a `var` binding in a block or the main package,
// where annotations are optional.
func (p *Parser) parseLocalBinding() (*ast.Binding, error) {
	p.tokens.Discard()
	return p.parseBindingBody(false)
}

// parsePackageBinding parses a `var` binding at the top level of a named
// package, with its modifiers and mandatory type annotation.
func (p *Parser) parsePackageBinding() (ast.Item, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(bindingModifiers)
	if err != nil {
		return nil, err
	}

	binding, err := p.parseBindingBody(true)
	if err != nil {
		return nil, err
	}

	return &ast.PackageBinding{
		Accessibility: modifiers.accessibility,
		Extern:        modifiers.has(token.Extern),
		Binding:       *binding,
	}, nil
}

func (p *Parser) parseImport() (ast.Item, error) {
	p.tokens.Discard()
	lookup, err := p.parseLookup()
	if err != nil {
		return nil, err
	}
	return &ast.Import{Lookup: lookup}, nil
}

func (p *Parser) parsePackageDefinition() (ast.Item, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(packageModifiers)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectAndDiscardKind(token.OpenBrace); err != nil {
		return nil, err
	}
	items, err := p.parseInsidePackage()
	if err != nil {
		return nil, err
	}
	if err := p.expectAndDiscardKind(token.CloseBrace); err != nil {
		return nil, err
	}

	return &ast.Package{
		Accessibility: modifiers.accessibility,
		Name:          name,
		Items:         items,
	}, nil
}

// parseFunSignature parses an optional type parameter list, the
// parenthesized value parameter list, and an optional return type. A value
// parameter is `pattern [type] [= default]`.
func (p *Parser) parseFunSignature() (ast.FunSignature, error) {
	typeParameters, err := p.parseTypeParameterList()
	if err != nil {
		return ast.FunSignature{}, err
	}

	if err := p.expectAndDiscardKind(token.OpenParentheses); err != nil {
		return ast.FunSignature{}, err
	}

	var parameters []ast.ValueParameter
	for {
		if p.nextKindIs(token.CloseParentheses) {
			p.tokens.Discard()
			break
		}

		parameter, err := p.parseValueParameter()
		if err != nil {
			return ast.FunSignature{}, err
		}
		parameters = append(parameters, parameter)

		if p.nextKindIs(token.SubItemSeparator) {
			p.tokens.Discard()
		} else if !p.nextKindIs(token.CloseParentheses) {
			return ast.FunSignature{}, p.expected(token.Of(token.CloseParentheses))
		}
	}

	var returnType *ast.TypeSymbol
	if !p.nextKindIs(token.OpenBrace) {
		symbol, err := p.parseTypeSymbol()
		if err != nil {
			return ast.FunSignature{}, err
		}
		returnType = &symbol
	}

	return ast.FunSignature{
		TypeParameters:  typeParameters,
		ValueParameters: parameters,
		ReturnType:      returnType,
	}, nil
}

func (p *Parser) parseValueParameter() (ast.ValueParameter, error) {
	pattern, err := p.parsePattern()
	if err != nil {
		return ast.ValueParameter{}, err
	}

	var annotation *ast.TypeSymbol
	if p.nextKindIs(token.Identifier) {
		symbol, err := p.parseTypeSymbol()
		if err != nil {
			return ast.ValueParameter{}, err
		}
		annotation = &symbol
	}

	var defaultValue ast.Expression
	if p.nextKindIs(token.Assign) {
		p.tokens.Discard()
		defaultValue, err = p.parseExpression()
		if err != nil {
			return ast.ValueParameter{}, err
		}
	}

	return ast.ValueParameter{
		Pattern: pattern,
		Type:    annotation,
		Default: defaultValue,
	}, nil
}

func (p *Parser) parseFun() (ast.Item, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(functionModifiers)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	signature, err := p.parseFunSignature()
	if err != nil {
		return nil, err
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Fun{
		Name: name,
		Modifiers: ast.FunModifiers{
			Accessibility: modifiers.accessibility,
			Ignorable:     modifiers.has(token.Ignorable),
			Extern:        modifiers.has(token.Extern),
			Operator:      modifiers.has(token.Operator),
		},
		Signature: signature,
		Block:     block,
	}, nil
}

// parseClassDefinition parses a class declaration, or a type assignment when
// `=` follows the name and type parameters.
func (p *Parser) parseClassDefinition() (ast.Item, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(typeSpecModifiers)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	typeParameters, err := p.parseTypeParameterList()
	if err != nil {
		return nil, err
	}

	if p.nextKindIs(token.Assign) {
		p.tokens.Discard()
		assignee, err := p.parseTypeSymbol()
		if err != nil {
			return nil, err
		}
		return &ast.TypeAssignment{
			Accessibility:  modifiers.accessibility,
			Name:           name,
			TypeParameters: typeParameters,
			Assignee:       assignee,
		}, nil
	}

	var implements []ast.TypeSymbol
	if p.nextKindIs(token.Implements) {
		p.tokens.Discard()
		implements, err = p.parseTypeSymbolList()
		if err != nil {
			return nil, err
		}
	}

	members, err := p.parseTypeBody(false)
	if err != nil {
		return nil, err
	}

	return &ast.Class{
		Accessibility:  modifiers.accessibility,
		Name:           name,
		TypeParameters: typeParameters,
		Implements:     implements,
		Methods:        members.methods,
		Getters:        members.getters,
		Fields:         members.fields,
	}, nil
}

// parseInterfaceDefinition parses an interface declaration. Interfaces may
// extend other interfaces, and their methods and getters may be abstract.
func (p *Parser) parseInterfaceDefinition() (ast.Item, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(typeSpecModifiers)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	typeParameters, err := p.parseTypeParameterList()
	if err != nil {
		return nil, err
	}

	var extends []ast.TypeSymbol
	if p.nextKindIs(token.Extends) {
		p.tokens.Discard()
		extends, err = p.parseTypeSymbolList()
		if err != nil {
			return nil, err
		}
	}

	members, err := p.parseTypeBody(true)
	if err != nil {
		return nil, err
	}
	if len(members.fields) != 0 {
		return nil, p.fail("interfaces cannot declare fields")
	}

	return &ast.Interface{
		Accessibility:  modifiers.accessibility,
		Name:           name,
		TypeParameters: typeParameters,
		Extends:        extends,
		Methods:        members.methods,
		Getters:        members.getters,
	}, nil
}

// parseExtension parses `extend TypeSymbol { members }`, adding members to
// an existing type.
func (p *Parser) parseExtension() (ast.Item, error) {
	p.tokens.Discard()

	extended, err := p.parseTypeSymbol()
	if err != nil {
		return nil, err
	}

	members, err := p.parseTypeBody(false)
	if err != nil {
		return nil, err
	}

	return &ast.Extension{
		Type:    extended,
		Methods: members.methods,
		Getters: members.getters,
		Fields:  members.fields,
	}, nil
}

func (p *Parser) parseTypeSymbolList() ([]ast.TypeSymbol, error) {
	var symbols []ast.TypeSymbol
	for {
		symbol, err := p.parseTypeSymbol()
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)

		if !p.nextKindIs(token.SubItemSeparator) {
			return symbols, nil
		}
		p.tokens.Discard()
	}
}

type typeMembers struct {
	methods []ast.Method
	getters []ast.Getter
	fields  []ast.Field
}

// parseTypeBody parses a brace-enclosed member list: fields (`var`), methods
// (`fun`), and getters (`get`). Bodies are optional only when
// allowAbstract is set, which holds for interfaces.
func (p *Parser) parseTypeBody(allowAbstract bool) (typeMembers, error) {
	var members typeMembers

	if err := p.expectAndDiscardKind(token.OpenBrace); err != nil {
		return members, err
	}

	var pendingDoc *string
	for {
		next := p.tokens.Peek().Token
		switch next.Kind {
		case token.CloseBrace:
			p.tokens.Discard()
			return members, nil

		case token.SyDoc:
			doc := p.tokens.Read().Token.Text
			pendingDoc = &doc
			continue

		case token.Var:
			field, err := p.parseField()
			if err != nil {
				return members, err
			}
			members.fields = append(members.fields, *field)

		case token.Fun:
			method, err := p.parseMethod(allowAbstract)
			if err != nil {
				return members, err
			}
			method.SyDoc = pendingDoc
			members.methods = append(members.methods, *method)

		case token.Get:
			getter, err := p.parseGetter(allowAbstract)
			if err != nil {
				return members, err
			}
			members.getters = append(members.getters, *getter)

		case token.EOF:
			return members, p.prematureEOF()

		default:
			return members, p.unexpected(next)
		}
		pendingDoc = nil
	}
}

// parseField parses `var` modifiers pattern [type] = expression inside a
// type body.
func (p *Parser) parseField() (*ast.Field, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(fieldModifiers)
	if err != nil {
		return nil, err
	}

	binding, err := p.parseBindingBody(false)
	if err != nil {
		return nil, err
	}

	return &ast.Field{
		Accessibility: modifiers.accessibility,
		Embedded:      modifiers.has(token.Embed),
		Extern:        modifiers.has(token.Extern),
		Binding:       *binding,
	}, nil
}

// parseMethod parses `fun` modifiers name signature [block] inside a type
// body. A method without a block is abstract.
func (p *Parser) parseMethod(allowAbstract bool) (*ast.Method, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(methodModifiers)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	signature, err := p.parseFunSignature()
	if err != nil {
		return nil, err
	}

	var block *ast.Block
	if p.nextKindIs(token.OpenBrace) {
		block, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	} else if !allowAbstract {
		return nil, p.expected(token.Of(token.OpenBrace))
	}

	return &ast.Method{
		Name: name,
		Modifiers: ast.MethodModifiers{
			Accessibility: modifiers.accessibility,
			Virtual:       modifiers.has(token.Virtual),
			Override:      modifiers.has(token.Override),
			Ignorable:     modifiers.has(token.Ignorable),
			Extern:        modifiers.has(token.Extern),
		},
		Signature: signature,
		Block:     block,
	}, nil
}

// parseGetter parses `get` modifiers name [type] [block] inside a type body.
// Getters take no parameters and are invoked without call syntax.
func (p *Parser) parseGetter(allowAbstract bool) (*ast.Getter, error) {
	p.tokens.Discard()

	modifiers, err := p.parseModifiers(methodModifiers)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	var getterType *ast.TypeSymbol
	if p.nextKindIs(token.Identifier) {
		symbol, err := p.parseTypeSymbol()
		if err != nil {
			return nil, err
		}
		getterType = &symbol
	}

	var block *ast.Block
	if p.nextKindIs(token.OpenBrace) {
		block, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	} else if !allowAbstract {
		return nil, p.expected(token.Of(token.OpenBrace))
	}

	return &ast.Getter{
		Name: name,
		Modifiers: ast.MethodModifiers{
			Accessibility: modifiers.accessibility,
			Virtual:       modifiers.has(token.Virtual),
			Override:      modifiers.has(token.Override),
			Ignorable:     modifiers.has(token.Ignorable),
			Extern:        modifiers.has(token.Extern),
		},
		Type:  getterType,
		Block: block,
	}, nil
}
