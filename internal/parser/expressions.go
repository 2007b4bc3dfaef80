package parser

import (
	"github.com/sylan-lang/go-sylan/pkg/ast"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

// maybeParseLiteral translates a literal token into its AST node, reading it
// when it matches. Boolean, character, number, and string tokens map
// one-to-one; interpolated strings stay raw until a later phase.
func (p *Parser) maybeParseLiteral() ast.Expression {
	next := p.tokens.Peek().Token
	switch next.Kind {
	case token.Boolean:
		p.tokens.Discard()
		return &ast.BooleanLiteral{Value: next.Bool}
	case token.Char:
		p.tokens.Discard()
		return &ast.CharLiteral{Value: next.Rune}
	case token.Number:
		p.tokens.Discard()
		return &ast.NumberLiteral{Whole: next.Whole, Fraction: next.Fraction}
	case token.String:
		p.tokens.Discard()
		return &ast.StringLiteral{Value: next.Text}
	case token.InterpolatedString:
		p.tokens.Discard()
		return &ast.InterpolatedStringLiteral{Value: next.Text}
	}
	return nil
}

// parseExpression parses a general expression, including grouped
// subexpressions and lambda literals.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseExpressionRestricted(false)
}

// parseOutermostExpression parses an expression at statement-like position.
// Outermost expressions are the same as any other expression except for
// disallowing grouped subexpressions and lambda literals at their head; both
// exclusions keep parsing unambiguous without explicit line continuations.
func (p *Parser) parseOutermostExpression() (ast.Expression, error) {
	return p.parseExpressionRestricted(true)
}

func (p *Parser) parseExpressionRestricted(outermost bool) (ast.Expression, error) {
	expression, err := p.parseAtomicExpression(outermost)
	if err != nil {
		return nil, err
	}
	return p.parseBinaryOperators(expression)
}

// parseAtomicExpression parses one operand: a head expression followed by
// its postfix operators (calls and the bind operator).
func (p *Parser) parseAtomicExpression(outermost bool) (ast.Expression, error) {
	expression, err := p.parseHeadExpression(outermost)
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(expression)
}

func (p *Parser) parseHeadExpression(outermost bool) (ast.Expression, error) {
	if literal := p.maybeParseLiteral(); literal != nil {
		return literal, nil
	}

	next := p.tokens.Peek().Token
	switch next.Kind {
	case token.With:
		return p.parseWith()
	case token.For:
		return p.parseFor()
	case token.If:
		return p.parseIf()
	case token.Select:
		return p.parseSelect()
	case token.Switch:
		return p.parseSwitch()
	case token.Throw:
		return p.parseThrow()

	case token.LambdaArrow:
		if outermost {
			return nil, p.unexpected(next)
		}
		return p.parseLambda()

	case token.OpenParentheses:
		if outermost {
			return nil, p.unexpected(next)
		}
		return p.parseGroupedExpression()

	case token.Identifier:
		lookup, err := p.parseLookup()
		if err != nil {
			return nil, err
		}
		if len(lookup) == 1 {
			return &ast.IdentifierRef{Name: lookup[0]}, nil
		}
		return &ast.PackageLookup{Lookup: lookup}, nil

	case token.Subtract:
		return p.parseUnary(ast.UnaryNegate)
	case token.Add:
		return p.parseUnary(ast.UnaryPositive)
	case token.Not:
		return p.parseUnary(ast.UnaryNot)
	case token.BitwiseNot:
		return p.parseUnary(ast.UnaryBitwiseNot)
	case token.MethodHandle:
		return p.parseUnary(ast.UnaryMethodHandle)

	case token.EOF:
		return nil, p.fail("an expression at the end of the Sylan file is not finished")
	}

	if next.Kind.IsPseudoIdentifier() {
		return p.parsePseudoReference()
	}
	return nil, p.unexpected(next)
}

func (p *Parser) parseUnary(operator ast.UnaryOperator) (ast.Expression, error) {
	p.tokens.Discard()
	operand, err := p.parseAtomicExpression(false)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOperatorApplication{Operator: operator, Operand: operand}, nil
}

// parsePseudoReference parses a pseudoidentifier head. `continue` may take
// call arguments to rebind the enclosing loop's bindings; `this.package` and
// `this.module` fold into single references.
func (p *Parser) parsePseudoReference() (ast.Expression, error) {
	next := p.tokens.Read().Token

	switch next.Kind {
	case token.Continue:
		if p.nextKindIs(token.OpenParentheses) {
			arguments, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return &ast.Continue{Arguments: arguments}, nil
		}
		return &ast.Continue{}, nil

	case token.This:
		if p.nextKindIs(token.Dot) {
			if p.nthKindIs(1, token.Package) {
				p.tokens.Discard()
				p.tokens.Discard()
				return &ast.PseudoRef{Pseudo: ast.PseudoThisPackage}, nil
			}
			if p.tokens.NthIs(1, token.Ident("module")) {
				p.tokens.Discard()
				p.tokens.Discard()
				return &ast.PseudoRef{Pseudo: ast.PseudoThisModule}, nil
			}
		}
		return &ast.PseudoRef{Pseudo: ast.PseudoThis}, nil

	case token.It:
		return &ast.PseudoRef{Pseudo: ast.PseudoIt}, nil
	case token.Super:
		return &ast.PseudoRef{Pseudo: ast.PseudoSuper}, nil
	case token.ThisType:
		return &ast.PseudoRef{Pseudo: ast.PseudoThisType}, nil
	case token.Ellipsis:
		return &ast.PseudoRef{Pseudo: ast.PseudoEllipsis}, nil
	case token.Placeholder:
		return &ast.PseudoRef{Pseudo: ast.PseudoPlaceholder}, nil
	}
	return nil, p.unexpected(next)
}

// parsePostfix consumes the postfix operators following an expression: call
// argument lists and the single bind operator `?`.
func (p *Parser) parsePostfix(expression ast.Expression) (ast.Expression, error) {
	for p.nextKindIs(token.OpenParentheses) {
		arguments, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		expression = &ast.Call{Target: expression, Arguments: arguments}
	}

	if p.nextKindIs(token.Bind) {
		p.tokens.Discard()
		expression = &ast.PostfixBind{Operand: expression}
	}
	return expression, nil
}

// parseBinaryOperators consumes a run of infix operators after an operand.
// Application is left-to-right; the operator set is closed, so there are no
// precedence levels to honor.
func (p *Parser) parseBinaryOperators(left ast.Expression) (ast.Expression, error) {
	for {
		operator, found := p.maybeBinaryOperator()
		if !found {
			return left, nil
		}
		p.tokens.Discard()

		right, err := p.parseAtomicExpression(false)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperatorApplication{Operator: operator, Left: left, Right: right}
	}
}

var binaryOperators = map[token.Kind]ast.BinaryOperator{
	token.Add:                 ast.BinaryAdd,
	token.And:                 ast.BinaryAnd,
	token.BitwiseAnd:          ast.BinaryBitwiseAnd,
	token.BitwiseOr:           ast.BinaryBitwiseOr,
	token.BitwiseXor:          ast.BinaryBitwiseXor,
	token.Compose:             ast.BinaryCompose,
	token.Divide:              ast.BinaryDivide,
	token.Dot:                 ast.BinaryDot,
	token.Equals:              ast.BinaryEquals,
	token.GreaterThan:         ast.BinaryGreaterThan,
	token.GreaterThanOrEquals: ast.BinaryGreaterThanOrEquals,
	token.LessThan:            ast.BinaryLessThan,
	token.LessThanOrEquals:    ast.BinaryLessThanOrEquals,
	token.Modulo:              ast.BinaryModulo,
	token.Multiply:            ast.BinaryMultiply,
	token.NotEquals:           ast.BinaryNotEquals,
	token.Or:                  ast.BinaryOr,
	token.Pipe:                ast.BinaryPipe,
	token.ShiftLeft:           ast.BinaryShiftLeft,
	token.ShiftRight:          ast.BinaryShiftRight,
	token.Subtract:            ast.BinarySubtract,
}

func (p *Parser) maybeBinaryOperator() (ast.BinaryOperator, bool) {
	operator, found := binaryOperators[p.tokens.Peek().Token.Kind]
	return operator, found
}

// parseArgumentList parses a parenthesized, comma-separated list of
// optionally labeled call arguments.
func (p *Parser) parseArgumentList() ([]ast.Argument, error) {
	if err := p.expectAndDiscardKind(token.OpenParentheses); err != nil {
		return nil, err
	}

	var arguments []ast.Argument
	for {
		if p.nextKindIs(token.CloseParentheses) {
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

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, ast.Argument{Label: label, Value: value})

		if p.nextKindIs(token.SubItemSeparator) {
			p.tokens.Discard()
		} else if !p.nextKindIs(token.CloseParentheses) {
			return nil, p.expected(token.Of(token.CloseParentheses))
		}
	}
}

func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	p.tokens.Discard()
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectAndDiscardKind(token.CloseParentheses); err != nil {
		return nil, err
	}
	return &ast.Group{Inner: inner}, nil
}

// parseWith parses a context block. Expressions inside it run with an
// ambient context value.
func (p *Parser) parseWith() (ast.Expression, error) {
	p.tokens.Discard()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	block.InContext = true
	return &ast.Context{Block: block}, nil
}

func (p *Parser) parseIf() (ast.Expression, error) {
	p.tokens.Discard()

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block
	if p.nextKindIs(token.Else) {
		p.tokens.Discard()
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Condition: condition, Then: then, Else: elseBlock}, nil
}

// parseFor parses a loop: an optional label, then comma-separated var
// bindings, then the loop block.
func (p *Parser) parseFor() (ast.Expression, error) {
	p.tokens.Discard()

	var label ast.Identifier
	if !p.nextKindIs(token.Var) && !p.nextKindIs(token.OpenBrace) {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		label = name
	}

	var bindings []*ast.Binding
	for !p.nextKindIs(token.OpenBrace) {
		if err := p.expectAndDiscardKind(token.Var); err != nil {
			return nil, err
		}
		binding, err := p.parseBindingBody(false)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding)
		if p.nextKindIs(token.SubItemSeparator) {
			p.tokens.Discard()
		}
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Label: label, Bindings: bindings, Block: block}, nil
}

// parseLambda parses a lambda literal; this never happens from an outermost
// expression, only a subexpression, to avoid the ambiguity with the
// shorthand for passing a trailing lambda argument on a new line.
func (p *Parser) parseLambda() (ast.Expression, error) {
	if err := p.expectAndDiscardKind(token.LambdaArrow); err != nil {
		return nil, err
	}

	signature, err := p.parseLambdaSignature()
	if err != nil {
		return nil, err
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Signature: signature, Block: block}, nil
}

func (p *Parser) parseLambdaSignature() (ast.LambdaSignature, error) {
	modifiers, err := p.parseModifiers(lambdaModifiers)
	if err != nil {
		return ast.LambdaSignature{}, err
	}

	var parameters []ast.LambdaValueParameter
	if p.nextKindIs(token.OpenParentheses) {
		parameters, err = p.parseLambdaValueParameterList()
		if err != nil {
			return ast.LambdaSignature{}, err
		}
	}

	var returnType *ast.TypeSymbol
	if !p.nextKindIs(token.OpenBrace) {
		symbol, err := p.parseTypeSymbol()
		if err != nil {
			return ast.LambdaSignature{}, err
		}
		returnType = &symbol
	}

	return ast.LambdaSignature{
		ValueParameters: parameters,
		ReturnType:      returnType,
		Ignorable:       modifiers.has(token.Ignorable),
	}, nil
}

func (p *Parser) parseLambdaValueParameterList() ([]ast.LambdaValueParameter, error) {
	p.tokens.Discard()

	var parameters []ast.LambdaValueParameter
	for {
		if p.nextKindIs(token.CloseParentheses) {
			p.tokens.Discard()
			return parameters, nil
		}

		pattern, err := p.parsePattern()
		if err != nil {
			return nil, err
		}

		var defaultValue ast.Expression
		if p.nextKindIs(token.Assign) {
			p.tokens.Discard()
			defaultValue, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}

		parameters = append(parameters, ast.LambdaValueParameter{
			Pattern: pattern,
			Default: defaultValue,
		})

		if p.nextKindIs(token.SubItemSeparator) {
			p.tokens.Discard()
		} else if !p.nextKindIs(token.CloseParentheses) {
			return nil, p.expected(token.Of(token.CloseParentheses))
		}
	}
}

func (p *Parser) parseThrow() (ast.Expression, error) {
	p.tokens.Discard()
	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Throw{Expression: expression}, nil
}

// parseSwitch parses either a cond or a direct switch: a `switch`
// immediately followed by an open brace has no scrutinee and becomes a
// cascade of boolean guards.
func (p *Parser) parseSwitch() (ast.Expression, error) {
	p.tokens.Discard()

	if p.nextKindIs(token.OpenBrace) {
		return p.parseCond()
	}
	return p.parseDirectSwitch()
}

func (p *Parser) parseCond() (ast.Expression, error) {
	p.tokens.Discard()

	var cases []ast.CondCase
	for {
		if p.nextKindIs(token.CloseBrace) {
			p.tokens.Discard()
			return &ast.Cond{Cases: cases}, nil
		}

		var conditions []ast.Expression
		var then *ast.Block
		for {
			condition, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, condition)

			if p.nextKindIs(token.OpenBrace) {
				then, err = p.parseBlock()
				if err != nil {
					return nil, err
				}
				break
			}
			if err := p.expectAndDiscardKind(token.SubItemSeparator); err != nil {
				return nil, err
			}
		}
		cases = append(cases, ast.CondCase{Conditions: conditions, Then: then})
	}
}

func (p *Parser) parseDirectSwitch() (ast.Expression, error) {
	scrutinee, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectAndDiscardKind(token.OpenBrace); err != nil {
		return nil, err
	}

	var cases []ast.Case
	for {
		if p.nextKindIs(token.CloseBrace) {
			p.tokens.Discard()
			return &ast.Switch{Expression: scrutinee, Cases: cases}, nil
		}

		switchCase, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, switchCase)
	}
}

// parseCase parses a comma-separated list of guarded patterns followed by a
// body block.
func (p *Parser) parseCase() (ast.Case, error) {
	var matches []ast.CaseMatch
	for {
		pattern, err := p.parsePattern()
		if err != nil {
			return ast.Case{}, err
		}

		var guard ast.Expression
		if p.nextKindIs(token.If) {
			p.tokens.Discard()
			guard, err = p.parseExpression()
			if err != nil {
				return ast.Case{}, err
			}
		}
		matches = append(matches, ast.CaseMatch{Pattern: pattern, Guard: guard})

		if p.nextKindIs(token.OpenBrace) {
			body, err := p.parseBlock()
			if err != nil {
				return ast.Case{}, err
			}
			return ast.Case{Matches: matches, Body: body}, nil
		}
		if err := p.expectAndDiscardKind(token.SubItemSeparator); err != nil {
			return ast.Case{}, err
		}
	}
}

// parseSelect parses a message receive: a message type, then pattern cases
// with at most one timeout clause.
func (p *Parser) parseSelect() (ast.Expression, error) {
	p.tokens.Discard()

	messageType, err := p.parseTypeSymbol()
	if err != nil {
		return nil, err
	}
	if err := p.expectAndDiscardKind(token.OpenBrace); err != nil {
		return nil, err
	}

	var cases []ast.Case
	var timeout *ast.Timeout
	for {
		if p.nextKindIs(token.CloseBrace) {
			p.tokens.Discard()
			return &ast.Select{MessageType: messageType, Cases: cases, Timeout: timeout}, nil
		}

		if p.nextKindIs(token.Timeout) {
			if timeout != nil {
				return nil, p.unexpected(token.Of(token.Timeout))
			}
			p.tokens.Discard()

			nanoseconds, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			timeout = &ast.Timeout{Nanoseconds: nanoseconds, Body: body}
			continue
		}

		selectCase, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, selectCase)
	}
}

// parseBlock parses a braced scope: local bindings and outermost
// expressions, in order. The block records a back-pointer to the enclosing
// scope for later lexical resolution.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if err := p.expectAndDiscardKind(token.OpenBrace); err != nil {
		return nil, err
	}

	block := ast.Within(p.currentScope)
	enclosing := p.currentScope
	p.currentScope = block
	defer func() { p.currentScope = enclosing }()

	for {
		switch {
		case p.nextKindIs(token.Var):
			binding, err := p.parseLocalBinding()
			if err != nil {
				return nil, err
			}
			block.Bindings = append(block.Bindings, binding)

		case p.nextKindIs(token.CloseBrace):
			p.tokens.Discard()
			return block, nil

		case p.nextKindIs(token.EOF):
			return nil, p.prematureEOF()

		default:
			expression, err := p.parseOutermostExpression()
			if err != nil {
				return nil, err
			}
			block.Expressions = append(block.Expressions, expression)
		}
	}
}
