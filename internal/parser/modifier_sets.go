package parser

import (
	"github.com/sylan-lang/go-sylan/pkg/ast"
	"github.com/sylan-lang/go-sylan/pkg/token"
)

// modifierSet is the whitelist of modifiers permitted at one declaration
// site. The three accessibility keywords always travel together.
type modifierSet map[token.Kind]bool

func newModifierSet(kinds ...token.Kind) modifierSet {
	set := make(modifierSet, len(kinds)+3)
	for _, kind := range kinds {
		set[kind] = true
	}
	return set
}

func withAccessibility(set modifierSet) modifierSet {
	set[token.Public] = true
	set[token.Internal] = true
	set[token.Private] = true
	return set
}

var (
	packageModifiers  = withAccessibility(newModifierSet())
	bindingModifiers  = withAccessibility(newModifierSet(token.Extern))
	typeSpecModifiers = withAccessibility(newModifierSet())
	functionModifiers = withAccessibility(newModifierSet(token.Ignorable, token.Extern, token.Operator))
	methodModifiers   = withAccessibility(newModifierSet(token.Virtual, token.Override, token.Ignorable, token.Extern))
	fieldModifiers    = withAccessibility(newModifierSet(token.Embed, token.Extern))
	lambdaModifiers   = newModifierSet(token.Ignorable)
)

// parsedModifiers is the outcome of consuming the contiguous modifier tokens
// at one declaration site.
type parsedModifiers struct {
	accessibility    ast.Accessibility
	hasAccessibility bool
	seen             map[token.Kind]bool
}

func (m *parsedModifiers) has(kind token.Kind) bool { return m.seen[kind] }

// parseModifiers consumes the contiguous run of modifier tokens permitted by
// the whitelist. Listing any modifier twice, or more than one accessibility
// level, is a parse error.
func (p *Parser) parseModifiers(allowed modifierSet) (parsedModifiers, error) {
	result := parsedModifiers{
		accessibility: ast.Public,
		seen:          map[token.Kind]bool{},
	}

	for {
		kind := p.tokens.Peek().Token.Kind
		if !kind.IsModifier() || !allowed[kind] {
			return result, nil
		}
		p.tokens.Discard()

		if result.seen[kind] {
			return result, p.failf("the modifier %s was listed twice", kind)
		}
		result.seen[kind] = true

		if kind.IsAccessibility() {
			if result.hasAccessibility {
				return result, p.failf("more than one accessibility modifier was listed")
			}
			result.hasAccessibility = true
			switch kind {
			case token.Public:
				result.accessibility = ast.Public
			case token.Internal:
				result.accessibility = ast.Internal
			case token.Private:
				result.accessibility = ast.Private
			}
		}
	}
}
