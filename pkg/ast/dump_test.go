package ast

import (
	"strings"
	"testing"
)

func TestDumpRendersFileHeader(t *testing.T) {
	shebang := "/usr/bin/env sylan"
	file := &File{
		Shebang: &shebang,
		Version: &Version{Major: 1, Minor: 2},
		Package: MainPackage{
			Package: Package{Name: "main"},
			Block:   NewRootBlock(),
		},
	}

	dump := Dump(file)
	for _, expected := range []string{
		"File",
		`Shebang: "/usr/bin/env sylan"`,
		"Version: v1.2",
		"MainPackage main",
	} {
		if !strings.Contains(dump, expected) {
			t.Errorf("dump missing %q:\n%s", expected, dump)
		}
	}
}

func TestDumpRendersNestedExpressions(t *testing.T) {
	block := NewRootBlock()
	block.Expressions = append(block.Expressions, &BinaryOperatorApplication{
		Operator: BinaryPipe,
		Left:     &IdentifierRef{Name: "xs"},
		Right:    &Call{Target: &IdentifierRef{Name: "sum"}},
	})

	file := &File{Package: MainPackage{Package: Package{Name: "main"}, Block: block}}
	dump := Dump(file)

	for _, expected := range []string{"Binary |>", "Identifier xs", "Call", "Identifier sum"} {
		if !strings.Contains(dump, expected) {
			t.Errorf("dump missing %q:\n%s", expected, dump)
		}
	}
}

func TestTypeSymbolText(t *testing.T) {
	symbol := TypeSymbol{
		Name: Symbol{"sylan", "lang", "Map"},
		Arguments: []TypeArgument{
			{Value: TypeSymbol{Name: Symbol{"Str"}}},
			{Label: "value", Value: TypeSymbol{Name: Symbol{"Int"}}},
		},
	}

	if got := typeSymbolText(symbol); got != "sylan.lang.Map[Str, value = Int]" {
		t.Errorf("typeSymbolText = %q", got)
	}
}

func TestPatternDump(t *testing.T) {
	block := NewRootBlock()
	block.Expressions = append(block.Expressions, &Switch{
		Expression: &IdentifierRef{Name: "x"},
		Cases: []Case{{
			Matches: []CaseMatch{{
				Pattern: Pattern{Item: &CompositePattern{
					Type:       TypeSymbol{Name: Symbol{"Point"}},
					Getters:    []PatternGetter{{Name: "x", Label: "x", Pattern: Pattern{Item: &IdentifierPattern{Name: "x"}}}},
					IgnoreRest: true,
				}},
			}},
			Body: Within(block),
		}},
	})

	file := &File{Package: MainPackage{Package: Package{Name: "main"}, Block: block}}
	dump := Dump(file)

	for _, expected := range []string{"CompositePattern Point (ignore rest)", "Getter x"} {
		if !strings.Contains(dump, expected) {
			t.Errorf("dump missing %q:\n%s", expected, dump)
		}
	}
}
