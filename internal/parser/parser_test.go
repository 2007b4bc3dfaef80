package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sylan-lang/go-sylan/internal/lexer"
	"github.com/sylan-lang/go-sylan/pkg/ast"
)

func parse(t *testing.T, input string) *ast.File {
	t.Helper()
	file, err := New(lexer.New(input).Lex()).Parse()
	require.NoError(t, err)
	return file
}

func parseError(t *testing.T, input string) error {
	t.Helper()
	_, err := New(lexer.New(input).Lex()).Parse()
	require.Error(t, err)
	return err
}

func mainExpressions(t *testing.T, input string) []ast.Expression {
	t.Helper()
	return parse(t, input).Package.Block.Expressions
}

func TestEmptyFile(t *testing.T) {
	file := parse(t, "")

	require.Nil(t, file.Shebang)
	require.Nil(t, file.Version)
	require.Equal(t, ast.Identifier("main"), file.Package.Package.Name)
	require.Empty(t, file.Package.Package.Items)
	require.Empty(t, file.Package.Block.Expressions)
}

func TestShebangAndVersion(t *testing.T) {
	file := parse(t, "#!/usr/bin/env sylan\nv1.2\n42")

	require.NotNil(t, file.Shebang)
	require.Equal(t, "/usr/bin/env sylan", *file.Shebang)
	require.NotNil(t, file.Version)
	require.Equal(t, ast.Version{Major: 1, Minor: 2}, *file.Version)
	require.Len(t, file.Package.Block.Expressions, 1)
}

func TestVersionWithoutShebang(t *testing.T) {
	file := parse(t, "v3.0")
	require.NotNil(t, file.Version)
	require.Equal(t, uint64(3), file.Version.Major)
}

func TestMainPackageCollectsBindingsAndExpressions(t *testing.T) {
	file := parse(t, "var x = 1\nx\nvar y = 2\ny")

	block := file.Package.Block
	require.Len(t, block.Bindings, 2)
	require.Len(t, block.Expressions, 2)
	require.Equal(t, &ast.IdentifierRef{Name: "x"}, block.Expressions[0])
}

func TestMainBindingWithoutAnnotation(t *testing.T) {
	file := parse(t, "var x = 42")

	binding := file.Package.Block.Bindings[0]
	require.Nil(t, binding.Type)
	require.Equal(t, &ast.NumberLiteral{Whole: 42}, binding.Value)
	require.Equal(t, &ast.IdentifierPattern{Name: "x"}, binding.Pattern.Item)
}

func TestBindingWithAnnotation(t *testing.T) {
	file := parse(t, "var x Int = 42")

	binding := file.Package.Block.Bindings[0]
	require.NotNil(t, binding.Type)
	require.Equal(t, ast.Symbol{"Int"}, binding.Type.Name)
}

func TestLiteralExpressions(t *testing.T) {
	expressions := mainExpressions(t, "true 'x' 42 0.5 \"s\" `i {x}`")

	require.Equal(t, []ast.Expression{
		&ast.BooleanLiteral{Value: true},
		&ast.CharLiteral{Value: 'x'},
		&ast.NumberLiteral{Whole: 42},
		&ast.NumberLiteral{Whole: 0, Fraction: 5},
		&ast.StringLiteral{Value: "s"},
		&ast.InterpolatedStringLiteral{Value: "i {x}"},
	}, expressions)
}

func TestIfElse(t *testing.T) {
	expressions := mainExpressions(t, "if x { 1 } else { 2 }")

	require.Len(t, expressions, 1)
	ifExpr, ok := expressions[0].(*ast.If)
	require.True(t, ok)
	require.Equal(t, &ast.IdentifierRef{Name: "x"}, ifExpr.Condition)
	require.Len(t, ifExpr.Then.Expressions, 1)
	require.NotNil(t, ifExpr.Else)
}

func TestIfWithoutElse(t *testing.T) {
	expressions := mainExpressions(t, "if x { 1 }")
	require.Nil(t, expressions[0].(*ast.If).Else)
}

func TestForWithLabelAndBindings(t *testing.T) {
	expressions := mainExpressions(t, "for outer var i = 0, var j = 10 { i }")

	forExpr, ok := expressions[0].(*ast.For)
	require.True(t, ok)
	require.Equal(t, ast.Identifier("outer"), forExpr.Label)
	require.Len(t, forExpr.Bindings, 2)
}

func TestForWithoutLabel(t *testing.T) {
	expressions := mainExpressions(t, "for var i = 0 { continue(i) }")

	forExpr := expressions[0].(*ast.For)
	require.Equal(t, ast.Identifier(""), forExpr.Label)
	require.Len(t, forExpr.Bindings, 1)

	jump, ok := forExpr.Block.Expressions[0].(*ast.Continue)
	require.True(t, ok)
	require.Len(t, jump.Arguments, 1)
}

func TestInfiniteFor(t *testing.T) {
	expressions := mainExpressions(t, "for { 1 }")
	require.Empty(t, expressions[0].(*ast.For).Bindings)
}

func TestWithBlockIsInContext(t *testing.T) {
	expressions := mainExpressions(t, "with { 1 }")

	context, ok := expressions[0].(*ast.Context)
	require.True(t, ok)
	require.True(t, context.Block.InContext)
}

func TestThrow(t *testing.T) {
	expressions := mainExpressions(t, "throw x")
	throw, ok := expressions[0].(*ast.Throw)
	require.True(t, ok)
	require.Equal(t, &ast.IdentifierRef{Name: "x"}, throw.Expression)
}

func TestDirectSwitch(t *testing.T) {
	expressions := mainExpressions(t, `switch x { 1, 2 { "low" } n if ok { "guarded" } }`)

	switchExpr, ok := expressions[0].(*ast.Switch)
	require.True(t, ok)
	require.Equal(t, &ast.IdentifierRef{Name: "x"}, switchExpr.Expression)
	require.Len(t, switchExpr.Cases, 2)
	require.Len(t, switchExpr.Cases[0].Matches, 2)
	require.Nil(t, switchExpr.Cases[0].Matches[0].Guard)
	require.NotNil(t, switchExpr.Cases[1].Matches[0].Guard)
}

func TestCond(t *testing.T) {
	expressions := mainExpressions(t, "switch { a, b { 1 } c { 2 } }")

	cond, ok := expressions[0].(*ast.Cond)
	require.True(t, ok)
	require.Len(t, cond.Cases, 2)
	require.Len(t, cond.Cases[0].Conditions, 2)
}

func TestEmptyCond(t *testing.T) {
	expressions := mainExpressions(t, "switch { }")
	require.Empty(t, expressions[0].(*ast.Cond).Cases)
}

func TestSelect(t *testing.T) {
	expressions := mainExpressions(t, `select Message { Greeting(name) { name } timeout 1000 { "late" } }`)

	selectExpr, ok := expressions[0].(*ast.Select)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{"Message"}, selectExpr.MessageType.Name)
	require.Len(t, selectExpr.Cases, 1)
	require.NotNil(t, selectExpr.Timeout)
	require.Equal(t, &ast.NumberLiteral{Whole: 1000}, selectExpr.Timeout.Nanoseconds)
}

func TestSelectDuplicateTimeout(t *testing.T) {
	err := parseError(t, "select M { timeout 1 { } timeout 2 { } }")
	require.ErrorContains(t, err, "unexpected TIMEOUT")
}

func TestEmptySelect(t *testing.T) {
	expressions := mainExpressions(t, "select M { }")
	selectExpr := expressions[0].(*ast.Select)
	require.Empty(t, selectExpr.Cases)
	require.Nil(t, selectExpr.Timeout)
}

func TestLambdaInSubexpressionPosition(t *testing.T) {
	file := parse(t, "var f = -> (x, y = 1) Int { x }")

	lambda, ok := file.Package.Block.Bindings[0].Value.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lambda.Signature.ValueParameters, 2)
	require.NotNil(t, lambda.Signature.ValueParameters[1].Default)
	require.NotNil(t, lambda.Signature.ReturnType)
	require.False(t, lambda.Signature.Ignorable)
}

func TestIgnorableLambdaWithoutParameters(t *testing.T) {
	file := parse(t, "var f = -> ignorable { 1 }")

	lambda := file.Package.Block.Bindings[0].Value.(*ast.Lambda)
	require.True(t, lambda.Signature.Ignorable)
	require.Empty(t, lambda.Signature.ValueParameters)
}

func TestLambdaForbiddenAtOutermostPosition(t *testing.T) {
	err := parseError(t, "-> { 1 }")
	require.ErrorContains(t, err, "unexpected")
}

func TestGroupForbiddenAtOutermostPosition(t *testing.T) {
	err := parseError(t, "(1)")
	require.ErrorContains(t, err, "unexpected")
}

func TestGroupedSubexpression(t *testing.T) {
	file := parse(t, "var x = (1)")

	group, ok := file.Package.Block.Bindings[0].Value.(*ast.Group)
	require.True(t, ok)
	require.Equal(t, &ast.NumberLiteral{Whole: 1}, group.Inner)
}

func TestCallWithLabeledArguments(t *testing.T) {
	expressions := mainExpressions(t, "greet(name = \"sylan\", 42)")

	call, ok := expressions[0].(*ast.Call)
	require.True(t, ok)
	require.Equal(t, &ast.IdentifierRef{Name: "greet"}, call.Target)
	require.Len(t, call.Arguments, 2)
	require.Equal(t, ast.Identifier("name"), call.Arguments[0].Label)
	require.Equal(t, ast.Identifier(""), call.Arguments[1].Label)
}

func TestPostfixBind(t *testing.T) {
	expressions := mainExpressions(t, "fetch()?")

	bind, ok := expressions[0].(*ast.PostfixBind)
	require.True(t, ok)
	_, ok = bind.Operand.(*ast.Call)
	require.True(t, ok)
}

func TestBinaryOperatorsAssociateLeft(t *testing.T) {
	expressions := mainExpressions(t, "1 + 2 * 3")

	outer, ok := expressions[0].(*ast.BinaryOperatorApplication)
	require.True(t, ok)
	require.Equal(t, ast.BinaryMultiply, outer.Operator)

	inner, ok := outer.Left.(*ast.BinaryOperatorApplication)
	require.True(t, ok)
	require.Equal(t, ast.BinaryAdd, inner.Operator)
}

func TestPipeline(t *testing.T) {
	expressions := mainExpressions(t, "xs |> filter |> reduce")

	outer := expressions[0].(*ast.BinaryOperatorApplication)
	require.Equal(t, ast.BinaryPipe, outer.Operator)
	require.Equal(t, &ast.IdentifierRef{Name: "reduce"}, outer.Right)
}

func TestUnaryOperators(t *testing.T) {
	expressions := mainExpressions(t, "!x ~y #handler")

	require.Equal(t, ast.UnaryNot, expressions[0].(*ast.UnaryOperatorApplication).Operator)
	require.Equal(t, ast.UnaryBitwiseNot, expressions[1].(*ast.UnaryOperatorApplication).Operator)
	require.Equal(t, ast.UnaryMethodHandle, expressions[2].(*ast.UnaryOperatorApplication).Operator)
}

func TestPackageLookupExpression(t *testing.T) {
	expressions := mainExpressions(t, "a.b.c")

	lookup, ok := expressions[0].(*ast.PackageLookup)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{"a", "b", "c"}, lookup.Lookup)
}

func TestPseudoIdentifierExpressions(t *testing.T) {
	expressions := mainExpressions(t, "it this super this.package this.module")

	require.Equal(t, &ast.PseudoRef{Pseudo: ast.PseudoIt}, expressions[0])
	require.Equal(t, &ast.PseudoRef{Pseudo: ast.PseudoThis}, expressions[1])
	require.Equal(t, &ast.PseudoRef{Pseudo: ast.PseudoSuper}, expressions[2])
	require.Equal(t, &ast.PseudoRef{Pseudo: ast.PseudoThisPackage}, expressions[3])
	require.Equal(t, &ast.PseudoRef{Pseudo: ast.PseudoThisModule}, expressions[4])
}

func TestImport(t *testing.T) {
	file := parse(t, "import sylan.lang.option")

	imported, ok := file.Package.Package.Items[0].(*ast.Import)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{"sylan", "lang", "option"}, imported.Lookup)
}

func TestFun(t *testing.T) {
	file := parse(t, `fun public ignorable greet[T: Printable & Sized = Str](name T, suffix = "!") Str { name }`)

	fun, ok := file.Package.Package.Items[0].(*ast.Fun)
	require.True(t, ok)
	require.Equal(t, ast.Identifier("greet"), fun.Name)
	require.Equal(t, ast.Public, fun.Modifiers.Accessibility)
	require.True(t, fun.Modifiers.Ignorable)
	require.False(t, fun.Modifiers.Extern)

	signature := fun.Signature
	require.Len(t, signature.TypeParameters, 1)
	require.Len(t, signature.TypeParameters[0].UpperBounds, 2)
	require.NotNil(t, signature.TypeParameters[0].Default)
	require.Len(t, signature.ValueParameters, 2)
	require.NotNil(t, signature.ValueParameters[0].Type)
	require.NotNil(t, signature.ValueParameters[1].Default)
	require.NotNil(t, signature.ReturnType)
}

func TestDuplicateModifier(t *testing.T) {
	err := parseError(t, "fun ignorable ignorable f() { }")
	require.ErrorContains(t, err, "listed twice")
}

func TestDuplicateAccessibility(t *testing.T) {
	err := parseError(t, "fun public private f() { }")
	require.ErrorContains(t, err, "accessibility")
}

func TestPackageDefinition(t *testing.T) {
	file := parse(t, `package internal counters {
		var public count Int = 0
		fun increment() { count }
	}`)

	pkg, ok := file.Package.Package.Items[0].(*ast.Package)
	require.True(t, ok)
	require.Equal(t, ast.Internal, pkg.Accessibility)
	require.Equal(t, ast.Identifier("counters"), pkg.Name)
	require.Len(t, pkg.Items, 2)

	binding, ok := pkg.Items[0].(*ast.PackageBinding)
	require.True(t, ok)
	require.Equal(t, ast.Public, binding.Accessibility)
	require.NotNil(t, binding.Binding.Type)
}

func TestPackageBindingRequiresAnnotation(t *testing.T) {
	err := parseError(t, "package p { var x = 1 }")
	require.ErrorContains(t, err, "type annotation")
}

func TestPackageForbidsFreeExpressions(t *testing.T) {
	err := parseError(t, "package p { 42 }")
	require.ErrorContains(t, err, "unexpected")
}

func TestClass(t *testing.T) {
	file := parse(t, `class public Account[T] implements Comparable, Printable {
		var balance Int = 0
		var private embed audit = log()

		get description Str { "account" }

		fun public deposit(amount Int) {
			amount
		}
	}`)

	class, ok := file.Package.Package.Items[0].(*ast.Class)
	require.True(t, ok)
	require.Equal(t, ast.Identifier("Account"), class.Name)
	require.Equal(t, ast.Public, class.Accessibility)
	require.Len(t, class.TypeParameters, 1)
	require.Len(t, class.Implements, 2)
	require.Len(t, class.Fields, 2)
	require.True(t, class.Fields[1].Embedded)
	require.Equal(t, ast.Private, class.Fields[1].Accessibility)
	require.Len(t, class.Getters, 1)
	require.NotNil(t, class.Getters[0].Type)
	require.Len(t, class.Methods, 1)
	require.NotNil(t, class.Methods[0].Block)
}

func TestClassMethodRequiresBody(t *testing.T) {
	err := parseError(t, "class C { fun m() }")
	require.Error(t, err)
}

func TestTypeAssignment(t *testing.T) {
	file := parse(t, "class Strings = List[Str]")

	alias, ok := file.Package.Package.Items[0].(*ast.TypeAssignment)
	require.True(t, ok)
	require.Equal(t, ast.Identifier("Strings"), alias.Name)
	require.Equal(t, ast.Symbol{"List"}, alias.Assignee.Name)
	require.Len(t, alias.Assignee.Arguments, 1)
}

func TestInterface(t *testing.T) {
	file := parse(t, `interface Comparable extends Equatable {
		fun compare(other Comparable) Int
		fun virtual equals(other Comparable) Bool { true }
		get hash Int
	}`)

	iface, ok := file.Package.Package.Items[0].(*ast.Interface)
	require.True(t, ok)
	require.Len(t, iface.Extends, 1)
	require.Len(t, iface.Methods, 2)
	require.Nil(t, iface.Methods[0].Block)
	require.NotNil(t, iface.Methods[1].Block)
	require.True(t, iface.Methods[1].Modifiers.Virtual)
	require.Len(t, iface.Getters, 1)
	require.Nil(t, iface.Getters[0].Block)
}

func TestInterfaceForbidsFields(t *testing.T) {
	err := parseError(t, "interface I { var x = 1 }")
	require.ErrorContains(t, err, "fields")
}

func TestExtension(t *testing.T) {
	file := parse(t, `extend sylan.lang.Str {
		fun shout() Str { this }
	}`)

	extension, ok := file.Package.Package.Items[0].(*ast.Extension)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{"sylan", "lang", "Str"}, extension.Type.Name)
	require.Len(t, extension.Methods, 1)
}

func TestSyDocAttachesToFollowingDeclaration(t *testing.T) {
	file := parse(t, "/** Greets. */\nfun greet() { 1 }")

	fun, ok := file.Package.Package.Items[0].(*ast.Fun)
	require.True(t, ok)
	require.NotNil(t, fun.SyDoc)
	require.Equal(t, " Greets. ", *fun.SyDoc)
}

func TestFreeStandingSyDoc(t *testing.T) {
	file := parse(t, "/** About this file. */\n42")

	doc, ok := file.Package.Package.Items[0].(*ast.SyDoc)
	require.True(t, ok)
	require.Equal(t, " About this file. ", doc.Content)
}

func TestPatterns(t *testing.T) {
	expressions := mainExpressions(t, `switch x {
		42 { "literal" }
		_ { "ignored" }
		name { "bound" }
		Point(x, y = 0, ...) { "composite" }
	}`)

	cases := expressions[0].(*ast.Switch).Cases
	require.Len(t, cases, 4)

	_, ok := cases[0].Matches[0].Pattern.Item.(*ast.LiteralPattern)
	require.True(t, ok)
	_, ok = cases[1].Matches[0].Pattern.Item.(*ast.IgnoredPattern)
	require.True(t, ok)
	_, ok = cases[2].Matches[0].Pattern.Item.(*ast.IdentifierPattern)
	require.True(t, ok)

	composite, ok := cases[3].Matches[0].Pattern.Item.(*ast.CompositePattern)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{"Point"}, composite.Type.Name)
	require.True(t, composite.IgnoreRest)
	require.Len(t, composite.Getters, 2)

	shorthand := composite.Getters[0]
	require.Equal(t, ast.Identifier("x"), shorthand.Name)
	require.Equal(t, ast.Identifier("x"), shorthand.Label)
	require.Equal(t, &ast.IdentifierPattern{Name: "x"}, shorthand.Pattern.Item)

	labeled := composite.Getters[1]
	require.Equal(t, ast.Identifier("y"), labeled.Name)
	_, ok = labeled.Pattern.Item.(*ast.LiteralPattern)
	require.True(t, ok)
}

func TestRestMarkerMustBeLast(t *testing.T) {
	err := parseError(t, "switch x { Point(..., y) { 1 } }")
	require.Error(t, err)
}

func TestNestedCompositePattern(t *testing.T) {
	expressions := mainExpressions(t, `switch x { Line(start = Point(x, ...), ...) { 1 } }`)

	composite := expressions[0].(*ast.Switch).Cases[0].Matches[0].Pattern.Item.(*ast.CompositePattern)
	inner, ok := composite.Getters[0].Pattern.Item.(*ast.CompositePattern)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{"Point"}, inner.Type.Name)
	require.True(t, inner.IgnoreRest)
}

func TestBlockParentChain(t *testing.T) {
	file := parse(t, "if a { if b { 1 } }")

	outer := file.Package.Block.Expressions[0].(*ast.If).Then
	require.Same(t, file.Package.Block, outer.Parent)

	inner := outer.Expressions[0].(*ast.If).Then
	require.Same(t, outer, inner.Parent)
}

func TestPrematureEOF(t *testing.T) {
	err := parseError(t, "if true {")
	require.ErrorContains(t, err, "premature end of input")
}

func TestUnexpectedToken(t *testing.T) {
	err := parseError(t, "]")
	require.ErrorContains(t, err, "unexpected")
}

func TestLexerErrorSurfacesThroughParse(t *testing.T) {
	_, err := New(lexer.New("var c = '\\q'").Lex()).Parse()
	require.Error(t, err)

	var parseErr *Error
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, LexerFailed, parseErr.Kind)
	require.ErrorContains(t, err, "invalid escape")
}
