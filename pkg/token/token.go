// Package token defines the lexical tokens of the Sylan language and the
// source positions they carry.
//
// The token kinds are organized into the same categories the parser dispatches
// on: literals, pseudoidentifiers, declaration heads, branching and jumping,
// bindings, modifiers, grouping, overloadable infix operators, and postfix
// operators. Range markers between the groups back the category predicates.
package token

// Kind identifies the lexical class of a token.
type Kind int

const (
	// Special tokens
	Illegal Kind = iota
	EOF

	// Literals. Boolean, Char, Number and the string-like kinds carry their
	// decoded payloads on the Token struct.
	literalBegin
	Boolean            // true, false
	Char               // 'a', '\n'
	Number             // 42, -1, 0.32
	String             // "text"
	InterpolatedString // `text {x}` (raw body; interpolation resolved later)
	literalEnd

	// Pseudoidentifiers: act as identifiers but cannot be user-defined,
	// cannot be package-qualified, and may be shadowed freely.
	pseudoBegin
	Continue    // continue
	It          // it
	Super       // super
	This        // this
	ThisType    // This
	ThisPackage // this.package (resolved by the parser, never lexed directly)
	ThisModule  // this.module (resolved by the parser, never lexed directly)
	Ellipsis    // ...
	Placeholder // _
	pseudoEnd

	Identifier // abc, Username

	// Declaration heads
	declarationHeadBegin
	Class     // class
	Extend    // extend
	Fun       // fun
	Import    // import
	Interface // interface
	Package   // package
	declarationHeadEnd

	// Branching and jumping
	branchingBegin
	If     // if
	Else   // else
	For    // for
	Select // select
	Switch // switch
	branchingEnd

	// Bindings
	bindingBegin
	Var    // var
	Assign // =
	bindingEnd

	// Modifiers
	modifierBegin
	Public    // public
	Internal  // internal
	Private   // private
	Virtual   // virtual
	Override  // override
	Ignorable // ignorable
	Embed     // embed
	Extern    // extern
	Operator  // operator
	modifierEnd

	// Grouping
	groupingBegin
	OpenBrace          // {
	CloseBrace         // }
	OpenParentheses    // (
	CloseParentheses   // )
	OpenSquareBracket  // [
	CloseSquareBracket // ]
	groupingEnd

	// Overloadable infix operators
	infixBegin
	Add                 // +
	And                 // &&
	BitwiseAnd          // &
	BitwiseOr           // |
	BitwiseXor          // ^
	Compose             // ::
	Divide              // /
	Equals              // ==
	GreaterThan         // >
	GreaterThanOrEquals // >=
	LessThan            // <
	LessThanOrEquals    // <=
	Modulo              // %
	Multiply            // *
	NotEquals           // !=
	Or                  // ||
	Pipe                // |>
	ShiftLeft           // <<
	ShiftRight          // >>
	Subtract            // -
	infixEnd

	// Unary-only operators
	BitwiseNot   // ~
	Not          // !
	MethodHandle // # (except at offset zero, where it opens a shebang)

	// Postfix operators
	Bind // ?

	// Remaining punctuation and keywords
	LambdaArrow      // ->
	BindArrow        // <-
	Dot              // .
	Colon            // :
	SubItemSeparator // ,
	Rest             // ... in composite patterns (lexed as Ellipsis)
	With             // with
	Throw            // throw
	Timeout          // timeout
	Get              // get
	Case             // case
	Default          // default
	Do               // do
	Extends          // extends
	Implements       // implements

	// Whole-line and documentation tokens
	Shebang // #!... on the first line
	SyDoc   // /** ... */
	Version // v1.0
)

// IsLiteral reports whether the kind is a literal value.
func (k Kind) IsLiteral() bool { return literalBegin < k && k < literalEnd }

// IsPseudoIdentifier reports whether the kind is a pseudoidentifier.
func (k Kind) IsPseudoIdentifier() bool { return pseudoBegin < k && k < pseudoEnd }

// IsDeclarationHead reports whether the kind opens an item declaration.
func (k Kind) IsDeclarationHead() bool {
	return declarationHeadBegin < k && k < declarationHeadEnd
}

// IsBranchingAndJumping reports whether the kind opens a branching construct.
func (k Kind) IsBranchingAndJumping() bool { return branchingBegin < k && k < branchingEnd }

// IsBinding reports whether the kind belongs to the binding family.
func (k Kind) IsBinding() bool { return bindingBegin < k && k < bindingEnd }

// IsModifier reports whether the kind is a declaration modifier.
func (k Kind) IsModifier() bool { return modifierBegin < k && k < modifierEnd }

// IsAccessibility reports whether the kind is one of the accessibility
// modifiers. At most one may appear per declaration site.
func (k Kind) IsAccessibility() bool { return k == Public || k == Internal || k == Private }

// IsGrouping reports whether the kind is a grouping delimiter.
func (k Kind) IsGrouping() bool { return groupingBegin < k && k < groupingEnd }

// IsInfixOperator reports whether the kind is an overloadable infix operator.
func (k Kind) IsInfixOperator() bool { return infixBegin < k && k < infixEnd }

func (k Kind) String() string {
	if 0 <= int(k) && int(k) < len(kindStrings) && kindStrings[k] != "" {
		return kindStrings[k]
	}
	return "UNKNOWN"
}

var kindStrings = [...]string{
	Illegal: "ILLEGAL",
	EOF:     "EOF",

	Boolean:            "BOOLEAN",
	Char:               "CHAR",
	Number:             "NUMBER",
	String:             "STRING",
	InterpolatedString: "INTERPOLATED_STRING",

	Continue:    "CONTINUE",
	It:          "IT",
	Super:       "SUPER",
	This:        "THIS",
	ThisType:    "THIS_TYPE",
	ThisPackage: "THIS_PACKAGE",
	ThisModule:  "THIS_MODULE",
	Ellipsis:    "ELLIPSIS",
	Placeholder: "PLACEHOLDER",

	Identifier: "IDENTIFIER",

	Class:     "CLASS",
	Extend:    "EXTEND",
	Fun:       "FUN",
	Import:    "IMPORT",
	Interface: "INTERFACE",
	Package:   "PACKAGE",

	If:     "IF",
	Else:   "ELSE",
	For:    "FOR",
	Select: "SELECT",
	Switch: "SWITCH",

	Var:    "VAR",
	Assign: "ASSIGN",

	Public:    "PUBLIC",
	Internal:  "INTERNAL",
	Private:   "PRIVATE",
	Virtual:   "VIRTUAL",
	Override:  "OVERRIDE",
	Ignorable: "IGNORABLE",
	Embed:     "EMBED",
	Extern:    "EXTERN",
	Operator:  "OPERATOR",

	OpenBrace:          "OPEN_BRACE",
	CloseBrace:         "CLOSE_BRACE",
	OpenParentheses:    "OPEN_PARENTHESES",
	CloseParentheses:   "CLOSE_PARENTHESES",
	OpenSquareBracket:  "OPEN_SQUARE_BRACKET",
	CloseSquareBracket: "CLOSE_SQUARE_BRACKET",

	Add:                 "ADD",
	And:                 "AND",
	BitwiseAnd:          "BITWISE_AND",
	BitwiseOr:           "BITWISE_OR",
	BitwiseXor:          "BITWISE_XOR",
	Compose:             "COMPOSE",
	Divide:              "DIVIDE",
	Equals:              "EQUALS",
	GreaterThan:         "GREATER_THAN",
	GreaterThanOrEquals: "GREATER_THAN_OR_EQUALS",
	LessThan:            "LESS_THAN",
	LessThanOrEquals:    "LESS_THAN_OR_EQUALS",
	Modulo:              "MODULO",
	Multiply:            "MULTIPLY",
	NotEquals:           "NOT_EQUALS",
	Or:                  "OR",
	Pipe:                "PIPE",
	ShiftLeft:           "SHIFT_LEFT",
	ShiftRight:          "SHIFT_RIGHT",
	Subtract:            "SUBTRACT",

	BitwiseNot:   "BITWISE_NOT",
	Not:          "NOT",
	MethodHandle: "METHOD_HANDLE",

	Bind: "BIND",

	LambdaArrow:      "LAMBDA_ARROW",
	BindArrow:        "BIND_ARROW",
	Dot:              "DOT",
	Colon:            "COLON",
	SubItemSeparator: "SUB_ITEM_SEPARATOR",
	Rest:             "REST",
	With:             "WITH",
	Throw:            "THROW",
	Timeout:          "TIMEOUT",
	Get:              "GET",
	Case:             "CASE",
	Default:          "DEFAULT",
	Do:               "DO",
	Extends:          "EXTENDS",
	Implements:       "IMPLEMENTS",

	Shebang: "SHEBANG",
	SyDoc:   "SYDOC",
	Version: "VERSION",
}

// Position is a location in a source file. Offset is the absolute, zero-based
// rune index; Line and Column are one-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token is a single lexical token. Only the payload fields relevant to Kind
// are populated, so tokens compare meaningfully with ==.
type Token struct {
	Kind Kind

	// Text carries the body of identifiers, strings, interpolated strings,
	// shebangs and SyDocs.
	Text string

	// Rune carries the decoded character of a Char literal.
	Rune rune

	// Bool carries the value of a Boolean literal.
	Bool bool

	// Whole and Fraction carry the two decimal components of a Number
	// literal. Whole carries the sign.
	Whole    int64
	Fraction uint64

	// Major and Minor carry the components of a Version literal.
	Major uint64
	Minor uint64
}

// Of returns a payload-free token of the given kind.
func Of(k Kind) Token { return Token{Kind: k} }

// Ident returns an identifier token for name.
func Ident(name string) Token { return Token{Kind: Identifier, Text: name} }

// Num returns a number literal token with the given whole and fractional
// components.
func Num(whole int64, fraction uint64) Token {
	return Token{Kind: Number, Whole: whole, Fraction: fraction}
}

// Str returns a string literal token.
func Str(text string) Token { return Token{Kind: String, Text: text} }

// Bool returns a boolean literal token.
func Bool(value bool) Token { return Token{Kind: Boolean, Bool: value} }

// Ch returns a character literal token.
func Ch(r rune) Token { return Token{Kind: Char, Rune: r} }
