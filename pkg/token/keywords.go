package token

// keywords maps reserved words to their payload-free tokens. Boolean literals
// are handled separately by the lexer so that they carry their value.
var keywords = map[string]Token{
	"case":       {Kind: Case},
	"class":      {Kind: Class},
	"default":    {Kind: Default},
	"do":         {Kind: Do},
	"else":       {Kind: Else},
	"embed":      {Kind: Embed},
	"extend":     {Kind: Extend},
	"extends":    {Kind: Extends},
	"extern":     {Kind: Extern},
	"for":        {Kind: For},
	"fun":        {Kind: Fun},
	"get":        {Kind: Get},
	"if":         {Kind: If},
	"ignorable":  {Kind: Ignorable},
	"implements": {Kind: Implements},
	"import":     {Kind: Import},
	"interface":  {Kind: Interface},
	"internal":   {Kind: Internal},
	"operator":   {Kind: Operator},
	"override":   {Kind: Override},
	"package":    {Kind: Package},
	"private":    {Kind: Private},
	"public":     {Kind: Public},
	"select":     {Kind: Select},
	"switch":     {Kind: Switch},
	"throw":      {Kind: Throw},
	"timeout":    {Kind: Timeout},
	"var":        {Kind: Var},
	"virtual":    {Kind: Virtual},
	"with":       {Kind: With},
}

// pseudoidentifiers maps the reserved identifier-like words to their tokens.
// They resolve like identifiers but cannot be user-defined or qualified, and
// may be shadowed in the same block.
var pseudoidentifiers = map[string]Token{
	"continue": {Kind: Continue},
	"it":       {Kind: It},
	"super":    {Kind: Super},
	"this":     {Kind: This},
	"This":     {Kind: ThisType},
	"_":        {Kind: Placeholder},
}

// LookupWord classifies a lexed word as a boolean literal, keyword,
// pseudoidentifier, or plain identifier.
func LookupWord(word string) Token {
	switch word {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if tok, ok := keywords[word]; ok {
		return tok
	}
	if tok, ok := pseudoidentifiers[word]; ok {
		return tok
	}
	return Ident(word)
}
