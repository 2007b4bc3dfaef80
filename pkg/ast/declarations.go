package ast

// Binding binds the names of a pattern to the value of an expression. Type
// is the optional explicit annotation; it is mandatory for package-level
// bindings outside the main package.
type Binding struct {
	Pattern Pattern
	Type    *TypeSymbol
	Value   Expression
}

func (*Binding) itemNode() {}

// PackageBinding is a binding declared at package level, with the modifiers
// permitted at that site.
type PackageBinding struct {
	Accessibility Accessibility
	Extern        bool
	Binding       Binding
}

func (*PackageBinding) itemNode() {}

// FunModifiers are the resolved modifiers of a package-level function.
type FunModifiers struct {
	Accessibility Accessibility
	Ignorable     bool
	Extern        bool
	Operator      bool
}

// FunSignature is a function's compile-time and runtime parameter lists plus
// its optional return type annotation.
type FunSignature struct {
	TypeParameters  []TypeParameter
	ValueParameters []ValueParameter
	ReturnType      *TypeSymbol
}

// Fun is a named function declaration.
type Fun struct {
	Name      Identifier
	Modifiers FunModifiers
	Signature FunSignature
	Block     *Block
	SyDoc     *string
}

func (*Fun) itemNode() {}

// MethodModifiers are the resolved modifiers of a method declaration.
type MethodModifiers struct {
	Accessibility Accessibility
	Virtual       bool
	Override      bool
	Ignorable     bool
	Extern        bool
}

// Method is a function tied to a type. A nil Block makes the method
// abstract; abstract methods may only appear in interfaces.
type Method struct {
	Name      Identifier
	Modifiers MethodModifiers
	Signature FunSignature
	Block     *Block
	SyDoc     *string
}

// Getter is a method without parameters, invoked without call syntax. A nil
// Block makes it abstract.
type Getter struct {
	Name      Identifier
	Modifiers MethodModifiers
	Type      *TypeSymbol
	Block     *Block
}

// Field is a per-instance binding of a class. Embedded fields forward the
// embedding type's method set.
type Field struct {
	Accessibility Accessibility
	Embedded      bool
	Extern        bool
	Binding       Binding
}

// Class is a concrete type declaration. Classes may only implement
// interfaces, never extend other classes.
type Class struct {
	Accessibility  Accessibility
	Name           Identifier
	TypeParameters []TypeParameter
	Implements     []TypeSymbol
	Methods        []Method
	Getters        []Getter
	Fields         []Field
	SyDoc          *string
}

func (*Class) itemNode() {}

// Interface is an abstract type declaration. Only interfaces can extend
// other types, and those types must be interfaces.
type Interface struct {
	Accessibility  Accessibility
	Name           Identifier
	TypeParameters []TypeParameter
	Extends        []TypeSymbol
	Methods        []Method
	Getters        []Getter
	SyDoc          *string
}

func (*Interface) itemNode() {}

// Extension adds members to an existing type.
type Extension struct {
	Type    TypeSymbol
	Methods []Method
	Getters []Getter
	Fields  []Field
}

func (*Extension) itemNode() {}

// TypeAssignment declares a named alias for an existing type.
type TypeAssignment struct {
	Accessibility  Accessibility
	Name           Identifier
	TypeParameters []TypeParameter
	Assignee       TypeSymbol
}

func (*TypeAssignment) itemNode() {}
