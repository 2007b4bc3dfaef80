package ast

import (
	"fmt"
	"strings"
)

// Dump renders an indented tree of the file for debugging and snapshots.
func Dump(file *File) string {
	var d dumper
	d.line("File")
	if file.Shebang != nil {
		d.linef("  Shebang: %q", *file.Shebang)
	}
	if file.Version != nil {
		d.linef("  Version: v%d.%d", file.Version.Major, file.Version.Minor)
	}
	d.dumpMainPackage(&file.Package, 1)
	return d.out.String()
}

type dumper struct {
	out strings.Builder
}

func (d *dumper) line(text string) {
	d.out.WriteString(text)
	d.out.WriteByte('\n')
}

func (d *dumper) linef(format string, args ...any) {
	fmt.Fprintf(&d.out, format, args...)
	d.out.WriteByte('\n')
}

func (d *dumper) indent(depth int) {
	for i := 0; i < depth; i++ {
		d.out.WriteString("  ")
	}
}

func (d *dumper) at(depth int, format string, args ...any) {
	d.indent(depth)
	d.linef(format, args...)
}

func (d *dumper) dumpMainPackage(main *MainPackage, depth int) {
	d.at(depth, "MainPackage %s", main.Package.Name)
	for _, item := range main.Package.Items {
		d.dumpItem(item, depth+1)
	}
	d.dumpBlock(main.Block, depth+1)
}

func (d *dumper) dumpItem(item Item, depth int) {
	switch it := item.(type) {
	case *Package:
		d.at(depth, "Package %s (%s)", it.Name, it.Accessibility)
		for _, inner := range it.Items {
			d.dumpItem(inner, depth+1)
		}
	case *Import:
		d.at(depth, "Import %s", symbolText(it.Lookup))
	case *SyDoc:
		d.at(depth, "SyDoc %q", it.Content)
	case *Binding:
		d.at(depth, "Binding")
		d.dumpBinding(it, depth+1)
	case *PackageBinding:
		d.at(depth, "PackageBinding (%s%s)", it.Accessibility, flag(it.Extern, ", extern"))
		d.dumpBinding(&it.Binding, depth+1)
	case *Fun:
		d.at(depth, "Fun %s (%s%s%s%s)", it.Name, it.Modifiers.Accessibility,
			flag(it.Modifiers.Ignorable, ", ignorable"),
			flag(it.Modifiers.Extern, ", extern"),
			flag(it.Modifiers.Operator, ", operator"))
		d.dumpSignature(&it.Signature, depth+1)
		d.dumpBlock(it.Block, depth+1)
	case *Class:
		d.at(depth, "Class %s (%s)", it.Name, it.Accessibility)
		d.dumpTypeParameters(it.TypeParameters, depth+1)
		for _, implemented := range it.Implements {
			d.at(depth+1, "Implements %s", typeSymbolText(implemented))
		}
		d.dumpMembers(it.Methods, it.Getters, it.Fields, depth+1)
	case *Interface:
		d.at(depth, "Interface %s (%s)", it.Name, it.Accessibility)
		d.dumpTypeParameters(it.TypeParameters, depth+1)
		for _, extended := range it.Extends {
			d.at(depth+1, "Extends %s", typeSymbolText(extended))
		}
		d.dumpMembers(it.Methods, it.Getters, nil, depth+1)
	case *Extension:
		d.at(depth, "Extension %s", typeSymbolText(it.Type))
		d.dumpMembers(it.Methods, it.Getters, it.Fields, depth+1)
	case *TypeAssignment:
		d.at(depth, "TypeAssignment %s = %s", it.Name, typeSymbolText(it.Assignee))
	default:
		d.at(depth, "%T", item)
	}
}

func (d *dumper) dumpMembers(methods []Method, getters []Getter, fields []Field, depth int) {
	for i := range fields {
		field := &fields[i]
		d.at(depth, "Field (%s%s%s)", field.Accessibility,
			flag(field.Embedded, ", embed"), flag(field.Extern, ", extern"))
		d.dumpBinding(&field.Binding, depth+1)
	}
	for i := range getters {
		getter := &getters[i]
		kind := "Getter"
		if getter.Block == nil {
			kind = "AbstractGetter"
		}
		d.at(depth, "%s %s", kind, getter.Name)
		if getter.Type != nil {
			d.at(depth+1, "Type %s", typeSymbolText(*getter.Type))
		}
		if getter.Block != nil {
			d.dumpBlock(getter.Block, depth+1)
		}
	}
	for i := range methods {
		method := &methods[i]
		kind := "Method"
		if method.Block == nil {
			kind = "AbstractMethod"
		}
		d.at(depth, "%s %s (%s%s%s)", kind, method.Name, method.Modifiers.Accessibility,
			flag(method.Modifiers.Virtual, ", virtual"),
			flag(method.Modifiers.Override, ", override"))
		d.dumpSignature(&method.Signature, depth+1)
		if method.Block != nil {
			d.dumpBlock(method.Block, depth+1)
		}
	}
}

func (d *dumper) dumpSignature(signature *FunSignature, depth int) {
	d.dumpTypeParameters(signature.TypeParameters, depth)
	for i := range signature.ValueParameters {
		parameter := &signature.ValueParameters[i]
		d.at(depth, "Parameter%s", labelText(parameter.Label))
		d.dumpPattern(&parameter.Pattern, depth+1)
		if parameter.Type != nil {
			d.at(depth+1, "Type %s", typeSymbolText(*parameter.Type))
		}
		if parameter.Default != nil {
			d.at(depth+1, "Default")
			d.dumpExpression(parameter.Default, depth+2)
		}
	}
	if signature.ReturnType != nil {
		d.at(depth, "ReturnType %s", typeSymbolText(*signature.ReturnType))
	}
}

func (d *dumper) dumpTypeParameters(parameters []TypeParameter, depth int) {
	for i := range parameters {
		parameter := &parameters[i]
		d.at(depth, "TypeParameter %s", parameter.Name)
		for _, bound := range parameter.UpperBounds {
			d.at(depth+1, "UpperBound %s", typeSymbolText(bound))
		}
		if parameter.Default != nil {
			d.at(depth+1, "Default %s", typeSymbolText(*parameter.Default))
		}
	}
}

func (d *dumper) dumpBinding(binding *Binding, depth int) {
	d.dumpPattern(&binding.Pattern, depth)
	if binding.Type != nil {
		d.at(depth, "Type %s", typeSymbolText(*binding.Type))
	}
	d.dumpExpression(binding.Value, depth)
}

func (d *dumper) dumpBlock(block *Block, depth int) {
	d.at(depth, "Block%s", flag(block.InContext, " (in context)"))
	for _, binding := range block.Bindings {
		d.at(depth+1, "Binding")
		d.dumpBinding(binding, depth+2)
	}
	for _, expression := range block.Expressions {
		d.dumpExpression(expression, depth+1)
	}
}

func (d *dumper) dumpExpression(expression Expression, depth int) {
	switch e := expression.(type) {
	case *BooleanLiteral:
		d.at(depth, "Boolean %v", e.Value)
	case *CharLiteral:
		d.at(depth, "Char %q", e.Value)
	case *NumberLiteral:
		d.at(depth, "Number %d.%d", e.Whole, e.Fraction)
	case *StringLiteral:
		d.at(depth, "String %q", e.Value)
	case *InterpolatedStringLiteral:
		d.at(depth, "InterpolatedString %q", e.Value)
	case *Lambda:
		d.at(depth, "Lambda%s", flag(e.Signature.Ignorable, " (ignorable)"))
		for i := range e.Signature.ValueParameters {
			parameter := &e.Signature.ValueParameters[i]
			d.at(depth+1, "Parameter%s", labelText(parameter.Label))
			d.dumpPattern(&parameter.Pattern, depth+2)
			if parameter.Default != nil {
				d.at(depth+2, "Default")
				d.dumpExpression(parameter.Default, depth+3)
			}
		}
		if e.Signature.ReturnType != nil {
			d.at(depth+1, "ReturnType %s", typeSymbolText(*e.Signature.ReturnType))
		}
		d.dumpBlock(e.Block, depth+1)
	case *IdentifierRef:
		d.at(depth, "Identifier %s", e.Name)
	case *PseudoRef:
		d.at(depth, "Pseudoidentifier %s", e.Pseudo)
	case *PackageLookup:
		d.at(depth, "PackageLookup %s", symbolText(e.Lookup))
	case *UnaryOperatorApplication:
		d.at(depth, "Unary %s", e.Operator)
		d.dumpExpression(e.Operand, depth+1)
	case *BinaryOperatorApplication:
		d.at(depth, "Binary %s", e.Operator)
		d.dumpExpression(e.Left, depth+1)
		d.dumpExpression(e.Right, depth+1)
	case *PostfixBind:
		d.at(depth, "Bind")
		d.dumpExpression(e.Operand, depth+1)
	case *Call:
		d.at(depth, "Call")
		d.dumpExpression(e.Target, depth+1)
		d.dumpArguments(e.Arguments, depth+1)
	case *Continue:
		d.at(depth, "Continue")
		d.dumpArguments(e.Arguments, depth+1)
	case *Group:
		d.at(depth, "Group")
		d.dumpExpression(e.Inner, depth+1)
	case *Context:
		d.at(depth, "With")
		d.dumpBlock(e.Block, depth+1)
	case *If:
		d.at(depth, "If")
		d.dumpExpression(e.Condition, depth+1)
		d.dumpBlock(e.Then, depth+1)
		if e.Else != nil {
			d.at(depth+1, "Else")
			d.dumpBlock(e.Else, depth+2)
		}
	case *For:
		d.at(depth, "For%s", labelText(e.Label))
		for _, binding := range e.Bindings {
			d.at(depth+1, "Binding")
			d.dumpBinding(binding, depth+2)
		}
		d.dumpBlock(e.Block, depth+1)
	case *Switch:
		d.at(depth, "Switch")
		d.dumpExpression(e.Expression, depth+1)
		d.dumpCases(e.Cases, depth+1)
	case *Cond:
		d.at(depth, "Cond")
		for i := range e.Cases {
			condCase := &e.Cases[i]
			d.at(depth+1, "Case")
			for _, condition := range condCase.Conditions {
				d.dumpExpression(condition, depth+2)
			}
			d.dumpBlock(condCase.Then, depth+2)
		}
	case *Select:
		d.at(depth, "Select %s", typeSymbolText(e.MessageType))
		d.dumpCases(e.Cases, depth+1)
		if e.Timeout != nil {
			d.at(depth+1, "Timeout")
			d.dumpExpression(e.Timeout.Nanoseconds, depth+2)
			d.dumpBlock(e.Timeout.Body, depth+2)
		}
	case *Throw:
		d.at(depth, "Throw")
		d.dumpExpression(e.Expression, depth+1)
	case *Block:
		d.dumpBlock(e, depth)
	default:
		d.at(depth, "%T", expression)
	}
}

func (d *dumper) dumpCases(cases []Case, depth int) {
	for i := range cases {
		c := &cases[i]
		d.at(depth, "Case")
		for j := range c.Matches {
			match := &c.Matches[j]
			d.dumpPattern(&match.Pattern, depth+1)
			if match.Guard != nil {
				d.at(depth+1, "Guard")
				d.dumpExpression(match.Guard, depth+2)
			}
		}
		d.dumpBlock(c.Body, depth+1)
	}
}

func (d *dumper) dumpArguments(arguments []Argument, depth int) {
	for i := range arguments {
		argument := &arguments[i]
		d.at(depth, "Argument%s", labelText(argument.Label))
		d.dumpExpression(argument.Value, depth+1)
	}
}

func (d *dumper) dumpPattern(pattern *Pattern, depth int) {
	switch item := pattern.Item.(type) {
	case *LiteralPattern:
		d.at(depth, "LiteralPattern%s", bindingText(pattern.Binding))
		d.dumpExpression(item.Literal, depth+1)
	case *IdentifierPattern:
		d.at(depth, "IdentifierPattern %s%s", item.Name, bindingText(pattern.Binding))
	case *IgnoredPattern:
		d.at(depth, "IgnoredPattern%s", bindingText(pattern.Binding))
	case *CompositePattern:
		d.at(depth, "CompositePattern %s%s%s", typeSymbolText(item.Type),
			flag(item.IgnoreRest, " (ignore rest)"), bindingText(pattern.Binding))
		for i := range item.Getters {
			getter := &item.Getters[i]
			d.at(depth+1, "Getter %s%s", getter.Name, labelText(getter.Label))
			d.dumpPattern(&getter.Pattern, depth+2)
		}
	default:
		d.at(depth, "%T", pattern.Item)
	}
}

func symbolText(symbol Symbol) string {
	parts := make([]string, len(symbol))
	for i, identifier := range symbol {
		parts[i] = string(identifier)
	}
	return strings.Join(parts, ".")
}

func typeSymbolText(symbol TypeSymbol) string {
	text := symbolText(symbol.Name)
	if len(symbol.Arguments) == 0 {
		return text
	}
	arguments := make([]string, len(symbol.Arguments))
	for i, argument := range symbol.Arguments {
		if argument.Label != "" {
			arguments[i] = fmt.Sprintf("%s = %s", argument.Label, typeSymbolText(argument.Value))
		} else {
			arguments[i] = typeSymbolText(argument.Value)
		}
	}
	return text + "[" + strings.Join(arguments, ", ") + "]"
}

func labelText(label Identifier) string {
	if label == "" {
		return ""
	}
	return fmt.Sprintf(" (label %s)", label)
}

func bindingText(binding Identifier) string {
	if binding == "" {
		return ""
	}
	return fmt.Sprintf(" (as %s)", binding)
}

func flag(set bool, text string) string {
	if set {
		return text
	}
	return ""
}
