package cst

import "github.com/jlang-gyoji/gyoji/lang/token"

// FileStatement is implemented by every production that can appear
// directly inside a TranslationUnit or a NamespaceDefinition body.
type FileStatement interface {
	Node
	fileStatement()
}

// TranslationUnit is the root of one source file's CST.
type TranslationUnit struct {
	Statements []FileStatement
	Src        token.SourceRef
}

func (n *TranslationUnit) SourceRef() token.SourceRef { return n.Src }
func (n *TranslationUnit) Production() string         { return "TranslationUnit" }
func (n *TranslationUnit) Children() []Node {
	out := make([]Node, len(n.Statements))
	for i, s := range n.Statements {
		out[i] = s
	}
	return out
}

// Param is a single function parameter: name plus type.
type Param struct {
	Name *Terminal
	Type TypeSpecifier
	Src  token.SourceRef
}

func (n *Param) SourceRef() token.SourceRef { return n.Src }
func (n *Param) Production() string         { return "Param" }
func (n *Param) Children() []Node           { return []Node{n.Name, n.Type} }

// ClassDeclaration is a forward declaration: "class Name;".
type ClassDeclaration struct {
	Name *Terminal
	Src  token.SourceRef
}

func (n *ClassDeclaration) SourceRef() token.SourceRef { return n.Src }
func (n *ClassDeclaration) Production() string         { return "ClassDeclaration" }
func (n *ClassDeclaration) fileStatement()             {}
func (n *ClassDeclaration) Children() []Node           { return []Node{n.Name} }

// FieldDeclaration is one composite-type field: "name: Type;".
type FieldDeclaration struct {
	Name *Terminal
	Type TypeSpecifier
	Src  token.SourceRef
}

func (n *FieldDeclaration) SourceRef() token.SourceRef { return n.Src }
func (n *FieldDeclaration) Production() string         { return "FieldDeclaration" }
func (n *FieldDeclaration) Children() []Node           { return []Node{n.Name, n.Type} }

// MethodDefinition is a member function with a body.
type MethodDefinition struct {
	Unsafe *Terminal // non-nil when the "unsafe" modifier is present
	Name   *Terminal
	Params []*Param
	Return TypeSpecifier // nil means void
	Body   *Block
	Src    token.SourceRef
}

func (n *MethodDefinition) SourceRef() token.SourceRef { return n.Src }
func (n *MethodDefinition) Production() string         { return "MethodDefinition" }
func (n *MethodDefinition) Children() []Node {
	out := []Node{}
	if n.Unsafe != nil {
		out = append(out, n.Unsafe)
	}
	out = append(out, n.Name)
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.Return != nil {
		out = append(out, n.Return)
	}
	out = append(out, n.Body)
	return out
}

// ClassDefinition is "class Name { fields and methods... }".
type ClassDefinition struct {
	Name    *Terminal
	Fields  []*FieldDeclaration
	Methods []*MethodDefinition
	Src     token.SourceRef
}

func (n *ClassDefinition) SourceRef() token.SourceRef { return n.Src }
func (n *ClassDefinition) Production() string         { return "ClassDefinition" }
func (n *ClassDefinition) fileStatement()             {}
func (n *ClassDefinition) Children() []Node {
	out := []Node{n.Name}
	for _, f := range n.Fields {
		out = append(out, f)
	}
	for _, m := range n.Methods {
		out = append(out, m)
	}
	return out
}

// EnumValue is one "Name" or "Name = <int literal>" member.
type EnumValue struct {
	Name  *Terminal
	Value *Terminal // optional explicit discriminant
	Src   token.SourceRef
}

func (n *EnumValue) SourceRef() token.SourceRef { return n.Src }
func (n *EnumValue) Production() string         { return "EnumValue" }
func (n *EnumValue) Children() []Node {
	if n.Value == nil {
		return []Node{n.Name}
	}
	return []Node{n.Name, n.Value}
}

// EnumDefinition is "enum Name { values... }".
type EnumDefinition struct {
	Name   *Terminal
	Values []*EnumValue
	Src    token.SourceRef
}

func (n *EnumDefinition) SourceRef() token.SourceRef { return n.Src }
func (n *EnumDefinition) Production() string         { return "EnumDefinition" }
func (n *EnumDefinition) fileStatement()             {}
func (n *EnumDefinition) Children() []Node {
	out := []Node{n.Name}
	for _, v := range n.Values {
		out = append(out, v)
	}
	return out
}

// TypeDefinition is "typedef Name = Aliased;".
type TypeDefinition struct {
	Name    *Terminal
	Aliased TypeSpecifier
	Src     token.SourceRef
}

func (n *TypeDefinition) SourceRef() token.SourceRef { return n.Src }
func (n *TypeDefinition) Production() string         { return "TypeDefinition" }
func (n *TypeDefinition) fileStatement()             {}
func (n *TypeDefinition) Children() []Node           { return []Node{n.Name, n.Aliased} }

// FunctionDeclaration is a prototype without a body: "fn name(params) -> Ret;".
type FunctionDeclaration struct {
	Unsafe *Terminal
	Name   *Terminal
	Params []*Param
	Return TypeSpecifier
	Src    token.SourceRef
}

func (n *FunctionDeclaration) SourceRef() token.SourceRef { return n.Src }
func (n *FunctionDeclaration) Production() string         { return "FunctionDeclaration" }
func (n *FunctionDeclaration) fileStatement()             {}
func (n *FunctionDeclaration) Children() []Node {
	out := []Node{}
	if n.Unsafe != nil {
		out = append(out, n.Unsafe)
	}
	out = append(out, n.Name)
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.Return != nil {
		out = append(out, n.Return)
	}
	return out
}

// FunctionDefinition is a top-level function with a body.
type FunctionDefinition struct {
	Unsafe *Terminal
	Name   *Terminal
	Params []*Param
	Return TypeSpecifier
	Body   *Block
	Src    token.SourceRef
}

func (n *FunctionDefinition) SourceRef() token.SourceRef { return n.Src }
func (n *FunctionDefinition) Production() string         { return "FunctionDefinition" }
func (n *FunctionDefinition) fileStatement()             {}
func (n *FunctionDefinition) Children() []Node {
	out := []Node{}
	if n.Unsafe != nil {
		out = append(out, n.Unsafe)
	}
	out = append(out, n.Name)
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.Return != nil {
		out = append(out, n.Return)
	}
	out = append(out, n.Body)
	return out
}

// NamespaceDefinition is "namespace Name { statements... }".
type NamespaceDefinition struct {
	Name       *Terminal
	Statements []FileStatement
	Src        token.SourceRef
}

func (n *NamespaceDefinition) SourceRef() token.SourceRef { return n.Src }
func (n *NamespaceDefinition) Production() string         { return "NamespaceDefinition" }
func (n *NamespaceDefinition) fileStatement()             {}
func (n *NamespaceDefinition) Children() []Node {
	out := []Node{n.Name}
	for _, s := range n.Statements {
		out = append(out, s)
	}
	return out
}

// BadDecl is a synthesized placeholder standing in for a top-level
// declaration the parser could not make sense of; it covers the source
// span skipped while resynchronizing to the next recognizable
// declaration keyword.
type BadDecl struct {
	Src token.SourceRef
}

func (n *BadDecl) SourceRef() token.SourceRef { return n.Src }
func (n *BadDecl) Production() string         { return "BadDecl" }
func (n *BadDecl) fileStatement()             {}
func (n *BadDecl) Children() []Node           { return nil }

// UsingDirective is "using a::b::c;": a namespace search-path import.
type UsingDirective struct {
	Path []*Terminal
	Src  token.SourceRef
}

func (n *UsingDirective) SourceRef() token.SourceRef { return n.Src }
func (n *UsingDirective) Production() string         { return "UsingDirective" }
func (n *UsingDirective) fileStatement()             {}
func (n *UsingDirective) Children() []Node {
	out := make([]Node, len(n.Path))
	for i, t := range n.Path {
		out[i] = t
	}
	return out
}
