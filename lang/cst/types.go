package cst

import "github.com/jlang-gyoji/gyoji/lang/token"

// TypeSpecifier is implemented by every grammar production that spells
// out a type: a simple name, a template name (opaque per spec
// Non-goals), a pointer-to, a reference-to, an array-of, or a function
// pointer.
type TypeSpecifier interface {
	Node
	typeSpecifier()
}

// TypeSpecifierSimple is a (possibly namespace-qualified) type name,
// e.g. "i32" or "ns::Widget".
type TypeSpecifierSimple struct {
	Path []*Terminal // one segment per "::"-separated component
	Src  token.SourceRef
}

func (n *TypeSpecifierSimple) SourceRef() token.SourceRef { return n.Src }
func (n *TypeSpecifierSimple) Production() string         { return "TypeSpecifierSimple" }
func (n *TypeSpecifierSimple) typeSpecifier()             {}
func (n *TypeSpecifierSimple) Children() []Node {
	out := make([]Node, len(n.Path))
	for i, t := range n.Path {
		out[i] = t
	}
	return out
}

// Name joins the path segments with "::", e.g. "ns::Widget".
func (n *TypeSpecifierSimple) Name() string {
	s := ""
	for i, t := range n.Path {
		if i > 0 {
			s += "::"
		}
		s += t.Text
	}
	return s
}

// TypeSpecifierTemplate names a template instantiation. The core treats
// templates as opaque type names (spec Non-goals: no generic/template
// instantiation), so only its textual name is ever consulted.
type TypeSpecifierTemplate struct {
	Name *Terminal
	Args []TypeSpecifier
	Src  token.SourceRef
}

func (n *TypeSpecifierTemplate) SourceRef() token.SourceRef { return n.Src }
func (n *TypeSpecifierTemplate) Production() string         { return "TypeSpecifierTemplate" }
func (n *TypeSpecifierTemplate) typeSpecifier()             {}
func (n *TypeSpecifierTemplate) Children() []Node {
	out := []Node{n.Name}
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}

// TypeSpecifierPointerTo is "<inner>*".
type TypeSpecifierPointerTo struct {
	Inner TypeSpecifier
	Src   token.SourceRef
}

func (n *TypeSpecifierPointerTo) SourceRef() token.SourceRef { return n.Src }
func (n *TypeSpecifierPointerTo) Production() string         { return "TypeSpecifierPointerTo" }
func (n *TypeSpecifierPointerTo) typeSpecifier()             {}
func (n *TypeSpecifierPointerTo) Children() []Node           { return []Node{n.Inner} }

// TypeSpecifierReferenceTo is "<inner>&".
type TypeSpecifierReferenceTo struct {
	Inner TypeSpecifier
	Src   token.SourceRef
}

func (n *TypeSpecifierReferenceTo) SourceRef() token.SourceRef { return n.Src }
func (n *TypeSpecifierReferenceTo) Production() string         { return "TypeSpecifierReferenceTo" }
func (n *TypeSpecifierReferenceTo) typeSpecifier()             {}
func (n *TypeSpecifierReferenceTo) Children() []Node           { return []Node{n.Inner} }

// TypeSpecifierArray is "<inner>[N]".
type TypeSpecifierArray struct {
	Inner TypeSpecifier
	Size  *Terminal // integer literal terminal
	Src   token.SourceRef
}

func (n *TypeSpecifierArray) SourceRef() token.SourceRef { return n.Src }
func (n *TypeSpecifierArray) Production() string         { return "TypeSpecifierArray" }
func (n *TypeSpecifierArray) typeSpecifier()             {}
func (n *TypeSpecifierArray) Children() []Node           { return []Node{n.Inner, n.Size} }

// TypeSpecifierFunctionPointer is "fn(<params>) -> <return>".
type TypeSpecifierFunctionPointer struct {
	Params []TypeSpecifier
	Return TypeSpecifier
	Src    token.SourceRef
}

func (n *TypeSpecifierFunctionPointer) SourceRef() token.SourceRef { return n.Src }
func (n *TypeSpecifierFunctionPointer) Production() string         { return "TypeSpecifierFunctionPointer" }
func (n *TypeSpecifierFunctionPointer) typeSpecifier()             {}
func (n *TypeSpecifierFunctionPointer) Children() []Node {
	out := make([]Node, 0, len(n.Params)+1)
	for _, p := range n.Params {
		out = append(out, p)
	}
	out = append(out, n.Return)
	return out
}
