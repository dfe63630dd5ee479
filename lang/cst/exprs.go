package cst

import "github.com/jlang-gyoji/gyoji/lang/token"

// Expr is implemented by every expression production.
type Expr interface {
	Node
	expr()
}

// IdentExpr is a bare, possibly "::"-qualified name reference.
type IdentExpr struct {
	Path []*Terminal
	Src  token.SourceRef
}

func (n *IdentExpr) SourceRef() token.SourceRef { return n.Src }
func (n *IdentExpr) Production() string         { return "IdentExpr" }
func (n *IdentExpr) expr()                      {}
func (n *IdentExpr) Children() []Node {
	out := make([]Node, len(n.Path))
	for i, t := range n.Path {
		out[i] = t
	}
	return out
}

// Name joins the path segments with "::".
func (n *IdentExpr) Name() string {
	s := ""
	for i, t := range n.Path {
		if i > 0 {
			s += "::"
		}
		s += t.Text
	}
	return s
}

// IntLiteralExpr is an integer constant, e.g. "42" or "42u8".
type IntLiteralExpr struct {
	Tok *Terminal
	Src token.SourceRef
}

func (n *IntLiteralExpr) SourceRef() token.SourceRef { return n.Src }
func (n *IntLiteralExpr) Production() string         { return "IntLiteralExpr" }
func (n *IntLiteralExpr) expr()                      {}
func (n *IntLiteralExpr) Children() []Node           { return []Node{n.Tok} }

// FloatLiteralExpr is a floating-point constant.
type FloatLiteralExpr struct {
	Tok *Terminal
	Src token.SourceRef
}

func (n *FloatLiteralExpr) SourceRef() token.SourceRef { return n.Src }
func (n *FloatLiteralExpr) Production() string         { return "FloatLiteralExpr" }
func (n *FloatLiteralExpr) expr()                      {}
func (n *FloatLiteralExpr) Children() []Node           { return []Node{n.Tok} }

// BoolLiteralExpr is "true" or "false".
type BoolLiteralExpr struct {
	Tok *Terminal
	Src token.SourceRef
}

func (n *BoolLiteralExpr) SourceRef() token.SourceRef { return n.Src }
func (n *BoolLiteralExpr) Production() string         { return "BoolLiteralExpr" }
func (n *BoolLiteralExpr) expr()                      {}
func (n *BoolLiteralExpr) Children() []Node           { return []Node{n.Tok} }

// StringLiteralExpr is a quoted string constant.
type StringLiteralExpr struct {
	Tok *Terminal
	Src token.SourceRef
}

func (n *StringLiteralExpr) SourceRef() token.SourceRef { return n.Src }
func (n *StringLiteralExpr) Production() string         { return "StringLiteralExpr" }
func (n *StringLiteralExpr) expr()                      {}
func (n *StringLiteralExpr) Children() []Node           { return []Node{n.Tok} }

// BinaryExpr is "left op right".
type BinaryExpr struct {
	Op    *Terminal
	Left  Expr
	Right Expr
	Src   token.SourceRef
}

func (n *BinaryExpr) SourceRef() token.SourceRef { return n.Src }
func (n *BinaryExpr) Production() string         { return "BinaryExpr" }
func (n *BinaryExpr) expr()                      {}
func (n *BinaryExpr) Children() []Node           { return []Node{n.Left, n.Op, n.Right} }

// UnaryExpr is "op operand" (negation, logical not, or address-of "&").
type UnaryExpr struct {
	Op      *Terminal
	Operand Expr
	Src     token.SourceRef
}

func (n *UnaryExpr) SourceRef() token.SourceRef { return n.Src }
func (n *UnaryExpr) Production() string         { return "UnaryExpr" }
func (n *UnaryExpr) expr()                      {}
func (n *UnaryExpr) Children() []Node           { return []Node{n.Op, n.Operand} }

// DerefExpr is "*operand": a pointer dereference.
type DerefExpr struct {
	Star    *Terminal
	Operand Expr
	Src     token.SourceRef
}

func (n *DerefExpr) SourceRef() token.SourceRef { return n.Src }
func (n *DerefExpr) Production() string         { return "DerefExpr" }
func (n *DerefExpr) expr()                      {}
func (n *DerefExpr) Children() []Node           { return []Node{n.Star, n.Operand} }

// CallExpr is "callee(args...)".
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Src    token.SourceRef
}

func (n *CallExpr) SourceRef() token.SourceRef { return n.Src }
func (n *CallExpr) Production() string         { return "CallExpr" }
func (n *CallExpr) expr()                      {}
func (n *CallExpr) Children() []Node {
	out := []Node{n.Callee}
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}

// MemberExpr is "base.member": field or method access.
type MemberExpr struct {
	Base   Expr
	Member *Terminal
	Src    token.SourceRef
}

func (n *MemberExpr) SourceRef() token.SourceRef { return n.Src }
func (n *MemberExpr) Production() string         { return "MemberExpr" }
func (n *MemberExpr) expr()                      {}
func (n *MemberExpr) Children() []Node           { return []Node{n.Base, n.Member} }

// IndexExpr is "base[index]": array element access.
type IndexExpr struct {
	Base  Expr
	Index Expr
	Src   token.SourceRef
}

func (n *IndexExpr) SourceRef() token.SourceRef { return n.Src }
func (n *IndexExpr) Production() string         { return "IndexExpr" }
func (n *IndexExpr) expr()                      {}
func (n *IndexExpr) Children() []Node           { return []Node{n.Base, n.Index} }

// ParenExpr is "(inner)", kept in the CST so format-identity can round-trip
// redundant parentheses verbatim.
type ParenExpr struct {
	Inner Expr
	Src   token.SourceRef
}

func (n *ParenExpr) SourceRef() token.SourceRef { return n.Src }
func (n *ParenExpr) Production() string         { return "ParenExpr" }
func (n *ParenExpr) expr()                      {}
func (n *ParenExpr) Children() []Node           { return []Node{n.Inner} }
