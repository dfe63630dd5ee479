package cst

import (
	"testing"

	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *IdentExpr {
	return &IdentExpr{Path: []*Terminal{{Kind: token.IDENT, Text: name}}}
}

func TestTerminalIsLeaf(t *testing.T) {
	term := &Terminal{Kind: token.INT, Text: "42", Src: token.SourceRef{Line: 1, Column: 0, Length: 2}}
	require.Equal(t, "Terminal", term.Production())
	require.Nil(t, term.Children())
	require.Equal(t, token.SourceRef{Line: 1, Column: 0, Length: 2}, term.SourceRef())
}

func TestIdentExprNameJoinsPath(t *testing.T) {
	e := &IdentExpr{Path: []*Terminal{
		{Kind: token.IDENT, Text: "ns"},
		{Kind: token.IDENT, Text: "Widget"},
	}}
	require.Equal(t, "ns::Widget", e.Name())
	require.Len(t, e.Children(), 2)
}

func TestTypeSpecifierSimpleName(t *testing.T) {
	ts := &TypeSpecifierSimple{Path: []*Terminal{{Kind: token.IDENT, Text: "i32"}}}
	require.Equal(t, "i32", ts.Name())
}

func TestWalkVisitsInSourceOrderAndExits(t *testing.T) {
	// f(a, b)
	call := &CallExpr{
		Callee: ident("f"),
		Args:   []Expr{ident("a"), ident("b")},
	}

	var events []string
	var visit VisitorFunc
	visit = func(n Node, dir VisitDirection) Visitor {
		tag := "enter"
		if dir == VisitExit {
			tag = "exit"
		}
		events = append(events, tag+":"+n.Production())
		return visit
	}
	Walk(visit, call)

	require.Equal(t, []string{
		"enter:CallExpr",
		"enter:IdentExpr", "enter:Terminal", "exit:Terminal", "exit:IdentExpr",
		"enter:IdentExpr", "enter:Terminal", "exit:Terminal", "exit:IdentExpr",
		"enter:IdentExpr", "enter:Terminal", "exit:Terminal", "exit:IdentExpr",
		"exit:CallExpr",
	}, events)
}

func TestWalkSkipsChildrenWhenVisitorReturnsNil(t *testing.T) {
	block := &Block{Stmts: []Stmt{
		&ExprStmt{X: ident("a")},
		&ExprStmt{X: ident("b")},
	}}

	var seen []string
	Walk(VisitorFunc(func(n Node, dir VisitDirection) Visitor {
		if dir == VisitExit {
			return nil
		}
		seen = append(seen, n.Production())
		if n.Production() == "ExprStmt" {
			return nil // don't descend into the expression
		}
		return VisitorFunc(func(n Node, dir VisitDirection) Visitor {
			if dir == VisitExit {
				return nil
			}
			seen = append(seen, n.Production())
			if n.Production() == "ExprStmt" {
				return nil
			}
			return nil
		})
	}), block)

	require.Equal(t, []string{"Block", "ExprStmt", "ExprStmt"}, seen)
}
