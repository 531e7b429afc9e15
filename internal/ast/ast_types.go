package ast

import "github.com/nanov/jsasta/internal/token"

// TypeExpr is the syntactic spelling of a type annotation, as written by the
// programmer. It is resolved to a typesystem.Type by the inference driver
// and never consulted again after that; TypeExpr nodes are not
// Expressions and carry no ExprType slot of their own.
type TypeExpr interface {
	Node
	typeExprNode()
}

// PrimitiveTypeExpr names a built-in scalar: int, double, bool, string, void.
type PrimitiveTypeExpr struct {
	Token token.Token
	Name  string
}

func (p *PrimitiveTypeExpr) Pos() token.Position { return p.Token.Pos }
func (p *PrimitiveTypeExpr) Accept(v Visitor)    { v.VisitPrimitiveTypeExpr(p) }
func (p *PrimitiveTypeExpr) typeExprNode()       {}

// ArrayTypeExpr is T[] (unsized, a slice-like reference array) or T[N]
// (sized, a fixed-length value array); Size is nil for the unsized form.
type ArrayTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
	Size  Expression // const-evaluable; nil for T[]
}

func (a *ArrayTypeExpr) Pos() token.Position { return a.Token.Pos }
func (a *ArrayTypeExpr) Accept(v Visitor)    { v.VisitArrayTypeExpr(a) }
func (a *ArrayTypeExpr) typeExprNode()       {}

// RefTypeExpr is `ref T`, a heap-allocated pointer to T.
type RefTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
}

func (r *RefTypeExpr) Pos() token.Position { return r.Token.Pos }
func (r *RefTypeExpr) Accept(v Visitor)    { v.VisitRefTypeExpr(r) }
func (r *RefTypeExpr) typeExprNode()       {}

// NamedTypeExpr names a struct or an imported type, possibly through a
// dotted namespace path (mod.Type); Path holds every dotted segment in
// source order and Name is the final one.
type NamedTypeExpr struct {
	Token token.Token
	Path  []string
	Name  string
}

func (n *NamedTypeExpr) Pos() token.Position { return n.Token.Pos }
func (n *NamedTypeExpr) Accept(v Visitor)    { v.VisitNamedTypeExpr(n) }
func (n *NamedTypeExpr) typeExprNode()       {}
