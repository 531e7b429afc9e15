package ast

import (
	"github.com/nanov/jsasta/internal/token"
	"github.com/nanov/jsasta/internal/typesystem"
)

// Identifier is a reference to a named variable, parameter, function,
// struct, or namespace import.
type Identifier struct {
	exprBase
	Token  token.Token
	Value  string
	Symbol interface{} // *symbols.Entry, populated by the inference driver
}

func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (i *Identifier) Accept(v Visitor)    { v.VisitIdentifier(i) }

// NumberLiteral covers both integer and floating-point literals; IsFloat
// distinguishes them (a dot in the source sets it).
type NumberLiteral struct {
	exprBase
	Token    token.Token
	IntValue int64
	FltValue float64
	IsFloat  bool
}

func (n *NumberLiteral) Pos() token.Position { return n.Token.Pos }
func (n *NumberLiteral) Accept(v Visitor)    { v.VisitNumberLiteral(n) }

type StringLiteral struct {
	exprBase
	Token token.Token
	Value string
}

func (s *StringLiteral) Pos() token.Position { return s.Token.Pos }
func (s *StringLiteral) Accept(v Visitor)    { v.VisitStringLiteral(s) }

type BooleanLiteral struct {
	exprBase
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Pos() token.Position { return b.Token.Pos }
func (b *BooleanLiteral) Accept(v Visitor)    { v.VisitBooleanLiteral(b) }

// BinaryExpression is any infix operator expression; Impl is the resolved
// trait implementation providing the operator's Output type, populated by
// the inference driver via the trait registry (nil until then, and for
// short-circuiting && / || which never consult a trait).
type BinaryExpression struct {
	exprBase
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
	Impl     *typesystem.TraitImpl
}

func (b *BinaryExpression) Pos() token.Position { return b.Token.Pos }
func (b *BinaryExpression) Accept(v Visitor)    { v.VisitBinaryExpression(b) }

// UnaryExpression is a prefix operator: -e, !e, ref e.
type UnaryExpression struct {
	exprBase
	Token    token.Token
	Operator string
	Right    Expression
	Impl     *typesystem.TraitImpl
}

func (u *UnaryExpression) Pos() token.Position { return u.Token.Pos }
func (u *UnaryExpression) Accept(v Visitor)    { v.VisitUnaryExpression(u) }

// PrefixExpression is ++x / --x.
type PrefixExpression struct {
	exprBase
	Token    token.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) Pos() token.Position { return p.Token.Pos }
func (p *PrefixExpression) Accept(v Visitor)    { v.VisitPrefixExpression(p) }

// PostfixExpression is x++ / x--.
type PostfixExpression struct {
	exprBase
	Token    token.Token
	Left     Expression
	Operator string
}

func (p *PostfixExpression) Pos() token.Position { return p.Token.Pos }
func (p *PostfixExpression) Accept(v Visitor)    { v.VisitPostfixExpression(p) }

// TernaryExpression is cond ? cons : alt.
type TernaryExpression struct {
	exprBase
	Token       token.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (t *TernaryExpression) Pos() token.Position { return t.Token.Pos }
func (t *TernaryExpression) Accept(v Visitor)    { v.VisitTernaryExpression(t) }

// CallExpression is a free function call, f(args...).
type CallExpression struct {
	exprBase
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
	// Specialization is the resolved *typesystem.Specialization for this
	// exact argument-type signature, set when the call is resolved during
	// the Pass 2/Pass 5 walks.
	Specialization interface{}
}

func (c *CallExpression) Pos() token.Position { return c.Token.Pos }
func (c *CallExpression) Accept(v Visitor)    { v.VisitCallExpression(c) }

// MethodCallExpression is receiver.method(args...), either static
// (Type.method(...)) or instance (value.method(...)); IsStatic is resolved
// by the inference driver from whether Receiver names a type or a value.
type MethodCallExpression struct {
	exprBase
	Token          token.Token
	Receiver       Expression
	Method         *Identifier
	Arguments      []Expression
	IsStatic       bool
	Specialization interface{}
}

func (m *MethodCallExpression) Pos() token.Position { return m.Token.Pos }
func (m *MethodCallExpression) Accept(v Visitor)    { v.VisitMethodCallExpression(m) }

// MemberExpression is obj.field read access. PropertyIndex is the resolved
// ordinal of the field within the object type, recorded for codegen, and is
// -1 until resolved.
type MemberExpression struct {
	exprBase
	Token         token.Token
	Object        Expression
	Property      *Identifier
	PropertyIndex int
}

func (m *MemberExpression) Pos() token.Position { return m.Token.Pos }
func (m *MemberExpression) Accept(v Visitor)    { v.VisitMemberExpression(m) }

// MemberAssignExpression is obj.field = value.
type MemberAssignExpression struct {
	exprBase
	Token         token.Token
	Object        Expression
	Property      *Identifier
	PropertyIndex int
	Value         Expression
}

func (m *MemberAssignExpression) Pos() token.Position { return m.Token.Pos }
func (m *MemberAssignExpression) Accept(v Visitor)    { v.VisitMemberAssignExpression(m) }

// IndexExpression is arr[idx] read access, dispatched through Index/RefIndex.
type IndexExpression struct {
	exprBase
	Token token.Token
	Left  Expression
	Index Expression
	Impl  *typesystem.TraitImpl
}

func (i *IndexExpression) Pos() token.Position { return i.Token.Pos }
func (i *IndexExpression) Accept(v Visitor)    { v.VisitIndexExpression(i) }

// IndexAssignExpression is arr[idx] = value.
type IndexAssignExpression struct {
	exprBase
	Token token.Token
	Left  Expression
	Index Expression
	Value Expression
	Impl  *typesystem.TraitImpl
}

func (i *IndexAssignExpression) Pos() token.Position { return i.Token.Pos }
func (i *IndexAssignExpression) Accept(v Visitor)    { v.VisitIndexAssignExpression(i) }

// AssignExpression is a plain identifier assignment, x = value, or a
// compound assignment (+= -= *= /=) recorded in CompoundOp.
type AssignExpression struct {
	exprBase
	Token      token.Token
	Target     *Identifier
	Value      Expression
	CompoundOp string // "", "+", "-", "*", "/"
}

func (a *AssignExpression) Pos() token.Position { return a.Token.Pos }
func (a *AssignExpression) Accept(v Visitor)    { v.VisitAssignExpression(a) }

// ObjectLiteralField is one key: value entry of an object literal, in
// source order; field reordering to the struct's declared order happens via
// a separate resolved slice, not by mutating this slice in place.
type ObjectLiteralField struct {
	Key   *Identifier
	Value Expression
}

// ObjectLiteral is { key: value, ... }. When contextually typed against a
// struct, the inference driver fills FieldOrder with the field values in the
// struct's declared order (including defaulted fields), so codegen never
// needs to re-derive it.
type ObjectLiteral struct {
	exprBase
	Token      token.Token
	Fields     []ObjectLiteralField
	FieldOrder []Expression
}

func (o *ObjectLiteral) Pos() token.Position { return o.Token.Pos }
func (o *ObjectLiteral) Accept(v Visitor)    { v.VisitObjectLiteral(o) }

// ArrayLiteral is [e1, e2, ...].
type ArrayLiteral struct {
	exprBase
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) Pos() token.Position { return a.Token.Pos }
func (a *ArrayLiteral) Accept(v Visitor)    { v.VisitArrayLiteral(a) }

// NewExpression is `new T[size]`, producing a ref T[].
type NewExpression struct {
	exprBase
	Token      token.Token
	ElemType   TypeExpr
	SizeExpr   Expression
}

func (n *NewExpression) Pos() token.Position { return n.Token.Pos }
func (n *NewExpression) Accept(v Visitor)    { v.VisitNewExpression(n) }

// DeleteExpression is `delete e`, requiring e: ref T.
type DeleteExpression struct {
	exprBase
	Token token.Token
	Value Expression
}

func (d *DeleteExpression) Pos() token.Position { return d.Token.Pos }
func (d *DeleteExpression) Accept(v Visitor)    { v.VisitDeleteExpression(d) }
