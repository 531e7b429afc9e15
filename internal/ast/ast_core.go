// Package ast defines the typed abstract syntax tree produced by the parser
// and annotated in place by the type inference driver.
package ast

import (
	"github.com/nanov/jsasta/internal/token"
	"github.com/nanov/jsasta/internal/typesystem"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	Accept(v Visitor)
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in an expression position. Every
// Expression owns a resolved Type slot, populated by the inference driver;
// it starts as nil (meaning "not yet inferred") and is typesystem.Unknown
// only once a diagnostic has been emitted against it (invariant P2).
type Expression interface {
	Node
	expressionNode()
	ExprType() typesystem.Type
	SetExprType(typesystem.Type)
}

// exprBase is embedded by every expression node to provide the Type slot and
// its accessors without repeating them on each type.
type exprBase struct {
	Type typesystem.Type
}

func (e *exprBase) ExprType() typesystem.Type        { return e.Type }
func (e *exprBase) SetExprType(t typesystem.Type)     { e.Type = t }
func (e *exprBase) expressionNode()                   {}

// Program is the root node produced by the parser for one source file.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Filename: p.File, Line: 1, Column: 1}
}
func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }

// BlockStatement is a brace-delimited statement sequence that owns its own
// lexical scope (function bodies, if/for/while bodies).
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) Pos() token.Position { return b.Token.Pos }
func (b *BlockStatement) Accept(v Visitor)    { v.VisitBlockStatement(b) }
func (b *BlockStatement) statementNode()      {}

// ExpressionStatement wraps an expression used for its side effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) Pos() token.Position { return e.Token.Pos }
func (e *ExpressionStatement) Accept(v Visitor)    { v.VisitExpressionStatement(e) }
func (e *ExpressionStatement) statementNode()      {}
