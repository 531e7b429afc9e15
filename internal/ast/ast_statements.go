package ast

import "github.com/nanov/jsasta/internal/token"

// VarKind distinguishes var/let/const declaration semantics.
type VarKind int

const (
	VarKindVar VarKind = iota
	VarKindLet
	VarKindConst
)

// VarDeclaration declares one binding: var/let x: T = value, or const
// bindings, which additionally must be const-evaluable (checked by the
// evaluator, not the parser).
type VarDeclaration struct {
	Token       token.Token
	Kind        VarKind
	Name        *Identifier
	Declared    TypeExpr // nil if the annotation was omitted
	Value       Expression
}

func (d *VarDeclaration) Pos() token.Position { return d.Token.Pos }
func (d *VarDeclaration) Accept(v Visitor)    { v.VisitVarDeclaration(d) }
func (d *VarDeclaration) statementNode()      {}

// Parameter is one function parameter; Declared is nil for parameters whose
// type is left to be pinned down purely by call-site specialization.
type Parameter struct {
	Name     *Identifier
	Declared TypeExpr
}

// FunctionDeclaration declares a named function. Every distinct tuple of
// argument types it is called with produces one FunctionSpecialization in
// the specialization store; Body is reanalyzed fresh per specialization.
type FunctionDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Params     []*Parameter
	ReturnType TypeExpr // nil if omitted, inferred from return statements
	Body       *BlockStatement
	IsExported bool
	IsExternal bool // `external function`: declared signature only, no body
}

func (f *FunctionDeclaration) Pos() token.Position { return f.Token.Pos }
func (f *FunctionDeclaration) Accept(v Visitor)    { v.VisitFunctionDeclaration(f) }
func (f *FunctionDeclaration) statementNode()      {}

// StructField is one field of a struct declaration, with an optional
// default-value expression used when an object literal omits it.
type StructField struct {
	Name     *Identifier
	Declared TypeExpr
	Default  Expression // nil if no default
}

// StructDeclaration declares a nominal record type. Methods holds bodies
// declared inline inside the struct's braces (§4.2); the analyzer renames
// each to `StructName.methodName` when it registers the struct, so they
// resolve exactly like an `impl Target { ... }` inherent method would.
type StructDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Fields     []*StructField
	Methods    []*FunctionDeclaration
	IsExported bool
}

func (s *StructDeclaration) Pos() token.Position { return s.Token.Pos }
func (s *StructDeclaration) Accept(v Visitor)    { v.VisitStructDeclaration(s) }
func (s *StructDeclaration) statementNode()      {}

// EnumVariant is one bare variant name of an enum declaration; JSasta enums
// are plain tagged integers, not sum types carrying payloads.
type EnumVariant struct {
	Name  *Identifier
	Value Expression // nil if implicitly the previous variant's value + 1
}

// EnumDeclaration declares a closed set of named integer constants.
type EnumDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Variants   []*EnumVariant
	IsExported bool
}

func (e *EnumDeclaration) Pos() token.Position { return e.Token.Pos }
func (e *EnumDeclaration) Accept(v Visitor)    { v.VisitEnumDeclaration(e) }
func (e *EnumDeclaration) statementNode()      {}

// TraitMethodSignature is one method slot a trait requires implementations
// to provide; ReturnType nil means the trait leaves it to the impl (used
// for the built-in operator traits whose Output varies by implementing type).
type TraitMethodSignature struct {
	Name       *Identifier
	Params     []*Parameter
	ReturnType TypeExpr
}

// TraitDeclaration declares an interface-like contract: a named set of
// method signatures that an `impl TraitName for Type` block must satisfy.
type TraitDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Methods    []*TraitMethodSignature
	IsExported bool
}

func (t *TraitDeclaration) Pos() token.Position { return t.Token.Pos }
func (t *TraitDeclaration) Accept(v Visitor)    { v.VisitTraitDeclaration(t) }
func (t *TraitDeclaration) statementNode()      {}

// ImplDeclaration implements either a named trait for a type (Trait != nil)
// or an inherent method block (Trait == nil, `impl Type { ... }`).
type ImplDeclaration struct {
	Token   token.Token
	Trait   *NamedTypeExpr // nil for an inherent impl block
	Target  TypeExpr
	Methods []*FunctionDeclaration
}

func (i *ImplDeclaration) Pos() token.Position { return i.Token.Pos }
func (i *ImplDeclaration) Accept(v Visitor)    { v.VisitImplDeclaration(i) }
func (i *ImplDeclaration) statementNode()      {}

// ImportStatement is `import id from "path"` or `import id from @builtin`.
// Name becomes a namespace-import symbol bound to the target module (or
// builtin), so every cross-module reference goes through `id.member`.
type ImportStatement struct {
	Token     token.Token
	Name      *Identifier
	Path      string
	IsBuiltin bool // true for @io, @test, @debug, @math and similar
}

func (i *ImportStatement) Pos() token.Position { return i.Token.Pos }
func (i *ImportStatement) Accept(v Visitor)    { v.VisitImportStatement(i) }
func (i *ImportStatement) statementNode()      {}

// ExportStatement re-exports an already-declared top-level name, or wraps a
// declaration statement with `export` directly (Decl != nil, Name == nil).
type ExportStatement struct {
	Token token.Token
	Name  *Identifier
	Decl  Statement
}

func (e *ExportStatement) Pos() token.Position { return e.Token.Pos }
func (e *ExportStatement) Accept(v Visitor)    { v.VisitExportStatement(e) }
func (e *ExportStatement) statementNode()      {}

// IfStatement is `if (cond) cons else alt`; Alternative is nil when there is
// no else clause, and may itself be an *IfStatement for an else-if chain.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement
}

func (i *IfStatement) Pos() token.Position { return i.Token.Pos }
func (i *IfStatement) Accept(v Visitor)    { v.VisitIfStatement(i) }
func (i *IfStatement) statementNode()      {}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) Pos() token.Position { return w.Token.Pos }
func (w *WhileStatement) Accept(v Visitor)    { v.VisitWhileStatement(w) }
func (w *WhileStatement) statementNode()      {}

// ForStatement is the C-style `for (init; cond; update) body`; any of the
// three clauses may be nil.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Update    Statement
	Body      *BlockStatement
}

func (f *ForStatement) Pos() token.Position { return f.Token.Pos }
func (f *ForStatement) Accept(v Visitor)    { v.VisitForStatement(f) }
func (f *ForStatement) statementNode()      {}

type BreakStatement struct {
	Token token.Token
}

func (b *BreakStatement) Pos() token.Position { return b.Token.Pos }
func (b *BreakStatement) Accept(v Visitor)    { v.VisitBreakStatement(b) }
func (b *BreakStatement) statementNode()      {}

type ContinueStatement struct {
	Token token.Token
}

func (c *ContinueStatement) Pos() token.Position { return c.Token.Pos }
func (c *ContinueStatement) Accept(v Visitor)    { v.VisitContinueStatement(c) }
func (c *ContinueStatement) statementNode()      {}

// ReturnStatement is `return expr;` or a bare `return;` (Value == nil),
// which requires the enclosing function's return type to be void.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (r *ReturnStatement) Pos() token.Position { return r.Token.Pos }
func (r *ReturnStatement) Accept(v Visitor)    { v.VisitReturnStatement(r) }
func (r *ReturnStatement) statementNode()      {}
