package ast

// Visitor is the interface every node's Accept method dispatches into. No
// package in this repository implements it; the analyzer walks the tree
// with type switches instead. Accept dispatches statically, so adding a node type is a
// compile-time-checked change to every implementation, not a silent gap in
// a type switch.
type Visitor interface {
	VisitProgram(*Program)
	VisitBlockStatement(*BlockStatement)
	VisitExpressionStatement(*ExpressionStatement)
	VisitVarDeclaration(*VarDeclaration)
	VisitFunctionDeclaration(*FunctionDeclaration)
	VisitStructDeclaration(*StructDeclaration)
	VisitEnumDeclaration(*EnumDeclaration)
	VisitTraitDeclaration(*TraitDeclaration)
	VisitImplDeclaration(*ImplDeclaration)
	VisitImportStatement(*ImportStatement)
	VisitExportStatement(*ExportStatement)
	VisitIfStatement(*IfStatement)
	VisitWhileStatement(*WhileStatement)
	VisitForStatement(*ForStatement)
	VisitBreakStatement(*BreakStatement)
	VisitContinueStatement(*ContinueStatement)
	VisitReturnStatement(*ReturnStatement)

	VisitIdentifier(*Identifier)
	VisitNumberLiteral(*NumberLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitBinaryExpression(*BinaryExpression)
	VisitUnaryExpression(*UnaryExpression)
	VisitPrefixExpression(*PrefixExpression)
	VisitPostfixExpression(*PostfixExpression)
	VisitTernaryExpression(*TernaryExpression)
	VisitCallExpression(*CallExpression)
	VisitMethodCallExpression(*MethodCallExpression)
	VisitMemberExpression(*MemberExpression)
	VisitMemberAssignExpression(*MemberAssignExpression)
	VisitIndexExpression(*IndexExpression)
	VisitIndexAssignExpression(*IndexAssignExpression)
	VisitAssignExpression(*AssignExpression)
	VisitObjectLiteral(*ObjectLiteral)
	VisitArrayLiteral(*ArrayLiteral)
	VisitNewExpression(*NewExpression)
	VisitDeleteExpression(*DeleteExpression)

	VisitPrimitiveTypeExpr(*PrimitiveTypeExpr)
	VisitArrayTypeExpr(*ArrayTypeExpr)
	VisitRefTypeExpr(*RefTypeExpr)
	VisitNamedTypeExpr(*NamedTypeExpr)
}

// BaseVisitor implements every Visitor method as a no-op, so a pass that
// only cares about a handful of node kinds can embed it and override just
// those rather than restating the full interface.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program)                               {}
func (BaseVisitor) VisitBlockStatement(*BlockStatement)                 {}
func (BaseVisitor) VisitExpressionStatement(*ExpressionStatement)       {}
func (BaseVisitor) VisitVarDeclaration(*VarDeclaration)                 {}
func (BaseVisitor) VisitFunctionDeclaration(*FunctionDeclaration)       {}
func (BaseVisitor) VisitStructDeclaration(*StructDeclaration)           {}
func (BaseVisitor) VisitEnumDeclaration(*EnumDeclaration)               {}
func (BaseVisitor) VisitTraitDeclaration(*TraitDeclaration)             {}
func (BaseVisitor) VisitImplDeclaration(*ImplDeclaration)               {}
func (BaseVisitor) VisitImportStatement(*ImportStatement)               {}
func (BaseVisitor) VisitExportStatement(*ExportStatement)               {}
func (BaseVisitor) VisitIfStatement(*IfStatement)                       {}
func (BaseVisitor) VisitWhileStatement(*WhileStatement)                 {}
func (BaseVisitor) VisitForStatement(*ForStatement)                     {}
func (BaseVisitor) VisitBreakStatement(*BreakStatement)                 {}
func (BaseVisitor) VisitContinueStatement(*ContinueStatement)           {}
func (BaseVisitor) VisitReturnStatement(*ReturnStatement)               {}
func (BaseVisitor) VisitIdentifier(*Identifier)                         {}
func (BaseVisitor) VisitNumberLiteral(*NumberLiteral)                   {}
func (BaseVisitor) VisitStringLiteral(*StringLiteral)                   {}
func (BaseVisitor) VisitBooleanLiteral(*BooleanLiteral)                 {}
func (BaseVisitor) VisitBinaryExpression(*BinaryExpression)             {}
func (BaseVisitor) VisitUnaryExpression(*UnaryExpression)               {}
func (BaseVisitor) VisitPrefixExpression(*PrefixExpression)             {}
func (BaseVisitor) VisitPostfixExpression(*PostfixExpression)           {}
func (BaseVisitor) VisitTernaryExpression(*TernaryExpression)           {}
func (BaseVisitor) VisitCallExpression(*CallExpression)                 {}
func (BaseVisitor) VisitMethodCallExpression(*MethodCallExpression)     {}
func (BaseVisitor) VisitMemberExpression(*MemberExpression)             {}
func (BaseVisitor) VisitMemberAssignExpression(*MemberAssignExpression) {}
func (BaseVisitor) VisitIndexExpression(*IndexExpression)               {}
func (BaseVisitor) VisitIndexAssignExpression(*IndexAssignExpression)   {}
func (BaseVisitor) VisitAssignExpression(*AssignExpression)             {}
func (BaseVisitor) VisitObjectLiteral(*ObjectLiteral)                   {}
func (BaseVisitor) VisitArrayLiteral(*ArrayLiteral)                     {}
func (BaseVisitor) VisitNewExpression(*NewExpression)                   {}
func (BaseVisitor) VisitDeleteExpression(*DeleteExpression)             {}
func (BaseVisitor) VisitPrimitiveTypeExpr(*PrimitiveTypeExpr)           {}
func (BaseVisitor) VisitArrayTypeExpr(*ArrayTypeExpr)                   {}
func (BaseVisitor) VisitRefTypeExpr(*RefTypeExpr)                       {}
func (BaseVisitor) VisitNamedTypeExpr(*NamedTypeExpr)                   {}
