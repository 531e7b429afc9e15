package analyzer

import "github.com/nanov/jsasta/internal/ast"

// cloneFunctionBody produces an independent copy of fn's body so each
// specialization of a polymorphic function can be re-analyzed without one
// specialization's resolved types (Identifier.Symbol, Expression.Type,
// trait Impl bindings, PropertyIndex) leaking into another's (§4.8 "Body is
// reanalyzed fresh per specialization").
func cloneFunctionBody(fn *ast.FunctionDeclaration) *ast.FunctionDeclaration {
	params := make([]*ast.Parameter, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = &ast.Parameter{Name: cloneIdent(p.Name), Declared: p.Declared}
	}
	clone := &ast.FunctionDeclaration{
		Token: fn.Token, Name: fn.Name, Params: params, ReturnType: fn.ReturnType,
		IsExported: fn.IsExported, IsExternal: fn.IsExternal,
	}
	if fn.Body != nil {
		clone.Body = cloneBlock(fn.Body)
	}
	return clone
}

func cloneBlock(b *ast.BlockStatement) *ast.BlockStatement {
	out := &ast.BlockStatement{Token: b.Token, Statements: make([]ast.Statement, len(b.Statements))}
	for i, s := range b.Statements {
		out.Statements[i] = cloneStatement(s)
	}
	return out
}

func cloneStatement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		return &ast.VarDeclaration{
			Token: s.Token, Kind: s.Kind, Name: cloneIdent(s.Name),
			Declared: s.Declared, Value: cloneExpr(s.Value),
		}
	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{Token: s.Token, Expression: cloneExpr(s.Expression)}
	case *ast.ReturnStatement:
		return &ast.ReturnStatement{Token: s.Token, Value: cloneExpr(s.Value)}
	case *ast.IfStatement:
		out := &ast.IfStatement{Token: s.Token, Condition: cloneExpr(s.Condition), Consequence: cloneBlock(s.Consequence)}
		if s.Alternative != nil {
			out.Alternative = cloneStatement(s.Alternative)
		}
		return out
	case *ast.WhileStatement:
		return &ast.WhileStatement{Token: s.Token, Condition: cloneExpr(s.Condition), Body: cloneBlock(s.Body)}
	case *ast.ForStatement:
		out := &ast.ForStatement{Token: s.Token, Body: cloneBlock(s.Body)}
		if s.Init != nil {
			out.Init = cloneStatement(s.Init)
		}
		if s.Condition != nil {
			out.Condition = cloneExpr(s.Condition)
		}
		if s.Update != nil {
			out.Update = cloneStatement(s.Update)
		}
		return out
	case *ast.BreakStatement:
		return &ast.BreakStatement{Token: s.Token}
	case *ast.ContinueStatement:
		return &ast.ContinueStatement{Token: s.Token}
	case *ast.BlockStatement:
		return cloneBlock(s)
	default:
		return stmt
	}
}

func cloneIdent(id *ast.Identifier) *ast.Identifier {
	if id == nil {
		return nil
	}
	return &ast.Identifier{Token: id.Token, Value: id.Value}
}

func cloneExpr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *ast.Identifier:
		return cloneIdent(x)
	case *ast.NumberLiteral:
		return &ast.NumberLiteral{Token: x.Token, IntValue: x.IntValue, FltValue: x.FltValue, IsFloat: x.IsFloat}
	case *ast.StringLiteral:
		return &ast.StringLiteral{Token: x.Token, Value: x.Value}
	case *ast.BooleanLiteral:
		return &ast.BooleanLiteral{Token: x.Token, Value: x.Value}
	case *ast.BinaryExpression:
		return &ast.BinaryExpression{Token: x.Token, Left: cloneExpr(x.Left), Operator: x.Operator, Right: cloneExpr(x.Right)}
	case *ast.UnaryExpression:
		return &ast.UnaryExpression{Token: x.Token, Operator: x.Operator, Right: cloneExpr(x.Right)}
	case *ast.PrefixExpression:
		return &ast.PrefixExpression{Token: x.Token, Operator: x.Operator, Right: cloneExpr(x.Right)}
	case *ast.PostfixExpression:
		return &ast.PostfixExpression{Token: x.Token, Left: cloneExpr(x.Left), Operator: x.Operator}
	case *ast.TernaryExpression:
		return &ast.TernaryExpression{
			Token: x.Token, Condition: cloneExpr(x.Condition),
			Consequence: cloneExpr(x.Consequence), Alternative: cloneExpr(x.Alternative),
		}
	case *ast.CallExpression:
		return &ast.CallExpression{Token: x.Token, Function: cloneExpr(x.Function), Arguments: cloneExprList(x.Arguments)}
	case *ast.MethodCallExpression:
		return &ast.MethodCallExpression{
			Token: x.Token, Receiver: cloneExpr(x.Receiver), Method: cloneIdent(x.Method),
			Arguments: cloneExprList(x.Arguments),
		}
	case *ast.MemberExpression:
		return &ast.MemberExpression{Token: x.Token, Object: cloneExpr(x.Object), Property: cloneIdent(x.Property), PropertyIndex: -1}
	case *ast.MemberAssignExpression:
		return &ast.MemberAssignExpression{
			Token: x.Token, Object: cloneExpr(x.Object), Property: cloneIdent(x.Property),
			PropertyIndex: -1, Value: cloneExpr(x.Value),
		}
	case *ast.IndexExpression:
		return &ast.IndexExpression{Token: x.Token, Left: cloneExpr(x.Left), Index: cloneExpr(x.Index)}
	case *ast.IndexAssignExpression:
		return &ast.IndexAssignExpression{Token: x.Token, Left: cloneExpr(x.Left), Index: cloneExpr(x.Index), Value: cloneExpr(x.Value)}
	case *ast.AssignExpression:
		return &ast.AssignExpression{Token: x.Token, Target: cloneIdent(x.Target), Value: cloneExpr(x.Value), CompoundOp: x.CompoundOp}
	case *ast.ObjectLiteral:
		fields := make([]ast.ObjectLiteralField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = ast.ObjectLiteralField{Key: cloneIdent(f.Key), Value: cloneExpr(f.Value)}
		}
		return &ast.ObjectLiteral{Token: x.Token, Fields: fields}
	case *ast.ArrayLiteral:
		return &ast.ArrayLiteral{Token: x.Token, Elements: cloneExprList(x.Elements)}
	case *ast.NewExpression:
		return &ast.NewExpression{Token: x.Token, ElemType: x.ElemType, SizeExpr: cloneExpr(x.SizeExpr)}
	case *ast.DeleteExpression:
		return &ast.DeleteExpression{Token: x.Token, Value: cloneExpr(x.Value)}
	default:
		return e
	}
}

func cloneExprList(in []ast.Expression) []ast.Expression {
	out := make([]ast.Expression, len(in))
	for i, e := range in {
		out[i] = cloneExpr(e)
	}
	return out
}
