package analyzer

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// runPass2 drives inference over every pending specialization body (queued
// by Pass 1's eager pass, or by call-site resolution during the previous
// iteration's Pass 2/Pass 5 walks) and over
// top-level non-const var/let declarations (§4.7 Pass 2).
func runPass2(ctx *Context) {
	pending := ctx.pendingBodies
	ctx.pendingBodies = nil
	for _, pb := range pending {
		analyzeBody(ctx, pb)
	}

	scope := moduleScope(ctx)
	for _, stmt := range topLevelStatements(ctx.Module.AST) {
		if d, ok := stmt.(*ast.VarDeclaration); ok && d.Kind != ast.VarKindConst {
			inferVarDeclaration(ctx, d, scope)
		}
	}
}

// analyzeBody runs inference over a specialization's cloned body, then
// reconciles its declared (or still-pending) return type against what the
// body's return statements actually produce.
func analyzeBody(ctx *Context, pb pendingBody) {
	fn, ok := pb.spec.Body.(*ast.FunctionDeclaration)
	if !ok || fn.Body == nil {
		return
	}
	inferStatements(ctx, fn.Body.Statements, pb.scope)

	if !pb.spec.HasReturnType || pb.spec.ReturnType == nil {
		pb.spec.ReturnType = returnTypeOf(ctx, fn.Body)
		pb.spec.HasReturnType = true
	}
}

// returnTypeOf finds the type of the first return statement with a value
// found anywhere in body, or Void if the function never returns a value.
func returnTypeOf(ctx *Context, body *ast.BlockStatement) *typesystem.TypeInfo {
	var found *typesystem.TypeInfo
	var walk func(stmts []ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ast.ReturnStatement:
				if found == nil && st.Value != nil {
					found = st.Value.ExprType()
				}
			case *ast.IfStatement:
				walk(st.Consequence.Statements)
				if blk, ok := st.Alternative.(*ast.BlockStatement); ok {
					walk(blk.Statements)
				} else if ifs, ok := st.Alternative.(*ast.IfStatement); ok {
					walk([]ast.Statement{ifs})
				}
			case *ast.WhileStatement:
				walk(st.Body.Statements)
			case *ast.ForStatement:
				walk(st.Body.Statements)
			case *ast.BlockStatement:
				walk(st.Statements)
			}
		}
	}
	walk(body.Statements)
	if found == nil {
		return ctx.Universe.Void
	}
	return found
}

func inferVarDeclaration(ctx *Context, d *ast.VarDeclaration, scope *symbols.Table) {
	declared := resolveTypeExpr(ctx, d.Declared, scope)
	var valueType *typesystem.TypeInfo
	if d.Value != nil {
		if d.Declared != nil {
			valueType = inferContextual(ctx, d.Value, scope, declared)
		} else {
			valueType = inferExpr(ctx, d.Value, scope)
		}
	}

	finalType := declared
	if d.Declared == nil {
		finalType = valueType
		if finalType == nil {
			finalType = ctx.Universe.Unknown
		}
	} else if valueType != nil && !assignableTo(declared, valueType) {
		ctx.Sink.Errorf(d.Value.Pos(), diag.TypeMismatchDecl, "%q declared as %s, initializer has type %s", d.Name.Value, declared, valueType)
	}

	if entry, ok := d.Name.Symbol.(*symbols.Entry); ok {
		entry.Type = finalType
		return
	}
	entry := &symbols.Entry{Name: d.Name.Value, Type: finalType, IsConst: d.Kind == ast.VarKindConst, Kind: symbols.KindVariable, DeclaringNode: d}
	d.Name.Symbol = entry
	scope.Define(entry)
}

// inferStatements walks a statement list in source order, recursing into
// nested blocks with their own child scope (§4.7 Pass 2's statement walk).
func inferStatements(ctx *Context, stmts []ast.Statement, scope *symbols.Table) {
	for _, s := range stmts {
		inferStatement(ctx, s, scope)
	}
}

func inferStatement(ctx *Context, stmt ast.Statement, scope *symbols.Table) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		inferVarDeclaration(ctx, s, scope)
	case *ast.ExpressionStatement:
		inferExpr(ctx, s.Expression, scope)
	case *ast.ReturnStatement:
		if s.Value != nil {
			inferExpr(ctx, s.Value, scope)
		}
	case *ast.IfStatement:
		inferExpr(ctx, s.Condition, scope)
		inferStatements(ctx, s.Consequence.Statements, scope.Child())
		switch alt := s.Alternative.(type) {
		case *ast.BlockStatement:
			inferStatements(ctx, alt.Statements, scope.Child())
		case *ast.IfStatement:
			inferStatement(ctx, alt, scope)
		}
	case *ast.WhileStatement:
		inferExpr(ctx, s.Condition, scope)
		inferStatements(ctx, s.Body.Statements, scope.Child())
	case *ast.ForStatement:
		loopScope := scope.Child()
		if s.Init != nil {
			inferStatement(ctx, s.Init, loopScope)
		}
		if s.Condition != nil {
			inferExpr(ctx, s.Condition, loopScope)
		}
		if s.Update != nil {
			inferStatement(ctx, s.Update, loopScope)
		}
		inferStatements(ctx, s.Body.Statements, loopScope.Child())
	case *ast.BlockStatement:
		inferStatements(ctx, s.Statements, scope.Child())
	case *ast.BreakStatement, *ast.ContinueStatement:
		// nothing to infer
	}
}
