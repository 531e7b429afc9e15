package analyzer

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// inferExpr is the heart of Pass 2/Pass 5 (§4.7): a post-order walk that
// populates type_info on every expression node it visits and returns the
// resolved type for its caller's convenience. It never returns nil; on
// failure it records a diagnostic and returns Unknown.
func inferExpr(ctx *Context, expr ast.Expression, table *symbols.Table) *typesystem.TypeInfo {
	if expr == nil {
		return ctx.Universe.Unknown
	}
	t := inferExprKind(ctx, expr, table)
	expr.SetExprType(t)
	return t
}

func inferExprKind(ctx *Context, expr ast.Expression, table *symbols.Table) *typesystem.TypeInfo {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.IsFloat {
			return ctx.Universe.Double
		}
		return ctx.Universe.Int

	case *ast.StringLiteral:
		return ctx.Universe.String

	case *ast.BooleanLiteral:
		return ctx.Universe.Bool

	case *ast.Identifier:
		return inferIdentifier(ctx, e, table)

	case *ast.BinaryExpression:
		return inferBinary(ctx, e, table)

	case *ast.UnaryExpression:
		return inferUnary(ctx, e, table)

	case *ast.PrefixExpression:
		t := inferExpr(ctx, e.Right, table)
		return t

	case *ast.PostfixExpression:
		return inferExpr(ctx, e.Left, table)

	case *ast.TernaryExpression:
		inferExpr(ctx, e.Condition, table)
		cons := inferExpr(ctx, e.Consequence, table)
		alt := inferExpr(ctx, e.Alternative, table)
		if cons != alt && cons.IsNumeric() && alt.IsNumeric() {
			return widerNumeric(cons, alt, ctx.Universe)
		}
		return cons

	case *ast.CallExpression:
		return inferCall(ctx, e, table)

	case *ast.MethodCallExpression:
		return inferMethodCall(ctx, e, table)

	case *ast.MemberExpression:
		return inferMember(ctx, e, table)

	case *ast.MemberAssignExpression:
		return inferMemberAssign(ctx, e, table)

	case *ast.IndexExpression:
		return inferIndex(ctx, e, table)

	case *ast.IndexAssignExpression:
		return inferIndexAssign(ctx, e, table)

	case *ast.AssignExpression:
		return inferAssign(ctx, e, table)

	case *ast.ObjectLiteral:
		return inferObjectLiteral(ctx, e, table, nil)

	case *ast.ArrayLiteral:
		return inferArrayLiteral(ctx, e, table)

	case *ast.NewExpression:
		elem := resolveTypeExpr(ctx, e.ElemType, table)
		inferExpr(ctx, e.SizeExpr, table)
		return ctx.Module.TypeCtx.Ref(ctx.Module.TypeCtx.Array(elem, false, 0), true)

	case *ast.DeleteExpression:
		vt := inferExpr(ctx, e.Value, table)
		if vt.Kind != typesystem.KindRef {
			ctx.Sink.Errorf(e.Pos(), diag.TypeDeleteOnNonRef, "delete requires a ref value, found %s", vt)
		}
		return ctx.Universe.Void
	}
	return ctx.Universe.Unknown
}

func inferIdentifier(ctx *Context, id *ast.Identifier, table *symbols.Table) *typesystem.TypeInfo {
	entry, found := table.Resolve(id.Value)
	if !found {
		ctx.Sink.Errorf(id.Pos(), diag.TypeUndefinedIdent, "undefined identifier %q", id.Value)
		return ctx.Universe.Unknown
	}
	id.Symbol = entry
	return entry.Type
}

func inferUnary(ctx *Context, e *ast.UnaryExpression, table *symbols.Table) *typesystem.TypeInfo {
	if e.Operator == "ref" {
		inner := inferExpr(ctx, e.Right, table)
		return ctx.Module.TypeCtx.Ref(inner, true)
	}
	if e.Operator == "!" {
		inferExpr(ctx, e.Right, table)
		return ctx.Universe.Bool
	}
	right := inferExpr(ctx, e.Right, table)
	traitName, ok := typesystem.OperatorToTrait(e.Operator)
	if !ok {
		return right
	}
	trait, _ := ctx.Traits.Trait(traitName)
	impl := ctx.Traits.FindImpl(trait, right, nil)
	if impl == nil {
		ctx.Sink.Errorf(e.Pos(), diag.TypeTraitNotImplemented, "type %s does not implement %s", right, traitName)
		return ctx.Universe.Unknown
	}
	e.Impl = impl
	if out, ok := impl.AssocTypeBinds["Output"]; ok {
		return out
	}
	return right
}

func inferBinary(ctx *Context, e *ast.BinaryExpression, table *symbols.Table) *typesystem.TypeInfo {
	left := inferExpr(ctx, e.Left, table)
	right := inferExpr(ctx, e.Right, table)

	if e.Operator == "&&" || e.Operator == "||" {
		return ctx.Universe.Bool
	}
	if e.Operator == "+" && (left == ctx.Universe.String || right == ctx.Universe.String) {
		return ctx.Universe.String
	}

	traitName, ok := typesystem.OperatorToTrait(e.Operator)
	if !ok {
		ctx.Sink.Errorf(e.Pos(), diag.ConstEvalUnsupportedOp, "unsupported operator %q", e.Operator)
		return ctx.Universe.Unknown
	}
	trait, _ := ctx.Traits.Trait(traitName)

	// Built-in numeric operators promote the narrower operand to the wider
	// one rather than requiring an exact Rhs match; this keeps `1 + 2.0`
	// working without the registry carrying an impl per numeric pair.
	if left.IsNumeric() && right.IsNumeric() {
		self := widerNumeric(left, right, ctx.Universe)
		switch e.Operator {
		case "==", "!=", "<", ">", "<=", ">=":
			return ctx.Universe.Bool
		}
		return self
	}

	impl := ctx.Traits.FindImpl(trait, left, map[string]*typesystem.TypeInfo{"Rhs": right})
	if impl == nil {
		impl = ctx.Traits.FindImpl(trait, left, nil)
	}
	if impl == nil {
		ctx.Sink.Errorf(e.Pos(), diag.TypeTraitNotImplemented, "type %s does not implement %s<%s>", left, traitName, right)
		return ctx.Universe.Unknown
	}
	e.Impl = impl
	switch e.Operator {
	case "==", "!=", "<", ">", "<=", ">=":
		return ctx.Universe.Bool
	}
	if out, ok := impl.AssocTypeBinds["Output"]; ok {
		return out
	}
	return left
}

// widerNumeric picks double over any integer width, and otherwise the left
// operand's width; a faithful width lattice is codegen's concern, not the
// type checker's, once both sides are confirmed numeric.
func widerNumeric(a, b *typesystem.TypeInfo, u *typesystem.TypeUniverse) *typesystem.TypeInfo {
	if a == u.Double || b == u.Double {
		return u.Double
	}
	return a
}

// assignableTo reports whether a value of type src may be used where dst is
// expected, per §4.7's "allowing int->double promotion" and
// "integer-width promotion" leniency rules.
func assignableTo(dst, src *typesystem.TypeInfo) bool {
	if dst == nil || src == nil {
		return false
	}
	if dst == src {
		return true
	}
	if dst.Kind == typesystem.KindUnknown || src.Kind == typesystem.KindUnknown {
		return true
	}
	if dst.IsNumeric() && src.IsNumeric() {
		if dst.Kind == typesystem.KindPrimitive && dst.Prim == typesystem.PrimDouble {
			return true // any numeric -> double
		}
		return src.IsInteger() && dst.IsInteger() // any integer -> any integer width
	}
	return false
}
