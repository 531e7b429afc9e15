package analyzer

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/consteval"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// resolveTypeExpr turns a parsed type annotation into an interned TypeInfo,
// per §4.2/§4.4. table is consulted for namespaced names (`mod.Type`) and
// for sized-array expressions that reference a const. A nil TypeExpr (an
// omitted annotation) resolves to Unknown, not an error: the caller decides
// whether that's acceptable.
func resolveTypeExpr(ctx *Context, t ast.TypeExpr, table *symbols.Table) *typesystem.TypeInfo {
	if t == nil {
		return ctx.Universe.Unknown
	}
	tc := ctx.Module.TypeCtx

	switch n := t.(type) {
	case *ast.PrimitiveTypeExpr:
		if prim := ctx.Universe.Primitive(n.Name); prim != nil {
			return prim
		}
		ctx.Sink.Errorf(n.Pos(), diag.TypeUndefinedIdent, "unknown primitive type %q", n.Name)
		return ctx.Universe.Unknown

	case *ast.RefTypeExpr:
		return tc.Ref(resolveTypeExpr(ctx, n.Elem, table), true)

	case *ast.ArrayTypeExpr:
		elem := resolveTypeExpr(ctx, n.Elem, table)
		if n.Size == nil {
			return tc.Array(elem, false, 0)
		}
		size := evalConstSize(ctx, n.Size, table)
		return tc.Array(elem, true, size)

	case *ast.NamedTypeExpr:
		return resolveNamedType(ctx, n, table)
	}
	return ctx.Universe.Unknown
}

// resolveNamedType resolves a bare struct name or a one-segment namespaced
// name (`mod.Type`); >1-dot paths were already rejected by the parser.
func resolveNamedType(ctx *Context, n *ast.NamedTypeExpr, table *symbols.Table) *typesystem.TypeInfo {
	if len(n.Path) == 1 {
		if t, ok := ctx.Module.TypeCtx.LookupNamed(n.Name); ok {
			return t
		}
		ctx.Sink.Errorf(n.Pos(), diag.TypeUndefinedIdent, "undefined type %q", n.Name)
		return ctx.Universe.Unknown
	}

	nsName := n.Path[0]
	entry, found := table.Resolve(nsName)
	if !found || entry.Kind != symbols.KindNamespaceImport {
		ctx.Sink.Errorf(n.Pos(), diag.TypeUnresolvedNamespace, "unresolved namespace %q", nsName)
		return ctx.Universe.Unknown
	}
	target, ok := entry.Module.(*modules.Module)
	if !ok || target == nil {
		ctx.Sink.Errorf(n.Pos(), diag.TypeUnresolvedNamespace, "namespace %q has no backing module", nsName)
		return ctx.Universe.Unknown
	}
	if t, ok := target.TypeCtx.LookupNamed(n.Name); ok {
		return t
	}
	ctx.Sink.Errorf(n.Pos(), diag.TypeUndefinedIdent, "undefined type %q in namespace %q", n.Name, nsName)
	return ctx.Universe.Unknown
}

// evalConstSize evaluates a sized-array expression, emitting §4.6's
// diagnostics on failure and substituting 0 so the caller still gets a
// usable (if wrong) array type rather than aborting the pass. By the time
// this runs (Pass 1 onward), Pass 0 has already resolved every reachable
// const, so StatusWaiting here is itself an error.
func evalConstSize(ctx *Context, expr ast.Expression, table *symbols.Table) int64 {
	res := consteval.Eval(expr, table, map[string]bool{})
	switch res.Status {
	case consteval.StatusSuccess:
		return res.Value
	case consteval.StatusWaiting:
		ctx.Sink.Errorf(res.Pos, diag.UnresolvedConst, "%s", res.Msg)
	case consteval.StatusCycle:
		ctx.Sink.Errorf(res.Pos, diag.UnresolvedConst, "%s", res.Msg)
	case consteval.StatusError:
		ctx.Sink.ErrorHint(res.Pos, constEvalCode(res.Kind), res.Hint, "%s", res.Msg)
	}
	return 0
}
