package analyzer

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/config"
	"github.com/nanov/jsasta/internal/consteval"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// runPass0 sweeps top-level const and struct declarations to a fixed point
// (§4.7 Pass 0): a const may reference another const declared later in the
// file, so the sweep repeats until a full pass makes no progress.
func runPass0(ctx *Context) {
	scope := moduleScope(ctx)
	prog := ctx.Module.AST

	pending := make(map[ast.Statement]bool)
	for _, stmt := range topLevelStatements(prog) {
		switch stmt.(type) {
		case *ast.VarDeclaration, *ast.StructDeclaration:
			pending[stmt] = true
		}
	}

	for iter := 0; iter < config.MaxConstEvalIterations && len(pending) > 0; iter++ {
		progressed := false
		for stmt := range pending {
			var ok bool
			switch d := stmt.(type) {
			case *ast.VarDeclaration:
				ok = collectConst(ctx, d, scope)
			case *ast.StructDeclaration:
				ok = collectStruct(ctx, d, scope)
			}
			if ok {
				delete(pending, stmt)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for stmt := range pending {
		ctx.Sink.Add(diag.Diagnostic{
			Code: diag.UnresolvedConst, Severity: diag.Error, Pos: stmt.Pos(),
			Message: "declaration could not be resolved: unresolved dependency or cycle",
		})
	}
}

// collectConst resolves one top-level const, returning false if it is not
// yet resolvable (waiting on a const declared later in source order).
func collectConst(ctx *Context, d *ast.VarDeclaration, scope *symbols.Table) bool {
	if d.Kind != ast.VarKindConst {
		return true // non-const top-level var/let is Pass 2's concern
	}
	if d.Value == nil {
		ctx.Sink.Errorf(d.Pos(), diag.ConstEvalNotConst, "const %q has no initializer", d.Name.Value)
		return true
	}
	res := consteval.Eval(d.Value, scope, map[string]bool{})
	switch res.Status {
	case consteval.StatusWaiting:
		return false
	case consteval.StatusCycle:
		ctx.Sink.Errorf(res.Pos, diag.UnresolvedConst, "%s", res.Msg)
		return true
	case consteval.StatusError:
		ctx.Sink.ErrorHint(res.Pos, constEvalCode(res.Kind), res.Hint, "%s", res.Msg)
		return true
	}

	d.Name.Symbol = &symbols.Entry{
		Name: d.Name.Value, Type: ctx.Universe.Int, IsConst: true,
		Kind: symbols.KindVariable, DeclaringNode: d,
	}
	scope.Define(d.Name.Symbol.(*symbols.Entry))
	return true
}

// collectStruct interns one struct declaration's type, resolving field
// array sizes and validating default values (allowing int->double
// promotion, per §4.7 Pass 0), then globalizes its methods.
func collectStruct(ctx *Context, d *ast.StructDeclaration, scope *symbols.Table) bool {
	fields := make([]typesystem.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if arr, isArr := f.Declared.(*ast.ArrayTypeExpr); isArr && arr.Size != nil {
			res := consteval.Eval(arr.Size, scope, map[string]bool{})
			if res.Status == consteval.StatusWaiting {
				return false
			}
		}
		ft := resolveTypeExpr(ctx, f.Declared, scope)
		fields = append(fields, typesystem.Field{Name: f.Name.Value, Type: ft})
	}

	structType := ctx.Module.TypeCtx.NamedObject(d.Name.Value, fields, d)

	for i, f := range d.Fields {
		if f.Default == nil {
			continue
		}
		defaultType := inferExpr(ctx, f.Default, scope)
		if !assignableTo(fields[i].Type, defaultType) {
			ctx.Sink.Errorf(f.Default.Pos(), diag.TypeMismatchDecl,
				"field %q of struct %q expects %s, default value has type %s",
				f.Name.Value, d.Name.Value, fields[i].Type, defaultType)
		}
	}

	d.Name.Symbol = &symbols.Entry{
		Name: d.Name.Value, Type: structType, Kind: symbols.KindTypeAlias, DeclaringNode: d,
	}
	scope.Define(d.Name.Symbol.(*symbols.Entry))
	collectStructMethods(ctx, d, structType.String(), scope)
	return true
}

// collectStructMethods globalizes a struct's inline method bodies (§4.2:
// "method bodies, later renamed StructName.methodName") the same way
// collectImplDeclaration globalizes an inherent impl block's methods: each
// becomes one mangled, callable function registered under methodKey, so
// `p.distance()` on a struct-declared method resolves identically to one
// declared via a separate `impl Point { ... }` block.
func collectStructMethods(ctx *Context, d *ast.StructDeclaration, targetName string, scope *symbols.Table) {
	for _, m := range d.Methods {
		key := methodKey(targetName, m.Name.Value)
		params := paramTypes(ctx, m.Params, scope)
		ret := resolveTypeExpr(ctx, m.ReturnType, scope)
		mangled := targetName + "__" + m.Name.Value
		fnType := ctx.Module.TypeCtx.Function(mangled, params, ret, false)
		fnType.FuncBody = m
		ctx.methods[key] = fnType
		eagerlySpecializeIfConcrete(ctx, fnType, m, params, ret)
	}
}
