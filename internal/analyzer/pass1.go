package analyzer

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// runPass1 collects every top-level function, trait, and impl signature
// before any body is type-checked (§4.7 Pass 1): resolves namespaced
// parameter/return types, interns a function type per declaration, and
// eagerly specializes any function whose signature is already fully
// concrete so its body never waits on a call site to be analyzed.
func runPass1(ctx *Context) {
	scope := moduleScope(ctx)

	for _, stmt := range topLevelStatements(ctx.Module.AST) {
		switch d := stmt.(type) {
		case *ast.FunctionDeclaration:
			collectFunctionSignature(ctx, d, scope)
		case *ast.TraitDeclaration:
			collectTraitDeclaration(ctx, d)
		case *ast.ImplDeclaration:
			collectImplDeclaration(ctx, d, scope)
		}
	}

	// Exported consts were defined by Pass 0; register them alongside
	// exported functions so namespaced references can reach them.
	for _, stmt := range ctx.Module.AST.Statements {
		exp, ok := stmt.(*ast.ExportStatement)
		if !ok {
			continue
		}
		if v, ok := exp.Decl.(*ast.VarDeclaration); ok && v.Kind == ast.VarKindConst {
			if entry, found := scope.ResolveLocal(v.Name.Value); found {
				ctx.Module.Exported[v.Name.Value] = entry
			}
		}
	}
}

func paramTypes(ctx *Context, params []*ast.Parameter, scope *symbols.Table) []*typesystem.TypeInfo {
	out := make([]*typesystem.TypeInfo, len(params))
	for i, p := range params {
		out[i] = resolveTypeExpr(ctx, p.Declared, scope)
	}
	return out
}

func collectFunctionSignature(ctx *Context, d *ast.FunctionDeclaration, scope *symbols.Table) {
	if _, exists := scope.ResolveLocal(d.Name.Value); exists {
		ctx.Sink.Errorf(d.Pos(), diag.TypeDuplicateDeclaration, "function %q is already declared in this module", d.Name.Value)
		return
	}

	params := paramTypes(ctx, d.Params, scope)
	ret := resolveTypeExpr(ctx, d.ReturnType, scope)
	fnType := ctx.Module.TypeCtx.Function(d.Name.Value, params, ret, false)
	fnType.FuncBody = d

	entry := &symbols.Entry{Name: d.Name.Value, Type: fnType, Kind: symbols.KindFunction, DeclaringNode: d}
	d.Name.Symbol = entry
	scope.Define(entry)
	if d.IsExported {
		ctx.Module.Exported[d.Name.Value] = entry
	}

	if d.IsExternal {
		fnType.IsFullyTyped = true
		typesystem.AddByTypes(fnType, d.Name.Value, d.Name.Value, params)
		return
	}
	eagerlySpecializeIfConcrete(ctx, fnType, d, params, ret)
}

// eagerlySpecializeIfConcrete implements §4.7 Pass 1's "fully typed"
// shortcut: a function every one of whose parameters and return type is
// already known doesn't need a call site to discover its one and only
// specialization.
func eagerlySpecializeIfConcrete(ctx *Context, fnType *typesystem.TypeInfo, d *ast.FunctionDeclaration, params []*typesystem.TypeInfo, ret *typesystem.TypeInfo) {
	for _, p := range params {
		if p == nil || p.Kind == typesystem.KindUnknown {
			return
		}
	}
	if ret == nil || ret.Kind == typesystem.KindUnknown {
		return
	}
	fnType.IsFullyTyped = true
	spec := typesystem.AddByTypes(fnType, d.Name.Value, d.Name.Value, params)
	if spec.Body == nil {
		spec.Body = d
		spec.ReturnType = ret
		spec.HasReturnType = true
		ctx.specializationCount++
		scheduleBody(ctx, fnType, spec, d)
	}
}

func collectTraitDeclaration(ctx *Context, d *ast.TraitDeclaration) {
	if _, ok := ctx.Traits.Trait(d.Name.Value); ok {
		return
	}
	names := make([]string, len(d.Methods))
	for i, m := range d.Methods {
		names[i] = m.Name.Value
	}
	ctx.Traits.DeclareTrait(&typesystem.Trait{Name: d.Name.Value, MethodNames: names})
}

// collectImplDeclaration registers an impl block's methods both as callable
// mangled functions (so a.method(...) lowers like any other call) and, for
// a trait impl, as a TraitImpl so operator dispatch and assoc-type lookup
// can find it.
func collectImplDeclaration(ctx *Context, d *ast.ImplDeclaration, scope *symbols.Table) {
	target := resolveTypeExpr(ctx, d.Target, scope)
	targetName := target.String()

	var methods []typesystem.Method
	for _, m := range d.Methods {
		key := methodKey(targetName, m.Name.Value)
		params := paramTypes(ctx, m.Params, scope)
		ret := resolveTypeExpr(ctx, m.ReturnType, scope)
		mangled := targetName + "__" + m.Name.Value
		fnType := ctx.Module.TypeCtx.Function(mangled, params, ret, false)
		fnType.FuncBody = m
		ctx.methods[key] = fnType
		eagerlySpecializeIfConcrete(ctx, fnType, m, params, ret)
		methods = append(methods, typesystem.Method{Name: m.Name.Value, Kind: typesystem.MethodScript, Symbol: mangled, Body: m})
	}

	if d.Trait == nil {
		return
	}
	trait, ok := ctx.Traits.Trait(d.Trait.Name)
	if !ok {
		ctx.Sink.Errorf(d.Trait.Pos(), diag.TypeTraitNotImplemented, "unknown trait %q", d.Trait.Name)
		return
	}
	assoc := make(map[string]*typesystem.TypeInfo)
	for _, name := range trait.AssocTypes {
		for _, m := range d.Methods {
			if m.ReturnType != nil {
				assoc[name] = resolveTypeExpr(ctx, m.ReturnType, scope)
				break
			}
		}
	}
	ctx.Traits.AddImpl(&typesystem.TraitImpl{
		Trait: trait, Self: target, AssocTypeBinds: assoc, Methods: methods,
	})
}

// scheduleBody records a specialization whose parameters can be installed
// into a fresh child scope right away, so the next Pass 2 can run inference
// over its body without re-deriving the parameter list.
func scheduleBody(ctx *Context, fnType *typesystem.TypeInfo, spec *typesystem.Specialization, d *ast.FunctionDeclaration) {
	child := symbols.NewTable(moduleScope(ctx))
	for i, p := range d.Params {
		entry := &symbols.Entry{
			Name: p.Name.Value, Type: spec.ParamTypes[i], Kind: symbols.KindParameter,
			DeclaringNode: p, ParamIndex: i, HasParamIndex: true,
		}
		p.Name.Symbol = entry
		child.Define(entry)
	}
	ctx.pendingBodies = append(ctx.pendingBodies, pendingBody{spec: spec, scope: child})
}
