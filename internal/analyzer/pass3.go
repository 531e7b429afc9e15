package analyzer

import (
	"strings"

	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/token"
	"github.com/nanov/jsasta/internal/typesystem"
)

// runPass3 is a placeholder hook in the driver's pass order: call-site
// analysis actually happens inline as inferCall/inferMethodCall are reached
// during Pass 2/Pass 5's walk, since a call can appear anywhere an
// expression can. Keeping an explicit (empty) Pass 3 keeps the five-pass
// structure named the way §4.7 describes it, in case a later compiler
// revision needs a dedicated post-walk step here.
func runPass3(ctx *Context) {}

// runPass4 resolves any struct default-value expressions whose type was
// still unknown when Pass 0 first checked them (a default referencing a
// function whose signature Pass 1 had not yet collected). The common case
// has nothing left to do here.
func runPass4(ctx *Context) {
	for _, stmt := range topLevelStatements(ctx.Module.AST) {
		d, ok := stmt.(*ast.StructDeclaration)
		if !ok {
			continue
		}
		for _, f := range d.Fields {
			if f.Default != nil && f.Default.ExprType() == nil {
				inferExpr(ctx, f.Default, moduleScope(ctx))
			}
		}
	}
}

// runPass5 re-walks every already-analyzed specialization body once more
// now that this round's new specializations have resolved return types,
// fixing up call expressions (and anything downstream of them) that first
// saw Unknown because their callee's specialization wasn't ready yet.
func runPass5(ctx *Context) {
	for _, fnType := range ctx.Module.TypeCtx.Functions() {
		for _, spec := range typesystem.GetAllFor(fnType) {
			fn, ok := spec.Body.(*ast.FunctionDeclaration)
			if !ok || fn.Body == nil {
				continue
			}
			scope := specScope(ctx, fn, spec)
			inferStatements(ctx, fn.Body.Statements, scope)
		}
	}
}

func specScope(ctx *Context, fn *ast.FunctionDeclaration, spec *typesystem.Specialization) *symbols.Table {
	scope := symbols.NewTable(moduleScope(ctx))
	for i, p := range fn.Params {
		if i >= len(spec.ParamTypes) {
			break
		}
		entry := &symbols.Entry{
			Name: p.Name.Value, Type: spec.ParamTypes[i], Kind: symbols.KindParameter,
			DeclaringNode: p, ParamIndex: i, HasParamIndex: true,
		}
		p.Name.Symbol = entry
		scope.Define(entry)
	}
	return scope
}

func inferCall(ctx *Context, e *ast.CallExpression, table *symbols.Table) *typesystem.TypeInfo {
	ident, ok := e.Function.(*ast.Identifier)
	if !ok {
		// The parser only ever emits a plain CallExpression for a bare
		// identifier callee; anything else reaching here is some future
		// expression-as-callee form this driver doesn't specialize yet.
		inferExpr(ctx, e.Function, table)
		for _, a := range e.Arguments {
			inferExpr(ctx, a, table)
		}
		return ctx.Universe.Unknown
	}

	entry, found := table.Resolve(ident.Value)
	if !found || entry.Kind != symbols.KindFunction {
		ctx.Sink.Errorf(ident.Pos(), diag.TypeUndefinedFunction, "undefined function %q", ident.Value)
		for _, a := range e.Arguments {
			inferExpr(ctx, a, table)
		}
		return ctx.Universe.Unknown
	}
	ident.Symbol = entry

	argTypes := make([]*typesystem.TypeInfo, len(e.Arguments))
	for i, a := range e.Arguments {
		argTypes[i] = inferExpr(ctx, a, table)
	}

	spec, ret := resolveCallTarget(ctx, e.Pos(), entry.Type, argTypes)
	e.Specialization = spec
	return ret
}

func inferMethodCall(ctx *Context, e *ast.MethodCallExpression, table *symbols.Table) *typesystem.TypeInfo {
	if recvID, isIdent := e.Receiver.(*ast.Identifier); isIdent {
		if nsEntry, isNS := namespaceEntry(recvID, table); isNS {
			recvID.Symbol = nsEntry
			return inferNamespacedCall(ctx, e, nsEntry, table)
		}
	}

	receiverType := unwrapRef(inferExpr(ctx, e.Receiver, table))

	argTypes := make([]*typesystem.TypeInfo, len(e.Arguments))
	for i, a := range e.Arguments {
		argTypes[i] = inferExpr(ctx, a, table)
	}

	key := methodKey(receiverType.String(), e.Method.Value)
	fnType, ok := ctx.methods[key]
	if !ok {
		ctx.Sink.Errorf(e.Method.Pos(), diag.TypeMethodNotFound, "type %s has no method %q", receiverType, e.Method.Value)
		return ctx.Universe.Unknown
	}
	spec, ret := resolveCallTarget(ctx, e.Pos(), fnType, argTypes)
	e.Specialization = spec
	return ret
}

// resolveCallTarget implements §4.8's call-site protocol: a fully-typed
// function always resolves to its single Pass-1 specialization (argument
// types are checked for assignability, not used as the specialization
// key); a function with one or more undeclared parameter types is keyed on
// this call's exact argument types, creating and scheduling a new
// specialization the first time a given argument-type tuple is seen.
func resolveCallTarget(ctx *Context, pos token.Position, fnType *typesystem.TypeInfo, argTypes []*typesystem.TypeInfo) (*typesystem.Specialization, *typesystem.TypeInfo) {
	if fnType.Kind != typesystem.KindFunction {
		ctx.Sink.Errorf(pos, diag.TypeCallOnNonObject, "value is not callable")
		return nil, ctx.Universe.Unknown
	}
	decl, _ := fnType.FuncBody.(*ast.FunctionDeclaration)

	if len(argTypes) != len(fnType.Params) {
		ctx.Sink.Errorf(pos, diag.TypeArgMismatch, "expected %d argument(s), found %d", len(fnType.Params), len(argTypes))
	}

	if fnType.IsFullyTyped {
		spec := typesystem.FindByTypes(fnType, fnType.Params)
		for i, declared := range fnType.Params {
			if i >= len(argTypes) {
				break
			}
			if !assignableTo(declared, argTypes[i]) {
				ctx.Sink.Errorf(pos, diag.TypeArgMismatch, "argument %d: expected %s, found %s", i+1, declared, argTypes[i])
			}
		}
		if spec == nil {
			return nil, ctx.Universe.Unknown
		}
		return spec, returnTypeOrUnknown(ctx, spec)
	}

	callParams := make([]*typesystem.TypeInfo, len(fnType.Params))
	copy(callParams, fnType.Params)
	for i := range callParams {
		if i < len(argTypes) && (callParams[i] == nil || callParams[i].Kind == typesystem.KindUnknown) {
			callParams[i] = argTypes[i]
		}
	}

	if existing := typesystem.FindByTypes(fnType, callParams); existing != nil {
		return existing, returnTypeOrUnknown(ctx, existing)
	}
	if decl == nil {
		return nil, ctx.Universe.Unknown
	}

	mangled := mangleSpecialization(decl.Name.Value, callParams)
	spec := typesystem.AddByTypes(fnType, decl.Name.Value, mangled, callParams)
	ctx.specializationCount++
	clone := cloneFunctionBody(decl)
	spec.Body = clone
	scheduleBody(ctx, fnType, spec, clone)
	return spec, ctx.Universe.Unknown
}

func returnTypeOrUnknown(ctx *Context, spec *typesystem.Specialization) *typesystem.TypeInfo {
	if spec.HasReturnType && spec.ReturnType != nil {
		return spec.ReturnType
	}
	return ctx.Universe.Unknown
}

// inferNamespacedCall handles `ns.fn(args)`, which the parser always shapes
// as a MethodCallExpression since it cannot tell a namespaced function call
// from a method call without type information.
func inferNamespacedCall(ctx *Context, e *ast.MethodCallExpression, nsEntry *symbols.Entry, table *symbols.Table) *typesystem.TypeInfo {
	argTypes := make([]*typesystem.TypeInfo, len(e.Arguments))
	for i, a := range e.Arguments {
		argTypes[i] = inferExpr(ctx, a, table)
	}

	target, ok := nsEntry.Module.(*modules.Module)
	if !ok || target == nil {
		ctx.Sink.Errorf(e.Method.Pos(), diag.TypeUnresolvedNamespace, "namespace has no backing module")
		return ctx.Universe.Unknown
	}
	exported, ok := target.Exported[e.Method.Value]
	if !ok || exported.Kind != symbols.KindFunction {
		ctx.Sink.Errorf(e.Method.Pos(), diag.TypeUndefinedFunction, "module %q does not export function %q", target.RelativePath, e.Method.Value)
		return ctx.Universe.Unknown
	}
	e.Method.Symbol = exported
	e.IsStatic = true

	spec, ret := resolveCallTarget(ctx, e.Pos(), exported.Type, argTypes)
	e.Specialization = spec
	return ret
}

func mangleSpecialization(name string, params []*typesystem.TypeInfo) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range params {
		b.WriteByte('_')
		b.WriteString(p.MangleSuffix())
	}
	return b.String()
}
