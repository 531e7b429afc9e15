package analyzer

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// unwrapRef follows a ref type down to its target, for member/index access
// on a `ref Struct` or `ref T[]` value (§4.7 Pass 2 "unwrapping refs").
func unwrapRef(t *typesystem.TypeInfo) *typesystem.TypeInfo {
	if t.Kind == typesystem.KindRef {
		return t.Elem
	}
	return t
}

// namespaceEntry returns the resolved symbols.Entry for ident if it names a
// namespace import currently in scope.
func namespaceEntry(ident *ast.Identifier, table *symbols.Table) (*symbols.Entry, bool) {
	entry, found := table.Resolve(ident.Value)
	if !found || entry.Kind != symbols.KindNamespaceImport {
		return nil, false
	}
	return entry, true
}

func inferMember(ctx *Context, e *ast.MemberExpression, table *symbols.Table) *typesystem.TypeInfo {
	if objID, ok := e.Object.(*ast.Identifier); ok {
		if nsEntry, isNS := namespaceEntry(objID, table); isNS {
			objID.Symbol = nsEntry
			return resolveNamespaceMember(ctx, nsEntry, e.Property)
		}
	}

	objType := unwrapRef(inferExpr(ctx, e.Object, table))

	if e.Property.Value == "length" {
		lengthTrait, _ := ctx.Traits.Trait("Length")
		ctx.Traits.EnsureIndexImpls(ctx.Universe, ctx.Module.TypeCtx, objType)
		if impl := ctx.Traits.FindImpl(lengthTrait, objType, nil); impl != nil {
			return impl.AssocTypeBinds["Output"]
		}
	}

	if objType.Kind != typesystem.KindObject {
		ctx.Sink.Errorf(e.Pos(), diag.TypeCallOnNonObject, "cannot access property %q on non-object type %s", e.Property.Value, objType)
		return ctx.Universe.Unknown
	}
	for i, f := range objType.Fields {
		if f.Name == e.Property.Value {
			e.PropertyIndex = i
			return f.Type
		}
	}
	ctx.Sink.Errorf(e.Pos(), diag.TypeUnknownProperty, "type %s has no property %q", objType, e.Property.Value)
	return ctx.Universe.Unknown
}

func resolveNamespaceMember(ctx *Context, nsEntry *symbols.Entry, prop *ast.Identifier) *typesystem.TypeInfo {
	target, ok := nsEntry.Module.(*modules.Module)
	if !ok || target == nil {
		ctx.Sink.Errorf(prop.Pos(), diag.TypeUnresolvedNamespace, "namespace has no backing module")
		return ctx.Universe.Unknown
	}
	exported, ok := target.Exported[prop.Value]
	if !ok {
		ctx.Sink.Errorf(prop.Pos(), diag.TypeUnresolvedNamespace, "module %q does not export %q", target.RelativePath, prop.Value)
		return ctx.Universe.Unknown
	}
	prop.Symbol = exported
	return exported.Type
}

func inferMemberAssign(ctx *Context, e *ast.MemberAssignExpression, table *symbols.Table) *typesystem.TypeInfo {
	objType := unwrapRef(inferExpr(ctx, e.Object, table))
	if objType.Kind != typesystem.KindObject {
		ctx.Sink.Errorf(e.Pos(), diag.TypeCallOnNonObject, "cannot assign property %q on non-object type %s", e.Property.Value, objType)
		inferExpr(ctx, e.Value, table)
		return ctx.Universe.Unknown
	}
	var fieldType *typesystem.TypeInfo
	for i, f := range objType.Fields {
		if f.Name == e.Property.Value {
			e.PropertyIndex = i
			fieldType = f.Type
			break
		}
	}
	if fieldType == nil {
		ctx.Sink.Errorf(e.Pos(), diag.TypeUnknownProperty, "type %s has no property %q", objType, e.Property.Value)
		inferExpr(ctx, e.Value, table)
		return ctx.Universe.Unknown
	}
	valueType := inferContextual(ctx, e.Value, table, fieldType)
	if !assignableTo(fieldType, valueType) {
		ctx.Sink.Errorf(e.Value.Pos(), diag.TypeMismatchAssign, "cannot assign %s to property %q of type %s", valueType, e.Property.Value, fieldType)
	}
	return fieldType
}

func inferIndex(ctx *Context, e *ast.IndexExpression, table *symbols.Table) *typesystem.TypeInfo {
	left := unwrapRef(inferExpr(ctx, e.Left, table))
	inferExpr(ctx, e.Index, table)
	ctx.Traits.EnsureIndexImpls(ctx.Universe, ctx.Module.TypeCtx, left)
	indexTrait, _ := ctx.Traits.Trait("Index")
	impl := ctx.Traits.FindImpl(indexTrait, left, map[string]*typesystem.TypeInfo{"Idx": ctx.Universe.Int})
	if impl == nil {
		ctx.Sink.Errorf(e.Pos(), diag.TypeIndexUnsupported, "type %s does not support indexing", left)
		return ctx.Universe.Unknown
	}
	e.Impl = impl
	return impl.AssocTypeBinds["Output"]
}

func inferIndexAssign(ctx *Context, e *ast.IndexAssignExpression, table *symbols.Table) *typesystem.TypeInfo {
	left := unwrapRef(inferExpr(ctx, e.Left, table))
	inferExpr(ctx, e.Index, table)
	ctx.Traits.EnsureIndexImpls(ctx.Universe, ctx.Module.TypeCtx, left)
	refIndexTrait, _ := ctx.Traits.Trait("RefIndex")
	impl := ctx.Traits.FindImpl(refIndexTrait, left, map[string]*typesystem.TypeInfo{"Idx": ctx.Universe.Int})
	if impl == nil {
		ctx.Sink.Errorf(e.Pos(), diag.TypeIndexUnsupported, "type %s does not support index assignment", left)
		inferExpr(ctx, e.Value, table)
		return ctx.Universe.Unknown
	}
	e.Impl = impl
	output := impl.AssocTypeBinds["Output"]
	valueType := inferContextual(ctx, e.Value, table, output)
	if !assignableTo(output, valueType) {
		ctx.Sink.Errorf(e.Value.Pos(), diag.TypeMismatchAssign, "cannot assign %s into %s element", valueType, output)
	}
	return output
}

func inferAssign(ctx *Context, e *ast.AssignExpression, table *symbols.Table) *typesystem.TypeInfo {
	targetType := inferIdentifier(ctx, e.Target, table)
	valueType := inferContextual(ctx, e.Value, table, targetType)
	if !assignableTo(targetType, valueType) {
		ctx.Sink.Errorf(e.Value.Pos(), diag.TypeMismatchAssign, "cannot assign %s to %q of type %s", valueType, e.Target.Value, targetType)
	}
	return targetType
}

// inferContextual infers expr's type the way Pass 2 does for anything that
// might be an object literal needing the struct-default contextual-typing
// treatment; everything else behaves exactly like inferExpr.
func inferContextual(ctx *Context, expr ast.Expression, table *symbols.Table, expected *typesystem.TypeInfo) *typesystem.TypeInfo {
	if lit, ok := expr.(*ast.ObjectLiteral); ok {
		t := inferObjectLiteral(ctx, lit, table, expected)
		lit.SetExprType(t)
		return t
	}
	return inferExpr(ctx, expr, table)
}

// inferObjectLiteral implements §4.7 Pass 2's contextual typing: when
// expected names a struct, each literal field is checked against its
// declared field type, missing fields are filled from the struct's
// defaults, and FieldOrder is built in the struct's declared order so
// codegen never re-derives it. With no expected struct, the literal gets an
// anonymous structural type instead.
func inferObjectLiteral(ctx *Context, lit *ast.ObjectLiteral, table *symbols.Table, expected *typesystem.TypeInfo) *typesystem.TypeInfo {
	if expected == nil || expected.Kind != typesystem.KindObject {
		fields := make([]typesystem.Field, len(lit.Fields))
		for i, f := range lit.Fields {
			fields[i] = typesystem.Field{Name: f.Key.Value, Type: inferExpr(ctx, f.Value, table)}
		}
		return ctx.Module.TypeCtx.AnonymousObject(fields)
	}

	provided := make(map[string]ast.Expression, len(lit.Fields))
	for _, f := range lit.Fields {
		provided[f.Key.Value] = f.Value
	}

	lit.FieldOrder = make([]ast.Expression, len(expected.Fields))
	for i, field := range expected.Fields {
		if valueExpr, ok := provided[field.Name]; ok {
			vt := inferContextual(ctx, valueExpr, table, field.Type)
			if !assignableTo(field.Type, vt) {
				ctx.Sink.Errorf(valueExpr.Pos(), diag.TypeMismatchDecl, "field %q expects %s, found %s", field.Name, field.Type, vt)
			}
			lit.FieldOrder[i] = valueExpr
			delete(provided, field.Name)
			continue
		}
		decl, _ := expected.StructDecl.(*ast.StructDeclaration)
		if decl != nil && i < len(decl.Fields) && decl.Fields[i].Default != nil {
			lit.FieldOrder[i] = decl.Fields[i].Default
			continue
		}
		ctx.Sink.Errorf(lit.Pos(), diag.TypeMissingField, "struct %q is missing required field %q", expected.StructName, field.Name)
	}
	for name, expr := range provided {
		ctx.Sink.Errorf(expr.Pos(), diag.TypeUnknownProperty, "struct %q has no field %q", expected.StructName, name)
	}
	return expected
}

func inferArrayLiteral(ctx *Context, e *ast.ArrayLiteral, table *symbols.Table) *typesystem.TypeInfo {
	var elem *typesystem.TypeInfo
	for _, el := range e.Elements {
		t := inferExpr(ctx, el, table)
		if elem == nil {
			elem = t
		}
	}
	if elem == nil {
		elem = ctx.Universe.Unknown
	}
	return ctx.Module.TypeCtx.Array(elem, true, int64(len(e.Elements)))
}
