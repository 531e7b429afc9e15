package analyzer

import (
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/symbols"
)

// bindImports runs before any inference pass and turns each of the module's
// already-resolved imports (internal/modules.Registry did the file-loading
// and cycle detection) into a namespace-import symbol table entry, so
// `import m from "math.jsa"` gives `m.add(1, 2)` something to resolve
// against (§4.3's namespace access protocol). Without this step an import
// statement has no effect at all on the module's scope.
func bindImports(ctx *Context) {
	scope := moduleScope(ctx)
	for _, imp := range ctx.Module.Imports {
		bindNamespaceImport(ctx, scope, imp)
	}
}

// bindNamespaceImport binds the import's single identifier as a
// symbols.KindNamespaceImport entry, resolved member-by-member as `id.x` is
// encountered (inference_access.go's resolveNamespaceMember, pass3.go's
// inferNamespacedCall). A builtin namespace (no backing *modules.Module) is
// still bound so the identifier resolves; member access on it reports an
// unresolved-namespace diagnostic until the builtin surface is implemented.
func bindNamespaceImport(ctx *Context, scope *symbols.Table, imp *modules.Import) {
	name := imp.Stmt.Name
	entry := &symbols.Entry{Name: name.Value, Kind: symbols.KindNamespaceImport, DeclaringNode: imp.Stmt}
	if imp.Target != nil {
		entry.Module = imp.Target
	}
	name.Symbol = entry
	scope.Define(entry)
}
