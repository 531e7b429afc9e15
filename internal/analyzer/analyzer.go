// Package analyzer implements JSasta's multi-pass, fixed-point type
// inference driver (§4.7): it turns a parsed module into a fully-typed,
// fully-specialized AST, synthesizing monomorphic specializations of
// polymorphic functions as call sites are discovered.
package analyzer

import (
	"fmt"

	"github.com/nanov/jsasta/internal/config"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// Context carries everything one module's inference run shares across
// passes: the module being analyzed, the registry it came from (for
// namespace/cross-module resolution), the shared trait registry, and the
// specialization counter the fixed-point loop watches.
type Context struct {
	Module   *modules.Module
	Registry *modules.Registry
	Sink     *diag.Sink
	Universe *typesystem.TypeUniverse
	Traits   *typesystem.TraitRegistry

	specializationCount int
	pendingBodies       []pendingBody // specializations awaiting body analysis by the next Pass 2

	// methods maps "StructName.methodName" to the mangled function type
	// for an inherent or trait-impl method, since JSasta has no vtable:
	// method calls resolve to a plain mangled function the same way a
	// free function call does (§4.3). The originating declaration rides
	// along on the type itself (TypeInfo.FuncBody), so resolveCallTarget
	// doesn't need a second map to get from a method's type back to its AST.
	methods map[string]*typesystem.TypeInfo
}

func methodKey(typeName, method string) string { return typeName + "." + method }

// pendingBody is a specialization whose body has been cloned and whose
// parameters have been installed, but which still needs inference run over
// its statements (Pass 3 step 4).
type pendingBody struct {
	spec  *typesystem.Specialization
	scope *symbols.Table
}

// Analyze runs every pass over one module to a fixed point, per §4.7's
// closing "Fixed point" rule. traits is shared across every module loaded
// in one compile, mirroring how the TypeUniverse is shared (Design Notes §9).
func Analyze(mod *modules.Module, reg *modules.Registry, traits *typesystem.TraitRegistry, sink *diag.Sink) {
	ctx := &Context{
		Module:   mod,
		Registry: reg,
		Sink:     sink,
		Universe: reg.Universe,
		Traits:   traits,
		methods:  make(map[string]*typesystem.TypeInfo),
	}

	bindImports(ctx)
	runPass0(ctx)
	runPass1(ctx)

	for iter := 0; iter < config.MaxFixedPointIterations; iter++ {
		before := ctx.specializationCount

		runPass2(ctx)
		runPass3(ctx)
		runPass4(ctx)
		runPass5(ctx)

		if ctx.specializationCount == before {
			return
		}
	}
	sink.Add(diag.Diagnostic{
		Code:     diag.InternalInvariant,
		Severity: diag.Warning,
		Pos:      mod.AST.Pos(),
		Message:  fmt.Sprintf("type inference did not reach a fixed point within %d iterations", config.MaxFixedPointIterations),
	})
}

// moduleScope lazily creates the module's root symbol table.
func moduleScope(ctx *Context) *symbols.Table {
	if ctx.Module.ModuleScope == nil {
		ctx.Module.ModuleScope = symbols.NewTable(nil)
	}
	return ctx.Module.ModuleScope
}
