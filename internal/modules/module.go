// Package modules implements the module registry and import resolver
// (§4.3): it discovers source files reachable from an entry point, parses
// each exactly once, links exported symbols, and gives every module its
// own TypeContext so that cross-module type comparisons go through the
// namespace resolution protocol rather than raw structural equality.
package modules

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/typesystem"
)

// Module is one loaded, parsed source file (or package-group directory)
// with its own type context and exported-symbol table.
type Module struct {
	AbsolutePath string
	RelativePath string
	// Prefix is the module_prefix used to mangle this module's exported
	// function names for cross-module calls (§4.3 "Mangling").
	Prefix string

	AST         *ast.Program
	TypeCtx     *typesystem.TypeContext
	ModuleScope *symbols.Table

	// Exported maps an exported name to its symbol entry, populated once
	// Pass 1 (collect function signatures) runs over this module.
	Exported map[string]*symbols.Entry

	// Imports records every import statement this module contains, in
	// source order, resolved to either a loaded Module (IsBuiltin == false)
	// or a fixed builtin namespace name (IsBuiltin == true).
	Imports []*Import

	IsBuiltin bool // true for the four @-namespaces; has no backing file
}

// Import is one resolved `import ... from ...` statement.
type Import struct {
	Stmt      *ast.ImportStatement
	Target    *Module // nil when Stmt.IsBuiltin
	IsBuiltin bool
	Builtin   string // @io, @test, @debug, @math
}

// NewModule constructs an empty module ready for Pass 0/1 to populate.
func NewModule(absPath, relPath, prefix string, universe *typesystem.TypeUniverse) *Module {
	return &Module{
		AbsolutePath: absPath,
		RelativePath: relPath,
		Prefix:       prefix,
		TypeCtx:      typesystem.NewTypeContext(universe),
		ModuleScope:  symbols.NewTable(nil),
		Exported:     make(map[string]*symbols.Entry),
	}
}

// MangledName returns the cross-module symbol name for one of this
// module's exported functions (§4.3 "Mangling", P8).
func (m *Module) MangledName(name string) string {
	return typesystem.MangleCrossModule(m.Prefix, name)
}
