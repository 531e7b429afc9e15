// Package codegen defines the boundary between the front/middle-end this
// repository implements and the LLVM IR backend it hands off to, which is
// out of scope per §1. Nothing here emits code; it only describes the
// contract a real backend consumes.
package codegen

import (
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/typesystem"
)

// Unit is everything a code generator needs for one compile: every loaded
// module with its fully-typed AST, and every function specialization
// discovered while analyzing them.
type Unit struct {
	Modules        []*modules.Module
	Specializations []*typesystem.Specialization
}

// Backend lowers a typed Unit to whatever target representation it
// produces (LLVM IR textual/bitcode, an object file, etc.); this
// repository ships no implementation of it.
type Backend interface {
	Emit(unit Unit) error
}

// Collect walks every function type interned in each module's TypeContext
// and gathers its specializations, in module load order, producing the
// Unit a Backend consumes.
func Collect(loaded []*modules.Module) Unit {
	unit := Unit{Modules: loaded}
	for _, mod := range loaded {
		for _, fnType := range mod.TypeCtx.Functions() {
			unit.Specializations = append(unit.Specializations, typesystem.GetAllFor(fnType)...)
		}
	}
	return unit
}
