// Package symbols implements the lexical scope chain: a linked frame of
// named entries per scope, walked outward on lookup.
package symbols

import "github.com/nanov/jsasta/internal/typesystem"

// Kind tags what an Entry names.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindNamespaceImport
	KindTypeAlias
)

// Entry is one binding in a SymbolTable: a name, its resolved type, and
// enough back-reference to answer "where did this come from" during
// inference (declaring AST node, parameter ordinal, imported module).
//
// DeclaringNode and Module are carried as untyped back-pointers
// (*ast.Node-ish, *modules.Module) so this package stays import-cycle-free
// with respect to ast (ast holds Identifier.Symbol as an interface{} that
// is, at runtime, a *Entry) and modules (modules imports symbols for its
// per-scope tables, not the reverse).
type Entry struct {
	Name          string
	Type          *typesystem.TypeInfo
	IsConst       bool
	Kind          Kind
	DeclaringNode interface{}
	ParamIndex    int  // valid when Kind == KindParameter
	HasParamIndex bool
	Module        interface{} // *modules.Module, valid when Kind == KindNamespaceImport
}

// Table is one lexical scope: a flat map of this scope's own entries plus
// a pointer to the enclosing scope. Program, block, for-init, and
// function-body nodes each own one Table (§3 "SymbolTable").
type Table struct {
	entries map[string]*Entry
	parent  *Table
}

// NewTable creates a scope chained to parent (nil for a module's root scope).
func NewTable(parent *Table) *Table {
	return &Table{entries: make(map[string]*Entry), parent: parent}
}

// Define adds (or replaces) an entry in this scope only, never a parent's.
func (t *Table) Define(e *Entry) { t.entries[e.Name] = e }

// Resolve walks this scope and its parents outward, returning the nearest
// enclosing definition of name.
func (t *Table) Resolve(name string) (*Entry, bool) {
	for s := t; s != nil; s = s.parent {
		if e, ok := s.entries[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// ResolveLocal looks up name in this scope only, ignoring parents.
func (t *Table) ResolveLocal(name string) (*Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Parent returns the enclosing scope, or nil at the module root.
func (t *Table) Parent() *Table { return t.parent }

// Child creates a new scope nested inside t, for a block/for/function body.
func (t *Table) Child() *Table { return NewTable(t) }
