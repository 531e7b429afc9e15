package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/config"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/lexer"
	"github.com/nanov/jsasta/internal/parser"
	"github.com/nanov/jsasta/internal/typesystem"
)

// Registry is the §3 ModuleRegistry: every loaded module, a shared
// diagnostic sink, and the one TypeUniverse every module's TypeContext
// draws its primitive singletons from.
type Registry struct {
	Universe *typesystem.TypeUniverse
	Sink     *diag.Sink

	modules    []*Module
	byPath     map[string]*Module // absolute path -> module, the registry's primary key
	processing map[string]bool    // cycle-safe DFS guard (§4.3 "Loading")

	// cache is a bounded, in-process memo of (absolute path) -> *Module,
	// supplementing byPath's unbounded map for the common case of a module
	// imported from many dependents within one compile: a cache hit skips
	// the byPath scan and, more importantly, documents the intent that this
	// lookup is a hot path worth bounding memory for on very large builds.
	cache *lru.Cache[string, *Module]
}

// NewRegistry creates an empty registry. The in-process module lookup cache
// holds 256 entries, which comfortably covers any real project's import
// graph while still capping memory on a pathological one.
func NewRegistry(sink *diag.Sink) *Registry {
	cache, _ := lru.New[string, *Module](256)
	return &Registry{
		Universe:   typesystem.NewTypeUniverse(),
		Sink:       sink,
		byPath:     make(map[string]*Module),
		processing: make(map[string]bool),
		cache:      cache,
	}
}

// Modules returns every loaded module, in load order.
func (r *Registry) Modules() []*Module { return r.modules }

// GetModule returns an already-loaded module by absolute path.
func (r *Registry) GetModule(absPath string) (*Module, bool) {
	if m, ok := r.cache.Get(absPath); ok {
		return m, true
	}
	m, ok := r.byPath[absPath]
	if ok {
		r.cache.Add(absPath, m)
	}
	return m, ok
}

// Load resolves entry (a single file, or a doublestar glob naming several
// package-group roots) and loads the transitive import graph reachable
// from it. It is cycle-safe: a module already present (or currently being
// loaded, i.e. a cyclic import) is reused rather than re-parsed.
func (r *Registry) Load(entry string) (*Module, error) {
	if strings.ContainsAny(entry, "*?[") {
		return r.loadGlobGroup(entry)
	}
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, fmt.Errorf("resolving entry path %q: %w", entry, err)
	}
	return r.loadFile(abs)
}

// loadGlobGroup loads every file matched by a doublestar pattern as one
// synthetic package-group module's import set, entering each as its own
// module and returning the first (lexically smallest path) as the entry.
func (r *Registry) loadGlobGroup(pattern string) (*Module, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding entry glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("entry glob %q matched no files", pattern)
	}
	sort.Strings(matches)
	var first *Module
	for _, m := range matches {
		abs, err := filepath.Abs(m)
		if err != nil {
			return nil, fmt.Errorf("resolving matched path %q: %w", m, err)
		}
		mod, err := r.loadFile(abs)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = mod
		}
	}
	return first, nil
}

// loadFile is the DFS entry point: one module per source file.
func (r *Registry) loadFile(absPath string) (*Module, error) {
	if m, ok := r.GetModule(absPath); ok {
		return m, nil
	}
	if r.processing[absPath] {
		// Import cycle: return a placeholder that the caller links against
		// once the outer loadFile call finishes populating it. Registering
		// it in byPath now is what makes the second visit above a cache hit
		// instead of infinite recursion.
		m := NewModule(absPath, relPath(absPath), modulePrefix(absPath), r.Universe)
		r.byPath[absPath] = m
		return m, nil
	}
	r.processing[absPath] = true
	defer delete(r.processing, absPath)

	data, err := os.ReadFile(absPath)
	if err != nil {
		r.Sink.Errorf(posAt(absPath), diag.ImportMissingFile, "cannot read %q: %v", absPath, err)
		return nil, err
	}

	m, ok := r.byPath[absPath]
	if !ok {
		m = NewModule(absPath, relPath(absPath), modulePrefix(absPath), r.Universe)
		r.byPath[absPath] = m
		r.modules = append(r.modules, m)
	}
	r.cache.Add(absPath, m)

	lx := lexer.New(absPath, string(data))
	prog, perrs := parser.Parse(lx, absPath)
	for _, e := range perrs {
		r.Sink.Add(e)
	}
	m.AST = prog

	dir := filepath.Dir(absPath)
	for _, stmt := range importStatements(prog) {
		imp, err := r.resolveImport(stmt, dir)
		if err != nil {
			r.Sink.Errorf(stmt.Pos(), diag.ImportMissingFile, "%v", err)
			continue
		}
		m.Imports = append(m.Imports, imp)
	}

	return m, nil
}

func (r *Registry) resolveImport(stmt *ast.ImportStatement, dir string) (*Import, error) {
	if stmt.IsBuiltin {
		if !isKnownBuiltin(stmt.Path) {
			r.Sink.Errorf(stmt.Pos(), diag.ImportUnknownBuiltin, "unknown builtin namespace \"@%s\"", stmt.Path)
		}
		return &Import{Stmt: stmt, IsBuiltin: true, Builtin: stmt.Path}, nil
	}
	target := filepath.Join(dir, stmt.Path)
	if !config.HasSourceExt(target) {
		target += config.SourceFileExt
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolving import %q: %w", stmt.Path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("import %q: %w", stmt.Path, err)
	}
	mod, err := r.loadFile(abs)
	if err != nil {
		return nil, err
	}
	return &Import{Stmt: stmt, Target: mod}, nil
}

func isKnownBuiltin(name string) bool {
	for _, b := range config.BuiltinNamespaces {
		if b == name {
			return true
		}
	}
	return false
}

func relPath(absPath string) string {
	wd, err := os.Getwd()
	if err != nil {
		return absPath
	}
	rel, err := filepath.Rel(wd, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

// modulePrefix derives the §4.3 module_prefix from a file's base name:
// math.jsa -> math, so an exported add becomes math__add.
func modulePrefix(absPath string) string {
	base := filepath.Base(absPath)
	return config.TrimSourceExt(base)
}
