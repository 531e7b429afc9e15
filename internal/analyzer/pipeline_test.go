package analyzer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/pipeline"
	"github.com/nanov/jsasta/internal/typesystem"
)

func compile(t *testing.T, source string) (*modules.Module, *diag.Sink) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.jsa")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	sink := diag.NewSink()
	reg := modules.NewRegistry(sink)
	ctx := &pipeline.PipelineContext{EntryPath: path, Registry: reg, Sink: sink}
	pipeline.Standard().Run(ctx)
	mod, ok := reg.GetModule(path)
	if !ok {
		t.Fatalf("entry module was not registered after running the pipeline")
	}
	return mod, sink
}

// Scenario 1: a function with undeclared parameter types gets one
// specialization per distinct call-site argument-type tuple.
func TestAnalyze_PrimitiveSpecialization(t *testing.T) {
	mod, sink := compile(t, `
function add(a, b) { return a + b; }
function useInt(): int { return add(1, 2); }
function useFloat(): double { return add(1.5, 2.5); }
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	fnType, ok := mod.TypeCtx.LookupNamed("add")
	if !ok {
		t.Fatalf("add was not registered in the module's type context")
	}
	specs := typesystem.GetAllFor(fnType)
	if len(specs) != 2 {
		t.Fatalf("expected 2 specializations of add (int, double), got %d", len(specs))
	}
}

// Scenario 2: an object literal contextually typed against a struct fills
// in fields the literal omitted from their declared defaults.
func TestAnalyze_StructDefaultsContextualTyping(t *testing.T) {
	mod, sink := compile(t, `
struct Point { x: int, y: int = 0 }
function originX(): int {
	let p: Point = { x: 5 };
	return p.y;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	pointType, ok := mod.TypeCtx.LookupNamed("Point")
	if !ok {
		t.Fatalf("Point was not registered in the module's type context")
	}
	if len(pointType.Fields) != 2 {
		t.Fatalf("expected Point to carry 2 fields, got %d", len(pointType.Fields))
	}
}

// Scenario 4: indexing an array resolves through the auto-synthesized
// Index trait impl rather than failing as an unsupported operation.
func TestAnalyze_TraitGatedIndexing(t *testing.T) {
	_, sink := compile(t, `
function first(): int {
	let xs: int[] = [1, 2, 3];
	return xs[0];
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors indexing an array: %v", sink.All())
	}
}

// A const-evaluated array size that comes out <= 0 is reported under its
// own code (C501), not the generic const-eval mismatch code.
func TestAnalyze_ConstEvalNonPositiveArraySize(t *testing.T) {
	_, sink := compile(t, `
struct Grid { cells: int[3 - 5] }
`)
	if !sink.HasErrors() {
		t.Fatalf("expected an error for a non-positive array size")
	}
	assertHasCode(t, sink, diag.ConstEvalNonPositive)
}

// A const-evaluated array size dividing by zero is reported under its own
// code (C502), distinct from C501's non-positive case.
func TestAnalyze_ConstEvalDivByZeroArraySize(t *testing.T) {
	_, sink := compile(t, `
struct Grid { cells: int[4 / 0] }
`)
	if !sink.HasErrors() {
		t.Fatalf("expected an error for division by zero in an array size")
	}
	assertHasCode(t, sink, diag.ConstEvalDivByZero)
}

func assertHasCode(t *testing.T, sink *diag.Sink, code string) {
	t.Helper()
	for _, d := range sink.All() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected a diagnostic with code %s, got: %v", code, sink.All())
}

// Indexing a type with no Index impl is a type error, not a silent Unknown.
func TestAnalyze_IndexUnsupported_IsError(t *testing.T) {
	_, sink := compile(t, `
function bad(): int {
	let n: int = 5;
	return n[0];
}
`)
	if !sink.HasErrors() {
		t.Fatalf("expected an error indexing a non-indexable type")
	}
}

// Struct declarations carry inline method bodies, globalized exactly like
// an `impl Target { ... }` block's methods (§4.2).
func TestAnalyze_StructInlineMethod(t *testing.T) {
	mod, sink := compile(t, `
struct Point {
	x: int,
	y: int

	function sum(a: int, b: int): int {
		return a + b;
	}
}
function total(): int {
	let p: Point = { x: 3, y: 4 };
	return p.sum(p.x, p.y);
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors calling a struct inline method: %v", sink.All())
	}
	if _, ok := mod.TypeCtx.LookupNamed("Point__sum"); !ok {
		t.Fatalf("expected Point's inline method to be globalized as Point__sum")
	}
}

// Scenario 6: multiple independent errors across a module all surface,
// instead of analysis stopping at the first one.
func TestAnalyze_ErrorAccumulation(t *testing.T) {
	_, sink := compile(t, `
function a(): int { return undefinedFn(1); }
function b(): int { return alsoUndefined(2); }
`)
	errs := sink.All()
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 accumulated errors, got %d: %v", len(errs), errs)
	}
}

// Scenario 5 end-to-end: a namespaced call through an import resolves and
// type-checks across module boundaries.
func TestAnalyze_NamespaceImportCall(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "math.jsa"),
		[]byte(`export function add(a: int, b: int): int { return a + b; }`), 0o644); err != nil {
		t.Fatalf("writing math.jsa: %v", err)
	}
	mainPath := filepath.Join(dir, "main.jsa")
	if err := os.WriteFile(mainPath, []byte(`
import m from "math.jsa";
function run(): int { return m.add(1, 2); }
`), 0o644); err != nil {
		t.Fatalf("writing main.jsa: %v", err)
	}

	sink := diag.NewSink()
	reg := modules.NewRegistry(sink)
	ctx := &pipeline.PipelineContext{EntryPath: mainPath, Registry: reg, Sink: sink}
	pipeline.Standard().Run(ctx)

	if sink.HasErrors() {
		t.Fatalf("unexpected errors resolving a namespaced call: %v", sink.All())
	}
}
