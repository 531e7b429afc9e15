package modules

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/nanov/jsasta/internal/diag"
)

// writeArchive expands a txtar archive (one file per "-- name --" section)
// into dir and returns the absolute path of the named entry file, so a
// whole import graph fixture can live as one literal string instead of
// several small files scattered across the test tree.
func writeArchive(t *testing.T, dir, archive, entry string) string {
	t.Helper()
	a := txtar.Parse([]byte(archive))
	for _, f := range a.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("writing %s: %v", f.Name, err)
		}
	}
	return filepath.Join(dir, entry)
}

// Scenario 5: a namespace import reaches a function exported by another
// module.
func TestLoad_NamespaceImport(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeArchive(t, dir, `
-- math.jsa --
export function add(a: int, b: int): int { return a + b; }
-- main.jsa --
import m from "math.jsa";
function run(): int { return m.add(1, 2); }
`, "main.jsa")

	reg := NewRegistry(diag.NewSink())
	entry, err := reg.Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entry.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(entry.Imports))
	}
	imp := entry.Imports[0]
	if imp.Target == nil {
		t.Fatalf("expected import to resolve to a loaded module")
	}
	if filepath.Base(imp.Target.AbsolutePath) != "math.jsa" {
		t.Errorf("import resolved to %q, want math.jsa", imp.Target.AbsolutePath)
	}
	if len(reg.Modules()) != 2 {
		t.Fatalf("expected 2 modules loaded (main + math), got %d", len(reg.Modules()))
	}
}

// A module imported from two different files is parsed once and shared.
func TestLoad_DiamondImport_LoadsOnce(t *testing.T) {
	dir := t.TempDir()
	bPath := writeArchive(t, dir, `
-- shared.jsa --
export function one(): int { return 1; }
-- a.jsa --
import s from "shared.jsa";
export function fromA(): int { return s.one(); }
-- b.jsa --
import s from "shared.jsa";
import a from "a.jsa";
function run(): int { return s.one() + a.fromA(); }
`, "b.jsa")

	reg := NewRegistry(diag.NewSink())
	if _, err := reg.Load(bPath); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(reg.Modules()) != 3 {
		t.Fatalf("expected 3 distinct modules (b, shared, a), got %d", len(reg.Modules()))
	}

	var sharedSeen *Module
	for _, mod := range reg.Modules() {
		if filepath.Base(mod.AbsolutePath) != "shared.jsa" {
			continue
		}
		if sharedSeen == nil {
			sharedSeen = mod
			continue
		}
		if sharedSeen != mod {
			t.Fatalf("shared.jsa was loaded as two distinct Module values")
		}
	}
}

// An import cycle must not hang the loader.
func TestLoad_ImportCycle_DoesNotHang(t *testing.T) {
	dir := t.TempDir()
	bPath := writeArchive(t, dir, `
-- a.jsa --
import b from "b.jsa";
export function fromA(): int { return 1; }
-- b.jsa --
import a from "a.jsa";
export function fromB(): int { return 1; }
`, "b.jsa")

	reg := NewRegistry(diag.NewSink())
	if _, err := reg.Load(bPath); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reg.Modules()) != 2 {
		t.Fatalf("expected 2 modules despite the cycle, got %d", len(reg.Modules()))
	}
}

func TestLoad_MissingImport_RecordsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeArchive(t, dir, `
-- main.jsa --
import nope from "does_not_exist.jsa";
`, "main.jsa")

	sink := diag.NewSink()
	reg := NewRegistry(sink)
	if _, err := reg.Load(mainPath); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for the missing import")
	}
}

func TestLoad_UnknownBuiltinNamespace_RecordsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeArchive(t, dir, `
-- main.jsa --
import x from @nonsense;
`, "main.jsa")

	sink := diag.NewSink()
	reg := NewRegistry(sink)
	if _, err := reg.Load(mainPath); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for an unknown builtin namespace")
	}
}
