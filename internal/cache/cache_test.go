package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestCache_LookupMiss_ThenStoreThenHit(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	src := writeSource(t, dir, "main.jsa", "function f() {}")

	if _, ok, err := c.Lookup(src); err != nil || ok {
		t.Fatalf("Lookup on an empty cache = (_, %v, %v), want (_, false, nil)", ok, err)
	}

	diags := []diag.Diagnostic{{Code: diag.TypeMismatch, Severity: diag.Error, Pos: token.Position{Filename: src, Line: 1, Column: 1}, Message: "bad"}}
	runID, err := c.Store(src, diags, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if runID == "" {
		t.Fatalf("expected a non-empty run ID")
	}

	entry, ok, err := c.Lookup(src)
	if err != nil || !ok {
		t.Fatalf("Lookup after Store = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	if entry.RunID != runID {
		t.Fatalf("entry.RunID = %q, want %q", entry.RunID, runID)
	}
	if len(entry.Diagnostics) != 1 || entry.Diagnostics[0].Message != "bad" {
		t.Fatalf("entry.Diagnostics = %+v, want one diagnostic with message \"bad\"", entry.Diagnostics)
	}
}

func TestCache_Store_ContentChangeInvalidatesLookup(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	src := writeSource(t, dir, "main.jsa", "function f() {}")
	if _, err := c.Store(src, nil, 0); err != nil {
		t.Fatalf("Store: %v", err)
	}

	writeSource(t, dir, "main.jsa", "function f() { return 1; }")
	if _, ok, err := c.Lookup(src); err != nil || ok {
		t.Fatalf("Lookup after content change = (_, %v, %v), want (_, false, nil)", ok, err)
	}
}

func TestCache_Store_SamePathTwice_OverwritesRunID(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	src := writeSource(t, dir, "main.jsa", "function f() {}")
	first, err := c.Store(src, nil, 0)
	if err != nil {
		t.Fatalf("first Store: %v", err)
	}
	second, err := c.Store(src, nil, 0)
	if err != nil {
		t.Fatalf("second Store: %v", err)
	}
	if first == second {
		t.Fatalf("expected two stores of the same unchanged file to get distinct run IDs, both got %q", first)
	}

	entry, ok, err := c.Lookup(src)
	if err != nil || !ok {
		t.Fatalf("Lookup = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	if entry.RunID != second {
		t.Fatalf("entry.RunID = %q, want the most recent store's %q", entry.RunID, second)
	}
}

func TestOpen_DefaultsDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	c, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	defer c.Close()

	if _, err := os.Stat(".jsasta-cache"); err != nil {
		t.Fatalf("expected Open(\"\") to create ./.jsasta-cache, stat failed: %v", err)
	}
}
