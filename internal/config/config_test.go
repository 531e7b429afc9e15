package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasSourceExt(t *testing.T) {
	cases := map[string]bool{
		"main.jsa": true, "lib/math.jsa": true, "main.go": false, "main": false,
	}
	for path, want := range cases {
		if got := HasSourceExt(path); got != want {
			t.Errorf("HasSourceExt(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestTrimSourceExt(t *testing.T) {
	if got := TrimSourceExt("main.jsa"); got != "main" {
		t.Errorf("TrimSourceExt(\"main.jsa\") = %q, want \"main\"", got)
	}
	if got := TrimSourceExt("main.go"); got != "main.go" {
		t.Errorf("TrimSourceExt(\"main.go\") = %q, want it unchanged", got)
	}
}

func TestLoadProject_MissingFile_ReturnsDefaults(t *testing.T) {
	p, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProject on a dir with no jsasta.yaml: %v", err)
	}
	if *p != (Project{}) {
		t.Fatalf("expected a zero-value Project, got %+v", p)
	}
}

func TestLoadProject_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	contents := "entry: main.jsa\noptimize: 2\ndebug: true\n"
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing jsasta.yaml: %v", err)
	}
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.Entry != "main.jsa" || p.Optimize != 2 || !p.Debug {
		t.Fatalf("got %+v, want Entry=main.jsa Optimize=2 Debug=true", p)
	}
}
