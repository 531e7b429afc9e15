package cli

import (
	"testing"

	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
)

func TestParseArgs_Defaults(t *testing.T) {
	opts, ok := parseArgs([]string{"main.jsa"})
	if !ok {
		t.Fatalf("expected parseArgs to succeed")
	}
	if opts.entryPath != "main.jsa" {
		t.Errorf("entryPath = %q, want main.jsa", opts.entryPath)
	}
	if opts.emit != emitExe {
		t.Errorf("emit = %q, want %q", opts.emit, emitExe)
	}
	if opts.optLevel != 0 {
		t.Errorf("optLevel = %d, want 0", opts.optLevel)
	}
	if opts.cacheDir != ".jsasta-cache" {
		t.Errorf("cacheDir = %q, want .jsasta-cache", opts.cacheDir)
	}
}

func TestParseArgs_MissingInput(t *testing.T) {
	_, ok := parseArgs([]string{"-v"})
	if ok {
		t.Fatalf("expected parseArgs to fail with no input file and no jsasta.yaml")
	}
}

func TestParseArgs_EmitMode(t *testing.T) {
	cases := []struct {
		args []string
		want emitMode
	}{
		{[]string{"-c", "x.jsa"}, emitObj},
		{[]string{"-S", "x.jsa"}, emitAsm},
		{[]string{"-L", "x.jsa"}, emitLLVM},
		{[]string{"--emit-llvm", "x.jsa"}, emitLLVM},
		{[]string{"x.jsa"}, emitExe},
	}
	for _, c := range cases {
		opts, ok := parseArgs(c.args)
		if !ok {
			t.Fatalf("args %v: parseArgs failed", c.args)
		}
		if opts.emit != c.want {
			t.Errorf("args %v: emit = %q, want %q", c.args, opts.emit, c.want)
		}
	}
}

func TestParseArgs_OptLevel(t *testing.T) {
	cases := []struct {
		args []string
		want int
	}{
		{[]string{"-O0", "x.jsa"}, 0},
		{[]string{"-O1", "x.jsa"}, 1},
		{[]string{"-O2", "x.jsa"}, 2},
		{[]string{"-O3", "x.jsa"}, 3},
	}
	for _, c := range cases {
		opts, ok := parseArgs(c.args)
		if !ok {
			t.Fatalf("args %v: parseArgs failed", c.args)
		}
		if opts.optLevel != c.want {
			t.Errorf("args %v: optLevel = %d, want %d", c.args, opts.optLevel, c.want)
		}
	}
}

func TestDefaultOutputName(t *testing.T) {
	cases := []struct {
		mode emitMode
		want string
	}{
		{emitExe, "a.out"},
		{emitObj, "output.o"},
		{emitAsm, "output.s"},
		{emitLLVM, "output.ll"},
	}
	for _, c := range cases {
		if got := c.mode.defaultOutputName(); got != c.want {
			t.Errorf("%s.defaultOutputName() = %q, want %q", c.mode, got, c.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	clean := diag.NewSink()
	if got := exitCodeFor(clean); got != ExitOK {
		t.Errorf("clean sink: exit code = %d, want %d", got, ExitOK)
	}

	typeErr := diag.NewSink()
	typeErr.Errorf(token.Position{Filename: "x.jsa", Line: 1, Column: 1}, diag.TypeUndefinedIdent, "undefined")
	if got := exitCodeFor(typeErr); got != ExitCompileFail {
		t.Errorf("type error sink: exit code = %d, want %d", got, ExitCompileFail)
	}

	importErr := diag.NewSink()
	importErr.Errorf(token.Position{Filename: "x.jsa", Line: 1, Column: 1}, diag.ImportMissingFile, "missing")
	if got := exitCodeFor(importErr); got != ExitMissing {
		t.Errorf("import error sink: exit code = %d, want %d", got, ExitMissing)
	}

	warnOnly := diag.NewSink()
	warnOnly.Warnf(token.Position{Filename: "x.jsa", Line: 1, Column: 1}, diag.TypeUndefinedIdent, "just a warning")
	if got := exitCodeFor(warnOnly); got != ExitOK {
		t.Errorf("warning-only sink: exit code = %d, want %d", got, ExitOK)
	}
}
