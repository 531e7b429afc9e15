package diagprint

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
)

func TestPrinter_Print_NonTerminal_IsPlainText(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	sink := diag.NewSink()
	sink.Errorf(token.Position{Filename: "a.jsa", Line: 1, Column: 1}, diag.TypeMismatch, "bad type")
	p.Print(sink)

	got := buf.String()
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("expected plain text for a non-terminal writer, got %q", got)
	}
	want := sink.All()[0].String() + "\n"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestPrinter_Summary_ReportsErrorAndWarningCounts(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	sink := diag.NewSink()
	sink.Errorf(token.Position{Filename: "a.jsa", Line: 1, Column: 1}, diag.TypeMismatch, "e1")
	sink.Warnf(token.Position{Filename: "a.jsa", Line: 2, Column: 1}, diag.ParseMissingSemicolon, "w1")

	p.Summary(sink, 5*time.Millisecond, false)
	out := buf.String()
	if !strings.Contains(out, "1 errors") || !strings.Contains(out, "1 warnings") {
		t.Fatalf("Summary() = %q, want it to mention 1 errors and 1 warnings", out)
	}
	if !strings.HasPrefix(out, "compiled") {
		t.Fatalf("Summary() = %q, want it to start with \"compiled\" when cacheHit is false", out)
	}
}

func TestPrinter_Summary_CacheHit_ReportsCached(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Summary(diag.NewSink(), time.Millisecond, true)
	if !strings.HasPrefix(buf.String(), "cached") {
		t.Fatalf("Summary() = %q, want it to start with \"cached\" when cacheHit is true", buf.String())
	}
}
