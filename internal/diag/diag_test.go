package diag

import (
	"testing"

	"github.com/nanov/jsasta/internal/token"
)

func pos(file string, line, col int) token.Position {
	return token.Position{Filename: file, Line: line, Column: col}
}

func TestSink_HasErrors(t *testing.T) {
	s := NewSink()
	if s.HasErrors() {
		t.Fatalf("empty sink should not report errors")
	}
	s.Warnf(pos("a.jsa", 1, 1), ParseMissingSemicolon, "missing semicolon")
	if s.HasErrors() {
		t.Fatalf("a sink with only warnings should not report HasErrors")
	}
	s.Errorf(pos("a.jsa", 2, 1), TypeMismatch, "bad type")
	if !s.HasErrors() {
		t.Fatalf("expected HasErrors to be true after adding an Error diagnostic")
	}
}

func TestSink_All_SortsByPosition(t *testing.T) {
	s := NewSink()
	s.Errorf(pos("b.jsa", 1, 1), TypeMismatch, "in b")
	s.Errorf(pos("a.jsa", 5, 1), TypeMismatch, "a line 5")
	s.Errorf(pos("a.jsa", 1, 9), TypeMismatch, "a line 1 col 9")
	s.Errorf(pos("a.jsa", 1, 2), TypeMismatch, "a line 1 col 2")

	got := s.All()
	want := []string{"a line 1 col 2", "a line 1 col 9", "a line 5", "in b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d diagnostics, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Message != w {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Message, w)
		}
	}
}

func TestSink_All_ReturnsACopy(t *testing.T) {
	s := NewSink()
	s.Errorf(pos("a.jsa", 1, 1), TypeMismatch, "first")
	out := s.All()
	out[0].Message = "mutated"
	if s.All()[0].Message != "first" {
		t.Fatalf("All() must not expose the sink's internal slice")
	}
}

func TestSink_Summary(t *testing.T) {
	s := NewSink()
	s.Errorf(pos("a.jsa", 1, 1), TypeMismatch, "e1")
	s.Errorf(pos("a.jsa", 1, 1), TypeMismatch, "e2")
	s.Warnf(pos("a.jsa", 1, 1), ParseMissingSemicolon, "w1")

	errors, warnings := s.Summary()
	if errors != 2 || warnings != 1 {
		t.Fatalf("Summary() = (%d, %d), want (2, 1)", errors, warnings)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}

func TestDiagnostic_String_IncludesHint(t *testing.T) {
	d := Diagnostic{
		Code: TypeUndefinedIdent, Severity: Error, Pos: pos("a.jsa", 3, 4),
		Message: "undefined identifier \"x\"", Hint: "did you mean \"y\"?",
	}
	got := d.String()
	want := `a.jsa:3:4: error[T301]: undefined identifier "x" (did you mean "y"?)`
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestSink_Format_OneLinePerDiagnostic(t *testing.T) {
	s := NewSink()
	s.Errorf(pos("a.jsa", 1, 1), TypeMismatch, "bad")
	s.Warnf(pos("a.jsa", 2, 1), ParseMissingSemicolon, "missing ;")
	out := s.Format()
	if out != s.All()[0].String()+"\n"+s.All()[1].String()+"\n" {
		t.Fatalf("Format() did not render one line per diagnostic in All() order, got %q", out)
	}
}
