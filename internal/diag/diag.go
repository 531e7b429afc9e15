// Package diag implements the compiler's diagnostic sink: an accumulating,
// non-fatal collector of errors and warnings with source location, a stable
// code, and a formatted message, per the error handling design in the spec.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nanov/jsasta/internal/token"
)

type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code taxonomy. Families are grouped by leading letter; the exact numbers
// are stable identifiers, not meant to enumerate every possible diagnostic.
const (
	LexIllegalByte       = "L100"
	LexUnterminatedQuote = "L101"

	ParseUnexpectedToken   = "P200"
	ParseStuckPosition     = "P201"
	ParseInvalidAssignment = "P202"
	ParseInvalidTypePath   = "P203"
	ParseMissingSemicolon  = "P204"

	ImportMissingFile    = "I400"
	ImportUnparseable    = "I401"
	ImportDuplicatePath  = "I402"
	ImportUnknownBuiltin = "I403"

	ConstEvalTypeMismatch  = "C500"
	ConstEvalNonPositive   = "C501"
	ConstEvalDivByZero     = "C502"
	ConstEvalNotConst      = "C503"
	ConstEvalUnsupportedOp = "C504"

	TypeUndefinedIdent       = "T301"
	TypeUndefinedFunction    = "T302"
	TypeMismatchDecl         = "T303"
	TypeMismatchAssign       = "T304"
	TypeUnknownProperty      = "T305"
	TypeMissingField         = "T306"
	TypeMismatch             = "T307"
	TypeTraitNotImplemented  = "T308"
	TypeMethodNotFound       = "T309"
	TypeCallOnNonObject      = "T310"
	TypeDeepNamespacePath    = "T311"
	TypeUnresolvedNamespace  = "T312"
	TypeArgMismatch          = "T313"
	TypeDeleteOnNonRef       = "T314"
	TypeIndexUnsupported     = "T315"
	TypeDuplicateDeclaration = "T316"

	UnresolvedConst = "U600"

	InternalInvariant = "X900"
)

// Diagnostic is one accumulated error or warning.
type Diagnostic struct {
	Code     string
	Severity Severity
	Pos      token.Position
	Message  string
	Hint     string // optional supplementary text, e.g. "did you mean const?"
}

func (d Diagnostic) String() string {
	msg := d.Message
	if d.Hint != "" {
		msg = msg + " (" + d.Hint + ")"
	}
	return fmt.Sprintf("%s: %s[%s]: %s", d.Pos, d.Severity, d.Code, msg)
}

// Sink accumulates diagnostics across every pass of a compile. No pass is
// fatal: callers check HasErrors() only at phase boundaries (module hand-off,
// codegen hand-off), never mid-pass.
type Sink struct {
	entries []Diagnostic
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Add(d Diagnostic) { s.entries = append(s.entries, d) }

func (s *Sink) Errorf(pos token.Position, code, format string, args ...interface{}) {
	s.Add(Diagnostic{Code: code, Severity: Error, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) ErrorHint(pos token.Position, code, hint, format string, args ...interface{}) {
	s.Add(Diagnostic{Code: code, Severity: Error, Pos: pos, Message: fmt.Sprintf(format, args...), Hint: hint})
}

func (s *Sink) Warnf(pos token.Position, code, format string, args ...interface{}) {
	s.Add(Diagnostic{Code: code, Severity: Warning, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
// Warnings never block artifact production.
func (s *Sink) HasErrors() bool {
	for _, d := range s.entries {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (s *Sink) Len() int { return len(s.entries) }

// All returns diagnostics sorted by source position for deterministic output
// (P5 in the spec's testable properties: diagnostic count is monotonically
// non-decreasing, and for a fixed input the order must be stable).
func (s *Sink) All() []Diagnostic {
	out := make([]Diagnostic, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return out
}

// Format renders every diagnostic as one line: path:line:col: severity[code]: message
func (s *Sink) Format() string {
	var b strings.Builder
	for _, d := range s.All() {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary reports counts for the CLI's trailing summary line.
func (s *Sink) Summary() (errors, warnings int) {
	for _, d := range s.entries {
		if d.Severity == Error {
			errors++
		} else {
			warnings++
		}
	}
	return
}
