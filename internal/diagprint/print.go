// Package diagprint renders a diagnostic sink to a terminal or a pipe,
// colorizing severities the way the teacher's evaluator colorizes terminal
// output (internal/evaluator/builtins_term.go), and humanizing compile
// summary counts and durations.
package diagprint

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/nanov/jsasta/internal/diag"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
)

// Printer writes diagnostics to an io.Writer, colorizing severities when the
// writer is a terminal.
type Printer struct {
	w      io.Writer
	colors bool
}

// New builds a Printer for w. If w is *os.File and it's a terminal (or a
// Cygwin/MSYS terminal on Windows), diagnostics are colorized; otherwise
// output is plain text, matching how a CI log or a pipe would want it.
func New(w io.Writer) *Printer {
	colors := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		colors = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Printer{w: w, colors: colors}
}

// Print writes every diagnostic in sink.All() order, one per line.
func (p *Printer) Print(sink *diag.Sink) {
	for _, d := range sink.All() {
		p.printOne(d)
	}
}

func (p *Printer) printOne(d diag.Diagnostic) {
	if !p.colors {
		fmt.Fprintln(p.w, d.String())
		return
	}
	color := ansiRed
	if d.Severity == diag.Warning {
		color = ansiYellow
	}
	msg := d.Message
	if d.Hint != "" {
		msg = msg + " (" + d.Hint + ")"
	}
	fmt.Fprintf(p.w, "%s%s%s: %s%s%s[%s]%s: %s\n",
		ansiBold, d.Pos, ansiReset,
		color, d.Severity, ansiReset, d.Code, ansiReset,
		msg)
}

// Summary writes the one-line footer a CLI invocation prints after a
// compile finishes unless -q is given: diagnostic counts and elapsed time,
// humanized.
func (p *Printer) Summary(sink *diag.Sink, elapsed time.Duration, cacheHit bool) {
	errs, warns := 0, 0
	for _, d := range sink.All() {
		if d.Severity == diag.Error {
			errs++
		} else {
			warns++
		}
	}
	status := "compiled"
	if cacheHit {
		status = "cached"
	}
	fmt.Fprintf(p.w, "%s in %s: %s errors, %s warnings\n",
		status, humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""),
		humanize.Comma(int64(errs)), humanize.Comma(int64(warns)))
}
