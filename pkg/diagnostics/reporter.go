package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when the reporter emits ANSI colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a user supplied color mode. An empty value means auto.
func ParseColorMode(value string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode '%s' (expected auto, always or never)", value)
	}
}

// Reporter writes diagnostics to an output stream and counts them per phase.
type Reporter struct {
	out    io.Writer
	counts map[Phase]int

	errorColor *color.Color
	lineColor  *color.Color
}

// NewReporter builds a reporter. In auto mode colors are used only when out is a
// terminal and NO_COLOR is unset.
func NewReporter(out io.Writer, mode ColorMode) *Reporter {
	r := &Reporter{
		out:        out,
		counts:     make(map[Phase]int),
		errorColor: color.New(color.FgRed, color.Bold),
		lineColor:  color.New(color.FgCyan),
	}
	if useColor(out, mode) {
		r.errorColor.EnableColor()
		r.lineColor.EnableColor()
	} else {
		r.errorColor.DisableColor()
		r.lineColor.DisableColor()
	}
	return r
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report writes one diagnostic.
func (r *Reporter) Report(d *Diagnostic) {
	if d == nil {
		return
	}
	r.counts[d.Phase]++
	switch d.Phase {
	case PhaseRuntime:
		r.errorColor.Fprint(r.out, d.Message)
		fmt.Fprintln(r.out)
		r.lineColor.Fprintf(r.out, "[line %d]", d.Line)
		fmt.Fprintln(r.out)
	default:
		rendered := d.Error()
		prefix := fmt.Sprintf("[line %d]", d.Line)
		r.lineColor.Fprint(r.out, prefix)
		r.errorColor.Fprint(r.out, strings.TrimPrefix(rendered, prefix))
		fmt.Fprintln(r.out)
	}
}

// ReportAll writes every diagnostic in order.
func (r *Reporter) ReportAll(list []*Diagnostic) {
	for _, d := range list {
		r.Report(d)
	}
}

// Count returns how many diagnostics of phase were reported.
func (r *Reporter) Count(phase Phase) int {
	return r.counts[phase]
}

// HadErrors reports whether anything was written.
func (r *Reporter) HadErrors() bool {
	for _, n := range r.counts {
		if n > 0 {
			return true
		}
	}
	return false
}
