package diagnostics

import (
	"fmt"
	"strings"
)

// Phase identifies which pipeline stage produced a diagnostic.
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseRuntime Phase = "runtime"
)

// Diagnostic is a single user-facing problem report. Lexeme is empty for lex
// and runtime diagnostics; AtEnd marks parse errors raised at end of input.
type Diagnostic struct {
	Phase   Phase
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

// Lex builds a lexer diagnostic.
func Lex(line int, message string) *Diagnostic {
	return &Diagnostic{Phase: PhaseLex, Line: line, Message: message}
}

// Parse builds a parser diagnostic pointing at lexeme.
func Parse(line int, lexeme string, atEnd bool, message string) *Diagnostic {
	return &Diagnostic{Phase: PhaseParse, Line: line, Lexeme: lexeme, AtEnd: atEnd, Message: message}
}

// Runtime builds a runtime diagnostic.
func Runtime(line int, message string) *Diagnostic {
	return &Diagnostic{Phase: PhaseRuntime, Line: line, Message: message}
}

func (d *Diagnostic) Error() string {
	switch d.Phase {
	case PhaseParse:
		where := fmt.Sprintf(" at '%s'", d.Lexeme)
		if d.AtEnd {
			where = " at end"
		}
		return fmt.Sprintf("[line %d] Error%s: %s", d.Line, where, d.Message)
	case PhaseRuntime:
		return fmt.Sprintf("%s\n[line %d]", d.Message, d.Line)
	default:
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
}

// List aggregates diagnostics so a whole batch can travel as one error.
type List []*Diagnostic

func (l List) Error() string {
	if len(l) == 0 {
		return "no diagnostics"
	}
	parts := make([]string, 0, len(l))
	for _, d := range l {
		parts = append(parts, d.Error())
	}
	return strings.Join(parts, "\n")
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
