package interpreter

import (
	"fmt"

	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/token"
)

// RuntimeError is a failure raised while executing a program. Token locates
// the operator, name or bracket that triggered it.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func newRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

func runtimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// Diagnostic converts the error for reporting.
func (e *RuntimeError) Diagnostic() *diagnostics.Diagnostic {
	return diagnostics.Runtime(e.Token.Line, e.Message)
}
