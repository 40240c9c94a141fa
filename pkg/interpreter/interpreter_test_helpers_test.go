package interpreter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/lexer"
	"troll/interpreter-go/pkg/parser"
)

func parseProgram(t testing.TB, source string) *ast.Program {
	t.Helper()
	tokens, lexDiags := lexer.Scan(source)
	require.Empty(t, lexDiags, "lex diagnostics: %v", diagnostics.List(lexDiags))
	program, parseDiags := parser.Parse(tokens)
	require.Empty(t, parseDiags, "parse diagnostics: %v", diagnostics.List(parseDiags))
	return program
}

// runSource executes source in a fresh interpreter and returns what it printed.
func runSource(t testing.TB, source string, opts ...Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(append([]Option{WithOutput(&out)}, opts...)...)
	err := interp.Execute(parseProgram(t, source))
	return out.String(), err
}

func mustRun(t testing.TB, source string) string {
	t.Helper()
	out, err := runSource(t, source)
	require.NoError(t, err)
	return out
}

// runtimeError runs source and returns the runtime error it must fail with.
func runtimeError(t testing.TB, source string) *RuntimeError {
	t.Helper()
	_, err := runSource(t, source)
	require.Error(t, err)
	rt, ok := err.(*RuntimeError)
	require.True(t, ok, "expected *RuntimeError, got %T: %v", err, err)
	return rt
}
