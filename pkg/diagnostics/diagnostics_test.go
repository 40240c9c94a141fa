package diagnostics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticFormatting(t *testing.T) {
	assert.Equal(t, "[line 3] Error: Unexpected character: $", Lex(3, "Unexpected character: $").Error())
	assert.Equal(t, "[line 1] Error at '=': Invalid assignment target.", Parse(1, "=", false, "Invalid assignment target.").Error())
	assert.Equal(t, "[line 9] Error at end: Expected ';' after expression.", Parse(9, "", true, "Expected ';' after expression.").Error())
	assert.Equal(t, "Operands must be numbers.\n[line 2]", Runtime(2, "Operands must be numbers.").Error())
}

func TestListErr(t *testing.T) {
	var empty List
	require.NoError(t, empty.Err())

	list := List{Lex(1, "a"), Lex(2, "b")}
	err := list.Err()
	require.Error(t, err)
	assert.Equal(t, "[line 1] Error: a\n[line 2] Error: b", err.Error())

	var got List
	require.True(t, errors.As(err, &got))
	assert.Len(t, got, 2)
}

func TestReporterWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, ColorNever)
	r.ReportAll([]*Diagnostic{
		Parse(4, "}", false, "Expect expression."),
		Runtime(7, "Undefined variable 'x'."),
	})
	assert.Equal(t, "[line 4] Error at '}': Expect expression.\nUndefined variable 'x'.\n[line 7]\n", buf.String())
	assert.Equal(t, 1, r.Count(PhaseParse))
	assert.Equal(t, 1, r.Count(PhaseRuntime))
	assert.True(t, r.HadErrors())
}

func TestReporterAutoModeOnBufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, ColorAuto)
	r.Report(Lex(1, "Unterminated string."))
	assert.Equal(t, "[line 1] Error: Unterminated string.\n", buf.String())
}

func TestParseColorMode(t *testing.T) {
	mode, err := ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, mode)

	mode, err = ParseColorMode("ALWAYS")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, mode)

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}
