package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"troll/interpreter-go/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens, diags := Scan("( ) { } [ ] , . ; - + * / % @ ! != = == < <= > >= && ||")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket, token.Comma, token.Dot, token.Semicolon,
		token.Minus, token.Plus, token.Star, token.Slash, token.Percent, token.At,
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.AmpAmp, token.PipePipe, token.EOF,
	}, kinds(tokens))
}

func TestScanLetStatement(t *testing.T) {
	tokens, diags := Scan("let x = 1 + 2;")
	require.Empty(t, diags)
	require.Len(t, tokens, 8)
	assert.Equal(t, []token.Kind{
		token.Let, token.Identifier, token.Equal, token.Number, token.Plus, token.Number, token.Semicolon, token.EOF,
	}, kinds(tokens))
	assert.Equal(t, "x", tokens[1].Lexeme)
	assert.Equal(t, int64(1), tokens[3].Literal)
	assert.Equal(t, int64(2), tokens[5].Literal)
}

func TestScanAlwaysEndsWithEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "# only a comment", "x", "\"open"} {
		tokens, _ := Scan(src)
		require.NotEmpty(t, tokens, src)
		assert.Equal(t, token.EOF, tokens[len(tokens)-1].Kind, src)
	}
}

func TestScanNumbers(t *testing.T) {
	tokens, diags := Scan("42 2.5 7. 0.125")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{token.Number, token.Number, token.Number, token.Dot, token.Number, token.EOF}, kinds(tokens))
	assert.Equal(t, int64(42), tokens[0].Literal)
	assert.Equal(t, 2.5, tokens[1].Literal)
	assert.Equal(t, int64(7), tokens[2].Literal)
	assert.Equal(t, 0.125, tokens[4].Literal)
}

func TestScanIntegerOverflow(t *testing.T) {
	tokens, diags := Scan("99999999999999999999;")
	require.Len(t, diags, 1)
	assert.Equal(t, "Invalid number literal.", diags[0].Message)
	assert.Equal(t, []token.Kind{token.Semicolon, token.EOF}, kinds(tokens))
}

func TestScanStrings(t *testing.T) {
	tokens, diags := Scan("\"hello\nworld\" x")
	require.Empty(t, diags)
	require.Len(t, tokens, 3)
	assert.Equal(t, token.String, tokens[0].Kind)
	assert.Equal(t, "hello\nworld", tokens[0].Literal)
	assert.Equal(t, "\"hello\nworld\"", tokens[0].Lexeme)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	tokens, diags := Scan("print \"abc")
	require.Len(t, diags, 1)
	assert.Equal(t, "[line 1] Error: Unterminated string.", diags[0].Error())
	assert.Equal(t, []token.Kind{token.Print, token.EOF}, kinds(tokens))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens, diags := Scan("fn let if else while return print model true false modelx _a1")
	require.Empty(t, diags)
	assert.Equal(t, []token.Kind{
		token.Fn, token.Let, token.If, token.Else, token.While, token.Return,
		token.Print, token.Model, token.True, token.False, token.Identifier, token.Identifier, token.EOF,
	}, kinds(tokens))
}

func TestScanCommentsAndLines(t *testing.T) {
	tokens, diags := Scan("a # trailing comment ( ]\n\tb\r\n c")
	require.Empty(t, diags)
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
	assert.Equal(t, 3, tokens[3].Line)
}

func TestScanUnexpectedCharactersContinue(t *testing.T) {
	tokens, diags := Scan("a $ b\n& c | d")
	require.Len(t, diags, 3)
	assert.Equal(t, "Unexpected character: $", diags[0].Message)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, "Unexpected character: &", diags[1].Message)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, "Unexpected character: |", diags[2].Message)
	assert.Equal(t, []token.Kind{token.Identifier, token.Identifier, token.Identifier, token.Identifier, token.EOF}, kinds(tokens))
}

func TestScanUnexpectedMultiByteCharacter(t *testing.T) {
	tokens, diags := Scan("let é = 1;\nlet x = \"é\";")
	require.Len(t, diags, 1)
	assert.Equal(t, "[line 1] Error: Unexpected character: é", diags[0].Error())
	assert.Equal(t, []token.Kind{
		token.Let, token.Equal, token.Number, token.Semicolon,
		token.Let, token.Identifier, token.Equal, token.String, token.Semicolon, token.EOF,
	}, kinds(tokens))
	assert.Equal(t, "é", tokens[7].Literal)
}

func TestScanMatrixExpression(t *testing.T) {
	tokens, diags := Scan("let m = [[1, 2], [3, 4]] @ b;")
	require.Empty(t, diags)
	assert.Contains(t, kinds(tokens), token.At)
	assert.Equal(t, token.LeftBracket, tokens[3].Kind)
	assert.Equal(t, token.LeftBracket, tokens[4].Kind)
}
