package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/token"
)

// Lexer turns source text into tokens in a single left-to-right pass.
type Lexer struct {
	source  string
	tokens  []token.Token
	diags   []*diagnostics.Diagnostic
	start   int
	current int
	line    int
}

// New prepares a lexer over source.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1}
}

// Scan is shorthand for New(source).ScanTokens().
func Scan(source string) ([]token.Token, []*diagnostics.Diagnostic) {
	return New(source).ScanTokens()
}

// ScanTokens consumes the whole input. The returned slice always ends with an
// EOF token; lexical problems are returned alongside and never stop the scan
// early except for an unterminated string, which runs to end of input.
func (l *Lexer) ScanTokens() ([]token.Token, []*diagnostics.Diagnostic) {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.New(token.EOF, "", nil, l.line))
	return l.tokens, l.diags
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.add(token.LeftParen)
	case ')':
		l.add(token.RightParen)
	case '{':
		l.add(token.LeftBrace)
	case '}':
		l.add(token.RightBrace)
	case '[':
		l.add(token.LeftBracket)
	case ']':
		l.add(token.RightBracket)
	case ',':
		l.add(token.Comma)
	case '.':
		l.add(token.Dot)
	case ';':
		l.add(token.Semicolon)
	case '-':
		l.add(token.Minus)
	case '+':
		l.add(token.Plus)
	case '*':
		l.add(token.Star)
	case '/':
		l.add(token.Slash)
	case '%':
		l.add(token.Percent)
	case '@':
		l.add(token.At)
	case '!':
		l.addMatch('=', token.BangEqual, token.Bang)
	case '=':
		l.addMatch('=', token.EqualEqual, token.Equal)
	case '<':
		l.addMatch('=', token.LessEqual, token.Less)
	case '>':
		l.addMatch('=', token.GreaterEqual, token.Greater)
	case '&':
		if l.match('&') {
			l.add(token.AmpAmp)
		} else {
			l.errorf("Unexpected character: &")
		}
	case '|':
		if l.match('|') {
			l.add(token.PipePipe)
		} else {
			l.errorf("Unexpected character: |")
		}
	case '#':
		for l.peek() != '\n' && !l.isAtEnd() {
			l.advance()
		}
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.string()
	default:
		switch {
		case isDigit(c):
			l.number()
		case isAlpha(c):
			l.identifier()
		default:
			r, width := utf8.DecodeRuneInString(l.source[l.start:])
			l.current = l.start + width
			l.errorf("Unexpected character: %c", r)
		}
	}
}

func (l *Lexer) string() {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.isAtEnd() {
		l.errorf("Unterminated string.")
		return
	}
	l.advance()
	value := l.source[l.start+1 : l.current-1]
	l.addLiteral(token.String, value)
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		text := l.source[l.start:l.current]
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.errorf("Invalid number literal.")
			return
		}
		l.addLiteral(token.Number, value)
		return
	}
	text := l.source[l.start:l.current]
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.errorf("Invalid number literal.")
		return
	}
	l.addLiteral(token.Number, value)
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.add(token.LookupIdent(l.source[l.start:l.current]))
}

func (l *Lexer) add(kind token.Kind) {
	l.addLiteral(kind, nil)
}

func (l *Lexer) addMatch(expected byte, matched, otherwise token.Kind) {
	if l.match(expected) {
		l.add(matched)
		return
	}
	l.add(otherwise)
}

func (l *Lexer) addLiteral(kind token.Kind, literal any) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.New(kind, text, literal, l.line))
}

func (l *Lexer) errorf(format string, args ...any) {
	l.diags = append(l.diags, diagnostics.Lex(l.line, fmt.Sprintf(format, args...)))
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
