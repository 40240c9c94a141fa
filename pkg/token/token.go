package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	Semicolon
	Minus
	Plus
	Slash
	Star
	Percent
	At

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	AmpAmp
	PipePipe

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	Fn
	Let
	If
	Else
	While
	Return
	Print
	Model
	True
	False

	EOF
)

var kindNames = map[Kind]string{
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftBracket:  "[",
	RightBracket: "]",
	Comma:        ",",
	Dot:          ".",
	Semicolon:    ";",
	Minus:        "-",
	Plus:         "+",
	Slash:        "/",
	Star:         "*",
	Percent:      "%",
	At:           "@",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	AmpAmp:       "&&",
	PipePipe:     "||",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	Fn:           "fn",
	Let:          "let",
	If:           "if",
	Else:         "else",
	While:        "while",
	Return:       "return",
	Print:        "print",
	Model:        "model",
	True:         "true",
	False:        "false",
	EOF:          "end of file",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// keywords is populated once and only read afterwards.
var keywords = map[string]Kind{
	"fn":     Fn,
	"let":    Let,
	"if":     If,
	"else":   Else,
	"while":  While,
	"return": Return,
	"print":  Print,
	"model":  Model,
	"true":   True,
	"false":  False,
}

// LookupIdent returns the keyword kind for ident, or Identifier.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// IsKeyword reports whether name is reserved.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// Token is a single lexeme produced by the lexer. Literal holds an int64, float64
// or string for literal tokens and nil otherwise.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

// New builds a token.
func New(kind Kind, lexeme string, literal any, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// Synthetic builds a token that has no source text behind it, using the
// canonical spelling of kind as its lexeme.
func Synthetic(kind Kind, line int) Token {
	lexeme := kind.String()
	if kind == EOF {
		lexeme = ""
	}
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// Ident builds an identifier token.
func Ident(name string, line int) Token {
	return Token{Kind: Identifier, Lexeme: name, Line: line}
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q (line %d)", t.Kind, t.Lexeme, t.Line)
}
