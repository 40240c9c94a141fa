package parser

import (
	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/token"
)

// maxArguments bounds both call arguments and declared parameters.
const maxArguments = 255

// Parser is a recursive-descent parser with one token of lookahead. It never
// stops at the first error: each failing declaration is reported and skipped.
type Parser struct {
	tokens  []token.Token
	current int
	diags   []*diagnostics.Diagnostic

	// fnDepth counts the function bodies currently being parsed.
	fnDepth int
}

// syntaxError unwinds one declaration after its diagnostic was recorded.
type syntaxError struct {
	diag *diagnostics.Diagnostic
}

func (e *syntaxError) Error() string { return e.diag.Error() }

// New builds a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]token.Token(nil), tokens...), token.New(token.EOF, "", nil, line))
	}
	return &Parser{tokens: tokens}
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []token.Token) (*ast.Program, []*diagnostics.Diagnostic) {
	return New(tokens).ParseProgram()
}

// ParseProgram parses declarations until EOF. Statements that failed to parse
// are left out of the program; the diagnostics explain why.
func (p *Parser) ParseProgram() (*ast.Program, []*diagnostics.Diagnostic) {
	statements := make([]ast.Statement, 0)
	for !p.isAtEnd() {
		if stmt := p.declarationOrSync(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return ast.NewProgram(statements), p.diags
}

// IsIncomplete reports whether every diagnostic was caused by input ending
// too early, meaning more text could still turn it into a valid program.
func IsIncomplete(diags []*diagnostics.Diagnostic) bool {
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		switch {
		case d.Phase == diagnostics.PhaseParse && d.AtEnd:
		case d.Phase == diagnostics.PhaseLex && d.Message == "Unterminated string.":
		default:
			return false
		}
	}
	return true
}

func (p *Parser) declarationOrSync() ast.Statement {
	stmt, err := p.declaration()
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize discards tokens until just after a ';' or just before a token
// that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Fn, token.Let, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// Token helpers.

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.fail(p.peek(), message)
}

// report records a diagnostic without interrupting the current rule.
func (p *Parser) report(at token.Token, message string) *diagnostics.Diagnostic {
	d := diagnostics.Parse(at.Line, at.Lexeme, at.Kind == token.EOF, message)
	p.diags = append(p.diags, d)
	return d
}

// fail records a diagnostic and returns the error that abandons the declaration.
func (p *Parser) fail(at token.Token, message string) error {
	return &syntaxError{diag: p.report(at, message)}
}
