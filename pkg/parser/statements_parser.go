package parser

import (
	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/token"
)

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.Let):
		return p.letDeclaration()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.LeftBrace):
		body, err := p.blockBody()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(body), nil
	default:
		return p.expressionStatement()
	}
}

// blockBody parses declarations up to the closing brace; the opening brace
// has already been consumed.
func (p *Parser) blockBody() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var otherwise ast.Statement
	if p.match(token.Else) {
		otherwise, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(condition, then, otherwise), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(condition, body), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	if p.fnDepth == 0 {
		p.report(keyword, "Can't return from top-level code.")
	}
	var value ast.Expression
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturn(keyword, value), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'print'."); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after print value."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after print statement."); err != nil {
		return nil, err
	}
	return ast.NewPrint(value), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}
