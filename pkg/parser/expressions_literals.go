package parser

import (
	"fmt"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/token"
)

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.Number):
		return p.numberLiteral(p.previous())
	case p.match(token.String):
		value, _ := p.previous().Literal.(string)
		return ast.NewStringLiteral(value), nil
	case p.match(token.True):
		return ast.NewBooleanLiteral(true), nil
	case p.match(token.False):
		return ast.NewBooleanLiteral(false), nil
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous()), nil
	case p.match(token.LeftBracket):
		return p.arrayLiteral()
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.fail(p.peek(), "Expect expression.")
}

func (p *Parser) arrayLiteral() (ast.Expression, error) {
	bracket := p.previous()
	elements, err := p.expressionList(token.RightBracket)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightBracket, "Expected ']' after array elements."); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(bracket, elements), nil
}

func (p *Parser) numberLiteral(tok token.Token) (ast.Expression, error) {
	switch v := tok.Literal.(type) {
	case float64:
		return ast.NewFloatLiteral(v), nil
	case int64:
		return ast.NewIntegerLiteral(v), nil
	default:
		return nil, p.fail(tok, fmt.Sprintf("Number token carries a %T literal.", tok.Literal))
	}
}
