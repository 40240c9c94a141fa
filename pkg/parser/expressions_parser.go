package parser

import (
	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/token"
)

// binaryLevels lists the left-associative operator tiers from loosest to
// tightest binding. Logical tiers build ast.Logical, the rest ast.Binary.
var binaryLevels = []struct {
	operators []token.Kind
	logical   bool
}{
	{operators: []token.Kind{token.PipePipe}, logical: true},
	{operators: []token.Kind{token.AmpAmp}, logical: true},
	{operators: []token.Kind{token.BangEqual, token.EqualEqual}},
	{operators: []token.Kind{token.Greater, token.GreaterEqual, token.Less, token.LessEqual}},
	{operators: []token.Kind{token.Minus, token.Plus}},
	{operators: []token.Kind{token.Slash, token.Star, token.Percent, token.At}},
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if !p.match(token.Equal) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.Variable:
		return ast.NewAssignment(target.Name, value), nil
	case *ast.Index:
		return ast.NewArrayAssignment(target.Object, target.Bracket, target.Index, value), nil
	}
	p.report(equals, "Invalid assignment target.")
	return expr, nil
}

func (p *Parser) binary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.unary()
	}
	tier := binaryLevels[level]
	expr, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.match(tier.operators...) {
		operator := p.previous()
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		if tier.logical {
			expr = ast.NewLogical(expr, operator, right)
		} else {
			expr = ast.NewBinary(expr, operator, right)
		}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, operand), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LeftParen):
			expr, err = p.finishCall(expr)
		case p.match(token.Dot):
			var name token.Token
			name, err = p.consume(token.Identifier, "Expect property name after '.'.")
			if err == nil {
				expr = ast.NewGet(expr, name)
			}
		case p.match(token.LeftBracket):
			expr, err = p.finishIndex(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	arguments, err := p.expressionList(token.RightParen)
	if err != nil {
		return nil, err
	}
	paren, err := p.consume(token.RightParen, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, arguments), nil
}

func (p *Parser) finishIndex(object ast.Expression) (ast.Expression, error) {
	index, err := p.expression()
	if err != nil {
		return nil, err
	}
	bracket, err := p.consume(token.RightBracket, "Expected ']' after index.")
	if err != nil {
		return nil, err
	}
	return ast.NewIndex(object, bracket, index), nil
}

// expressionList parses comma separated expressions up to, but not including,
// closing.
func (p *Parser) expressionList(closing token.Kind) ([]ast.Expression, error) {
	items := make([]ast.Expression, 0)
	if p.check(closing) {
		return items, nil
	}
	for {
		if closing == token.RightParen && len(items) >= maxArguments {
			p.report(p.peek(), "Can't have more than 255 arguments.")
		}
		item, err := p.expression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.match(token.Comma) {
			return items, nil
		}
	}
}
