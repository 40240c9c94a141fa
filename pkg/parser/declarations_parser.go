package parser

import (
	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/token"
)

func (p *Parser) declaration() (ast.Statement, error) {
	if p.match(token.Model) {
		return p.modelDeclaration()
	}
	if p.match(token.Fn) {
		return p.function()
	}
	return p.statement()
}

func (p *Parser) modelDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expected model name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expected '{' before model body."); err != nil {
		return nil, err
	}
	members := make([]ast.ModelMember, 0)
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		switch {
		case p.match(token.Let):
			member, err := p.letDeclaration()
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		case p.match(token.Fn):
			member, err := p.function()
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		default:
			return nil, p.fail(p.peek(), "Expected 'let' or 'fn' inside model.")
		}
	}
	if _, err := p.consume(token.RightBrace, "Expected '}' after model body."); err != nil {
		return nil, err
	}
	return ast.NewModel(name, members), nil
}

// function parses the rest of a declaration after its 'fn' keyword.
func (p *Parser) function() (*ast.Function, error) {
	name, err := p.consume(token.Identifier, "Expected function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	params := make([]token.Token, 0)
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArguments {
				p.report(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(token.Identifier, "Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expected '{' before function body."); err != nil {
		return nil, err
	}
	p.fnDepth++
	body, err := p.blockBody()
	p.fnDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(name, params, body), nil
}

// letDeclaration parses the rest of a declaration after its 'let' keyword.
func (p *Parser) letDeclaration() (*ast.Let, error) {
	name, err := p.consume(token.Identifier, "Expected variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewLet(name, initializer), nil
}
