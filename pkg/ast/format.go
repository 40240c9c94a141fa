package ast

import (
	"strconv"
	"strings"
)

const indentUnit = "  "

// Format prints a program back as source text that parses to the same tree.
// Compound operands are always parenthesized, so the output does not depend on
// operator precedence.
func Format(program *Program) string {
	p := &printer{}
	for _, stmt := range program.Statements {
		p.statement(stmt)
		p.b.WriteByte('\n')
	}
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) indent() {
	p.b.WriteString(strings.Repeat(indentUnit, p.depth))
}

func (p *printer) body(stmts []Statement) {
	p.b.WriteString("{\n")
	p.depth++
	for _, stmt := range stmts {
		p.indent()
		p.statement(stmt)
		p.b.WriteByte('\n')
	}
	p.depth--
	p.indent()
	p.b.WriteByte('}')
}

func (p *printer) statement(stmt Statement) {
	switch s := stmt.(type) {
	case *Block:
		p.body(s.Statements)
	case *Let:
		p.b.WriteString("let ")
		p.b.WriteString(s.Name.Lexeme)
		if s.Initializer != nil {
			p.b.WriteString(" = ")
			p.expression(s.Initializer, false)
		}
		p.b.WriteByte(';')
	case *If:
		p.b.WriteString("if (")
		p.expression(s.Condition, false)
		p.b.WriteString(") ")
		p.statement(s.Then)
		if s.Else != nil {
			p.b.WriteString(" else ")
			p.statement(s.Else)
		}
	case *While:
		p.b.WriteString("while (")
		p.expression(s.Condition, false)
		p.b.WriteString(") ")
		p.statement(s.Body)
	case *Return:
		p.b.WriteString("return")
		if s.Value != nil {
			p.b.WriteByte(' ')
			p.expression(s.Value, false)
		}
		p.b.WriteByte(';')
	case *Print:
		p.b.WriteString("print(")
		p.expression(s.Expression, false)
		p.b.WriteString(");")
	case *ExpressionStatement:
		p.expression(s.Expression, false)
		p.b.WriteByte(';')
	case *Function:
		p.b.WriteString("fn ")
		p.b.WriteString(s.Name.Lexeme)
		p.b.WriteByte('(')
		for i, param := range s.Params {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(param.Lexeme)
		}
		p.b.WriteString(") ")
		p.body(s.Body)
	case *Model:
		p.b.WriteString("model ")
		p.b.WriteString(s.Name.Lexeme)
		p.b.WriteByte(' ')
		members := make([]Statement, 0, len(s.Members))
		for _, m := range s.Members {
			members = append(members, m)
		}
		p.body(members)
	}
}

// expression writes expr; nested marks operand positions where a compound
// expression needs parentheses.
func (p *printer) expression(expr Expression, nested bool) {
	switch e := expr.(type) {
	case *IntegerLiteral:
		p.b.WriteString(strconv.FormatInt(e.Value, 10))
	case *FloatLiteral:
		p.b.WriteString(formatFloatLiteral(e.Value))
	case *StringLiteral:
		p.b.WriteByte('"')
		p.b.WriteString(e.Value)
		p.b.WriteByte('"')
	case *BooleanLiteral:
		p.b.WriteString(strconv.FormatBool(e.Value))
	case *ArrayLiteral:
		p.b.WriteByte('[')
		p.list(e.Elements)
		p.b.WriteByte(']')
	case *Variable:
		p.b.WriteString(e.Name.Lexeme)
	case *Unary:
		p.b.WriteString(e.Operator.Lexeme)
		p.expression(e.Operand, !isUnary(e.Operand))
	case *Binary:
		p.open(nested)
		p.expression(e.Left, true)
		p.b.WriteString(" " + e.Operator.Lexeme + " ")
		p.expression(e.Right, true)
		p.close(nested)
	case *Logical:
		p.open(nested)
		p.expression(e.Left, true)
		p.b.WriteString(" " + e.Operator.Lexeme + " ")
		p.expression(e.Right, true)
		p.close(nested)
	case *Call:
		p.postfixTarget(e.Callee)
		p.b.WriteByte('(')
		p.list(e.Arguments)
		p.b.WriteByte(')')
	case *Get:
		p.postfixTarget(e.Object)
		p.b.WriteByte('.')
		p.b.WriteString(e.Name.Lexeme)
	case *Index:
		p.postfixTarget(e.Object)
		p.b.WriteByte('[')
		p.expression(e.Index, false)
		p.b.WriteByte(']')
	case *Assignment:
		p.open(nested)
		p.b.WriteString(e.Name.Lexeme)
		p.b.WriteString(" = ")
		p.expression(e.Value, false)
		p.close(nested)
	case *ArrayAssignment:
		p.open(nested)
		p.postfixTarget(e.Object)
		p.b.WriteByte('[')
		p.expression(e.Index, false)
		p.b.WriteString("] = ")
		p.expression(e.Value, false)
		p.close(nested)
	}
}

// postfixTarget writes the receiver of a call, property access or index.
// Anything that is not already a primary or postfix form gets parentheses.
func (p *printer) postfixTarget(expr Expression) {
	switch expr.(type) {
	case *Variable, *Call, *Get, *Index, *ArrayLiteral, *StringLiteral, *IntegerLiteral, *FloatLiteral, *BooleanLiteral:
		p.expression(expr, false)
	default:
		p.b.WriteByte('(')
		p.expression(expr, false)
		p.b.WriteByte(')')
	}
}

func (p *printer) list(exprs []Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.expression(e, false)
	}
}

func (p *printer) open(nested bool) {
	if nested {
		p.b.WriteByte('(')
	}
}

func (p *printer) close(nested bool) {
	if nested {
		p.b.WriteByte(')')
	}
}

func isUnary(expr Expression) bool {
	_, ok := expr.(*Unary)
	return ok
}

// formatFloatLiteral keeps a fractional part so the literal lexes back as a float.
func formatFloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
