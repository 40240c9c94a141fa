package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SExpr renders a program as one parenthesized form per statement, e.g.
// (let x (+ 1 2)). It is meant for debugging the parser.
func SExpr(program *Program) string {
	var b strings.Builder
	for _, stmt := range program.Statements {
		b.WriteString(SExprNode(stmt))
		b.WriteByte('\n')
	}
	return b.String()
}

// SExprNode renders a single node.
func SExprNode(node Node) string {
	switch n := node.(type) {
	case nil:
		return "nil"
	case *Program:
		return strings.TrimSuffix(SExpr(n), "\n")
	case *IntegerLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *FloatLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StringLiteral:
		return `"` + n.Value + `"`
	case *BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *ArrayLiteral:
		return parenthesize("array", exprNodes(n.Elements)...)
	case *Variable:
		return n.Name.Lexeme
	case *Unary:
		return parenthesize(n.Operator.Lexeme, n.Operand)
	case *Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Call:
		return parenthesize("call", append([]Node{n.Callee}, exprNodes(n.Arguments)...)...)
	case *Get:
		return parenthesize(". "+n.Name.Lexeme, n.Object)
	case *Index:
		return parenthesize("index", n.Object, n.Index)
	case *Assignment:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *ArrayAssignment:
		return parenthesize("[]=", n.Object, n.Index, n.Value)
	case *Block:
		return parenthesize("block", stmtNodes(n.Statements)...)
	case *Let:
		if n.Initializer == nil {
			return parenthesize("let " + n.Name.Lexeme)
		}
		return parenthesize("let "+n.Name.Lexeme, n.Initializer)
	case *If:
		if n.Else == nil {
			return parenthesize("if", n.Condition, n.Then)
		}
		return parenthesize("if", n.Condition, n.Then, n.Else)
	case *While:
		return parenthesize("while", n.Condition, n.Body)
	case *Return:
		if n.Value == nil {
			return "(return)"
		}
		return parenthesize("return", n.Value)
	case *Print:
		return parenthesize("print", n.Expression)
	case *ExpressionStatement:
		return SExprNode(n.Expression)
	case *Function:
		params := make([]string, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, p.Lexeme)
		}
		head := fmt.Sprintf("fn %s (%s)", n.Name.Lexeme, strings.Join(params, " "))
		return parenthesize(head, stmtNodes(n.Body)...)
	case *Model:
		members := make([]Node, 0, len(n.Members))
		for _, m := range n.Members {
			members = append(members, m)
		}
		return parenthesize("model "+n.Name.Lexeme, members...)
	default:
		return fmt.Sprintf("(?%T)", node)
	}
}

func parenthesize(head string, nodes ...Node) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, n := range nodes {
		b.WriteByte(' ')
		b.WriteString(SExprNode(n))
	}
	b.WriteByte(')')
	return b.String()
}

func exprNodes(exprs []Expression) []Node {
	out := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e)
	}
	return out
}

func stmtNodes(stmts []Statement) []Node {
	out := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s)
	}
	return out
}
