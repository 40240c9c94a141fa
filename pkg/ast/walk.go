package ast

// Inspect traverses node depth-first in source order. fn is called for every
// node; returning false skips that node's children.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		inspectStatements(n.Statements, fn)
	case *ArrayLiteral:
		inspectExpressions(n.Elements, fn)
	case *Unary:
		Inspect(n.Operand, fn)
	case *Binary:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *Logical:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *Call:
		Inspect(n.Callee, fn)
		inspectExpressions(n.Arguments, fn)
	case *Get:
		Inspect(n.Object, fn)
	case *Index:
		Inspect(n.Object, fn)
		Inspect(n.Index, fn)
	case *Assignment:
		Inspect(n.Value, fn)
	case *ArrayAssignment:
		Inspect(n.Object, fn)
		Inspect(n.Index, fn)
		Inspect(n.Value, fn)
	case *Block:
		inspectStatements(n.Statements, fn)
	case *Let:
		if n.Initializer != nil {
			Inspect(n.Initializer, fn)
		}
	case *If:
		Inspect(n.Condition, fn)
		Inspect(n.Then, fn)
		if n.Else != nil {
			Inspect(n.Else, fn)
		}
	case *While:
		Inspect(n.Condition, fn)
		Inspect(n.Body, fn)
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	case *Print:
		Inspect(n.Expression, fn)
	case *ExpressionStatement:
		Inspect(n.Expression, fn)
	case *Function:
		inspectStatements(n.Body, fn)
	case *Model:
		for _, m := range n.Members {
			Inspect(m, fn)
		}
	}
}

func inspectStatements(stmts []Statement, fn func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}

func inspectExpressions(exprs []Expression, fn func(Node) bool) {
	for _, e := range exprs {
		Inspect(e, fn)
	}
}
