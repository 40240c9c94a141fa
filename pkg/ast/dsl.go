package ast

import "troll/interpreter-go/pkg/token"

// Builders for constructing trees by hand in tests and tools. Tokens get line 1
// and their canonical spelling.

func tok(kind token.Kind) token.Token {
	return token.Synthetic(kind, 1)
}

func name(n string) token.Token {
	return token.Ident(n, 1)
}

// Literal helpers.

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(tok(token.LeftBracket), elements)
}

// Expression helpers.

func ID(n string) *Variable {
	return NewVariable(name(n))
}

func Un(operator token.Kind, operand Expression) *Unary {
	return NewUnary(tok(operator), operand)
}

func Bin(operator token.Kind, left, right Expression) *Binary {
	return NewBinary(left, tok(operator), right)
}

func And(left, right Expression) *Logical {
	return NewLogical(left, tok(token.AmpAmp), right)
}

func Or(left, right Expression) *Logical {
	return NewLogical(left, tok(token.PipePipe), right)
}

func CallExpr(callee Expression, args ...Expression) *Call {
	return NewCall(callee, tok(token.RightParen), args)
}

func CallFn(n string, args ...Expression) *Call {
	return CallExpr(ID(n), args...)
}

func Prop(object Expression, n string) *Get {
	return NewGet(object, name(n))
}

func Idx(object, index Expression) *Index {
	return NewIndex(object, tok(token.RightBracket), index)
}

func Assign(n string, value Expression) *Assignment {
	return NewAssignment(name(n), value)
}

func IdxAssign(object, index, value Expression) *ArrayAssignment {
	return NewArrayAssignment(object, tok(token.RightBracket), index, value)
}

// Statement helpers.

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func LetStmt(n string, initializer Expression) *Let {
	return NewLet(name(n), initializer)
}

func IfStmt(condition Expression, then, otherwise Statement) *If {
	return NewIf(condition, then, otherwise)
}

func WhileStmt(condition Expression, body Statement) *While {
	return NewWhile(condition, body)
}

func Ret(value Expression) *Return {
	return NewReturn(tok(token.Return), value)
}

func PrintStmt(expression Expression) *Print {
	return NewPrint(expression)
}

func ExprStmt(expression Expression) *ExpressionStatement {
	return NewExpressionStatement(expression)
}

func Fn(n string, params []string, body ...Statement) *Function {
	tokens := make([]token.Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, name(p))
	}
	return NewFunction(name(n), tokens, body)
}

func ModelDecl(n string, members ...ModelMember) *Model {
	return NewModel(name(n), members)
}
