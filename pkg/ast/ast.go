package ast

import "troll/interpreter-go/pkg/token"

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeBinary              NodeType = "Binary"
	NodeUnary               NodeType = "Unary"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeFloatLiteral        NodeType = "FloatLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeVariable            NodeType = "Variable"
	NodeCall                NodeType = "Call"
	NodeGet                 NodeType = "Get"
	NodeIndex               NodeType = "Index"
	NodeAssignment          NodeType = "Assignment"
	NodeArrayAssignment     NodeType = "ArrayAssignment"
	NodeLogical             NodeType = "Logical"
	NodeArrayLiteral        NodeType = "ArrayLiteral"
	NodeBlock               NodeType = "Block"
	NodeLet                 NodeType = "Let"
	NodeIf                  NodeType = "If"
	NodeWhile               NodeType = "While"
	NodeReturn              NodeType = "Return"
	NodePrint               NodeType = "Print"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeFunction            NodeType = "Function"
	NodeModel               NodeType = "Model"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// ModelMember is implemented by the two statements allowed in a model body.
type ModelMember interface {
	Statement
	modelMemberNode()
}

type modelMemberMarker struct{}

func (modelMemberMarker) modelMemberNode() {}

// Program is the parsed statement sequence of one source text.

type Program struct {
	nodeImpl

	Statements []Statement
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// ArrayLiteral keeps its opening bracket for diagnostics.
type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Bracket  token.Token
	Elements []Expression
}

func NewArrayLiteral(bracket token.Token, elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Bracket: bracket, Elements: elements}
}

// Expressions

type Variable struct {
	nodeImpl
	expressionMarker

	Name token.Token
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator token.Token
	Operand  Expression
}

func NewUnary(operator token.Token, operand Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Operand: operand}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewBinary(left Expression, operator token.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

// Logical is kept apart from Binary because its right operand is evaluated lazily.
type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewLogical(left Expression, operator token.Token, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

// Call records the closing paren so arity errors point at the call site.
type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression
	Paren     token.Token
	Arguments []Expression
}

func NewCall(callee Expression, paren token.Token, arguments []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: arguments}
}

type Get struct {
	nodeImpl
	expressionMarker

	Object Expression
	Name   token.Token
}

func NewGet(object Expression, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

// Index keeps the closing bracket; runtime index errors report its line.
type Index struct {
	nodeImpl
	expressionMarker

	Object  Expression
	Bracket token.Token
	Index   Expression
}

func NewIndex(object Expression, bracket token.Token, index Expression) *Index {
	return &Index{nodeImpl: newNodeImpl(NodeIndex), Object: object, Bracket: bracket, Index: index}
}

type Assignment struct {
	nodeImpl
	expressionMarker

	Name  token.Token
	Value Expression
}

func NewAssignment(name token.Token, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

type ArrayAssignment struct {
	nodeImpl
	expressionMarker

	Object  Expression
	Bracket token.Token
	Index   Expression
	Value   Expression
}

func NewArrayAssignment(object Expression, bracket token.Token, index, value Expression) *ArrayAssignment {
	return &ArrayAssignment{nodeImpl: newNodeImpl(NodeArrayAssignment), Object: object, Bracket: bracket, Index: index, Value: value}
}

// Statements

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// Let declares Name in the current scope. Initializer may be nil.
type Let struct {
	nodeImpl
	statementMarker
	modelMemberMarker

	Name        token.Token
	Initializer Expression
}

func NewLet(name token.Token, initializer Expression) *Let {
	return &Let{nodeImpl: newNodeImpl(NodeLet), Name: name, Initializer: initializer}
}

type If struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      Statement
	Else      Statement
}

func NewIf(condition Expression, then, otherwise Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Else: otherwise}
}

type While struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      Statement
}

func NewWhile(condition Expression, body Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body}
}

type Return struct {
	nodeImpl
	statementMarker

	Keyword token.Token
	Value   Expression
}

func NewReturn(keyword token.Token, value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Keyword: keyword, Value: value}
}

type Print struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewPrint(expression Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Expression: expression}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expression}
}

// Function is a named declaration. Its body runs directly in the call
// environment, so it is a statement list rather than a Block.
type Function struct {
	nodeImpl
	statementMarker
	modelMemberMarker

	Name   token.Token
	Params []token.Token
	Body   []Statement
}

func NewFunction(name token.Token, params []token.Token, body []Statement) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Name: name, Params: params, Body: body}
}

type Model struct {
	nodeImpl
	statementMarker

	Name    token.Token
	Members []ModelMember
}

func NewModel(name token.Token, members []ModelMember) *Model {
	return &Model{nodeImpl: newNodeImpl(NodeModel), Name: name, Members: members}
}
