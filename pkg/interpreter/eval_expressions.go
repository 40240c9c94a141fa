package interpreter

import (
	"errors"
	"fmt"
	"math"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/runtime"
	"troll/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.NumberValue{Val: float64(n.Value)}, nil
	case *ast.FloatLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.Variable:
		val, err := env.Get(n.Name.Lexeme)
		if err != nil {
			return nil, i.wrapEnvError(n.Name, err)
		}
		return val, nil
	case *ast.Assignment:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Name.Lexeme, val); err != nil {
			return nil, i.wrapEnvError(n.Name, err)
		}
		return val, nil
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Index:
		return i.evaluateIndex(n, env)
	case *ast.ArrayAssignment:
		return i.evaluateArrayAssignment(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression %T", node)
	}
}

func (i *Interpreter) wrapEnvError(name token.Token, err error) error {
	var undefined *runtime.UndefinedVariableError
	if errors.As(err, &undefined) {
		return newRuntimeError(name, undefined.Error())
	}
	return err
}

func (i *Interpreter) evaluateArrayLiteral(n *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return runtime.NewArray(elements), nil
}

func (i *Interpreter) evaluateUnary(n *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	case token.Minus:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, newRuntimeError(n.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, runtimeErrorf(n.Operator, "Unsupported unary operator %s.", n.Operator.Lexeme)
	}
}

func (i *Interpreter) evaluateLogical(n *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.PipePipe:
		if runtime.Truthy(left) {
			return left, nil
		}
	case token.AmpAmp:
		if !runtime.Truthy(left) {
			return left, nil
		}
	default:
		return nil, runtimeErrorf(n.Operator, "Unsupported logical operator %s.", n.Operator.Lexeme)
	}
	return i.evaluateExpression(n.Right, env)
}

func (i *Interpreter) evaluateBinary(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	op := n.Operator
	switch op.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.Plus:
		if l, ok := left.(runtime.StringValue); ok {
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		l, lok := left.(runtime.NumberValue)
		r, rok := right.(runtime.NumberValue)
		if !lok || !rok {
			return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
		}
		return runtime.NumberValue{Val: l.Val + r.Val}, nil
	case token.At:
		return matrixMultiply(op, left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		return runtime.NumberValue{Val: l / r}, nil
	case token.Percent:
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l > r}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	case token.Less:
		return runtime.BoolValue{Val: l < r}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	default:
		return nil, runtimeErrorf(op, "Unsupported binary operator %s.", op.Lexeme)
	}
}

func numberOperands(op token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}

func (i *Interpreter) evaluateGet(n *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, newRuntimeError(n.Name, "Only instances have properties.")
	}
	val, ok := instance.Property(n.Name.Lexeme)
	if !ok {
		return nil, runtimeErrorf(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
	}
	return val, nil
}

func (i *Interpreter) evaluateIndex(n *ast.Index, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(n.Index, env)
	if err != nil {
		return nil, err
	}
	arr, idx, err := checkIndex(n.Bracket, object, index)
	if err != nil {
		return nil, err
	}
	return arr.Elements[idx], nil
}

// evaluateArrayAssignment evaluates target, index and value left to right
// before validating the slot.
func (i *Interpreter) evaluateArrayAssignment(n *ast.ArrayAssignment, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(n.Index, env)
	if err != nil {
		return nil, err
	}
	val, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	arr, idx, err := checkIndex(n.Bracket, object, index)
	if err != nil {
		return nil, err
	}
	arr.Elements[idx] = val
	return val, nil
}

// checkIndex verifies that object is an array and index an in-range integer.
func checkIndex(bracket token.Token, object, index runtime.Value) (*runtime.ArrayValue, int, error) {
	arr, ok := object.(*runtime.ArrayValue)
	if !ok {
		return nil, 0, newRuntimeError(bracket, "Only arrays can be indexed.")
	}
	num, ok := index.(runtime.NumberValue)
	if !ok || math.IsInf(num.Val, 0) || num.Val != math.Trunc(num.Val) {
		return nil, 0, newRuntimeError(bracket, "Array index must be an integer.")
	}
	if num.Val < 0 || num.Val >= float64(len(arr.Elements)) {
		return nil, 0, runtimeErrorf(bracket, "Index %s out of bounds (size: %d).", runtime.FormatNumber(num.Val), len(arr.Elements))
	}
	return arr, int(num.Val), nil
}
