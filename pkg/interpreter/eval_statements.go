package interpreter

import (
	"fmt"
	"io"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/runtime"
	"troll/interpreter-go/pkg/token"
)

// completion is the control-flow outcome of a statement. A returned
// completion travels up through blocks and loops until a call consumes it.
type completion struct {
	returned bool
	value    runtime.Value
	keyword  token.Token
}

var normalCompletion = completion{}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normalCompletion, err
	case *ast.Print:
		val, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return normalCompletion, err
		}
		if _, err := io.WriteString(i.out, runtime.FormatValue(val)+"\n"); err != nil {
			return normalCompletion, fmt.Errorf("print: %w", err)
		}
		return normalCompletion, nil
	case *ast.Let:
		var val runtime.Value = runtime.Nil
		if n.Initializer != nil {
			var err error
			val, err = i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return normalCompletion, err
			}
		}
		env.Define(n.Name.Lexeme, val)
		return normalCompletion, nil
	case *ast.Block:
		return i.executeBlock(n.Statements, env.Extend())
	case *ast.If:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if runtime.Truthy(cond) {
			return i.executeStatement(n.Then, env)
		}
		if n.Else != nil {
			return i.executeStatement(n.Else, env)
		}
		return normalCompletion, nil
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.Return:
		var val runtime.Value = runtime.Nil
		if n.Value != nil {
			var err error
			val, err = i.evaluateExpression(n.Value, env)
			if err != nil {
				return normalCompletion, err
			}
		}
		return completion{returned: true, value: val, keyword: n.Keyword}, nil
	case *ast.Function:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return normalCompletion, nil
	case *ast.Model:
		env.Define(n.Name.Lexeme, &runtime.ModelValue{Declaration: n, Closure: env})
		return normalCompletion, nil
	case nil:
		return normalCompletion, nil
	default:
		return normalCompletion, fmt.Errorf("unsupported statement %T", node)
	}
}

// executeBlock runs statements in env, which the caller has already created,
// stopping at the first error or return.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) (completion, error) {
	for _, stmt := range statements {
		result, err := i.executeStatement(stmt, env)
		if err != nil || result.returned {
			return result, err
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeWhile(loop *ast.While, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if !runtime.Truthy(cond) {
			return normalCompletion, nil
		}
		result, err := i.executeStatement(loop.Body, env)
		if err != nil || result.returned {
			return result, err
		}
	}
}
