package interpreter

import (
	"log/slog"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/runtime"
	"troll/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, argExpr := range n.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, newRuntimeError(n.Paren, "Can only call functions and models.")
	}
	if len(args) != callable.Arity() {
		return nil, runtimeErrorf(n.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return i.invoke(n.Paren, callable, args)
}

// invoke runs a callable whose arity has already been checked. paren locates
// errors raised by the call itself.
func (i *Interpreter) invoke(paren token.Token, callable runtime.Callable, args []runtime.Value) (runtime.Value, error) {
	if i.callDepth >= i.maxCallDepth {
		return nil, newRuntimeError(paren, "Stack overflow.")
	}
	i.callDepth++
	defer func() { i.callDepth-- }()
	i.logger.Debug("call",
		slog.String("callee", callable.Name()),
		slog.Int("arity", callable.Arity()),
		slog.Int("depth", i.callDepth),
		slog.Int("line", paren.Line))

	switch fn := callable.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case *runtime.ModelValue:
		return i.instantiate(fn)
	default:
		return nil, newRuntimeError(paren, "Can only call functions and models.")
	}
}

// invokeFunction binds args in a fresh scope over the closure and runs the
// body. A function that finishes without return yields nil.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	callEnv := fn.Closure.Extend()
	for idx, param := range fn.Declaration.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}
	result, err := i.executeBlock(fn.Declaration.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if result.returned {
		return result.value, nil
	}
	return runtime.Nil, nil
}

// instantiate builds an instance by running every member declaration of the
// model in a new scope over the model's closure. Member functions close over
// that scope, so they see the instance's fields as plain variables.
func (i *Interpreter) instantiate(model *runtime.ModelValue) (runtime.Value, error) {
	instance := &runtime.InstanceValue{Model: model, Env: model.Closure.Extend()}
	for _, member := range model.Declaration.Members {
		if _, err := i.executeStatement(member, instance.Env); err != nil {
			return nil, err
		}
	}
	i.logger.Debug("instantiate",
		slog.String("model", model.Name()),
		slog.Int("members", len(instance.Env.Keys())))
	return instance, nil
}
