package interpreter

import (
	"io"
	"log/slog"
	"os"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested calls unless WithMaxCallDepth says otherwise.
const DefaultMaxCallDepth = 10000

// Interpreter walks troll ASTs. It is not safe for concurrent use.
type Interpreter struct {
	global       *runtime.Environment
	out          io.Writer
	logger       *slog.Logger
	maxCallDepth int
	callDepth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs print output to w.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxCallDepth limits how deeply calls may nest before execution fails
// with a stack overflow error. Values below one keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		out:          os.Stdout,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Execute runs program in the global environment. Bindings persist across
// calls, so a REPL can feed one program per input line. The first runtime
// error stops execution and is returned as a *RuntimeError.
func (i *Interpreter) Execute(program *ast.Program) error {
	if program == nil {
		return nil
	}
	i.callDepth = 0
	for _, stmt := range program.Statements {
		result, err := i.executeStatement(stmt, i.global)
		if err != nil {
			return err
		}
		if result.returned {
			return newRuntimeError(result.keyword, "Can't return from top-level code.")
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the global environment.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	i.callDepth = 0
	return i.evaluateExpression(expr, i.global)
}
