package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/interpreter"
	"troll/interpreter-go/pkg/lexer"
	"troll/interpreter-go/pkg/parser"
	"troll/interpreter-go/pkg/runtime"
)

// Exit codes follow sysexits(3).
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
	ExitConfig   = 78
)

// Options configures a Session. Zero values fall back to the process streams,
// auto color, a discarding logger and the interpreter's default call depth.
type Options struct {
	Stdout       io.Writer
	Stderr       io.Writer
	Color        diagnostics.ColorMode
	Logger       *slog.Logger
	MaxCallDepth int
}

// Session runs source texts through lexer, parser and interpreter, reporting
// diagnostics to stderr. Global bindings survive between runs.
type Session struct {
	stdout   io.Writer
	stderr   io.Writer
	reporter *diagnostics.Reporter
	logger   *slog.Logger
	interp   *interpreter.Interpreter
}

// NewSession builds a session from opts.
func NewSession(opts Options) *Session {
	s := &Session{stdout: opts.Stdout, stderr: opts.Stderr, logger: opts.Logger}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.reporter = diagnostics.NewReporter(s.stderr, opts.Color)
	s.interp = interpreter.New(
		interpreter.WithOutput(s.stdout),
		interpreter.WithLogger(s.logger),
		interpreter.WithMaxCallDepth(opts.MaxCallDepth),
	)
	return s
}

// Interpreter exposes the session's interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Reporter exposes the session's diagnostic reporter.
func (s *Session) Reporter() *diagnostics.Reporter {
	return s.reporter
}

// Parse lexes and parses source. Lex diagnostics come before parse diagnostics.
func (s *Session) Parse(name, source string) (*ast.Program, diagnostics.List) {
	start := time.Now()
	tokens, lexDiags := lexer.Scan(source)
	s.logger.Debug("lexed",
		slog.String("source", name),
		slog.Int("tokens", len(tokens)),
		slog.Int("errors", len(lexDiags)),
		slog.Duration("elapsed", time.Since(start)))

	start = time.Now()
	program, parseDiags := parser.Parse(tokens)
	s.logger.Debug("parsed",
		slog.String("source", name),
		slog.Int("statements", len(program.Statements)),
		slog.Int("errors", len(parseDiags)),
		slog.Duration("elapsed", time.Since(start)))

	diags := make(diagnostics.List, 0, len(lexDiags)+len(parseDiags))
	diags = append(diags, lexDiags...)
	diags = append(diags, parseDiags...)
	return program, diags
}

// Check parses source and reports its diagnostics without running it.
func (s *Session) Check(name, source string) (*ast.Program, int) {
	program, diags := s.Parse(name, source)
	if len(diags) > 0 {
		s.reporter.ReportAll(diags)
		return program, ExitDataErr
	}
	return program, ExitOK
}

// RunSource checks and then executes source, returning a sysexits code.
func (s *Session) RunSource(name, source string) int {
	program, code := s.Check(name, source)
	if code != ExitOK {
		return code
	}
	return s.Execute(name, program)
}

// Execute runs an already parsed program.
func (s *Session) Execute(name string, program *ast.Program) int {
	start := time.Now()
	err := s.interp.Execute(program)
	s.logger.Debug("executed",
		slog.String("source", name),
		slog.Bool("ok", err == nil),
		slog.Duration("elapsed", time.Since(start)))
	return s.reportRunError(name, err)
}

// Evaluate computes a single expression against the session globals. The
// value is nil whenever the returned code is not ExitOK.
func (s *Session) Evaluate(name string, expr ast.Expression) (runtime.Value, int) {
	val, err := s.interp.Evaluate(expr)
	if code := s.reportRunError(name, err); code != ExitOK {
		return nil, code
	}
	return val, ExitOK
}

func (s *Session) reportRunError(name string, err error) int {
	if err == nil {
		return ExitOK
	}
	var rt *interpreter.RuntimeError
	if errors.As(err, &rt) {
		s.reporter.Report(rt.Diagnostic())
		return ExitSoftware
	}
	s.logger.Error("execution failed", slog.String("source", name), slog.Any("error", err))
	fmt.Fprintln(s.stderr, err)
	return ExitSoftware
}

// RunFile reads path and runs it.
func (s *Session) RunFile(path string) int {
	source, err := ReadSource(path)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return ExitIOErr
	}
	return s.RunSource(path, source)
}

// ReadSource loads a script from disk.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not open file %s: %w", path, err)
	}
	return string(data), nil
}
