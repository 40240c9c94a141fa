package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/driver"
	"troll/interpreter-go/pkg/parser"
	"troll/interpreter-go/pkg/runtime"
)

const (
	historyFile = ".troll_history"
	promptMain  = "troll> "
	promptCont  = "   ... "
	replSource  = "<repl>"
)

// lineReader is the part of *liner.State the REPL needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

type historyLiner struct {
	*liner.State
	path string
}

func openLiner() lineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	r := &historyLiner{State: state}
	if home, err := os.UserHomeDir(); err == nil {
		r.path = filepath.Join(home, historyFile)
		if f, err := os.Open(r.path); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return r
}

func (r *historyLiner) Close() error {
	if r.path != "" {
		if f, err := os.Create(r.path); err == nil {
			_, _ = r.WriteHistory(f)
			_ = f.Close()
		}
	}
	return r.State.Close()
}

// repl reads statements until end of input. Globals persist between inputs;
// diagnostics and runtime errors are reported and the loop goes on.
func (t *tool) repl(session *driver.Session, in lineReader) int {
	fmt.Fprintf(t.stdout, "troll %s (type :quit to exit)\n", cliToolVersion)
	for {
		src, program, diags, ok := readInput(session, in)
		if !ok {
			fmt.Fprintln(t.stdout)
			return driver.ExitOK
		}
		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit" || trimmed == ":exit":
			return driver.ExitOK
		case trimmed == ":env":
			t.printGlobals(session)
			continue
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(t.stdout, "unknown command. Commands: :env, :quit.")
			continue
		}
		in.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if len(diags) > 0 {
			session.Reporter().ReportAll(diags)
			continue
		}
		if expr, ok := soleExpression(program); ok {
			if val, code := session.Evaluate(replSource, expr); code == driver.ExitOK && val.Kind() != runtime.KindNil {
				fmt.Fprintln(t.stdout, runtime.FormatValue(val))
			}
			continue
		}
		session.Execute(replSource, program)
	}
}

// soleExpression returns the expression of a program made of exactly one
// expression statement. Its value is echoed.
func soleExpression(program *ast.Program) (ast.Expression, bool) {
	if len(program.Statements) != 1 {
		return nil, false
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	return stmt.Expression, true
}

func (t *tool) printGlobals(session *driver.Session) {
	for _, b := range session.Interpreter().GlobalEnvironment().Bindings() {
		fmt.Fprintf(t.stdout, "%s = %s\n", b.Name, runtime.FormatValue(b.Value))
	}
}

// readInput keeps prompting while the buffered text is an unfinished program.
// A blank continuation line submits the buffer as is. ok is false at end of
// input.
func readInput(session *driver.Session, in lineReader) (src string, program *ast.Program, diags diagnostics.List, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", nil, nil, true
		case errors.Is(err, io.EOF):
			if b.Len() == 0 {
				return "", nil, nil, false
			}
			src = b.String()
			program, diags = session.Parse(replSource, src)
			return src, program, diags, true
		case err != nil:
			return "", nil, nil, false
		}

		blank := strings.TrimSpace(line) == ""
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src = b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, nil, nil, true
		}
		program, diags = session.Parse(replSource, src)
		if len(diags) == 0 || blank || !parser.IsIncomplete(diags) {
			return src, program, diags, true
		}
	}
}
