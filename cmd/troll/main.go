package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/diagnostics"
	"troll/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0-dev"

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "troll.yml manifest to use instead of the discovered one",
	}
	colorFlag = cli.StringFlag{
		Name:   "color",
		Usage:  "colorize diagnostics: auto, always or never",
		EnvVar: "TROLL_COLOR",
	}
	logLevelFlag = cli.StringFlag{
		Name:   "log-level",
		Usage:  "log level for interpreter traces: debug, info, warn or error",
		EnvVar: "TROLL_LOG_LEVEL",
	}
	nativeFlag = cli.BoolFlag{
		Name:  "native",
		Usage: "also list constructs the native backend cannot compile",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Value: "sexpr",
		Usage: "output format: sexpr, source or dump",
	}
)

func main() {
	t := &tool{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		getwd:      os.Getwd,
		lineReader: openLiner,
	}
	os.Exit(t.run(os.Args[1:]))
}

// tool carries the process streams so commands can be driven from tests.
type tool struct {
	stdout     io.Writer
	stderr     io.Writer
	getwd      func() (string, error)
	lineReader func() lineReader

	code int
}

func (t *tool) run(args []string) int {
	app := cli.NewApp()
	app.Name = "troll"
	app.Usage = "run and inspect troll scripts"
	app.Version = cliToolVersion
	app.Writer = t.stdout
	app.ErrWriter = t.stderr
	app.Flags = []cli.Flag{configFlag, colorFlag, logLevelFlag}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Run a script, a manifest script name, or the manifest entry",
			ArgsUsage: "[file|script]",
			Action:    t.runAction,
		},
		{
			Name:      "check",
			Usage:     "Lex and parse a script without running it",
			ArgsUsage: "[file|script]",
			Flags:     []cli.Flag{nativeFlag},
			Action:    t.checkAction,
		},
		{
			Name:      "ast",
			Usage:     "Print the syntax tree of a script",
			ArgsUsage: "[file|script]",
			Flags:     []cli.Flag{formatFlag},
			Action:    t.astAction,
		},
		{
			Name:   "repl",
			Usage:  "Start an interactive session",
			Action: t.replAction,
		},
	}
	app.Action = t.runAction
	app.OnUsageError = func(ctx *cli.Context, err error, isSubcommand bool) error {
		return err
	}

	t.code = driver.ExitOK
	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		fmt.Fprintf(t.stderr, "troll: %v\n", err)
		if t.code == driver.ExitOK {
			t.code = driver.ExitUsage
		}
	}
	return t.code
}

func (t *tool) finish(code int) error {
	t.code = code
	return nil
}

func (t *tool) errorf(format string, args ...interface{}) {
	fmt.Fprintf(t.stderr, "troll: "+format+"\n", args...)
}

func (t *tool) fail(code int, format string, args ...interface{}) error {
	t.errorf(format, args...)
	return t.finish(code)
}

func (t *tool) runAction(ctx *cli.Context) error {
	path, session, code := t.prepare(ctx)
	if code != driver.ExitOK {
		return t.finish(code)
	}
	return t.finish(session.RunFile(path))
}

func (t *tool) checkAction(ctx *cli.Context) error {
	path, session, code := t.prepare(ctx)
	if code != driver.ExitOK {
		return t.finish(code)
	}
	source, err := driver.ReadSource(path)
	if err != nil {
		return t.fail(driver.ExitIOErr, "%v", err)
	}
	program, code := session.Check(path, source)
	if code != driver.ExitOK {
		reporter := session.Reporter()
		return t.fail(code, "%s: %d lexical and %d syntax error(s)", path,
			reporter.Count(diagnostics.PhaseLex), reporter.Count(diagnostics.PhaseParse))
	}
	if !ctx.Bool(nativeFlag.Name) {
		return t.finish(driver.ExitOK)
	}
	unsupported := ast.NativeUnsupported(program)
	for _, node := range unsupported {
		fmt.Fprintf(t.stdout, "%s: %s\n", node.NodeType(), ast.SExprNode(node))
	}
	if len(unsupported) > 0 {
		return t.fail(driver.ExitDataErr, "%s: %d construct(s) outside the native subset", path, len(unsupported))
	}
	return t.finish(driver.ExitOK)
}

func (t *tool) astAction(ctx *cli.Context) error {
	render, err := astRenderer(ctx.String(formatFlag.Name))
	if err != nil {
		return t.fail(driver.ExitUsage, "%v", err)
	}
	path, session, code := t.prepare(ctx)
	if code != driver.ExitOK {
		return t.finish(code)
	}
	source, err := driver.ReadSource(path)
	if err != nil {
		return t.fail(driver.ExitIOErr, "%v", err)
	}
	program, code := session.Check(path, source)
	if code != driver.ExitOK {
		return t.finish(code)
	}
	io.WriteString(t.stdout, render(program))
	return t.finish(driver.ExitOK)
}

func astRenderer(format string) (func(*ast.Program) string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "sexpr":
		return ast.SExpr, nil
	case "source":
		return ast.Format, nil
	case "dump":
		return func(p *ast.Program) string { return ast.Dump(p) }, nil
	default:
		return nil, fmt.Errorf("unknown ast format '%s' (expected sexpr, source or dump)", format)
	}
}

func (t *tool) replAction(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return t.fail(driver.ExitUsage, "repl takes no arguments")
	}
	wd, err := t.getwd()
	if err != nil {
		return t.fail(driver.ExitIOErr, "%v", err)
	}
	manifest, err := loadManifest(ctx, wd)
	if err != nil {
		return t.fail(driver.ExitConfig, "%v", err)
	}
	session, err := t.newSession(ctx, manifest)
	if err != nil {
		return t.fail(driver.ExitUsage, "%v", err)
	}
	in := t.lineReader()
	defer in.Close()
	return t.finish(t.repl(session, in))
}

// prepare resolves the script named on the command line and builds a session
// configured from flags, environment and manifest.
func (t *tool) prepare(ctx *cli.Context) (string, *driver.Session, int) {
	if ctx.NArg() > 1 {
		t.errorf("unexpected arguments: %s", strings.Join(ctx.Args().Tail(), " "))
		return "", nil, driver.ExitUsage
	}
	wd, err := t.getwd()
	if err != nil {
		t.errorf("%v", err)
		return "", nil, driver.ExitIOErr
	}
	path, manifest, err := resolveScript(ctx, wd, ctx.Args().First())
	if err != nil {
		code := driver.ExitUsage
		if isManifestError(err) {
			code = driver.ExitConfig
		}
		t.errorf("%v", err)
		return "", nil, code
	}
	session, err := t.newSession(ctx, manifest)
	if err != nil {
		t.errorf("%v", err)
		return "", nil, driver.ExitUsage
	}
	return path, session, driver.ExitOK
}
