package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"troll/interpreter-go/pkg/ast"
	"troll/interpreter-go/pkg/runtime"
	"troll/interpreter-go/pkg/token"
)

func TestArithmeticAndPrecedence(t *testing.T) {
	assert.Equal(t, "7\n", mustRun(t, "print(1 + 2 * 3);"))
	assert.Equal(t, "9\n", mustRun(t, "print((1 + 2) * 3);"))
	assert.Equal(t, "2.5\n", mustRun(t, "print(5 / 2);"))
	assert.Equal(t, "1\n", mustRun(t, "print(7 % 3);"))
	assert.Equal(t, "-1.5\n", mustRun(t, "print(-(1 + 0.5));"))
	assert.Equal(t, "-4\n", mustRun(t, "print(1 - 2 - 3);"))
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	assert.Equal(t, "+Inf\n-Inf\n", mustRun(t, "print(1 / 0); print(-1 / 0);"))
	assert.Equal(t, "NaN\n", mustRun(t, "print(0 / 0);"))
}

func TestStringConcatenation(t *testing.T) {
	assert.Equal(t, "ab\n", mustRun(t, `print("a" + "b");`))

	rt := runtimeError(t, `print(1 + "a");`)
	assert.Equal(t, "Operands must be two numbers or two strings.", rt.Message)
	assert.Equal(t, "Operands must be two numbers or two strings.\n[line 1]", rt.Error())
}

func TestNumericOperandChecks(t *testing.T) {
	for _, src := range []string{`print("a" - 1);`, `print(true * 2);`, `print(1 < "2");`, `let n; print(n >= 1);`, `print("a" % "b");`} {
		rt := runtimeError(t, src)
		assert.Equal(t, "Operands must be numbers.", rt.Message, src)
	}
	rt := runtimeError(t, `print(-"x");`)
	assert.Equal(t, "Operand must be a number.", rt.Message)
}

func TestComparisonAndEquality(t *testing.T) {
	out := mustRun(t, `
print(1 < 2);
print(2 <= 2);
print(3 > 4);
print(1 == 1);
print("a" == "a");
print(1 == "1");
print(true != false);
let a = [1];
let b = [1];
print(a == b);
print(a == a);
`)
	assert.Equal(t, "true\ntrue\nfalse\ntrue\ntrue\nfalse\ntrue\nfalse\ntrue\n", out)
}

func TestTruthinessAndLogicalOperators(t *testing.T) {
	out := mustRun(t, `
let n;
print(!n);
print(!0);
print(!"");
print(n || "fallback");
print(0 && "second");
print(false && undefinedName);
print(true || undefinedName);
`)
	assert.Equal(t, "true\nfalse\nfalse\nfallback\nsecond\nfalse\ntrue\n", out)
}

func TestScopingAndShadowing(t *testing.T) {
	assert.Equal(t, "2\n1\n", mustRun(t, "let x = 1; { let x = 2; print(x); } print(x);"))
	assert.Equal(t, "3\n", mustRun(t, "let x = 1; { x = 3; } print(x);"))
}

func TestAssignmentDoesNotCreateGlobals(t *testing.T) {
	rt := runtimeError(t, "y = 1;")
	assert.Equal(t, "Undefined variable 'y'.", rt.Message)
	assert.Equal(t, "y", rt.Token.Lexeme)

	rt = runtimeError(t, "\n\nprint(missing);")
	assert.Equal(t, "Undefined variable 'missing'.\n[line 3]", rt.Error())
}

func TestAssignmentIsAnExpression(t *testing.T) {
	assert.Equal(t, "5\n5\n5\n", mustRun(t, "let a; let b; print(a = b = 5); print(a); print(b);"))
}

func TestControlFlow(t *testing.T) {
	out := mustRun(t, `
let i = 0;
let sum = 0;
while (i < 5) {
  if (i % 2 == 0) sum = sum + i; else sum = sum - 1;
  i = i + 1;
}
print(sum);
let none;
if (none) print("no"); else print("yes");
`)
	assert.Equal(t, "4\nyes\n", out)
}

func TestFunctionsAndRecursion(t *testing.T) {
	out := mustRun(t, `
fn fib(n) {
  if (n <= 1) return n;
  return fib(n - 1) + fib(n - 2);
}
fn noop() {}
print(fib(10));
print(noop());
print(fib);
`)
	assert.Equal(t, "55\nnil\n<fn fib>\n", out)
}

func TestReturnUnwindsNestedBlocksAndLoops(t *testing.T) {
	out := mustRun(t, `
fn find(items, target) {
  let i = 0;
  while (true) {
    {
      if (items[i] == target) { return i; }
    }
    i = i + 1;
  }
  print("unreachable");
}
print(find([4, 5, 6], 6));
print("after");
`)
	assert.Equal(t, "2\nafter\n", out)
}

func TestClosuresCaptureDefiningEnvironment(t *testing.T) {
	out := mustRun(t, `
fn makeCounter() {
  let count = 0;
  fn inc() {
    count = count + 1;
    return count;
  }
  return inc;
}
let c = makeCounter();
c();
c();
print(c());
let d = makeCounter();
print(d());
`)
	assert.Equal(t, "3\n1\n", out)
}

func TestClosureSeesLexicalNotDynamicScope(t *testing.T) {
	out := mustRun(t, `
let x = "global";
fn show() { print(x); }
fn caller() {
  let x = "local";
  show();
}
caller();
`)
	assert.Equal(t, "global\n", out)
}

func TestCallErrors(t *testing.T) {
	rt := runtimeError(t, `"text"();`)
	assert.Equal(t, "Can only call functions and models.", rt.Message)

	rt = runtimeError(t, "fn f(a, b) { return a; }\nf(1);")
	assert.Equal(t, "Expected 2 arguments but got 1.", rt.Message)
	assert.Equal(t, 2, rt.Token.Line)

	rt = runtimeError(t, "model M { let x = 1; } M(1);")
	assert.Equal(t, "Expected 0 arguments but got 1.", rt.Message)
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	out := mustRun(t, `
fn trace(v) { print(v); return v; }
fn three(a, b, c) { return a + b + c; }
print(three(trace(1), trace(2), trace(3)));
`)
	assert.Equal(t, "1\n2\n3\n6\n", out)
}

func TestModelsAndInstances(t *testing.T) {
	out := mustRun(t, `
model Counter {
  let count = 0;
  let label;
  fn inc() { count = count + 1; return count; }
}
let a = Counter();
let b = Counter();
a.inc();
a.inc();
print(a.count);
print(b.count);
print(a.label);
print(a);
print(Counter);
print(a.inc);
`)
	assert.Equal(t, "2\n0\nnil\ninstance of Counter\n<model Counter>\n<fn inc>\n", out)
}

func TestInstancesShareTheirModel(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	require.NoError(t, interp.Execute(parseProgram(t, "model P { let v = 1; } let a = P(); let b = P();")))

	a, err := interp.GlobalEnvironment().Get("a")
	require.NoError(t, err)
	b, err := interp.GlobalEnvironment().Get("b")
	require.NoError(t, err)
	ai := a.(*runtime.InstanceValue)
	bi := b.(*runtime.InstanceValue)
	assert.Same(t, ai.Model, bi.Model)
	assert.NotSame(t, ai.Env, bi.Env)
	assert.Same(t, interp.GlobalEnvironment(), ai.Env.Parent())
}

func TestPropertyErrors(t *testing.T) {
	rt := runtimeError(t, "let x = 1; print(x.y);")
	assert.Equal(t, "Only instances have properties.", rt.Message)

	rt = runtimeError(t, "model P { let a = 1; } print(P().b);")
	assert.Equal(t, "Undefined property 'b'.", rt.Message)

	rt = runtimeError(t, "let outer = 1; model P { let a = 1; } print(P().outer);")
	assert.Equal(t, "Undefined property 'outer'.", rt.Message)
}

func TestArrays(t *testing.T) {
	assert.Equal(t, "[1, 9, 3]\n", mustRun(t, "let a = [1,2,3]; a[1] = 9; print(a);"))
	assert.Equal(t, "[[1, 2], [], [a, true, nil]]\n", mustRun(t, `let n; print([[1, 2], [], ["a", true, n]]);`))
	assert.Equal(t, "[5]\n", mustRun(t, "let a = [1]; let b = a; b[0] = 5; print(a);"))
	assert.Equal(t, "7\n", mustRun(t, "let a = [[0, 7]]; print(a[0][1]);"))
	assert.Equal(t, "4\n", mustRun(t, "let a = [0]; print(a[0] = 4);"))
}

func TestArrayIndexErrors(t *testing.T) {
	rt := runtimeError(t, "let a = [1,2,3]; print(a[5]);")
	assert.Equal(t, "Index 5 out of bounds (size: 3).", rt.Message)

	rt = runtimeError(t, "let a = [1]; a[-1] = 0;")
	assert.Equal(t, "Index -1 out of bounds (size: 1).", rt.Message)

	rt = runtimeError(t, "let a = [1]; print(a[0.5]);")
	assert.Equal(t, "Array index must be an integer.", rt.Message)

	rt = runtimeError(t, `let a = [1]; print(a["0"]);`)
	assert.Equal(t, "Array index must be an integer.", rt.Message)

	rt = runtimeError(t, "let s = 1; print(s[0]);")
	assert.Equal(t, "Only arrays can be indexed.", rt.Message)
}

func TestMatrixMultiply(t *testing.T) {
	out := mustRun(t, `
let a = [[1, 2], [3, 4]];
let b = [[5, 6], [7, 8]];
print(a @ b);
print([[1, 2, 3]] @ [[1], [2], [3]]);
print([[2]] @ [[0.5, 1]]);
`)
	assert.Equal(t, "[[19, 22], [43, 50]]\n[[14]]\n[[1, 2]]\n", out)
}

func TestMatrixMultiplyLeavesOperandsUntouched(t *testing.T) {
	out := mustRun(t, `
let a = [[1, 0], [0, 1]];
let c = a @ a;
c[0][0] = 9;
print(a);
print(c);
`)
	assert.Equal(t, "[[1, 0], [0, 1]]\n[[9, 0], [0, 1]]\n", out)
}

func TestMatrixMultiplyErrors(t *testing.T) {
	cases := map[string]string{
		"print(1 @ [[1]]);":                  "Operands of '@' must be arrays.",
		"print([] @ [[1]]);":                 "Empty matrix.",
		"print([1, 2] @ [[1], [2]]);":        "Matrix multiply only supports 2D matrices.",
		"print([[1, 2]] @ [[1, 2]]);":        "Matrix dimensions mismatch.",
		"print([[1, 2], [3]] @ [[1], [2]]);": "Matrix rows must have equal length.",
		`print([["a"]] @ [[1]]);`:            "Matrix elements must be numbers.",
		"print([[]] @ []);":                  "Empty matrix.",
	}
	for src, want := range cases {
		rt := runtimeError(t, src)
		assert.Equal(t, want, rt.Message, src)
		assert.Equal(t, "@", rt.Token.Lexeme, src)
	}
}

func TestPrintRenderings(t *testing.T) {
	out := mustRun(t, `
let n;
print(n);
print(true);
print(7);
print(2.5);
print(3.0);
print("raw text");
fn f() {}
print(f);
`)
	assert.Equal(t, "nil\ntrue\n7\n2.5\n3\nraw text\n<fn f>\n", out)
}

func TestRuntimeErrorsHaltExecution(t *testing.T) {
	out, err := runSource(t, `print("before"); print(nope); print("after");`)
	require.Error(t, err)
	assert.Equal(t, "before\n", out)

	var rt *RuntimeError
	require.True(t, errors.As(err, &rt))
	d := rt.Diagnostic()
	assert.Equal(t, "Undefined variable 'nope'.\n[line 1]", d.Error())
}

func TestStackOverflowIsARuntimeError(t *testing.T) {
	_, err := runSource(t, "fn loop(n) { return loop(n + 1); } loop(0);", WithMaxCallDepth(200))
	var rt *RuntimeError
	require.True(t, errors.As(err, &rt))
	assert.Equal(t, "Stack overflow.", rt.Message)
}

func TestCallDepthRecoversAfterError(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out), WithMaxCallDepth(50))
	err := interp.Execute(parseProgram(t, "fn deep(n) { return deep(n + 1); } deep(0);"))
	require.Error(t, err)
	require.NoError(t, interp.Execute(parseProgram(t, "fn id(x) { return x; } print(id(1));")))
	assert.Equal(t, "1\n", out.String())
}

func TestTopLevelReturnGuard(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	program := ast.Prog(ast.PrintStmt(ast.Int(1)), ast.Ret(ast.Int(2)), ast.PrintStmt(ast.Int(3)))
	err := interp.Execute(program)
	var rt *RuntimeError
	require.True(t, errors.As(err, &rt))
	assert.Equal(t, "Can't return from top-level code.", rt.Message)
	assert.Equal(t, "1\n", out.String())
}

func TestGlobalsPersistAcrossExecutions(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	require.NoError(t, interp.Execute(parseProgram(t, "let total = 10;")))
	require.NoError(t, interp.Execute(parseProgram(t, "total = total + 5;")))

	val, err := interp.Evaluate(ast.Bin(token.Star, ast.ID("total"), ast.Int(2)))
	require.NoError(t, err)
	assert.Equal(t, runtime.NumberValue{Val: 30}, val)
}

func TestNestedFunctionDeclarationsAreScoped(t *testing.T) {
	rt := runtimeError(t, "fn outer() { fn inner() { return 1; } return inner(); } print(outer()); print(inner());")
	assert.Equal(t, "Undefined variable 'inner'.", rt.Message)
}
