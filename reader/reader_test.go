package reader

import (
	"testing"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src string) []ast.Node {
	t.Helper()
	program, err := New(src).ReadProgram()
	require.NoError(t, err)
	return program
}

func TestReadLetVarAndLetFunc(t *testing.T) {
	program := readAll(t, `(let x 41) (let (inc n) (add n 1)) (inc x)`)
	require.Len(t, program, 3)

	letVar, ok := program[0].(*ast.LetVar)
	require.True(t, ok)
	assert.Equal(t, "x", letVar.Name)

	letFunc, ok := program[1].(*ast.LetFunc)
	require.True(t, ok)
	assert.Equal(t, "inc", letFunc.Name)
	assert.Equal(t, []string{"n"}, letFunc.Params)

	call, ok := program[2].(*ast.SExpr)
	require.True(t, ok)
	assert.Equal(t, "inc", call.Head.(*ast.Var).Name)
}

func TestReadListAndDict(t *testing.T) {
	program := readAll(t, `[1 2 3]`)
	list, ok := program[0].(*ast.ListExpr)
	require.True(t, ok)
	assert.Len(t, list.Items, 3)

	program = readAll(t, `{ (1 "a") (2 "b") }`)
	dict, ok := program[0].(*ast.DictExpr)
	require.True(t, ok)
	require.Len(t, dict.Pairs, 2)
	assert.Equal(t, "a", dict.Pairs[0].Value.(*ast.String).Value)
}

func TestReadLambda(t *testing.T) {
	program := readAll(t, `(\ (a b) (add a b))`)
	lambda, ok := program[0].(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, lambda.Params)
}

func TestReadDoAllowsEmpty(t *testing.T) {
	// An empty `do` is a static error at evaluation time, not read time
	// (spec.md §4.4) — the reader must still parse it.
	program := readAll(t, `(do)`)
	doNode, ok := program[0].(*ast.Do)
	require.True(t, ok)
	assert.Empty(t, doNode.Items)
}

func TestReadUnitExpression(t *testing.T) {
	program := readAll(t, `()`)
	sexpr, ok := program[0].(*ast.SExpr)
	require.True(t, ok)
	assert.True(t, sexpr.IsUnit())
}

func TestReadExecForm(t *testing.T) {
	program := readAll(t, `(@ "ls" "-la")`)
	exec, ok := program[0].(*ast.Exec)
	require.True(t, ok)
	require.Len(t, exec.Args, 2)
}

func TestMacroDefinitionAndExpansion(t *testing.T) {
	program := readAll(t, `(macro (unless %c{expr} %b{expr}) (%c () %b)) (unless (= 1 2) "ran") (unless (= 1 1) "ran")`)
	require.Len(t, program, 3)

	def, ok := program[0].(*ast.MacroDef)
	require.True(t, ok)
	assert.Equal(t, "unless", def.Name)

	expanded, ok := program[1].(*ast.SExpr)
	require.True(t, ok)
	cond, ok := expanded.Head.(*ast.SExpr)
	require.True(t, ok)
	assert.Equal(t, "=", cond.Head.(*ast.Var).Name)
	require.Len(t, expanded.Args, 2)
	assert.True(t, expanded.Args[0].(*ast.SExpr).IsUnit())
	assert.Equal(t, "ran", expanded.Args[1].(*ast.String).Value)
}

func TestReservedWordOutsideCallingPositionIsError(t *testing.T) {
	_, err := New(`let`).ReadProgram()
	assert.Error(t, err)
}

func TestFactorialHeader(t *testing.T) {
	program := readAll(t, `(let (fact n) ((= n 0) 1 (mul n (fact (sub n 1)))))`)
	letFunc, ok := program[0].(*ast.LetFunc)
	require.True(t, ok)
	assert.Equal(t, []string{"n"}, letFunc.Params)
}

func TestStringRoundTrip(t *testing.T) {
	program := readAll(t, `(add 1 2)`)
	assert.Equal(t, "(add 1 2)", program[0].String())
}
