package builtin

import (
	"bytes"
	"testing"

	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
	"github.com/RuMaxwell/rumlisp/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run reads and evaluates every top-level form of src against a fresh
// global environment, returning the last value.
func run(t *testing.T, src string) object.Value {
	t.Helper()
	program, err := reader.New(src).ReadProgram()
	require.NoError(t, err)
	env := NewGlobalEnv(nil)
	var result object.Value
	for _, node := range program {
		v, err := eval.Eval(node, env)
		require.NoError(t, err)
		result = v
	}
	return result
}

func TestIncClosure(t *testing.T) {
	result := run(t, `(let (inc n) (add n 1)) (inc 41)`)
	n, ok := result.(*object.Number)
	require.True(t, ok)
	assert.Equal(t, 42.0, n.Value)
}

func TestPushAndLen(t *testing.T) {
	result := run(t, `(let xs [1 2 3]) (push xs 4) (len xs)`)
	n, ok := result.(*object.Number)
	require.True(t, ok)
	assert.Equal(t, 4.0, n.Value)
}

func TestFactorial(t *testing.T) {
	result := run(t, `(let (fact n) ((= n 0) 1 (mul n (fact (sub n 1))))) (fact 5)`)
	n, ok := result.(*object.Number)
	require.True(t, ok)
	assert.Equal(t, 120.0, n.Value)
}

func TestDictGetAndTryget(t *testing.T) {
	result := run(t, `(let d {(1 "one") ("k" "v")}) [(get d 1) (tryget d "missing")]`)
	list, ok := result.(*object.List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "one", list.Items[0].(*object.String).Value)
	assert.Equal(t, object.TheUnit, list.Items[1])
}

func TestDictStrictKeyTypesDoNotCollide(t *testing.T) {
	result := run(t, `(let d {(1 "number-key") ("one" "string-key")}) (get d 1)`)
	s, ok := result.(*object.String)
	require.True(t, ok)
	assert.Equal(t, "number-key", s.Value)
}

func TestEmptyDoIsAnError(t *testing.T) {
	program, err := reader.New(`(do)`).ReadProgram()
	require.NoError(t, err)
	env := NewGlobalEnv(nil)
	_, err = eval.Eval(program[0], env)
	assert.Error(t, err)
}

func TestUnlessMacroRunsBodyWhenConditionIsFalse(t *testing.T) {
	result := run(t, `
		(macro (unless %c{expr} %b{expr}) (%c () %b))
		(unless (= 1 2) "ran")
	`)
	s, ok := result.(*object.String)
	require.True(t, ok)
	assert.Equal(t, "ran", s.Value)
}

func TestAndOrShortCircuit(t *testing.T) {
	result := run(t, `(and #f (div 1 0))`)
	assert.Same(t, object.False, result)

	result = run(t, `(or #t (div 1 0))`)
	assert.Same(t, object.True, result)
}

func TestPrintWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	env := NewGlobalEnv(&buf)
	program, err := reader.New(`(println "hi")`).ReadProgram()
	require.NoError(t, err)
	_, err = eval.Eval(program[0], env)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", buf.String())
}

func TestTypeMismatchErrorFormat(t *testing.T) {
	program, err := reader.New(`(add 1 "two")`).ReadProgram()
	require.NoError(t, err)
	env := NewGlobalEnv(nil)
	_, err = eval.Eval(program[0], env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unaccepted arguments types (number string) for 'add'")
}

func TestPopFrontIsTrueFIFO(t *testing.T) {
	result := run(t, `(let xs [1 2 3]) (pop-front xs) xs`)
	list, ok := result.(*object.List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2.0, list.Items[0].(*object.Number).Value)
	assert.Equal(t, 3.0, list.Items[1].(*object.Number).Value)
}

func TestHostBuiltinsParseButFailAtCall(t *testing.T) {
	program, err := reader.New(`(read "foo.txt")`).ReadProgram()
	require.NoError(t, err)
	env := NewGlobalEnv(nil)
	_, err = eval.Eval(program[0], env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported in this build")
}

func TestEvalBuiltinRestartsPipelineInCallerEnv(t *testing.T) {
	result := run(t, `(let x 10) (eval "(add x 5)")`)
	n, ok := result.(*object.Number)
	require.True(t, ok)
	assert.Equal(t, 15.0, n.Value)
}
