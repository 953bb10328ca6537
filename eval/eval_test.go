package eval_test

import (
	"testing"

	"github.com/RuMaxwell/rumlisp/builtin"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
	"github.com/RuMaxwell/rumlisp/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAll reads and evaluates every top-level form of src against a fresh
// global environment, returning every result in order (spec.md §8's six
// acceptance scenarios are all phrased this way: "Expected results in
// order").
func runAll(t *testing.T, src string) []object.Value {
	t.Helper()
	program, err := reader.New(src).ReadProgram()
	require.NoError(t, err)
	env := builtin.NewGlobalEnv(nil)
	results := make([]object.Value, len(program))
	for i, node := range program {
		v, err := eval.Eval(node, env)
		require.NoError(t, err)
		results[i] = v
	}
	return results
}

func TestScenario1LetAndClosureCall(t *testing.T) {
	results := runAll(t, `(let x 41) (let (inc n) (add n 1)) (inc x)`)
	require.Len(t, results, 3)
	assert.Equal(t, 41.0, results[0].(*object.Number).Value)
	_, ok := results[1].(*object.Closure)
	assert.True(t, ok)
	assert.Equal(t, 42.0, results[2].(*object.Number).Value)
}

// TestScenario2ListMutationIsVisibleAcrossHolders snapshots each result's
// display form immediately, since push mutates the list in place: by the
// time all three forms have run, every *object.List returned along the
// way is the same underlying value (spec.md §3's reference-sharing rule),
// so only an immediate snapshot distinguishes the three steps.
func TestScenario2ListMutationIsVisibleAcrossHolders(t *testing.T) {
	program, err := reader.New(`(let xs [1 2 3]) (push xs 4) (len xs)`).ReadProgram()
	require.NoError(t, err)
	env := builtin.NewGlobalEnv(nil)

	v0, err := eval.Eval(program[0], env)
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3]", v0.String())

	v1, err := eval.Eval(program[1], env)
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3 4]", v1.String())

	v2, err := eval.Eval(program[2], env)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v2.(*object.Number).Value)
}

func TestScenario3Factorial(t *testing.T) {
	results := runAll(t, `(let (fact n) ((= n 0) 1 (mul n (fact (sub n 1))))) (fact 5)`)
	require.Len(t, results, 2)
	assert.Equal(t, 120.0, results[1].(*object.Number).Value)
}

func TestScenario4DictGetAndTryget(t *testing.T) {
	results := runAll(t, `(let d { (1 "a") (2 "b") }) (get d 1) (tryget d 3)`)
	require.Len(t, results, 3)
	_, ok := results[0].(*object.Dict)
	assert.True(t, ok)
	assert.Equal(t, "a", results[1].(*object.String).Value)
	assert.Equal(t, object.Value(object.TheUnit), results[2])
}

func TestScenario5EmptyDoIsAnError(t *testing.T) {
	program, err := reader.New(`(do)`).ReadProgram()
	require.NoError(t, err)
	env := builtin.NewGlobalEnv(nil)
	_, err = eval.Eval(program[0], env)
	assert.Error(t, err)
}

func TestScenario6UnlessMacro(t *testing.T) {
	results := runAll(t, `
		(macro (unless %c{expr} %b{expr}) (%c () %b))
		(unless (= 1 2) "ran")
		(unless (= 1 1) "ran")
	`)
	require.Len(t, results, 3)
	assert.Equal(t, object.Value(object.TheUnit), results[0])
	assert.Equal(t, "ran", results[1].(*object.String).Value)
	assert.Equal(t, object.Value(object.TheUnit), results[2])
}

func TestBooleanSelectionEvaluatesExactlyOneBranch(t *testing.T) {
	results := runAll(t, `(#f 1 (add 2 3))`)
	assert.Equal(t, 5.0, results[0].(*object.Number).Value)

	program, err := reader.New(`(#f (undefined-variable) 1)`).ReadProgram()
	require.NoError(t, err)
	env := builtin.NewGlobalEnv(nil)
	v, err := eval.Eval(program[0], env)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.(*object.Number).Value)
}

// TestClosureCapturesOuterMutation exercises spec.md §8's environment-
// capture invariant: a closure defined inside a `do` block sees a later
// rebinding of an outer variable from outside the closure, because the
// closure captured that frame by reference rather than by copy.
func TestClosureCapturesOuterMutation(t *testing.T) {
	results := runAll(t, `
		(do
			(let x 1)
			(let (show-x) x)
			(let x 2)
			(show-x))
	`)
	assert.Equal(t, 2.0, results[0].(*object.Number).Value)
}

