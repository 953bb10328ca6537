/*
File    : rumlisp/builtin/builtin.go
Package : builtin
*/

// Package builtin implements RumLisp's builtin table (spec.md §4.5):
// arithmetic, comparison, conversion, sequence, control/introspection,
// and host-boundary operations, plus the #t/#f boolean singletons. Every
// builtin is installed into a fresh global environment by NewGlobalEnv,
// mirroring how the teacher's NewEvaluator registers every std.Builtin
// into ev.Builtins up front.
package builtin

import (
	"io"
	"os"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/environment"
	"github.com/RuMaxwell/rumlisp/object"
)

// NewGlobalEnv returns a fresh environment with every builtin and the
// two boolean singletons bound, ready to be the initial environment of
// one interpreter run. w receives `print`/`println` output; passing nil
// defaults to os.Stdout.
func NewGlobalEnv(w io.Writer) *environment.Environment {
	if w == nil {
		w = os.Stdout
	}
	env := environment.New()
	env.Bind("#t", object.True)
	env.Bind("#f", object.False)
	for _, b := range arithmeticBuiltins() {
		env.Bind(b.Name, b)
	}
	for _, b := range comparisonBuiltins() {
		env.Bind(b.Name, b)
	}
	for _, b := range conversionBuiltins() {
		env.Bind(b.Name, b)
	}
	for _, b := range sequenceBuiltins() {
		env.Bind(b.Name, b)
	}
	for _, b := range controlBuiltins(w) {
		env.Bind(b.Name, b)
	}
	for _, b := range hostBuiltins() {
		env.Bind(b.Name, b)
	}
	return env
}

// eager wraps an implementation fn that wants already-evaluated argument
// values (the common case for every builtin except `and`, `or`, `eval`, and
// the host-boundary stubs `.`, `$`, `read`, and `import`) into the
// object.BuiltinFn shape, which always receives raw expressions.
func eager(fn func(args []object.Value, argExprs []ast.Node) (object.Value, error)) object.BuiltinFn {
	return func(argExprs []ast.Node, env *environment.Environment, ev object.Evaluator) (object.Value, error) {
		args, err := object.EvalArgs(argExprs, env, ev)
		if err != nil {
			return nil, err
		}
		return fn(args, argExprs)
	}
}

// boolValue maps a Go bool to the corresponding RumLisp singleton.
func boolValue(b bool) object.Value {
	if b {
		return object.True
	}
	return object.False
}
