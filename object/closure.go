package object

import (
	"fmt"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/environment"
)

// Evaluator is the callback package eval supplies when invoking a
// Closure or BuiltinClosure, letting both live in this package without
// importing eval (which itself must import object to build values,
// ruling out the reverse import).
type Evaluator func(node ast.Node, env *environment.Environment) (Value, error)

// Closure is a user-defined function value: parameters, a body, and the
// environment captured at the point of its `let`/`\` definition
// (spec.md §3). Calling a Closure always evaluates its arguments eagerly
// left to right — the three narrow call-by-expression exceptions in
// spec.md §4.4 apply only to specific builtins, never to user closures.
type Closure struct {
	Params []string
	Body   ast.Node
	Env    *environment.Environment
}

func (c *Closure) Type() Type     { return ClosureType }
func (c *Closure) String() string { return "<closure>" }
func (c *Closure) Repr() string   { return "<closure>" }

// Call checks arity, evaluates each argument expression in callerEnv,
// pushes a fresh frame atop the closure's captured environment binding
// each parameter to its evaluated argument, and evaluates the body in
// that frame (spec.md §4.4 "Closure call").
func (c *Closure) Call(argExprs []ast.Node, callerEnv *environment.Environment, eval Evaluator) (Value, error) {
	if len(argExprs) != len(c.Params) {
		return nil, fmt.Errorf("closure expects %d argument(s), got %d", len(c.Params), len(argExprs))
	}
	args := make([]Value, len(argExprs))
	for i, expr := range argExprs {
		v, err := eval(expr, callerEnv)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	frame := c.Env.Pushed()
	for i, param := range c.Params {
		frame.Bind(param, args[i])
	}
	return eval(c.Body, frame)
}

// BuiltinStyle records how a BuiltinClosure's implementation treats its
// arguments: Eager means Fn evaluates every argument expression before
// doing anything else; OnExpressions means Fn works on the raw,
// unevaluated expressions and decides for itself what (and whether) to
// evaluate (spec.md §4.4 — needed by `.`, `and`, `or`, and `$`). Call does
// not consult Style; Fn always receives the raw expressions.
type BuiltinStyle int

const (
	Eager BuiltinStyle = iota
	OnExpressions
)

// BuiltinFn is a builtin's implementation. It always receives the raw
// argument expressions and the caller's environment; Eager builtins
// evaluate them all up front via EvalArgs before doing anything else,
// while OnExpressions builtins evaluate selectively.
type BuiltinFn func(argExprs []ast.Node, callerEnv *environment.Environment, eval Evaluator) (Value, error)

// BuiltinClosure wraps a native Go implementation of a core or
// host-boundary operation (spec.md §4.5). #t and #f are the two
// distinguished singleton BuiltinClosures of arity 2 (spec.md §3); there
// is no other boolean representation, so equality of booleans reduces to
// identity of these two values.
type BuiltinClosure struct {
	Name  string
	Arity int // -1 means variadic; Fn is responsible for validating shape
	Style BuiltinStyle
	Fn    BuiltinFn
}

func (b *BuiltinClosure) Type() Type     { return BuiltinType }
func (b *BuiltinClosure) String() string { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *BuiltinClosure) Repr() string   { return b.String() }

// Call enforces Arity (when non-negative) and then delegates to Fn.
func (b *BuiltinClosure) Call(argExprs []ast.Node, callerEnv *environment.Environment, eval Evaluator) (Value, error) {
	if b.Arity >= 0 && len(argExprs) != b.Arity {
		return nil, fmt.Errorf("'%s' expects %d argument(s), got %d", b.Name, b.Arity, len(argExprs))
	}
	return b.Fn(argExprs, callerEnv, eval)
}

// EvalArgs evaluates every argument expression left to right in env,
// the shared helper Eager builtins use before inspecting their operands.
func EvalArgs(argExprs []ast.Node, env *environment.Environment, eval Evaluator) ([]Value, error) {
	args := make([]Value, len(argExprs))
	for i, expr := range argExprs {
		v, err := eval(expr, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// True and False are the sole boolean values (spec.md §3). They are
// installed into every fresh initial environment under the names #t and
// #f by package builtin's NewGlobalEnv; nothing else constructs a boolean.
var (
	True  = &BuiltinClosure{Name: "#t", Arity: 2, Style: OnExpressions, Fn: selectBranch(0)}
	False = &BuiltinClosure{Name: "#f", Arity: 2, Style: OnExpressions, Fn: selectBranch(1)}
)

// selectBranch builds the Fn for #t (branch 0) or #f (branch 1):
// evaluate only the selected argument expression, leaving the other
// unevaluated entirely (spec.md §4.4's sole conditional primitive).
func selectBranch(branch int) BuiltinFn {
	return func(argExprs []ast.Node, env *environment.Environment, eval Evaluator) (Value, error) {
		return eval(argExprs[branch], env)
	}
}

// IsBoolean reports whether v is one of the two boolean singletons.
func IsBoolean(v Value) bool {
	return v == Value(True) || v == Value(False)
}
