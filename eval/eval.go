/*
File    : rumlisp/eval/eval.go
Package : eval
*/

// Package eval implements RumLisp's tree-walking evaluator (spec.md
// §4.4): the last stage of the pipeline, turning an already macro-
// expanded ast.Node into an object.Value against a lexical environment.
package eval

import (
	"fmt"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/environment"
	"github.com/RuMaxwell/rumlisp/object"
)

// Eval evaluates node in env. It is the Evaluator callback every
// object.Closure and object.BuiltinClosure is invoked with, so a builtin
// that needs to evaluate one of its raw argument expressions (or not, as
// `and`/`or`/`.`/`$` sometimes choose not to) calls right back into this
// same function.
func Eval(node ast.Node, env *environment.Environment) (object.Value, error) {
	switch n := node.(type) {
	case *ast.Number:
		return &object.Number{Value: n.Value}, nil
	case *ast.String:
		return &object.String{Value: n.Value}, nil
	case *ast.Var:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, newError(n.Position, "undefined variable %q", n.Name)
		}
		value, ok := v.(object.Value)
		if !ok {
			return nil, newError(n.Position, "%q is bound to a non-value", n.Name)
		}
		return value, nil
	case *ast.SExpr:
		return evalSExpr(n, env)
	case *ast.ListExpr:
		items := make([]object.Value, len(n.Items))
		for i, item := range n.Items {
			v, err := Eval(item, env)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return object.NewList(items), nil
	case *ast.DictExpr:
		dict := object.NewDict()
		for _, pair := range n.Pairs {
			key, err := Eval(pair.Key, env)
			if err != nil {
				return nil, err
			}
			value, err := Eval(pair.Value, env)
			if err != nil {
				return nil, err
			}
			dict.Set(key, value)
		}
		return dict, nil
	case *ast.LetVar:
		value, err := Eval(n.Expr, env)
		if err != nil {
			return nil, err
		}
		env.Bind(n.Name, value)
		return value, nil
	case *ast.LetFunc:
		closure := &object.Closure{Params: n.Params, Body: n.Body, Env: env}
		env.Bind(n.Name, closure)
		return closure, nil
	case *ast.Lambda:
		return &object.Closure{Params: n.Params, Body: n.Body, Env: env}, nil
	case *ast.Do:
		if len(n.Items) == 0 {
			return nil, newError(n.Position, "empty do")
		}
		var result object.Value
		for _, item := range n.Items {
			v, err := Eval(item, env)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	case *ast.MacroDef:
		return object.TheUnit, nil
	case *ast.Exec:
		return nil, newError(n.Position, "'@' is unsupported in this build")
	default:
		return nil, fmt.Errorf("eval: unhandled node type %T", node)
	}
}

// evalSExpr evaluates an S-expression call: the unit expression is
// itself, otherwise the head is evaluated and, provided it is callable,
// invoked with the still-unevaluated argument expressions and the
// caller's environment (spec.md §4.4 — this is what lets `#t`/`#f`,
// `and`/`or`, and `.`/`$` see their operand forms before any evaluation
// happens).
func evalSExpr(n *ast.SExpr, env *environment.Environment) (object.Value, error) {
	if n.IsUnit() {
		return object.TheUnit, nil
	}
	head, err := Eval(n.Head, env)
	if err != nil {
		return nil, err
	}
	callable, ok := head.(interface {
		Call(argExprs []ast.Node, callerEnv *environment.Environment, eval object.Evaluator) (object.Value, error)
	})
	if !ok {
		return nil, newError(n.Position, "%s is not callable", n.Head.String())
	}
	frame := Frame{Name: callFrameName(n.Head), Position: n.Position}
	stack = append(stack, frame)
	result, err := callable.Call(n.Args, env, Eval)
	stack = stack[:len(stack)-1]
	if err != nil {
		return nil, withFrame(err, frame.Name, frame.Position)
	}
	return result, nil
}

// stack is the live call stack, growing on entry to evalSExpr and
// shrinking on return. It backs the `__stack__` builtin; unlike the
// per-error Trace (built by withFrame as an error unwinds), this slice
// reflects calls still in progress. A tree-walking evaluator has no
// concurrent callers within one interpreter, so package-level state here
// is the same simplification the teacher's Evaluator makes by holding
// its own mutable fields directly rather than threading them as
// parameters.
var stack []Frame

// CurrentStack returns a snapshot of the live call stack, innermost call
// last, for the `__stack__` builtin.
func CurrentStack() []Frame {
	return append([]Frame(nil), stack...)
}

// callFrameName names the stack frame a call contributes to a trace: the
// bound name for a plain identifier head, or a generic marker for a
// computed head expression (e.g. `((fn-returning-closure) arg)`).
func callFrameName(head ast.Node) string {
	if v, ok := head.(*ast.Var); ok {
		return v.Name
	}
	return "<computed>"
}
