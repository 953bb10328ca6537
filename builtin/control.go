package builtin

import (
	"io"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/environment"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
	"github.com/RuMaxwell/rumlisp/reader"
)

// controlBuiltins are print/introspection/boolean-logic operations. print
// and println write to w, the writer NewGlobalEnv was built with.
func controlBuiltins(w io.Writer) []*object.BuiltinClosure {
	return []*object.BuiltinClosure{
		{Name: "print", Arity: 1, Style: object.Eager, Fn: eager(printTo(w, false))},
		{Name: "println", Arity: 1, Style: object.Eager, Fn: eager(printTo(w, true))},
		{Name: "type", Arity: 1, Style: object.Eager, Fn: eager(builtinType)},
		{Name: "type-is", Arity: 2, Style: object.Eager, Fn: eager(builtinTypeIs)},
		{Name: "not", Arity: 1, Style: object.Eager, Fn: eager(builtinNot)},
		{Name: "and", Arity: 2, Style: object.OnExpressions, Fn: builtinAnd},
		{Name: "or", Arity: 2, Style: object.OnExpressions, Fn: builtinOr},
		{Name: "eval", Arity: 1, Style: object.OnExpressions, Fn: builtinEval},
		{Name: "__stack__", Arity: 0, Style: object.Eager, Fn: eager(builtinStack)},
	}
}

func printTo(w io.Writer, newline bool) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		text := args[0].String()
		if newline {
			text += "\n"
		}
		if _, err := io.WriteString(w, text); err != nil {
			return nil, eval.NewError(callPosition(argExprs), "print: %s", err)
		}
		return object.TheUnit, nil
	}
}

func builtinType(args []object.Value, _ []ast.Node) (object.Value, error) {
	return &object.String{Value: string(args[0].Type())}, nil
}

func builtinTypeIs(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	name, ok := args[1].(*object.String)
	if !ok {
		return nil, typeMismatch("type-is", argExprs, args)
	}
	return boolValue(string(args[0].Type()) == name.Value), nil
}

func builtinNot(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	if !object.IsBoolean(args[0]) {
		return nil, typeMismatch("not", argExprs, args)
	}
	return boolValue(args[0] != object.Value(object.True)), nil
}

// builtinAnd and builtinOr are the short-circuiting boolean combinators
// (spec.md §4.4): each evaluates its first operand, and only evaluates the
// second when the first's truth value doesn't already settle the result.
func builtinAnd(argExprs []ast.Node, env *environment.Environment, ev object.Evaluator) (object.Value, error) {
	first, err := ev(argExprs[0], env)
	if err != nil {
		return nil, err
	}
	if !object.IsBoolean(first) {
		return nil, typeMismatch("and", argExprs, []object.Value{first})
	}
	if first == object.Value(object.False) {
		return object.False, nil
	}
	second, err := ev(argExprs[1], env)
	if err != nil {
		return nil, err
	}
	if !object.IsBoolean(second) {
		return nil, typeMismatch("and", argExprs, []object.Value{second})
	}
	return second, nil
}

func builtinOr(argExprs []ast.Node, env *environment.Environment, ev object.Evaluator) (object.Value, error) {
	first, err := ev(argExprs[0], env)
	if err != nil {
		return nil, err
	}
	if !object.IsBoolean(first) {
		return nil, typeMismatch("or", argExprs, []object.Value{first})
	}
	if first == object.Value(object.True) {
		return object.True, nil
	}
	second, err := ev(argExprs[1], env)
	if err != nil {
		return nil, err
	}
	if !object.IsBoolean(second) {
		return nil, typeMismatch("or", argExprs, []object.Value{second})
	}
	return second, nil
}

// builtinEval implements `eval`: its single argument is a string of
// RumLisp source, read and evaluated from scratch (its own fresh macro
// registry, since macros are reader-time and this string was never part
// of the original read) in the *caller's* environment, so bindings it
// creates become visible to the caller (spec.md §4.5).
func builtinEval(argExprs []ast.Node, env *environment.Environment, ev object.Evaluator) (object.Value, error) {
	srcVal, err := ev(argExprs[0], env)
	if err != nil {
		return nil, err
	}
	src, ok := srcVal.(*object.String)
	if !ok {
		return nil, typeMismatch("eval", argExprs, []object.Value{srcVal})
	}
	program, err := reader.New(src.Value).ReadProgram()
	if err != nil {
		return nil, eval.NewError(callPosition(argExprs), "eval: %s", err)
	}
	result := object.Value(object.TheUnit)
	for _, node := range program {
		result, err = ev(node, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func builtinStack(_ []object.Value, _ []ast.Node) (object.Value, error) {
	frames := eval.CurrentStack()
	items := make([]object.Value, len(frames))
	for i, f := range frames {
		items[i] = &object.String{Value: f.String()}
	}
	return object.NewList(items), nil
}
