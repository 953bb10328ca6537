package builtin

import (
	"math"
	"path/filepath"
	"strconv"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
)

func conversionBuiltins() []*object.BuiltinClosure {
	return []*object.BuiltinClosure{
		{Name: "trunc", Arity: 1, Style: object.Eager, Fn: eager(numericUnary("trunc", math.Trunc))},
		{Name: "floor", Arity: 1, Style: object.Eager, Fn: eager(numericUnary("floor", math.Floor))},
		{Name: "ceil", Arity: 1, Style: object.Eager, Fn: eager(numericUnary("ceil", math.Ceil))},
		{Name: "round", Arity: 1, Style: object.Eager, Fn: eager(numericUnary("round", math.Round))},
		{Name: "abs", Arity: 1, Style: object.Eager, Fn: eager(builtinAbs)},
		{Name: "show", Arity: 1, Style: object.Eager, Fn: eager(func(args []object.Value, _ []ast.Node) (object.Value, error) {
			return &object.String{Value: args[0].String()}, nil
		})},
		{Name: "repr", Arity: 1, Style: object.Eager, Fn: eager(func(args []object.Value, _ []ast.Node) (object.Value, error) {
			return &object.String{Value: args[0].Repr()}, nil
		})},
		{Name: "parse", Arity: 1, Style: object.Eager, Fn: eager(builtinParse)},
		{Name: "chars", Arity: 1, Style: object.Eager, Fn: eager(builtinChars)},
	}
}

func numericUnary(name string, op func(float64) float64) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		n, ok := args[0].(*object.Number)
		if !ok {
			return nil, typeMismatch(name, argExprs, args)
		}
		return &object.Number{Value: op(n.Value)}, nil
	}
}

// builtinAbs is polymorphic: absolute value on a number, canonicalized
// absolute path on a string (spec.md §4.5).
func builtinAbs(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	switch v := args[0].(type) {
	case *object.Number:
		return &object.Number{Value: math.Abs(v.Value)}, nil
	case *object.String:
		abs, err := filepath.Abs(v.Value)
		if err != nil {
			return nil, eval.NewError(callPosition(argExprs), "abs: %s", err)
		}
		return &object.String{Value: filepath.ToSlash(abs)}, nil
	default:
		return nil, typeMismatch("abs", argExprs, args)
	}
}

func builtinParse(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	s, ok := args[0].(*object.String)
	if !ok {
		return nil, typeMismatch("parse", argExprs, args)
	}
	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return nil, eval.NewError(callPosition(argExprs), "parse: %q is not a number", s.Value)
	}
	return &object.Number{Value: v}, nil
}

func builtinChars(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	s, ok := args[0].(*object.String)
	if !ok {
		return nil, typeMismatch("chars", argExprs, args)
	}
	runes := []rune(s.Value)
	items := make([]object.Value, len(runes))
	for i, r := range runes {
		items[i] = &object.String{Value: string(r)}
	}
	return object.NewList(items), nil
}
