package builtin

import (
	"path/filepath"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
)

func arithmeticBuiltins() []*object.BuiltinClosure {
	return []*object.BuiltinClosure{
		{Name: "add", Arity: 2, Style: object.Eager, Fn: eager(builtinAdd)},
		{Name: "sub", Arity: 2, Style: object.Eager, Fn: eager(numericBinOp("sub", func(a, b float64) float64 { return a - b }))},
		{Name: "mul", Arity: 2, Style: object.Eager, Fn: eager(numericBinOp("mul", func(a, b float64) float64 { return a * b }))},
		{Name: "div", Arity: 2, Style: object.Eager, Fn: eager(builtinDiv)},
		{Name: "mod", Arity: 2, Style: object.Eager, Fn: eager(builtinMod)},
		{Name: "band", Arity: 2, Style: object.Eager, Fn: eager(intBinOp("band", func(a, b int64) int64 { return a & b }))},
		{Name: "bor", Arity: 2, Style: object.Eager, Fn: eager(intBinOp("bor", func(a, b int64) int64 { return a | b }))},
		{Name: "bxor", Arity: 2, Style: object.Eager, Fn: eager(intBinOp("bxor", func(a, b int64) int64 { return a ^ b }))},
		{Name: "bcom", Arity: 1, Style: object.Eager, Fn: eager(builtinBcom)},
		{Name: "<<", Arity: 2, Style: object.Eager, Fn: eager(intBinOp("<<", func(a, b int64) int64 { return a << uint(b) }))},
		{Name: ">>", Arity: 2, Style: object.Eager, Fn: eager(intBinOp(">>", func(a, b int64) int64 { return a >> uint(b) }))},
	}
}

// builtinAdd is polymorphic: number-number (arithmetic sum), string-
// string (concatenation), list-list (concatenation) (spec.md §4.5).
func builtinAdd(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	a, b := args[0], args[1]
	switch av := a.(type) {
	case *object.Number:
		if bv, ok := b.(*object.Number); ok {
			return &object.Number{Value: av.Value + bv.Value}, nil
		}
	case *object.String:
		if bv, ok := b.(*object.String); ok {
			return &object.String{Value: av.Value + bv.Value}, nil
		}
	case *object.List:
		if bv, ok := b.(*object.List); ok {
			combined := make([]object.Value, 0, len(av.Items)+len(bv.Items))
			combined = append(combined, av.Items...)
			combined = append(combined, bv.Items...)
			return object.NewList(combined), nil
		}
	}
	return nil, typeMismatch("add", argExprs, args)
}

// builtinDiv is numeric division, plus a string-string overload that
// joins two path segments with forward-slash normalization (spec.md
// §4.5).
func builtinDiv(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	a, b := args[0], args[1]
	if av, ok := a.(*object.Number); ok {
		if bv, ok := b.(*object.Number); ok {
			return &object.Number{Value: av.Value / bv.Value}, nil
		}
	}
	if av, ok := a.(*object.String); ok {
		if bv, ok := b.(*object.String); ok {
			joined := filepath.ToSlash(filepath.Join(av.Value, bv.Value))
			return &object.String{Value: joined}, nil
		}
	}
	return nil, typeMismatch("div", argExprs, args)
}

// builtinMod is integer modulus, truncating both operands to int64
// first. A zero divisor is a handled evaluation error (spec.md §7
// "modulus by zero"), not a Go integer-divide-by-zero panic.
func builtinMod(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	a, aok := args[0].(*object.Number)
	b, bok := args[1].(*object.Number)
	if !aok || !bok {
		return nil, typeMismatch("mod", argExprs, args)
	}
	if int64(b.Value) == 0 {
		return nil, eval.NewError(callPosition(argExprs), "modulus by zero")
	}
	return &object.Number{Value: float64(int64(a.Value) % int64(b.Value))}, nil
}

// numericBinOp builds a strictly-numeric binary arithmetic builtin,
// rejecting any non-number operand (spec.md §4.5 — "purely numeric ops
// reject non-numeric inputs").
func numericBinOp(name string, op func(a, b float64) float64) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		a, aok := args[0].(*object.Number)
		b, bok := args[1].(*object.Number)
		if !aok || !bok {
			return nil, typeMismatch(name, argExprs, args)
		}
		return &object.Number{Value: op(a.Value, b.Value)}, nil
	}
}

// intBinOp builds a bitwise builtin, truncating its numeric operands to
// int64 for the duration of the operation.
func intBinOp(name string, op func(a, b int64) int64) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		a, aok := args[0].(*object.Number)
		b, bok := args[1].(*object.Number)
		if !aok || !bok {
			return nil, typeMismatch(name, argExprs, args)
		}
		return &object.Number{Value: float64(op(int64(a.Value), int64(b.Value)))}, nil
	}
}

func builtinBcom(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	a, ok := args[0].(*object.Number)
	if !ok {
		return nil, typeMismatch("bcom", argExprs, args)
	}
	return &object.Number{Value: float64(^int64(a.Value))}, nil
}
