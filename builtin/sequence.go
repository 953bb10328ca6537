package builtin

import (
	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
)

func sequenceBuiltins() []*object.BuiltinClosure {
	return []*object.BuiltinClosure{
		{Name: "empty?", Arity: 1, Style: object.Eager, Fn: eager(builtinEmpty)},
		{Name: "len", Arity: 1, Style: object.Eager, Fn: eager(builtinLen)},
		{Name: "slice", Arity: 3, Style: object.Eager, Fn: eager(builtinSlice)},
		{Name: "del-ins", Arity: -1, Style: object.Eager, Fn: eager(builtinDelIns)},
		{Name: "get", Arity: 2, Style: object.Eager, Fn: eager(builtinGet(false))},
		{Name: "tryget", Arity: 2, Style: object.Eager, Fn: eager(builtinGet(true))},
		{Name: "set", Arity: 3, Style: object.Eager, Fn: eager(builtinSet(false))},
		{Name: "tryset", Arity: 3, Style: object.Eager, Fn: eager(builtinSet(true))},
		{Name: "push", Arity: 2, Style: object.Eager, Fn: eager(builtinPush)},
		{Name: "pop", Arity: 1, Style: object.Eager, Fn: eager(builtinPop)},
		{Name: "push-front", Arity: 2, Style: object.Eager, Fn: eager(builtinPushFront)},
		{Name: "pop-front", Arity: 1, Style: object.Eager, Fn: eager(builtinPopFront)},
		{Name: "keys", Arity: 1, Style: object.Eager, Fn: eager(builtinKeys)},
		{Name: "entries", Arity: 1, Style: object.Eager, Fn: eager(builtinEntries)},
	}
}

func builtinEmpty(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	switch v := args[0].(type) {
	case *object.List:
		return boolValue(len(v.Items) == 0), nil
	case *object.Dict:
		return boolValue(v.Len() == 0), nil
	case *object.String:
		return boolValue(len(v.Value) == 0), nil
	default:
		return nil, typeMismatch("empty?", argExprs, args)
	}
}

func builtinLen(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	switch v := args[0].(type) {
	case *object.List:
		return &object.Number{Value: float64(len(v.Items))}, nil
	case *object.Dict:
		return &object.Number{Value: float64(v.Len())}, nil
	case *object.String:
		return &object.Number{Value: float64(len([]rune(v.Value)))}, nil
	default:
		return nil, typeMismatch("len", argExprs, args)
	}
}

func builtinSlice(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	start, sok := args[1].(*object.Number)
	end, eok := args[2].(*object.Number)
	if !sok || !eok {
		return nil, typeMismatch("slice", argExprs, args)
	}
	lo, hi := int(start.Value), int(end.Value)
	switch v := args[0].(type) {
	case *object.List:
		if lo < 0 || hi > len(v.Items) || lo > hi {
			return nil, eval.NewError(callPosition(argExprs), "slice index out of range")
		}
		out := make([]object.Value, hi-lo)
		copy(out, v.Items[lo:hi])
		return object.NewList(out), nil
	case *object.String:
		runes := []rune(v.Value)
		if lo < 0 || hi > len(runes) || lo > hi {
			return nil, eval.NewError(callPosition(argExprs), "slice index out of range")
		}
		return &object.String{Value: string(runes[lo:hi])}, nil
	default:
		return nil, typeMismatch("slice", argExprs, args)
	}
}

// builtinDelIns removes deleteCount items starting at start and splices
// the remaining given values in their place, mutating the list and
// returning the items it removed.
func builtinDelIns(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	if len(args) < 3 {
		return nil, eval.NewError(callPosition(argExprs), "'del-ins' expects at least 3 arguments, got %d", len(args))
	}
	list, ok := args[0].(*object.List)
	startN, sok := args[1].(*object.Number)
	countN, cok := args[2].(*object.Number)
	if !ok || !sok || !cok {
		return nil, typeMismatch("del-ins", argExprs, args)
	}
	start, count := int(startN.Value), int(countN.Value)
	if start < 0 || count < 0 || start+count > len(list.Items) {
		return nil, eval.NewError(callPosition(argExprs), "del-ins index out of range")
	}
	removed := make([]object.Value, count)
	copy(removed, list.Items[start:start+count])

	rest := make([]object.Value, 0, len(list.Items)-count+len(args)-3)
	rest = append(rest, list.Items[:start]...)
	rest = append(rest, args[3:]...)
	rest = append(rest, list.Items[start+count:]...)
	list.Items = rest

	return object.NewList(removed), nil
}

func builtinGet(permissive bool) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		switch seq := args[0].(type) {
		case *object.List:
			idxN, ok := args[1].(*object.Number)
			if !ok {
				return nil, typeMismatch("get", argExprs, args)
			}
			idx := int(idxN.Value)
			if idx < 0 || idx >= len(seq.Items) {
				if permissive {
					return object.TheUnit, nil
				}
				return nil, eval.NewError(callPosition(argExprs), "index %d out of range", idx)
			}
			return seq.Items[idx], nil
		case *object.Dict:
			v, ok := seq.Get(args[1])
			if !ok {
				if permissive {
					return object.TheUnit, nil
				}
				return nil, eval.NewError(callPosition(argExprs), "key not found in dict")
			}
			return v, nil
		default:
			return nil, typeMismatch("get", argExprs, args)
		}
	}
}

func builtinSet(permissive bool) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		switch seq := args[0].(type) {
		case *object.List:
			idxN, ok := args[1].(*object.Number)
			if !ok {
				return nil, typeMismatch("set", argExprs, args)
			}
			idx := int(idxN.Value)
			if idx < 0 || idx >= len(seq.Items) {
				if permissive {
					return object.TheUnit, nil
				}
				return nil, eval.NewError(callPosition(argExprs), "index %d out of range", idx)
			}
			seq.Items[idx] = args[2]
			return args[2], nil
		case *object.Dict:
			seq.Set(args[1], args[2])
			return args[2], nil
		default:
			return nil, typeMismatch("set", argExprs, args)
		}
	}
}

func builtinPush(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	list, ok := args[0].(*object.List)
	if !ok {
		return nil, typeMismatch("push", argExprs, args)
	}
	list.Items = append(list.Items, args[1])
	return list, nil
}

func builtinPop(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	list, ok := args[0].(*object.List)
	if !ok {
		return nil, typeMismatch("pop", argExprs, args)
	}
	if len(list.Items) == 0 {
		return nil, eval.NewError(callPosition(argExprs), "pop: list is empty")
	}
	last := list.Items[len(list.Items)-1]
	list.Items = list.Items[:len(list.Items)-1]
	return last, nil
}

func builtinPushFront(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	list, ok := args[0].(*object.List)
	if !ok {
		return nil, typeMismatch("push-front", argExprs, args)
	}
	list.Items = append([]object.Value{args[1]}, list.Items...)
	return list, nil
}

// builtinPopFront removes and returns the list's first item: true FIFO
// behavior (SPEC_FULL.md's resolution of the source's pop-front bug,
// which popped from the back under a front-popping name).
func builtinPopFront(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	list, ok := args[0].(*object.List)
	if !ok {
		return nil, typeMismatch("pop-front", argExprs, args)
	}
	if len(list.Items) == 0 {
		return nil, eval.NewError(callPosition(argExprs), "pop-front: list is empty")
	}
	first := list.Items[0]
	list.Items = list.Items[1:]
	return first, nil
}

func builtinKeys(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	dict, ok := args[0].(*object.Dict)
	if !ok {
		return nil, typeMismatch("keys", argExprs, args)
	}
	return object.NewList(dict.Keys()), nil
}

func builtinEntries(args []object.Value, argExprs []ast.Node) (object.Value, error) {
	dict, ok := args[0].(*object.Dict)
	if !ok {
		return nil, typeMismatch("entries", argExprs, args)
	}
	pairs := dict.Entries()
	items := make([]object.Value, len(pairs))
	for i, p := range pairs {
		items[i] = p
	}
	return object.NewList(items), nil
}
