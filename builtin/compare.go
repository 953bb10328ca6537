package builtin

import (
	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/object"
)

func comparisonBuiltins() []*object.BuiltinClosure {
	return []*object.BuiltinClosure{
		{Name: "=", Arity: 2, Style: object.Eager, Fn: eager(func(args []object.Value, _ []ast.Node) (object.Value, error) {
			return boolValue(valueEqual(args[0], args[1])), nil
		})},
		{Name: "!=", Arity: 2, Style: object.Eager, Fn: eager(func(args []object.Value, _ []ast.Node) (object.Value, error) {
			return boolValue(!valueEqual(args[0], args[1])), nil
		})},
		{Name: "lt", Arity: 2, Style: object.Eager, Fn: eager(orderOp("lt", func(c int) bool { return c < 0 }))},
		{Name: "gt", Arity: 2, Style: object.Eager, Fn: eager(orderOp("gt", func(c int) bool { return c > 0 }))},
		{Name: "le", Arity: 2, Style: object.Eager, Fn: eager(orderOp("le", func(c int) bool { return c <= 0 }))},
		{Name: "ge", Arity: 2, Style: object.Eager, Fn: eager(orderOp("ge", func(c int) bool { return c >= 0 }))},
	}
}

// valueEqual implements spec.md §4.5's `=`/`!=`: identity on aggregates
// and closures (including booleans, whose identity and value equality
// coincide because the singletons are unique), value equality on numbers
// and strings.
func valueEqual(a, b object.Value) bool {
	switch av := a.(type) {
	case *object.Number:
		bv, ok := b.(*object.Number)
		return ok && av.Value == bv.Value
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	default:
		return a == b
	}
}

// orderOp builds lt/gt/le/ge, which compare numbers, strings, and lists
// lexicographically (spec.md §4.5).
func orderOp(name string, accept func(cmp int) bool) func([]object.Value, []ast.Node) (object.Value, error) {
	return func(args []object.Value, argExprs []ast.Node) (object.Value, error) {
		c, err := compareValues(args[0], args[1])
		if err != nil {
			return nil, typeMismatch(name, argExprs, args)
		}
		return boolValue(accept(c)), nil
	}
}

// compareValues returns -1/0/1 for a<b, a==b, a>b, or an error if a and b
// are not both numbers, both strings, or both lists.
func compareValues(a, b object.Value) (int, error) {
	switch av := a.(type) {
	case *object.Number:
		bv, ok := b.(*object.Number)
		if !ok {
			return 0, errNotComparable
		}
		switch {
		case av.Value < bv.Value:
			return -1, nil
		case av.Value > bv.Value:
			return 1, nil
		default:
			return 0, nil
		}
	case *object.String:
		bv, ok := b.(*object.String)
		if !ok {
			return 0, errNotComparable
		}
		switch {
		case av.Value < bv.Value:
			return -1, nil
		case av.Value > bv.Value:
			return 1, nil
		default:
			return 0, nil
		}
	case *object.List:
		bv, ok := b.(*object.List)
		if !ok {
			return 0, errNotComparable
		}
		return compareLists(av, bv)
	default:
		return 0, errNotComparable
	}
}

func compareLists(a, b *object.List) (int, error) {
	for i := 0; i < len(a.Items) && i < len(b.Items); i++ {
		c, err := compareValues(a.Items[i], b.Items[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	switch {
	case len(a.Items) < len(b.Items):
		return -1, nil
	case len(a.Items) > len(b.Items):
		return 1, nil
	default:
		return 0, nil
	}
}

var errNotComparable = orderError{}

// orderError is a sentinel the ordering helpers use internally; callers
// translate it into the standardized type-mismatch message.
type orderError struct{}

func (orderError) Error() string { return "values are not ordered-comparable" }
