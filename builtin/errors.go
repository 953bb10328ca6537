package builtin

import (
	"strings"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/lexer"
	"github.com/RuMaxwell/rumlisp/object"
)

// callPosition approximates a builtin call's source position from its
// first argument expression, since object.BuiltinFn is not itself handed
// the call site's position (only the evaluator's SExpr case sees that,
// and it already attaches a trace frame for the call as a whole).
func callPosition(argExprs []ast.Node) lexer.Position {
	if len(argExprs) == 0 {
		return lexer.Position{}
	}
	return argExprs[0].Pos()
}

// typeMismatch builds the standardized error spec.md §4.4 requires:
// "unaccepted arguments types (T1 T2 …) for '<name>' <location>".
func typeMismatch(name string, argExprs []ast.Node, args []object.Value) error {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = string(a.Type())
	}
	return eval.NewError(callPosition(argExprs), "unaccepted arguments types (%s) for '%s'", strings.Join(names, " "), name)
}
