package builtin

import (
	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/environment"
	"github.com/RuMaxwell/rumlisp/eval"
	"github.com/RuMaxwell/rumlisp/object"
)

// hostBuiltins are the host-boundary operations spec.md §4.5 allows a pure-
// core build to omit: subprocess execution and file I/O are out of scope,
// but `.`, `$`, `read` and `import` must still parse and dispatch so that
// prelude code written against the full language fails at call time, not
// at read time.
//
// `.` is the one real loss here: spec.md §4.4 documents it as bare-
// identifier dict access (`(. d key)` without quoting key), a core
// capability the rest of the value model (object.Dict, get/tryget)
// already supports end to end. Omitting it is sanctioned by §4.5's
// host-boundary list, but unlike `$`/`read`/`import` it isn't inherently
// tied to a missing subprocess or filesystem boundary — it's stubbed here
// only to keep the host-boundary builtins uniform, not because dict
// access itself needs a host.
func hostBuiltins() []*object.BuiltinClosure {
	return []*object.BuiltinClosure{
		{Name: ".", Arity: 2, Style: object.OnExpressions, Fn: unsupported(".")},
		{Name: "$", Arity: -1, Style: object.OnExpressions, Fn: unsupported("$")},
		{Name: "read", Arity: 1, Style: object.Eager, Fn: unsupported("read")},
		{Name: "import", Arity: 1, Style: object.Eager, Fn: unsupported("import")},
	}
}

// unsupported builds the Fn for a host-boundary builtin this build omits:
// it never evaluates its arguments (`.` and `$` inspect bare-identifier
// forms before evaluation in a full build, per spec.md §4.4, so touching
// argExprs here would be premature) and always fails with the standardized
// "unsupported in this build" message.
func unsupported(name string) object.BuiltinFn {
	return func(argExprs []ast.Node, env *environment.Environment, ev object.Evaluator) (object.Value, error) {
		return nil, eval.NewError(callPosition(argExprs), "'%s' is unsupported in this build", name)
	}
}
