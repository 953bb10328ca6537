/*
File    : rumlisp/environment/environment.go
Package : environment
*/

// Package environment implements RumLisp's lexical environment chain: a
// mapping from identifier to value plus an optional parent link
// (spec.md §3). Lookup walks the chain outward; Bind always mutates the
// innermost frame, which is what makes a `let` inside a closure body
// invisible to the frame the closure was called from. A `do` block does
// not push a frame, so its `let`s bind into the enclosing frame.
//
// Unlike the teacher's Scope, which copies its binding map by value on
// every call (github.com/akashmaji946/go-mix's scope.Copy), Environment
// frames are heap-allocated and linked by pointer: a Closure captures the
// *Environment alive at its definition, and any later Bind into that same
// frame (from anywhere holding the pointer) is visible the next time the
// closure runs. spec.md §3 requires this explicitly ("subsequent
// mutations in that environment are visible to later invocations of the
// closure"), which a copying scope cannot provide.
//
// Environment stores values as interface{} rather than importing package
// object directly, so that object's Closure can hold an *Environment
// without the two packages forming an import cycle; package eval, which
// depends on both, performs the type assertion back to object.Value.
package environment

// Environment is one lexical frame: its own bindings plus an optional
// parent to continue the search in.
type Environment struct {
	vars   map[string]interface{}
	parent *Environment
}

// New returns a fresh, parentless environment — the interpreter's
// initial (global) frame.
func New() *Environment {
	return &Environment{vars: make(map[string]interface{})}
}

// Pushed returns a new child frame whose parent is e, for entering a
// closure call.
func (e *Environment) Pushed() *Environment {
	return &Environment{vars: make(map[string]interface{}), parent: e}
}

// Lookup walks the chain from e outward, returning the first binding
// found for name.
func (e *Environment) Lookup(name string) (interface{}, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind sets name to value in e itself — never in a parent frame. This is
// the only mutator, and it is how `let` always binds into "the frame
// performing the let" (spec.md §3) regardless of whether an outer frame
// already has a binding of the same name.
func (e *Environment) Bind(name string, value interface{}) {
	e.vars[name] = value
}
