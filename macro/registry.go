package macro

import (
	"fmt"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/lexer"
)

// Definition is a fully compiled `(macro (name pattern...) template)` form.
type Definition struct {
	Name     string
	Pattern  []Term
	Template *Template
	Position lexer.Position
}

// Registry holds the macro definitions visible to one reader. Registering
// a name is a side effect of reading its definition (spec.md §4.3), so
// the registry is scoped to a single Reader/interpreter instance rather
// than shared process-wide — two independently read programs never see
// each other's macros.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry returns an empty macro registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Has reports whether name is a registered macro.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Define registers def, returning an error if name was already registered
// by an earlier macro definition (redefinition is rejected rather than
// shadowed, since macro expansion has no notion of lexical scope to make
// shadowing meaningful).
func (r *Registry) Define(def *Definition) error {
	if existing, ok := r.defs[def.Name]; ok {
		return &CompileError{
			Message:  fmt.Sprintf("macro %q already defined at %s", def.Name, existing.Position.String()),
			Position: def.Position,
		}
	}
	r.defs[def.Name] = def
	return nil
}

// Expand matches a macro call's already-parsed argument expressions
// against the named macro's pattern and instantiates its template,
// producing the AST node that replaces the call in the reader's output.
func (r *Registry) Expand(name string, args []ast.Node, callPos lexer.Position) (ast.Node, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, &CompileError{Message: fmt.Sprintf("no macro named %q", name), Position: callPos}
	}
	bindings, ok := Match(def.Pattern, args)
	if !ok {
		return nil, &CompileError{Message: fmt.Sprintf("arguments to macro %q do not match its pattern", name), Position: callPos}
	}
	return def.Template.Instantiate(bindings)
}
