package macro

import (
	"fmt"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/lexer"
)

// tmplTerm is one compiled template element. instantiateSeq produces the
// zero-or-more nodes this term contributes to its enclosing sequence —
// exactly one for a literal, substitution, or compound form, and
// whatever the bound repeat holds for a splice (spec.md §4.3: "%%name
// splices a repeat-accumulated sequence into its parent paren group as
// individual items").
type tmplTerm interface {
	instantiateSeq(b Bindings) ([]ast.Node, error)
}

// instantiateOne requires term to contribute exactly one node, as the
// template's root form must (Template.Instantiate).
func instantiateOne(term tmplTerm, b Bindings) (ast.Node, error) {
	nodes, err := term.instantiateSeq(b)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("template position requires exactly one node, got %d", len(nodes))
	}
	return nodes[0], nil
}

// tmplLiteral is a bare number, string, or identifier written directly in
// the template.
type tmplLiteral struct {
	Node ast.Node
}

func (t *tmplLiteral) instantiateSeq(Bindings) ([]ast.Node, error) {
	return []ast.Node{t.Node}, nil
}

// tmplSubst is a `%name` substitution: the single node bound to name.
type tmplSubst struct {
	Name     string
	Position lexer.Position
}

func (t *tmplSubst) instantiateSeq(b Bindings) ([]ast.Node, error) {
	c, ok := b[t.Name]
	if !ok {
		return nil, &CompileError{Message: fmt.Sprintf("template refers to undefined name %%%s", t.Name), Position: t.Position}
	}
	if c.Node == nil {
		return nil, &CompileError{Message: fmt.Sprintf("%%%s is a repeated capture; use %%%%%s to splice it", t.Name, t.Name), Position: t.Position}
	}
	return []ast.Node{c.Node}, nil
}

// tmplSplice is a `%%name` splice: every node bound to a repeat capture
// named name, spliced individually into the surrounding sequence.
type tmplSplice struct {
	Name     string
	Position lexer.Position
}

func (t *tmplSplice) instantiateSeq(b Bindings) ([]ast.Node, error) {
	c, ok := b[t.Name]
	if !ok {
		return nil, &CompileError{Message: fmt.Sprintf("template refers to undefined name %%%%%s", t.Name), Position: t.Position}
	}
	if c.Seq == nil && c.Node != nil {
		return []ast.Node{c.Node}, nil
	}
	return c.Seq, nil
}

// tmplCompound is a parenthesized, bracketed, or braced template group
// whose member terms are instantiated and (for `(...)` and `[...]`)
// flattened, or (for `{...}`) paired up into dict entries.
type tmplCompound struct {
	Kind     BracketKind
	Items    []tmplTerm
	Position lexer.Position
}

func (t *tmplCompound) instantiateSeq(b Bindings) ([]ast.Node, error) {
	var flat []ast.Node
	for _, item := range t.Items {
		nodes, err := item.instantiateSeq(b)
		if err != nil {
			return nil, err
		}
		flat = append(flat, nodes...)
	}
	switch t.Kind {
	case BracketRound:
		if len(flat) == 0 {
			return []ast.Node{&ast.SExpr{Position: t.Position}}, nil
		}
		return []ast.Node{&ast.SExpr{Head: flat[0], Args: flat[1:], Position: t.Position}}, nil
	case BracketSquare:
		return []ast.Node{&ast.ListExpr{Items: flat, Position: t.Position}}, nil
	case BracketCurly:
		if len(flat)%2 != 0 {
			return nil, &CompileError{Message: "template dict group has an unpaired entry", Position: t.Position}
		}
		pairs := make([]ast.DictPair, 0, len(flat)/2)
		for i := 0; i < len(flat); i += 2 {
			pairs = append(pairs, ast.DictPair{Key: flat[i], Value: flat[i+1]})
		}
		return []ast.Node{&ast.DictExpr{Pairs: pairs, Position: t.Position}}, nil
	default:
		return nil, &CompileError{Message: "unknown template group kind", Position: t.Position}
	}
}

// Template is a compiled macro body: one top-level form instantiated
// against a successful match's bindings.
type Template struct {
	Root tmplTerm
}

// Instantiate builds the replacement AST node for a macro call whose
// pattern matched with bindings b.
func (tpl *Template) Instantiate(b Bindings) (ast.Node, error) {
	return instantiateOne(tpl.Root, b)
}
