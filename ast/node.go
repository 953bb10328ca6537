/*
File    : rumlisp/ast/node.go
Package : ast
*/

// Package ast defines the tree-walking evaluator's input: the AST nodes
// produced by package reader. Every node emitted by the reader either is a
// fully-expanded form or is a MacroDef sentinel (spec.md §3 invariants) —
// by the time a node reaches package eval, no macro call remains unresolved
// inside it.
package ast

import (
	"fmt"
	"strings"

	"github.com/RuMaxwell/rumlisp/lexer"
)

// Node is the common interface implemented by every AST node. String
// renders the node's canonical pretty-printed form, used both for
// diagnostics and for the reader round-trip property in spec.md §8
// ("show(parse(s)) ... is equal to the canonical pretty-print of s").
type Node interface {
	isNode()
	String() string
	Pos() lexer.Position
}

// Number is a numeric literal. RumLisp has a single number type (IEEE-754
// double) per spec.md §1 — there is no separate integer/float distinction.
type Number struct {
	Value    float64
	Position lexer.Position
}

func (n *Number) isNode()              {}
func (n *Number) Pos() lexer.Position { return n.Position }
func (n *Number) String() string {
	s := fmt.Sprintf("%g", n.Value)
	return s
}

// String is a string literal, quotes already stripped by the lexer.
type String struct {
	Value    string
	Position lexer.Position
}

func (s *String) isNode()              {}
func (s *String) Pos() lexer.Position { return s.Position }
func (s *String) String() string      { return fmt.Sprintf("%q", s.Value) }

// Var is a bare identifier reference.
type Var struct {
	Name     string
	Position lexer.Position
}

func (v *Var) isNode()              {}
func (v *Var) Pos() lexer.Position { return v.Position }
func (v *Var) String() string      { return v.Name }

// SExpr is a parenthesized head-and-arguments form: `(head arg...)`. An
// SExpr with a nil Head and no Args is the unit expression (spec.md §3:
// "the unit expression ... [is] distinct from ... the empty list").
type SExpr struct {
	Head     Node
	Args     []Node
	Position lexer.Position
}

func (s *SExpr) isNode()              {}
func (s *SExpr) Pos() lexer.Position { return s.Position }
func (s *SExpr) IsUnit() bool        { return s.Head == nil && len(s.Args) == 0 }
func (s *SExpr) String() string {
	if s.IsUnit() {
		return "()"
	}
	parts := make([]string, 0, len(s.Args)+1)
	parts = append(parts, s.Head.String())
	for _, a := range s.Args {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ListExpr is a `[...]` list literal.
type ListExpr struct {
	Items    []Node
	Position lexer.Position
}

func (l *ListExpr) isNode()              {}
func (l *ListExpr) Pos() lexer.Position { return l.Position }
func (l *ListExpr) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// DictPair is one key/value entry of a DictExpr, as parsed from a `(key
// value)` group inside a `{...}` form.
type DictPair struct {
	Key   Node
	Value Node
}

// DictExpr is a `{(k v) (k v) ...}` dictionary literal.
type DictExpr struct {
	Pairs    []DictPair
	Position lexer.Position
}

func (d *DictExpr) isNode()              {}
func (d *DictExpr) Pos() lexer.Position { return d.Position }
func (d *DictExpr) String() string {
	parts := make([]string, len(d.Pairs))
	for i, p := range d.Pairs {
		parts[i] = "(" + p.Key.String() + " " + p.Value.String() + ")"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// LetVar is `(let name expr)`: bind name in the current frame to the
// evaluated expr.
type LetVar struct {
	Name     string
	Expr     Node
	Position lexer.Position
}

func (l *LetVar) isNode()              {}
func (l *LetVar) Pos() lexer.Position { return l.Position }
func (l *LetVar) String() string {
	return fmt.Sprintf("(let %s %s)", l.Name, l.Expr.String())
}

// LetFunc is `(let (name param...) body)`: bind name in the current frame
// to a closure over body, capturing the defining environment.
type LetFunc struct {
	Name     string
	Params   []string
	Body     Node
	Position lexer.Position
}

func (l *LetFunc) isNode()              {}
func (l *LetFunc) Pos() lexer.Position { return l.Position }
func (l *LetFunc) String() string {
	return fmt.Sprintf("(let (%s %s) %s)", l.Name, strings.Join(l.Params, " "), l.Body.String())
}

// Lambda is `(\ (param...) body)`: an anonymous closure, not bound to any
// name.
type Lambda struct {
	Params   []string
	Body     Node
	Position lexer.Position
}

func (l *Lambda) isNode()              {}
func (l *Lambda) Pos() lexer.Position { return l.Position }
func (l *Lambda) String() string {
	return fmt.Sprintf("(\\ (%s) %s)", strings.Join(l.Params, " "), l.Body.String())
}

// Do is `(do expr...)`: a sequence of expressions evaluated in order, whose
// value is the last one. An empty Do is a static error (spec.md §4.4),
// caught by the evaluator rather than the reader.
type Do struct {
	Items    []Node
	Position lexer.Position
}

func (d *Do) isNode()              {}
func (d *Do) Pos() lexer.Position { return d.Position }
func (d *Do) String() string {
	parts := make([]string, len(d.Items))
	for i, item := range d.Items {
		parts[i] = item.String()
	}
	return "(do " + strings.Join(parts, " ") + ")"
}

// Exec is the raw-exec form `(@ arg...)`: a host-boundary operation that a
// pure-core build parses but refuses to evaluate (spec.md §4.5 host-
// boundary builtins).
type Exec struct {
	Args     []Node
	Position lexer.Position
}

func (e *Exec) isNode()              {}
func (e *Exec) Pos() lexer.Position { return e.Position }
func (e *Exec) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return "(@ " + strings.Join(parts, " ") + ")"
}

// MacroDef is the sentinel node left behind by `(macro (name pattern...)
// template)`. Its registration into the macro registry is a side effect of
// reading it (package macro); evaluating the node itself always yields
// unit (spec.md §4.4).
type MacroDef struct {
	Name     string
	Position lexer.Position
}

func (m *MacroDef) isNode()              {}
func (m *MacroDef) Pos() lexer.Position { return m.Position }
func (m *MacroDef) String() string      { return fmt.Sprintf("(macro %s ...)", m.Name) }
