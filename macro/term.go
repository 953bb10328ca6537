/*
File    : rumlisp/macro/term.go
Package : macro
*/

// Package macro implements RumLisp's pattern-based macro system: compiling
// a macro definition's pattern into a matcher over already-parsed argument
// expressions, and its template into a rewrite rule that builds a new AST
// node from the bindings a successful match produces (spec.md §4.3).
//
// Matching happens at the level of package ast's already-parsed argument
// expressions, not raw tokens — the reader collects a macro call's
// arguments with its ordinary expression grammar before ever consulting
// the macro engine (spec.md §4.2), so by the time a pattern sees an
// argument it is already a Number, String, Var, SExpr, ListExpr or
// DictExpr node.
//
// The design notes (spec.md §9) explicitly sanction replacing the
// source's unfinished NFA-style matcher with "a deterministic backtracking
// matcher over the argument sequence"; that is what this package builds.
// Greediness is approximated by always trying a repeat's largest possible
// repetition count first and backing off only on overall failure
// (spec.md §4.3's "greediest repeat wins"), and by having each individual
// repetition step itself take the single greediest match of its wrapped
// term rather than exploring every combination — adequate for the
// documented directive set, which never nests ambiguous repeats.
package macro

import "github.com/RuMaxwell/rumlisp/ast"

// CaptureKind is the `kind` half of a `%name{kind}` atom capture.
type CaptureKind string

const (
	KindExpr   CaptureKind = "expr"
	KindToken  CaptureKind = "token"
	KindNumber CaptureKind = "number"
	KindString CaptureKind = "string"
	KindIdent  CaptureKind = "ident"
)

// accepts reports whether node n is an acceptable match for this capture
// kind. "expr" accepts any single parsed expression; "token" accepts only
// a single lexical atom (identifier, number, or string, i.e. not a
// compound SExpr/ListExpr/DictExpr).
func (k CaptureKind) accepts(n ast.Node) bool {
	switch k {
	case KindExpr:
		return true
	case KindToken:
		return isAtomic(n)
	case KindNumber:
		_, ok := n.(*ast.Number)
		return ok
	case KindString:
		_, ok := n.(*ast.String)
		return ok
	case KindIdent:
		_, ok := n.(*ast.Var)
		return ok
	default:
		return false
	}
}

// isAtomic reports whether n is a single lexical atom (Number, String, or
// Var) as opposed to a compound form (SExpr, ListExpr, DictExpr).
func isAtomic(n ast.Node) bool {
	switch n.(type) {
	case *ast.Number, *ast.String, *ast.Var:
		return true
	default:
		return false
	}
}

// BracketKind names which of the three structural group characters a
// BracketTerm or contentsOf call is concerned with.
type BracketKind int

const (
	BracketRound BracketKind = iota
	BracketSquare
	BracketCurly
)

// Capture is one entry of a struct map (spec.md's "per-call mapping from
// pattern-bound names to captured AST fragments"). Exactly one of the
// fields is populated, depending on whether the binding came from a plain
// capture, a repeat of one, a named group, or a repeat of a named group.
type Capture struct {
	Node   ast.Node
	Seq    []ast.Node
	Group  Bindings
	Groups []Bindings
}

// Bindings is the struct map produced by a successful pattern match.
type Bindings map[string]Capture

// merge combines two disjoint binding sets. Pattern compilation rejects
// duplicate names before matching ever runs (spec.md §7 "duplicated bound
// name"), so callers never need to resolve a collision here.
func (b Bindings) merge(other Bindings) Bindings {
	if len(other) == 0 {
		return b
	}
	out := make(Bindings, len(b)+len(other))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// candidate is one way a term can consume a prefix of the remaining
// argument list, ordered most-greedy-first by the term that produced it.
type candidate struct {
	pos      int
	bindings Bindings
}

// Term is one compiled pattern element: a literal, a capture, a group, a
// selector, a bracketed structural group, or a repeat wrapping one of the
// above.
type Term interface {
	// candidates returns every way this term can match starting at
	// args[pos:], ordered so that index 0 is the greediest (most
	// arguments consumed). An empty result means the term cannot match
	// at pos at all.
	candidates(args []ast.Node, pos int) []candidate
}

// matchAll returns every way the term sequence terms can fully match a
// prefix of args[pos:], ordered greedy-first. It is the building block
// both for whole-pattern matching (which additionally requires the
// argument list to be exhausted) and for a named group's internal match
// (which does not).
func matchAll(terms []Term, args []ast.Node, pos int) []candidate {
	if len(terms) == 0 {
		return []candidate{{pos: pos, bindings: Bindings{}}}
	}
	first, rest := terms[0], terms[1:]
	var results []candidate
	for _, c := range first.candidates(args, pos) {
		for _, r := range matchAll(rest, args, c.pos) {
			results = append(results, candidate{
				pos:      r.pos,
				bindings: c.bindings.merge(r.bindings),
			})
		}
	}
	return results
}

// Match attempts to match terms against the full argument list args,
// requiring every argument to be consumed. It returns the greediest
// successful binding set, or ok=false if no arrangement of repeats and
// optionals matches the whole call.
func Match(terms []Term, args []ast.Node) (Bindings, bool) {
	for _, c := range matchAll(terms, args, 0) {
		if c.pos == len(args) {
			return c.bindings, true
		}
	}
	return nil, false
}
