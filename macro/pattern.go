package macro

import (
	"fmt"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/lexer"
)

// LiteralTerm matches an argument node exactly equal to a literal written
// directly in the pattern (a bare number, string, or identifier).
type LiteralTerm struct {
	Node ast.Node
}

func (t *LiteralTerm) candidates(args []ast.Node, pos int) []candidate {
	if pos >= len(args) || !literalEqual(t.Node, args[pos]) {
		return nil
	}
	return []candidate{{pos: pos + 1, bindings: Bindings{}}}
}

func literalEqual(pattern, arg ast.Node) bool {
	switch p := pattern.(type) {
	case *ast.Number:
		a, ok := arg.(*ast.Number)
		return ok && a.Value == p.Value
	case *ast.String:
		a, ok := arg.(*ast.String)
		return ok && a.Value == p.Value
	case *ast.Var:
		a, ok := arg.(*ast.Var)
		return ok && a.Name == p.Name
	default:
		return false
	}
}

// CaptureTerm is a `%name{kind}` atom capture. Name is empty when the
// capture sits directly under a repeat marker, in which case the repeat
// owns the binding (spec.md §4.3: "the preceding term itself becomes
// anonymous under [the repeat]").
type CaptureTerm struct {
	Name string
	Kind CaptureKind
}

func (t *CaptureTerm) candidates(args []ast.Node, pos int) []candidate {
	if pos >= len(args) || !t.Kind.accepts(args[pos]) {
		return nil
	}
	b := Bindings{}
	if t.Name != "" {
		b[t.Name] = Capture{Node: args[pos]}
	}
	return []candidate{{pos: pos + 1, bindings: b}}
}

// SelectorTerm is `%name[choice...]`: exactly one literal choice must
// match, and the whole matched argument is bound under Name.
type SelectorTerm struct {
	Name    string
	Choices []ast.Node
}

func (t *SelectorTerm) candidates(args []ast.Node, pos int) []candidate {
	if pos >= len(args) {
		return nil
	}
	for _, choice := range t.Choices {
		if literalEqual(choice, args[pos]) {
			b := Bindings{}
			if t.Name != "" {
				b[t.Name] = Capture{Node: args[pos]}
			}
			return []candidate{{pos: pos + 1, bindings: b}}
		}
	}
	return nil
}

// GroupTerm is a named section `%name(term...)`: its member terms match
// against the very same argument stream as their surrounding context
// (they are not nested inside one compound node), but their bindings are
// collected together under Name rather than flattened into the parent.
// Name is empty when the group sits under a repeat, mirroring CaptureTerm.
type GroupTerm struct {
	Name  string
	Inner []Term
}

func (t *GroupTerm) candidates(args []ast.Node, pos int) []candidate {
	inner := matchAll(t.Inner, args, pos)
	out := make([]candidate, 0, len(inner))
	for _, c := range inner {
		if t.Name == "" {
			out = append(out, c)
			continue
		}
		out = append(out, candidate{
			pos:      c.pos,
			bindings: Bindings{t.Name: {Group: c.bindings}},
		})
	}
	return out
}

// BracketTerm is a structural `(...)`, `[...]`, or `{...}` pattern group:
// it matches only when the argument at pos is itself a compound node of
// the corresponding shape, and its contents fully satisfy the nested
// pattern.
type BracketTerm struct {
	Kind  BracketKind
	Inner []Term
}

func (t *BracketTerm) candidates(args []ast.Node, pos int) []candidate {
	if pos >= len(args) {
		return nil
	}
	content, ok := contentsOf(t.Kind, args[pos])
	if !ok {
		return nil
	}
	for _, c := range matchAll(t.Inner, content, 0) {
		if c.pos == len(content) {
			return []candidate{{pos: pos + 1, bindings: c.bindings}}
		}
	}
	return nil
}

// contentsOf extracts the flat child-node sequence of n if n is the
// compound form matching kind, ok=false otherwise.
func contentsOf(kind BracketKind, n ast.Node) ([]ast.Node, bool) {
	switch kind {
	case BracketRound:
		s, ok := n.(*ast.SExpr)
		if !ok {
			return nil, false
		}
		if s.IsUnit() {
			return nil, true
		}
		return append([]ast.Node{s.Head}, s.Args...), true
	case BracketSquare:
		l, ok := n.(*ast.ListExpr)
		if !ok {
			return nil, false
		}
		return l.Items, true
	case BracketCurly:
		d, ok := n.(*ast.DictExpr)
		if !ok {
			return nil, false
		}
		content := make([]ast.Node, 0, len(d.Pairs)*2)
		for _, p := range d.Pairs {
			content = append(content, p.Key, p.Value)
		}
		return content, true
	default:
		return nil, false
	}
}

// RepeatTerm wraps Inner with a `%?` (0 or 1), `%*` (0 or more), or `%+`
// (1 or more) marker. It takes ownership of Inner's bound name: compile
// time clears the name on Inner and moves it here.
type RepeatTerm struct {
	Name  string
	Inner Term
	Min   int
	Max   int // -1 means unbounded
}

// candidates builds a single chain of ever-deeper matches by repeatedly
// taking Inner's own greediest candidate, then offers that chain's counts
// from deepest to shallowest (greedy-first, as spec.md's "greediest
// repeat wins" requires), subject to Min/Max.
func (t *RepeatTerm) candidates(args []ast.Node, pos int) []candidate {
	type step struct {
		pos   int
		bound Bindings
	}
	chain := []step{{pos: pos}}
	cur := pos
	for t.Max < 0 || len(chain)-1 < t.Max {
		cs := t.Inner.candidates(args, cur)
		if len(cs) == 0 {
			break
		}
		best := cs[0]
		if best.pos == cur {
			// A zero-width match would loop forever; a well-formed
			// pattern never wraps a zero-width term in a repeat.
			break
		}
		chain = append(chain, step{pos: best.pos, bound: best.bindings})
		cur = best.pos
	}

	// Inner's own name was cleared when this RepeatTerm was built (the
	// repeat owns the binding instead), so its per-step bindings carry
	// nothing to collect for a plain capture — the consumed nodes are
	// recovered by slicing args at each step's position instead. A
	// repeated named group is the one case with real per-step bindings
	// to keep: GroupTerm.candidates with an empty Name forwards its
	// members' own (still-named) bindings unwrapped, so chain[i].bound
	// already holds that step's group submatch.
	_, isGroup := t.Inner.(*GroupTerm)

	var out []candidate
	for count := len(chain) - 1; count >= t.Min; count-- {
		bindings := Bindings{}
		if t.Name != "" {
			if isGroup {
				groups := make([]Bindings, 0, count)
				for i := 1; i <= count; i++ {
					groups = append(groups, chain[i].bound)
				}
				bindings[t.Name] = Capture{Groups: groups}
			} else {
				nodes := append([]ast.Node(nil), args[pos:chain[count].pos]...)
				bindings[t.Name] = Capture{Seq: nodes}
			}
		}
		out = append(out, candidate{pos: chain[count].pos, bindings: bindings})
	}
	return out
}

// CompileError reports a problem found while compiling a macro pattern or
// template, tagged with the position of the offending token.
type CompileError struct {
	Message  string
	Position lexer.Position
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position.String())
}
