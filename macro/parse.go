package macro

import (
	"fmt"
	"strconv"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/lexer"
)

// ParseDefinition reads a macro definition's pattern and template directly
// from lex, picking up right after the reader has consumed the opening
// `(` and the reserved `macro` identifier. It consumes through the
// definition's own closing `)` and returns the compiled Definition,
// which the caller registers.
//
//	(macro (<name> <pattern-term>...) <template>)
func ParseDefinition(lex *lexer.Lexer, formPos lexer.Position) (*Definition, error) {
	if err := expectSymbol(lex, "("); err != nil {
		return nil, err
	}
	nameTok := lex.Next()
	if nameTok.Type != lexer.IDENTIFIER {
		return nil, &CompileError{Message: "macro definition is missing its name", Position: nameTok.Pos}
	}

	terms, err := parseTermSeq(lex, ")")
	if err != nil {
		return nil, err
	}
	if err := checkNoDuplicateNames(terms); err != nil {
		return nil, err
	}

	tmplRoot, err := parseTemplateTerm(lex)
	if err != nil {
		return nil, err
	}

	if err := expectSymbol(lex, ")"); err != nil {
		return nil, err
	}

	return &Definition{
		Name:     nameTok.Literal,
		Pattern:  terms,
		Template: &Template{Root: tmplRoot},
		Position: formPos,
	}, nil
}

func expectSymbol(lex *lexer.Lexer, glyph string) error {
	tok := lex.Next()
	if tok.Type != lexer.SYMBOL || tok.Literal != glyph {
		return &CompileError{Message: fmt.Sprintf("expected %q, found %q", glyph, tok.Literal), Position: tok.Pos}
	}
	return nil
}

func peekIsSymbol(lex *lexer.Lexer, glyph string) bool {
	tok := lex.LookNext()
	return tok.Type == lexer.SYMBOL && tok.Literal == glyph
}

// peek2 reports the next two tokens without consuming either.
func peek2(lex *lexer.Lexer) (lexer.Token, lexer.Token) {
	clone := *lex
	first := clone.Next()
	second := clone.Next()
	return first, second
}

func parseTermSeq(lex *lexer.Lexer, closeGlyph string) ([]Term, error) {
	var terms []Term
	for {
		if peekIsSymbol(lex, closeGlyph) {
			lex.Next()
			return terms, nil
		}
		if lex.LookNext().IsEOF() {
			return nil, &CompileError{Message: "unexpected end of input in macro pattern", Position: lex.LookNext().Pos}
		}
		term, err := parseTerm(lex)
		if err != nil {
			return nil, err
		}
		term, err = maybeWrapRepeat(term, lex)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
}

func parseTerm(lex *lexer.Lexer) (Term, error) {
	tok := lex.Next()
	switch tok.Type {
	case lexer.NUMBER:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &CompileError{Message: "malformed number literal in pattern", Position: tok.Pos}
		}
		return &LiteralTerm{Node: &ast.Number{Value: v, Position: tok.Pos}}, nil
	case lexer.STRING:
		return &LiteralTerm{Node: &ast.String{Value: tok.Literal, Position: tok.Pos}}, nil
	case lexer.IDENTIFIER:
		return &LiteralTerm{Node: &ast.Var{Name: tok.Literal, Position: tok.Pos}}, nil
	case lexer.SYMBOL:
		switch tok.Literal {
		case "(":
			inner, err := parseTermSeq(lex, ")")
			if err != nil {
				return nil, err
			}
			return &BracketTerm{Kind: BracketRound, Inner: inner}, nil
		case "[":
			inner, err := parseTermSeq(lex, "]")
			if err != nil {
				return nil, err
			}
			return &BracketTerm{Kind: BracketSquare, Inner: inner}, nil
		case "{":
			inner, err := parseTermSeq(lex, "}")
			if err != nil {
				return nil, err
			}
			return &BracketTerm{Kind: BracketCurly, Inner: inner}, nil
		case "%":
			return parsePercentTerm(lex)
		}
	}
	return nil, &CompileError{Message: fmt.Sprintf("unexpected token %q in macro pattern", tok.Literal), Position: tok.Pos}
}

func parsePercentTerm(lex *lexer.Lexer) (Term, error) {
	nameTok := lex.Next()
	if nameTok.Type != lexer.IDENTIFIER {
		return nil, &CompileError{Message: "expected a name after %", Position: nameTok.Pos}
	}
	name := nameTok.Literal

	next := lex.LookNext()
	if next.Type != lexer.SYMBOL {
		return nil, &CompileError{Message: fmt.Sprintf("expected {, [, or ( after %%%s", name), Position: next.Pos}
	}
	switch next.Literal {
	case "{":
		lex.Next()
		kindTok := lex.Next()
		if kindTok.Type != lexer.IDENTIFIER {
			return nil, &CompileError{Message: "expected a capture kind", Position: kindTok.Pos}
		}
		if err := expectSymbol(lex, "}"); err != nil {
			return nil, err
		}
		return &CaptureTerm{Name: name, Kind: CaptureKind(kindTok.Literal)}, nil
	case "[":
		lex.Next()
		var choices []ast.Node
		for !peekIsSymbol(lex, "]") {
			tok := lex.Next()
			n, err := literalNode(tok)
			if err != nil {
				return nil, err
			}
			choices = append(choices, n)
		}
		lex.Next()
		return &SelectorTerm{Name: name, Choices: choices}, nil
	case "(":
		lex.Next()
		inner, err := parseTermSeq(lex, ")")
		if err != nil {
			return nil, err
		}
		return &GroupTerm{Name: name, Inner: inner}, nil
	default:
		return nil, &CompileError{Message: fmt.Sprintf("expected {, [, or ( after %%%s", name), Position: next.Pos}
	}
}

func literalNode(tok lexer.Token) (ast.Node, error) {
	switch tok.Type {
	case lexer.NUMBER:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &CompileError{Message: "malformed number literal", Position: tok.Pos}
		}
		return &ast.Number{Value: v, Position: tok.Pos}, nil
	case lexer.STRING:
		return &ast.String{Value: tok.Literal, Position: tok.Pos}, nil
	case lexer.IDENTIFIER:
		return &ast.Var{Name: tok.Literal, Position: tok.Pos}, nil
	default:
		return nil, &CompileError{Message: fmt.Sprintf("expected a literal choice, found %q", tok.Literal), Position: tok.Pos}
	}
}

// maybeWrapRepeat consumes a trailing `%?`, `%*`, or `%+` marker (two
// tokens: "%" then the marker identifier) if present, moving term's own
// bound name (if any) onto the resulting RepeatTerm.
func maybeWrapRepeat(term Term, lex *lexer.Lexer) (Term, error) {
	t1, t2 := peek2(lex)
	if !(t1.Type == lexer.SYMBOL && t1.Literal == "%") {
		return term, nil
	}
	if t2.Type != lexer.IDENTIFIER {
		return term, nil
	}
	var min, max int
	switch t2.Literal {
	case "?":
		min, max = 0, 1
	case "*":
		min, max = 0, -1
	case "+":
		min, max = 1, -1
	default:
		return term, nil
	}
	lex.Next()
	lex.Next()

	name := ownName(term)
	clearOwnName(term)
	return &RepeatTerm{Name: name, Inner: term, Min: min, Max: max}, nil
}

func ownName(term Term) string {
	switch v := term.(type) {
	case *CaptureTerm:
		return v.Name
	case *GroupTerm:
		return v.Name
	case *SelectorTerm:
		return v.Name
	default:
		return ""
	}
}

func clearOwnName(term Term) {
	switch v := term.(type) {
	case *CaptureTerm:
		v.Name = ""
	case *GroupTerm:
		v.Name = ""
	case *SelectorTerm:
		v.Name = ""
	}
}

// checkNoDuplicateNames rejects a pattern that binds the same name twice
// (spec.md §7's "duplicated bound name").
func checkNoDuplicateNames(terms []Term) error {
	seen := map[string]bool{}
	var walk func(terms []Term) error
	walk = func(terms []Term) error {
		for _, term := range terms {
			var name string
			var children []Term
			switch v := term.(type) {
			case *CaptureTerm:
				name = v.Name
			case *SelectorTerm:
				name = v.Name
			case *GroupTerm:
				name = v.Name
				children = v.Inner
			case *BracketTerm:
				children = v.Inner
			case *RepeatTerm:
				name = v.Name
				children = []Term{v.Inner}
			}
			if name != "" {
				if seen[name] {
					return &CompileError{Message: fmt.Sprintf("duplicated bound name %%%s", name)}
				}
				seen[name] = true
			}
			if err := walk(children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(terms)
}

func parseTemplateSeq(lex *lexer.Lexer, closeGlyph string) ([]tmplTerm, error) {
	var items []tmplTerm
	for {
		if peekIsSymbol(lex, closeGlyph) {
			lex.Next()
			return items, nil
		}
		if lex.LookNext().IsEOF() {
			return nil, &CompileError{Message: "unexpected end of input in macro template", Position: lex.LookNext().Pos}
		}
		item, err := parseTemplateTerm(lex)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func parseTemplateTerm(lex *lexer.Lexer) (tmplTerm, error) {
	tok := lex.Next()
	switch tok.Type {
	case lexer.NUMBER:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &CompileError{Message: "malformed number literal in template", Position: tok.Pos}
		}
		return &tmplLiteral{Node: &ast.Number{Value: v, Position: tok.Pos}}, nil
	case lexer.STRING:
		return &tmplLiteral{Node: &ast.String{Value: tok.Literal, Position: tok.Pos}}, nil
	case lexer.IDENTIFIER:
		return &tmplLiteral{Node: &ast.Var{Name: tok.Literal, Position: tok.Pos}}, nil
	case lexer.SYMBOL:
		switch tok.Literal {
		case "(":
			items, err := parseTemplateSeq(lex, ")")
			if err != nil {
				return nil, err
			}
			return &tmplCompound{Kind: BracketRound, Items: items, Position: tok.Pos}, nil
		case "[":
			items, err := parseTemplateSeq(lex, "]")
			if err != nil {
				return nil, err
			}
			return &tmplCompound{Kind: BracketSquare, Items: items, Position: tok.Pos}, nil
		case "{":
			items, err := parseTemplateSeq(lex, "}")
			if err != nil {
				return nil, err
			}
			return &tmplCompound{Kind: BracketCurly, Items: items, Position: tok.Pos}, nil
		case "%":
			if peekIsSymbol(lex, "%") {
				lex.Next()
				nameTok := lex.Next()
				if nameTok.Type != lexer.IDENTIFIER {
					return nil, &CompileError{Message: "expected a name after %%", Position: nameTok.Pos}
				}
				return &tmplSplice{Name: nameTok.Literal, Position: tok.Pos}, nil
			}
			nameTok := lex.Next()
			if nameTok.Type != lexer.IDENTIFIER {
				return nil, &CompileError{Message: "expected a name after %", Position: nameTok.Pos}
			}
			return &tmplSubst{Name: nameTok.Literal, Position: tok.Pos}, nil
		}
	}
	return nil, &CompileError{Message: fmt.Sprintf("unexpected token %q in macro template", tok.Literal), Position: tok.Pos}
}
