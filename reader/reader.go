/*
File    : rumlisp/reader/reader.go
Package : reader
*/

// Package reader implements RumLisp's recursive-descent reader: it turns a
// lexer.Lexer's token stream into ast.Node trees with every macro call
// already expanded (spec.md §4.2). Reserved identifiers (let, \, do,
// macro, @) dispatch to specialized handlers; any other S-expression head
// is checked against the reader's macro registry before falling back to
// an ordinary SExpr node.
package reader

import (
	"fmt"
	"io"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/lexer"
	"github.com/RuMaxwell/rumlisp/macro"
)

// reserved lists the identifiers that introduce a special form rather
// than an ordinary function-call head. Keywords are not valid identifiers
// in binding position (spec.md §4.2).
var reserved = map[string]bool{
	"let":   true,
	"\\":    true,
	"do":    true,
	"macro": true,
	"@":     true,
}

// ParseError is a reader-level failure: an unexpected token, an unmatched
// bracket surfaced from the lexer, or a macro-compile-time error.
type ParseError struct {
	Message  string
	Position lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position.String())
}

// Reader drives one token stream through to a sequence of ast.Node values.
// Its Macros registry is scoped to this Reader alone; reading two
// independent programs means constructing two Readers, each with its own
// registry (spec.md §7 — isolation is the host's responsibility).
type Reader struct {
	lex    *lexer.Lexer
	Macros *macro.Registry
}

// New returns a Reader over src with a fresh, empty macro registry.
func New(src string) *Reader {
	return &Reader{lex: lexer.New(src), Macros: macro.NewRegistry()}
}

// ReadProgram reads every top-level expression until EOF. Any error other
// than reaching EOF cleanly aborts the read and is returned as-is.
func (r *Reader) ReadProgram() ([]ast.Node, error) {
	var program []ast.Node
	for {
		if r.lex.LookNext().IsEOF() {
			return program, nil
		}
		node, err := r.ReadExpr()
		if err == io.EOF {
			return nil, &ParseError{Message: "unexpected end of input", Position: r.lex.LookNext().Pos}
		}
		if err != nil {
			return nil, err
		}
		program = append(program, node)
	}
}

// next consumes and returns the next token, translating EOF into io.EOF
// and a lexer error token into a *ParseError — the "checked token"
// wrapper of spec.md §4.1.
func (r *Reader) next() (lexer.Token, error) {
	tok := r.lex.Next()
	if tok.IsEOF() {
		return tok, io.EOF
	}
	if tok.IsError() {
		return tok, &ParseError{Message: tok.Literal, Position: tok.Pos}
	}
	return tok, nil
}

// peek looks at the next token without consuming it, applying the same
// EOF/error translation as next.
func (r *Reader) peek() (lexer.Token, error) {
	tok := r.lex.LookNext()
	if tok.IsEOF() {
		return tok, io.EOF
	}
	if tok.IsError() {
		return tok, &ParseError{Message: tok.Literal, Position: tok.Pos}
	}
	return tok, nil
}

func (r *Reader) expectSymbol(glyph string) (lexer.Token, error) {
	tok, err := r.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != lexer.SYMBOL || tok.Literal != glyph {
		return tok, &ParseError{Message: fmt.Sprintf("expected %q, found %q", glyph, tok.Literal), Position: tok.Pos}
	}
	return tok, nil
}

func (r *Reader) expectIdentifier() (lexer.Token, error) {
	tok, err := r.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != lexer.IDENTIFIER {
		return tok, &ParseError{Message: fmt.Sprintf("expected an identifier, found %q", tok.Literal), Position: tok.Pos}
	}
	if reserved[tok.Literal] {
		return tok, &ParseError{Message: fmt.Sprintf("%q is a reserved identifier and cannot be used here", tok.Literal), Position: tok.Pos}
	}
	return tok, nil
}

// ReadExpr reads a single top-level expression (an atom or a bracketed
// form), expanding any macro call encountered along the way.
func (r *Reader) ReadExpr() (ast.Node, error) {
	tok, err := r.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case lexer.NUMBER:
		r.next()
		return parseNumber(tok)
	case lexer.STRING:
		r.next()
		return &ast.String{Value: tok.Literal, Position: tok.Pos}, nil
	case lexer.IDENTIFIER:
		if reserved[tok.Literal] {
			return nil, &ParseError{Message: fmt.Sprintf("%q used outside its calling position", tok.Literal), Position: tok.Pos}
		}
		r.next()
		return &ast.Var{Name: tok.Literal, Position: tok.Pos}, nil
	case lexer.SYMBOL:
		switch tok.Literal {
		case "(":
			return r.readParenForm()
		case "[":
			return r.readListExpr()
		case "{":
			return r.readDictExpr()
		}
	}
	return nil, &ParseError{Message: fmt.Sprintf("unexpected token %q", tok.Literal), Position: tok.Pos}
}

func parseNumber(tok lexer.Token) (ast.Node, error) {
	v, err := parseFloat(tok.Literal)
	if err != nil {
		return nil, &ParseError{Message: "malformed number literal", Position: tok.Pos}
	}
	return &ast.Number{Value: v, Position: tok.Pos}, nil
}

// readParenForm handles the `(` dispatch rule of spec.md §4.2: reserved
// head words go to their special-form handlers; everything else is read
// as a plain argument list and is then checked against the macro
// registry before falling back to an ordinary SExpr.
func (r *Reader) readParenForm() (ast.Node, error) {
	openTok, err := r.expectSymbol("(")
	if err != nil {
		return nil, err
	}
	pos := openTok.Pos

	head, err := r.peek()
	if err != nil {
		return nil, err
	}

	if head.Type == lexer.IDENTIFIER && reserved[head.Literal] {
		r.next()
		switch head.Literal {
		case "let":
			return r.readLet(pos)
		case "\\":
			return r.readLambda(pos)
		case "do":
			return r.readDo(pos)
		case "macro":
			return r.readMacro(pos)
		case "@":
			return r.readExec(pos)
		}
	}

	// Unit expression: `()`.
	if head.Type == lexer.SYMBOL && head.Literal == ")" {
		r.next()
		return &ast.SExpr{Position: pos}, nil
	}

	items, err := r.readUntil(")")
	if err != nil {
		return nil, err
	}

	if headVar, ok := items[0].(*ast.Var); ok && r.Macros.Has(headVar.Name) {
		expanded, err := r.Macros.Expand(headVar.Name, items[1:], pos)
		if err != nil {
			return nil, &ParseError{Message: err.Error(), Position: pos}
		}
		return expanded, nil
	}

	return &ast.SExpr{Head: items[0], Args: items[1:], Position: pos}, nil
}

// readUntil reads expressions until the next token is the symbol
// closeGlyph, consuming that closing token, and requires at least one
// expression to have been read (used for S-expression bodies, whose head
// is mandatory).
func (r *Reader) readUntil(closeGlyph string) ([]ast.Node, error) {
	var items []ast.Node
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.SYMBOL && tok.Literal == closeGlyph {
			r.next()
			if len(items) == 0 {
				return nil, &ParseError{Message: "expected an expression before " + closeGlyph, Position: tok.Pos}
			}
			return items, nil
		}
		item, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

// readZeroOrMoreUntil is readUntil without the at-least-one requirement,
// used for `do`, `[...]`, and `@` argument lists (which may be empty).
func (r *Reader) readZeroOrMoreUntil(closeGlyph string) ([]ast.Node, error) {
	var items []ast.Node
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.SYMBOL && tok.Literal == closeGlyph {
			r.next()
			return items, nil
		}
		item, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *Reader) readListExpr() (ast.Node, error) {
	openTok, err := r.expectSymbol("[")
	if err != nil {
		return nil, err
	}
	items, err := r.readZeroOrMoreUntil("]")
	if err != nil {
		return nil, err
	}
	return &ast.ListExpr{Items: items, Position: openTok.Pos}, nil
}

func (r *Reader) readDictExpr() (ast.Node, error) {
	openTok, err := r.expectSymbol("{")
	if err != nil {
		return nil, err
	}
	var pairs []ast.DictPair
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.SYMBOL && tok.Literal == "}" {
			r.next()
			return &ast.DictExpr{Pairs: pairs, Position: openTok.Pos}, nil
		}
		if _, err := r.expectSymbol("("); err != nil {
			return nil, err
		}
		key, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		value, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expectSymbol(")"); err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.DictPair{Key: key, Value: value})
	}
}

// readParamList reads identifiers until the parenthesis opened just
// before this call returns to balance, using the bracket-counter-
// snapshot trick (spec.md §4.2): snapshot the live counter right after
// the caller consumed the opening `(`, target one less than that, and
// keep reading identifiers until the live counter matches the target —
// i.e. until the matching `)` has itself been consumed.
func (r *Reader) readParamList() ([]string, error) {
	target := r.lex.Brackets.Snapshot().DecRound()

	var params []string
	for !r.lex.Brackets.Balanced(target) {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.SYMBOL && tok.Literal == ")" {
			if _, err := r.next(); err != nil {
				return nil, err
			}
			break
		}
		nameTok, err := r.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, nameTok.Literal)
	}
	return params, nil
}

func (r *Reader) readLet(pos lexer.Position) (ast.Node, error) {
	tok, err := r.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Type == lexer.IDENTIFIER:
		nameTok, err := r.expectIdentifier()
		if err != nil {
			return nil, err
		}
		value, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &ast.LetVar{Name: nameTok.Literal, Expr: value, Position: pos}, nil
	case tok.Type == lexer.SYMBOL && tok.Literal == "(":
		if _, err := r.expectSymbol("("); err != nil {
			return nil, err
		}
		nameTok, err := r.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params, err := r.readParamList()
		if err != nil {
			return nil, err
		}
		body, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &ast.LetFunc{Name: nameTok.Literal, Params: params, Body: body, Position: pos}, nil
	default:
		return nil, &ParseError{Message: "let expects an identifier or a function header", Position: tok.Pos}
	}
}

func (r *Reader) readLambda(pos lexer.Position) (ast.Node, error) {
	if _, err := r.expectSymbol("("); err != nil {
		return nil, err
	}
	params, err := r.readParamList()
	if err != nil {
		return nil, err
	}
	body, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	if _, err := r.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &ast.Lambda{Params: params, Body: body, Position: pos}, nil
}

func (r *Reader) readDo(pos lexer.Position) (ast.Node, error) {
	items, err := r.readZeroOrMoreUntil(")")
	if err != nil {
		return nil, err
	}
	return &ast.Do{Items: items, Position: pos}, nil
}

func (r *Reader) readExec(pos lexer.Position) (ast.Node, error) {
	items, err := r.readZeroOrMoreUntil(")")
	if err != nil {
		return nil, err
	}
	return &ast.Exec{Args: items, Position: pos}, nil
}

// readMacro parses `macro`'s own `(<name> <pattern-term>...) <template>`
// payload via package macro (which shares this Reader's lexer so token
// positions stay in sync), registers the compiled definition, and
// produces the MacroDef sentinel node.
func (r *Reader) readMacro(pos lexer.Position) (ast.Node, error) {
	def, err := macro.ParseDefinition(r.lex, pos)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Position: pos}
	}
	if err := r.Macros.Define(def); err != nil {
		return nil, &ParseError{Message: err.Error(), Position: pos}
	}
	return &ast.MacroDef{Name: def.Name, Position: pos}, nil
}
