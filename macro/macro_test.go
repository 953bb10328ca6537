package macro

import (
	"testing"

	"github.com/RuMaxwell/rumlisp/ast"
	"github.com/RuMaxwell/rumlisp/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseDef is a test helper: it parses a macro definition's body, i.e.
// everything after the reader would already have consumed "(macro".
func parseDef(t *testing.T, body string) *Definition {
	t.Helper()
	lex := lexer.New("(macro " + body)
	lex.Next()
	lex.Next()
	def, err := ParseDefinition(lex, lexer.Position{Line: 1, Column: 1})
	require.NoError(t, err)
	return def
}

func TestUnlessMacroExpansion(t *testing.T) {
	def := parseDef(t, `(unless %c{expr} %b{expr}) (%c () %b))`)
	assert.Equal(t, "unless", def.Name)

	reg := NewRegistry()
	require.NoError(t, reg.Define(def))
	assert.True(t, reg.Has("unless"))

	cond := &ast.SExpr{
		Head: &ast.Var{Name: "="},
		Args: []ast.Node{&ast.Number{Value: 1}, &ast.Number{Value: 2}},
	}
	branch := &ast.String{Value: "ran"}

	out, err := reg.Expand("unless", []ast.Node{cond, branch}, lexer.Position{})
	require.NoError(t, err)

	sexpr, ok := out.(*ast.SExpr)
	require.True(t, ok)
	assert.Same(t, cond, sexpr.Head)
	require.Len(t, sexpr.Args, 2)
	unit, ok := sexpr.Args[0].(*ast.SExpr)
	require.True(t, ok)
	assert.True(t, unit.IsUnit())
	assert.Same(t, branch, sexpr.Args[1])
}

func TestMacroArityMismatchFails(t *testing.T) {
	def := parseDef(t, `(unless %c{expr} %b{expr}) (%c () %b))`)
	reg := NewRegistry()
	require.NoError(t, reg.Define(def))

	_, err := reg.Expand("unless", []ast.Node{&ast.Number{Value: 1}}, lexer.Position{})
	assert.Error(t, err)
}

func TestMacroRedefinitionRejected(t *testing.T) {
	reg := NewRegistry()
	first := parseDef(t, `(unless %c{expr} %b{expr}) (%c () %b))`)
	second := parseDef(t, `(unless %x{expr}) %x)`)
	require.NoError(t, reg.Define(first))
	assert.Error(t, reg.Define(second))
}

func TestRepeatedCaptureSplicesIntoList(t *testing.T) {
	// (macro (collect %items{expr}%*) [%%items])
	def := parseDef(t, `(collect %items{expr}%*) [%%items])`)

	reg := NewRegistry()
	require.NoError(t, reg.Define(def))

	a := &ast.Number{Value: 1}
	b := &ast.Number{Value: 2}
	c := &ast.Number{Value: 3}

	out, err := reg.Expand("collect", []ast.Node{a, b, c}, lexer.Position{})
	require.NoError(t, err)

	list, ok := out.(*ast.ListExpr)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
	assert.Same(t, a, list.Items[0])
	assert.Same(t, b, list.Items[1])
	assert.Same(t, c, list.Items[2])
}

func TestDuplicateBoundNameRejected(t *testing.T) {
	lex := lexer.New(`(dup %x{expr} %x{expr}) %x)`)
	_, err := ParseDefinition(lex, lexer.Position{})
	assert.Error(t, err)
}
