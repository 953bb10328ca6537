package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(src string) []Token {
	lex := New(src)
	var toks []Token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.IsEOF() || tok.IsError() {
			break
		}
	}
	return toks
}

func TestLexerNumbersAndIdentifiers(t *testing.T) {
	toks := collect(`42 -3.14 foo-bar add`)
	assert.Equal(t, NUMBER, toks[0].Type)
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, "-3.14", toks[1].Literal)
	assert.Equal(t, IDENTIFIER, toks[2].Type)
	assert.Equal(t, "foo-bar", toks[2].Literal)
	assert.Equal(t, IDENTIFIER, toks[3].Type)
}

func TestLexerString(t *testing.T) {
	toks := collect(`"hello world"`)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestLexerMultilineString(t *testing.T) {
	toks := collect("\"a\nb\"")
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "a\nb", toks[0].Literal)
}

func TestLexerUnterminatedString(t *testing.T) {
	toks := collect(`"abc`)
	assert.True(t, toks[0].IsError())
}

func TestLexerComment(t *testing.T) {
	toks := collect("1 ; a comment\n2")
	assert.Equal(t, "1", toks[0].Literal)
	assert.Equal(t, "2", toks[1].Literal)
}

func TestLexerBrackets(t *testing.T) {
	toks := collect(`([{}])`)
	kinds := make([]string, 0, len(toks)-1)
	for _, tok := range toks {
		if tok.IsEOF() {
			break
		}
		kinds = append(kinds, tok.Literal)
	}
	assert.Equal(t, []string{"(", "[", "{", "}", "]", ")"}, kinds)
}

func TestBracketCounterBalances(t *testing.T) {
	lex := New(`(a (b c) d)`)
	for {
		tok := lex.Next()
		if tok.IsEOF() {
			break
		}
	}
	assert.Equal(t, BracketCounter{}, lex.Brackets)
}

func TestBracketCounterNeverGoesNegative(t *testing.T) {
	lex := New(`)`)
	tok := lex.Next()
	assert.True(t, tok.IsError())
}

func TestLookNextIsIdempotent(t *testing.T) {
	lex := New(`foo bar`)
	first := lex.LookNext()
	second := lex.LookNext()
	third := lex.LookNext()
	assert.Equal(t, first, second)
	assert.Equal(t, second, third)
	consumed := lex.Next()
	assert.Equal(t, first, consumed)
}

func TestLexerSymbolTokens(t *testing.T) {
	toks := collect("%name`x")
	assert.Equal(t, SYMBOL, toks[0].Type)
	assert.Equal(t, "%", toks[0].Literal)
	assert.Equal(t, IDENTIFIER, toks[1].Type)
	assert.Equal(t, "name", toks[1].Literal)
	assert.Equal(t, SYMBOL, toks[2].Type)
	assert.Equal(t, "`", toks[2].Literal)
}

// A semicolon always starts a comment to end-of-line (spec.md §3), so the
// ";" SYMBOL token that rule 3 lists "for completeness" is never actually
// produced in practice.
func TestSemicolonAlwaysStartsComment(t *testing.T) {
	toks := collect("1;2")
	assert.Len(t, toks, 2)
	assert.Equal(t, "1", toks[0].Literal)
	assert.True(t, toks[1].IsEOF())
}

func TestLinesAndColumns(t *testing.T) {
	lex := New("a\nbb")
	first := lex.Next()
	assert.Equal(t, Position{Line: 1, Column: 1}, first.Pos)
	second := lex.Next()
	assert.Equal(t, Position{Line: 2, Column: 1}, second.Pos)
}
