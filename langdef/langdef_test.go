package langdef

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/parser"
	"github.com/ava12/nabu/ret"
)

const assignments = `
name: assignments
entry: program
tokens:
  - name: comment
    re: '#[^\n]*'
    ignore: true
  - name: num
    re: '\d+'
    cast: int
  - name: ident
    re: '[a-z]+'
  - name: assign
    re: ':='
  - name: semi
    re: ';'
rules:
  - name: program
    expr: stmt*
  - name: stmt
    expr: ident assign (num | ident) semi?
`

func TestParseDescription(t *testing.T) {
	lang, e := Parse("test.yaml", []byte(assignments))
	require.NoError(t, e)
	assert.Equal(t, "assignments", lang.Name)
	assert.Equal(t, "program", lang.Entry)
	assert.Equal(t, []string{"program", "stmt"}, lang.Grammar.Symbols())

	tokens, e := lang.ParseText("sample", "x := 1; # one\ny := x")
	require.NoError(t, e)
	require.Len(t, tokens, 1)
	assert.Equal(t, "program", tokens[0].Name())
	assert.Equal(t, `{{"x", ":=", 1, ";"}, {"y", ":=", "x", "ε"}}`, ret.Flat(tokens[0].ToValue()))

	_, e = lang.ParseText("sample", "x := ;")
	assert.ErrorIs(t, e, parser.UnexpectedToken)
	_, e = lang.ParseText("sample", "x := @")
	assert.ErrorIs(t, e, lexer.BadLexeme)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tokens:\n  - name: n\n    re: '\\d+'\nrules:\n  - name: nums\n    expr: n+\n"), 0o644))

	lang, e := Load(path)
	require.NoError(t, e)
	assert.Equal(t, "lang.yaml", lang.Name)
	assert.Equal(t, "nums", lang.Entry)

	tokens, e := lang.ParseText("", "1 2 3")
	require.NoError(t, e)
	require.Len(t, tokens, 1)
	assert.Equal(t, `{"1", {"2", "3"}}`, ret.Flat(tokens[0].ToValue()))

	_, e = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, e, BadDescription)
}

func TestChainedTokens(t *testing.T) {
	desc := `
head: kw
tokens:
  - name: word
    re: '[a-z]+'
  - name: kw
    re: 'let'
    next: word
rules:
  - name: decl
    expr: kw word
`
	lang, e := Parse("chained", []byte(desc))
	require.NoError(t, e)
	tokens, e := lang.ParseText("", "let x")
	require.NoError(t, e)
	assert.Equal(t, "kw", tokens[0].Item(0).Name())

	cyclic := `
tokens:
  - name: a
    re: 'a'
    next: b
  - name: b
    re: 'b'
    next: a
rules:
  - name: r
    expr: a b
`
	_, e = Parse("cyclic", []byte(cyclic))
	assert.ErrorIs(t, e, InvalidGrammar)
	assert.ErrorIs(t, e, lexer.CyclicChain)
}

func TestDescriptionErrors(t *testing.T) {
	samples := []struct {
		name, desc string
		target     error
		hint       string
	}{
		{
			"misspelled rule",
			"tokens: [{name: n, re: 'x'}]\nrules: [{name: stmt, expr: n}, {name: top, expr: stmnt*}]",
			parser.UndefinedSymbol,
			`did you mean "stmt"?`,
		},
		{
			"misspelled cast",
			"tokens: [{name: n, re: '1', cast: innt}]\nrules: [{name: top, expr: n}]",
			UnknownCast,
			`did you mean "int"?`,
		},
		{
			"misspelled entry",
			"entry: progam\ntokens: [{name: n, re: '1'}]\nrules: [{name: program, expr: n}]",
			UnknownEntry,
			`did you mean "program"?`,
		},
		{
			"unknown field",
			"tokenz: []",
			BadDescription,
			"",
		},
		{
			"bad expression",
			"tokens: [{name: n, re: '1'}]\nrules: [{name: top, expr: 'n |'}]",
			BadExpr,
			`rule "top"`,
		},
		{
			"bad pattern",
			"tokens: [{name: n, re: '(1'}]\nrules: [{name: top, expr: n}]",
			lexer.BadPattern,
			`"n"`,
		},
		{
			"no rules",
			"tokens: [{name: n, re: '1'}]",
			UnknownEntry,
			"no rules",
		},
		{
			"duplicate rule",
			"tokens: [{name: n, re: '1'}]\nrules: [{name: top, expr: n}, {name: top, expr: n n}]",
			parser.SymbolDefined,
			"",
		},
	}

	for _, s := range samples {
		t.Run(s.name, func(t *testing.T) {
			_, e := Parse(s.name, []byte(s.desc))
			require.Error(t, e)
			assert.True(t, errors.Is(e, s.target), "expecting %v, got %v", s.target, e)
			assert.Contains(t, e.Error(), s.hint)
		})
	}
}
