package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/ret"
)

var testDefs = []lexer.Def{
	{Name: "Num", Pattern: `\d+`, Cast: lexer.CastInt},
	{Name: "Ident", Pattern: `[a-z]+`},
	{Name: "Walrus", Pattern: `:=`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Semi", Pattern: `;`},
}

const (
	numID = iota
	identID
	walrusID
	plusID
	semiID
)

func testLexer(t *testing.T) *lexer.Lexer {
	lx, e := lexer.New(testDefs...)
	require.NoError(t, e)
	return lx
}

func lex(t *testing.T, lx *lexer.Lexer, text string) *lexer.Queue {
	q, e := lx.Lex("test", text)
	require.NoError(t, e)
	return q
}

// stmtGrammar defines Stmt := Ident Walrus Expr, Expr := Num | Ident.
func stmtGrammar(t *testing.T, opts ...GrammarOption) *Grammar {
	g := New(testLexer(t), opts...)
	require.NoError(t, g.Define("Stmt", Alias(g.Token("Ident"), g.Token("Walrus"), g.Ref("Expr"))))
	require.NoError(t, g.Define("Expr", Option(g.Token("Num"), g.Token("Ident"))))
	require.NoError(t, g.Check())
	return g
}

func recordActions(t *testing.T, g *Grammar, log *[]string, names ...string) {
	for _, name := range names {
		require.NoError(t, g.Action(name, func(ctx *Context, tok *lexer.Token) error {
			*log = append(*log, name)
			return nil
		}))
	}
}

func TestNestedActionOrder(t *testing.T) {
	g := stmtGrammar(t)
	var log []string
	recordActions(t, g, &log, "Stmt", "Expr", "Walrus", "Ident")

	dq := NewDualQueue(lex(t, g.Lexer(), "x := 1"))
	tok, e := Parse(g, "Stmt", dq, true)
	require.NoError(t, e)
	require.NotNil(t, tok)
	assert.Equal(t, []string{"Ident", "Walrus", "Expr", "Stmt"}, log)
	assert.Equal(t, "Stmt", tok.Name())
	assert.Equal(t, `{"x", ":=", 1}`, ret.Flat(tok.ToValue()))
	assert.True(t, dq.Empty())
	assert.Zero(t, dq.Pending())
}

func TestFailedParseRestoresQueue(t *testing.T) {
	g := stmtGrammar(t)
	var log []string
	recordActions(t, g, &log, "Stmt", "Ident")

	q := lex(t, g.Lexer(), "x := + 1")
	before := q.Tokens()
	dq := NewDualQueue(q)
	tok, e := Parse(g, "Stmt", dq, true)
	assert.NoError(t, e)
	assert.Nil(t, tok)
	assert.Empty(t, log)
	assert.Equal(t, before, q.Tokens())
	assert.Zero(t, dq.Pending())
}

func TestPeekLeavesTokensPending(t *testing.T) {
	g := stmtGrammar(t)
	var log []string
	recordActions(t, g, &log, "Stmt")

	dq := NewDualQueue(lex(t, g.Lexer(), "x := y z"))
	tok, e := Parse(g, "Stmt", dq, false)
	require.NoError(t, e)
	require.NotNil(t, tok)
	assert.Empty(t, log)
	assert.Equal(t, 3, dq.Pending())
	assert.Equal(t, "z", dq.Front().Text())

	dq.Restore()
	assert.Zero(t, dq.Pending())
	assert.Equal(t, "x", dq.Front().Text())

	Parse(g, "Stmt", dq, false)
	dq.Commit()
	assert.Zero(t, dq.Pending())
	assert.Equal(t, 1, dq.Queue().Len())
}

func TestOptionBranch(t *testing.T) {
	g := stmtGrammar(t)
	var branches []string
	g.Action("Expr", func(ctx *Context, tok *lexer.Token) error {
		b, ok := ctx.Branch(tok)
		require.True(t, ok)
		branches = append(branches, fmt.Sprintf("%s:%d", tok.Text(), b))
		return nil
	})

	_, e := ParseAll(g, "Stmt", lex(t, g.Lexer(), "a := 1 b := c"))
	require.NoError(t, e)
	assert.Equal(t, []string{"1:0", "c:1"}, branches)
}

func TestNestedOptionBranches(t *testing.T) {
	g := New(testLexer(t))
	require.NoError(t, g.Define("Inner", Option(g.Token("Num"), g.Token("Ident"))))
	require.NoError(t, g.Define("Outer", Option(g.Token("Plus"), g.Token("Semi"), g.Ref("Inner"))))
	require.NoError(t, g.Define("Line", Alias(g.Ref("Outer"), g.Token("Walrus"))))
	require.NoError(t, g.Check())

	var log []string
	watch := func(name string) {
		require.NoError(t, g.Action(name, func(ctx *Context, tok *lexer.Token) error {
			if tok.IsSeq() {
				tok = tok.Item(0)
			}
			b, ok := ctx.Branch(tok)
			require.True(t, ok)
			log = append(log, fmt.Sprintf("%s:%d%v", name, b, ctx.Branches(tok)))
			return nil
		}))
	}
	watch("Inner")
	watch("Outer")
	watch("Line")

	_, e := ParseAll(g, "Line", lex(t, g.Lexer(), "x :="))
	require.NoError(t, e)
	assert.Equal(t, []string{"Inner:1[1]", "Outer:2[1 2]", "Line:2[1 2]"}, log)
}

func TestOptionBacktracking(t *testing.T) {
	g := New(testLexer(t))
	assign := Alias(Tok(identID, "Ident"), Tok(walrusID, "Walrus"), Tok(numID, "Num"))
	sum := Alias(Tok(identID, "Ident"), Tok(plusID, "Plus"), Tok(numID, "Num"))
	require.NoError(t, g.Define("Line", Option(assign, sum)))

	var kinds []string
	g.NodeAction(assign, func(*Context, *lexer.Token) error { kinds = append(kinds, "assign"); return nil })
	g.NodeAction(sum, func(*Context, *lexer.Token) error { kinds = append(kinds, "sum"); return nil })

	tokens, e := ParseAll(g, "Line", lex(t, g.Lexer(), "x + 1 y := 2"))
	require.NoError(t, e)
	assert.Len(t, tokens, 2)
	assert.Equal(t, []string{"sum", "assign"}, kinds)
}

func TestRepeat(t *testing.T) {
	g := New(testLexer(t))
	require.NoError(t, g.Define("Nums", Repeat(g.Token("Num"), -1)))
	require.NoError(t, g.Define("Pair", Repeat(g.Token("Num"), 2)))
	require.NoError(t, g.Define("Voids", Repeat(Void(), -1)))

	dq := NewDualQueue(lex(t, g.Lexer(), "1 2 3 x"))
	tok, e := Parse(g, "Nums", dq, true)
	require.NoError(t, e)
	assert.Equal(t, "{1, 2, 3}", ret.Flat(tok.ToValue()))
	assert.Equal(t, "x", dq.Front().Text())

	tok, _ = Parse(g, "Nums", dq, true)
	require.NotNil(t, tok)
	assert.Zero(t, tok.Len())

	tok, _ = Parse(g, "Voids", dq, true)
	require.NotNil(t, tok)
	assert.Equal(t, 1, tok.Len())
	assert.True(t, tok.Item(0).IsVoid())

	dq = NewDualQueue(lex(t, g.Lexer(), "1 x"))
	tok, _ = Parse(g, "Pair", dq, true)
	assert.Nil(t, tok)
	assert.Equal(t, 2, dq.Queue().Len())

	dq = NewDualQueue(lex(t, g.Lexer(), "1 2 3"))
	tok, _ = Parse(g, "Pair", dq, true)
	require.NotNil(t, tok)
	assert.Equal(t, "{1, 2}", ret.Flat(tok.ToValue()))
}

func TestVoidAction(t *testing.T) {
	g := New(testLexer(t))
	require.NoError(t, g.Define("Opt", Option(g.Token("Num"), Void())))
	voids := 0
	require.NoError(t, g.Action("void", func(_ *Context, tok *lexer.Token) error {
		assert.True(t, tok.IsVoid())
		voids++
		return nil
	}))

	dq := NewDualQueue(lex(t, g.Lexer(), "x"))
	tok, e := Parse(g, "Opt", dq, true)
	require.NoError(t, e)
	assert.True(t, tok.IsVoid())
	assert.Equal(t, 1, voids)
	assert.Equal(t, 1, tok.Line())
}

func TestActionConsumesTrailingTokens(t *testing.T) {
	g := stmtGrammar(t)
	semis := 0
	g.Action("Stmt", func(ctx *Context, tok *lexer.Token) error {
		if Expect(ctx.Queue(), semiID) {
			semis++
		}
		return nil
	})

	tokens, e := ParseAll(g, "Stmt", lex(t, g.Lexer(), "a := 1; b := 2"))
	require.NoError(t, e)
	assert.Len(t, tokens, 2)
	assert.Equal(t, 1, semis)
}

func TestActionError(t *testing.T) {
	g := stmtGrammar(t)
	var log []string
	recordActions(t, g, &log, "Stmt")
	g.Action("Expr", func(*Context, *lexer.Token) error { return errors.New("boom") })

	dq := NewDualQueue(lex(t, g.Lexer(), "x :=\n  42"))
	tok, e := Parse(g, "Stmt", dq, true)
	assert.Nil(t, tok)
	require.Error(t, e)
	assert.ErrorIs(t, e, ActionFailed)
	assert.Empty(t, log)

	var ne *nabu.Error
	require.True(t, errors.As(e, &ne))
	assert.Equal(t, 2, ne.Line)
	assert.Equal(t, 3, ne.Col)
	assert.Equal(t, "boom", errors.Unwrap(e).Error())

	custom := nabu.FormatError(nabu.ActionErrors+50, "custom")
	g = stmtGrammar(t)
	g.Action("Expr", func(*Context, *lexer.Token) error { return custom })
	_, e = Parse(g, "Stmt", NewDualQueue(lex(t, g.Lexer(), "x := 1")), true)
	assert.Same(t, custom, e)
}

func TestParseAllErrors(t *testing.T) {
	g := New(testLexer(t))
	require.NoError(t, g.Define("Stmt", Alias(g.Token("Ident"), g.Token("Walrus"), g.Ref("Expr"), g.Token("Semi"))))
	require.NoError(t, g.Define("Expr", Option(g.Token("Num"), g.Token("Ident"))))

	samples := []struct {
		src, msg string
		code     int
	}{
		{"a := 1; b := ;", `unexpected Semi token ";", expecting Num or Ident in test at line 1 col 14`, ErrUnexpectedToken},
		{"a := 1; 5", `unexpected Num token "5", expecting Ident in test at line 1 col 9`, ErrUnexpectedToken},
		{"a := 1; b :=", `unexpected end of input, expecting Num or Ident`, ErrUnexpectedEnd},
	}

	for _, s := range samples {
		tokens, e := ParseAll(g, "Stmt", lex(t, g.Lexer(), s.src))
		require.Error(t, e, s.src)
		assert.Len(t, tokens, 1, s.src)
		var ne *nabu.Error
		require.True(t, errors.As(e, &ne), s.src)
		assert.Equal(t, s.code, ne.Code, s.src)
		assert.Equal(t, s.msg, ne.Message, s.src)
	}
}

func TestGrammarDefinitionErrors(t *testing.T) {
	g := stmtGrammar(t)
	assert.ErrorIs(t, g.Define("Stmt", Void()), SymbolDefined)
	assert.ErrorIs(t, g.Define("Num", Void()), SymbolDefined)
	assert.ErrorIs(t, g.Define("void", Void()), SymbolDefined)

	e := g.Action("Stm", func(*Context, *lexer.Token) error { return nil })
	assert.ErrorIs(t, e, UnknownName)
	assert.Contains(t, e.Error(), `did you mean "Stmt"?`)
	assert.Equal(t, []string{"Expr", "Stmt"}, g.Symbols())
}

func TestCheck(t *testing.T) {
	g := New(testLexer(t))
	require.NoError(t, g.Define("Expr", Alias(g.Ref("Exp"), g.Token("Idnt"))))
	e := g.Check()
	require.Error(t, e)
	assert.ErrorIs(t, e, UndefinedSymbol)
	assert.ErrorIs(t, e, UnknownToken)
	lines := strings.Split(e.Error(), "\n")
	assert.Equal(t, []string{
		`undefined symbol "Exp" (did you mean "Expr"?)`,
		`unknown token "Idnt" (did you mean "Ident"?)`,
	}, lines)

	tok, e := Parse(g, "Expr", NewDualQueue(lex(t, g.Lexer(), "x")), true)
	assert.Nil(t, tok)
	assert.NoError(t, e)
}

func TestDualQueue(t *testing.T) {
	lx := testLexer(t)
	dq := NewDualQueue(lex(t, lx, "a b c d"))
	outer := dq.Begin()
	dq.Pop()
	inner := dq.Begin()
	dq.Pop()
	dq.Pop()
	assert.Equal(t, 3, dq.Pending())
	dq.Rollback(inner)
	assert.Equal(t, 1, dq.Pending())
	assert.Equal(t, "b", dq.Front().Text())
	dq.Rollback(outer)
	assert.Equal(t, "a", dq.Front().Text())

	v, ok := ExpectValue[ret.String](dq, identID)
	assert.True(t, ok)
	assert.Equal(t, ret.String("a"), v)
	_, ok = ExpectValue[ret.Int](dq, identID)
	assert.False(t, ok)
	assert.False(t, Expect(dq, numID))
	assert.True(t, Expect(dq, identID))
	dq.Commit()
	assert.Zero(t, dq.Pending())
	assert.Equal(t, 2, dq.Queue().Len())

	dq.Pop()
	dq.Pop()
	assert.Nil(t, dq.Pop())
	assert.True(t, dq.Empty())
}

func TestTracing(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	g := stmtGrammar(t, WithLogger(logger))

	Parse(g, "Stmt", NewDualQueue(lex(t, g.Lexer(), "x := 1")), true)
	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "match", last.Message)
	assert.Equal(t, "Stmt", last.Data["symbol"])
	assert.Equal(t, 3, last.Data["consumed"])
}
