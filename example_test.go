package nabu_test

import (
	"errors"
	"fmt"

	"github.com/ava12/nabu/feeder"
	"github.com/ava12/nabu/langdef"
	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/parser"
	"github.com/ava12/nabu/ret"
	"github.com/ava12/nabu/rules"
)

func Example() {
	lx, e := lexer.New(
		lexer.Def{Name: "num", Pattern: `\d+`, Cast: lexer.CastInt},
		lexer.Def{Name: "op", Pattern: `[-+]`},
	)
	if e != nil {
		panic(e)
	}

	g := parser.New(lx)
	num := g.Token("num")
	if e = g.Define("sum", parser.Alias(num, parser.Repeat(parser.Alias(g.Token("op"), num), -1))); e != nil {
		panic(e)
	}

	total, sign := int64(0), int64(1)
	_ = g.Action("op", func(_ *parser.Context, t *lexer.Token) error {
		sign = 1
		if t.Text() == "-" {
			sign = -1
		}
		return nil
	})
	_ = g.Action("num", func(_ *parser.Context, t *lexer.Token) error {
		n, e := lexer.As[ret.Int](t)
		total += sign * int64(n)
		return e
	})

	q, e := lx.Lex("example", "10 + 5 - 3")
	if e == nil {
		_, e = parser.ParseAll(g, "sum", q)
	}
	if e != nil {
		fmt.Println(e)
		return
	}

	fmt.Println(total)
	// Output: 12
}

func Example_rules() {
	r := rules.NewRegistry()
	pair := rules.Seq(rules.Identifier, rules.Lit('='), rules.Alt(rules.Uint, rules.CStr))
	if e := r.Define("pairs", rules.Star(rules.Skip(pair))); e != nil {
		panic(e)
	}

	v, ok := rules.ParseChar(r, "pairs", feeder.New("example", `x = 1  name = "nabu"`))
	fmt.Println(ok, ret.Flat(v))
	// Output: true {{"x", '=', 1}, {"name", '=', "nabu"}}
}

func Example_langdef() {
	desc := `
tokens:
  - name: key
    re: '[a-z]+'
  - name: eq
    re: '='
  - name: value
    re: '\d+'
    cast: int
rules:
  - name: config
    expr: pair+
  - name: pair
    expr: key eq value
`
	lang, e := langdef.Parse("config", []byte(desc))
	if e != nil {
		fmt.Println(e)
		return
	}

	tokens, e := lang.ParseText("example", "a = 1 b = 2")
	if e != nil {
		fmt.Println(e)
		return
	}
	fmt.Println(tokens[0].Name(), ret.Flat(tokens[0].ToValue()))
	// Output: config {{"a", "=", 1}, {{"b", "=", 2}}}
}

func Example_errors() {
	lx, _ := lexer.New(lexer.Def{Name: "num", Pattern: `\d+`})
	_, e := lx.Lex("example", "10 @ 5")
	fmt.Println(e)
	fmt.Println(errors.Is(e, lexer.BadLexeme))
	// Output:
	// bad lexeme "@" in example at line 1 col 4
	// true
}
