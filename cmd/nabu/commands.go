package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/internal/suggest"
	"github.com/ava12/nabu/langdef"
	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/parser"
	"github.com/ava12/nabu/ret"
	"github.com/ava12/nabu/source"
)

// Error codes of command line usage errors:
const (
	// "unknown format %q"
	ErrUnknownFormat = nabu.ConfigErrors + 90 + iota

	// "cannot read %s: ..."
	ErrReadFile
)

func (ctx *Context) load(path string) (*langdef.Language, error) {
	return langdef.Load(path, langdef.WithLogger(ctx.Log))
}

func (ctx *Context) read(path string) (*source.Source, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, nabu.FormatError(ErrReadFile, "cannot read %s: %s", path, e.Error()).Wrap(e)
	}
	ctx.src = source.New(path, data)
	return ctx.src, nil
}

// LexCmd prints the token table of a file.
type LexCmd struct {
	Grammar string `arg:"" help:"Language description file"`
	File    string `arg:"" help:"Source file"`
}

// Run lexes the file reporting all lexical errors at once.
func (cmd *LexCmd) Run(ctx *Context) error {
	lang, e := ctx.load(cmd.Grammar)
	if e != nil {
		return e
	}
	src, e := ctx.read(cmd.File)
	if e != nil {
		return e
	}

	q, lexErr := lang.Lexer.LexSource(src, lexer.CollectErrors())
	table := tablewriter.NewWriter(ctx.Stdout)
	table.SetHeader([]string{"Line", "Col", "Token", "Text", "Value"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, t := range q.Tokens() {
		table.Append([]string{
			strconv.Itoa(t.Line()),
			strconv.Itoa(t.Col()),
			t.Name(),
			strconv.Quote(t.Text()),
			ret.Flat(t.Value()),
		})
	}
	table.Render()
	return lexErr
}

// ParseCmd prints the result tree of a file.
type ParseCmd struct {
	Format  string `help:"Output format: flat, json, or yaml" enum:"flat,json,yaml" default:"flat" short:"f"`
	Entry   string `help:"Entry rule, default is defined by the description" short:"e"`
	Grammar string `arg:"" help:"Language description file"`
	File    string `arg:"" help:"Source file"`
}

// Run parses the entry rule until the end of the file.
func (cmd *ParseCmd) Run(ctx *Context) error {
	lang, e := ctx.load(cmd.Grammar)
	if e != nil {
		return e
	}
	entry := lang.Entry
	if cmd.Entry != "" {
		if !lang.Grammar.Defined(cmd.Entry) {
			return nabu.FormatError(langdef.ErrUnknownEntry, "unknown entry rule %q%s",
				cmd.Entry, suggest.Hint(cmd.Entry, lang.Grammar.Symbols()))
		}
		entry = cmd.Entry
	}

	src, e := ctx.read(cmd.File)
	if e != nil {
		return e
	}
	q, e := lang.Lexer.LexSource(src)
	if e != nil {
		return e
	}
	tokens, e := parser.ParseAll(lang.Grammar, entry, q)
	if e != nil {
		return e
	}

	return cmd.print(ctx, result(tokens))
}

func result(tokens []*lexer.Token) ret.Value {
	if len(tokens) == 1 {
		return tokens[0].ToValue()
	}
	values := make([]ret.Value, len(tokens))
	for i, t := range tokens {
		values[i] = t.ToValue()
	}
	return ret.NewSeq(values...)
}

func (cmd *ParseCmd) print(ctx *Context, v ret.Value) error {
	var (
		data []byte
		e    error
	)
	switch cmd.Format {
	case "flat":
		data = []byte(ret.Flat(v) + "\n")
	case "json":
		data, e = ret.JSON(v, "  ")
		data = append(data, '\n')
	case "yaml":
		data, e = ret.YAML(v)
	default:
		return nabu.FormatError(ErrUnknownFormat, "unknown format %q", cmd.Format)
	}
	if e != nil {
		return e
	}
	_, e = ctx.Stdout.Write(data)
	return e
}

// CheckCmd validates a language description and prints its canonical form.
type CheckCmd struct {
	Grammar string `arg:"" help:"Language description file"`
}

// Run prints tokens in definition order and rules with normalized expressions.
func (cmd *CheckCmd) Run(ctx *Context) error {
	lang, e := ctx.load(cmd.Grammar)
	if e != nil {
		return e
	}

	fmt.Fprintf(ctx.Stdout, "language %s, entry rule %s\n", lang.Name, lang.Entry)
	for _, def := range lang.Lexer.Defs() {
		flag := ""
		if def.Ignore {
			flag = " (ignored)"
		}
		fmt.Fprintf(ctx.Stdout, "token %s = /%s/%s\n", def.Name, def.Pattern, flag)
	}
	for _, r := range lang.Def.Rules {
		expr, e := langdef.ParseExpr(r.Expr)
		if e != nil {
			return e
		}
		fmt.Fprintf(ctx.Stdout, "rule %s = %s\n", r.Name, expr)
	}
	return nil
}
