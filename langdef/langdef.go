/*
Package langdef loads language descriptions from YAML files and builds lexers and grammars.

Description sample:

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

Tokens are tried in definition order unless Next fields define the chain.
Rule expressions refer to tokens and rules by name, see ParseExpr for the notation.
Available casts are string (default), int, float, unquote, and char.
*/
package langdef

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/ava12/nabu/grammar"
	"github.com/ava12/nabu/internal/suggest"
	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/parser"
)

var casts = map[string]lexer.CastFunc{
	"":        lexer.CastString,
	"string":  lexer.CastString,
	"int":     lexer.CastInt,
	"float":   lexer.CastFloat,
	"unquote": lexer.CastUnquote,
	"char":    lexer.CastChar,
}

func castNames() []string {
	result := make([]string, 0, len(casts))
	for name := range casts {
		if name != "" {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// Language is a compiled language description.
type Language struct {
	Name    string
	Def     *grammar.Grammar
	Lexer   *lexer.Lexer
	Grammar *parser.Grammar
	Entry   string
}

// Option configures language building.
type Option func(*builder)

// WithLogger sets the logger used by built grammar.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *builder) {
		b.log = l
	}
}

// Load reads and builds language description file.
func Load(path string, opts ...Option) (*Language, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, badDescriptionError(path, e)
	}
	return Parse(filepath.Base(path), data, opts...)
}

// Parse decodes and builds language description. Unknown and duplicate YAML keys are errors.
func Parse(name string, data []byte, opts ...Option) (*Language, error) {
	def := &grammar.Grammar{}
	if e := yaml.UnmarshalWithOptions(data, def, yaml.Strict()); e != nil {
		return nil, badDescriptionError(name, e)
	}
	if def.Name == "" {
		def.Name = name
	}
	return Build(def, opts...)
}

type builder struct {
	def    *grammar.Grammar
	tokens map[string]bool
	g      *parser.Grammar
	log    logrus.FieldLogger
}

// Build compiles language description.
func Build(def *grammar.Grammar, opts ...Option) (*Language, error) {
	b := &builder{def: def, tokens: make(map[string]bool)}
	for _, opt := range opts {
		opt(b)
	}

	lx, e := b.buildLexer()
	if e != nil {
		return nil, invalidGrammarError(def.Name, e)
	}

	var gopts []parser.GrammarOption
	if b.log != nil {
		gopts = append(gopts, parser.WithLogger(b.log))
	}
	b.g = parser.New(lx, gopts...)
	for _, r := range def.Rules {
		expr, e := parseRuleExpr(r.Name, r.Expr)
		if e == nil {
			e = b.g.Define(r.Name, b.node(expr))
		}
		if e != nil {
			return nil, invalidGrammarError(def.Name, e)
		}
	}
	if e := b.g.Check(); e != nil {
		return nil, invalidGrammarError(def.Name, e)
	}

	entry := def.EntryRule()
	if entry == "" {
		return nil, invalidGrammarError(def.Name, noRulesError())
	}
	if !b.g.Defined(entry) {
		return nil, invalidGrammarError(def.Name, unknownEntryError(entry, suggest.Hint(entry, b.g.Symbols())))
	}

	return &Language{Name: def.Name, Def: def, Lexer: lx, Grammar: b.g, Entry: entry}, nil
}

func (b *builder) buildLexer() (*lexer.Lexer, error) {
	defs := make([]lexer.Def, len(b.def.Tokens))
	for i, t := range b.def.Tokens {
		cast, has := casts[t.Cast]
		if !has {
			return nil, unknownCastError(t.Name, t.Cast, suggest.Hint(t.Cast, castNames()))
		}
		defs[i] = lexer.Def{Name: t.Name, Pattern: t.Pattern, Cast: cast, Ignore: t.Ignore}
		b.tokens[t.Name] = true
	}

	if !b.def.Chained() {
		return lexer.New(defs...)
	}

	c := lexer.NewChain()
	for i, def := range defs {
		if _, e := c.Define(def); e != nil {
			return nil, e
		}
		if next := b.def.Tokens[i].Next; next != "" {
			c.Link(def.Name, next)
		} else {
			c.End(def.Name)
		}
	}
	return c.Compile(b.def.HeadToken())
}

func (b *builder) nodes(items []*grammar.Expr) []parser.Node {
	result := make([]parser.Node, len(items))
	for i, item := range items {
		result[i] = b.node(item)
	}
	return result
}

func (b *builder) node(e *grammar.Expr) parser.Node {
	switch e.Kind {
	case grammar.Name:
		if b.tokens[e.Name] {
			return b.g.Token(e.Name)
		}
		return b.g.Ref(e.Name)
	case grammar.Sequence:
		return parser.Alias(b.nodes(e.Items)...)
	case grammar.Choice:
		return parser.Option(b.nodes(e.Items)...)
	case grammar.Repeat:
		return parser.Repeat(b.node(e.Items[0]), e.Count)
	case grammar.Optional:
		return parser.Option(b.node(e.Items[0]), parser.Void())
	case grammar.Some:
		item := b.node(e.Items[0])
		return parser.Alias(item, parser.Repeat(item, -1))
	}
	return parser.Void()
}

// Lex converts text to token queue.
func (l *Language) Lex(name, text string, opts ...lexer.Option) (*lexer.Queue, error) {
	return l.Lexer.Lex(name, text, opts...)
}

// ParseText lexes text and parses the entry rule until the end of text.
func (l *Language) ParseText(name, text string) ([]*lexer.Token, error) {
	q, e := l.Lex(name, text)
	if e != nil {
		return nil, e
	}
	return parser.ParseAll(l.Grammar, l.Entry, q)
}
