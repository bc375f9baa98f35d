package parser

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/internal/suggest"
	"github.com/ava12/nabu/lexer"
)

// Action is called once for every matched node it is registered for, after the whole
// top-level match succeeded. Actions of sub-nodes are called before actions of enclosing nodes.
type Action func(ctx *Context, tok *lexer.Token) error

// Grammar is a registry of named grammar symbols and actions.
// Definitions must be complete before parsing starts; after that Grammar may be shared.
type Grammar struct {
	lx            *lexer.Lexer
	symbols       map[string]Node
	referenced    map[string]bool
	unknownTokens map[string]bool
	actions       map[string]Action
	nodeActions   map[Node]Action
	log           logrus.FieldLogger
	trace         bool
}

// GrammarOption configures a Grammar.
type GrammarOption func(*Grammar)

// WithLogger sets the logger used for debug tracing of symbol matches.
func WithLogger(l logrus.FieldLogger) GrammarOption {
	return func(g *Grammar) {
		if l == nil {
			l = nabu.DiscardLogger()
		}
		g.log = l
		g.trace = nabu.DebugEnabled(l)
	}
}

// New creates empty grammar for tokens of lx.
func New(lx *lexer.Lexer, opts ...GrammarOption) *Grammar {
	g := &Grammar{
		lx:            lx,
		symbols:       make(map[string]Node),
		referenced:    make(map[string]bool),
		unknownTokens: make(map[string]bool),
		actions:       make(map[string]Action),
		nodeActions:   make(map[Node]Action),
		log:           nabu.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Lexer returns the lexer the grammar is built for.
func (g *Grammar) Lexer() *lexer.Lexer {
	return g.lx
}

func (g *Grammar) isToken(name string) bool {
	_, has := g.lx.TokenID(name)
	return has
}

// Define assigns node to symbol name. Redefinition or reuse of a token name is an error.
func (g *Grammar) Define(name string, n Node) error {
	if _, has := g.symbols[name]; has || g.isToken(name) || name == lexer.VoidName {
		return symbolDefinedError(name)
	}
	g.symbols[name] = n
	return nil
}

// Ref returns a node delegating to the node of named symbol.
// The symbol is resolved at match time, so it may be defined later or refer to itself.
// Matched composite tokens are renamed to the symbol name.
func (g *Grammar) Ref(name string) Node {
	g.referenced[name] = true
	return &refNode{g, name}
}

// Token returns a node matching a token of the lexer by name.
// Unknown names are reported by Check.
func (g *Grammar) Token(name string) Node {
	id, has := g.lx.TokenID(name)
	if !has {
		g.unknownTokens[name] = true
		return &unknownNode{name}
	}
	return Tok(id, name)
}

// Action registers action for named symbol, token name, or "void".
func (g *Grammar) Action(name string, a Action) error {
	_, isSymbol := g.symbols[name]
	if !isSymbol && !g.isToken(name) && name != lexer.VoidName {
		return unknownNameError(name, suggest.Hint(name, g.names()))
	}
	g.actions[name] = a
	return nil
}

// NodeAction registers action for specific node.
func (g *Grammar) NodeAction(n Node, a Action) {
	g.nodeActions[n] = a
}

// Symbols returns defined symbol names in lexical order.
func (g *Grammar) Symbols() []string {
	result := make([]string, 0, len(g.symbols))
	for name := range g.symbols {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Defined reports whether symbol is defined.
func (g *Grammar) Defined(name string) bool {
	_, has := g.symbols[name]
	return has
}

func (g *Grammar) names() []string {
	result := g.Symbols()
	for _, def := range g.lx.Defs() {
		result = append(result, def.Name)
	}
	return result
}

// Check reports referenced but undefined symbols and unknown token names.
// Errors contain suggestions for misspelled names.
func (g *Grammar) Check() error {
	var errs []error
	for _, name := range sortedKeys(g.referenced) {
		if !g.Defined(name) {
			errs = append(errs, undefinedSymbolError(name, suggest.Hint(name, g.names())))
		}
	}
	for _, name := range sortedKeys(g.unknownTokens) {
		errs = append(errs, unknownTokenError(name, suggest.Hint(name, g.names())))
	}
	return errors.Join(errs...)
}

func sortedKeys(m map[string]bool) []string {
	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func (g *Grammar) debug(name string, dq *DualQueue, msg string) {
	if !g.trace {
		return
	}
	fields := logrus.Fields{"symbol": name, "pending": dq.Pending()}
	if t := dq.Front(); t != nil {
		fields["token"] = t.Name()
		fields["line"] = t.Line()
		fields["col"] = t.Col()
	}
	g.log.WithFields(fields).Debug(msg)
}

func (g *Grammar) debugMatch(name string, start, consumed int) {
	if g.trace {
		g.log.WithFields(logrus.Fields{"symbol": name, "pending": start, "consumed": consumed}).Debug("match")
	}
}
