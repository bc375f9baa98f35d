// Package grammar defines declarative description of a language: token definitions,
// grammar rules written in rule expression notation, and the entry rule.
// Descriptions are loaded by langdef package.
package grammar

import (
	"strconv"
	"strings"
)

// Token describes a lexer token.
type Token struct {
	Name string `yaml:"name"`

	// Pattern contains regexp fragment.
	Pattern string `yaml:"re"`

	// Cast names a conversion of matched text: string (default), int, float, unquote, char.
	Cast string `yaml:"cast,omitempty"`

	// Ignore makes lexer drop matched tokens.
	Ignore bool `yaml:"ignore,omitempty"`

	// Next names the token tried after this one. If no token has Next,
	// tokens are tried in definition order.
	Next string `yaml:"next,omitempty"`
}

// Rule describes a grammar symbol.
type Rule struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Grammar is a language description.
type Grammar struct {
	// Name is used in messages, defaults to file name.
	Name string `yaml:"name,omitempty"`

	// Entry names the rule parsed by default, defaults to the first rule.
	Entry string `yaml:"entry,omitempty"`

	// Head names the first token of the chain, defaults to the first token.
	Head string `yaml:"head,omitempty"`

	Tokens []Token `yaml:"tokens"`
	Rules  []Rule  `yaml:"rules"`
}

// EntryRule returns the entry rule name.
func (g *Grammar) EntryRule() string {
	if g.Entry != "" || len(g.Rules) == 0 {
		return g.Entry
	}
	return g.Rules[0].Name
}

// HeadToken returns the name of the first token of the chain.
func (g *Grammar) HeadToken() string {
	if g.Head != "" || len(g.Tokens) == 0 {
		return g.Head
	}
	return g.Tokens[0].Name
}

// Chained reports whether token order is defined with Next fields.
func (g *Grammar) Chained() bool {
	for _, t := range g.Tokens {
		if t.Next != "" {
			return true
		}
	}
	return false
}

// Names returns names of all tokens and rules.
func (g *Grammar) Names() []string {
	result := make([]string, 0, len(g.Tokens)+len(g.Rules))
	for _, t := range g.Tokens {
		result = append(result, t.Name)
	}
	for _, r := range g.Rules {
		result = append(result, r.Name)
	}
	return result
}

// ExprKind is the kind of rule expression node.
type ExprKind int

const (
	// Name refers to a token or a rule.
	Name ExprKind = iota + 1

	// Sequence matches all items in order.
	Sequence

	// Choice matches the first matching item.
	Choice

	// Repeat matches its single item Count times, or any number of times if Count < 0.
	Repeat

	// Optional matches its single item or nothing.
	Optional

	// Some matches its single item one or more times.
	Some

	// Empty matches nothing.
	Empty
)

// EmptyName is the reserved name for Empty expression.
const EmptyName = "void"

// Expr is a parsed rule expression.
type Expr struct {
	Kind  ExprKind
	Name  string
	Count int
	Items []*Expr
}

// String returns expression in canonical notation.
func (e *Expr) String() string {
	sb := &strings.Builder{}
	e.write(sb, 0)
	return sb.String()
}

// precedence levels: choice 1, sequence 2, postfix 3
func (e *Expr) write(sb *strings.Builder, outer int) {
	switch e.Kind {
	case Name:
		sb.WriteString(e.Name)
	case Empty:
		sb.WriteString(EmptyName)
	case Sequence, Choice:
		level, sep := 2, " "
		if e.Kind == Choice {
			level, sep = 1, " | "
		}
		if outer > level {
			sb.WriteByte('(')
		}
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteString(sep)
			}
			item.write(sb, level+1)
		}
		if outer > level {
			sb.WriteByte(')')
		}
	case Repeat, Optional, Some:
		e.Items[0].write(sb, 3)
		switch {
		case e.Kind == Optional:
			sb.WriteByte('?')
		case e.Kind == Some:
			sb.WriteByte('+')
		case e.Count < 0:
			sb.WriteByte('*')
		default:
			sb.WriteString("{" + strconv.Itoa(e.Count) + "}")
		}
	}
}

// Names returns names referred by the expression in order of appearance.
func (e *Expr) Names() []string {
	var result []string
	var walk func(*Expr)
	walk = func(x *Expr) {
		if x.Kind == Name {
			result = append(result, x.Name)
		}
		for _, item := range x.Items {
			walk(item)
		}
	}
	walk(e)
	return result
}
