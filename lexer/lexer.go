// Package lexer defines regexp-driven lexical analyzer.
//
// Token definitions are linked into a chain; the chain order is the order in which
// token patterns are tried. Compiled chain is a single alternation regexp, the matched
// capturing group identifies the token definition.
package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/ret"
	"github.com/ava12/nabu/source"
)

// CastFunc converts matched text to token value.
type CastFunc func(text string) (ret.Value, error)

// Def describes a token.
type Def struct {
	// Name contains unique token name.
	Name string

	// Pattern contains regexp fragment, it may contain capturing groups.
	Pattern string

	// Cast converts matched text, nil means CastString.
	Cast CastFunc

	// Ignore makes lexer drop matched tokens (e.g. comments).
	Ignore bool
}

// CastString stores matched text as ret.String.
func CastString(text string) (ret.Value, error) {
	return ret.String(text), nil
}

// CastInt parses integer literal, base prefixes are allowed.
func CastInt(text string) (ret.Value, error) {
	x, e := strconv.ParseInt(text, 0, 64)
	if e != nil {
		return nil, e
	}
	return ret.Int(x), nil
}

// CastFloat parses floating point literal.
func CastFloat(text string) (ret.Value, error) {
	x, e := strconv.ParseFloat(text, 64)
	if e != nil {
		return nil, e
	}
	return ret.Float(x), nil
}

// CastUnquote removes quotes and resolves escapes of Go-style quoted string.
// Single-quoted text is accepted as well.
func CastUnquote(text string) (ret.Value, error) {
	s, e := strconv.Unquote(text)
	if e == nil {
		return ret.String(s), nil
	}
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return nil, e
	}

	inner := strings.ReplaceAll(text[1:len(text)-1], `\'`, `'`)
	inner = strings.ReplaceAll(inner, `"`, `\"`)
	s, e = strconv.Unquote(`"` + inner + `"`)
	if e != nil {
		return nil, e
	}
	return ret.String(s), nil
}

// CastChar stores the first character of matched text as ret.Char.
func CastChar(text string) (ret.Value, error) {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || r == utf8.RuneError {
		return nil, strconv.ErrSyntax
	}
	return ret.Char(r), nil
}

// Lexer converts source text to token queue.
// Lexer is immutable and safe for concurrent use.
type Lexer struct {
	defs   []Def
	order  []int
	groups []int
	index  map[string]int
	re     *regexp.Regexp
}

// New creates a lexer trying definitions in slice order. Token ids are slice indexes.
func New(defs ...Def) (*Lexer, error) {
	c := NewChain()
	for _, def := range defs {
		if _, e := c.Define(def); e != nil {
			return nil, e
		}
	}
	if len(defs) == 0 {
		return nil, nabu.FormatError(ErrMalformedChain, "malformed token chain: no tokens defined")
	}

	for i := 1; i < len(defs); i++ {
		c.Link(defs[i-1].Name, defs[i].Name)
	}
	c.End(defs[len(defs)-1].Name)
	return c.Compile(defs[0].Name)
}

// Pattern returns the combined regexp.
func (l *Lexer) Pattern() string {
	return l.re.String()
}

// Defs returns a copy of all token definitions indexed by token id.
func (l *Lexer) Defs() []Def {
	result := make([]Def, len(l.defs))
	copy(result, l.defs)
	return result
}

// TokenID returns the id of named token.
func (l *Lexer) TokenID(name string) (int, bool) {
	id, has := l.index[name]
	return id, has
}

// TokenName returns the name of token id or empty string.
func (l *Lexer) TokenName(id int) string {
	switch {
	case id == VoidID:
		return VoidName
	case id == SeqID:
		return SeqName
	case id < 0 || id >= len(l.defs):
		return ""
	}
	return l.defs[id].Name
}

type errorMode int

const (
	stopOnError errorMode = iota
	collectErrors
	ignoreErrors
)

// Option modifies lexical error handling.
type Option func(*errorMode)

// CollectErrors makes Lex continue after lexical errors and return all of them as ErrorList.
func CollectErrors() Option {
	return func(m *errorMode) { *m = collectErrors }
}

// IgnoreErrors makes Lex skip unmatched text and tokens that cannot be converted.
func IgnoreErrors() Option {
	return func(m *errorMode) { *m = ignoreErrors }
}

type scan struct {
	src    *source.Source
	text   string
	mode   errorMode
	errors ErrorList
}

// report returns true if scanning must stop.
func (s *scan) report(e *nabu.Error) bool {
	switch s.mode {
	case ignoreErrors:
		return false
	case collectErrors:
		s.errors = append(s.errors, e)
		return false
	}
	s.errors = append(s.errors, e)
	return true
}

// checkGap reports every non-space run of unmatched text between start and end.
func (s *scan) checkGap(start, end int) bool {
	i := start
	for i < end {
		for i < end && isSpace(s.text[i]) {
			i++
		}
		j := i
		for j < end && !isSpace(s.text[j]) {
			j++
		}
		if j > i && s.report(badLexemeError(s.src.At(i), s.text[i:j])) {
			return true
		}
		i = j
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Lex converts named text to token queue.
func (l *Lexer) Lex(name, text string, opts ...Option) (*Queue, error) {
	return l.LexSource(source.FromString(name, text), opts...)
}

// LexSource converts source to token queue.
// By default it stops at the first lexical error and returns nil queue and the error.
// With CollectErrors it returns the queue and ErrorList if any errors occurred.
func (l *Lexer) LexSource(src *source.Source, opts ...Option) (*Queue, error) {
	s := &scan{src: src, text: src.Text()}
	for _, opt := range opts {
		opt(&s.mode)
	}

	q := NewQueue()
	prev := 0
	for _, m := range l.re.FindAllStringSubmatchIndex(s.text, -1) {
		if m[1] <= m[0] {
			continue
		}
		if s.checkGap(prev, m[0]) {
			return nil, s.errors[0]
		}
		prev = m[1]

		index := l.matchedIndex(m)
		if index < 0 {
			continue
		}
		id := l.order[index]
		def := l.defs[id]
		if def.Ignore {
			continue
		}

		lexeme := s.text[m[0]:m[1]]
		tok := NewToken(id, def.Name, lexeme, nil, src.At(m[0]))
		cast := def.Cast
		if cast == nil {
			cast = CastString
		}
		value, e := cast(lexeme)
		if e != nil {
			if s.report(badValueError(tok, e)) {
				return nil, s.errors[0]
			}
			continue
		}

		tok.value = value
		q.PushBack(tok)
	}

	if s.checkGap(prev, len(s.text)) {
		return nil, s.errors[0]
	}
	if len(s.errors) > 0 {
		return q, s.errors
	}
	return q, nil
}

func (l *Lexer) matchedIndex(m []int) int {
	for i, g := range l.groups {
		if m[g*2] >= 0 {
			return i
		}
	}
	return -1
}
