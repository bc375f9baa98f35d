package lexer

import (
	"github.com/ava12/nabu/ret"
	"github.com/ava12/nabu/source"
)

const (
	// VoidID is the id of tokens produced by empty grammar nodes.
	VoidID = -1

	// SeqID is the id of composite tokens holding matched sub-tokens.
	SeqID = -2

	VoidName = "void"
	SeqName  = "-seq-"
)

// Token is a matched lexeme or a composite of matched tokens. Tokens are immutable.
type Token struct {
	id     int
	name   string
	text   string
	value  ret.Value
	items  []*Token
	source *source.Source
	offset int
	line   int
	col    int
}

// NewToken creates a lexeme token at given position.
func NewToken(id int, name, text string, value ret.Value, pos source.Pos) *Token {
	return &Token{
		id:     id,
		name:   name,
		text:   text,
		value:  value,
		source: pos.Source(),
		offset: pos.Offset(),
		line:   pos.Line(),
		col:    pos.Col(),
	}
}

// NewSeqToken creates a composite token with given name, position is taken from the first item.
func NewSeqToken(name string, items []*Token) *Token {
	t := &Token{id: SeqID, name: name}
	if len(items) > 0 {
		t.items = make([]*Token, len(items))
		copy(t.items, items)
		first := items[0]
		t.source, t.offset, t.line, t.col = first.source, first.offset, first.line, first.col
	}
	return t
}

// NewVoidToken creates a token for empty match at given position.
func NewVoidToken(pos source.Pos) *Token {
	return NewToken(VoidID, VoidName, "", ret.Epsilon, pos)
}

// WithName returns a copy of t having different name.
func (t *Token) WithName(name string) *Token {
	c := *t
	c.name = name
	return &c
}

// ID returns token definition id, VoidID, or SeqID.
func (t *Token) ID() int {
	return t.id
}

// Name returns token definition name or grammar symbol name.
func (t *Token) Name() string {
	return t.name
}

// Text returns matched text, empty for composite tokens.
func (t *Token) Text() string {
	return t.text
}

// Value returns token payload, nil for composite tokens.
func (t *Token) Value() ret.Value {
	return t.value
}

// Items returns a copy of sub-tokens of a composite token.
func (t *Token) Items() []*Token {
	result := make([]*Token, len(t.items))
	copy(result, t.items)
	return result
}

// Len returns the number of sub-tokens.
func (t *Token) Len() int {
	return len(t.items)
}

// Item returns i-th sub-token or nil.
func (t *Token) Item(i int) *Token {
	if i < 0 || i >= len(t.items) {
		return nil
	}
	return t.items[i]
}

func (t *Token) IsSeq() bool {
	return t.id == SeqID
}

func (t *Token) IsVoid() bool {
	return t.id == VoidID
}

func (t *Token) Source() *source.Source {
	return t.source
}

func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	}
	return t.source.Name()
}

func (t *Token) Offset() int {
	return t.offset
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

// ToValue converts token tree to a value: composite tokens become ret.Seq.
func (t *Token) ToValue() ret.Value {
	if t.id != SeqID {
		return t.value
	}

	b := &ret.Builder{}
	for _, item := range t.items {
		b.Append(item.ToValue())
	}
	return b.Seq()
}

// String returns token name and flat rendering of its value.
func (t *Token) String() string {
	return t.name + " " + ret.Flat(t.ToValue())
}

// As returns token payload converted to T.
func As[T ret.Value](t *Token) (T, error) {
	return ret.As[T](t.value)
}
