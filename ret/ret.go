// Package ret defines immutable match result values.
//
// Value is a closed set of node types: Char, String, Int, Float, Tagged, Seq, and Box.
// Box carries arbitrary user payload behind a string tag.
// Values are retrieved with checked conversions As, Must, and Unbox.
package ret

import (
	"github.com/ava12/nabu"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindChar Kind = iota + 1
	KindString
	KindInt
	KindFloat
	KindTagged
	KindSeq
	KindBox
)

var kindNames = [...]string{"", "char", "string", "int", "float", "tagged", "seq", "box"}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return "none"
	}
	return kindNames[k]
}

// Value is a match result node.
type Value interface {
	Kind() Kind
	isValue()
}

// Char is a single matched character.
type Char rune

// String is a matched string.
type String string

// Int is a matched integer.
type Int int64

// Float is a matched floating point number.
type Float float64

// Epsilon is the value of an empty match.
const Epsilon = String("ε")

// Tagged records which alternative matched, Index starts with 0.
type Tagged struct {
	Index int
	Value Value
}

// Seq is an immutable ordered list of values.
type Seq struct {
	items []Value
}

// Box holds user payload.
type Box struct {
	tag     string
	payload any
}

func (Char) Kind() Kind   { return KindChar }
func (String) Kind() Kind { return KindString }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (Tagged) Kind() Kind { return KindTagged }
func (Seq) Kind() Kind    { return KindSeq }
func (Box) Kind() Kind    { return KindBox }

func (Char) isValue()   {}
func (String) isValue() {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (Tagged) isValue() {}
func (Seq) isValue()    {}
func (Box) isValue()    {}

// KindOf returns the kind of v or 0 for nil.
func KindOf(v Value) Kind {
	if v == nil {
		return 0
	}
	return v.Kind()
}

// NewSeq creates a sequence containing a copy of items.
func NewSeq(items ...Value) Seq {
	if len(items) == 0 {
		return Seq{}
	}
	s := make([]Value, len(items))
	copy(s, items)
	return Seq{s}
}

// Len returns the number of elements.
func (s Seq) Len() int {
	return len(s.items)
}

// At returns i-th element or nil if i is out of range.
func (s Seq) At(i int) Value {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// Items returns a copy of elements.
func (s Seq) Items() []Value {
	result := make([]Value, len(s.items))
	copy(result, s.items)
	return result
}

// Each calls f for every element in order.
func (s Seq) Each(f func(i int, v Value)) {
	for i, v := range s.items {
		f(i, v)
	}
}

// NewTagged creates a tagged value.
func NewTagged(index int, v Value) Tagged {
	return Tagged{index, v}
}

// NewBox creates a box with given tag and payload.
func NewBox(tag string, payload any) Box {
	return Box{tag, payload}
}

// Tag returns box tag.
func (b Box) Tag() string {
	return b.tag
}

// Payload returns unchecked box payload.
func (b Box) Payload() any {
	return b.payload
}

// Builder collects sequence elements, it is used by combinators producing sequences.
// The zero value is ready to use.
type Builder struct {
	items []Value
}

// Append adds an element and returns the builder.
func (b *Builder) Append(v Value) *Builder {
	b.items = append(b.items, v)
	return b
}

// Len returns the number of collected elements.
func (b *Builder) Len() int {
	return len(b.items)
}

// Seq freezes collected elements into a sequence and resets the builder.
func (b *Builder) Seq() Seq {
	s := Seq{b.items}
	b.items = nil
	return s
}

// As returns v converted to T or ErrTypeMismatch error.
func As[T Value](v Value) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, mismatchError(KindOf(zero), KindOf(v))
	}
	return t, nil
}

// Must returns v converted to T, it panics with ErrTypeMismatch error on failure.
func Must[T Value](v Value) T {
	t, e := As[T](v)
	if e != nil {
		panic(e)
	}
	return t
}

// Unbox returns payload of a Box with given tag converted to T.
// Fails with ErrTypeMismatch if v is not a Box or the payload is not T, with ErrBoxTag on tag mismatch.
func Unbox[T any](v Value, tag string) (T, error) {
	var zero T
	b, ok := v.(Box)
	if !ok {
		return zero, mismatchError(KindBox, KindOf(v))
	}
	if b.tag != tag {
		return zero, boxTagError(tag, b.tag)
	}
	t, ok := b.payload.(T)
	if !ok {
		return zero, nabu.FormatError(ErrTypeMismatch, "box %q payload has type %T, expecting %T", tag, b.payload, zero)
	}
	return t, nil
}
