// Package feeder defines a character cursor over source text with a checkpoint stack.
//
// Character-level rules read the text through a Feeder. A rule that may fail after reading
// creates a checkpoint, then either commits it on success or restores it on failure:
//
//	m := fd.Mark()
//	defer m.Release()
//	...
//	m.Commit()
//
// Release restores the cursor unless Commit or Restore was called.
package feeder

import (
	"strings"

	"github.com/ava12/nabu/source"
)

// EOF is returned by Peek and Next past the end of text.
const EOF rune = -1

// Feeder is a byte-oriented cursor. Not safe for concurrent use.
type Feeder struct {
	src   *source.Source
	text  string
	index int
	marks []int
}

// New creates a feeder for named text.
func New(name, text string) *Feeder {
	return FromSource(source.FromString(name, text))
}

// FromSource creates a feeder for existing source.
func FromSource(src *source.Source) *Feeder {
	return &Feeder{src: src, text: src.Text()}
}

// Source returns the source being read.
func (f *Feeder) Source() *source.Source {
	return f.src
}

// Index returns current byte offset.
func (f *Feeder) Index() int {
	return f.index
}

// Len returns text length in bytes.
func (f *Feeder) Len() int {
	return len(f.text)
}

// AtEnd reports whether the whole text is consumed.
func (f *Feeder) AtEnd() bool {
	return f.index >= len(f.text)
}

// Pos returns current position.
func (f *Feeder) Pos() source.Pos {
	return f.src.At(f.index)
}

// Slice returns text between byte offsets start and end, offsets are clamped.
func (f *Feeder) Slice(start, end int) string {
	start = max(0, min(start, len(f.text)))
	end = max(start, min(end, len(f.text)))
	return f.text[start:end]
}

// Peek returns current character without consuming it or EOF.
func (f *Feeder) Peek() rune {
	if f.index >= len(f.text) {
		return EOF
	}
	return rune(f.text[f.index])
}

// Next returns current character and advances the cursor.
// At the end of text returns EOF and does not move.
func (f *Feeder) Next() rune {
	c := f.Peek()
	if c != EOF {
		f.index++
	}
	return c
}

// Advance moves the cursor by n bytes, n may be negative. Resulting index is clamped.
func (f *Feeder) Advance(n int) {
	f.index += n
	if f.index < 0 {
		f.index = 0
	} else if f.index > len(f.text) {
		f.index = len(f.text)
	}
}

// Backup moves the cursor n bytes back.
func (f *Feeder) Backup(n int) {
	f.Advance(-n)
}

// Abort moves the cursor n bytes back and returns false.
func (f *Feeder) Abort(n int) bool {
	f.Backup(n)
	return false
}

// Unread moves the cursor one byte back unless c is EOF, returns false.
// It undoes a Next call that returned c.
func (f *Feeder) Unread(c rune) bool {
	if c != EOF {
		f.Backup(1)
	}
	return false
}

// ReadN consumes and returns up to n bytes. Negative n reads nothing.
func (f *Feeder) ReadN(n int) string {
	if n < 0 {
		n = 0
	}
	start := f.index
	f.Advance(n)
	return f.text[start:f.index]
}

// ReadUntil consumes text up to and including delim.
// Returns false and the rest of the text when delim is not found; the rest is consumed as well.
func (f *Feeder) ReadUntil(delim byte) (found bool, text string) {
	start := f.index
	i := strings.IndexByte(f.text[start:], delim)
	if i < 0 {
		f.index = len(f.text)
		return false, f.text[start:]
	}

	f.index = start + i + 1
	return true, f.text[start : start+i]
}

// SkipSpace consumes ASCII whitespace including line breaks.
func (f *Feeder) SkipSpace() {
	for f.index < len(f.text) && IsSpace(rune(f.text[f.index])) {
		f.index++
	}
}

// SkipSpaceNoNewline consumes ASCII whitespace except line breaks.
func (f *Feeder) SkipSpaceNoNewline() {
	for f.index < len(f.text) {
		c := rune(f.text[f.index])
		if c == '\n' || c == '\r' || !IsSpace(c) {
			break
		}
		f.index++
	}
}

// Checkpoint saves current index on the checkpoint stack.
func (f *Feeder) Checkpoint() {
	f.marks = append(f.marks, f.index)
}

// Commit drops the most recent checkpoint keeping current index.
// Returns false if there is no checkpoint.
func (f *Feeder) Commit() bool {
	l := len(f.marks)
	if l == 0 {
		return false
	}
	f.marks = f.marks[:l-1]
	return true
}

// Restore drops the most recent checkpoint and returns the cursor to it.
// Returns false if there is no checkpoint.
func (f *Feeder) Restore() bool {
	l := len(f.marks)
	if l == 0 {
		return false
	}
	f.index = f.marks[l-1]
	f.marks = f.marks[:l-1]
	return true
}

// Depth returns the number of active checkpoints.
func (f *Feeder) Depth() int {
	return len(f.marks)
}

// Mark is a scoped checkpoint guard.
type Mark struct {
	f     *Feeder
	depth int
	done  bool
}

// Mark creates a checkpoint and returns its guard.
func (f *Feeder) Mark() *Mark {
	f.Checkpoint()
	return &Mark{f: f, depth: len(f.marks)}
}

// Start returns the index saved by the guarded checkpoint.
func (m *Mark) Start() int {
	return m.f.marks[m.depth-1]
}

// Commit drops the guarded checkpoint keeping cursor position.
func (m *Mark) Commit() {
	if m.done {
		return
	}
	m.unwind()
	m.f.Commit()
	m.done = true
}

// Restore returns the cursor to the guarded checkpoint.
func (m *Mark) Restore() {
	if m.done {
		return
	}
	m.unwind()
	m.f.Restore()
	m.done = true
}

// Release restores the cursor unless the guard is already committed or restored.
func (m *Mark) Release() {
	m.Restore()
}

// unwind drops checkpoints created after the guarded one and left unbalanced.
func (m *Mark) unwind() {
	if len(m.f.marks) > m.depth {
		m.f.marks = m.f.marks[:m.depth]
	}
}

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// IsDigit reports whether c is ASCII decimal digit.
func IsDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// IsAlpha reports whether c is ASCII letter.
func IsAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
