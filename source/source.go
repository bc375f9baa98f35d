// Package source defines source text with line table used by feeders, lexers, and diagnostics.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source contains source name, text, and offsets of line starts.
// Source is immutable except for the cached index of the last looked up line,
// so a single Source must not be shared between goroutines.
type Source struct {
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
}

// New creates new source with given name and content.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// FromString creates new source from string content.
func FromString(name, content string) *Source {
	return New(name, []byte(content))
}

// Name returns source name, may be empty.
func (s *Source) Name() string {
	return s.name
}

// Content returns source content, it must not be modified.
func (s *Source) Content() []byte {
	return s.content
}

// Text returns source content as a string.
func (s *Source) Text() string {
	return string(s.content)
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// Lines returns the number of lines, always at least 1.
func (s *Source) Lines() int {
	return len(s.lineStarts)
}

// LineCol converts byte offset to line and column numbers, both starting with 1.
// Column counts runes. Offsets outside the content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts line and column numbers to byte offset.
// Column is treated as byte offset from the line start.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// Line returns the text of n-th line (starting with 1) without line terminator.
// Returns empty string for lines out of range.
func (s *Source) Line(n int) string {
	if n <= 0 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.content)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	text := s.content[start:end]
	text = bytes.TrimSuffix(text, []byte("\r"))
	return string(text)
}

// At returns position record for given byte offset.
func (s *Source) At(pos int) Pos {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index := (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			leftIndex = index
			break
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
		}
	}
	s.prevLineIndex = leftIndex
	return leftIndex
}

// Pos is a position in source, it implements nabu.SourcePos.
type Pos struct {
	src             *Source
	pos, line, col int
}

// NewPos creates position record for given source and byte offset.
func NewPos(s *Source, pos int) Pos {
	if s == nil {
		return Pos{pos: pos}
	}
	return s.At(pos)
}

// Source returns the source or nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

// Offset returns byte offset.
func (p Pos) Offset() int {
	return p.pos
}

// Line returns line number or 0 if source is not defined.
func (p Pos) Line() int {
	return p.line
}

// Col returns column number or 0 if source is not defined.
func (p Pos) Col() int {
	return p.col
}
