/*
Package nabu is a toolkit for building recursive-descent parsers and regexp-driven lexers
out of small composable rules.

Consists of subpackages:
  - source: source text with line table, byte offset to line/column conversion;
  - feeder: character cursor with checkpoint/restore used by character-level rules;
  - ret: immutable match result values with checked retrieval;
  - rules: character-level combinators (literals, classes, sequence, alternative, repetition);
  - lexer: token definitions chained into one alternation regexp, token queue;
  - parser: token-level recursive-descent engine with grammar actions;
  - grammar: declarative grammar description;
  - langdef: loads grammar descriptions from YAML files;
  - cmd/nabu: console utility lexing and parsing files with a grammar description.

Typical usage is:

1. Define tokens (name, regexp fragment, optional cast function) and link them into a chain.

2. Define grammar symbols as combinations of tokens and other symbols:
alias (sequence), option (first match wins), repeat, void.

3. Register actions for symbols. Actions run once per matched node after the whole
top-level match succeeded, children before parents.

4. Lex the source into a token queue and parse it starting from the entry symbol.
*/
package nabu

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	ConfigErrors    = 1   // used by lexer, rules, and parser for definition errors
	LexicalErrors   = 101 // used by lexer
	SyntaxErrors    = 201 // used by parser
	RetrievalErrors = 301 // used by ret and lexer for payload type mismatches
	ActionErrors    = 401 // used by parser for errors returned by grammar actions
	GrammarErrors   = 501 // used by langdef
)

// Error is the error type used by nabu subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Text contains the offending source fragment or empty string.
	Text string

	wrapped error
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name != "" {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		} else {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		}
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same code.
// It makes sentinel errors declared by subpackages usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Unwrap returns the error this one was created from or nil.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// WithText stores the offending source fragment and returns e.
func (e *Error) WithText(text string) *Error {
	e.Text = text
	return e
}

// Wrap stores the cause of e and returns e.
func (e *Error) Wrap(cause error) *Error {
	e.wrapped = cause
	return e
}

// Sentinel creates an Error used only as errors.Is target.
func Sentinel(code int, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// DebugEnabled reports whether l emits debug level entries.
// Loggers of unknown types are assumed to emit them.
func DebugEnabled(l logrus.FieldLogger) bool {
	switch x := l.(type) {
	case nil:
		return false
	case *logrus.Logger:
		return x.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return x.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}

// DiscardLogger returns a logger that drops every entry.
// It is the default logger of rule registries and grammars.
func DiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
