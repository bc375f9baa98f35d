package lexer

import (
	"strings"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/source"
)

// Error codes used by lexer:
const (
	// "token %q already defined"
	ErrTokenDefined = nabu.ConfigErrors + iota

	// "cyclic token chain at %q"
	ErrCyclicChain

	// "malformed token chain: ..."
	ErrMalformedChain

	// "bad pattern for token %q: ..."
	ErrBadPattern
)

const (
	// "bad lexeme %q"
	ErrBadLexeme = nabu.LexicalErrors + iota

	// "cannot convert %s token %q: ..."
	ErrBadValue
)

var (
	TokenDefined   = nabu.Sentinel(ErrTokenDefined, "token already defined")
	CyclicChain    = nabu.Sentinel(ErrCyclicChain, "cyclic token chain")
	MalformedChain = nabu.Sentinel(ErrMalformedChain, "malformed token chain")
	BadPattern     = nabu.Sentinel(ErrBadPattern, "bad token pattern")
	BadLexeme      = nabu.Sentinel(ErrBadLexeme, "bad lexeme")
	BadValue       = nabu.Sentinel(ErrBadValue, "bad token value")
)

func tokenDefinedError(name string) *nabu.Error {
	return nabu.FormatError(ErrTokenDefined, "token %q already defined", name)
}

func cyclicChainError(name string) *nabu.Error {
	return nabu.FormatError(ErrCyclicChain, "cyclic token chain at %q", name)
}

func undefinedLinkError(name string) *nabu.Error {
	return nabu.FormatError(ErrMalformedChain, "malformed token chain: undefined token %q", name)
}

func missingLinkError(name string) *nabu.Error {
	return nabu.FormatError(ErrMalformedChain, "malformed token chain: token %q has no successor", name)
}

func unreachableTokenError(name string) *nabu.Error {
	return nabu.FormatError(ErrMalformedChain, "malformed token chain: token %q is not reachable from head", name)
}

func relinkError(name string) *nabu.Error {
	return nabu.FormatError(ErrMalformedChain, "malformed token chain: token %q linked twice", name)
}

func badPatternError(name string, e error) *nabu.Error {
	return nabu.FormatError(ErrBadPattern, "bad pattern for token %q: %s", name, e.Error()).Wrap(e)
}

func badLexemeError(pos source.Pos, text string) *nabu.Error {
	return nabu.FormatErrorPos(pos, ErrBadLexeme, "bad lexeme %q", text).WithText(text)
}

func badValueError(t *Token, e error) *nabu.Error {
	return nabu.FormatErrorPos(t, ErrBadValue, "cannot convert %s token %q: %s", t.Name(), t.Text(), e.Error()).
		WithText(t.Text()).Wrap(e)
}

// ErrorList contains lexical errors in source order.
type ErrorList []*nabu.Error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap makes every contained error visible to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	result := make([]error, len(l))
	for i, e := range l {
		result[i] = e
	}
	return result
}
