package parser

import (
	"strings"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/lexer"
)

// Error codes used by parser:
const (
	// "symbol %q already defined"
	ErrSymbolDefined = nabu.ConfigErrors + 40 + iota

	// "undefined symbol %q"
	ErrUndefinedSymbol

	// "unknown token %q"
	ErrUnknownToken

	// "unknown symbol or token %q"
	ErrUnknownName
)

const (
	// "unexpected token %s, expecting ..."
	ErrUnexpectedToken = nabu.SyntaxErrors + iota

	// "unexpected end of input, expecting ..."
	ErrUnexpectedEnd
)

const (
	// "action for %s failed: ..."
	ErrAction = nabu.ActionErrors + iota
)

var (
	SymbolDefined   = nabu.Sentinel(ErrSymbolDefined, "symbol already defined")
	UndefinedSymbol = nabu.Sentinel(ErrUndefinedSymbol, "undefined symbol")
	UnknownToken    = nabu.Sentinel(ErrUnknownToken, "unknown token")
	UnknownName     = nabu.Sentinel(ErrUnknownName, "unknown symbol or token")
	UnexpectedToken = nabu.Sentinel(ErrUnexpectedToken, "unexpected token")
	UnexpectedEnd   = nabu.Sentinel(ErrUnexpectedEnd, "unexpected end of input")
	ActionFailed    = nabu.Sentinel(ErrAction, "action failed")
)

func symbolDefinedError(name string) *nabu.Error {
	return nabu.FormatError(ErrSymbolDefined, "symbol %q already defined", name)
}

func undefinedSymbolError(name, hint string) *nabu.Error {
	return nabu.FormatError(ErrUndefinedSymbol, "undefined symbol %q%s", name, hint)
}

func unknownTokenError(name, hint string) *nabu.Error {
	return nabu.FormatError(ErrUnknownToken, "unknown token %q%s", name, hint)
}

func unknownNameError(name, hint string) *nabu.Error {
	return nabu.FormatError(ErrUnknownName, "unknown symbol or token %q%s", name, hint)
}

func expecting(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return ", expecting " + strings.Join(names, " or ")
}

func unexpectedTokenError(t *lexer.Token, expected []string) *nabu.Error {
	return nabu.FormatErrorPos(t, ErrUnexpectedToken, "unexpected %s token %q%s", t.Name(), t.Text(), expecting(expected)).
		WithText(t.Text())
}

func unexpectedEndError(expected []string) *nabu.Error {
	return nabu.FormatError(ErrUnexpectedEnd, "unexpected end of input%s", expecting(expected))
}

func actionError(t *lexer.Token, name string, e error) *nabu.Error {
	if ne, is := e.(*nabu.Error); is {
		return ne
	}
	return nabu.FormatErrorPos(t, ErrAction, "action for %s failed: %s", name, e.Error()).Wrap(e)
}
