package rules

import (
	"github.com/ava12/nabu"
)

// Error codes used by rules package:
const (
	// "symbol %q already defined"
	ErrSymbolDefined = nabu.ConfigErrors + 20 + iota

	// "undefined symbol %q"
	ErrUndefinedSymbol
)

var (
	// SymbolDefined matches ErrSymbolDefined errors.
	SymbolDefined = nabu.Sentinel(ErrSymbolDefined, "symbol already defined")

	// UndefinedSymbol matches ErrUndefinedSymbol errors.
	UndefinedSymbol = nabu.Sentinel(ErrUndefinedSymbol, "undefined symbol")
)

func symbolDefinedError(sym Symbol) *nabu.Error {
	return nabu.FormatError(ErrSymbolDefined, "symbol %q already defined", sym)
}

func undefinedSymbolError(syms []Symbol) *nabu.Error {
	return nabu.FormatError(ErrUndefinedSymbol, "undefined symbols: %v", syms)
}
