package langdef

import (
	"github.com/ava12/nabu"
)

// Error codes used by langdef:
const (
	// "cannot read grammar %s: ..."
	ErrBadDescription = nabu.GrammarErrors + iota

	// "invalid grammar %s: ..."
	ErrInvalidGrammar

	// "bad rule expression %q at col %d"
	ErrBadExpr

	// "unknown cast %q"
	ErrUnknownCast

	// "unknown entry rule %q"
	ErrUnknownEntry
)

var (
	BadDescription = nabu.Sentinel(ErrBadDescription, "cannot read grammar")
	InvalidGrammar = nabu.Sentinel(ErrInvalidGrammar, "invalid grammar")
	BadExpr        = nabu.Sentinel(ErrBadExpr, "bad rule expression")
	UnknownCast    = nabu.Sentinel(ErrUnknownCast, "unknown cast")
	UnknownEntry   = nabu.Sentinel(ErrUnknownEntry, "unknown entry rule")
)

func badDescriptionError(name string, e error) *nabu.Error {
	return nabu.FormatError(ErrBadDescription, "cannot read grammar %s: %s", name, e.Error()).Wrap(e)
}

// invalidGrammarError wraps e keeping its message, so errors.Is matches both InvalidGrammar and e.
func invalidGrammarError(name string, e error) *nabu.Error {
	return nabu.FormatError(ErrInvalidGrammar, "invalid grammar %s: %s", name, e.Error()).Wrap(e)
}

func badExprError(rule, expr string, col int) *nabu.Error {
	if rule == "" {
		return nabu.FormatError(ErrBadExpr, "bad rule expression %q at col %d", expr, col)
	}
	return nabu.FormatError(ErrBadExpr, "bad expression of rule %q at col %d: %q", rule, col, expr)
}

func unknownCastError(token, cast, hint string) *nabu.Error {
	return nabu.FormatError(ErrUnknownCast, "unknown cast %q of token %q%s", cast, token, hint)
}

func unknownEntryError(name, hint string) *nabu.Error {
	return nabu.FormatError(ErrUnknownEntry, "unknown entry rule %q%s", name, hint)
}

func noRulesError() *nabu.Error {
	return nabu.FormatError(ErrUnknownEntry, "no rules defined")
}
