// Package rules defines character-level matching rules and their combinators.
//
// Every rule either succeeds, returning its value and leaving the feeder after the matched text,
// or fails leaving the feeder exactly where it was. Alternatives are tried in order and the first
// successful one wins, there is no longest match.
package rules

import (
	"github.com/ava12/nabu/feeder"
	"github.com/ava12/nabu/ret"
)

// Rule matches text at the feeder position.
type Rule interface {
	Match(fd *feeder.Feeder) (ret.Value, bool)
}

// RuleFunc adapts a function to Rule interface.
type RuleFunc func(fd *feeder.Feeder) (ret.Value, bool)

func (f RuleFunc) Match(fd *feeder.Feeder) (ret.Value, bool) {
	return f(fd)
}

// EpsilonValue is the value returned by Epsilon and by Optional for a missing part.
const EpsilonValue = ret.Epsilon

// Epsilon always succeeds consuming nothing.
var Epsilon Rule = RuleFunc(func(*feeder.Feeder) (ret.Value, bool) {
	return EpsilonValue, true
})

type skipMode int

const (
	noSkip skipMode = iota
	skipAll
	skipNoNewline
)

func skip(fd *feeder.Feeder, mode skipMode) {
	switch mode {
	case skipAll:
		fd.SkipSpace()
	case skipNoNewline:
		fd.SkipSpaceNoNewline()
	}
}

type seqRule struct {
	members []Rule
	mode    skipMode
}

func (r seqRule) Match(fd *feeder.Feeder) (ret.Value, bool) {
	m := fd.Mark()
	defer m.Release()

	b := &ret.Builder{}
	for _, member := range r.members {
		skip(fd, r.mode)
		v, ok := member.Match(fd)
		if !ok {
			return nil, false
		}
		b.Append(v)
	}

	m.Commit()
	return b.Seq(), true
}

// Seq matches all members in order, skipping whitespace before each one.
// Returns a sequence of member values. Fails as a whole if any member fails.
func Seq(members ...Rule) Rule {
	return seqRule{members, skipAll}
}

// SeqNoSkip is like Seq but does not skip whitespace.
func SeqNoSkip(members ...Rule) Rule {
	return seqRule{members, noSkip}
}

// SeqNoNewline is like Seq but does not skip line breaks.
func SeqNoNewline(members ...Rule) Rule {
	return seqRule{members, skipNoNewline}
}

func try(fd *feeder.Feeder, r Rule) (ret.Value, bool) {
	m := fd.Mark()
	defer m.Release()
	v, ok := r.Match(fd)
	if ok {
		m.Commit()
	}
	return v, ok
}

// Alt returns the value of the first matching alternative.
func Alt(alts ...Rule) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		for _, r := range alts {
			if v, ok := try(fd, r); ok {
				return v, true
			}
		}
		return nil, false
	})
}

// Tagged is like Alt but returns ret.Tagged value holding the index of matched alternative.
func Tagged(alts ...Rule) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		for i, r := range alts {
			if v, ok := try(fd, r); ok {
				return ret.NewTagged(i, v), true
			}
		}
		return nil, false
	})
}

func collect(fd *feeder.Feeder, r Rule, b *ret.Builder) {
	for {
		start := fd.Index()
		v, ok := try(fd, r)
		if !ok {
			return
		}
		b.Append(v)
		if fd.Index() == start {
			return
		}
	}
}

// Star matches r zero or more times, always succeeds with a sequence of values.
// Repetition stops after an iteration that consumed nothing.
func Star(r Rule) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		b := &ret.Builder{}
		collect(fd, r, b)
		return b.Seq(), true
	})
}

// Plus matches r one or more times.
func Plus(r Rule) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		start := fd.Index()
		v, ok := try(fd, r)
		if !ok {
			return nil, false
		}

		b := &ret.Builder{}
		b.Append(v)
		if fd.Index() != start {
			collect(fd, r, b)
		}
		return b.Seq(), true
	})
}

// Optional returns the value of r or EpsilonValue.
func Optional(r Rule) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		if v, ok := try(fd, r); ok {
			return v, true
		}
		return EpsilonValue, true
	})
}

func skipRule(r Rule, mode skipMode) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		m := fd.Mark()
		defer m.Release()
		skip(fd, mode)
		v, ok := r.Match(fd)
		if ok {
			m.Commit()
		}
		return v, ok
	})
}

// Skip skips whitespace and matches r. Skipped whitespace is restored if r fails.
func Skip(r Rule) Rule {
	return skipRule(r, skipAll)
}

// SkipNoNewline is like Skip but does not skip line breaks.
func SkipNoNewline(r Rule) Rule {
	return skipRule(r, skipNoNewline)
}

// Map passes the value of r to f. Match fails if f returns false.
func Map(r Rule, f func(ret.Value) (ret.Value, bool)) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		m := fd.Mark()
		defer m.Release()
		v, ok := r.Match(fd)
		if !ok {
			return nil, false
		}
		v, ok = f(v)
		if ok {
			m.Commit()
		}
		return v, ok
	})
}

// Pick returns i-th element of the sequence produced by r.
func Pick(r Rule, i int) Rule {
	return Map(r, func(v ret.Value) (ret.Value, bool) {
		s, ok := v.(ret.Seq)
		if !ok || i < 0 || i >= s.Len() {
			return nil, false
		}
		return s.At(i), true
	})
}
