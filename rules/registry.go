package rules

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/feeder"
	"github.com/ava12/nabu/ret"
)

// Symbol names a rule in a Registry.
type Symbol string

// Registry maps symbols to rules. Each symbol is defined once.
// Definitions must be complete before matching starts; after that Registry may be shared.
type Registry struct {
	rules      map[Symbol]Rule
	referenced map[Symbol]bool
	log        logrus.FieldLogger
	trace      bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug tracing of symbol matches.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) {
		if l == nil {
			l = nabu.DiscardLogger()
		}
		r.log = l
		r.trace = nabu.DebugEnabled(l)
	}
}

// NewRegistry creates empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rules:      make(map[Symbol]Rule),
		referenced: make(map[Symbol]bool),
		log:        nabu.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define assigns rule to symbol. Redefinition is an error.
func (r *Registry) Define(sym Symbol, rule Rule) error {
	if _, has := r.rules[sym]; has {
		return symbolDefinedError(sym)
	}
	r.rules[sym] = rule
	return nil
}

// Defined reports whether symbol has a rule.
func (r *Registry) Defined(sym Symbol) bool {
	_, has := r.rules[sym]
	return has
}

// Symbols returns defined symbols in lexical order.
func (r *Registry) Symbols() []Symbol {
	result := make([]Symbol, 0, len(r.rules))
	for sym := range r.rules {
		result = append(result, sym)
	}
	sortSymbols(result)
	return result
}

// Undefined returns symbols referenced with Ref but never defined, in lexical order.
func (r *Registry) Undefined() []Symbol {
	var result []Symbol
	for sym := range r.referenced {
		if !r.Defined(sym) {
			result = append(result, sym)
		}
	}
	sortSymbols(result)
	return result
}

// Check returns ErrUndefinedSymbol error if any referenced symbol is not defined.
func (r *Registry) Check() error {
	if u := r.Undefined(); len(u) > 0 {
		return undefinedSymbolError(u)
	}
	return nil
}

// Ref returns a rule delegating to the rule of symbol.
// The symbol is resolved at match time, so it may be defined later or refer to itself.
// Matching an undefined symbol fails.
func (r *Registry) Ref(sym Symbol) Rule {
	r.referenced[sym] = true
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		return r.match(sym, fd)
	})
}

func (r *Registry) match(sym Symbol, fd *feeder.Feeder) (ret.Value, bool) {
	rule, has := r.rules[sym]
	if !has {
		if r.trace {
			r.log.WithFields(logrus.Fields{"symbol": sym, "offset": fd.Index()}).Debug("undefined symbol")
		}
		return nil, false
	}

	if !r.trace {
		return rule.Match(fd)
	}

	start := fd.Index()
	depth := fd.Depth()
	v, ok := rule.Match(fd)
	entry := r.log.WithFields(logrus.Fields{
		"symbol": sym,
		"depth":  depth,
		"offset": start,
	})
	if ok {
		entry.WithField("result", ret.Flat(v)).Debug("match")
	} else {
		entry.WithField("result", nil).Debug("no match")
	}
	return v, ok
}

// ParseChar matches symbol at the feeder position.
func ParseChar(r *Registry, sym Symbol, fd *feeder.Feeder) (ret.Value, bool) {
	return r.match(sym, fd)
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
}
