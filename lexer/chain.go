package lexer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ava12/nabu/internal/idset"
)

const patternCacheSize = 64

var patternCache, _ = lru.New[uint64, *regexp.Regexp](patternCacheSize)

// Chain collects token definitions and the order in which they are tried.
// Each definition is linked to its successor, the last one is marked with End.
// Compile walks the links from the head and builds a Lexer.
type Chain struct {
	defs  []Def
	index map[string]int
	links map[string]string
	ends  map[string]bool
	err   error
}

// NewChain creates empty chain.
func NewChain() *Chain {
	return &Chain{
		index: make(map[string]int),
		links: make(map[string]string),
		ends:  make(map[string]bool),
	}
}

// Define adds a token definition and returns its id. Ids are assigned in definition order starting with 0.
func (c *Chain) Define(def Def) (int, error) {
	if _, has := c.index[def.Name]; has {
		return 0, tokenDefinedError(def.Name)
	}
	id := len(c.defs)
	c.defs = append(c.defs, def)
	c.index[def.Name] = id
	return id, nil
}

// Link declares that token to is tried after token from.
// Linking the same token twice is reported by Compile.
func (c *Chain) Link(from, to string) *Chain {
	if _, has := c.links[from]; has && c.err == nil {
		c.err = relinkError(from)
	}
	c.links[from] = to
	return c
}

// End marks the last token of the chain.
func (c *Chain) End(name string) *Chain {
	c.ends[name] = true
	return c
}

// Order returns token names starting from head in chain order.
// Returns ErrCyclicChain error if a token is reached twice,
// ErrMalformedChain error if a link is missing or refers to undefined token.
// Every defined token and every link must be reachable from head;
// unreachable links forming a loop cause ErrCyclicChain error.
func (c *Chain) Order(head string) ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}

	var result []string
	visited := idset.New()
	name := head
	for {
		id, has := c.index[name]
		if !has {
			return nil, undefinedLinkError(name)
		}
		if visited.Contains(id) {
			return nil, cyclicChainError(name)
		}

		visited.Add(id)
		result = append(result, name)
		if c.ends[name] {
			if e := c.checkUnreachable(visited); e != nil {
				return nil, e
			}
			return result, nil
		}

		next, has := c.links[name]
		if !has {
			return nil, missingLinkError(name)
		}
		name = next
	}
}

func (c *Chain) checkUnreachable(visited *idset.Set) error {
	for id, def := range c.defs {
		if visited.Contains(id) {
			continue
		}

		seen := make(map[string]bool)
		name := def.Name
		for !seen[name] {
			seen[name] = true
			next, has := c.links[name]
			if !has || c.ends[name] {
				return unreachableTokenError(def.Name)
			}
			nextID, has := c.index[next]
			if !has || visited.Contains(nextID) {
				return unreachableTokenError(def.Name)
			}
			name = next
		}
		return cyclicChainError(name)
	}

	var stray []string
	for name := range c.links {
		if _, has := c.index[name]; !has {
			stray = append(stray, name)
		}
	}
	for name := range c.ends {
		if _, has := c.index[name]; !has {
			stray = append(stray, name)
		}
	}
	if len(stray) > 0 {
		sort.Strings(stray)
		return undefinedLinkError(stray[0])
	}
	return nil
}

// Compile validates the chain starting from head and builds a Lexer.
// Every fragment is compiled separately first, a bad fragment causes ErrBadPattern error.
func (c *Chain) Compile(head string) (*Lexer, error) {
	names, e := c.Order(head)
	if e != nil {
		return nil, e
	}

	l := &Lexer{
		defs:   make([]Def, len(c.defs)),
		order:  make([]int, len(names)),
		groups: make([]int, len(names)),
		index:  make(map[string]int, len(c.index)),
	}
	copy(l.defs, c.defs)
	for name, id := range c.index {
		l.index[name] = id
	}
	parts := make([]string, len(names))
	group := 1
	for i, name := range names {
		id := c.index[name]
		def := c.defs[id]
		re, e := regexp.Compile(def.Pattern)
		if e != nil {
			return nil, badPatternError(name, e)
		}

		l.order[i] = id
		l.groups[i] = group
		group += re.NumSubexp() + 1
		parts[i] = "(" + def.Pattern + ")"
	}

	l.re, e = compilePattern(strings.Join(parts, "|"))
	if e != nil {
		return nil, badPatternError(names[0], e)
	}
	return l, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	key := xxhash.Sum64String(pattern)
	if re, has := patternCache.Get(key); has && re.String() == pattern {
		return re, nil
	}

	re, e := regexp.Compile(pattern)
	if e != nil {
		return nil, e
	}
	patternCache.Add(key, re)
	return re, nil
}
