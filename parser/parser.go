// Package parser defines token-level recursive-descent engine.
//
// Grammar symbols are built of nodes: Tok matches a single token, Alias a sequence,
// Option the first matching alternative, Repeat a repetition, Void nothing.
// Matching consumes tokens from a DualQueue; a failed node returns consumed tokens back.
// After the top-level symbol matched, registered actions are called once per matched node,
// sub-nodes first.
package parser

import (
	"github.com/ava12/nabu/lexer"
)

// Context is passed to actions. It is valid during a single Parse call.
type Context struct {
	g        *Grammar
	dq       *DualQueue
	branches map[*lexer.Token][]int
}

// Queue returns the queue being parsed. Actions may consume trailing tokens.
func (c *Context) Queue() *DualQueue {
	return c.dq
}

// Grammar returns the grammar being used.
func (c *Context) Grammar() *Grammar {
	return c.g
}

// Branch returns the index of the Option alternative that produced tok.
// When nested options yield the same token, the outermost one matched so far wins:
// an Option action sees its own alternative, an action of the enclosing node sees
// the outermost option below it. Use Branches to get the inner ones.
func (c *Context) Branch(tok *lexer.Token) (int, bool) {
	bs := c.branches[tok]
	if len(bs) == 0 {
		return 0, false
	}
	return bs[len(bs)-1], true
}

// Branches returns indexes of all Option alternatives that produced tok, innermost first.
func (c *Context) Branches(tok *lexer.Token) []int {
	return c.branches[tok]
}

type parse struct {
	g        *Grammar
	dq       *DualQueue
	far      int
	expected []string
}

func (p *parse) expect(name string) {
	pos := p.dq.Pending()
	if pos < p.far {
		return
	}
	if pos > p.far {
		p.far = pos
		p.expected = p.expected[:0]
	}
	for _, e := range p.expected {
		if e == name {
			return
		}
	}
	p.expected = append(p.expected, name)
}

// failure returns the error for the farthest position reached by a failed match.
// Pending positions are indexes in q because nothing was pending before the match.
func (p *parse) failure(q *lexer.Queue) error {
	tokens := q.Tokens()
	if p.far < len(tokens) {
		return unexpectedTokenError(tokens[p.far], p.expected)
	}
	return unexpectedEndError(p.expected)
}

// Parse matches named symbol at the front of dq.
// Returns nil, nil and leaves dq intact if the symbol does not match.
// If exec is true, consumption is committed and actions are called; the first failed action
// stops execution and its error is returned.
// If exec is false, no actions are called and consumed tokens stay pending in dq.
func Parse(g *Grammar, name string, dq *DualQueue, exec bool) (*lexer.Token, error) {
	return g.ParseNode(g.Ref(name), dq, exec)
}

// ParseNode is like Parse but matches arbitrary node.
func (g *Grammar) ParseNode(n Node, dq *DualQueue, exec bool) (*lexer.Token, error) {
	tok, _, e := g.parseNode(n, dq, exec)
	return tok, e
}

func (g *Grammar) parseNode(n Node, dq *DualQueue, exec bool) (*lexer.Token, *parse, error) {
	p := &parse{g: g, dq: dq}
	txn := dq.Begin()
	rec, ok := n.match(p)
	if !ok {
		dq.Rollback(txn)
		return nil, p, nil
	}
	if !exec {
		return rec.tok, p, nil
	}

	dq.Commit()
	ctx := &Context{g: g, dq: dq, branches: make(map[*lexer.Token][]int)}
	if e := ctx.exec(rec); e != nil {
		return nil, p, e
	}
	return rec.tok, p, nil
}

func (c *Context) exec(rec *record) error {
	for _, child := range rec.children {
		if e := c.exec(child); e != nil {
			return e
		}
	}

	switch rec.node.(type) {
	case *optionNode:
		c.branches[rec.tok] = append(c.branches[rec.tok], rec.branch)
	case *refNode:
		child := rec.children[0].tok
		if bs := c.branches[child]; len(bs) > 0 && child != rec.tok {
			c.branches[rec.tok] = append([]int(nil), bs...)
		}
	}

	if a, has := c.g.nodeActions[rec.node]; has {
		if e := a(c, rec.tok); e != nil {
			return actionError(rec.tok, rec.tok.Name(), e)
		}
	}

	name := ""
	switch n := rec.node.(type) {
	case *tokNode:
		name = rec.tok.Name()
	case *refNode:
		name = n.name
	case *voidNode:
		name = lexer.VoidName
	default:
		return nil
	}

	if a, has := c.g.actions[name]; has {
		if e := a(c, rec.tok); e != nil {
			return actionError(rec.tok, name, e)
		}
	}
	return nil
}

// ParseAll parses named symbol repeatedly until q is empty and returns matched tokens.
// Fails with ErrUnexpectedToken error if remaining tokens do not match.
func ParseAll(g *Grammar, name string, q *lexer.Queue) ([]*lexer.Token, error) {
	var result []*lexer.Token
	dq := NewDualQueue(q)
	n := g.Ref(name)
	for !dq.Empty() {
		before := q.Len()
		tok, p, e := g.parseNode(n, dq, true)
		if e != nil {
			return result, e
		}
		if tok == nil {
			return result, p.failure(q)
		}
		if q.Len() == before {
			return result, unexpectedTokenError(dq.Front(), nil)
		}
		dq.Commit()
		result = append(result, tok)
	}
	return result, nil
}
