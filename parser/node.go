package parser

import (
	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/source"
)

// Node is a grammar node. Nodes are created with Tok, Alias, Option, Repeat, Void,
// Grammar.Ref, and Grammar.Token.
type Node interface {
	match(p *parse) (*record, bool)
}

// record is a successfully matched node.
type record struct {
	node     Node
	tok      *lexer.Token
	branch   int
	children []*record
}

type tokNode struct {
	id   int
	name string
}

// Tok creates a node matching single token with given id. name is used in messages.
func Tok(id int, name string) Node {
	return &tokNode{id, name}
}

func (n *tokNode) match(p *parse) (*record, bool) {
	t := p.dq.Front()
	if t == nil || t.ID() != n.id {
		p.expect(n.name)
		return nil, false
	}
	p.dq.Pop()
	return &record{node: n, tok: t}, true
}

type aliasNode struct {
	nodes []Node
}

// Alias creates a node matching all nodes in order.
// The result is a composite token holding sub-tokens.
func Alias(nodes ...Node) Node {
	return &aliasNode{nodes}
}

func (n *aliasNode) match(p *parse) (*record, bool) {
	txn := p.dq.Begin()
	children := make([]*record, 0, len(n.nodes))
	for _, child := range n.nodes {
		rec, ok := child.match(p)
		if !ok {
			p.dq.Rollback(txn)
			return nil, false
		}
		children = append(children, rec)
	}
	return &record{node: n, tok: seqToken(children), children: children}, true
}

type optionNode struct {
	nodes []Node
}

// Option creates a node matching the first matching node.
// The index of matched node is available to actions with Context.Branch.
func Option(nodes ...Node) Node {
	return &optionNode{nodes}
}

func (n *optionNode) match(p *parse) (*record, bool) {
	for i, child := range n.nodes {
		txn := p.dq.Begin()
		rec, ok := child.match(p)
		if ok {
			return &record{node: n, tok: rec.tok, branch: i, children: []*record{rec}}, true
		}
		p.dq.Rollback(txn)
	}
	return nil, false
}

type repeatNode struct {
	node  Node
	count int
}

// Repeat creates a node matching node exactly count times.
// Negative count means zero or more times; repetition stops at the first iteration consuming nothing.
func Repeat(node Node, count int) Node {
	return &repeatNode{node, count}
}

func (n *repeatNode) match(p *parse) (*record, bool) {
	var children []*record
	if n.count < 0 {
		for {
			before := p.dq.Pending()
			rec, ok := n.node.match(p)
			if !ok {
				break
			}
			children = append(children, rec)
			if p.dq.Pending() == before {
				break
			}
		}
	} else {
		txn := p.dq.Begin()
		for i := 0; i < n.count; i++ {
			rec, ok := n.node.match(p)
			if !ok {
				p.dq.Rollback(txn)
				return nil, false
			}
			children = append(children, rec)
		}
	}
	return &record{node: n, tok: seqToken(children), children: children}, true
}

type voidNode struct{}

// Void creates a node matching nothing. It produces a void token and triggers "void" action.
func Void() Node {
	return &voidNode{}
}

func (n *voidNode) match(p *parse) (*record, bool) {
	var pos source.Pos
	if t := p.dq.Front(); t != nil {
		pos = source.NewPos(t.Source(), t.Offset())
	}
	return &record{node: n, tok: lexer.NewVoidToken(pos)}, true
}

type refNode struct {
	g    *Grammar
	name string
}

func (n *refNode) match(p *parse) (*record, bool) {
	target, has := n.g.symbols[n.name]
	if !has {
		p.g.debug(n.name, p.dq, "undefined symbol")
		return nil, false
	}

	start := p.dq.Pending()
	rec, ok := target.match(p)
	if !ok {
		p.g.debug(n.name, p.dq, "no match")
		return nil, false
	}

	tok := rec.tok
	if tok.IsSeq() {
		tok = tok.WithName(n.name)
	}
	p.g.debugMatch(n.name, start, p.dq.Pending()-start)
	return &record{node: n, tok: tok, children: []*record{rec}}, true
}

// unknownNode never matches, it stands for a token name missing from the lexer.
type unknownNode struct {
	name string
}

func (n *unknownNode) match(p *parse) (*record, bool) {
	p.expect(n.name)
	return nil, false
}

func seqToken(children []*record) *lexer.Token {
	items := make([]*lexer.Token, len(children))
	for i, c := range children {
		items[i] = c.tok
	}
	return lexer.NewSeqToken(lexer.SeqName, items)
}
