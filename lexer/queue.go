package lexer

import (
	"github.com/ava12/nabu/internal/deque"
)

// Queue is a double-ended queue of tokens. Not safe for concurrent use.
type Queue struct {
	d *deque.Deque[*Token]
}

// NewQueue creates a queue containing given tokens.
func NewQueue(tokens ...*Token) *Queue {
	return &Queue{deque.New(tokens...)}
}

func (q *Queue) PushBack(t *Token) {
	q.d.PushBack(t)
}

func (q *Queue) PushFront(t *Token) {
	q.d.PushFront(t)
}

// PopFront removes and returns the first token or returns nil if the queue is empty.
func (q *Queue) PopFront() *Token {
	t, _ := q.d.PopFront()
	return t
}

// Front returns the first token or nil.
func (q *Queue) Front() *Token {
	t, _ := q.d.Front()
	return t
}

func (q *Queue) Len() int {
	return q.d.Len()
}

func (q *Queue) IsEmpty() bool {
	return q.d.IsEmpty()
}

// Tokens returns a copy of queued tokens.
func (q *Queue) Tokens() []*Token {
	items := q.d.Items()
	result := make([]*Token, len(items))
	copy(result, items)
	return result
}
