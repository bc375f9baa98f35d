package parser

import (
	"github.com/ava12/nabu/internal/deque"
	"github.com/ava12/nabu/lexer"
	"github.com/ava12/nabu/ret"
)

// DualQueue is a token queue with a side buffer of consumed tokens.
// Consumed tokens stay in the side buffer until committed, so consumption can be rolled back.
type DualQueue struct {
	main *lexer.Queue
	side *deque.Deque[*lexer.Token]
}

// Txn marks the side buffer state, see Begin and Rollback.
type Txn int

// NewDualQueue wraps lexer queue. The queue is modified by the DualQueue.
func NewDualQueue(q *lexer.Queue) *DualQueue {
	return &DualQueue{main: q, side: deque.New[*lexer.Token]()}
}

// Queue returns the main queue.
func (dq *DualQueue) Queue() *lexer.Queue {
	return dq.main
}

// Front returns the first unconsumed token or nil.
func (dq *DualQueue) Front() *lexer.Token {
	return dq.main.Front()
}

// Empty reports whether there are no unconsumed tokens.
func (dq *DualQueue) Empty() bool {
	return dq.main.IsEmpty()
}

// Pop consumes and returns the first token, returns nil if there are no tokens.
func (dq *DualQueue) Pop() *lexer.Token {
	t := dq.main.PopFront()
	if t != nil {
		dq.side.PushBack(t)
	}
	return t
}

// Begin returns the mark of current consumption state.
func (dq *DualQueue) Begin() Txn {
	return Txn(dq.side.Len())
}

// Rollback returns tokens consumed since txn back to the main queue in original order.
func (dq *DualQueue) Rollback(txn Txn) {
	for dq.side.Len() > int(txn) {
		t, _ := dq.side.PopBack()
		dq.main.PushFront(t)
	}
}

// Restore returns all pending tokens back to the main queue.
func (dq *DualQueue) Restore() {
	dq.Rollback(0)
}

// Commit discards pending tokens making consumption final.
func (dq *DualQueue) Commit() {
	dq.side.Clear()
}

// Pending returns the number of consumed but not committed tokens.
func (dq *DualQueue) Pending() int {
	return dq.side.Len()
}

// Expect consumes the first token if it has given id.
func Expect(dq *DualQueue, id int) bool {
	t := dq.Front()
	if t == nil || t.ID() != id {
		return false
	}
	dq.Pop()
	return true
}

// ExpectValue consumes the first token if it has given id and its value is T.
func ExpectValue[T ret.Value](dq *DualQueue, id int) (T, bool) {
	var zero T
	t := dq.Front()
	if t == nil || t.ID() != id {
		return zero, false
	}
	v, e := lexer.As[T](t)
	if e != nil {
		return zero, false
	}
	dq.Pop()
	return v, true
}
