// Package deque defines a generic double-ended queue backed by a ring buffer.
package deque

const minSize = 3

// Deque is a double-ended queue. Zero value is not usable, use New.
// Buffer length is always a power of 2, size is buffer length - 1 and is used as index mask.
type Deque[T any] struct {
	items      []T
	size       int
	head, tail int
	zero       T
}

// New creates a deque containing given items, first item is at the front.
func New[T any](items ...T) *Deque[T] {
	d := &Deque[T]{}
	l := len(items)
	d.tail = l
	d.size = computeSize(l)
	d.items = make([]T, d.size+1)
	copy(d.items, items)
	return d
}

// IsEmpty reports whether deque contains no items.
func (d *Deque[T]) IsEmpty() bool {
	return d.head == d.tail
}

// Len returns the number of items.
func (d *Deque[T]) Len() int {
	return (d.tail + d.size + 1 - d.head) & d.size
}

// Items returns all items starting from the front.
// The result may share memory with the deque and is valid until the next modification.
func (d *Deque[T]) Items() []T {
	if d.tail >= d.head {
		return d.items[d.head:d.tail]
	}

	result := make([]T, d.Len())
	copy(result, d.items[d.head:d.size+1])
	copy(result[d.size-d.head+1:], d.items[:d.tail])
	return result
}

// At returns i-th item counting from the front, i must be in [0, Len()).
func (d *Deque[T]) At(i int) T {
	return d.items[(d.head+i)&d.size]
}

// PushBack adds an item after the last one.
func (d *Deque[T]) PushBack(item T) *Deque[T] {
	d.items[d.tail] = item
	d.tail = (d.tail + 1) & d.size
	if d.tail == d.head {
		d.grow()
	}
	return d
}

// PushFront adds an item before the first one.
func (d *Deque[T]) PushFront(item T) *Deque[T] {
	d.head = (d.head - 1) & d.size
	d.items[d.head] = item
	if d.head == d.tail {
		d.grow()
	}
	return d
}

// Front returns the first item without removing it.
func (d *Deque[T]) Front() (T, bool) {
	if d.head == d.tail {
		return d.zero, false
	}
	return d.items[d.head], true
}

// Back returns the last item without removing it.
func (d *Deque[T]) Back() (T, bool) {
	if d.head == d.tail {
		return d.zero, false
	}
	return d.items[(d.tail-1)&d.size], true
}

// PopFront removes and returns the first item.
// The buffer shrinks when the head wraps and the buffer is mostly unused.
func (d *Deque[T]) PopFront() (T, bool) {
	if d.head == d.tail {
		return d.zero, false
	}

	result := d.items[d.head]
	d.items[d.head] = d.zero
	d.head = (d.head + 1) & d.size
	if d.head == d.tail {
		d.head = 0
		d.tail = 0
	}

	if d.head == 0 && d.size > minSize && (d.tail<<2) <= d.size {
		d.size = computeSize(d.tail << 1)
		items := make([]T, d.size+1)
		copy(items, d.items[:d.tail])
		d.items = items
	}

	return result, true
}

// PopBack removes and returns the last item.
func (d *Deque[T]) PopBack() (T, bool) {
	if d.head == d.tail {
		return d.zero, false
	}

	d.tail = (d.tail - 1) & d.size
	result := d.items[d.tail]
	d.items[d.tail] = d.zero
	return result, true
}

// Clear removes all items keeping the buffer.
func (d *Deque[T]) Clear() {
	for d.head != d.tail {
		d.items[d.head] = d.zero
		d.head = (d.head + 1) & d.size
	}
	d.head = 0
	d.tail = 0
}

func computeSize(length int) (size int) {
	if length <= minSize {
		size = minSize
	} else {
		length |= length >> 1
		length |= length >> 2
		length |= length >> 4
		length |= length >> 8
		size = length | length>>16
	}
	return
}

func (d *Deque[T]) grow() {
	items := make([]T, (d.size+1)<<1)
	copy(items, d.items[d.head:])
	if d.head > 0 {
		copy(items[d.size+1-d.head:], d.items[0:d.head])
	}
	d.head = 0
	d.tail = d.size + 1
	d.size = d.size + d.tail
	d.items = items
}
