// Package idset defines a set of small non-negative ids (token and symbol indexes).
package idset

import "math/bits"

const chunkShift = 5 + (^uint(0) >> 32 & 1)
const chunkSize = 1 << chunkShift

// Set is a bit set of non-negative ints. Zero value is an empty set ready to use.
type Set struct {
	chunks []uint
}

// New creates a set containing given ids.
func New(ids ...int) *Set {
	s := &Set{}
	s.Add(ids...)
	return s
}

func (s *Set) grow(id int) {
	need := (id >> chunkShift) + 1
	if need <= len(s.chunks) {
		return
	}
	chunks := make([]uint, need)
	copy(chunks, s.chunks)
	s.chunks = chunks
}

// Add adds ids to the set, negative ids are ignored.
func (s *Set) Add(ids ...int) *Set {
	for _, id := range ids {
		if id < 0 {
			continue
		}
		s.grow(id)
		s.chunks[id>>chunkShift] |= 1 << (uint(id) & (chunkSize - 1))
	}
	return s
}

// Remove removes ids from the set.
func (s *Set) Remove(ids ...int) *Set {
	for _, id := range ids {
		if id < 0 || id>>chunkShift >= len(s.chunks) {
			continue
		}
		s.chunks[id>>chunkShift] &^= 1 << (uint(id) & (chunkSize - 1))
	}
	return s
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id int) bool {
	if id < 0 || id>>chunkShift >= len(s.chunks) {
		return false
	}
	return s.chunks[id>>chunkShift]&(1<<(uint(id)&(chunkSize-1))) != 0
}

// Len returns the number of ids.
func (s *Set) Len() int {
	n := 0
	for _, c := range s.chunks {
		n += bits.OnesCount(c)
	}
	return n
}

// IsEmpty reports whether the set contains no ids.
func (s *Set) IsEmpty() bool {
	for _, c := range s.chunks {
		if c != 0 {
			return false
		}
	}
	return true
}

// Items returns ids in ascending order.
func (s *Set) Items() []int {
	result := make([]int, 0, s.Len())
	for i, c := range s.chunks {
		base := i << chunkShift
		for c != 0 {
			n := bits.TrailingZeros(c)
			result = append(result, base+n)
			c &= c - 1
		}
	}
	return result
}

// Copy returns an independent copy of the set.
func (s *Set) Copy() *Set {
	chunks := make([]uint, len(s.chunks))
	copy(chunks, s.chunks)
	return &Set{chunks}
}

// Union adds all ids of t to s.
func (s *Set) Union(t *Set) *Set {
	if len(t.chunks) > len(s.chunks) {
		s.grow((len(t.chunks) << chunkShift) - 1)
	}
	for i, c := range t.chunks {
		s.chunks[i] |= c
	}
	return s
}

// Subtract removes all ids of t from s.
func (s *Set) Subtract(t *Set) *Set {
	for i := 0; i < len(s.chunks) && i < len(t.chunks); i++ {
		s.chunks[i] &^= t.chunks[i]
	}
	return s
}
