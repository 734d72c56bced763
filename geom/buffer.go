// Package geom provides the growable buffers Batch accumulates vertices
// and indices into.
package geom

import "fmt"

// minCapacity is the capacity of a buffer's first allocation.
const minCapacity = 64

// Buffer is a growable, densely packed slice of T.
//
// Capacity only grows, doubling when exceeded, and Clear keeps it so that
// a buffer reused every frame stops allocating once it has warmed up.
// Allocation failure is left to the runtime and is fatal.
type Buffer[T any] struct {
	data []T
}

// NewBuffer returns a buffer with at least capacity elements reserved.
func NewBuffer[T any](capacity int) *Buffer[T] {
	b := &Buffer[T]{}
	b.Reserve(capacity)
	return b
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Cap returns the reserved capacity.
func (b *Buffer[T]) Cap() int { return cap(b.data) }

// Slice returns the elements. The slice aliases the buffer and is only
// valid until the next Expand, Append or Reserve.
func (b *Buffer[T]) Slice() []T { return b.data }

// At returns a pointer to element i.
func (b *Buffer[T]) At(i int) *T { return &b.data[i] }

// Reserve ensures room for n elements in total.
func (b *Buffer[T]) Reserve(n int) {
	if n <= cap(b.data) {
		return
	}
	c := max(cap(b.data), minCapacity)
	for c < n {
		c *= 2
	}
	grown := make([]T, len(b.data), c)
	copy(grown, b.data)
	b.data = grown
}

// Expand appends n zeroed elements and returns them as a mutable view.
// The view is only valid until the buffer grows again.
func (b *Buffer[T]) Expand(n int) []T {
	if n < 0 {
		panic(fmt.Sprintf("geom: Expand(%d): negative count", n))
	}
	start := len(b.data)
	b.Reserve(start + n)
	b.data = b.data[:start+n]
	view := b.data[start : start+n]
	clear(view)
	return view
}

// Append adds elements to the end.
func (b *Buffer[T]) Append(values ...T) {
	copy(b.Expand(len(values)), values)
}

// Clear sets the length to zero and keeps the capacity.
func (b *Buffer[T]) Clear() {
	b.data = b.data[:0]
}
