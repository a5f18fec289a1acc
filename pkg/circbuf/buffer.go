// Package circbuf provides a generic double-ended sequence container backed by
// a wrap-around storage block.
//
// A Buffer offers amortized O(1) insertion and removal at both ends, O(1)
// random access, and random-access cursors whose arithmetic and ordering
// behave exactly as over a flat sequence. Cursors carry an absolute, unwrapped
// position; the mapping to a physical slot happens only on dereference, so
// generic cursor algorithms (see package seqalg) never see the wraparound.
//
// Every operation that replaces storage (growth, Reserve, Assign) builds the
// new block completely before committing it with an O(1) state exchange, so a
// failure leaves the buffer exactly as it was.
//
// A Buffer is not safe for concurrent use. Callers serialize access.
package circbuf

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrCapacityExceeded is returned when growth or Reserve would exceed the
	// limit configured with WithMaxCapacity.
	ErrCapacityExceeded = errors.New("circbuf: capacity limit exceeded")

	// ErrClone wraps a failure of the clone hook during Clone or Assign.
	ErrClone = errors.New("circbuf: clone element")
)

// Buffer is a growable ring-backed double-ended sequence.
// The zero value is an empty buffer with zero capacity, ready to use.
type Buffer[T any] struct {
	blk  *block[T] // nil while capacity is 0.
	size int
	origin int // Absolute position of logical element 0. Never wrapped.

	cloneFunc   func(T) (T, error)
	destroyFunc func(T)
	observer    Observer
	maxCap      int // 0 means unlimited.
	initCap     int

	stats counters
}

// Option configures a Buffer.
type Option[T any] func(*Buffer[T])

// WithCapacity reserves n slots up front.
func WithCapacity[T any](n int) Option[T] {
	return func(b *Buffer[T]) {
		b.initCap = n
	}
}

// WithMaxCapacity caps the storage block at limit slots. Growth is clamped to
// the limit and fails with ErrCapacityExceeded once the block holds limit slots.
func WithMaxCapacity[T any](limit int) Option[T] {
	return func(b *Buffer[T]) {
		b.maxCap = limit
	}
}

// WithCloneFunc sets the function used to deep-copy elements in Clone and
// Assign. A failing clone aborts the copy and leaves both buffers untouched.
func WithCloneFunc[T any](clone func(T) (T, error)) Option[T] {
	return func(b *Buffer[T]) {
		b.cloneFunc = clone
	}
}

// WithDestroyFunc sets a hook called for every element the buffer discards:
// RemoveFront, RemoveBack, Erase, Clear, Free, and the previous contents
// replaced by Assign. Elements handed out by PopFront and PopBack are not
// passed to the hook.
func WithDestroyFunc[T any](destroy func(T)) Option[T] {
	return func(b *Buffer[T]) {
		b.destroyFunc = destroy
	}
}

// WithObserver registers an Observer notified on every storage growth.
func WithObserver[T any](obs Observer) Option[T] {
	return func(b *Buffer[T]) {
		b.observer = obs
	}
}

// New creates an empty buffer configured by opts. The WithCapacity
// reservation is made after every other option is applied; New panics if it
// exceeds the WithMaxCapacity limit.
func New[T any](opts ...Option[T]) *Buffer[T] {
	b := &Buffer[T]{}

	for _, opt := range opts {
		opt(b)
	}

	if b.initCap > 0 {
		err := b.Reserve(b.initCap)
		if err != nil {
			panic(err.Error())
		}
	}

	return b
}

// Of creates a buffer holding values in order, with capacity len(values).
func Of[T any](values ...T) *Buffer[T] {
	b := &Buffer[T]{}
	b.blk = allocate[T](len(values))

	for _, v := range values {
		b.placeBack(v)
	}

	return b
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the number of slots in the storage block.
func (b *Buffer[T]) Cap() int { return b.blk.capacity() }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return b.size == 0 }

// Full reports whether the next push will grow the storage.
func (b *Buffer[T]) Full() bool { return b.size == b.Cap() }

// At returns the element at logical index i.
// It panics if i is out of range.
func (b *Buffer[T]) At(i int) T {
	return *b.Ptr(i)
}

// Set replaces the element at logical index i.
// It panics if i is out of range.
func (b *Buffer[T]) Set(i int, v T) {
	*b.Ptr(i) = v
}

// Ptr returns a pointer to the element at logical index i. The pointer stays
// valid until the next operation that moves or removes that element.
// It panics if i is out of range.
func (b *Buffer[T]) Ptr(i int) *T {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("circbuf: index %d out of range [0, %d)", i, b.size))
	}

	return &b.blk.slots[b.slot(i)]
}

// Front returns the first element. It panics on an empty buffer.
func (b *Buffer[T]) Front() T {
	b.mustNotBeEmpty("Front")

	return b.blk.slots[b.slot(0)]
}

// Back returns the last element. It panics on an empty buffer.
func (b *Buffer[T]) Back() T {
	b.mustNotBeEmpty("Back")

	return b.blk.slots[b.slot(b.size-1)]
}

// Clone returns a deep copy with the same capacity, the same head offset and
// the same configuration. Elements are copied through the clone hook. If the
// hook fails, the copies made so far are destroyed, the error is returned
// wrapped in ErrClone, and b is unchanged.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	out := &Buffer[T]{
		cloneFunc:   b.cloneFunc,
		destroyFunc: b.destroyFunc,
		observer:    b.observer,
		maxCap:      b.maxCap,
	}

	err := b.copyInto(out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Assign replaces the contents of b with a deep copy of src using
// copy-and-swap. The previous contents are destroyed only after the copy
// succeeds; on failure b is unchanged. b keeps its own configuration.
// Assigning a buffer to itself is a no-op.
func (b *Buffer[T]) Assign(src *Buffer[T]) error {
	if b == src {
		return nil
	}

	tmp, err := src.Clone()
	if err != nil {
		return err
	}

	tmp.destroyFunc = b.destroyFunc
	b.exchangeStorage(tmp)
	tmp.Free()

	return nil
}

// Free destroys every live element from the back to the front and drops the
// storage block. It is the buffer's destructor: it ends the instance's
// lifetime, and every cursor is invalidated. Capacity only grows within one
// lifetime, so a buffer reused after Free starts a new one from zero
// capacity, like the zero value, keeping its options and Stats counters.
func (b *Buffer[T]) Free() {
	for b.size > 0 {
		b.RemoveBack()
	}

	b.blk = nil
	b.origin = 0
}

// Swap exchanges the complete state of a and b in O(1). It never fails.
func Swap[T any](a, b *Buffer[T]) {
	*a, *b = *b, *a
}

// exchangeStorage swaps storage, size and origin with other. Configuration and
// counters stay put. This is the commit point of every all-or-nothing
// operation.
func (b *Buffer[T]) exchangeStorage(other *Buffer[T]) {
	b.blk, other.blk = other.blk, b.blk
	b.size, other.size = other.size, b.size
	b.origin, other.origin = other.origin, b.origin
}

// copyInto fills dst, which must hold no storage, with copies of b's live
// elements laid out at the same slots.
func (b *Buffer[T]) copyInto(dst *Buffer[T]) error {
	dst.blk = allocate[T](b.Cap())
	dst.origin = b.origin

	for i := range b.size {
		v, err := b.cloneValue(b.blk.slots[b.slot(i)])
		if err != nil {
			dst.Free()

			return fmt.Errorf("%w %d: %w", ErrClone, i, err)
		}

		dst.placeBack(v)
	}

	return nil
}

func (b *Buffer[T]) cloneValue(v T) (T, error) {
	if b.cloneFunc == nil {
		return v, nil
	}

	return b.cloneFunc(v)
}

func (b *Buffer[T]) mustNotBeEmpty(op string) {
	if b.size == 0 {
		panic("circbuf: " + op + " on empty buffer")
	}
}
