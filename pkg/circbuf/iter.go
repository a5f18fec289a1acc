package circbuf

import "iter"

// All returns an iterator over index/element pairs from front to back.
// The buffer must not be modified during iteration.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range b.size {
			if !yield(i, b.blk.slots[b.slot(i)]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs from back to front.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.size - 1; i >= 0; i-- {
			if !yield(i, b.blk.slots[b.slot(i)]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements from front to back.
func (b *Buffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range b.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns the elements in logical order as a new slice.
// Returns nil for an empty buffer.
func (b *Buffer[T]) Slice() []T {
	if b.size == 0 {
		return nil
	}

	return b.AppendTo(make([]T, 0, b.size))
}

// AppendTo appends the elements in logical order to dst and returns the
// extended slice. The live range is copied in at most two segments.
func (b *Buffer[T]) AppendTo(dst []T) []T {
	if b.size == 0 {
		return dst
	}

	head := b.slot(0)

	end := head + b.size
	if end <= len(b.blk.slots) {
		return append(dst, b.blk.slots[head:end]...)
	}

	dst = append(dst, b.blk.slots[head:]...)

	return append(dst, b.blk.slots[:end-len(b.blk.slots)]...)
}
