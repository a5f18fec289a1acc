package circbuf

import "fmt"

// PushBack appends v. Amortized O(1); O(1) when spare capacity exists.
// It fails only when growth exceeds the capacity limit, in which case the
// buffer is unchanged.
func (b *Buffer[T]) PushBack(v T) error {
	if b.Full() {
		err := b.growInsert(b.size, v, GrowPushBack)
		if err != nil {
			return err
		}
	} else {
		b.placeBack(v)
	}

	b.stats.pushes++

	return nil
}

// PushFront prepends v. Amortized O(1); O(1) when spare capacity exists.
// It fails only when growth exceeds the capacity limit, in which case the
// buffer is unchanged.
func (b *Buffer[T]) PushFront(v T) error {
	if b.Full() {
		err := b.growInsert(0, v, GrowPushFront)
		if err != nil {
			return err
		}
	} else {
		b.placeFront(v)
	}

	b.stats.pushes++

	return nil
}

// PopBack removes and returns the last element. It panics on an empty buffer.
func (b *Buffer[T]) PopBack() T {
	b.mustNotBeEmpty("PopBack")
	b.stats.pops++

	return b.takeBack()
}

// PopFront removes and returns the first element. It panics on an empty buffer.
func (b *Buffer[T]) PopFront() T {
	b.mustNotBeEmpty("PopFront")
	b.stats.pops++

	return b.takeFront()
}

// RemoveBack destroys the last element. It panics on an empty buffer.
func (b *Buffer[T]) RemoveBack() {
	b.destroy(b.PopBack())
}

// RemoveFront destroys the first element. It panics on an empty buffer.
func (b *Buffer[T]) RemoveFront() {
	b.destroy(b.PopFront())
}

// Insert places v before pos and returns a cursor to it.
//
// At full capacity the storage grows in one pass with v placed on the way.
// Otherwise v is pushed onto the nearer end (the front on a tie) and swapped
// inward, costing O(min(distance to front, distance to back)) swaps.
// pos must lie in [Begin, End]; Insert panics otherwise.
func (b *Buffer[T]) Insert(pos Cursor[T], v T) (Cursor[T], error) {
	idx := pos.Diff(b.Begin())

	err := b.InsertAt(idx, v)
	if err != nil {
		return Cursor[T]{}, err
	}

	return b.Begin().Add(idx), nil
}

// InsertAt places v at logical index i, shifting the elements at and after i
// or before i, whichever side is shorter. i must lie in [0, Len].
func (b *Buffer[T]) InsertAt(i int, v T) error {
	if i < 0 || i > b.size {
		panic(fmt.Sprintf("circbuf: insert index %d out of range [0, %d]", i, b.size))
	}

	if b.Full() {
		err := b.growInsert(i, v, GrowInsert)
		if err != nil {
			return err
		}

		b.stats.inserts++

		return nil
	}

	if i <= b.size-i {
		b.placeFront(v)

		for j := range i {
			b.swapLogical(j, j+1)
		}
	} else {
		b.placeBack(v)

		for j := b.size - 1; j > i; j-- {
			b.swapLogical(j, j-1)
		}
	}

	b.stats.inserts++

	return nil
}

// Erase removes the element at pos and returns a cursor to the element that
// followed it.
func (b *Buffer[T]) Erase(pos Cursor[T]) Cursor[T] {
	return b.EraseRange(pos, pos.Next())
}

// EraseRange removes [first, last) and returns a cursor to the element that
// followed the range. The shorter side of the buffer is rotated into the gap
// and the vacated end slots are destroyed. first and last must satisfy
// Begin <= first <= last <= End; EraseRange panics otherwise.
func (b *Buffer[T]) EraseRange(first, last Cursor[T]) Cursor[T] {
	begin := b.Begin()
	lo, hi := first.Diff(begin), last.Diff(begin)

	b.eraseRange(lo, hi)

	return b.Begin().Add(lo)
}

// EraseAt removes the element at logical index i.
func (b *Buffer[T]) EraseAt(i int) {
	b.eraseRange(i, i+1)
}

func (b *Buffer[T]) eraseRange(lo, hi int) {
	if lo < 0 || hi < lo || hi > b.size {
		panic(fmt.Sprintf("circbuf: erase range [%d, %d) out of range [0, %d]", lo, hi, b.size))
	}

	n := hi - lo
	if n == 0 {
		return
	}

	if lo < b.size-hi {
		for i, j := lo-1, hi-1; i >= 0; i, j = i-1, j-1 {
			b.swapLogical(i, j)
		}

		for range n {
			b.RemoveFront()
		}
	} else {
		for i, j := lo, hi; j < b.size; i, j = i+1, j+1 {
			b.swapLogical(i, j)
		}

		for range n {
			b.RemoveBack()
		}
	}

	b.stats.erased += int64(n)
}

// Clear destroys every element from the back. Capacity is kept.
func (b *Buffer[T]) Clear() {
	for b.size > 0 {
		b.RemoveBack()
	}
}
