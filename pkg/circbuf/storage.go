package circbuf

// block is one storage allocation. Its address is the storage identity that
// cursors compare; a block never changes size once allocated.
type block[T any] struct {
	slots []T
}

// allocate reserves capacity slots without any live element.
// A capacity of 0 allocates nothing.
func allocate[T any](capacity int) *block[T] {
	if capacity <= 0 {
		return nil
	}

	return &block[T]{slots: make([]T, capacity)}
}

func (blk *block[T]) capacity() int {
	if blk == nil {
		return 0
	}

	return len(blk.slots)
}

// slot maps logical index i to its physical slot.
func (b *Buffer[T]) slot(i int) int {
	return wrap(b.origin+i, len(b.blk.slots))
}

// wrap maps an absolute position onto a block of the given capacity.
// pos may be negative.
func wrap(pos, capacity int) int {
	s := pos % capacity
	if s < 0 {
		s += capacity
	}

	return s
}

// placeBack constructs v in the slot after the last live element.
// The block must have a free slot.
func (b *Buffer[T]) placeBack(v T) {
	b.blk.slots[b.slot(b.size)] = v
	b.size++
}

// placeFront constructs v in the slot before the first live element.
// The block must have a free slot. The origin moves down without wrapping,
// so cursors to the existing elements keep their positions.
func (b *Buffer[T]) placeFront(v T) {
	b.origin--
	b.blk.slots[b.slot(0)] = v
	b.size++
}

// takeBack unlinks the last live element and clears its slot.
func (b *Buffer[T]) takeBack() T {
	s := b.slot(b.size - 1)
	v := b.blk.slots[s]

	var zero T

	b.blk.slots[s] = zero
	b.size--

	return v
}

// takeFront unlinks the first live element and clears its slot.
func (b *Buffer[T]) takeFront() T {
	s := b.slot(0)
	v := b.blk.slots[s]

	var zero T

	b.blk.slots[s] = zero
	b.origin++
	b.size--

	return v
}

func (b *Buffer[T]) destroy(v T) {
	if b.destroyFunc != nil {
		b.destroyFunc(v)
	}
}

// swapLogical exchanges the elements at logical indices i and j.
func (b *Buffer[T]) swapLogical(i, j int) {
	si, sj := b.slot(i), b.slot(j)
	b.blk.slots[si], b.blk.slots[sj] = b.blk.slots[sj], b.blk.slots[si]
	b.stats.swaps++
}
