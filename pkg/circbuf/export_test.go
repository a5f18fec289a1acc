package circbuf

// Head returns the slot of the first live element.
func (b *Buffer[T]) Head() int {
	if b.Cap() == 0 {
		return 0
	}

	return b.slot(0)
}

// SameStorage reports whether two cursors were issued for the same block.
func SameStorage[T any](a, b Cursor[T]) bool {
	return a.blk == b.blk
}
