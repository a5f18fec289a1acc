package circbuf

// Cursor is a read/write random-access position in a Buffer.
//
// A cursor holds the identity of the storage block it was issued for, an
// absolute position that is never wrapped, and the block capacity. All
// arithmetic and ordering work on the absolute position, exactly as over a
// flat sequence; the slot is computed only when the element is accessed.
//
// Operations that replace the storage invalidate every cursor issued before
// them. Using an invalidated cursor is undefined. Cursors are values: Next,
// Prev, Add and Sub return a new cursor and leave the receiver untouched.
type Cursor[T any] struct {
	blk      *block[T]
	pos      int
	capacity int
}

// Begin returns a cursor to the first element.
func (b *Buffer[T]) Begin() Cursor[T] {
	return Cursor[T]{blk: b.blk, pos: b.origin, capacity: b.Cap()}
}

// End returns a cursor one past the last element.
func (b *Buffer[T]) End() Cursor[T] {
	return b.Begin().Add(b.size)
}

// Get returns the element under the cursor.
func (c Cursor[T]) Get() T {
	return c.blk.slots[c.slot()]
}

// Set replaces the element under the cursor.
func (c Cursor[T]) Set(v T) {
	c.blk.slots[c.slot()] = v
}

// Ptr returns a pointer to the element under the cursor.
func (c Cursor[T]) Ptr() *T {
	return &c.blk.slots[c.slot()]
}

// At returns the element n positions away.
func (c Cursor[T]) At(n int) T {
	return c.Add(n).Get()
}

// SetAt replaces the element n positions away.
func (c Cursor[T]) SetAt(n int, v T) {
	c.Add(n).Set(v)
}

// Swap exchanges the elements under c and o.
func (c Cursor[T]) Swap(o Cursor[T]) {
	p, q := c.Ptr(), o.Ptr()
	*p, *q = *q, *p
}

// Next returns the cursor one position forward.
func (c Cursor[T]) Next() Cursor[T] { return c.Add(1) }

// Prev returns the cursor one position back.
func (c Cursor[T]) Prev() Cursor[T] { return c.Add(-1) }

// Add returns the cursor n positions forward (backward for negative n).
func (c Cursor[T]) Add(n int) Cursor[T] {
	c.pos += n

	return c
}

// Sub returns the cursor n positions backward.
func (c Cursor[T]) Sub(n int) Cursor[T] { return c.Add(-n) }

// Diff returns the signed distance c - o.
// Both cursors must come from the same storage.
func (c Cursor[T]) Diff(o Cursor[T]) int {
	return c.pos - o.pos
}

// Equal reports whether c and o refer to the same position of the same storage.
func (c Cursor[T]) Equal(o Cursor[T]) bool {
	return c.blk == o.blk && c.pos == o.pos
}

// Less reports whether c precedes o. Cursors over different storage are
// never ordered.
func (c Cursor[T]) Less(o Cursor[T]) bool {
	return c.blk == o.blk && o.Diff(c) > 0
}

// Greater reports whether c follows o.
func (c Cursor[T]) Greater(o Cursor[T]) bool { return o.Less(c) }

// LessEqual reports whether c does not follow o.
func (c Cursor[T]) LessEqual(o Cursor[T]) bool { return !c.Greater(o) }

// GreaterEqual reports whether c does not precede o.
func (c Cursor[T]) GreaterEqual(o Cursor[T]) bool { return !c.Less(o) }

// Const returns a read-only view of the cursor.
func (c Cursor[T]) Const() ConstCursor[T] {
	return ConstCursor[T]{c: c}
}

// slot maps the absolute position onto the storage block.
func (c Cursor[T]) slot() int {
	return wrap(c.pos, c.capacity)
}

// ConstCursor is a read-only random-access position in a Buffer.
// It has the same arithmetic and invalidation rules as Cursor.
type ConstCursor[T any] struct {
	c Cursor[T]
}

// Get returns the element under the cursor.
func (k ConstCursor[T]) Get() T { return k.c.Get() }

// At returns the element n positions away.
func (k ConstCursor[T]) At(n int) T { return k.c.At(n) }

// Next returns the cursor one position forward.
func (k ConstCursor[T]) Next() ConstCursor[T] { return ConstCursor[T]{c: k.c.Next()} }

// Prev returns the cursor one position back.
func (k ConstCursor[T]) Prev() ConstCursor[T] { return ConstCursor[T]{c: k.c.Prev()} }

// Add returns the cursor n positions forward.
func (k ConstCursor[T]) Add(n int) ConstCursor[T] { return ConstCursor[T]{c: k.c.Add(n)} }

// Sub returns the cursor n positions backward.
func (k ConstCursor[T]) Sub(n int) ConstCursor[T] { return ConstCursor[T]{c: k.c.Sub(n)} }

// Diff returns the signed distance k - o.
func (k ConstCursor[T]) Diff(o ConstCursor[T]) int { return k.c.Diff(o.c) }

// Equal reports whether k and o refer to the same position of the same storage.
func (k ConstCursor[T]) Equal(o ConstCursor[T]) bool { return k.c.Equal(o.c) }

// Less reports whether k precedes o.
func (k ConstCursor[T]) Less(o ConstCursor[T]) bool { return k.c.Less(o.c) }

// Greater reports whether k follows o.
func (k ConstCursor[T]) Greater(o ConstCursor[T]) bool { return k.c.Greater(o.c) }

// LessEqual reports whether k does not follow o.
func (k ConstCursor[T]) LessEqual(o ConstCursor[T]) bool { return k.c.LessEqual(o.c) }

// GreaterEqual reports whether k does not precede o.
func (k ConstCursor[T]) GreaterEqual(o ConstCursor[T]) bool { return k.c.GreaterEqual(o.c) }
