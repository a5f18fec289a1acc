package circbuf

// ReverseCursor walks a Buffer from back to front. It wraps a base cursor and
// refers to the element just before it, so RBegin wraps End and REnd wraps
// Begin.
type ReverseCursor[T any] struct {
	base Cursor[T]
}

// RBegin returns a reverse cursor to the last element.
func (b *Buffer[T]) RBegin() ReverseCursor[T] {
	return ReverseCursor[T]{base: b.End()}
}

// REnd returns a reverse cursor one before the first element.
func (b *Buffer[T]) REnd() ReverseCursor[T] {
	return ReverseCursor[T]{base: b.Begin()}
}

// Reverse wraps c so that the reverse cursor refers to the element before c.
func Reverse[T any](c Cursor[T]) ReverseCursor[T] {
	return ReverseCursor[T]{base: c}
}

// Base returns the underlying forward cursor.
func (r ReverseCursor[T]) Base() Cursor[T] { return r.base }

// Get returns the element under the cursor.
func (r ReverseCursor[T]) Get() T { return r.base.Prev().Get() }

// Set replaces the element under the cursor.
func (r ReverseCursor[T]) Set(v T) { r.base.Prev().Set(v) }

// Ptr returns a pointer to the element under the cursor.
func (r ReverseCursor[T]) Ptr() *T { return r.base.Prev().Ptr() }

// At returns the element n positions further toward the front.
func (r ReverseCursor[T]) At(n int) T { return r.Add(n).Get() }

// Swap exchanges the elements under r and o.
func (r ReverseCursor[T]) Swap(o ReverseCursor[T]) { r.base.Prev().Swap(o.base.Prev()) }

// Next returns the cursor one position toward the front.
func (r ReverseCursor[T]) Next() ReverseCursor[T] { return r.Add(1) }

// Prev returns the cursor one position toward the back.
func (r ReverseCursor[T]) Prev() ReverseCursor[T] { return r.Add(-1) }

// Add returns the cursor n positions toward the front.
func (r ReverseCursor[T]) Add(n int) ReverseCursor[T] {
	return ReverseCursor[T]{base: r.base.Sub(n)}
}

// Sub returns the cursor n positions toward the back.
func (r ReverseCursor[T]) Sub(n int) ReverseCursor[T] { return r.Add(-n) }

// Diff returns the signed distance r - o in reverse order.
func (r ReverseCursor[T]) Diff(o ReverseCursor[T]) int { return o.base.Diff(r.base) }

// Equal reports whether r and o refer to the same position.
func (r ReverseCursor[T]) Equal(o ReverseCursor[T]) bool { return r.base.Equal(o.base) }

// Less reports whether r precedes o in reverse order.
func (r ReverseCursor[T]) Less(o ReverseCursor[T]) bool { return o.base.Less(r.base) }

// Greater reports whether r follows o in reverse order.
func (r ReverseCursor[T]) Greater(o ReverseCursor[T]) bool { return o.Less(r) }

// LessEqual reports whether r does not follow o in reverse order.
func (r ReverseCursor[T]) LessEqual(o ReverseCursor[T]) bool { return !r.Greater(o) }

// GreaterEqual reports whether r does not precede o in reverse order.
func (r ReverseCursor[T]) GreaterEqual(o ReverseCursor[T]) bool { return !r.Less(o) }

// Const returns a read-only view of the reverse cursor.
func (r ReverseCursor[T]) Const() ConstReverseCursor[T] {
	return ConstReverseCursor[T]{r: r}
}

// ConstReverseCursor is a read-only ReverseCursor.
type ConstReverseCursor[T any] struct {
	r ReverseCursor[T]
}

// CRBegin returns a read-only reverse cursor to the last element.
func (b *Buffer[T]) CRBegin() ConstReverseCursor[T] { return b.RBegin().Const() }

// CREnd returns a read-only reverse cursor one before the first element.
func (b *Buffer[T]) CREnd() ConstReverseCursor[T] { return b.REnd().Const() }

// Base returns the underlying read-only forward cursor.
func (k ConstReverseCursor[T]) Base() ConstCursor[T] { return k.r.base.Const() }

// Get returns the element under the cursor.
func (k ConstReverseCursor[T]) Get() T { return k.r.Get() }

// At returns the element n positions further toward the front.
func (k ConstReverseCursor[T]) At(n int) T { return k.r.At(n) }

// Next returns the cursor one position toward the front.
func (k ConstReverseCursor[T]) Next() ConstReverseCursor[T] { return k.Add(1) }

// Prev returns the cursor one position toward the back.
func (k ConstReverseCursor[T]) Prev() ConstReverseCursor[T] { return k.Add(-1) }

// Add returns the cursor n positions toward the front.
func (k ConstReverseCursor[T]) Add(n int) ConstReverseCursor[T] {
	return ConstReverseCursor[T]{r: k.r.Add(n)}
}

// Sub returns the cursor n positions toward the back.
func (k ConstReverseCursor[T]) Sub(n int) ConstReverseCursor[T] { return k.Add(-n) }

// Diff returns the signed distance k - o in reverse order.
func (k ConstReverseCursor[T]) Diff(o ConstReverseCursor[T]) int { return k.r.Diff(o.r) }

// Equal reports whether k and o refer to the same position.
func (k ConstReverseCursor[T]) Equal(o ConstReverseCursor[T]) bool { return k.r.Equal(o.r) }

// Less reports whether k precedes o in reverse order.
func (k ConstReverseCursor[T]) Less(o ConstReverseCursor[T]) bool { return k.r.Less(o.r) }

// Greater reports whether k follows o in reverse order.
func (k ConstReverseCursor[T]) Greater(o ConstReverseCursor[T]) bool { return k.r.Greater(o.r) }

// LessEqual reports whether k does not follow o in reverse order.
func (k ConstReverseCursor[T]) LessEqual(o ConstReverseCursor[T]) bool { return k.r.LessEqual(o.r) }

// GreaterEqual reports whether k does not precede o in reverse order.
func (k ConstReverseCursor[T]) GreaterEqual(o ConstReverseCursor[T]) bool {
	return k.r.GreaterEqual(o.r)
}
