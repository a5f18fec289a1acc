// Package seqalg provides generic algorithms over random-access cursors.
//
// A cursor is any value type that can move by an offset and measure its
// distance to another cursor of the same type. Cursors of circbuf.Buffer
// (forward, reverse and read-only) satisfy these constraints, so the
// algorithms work across the wrap point without copying to a slice.
//
// Type parameters list the element type first so callers can instantiate it
// explicitly and let the cursor type be inferred:
//
//	seqalg.Sort[int](buf.Begin(), buf.End())
package seqalg

import (
	"cmp"
	"math/bits"
)

// Stepper is a cursor that supports offset arithmetic.
type Stepper[C any] interface {
	Add(n int) C
	Diff(o C) int
}

// Swapper is a cursor that can exchange its element with another cursor's.
type Swapper[C any] interface {
	Stepper[C]
	Swap(o C)
}

// Reader is a cursor that can read its element.
type Reader[C, T any] interface {
	Stepper[C]
	Get() T
}

// Writer is a cursor that can overwrite its element.
type Writer[C, T any] interface {
	Stepper[C]
	Set(v T)
}

// Sortable is a cursor that can read and swap elements.
type Sortable[C, T any] interface {
	Reader[C, T]
	Swap(o C)
}

// insertionThreshold is the range length at or below which sorting falls back
// to insertion sort.
const insertionThreshold = 12

// Distance returns the number of positions from first to last.
func Distance[C Stepper[C]](first, last C) int {
	return last.Diff(first)
}

// Reverse reverses the order of elements in [first, last).
func Reverse[C Swapper[C]](first, last C) {
	for i, j := 0, last.Diff(first)-1; i < j; i, j = i+1, j-1 {
		first.Add(i).Swap(first.Add(j))
	}
}

// Fill assigns v to every element in [first, last).
func Fill[T any, C Writer[C, T]](first, last C, v T) {
	for i := range last.Diff(first) {
		first.Add(i).Set(v)
	}
}

// Copy copies [first, last) to the range starting at dst and returns the end
// of the destination range. Overlapping ranges are only safe when dst does
// not lie inside (first, last).
func Copy[T any, C Reader[C, T], D Writer[D, T]](first, last C, dst D) D {
	n := last.Diff(first)
	for i := range n {
		dst.Add(i).Set(first.Add(i).Get())
	}

	return dst.Add(n)
}

// Find returns the first cursor in [first, last) whose element equals v,
// or last if there is none.
func Find[T comparable, C Reader[C, T]](first, last C, v T) C {
	return FindFunc(first, last, func(e T) bool { return e == v })
}

// FindFunc returns the first cursor in [first, last) whose element satisfies
// pred, or last if there is none.
func FindFunc[T any, C Reader[C, T]](first, last C, pred func(T) bool) C {
	n := last.Diff(first)
	for i := range n {
		if c := first.Add(i); pred(c.Get()) {
			return c
		}
	}

	return last
}

// Count returns the number of elements in [first, last) equal to v.
func Count[T comparable, C Reader[C, T]](first, last C, v T) int {
	return CountFunc(first, last, func(e T) bool { return e == v })
}

// CountFunc returns the number of elements in [first, last) satisfying pred.
func CountFunc[T any, C Reader[C, T]](first, last C, pred func(T) bool) int {
	count := 0

	for i := range last.Diff(first) {
		if pred(first.Add(i).Get()) {
			count++
		}
	}

	return count
}

// Equal reports whether two ranges have the same length and elements.
func Equal[T comparable, C Reader[C, T], D Reader[D, T]](first1, last1 C, first2, last2 D) bool {
	return EqualFunc(first1, last1, first2, last2, func(a, b T) bool { return a == b })
}

// EqualFunc reports whether two ranges have the same length and eq holds for
// every pair of corresponding elements.
func EqualFunc[T, U any, C Reader[C, T], D Reader[D, U]](first1, last1 C, first2, last2 D, eq func(T, U) bool) bool {
	n := last1.Diff(first1)
	if n != last2.Diff(first2) {
		return false
	}

	for i := range n {
		if !eq(first1.Add(i).Get(), first2.Add(i).Get()) {
			return false
		}
	}

	return true
}

// IsSorted reports whether [first, last) is in ascending order.
func IsSorted[T cmp.Ordered, C Reader[C, T]](first, last C) bool {
	return IsSortedFunc(first, last, cmp.Compare[T])
}

// IsSortedFunc reports whether [first, last) is ordered by compare.
func IsSortedFunc[T any, C Reader[C, T]](first, last C, compare func(a, b T) int) bool {
	n := last.Diff(first)
	for i := 1; i < n; i++ {
		if compare(first.Add(i).Get(), first.Add(i-1).Get()) < 0 {
			return false
		}
	}

	return true
}

// LowerBound returns the first cursor in the sorted range [first, last) whose
// element is not less than v.
func LowerBound[T cmp.Ordered, C Reader[C, T]](first, last C, v T) C {
	return partitionPoint(first, last, func(e T) bool { return cmp.Less(e, v) })
}

// UpperBound returns the first cursor in the sorted range [first, last) whose
// element is greater than v.
func UpperBound[T cmp.Ordered, C Reader[C, T]](first, last C, v T) C {
	return partitionPoint(first, last, func(e T) bool { return !cmp.Less(v, e) })
}

// BinarySearch finds v in the sorted range [first, last). It returns the
// position where v is or would be inserted, and whether it was found.
func BinarySearch[T cmp.Ordered, C Reader[C, T]](first, last C, v T) (C, bool) {
	at := LowerBound(first, last, v)

	return at, at.Diff(last) < 0 && at.Get() == v
}

// partitionPoint returns the first cursor for which before reports false,
// assuming before holds for a prefix of the range.
func partitionPoint[T any, C Reader[C, T]](first, last C, before func(T) bool) C {
	lo, hi := 0, last.Diff(first)

	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if before(first.Add(mid).Get()) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return first.Add(lo)
}

// Sort sorts [first, last) in ascending order. The sort is not stable.
func Sort[T cmp.Ordered, C Sortable[C, T]](first, last C) {
	SortFunc(first, last, cmp.Compare[T])
}

// SortFunc sorts [first, last) by compare. The sort is not stable and runs
// in O(n log n) worst case.
func SortFunc[T any, C Sortable[C, T]](first, last C, compare func(a, b T) int) {
	n := last.Diff(first)
	if n < 2 {
		return
	}

	s := sorter[T, C]{base: first, compare: compare}
	s.introsort(0, n, 2*bits.Len(uint(n)))
}

type sorter[T any, C Sortable[C, T]] struct {
	base    C
	compare func(a, b T) int
}

func (s sorter[T, C]) less(i, j int) bool {
	return s.compare(s.base.Add(i).Get(), s.base.Add(j).Get()) < 0
}

func (s sorter[T, C]) swap(i, j int) {
	s.base.Add(i).Swap(s.base.Add(j))
}

func (s sorter[T, C]) introsort(lo, hi, depth int) {
	for hi-lo > insertionThreshold {
		if depth == 0 {
			s.heapSort(lo, hi)

			return
		}

		depth--

		p := s.partition(lo, hi)

		// Recurse into the smaller side to bound stack depth.
		if p-lo < hi-p-1 {
			s.introsort(lo, p, depth)
			lo = p + 1
		} else {
			s.introsort(p+1, hi, depth)
			hi = p
		}
	}

	s.insertionSort(lo, hi)
}

// partition places a median-of-three pivot at its final position and
// returns that position.
func (s sorter[T, C]) partition(lo, hi int) int {
	mid, last := lo+(hi-lo)/2, hi-1

	if s.less(mid, lo) {
		s.swap(mid, lo)
	}

	if s.less(last, mid) {
		s.swap(last, mid)

		if s.less(mid, lo) {
			s.swap(mid, lo)
		}
	}

	s.swap(mid, last)

	store := lo

	for i := lo; i < last; i++ {
		if s.less(i, last) {
			s.swap(i, store)
			store++
		}
	}

	s.swap(store, last)

	return store
}

func (s sorter[T, C]) insertionSort(lo, hi int) {
	for i := lo + 1; i < hi; i++ {
		for j := i; j > lo && s.less(j, j-1); j-- {
			s.swap(j, j-1)
		}
	}
}

func (s sorter[T, C]) heapSort(lo, hi int) {
	n := hi - lo

	for i := n/2 - 1; i >= 0; i-- {
		s.siftDown(lo, i, n)
	}

	for end := n - 1; end > 0; end-- {
		s.swap(lo, lo+end)
		s.siftDown(lo, 0, end)
	}
}

func (s sorter[T, C]) siftDown(lo, root, n int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}

		if child+1 < n && s.less(lo+child, lo+child+1) {
			child++
		}

		if !s.less(lo+root, lo+child) {
			return
		}

		s.swap(lo+root, lo+child)
		root = child
	}
}
