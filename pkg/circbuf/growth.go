package circbuf

import "fmt"

// GrowReason names the operation that triggered a storage replacement.
type GrowReason string

// Growth triggers.
const (
	GrowPushBack  GrowReason = "push_back"
	GrowPushFront GrowReason = "push_front"
	GrowInsert    GrowReason = "insert"
	GrowReserve   GrowReason = "reserve"
)

// GrowEvent describes one storage replacement.
type GrowEvent struct {
	Reason GrowReason `json:"reason"`
	OldCap int        `json:"old_cap"`
	NewCap int        `json:"new_cap"`
	Moved  int        `json:"moved"` // Live elements relocated into the new block.
}

// Observer is notified after every committed storage replacement.
type Observer interface {
	ObserveGrow(ev GrowEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev GrowEvent)

// ObserveGrow calls f(ev).
func (f ObserverFunc) ObserveGrow(ev GrowEvent) { f(ev) }

// Reserve grows the storage block to exactly n slots when n exceeds the
// current capacity, in a single reallocation. Live elements keep their order
// and the head offset restarts at slot 0. Smaller n is a no-op.
// On error the buffer is unchanged.
func (b *Buffer[T]) Reserve(n int) error {
	if n <= b.Cap() {
		return nil
	}

	if b.maxCap > 0 && n > b.maxCap {
		return fmt.Errorf("%w: reserve %d, limit %d", ErrCapacityExceeded, n, b.maxCap)
	}

	tmp := Buffer[T]{blk: allocate[T](n)}

	for i := range b.size {
		tmp.placeBack(b.blk.slots[b.slot(i)])
	}

	b.commitGrowth(&tmp, GrowReserve)

	return nil
}

// nextCap returns the capacity of the next block under the doubling policy.
func (b *Buffer[T]) nextCap() (int, error) {
	current := b.Cap()
	next := max(1, 2*current)

	if b.maxCap > 0 {
		if current >= b.maxCap {
			return 0, fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, b.maxCap)
		}

		next = min(next, b.maxCap)
	}

	return next, nil
}

// growInsert relocates the live elements into a larger block in one pass,
// placing v at logical index at on the way: prefix, then v, then suffix.
// The old block is dropped only after the new one is complete.
func (b *Buffer[T]) growInsert(at int, v T, reason GrowReason) error {
	newCap, err := b.nextCap()
	if err != nil {
		return err
	}

	tmp := Buffer[T]{blk: allocate[T](newCap)}

	for i := range at {
		tmp.placeBack(b.blk.slots[b.slot(i)])
	}

	tmp.placeBack(v)

	for i := at; i < b.size; i++ {
		tmp.placeBack(b.blk.slots[b.slot(i)])
	}

	b.commitGrowth(&tmp, reason)

	return nil
}

// commitGrowth swaps the fully built tmp into b. The elements left in the old
// block were moved, not copied, so the block is dropped without destroying them.
func (b *Buffer[T]) commitGrowth(tmp *Buffer[T], reason GrowReason) {
	ev := GrowEvent{
		Reason: reason,
		OldCap: b.Cap(),
		NewCap: tmp.Cap(),
		Moved:  b.size,
	}

	b.exchangeStorage(tmp)
	tmp.blk = nil
	tmp.size = 0

	b.stats.grows++
	b.stats.relocated += int64(ev.Moved)

	if b.observer != nil {
		b.observer.ObserveGrow(ev)
	}
}
