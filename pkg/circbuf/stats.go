package circbuf

// counters accumulates operation totals for Stats.
type counters struct {
	pushes    int64
	pops      int64
	inserts   int64
	erased    int64
	swaps     int64
	grows     int64
	relocated int64
}

// Stats is a snapshot of a buffer's shape and operation totals.
type Stats struct {
	Len         int `json:"len"`
	Cap         int `json:"cap"`
	MaxCapacity int `json:"max_capacity,omitempty"` // 0 when no limit is set.

	Pushes    int64 `json:"pushes"`    // Successful PushBack and PushFront calls.
	Pops      int64 `json:"pops"`      // Elements taken from either end, including Erase and Clear.
	Inserts   int64 `json:"inserts"`   // Successful positional inserts.
	Erased    int64 `json:"erased"`    // Elements removed by positional erase.
	Swaps     int64 `json:"swaps"`     // Element swaps performed by insert/erase rotation.
	Grows     int64 `json:"grows"`     // Storage replacements, including Reserve.
	Relocated int64 `json:"relocated"` // Elements moved into new storage blocks.
}

// Load returns the fraction of capacity in use (0 for zero capacity).
func (s Stats) Load() float64 {
	if s.Cap == 0 {
		return 0
	}

	return float64(s.Len) / float64(s.Cap)
}

// Stats returns the current statistics.
func (b *Buffer[T]) Stats() Stats {
	return Stats{
		Len:         b.size,
		Cap:         b.Cap(),
		MaxCapacity: b.maxCap,
		Pushes:      b.stats.pushes,
		Pops:        b.stats.pops,
		Inserts:     b.stats.inserts,
		Erased:      b.stats.erased,
		Swaps:       b.stats.swaps,
		Grows:       b.stats.grows,
		Relocated:   b.stats.relocated,
	}
}
