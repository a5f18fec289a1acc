// Package safeconv provides integer conversions for sizes and counts that
// are known to be in range.
package safeconv

import "math"

// MustIntToUint64 converts a non-negative int to uint64, panics if negative.
// Use only for lengths and capacities.
func MustIntToUint64(v int) uint64 {
	if v < 0 {
		panic("safeconv: negative int to uint64 conversion")
	}

	return uint64(v)
}

// ClampUint64ToInt converts v to int, saturating at math.MaxInt.
func ClampUint64ToInt(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}

	return int(v)
}
