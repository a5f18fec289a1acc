package seqalg_test

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
	"github.com/Sumatoshi-tech/circbuf/pkg/seqalg"
)

const (
	// largeSortSize exceeds the insertion-sort cutoff many times over.
	largeSortSize = 1_000

	// sortSeeds is the number of random inputs sorted per size.
	sortSeeds = 8
)

// wrappedOf returns a buffer holding values whose occupied region straddles
// the end of its block.
func wrappedOf(t *testing.T, values ...int) *circbuf.Buffer[int] {
	t.Helper()

	b := circbuf.New(circbuf.WithCapacity[int](len(values) + 3))

	half := len(values) / 2
	for _, v := range values[half:] {
		require.NoError(t, b.PushBack(v))
	}

	for i := half - 1; i >= 0; i-- {
		require.NoError(t, b.PushFront(values[i]))
	}

	require.Equal(t, values, nilToEmpty(b.Slice()))

	return b
}

func nilToEmpty(s []int) []int {
	if s == nil {
		return []int{}
	}

	return s
}

func TestSort_Wrapped(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 5, 12, 13, 64, largeSortSize} {
		for seed := range uint64(sortSeeds) {
			rng := rand.New(rand.NewPCG(seed, uint64(n)))
			values := make([]int, n)

			for i := range values {
				values[i] = rng.IntN(n + 1)
			}

			b := wrappedOf(t, values...)
			seqalg.Sort[int](b.Begin(), b.End())

			want := slices.Clone(values)
			slices.Sort(want)
			require.Equal(t, want, nilToEmpty(b.Slice()), "n=%d seed=%d", n, seed)
			require.True(t, seqalg.IsSorted[int](b.Begin(), b.End()))
		}
	}
}

func TestSort_DegenerateInputs(t *testing.T) {
	t.Parallel()

	equal := make([]int, largeSortSize)
	ascending := make([]int, largeSortSize)
	descending := make([]int, largeSortSize)

	for i := range largeSortSize {
		equal[i] = 7
		ascending[i] = i
		descending[i] = largeSortSize - i
	}

	for name, values := range map[string][]int{
		"equal":      equal,
		"ascending":  ascending,
		"descending": descending,
	} {
		b := wrappedOf(t, values...)
		seqalg.Sort[int](b.Begin(), b.End())

		want := slices.Clone(values)
		slices.Sort(want)
		assert.Equal(t, want, b.Slice(), name)
	}
}

func TestSort_ReverseCursorsSortDescending(t *testing.T) {
	t.Parallel()

	b := wrappedOf(t, 3, 9, 1, 4, 7, 2)
	seqalg.Sort[int](b.RBegin(), b.REnd())

	assert.Equal(t, []int{9, 7, 4, 3, 2, 1}, b.Slice())
}

func TestSortFunc_Subrange(t *testing.T) {
	t.Parallel()

	b := wrappedOf(t, 5, 4, 3, 2, 1, 0)
	seqalg.SortFunc(b.Begin().Add(1), b.End().Sub(1), func(x, y int) int { return cmp.Compare(x, y) })

	assert.Equal(t, []int{5, 1, 2, 3, 4, 0}, b.Slice())
}

func TestSearch(t *testing.T) {
	t.Parallel()

	b := wrappedOf(t, 1, 3, 3, 3, 5, 8, 13)
	first, last := b.Begin().Const(), b.End().Const()

	assert.Equal(t, 1, seqalg.LowerBound(first, last, 3).Diff(first))
	assert.Equal(t, 4, seqalg.UpperBound(first, last, 3).Diff(first))
	assert.Equal(t, 0, seqalg.LowerBound(first, last, -1).Diff(first))
	assert.True(t, seqalg.LowerBound(first, last, 99).Equal(last))

	at, ok := seqalg.BinarySearch(first, last, 8)
	assert.True(t, ok)
	assert.Equal(t, 8, at.Get())

	at, ok = seqalg.BinarySearch(first, last, 4)
	assert.False(t, ok)
	assert.Equal(t, 4, at.Diff(first))

	_, ok = seqalg.BinarySearch(first, last, 99)
	assert.False(t, ok)
}

func TestFindAndCount(t *testing.T) {
	t.Parallel()

	b := wrappedOf(t, 4, 1, 4, 2, 4)

	at := seqalg.Find(b.Begin(), b.End(), 2)
	assert.Equal(t, 3, at.Diff(b.Begin()))
	assert.True(t, seqalg.Find(b.Begin(), b.End(), 9).Equal(b.End()))

	odd := seqalg.FindFunc(b.Begin(), b.End(), func(v int) bool { return v%2 == 1 })
	assert.Equal(t, 1, odd.Get())

	assert.Equal(t, 3, seqalg.Count(b.Begin(), b.End(), 4))
	assert.Equal(t, 4, seqalg.CountFunc(b.Begin(), b.End(), func(v int) bool { return v > 1 }))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := wrappedOf(t, 1, 2, 3, 4)
	b := circbuf.Of(1, 2, 3, 4)
	c := circbuf.Of(4, 3, 2, 1)

	assert.True(t, seqalg.Equal[int](a.Begin(), a.End(), b.Begin().Const(), b.End().Const()))
	assert.False(t, seqalg.Equal[int](a.Begin(), a.End(), c.Begin(), c.End()))
	assert.True(t, seqalg.Equal[int](a.Begin(), a.End(), c.RBegin(), c.REnd()))
	assert.False(t, seqalg.Equal[int](a.Begin(), a.End(), b.Begin(), b.End().Prev()))

	labels := circbuf.Of("1", "2", "3", "4")
	assert.True(t, seqalg.EqualFunc(a.Begin(), a.End(), labels.Begin(), labels.End(),
		func(n int, s string) bool { return s == string(rune('0'+n)) }))
}

func TestReverseFillCopy(t *testing.T) {
	t.Parallel()

	b := wrappedOf(t, 1, 2, 3, 4, 5)

	seqalg.Reverse(b.Begin(), b.End())
	assert.Equal(t, []int{5, 4, 3, 2, 1}, b.Slice())

	seqalg.Reverse(b.Begin(), b.Begin().Add(2))
	assert.Equal(t, []int{4, 5, 3, 2, 1}, b.Slice())

	seqalg.Fill(b.Begin().Add(3), b.End(), 0)
	assert.Equal(t, []int{4, 5, 3, 0, 0}, b.Slice())

	dst := wrappedOf(t, 9, 9, 9, 9, 9, 9)
	end := seqalg.Copy[int](b.Begin(), b.End(), dst.Begin().Add(1))
	assert.Equal(t, []int{9, 4, 5, 3, 0, 0}, dst.Slice())
	assert.True(t, end.Equal(dst.End()))

	assert.Equal(t, 5, seqalg.Distance(b.Begin(), b.End()))
	assert.Equal(t, 5, seqalg.Distance(b.RBegin(), b.REnd()))
}
