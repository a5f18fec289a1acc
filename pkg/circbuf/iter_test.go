package circbuf_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
)

func TestBuffer_All(t *testing.T) {
	t.Parallel()

	b := wrapped(t)

	var idx, vals []int

	for i, v := range b.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, idx)
	assert.Equal(t, b.Slice(), vals)
}

func TestBuffer_AllStopsEarly(t *testing.T) {
	t.Parallel()

	b := wrapped(t)

	var seen []int

	for _, v := range b.All() {
		if v == 0 {
			break
		}

		seen = append(seen, v)
	}

	assert.Equal(t, []int{-3, -2, -1}, seen)
}

func TestBuffer_Backward(t *testing.T) {
	t.Parallel()

	b := wrapped(t)

	var vals []int

	for i, v := range b.Backward() {
		assert.Equal(t, b.At(i), v)

		vals = append(vals, v)
	}

	want := b.Slice()
	slices.Reverse(want)
	assert.Equal(t, want, vals)
}

func TestBuffer_Values(t *testing.T) {
	t.Parallel()

	b := wrapped(t)

	assert.Equal(t, b.Slice(), slices.Collect(b.Values()))
	assert.Empty(t, slices.Collect(circbuf.New[int]().Values()))
}

func TestBuffer_AppendTo(t *testing.T) {
	t.Parallel()

	b := wrapped(t)

	got := b.AppendTo([]int{100})
	assert.Equal(t, []int{100, -3, -2, -1, 0, 1, 2, 3, 4}, got)

	contiguous := circbuf.Of(1, 2, 3)
	assert.Equal(t, []int{1, 2, 3}, contiguous.AppendTo(nil))

	var empty circbuf.Buffer[int]
	assert.Equal(t, []int{7}, empty.AppendTo([]int{7}))
}
