package safeconv_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/circbuf/pkg/safeconv"
)

func TestMustIntToUint64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), safeconv.MustIntToUint64(0))
	assert.Equal(t, uint64(math.MaxInt), safeconv.MustIntToUint64(math.MaxInt))
	assert.PanicsWithValue(t, "safeconv: negative int to uint64 conversion", func() {
		safeconv.MustIntToUint64(-1)
	})
}

func TestClampUint64ToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, safeconv.ClampUint64ToInt(42))
	assert.Equal(t, math.MaxInt, safeconv.ClampUint64ToInt(math.MaxInt))
	assert.Equal(t, math.MaxInt, safeconv.ClampUint64ToInt(math.MaxUint64))
}
