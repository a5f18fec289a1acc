package circbuf_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
)

const (
	// modelSeeds is the number of independent random op sequences.
	modelSeeds = 20

	// modelOps is the number of operations per sequence.
	modelOps = 2_000

	// modelOpKinds is the number of distinct operations drawn from.
	modelOpKinds = 9
)

// TestBuffer_ReferenceModel replays random operation sequences against a
// Buffer and a plain slice and requires identical contents after every step.
func TestBuffer_ReferenceModel(t *testing.T) {
	t.Parallel()

	for seed := range uint64(modelSeeds) {
		rng := rand.New(rand.NewPCG(seed, seed*31+7))
		b := circbuf.New[int]()

		var model []int

		prevCap := 0

		for step := range modelOps {
			v := rng.IntN(1_000)

			switch op := rng.IntN(modelOpKinds); {
			case op <= 1:
				require.NoError(t, b.PushBack(v))

				model = append(model, v)
			case op <= 3:
				require.NoError(t, b.PushFront(v))

				model = slices.Insert(model, 0, v)
			case op == 4 && len(model) > 0:
				require.Equal(t, model[len(model)-1], b.PopBack())

				model = model[:len(model)-1]
			case op == 5 && len(model) > 0:
				require.Equal(t, model[0], b.PopFront())

				model = model[1:]
			case op == 6:
				pos := rng.IntN(len(model) + 1)
				_, err := b.Insert(b.Begin().Add(pos), v)
				require.NoError(t, err)

				model = slices.Insert(model, pos, v)
			case op == 7 && len(model) > 0:
				lo := rng.IntN(len(model))
				hi := lo + rng.IntN(min(4, len(model)-lo)+1)
				b.EraseRange(b.Begin().Add(lo), b.Begin().Add(hi))

				model = slices.Delete(model, lo, hi)
			case op == 8:
				require.NoError(t, b.Reserve(b.Cap()+rng.IntN(3)))
			}

			require.Equal(t, len(model), b.Len(), "seed=%d step=%d", seed, step)
			require.LessOrEqual(t, b.Len(), b.Cap())
			require.GreaterOrEqual(t, b.Cap(), prevCap, "capacity never shrinks")

			prevCap = b.Cap()

			if len(model) == 0 {
				require.Nil(t, b.Slice())
			} else {
				require.Equal(t, model, b.Slice(), "seed=%d step=%d", seed, step)
			}
		}
	}
}
