// Package workload drives seeded random operation mixes against a
// circbuf.Buffer, checks it against a reference model and measures it against
// a baseline queue.
package workload

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Op names one workload operation.
type Op string

// Workload operations.
const (
	OpPushBack  Op = "push_back"
	OpPushFront Op = "push_front"
	OpPopBack   Op = "pop_back"
	OpPopFront  Op = "pop_front"
	OpInsert    Op = "insert"
	OpErase     Op = "erase"
	OpAt        Op = "at"
)

// Ops lists every operation in report order.
var Ops = []Op{OpPushBack, OpPushFront, OpPopBack, OpPopFront, OpInsert, OpErase, OpAt}

// Sentinel errors.
var (
	ErrUnknownOp = errors.New("unknown workload op")
	ErrEmptyMix  = errors.New("workload mix has no positive weight")
)

// Weighted pairs an operation with its relative frequency.
type Weighted struct {
	Op     Op
	Weight int
}

// Mix is a weighted set of operations in a fixed order, so a seed always
// produces the same plan.
type Mix []Weighted

// ParseMix converts a name-to-weight map into a Mix. Zero weights are
// dropped; negative weights and unknown names are errors.
func ParseMix(weights map[string]int) (Mix, error) {
	mix := make(Mix, 0, len(weights))

	for name, w := range weights {
		op := Op(name)
		if !slices.Contains(Ops, op) {
			return nil, fmt.Errorf("%w %q", ErrUnknownOp, name)
		}

		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight for %q", ErrEmptyMix, name)
		}

		if w > 0 {
			mix = append(mix, Weighted{Op: op, Weight: w})
		}
	}

	if len(mix) == 0 {
		return nil, ErrEmptyMix
	}

	slices.SortFunc(mix, func(a, b Weighted) int {
		return cmp.Compare(slices.Index(Ops, a.Op), slices.Index(Ops, b.Op))
	})

	return mix, nil
}

func (m Mix) total() int {
	total := 0
	for _, w := range m {
		total += w.Weight
	}

	return total
}

// Step is one planned operation. Pick selects the position for positional
// ops; it is reduced modulo the buffer length when the step runs.
type Step struct {
	Op    Op
	Value int
	Pick  uint32
}

// Generate returns n steps drawn from mix with a PCG source seeded by seed.
func Generate(seed uint64, n int, mix Mix) []Step {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	total := mix.total()
	steps := make([]Step, n)

	for i := range steps {
		roll := rng.IntN(total)

		op := mix[len(mix)-1].Op

		for _, w := range mix {
			if roll < w.Weight {
				op = w.Op

				break
			}

			roll -= w.Weight
		}

		steps[i] = Step{Op: op, Value: rng.Int(), Pick: rng.Uint32()}
	}

	return steps
}

// index maps Pick onto [0, n).
func (s Step) index(n int) int {
	return int(s.Pick % uint32(n))
}
