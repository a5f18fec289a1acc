package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
	"github.com/Sumatoshi-tech/circbuf/pkg/seqalg"
)

// FinalStep is the Failure.Step value for the document-level expectation.
const FinalStep = -1

// Failure records one unmet expectation or one step that could not run.
type Failure struct {
	Step    int // Zero-based step index, or FinalStep.
	Op      Op
	Message string
	Want    []int // Set for content expectations.
	Got     []int
}

// Diff returns the line diff between the expected and actual contents, one
// element per line. It is empty for failures without content expectations.
func (f Failure) Diff() []diffmatchpatch.Diff {
	if f.Want == nil && f.Got == nil {
		return nil
	}

	return DiffValues(f.Want, f.Got)
}

// Result is the outcome of a replay.
type Result struct {
	Name     string
	Executed int
	Failures []Failure
	Final    []int
	Stats    circbuf.Stats
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Err returns ErrExpectation wrapped with a failure count, or nil.
func (r *Result) Err() error {
	if r.Passed() {
		return nil
	}

	return fmt.Errorf("%w: %s: %d failure(s)", ErrExpectation, r.Name, len(r.Failures))
}

// Run replays sc against a fresh buffer. Unmet expectations are collected in
// the result. A step that cannot run (an index out of range, a pop from an
// empty buffer, an unexpected capacity error) is recorded as a failure and
// stops the replay. Run returns an error only for cancellation or an
// unknown op.
func Run(ctx context.Context, sc *Scenario) (*Result, error) {
	buf := circbuf.New[int](circbuf.WithMaxCapacity[int](sc.Options.MaxCapacity))

	res := &Result{Name: sc.Name}

	if sc.Options.Reserve > 0 {
		if err := buf.Reserve(sc.Options.Reserve); err != nil {
			return nil, fmt.Errorf("%w: options: %w", ErrStep, err)
		}
	}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fail := func(format string, args ...any) {
			res.Failures = append(res.Failures, Failure{Step: i, Op: step.Op, Message: fmt.Sprintf(format, args...)})
		}

		out, err := apply(buf, step)
		if errors.Is(err, ErrUnknownOp) {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		res.Executed++

		switch {
		case step.ExpectError == ExpectCapacityExceeded && !errors.Is(err, circbuf.ErrCapacityExceeded):
			fail("expected capacity_exceeded, got %v", err)
		case step.ExpectError == "" && err != nil:
			fail("%v", err)
			res.Final = nonNil(buf.Slice())
			res.Stats = buf.Stats()

			return res, nil
		}

		if step.Value != nil && out != nil && *out != *step.Value {
			fail("value: want %d, got %d", *step.Value, *out)
		}

		if step.ExpectLen != nil && buf.Len() != *step.ExpectLen {
			fail("len: want %d, got %d", *step.ExpectLen, buf.Len())
		}

		if step.ExpectCap != nil && buf.Cap() != *step.ExpectCap {
			fail("cap: want %d, got %d", *step.ExpectCap, buf.Cap())
		}

		if step.Expect != nil {
			if got := buf.Slice(); !slices.Equal(got, step.Expect) {
				res.Failures = append(res.Failures, Failure{
					Step: i, Op: step.Op, Message: "contents differ", Want: step.Expect, Got: nonNil(got),
				})
			}
		}
	}

	res.Final = nonNil(buf.Slice())
	res.Stats = buf.Stats()

	if sc.Expect != nil && !slices.Equal(res.Final, sc.Expect) {
		res.Failures = append(res.Failures, Failure{
			Step: FinalStep, Message: "final contents differ", Want: sc.Expect, Got: res.Final,
		})
	}

	return res, nil
}

// apply runs one step. For pops and at it returns the produced value.
func apply(buf *circbuf.Buffer[int], step Step) (*int, error) {
	switch step.Op {
	case OpPushBack:
		return nil, buf.PushBack(deref(step.Value))
	case OpPushFront:
		return nil, buf.PushFront(deref(step.Value))
	case OpPopBack, OpPopFront:
		if buf.Empty() {
			return nil, fmt.Errorf("%w: %s on empty buffer", ErrStep, step.Op)
		}

		v := buf.PopFront
		if step.Op == OpPopBack {
			v = buf.PopBack
		}

		out := v()

		return &out, nil
	case OpInsert:
		idx := deref(step.Index)
		if idx < 0 || idx > buf.Len() {
			return nil, indexError(step.Op, idx, buf.Len())
		}

		return nil, buf.InsertAt(idx, deref(step.Value))
	case OpErase:
		return nil, erase(buf, step)
	case OpAt:
		idx := deref(step.Index)
		if idx < 0 || idx >= buf.Len() {
			return nil, indexError(step.Op, idx, buf.Len()-1)
		}

		out := buf.At(idx)

		return &out, nil
	case OpReserve:
		return nil, buf.Reserve(deref(step.Count))
	case OpClear:
		buf.Clear()

		return nil, nil
	case OpClone:
		dup, err := buf.Clone()
		if err != nil {
			return nil, err
		}

		return nil, buf.Assign(dup)
	case OpSort:
		seqalg.Sort[int](buf.Begin(), buf.End())

		return nil, nil
	case OpReverse:
		seqalg.Reverse(buf.Begin(), buf.End())

		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}

func erase(buf *circbuf.Buffer[int], step Step) error {
	idx := deref(step.Index)
	count := 1

	if step.Count != nil {
		count = *step.Count
	}

	if idx < 0 || count < 0 || idx+count > buf.Len() {
		return fmt.Errorf("%w: erase [%d, %d) of %d elements", ErrStep, idx, idx+count, buf.Len())
	}

	first := buf.Begin().Add(idx)
	buf.EraseRange(first, first.Add(count))

	return nil
}

func indexError(op Op, idx, limit int) error {
	return fmt.Errorf("%w: %s index %d out of range [0, %d]", ErrStep, op, idx, limit)
}

// DiffValues returns a line diff of want against got, one value per line.
func DiffValues(want, got []int) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(joinLines(want), joinLines(got))

	return dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)
}

func joinLines(values []int) string {
	var sb strings.Builder

	for _, v := range values {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func deref(p *int) int {
	if p == nil {
		return 0
	}

	return *p
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}

	return s
}
