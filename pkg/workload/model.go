package workload

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
)

// ErrMismatch reports that the buffer diverged from the reference model.
var ErrMismatch = errors.New("buffer diverged from reference model")

// model is the reference deque: front holds the leading elements in reverse
// order, back holds the rest in order.
type model struct {
	front []int
	back  []int
}

func (m *model) len() int { return len(m.front) + len(m.back) }

func (m *model) at(i int) int {
	if i < len(m.front) {
		return m.front[len(m.front)-1-i]
	}

	return m.back[i-len(m.front)]
}

func (m *model) pushBack(v int)  { m.back = append(m.back, v) }
func (m *model) pushFront(v int) { m.front = append(m.front, v) }

func (m *model) popBack() int {
	if len(m.back) == 0 {
		v := m.front[0]
		m.front = m.front[1:]

		return v
	}

	v := m.back[len(m.back)-1]
	m.back = m.back[:len(m.back)-1]

	return v
}

func (m *model) popFront() int {
	if len(m.front) == 0 {
		v := m.back[0]
		m.back = m.back[1:]

		return v
	}

	v := m.front[len(m.front)-1]
	m.front = m.front[:len(m.front)-1]

	return v
}

// flatten folds both halves into back, in order.
func (m *model) flatten() []int {
	if len(m.front) > 0 {
		flat := make([]int, 0, m.len())

		for i := len(m.front) - 1; i >= 0; i-- {
			flat = append(flat, m.front[i])
		}

		m.front = nil
		m.back = append(flat, m.back...)
	}

	return m.back
}

func (m *model) insert(i, v int) { m.back = slices.Insert(m.flatten(), i, v) }
func (m *model) erase(i int)     { m.back = slices.Delete(m.flatten(), i, i+1) }

// check compares every element of b against the model.
func (m *model) check(b *circbuf.Buffer[int], step int) error {
	if b.Len() != m.len() {
		return fmt.Errorf("%w at step %d: len %d, want %d", ErrMismatch, step, b.Len(), m.len())
	}

	for i, v := range b.All() {
		if want := m.at(i); v != want {
			return fmt.Errorf("%w at step %d: index %d is %d, want %d", ErrMismatch, step, i, v, want)
		}
	}

	return nil
}

// checkEdges is the cheap per-step comparison of length and both ends.
func (m *model) checkEdges(b *circbuf.Buffer[int], step int) error {
	if b.Len() != m.len() {
		return fmt.Errorf("%w at step %d: len %d, want %d", ErrMismatch, step, b.Len(), m.len())
	}

	if b.Empty() {
		return nil
	}

	if b.Front() != m.at(0) || b.Back() != m.at(m.len()-1) {
		return fmt.Errorf("%w at step %d: edges (%d, %d), want (%d, %d)",
			ErrMismatch, step, b.Front(), b.Back(), m.at(0), m.at(m.len()-1))
	}

	return nil
}
