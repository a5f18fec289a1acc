package workload

import "github.com/Sumatoshi-tech/circbuf/pkg/circbuf"

// CheckAgainst compares b with a model holding want.
func CheckAgainst(b *circbuf.Buffer[int], want []int) error {
	m := &model{back: want}

	return m.check(b, 0)
}

// Summarize exposes summarize for testing.
var Summarize = summarize
