package workload

import (
	"math"
	"slices"
	"time"
)

// Latency summarizes per-operation wall time.
type Latency struct {
	Count int           `json:"count"`
	Mean  time.Duration `json:"mean_ns"`
	P50   time.Duration `json:"p50_ns"`
	P99   time.Duration `json:"p99_ns"`
	Max   time.Duration `json:"max_ns"`
}

// summarize sorts samples in place and reduces them to a Latency.
func summarize(samples []time.Duration) Latency {
	if len(samples) == 0 {
		return Latency{}
	}

	slices.Sort(samples)

	var sum time.Duration
	for _, d := range samples {
		sum += d
	}

	return Latency{
		Count: len(samples),
		Mean:  sum / time.Duration(len(samples)),
		P50:   percentile(samples, 0.50),
		P99:   percentile(samples, 0.99),
		Max:   samples[len(samples)-1],
	}
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := p * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return time.Duration(float64(sorted[lower])*(1-frac) + float64(sorted[upper])*frac)
}
