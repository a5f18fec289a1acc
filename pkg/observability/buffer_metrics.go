package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
)

const (
	metricGrows      = "circbuf.grows.total"
	metricRelocated  = "circbuf.relocated.total"
	metricCapacity   = "circbuf.capacity"
	metricOps        = "circbuf.ops.total"
	metricOpErrors   = "circbuf.op.errors.total"
	metricOpDuration = "circbuf.op.duration.seconds"

	attrReason = "reason"
	attrOp     = "op"
)

// capacityBuckets are powers of two up to 1Mi slots.
var capacityBuckets = []float64{1, 4, 16, 64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// opDurationBuckets cover 10ns to 10ms per operation.
var opDurationBuckets = []float64{1e-8, 5e-8, 1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 1e-4, 1e-3, 1e-2}

// BufferMetrics records buffer activity as OpenTelemetry instruments.
// It implements circbuf.Observer, so it can be passed to WithObserver.
type BufferMetrics struct {
	grows      metric.Int64Counter
	relocated  metric.Int64Counter
	capacity   metric.Float64Histogram
	ops        metric.Int64Counter
	opErrors   metric.Int64Counter
	opDuration metric.Float64Histogram
}

var _ circbuf.Observer = (*BufferMetrics)(nil)

// NewBufferMetrics creates the instruments on mt.
func NewBufferMetrics(mt metric.Meter) (*BufferMetrics, error) {
	b := &metricBuilder{meter: mt}

	bm := &BufferMetrics{
		grows:      b.counter(metricGrows, "Storage replacements", "{grow}"),
		relocated:  b.counter(metricRelocated, "Elements moved into new storage", "{element}"),
		capacity:   b.histogram(metricCapacity, "Capacity after each storage replacement", "{slot}", capacityBuckets...),
		ops:        b.counter(metricOps, "Buffer operations executed", "{op}"),
		opErrors:   b.counter(metricOpErrors, "Buffer operations that returned an error", "{op}"),
		opDuration: b.histogram(metricOpDuration, "Buffer operation latency", "s", opDurationBuckets...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return bm, nil
}

// ObserveGrow records one storage replacement.
func (bm *BufferMetrics) ObserveGrow(ev circbuf.GrowEvent) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String(attrReason, string(ev.Reason)))

	bm.grows.Add(ctx, 1, attrs)
	bm.relocated.Add(ctx, int64(ev.Moved), attrs)
	bm.capacity.Record(ctx, float64(ev.NewCap))
}

// RecordOp records one operation and its latency. A non-nil err also counts
// towards the error total.
func (bm *BufferMetrics) RecordOp(ctx context.Context, op string, d time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))

	bm.ops.Add(ctx, 1, attrs)
	bm.opDuration.Record(ctx, d.Seconds(), attrs)

	if err != nil {
		bm.opErrors.Add(ctx, 1, attrs)
	}
}
