package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
	"github.com/Sumatoshi-tech/circbuf/pkg/observability"
)

func newTestMetrics(t *testing.T) (*observability.BufferMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	bm, err := observability.NewBufferMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return bm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}

	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()

	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestBufferMetrics_ObservesGrowth(t *testing.T) {
	t.Parallel()

	bm, reader := newTestMetrics(t)

	b := circbuf.New(circbuf.WithObserver[int](bm))
	for i := range 5 {
		require.NoError(t, b.PushBack(i))
	}

	// 0->1->2->4->8 relocates 0+1+2+4 elements.
	data := collect(t, reader)
	assert.Equal(t, int64(4), sumOf(t, data["circbuf.grows.total"]))
	assert.Equal(t, int64(7), sumOf(t, data["circbuf.relocated.total"]))

	hist, ok := data["circbuf.capacity"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(4), hist.DataPoints[0].Count)
	assert.InDelta(t, 1+2+4+8, hist.DataPoints[0].Sum, 1e-9)
}

func TestBufferMetrics_RecordOp(t *testing.T) {
	t.Parallel()

	bm, reader := newTestMetrics(t)
	ctx := context.Background()

	bm.RecordOp(ctx, "push_back", time.Microsecond, nil)
	bm.RecordOp(ctx, "push_back", time.Microsecond, nil)
	bm.RecordOp(ctx, "insert", time.Millisecond, errors.New("full"))

	data := collect(t, reader)
	assert.Equal(t, int64(3), sumOf(t, data["circbuf.ops.total"]))
	assert.Equal(t, int64(1), sumOf(t, data["circbuf.op.errors.total"]))

	hist, ok := data["circbuf.op.duration.seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2, "one series per op")
}
