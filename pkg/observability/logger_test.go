package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/circbuf/pkg/observability"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return record
}

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelDebug
	cfg.Environment = "test"
	cfg.ServiceVersion = "0.1.0"
	cfg.Mode = observability.ModeBench

	return observability.NewLogger(buf, cfg)
}

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	jsonLogger(&buf).InfoContext(ctx, "grow")

	record := decodeRecord(t, &buf)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "circbuf", record["service"])
	assert.Equal(t, "bench", record["mode"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "0.1.0", record["version"])
}

func TestTracingHandler_NoSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	jsonLogger(&buf).InfoContext(context.Background(), "no span")

	record := decodeRecord(t, &buf)
	assert.NotContains(t, record, "trace_id")
	assert.Equal(t, "circbuf", record["service"])
}

func TestTracingHandler_GroupKeepsServiceTopLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	jsonLogger(&buf).WithGroup("workload").With(slog.Int("seed", 7)).
		InfoContext(context.Background(), "run", slog.Int("ops", 100))

	record := decodeRecord(t, &buf)
	assert.Equal(t, "circbuf", record["service"])

	group, ok := record["workload"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 7, group["seed"], 0)
	assert.InDelta(t, 100, group["ops"], 0)
}

func TestNewLogger_TextRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogLevel = slog.LevelWarn

	logger := observability.NewLogger(&buf, cfg)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "service=circbuf")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := observability.ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := observability.ParseLevel("loud")
	require.ErrorIs(t, err, observability.ErrInvalidLevel)
}
