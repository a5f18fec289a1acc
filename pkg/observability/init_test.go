package observability_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/circbuf/pkg/observability"
)

func TestInit_NoopWhenNothingEnabled(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(context.Background(), observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.Nil(t, providers.MetricsHandler)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_PrometheusServesBufferMetrics(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Prometheus = true
	cfg.Mode = observability.ModeBench

	providers, err := observability.Init(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.MetricsHandler)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	bm, err := observability.NewBufferMetrics(providers.Meter)
	require.NoError(t, err)

	bm.RecordOp(context.Background(), "push_back", 0, nil)

	rec := httptest.NewRecorder()
	providers.MetricsHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "circbuf_ops")
	assert.Contains(t, string(body), "target_info")
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single", "key=value", map[string]string{"key": "value"}},
		{"multiple", "k1=v1,k2=v2", map[string]string{"k1": "v1", "k2": "v2"}},
		{"spaces", " k1 = v1 , k2 = v2 ", map[string]string{"k1": "v1", "k2": "v2"}},
		{"no_equals", "invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.input))
		})
	}
}

func TestBuildResource(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Mode = observability.ModeReplay
	cfg.ServiceVersion = "1.2.3"

	res, err := observability.ProbeBuildResource(cfg)
	require.NoError(t, err)

	got := map[string]string{}
	for _, attr := range res.Attributes() {
		got[string(attr.Key)] = attr.Value.Emit()
	}

	assert.Equal(t, "replay", got["app.mode"])
	assert.Equal(t, "circbuf", got["service.name"])
	assert.Equal(t, "1.2.3", got["service.version"])
}

func TestSampler_Env(t *testing.T) {
	tests := []struct {
		sampler string
		want    bool
	}{
		{"always_on", true},
		{"always_off", false},
		{"traceidratio", true},
		{"parentbased_always_off", false},
		{"parentbased_traceidratio", true},
	}

	for _, tt := range tests {
		t.Run(tt.sampler, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLER", tt.sampler)
			t.Setenv("OTEL_TRACES_SAMPLER_ARG", "1.0")

			assert.Equal(t, tt.want, observability.ProbeSamplerSpan(observability.DefaultConfig()))
		})
	}
}

func TestSampler_Default(t *testing.T) {
	t.Parallel()

	assert.True(t, observability.ProbeSamplerSpan(observability.DefaultConfig()))

	cfg := observability.DefaultConfig()
	cfg.SampleRatio = 1.0
	assert.True(t, observability.ProbeSamplerSpan(cfg))
}
