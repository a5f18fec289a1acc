package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/circbuf/pkg/config"
)

const (
	testOps         = 5_000
	testSeed        = 42
	testSampleEvery = 50
	testMemoryLimit = 64 << 20
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "circbuf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultWorkloadOps, cfg.Workload.Ops)
	assert.Equal(t, uint64(config.DefaultWorkloadSeed), cfg.Workload.Seed)
	assert.Equal(t, config.DefaultWorkloadSampleEvery, cfg.Workload.SampleEvery)
	assert.True(t, cfg.Workload.Verify)
	assert.True(t, cfg.Workload.Baseline)
	assert.Equal(t, config.DefaultWorkloadMix(), cfg.Workload.Mix)
	assert.Equal(t, config.DefaultReportColor, cfg.Report.Color)
	assert.Equal(t, config.DefaultReportTitle, cfg.Report.Title)
	assert.InDelta(t, config.DefaultTelemetrySampleRatio, cfg.Telemetry.SampleRatio, 0)
	assert.Equal(t, config.DefaultLoggingLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLoggingFormat, cfg.Logging.Format)

	limit, err := cfg.Workload.MemoryLimitBytes()
	require.NoError(t, err)
	assert.Zero(t, limit)
}

func TestLoadConfig_NoFileSearched(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultWorkloadOps, cfg.Workload.Ops)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
workload:
  ops: 5000
  seed: 42
  sample_every: 50
  memory_limit: 64MiB
  baseline: false
  mix:
    push_back: 1
    pop_front: 1
report:
  json: out.json.lz4
  color: never
logging:
  format: json
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, testOps, cfg.Workload.Ops)
	assert.Equal(t, uint64(testSeed), cfg.Workload.Seed)
	assert.Equal(t, testSampleEvery, cfg.Workload.SampleEvery)
	assert.False(t, cfg.Workload.Baseline)
	assert.Equal(t, map[string]int{"push_back": 1, "pop_front": 1}, cfg.Workload.Mix)
	assert.Equal(t, "out.json.lz4", cfg.Report.JSONPath)
	assert.Equal(t, "never", cfg.Report.Color)
	assert.Equal(t, "json", cfg.Logging.Format)

	limit, err := cfg.Workload.MemoryLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(testMemoryLimit), limit)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("CIRCBUF_WORKLOAD_OPS", "5000")
	t.Setenv("CIRCBUF_TELEMETRY_METRICS_ADDR", ":9464")
	t.Setenv("CIRCBUF_LOGGING_LEVEL", "debug")

	cfg, err := config.LoadConfig(writeConfig(t, "workload:\n  ops: 10\n"))
	require.NoError(t, err)

	assert.Equal(t, testOps, cfg.Workload.Ops, "env overrides file")
	assert.Equal(t, ":9464", cfg.Telemetry.MetricsAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "workload: [unclosed"))
	require.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"zero ops", "workload:\n  ops: 0\n", config.ErrInvalidOps},
		{"negative reserve", "workload:\n  reserve: -1\n", config.ErrInvalidReserve},
		{"zero sample", "workload:\n  sample_every: 0\n", config.ErrInvalidSampleEvery},
		{"negative weight", "workload:\n  mix:\n    push_back: -1\n", config.ErrInvalidMix},
		{"all zero", "workload:\n  mix:\n    push_back: 0\n", config.ErrInvalidMix},
		{"bad limit", "workload:\n  memory_limit: lots\n", config.ErrInvalidMemoryLimit},
		{"bad color", "report:\n  color: rainbow\n", config.ErrInvalidColor},
		{"bad ratio", "telemetry:\n  sample_ratio: 2\n", config.ErrInvalidSampleRatio},
		{"bad format", "logging:\n  format: xml\n", config.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}
