// Package config loads circbuf CLI configuration from defaults, an optional
// YAML file and CIRCBUF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidOps         = errors.New("workload ops must be positive")
	ErrInvalidReserve     = errors.New("workload reserve must not be negative")
	ErrInvalidSampleEvery = errors.New("workload sample_every must be positive")
	ErrInvalidMix         = errors.New("invalid workload mix")
	ErrInvalidMemoryLimit = errors.New("invalid workload memory_limit")
	ErrInvalidColor       = errors.New("report color must be auto, always or never")
	ErrInvalidSampleRatio = errors.New("telemetry sample_ratio must be in [0, 1]")
	ErrInvalidLogFormat   = errors.New("logging format must be text or json")
)

const envPrefix = "CIRCBUF"

// Config holds all configuration for the circbuf CLI.
type Config struct {
	Workload  WorkloadConfig  `mapstructure:"workload"`
	Report    ReportConfig    `mapstructure:"report"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// WorkloadConfig configures the bench workload.
type WorkloadConfig struct {
	Mix         map[string]int `mapstructure:"mix"`
	MemoryLimit string         `mapstructure:"memory_limit"` // Humanized bytes, e.g. "64MiB".
	Ops         int            `mapstructure:"ops"`
	Seed        uint64         `mapstructure:"seed"`
	Reserve     int            `mapstructure:"reserve"`
	SampleEvery int            `mapstructure:"sample_every"`
	Verify      bool           `mapstructure:"verify"`
	Baseline    bool           `mapstructure:"baseline"`
}

// MemoryLimitBytes parses MemoryLimit. Zero means unlimited.
func (w WorkloadConfig) MemoryLimitBytes() (uint64, error) {
	if w.MemoryLimit == "" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(w.MemoryLimit)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidMemoryLimit, w.MemoryLimit, err)
	}

	return n, nil
}

// ReportConfig configures report output.
type ReportConfig struct {
	Title     string `mapstructure:"title"`
	JSONPath  string `mapstructure:"json"`  // ".lz4" suffix compresses.
	ChartPath string `mapstructure:"chart"` // HTML growth chart.
	Color     string `mapstructure:"color"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	OTLPEndpoint       string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders        string  `mapstructure:"otlp_headers"` // "k=v,k=v".
	Environment        string  `mapstructure:"environment"`
	MetricsAddr        string  `mapstructure:"metrics_addr"` // Prometheus listen address.
	SampleRatio        float64 `mapstructure:"sample_ratio"`
	ShutdownTimeoutSec int     `mapstructure:"shutdown_timeout_sec"`
	OTLPInsecure       bool    `mapstructure:"otlp_insecure"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration. An empty configPath searches for
// circbuf.yaml in ".", "./config" and "/etc/circbuf"; a missing file is not
// an error in that case.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("circbuf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/circbuf")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workload.ops", DefaultWorkloadOps)
	v.SetDefault("workload.seed", DefaultWorkloadSeed)
	v.SetDefault("workload.reserve", DefaultWorkloadReserve)
	v.SetDefault("workload.memory_limit", DefaultWorkloadMemoryLimit)
	v.SetDefault("workload.verify", DefaultWorkloadVerify)
	v.SetDefault("workload.sample_every", DefaultWorkloadSampleEvery)
	v.SetDefault("workload.baseline", DefaultWorkloadBaseline)
	v.SetDefault("workload.mix", DefaultWorkloadMix())

	v.SetDefault("report.title", DefaultReportTitle)
	v.SetDefault("report.json", "")
	v.SetDefault("report.chart", "")
	v.SetDefault("report.color", DefaultReportColor)

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_headers", "")
	v.SetDefault("telemetry.otlp_insecure", false)
	v.SetDefault("telemetry.environment", "")
	v.SetDefault("telemetry.metrics_addr", "")
	v.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
	v.SetDefault("telemetry.shutdown_timeout_sec", DefaultTelemetryShutdownTimeout)

	v.SetDefault("logging.level", DefaultLoggingLevel)
	v.SetDefault("logging.format", DefaultLoggingFormat)
}

// Validate checks value ranges. It is called by LoadConfig and again by
// commands after flags override loaded values.
func (c *Config) Validate() error {
	w := c.Workload

	switch {
	case w.Ops <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidOps, w.Ops)
	case w.Reserve < 0:
		return fmt.Errorf("%w: %d", ErrInvalidReserve, w.Reserve)
	case w.SampleEvery <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidSampleEvery, w.SampleEvery)
	}

	if err := validateMix(w.Mix); err != nil {
		return err
	}

	if _, err := w.MemoryLimitBytes(); err != nil {
		return err
	}

	switch c.Report.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Report.Color)
	}

	if r := c.Telemetry.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, r)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

func validateMix(mix map[string]int) error {
	total := 0

	for op, weight := range mix {
		if weight < 0 {
			return fmt.Errorf("%w: negative weight %d for %q", ErrInvalidMix, weight, op)
		}

		total += weight
	}

	if total == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidMix)
	}

	return nil
}
