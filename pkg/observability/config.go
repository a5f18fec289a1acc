// Package observability wires OpenTelemetry tracing and metrics and the
// structured slog logger used by the circbuf command line tools.
package observability

import "log/slog"

// AppMode identifies which command the process is running.
type AppMode string

const (
	// ModeCLI is the default for short commands (validate, version).
	ModeCLI AppMode = "cli"
	// ModeBench is the workload benchmark.
	ModeBench AppMode = "bench"
	// ModeReplay is scenario replay.
	ModeReplay AppMode = "replay"
)

const (
	defaultServiceName        = "circbuf"
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment ("ci", "dev", ...).
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables OTLP export.
	OTLPEndpoint string

	// OTLPHeaders are extra gRPC metadata headers for the OTLP exporters.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the root trace sampling ratio. Zero samples everything.
	SampleRatio float64

	// Prometheus attaches a Prometheus reader to the meter provider and
	// exposes it as Providers.MetricsHandler.
	Prometheus bool

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON switches the log handler from text to JSON.
	LogJSON bool

	// ShutdownTimeoutSec bounds the flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup: no export,
// info-level text logs.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
