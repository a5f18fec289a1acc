package config

// Workload defaults.
const (
	DefaultWorkloadOps         = 100_000
	DefaultWorkloadSeed        = 1
	DefaultWorkloadReserve     = 0
	DefaultWorkloadMemoryLimit = "" // Unlimited.
	DefaultWorkloadVerify      = true
	DefaultWorkloadSampleEvery = 1_000
	DefaultWorkloadBaseline    = true
)

// DefaultWorkloadMix weights the operations drawn by the workload generator.
// Keys match workload.Op names.
func DefaultWorkloadMix() map[string]int {
	return map[string]int{
		"push_back":  30,
		"push_front": 20,
		"pop_back":   15,
		"pop_front":  20,
		"insert":     3,
		"erase":      2,
		"at":         10,
	}
}

// Report defaults.
const (
	DefaultReportColor = "auto"
	DefaultReportTitle = "circbuf workload"
)

// Telemetry defaults.
const (
	DefaultTelemetrySampleRatio     = 1.0
	DefaultTelemetryShutdownTimeout = 5
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)
