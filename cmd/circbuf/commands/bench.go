package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/circbuf/pkg/config"
	"github.com/Sumatoshi-tech/circbuf/pkg/observability"
	"github.com/Sumatoshi-tech/circbuf/pkg/report"
	"github.com/Sumatoshi-tech/circbuf/pkg/safeconv"
	"github.com/Sumatoshi-tech/circbuf/pkg/version"
	"github.com/Sumatoshi-tech/circbuf/pkg/workload"
)

// slotBytes is the size of one workload element.
const slotBytes = strconv.IntSize / 8

// BenchCommand holds the flags of the bench command.
type BenchCommand struct {
	configPath  string
	jsonPath    string
	chartPath   string
	metricsAddr string
	colorMode   string
	linger      time.Duration
	ops         int
	reserve     int
	seed        uint64
	noBaseline  bool
	noVerify    bool
}

// NewBenchCommand creates the bench command.
func NewBenchCommand() *cobra.Command {
	bc := &BenchCommand{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a generated workload and report latencies",
		Long: `Run a seeded random workload against the buffer, optionally checked
step by step against a reference model, and print per-op latencies.

Examples:
  circbuf bench --ops 1000000 --seed 42
  circbuf bench --json report.json.lz4 --chart growth.html
  circbuf bench --metrics-addr :9464 --linger 30s`,
		Args: cobra.NoArgs,
		RunE: bc.run,
	}

	cmd.Flags().StringVar(&bc.configPath, "config", "", "Config file (default: search circbuf.yaml)")
	cmd.Flags().IntVar(&bc.ops, "ops", 0, "Number of operations")
	cmd.Flags().Uint64Var(&bc.seed, "seed", 0, "Workload seed")
	cmd.Flags().IntVar(&bc.reserve, "reserve", 0, "Capacity reserved before the run")
	cmd.Flags().StringVar(&bc.jsonPath, "json", "", "Write the report as JSON (\".lz4\" suffix compresses)")
	cmd.Flags().StringVar(&bc.chartPath, "chart", "", "Write an HTML growth chart")
	cmd.Flags().StringVar(&bc.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().DurationVar(&bc.linger, "linger", 0, "Keep serving metrics this long after the run")
	cmd.Flags().BoolVar(&bc.noBaseline, "no-baseline", false, "Skip the eapache/queue baseline")
	cmd.Flags().BoolVar(&bc.noVerify, "no-verify", false, "Skip reference model checks")
	cmd.Flags().StringVar(&bc.colorMode, "color", "", "Color output: auto, always, never")

	return cmd
}

func (bc *BenchCommand) run(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := config.LoadConfig(bc.configPath)
	if err != nil {
		return err
	}

	bc.applyFlags(cmd, cfg)

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()

	obsCfg, err := telemetryConfig(cfg, observability.ModeBench)
	if err != nil {
		return err
	}

	obsCfg.Prometheus = cfg.Telemetry.MetricsAddr != ""

	providers, err := observability.Init(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	defer func() {
		err = errors.Join(err, providers.Shutdown(context.WithoutCancel(ctx)))
	}()

	metrics, err := observability.NewBufferMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create buffer metrics: %w", err)
	}

	if cfg.Telemetry.MetricsAddr != "" {
		stop := serveMetrics(ctx, cfg.Telemetry.MetricsAddr, providers)
		defer func() {
			err = errors.Join(err, stop(bc.linger))
		}()
	}

	opts, err := workloadOptions(cfg.Workload)
	if err != nil {
		return err
	}

	runner := workload.NewRunner(
		workload.WithTracer(providers.Tracer),
		workload.WithMetrics(metrics),
		workload.WithLogger(providers.Logger),
	)

	rep, err := runner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("run workload: %w", err)
	}

	return writeReports(cmd, cfg.Report, rep)
}

// applyFlags overrides loaded values with flags set on the command line.
func (bc *BenchCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("ops") {
		cfg.Workload.Ops = bc.ops
	}

	if flags.Changed("seed") {
		cfg.Workload.Seed = bc.seed
	}

	if flags.Changed("reserve") {
		cfg.Workload.Reserve = bc.reserve
	}

	if flags.Changed("json") {
		cfg.Report.JSONPath = bc.jsonPath
	}

	if flags.Changed("chart") {
		cfg.Report.ChartPath = bc.chartPath
	}

	if flags.Changed("metrics-addr") {
		cfg.Telemetry.MetricsAddr = bc.metricsAddr
	}

	if flags.Changed("color") {
		cfg.Report.Color = bc.colorMode
	}

	if bc.noBaseline {
		cfg.Workload.Baseline = false
	}

	if bc.noVerify {
		cfg.Workload.Verify = false
	}
}

func telemetryConfig(cfg *config.Config, mode observability.AppMode) (observability.Config, error) {
	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == "json"
	obsCfg.ShutdownTimeoutSec = cfg.Telemetry.ShutdownTimeoutSec

	return obsCfg, nil
}

// serveMetrics starts the telemetry server in the background. The returned
// stop function waits linger, shuts the server down and reports its error.
func serveMetrics(ctx context.Context, addr string, providers observability.Providers) func(linger time.Duration) error {
	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)

	go func() {
		done <- observability.Serve(serveCtx, addr, observability.NewMux(providers.Tracer, providers.MetricsHandler), providers.Logger)
	}()

	return func(linger time.Duration) error {
		if linger > 0 {
			providers.Logger.InfoContext(ctx, "serving metrics after run", slog.Duration("linger", linger))

			select {
			case <-time.After(linger):
			case <-ctx.Done():
			case err := <-done:
				cancel()

				return err
			}
		}

		cancel()

		return <-done
	}
}

// workloadOptions converts the workload config. The memory limit bounds the
// buffer capacity at one slot per slotBytes.
func workloadOptions(w config.WorkloadConfig) (workload.Options, error) {
	mix, err := workload.ParseMix(w.Mix)
	if err != nil {
		return workload.Options{}, err
	}

	limit, err := w.MemoryLimitBytes()
	if err != nil {
		return workload.Options{}, err
	}

	maxCap := 0

	if limit > 0 {
		slots := limit / slotBytes
		if slots == 0 {
			return workload.Options{}, fmt.Errorf("%w: %q holds no elements", config.ErrInvalidMemoryLimit, w.MemoryLimit)
		}

		maxCap = safeconv.ClampUint64ToInt(slots)
	}

	return workload.Options{
		Mix:         mix,
		Ops:         w.Ops,
		Seed:        w.Seed,
		Reserve:     w.Reserve,
		MaxCapacity: maxCap,
		SampleEvery: w.SampleEvery,
		Verify:      w.Verify,
		Baseline:    w.Baseline,
	}, nil
}

func writeReports(cmd *cobra.Command, cfg config.ReportConfig, rep *workload.Report) error {
	report.SetColorMode(cfg.Color)

	err := report.WriteTable(cmd.OutOrStdout(), cfg.Title, rep)
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	if cfg.JSONPath != "" {
		err = report.WriteFile(cfg.JSONPath, rep)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if cfg.ChartPath != "" {
		err = writeChart(cfg.ChartPath, cfg.Title, rep)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeChart(path, title string, rep *workload.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	err = report.WriteChart(f, title, rep)
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	return nil
}
