package workload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eapache/queue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/circbuf/pkg/circbuf"
	"github.com/Sumatoshi-tech/circbuf/pkg/observability"
)

// ctxCheckInterval is how many steps run between cancellation checks.
const ctxCheckInterval = 1024

// Result names.
const (
	NameBuffer   = "circbuf"
	NameBaseline = "eapache/queue"
)

// ErrInvalidOptions is returned by Run for unusable Options.
var ErrInvalidOptions = errors.New("invalid workload options")

// Options configures one workload run.
type Options struct {
	Mix         Mix
	Ops         int
	Seed        uint64
	Reserve     int
	MaxCapacity int // 0 means unlimited.
	SampleEvery int
	Verify      bool
	Baseline    bool
}

// Sample is the buffer shape after a given step.
type Sample struct {
	Step int `json:"step"`
	Len  int `json:"len"`
	Cap  int `json:"cap"`
}

// Result is the outcome of running a plan on one container.
type Result struct {
	Name     string              `json:"name"`
	Executed int                 `json:"executed"`
	Skipped  int                 `json:"skipped"`  // Not applicable: pops on empty, ops the container lacks.
	Rejected int                 `json:"rejected"` // Refused with circbuf.ErrCapacityExceeded.
	Elapsed  time.Duration       `json:"elapsed_ns"`
	Latency  map[Op]Latency      `json:"latency"`
	Stats    *circbuf.Stats      `json:"stats,omitempty"`
	Grows    []circbuf.GrowEvent `json:"grows,omitempty"`
	Samples  []Sample            `json:"samples,omitempty"`
}

// OpsPerSecond is the executed-op throughput, or 0 for an instant run.
func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}

	return float64(r.Executed) / r.Elapsed.Seconds()
}

// Report is the output of Run.
type Report struct {
	Seed      uint64    `json:"seed"`
	Ops       int       `json:"ops"`
	Verified  bool      `json:"verified"`
	StartedAt time.Time `json:"started_at"`
	Buffer    Result    `json:"buffer"`
	Baseline  *Result   `json:"baseline,omitempty"`
}

// Runner executes workloads.
type Runner struct {
	tracer  trace.Tracer
	metrics *observability.BufferMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracer records a span per run and per container.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithMetrics records growth events and per-op latency on bm.
func WithMetrics(bm *observability.BufferMetrics) Option {
	return func(r *Runner) { r.metrics = bm }
}

// WithLogger sets the logger for run summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a Runner. Without options it traces to a no-op tracer
// and discards logs.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		tracer: nooptrace.NewTracerProvider().Tracer(""),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run generates the plan for opts and executes it on a circbuf.Buffer and,
// when opts.Baseline is set, on an eapache/queue. It stops with ctx.Err()
// when ctx is cancelled, and with ErrMismatch when verification fails.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	switch {
	case opts.Ops <= 0:
		return nil, fmt.Errorf("%w: ops %d", ErrInvalidOptions, opts.Ops)
	case opts.SampleEvery <= 0:
		return nil, fmt.Errorf("%w: sample every %d", ErrInvalidOptions, opts.SampleEvery)
	case len(opts.Mix) == 0:
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, ErrEmptyMix)
	}

	ctx, span := r.tracer.Start(ctx, "workload.Run", trace.WithAttributes(
		attribute.Int64("workload.seed", int64(opts.Seed)), //nolint:gosec // Seeds are attribute labels only.
		attribute.Int("workload.ops", opts.Ops),
	))
	defer span.End()

	report := &Report{
		Seed:      opts.Seed,
		Ops:       opts.Ops,
		Verified:  opts.Verify,
		StartedAt: r.now(),
	}

	steps := Generate(opts.Seed, opts.Ops, opts.Mix)

	res, err := r.runBuffer(ctx, steps, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	report.Buffer = res

	if opts.Baseline {
		base, err := r.runBaseline(ctx, steps)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return nil, err
		}

		report.Baseline = &base
	}

	r.logger.InfoContext(ctx, "workload finished",
		slog.Uint64("seed", opts.Seed),
		slog.Int("ops", opts.Ops),
		slog.Int("len", res.Stats.Len),
		slog.Int("cap", res.Stats.Cap),
		slog.Int64("grows", res.Stats.Grows),
		slog.Int("rejected", res.Rejected),
		slog.Duration("elapsed", res.Elapsed),
	)

	return report, nil
}

// recorder accumulates per-op timings for one container.
type recorder struct {
	res     *Result
	timings map[Op][]time.Duration
}

func newRecorder(name string) *recorder {
	return &recorder{
		res:     &Result{Name: name, Latency: map[Op]Latency{}},
		timings: map[Op][]time.Duration{},
	}
}

func (rc *recorder) executed(op Op, d time.Duration) {
	rc.res.Executed++
	rc.timings[op] = append(rc.timings[op], d)
	rc.res.Elapsed += d
}

func (rc *recorder) finish() Result {
	for op, ds := range rc.timings {
		rc.res.Latency[op] = summarize(ds)
	}

	return *rc.res
}

func (r *Runner) runBuffer(ctx context.Context, steps []Step, opts Options) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "workload.buffer")
	defer span.End()

	rc := newRecorder(NameBuffer)

	observer := circbuf.ObserverFunc(func(ev circbuf.GrowEvent) {
		rc.res.Grows = append(rc.res.Grows, ev)

		if r.metrics != nil {
			r.metrics.ObserveGrow(ev)
		}

		r.logger.DebugContext(ctx, "buffer grew",
			slog.String("reason", string(ev.Reason)),
			slog.Int("old_cap", ev.OldCap),
			slog.Int("new_cap", ev.NewCap),
		)
	})

	b := circbuf.New(
		circbuf.WithMaxCapacity[int](opts.MaxCapacity),
		circbuf.WithObserver[int](observer),
	)

	if opts.Reserve > 0 {
		if err := b.Reserve(opts.Reserve); err != nil {
			return Result{}, fmt.Errorf("reserve %d: %w", opts.Reserve, err)
		}
	}

	var ref *model
	if opts.Verify {
		ref = &model{}
	}

	var sink int

	for i, st := range steps {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("workload interrupted at step %d: %w", i, err)
			}
		}

		start := time.Now()
		applied, out, err := applyBuffer(b, st)
		d := time.Since(start)

		switch {
		case errors.Is(err, circbuf.ErrCapacityExceeded):
			rc.res.Rejected++
		case err != nil:
			return Result{}, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		case !applied:
			rc.res.Skipped++
		default:
			rc.executed(st.Op, d)

			sink += out
		}

		if r.metrics != nil && (applied || err != nil) {
			r.metrics.RecordOp(ctx, string(st.Op), d, err)
		}

		if ref != nil && applied && err == nil {
			if err := ref.apply(st, out, i); err != nil {
				return Result{}, err
			}

			if err := ref.checkEdges(b, i); err != nil {
				return Result{}, err
			}
		}

		if (i+1)%opts.SampleEvery == 0 || i == len(steps)-1 {
			rc.res.Samples = append(rc.res.Samples, Sample{Step: i + 1, Len: b.Len(), Cap: b.Cap()})

			if ref != nil {
				if err := ref.check(b, i); err != nil {
					return Result{}, err
				}
			}
		}
	}

	_ = sink

	stats := b.Stats()
	rc.res.Stats = &stats

	span.SetAttributes(
		attribute.Int("buffer.len", stats.Len),
		attribute.Int("buffer.cap", stats.Cap),
		attribute.Int64("buffer.grows", stats.Grows),
	)

	return rc.finish(), nil
}

// applyBuffer runs st on b. It reports whether the op applied and, for
// reads and pops, the value observed.
func applyBuffer(b *circbuf.Buffer[int], st Step) (bool, int, error) {
	n := b.Len()

	switch st.Op {
	case OpPushBack:
		return true, 0, b.PushBack(st.Value)
	case OpPushFront:
		return true, 0, b.PushFront(st.Value)
	case OpInsert:
		return true, 0, b.InsertAt(st.index(n+1), st.Value)
	}

	if n == 0 {
		return false, 0, nil
	}

	switch st.Op {
	case OpPopBack:
		return true, b.PopBack(), nil
	case OpPopFront:
		return true, b.PopFront(), nil
	case OpErase:
		i := st.index(n)
		v := b.At(i)
		b.EraseAt(i)

		return true, v, nil
	case OpAt:
		return true, b.At(st.index(n)), nil
	}

	return false, 0, fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
}

// apply mirrors st on the model. out is the value the buffer produced, and
// must match for pops, erases and reads.
func (m *model) apply(st Step, out, step int) error {
	n := m.len()

	var want int

	switch st.Op {
	case OpPushBack:
		m.pushBack(st.Value)

		return nil
	case OpPushFront:
		m.pushFront(st.Value)

		return nil
	case OpInsert:
		m.insert(st.index(n+1), st.Value)

		return nil
	case OpPopBack:
		want = m.popBack()
	case OpPopFront:
		want = m.popFront()
	case OpErase:
		i := st.index(n)
		want = m.at(i)
		m.erase(i)
	case OpAt:
		want = m.at(st.index(n))
	}

	if out != want {
		return fmt.Errorf("%w at step %d: %s produced %d, want %d", ErrMismatch, step, st.Op, out, want)
	}

	return nil
}

// runBaseline replays the FIFO-compatible subset of steps on eapache/queue:
// push_back, pop_front and at. The rest count as skipped.
func (r *Runner) runBaseline(ctx context.Context, steps []Step) (Result, error) {
	_, span := r.tracer.Start(ctx, "workload.baseline")
	defer span.End()

	rc := newRecorder(NameBaseline)
	q := queue.New()

	var sink int

	for i, st := range steps {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("baseline interrupted at step %d: %w", i, err)
			}
		}

		n := q.Length()

		start := time.Now()

		switch {
		case st.Op == OpPushBack:
			q.Add(st.Value)
		case st.Op == OpPopFront && n > 0:
			v, _ := q.Remove().(int)
			sink += v
		case st.Op == OpAt && n > 0:
			v, _ := q.Get(st.index(n)).(int)
			sink += v
		default:
			rc.res.Skipped++

			continue
		}

		rc.executed(st.Op, time.Since(start))
	}

	_ = sink

	return rc.finish(), nil
}
