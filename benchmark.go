package ubench

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Arg is the numeric argument passed to a benchmarked routine.
type Arg = int

// Target is the routine being measured. It should be cheap relative to the
// sweep (nanoseconds to microseconds) and free of side effects that change
// its own cost between calls.
type Target func(arg Arg)

// Prepare produces the arguments a benchmark is evaluated at.
type Prepare func() []Arg

// Config describes one benchmarked routine. The With* methods return a
// modified copy and never change the receiver.
type Config struct {
	Name      string
	Target    Target
	Prepare   Prepare // nil means no arguments and no results
	Iteration int     // total loop iterations per sweep (default 10000)
	Step      int     // sweep granularity (default 20)
	Warmup    bool    // run the warm-up controller before measuring (default true)
}

// NewConfig returns a Config with default iteration, step and warm-up.
func NewConfig(name string, target Target) Config {
	return Config{
		Name:      name,
		Target:    target,
		Iteration: 10000,
		Step:      20,
		Warmup:    true,
	}
}

// WithPrepare returns a copy of c using fn to produce arguments.
func (c Config) WithPrepare(fn Prepare) Config {
	c.Prepare = fn
	return c
}

// WithArgs returns a copy of c evaluated at the given fixed arguments.
func (c Config) WithArgs(args ...Arg) Config {
	fixed := append([]Arg(nil), args...)
	c.Prepare = func() []Arg { return append([]Arg(nil), fixed...) }
	return c
}

// WithIteration returns a copy of c with n total iterations per sweep.
func (c Config) WithIteration(n int) Config {
	c.Iteration = n
	return c
}

// WithStep returns a copy of c with sweep granularity n.
func (c Config) WithStep(n int) Config {
	c.Step = n
	return c
}

// WithWarmup returns a copy of c with warm-up enabled or disabled.
func (c Config) WithWarmup(enabled bool) Config {
	c.Warmup = enabled
	return c
}

// Validate reports ErrConfiguration if the sweep is empty.
func (c Config) Validate() error {
	if c.Step < 1 {
		return fmt.Errorf("%w: %s: step %d must be positive", ErrConfiguration, c.Name, c.Step)
	}
	if c.Iteration < c.Step {
		return fmt.Errorf("%w: %s: iteration %d < step %d", ErrConfiguration, c.Name, c.Iteration, c.Step)
	}
	return nil
}

// Entry is the summary of one (routine, argument) pair.
// Mean, Median and StdDev are in clock units per call.
type Entry struct {
	Name   string  `json:"name"`
	Arg    Arg     `json:"arg"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	CV     float64 `json:"cv"`
}

// Option configures a Benchmark or every benchmark of a Registry.
type Option func(*options)

type options struct {
	clock  Clock
	logger *slog.Logger
	cpu    int // -1: do not pin
}

func defaultOptions() options {
	return options{
		clock:  NewCounterClock(),
		logger: slog.Default(),
		cpu:    -1,
	}
}

// WithClock replaces the hardware counter, typically with a ManualClock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger used for warm-up warnings and progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCPU pins the measuring OS thread to the given CPU for the duration
// of Run. Pinning is only supported on Linux; elsewhere it is ignored.
func WithCPU(cpu int) Option {
	return func(o *options) { o.cpu = cpu }
}

// Benchmark owns one routine and its configuration and produces result
// entries for it.
type Benchmark struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger
	cpu    int
}

// New builds a Benchmark from cfg. It fails with ErrInvalidTarget when
// cfg has no target routine. The iteration/step invariant is checked when
// measuring, not here.
func New(cfg Config, opts ...Option) (*Benchmark, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, cfg.Name)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Benchmark{
		cfg:    cfg,
		clock:  o.clock,
		logger: o.logger.With("benchmark", cfg.Name),
		cpu:    o.cpu,
	}, nil
}

// Config returns the benchmark's configuration.
func (b *Benchmark) Config() Config {
	return b.cfg
}

// Name returns the routine name.
func (b *Benchmark) Name() string {
	return b.cfg.Name
}

// Unit returns the clock unit results are expressed in.
func (b *Benchmark) Unit() string {
	return b.clock.Unit()
}

// Run evaluates the benchmark once per argument produced by Prepare: an
// optional warm-up whose result is discarded, then one authoritative sweep.
func (b *Benchmark) Run() ([]Entry, error) {
	if b.cfg.Prepare == nil {
		return nil, nil
	}
	args := b.cfg.Prepare()

	if b.cpu >= 0 {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		restore, err := pinThread(b.cpu)
		if err != nil {
			b.logger.Warn("cannot pin thread", "cpu", b.cpu, "error", err)
		}
		defer restore()
	}

	entries := make([]Entry, 0, len(args))
	for _, arg := range args {
		if b.cfg.Warmup {
			if _, err := b.WarmUp(arg); err != nil {
				return entries, err
			}
		}

		entry, err := b.Sweep(arg)
		if err != nil {
			return entries, err
		}
		b.logger.Debug("measured", "arg", arg, "mean", entry.Mean, "cv", entry.CV)
		entries = append(entries, entry)
	}

	return entries, nil
}
