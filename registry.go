package ubench

import (
	"errors"
	"fmt"
	"regexp"
)

// Registry holds benchmarks in the order they were added and runs them.
// Nothing is registered at package initialization; the run order is the
// order of Add calls.
type Registry struct {
	opts       []Option
	benchmarks []*Benchmark
	names      map[string]struct{}
}

// NewRegistry creates an empty registry. opts are applied to every
// benchmark added to it.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:  opts,
		names: make(map[string]struct{}),
	}
}

// Add builds a benchmark from cfg and appends it. It fails immediately
// with ErrInvalidTarget if cfg has no target, and rejects duplicate names.
// The returned Benchmark is already registered.
func (r *Registry) Add(cfg Config) (*Benchmark, error) {
	if _, dup := r.names[cfg.Name]; dup {
		return nil, fmt.Errorf("ubench: benchmark %q already registered", cfg.Name)
	}

	b, err := New(cfg, r.opts...)
	if err != nil {
		return nil, err
	}

	r.names[cfg.Name] = struct{}{}
	r.benchmarks = append(r.benchmarks, b)
	return b, nil
}

// MustAdd is like Add but panics on error.
func (r *Registry) MustAdd(cfg Config) *Benchmark {
	b, err := r.Add(cfg)
	if err != nil {
		panic(fmt.Sprintf("ubench: register failed: %v", err))
	}
	return b
}

// Names returns the registered benchmark names in run order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.benchmarks))
	for i, b := range r.benchmarks {
		names[i] = b.Name()
	}
	return names
}

// Unit returns the clock unit entries of this registry are expressed in.
func (r *Registry) Unit() string {
	o := defaultOptions()
	for _, opt := range r.opts {
		opt(&o)
	}
	return o.clock.Unit()
}

// Len returns the number of registered benchmarks.
func (r *Registry) Len() int {
	return len(r.benchmarks)
}

// Run runs every registered benchmark and concatenates their entries.
//
// A failing benchmark does not stop the others: its error is wrapped with
// the benchmark name and joined into the returned error, and the entries
// it produced before failing are kept.
func (r *Registry) Run() ([]Entry, error) {
	return r.RunMatching(nil)
}

// RunMatching is like Run but only runs benchmarks whose name matches
// pattern. A nil pattern matches everything.
func (r *Registry) RunMatching(pattern *regexp.Regexp) ([]Entry, error) {
	var (
		entries []Entry
		errs    []error
	)

	for _, b := range r.benchmarks {
		if pattern != nil && !pattern.MatchString(b.Name()) {
			continue
		}

		got, err := b.Run()
		entries = append(entries, got...)
		if err != nil {
			b.logger.Error("benchmark failed", "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}

	return entries, errors.Join(errs...)
}
