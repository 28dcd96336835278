package ubench

import "sort"

// Measure returns the per-call cost of the target at arg, averaged over
// iter calls, with the empty-loop baseline subtracted. Noise that makes
// the measured loop cheaper than the baseline yields 0, never a negative
// value. iter below 1 is treated as 1.
func (b *Benchmark) Measure(arg Arg, iter int) float64 {
	if iter < 1 {
		iter = 1
	}
	target := b.cfg.Target

	base := baseline(b.clock, iter)

	start := b.clock.Start()
	for i := 0; i < iter; i++ {
		target(arg)
		barrier()
	}
	stop := b.clock.Stop()
	raw := span(start, stop)

	var elapsed uint64
	if raw >= base {
		elapsed = raw - base
	}

	return float64(elapsed) / float64(iter)
}

// Samples runs the sweep for arg: one Measure at every multiple of Step up
// to Iteration, in increasing order, giving Iteration/Step samples. It
// fails with ErrConfiguration before any timing if Iteration < Step.
func (b *Benchmark) Samples(arg Arg) ([]float64, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	samples := make([]float64, b.cfg.Iteration/b.cfg.Step)
	for k := range samples {
		samples[k] = b.Measure(arg, (k+1)*b.cfg.Step)
	}
	return samples, nil
}

// Sweep measures arg over a full sweep and reduces it to an Entry.
func (b *Benchmark) Sweep(arg Arg) (Entry, error) {
	sorted, err := b.sortedSamples(arg)
	if err != nil {
		return Entry{}, err
	}
	return b.entry(arg, sorted), nil
}

func (b *Benchmark) sortedSamples(arg Arg) ([]float64, error) {
	samples, err := b.Samples(arg)
	if err != nil {
		return nil, err
	}
	sort.Float64s(samples)
	return samples, nil
}

func (b *Benchmark) entry(arg Arg, sorted []float64) Entry {
	s := Summarize(sorted)
	return Entry{
		Name:   b.cfg.Name,
		Arg:    arg,
		Mean:   s.Mean,
		Median: s.Median,
		StdDev: s.StdDev,
		CV:     s.CV,
	}
}
