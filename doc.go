// Package ubench measures the per-call cost of small, hot routines in CPU
// cycles.
//
// # Overview
//
// Traditional Go benchmarks report nanoseconds per operation from a single
// long loop. ubench instead reads the hardware cycle counter around many
// loops of increasing length, subtracts the cost of an empty loop of the
// same length, and summarizes the resulting per-call samples:
//
//   - Mean:   arithmetic average of the samples
//   - Median: middle sample (robust against outliers)
//   - StdDev: population standard deviation
//   - CV:     StdDev / Mean, a scale-free noise measure
//
// # Measurement
//
// One sample at iteration count n is:
//
//	base    = cycles(n × empty loop body)
//	raw     = cycles(n × target(arg))
//	sample  = max(raw - base, 0) / n
//
// A sweep takes Iteration/Step samples at n = Step, 2·Step, ..., Iteration.
// The counter is read with LFENCE+RDTSC at the start and RDTSCP+LFENCE at
// the end on amd64, so work cannot leak across the boundary through
// out-of-order execution. arm64 reads CNTVCT_EL0 between ISB barriers;
// other architectures fall back to monotonic nanoseconds.
//
// # Warm-up
//
// Before the authoritative sweep, each argument is swept repeatedly until
// the CV of consecutive sweeps changes by at most 10% three times in a row.
// After 64 comparisons without converging a warning is logged and the
// measurement proceeds anyway.
//
// # Quick Start
//
//	reg := ubench.NewRegistry()
//
//	reg.MustAdd(ubench.NewConfig("nth_prime", func(n ubench.Arg) {
//	    nthPrime(n)
//	}).WithArgs(5, 10, 15))
//
//	entries, err := reg.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.Markdown(os.Stdout, entries, reg.Unit())
//
// Output:
//
//	    name(arg) | mean (cycle) | median (cycle) | stddev (cycle) |   cv
//	-------------:|-------------:|---------------:|---------------:|----:
//	 nth_prime(5) |        61.35 |          60.90 |           2.01 | 0.03
//	...
//
// # Testing
//
// ManualClock replaces the hardware counter with a deterministic one that
// only moves when the routine under test advances it, so the sampler,
// statistics and warm-up logic can be tested without hardware noise:
//
//	clk := ubench.NewManualClock()
//	b, _ := ubench.New(ubench.NewConfig("fixed", func(ubench.Arg) {
//	    clk.Advance(40)
//	}), ubench.WithClock(clk))
//
// Assertions check measured entries from tests:
//
//	ubench.AssertNonNegative(t, entries)
//	ubench.AssertStable(t, entries, ubench.DefaultAssertionConfig())
//
// Profile returns the tail of one sweep as well. A P99 far above the median
// means interrupts or migrations hit the measurement:
//
//	entry, tail, _ := b.Profile(10)
//	ubench.AssertLightTail(t, entry, tail, 3)
//
// # Limitations
//
// All measurement happens in one goroutine in the current process. The
// harness does not correct for frequency scaling or thermal throttling and
// performs no hypothesis testing; use report.WriteBenchfmt and benchstat to
// compare runs.
package ubench
