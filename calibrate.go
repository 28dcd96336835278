package ubench

// barrier is an opaque call the compiler can neither inline nor remove.
// Both the baseline and the measured loop call it once per iteration.
//
//go:noinline
func barrier() {}

// baseline returns the counter span of iter empty loop iterations.
// It is re-measured immediately before every sample, never cached.
func baseline(clock Clock, iter int) uint64 {
	start := clock.Start()
	for i := 0; i < iter; i++ {
		barrier()
	}
	stop := clock.Stop()
	return span(start, stop)
}
