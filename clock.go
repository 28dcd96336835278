package ubench

// Clock reads a monotonic counter at the edges of a timed region.
//
// Start must not return before every earlier instruction has retired, and
// Stop must not let later instructions execute before the counter is read.
// Elapsed time is Stop() - Start().
type Clock interface {
	Start() uint64
	Stop() uint64
	// Unit names what one counter tick is, e.g. "cycle" or "ns".
	Unit() string
}

// CounterClock reads the hardware cycle counter.
//
// On amd64 it uses RDTSC behind an LFENCE to open the region and RDTSCP
// followed by LFENCE to close it. On arm64 it reads CNTVCT_EL0 between ISB
// barriers. Other architectures fall back to monotonic nanoseconds.
type CounterClock struct{}

// NewCounterClock returns the production clock for this architecture.
func NewCounterClock() *CounterClock {
	return &CounterClock{}
}

func (*CounterClock) Start() uint64 { return counterStart() }

func (*CounterClock) Stop() uint64 { return counterStop() }

func (*CounterClock) Unit() string { return counterUnit }

// span returns stop-start, or 0 when the counter appears to have gone
// backwards (core migration on machines without a synchronized TSC).
func span(start, stop uint64) uint64 {
	if stop < start {
		return 0
	}
	return stop - start
}
