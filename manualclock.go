package ubench

// ManualClock is a deterministic Clock whose counter moves only when
// Advance is called. A routine under test advances it by its simulated
// cost, so baseline loops read as zero and every measurement is exact.
//
// Example:
//
//	clk := ubench.NewManualClock()
//	cfg := ubench.NewConfig("fixed", func(ubench.Arg) { clk.Advance(40) })
//	b, _ := ubench.New(cfg, ubench.WithClock(clk))
//	entry, _ := b.Sweep(1) // entry.Mean == 40, entry.CV == 0
//
// ManualClock is not safe for concurrent use, like the rest of the package.
type ManualClock struct {
	now uint64
}

// NewManualClock returns a ManualClock starting at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Advance moves the counter forward by n ticks.
func (c *ManualClock) Advance(n uint64) {
	c.now += n
}

// Now returns the current counter value.
func (c *ManualClock) Now() uint64 {
	return c.now
}

func (c *ManualClock) Start() uint64 { return c.now }

func (c *ManualClock) Stop() uint64 { return c.now }

func (c *ManualClock) Unit() string { return "tick" }
