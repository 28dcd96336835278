//go:build arm64

package ubench

// CNTVCT_EL0 ticks at the generic timer frequency, not the core clock.
const counterUnit = "tick"

// counterStart reads CNTVCT_EL0 after an ISB.
// Implemented in clock_arm64.s
//
//go:noescape
func counterStart() uint64

// counterStop reads CNTVCT_EL0 between two ISBs.
// Implemented in clock_arm64.s
//
//go:noescape
func counterStop() uint64
