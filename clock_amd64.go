//go:build amd64

package ubench

const counterUnit = "cycle"

// counterStart executes LFENCE then RDTSC.
// Implemented in clock_amd64.s
//
//go:noescape
func counterStart() uint64

// counterStop executes RDTSCP then LFENCE.
// Implemented in clock_amd64.s
//
//go:noescape
func counterStop() uint64
