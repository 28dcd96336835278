package ubench

import "math"

// TailStats describes the upper tail of one sweep's per-call samples.
//
// A well-behaved routine produces samples clustered around the median
// with a short tail. Interrupts, page faults and frequency changes show up
// as a tail that drifts away from the median long before they move the
// mean or the CV much:
//
//	ratio := P99 / P50
//
//	ratio < 3    clustered, mean and median agree
//	ratio > 10   heavy tail, outliers dominate the mean
type TailStats struct {
	Samples   int
	P50       float64
	P99       float64
	P999      float64
	Max       float64
	TailRatio float64 // P99/P50; 1 when P50 is 0
	Alpha     float64 // Pareto index estimate; 0 when undefined
}

// Light reports whether the tail is short (TailRatio < 3).
func (s TailStats) Light() bool {
	return s.TailRatio < 3.0
}

// Heavy reports whether the tail dominates (TailRatio > 10).
func (s TailStats) Heavy() bool {
	return s.TailRatio > 10.0
}

// Percentile returns the p-th percentile (0 <= p <= 1) of an ascending
// sequence by nearest lower rank, or 0 for an empty one.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	i := int(float64(n-1) * p)
	i = max(0, min(i, n-1))
	return sorted[i]
}

// Tail computes TailStats over an ascending sequence.
func Tail(sorted []float64) TailStats {
	s := TailStats{
		Samples:   len(sorted),
		P50:       Percentile(sorted, 0.50),
		P99:       Percentile(sorted, 0.99),
		P999:      Percentile(sorted, 0.999),
		TailRatio: 1,
	}
	if len(sorted) > 0 {
		s.Max = sorted[len(sorted)-1]
	}

	if s.P50 > Epsilon {
		s.TailRatio = s.P99 / s.P50
	}
	// For Pareto: P99/P50 = (0.01/0.50)^(-1/alpha).
	if s.TailRatio > 1 {
		s.Alpha = math.Log(0.50/0.01) / math.Log(s.TailRatio)
	}
	return s
}

// Profile runs one sweep for arg and returns both its summary and its
// tail statistics.
func (b *Benchmark) Profile(arg Arg) (Entry, TailStats, error) {
	sorted, err := b.sortedSamples(arg)
	if err != nil {
		return Entry{}, TailStats{}, err
	}
	return b.entry(arg, sorted), Tail(sorted), nil
}
