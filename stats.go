package ubench

import "math"

// Epsilon is the magnitude below which a mean or a coefficient of
// variation is treated as zero.
const Epsilon = 1e-9

// Summary is the statistical reduction of one sample sequence.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
	CV     float64 // StdDev / Mean, 0 when |Mean| < Epsilon
}

// Mean returns the arithmetic average of samples, or 0 for no samples.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// Median returns the middle of an ascending sequence. Even-length input
// averages the two middle elements; empty input yields 0.
func Median(sorted []float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case n%2 == 1:
		return sorted[n/2]
	default:
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
}

// StdDev returns the population standard deviation of samples around mean:
// squared deviations are divided by the sample count, not count-1.
func StdDev(samples []float64, mean float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var variance float64
	for _, s := range samples {
		d := mean - s
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(samples)))
}

// CV returns the coefficient of variation stddev/mean. Vanishing-cost
// routines (|mean| < Epsilon) report 0.
func CV(stddev, mean float64) float64 {
	if math.Abs(mean) < Epsilon {
		return 0
	}
	return stddev / mean
}

// Summarize reduces an ascending sample sequence.
func Summarize(sorted []float64) Summary {
	m := Mean(sorted)
	sd := StdDev(sorted, m)
	return Summary{
		Mean:   m,
		Median: Median(sorted),
		StdDev: sd,
		CV:     CV(sd, m),
	}
}
