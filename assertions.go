package ubench

import (
	"fmt"
	"strings"
	"testing"
)

// AssertionConfig contains thresholds for measured entries.
type AssertionConfig struct {
	// Largest acceptable coefficient of variation (noise level).
	MaxCV float64

	// Largest acceptable relative gap between mean and median,
	// |mean-median|/median. A large gap means outliers dominate the mean.
	MaxSkew float64
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		MaxCV:   0.10, // 10% noise
		MaxSkew: 0.25, // mean within 25% of median
	}
}

// AssertNonNegative verifies that no statistic of any entry is negative.
func AssertNonNegative(t testing.TB, entries []Entry) {
	t.Helper()

	for _, e := range entries {
		if e.Mean < 0 || e.Median < 0 || e.StdDev < 0 || e.CV < 0 {
			t.Errorf("%s(%d): negative statistic: mean=%.2f median=%.2f stddev=%.2f cv=%.2f",
				e.Name, e.Arg, e.Mean, e.Median, e.StdDev, e.CV)
		}
	}
}

// AssertStable verifies each entry's noise is within cfg.
//
// Stability is judged on two properties:
//
//	cv <= MaxCV                          (samples agree with each other)
//	|mean - median| / median <= MaxSkew  (no outlier dominates the mean)
func AssertStable(t testing.TB, entries []Entry, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for _, e := range entries {
		if e.CV > cfg.MaxCV {
			failures = append(failures, fmt.Sprintf(
				"  %s(%d): cv=%.4f (max: %.4f)", e.Name, e.Arg, e.CV, cfg.MaxCV))
		}
		if e.Median > Epsilon {
			skew := (e.Mean - e.Median) / e.Median
			if skew < 0 {
				skew = -skew
			}
			if skew > cfg.MaxSkew {
				failures = append(failures, fmt.Sprintf(
					"  %s(%d): mean=%.2f median=%.2f skew=%.2f%% (max: %.2f%%)",
					e.Name, e.Arg, e.Mean, e.Median, skew*100, cfg.MaxSkew*100))
			}
		}
	}

	if len(failures) > 0 {
		t.Errorf("Measurements too noisy:\n%s", strings.Join(failures, "\n"))
	}
}

// AssertCheaperThan verifies every entry's median cost is below limit
// clock units per call.
func AssertCheaperThan(t testing.TB, entries []Entry, limit float64) {
	t.Helper()

	for _, e := range entries {
		if e.Median >= limit {
			t.Errorf("%s(%d): median %.2f per call, want < %.2f", e.Name, e.Arg, e.Median, limit)
		}
	}
}

// AssertLightTail verifies a profile's P99 stays within maxRatio times
// its median.
func AssertLightTail(t testing.TB, e Entry, s TailStats, maxRatio float64) {
	t.Helper()

	if s.TailRatio > maxRatio {
		t.Errorf("%s(%d): tail ratio %.2f (p50=%.2f p99=%.2f max=%.2f), want <= %.2f",
			e.Name, e.Arg, s.TailRatio, s.P50, s.P99, s.Max, maxRatio)
	}
}

// AssertConverged verifies a warm-up report reached a steady state.
func AssertConverged(t testing.TB, r WarmupReport) {
	t.Helper()

	if r.State != WarmupConverged {
		t.Errorf("%s(%d): warm-up %s after %d tries (continuous=%d, cv=%.4f)",
			r.Last.Name, r.Last.Arg, r.State, r.Tries, r.Continuous, r.Last.CV)
	}
}
