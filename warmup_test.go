package ubench

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observeCVs(w *WarmupController, cvs ...float64) WarmupState {
	var s WarmupState
	for _, cv := range cvs {
		s = w.Observe(Entry{CV: cv})
	}
	return s
}

func TestWarmupController_ZeroValue(t *testing.T) {
	var w WarmupController

	if w.State() != WarmupMeasuring {
		t.Errorf("Expected MEASURING, got %s", w.State())
	}
	if w.Tries() != 0 || w.Continuous() != 0 {
		t.Errorf("Expected zero counters, got tries=%d continuous=%d", w.Tries(), w.Continuous())
	}
}

// TestWarmupController_FirstSweepIsReference verifies the first
// observation is not compared and does not count as a try.
func TestWarmupController_FirstSweepIsReference(t *testing.T) {
	var w WarmupController

	state := w.Observe(Entry{CV: 0.2})

	assert.Equal(t, WarmupMeasuring, state)
	assert.Zero(t, w.Tries())
	assert.Zero(t, w.Continuous())
}

func TestWarmupController_Converges(t *testing.T) {
	var w WarmupController

	// 5%, 4.8% and 2.5% relative changes: three stable comparisons.
	state := observeCVs(&w, 0.2, 0.21, 0.2, 0.205)

	assert.Equal(t, WarmupConverged, state)
	assert.Equal(t, 3, w.Tries())
	assert.Equal(t, 3, w.Continuous())
}

func TestWarmupController_UnstableResetsRun(t *testing.T) {
	var w WarmupController

	state := observeCVs(&w, 0.2, 0.21, 0.5)
	assert.Equal(t, WarmupMeasuring, state)
	assert.Zero(t, w.Continuous(), "a jump from 0.21 to 0.5 must reset the run")

	state = observeCVs(&w, 0.5, 0.5)
	assert.Equal(t, WarmupMeasuring, state)
	assert.Equal(t, 2, w.Continuous())

	state = w.Observe(Entry{CV: 0.5})
	assert.Equal(t, WarmupConverged, state)
	assert.Equal(t, 5, w.Tries())
}

func TestWarmupController_ZeroPreviousCV(t *testing.T) {
	t.Run("zero to zero is stable", func(t *testing.T) {
		var w WarmupController
		observeCVs(&w, 0, 0)
		assert.Equal(t, 1, w.Continuous())
	})

	t.Run("zero to nonzero is unstable", func(t *testing.T) {
		var w WarmupController
		observeCVs(&w, 0, 0, 0.3)
		assert.Zero(t, w.Continuous())
	})

	t.Run("below epsilon counts as zero", func(t *testing.T) {
		var w WarmupController
		observeCVs(&w, 1e-12, 5e-10)
		assert.Equal(t, 1, w.Continuous())
	})
}

func TestWarmupController_GivesUp(t *testing.T) {
	var w WarmupController

	// Alternating CVs are never within 10% of each other.
	state := w.Observe(Entry{CV: 0.1})
	for i := 0; i < MaxWarmupTries && state == WarmupMeasuring; i++ {
		cv := 0.5
		if i%2 == 1 {
			cv = 0.1
		}
		state = w.Observe(Entry{CV: cv})
	}

	assert.Equal(t, WarmupGaveUp, state)
	assert.Equal(t, MaxWarmupTries, w.Tries())

	// Terminal: further observations change nothing.
	assert.Equal(t, WarmupGaveUp, w.Observe(Entry{CV: 0.1}))
	assert.Equal(t, MaxWarmupTries, w.Tries())
}

// TestWarmUp_DeterministicConverges verifies a constant-cost routine under
// noise-free timing converges after the minimum number of tries.
func TestWarmUp_DeterministicConverges(t *testing.T) {
	clk := NewManualClock()
	cfg := NewConfig("busy", func(Arg) { clk.Advance(250) }).WithIteration(200).WithStep(20)
	b, err := New(cfg, WithClock(clk))
	require.NoError(t, err)

	report, err := b.WarmUp(3)
	require.NoError(t, err)

	AssertConverged(t, report)
	assert.Equal(t, StableRun, report.Tries)
	assert.Equal(t, 250.0, report.Last.Mean)
	assert.Zero(t, report.Last.CV)
	assert.Equal(t, 200, b.Config().Iteration, "warm-up must not alter the configuration")
	assert.Equal(t, 20, b.Config().Step)
}

// flipping returns a target whose sweeps alternate between a constant
// cost (cv 0) and a two-level cost (cv 0.5), so warm-up never converges.
// It assumes iteration 40 and step 20: 60 calls per sweep.
func flipping(clk *ManualClock) Target {
	calls := 0
	return func(Arg) {
		sweep, c := calls/60, calls%60
		calls++
		if sweep%2 == 1 && c >= 20 {
			clk.Advance(30)
			return
		}
		clk.Advance(10)
	}
}

func TestWarmUp_GivesUpWithWarning(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	clk := NewManualClock()
	cfg := NewConfig("flip", flipping(clk)).WithIteration(40).WithStep(20)
	b, err := New(cfg, WithClock(clk), WithLogger(logger))
	require.NoError(t, err)

	report, err := b.WarmUp(7)
	require.NoError(t, err, "giving up is not an error")

	assert.Equal(t, WarmupGaveUp, report.State)
	assert.Equal(t, MaxWarmupTries, report.Tries)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "failed to warm up")
	assert.Contains(t, logs.String(), "name=flip")
}

// TestRun_MeasuresAfterFailedWarmup verifies the authoritative sweep is
// still taken when warm-up gives up.
func TestRun_MeasuresAfterFailedWarmup(t *testing.T) {
	var logs bytes.Buffer
	clk := NewManualClock()
	cfg := NewConfig("flip", flipping(clk)).WithIteration(40).WithStep(20).WithArgs(1)
	b, err := New(cfg, WithClock(clk), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	entries, err := b.Run()
	require.NoError(t, err)

	require.Len(t, entries, 1)
	// 65 warm-up sweeps (0..64), then sweep 65 is a two-level one.
	assert.Equal(t, 20.0, entries[0].Mean)
	assert.Equal(t, 0.5, entries[0].CV)
	assert.Contains(t, logs.String(), "failed to warm up")
}

func TestWarmUp_ConfigurationError(t *testing.T) {
	b, err := New(NewConfig("bad", noop).WithIteration(5).WithStep(10), WithClock(NewManualClock()))
	require.NoError(t, err)

	_, err = b.WarmUp(1)
	assert.ErrorIs(t, err, ErrConfiguration)
}
