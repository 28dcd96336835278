package ubench

import "math"

const (
	// StabilityTolerance is the largest relative change in CV between two
	// consecutive sweeps that still counts as stable.
	StabilityTolerance = 0.1

	// StableRun is the number of consecutive stable comparisons needed to
	// consider a benchmark warmed up.
	StableRun = 3

	// MaxWarmupTries bounds the number of comparisons before giving up.
	MaxWarmupTries = 64
)

// WarmupState is the warm-up controller's state.
type WarmupState string

const (
	WarmupMeasuring WarmupState = "MEASURING" // still looking for a stable CV
	WarmupConverged WarmupState = "CONVERGED" // StableRun consecutive stable readings
	WarmupGaveUp    WarmupState = "GAVE_UP"   // MaxWarmupTries reached without converging
)

// WarmupController decides when repeated sweeps have reached a steady
// state, judged by the coefficient of variation of consecutive sweeps.
//
// The zero value is ready to use and starts in WarmupMeasuring.
type WarmupController struct {
	previous   *Entry
	continuous int
	tries      int
	state      WarmupState
}

// State returns the current state.
func (w *WarmupController) State() WarmupState {
	if w.state == "" {
		return WarmupMeasuring
	}
	return w.state
}

// Tries returns the number of comparisons made so far. The first sweep is
// a reference only and is not counted.
func (w *WarmupController) Tries() int {
	return w.tries
}

// Continuous returns the current run of consecutive stable comparisons.
func (w *WarmupController) Continuous() int {
	return w.continuous
}

// Observe feeds the entry of one sweep and returns the resulting state.
// Once a terminal state is reached further observations are ignored.
func (w *WarmupController) Observe(current Entry) WarmupState {
	if s := w.State(); s != WarmupMeasuring {
		return s
	}

	if w.previous == nil {
		w.previous = &current
		return WarmupMeasuring
	}

	if stable(w.previous.CV, current.CV) {
		w.continuous++
	} else {
		w.continuous = 0
	}
	w.previous = &current
	w.tries++

	switch {
	case w.continuous >= StableRun:
		w.state = WarmupConverged
	case w.tries >= MaxWarmupTries:
		w.state = WarmupGaveUp
	}
	return w.State()
}

// stable reports whether the CV moved by at most StabilityTolerance
// relative to its previous value. A zero previous CV is only matched by a
// zero current CV.
func stable(previous, current float64) bool {
	if math.Abs(previous) < Epsilon {
		return math.Abs(current) < Epsilon
	}
	return math.Abs(previous-current)/math.Abs(previous) <= StabilityTolerance
}

// WarmupReport describes how a warm-up ended.
type WarmupReport struct {
	State      WarmupState
	Tries      int
	Continuous int
	Last       Entry // entry of the final warm-up sweep
}

// WarmUp sweeps arg repeatedly until the CV settles or MaxWarmupTries
// comparisons have been made. Giving up is not an error: a warning naming
// the routine is logged and the caller is expected to measure anyway.
// Only ErrConfiguration from the sweep itself is returned.
func (b *Benchmark) WarmUp(arg Arg) (WarmupReport, error) {
	var (
		ctrl WarmupController
		last Entry
	)

	for ctrl.State() == WarmupMeasuring {
		current, err := b.Sweep(arg)
		if err != nil {
			return WarmupReport{}, err
		}
		last = current
		ctrl.Observe(current)
	}

	report := WarmupReport{
		State:      ctrl.State(),
		Tries:      ctrl.Tries(),
		Continuous: ctrl.Continuous(),
		Last:       last,
	}

	if report.State == WarmupGaveUp {
		b.logger.Warn("benchmark failed to warm up correctly due to too many tries",
			"name", b.cfg.Name,
			"arg", arg,
			"tries", report.Tries,
			"cv", last.CV)
	} else {
		b.logger.Debug("warmed up", "arg", arg, "tries", report.Tries, "cv", last.CV)
	}

	return report, nil
}
