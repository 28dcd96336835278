package ubench

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCost(clk *ManualClock, cost uint64) Target {
	return func(Arg) { clk.Advance(cost) }
}

// TestRegistry_RunInOrder verifies entries come out in registration order,
// one per argument.
func TestRegistry_RunInOrder(t *testing.T) {
	clk := NewManualClock()
	reg := NewRegistry(WithClock(clk))

	reg.MustAdd(NewConfig("second", fixedCost(clk, 20)).WithIteration(100).WithArgs(1, 2))
	reg.MustAdd(NewConfig("first", fixedCost(clk, 10)).WithIteration(100).WithArgs(5))

	assert.Equal(t, []string{"second", "first"}, reg.Names())
	assert.Equal(t, 2, reg.Len())

	entries, err := reg.Run()
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "second", entries[0].Name)
	assert.Equal(t, 1, entries[0].Arg)
	assert.Equal(t, "second", entries[1].Name)
	assert.Equal(t, 2, entries[1].Arg)
	assert.Equal(t, "first", entries[2].Name)
	assert.Equal(t, 10.0, entries[2].Mean)
}

func TestRegistry_AddInvalidTarget(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Add(NewConfig("nil", nil))

	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Zero(t, reg.Len(), "a rejected benchmark must not be registered")
}

func TestRegistry_AddDuplicate(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Add(NewConfig("dup", noop))
	require.NoError(t, err)

	_, err = reg.Add(NewConfig("dup", noop))

	assert.Error(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_MustAddPanics(t *testing.T) {
	reg := NewRegistry()

	assert.Panics(t, func() { reg.MustAdd(NewConfig("nil", nil)) })
}

// TestRegistry_FailureIsolated verifies one misconfigured benchmark does
// not prevent the others from running.
func TestRegistry_FailureIsolated(t *testing.T) {
	clk := NewManualClock()
	reg := NewRegistry(WithClock(clk))

	reg.MustAdd(NewConfig("ok-before", fixedCost(clk, 4)).WithIteration(100).WithArgs(1))
	reg.MustAdd(NewConfig("broken", fixedCost(clk, 4)).WithIteration(5).WithStep(10).WithArgs(1))
	reg.MustAdd(NewConfig("ok-after", fixedCost(clk, 8)).WithIteration(100).WithArgs(1))

	entries, err := reg.Run()

	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "broken")

	require.Len(t, entries, 2)
	assert.Equal(t, "ok-before", entries[0].Name)
	assert.Equal(t, "ok-after", entries[1].Name)
	assert.Equal(t, 8.0, entries[1].Mean)
}

func TestRegistry_RunMatching(t *testing.T) {
	clk := NewManualClock()
	reg := NewRegistry(WithClock(clk))

	reg.MustAdd(NewConfig("prime/nth", fixedCost(clk, 1)).WithIteration(40).WithArgs(1))
	reg.MustAdd(NewConfig("fib/rec", fixedCost(clk, 1)).WithIteration(40).WithArgs(1))
	reg.MustAdd(NewConfig("prime/sieve", fixedCost(clk, 1)).WithIteration(40).WithArgs(1))

	entries, err := reg.RunMatching(regexp.MustCompile(`^prime/`))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "prime/nth", entries[0].Name)
	assert.Equal(t, "prime/sieve", entries[1].Name)
}

func TestRegistry_Empty(t *testing.T) {
	entries, err := NewRegistry().Run()

	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegistry_Unit(t *testing.T) {
	assert.Equal(t, "tick", NewRegistry(WithClock(NewManualClock())).Unit())
	assert.Equal(t, NewCounterClock().Unit(), NewRegistry().Unit())
}
