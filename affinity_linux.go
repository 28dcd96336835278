//go:build linux

package ubench

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pinThread restricts the calling OS thread to cpu and returns a function
// restoring the previous affinity. The caller must hold
// runtime.LockOSThread until restore has run.
func pinThread(cpu int) (restore func(), err error) {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return func() {}, fmt.Errorf("sched_getaffinity: %w", err)
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return func() {}, fmt.Errorf("sched_setaffinity cpu %d: %w", cpu, err)
	}

	return func() { _ = unix.SchedSetaffinity(0, &prev) }, nil
}
