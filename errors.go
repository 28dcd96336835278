package ubench

import "errors"

var (
	// ErrInvalidTarget is returned when a benchmark is built without a
	// target routine.
	ErrInvalidTarget = errors.New("ubench: target not specified")

	// ErrConfiguration is returned when a benchmark's iteration count is
	// smaller than its step. No timing happens in that case.
	ErrConfiguration = errors.New("ubench: step cannot be greater than iteration")
)
