// Package suite holds the built-in routines measured by the ubench CLI.
package suite

import (
	"fmt"

	"github.com/alexshd/ubench"
)

// sink keeps results observable so the routines are not optimized away.
var sink int

// Routine is a built-in benchmark target with its default arguments.
type Routine struct {
	Name        string
	Description string
	Target      ubench.Target
	Args        []ubench.Arg
}

// Config returns the routine's benchmark configuration with defaults.
func (r Routine) Config() ubench.Config {
	return ubench.NewConfig(r.Name, r.Target).WithArgs(r.Args...)
}

// Routines returns the built-in routines in registration order.
func Routines() []Routine {
	return []Routine{
		{
			Name:        "nth_prime",
			Description: "n-th prime by trial division",
			Target:      func(n ubench.Arg) { sink = NthPrime(n) },
			Args:        []ubench.Arg{5, 10, 15},
		},
		{
			Name:        "fib",
			Description: "n-th Fibonacci number, iterative",
			Target:      func(n ubench.Arg) { sink = Fib(n) },
			Args:        []ubench.Arg{10, 20, 40},
		},
		{
			Name:        "slice_sum",
			Description: "sum of the first n elements of a preallocated slice",
			Target:      func(n ubench.Arg) { sink = SliceSum(n) },
			Args:        []ubench.Arg{16, 256, 4096},
		},
	}
}

// Register adds every routine to reg. tune, if non-nil, adjusts each
// configuration before it is added.
func Register(reg *ubench.Registry, tune func(ubench.Config) ubench.Config) error {
	for _, r := range Routines() {
		cfg := r.Config()
		if tune != nil {
			cfg = tune(cfg)
		}
		if _, err := reg.Add(cfg); err != nil {
			return fmt.Errorf("register %s: %w", r.Name, err)
		}
	}
	return nil
}

// NthPrime returns the n-th prime (1-based) by trial division.
// NthPrime(1) is 2; n < 1 yields 0.
func NthPrime(n int) int {
	if n < 1 {
		return 0
	}
	count := 0
	for candidate := 2; ; candidate++ {
		if isPrime(candidate) {
			count++
			if count == n {
				return candidate
			}
		}
	}
}

func isPrime(v int) bool {
	for d := 2; d*d <= v; d++ {
		if v%d == 0 {
			return false
		}
	}
	return v >= 2
}

// Fib returns the n-th Fibonacci number with Fib(0) = 0.
func Fib(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

var data = func() []int {
	s := make([]int, 4096)
	for i := range s {
		s[i] = i
	}
	return s
}()

// SliceSum sums the first n elements of a fixed 4096-element slice
// holding 0..4095. n is clamped to the slice length.
func SliceSum(n int) int {
	n = max(0, min(n, len(data)))
	total := 0
	for _, v := range data[:n] {
		total += v
	}
	return total
}
