// SPDX-License-Identifier: MIT

package parallel

// Executor runs independent indexed tasks.
// Implementations must call fn exactly once per index unless an earlier
// task failed, and must return only after every started task has finished.
type Executor interface {
	// Workers is the maximum number of tasks in flight.
	Workers() int
	// ForEach runs fn(i) for i in [0,n) and returns the first error.
	ForEach(n int, fn func(i int) error) error
}

type sequential struct{}

// Sequential returns an Executor that runs tasks in index order on the
// calling goroutine. Results are bitwise reproducible regardless of GOMAXPROCS.
func Sequential() Executor { return sequential{} }

func (sequential) Workers() int { return 1 }

func (sequential) ForEach(n int, fn func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := fn(i); err != nil {
			return err
		}
	}

	return nil
}

// Range is the half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns Hi − Lo.
func (r Range) Len() int { return r.Hi - r.Lo }

// Chunks splits [0,n) into at most parts contiguous, non-empty ranges whose
// lengths differ by at most one (the first n%parts ranges are one longer).
// parts is clamped to [1, n]; n ≤ 0 yields nil.
//
// AI-Hints:
//   - Give each range its own accumulator, then fold the partials in slice
//     order so the final sum does not depend on scheduling.
func Chunks(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	size, rem := n/parts, n%parts
	out := make([]Range, parts)
	lo := 0
	for k := 0; k < parts; k++ {
		hi := lo + size
		if k < rem {
			hi++
		}
		out[k] = Range{Lo: lo, Hi: hi}
		lo = hi
	}

	return out
}
