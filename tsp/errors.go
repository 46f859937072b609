// ABOUTME: Error kinds for the solver: invalid configuration and allocation failure
// ABOUTME: DeadlineReached and NoImprovementFound are normal terminal conditions, not errors

package tsp

import "fmt"

// ErrInvalidConfig is returned synchronously, before any work starts, for
// configuration values that can never produce a valid search: N < 3,
// worker count < 1, a non-positive deadline, or an unknown algorithm.
var ErrInvalidConfig = fmt.Errorf("invalid config")

// ErrAllocationFailure marks a fatal per-worker error (e.g. a buffer that
// could not be allocated). It aborts the whole run; workers never retry.
var ErrAllocationFailure = fmt.Errorf("allocation failure")

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

func allocationFailuref(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrAllocationFailure}, args...)...)
}
