package riverclip

import (
	"io"
	"runtime"
)

// BuildOptions controls batch region building and its error handling.
type BuildOptions struct {
	// Parallel enables concurrent per-point processing.
	// Points are independent, so no ordering guarantees are lost.
	Parallel bool

	// Workers specifies the number of worker goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes building to continue past points that fail
	// validation. Failed points keep their (empty) output slots and their
	// errors are collected. When false, the first error stops the batch
	// and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback invoked after each point is
	// processed (successfully or with error), with counts (done, total).
	Progress func(done, total int)

	// ErrorLog is an optional writer for per-point error details.
	ErrorLog io.Writer

	// CircleSteps is the number of chord segments per full circle when
	// buffering. If 0, a default of 64 is used.
	CircleSteps int
}

// DefaultBuildOptions returns build options with sensible defaults:
// parallel, one worker per CPU, per-point error isolation.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}
