//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

package schedule

import (
	"fmt"
	"runtime"
	"time"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/workload"
)

// Evaluator computes one output value from one input position. It must be
// pure: the same position always yields the same bits, and concurrent calls
// never interfere.
type Evaluator interface {
	Eval(z complex128) float64
}

// Strategy distributes the evaluation of every position across a fixed
// number of workers.
type Strategy interface {
	// Name returns the identifier of the strategy (e.g. "concurrent").
	Name() string
	// Threads returns the number of workers a run spawns.
	Threads() int
	// Run evaluates every position into the slot of out with the same
	// index and returns the elapsed time from the first spawn to the last
	// join. out must have the same length as positions.
	Run(positions []complex128, out []float64) time.Duration
}

// Options configures a strategy.
type Options struct {
	// Threads is the number of workers spawned per run. Must be >= 1.
	Threads int
	// Kernel is the per-element computation.
	Kernel Evaluator
	// LockOSThread wires each worker to its own OS thread for the
	// duration of the run.
	LockOSThread bool
}

// DefaultOptions returns options using every available CPU and the default
// kernel.
func DefaultOptions() Options {
	return Options{
		Threads: runtime.GOMAXPROCS(0),
		Kernel:  workload.NewKernel(workload.DefaultIterations),
	}
}

// Validate checks that the options can drive a run. Failures are
// apperrors.ValidationError values naming the offending field.
func (o Options) Validate() error {
	if o.Threads < 1 {
		return apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("must be at least 1, got %d", o.Threads)}
	}
	if o.Kernel == nil {
		return apperrors.ValidationError{Field: "kernel", Message: "must not be nil"}
	}
	return nil
}

// worker wraps a worker body for an errgroup, pinning it to an OS thread
// when requested. Worker bodies never fail.
func (o Options) worker(body func()) func() error {
	return func() error {
		if o.LockOSThread {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
		}
		body()
		return nil
	}
}

// mustMatch panics when the buffers cannot be paired slot for slot.
func mustMatch(positions []complex128, out []float64) {
	if len(positions) != len(out) {
		panic(fmt.Sprintf("schedule: output buffer has %d slots for %d positions", len(out), len(positions)))
	}
}
