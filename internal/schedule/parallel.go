package schedule

import (
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/workdist/internal/errors"
)

// ParallelName is the registry name of the static strategy.
const ParallelName = "parallel"

// Parallel is the statically partitioned strategy: the index space is split
// into one contiguous block per worker before any worker starts, and workers
// never coordinate afterwards.
type Parallel struct {
	opts Options
}

// NewParallel creates the static strategy.
func NewParallel(opts Options) *Parallel {
	return &Parallel{opts: opts}
}

// Name returns "parallel".
func (p *Parallel) Name() string { return ParallelName }

// Threads returns the number of workers spawned per run.
func (p *Parallel) Threads() int { return p.opts.Threads }

// Run implements Strategy. It panics with an apperrors.PlanDefectError if the
// partition plan does not cover the positions exactly.
func (p *Parallel) Run(positions []complex128, out []float64) time.Duration {
	elapsed, _ := p.run(positions, out)
	return elapsed
}

// run executes one pass and also returns the plan it used.
func (p *Parallel) run(positions []complex128, out []float64) (time.Duration, Plan) {
	mustMatch(positions, out)
	kernel := p.opts.Kernel
	plan := PartitionPlan(len(positions), p.opts.Threads)

	work := func(r Range) func() {
		return func() {
			for i := r.Start; i < r.End(); i++ {
				out[i] = kernel.Eval(positions[i])
			}
		}
	}

	start := time.Now()
	var g errgroup.Group
	position := 0
	for _, r := range plan {
		g.Go(p.opts.worker(work(r)))
		position += r.Len
	}
	checkCoverage(position, len(positions))
	_ = g.Wait()
	return time.Since(start), plan
}

// checkCoverage aborts when the running partition cursor did not land exactly
// on n. Workers already spawned are not waited for.
func checkCoverage(position, n int) {
	if position != n {
		panic(apperrors.PlanDefectError{Cursor: position, N: n})
	}
}
