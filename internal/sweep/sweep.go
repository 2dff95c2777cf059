// Package sweep runs every strategy over a range of worker counts on the
// same input and tabulates how the two scheduling policies scale.
package sweep

import (
	"context"
	"io"
	"slices"
	"time"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/orchestration"
	"github.com/agbru/workdist/internal/schedule"
)

// GenerateThreadCounts returns the worker counts to sweep: powers of two
// below maxThreads, then maxThreads itself. A single CPU yields [1].
func GenerateThreadCounts(maxThreads int) []int {
	if maxThreads < 1 {
		maxThreads = 1
	}
	var counts []int
	for t := 1; t < maxThreads; t *= 2 {
		counts = append(counts, t)
	}
	return append(counts, maxThreads)
}

// Point holds the runs of every strategy at one worker count.
type Point struct {
	Threads     int
	Results     []orchestration.RunResult
	Equivalence orchestration.EquivalenceReport
}

// Duration returns the elapsed time of the named strategy. ok is false when
// the strategy did not complete.
func (p Point) Duration(strategy string) (time.Duration, bool) {
	i := slices.IndexFunc(p.Results, func(r orchestration.RunResult) bool { return r.Name == strategy })
	if i < 0 || p.Results[i].Err != nil {
		return 0, false
	}
	return p.Results[i].Duration, true
}

// Run executes every registered strategy once per worker count. The context
// is consulted between runs only; on cancellation the points collected so
// far are returned with the context error.
func Run(ctx context.Context, factory *schedule.Factory, base schedule.Options, counts []int, positions []complex128, opts orchestration.ExecuteOptions) ([]Point, error) {
	points := make([]Point, 0, len(counts))
	for _, t := range counts {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		o := base
		o.Threads = t
		strategies, err := orchestration.GetStrategiesToRun("all", factory, o)
		if err != nil {
			return points, err
		}
		results := orchestration.ExecuteRuns(ctx, strategies, positions, opts, orchestration.NullProgressReporter{}, io.Discard)
		points = append(points, Point{
			Threads:     t,
			Results:     results,
			Equivalence: orchestration.CheckEquivalence(results),
		})
	}
	return points, ctx.Err()
}

// ExitCode maps the sweep outcome to an exit code: a failed run wins, then a
// mismatch under strict mode.
func ExitCode(points []Point, strict bool) int {
	mismatch := false
	for _, p := range points {
		for _, r := range p.Results {
			if r.Err != nil {
				if apperrors.IsContextError(r.Err) {
					return apperrors.ExitErrorCanceled
				}
				return apperrors.ExitErrorGeneric
			}
		}
		mismatch = mismatch || !p.Equivalence.Equivalent()
	}
	if mismatch && strict {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
