package schedule

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// ConcurrentName is the registry name of the dynamic strategy.
const ConcurrentName = "concurrent"

// Concurrent is the dynamically load-balanced strategy: every worker claims
// one index at a time from a shared atomic cursor until it is exhausted.
type Concurrent struct {
	opts Options
}

// NewConcurrent creates the dynamic strategy.
func NewConcurrent(opts Options) *Concurrent {
	return &Concurrent{opts: opts}
}

// Name returns "concurrent".
func (c *Concurrent) Name() string { return ConcurrentName }

// Threads returns the number of workers spawned per run.
func (c *Concurrent) Threads() int { return c.opts.Threads }

// Run implements Strategy.
func (c *Concurrent) Run(positions []complex128, out []float64) time.Duration {
	elapsed, _ := c.run(positions, out)
	return elapsed
}

// run executes one pass and also returns the cursor, so that callers can
// inspect how many indices were claimed.
func (c *Concurrent) run(positions []complex128, out []float64) (time.Duration, *Cursor) {
	mustMatch(positions, out)
	kernel := c.opts.Kernel
	cursor := NewCursor(len(positions))

	work := func() {
		for {
			i, ok := cursor.Next()
			if !ok {
				return
			}
			out[i] = kernel.Eval(positions[i])
		}
	}

	start := time.Now()
	var g errgroup.Group
	for range c.opts.Threads {
		g.Go(c.opts.worker(work))
	}
	_ = g.Wait()
	return time.Since(start), cursor
}
