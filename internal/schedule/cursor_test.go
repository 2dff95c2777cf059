package schedule

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCursorSequential(t *testing.T) {
	t.Parallel()
	c := NewCursor(3)
	for want := 0; want < 3; want++ {
		got, ok := c.Next()
		if !ok || got != want {
			t.Fatalf("Next() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() should fail once the space is exhausted")
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() should keep failing after exhaustion")
	}
	if c.Claimed() != 3 {
		t.Errorf("Claimed() = %d, want 3", c.Claimed())
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCursorEmpty(t *testing.T) {
	t.Parallel()
	c := NewCursor(0)
	if _, ok := c.Next(); ok {
		t.Error("Next() on an empty cursor should fail")
	}
	if c.Claimed() != 0 {
		t.Errorf("Claimed() = %d, want 0", c.Claimed())
	}
}

// claimAll drains the cursor from the given number of goroutines and returns
// how many times each index was handed out.
func claimAll(c *Cursor, workers int) []int32 {
	counts := make([]int32, c.Len())
	var wg sync.WaitGroup
	barrier := make(chan struct{})
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			<-barrier
			for {
				i, ok := c.Next()
				if !ok {
					return
				}
				atomic.AddInt32(&counts[i], 1)
			}
		}()
	}
	close(barrier)
	wg.Wait()
	return counts
}

func TestCursorHighContention(t *testing.T) {
	for round := 0; round < 20; round++ {
		c := NewCursor(10_000)
		counts := claimAll(c, 64)
		for i, n := range counts {
			if n != 1 {
				t.Fatalf("round %d: index %d claimed %d times", round, i, n)
			}
		}
		if c.Claimed() != 10_000 {
			t.Fatalf("round %d: Claimed() = %d, want 10000", round, c.Claimed())
		}
	}
}

func TestCursorCoverage_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every index is claimed exactly once", prop.ForAll(
		func(n, workers int) bool {
			c := NewCursor(n)
			for _, count := range claimAll(c, workers) {
				if count != 1 {
					return false
				}
			}
			return c.Claimed() == n
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 32),
	))

	properties.TestingRun(t)
}
