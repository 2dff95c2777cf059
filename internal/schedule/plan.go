package schedule

import "fmt"

// Range is a contiguous, half-open slice [Start, Start+Len) of the index
// space assigned to a single worker.
type Range struct {
	Start int
	Len   int
}

// End returns the exclusive upper bound of the range.
func (r Range) End() int { return r.Start + r.Len }

// String renders the range as "[start,end)".
func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End()) }

// Plan is the ordered list of ranges used by the static strategy, one per
// worker.
type Plan []Range

// PartitionPlan splits [0, n) into exactly threads contiguous ranges. Every
// range has length n/threads, except the first one, which also absorbs the
// remainder n%threads.
//
// It panics if threads < 1.
func PartitionPlan(n, threads int) Plan {
	if threads < 1 {
		panic(fmt.Sprintf("schedule: invalid thread count %d", threads))
	}
	blockSize := n / threads
	remainder := n % threads

	plan := make(Plan, threads)
	position := 0
	for i := range plan {
		length := blockSize
		if i == 0 {
			length += remainder
		}
		plan[i] = Range{Start: position, Len: length}
		position += length
	}
	return plan
}

// Total returns the sum of all range lengths.
func (p Plan) Total() int {
	total := 0
	for _, r := range p {
		total += r.Len
	}
	return total
}

// Validate reports whether the plan covers [0, n) exactly once: ranges must
// be ordered, gap-free, non-overlapping and of non-negative length.
func (p Plan) Validate(n int) error {
	position := 0
	for i, r := range p {
		if r.Len < 0 {
			return fmt.Errorf("range %d %v has negative length", i, r)
		}
		if r.Start != position {
			return fmt.Errorf("range %d %v does not start at %d", i, r, position)
		}
		position = r.End()
	}
	if position != n {
		return fmt.Errorf("plan covers [0,%d), want [0,%d)", position, n)
	}
	return nil
}
