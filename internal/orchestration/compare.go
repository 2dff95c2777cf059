package orchestration

import (
	"math"

	apperrors "github.com/agbru/workdist/internal/errors"
)

// Diff describes how two output buffers differ.
type Diff struct {
	// Count is the number of differing slots. When the lengths differ it
	// is the length difference.
	Count int
	// FirstIndex is the lowest differing index, or -1 when there is none
	// or when the lengths differ.
	FirstIndex int
}

// Equal reports whether the buffers are identical.
func (d Diff) Equal() bool { return d.Count == 0 }

// CompareOutputs compares a and b bit for bit. NaN equals NaN when the bits
// match, and 0 differs from -0.
func CompareOutputs(a, b []float64) Diff {
	if len(a) != len(b) {
		n := len(a) - len(b)
		if n < 0 {
			n = -n
		}
		return Diff{Count: n, FirstIndex: -1}
	}
	d := Diff{FirstIndex: -1}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			if d.Count == 0 {
				d.FirstIndex = i
			}
			d.Count++
		}
	}
	return d
}

// EquivalenceReport is the outcome of comparing every successful run with
// the first successful one.
type EquivalenceReport struct {
	// Reference is the strategy the others were compared with.
	Reference string
	// Compared is the number of successful runs, reference included.
	Compared int
	// Mismatches holds one entry per run whose output differs.
	Mismatches []apperrors.MismatchError
}

// Equivalent reports whether every compared output matched the reference.
func (r EquivalenceReport) Equivalent() bool { return len(r.Mismatches) == 0 }

// MismatchCount returns the total number of differing slots.
func (r EquivalenceReport) MismatchCount() int {
	total := 0
	for _, m := range r.Mismatches {
		total += m.Count
	}
	return total
}

// CheckEquivalence compares the outputs of every successful run.
func CheckEquivalence(results []RunResult) EquivalenceReport {
	var report EquivalenceReport
	var reference []float64
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		report.Compared++
		if report.Compared == 1 {
			report.Reference, reference = r.Name, r.Output
			continue
		}
		if d := CompareOutputs(reference, r.Output); !d.Equal() {
			report.Mismatches = append(report.Mismatches, apperrors.MismatchError{
				Reference:  report.Reference,
				Candidate:  r.Name,
				Count:      d.Count,
				FirstIndex: d.FirstIndex,
			})
		}
	}
	return report
}
