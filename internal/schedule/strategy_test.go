package schedule

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/schedule/mocks"
	"github.com/agbru/workdist/internal/workload"
)

// countingEvaluator wraps a kernel and records how many times each position
// index was evaluated. Positions are encoded as their index in the real part.
type countingEvaluator struct {
	counts []int32
}

func newCountingEvaluator(n int) *countingEvaluator {
	return &countingEvaluator{counts: make([]int32, n)}
}

func (c *countingEvaluator) Eval(z complex128) float64 {
	atomic.AddInt32(&c.counts[int(real(z))], 1)
	return real(z) * 2
}

func (c *countingEvaluator) check(t *testing.T) {
	t.Helper()
	for i, n := range c.counts {
		if n != 1 {
			t.Fatalf("index %d evaluated %d times, want 1", i, n)
		}
	}
}

func indexPositions(n int) []complex128 {
	positions := make([]complex128, n)
	for i := range positions {
		positions[i] = complex(float64(i), 0)
	}
	return positions
}

func TestConcurrentCoverage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		threads int
	}{
		{"empty", 0, 4},
		{"single thread", 100, 1},
		{"more threads than work", 3, 16},
		{"typical", 10_000, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eval := newCountingEvaluator(tt.n)
			strategy := NewConcurrent(Options{Threads: tt.threads, Kernel: eval})
			positions := indexPositions(tt.n)
			out := make([]float64, tt.n)

			elapsed, cursor := strategy.run(positions, out)

			if elapsed < 0 {
				t.Errorf("negative elapsed time %v", elapsed)
			}
			if cursor.Claimed() != tt.n {
				t.Errorf("cursor claimed %d indices, want %d", cursor.Claimed(), tt.n)
			}
			eval.check(t)
			for i, v := range out {
				if v != float64(i)*2 {
					t.Fatalf("out[%d] = %v, want %v", i, v, float64(i)*2)
				}
			}
		})
	}
}

func TestParallelCoverage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		threads int
	}{
		{"empty", 0, 4},
		{"single thread", 100, 1},
		{"more threads than work", 3, 16},
		{"remainder", 10_007, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eval := newCountingEvaluator(tt.n)
			strategy := NewParallel(Options{Threads: tt.threads, Kernel: eval})
			positions := indexPositions(tt.n)
			out := make([]float64, tt.n)

			_, plan := strategy.run(positions, out)

			if len(plan) != tt.threads {
				t.Errorf("plan has %d ranges, want %d", len(plan), tt.threads)
			}
			if err := plan.Validate(tt.n); err != nil {
				t.Errorf("plan invalid: %v", err)
			}
			eval.check(t)
		})
	}
}

// TestSingleThreadClaimsInOrder verifies that with one worker the dynamic
// strategy degenerates to a sequential scan.
func TestSingleThreadClaimsInOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	eval := mocks.NewMockEvaluator(ctrl)

	positions := indexPositions(5)
	calls := make([]*gomock.Call, 0, len(positions))
	for _, z := range positions {
		calls = append(calls, eval.EXPECT().Eval(z).Return(real(z)+0.5))
	}
	gomock.InOrder(calls...)

	out := make([]float64, len(positions))
	NewConcurrent(Options{Threads: 1, Kernel: eval}).Run(positions, out)

	for i, v := range out {
		if v != float64(i)+0.5 {
			t.Errorf("out[%d] = %v, want %v", i, v, float64(i)+0.5)
		}
	}
}

// TestStrategiesEquivalent runs the concrete scenario from both strategies
// and requires bit-identical buffers.
func TestStrategiesEquivalent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		threads int
	}{
		{"even split", 16, 4},
		{"remainder", 17, 4},
		{"single thread", 17, 1},
		{"threads equal n", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			positions := workload.Ramp(tt.n, complex(0.1, 0.1), 0.01)
			opts := Options{Threads: tt.threads, Kernel: workload.NewKernel(1)}

			concurrent := make([]float64, tt.n)
			parallel := make([]float64, tt.n)
			NewConcurrent(opts).Run(positions, concurrent)
			NewParallel(opts).Run(positions, parallel)

			kernel := workload.NewKernel(1)
			for i := range positions {
				want := math.Float64bits(kernel.Eval(positions[i]))
				if math.Float64bits(concurrent[i]) != want {
					t.Errorf("concurrent[%d] = %v, want %v", i, concurrent[i], math.Float64frombits(want))
				}
				if math.Float64bits(parallel[i]) != want {
					t.Errorf("parallel[%d] = %v, want %v", i, parallel[i], math.Float64frombits(want))
				}
			}
		})
	}
}

func TestStrategiesEquivalent_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("concurrent and parallel outputs are bit-identical", prop.ForAll(
		func(n, threads int, seed uint64) bool {
			if threads > n && n > 0 {
				threads = n
			}
			positions := workload.Random(n, seed)
			opts := Options{Threads: threads, Kernel: workload.NewKernel(32)}
			a := make([]float64, n)
			b := make([]float64, n)
			NewConcurrent(opts).Run(positions, a)
			NewParallel(opts).Run(positions, b)
			for i := range a {
				if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 4000),
		gen.IntRange(1, 16),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestRunPanicsOnBufferMismatch(t *testing.T) {
	t.Parallel()
	for _, s := range []Strategy{
		NewConcurrent(Options{Threads: 2, Kernel: workload.NewKernel(1)}),
		NewParallel(Options{Threads: 2, Kernel: workload.NewKernel(1)}),
	} {
		t.Run(s.Name(), func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic for mismatched buffer length")
				}
			}()
			s.Run(make([]complex128, 4), make([]float64, 3))
		})
	}
}

func TestCheckCoveragePanicsWithPlanDefect(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected an error panic value, got %v", r)
		}
		var defect apperrors.PlanDefectError
		if !errors.As(err, &defect) {
			t.Fatalf("expected PlanDefectError, got %T", r)
		}
		if defect.Cursor != 16 || defect.N != 17 {
			t.Errorf("unexpected defect %+v", defect)
		}
	}()
	checkCoverage(16, 17)
}

func TestCheckCoverageAcceptsExactCover(t *testing.T) {
	t.Parallel()
	checkCoverage(17, 17)
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"zero threads", Options{Threads: 0, Kernel: workload.NewKernel(1)}, "threads"},
		{"negative threads", Options{Threads: -2, Kernel: workload.NewKernel(1)}, "threads"},
		{"nil kernel", Options{Threads: 1}, "kernel"},
	}
	for _, tt := range tests {
		err := tt.opts.Validate()
		var validationErr apperrors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("%s: Validate() = %v, want a ValidationError", tt.name, err)
			continue
		}
		if validationErr.Field != tt.field {
			t.Errorf("%s: Field = %q, want %q", tt.name, validationErr.Field, tt.field)
		}
	}
}

func TestLockOSThreadRun(t *testing.T) {
	t.Parallel()
	opts := Options{Threads: 4, Kernel: workload.NewKernel(8), LockOSThread: true}
	positions := workload.Random(1000, 7)
	a := make([]float64, len(positions))
	b := make([]float64, len(positions))
	NewConcurrent(opts).Run(positions, a)
	NewParallel(opts).Run(positions, b)
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			t.Fatalf("slot %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func BenchmarkStrategies(b *testing.B) {
	positions := workload.Random(100_000, workload.DefaultSeed)
	out := make([]float64, len(positions))
	opts := DefaultOptions()
	for _, s := range []Strategy{NewConcurrent(opts), NewParallel(opts)} {
		b.Run(s.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s.Run(positions, out)
			}
		})
	}
}
