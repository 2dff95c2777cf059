package sweep

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/orchestration"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/ui"
	"github.com/agbru/workdist/internal/workload"
)

func TestGenerateThreadCounts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		max  int
		want []int
	}{
		{0, []int{1}},
		{1, []int{1}},
		{2, []int{1, 2}},
		{6, []int{1, 2, 4, 6}},
		{8, []int{1, 2, 4, 8}},
		{12, []int{1, 2, 4, 8, 12}},
	}
	for _, tt := range tests {
		if got := GenerateThreadCounts(tt.max); !slices.Equal(got, tt.want) {
			t.Errorf("GenerateThreadCounts(%d) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	base := schedule.Options{Kernel: workload.NewKernel(4)}
	positions := workload.Random(257, workload.DefaultSeed)

	points, err := Run(context.Background(), schedule.NewDefaultFactory(), base, []int{1, 3}, positions,
		orchestration.ExecuteOptions{GCMode: "disabled"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	for _, p := range points {
		if len(p.Results) != 2 {
			t.Errorf("%d threads: got %d results, want one per strategy", p.Threads, len(p.Results))
		}
		for _, r := range p.Results {
			if r.Threads != p.Threads {
				t.Errorf("%s ran with %d threads, want %d", r.Name, r.Threads, p.Threads)
			}
		}
		if !p.Equivalence.Equivalent() {
			t.Errorf("%d threads: outputs differ: %+v", p.Threads, p.Equivalence.Mismatches)
		}
	}
	if code := ExitCode(points, true); code != apperrors.ExitSuccess {
		t.Errorf("ExitCode() = %d, want success", code)
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	base := schedule.Options{Kernel: workload.NewKernel(1)}

	points, err := Run(ctx, schedule.NewDefaultFactory(), base, []int{1, 2}, nil, orchestration.ExecuteOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(points) != 0 {
		t.Errorf("got %d points, want none", len(points))
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	ok := orchestration.RunResult{Name: "parallel"}
	differ := orchestration.EquivalenceReport{Compared: 2, Mismatches: []apperrors.MismatchError{{Count: 1}}}
	canceled := orchestration.RunResult{Name: "parallel", Err: apperrors.RunError{Strategy: "parallel", Cause: context.Canceled}}

	tests := []struct {
		name   string
		points []Point
		strict bool
		want   int
	}{
		{"clean", []Point{{Results: []orchestration.RunResult{ok}}}, true, apperrors.ExitSuccess},
		{"mismatch lenient", []Point{{Results: []orchestration.RunResult{ok}, Equivalence: differ}}, false, apperrors.ExitSuccess},
		{"mismatch strict", []Point{{Results: []orchestration.RunResult{ok}, Equivalence: differ}}, true, apperrors.ExitErrorMismatch},
		{"canceled", []Point{{Results: []orchestration.RunResult{canceled}}}, false, apperrors.ExitErrorCanceled},
		{"failed", []Point{{Results: []orchestration.RunResult{{Err: errors.New("x")}}}}, false, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.points, tt.strict); got != tt.want {
			t.Errorf("%s: ExitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPrintResults(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	points := []Point{
		{
			Threads: 2,
			Results: []orchestration.RunResult{
				{Name: schedule.ConcurrentName, Duration: 100 * time.Millisecond},
				{Name: schedule.ParallelName, Duration: 150 * time.Millisecond},
			},
		},
		{
			Threads: 4,
			Results: []orchestration.RunResult{
				{Name: schedule.ConcurrentName, Duration: 50 * time.Millisecond},
				{Name: schedule.ParallelName, Err: errors.New("skipped")},
			},
			Equivalence: orchestration.EquivalenceReport{
				Compared:   2,
				Mismatches: []apperrors.MismatchError{{Reference: "concurrent", Candidate: "parallel", Count: 1, FirstIndex: 3}},
			},
		},
	}
	var buf bytes.Buffer
	PrintResults(&buf, points)
	out := buf.String()

	for _, want := range []string{"Thread Sweep", "100 ms", "150 ms", "1.50x", "N/A", "n/a", "DIFFER", "4 threads"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}
