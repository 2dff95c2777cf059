package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/workdist/internal/memory"
)

// RunResult encapsulates the outcome of a single strategy run.
type RunResult struct {
	// Name is the identifier of the strategy (e.g. "parallel").
	Name string
	// Threads is the number of workers the run spawned.
	Threads int
	// Output holds one value per position. It is nil if the run did not
	// take place.
	Output []float64
	// Duration is the elapsed time reported by the strategy.
	Duration time.Duration
	// CPUPercent is the average system CPU utilization during the run.
	CPUPercent float64
	// MemPercent is the system memory in use when the run finished.
	MemPercent float64
	// GC holds collector statistics for the timed region.
	GC memory.GCStats
	// Err is set when the run did not take place.
	Err error
}

// PresentationOptions configures how results are presented and judged.
type PresentationOptions struct {
	Verbose bool
	// Strict turns an equivalence mismatch into a failing exit code.
	Strict bool
}

// ProgressPhase tells whether a progress update opens or closes a run.
type ProgressPhase int

const (
	PhaseStarted ProgressPhase = iota
	PhaseFinished
)

// ProgressUpdate is sent to the ProgressReporter around each run.
type ProgressUpdate struct {
	// Index is the position of the run in the sequence.
	Index int
	// Name is the strategy being run.
	Name  string
	Phase ProgressPhase
	// Duration is set on PhaseFinished.
	Duration time.Duration
}

// ProgressReporter defines the interface for displaying run progress.
// Implementations must drain the channel until it is closed and then call
// wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting run results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy timings.
	PresentComparisonTable(results []RunResult, out io.Writer)
	// PresentEquivalence displays the outcome of the output comparison.
	PresentEquivalence(report EquivalenceReport, opts PresentationOptions, out io.Writer)
	// HandleError reports a failed run and returns its exit code.
	HandleError(err error, out io.Writer) int
}

// RunObserver receives the measurements of every completed run.
type RunObserver interface {
	ObserveRun(strategy string, threads int, elapsed time.Duration, cpuPercent, memPercent float64)
}
