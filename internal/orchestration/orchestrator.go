package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/logging"
	"github.com/agbru/workdist/internal/memory"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/sysmon"
	"github.com/agbru/workdist/internal/telemetry"
)

// ProgressBufferMultiplier sizes the progress channel so that a slow
// reporter never blocks the run loop.
const ProgressBufferMultiplier = 2

var errNothingRun = errors.New("no strategy was run")

// ExecuteOptions carries the collaborators of ExecuteRuns. Every field is
// optional.
type ExecuteOptions struct {
	// Tracer opens one span per run. Defaults to the global tracer.
	Tracer trace.Tracer
	// GCMode is passed to memory.NewGCController.
	GCMode string
	Logger logging.Logger
	// Observer receives the measurements of every completed run.
	Observer RunObserver
}

// ExecuteRuns runs each strategy in sequence on positions, each into its own
// freshly allocated output buffer.
//
// Every run is wrapped in a tracing span, a GC-control window and a CPU
// utilization window. The context is only consulted between runs: a
// strategy run is never interrupted, but once ctx is done the remaining
// strategies are recorded as canceled without running.
func ExecuteRuns(ctx context.Context, strategies []schedule.Strategy, positions []complex128, opts ExecuteOptions, reporter ProgressReporter, out io.Writer) []RunResult {
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(io.Discard, "orchestration")
	}
	if reporter == nil {
		reporter = NullProgressReporter{}
	}

	results := make([]RunResult, len(strategies))
	progressChan := make(chan ProgressUpdate, len(strategies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(strategies), out)

	for i, s := range strategies {
		name := s.Name()
		if err := ctx.Err(); err != nil {
			results[i] = RunResult{Name: name, Threads: s.Threads(), Err: apperrors.RunError{Strategy: name, Cause: err}}
			opts.Logger.Warn("run skipped", logging.String("strategy", name), logging.Err(err))
			continue
		}
		progressChan <- ProgressUpdate{Index: i, Name: name, Phase: PhaseStarted}
		results[i] = runOne(ctx, s, positions, opts)
		progressChan <- ProgressUpdate{Index: i, Name: name, Phase: PhaseFinished, Duration: results[i].Duration}
	}

	close(progressChan)
	displayWg.Wait()
	return results
}

func runOne(ctx context.Context, s schedule.Strategy, positions []complex128, opts ExecuteOptions) RunResult {
	name, threads := s.Name(), s.Threads()
	output := make([]float64, len(positions))

	_, span := telemetry.StartRun(ctx, opts.Tracer, name, len(positions), threads)
	gc := memory.NewGCController(opts.GCMode, len(positions))
	if z, ok := opts.Logger.(*logging.ZerologAdapter); ok {
		gc.SetLogger(z.Zerolog())
	}

	gc.Begin()
	window := sysmon.StartWindow()
	elapsed := s.Run(positions, output)
	usage := window.Stop()
	gc.End()

	telemetry.EndRun(span, elapsed, usage.CPUPercent, usage.MemPercent)
	if opts.Observer != nil {
		opts.Observer.ObserveRun(name, threads, elapsed, usage.CPUPercent, usage.MemPercent)
	}

	stats := gc.Stats()
	opts.Logger.Debug("run finished",
		logging.String("strategy", name),
		logging.Int("threads", threads),
		logging.Duration("elapsed", elapsed),
		logging.Float64("cpu_percent", usage.CPUPercent),
		logging.Float64("mem_percent", usage.MemPercent),
		logging.Uint64("total_alloc_bytes", stats.TotalAlloc),
	)
	return RunResult{
		Name:       name,
		Threads:    threads,
		Output:     output,
		Duration:   elapsed,
		CPUPercent: usage.CPUPercent,
		MemPercent: usage.MemPercent,
		GC:         stats,
	}
}

// AnalyzeComparisonResults presents the comparison table, checks that every
// successful run produced the same output as the first one, and returns
// the exit code.
//
// A mismatch is reported as a warning. It only fails the program when
// opts.Strict is set. A failed run takes precedence over the equivalence
// outcome.
func AnalyzeComparisonResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentComparisonTable(results, out)

	var firstError error
	for _, r := range results {
		if r.Err != nil {
			firstError = r.Err
			break
		}
	}

	report := CheckEquivalence(results)
	if report.Compared == 0 {
		if firstError == nil {
			firstError = errNothingRun
		}
		return presenter.HandleError(firstError, out)
	}
	presenter.PresentEquivalence(report, opts, out)

	if firstError != nil {
		return presenter.HandleError(firstError, out)
	}
	if !report.Equivalent() && opts.Strict {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
