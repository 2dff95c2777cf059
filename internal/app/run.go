package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/workdist/internal/cli"
	"github.com/agbru/workdist/internal/config"
	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/logging"
	"github.com/agbru/workdist/internal/metrics"
	"github.com/agbru/workdist/internal/orchestration"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/sweep"
	"github.com/agbru/workdist/internal/telemetry"
	"github.com/agbru/workdist/internal/workload"
)

// Ramp input parameters: position i is (0.1 + i*0.01) + 0.1i.
const (
	rampBase complex128 = complex(0.1, 0.1)
	rampStep            = 0.01
)

func (a *Application) newLogger() *logging.ZerologAdapter {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	logger := logging.NewConsoleLogger(a.ErrWriter, level, a.Config.NoColor)
	if err != nil {
		logger.Warn("falling back to info level", logging.Err(err))
	}
	return logger
}

// setupTracing installs the span exporter when --trace-file is set. The
// returned function flushes the spans and closes the file.
func (a *Application) setupTracing(logger logging.Logger) (func(), int) {
	noop := func() {}
	if a.Config.TraceFile == "" {
		return noop, apperrors.ExitSuccess
	}
	f, err := os.Create(a.Config.TraceFile)
	if err != nil {
		return noop, apperrors.HandleRunError(
			apperrors.NewConfigError("cannot create trace file: %v", err), a.ErrWriter, cli.CLIColorProvider{})
	}
	shutdown, err := telemetry.Setup(f)
	if err != nil {
		f.Close()
		return noop, apperrors.HandleRunError(apperrors.WrapError(err, "tracing setup"), a.ErrWriter, cli.CLIColorProvider{})
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("flushing spans", err)
		}
		f.Close()
	}, apperrors.ExitSuccess
}

// generatePositions builds the shared, read-only input of every run.
func (a *Application) generatePositions() []complex128 {
	if a.Config.Input == config.InputRamp {
		return workload.Ramp(a.Config.N, rampBase, rampStep)
	}
	return workload.Random(a.Config.N, a.Config.Seed)
}

func (a *Application) strategyOptions() schedule.Options {
	return schedule.Options{
		Threads:      a.Config.Threads,
		Kernel:       workload.NewKernel(a.Config.Iterations),
		LockOSThread: a.Config.LockThreads,
	}
}

func (a *Application) executeOptions(logger logging.Logger, exporter *metrics.Exporter) orchestration.ExecuteOptions {
	return orchestration.ExecuteOptions{
		Tracer:   telemetry.Tracer(),
		GCMode:   a.Config.GCMode,
		Logger:   logger,
		Observer: exporter,
	}
}

// runBenchmark times the selected strategies once each and compares their
// outputs.
func (a *Application) runBenchmark(ctx context.Context, logger logging.Logger, out io.Writer) int {
	strategies, err := orchestration.GetStrategiesToRun(a.Config.Strategy, a.Factory, a.strategyOptions())
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewConfigError("%v", err), a.ErrWriter, cli.CLIColorProvider{})
	}

	ctx, span := telemetry.Tracer().Start(ctx, "benchmark", trace.WithAttributes(
		telemetry.KeyPositions.Int(a.Config.N),
		telemetry.KeyThreads.Int(a.Config.Threads),
	))
	defer span.End()

	positions := a.generatePositions()
	exporter := metrics.NewExporter()
	exporter.SetWorkload(a.Config.N, a.Config.Iterations)

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter, progressOut = orchestration.NullProgressReporter{}, io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, len(strategies), out)
		cli.PrintExecutionMode(strategies, out)
	}

	results := orchestration.ExecuteRuns(ctx, strategies, positions, a.executeOptions(logger, exporter), reporter, progressOut)
	eq := orchestration.CheckEquivalence(results)
	exporter.SetMismatches(eq.MismatchCount())
	span.SetAttributes(telemetry.KeyMismatches.Int(eq.MismatchCount()))
	if !eq.Equivalent() {
		for _, m := range eq.Mismatches {
			logger.Warn("outputs are not equal",
				logging.String("reference", m.Reference),
				logging.String("candidate", m.Candidate),
				logging.Int("slots", m.Count),
				logging.Int("first_index", m.FirstIndex))
		}
	}

	var code int
	if a.Config.Quiet {
		cli.DisplayQuietResults(results, out)
		code = a.quietExitCode(results, eq)
	} else {
		presOpts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Strict: a.Config.Strict}
		code = orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, out)
		if a.Config.Verbose {
			cli.DisplayMemoryStats(results, out)
		}
	}

	report := cli.BuildReport(a.Config, results, eq, code)
	if err := a.writeArtifacts(exporter, &report, out); err != nil {
		logger.Error("writing output files", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// quietExitCode mirrors AnalyzeComparisonResults without the table: errors
// go to the error writer, a mismatch prints "Not equal" there.
func (a *Application) quietExitCode(results []orchestration.RunResult, eq orchestration.EquivalenceReport) int {
	for _, r := range results {
		if r.Err != nil {
			return apperrors.HandleRunError(r.Err, a.ErrWriter, nil)
		}
	}
	if !eq.Equivalent() {
		fmt.Fprintln(a.ErrWriter, "Not equal")
		if a.Config.Strict {
			return apperrors.ExitErrorMismatch
		}
	}
	return apperrors.ExitSuccess
}

// runSweep runs every strategy for each worker count up to the configured
// one.
func (a *Application) runSweep(ctx context.Context, logger logging.Logger, out io.Writer) int {
	counts := sweep.GenerateThreadCounts(a.Config.Threads)

	ctx, span := telemetry.Tracer().Start(ctx, "sweep", trace.WithAttributes(
		telemetry.KeyPositions.Int(a.Config.N),
		telemetry.KeyThreads.Int(a.Config.Threads),
	))
	defer span.End()

	positions := a.generatePositions()
	exporter := metrics.NewExporter()
	exporter.SetWorkload(a.Config.N, a.Config.Iterations)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(a.Factory.List()), out)
		fmt.Fprintf(out, "Execution mode: thread sweep over %v.\n", counts)
	}

	points, err := sweep.Run(ctx, a.Factory, a.strategyOptions(), counts, positions, a.executeOptions(logger, exporter))
	sweep.PrintResults(out, points)

	code := sweep.ExitCode(points, a.Config.Strict)
	if err != nil && code == apperrors.ExitSuccess {
		code = apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	mismatches := 0
	for _, p := range points {
		mismatches += p.Equivalence.MismatchCount()
	}
	exporter.SetMismatches(mismatches)
	span.SetAttributes(telemetry.KeyMismatches.Int(mismatches))

	if err := a.writeArtifacts(exporter, nil, out); err != nil {
		logger.Error("writing output files", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// writeArtifacts writes the metrics textfile and the JSON report when they
// are configured. A nil report skips the report.
func (a *Application) writeArtifacts(exporter *metrics.Exporter, report *cli.Report, out io.Writer) error {
	if a.Config.MetricsFile != "" {
		if err := exporter.WriteTextfile(a.Config.MetricsFile); err != nil {
			return apperrors.WrapError(err, "metrics file")
		}
	}
	if a.Config.OutputFile != "" && report != nil {
		if err := cli.WriteReport(a.Config.OutputFile, *report); err != nil {
			return err
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "\nReport saved to: %s\n", a.Config.OutputFile)
		}
	}
	return nil
}
