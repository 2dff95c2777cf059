// Package config parses and validates the benchmark configuration from
// command-line flags and WORKDIST_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/workload"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "WORKDIST_"

const (
	// DefaultN is the default number of positions evaluated per run.
	DefaultN = 1000 * 1000
	// StrategyAll selects every registered strategy.
	StrategyAll = "all"
	// InputRandom fills positions from a seeded uniform source.
	InputRandom = "random"
	// InputRamp fills positions with (0.1 + i*0.01, 0.1).
	InputRamp = "ramp"
)

// GC modes accepted by --gc.
const (
	GCModeAuto       = "auto"
	GCModeAggressive = "aggressive"
	GCModeDisabled   = "disabled"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the number of positions, identical for every strategy.
	N int
	// Threads is the worker count T. Zero means "every available CPU".
	Threads int
	// Iterations is the per-element iteration count of the kernel.
	Iterations int
	// Strategy is "all" or a single strategy name.
	Strategy string
	// Input selects the position generator ("random" or "ramp").
	Input string
	// Seed seeds the random generator.
	Seed uint64
	// GCMode controls the garbage collector during timed runs.
	GCMode string
	// LockThreads pins each worker to its own OS thread.
	LockThreads bool
	// Strict turns an output mismatch into a failing exit code.
	Strict bool
	// Sweep runs the strategies over a range of thread counts.
	Sweep bool
	// Quiet prints only the two durations.
	Quiet bool
	// Verbose enables debug logs and memory statistics.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the zerolog level name for stderr logs.
	LogLevel string
	// OutputFile receives a JSON report when set.
	OutputFile string
	// MetricsFile receives Prometheus metrics in text format when set.
	MetricsFile string
	// TraceFile receives OpenTelemetry spans as JSON when set.
	TraceFile string
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for every flag not given explicitly and validates the result.
//
// Parameters:
//   - programName: Name used in usage output.
//   - args: Arguments without the program name.
//   - errWriter: Destination for usage and parse errors.
//   - availableStrategies: Names accepted by --strategy besides "all".
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	config := AppConfig{}

	fs.IntVar(&config.N, "n", DefaultN, "Number of positions evaluated by each strategy.")
	fs.IntVar(&config.Threads, "threads", 0, "Worker count (0 = every CPU available to the process).")
	fs.IntVar(&config.Threads, "t", 0, "Worker count (shorthand).")
	fs.IntVar(&config.Iterations, "iterations", workload.DefaultIterations, "Kernel iterations per position.")
	fs.IntVar(&config.Iterations, "i", workload.DefaultIterations, "Kernel iterations per position (shorthand).")
	strategyHelp := fmt.Sprintf("Strategy to run: %s.", strings.Join(append([]string{StrategyAll}, availableStrategies...), ", "))
	fs.StringVar(&config.Strategy, "strategy", StrategyAll, strategyHelp)
	fs.StringVar(&config.Strategy, "s", StrategyAll, "Strategy to run (shorthand).")
	fs.StringVar(&config.Input, "input", InputRandom, "Input generator: random or ramp.")
	fs.Uint64Var(&config.Seed, "seed", workload.DefaultSeed, "Seed of the random input generator.")
	fs.StringVar(&config.GCMode, "gc", GCModeAuto, "Garbage collector control during runs: auto, aggressive or disabled.")
	fs.BoolVar(&config.LockThreads, "lock-threads", false, "Lock every worker to its own OS thread.")
	fs.BoolVar(&config.Strict, "strict", false, "Exit with a failure code when the outputs differ.")
	fs.BoolVar(&config.Sweep, "sweep", false, "Run every strategy over a range of thread counts.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the durations.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the durations (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logs and memory statistics.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logs and memory statistics (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn or error.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a JSON report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Write a JSON report to this file (shorthand).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	fs.StringVar(&config.TraceFile, "trace-file", "", "Write OpenTelemetry spans as JSON to this file.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	config.Strategy = strings.ToLower(config.Strategy)

	if err := config.Validate(availableStrategies); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableStrategies []string) error {
	if c.N < 0 {
		return apperrors.NewConfigError("invalid value for -n: %d (must be >= 0)", c.N)
	}
	if c.Threads < 0 {
		return apperrors.NewConfigError("invalid value for -threads: %d (must be >= 0)", c.Threads)
	}
	if c.Iterations < 0 {
		return apperrors.NewConfigError("invalid value for -iterations: %d (must be >= 0)", c.Iterations)
	}
	if c.Strategy != StrategyAll && !slices.Contains(availableStrategies, c.Strategy) {
		return apperrors.NewConfigError("unknown strategy %q (available: %s, %s)",
			c.Strategy, StrategyAll, strings.Join(availableStrategies, ", "))
	}
	switch c.Input {
	case InputRandom, InputRamp:
	default:
		return apperrors.NewConfigError("unknown input generator %q", c.Input)
	}
	switch c.GCMode {
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
	default:
		return apperrors.NewConfigError("unknown gc mode %q", c.GCMode)
	}
	if c.Sweep && c.Strategy != StrategyAll {
		return apperrors.NewConfigError("-sweep compares strategies and requires -strategy all")
	}
	return nil
}
