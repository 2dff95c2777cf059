// Package app wires configuration, strategies and presentation into the
// workdist command.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/workdist/internal/config"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/ui"
)

// Application represents the workdist application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *schedule.Factory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom strategy factory for the application.
func WithFactory(f *schedule.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = schedule.NewDefaultFactory()
	}

	programName := "workdist"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the benchmark, or the thread sweep when requested, and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	logger := a.newLogger()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	shutdown, code := a.setupTracing(logger)
	if code != 0 {
		return code
	}
	defer shutdown()

	if a.Config.Sweep {
		return a.runSweep(ctx, logger, out)
	}
	return a.runBenchmark(ctx, logger, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
