package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/workdist/internal/format"
	"github.com/agbru/workdist/internal/orchestration"
	"github.com/agbru/workdist/internal/ui"
)

// ProgressRefreshRate is the spinner animation interval.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner for the run in flight and one line per finished run.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRuns, out)
}

// DisplayProgress consumes progress updates until the channel is closed,
// animating a spinner while a run is in flight.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	s := newSpinner(spinner.WithWriter(out))
	running := false

	for update := range progressChan {
		switch update.Phase {
		case orchestration.PhaseStarted:
			s.UpdateSuffix(fmt.Sprintf(" Running %s%s%s (%d/%d)...",
				ui.ColorBlue(), update.Name, ui.ColorReset(), update.Index+1, numRuns))
			if !running {
				s.Start()
				running = true
			}
		case orchestration.PhaseFinished:
			if running {
				s.Stop()
				running = false
			}
			fmt.Fprintf(out, "%s✓%s %s finished in %s%s%s\n",
				ui.ColorGreen(), ui.ColorReset(), update.Name,
				ui.ColorYellow(), format.FormatMillis(update.Duration), ui.ColorReset())
		}
	}
	if running {
		s.Stop()
	}
}
