package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/workdist/internal/config"
	"github.com/agbru/workdist/internal/format"
	"github.com/agbru/workdist/internal/memory"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/sysmon"
	"github.com/agbru/workdist/internal/ui"
)

// PrintExecutionConfig displays the workload, the worker count and the
// environment.
func PrintExecutionConfig(cfg config.AppConfig, strategies int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%d%s positions (%s input) with %s%d%s kernel iterations each.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), cfg.Input,
		ui.ColorMagenta(), cfg.Iterations, ui.ColorReset())
	fmt.Fprintf(out, "Workers: %s%d%s per run", ui.ColorCyan(), cfg.Threads, ui.ColorReset())
	if cfg.LockThreads {
		fmt.Fprintf(out, ", each locked to an OS thread")
	}
	fmt.Fprintf(out, ".\n")
	logical := sysmon.LogicalCPUs()
	if logical == 0 {
		logical = runtime.NumCPU()
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors (%d in affinity mask), GOMAXPROCS=%d, Go %s%s%s.\n",
		ui.ColorCyan(), logical, ui.ColorReset(), sysmon.AvailableCPUs(), runtime.GOMAXPROCS(0),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Output buffers: %s, GC mode: %s.\n",
		format.FormatBytes(memory.BufferBytes(cfg.N, strategies)), cfg.GCMode)
}

// PrintExecutionMode displays whether the strategies are compared or a single
// one is timed.
func PrintExecutionMode(strategies []schedule.Strategy, out io.Writer) {
	var modeDesc string
	if len(strategies) > 1 {
		modeDesc = fmt.Sprintf("Sequential comparison of %d strategies", len(strategies))
	} else {
		modeDesc = fmt.Sprintf("Single run of the %s%s%s strategy",
			ui.ColorGreen(), strategies[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
