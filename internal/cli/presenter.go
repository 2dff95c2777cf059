package cli

import (
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/format"
	"github.com/agbru/workdist/internal/memory"
	"github.com/agbru/workdist/internal/orchestration"
	"github.com/agbru/workdist/internal/ui"
)

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for the
// terminal.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per run in run order. Padding is
// computed by hand because the cells carry ANSI escape codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	headers := []string{"Strategy", "Threads", "Duration", "CPU", "Mem"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{
			res.Name,
			strconv.Itoa(res.Threads),
			format.FormatMillis(res.Duration),
			fmt.Sprintf("%.0f%%", res.CPUPercent),
			fmt.Sprintf("%.0f%%", res.MemPercent),
		}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len(cell))
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := []func() string{ui.ColorBlue, ui.ColorCyan, ui.ColorYellow, ui.ColorCyan, ui.ColorCyan}
	for i, res := range results {
		for j, cell := range rows[i] {
			fmt.Fprintf(out, "%s%s%s%s   ", colors[j](), cell, ui.ColorReset(), padRight("", widths[j]-len(cell)))
		}
		if res.Err != nil {
			fmt.Fprintf(out, "%s❌ Failure (%v)%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s✅ Success%s\n", ui.ColorGreen(), ui.ColorReset())
		}
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentEquivalence prints the outcome of the output comparison in a
// banner. A mismatch is a warning unless strict mode is on.
func (CLIResultPresenter) PresentEquivalence(report orchestration.EquivalenceReport, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintln(out)
	switch {
	case report.Compared < 2:
		fmt.Fprintln(out, ui.RenderBanner(ui.BannerSuccess,
			fmt.Sprintf("Global Status: Success. Only %s ran, nothing to compare.", report.Reference)))
	case report.Equivalent():
		fmt.Fprintln(out, ui.RenderBanner(ui.BannerSuccess,
			"Global Status: Success. All outputs are bitwise identical."))
	default:
		kind, label := ui.BannerWarning, "Warning"
		if opts.Strict {
			kind, label = ui.BannerError, "Failure"
		}
		fmt.Fprintln(out, ui.RenderBanner(kind, fmt.Sprintf("Global Status: %s. Outputs are not equal.", label)))
		for _, m := range report.Mismatches {
			fmt.Fprintf(out, "  %s%v%s\n", ui.ColorYellow(), m, ui.ColorReset())
		}
	}
}

// HandleError reports a failed run and maps it to an exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	fmt.Fprintln(out)
	return apperrors.HandleRunError(err, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the collector statistics of each run.
func DisplayMemoryStats(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fmt.Fprintf(out, "  %s:\n", res.Name)
		displayGCStats(res.GC, out)
	}
}

func displayGCStats(s memory.GCStats, out io.Writer) {
	fmt.Fprintf(out, "    Heap in use:     %s\n", format.FormatBytes(s.HeapAlloc))
	fmt.Fprintf(out, "    Allocated:       %s\n", format.FormatBytes(s.TotalAlloc))
	fmt.Fprintf(out, "    GC cycles:       %d\n", s.NumGC)
	if s.PauseTotalNs > 0 {
		fmt.Fprintf(out, "    GC pause total:  %.2fms\n", float64(s.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "    GC pause total:  0ms\n")
	}
}
