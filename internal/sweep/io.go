package sweep

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/workdist/internal/format"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/ui"
)

// PrintResults writes the sweep table: one row per worker count with the
// duration of each strategy, the speedup of concurrent over parallel and
// the equivalence outcome.
func PrintResults(out io.Writer, points []Point) {
	fmt.Fprintf(out, "\n--- Thread Sweep ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  Threads\t%s\t%s\tSpeedup\tOutputs\n", schedule.ConcurrentName, schedule.ParallelName)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 7), strings.Repeat("─", 10), strings.Repeat("─", 10), strings.Repeat("─", 7), strings.Repeat("─", 7))
	for _, p := range points {
		conc, concOK := p.Duration(schedule.ConcurrentName)
		para, paraOK := p.Duration(schedule.ParallelName)
		speedup := "n/a"
		if concOK && paraOK {
			speedup = format.FormatSpeedup(para, conc)
		}
		outputs := "equal"
		if !p.Equivalence.Equivalent() {
			outputs = "DIFFER"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", p.Threads,
			cell(conc, concOK), cell(para, paraOK), speedup, outputs)
	}
	tw.Flush()

	for _, p := range points {
		for _, m := range p.Equivalence.Mismatches {
			fmt.Fprintf(out, "%sWarning:%s %d threads: %v\n", ui.ColorYellow(), ui.ColorReset(), p.Threads, m)
		}
	}
}

func cell(d time.Duration, ok bool) string {
	if !ok {
		return "N/A"
	}
	return format.FormatMillis(d)
}
