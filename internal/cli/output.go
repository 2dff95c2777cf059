// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/workdist/internal/config"
	"github.com/agbru/workdist/internal/orchestration"
)

// quietLabels are the short names used by quiet output.
var quietLabels = map[string]string{
	"concurrent": "Conc",
	"parallel":   "Para",
}

// FormatQuietResult renders one run as "Conc: 123", the elapsed time in
// whole milliseconds.
func FormatQuietResult(res orchestration.RunResult) string {
	label, ok := quietLabels[res.Name]
	if !ok {
		label = res.Name
	}
	if res.Err != nil {
		return fmt.Sprintf("%s: error", label)
	}
	return fmt.Sprintf("%s: %d", label, res.Duration.Milliseconds())
}

// DisplayQuietResults prints one line per run, for scripting.
func DisplayQuietResults(results []orchestration.RunResult, out io.Writer) {
	for _, res := range results {
		fmt.Fprintln(out, FormatQuietResult(res))
	}
}

// RunReport is the JSON form of one run.
type RunReport struct {
	Strategy   string  `json:"strategy"`
	Threads    int     `json:"threads"`
	DurationMs float64 `json:"duration_ms"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float64 `json:"mem_percent"`
	Error      string  `json:"error,omitempty"`
}

// Report is the JSON document written by --output.
type Report struct {
	Generated  time.Time   `json:"generated"`
	Positions  int         `json:"positions"`
	Iterations int         `json:"iterations"`
	Threads    int         `json:"threads"`
	Input      string      `json:"input"`
	Seed       uint64      `json:"seed,omitempty"`
	Runs       []RunReport `json:"runs"`
	Equivalent bool        `json:"equivalent"`
	Mismatches int         `json:"mismatches"`
	ExitCode   int         `json:"exit_code"`
}

// BuildReport assembles the JSON report of a benchmark.
func BuildReport(cfg config.AppConfig, results []orchestration.RunResult, eq orchestration.EquivalenceReport, exitCode int) Report {
	r := Report{
		Generated:  time.Now().UTC(),
		Positions:  cfg.N,
		Iterations: cfg.Iterations,
		Threads:    cfg.Threads,
		Input:      cfg.Input,
		Runs:       make([]RunReport, 0, len(results)),
		Equivalent: eq.Equivalent(),
		Mismatches: eq.MismatchCount(),
		ExitCode:   exitCode,
	}
	if cfg.Input == config.InputRandom {
		r.Seed = cfg.Seed
	}
	for _, res := range results {
		run := RunReport{
			Strategy:   res.Name,
			Threads:    res.Threads,
			DurationMs: float64(res.Duration) / float64(time.Millisecond),
			CPUPercent: res.CPUPercent,
			MemPercent: res.MemPercent,
		}
		if res.Err != nil {
			run.Error = res.Err.Error()
		}
		r.Runs = append(r.Runs, run)
	}
	return r
}

// WriteReport writes report to path as indented JSON, creating parent
// directories as needed.
func WriteReport(path string, report Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
