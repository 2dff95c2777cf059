package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExporter_ObserveRun(t *testing.T) {
	t.Parallel()
	e := NewExporter()

	e.ObserveRun("parallel", 4, 250*time.Millisecond, 90, 40)
	e.ObserveRun("parallel", 4, 500*time.Millisecond, 95, 41.5)

	if got := testutil.ToFloat64(e.runDuration.WithLabelValues("parallel", "4")); got != 0.5 {
		t.Errorf("run_duration_seconds = %v, want latest value 0.5", got)
	}
	if got := testutil.ToFloat64(e.runCPU.WithLabelValues("parallel", "4")); got != 95 {
		t.Errorf("run_cpu_percent = %v, want 95", got)
	}
	if got := testutil.ToFloat64(e.runMem.WithLabelValues("parallel", "4")); got != 41.5 {
		t.Errorf("run_memory_percent = %v, want 41.5", got)
	}
	if got := testutil.ToFloat64(e.runs.WithLabelValues("parallel")); got != 2 {
		t.Errorf("runs_total = %v, want 2", got)
	}
}

func TestExporter_Workload(t *testing.T) {
	t.Parallel()
	e := NewExporter()
	e.SetWorkload(17, 1)
	e.SetMismatches(0)

	if got := testutil.ToFloat64(e.positions); got != 17 {
		t.Errorf("positions = %v, want 17", got)
	}
	if got := testutil.ToFloat64(e.iterations); got != 1 {
		t.Errorf("kernel_iterations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(e.mismatches); got != 0 {
		t.Errorf("output_mismatches = %v, want 0", got)
	}
}

func TestExporter_WriteTextfile(t *testing.T) {
	t.Parallel()
	e := NewExporter()
	e.SetWorkload(1000, 400)
	e.ObserveRun("concurrent", 8, time.Second, 99, 12)

	path := filepath.Join(t.TempDir(), "workdist.prom")
	if err := e.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading textfile: %v", err)
	}
	body := string(data)

	for _, want := range []string{
		`workdist_run_duration_seconds{strategy="concurrent",threads="8"} 1`,
		`workdist_run_memory_percent{strategy="concurrent",threads="8"} 12`,
		"workdist_positions 1000",
		"workdist_runs_total",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile should contain %q", want)
		}
	}
}
