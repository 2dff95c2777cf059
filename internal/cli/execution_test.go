package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/agbru/workdist/internal/config"
	"github.com/agbru/workdist/internal/schedule"
	"github.com/agbru/workdist/internal/sysmon"
	"github.com/agbru/workdist/internal/ui"
)

func TestPrintExecutionConfig(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	cfg := config.AppConfig{N: 1024, Iterations: 400, Threads: 4, Input: config.InputRamp, GCMode: config.GCModeAuto, LockThreads: true}

	var buf bytes.Buffer
	PrintExecutionConfig(cfg, 2, &buf)
	out := buf.String()
	for _, want := range []string{"1024 positions", "ramp input", "400 kernel iterations", "Workers: 4", "locked to an OS thread", "32.0 KiB", "GC mode: auto"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if n := sysmon.LogicalCPUs(); n > 0 && !strings.Contains(out, fmt.Sprintf("%d logical processors", n)) {
		t.Errorf("output should report %d logical processors, got:\n%s", n, out)
	}
	if want := fmt.Sprintf("(%d in affinity mask)", sysmon.AvailableCPUs()); !strings.Contains(out, want) {
		t.Errorf("output should contain %q, got:\n%s", want, out)
	}
}

func TestPrintExecutionMode(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	opts := schedule.DefaultOptions()
	opts.Threads = 1

	var buf bytes.Buffer
	PrintExecutionMode([]schedule.Strategy{schedule.NewParallel(opts)}, &buf)
	if !strings.Contains(buf.String(), "Single run of the parallel strategy") {
		t.Errorf("unexpected mode line: %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode([]schedule.Strategy{schedule.NewConcurrent(opts), schedule.NewParallel(opts)}, &buf)
	if !strings.Contains(buf.String(), "Sequential comparison of 2 strategies") {
		t.Errorf("unexpected mode line: %q", buf.String())
	}
}
