// Package sysmon provides system-wide CPU and memory usage sampling and the
// number of CPUs available to the process.
package sysmon

import (
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// windowMu serializes windows: the CPU baseline kept by gopsutil is global.
var windowMu sync.Mutex

// Window measures the average system CPU utilization over a region of code,
// such as one timed strategy run.
type Window struct {
	closed bool
}

// StartWindow resets the CPU baseline and opens a window. Windows must not
// overlap; a second StartWindow blocks until the first is stopped.
func StartWindow() *Window {
	windowMu.Lock()
	_, _ = cpu.Percent(0, false)
	return &Window{}
}

// Stop closes the window and returns the utilization since StartWindow.
// Calling Stop more than once returns zero values.
func (w *Window) Stop() Stats {
	if w.closed {
		return Stats{}
	}
	w.closed = true
	defer windowMu.Unlock()
	return Sample()
}

// LogicalCPUs returns the number of logical CPUs reported by the host, or 0
// when unknown.
func LogicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil {
		return 0
	}
	return n
}
