//go:build linux

package sysmon

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// AvailableCPUs returns the number of CPUs in the scheduler affinity mask of
// the current process, falling back to runtime.NumCPU when the mask cannot
// be read.
func AvailableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
