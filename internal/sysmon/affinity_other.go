//go:build !linux

package sysmon

import "runtime"

// AvailableCPUs returns the number of logical CPUs usable by the process.
func AvailableCPUs() int {
	return runtime.NumCPU()
}
