package config

import "github.com/agbru/workdist/internal/sysmon"

// Thread count resolution chain (highest priority first):
//   1. CLI flags (--threads, -t)
//   2. Environment variable (WORKDIST_THREADS)
//   3. CPUs available to the process (this file)

// ApplyAdaptiveDefaults fills the fields left at their zero default with
// values derived from the host. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Threads == 0 {
		cfg.Threads = EstimateThreads()
	}
	return cfg
}

// EstimateThreads returns the number of CPUs the process may run on. On
// Linux this honors the scheduler affinity mask (taskset, cgroup cpusets);
// elsewhere it falls back to the logical CPU count.
func EstimateThreads() int {
	if n := sysmon.AvailableCPUs(); n > 0 {
		return n
	}
	return 1
}
