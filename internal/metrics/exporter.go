// Package metrics exposes benchmark results as Prometheus metrics, written
// in the text exposition format for the node_exporter textfile collector.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "workdist"

// Exporter owns a private registry holding the benchmark metrics.
type Exporter struct {
	registry    *prometheus.Registry
	runDuration *prometheus.GaugeVec
	runCPU      *prometheus.GaugeVec
	runMem      *prometheus.GaugeVec
	runs        *prometheus.CounterVec
	positions   prometheus.Gauge
	iterations  prometheus.Gauge
	mismatches  prometheus.Gauge
}

// NewExporter creates an exporter with the benchmark metrics and the Go
// runtime collector registered.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time from first spawn to last join of the latest run.",
		}, []string{"strategy", "threads"}),
		runCPU: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_cpu_percent",
			Help:      "Average system CPU utilization during the latest run.",
		}, []string{"strategy", "threads"}),
		runMem: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_memory_percent",
			Help:      "System memory in use at the end of the latest run.",
		}, []string{"strategy", "threads"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of completed strategy runs.",
		}, []string{"strategy"}),
		positions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "positions",
			Help:      "Number of positions evaluated per run.",
		}),
		iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kernel_iterations",
			Help:      "Kernel iterations per position.",
		}),
		mismatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_mismatches",
			Help:      "Number of output slots that differ between strategies.",
		}),
	}
	e.registry.MustRegister(
		e.runDuration, e.runCPU, e.runMem, e.runs,
		e.positions, e.iterations, e.mismatches,
		collectors.NewGoCollector(),
	)
	return e
}

// Registry returns the exporter's registry.
func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

// SetWorkload records the workload shape shared by every run.
func (e *Exporter) SetWorkload(positions, iterations int) {
	e.positions.Set(float64(positions))
	e.iterations.Set(float64(iterations))
}

// ObserveRun records one completed run.
func (e *Exporter) ObserveRun(strategy string, threads int, elapsed time.Duration, cpuPercent, memPercent float64) {
	t := strconv.Itoa(threads)
	e.runDuration.WithLabelValues(strategy, t).Set(elapsed.Seconds())
	e.runCPU.WithLabelValues(strategy, t).Set(cpuPercent)
	e.runMem.WithLabelValues(strategy, t).Set(memPercent)
	e.runs.WithLabelValues(strategy).Inc()
}

// SetMismatches records the outcome of the equivalence check.
func (e *Exporter) SetMismatches(count int) {
	e.mismatches.Set(float64(count))
}

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
