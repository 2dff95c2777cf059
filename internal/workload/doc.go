// Package workload defines the per-element computation shared by every
// scheduling strategy, together with the generators that populate the input
// domain before a benchmark run.
package workload
