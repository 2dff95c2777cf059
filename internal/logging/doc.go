// Package logging provides a unified logging interface for the benchmark.
// It abstracts the underlying logging implementation so that components log
// structured fields without depending on a particular backend.
package logging
