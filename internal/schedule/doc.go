// Package schedule distributes a uniform, CPU-bound workload across a fixed
// number of workers using one of two strategies:
//
//   - Concurrent: workers pull one index at a time from a shared atomic
//     cursor until the index space is exhausted (dynamic load balancing).
//   - Parallel: the index space is cut into contiguous blocks before any
//     worker starts, one block per worker (static partitioning).
//
// Both strategies write every output slot exactly once, from exactly one
// worker, so for a pure kernel they produce bit-identical buffers. Each run
// reports the elapsed time between spawning the first worker and joining the
// last one.
package schedule
