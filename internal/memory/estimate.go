package memory

import "unsafe"

// BufferBytes returns the memory held by the input positions and one output
// buffer per strategy for n positions.
func BufferBytes(n, strategies int) uint64 {
	var z complex128
	var f float64
	return uint64(n)*uint64(unsafe.Sizeof(z)) + uint64(n)*uint64(strategies)*uint64(unsafe.Sizeof(f))
}
