package workload

import "math/rand/v2"

// DefaultSeed seeds Random when no seed is configured.
const DefaultSeed uint64 = 1

// Random returns n positions whose real and imaginary parts are drawn
// uniformly from [0, 1). The same seed always yields the same sequence.
func Random(n int, seed uint64) []complex128 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	positions := make([]complex128, n)
	for i := range positions {
		positions[i] = complex(rng.Float64(), rng.Float64())
	}
	return positions
}

// Ramp returns n positions starting at base, with the real part of the i-th
// position shifted by i*step.
func Ramp(n int, base complex128, step float64) []complex128 {
	positions := make([]complex128, n)
	for i := range positions {
		positions[i] = base + complex(float64(i)*step, 0)
	}
	return positions
}
