package workload

import "math/cmplx"

// ─────────────────────────────────────────────────────────────────────────────
// Kernel Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultIterations is the number of squaring steps applied to every
	// element. Both strategies must use the same value for their outputs to
	// be comparable.
	DefaultIterations = 400

	// EscapeRadius is the magnitude above which the correction is applied.
	EscapeRadius = 2.0

	// CorrectionExponent is the fractional power applied to a value whose
	// magnitude exceeds EscapeRadius. It attenuates growth without stopping
	// the iteration.
	CorrectionExponent = 0.25
)

// Kernel is the escape-time style computation evaluated once per input
// position. A Kernel holds no mutable state; a single value may be shared by
// any number of goroutines.
type Kernel struct {
	// Iterations is the fixed number of steps. Zero returns |z| unchanged.
	Iterations int
}

// NewKernel returns a Kernel running the given number of iterations.
func NewKernel(iterations int) Kernel {
	return Kernel{Iterations: iterations}
}

// Eval squares z Iterations times, pulling it back with a fractional power
// whenever its magnitude exceeds EscapeRadius, and returns the magnitude of
// the final value. The loop always runs to completion; overflow to Inf or NaN
// propagates silently.
func (k Kernel) Eval(z complex128) float64 {
	for i := 0; i < k.Iterations; i++ {
		z *= z
		if cmplx.Abs(z) > EscapeRadius {
			z = cmplx.Pow(z, CorrectionExponent)
		}
	}
	return cmplx.Abs(z)
}
