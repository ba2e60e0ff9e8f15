package benchmark

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
)

// epsilon is the validation tolerance of both benchmarks.
const epsilon = 1.0e-8

// Initial fill values of the triad vectors. The checksum oracle is derived
// from these, so they are fixed.
const (
	triadInitB = 2.0
	triadInitC = 2.0
)

// TriadChecksum is the closed-form expected checksum after iterations+1
// triad applications: length * sum over k=0..iterations of (B0 + scalar*C0).
// It depends only on input constants and the iteration count, never on the
// kernel output.
func TriadChecksum(iterations, length int, scalar float64) float64 {
	ar := 0.0
	for k := 0; k <= iterations; k++ {
		ar += triadInitB + scalar*triadInitC
	}
	return ar * float64(length)
}

// VerifyTriad compares the L1 norm of the output vector against the checksum
// oracle within relative tolerance. On mismatch it prints the diagnostic
// block and returns a validation error.
func VerifyTriad(a []float64, iterations int, scalar float64) error {
	expected := TriadChecksum(iterations, len(a), scalar)
	observed := floats.Norm(a, 1)
	if math.Abs(expected-observed)/observed > epsilon {
		fmt.Printf("Failed Validation on output array\n")
		fmt.Printf("       Expected checksum: %f\n", expected)
		fmt.Printf("       Observed checksum: %f\n", observed)
		return fmt.Errorf("solution did not validate")
	}
	return nil
}

// StencilReferenceNorm is the closed-form expected norm after iterations+1
// stencil applications interleaved with +1 input perturbations: the operator
// responds to the unit-slope input with exactly 2 per interior cell per
// application, and the perturbation is invisible to it (weights sum to zero),
// so the accumulated interior average is 2*(iterations+1) regardless of grid
// size, shape or radius.
func StencilReferenceNorm(iterations int) float64 {
	return 2.0 * (float64(iterations) + 1.0)
}

// StencilNorm is the observed aggregate: the mean absolute value of the
// output grid over interior cells only. Border cells are excluded from both
// the sum and the averaging denominator.
func StencilNorm(out []float64, n, radius int) float64 {
	norm := 0.0
	for i := radius; i < n-radius; i++ {
		norm += floats.Norm(out[i*n+radius:i*n+n-radius], 1)
	}
	activePoints := float64(n-2*radius) * float64(n-2*radius)
	return norm / activePoints
}

// VerifyStencil compares the interior norm against the oracle within absolute
// tolerance. On mismatch it prints the norms, dumps every cell's (in, out)
// pair to stderr, and returns a validation error.
func VerifyStencil(in, out []float64, n, radius, iterations int) error {
	norm := StencilNorm(out, n, radius)
	referenceNorm := StencilReferenceNorm(iterations)
	if math.Abs(norm-referenceNorm) > epsilon {
		fmt.Printf("ERROR: L1 norm = %f Reference L1 norm = %f\n", norm, referenceNorm)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				fmt.Fprintf(os.Stderr, "%d,%d = %f, %f\n", i, j, in[i*n+j], out[i*n+j])
			}
		}
		return fmt.Errorf("solution did not validate")
	}
	return nil
}
