package stencil

import (
	"gonum.org/v1/gonum/mat"
)

// ApplyReference is the host-side reference operator: it applies the stencil
// to every interior cell of in, accumulating into out. Both grids are n x n
// dense matrices. It mirrors the device kernel exactly, including the
// accumulate-rather-than-overwrite contract, and anchors the device kernels
// in tests.
func (s *Stencil) ApplyReference(in, out *mat.Dense) {
	n, _ := in.Dims()
	r := s.Radius
	for i := r; i < n-r; i++ {
		for j := r; j < n-r; j++ {
			sum := 0.0
			for _, c := range s.coeffs {
				sum += in.At(i+c.Di, j+c.Dj) * c.Weight
			}
			out.Set(i, j, out.At(i, j)+sum)
		}
	}
}

// UnitSlope fills an n x n grid with the pattern in[i][j] = i + j, the
// benchmark's deterministic initial input.
func UnitSlope(n int) *mat.Dense {
	g := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, float64(i+j))
		}
	}
	return g
}
