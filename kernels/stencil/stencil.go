// Package stencil defines the stencil operator family used by the stencil
// benchmark: a (shape, radius) descriptor, the closed-form weight generator,
// OKL kernel source generation, and a host-side reference operator.
package stencil

import (
	"fmt"
)

// Shape selects the neighbor pattern of a stencil operator.
type Shape int

const (
	// Star restricts offsets to the row and column through the center.
	Star Shape = iota
	// Grid covers the full square neighborhood including diagonals.
	Grid
)

func (s Shape) String() string {
	if s == Grid {
		return "grid"
	}
	return "star"
}

// ParseShape maps the CLI token to a Shape. Any token other than "grid"
// selects the star pattern, matching the reference driver.
func ParseShape(token string) Shape {
	if token == "grid" {
		return Grid
	}
	return Star
}

// Supported radius range. Radii outside this range have no weight table and
// are a fatal misconfiguration, not a recoverable fault.
const (
	MinRadius = 1
	MaxRadius = 5
)

// Coefficient is one term of a stencil operator: the input cell at
// (i+Di, j+Dj) contributes Weight to the output cell at (i, j).
type Coefficient struct {
	Di, Dj int
	Weight float64
}

// Stencil is an immutable stencil operator: a fixed ordered weight table for
// one (shape, radius) pair.
type Stencil struct {
	Shape  Shape
	Radius int
	coeffs []Coefficient
}

// New builds the stencil operator for the given shape and radius. It returns
// an error for any (shape, radius) pair with no weight table.
func New(shape Shape, radius int) (*Stencil, error) {
	if shape != Star && shape != Grid {
		return nil, fmt.Errorf("stencil does not exist: unknown shape %d", int(shape))
	}
	if radius < MinRadius || radius > MaxRadius {
		return nil, fmt.Errorf("stencil does not exist: %s radius %d (supported radii are %d..%d)",
			shape, radius, MinRadius, MaxRadius)
	}

	var w weightTable
	switch shape {
	case Star:
		w = starWeights(radius)
	case Grid:
		w = gridWeights(radius)
	}

	return &Stencil{
		Shape:  shape,
		Radius: radius,
		coeffs: w.coefficients(radius),
	}, nil
}

// Name identifies the operator, e.g. "star2" or "grid4". It is also used as
// the generated kernel name.
func (s *Stencil) Name() string {
	return fmt.Sprintf("%s%d", s.Shape, s.Radius)
}

// Coefficients returns the ordered weight table. The slice is shared; callers
// must not modify it.
func (s *Stencil) Coefficients() []Coefficient {
	return s.coeffs
}

// Size is the point count of the stencil including the center, used in the
// flop-rate calculation: 4r+1 for star, (2r+1)^2 for grid.
func (s *Stencil) Size() int {
	if s.Shape == Grid {
		return (2*s.Radius + 1) * (2*s.Radius + 1)
	}
	return 4*s.Radius + 1
}

// weightTable is a dense (2r+1)x(2r+1) weight layout indexed by [r+di][r+dj].
type weightTable [][]float64

func newWeightTable(radius int) weightTable {
	w := make(weightTable, 2*radius+1)
	for i := range w {
		w[i] = make([]float64, 2*radius+1)
	}
	return w
}

// coefficients flattens the table into ordered (di, dj, weight) triples,
// dropping zero entries (including the center).
func (w weightTable) coefficients(radius int) []Coefficient {
	var coeffs []Coefficient
	for dj := -radius; dj <= radius; dj++ {
		for di := -radius; di <= radius; di++ {
			if c := w[radius+di][radius+dj]; c != 0 {
				coeffs = append(coeffs, Coefficient{Di: di, Dj: dj, Weight: c})
			}
		}
	}
	return coeffs
}

// starWeights generates the star pattern: the offset at distance d along one
// axis has magnitude 1/(2*d*r), negative on the before side. This is the
// closed form of the first-derivative finite-difference tables for r = 1..5.
func starWeights(radius int) weightTable {
	w := newWeightTable(radius)
	for d := 1; d <= radius; d++ {
		c := 1.0 / float64(2*d*radius)
		w[radius][radius+d] = c
		w[radius][radius-d] = -c
		w[radius+d][radius] = c
		w[radius-d][radius] = -c
	}
	return w
}

// gridWeights generates the grid (box) pattern ring by ring. For Chebyshev
// ring j the main-diagonal corners (±j,±j) carry ±1/(4*j*r); the ring edge
// cells (j,i), (i,j) for |i| < j carry +1/(4*j*(2j-1)*r) and their mirrors
// (-j,-i), (-i,-j) the negated weight. Cells no rule touches (the
// anti-diagonal corners and their flanks) have weight zero and are omitted
// from the table. This regenerates the hand-unrolled grid1..grid5 tables.
func gridWeights(radius int) weightTable {
	w := newWeightTable(radius)
	for j := 1; j <= radius; j++ {
		edge := 1.0 / float64(4*j*(2*j-1)*radius)
		for i := -j + 1; i < j; i++ {
			w[radius+j][radius+i] = edge
			w[radius+i][radius+j] = edge
			w[radius-j][radius-i] = -edge
			w[radius-i][radius-j] = -edge
		}
		corner := 1.0 / float64(4*j*radius)
		w[radius+j][radius+j] = corner
		w[radius-j][radius-j] = -corner
	}
	return w
}
