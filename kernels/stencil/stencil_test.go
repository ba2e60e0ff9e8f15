package stencil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference weight tables transcribed from the hand-unrolled operators of
// the original Parallel Research Kernels stencil benchmark. These are the
// conformance baseline for the closed-form weight generator.
var referenceTables = map[string][]Coefficient{
	"star1": {
		{0, -1, -0.5},
		{-1, 0, -0.5},
		{1, 0, 0.5},
		{0, 1, 0.5},
	},
	"star2": {
		{0, -2, -0.125},
		{0, -1, -0.25},
		{-2, 0, -0.125},
		{-1, 0, -0.25},
		{1, 0, 0.25},
		{2, 0, 0.125},
		{0, 1, 0.25},
		{0, 2, 0.125},
	},
	"star3": {
		{0, -3, -0.0555555555556},
		{0, -2, -0.0833333333333},
		{0, -1, -0.166666666667},
		{-3, 0, -0.0555555555556},
		{-2, 0, -0.0833333333333},
		{-1, 0, -0.166666666667},
		{1, 0, 0.166666666667},
		{2, 0, 0.0833333333333},
		{3, 0, 0.0555555555556},
		{0, 1, 0.166666666667},
		{0, 2, 0.0833333333333},
		{0, 3, 0.0555555555556},
	},
	"star4": {
		{0, -4, -0.03125},
		{0, -3, -0.0416666666667},
		{0, -2, -0.0625},
		{0, -1, -0.125},
		{-4, 0, -0.03125},
		{-3, 0, -0.0416666666667},
		{-2, 0, -0.0625},
		{-1, 0, -0.125},
		{1, 0, 0.125},
		{2, 0, 0.0625},
		{3, 0, 0.0416666666667},
		{4, 0, 0.03125},
		{0, 1, 0.125},
		{0, 2, 0.0625},
		{0, 3, 0.0416666666667},
		{0, 4, 0.03125},
	},
	"star5": {
		{0, -5, -0.02},
		{0, -4, -0.025},
		{0, -3, -0.0333333333333},
		{0, -2, -0.05},
		{0, -1, -0.1},
		{-5, 0, -0.02},
		{-4, 0, -0.025},
		{-3, 0, -0.0333333333333},
		{-2, 0, -0.05},
		{-1, 0, -0.1},
		{1, 0, 0.1},
		{2, 0, 0.05},
		{3, 0, 0.0333333333333},
		{4, 0, 0.025},
		{5, 0, 0.02},
		{0, 1, 0.1},
		{0, 2, 0.05},
		{0, 3, 0.0333333333333},
		{0, 4, 0.025},
		{0, 5, 0.02},
	},
	"grid1": {
		{-1, -1, -0.25},
		{0, -1, -0.25},
		{-1, 0, -0.25},
		{1, 0, 0.25},
		{0, 1, 0.25},
		{1, 1, 0.25},
	},
	"grid2": {
		{-2, -2, -0.0625},
		{-1, -2, -0.0208333333333},
		{0, -2, -0.0208333333333},
		{1, -2, -0.0208333333333},
		{-2, -1, -0.0208333333333},
		{-1, -1, -0.125},
		{0, -1, -0.125},
		{2, -1, 0.0208333333333},
		{-2, 0, -0.0208333333333},
		{-1, 0, -0.125},
		{1, 0, 0.125},
		{2, 0, 0.0208333333333},
		{-2, 1, -0.0208333333333},
		{0, 1, 0.125},
		{1, 1, 0.125},
		{2, 1, 0.0208333333333},
		{-1, 2, 0.0208333333333},
		{0, 2, 0.0208333333333},
		{1, 2, 0.0208333333333},
		{2, 2, 0.0625},
	},
	"grid3": {
		{-3, -3, -0.0277777777778},
		{-2, -3, -0.00555555555556},
		{-1, -3, -0.00555555555556},
		{0, -3, -0.00555555555556},
		{1, -3, -0.00555555555556},
		{2, -3, -0.00555555555556},
		{-3, -2, -0.00555555555556},
		{-2, -2, -0.0416666666667},
		{-1, -2, -0.0138888888889},
		{0, -2, -0.0138888888889},
		{1, -2, -0.0138888888889},
		{3, -2, 0.00555555555556},
		{-3, -1, -0.00555555555556},
		{-2, -1, -0.0138888888889},
		{-1, -1, -0.0833333333333},
		{0, -1, -0.0833333333333},
		{2, -1, 0.0138888888889},
		{3, -1, 0.00555555555556},
		{-3, 0, -0.00555555555556},
		{-2, 0, -0.0138888888889},
		{-1, 0, -0.0833333333333},
		{1, 0, 0.0833333333333},
		{2, 0, 0.0138888888889},
		{3, 0, 0.00555555555556},
		{-3, 1, -0.00555555555556},
		{-2, 1, -0.0138888888889},
		{0, 1, 0.0833333333333},
		{1, 1, 0.0833333333333},
		{2, 1, 0.0138888888889},
		{3, 1, 0.00555555555556},
		{-3, 2, -0.00555555555556},
		{-1, 2, 0.0138888888889},
		{0, 2, 0.0138888888889},
		{1, 2, 0.0138888888889},
		{2, 2, 0.0416666666667},
		{3, 2, 0.00555555555556},
		{-2, 3, 0.00555555555556},
		{-1, 3, 0.00555555555556},
		{0, 3, 0.00555555555556},
		{1, 3, 0.00555555555556},
		{2, 3, 0.00555555555556},
		{3, 3, 0.0277777777778},
	},
	"grid4": {
		{-4, -4, -0.015625},
		{-3, -4, -0.00223214285714},
		{-2, -4, -0.00223214285714},
		{-1, -4, -0.00223214285714},
		{0, -4, -0.00223214285714},
		{1, -4, -0.00223214285714},
		{2, -4, -0.00223214285714},
		{3, -4, -0.00223214285714},
		{-4, -3, -0.00223214285714},
		{-3, -3, -0.0208333333333},
		{-2, -3, -0.00416666666667},
		{-1, -3, -0.00416666666667},
		{0, -3, -0.00416666666667},
		{1, -3, -0.00416666666667},
		{2, -3, -0.00416666666667},
		{4, -3, 0.00223214285714},
		{-4, -2, -0.00223214285714},
		{-3, -2, -0.00416666666667},
		{-2, -2, -0.03125},
		{-1, -2, -0.0104166666667},
		{0, -2, -0.0104166666667},
		{1, -2, -0.0104166666667},
		{3, -2, 0.00416666666667},
		{4, -2, 0.00223214285714},
		{-4, -1, -0.00223214285714},
		{-3, -1, -0.00416666666667},
		{-2, -1, -0.0104166666667},
		{-1, -1, -0.0625},
		{0, -1, -0.0625},
		{2, -1, 0.0104166666667},
		{3, -1, 0.00416666666667},
		{4, -1, 0.00223214285714},
		{-4, 0, -0.00223214285714},
		{-3, 0, -0.00416666666667},
		{-2, 0, -0.0104166666667},
		{-1, 0, -0.0625},
		{1, 0, 0.0625},
		{2, 0, 0.0104166666667},
		{3, 0, 0.00416666666667},
		{4, 0, 0.00223214285714},
		{-4, 1, -0.00223214285714},
		{-3, 1, -0.00416666666667},
		{-2, 1, -0.0104166666667},
		{0, 1, 0.0625},
		{1, 1, 0.0625},
		{2, 1, 0.0104166666667},
		{3, 1, 0.00416666666667},
		{4, 1, 0.00223214285714},
		{-4, 2, -0.00223214285714},
		{-3, 2, -0.00416666666667},
		{-1, 2, 0.0104166666667},
		{0, 2, 0.0104166666667},
		{1, 2, 0.0104166666667},
		{2, 2, 0.03125},
		{3, 2, 0.00416666666667},
		{4, 2, 0.00223214285714},
		{-4, 3, -0.00223214285714},
		{-2, 3, 0.00416666666667},
		{-1, 3, 0.00416666666667},
		{0, 3, 0.00416666666667},
		{1, 3, 0.00416666666667},
		{2, 3, 0.00416666666667},
		{3, 3, 0.0208333333333},
		{4, 3, 0.00223214285714},
		{-3, 4, 0.00223214285714},
		{-2, 4, 0.00223214285714},
		{-1, 4, 0.00223214285714},
		{0, 4, 0.00223214285714},
		{1, 4, 0.00223214285714},
		{2, 4, 0.00223214285714},
		{3, 4, 0.00223214285714},
		{4, 4, 0.015625},
	},
	"grid5": {
		{-5, -5, -0.01},
		{-4, -5, -0.00111111111111},
		{-3, -5, -0.00111111111111},
		{-2, -5, -0.00111111111111},
		{-1, -5, -0.00111111111111},
		{0, -5, -0.00111111111111},
		{1, -5, -0.00111111111111},
		{2, -5, -0.00111111111111},
		{3, -5, -0.00111111111111},
		{4, -5, -0.00111111111111},
		{-5, -4, -0.00111111111111},
		{-4, -4, -0.0125},
		{-3, -4, -0.00178571428571},
		{-2, -4, -0.00178571428571},
		{-1, -4, -0.00178571428571},
		{0, -4, -0.00178571428571},
		{1, -4, -0.00178571428571},
		{2, -4, -0.00178571428571},
		{3, -4, -0.00178571428571},
		{5, -4, 0.00111111111111},
		{-5, -3, -0.00111111111111},
		{-4, -3, -0.00178571428571},
		{-3, -3, -0.0166666666667},
		{-2, -3, -0.00333333333333},
		{-1, -3, -0.00333333333333},
		{0, -3, -0.00333333333333},
		{1, -3, -0.00333333333333},
		{2, -3, -0.00333333333333},
		{4, -3, 0.00178571428571},
		{5, -3, 0.00111111111111},
		{-5, -2, -0.00111111111111},
		{-4, -2, -0.00178571428571},
		{-3, -2, -0.00333333333333},
		{-2, -2, -0.025},
		{-1, -2, -0.00833333333333},
		{0, -2, -0.00833333333333},
		{1, -2, -0.00833333333333},
		{3, -2, 0.00333333333333},
		{4, -2, 0.00178571428571},
		{5, -2, 0.00111111111111},
		{-5, -1, -0.00111111111111},
		{-4, -1, -0.00178571428571},
		{-3, -1, -0.00333333333333},
		{-2, -1, -0.00833333333333},
		{-1, -1, -0.05},
		{0, -1, -0.05},
		{2, -1, 0.00833333333333},
		{3, -1, 0.00333333333333},
		{4, -1, 0.00178571428571},
		{5, -1, 0.00111111111111},
		{-5, 0, -0.00111111111111},
		{-4, 0, -0.00178571428571},
		{-3, 0, -0.00333333333333},
		{-2, 0, -0.00833333333333},
		{-1, 0, -0.05},
		{1, 0, 0.05},
		{2, 0, 0.00833333333333},
		{3, 0, 0.00333333333333},
		{4, 0, 0.00178571428571},
		{5, 0, 0.00111111111111},
		{-5, 1, -0.00111111111111},
		{-4, 1, -0.00178571428571},
		{-3, 1, -0.00333333333333},
		{-2, 1, -0.00833333333333},
		{0, 1, 0.05},
		{1, 1, 0.05},
		{2, 1, 0.00833333333333},
		{3, 1, 0.00333333333333},
		{4, 1, 0.00178571428571},
		{5, 1, 0.00111111111111},
		{-5, 2, -0.00111111111111},
		{-4, 2, -0.00178571428571},
		{-3, 2, -0.00333333333333},
		{-1, 2, 0.00833333333333},
		{0, 2, 0.00833333333333},
		{1, 2, 0.00833333333333},
		{2, 2, 0.025},
		{3, 2, 0.00333333333333},
		{4, 2, 0.00178571428571},
		{5, 2, 0.00111111111111},
		{-5, 3, -0.00111111111111},
		{-4, 3, -0.00178571428571},
		{-2, 3, 0.00333333333333},
		{-1, 3, 0.00333333333333},
		{0, 3, 0.00333333333333},
		{1, 3, 0.00333333333333},
		{2, 3, 0.00333333333333},
		{3, 3, 0.0166666666667},
		{4, 3, 0.00178571428571},
		{5, 3, 0.00111111111111},
		{-5, 4, -0.00111111111111},
		{-3, 4, 0.00178571428571},
		{-2, 4, 0.00178571428571},
		{-1, 4, 0.00178571428571},
		{0, 4, 0.00178571428571},
		{1, 4, 0.00178571428571},
		{2, 4, 0.00178571428571},
		{3, 4, 0.00178571428571},
		{4, 4, 0.0125},
		{5, 4, 0.00111111111111},
		{-4, 5, 0.00111111111111},
		{-3, 5, 0.00111111111111},
		{-2, 5, 0.00111111111111},
		{-1, 5, 0.00111111111111},
		{0, 5, 0.00111111111111},
		{1, 5, 0.00111111111111},
		{2, 5, 0.00111111111111},
		{3, 5, 0.00111111111111},
		{4, 5, 0.00111111111111},
		{5, 5, 0.01},
	},
}

// The closed-form generator must reproduce every hand-unrolled table within
// 1e-8 relative, with no extra or missing terms.
func TestWeightTablesMatchReference(t *testing.T) {
	for _, shape := range []Shape{Star, Grid} {
		for radius := MinRadius; radius <= MaxRadius; radius++ {
			s, err := New(shape, radius)
			require.NoError(t, err)

			t.Run(s.Name(), func(t *testing.T) {
				want, ok := referenceTables[s.Name()]
				require.Truef(t, ok, "no reference table for %s", s.Name())

				got := s.Coefficients()
				require.Len(t, got, len(want))

				byOffset := make(map[[2]int]float64, len(want))
				for _, c := range want {
					byOffset[[2]int{c.Di, c.Dj}] = c.Weight
				}
				for _, c := range got {
					w, ok := byOffset[[2]int{c.Di, c.Dj}]
					require.Truef(t, ok, "generated offset (%d,%d) not in reference table", c.Di, c.Dj)
					assert.InEpsilonf(t, w, c.Weight, 1e-8, "weight at (%d,%d)", c.Di, c.Dj)
				}
			})
		}
	}
}

// A discrete derivative must annihilate constant fields: every table sums to
// zero.
func TestWeightTableSumsToZero(t *testing.T) {
	for _, shape := range []Shape{Star, Grid} {
		for radius := MinRadius; radius <= MaxRadius; radius++ {
			s, err := New(shape, radius)
			require.NoError(t, err)

			sum := 0.0
			for _, c := range s.Coefficients() {
				sum += c.Weight
			}
			assert.InDeltaf(t, 0.0, sum, 1e-14, "%s table sum", s.Name())
		}
	}
}

func TestUnsupportedStencil(t *testing.T) {
	for _, tc := range []struct {
		shape  Shape
		radius int
	}{
		{Star, 0},
		{Star, 6},
		{Grid, -1},
		{Grid, MaxRadius + 1},
	} {
		_, err := New(tc.shape, tc.radius)
		require.Errorf(t, err, "shape %s radius %d", tc.shape, tc.radius)
		assert.Contains(t, err.Error(), "stencil does not exist")
	}
}

func TestStencilSize(t *testing.T) {
	for radius := MinRadius; radius <= MaxRadius; radius++ {
		star, err := New(Star, radius)
		require.NoError(t, err)
		if star.Size() != 4*radius+1 {
			t.Errorf("star%d size: expected %d, got %d", radius, 4*radius+1, star.Size())
		}

		grid, err := New(Grid, radius)
		require.NoError(t, err)
		if want := (2*radius + 1) * (2*radius + 1); grid.Size() != want {
			t.Errorf("grid%d size: expected %d, got %d", radius, want, grid.Size())
		}
	}
}

func TestParseShape(t *testing.T) {
	if ParseShape("grid") != Grid {
		t.Error("expected grid token to select Grid")
	}
	// Anything else selects star, matching the reference driver.
	for _, token := range []string{"star", "", "box"} {
		if ParseShape(token) != Star {
			t.Errorf("expected token %q to select Star", token)
		}
	}
}

// Star offsets stay on the row and column through the center; grid offsets
// never exceed the radius in Chebyshev distance.
func TestOffsetPatterns(t *testing.T) {
	for radius := MinRadius; radius <= MaxRadius; radius++ {
		star, _ := New(Star, radius)
		for _, c := range star.Coefficients() {
			if c.Di != 0 && c.Dj != 0 {
				t.Errorf("star%d has diagonal offset (%d,%d)", radius, c.Di, c.Dj)
			}
		}

		grid, _ := New(Grid, radius)
		for _, c := range grid.Coefficients() {
			if c.Di == 0 && c.Dj == 0 {
				t.Errorf("grid%d includes the center", radius)
			}
			if max(abs(c.Di), abs(c.Dj)) > radius {
				t.Errorf("grid%d offset (%d,%d) outside radius", radius, c.Di, c.Dj)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
