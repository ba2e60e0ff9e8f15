package benchmark

import (
	"fmt"

	"github.com/notargets/gocca"

	"github.com/notargets/accelbench/kernels/stencil"
	"github.com/notargets/accelbench/runner"
	"github.com/notargets/accelbench/utils"
)

// StencilConfig configures one stencil benchmark run.
type StencilConfig struct {
	Iterations int
	N          int // linear grid dimension
	TileSize   int // clamped to [1, N]; <= 0 means untiled (one tile of N)
	Shape      stencil.Shape
	Radius     int
}

// Validate rejects configurations the driver cannot run. Unsupported
// (shape, radius) pairs are caught later by the weight-table lookup.
func (cfg StencilConfig) Validate() error {
	if cfg.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1")
	}
	if cfg.N < 1 {
		return fmt.Errorf("grid dimension must be positive")
	}
	if cfg.N > utils.MaxMatrixDimension() {
		return fmt.Errorf("grid dimension too large - overflow risk")
	}
	if cfg.Radius < 1 || 2*cfg.Radius+1 > cfg.N {
		return fmt.Errorf("stencil radius negative or too large")
	}
	return nil
}

// tile returns the effective tile size.
func (cfg StencilConfig) tile() int {
	if cfg.TileSize <= 0 || cfg.TileSize > cfg.N {
		return cfg.N
	}
	return cfg.TileSize
}

// StencilResult reports the timed portion of a validated run.
type StencilResult struct {
	AvgTime float64 // seconds per timed iteration
	Rate    float64 // MFlops/s over interior cells
}

// RunStencil executes the stencil benchmark on device: initialize the grids
// on the device, then iterations+1 times apply the stencil and add one to
// every input cell (the perturbation forces fresh neighbor reads each pass),
// with the warm-up iteration excluded from timing. The output accumulates
// across iterations; the norm oracle is derived assuming that accumulation.
func RunStencil(device *gocca.OCCADevice, cfg StencilConfig) (*StencilResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := stencil.New(cfg.Shape, cfg.Radius)
	if err != nil {
		return nil, err
	}

	r := runner.New(device)
	defer r.Free()

	tile := cfg.tile()
	if _, err := r.BuildKernel(s.KernelSource(cfg.N, tile), s.Name()); err != nil {
		return nil, err
	}
	if _, err := r.BuildKernel(stencil.InitKernelSource(cfg.N, tile), stencil.InitKernelName); err != nil {
		return nil, err
	}
	if _, err := r.BuildKernel(stencil.IncrementKernelSource(cfg.N, tile), stencil.IncrementKernelName); err != nil {
		return nil, err
	}

	cells := cfg.N * cfg.N
	dIn := r.AllocFloat64("in", cells)
	dOut := r.AllocFloat64("out", cells)
	if err := r.Run(stencil.InitKernelName, dIn.Mem(), dOut.Mem()); err != nil {
		return nil, err
	}

	elapsed, err := TimeIterations(cfg.Iterations, func(int) error {
		if err := r.Run(s.Name(), dIn.Mem(), dOut.Mem()); err != nil {
			return err
		}
		return r.Run(stencil.IncrementKernelName, dIn.Mem())
	})
	if err != nil {
		return nil, err
	}

	hIn := make([]float64, cells)
	hOut := make([]float64, cells)
	if err := dIn.CopyTo(hIn); err != nil {
		return nil, err
	}
	if err := dOut.CopyTo(hOut); err != nil {
		return nil, err
	}
	if err := VerifyStencil(hIn, hOut, cfg.N, cfg.Radius, cfg.Iterations); err != nil {
		return nil, err
	}

	activePoints := float64(cfg.N-2*cfg.Radius) * float64(cfg.N-2*cfg.Radius)
	flops := float64(2*s.Size()+1) * activePoints
	avgTime := elapsed.Seconds() / float64(cfg.Iterations)
	return &StencilResult{
		AvgTime: avgTime,
		Rate:    1.0e-6 * flops / avgTime,
	}, nil
}
