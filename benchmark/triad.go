package benchmark

import (
	"fmt"

	"github.com/notargets/gocca"

	"github.com/notargets/accelbench/kernels/triad"
	"github.com/notargets/accelbench/runner"
)

// Scalar is the triad multiplier. The checksum oracle assumes it.
const Scalar = 3.0

const bytesPerFloat64 = 8

// TriadConfig configures one triad benchmark run.
type TriadConfig struct {
	Iterations int
	Length     int
	GridStride bool
}

// Validate rejects configurations the driver cannot run.
func (cfg TriadConfig) Validate() error {
	if cfg.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1")
	}
	if cfg.Length <= 0 {
		return fmt.Errorf("vector length must be positive")
	}
	return nil
}

// TriadResult reports the timed portion of a validated run.
type TriadResult struct {
	AvgTime float64 // seconds per timed iteration
	Rate    float64 // MB/s: 4 words moved per element per iteration
}

// RunTriad executes the triad benchmark on device: allocate and fill the
// three vectors, run the kernel iterations+1 times under the warm-up timing
// protocol, read back A, and validate its checksum against the oracle.
func RunTriad(device *gocca.OCCADevice, cfg TriadConfig) (*TriadResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := runner.New(device)
	defer r.Free()

	source, name := triad.KernelSource(cfg.Length), triad.KernelName
	if cfg.GridStride {
		source, name = triad.GridStrideKernelSource(cfg.Length), triad.GridStrideKernelName
	}
	if _, err := r.BuildKernel(source, name); err != nil {
		return nil, err
	}

	hA := make([]float64, cfg.Length)
	hB := make([]float64, cfg.Length)
	hC := make([]float64, cfg.Length)
	for i := range hA {
		hB[i] = triadInitB
		hC[i] = triadInitC
	}

	dA := r.AllocFloat64("A", cfg.Length)
	dB := r.AllocFloat64("B", cfg.Length)
	dC := r.AllocFloat64("C", cfg.Length)
	for _, xfer := range []struct {
		buf  *runner.Buffer
		host []float64
	}{{dA, hA}, {dB, hB}, {dC, hC}} {
		if err := xfer.buf.CopyFrom(xfer.host); err != nil {
			return nil, err
		}
	}

	elapsed, err := TimeIterations(cfg.Iterations, func(int) error {
		return r.Run(name, dA.Mem(), dB.Mem(), dC.Mem(), Scalar)
	})
	if err != nil {
		return nil, err
	}

	if err := dA.CopyTo(hA); err != nil {
		return nil, err
	}
	if err := VerifyTriad(hA, cfg.Iterations, Scalar); err != nil {
		return nil, err
	}

	avgTime := elapsed.Seconds() / float64(cfg.Iterations)
	nbytes := 4.0 * float64(cfg.Length) * bytesPerFloat64
	return &TriadResult{
		AvgTime: avgTime,
		Rate:    1.0e-6 * nbytes / avgTime,
	}, nil
}
