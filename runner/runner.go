// Package runner orchestrates kernel compilation and execution on an OCCA
// device: building kernels from generated source, tracking device buffers,
// and enforcing the synchronize-after-every-submission execution model the
// benchmarks require for attributable timing.
package runner

import (
	"fmt"

	"github.com/notargets/gocca"
)

// Runner owns the kernels and device buffers of one benchmark run. Buffers
// are created once, mutated in place by kernel launches, and released with
// Free. The Runner does not own the device.
type Runner struct {
	Device  *gocca.OCCADevice
	Kernels map[string]*gocca.OCCAKernel
	Buffers map[string]*Buffer
}

// New creates a Runner bound to a device.
func New(device *gocca.OCCADevice) *Runner {
	if device == nil {
		panic("runner: nil device")
	}
	return &Runner{
		Device:  device,
		Kernels: make(map[string]*gocca.OCCAKernel),
		Buffers: make(map[string]*Buffer),
	}
}

// BuildKernel compiles kernelSource and registers the kernel under
// kernelName.
func (r *Runner) BuildKernel(kernelSource, kernelName string) (*gocca.OCCAKernel, error) {
	var kernel *gocca.OCCAKernel
	var err error

	if r.Device.Mode() == "OpenMP" {
		// Workaround for OCCA bug: OpenMP doesn't get default -O3 flag
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		kernel, err = r.Device.BuildKernelFromString(kernelSource, kernelName, props)
	} else {
		kernel, err = r.Device.BuildKernelFromString(kernelSource, kernelName, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to build kernel %s: %w", kernelName, err)
	}
	if kernel == nil {
		return nil, fmt.Errorf("kernel build returned nil for %s", kernelName)
	}

	r.Kernels[kernelName] = kernel
	return kernel, nil
}

// Run launches a registered kernel and blocks until the device finishes.
// Every submission synchronizes; the benchmarks never pipeline launches, so
// measured time is compute plus memory, not launch overhead.
func (r *Runner) Run(kernelName string, args ...interface{}) error {
	kernel, exists := r.Kernels[kernelName]
	if !exists {
		return fmt.Errorf("kernel %s not built", kernelName)
	}
	if err := kernel.RunWithArgs(args...); err != nil {
		return fmt.Errorf("kernel %s execution failed: %w", kernelName, err)
	}
	r.Device.Finish()
	return nil
}

// Free releases all kernels and buffers.
func (r *Runner) Free() {
	for _, kernel := range r.Kernels {
		kernel.Free()
	}
	for _, buf := range r.Buffers {
		buf.Free()
	}
}
