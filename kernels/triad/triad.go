// Package triad defines the STREAM-style vector triad kernel
// A[i] += B[i] + scalar * C[i] in two work distributions: direct
// one-work-item-per-element mapping and a grid-strided loop over a fixed
// pool of work items. Both produce bit-identical results.
package triad

import (
	"fmt"
	"strings"
)

// BlockSize is the work-items-per-block width of both kernel variants.
const BlockSize = 256

// Kernel names as emitted in the generated source.
const (
	KernelName           = "nstream"
	GridStrideKernelName = "nstream2"
)

// KernelSource generates the direct-mapping OKL kernel for a length-n vector:
// one work item per element, bounds-guarded so items with index >= n do
// nothing. The vector length and launch dimensions are baked into the source;
// the scalar is a runtime argument.
func KernelSource(n int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("@kernel void %s(double *A, const double *B, const double *C, const double scalar) {\n", KernelName))
	sb.WriteString(fmt.Sprintf("  for (int b = 0; b < %d; ++b; @outer) {\n", numBlocks(n)))
	sb.WriteString(fmt.Sprintf("    for (int t = 0; t < %d; ++t; @inner) {\n", BlockSize))
	sb.WriteString(fmt.Sprintf("      const int i = b * %d + t;\n", BlockSize))
	sb.WriteString(fmt.Sprintf("      if (i < %d) {\n", n))
	sb.WriteString("        A[i] += B[i] + scalar * C[i];\n")
	sb.WriteString("      }\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")
	return sb.String()
}

// GridStrideKernelSource generates the grid-strided OKL kernel: each work
// item processes indices {i, i+stride, i+2*stride, ...} below n, where the
// stride is the total pool width. Exists to exercise the case where the
// element count exceeds the parallel unit count; must match the direct
// mapping for all n.
func GridStrideKernelSource(n int) string {
	stride := numBlocks(n) * BlockSize
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("@kernel void %s(double *A, const double *B, const double *C, const double scalar) {\n", GridStrideKernelName))
	sb.WriteString(fmt.Sprintf("  for (int b = 0; b < %d; ++b; @outer) {\n", numBlocks(n)))
	sb.WriteString(fmt.Sprintf("    for (int t = 0; t < %d; ++t; @inner) {\n", BlockSize))
	sb.WriteString(fmt.Sprintf("      for (int i = b * %d + t; i < %d; i += %d) {\n", BlockSize, n, stride))
	sb.WriteString("        A[i] += B[i] + scalar * C[i];\n")
	sb.WriteString("      }\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")
	return sb.String()
}

// Reference is the host-side reference implementation of one triad
// application, used to anchor the device kernels in tests.
func Reference(a []float64, b, c []float64, scalar float64) {
	for i := range a {
		a[i] += b[i] + scalar*c[i]
	}
}

func numBlocks(n int) int {
	return (n + BlockSize - 1) / BlockSize
}
