package stencil

import (
	"fmt"
	"strings"
)

// Grid dimensions, radius and tile size are baked into the generated source
// as compile-time constants; the only runtime kernel arguments are the device
// pointers. OKL @outer/@inner loop bounds must be known per launch anyway,
// and a benchmark run never changes its grid.

// KernelSource generates the OKL kernel applying the stencil to an n x n grid
// with the given tile size. Work is tiled into tile x tile blocks mapped to
// @outer loops; the interior guard leaves a radius-wide border untouched and
// also masks tile overshoot at the grid edge. The kernel accumulates into
// out; repeated launches keep adding, which the validation oracle expects.
func (s *Stencil) KernelSource(n, tile int) string {
	r := s.Radius
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("@kernel void %s(const double *in, double *out) {\n", s.Name()))
	sb.WriteString(fmt.Sprintf("  for (int bi = 0; bi < %d; ++bi; @outer) {\n", divCeil(n, tile)))
	sb.WriteString(fmt.Sprintf("    for (int bj = 0; bj < %d; ++bj; @outer) {\n", divCeil(n, tile)))
	sb.WriteString(fmt.Sprintf("      for (int li = 0; li < %d; ++li; @inner) {\n", tile))
	sb.WriteString(fmt.Sprintf("        for (int lj = 0; lj < %d; ++lj; @inner) {\n", tile))
	sb.WriteString(fmt.Sprintf("          const int i = bi * %d + li;\n", tile))
	sb.WriteString(fmt.Sprintf("          const int j = bj * %d + lj;\n", tile))
	sb.WriteString(fmt.Sprintf("          if ((i >= %d) && (i < %d) && (j >= %d) && (j < %d)) {\n",
		r, n-r, r, n-r))
	sb.WriteString(fmt.Sprintf("            out[i * %d + j] +=", n))
	for k, c := range s.coeffs {
		if k > 0 {
			sb.WriteString("\n                            +")
		}
		sb.WriteString(fmt.Sprintf(" in[%s * %d + %s] * %.17g",
			offsetExpr("i", c.Di), n, offsetExpr("j", c.Dj), c.Weight))
	}
	sb.WriteString(";\n")
	sb.WriteString("          }\n")
	sb.WriteString("        }\n")
	sb.WriteString("      }\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")

	return sb.String()
}

// InitKernelName and IncrementKernelName identify the supporting kernels
// built alongside the stencil operator.
const (
	InitKernelName      = "initGrid"
	IncrementKernelName = "addConstant"
)

// InitKernelSource generates the kernel that fills the input grid with the
// unit-slope pattern in[i][j] = i + j and zeroes the output grid.
func InitKernelSource(n, tile int) string {
	var sb strings.Builder
	writeGridLoopHead(&sb, InitKernelName, "double *in, double *out", n, tile)
	sb.WriteString(fmt.Sprintf("            in[i * %d + j] = (double)(i + j);\n", n))
	sb.WriteString(fmt.Sprintf("            out[i * %d + j] = 0.0;\n", n))
	writeGridLoopTail(&sb)
	return sb.String()
}

// IncrementKernelSource generates the kernel that adds one to every input
// cell, forcing a refresh of neighbor data between stencil applications.
func IncrementKernelSource(n, tile int) string {
	var sb strings.Builder
	writeGridLoopHead(&sb, IncrementKernelName, "double *in", n, tile)
	sb.WriteString(fmt.Sprintf("            in[i * %d + j] += 1.0;\n", n))
	writeGridLoopTail(&sb)
	return sb.String()
}

// writeGridLoopHead emits the shared tiled 2D loop nest covering every cell
// of an n x n grid, guarded against tile overshoot.
func writeGridLoopHead(sb *strings.Builder, name, params string, n, tile int) {
	sb.WriteString(fmt.Sprintf("@kernel void %s(%s) {\n", name, params))
	sb.WriteString(fmt.Sprintf("  for (int bi = 0; bi < %d; ++bi; @outer) {\n", divCeil(n, tile)))
	sb.WriteString(fmt.Sprintf("    for (int bj = 0; bj < %d; ++bj; @outer) {\n", divCeil(n, tile)))
	sb.WriteString(fmt.Sprintf("      for (int li = 0; li < %d; ++li; @inner) {\n", tile))
	sb.WriteString(fmt.Sprintf("        for (int lj = 0; lj < %d; ++lj; @inner) {\n", tile))
	sb.WriteString(fmt.Sprintf("          const int i = bi * %d + li;\n", tile))
	sb.WriteString(fmt.Sprintf("          const int j = bj * %d + lj;\n", tile))
	sb.WriteString(fmt.Sprintf("          if ((i < %d) && (j < %d)) {\n", n, n))
}

func writeGridLoopTail(sb *strings.Builder) {
	sb.WriteString("          }\n")
	sb.WriteString("        }\n")
	sb.WriteString("      }\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")
}

// offsetExpr renders an index expression like "(i - 2)" or "i".
func offsetExpr(v string, d int) string {
	switch {
	case d < 0:
		return fmt.Sprintf("(%s - %d)", v, -d)
	case d > 0:
		return fmt.Sprintf("(%s + %d)", v, d)
	default:
		return v
	}
}

func divCeil(a, b int) int {
	return (a + b - 1) / b
}
