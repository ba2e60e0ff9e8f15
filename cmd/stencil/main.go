// The stencil benchmark measures the rate at which a space-invariant linear
// filter can be applied to a square grid on an OCCA device.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/notargets/accelbench/benchmark"
	"github.com/notargets/accelbench/kernels/stencil"
	"github.com/notargets/accelbench/utils"
)

func main() {
	fmt.Println("Parallel Research Kernels")
	fmt.Println("Go/OCCA Stencil execution on 2D grid")

	if len(os.Args) < 3 {
		fmt.Println("Usage: stencil <# iterations> <array dimension> [<tile_size> <star/grid> <radius>]")
		os.Exit(1)
	}

	iterations, err := strconv.Atoi(os.Args[1])
	if err != nil || iterations < 1 {
		fmt.Println("ERROR: iterations must be >= 1")
		os.Exit(1)
	}

	n, err := strconv.Atoi(os.Args[2])
	if err != nil || n < 1 {
		fmt.Println("ERROR: grid dimension must be positive")
		os.Exit(1)
	}
	if n > utils.MaxMatrixDimension() {
		fmt.Println("ERROR: grid dimension too large - overflow risk")
		os.Exit(1)
	}

	tileSize := 32
	if len(os.Args) > 3 {
		tileSize, err = strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Println("ERROR: tile size must be an integer")
			os.Exit(1)
		}
		if tileSize <= 0 || tileSize > n {
			tileSize = n
		}
	}

	shape := stencil.Star
	if len(os.Args) > 4 {
		shape = stencil.ParseShape(os.Args[4])
	}

	radius := 2
	if len(os.Args) > 5 {
		radius, err = strconv.Atoi(os.Args[5])
		if err != nil {
			fmt.Println("ERROR: radius must be an integer")
			os.Exit(1)
		}
	}
	if radius < 1 || 2*radius+1 > n {
		fmt.Println("ERROR: Stencil radius negative or too large")
		os.Exit(1)
	}

	fmt.Println("Number of iterations = ", iterations)
	fmt.Println("Grid size            = ", n)
	fmt.Println("Tile size            = ", tileSize)
	fmt.Println("Type of stencil      = ", shape)
	fmt.Println("Radius of stencil    = ", radius)

	device := utils.CreateDevice()

	result, err := benchmark.RunStencil(device, benchmark.StencilConfig{
		Iterations: iterations,
		N:          n,
		TileSize:   tileSize,
		Shape:      shape,
		Radius:     radius,
	})
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		device.Free()
		os.Exit(1)
	}

	fmt.Println("Solution validates")
	fmt.Printf("Rate (MFlops/s): %f Avg time (s): %f\n", result.Rate, result.AvgTime)
	device.Free()
}
