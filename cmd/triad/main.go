// The triad benchmark measures sustained memory bandwidth with the STREAM
// style vector update A = B + scalar * C on an OCCA device.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/notargets/accelbench/benchmark"
	"github.com/notargets/accelbench/utils"
)

func main() {
	fmt.Println("Parallel Research Kernels")
	fmt.Println("Go/OCCA STREAM triad: A = B + scalar * C")

	if len(os.Args) < 3 {
		fmt.Println("Usage: triad <# iterations> <vector length> [<grid_stride>]")
		os.Exit(1)
	}

	iterations, err := strconv.Atoi(os.Args[1])
	if err != nil || iterations < 1 {
		fmt.Println("ERROR: iterations must be >= 1")
		os.Exit(1)
	}

	length, err := strconv.Atoi(os.Args[2])
	if err != nil || length <= 0 {
		fmt.Println("ERROR: vector length must be positive")
		os.Exit(1)
	}

	gridStride := false
	if len(os.Args) > 3 {
		gridStride, err = utils.ParseBool(os.Args[3])
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Number of iterations = ", iterations)
	fmt.Println("Vector length        = ", length)
	fmt.Printf("Grid stride          = %s\n", utils.YesNo(gridStride))

	device := utils.CreateDevice()

	result, err := benchmark.RunTriad(device, benchmark.TriadConfig{
		Iterations: iterations,
		Length:     length,
		GridStride: gridStride,
	})
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		device.Free()
		os.Exit(1)
	}

	fmt.Println("Solution validates")
	fmt.Printf("Rate (MB/s): %f Avg time (s): %f\n", result.Rate, result.AvgTime)
	device.Free()
}
