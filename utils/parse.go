// Package utils holds the small host-side helpers the benchmark drivers
// share: device acquisition, CLI token parsing, and the overflow-safe grid
// size bound.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// ParseBool interprets common truthy and falsy command-line tokens.
func ParseBool(token string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as a boolean", token)
}

// YesNo renders a flag the way the parameter echo prints it.
func YesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// MaxMatrixDimension is the largest grid dimension n for which the linearized
// index i*n+j still fits in a 32-bit int; kernel index arithmetic uses C int.
func MaxMatrixDimension() int {
	return int(math.Sqrt(float64(math.MaxInt32)))
}
