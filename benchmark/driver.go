// Package benchmark implements the timed-iteration protocol shared by the
// triad and stencil benchmarks, the closed-form validation oracles, and the
// end-to-end benchmark runs.
package benchmark

import (
	"time"
)

// TimeIterations executes body iterations+1 times. Iteration 0 is a warm-up:
// the timer starts once it completes, so the returned duration spans
// iterations 1..iterations only. The body runs identically on every
// iteration, warm-up included. The first error aborts the loop; there is no
// retry.
func TimeIterations(iterations int, body func(iter int) error) (time.Duration, error) {
	var start time.Time
	for iter := 0; iter <= iterations; iter++ {
		if iter == 1 {
			start = time.Now()
		}
		if err := body(iter); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}
