package metrics

import "math"

// computeMean calculates the arithmetic mean, skipping missing (NaN)
// values. Infinite values are averaged like any other.
// Returns the mean and the number of values averaged; (0, 0) when none.
func computeMean(values []float64) (float64, int) {
	sum := 0.0
	n := 0
	finite := true
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsInf(v, 0) {
			finite = false
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, 0
	}
	if finite && math.IsInf(sum, 0) {
		return scaledMean(values, n), n
	}
	return sum / float64(n), n
}

// scaledMean divides before adding so a sum of finite values that
// overflows still yields the finite mean.
func scaledMean(values []float64, n int) float64 {
	mean := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			mean += v / float64(n)
		}
	}
	return mean
}

// computeDiffs returns successive differences v[i]-v[i-1] in order.
// A difference touching a missing (NaN) value is NaN. Differences of
// large finite values may overflow to ±Inf.
func computeDiffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}
	return diffs
}
