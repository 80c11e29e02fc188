package detect

import "math"

// #region moving-window

// Boundary policy: windows shrink to the available samples at the edges of
// the signal. Boundary samples are never skipped, so a log decodes to the
// same detections a continuous stream would have produced in the field.

// trailingMeans returns the moving average over the last win samples
// ending at each index.
func trailingMeans(x []float64, win int) []float64 {
	if win < 1 {
		win = 1
	}
	out := make([]float64, len(x))
	sum := 0.0
	for i, v := range x {
		sum += v
		n := win
		if i >= win {
			sum -= x[i-win]
		} else {
			n = i + 1
		}
		out[i] = sum / float64(n)
	}
	return out
}

// centeredStats returns mean and standard deviation over a centered window
// of half-width win around each index.
func centeredStats(x []float64, win int) (means, stds []float64) {
	n := len(x)
	if win < 0 {
		win = 0
	}
	prefix := make([]float64, n+1)
	prefixSq := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
		prefixSq[i+1] = prefixSq[i] + v*v
	}

	means = make([]float64, n)
	stds = make([]float64, n)
	for i := 0; i < n; i++ {
		lo := i - win
		if lo < 0 {
			lo = 0
		}
		hi := i + win + 1
		if hi > n {
			hi = n
		}
		count := float64(hi - lo)
		m := (prefix[hi] - prefix[lo]) / count
		v := (prefixSq[hi]-prefixSq[lo])/count - m*m
		if v < 0 {
			v = 0 // numeric noise
		}
		means[i] = m
		stds[i] = math.Sqrt(v)
	}
	return means, stds
}

// centeredMeans returns just the centered moving average.
func centeredMeans(x []float64, win int) []float64 {
	means, _ := centeredStats(x, win)
	return means
}

// #endregion moving-window
