package detect

import (
	"fmt"
	"math"
	"sort"
)

// #region grid

// Grid maps parameter name to its ordered candidate values. The search
// space is the full cartesian product.
type Grid map[string][]float64

// Expand enumerates the cartesian product of the grid in deterministic
// order: parameter names sorted, last name varying fastest. An empty
// candidate set for a declared parameter is a configuration error.
func Expand(g Grid) ([]Params, error) {
	names := make([]string, 0, len(g))
	for name := range g {
		if len(g[name]) == 0 {
			return nil, fmt.Errorf("%w: empty candidate set for %q", ErrConfig, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	total := 1
	for _, name := range names {
		total *= len(g[name])
	}

	out := make([]Params, 0, total)
	idx := make([]int, len(names))
	for {
		p := make(Params, len(names))
		for i, name := range names {
			p[name] = g[name][idx[i]]
		}
		out = append(out, p)

		// Advance the odometer, last position fastest.
		i := len(names) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g[names[i]]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return out, nil
}

// #endregion grid

// #region spacing-helpers

// linspaceInt mirrors numpy's linspace(...).astype(int): n evenly spaced
// values over [start, stop] inclusive, truncated to integers.
func linspaceInt(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = math.Trunc(start)
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = math.Trunc(start + step*float64(i))
	}
	out[n-1] = math.Trunc(stop) // pin the endpoint against rounding drift
	return out
}

// logspaceInt mirrors unique(logspace(a, b, n).astype(int)): n
// logarithmically spaced values over [10^a, 10^b], truncated and
// deduplicated in ascending order.
func logspaceInt(a, b float64, n int) []float64 {
	seen := make(map[float64]bool, n)
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		e := a
		if n > 1 {
			e = a + (b-a)*float64(i)/float64(n-1)
		}
		v := math.Trunc(math.Pow(10, e))
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// linspace is the float variant, without truncation.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

// #endregion spacing-helpers
