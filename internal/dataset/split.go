package dataset

import (
	"math"
	"math/rand"
	"sort"
)

// #region split

// Split partitions session names into calibration and evaluation subsets.
// Deterministic for identical inputs: names are sorted before a seeded
// Fisher-Yates shuffle, then the first round(ratio*M) go to calibration.
// The subsets are disjoint and cover the input exactly.
func Split(names []string, ratio float64, seed int64) (calib, eval []string) {
	shuffled := make([]string, len(names))
	copy(shuffled, names)
	sort.Strings(shuffled)

	rng := rand.New(rand.NewSource(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	n := int(math.Round(ratio * float64(len(shuffled))))
	if n < 0 {
		n = 0
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], shuffled[n:]
}

// SplitSessions applies Split to loaded sessions and resolves the name
// subsets back to the sessions themselves.
func SplitSessions(sessions []Session, ratio float64, seed int64) (calib, eval []Session) {
	byName := make(map[string]Session, len(sessions))
	names := make([]string, 0, len(sessions))
	for _, s := range sessions {
		byName[s.Name] = s
		names = append(names, s.Name)
	}
	calibNames, evalNames := Split(names, ratio, seed)
	for _, name := range calibNames {
		calib = append(calib, byName[name])
	}
	for _, name := range evalNames {
		eval = append(eval, byName[name])
	}
	return calib, eval
}

// #endregion split
