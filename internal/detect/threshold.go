package detect

// #region registration

func init() {
	register("threshold", Factory{
		New: func(p Params) Detector {
			return &thresholdDetector{threshold: p.Get("threshold", 100)}
		},
		Grid: Grid{
			"threshold": linspaceInt(20000, 40000, 100),
		},
	})
	register("threshold-lp", Factory{
		New: func(p Params) Detector {
			return &thresholdLP{
				threshold: p.Get("threshold", 100),
				winSize:   p.Int("win_size", 100),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(20000, 32000, 100),
			"win_size":  logspaceInt(0, 2, 50),
		},
	})
	register("threshold-hp", Factory{
		New: func(p Params) Detector {
			return &thresholdHP{
				threshold: p.Get("threshold", 100),
				winSize:   p.Int("win_size", 100),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(1000, 8000, 100),
			"win_size":  logspaceInt(0, 2, 50),
		},
	})
	register("threshold-min", Factory{
		New: func(p Params) Detector {
			return &thresholdMin{
				threshold: p.Get("threshold", 100),
				minStep:   p.Int("min_step", 10),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(23000, 30000, 100),
			"min_step":  linspaceInt(1, 10, 10),
		},
	})
	register("threshold-max", Factory{
		New: func(p Params) Detector {
			return &thresholdMax{
				threshold: p.Get("threshold", 100),
				maxStep:   p.Int("max_step", 10),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(23000, 34000, 100),
			"max_step":  linspaceInt(1, 40, 40),
		},
	})
	register("threshold-bound", Factory{
		New: func(p Params) Detector {
			return &thresholdBound{
				threshold: p.Get("threshold", 100),
				minStep:   p.Int("min_step", 10),
				maxStep:   p.Int("max_step", 10),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(23000, 34000, 100),
			"max_step":  linspaceInt(1, 40, 40),
			"min_step":  linspaceInt(1, 10, 10),
		},
	})
	register("threshold-ultra", Factory{
		New: func(p Params) Detector {
			return &thresholdUltra{
				threshold: p.Get("threshold", 100),
				minStep:   p.Int("min_step", 10),
				maxStep:   p.Int("max_step", 10),
				winLP:     p.Int("win_lp", 100),
				winHP:     p.Int("win_hp", 100),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(1000, 5000, 25),
			"max_step":  linspaceInt(0, 30, 10),
			"min_step":  linspaceInt(0, 4, 4),
			"win_lp":    logspaceInt(0, 2, 5),
			"win_hp":    logspaceInt(0, 2, 5),
		},
	})
}

// #endregion registration

// #region crossing-primitive

// crossings counts rising threshold crossings: a step is counted when the
// signal rises above the threshold from below, and the counter re-arms only
// after the signal drops back under. A plateau above the threshold is one
// step, not one per sample.
func crossings(x []float64, threshold float64) int {
	steps := 0
	above := false
	for _, v := range x {
		if !above && v > threshold {
			steps++
			above = true
		} else if above && v < threshold {
			above = false
		}
	}
	return steps
}

// #endregion crossing-primitive

// #region threshold

// thresholdDetector counts rising crossings above a static magnitude
// threshold.
type thresholdDetector struct {
	threshold float64
}

func (d *thresholdDetector) DetectSteps(x []float64) int {
	return crossings(x, d.threshold)
}

// #endregion threshold

// #region threshold-lp

// thresholdLP low-pass filters the signal with a trailing moving average
// before thresholding, removing high-frequency noise.
type thresholdLP struct {
	threshold float64
	winSize   int
}

func (d *thresholdLP) DetectSteps(x []float64) int {
	return crossings(trailingMeans(x, d.winSize), d.threshold)
}

// #endregion threshold-lp

// #region threshold-hp

// thresholdHP subtracts the trailing moving average before thresholding,
// removing the static gravity component.
type thresholdHP struct {
	threshold float64
	winSize   int
}

func (d *thresholdHP) DetectSteps(x []float64) int {
	means := trailingMeans(x, d.winSize)
	hp := make([]float64, len(x))
	for i, v := range x {
		hp[i] = v - means[i]
	}
	return crossings(hp, d.threshold)
}

// #endregion threshold-hp

// #region threshold-min

// thresholdMin debounces crossings: detections closer than minStep samples
// to the previous accepted detection are discarded.
type thresholdMin struct {
	threshold float64
	minStep   int
}

func (d *thresholdMin) DetectSteps(x []float64) int {
	steps := 0
	lastStep := -d.minStep
	above := false

	for i, v := range x {
		if !above && v > d.threshold {
			if i-lastStep >= d.minStep {
				steps++
				lastStep = i
			}
			above = true
		} else if above && v < d.threshold {
			above = false
		}
	}
	return steps
}

// #endregion threshold-min

// #region threshold-max

// thresholdMax retroactively drops a detection when the gaps around it both
/// exceed maxStep samples: an isolated crossing that far from a walking
// cadence is drift, not a step. Long gaps only shed the stray detection,
// never the session.
type thresholdMax struct {
	threshold float64
	maxStep   int
}

func (d *thresholdMax) DetectSteps(x []float64) int {
	steps := 0
	last1 := -1
	last2 := last1
	above := false

	for i, v := range x {
		if !above && v > d.threshold {
			steps++
			last2 = last1
			last1 = i
			above = true
		} else if above && v < d.threshold {
			above = false
		}

		if i-last1 > d.maxStep && last1-last2 > d.maxStep {
			steps--
			last1 = last2
		}
	}
	return steps
}

// #endregion threshold-max

// #region threshold-bound

// thresholdBound combines the debounce lower bound and the drift upper
// bound around the crossing primitive.
type thresholdBound struct {
	threshold float64
	minStep   int
	maxStep   int
}

func (d *thresholdBound) DetectSteps(x []float64) int {
	steps := 0
	last1 := -d.minStep
	last2 := last1
	above := false

	for i, v := range x {
		if !above && v > d.threshold {
			if i-last1 >= d.minStep {
				steps++
				last2 = last1
				last1 = i
				above = true
			}
		} else if above && v < d.threshold {
			above = false
		}

		if i-last1 > d.maxStep && last1-last2 > d.maxStep {
			steps--
			last1 = last2
		}
	}
	return steps
}

// #endregion threshold-bound

// #region threshold-ultra

// thresholdUltra composes the low-pass and high-pass filters with both
// step-interval bounds, each filter with an independent window.
type thresholdUltra struct {
	threshold float64
	minStep   int
	maxStep   int
	winLP     int
	winHP     int
}

func (d *thresholdUltra) DetectSteps(x []float64) int {
	filtered := x
	if d.winLP > 0 {
		filtered = trailingMeans(x, d.winLP)
	}
	if d.winHP > 0 {
		hpMeans := trailingMeans(x, d.winHP)
		hp := make([]float64, len(x))
		for i := range x {
			hp[i] = filtered[i] - hpMeans[i]
		}
		filtered = hp
	}

	steps := 0
	last1 := -d.minStep
	last2 := last1
	above := false

	for i, v := range filtered {
		if !above && v > d.threshold {
			if i-last1 >= d.minStep {
				steps++
				last2 = last1
				last1 = i
				above = true
			}
		} else if above && v < d.threshold {
			above = false
		}

		if d.maxStep > 0 && i-last1 > d.maxStep && last1-last2 > d.maxStep {
			steps--
			last1 = last2
		}
	}
	return steps
}

// #endregion threshold-ultra
