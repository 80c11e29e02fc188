package detect

// #region registration

func init() {
	register("peak-detect", Factory{
		New: func(p Params) Detector {
			return &peakDetect{
				meanWin:   p.Int("mean_win", 12),
				detectWin: p.Int("detect_win", 12),
				bounceWin: p.Int("bounce_win", 3),
				thres:     p.Get("thres", 1.2),
			}
		},
		Grid: Grid{
			"mean_win":   logspaceInt(0, 2, 10),
			"detect_win": logspaceInt(0, 2, 10),
			"bounce_win": logspaceInt(0, 2, 10),
			"thres":      linspace(1.0, 3.0, 25),
		},
	})
}

// #endregion registration

// #region peak-detect

// peakDetect finds local maxima: a sample is a peak candidate when it
// exceeds the local mean by thres standard deviations within a centered
// detect window; candidates closer than bounceWin samples collapse into the
// strongest of their group, suppressing mechanical bounce.
type peakDetect struct {
	meanWin   int
	detectWin int
	bounceWin int
	thres     float64
}

func (d *peakDetect) DetectSteps(x []float64) int {
	if len(x) == 0 {
		return 0
	}
	diffs := d.meanDiffs(x)
	outliers := d.findOutliers(diffs)
	peaks := d.filterBounces(outliers, diffs)
	return len(peaks)
}

// meanDiffs is each sample's difference from its centered neighborhood
// mean.
func (d *peakDetect) meanDiffs(x []float64) []float64 {
	means := centeredMeans(x, d.meanWin)
	diffs := make([]float64, len(x))
	for i, v := range x {
		diffs[i] = v - means[i]
	}
	return diffs
}

// findOutliers returns indices where the signal exceeds the rolling mean
// by thres rolling standard deviations.
func (d *peakDetect) findOutliers(x []float64) []int {
	means, stds := centeredStats(x, d.detectWin)
	var outliers []int
	for i, v := range x {
		if v-means[i] > d.thres*stds[i] {
			outliers = append(outliers, i)
		}
	}
	return outliers
}

// filterBounces groups consecutive outliers separated by less than
// bounceWin samples and keeps only the strongest of each group.
func (d *peakDetect) filterBounces(outliers []int, diffs []float64) []int {
	if len(outliers) == 0 {
		return nil
	}

	var filtered []int
	groupStart := 0
	flush := func(end int) {
		strongest := outliers[groupStart]
		for _, idx := range outliers[groupStart:end] {
			if diffs[idx] > diffs[strongest] {
				strongest = idx
			}
		}
		filtered = append(filtered, strongest)
	}

	for i := 1; i < len(outliers); i++ {
		if outliers[i]-outliers[i-1] >= d.bounceWin {
			flush(i)
			groupStart = i
		}
	}
	flush(len(outliers))
	return filtered
}

// #endregion peak-detect
