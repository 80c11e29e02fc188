package detect

import "math"

// 8-bit variants divide every magnitude by 256 before detection, matching
// the reduced-precision arithmetic a deployed on-device counter would use.
// Calibrating them answers whether the cheaper pipeline loses accuracy.

// #region registration

func init() {
	register("threshold-bound8", Factory{
		New: func(p Params) Detector {
			return &thresholdBound8{
				threshold: p.Get("threshold", 100),
				minStep:   p.Int("min_step", 10),
				maxStep:   p.Int("max_step", 10),
			}
		},
		Grid: Grid{
			"threshold": {100},
			"max_step":  {20},
			"min_step":  {10},
		},
	})
	register("threshold-hp8", Factory{
		New: func(p Params) Detector {
			return &thresholdHP8{
				threshold: p.Get("threshold", 100),
				winSize:   p.Int("win_size", 100),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(1, 100, 100),
			"win_size":  linspaceInt(10, 100, 90),
		},
	})
	register("threshold-min8", Factory{
		New: func(p Params) Detector {
			return &thresholdMin8{
				threshold: p.Get("threshold", 100),
				minStep:   p.Int("min_step", 10),
			}
		},
		Grid: Grid{
			"threshold": linspaceInt(0, 100, 100),
			"min_step":  linspaceInt(1, 10, 10),
		},
	})
}

// #endregion registration

// #region quantize

// quantize8 scales the series down to 8-bit range the way the device
// firmware would: integer division by 256.
func quantize8(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Floor(v / 256)
	}
	return out
}

// #endregion quantize

// #region variants

type thresholdBound8 struct {
	threshold float64
	minStep   int
	maxStep   int
}

func (d *thresholdBound8) DetectSteps(x []float64) int {
	inner := thresholdBound{threshold: d.threshold, minStep: d.minStep, maxStep: d.maxStep}
	return inner.DetectSteps(quantize8(x))
}

type thresholdHP8 struct {
	threshold float64
	winSize   int
}

func (d *thresholdHP8) DetectSteps(x []float64) int {
	inner := thresholdHP{threshold: d.threshold, winSize: d.winSize}
	return inner.DetectSteps(quantize8(x))
}

type thresholdMin8 struct {
	threshold float64
	minStep   int
}

func (d *thresholdMin8) DetectSteps(x []float64) int {
	inner := thresholdMin{threshold: d.threshold, minStep: d.minStep}
	return inner.DetectSteps(quantize8(x))
}

// #endregion variants
