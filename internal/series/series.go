// Package series derives the scalar magnitude signal consumed by the step
// detectors from a decoded recording.
package series

import (
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/scl"
)

// #region point

// Point is one sample of the magnitude signal: a time offset in seconds
// from the recording's start timestamp, and the scalar magnitude.
type Point struct {
	Offset float64
	Mag    float64
}

// #endregion point

// #region build

// Build flattens a recording into an evenly spaced magnitude series.
// Recordings that store a precomputed on-device magnitude use it verbatim;
// xyz-only recordings compute the magnitude with the same integer norm the
// firmware would have used (L1 or approximate L2 per the L1 flag).
// Offsets are synthesized from the configured sampling rate, one sample per
// 1/rate seconds, since raw logs carry no per-sample timestamps.
func Build(rec *scl.Recording) []Point {
	rate := rec.SampleRate()
	points := make([]Point, 0, rec.SampleCount())

	i := 0
	for _, block := range rec.Blocks {
		for _, s := range block.Samples {
			var mag uint32
			switch {
			case rec.DataType.HasMag():
				mag = s.Mag
			case rec.DataType.IsL1():
				mag = L1Norm(s.X, s.Y, s.Z)
			default:
				mag = L2Norm(s.X, s.Y, s.Z)
			}
			points = append(points, Point{
				Offset: float64(i) / rate,
				Mag:    float64(mag),
			})
			i++
		}
	}
	return points
}

// Magnitudes returns just the magnitude values, in sample order. This is
// the shape the detectors consume.
func Magnitudes(rec *scl.Recording) []float64 {
	points := Build(rec)
	mags := make([]float64, len(points))
	for i, p := range points {
		mags[i] = p.Mag
	}
	return mags
}

// #endregion build
