package series

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/scl"
)

func TestAbs16(t *testing.T) {
	cases := []struct {
		in   int16
		want uint16
	}{
		{0, 0}, {1, 1}, {-1, 1}, {32767, 32767}, {-32767, 32767}, {-32768, 32768},
	}
	for _, c := range cases {
		if got := Abs16(c.in); got != c.want {
			t.Errorf("Abs16(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestL1Norm(t *testing.T) {
	if got := L1Norm(3, -4, 5); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
	if got := L1Norm(-32768, -32768, -32768); got != 3*32768 {
		t.Errorf("expected %d, got %d", 3*32768, got)
	}
}

func TestL2Norm_ShiftWeights(t *testing.T) {
	// Largest weighted 1, middle 15/16, smallest 3/8, all via integer
	// shifts on the sorted absolute values.
	cases := []struct {
		x, y, z int16
		want    uint32
	}{
		{100, 0, 0, 100},
		{0, 100, 0, 100},
		{16, 16, 16, 16 + (15*16)>>4 + (3*16)>>3}, // 16 + 15 + 6 = 37
		{-16, 16, -16, 37},
		{1000, 500, 100, 1000 + (15*500)>>4 + (3*100)>>3},
		{100, 500, 1000, 1000 + (15*500)>>4 + (3*100)>>3}, // order-independent
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := L2Norm(c.x, c.y, c.z); got != c.want {
			t.Errorf("L2Norm(%d,%d,%d) = %d, want %d", c.x, c.y, c.z, got, c.want)
		}
	}
}

func TestL2Norm_ApproximatesEuclidean(t *testing.T) {
	// Sanity check only: the approximation should stay within a few
	// percent of the true norm for typical accelerometer magnitudes.
	vecs := [][3]int16{{1000, 1000, 1000}, {4096, 0, 0}, {3000, 2000, 1000}}
	for _, v := range vecs {
		approx := float64(L2Norm(v[0], v[1], v[2]))
		exact := math.Sqrt(float64(v[0])*float64(v[0]) +
			float64(v[1])*float64(v[1]) + float64(v[2])*float64(v[2]))
		if rel := math.Abs(approx-exact) / exact; rel > 0.08 {
			t.Errorf("vec %v: approx %.0f vs exact %.0f (rel err %.3f)", v, approx, exact, rel)
		}
	}
}

func TestBuild_MagRecording(t *testing.T) {
	rec := &scl.Recording{
		Version:  scl.Version,
		Device:   scl.DeviceConfig{DataRate: 0b0011}, // 25 Hz
		DataType: scl.DataMag,
		Blocks: []scl.Block{
			{Samples: []scl.Sample{{Mag: 10}, {Mag: 20}}},
			{Samples: []scl.Sample{{Mag: 30}}},
		},
	}

	points := Build(rec)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	wantMags := []float64{10, 20, 30}
	wantOffsets := []float64{0, 0.04, 0.08}
	for i, p := range points {
		if p.Mag != wantMags[i] {
			t.Errorf("point %d: mag %v, want %v", i, p.Mag, wantMags[i])
		}
		if math.Abs(p.Offset-wantOffsets[i]) > 1e-9 {
			t.Errorf("point %d: offset %v, want %v", i, p.Offset, wantOffsets[i])
		}
	}
}

func TestBuild_XYZUsesConfiguredNorm(t *testing.T) {
	rec := &scl.Recording{
		Version:  scl.Version,
		Device:   scl.DeviceConfig{DataRate: 0b0010},
		DataType: scl.DataXYZ,
		Blocks:   []scl.Block{{Samples: []scl.Sample{{X: 16, Y: -16, Z: 16}}}},
	}

	if got := Magnitudes(rec)[0]; got != 37 { // approximate L2
		t.Errorf("L2 path: got %v, want 37", got)
	}

	rec.DataType = scl.DataXYZ | scl.DataL1
	if got := Magnitudes(rec)[0]; got != 48 { // 16+16+16
		t.Errorf("L1 path: got %v, want 48", got)
	}
}

func TestBuild_EmptyRecording(t *testing.T) {
	rec := &scl.Recording{
		Version:  scl.Version,
		Device:   scl.DeviceConfig{DataRate: 0b0010},
		DataType: scl.DataMag,
	}
	if points := Build(rec); len(points) != 0 {
		t.Errorf("expected empty series, got %d points", len(points))
	}
}
