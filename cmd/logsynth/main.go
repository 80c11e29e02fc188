package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/scl"
)

// #region main

func main() {
	outDir := flag.String("out", ".", "output directory")
	count := flag.Int("count", 1, "number of logs to generate")
	steps := flag.Int("steps", 40, "labeled steps per log")
	rate := flag.String("rate", "25", "sample rate: 12.5, 25 or 50")
	seed := flag.Int64("seed", time.Now().UnixNano(), "noise seed")
	b64 := flag.Bool("base64", false, "write base64 transport encoding instead of raw bytes")
	flag.Parse()

	dataRate, ok := map[string]uint8{"12.5": 0b0010, "25": 0b0011, "50": 0b0100}[*rate]
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: logsynth [--out dir] [--count N] [--steps N] [--rate 12.5|25|50] [--seed N] [--base64]")
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		rec := synthesize(rng, dataRate, uint8(i), *steps)
		data := scl.Encode(rec)
		if *b64 {
			data = []byte(base64.StdEncoding.EncodeToString(data))
		}
		path := filepath.Join(*outDir, fmt.Sprintf("synth-%03d.scl", i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d samples, %d steps\n", path, rec.SampleCount(), rec.Steps)
	}
}

// #endregion main

// #region synthesize

// synthesize builds a labeled magnitude recording: a noisy gravity
// baseline with one raised-cosine pulse per step. The label matches the
// pulse count exactly, so decoded logs double as detector fixtures.
func synthesize(rng *rand.Rand, dataRate, index uint8, steps int) *scl.Recording {
	const (
		baseline    = 16384 // 1g on the device scale
		pulseHeight = 14000
		pulseWidth  = 6
		gap         = 20
	)

	total := steps*gap + gap
	mags := make([]uint32, total)
	for i := range mags {
		mags[i] = uint32(baseline + rng.Intn(400))
	}
	for s := 1; s <= steps; s++ {
		center := s * gap
		for k := -pulseWidth / 2; k <= pulseWidth/2; k++ {
			shape := 0.5 * (1 + math.Cos(2*math.Pi*float64(k)/float64(pulseWidth+1)))
			mags[center+k] += uint32(pulseHeight * shape)
		}
	}

	rec := &scl.Recording{
		Version:  scl.Version,
		Device:   scl.DeviceConfig{Mode: 0b01, DataRate: dataRate, Range: 0b01},
		DataType: scl.DataMag,
		Index:    index,
		StartTS:  uint32(time.Now().Unix()),
		HasLabel: true,
		Steps:    uint16(steps),
	}

	// Blocks mirror the device FIFO: bursts of up to 32 samples.
	for off := 0; off < total; off += 32 {
		end := off + 32
		if end > total {
			end = total
		}
		var blk scl.Block
		for _, m := range mags[off:end] {
			blk.Samples = append(blk.Samples, scl.Sample{Mag: m})
		}
		rec.Blocks = append(rec.Blocks, blk)
	}
	return rec
}

// #endregion synthesize
