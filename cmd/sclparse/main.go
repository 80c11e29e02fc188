package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/scl"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/series"
)

// #region main

func main() {
	headerOnly := flag.Bool("header", false, "print header info only")
	csvPath := flag.String("csv", "", "export readings to CSV file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sclparse [--header] [--csv out.csv] <log.scl>")
		os.Exit(2)
	}

	rec, err := scl.DecodeFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	printHeader(rec)
	if *headerOnly {
		return
	}
	printStats(rec)

	if *csvPath != "" {
		if err := exportCSV(rec, *csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "export csv: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region header

var (
	modeNames = map[uint8]string{0b00: "Low power", 0b01: "High performance", 0b10: "Single on demand"}
	rateNames = map[uint8]string{0b0001: "1.6 Hz", 0b0010: "12.5 Hz", 0b0011: "25 Hz", 0b0100: "50 Hz"}
	bwfNames  = map[uint8]string{0b00: "ODR/2", 0b01: "ODR/4", 0b10: "ODR/10", 0b11: "ODR/20"}
	rangeName = map[uint8]string{0b00: "±2g", 0b01: "±4g", 0b10: "±8g", 0b11: "±16g"}
)

func name(m map[uint8]string, k uint8) string {
	if s, ok := m[k]; ok {
		return s
	}
	return "Unknown"
}

func onOff(b uint8) string {
	if b != 0 {
		return "Enabled"
	}
	return "Disabled"
}

func printHeader(rec *scl.Recording) {
	d := rec.Device
	fmt.Println("Header:")
	fmt.Printf("  Version: %d\n", rec.Version)
	fmt.Println("  Device State:")
	fmt.Printf("    Mode: %s\n", name(modeNames, d.Mode))
	fmt.Printf("    Data Rate: %s\n", name(rateNames, d.DataRate))
	fmt.Printf("    Low Power Mode: %s\n", onOff(d.LowPower))
	fmt.Printf("    Bandwidth Filter: %s\n", name(bwfNames, d.BWFMode))
	fmt.Printf("    Range: %s\n", name(rangeName, d.Range))
	filter := "Low pass"
	if d.Filter != 0 {
		filter = "High pass"
	}
	fmt.Printf("    Filter: %s\n", filter)
	fmt.Printf("    Low Noise: %s\n", onOff(d.LowNoise))

	var kinds []string
	if rec.DataType.HasXYZ() {
		kinds = append(kinds, "XYZ coordinates")
	}
	if rec.DataType.HasMag() {
		kinds = append(kinds, "Magnitude")
	}
	if rec.DataType.IsL1() {
		kinds = append(kinds, "L1 norm")
	}
	label := "Unknown"
	if len(kinds) > 0 {
		label = kinds[0]
		for _, k := range kinds[1:] {
			label += ", " + k
		}
	}
	fmt.Printf("  Data Type: %s\n", label)
	fmt.Printf("  Index: %d\n", rec.Index)
	start := time.Unix(int64(rec.StartTS), 0).UTC()
	fmt.Printf("  Start Timestamp: %d (%s)\n", rec.StartTS, start.Format("2006-01-02 15:04:05"))
}

// #endregion header

// #region stats

func printStats(rec *scl.Recording) {
	points := series.Build(rec)
	fmt.Println("Readings:")
	if len(points) == 0 {
		fmt.Println("  Samples: 0")
		return
	}
	fmt.Printf("  Time range: %.2fs\n", points[len(points)-1].Offset-points[0].Offset)
	fmt.Printf("  Samples: %d\n", len(points))

	min, max, sum := points[0].Mag, points[0].Mag, 0.0
	for _, p := range points {
		if p.Mag < min {
			min = p.Mag
		}
		if p.Mag > max {
			max = p.Mag
		}
		sum += p.Mag
	}
	fmt.Printf("  Magnitudes: %.0f/%.0f/%.0f (min/avg/max)\n", min, sum/float64(len(points)), max)

	if rec.HasLabel {
		fmt.Printf("  Steps: %d\n", rec.Steps)
	} else {
		fmt.Println("  Steps: unlabeled")
	}
}

// #endregion stats

// #region csv

// exportCSV writes one row per sample. The total step count rides on the
// first row; every other row carries zero.
func exportCSV(rec *scl.Recording, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	base := float64(rec.StartTS)
	steps := strconv.Itoa(int(rec.Steps))

	if rec.DataType.HasXYZ() && !rec.DataType.HasMag() {
		if err := w.Write([]string{"Timestamp", "X", "Y", "Z", "Steps"}); err != nil {
			return err
		}
		rate := rec.SampleRate()
		i := 0
		for _, blk := range rec.Blocks {
			for _, s := range blk.Samples {
				row := []string{
					formatTS(base + float64(i)/rate),
					strconv.Itoa(int(s.X)),
					strconv.Itoa(int(s.Y)),
					strconv.Itoa(int(s.Z)),
					"0",
				}
				if i == 0 {
					row[4] = steps
				}
				if err := w.Write(row); err != nil {
					return err
				}
				i++
			}
		}
	} else {
		if err := w.Write([]string{"Timestamp", "Magnitude", "Steps"}); err != nil {
			return err
		}
		for i, p := range series.Build(rec) {
			row := []string{formatTS(base + p.Offset), strconv.FormatFloat(p.Mag, 'f', -1, 64), "0"}
			if i == 0 {
				row[2] = steps
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatTS(ts float64) string {
	return strconv.FormatFloat(ts, 'f', -1, 64)
}

// #endregion csv
