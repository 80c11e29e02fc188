// Package calibrate runs the grid search that fits each detection
// algorithm's parameters against labeled recordings. Scoring is pure and
// parallel: workers share the session slice read-only and write into
// disjoint result slots, so a run is deterministic for a fixed dataset,
// grid, and split.
package calibrate

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/dataset"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/detect"
)

// #region types

// WorstError is the score assigned to a parameter point whose detector
// panicked or produced an invalid prediction. The point stays in the grid
// report but can never win selection.
const WorstError = math.MaxFloat64

// Config controls a calibration run.
type Config struct {
	// TopK is how many best parameter points to keep and re-score on the
	// evaluation subset.
	TopK int
	// Workers sizes the scoring pool. Zero means one per CPU.
	Workers int
}

func (c Config) withDefaults() Config {
	if c.TopK <= 0 {
		c.TopK = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

// PointScore is one explored parameter point with its errors. EvalError is
// only populated for the selected top points; it never influences
// selection.
type PointScore struct {
	Params     detect.Params
	CalibError float64
	EvalError  float64
}

// AlgorithmResult is the outcome of calibrating one algorithm.
type AlgorithmResult struct {
	Algorithm string
	// Best holds the top-K points by calibration error, each re-scored
	// once on the evaluation subset.
	Best []PointScore
	// Grid holds every explored point in deterministic expansion order.
	Grid []PointScore
}

// #endregion types

// #region scoring

// meanAbsError scores one detector over the sessions: the mean of
// |predicted - labeled| step counts. Panics inside a detector are
// contained and degrade to WorstError.
func meanAbsError(d detect.Detector, sessions []dataset.Session) (err float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CALIBRATE] detector panic contained: %v", r)
			err = WorstError
		}
	}()

	if len(sessions) == 0 {
		return WorstError
	}
	total := 0.0
	for _, s := range sessions {
		pred := d.DetectSteps(s.Mag)
		total += math.Abs(float64(pred - s.Steps))
	}
	err = total / float64(len(sessions))
	if math.IsNaN(err) || math.IsInf(err, 0) {
		return WorstError
	}
	return err
}

// #endregion scoring

// #region run

// Run calibrates one algorithm: expands its grid, scores every point on
// the calibration subset in parallel, selects the top-K points, and
// re-scores those on the evaluation subset.
func Run(algo string, calib, eval []dataset.Session, cfg Config) (*AlgorithmResult, error) {
	cfg = cfg.withDefaults()

	factory, err := detect.Lookup(algo)
	if err != nil {
		return nil, err
	}
	points, err := detect.Expand(factory.Grid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", algo, err)
	}

	scores := make([]PointScore, len(points))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i] = PointScore{
					Params:     points[i],
					CalibError: meanAbsError(factory.New(points[i]), calib),
				}
			}
		}()
	}
	for i := range points {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := selectTop(scores, cfg.TopK)
	for i := range best {
		best[i].EvalError = meanAbsError(factory.New(best[i].Params), eval)
	}

	return &AlgorithmResult{Algorithm: algo, Best: best, Grid: scores}, nil
}

// selectTop returns copies of the k best points. Ties break on the
// canonical parameter encoding so selection is stable across runs and
// worker counts.
func selectTop(scores []PointScore, k int) []PointScore {
	ranked := make([]PointScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CalibError != ranked[j].CalibError {
			return ranked[i].CalibError < ranked[j].CalibError
		}
		return ranked[i].Params.Key() < ranked[j].Params.Key()
	})
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// RunAll calibrates every registered algorithm in name order.
func RunAll(calib, eval []dataset.Session, cfg Config) ([]*AlgorithmResult, error) {
	var results []*AlgorithmResult
	for _, name := range detect.Names() {
		res, err := Run(name, calib, eval, cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("[CALIBRATE] %s: %d points, best error %.3f",
			name, len(res.Grid), res.Best[0].CalibError)
		results = append(results, res)
	}
	return results, nil
}

// #endregion run
