package calibrate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/dataset"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/detect"
)

// pulseSession builds a session with n single-sample pulses of the given
// height, labeled with the true count.
func pulseSession(name string, n int, height float64) dataset.Session {
	const gap = 10
	mag := make([]float64, n*gap+gap)
	for i := 1; i <= n; i++ {
		mag[i*gap] = height
	}
	return dataset.Session{Name: name, Mag: mag, Steps: n}
}

func testSessions() (calib, eval []dataset.Session) {
	calib = []dataset.Session{
		pulseSession("c1", 5, 30000),
		pulseSession("c2", 9, 30000),
		pulseSession("c3", 3, 30000),
	}
	eval = []dataset.Session{
		pulseSession("e1", 7, 30000),
	}
	return calib, eval
}

func TestRun_UnknownAlgorithm(t *testing.T) {
	calib, eval := testSessions()
	_, err := Run("threshold-imaginary", calib, eval, Config{})
	if !errors.Is(err, detect.ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRun_FindsWorkingThreshold(t *testing.T) {
	calib, eval := testSessions()
	res, err := Run("threshold", calib, eval, Config{TopK: 2, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if res.Algorithm != "threshold" {
		t.Errorf("algorithm = %q", res.Algorithm)
	}
	if len(res.Best) != 2 {
		t.Fatalf("expected 2 best points, got %d", len(res.Best))
	}
	// Pulses at 30000: any threshold in [20000, 30000) counts exactly
	// right, so the winner must reach zero error on both subsets.
	if res.Best[0].CalibError != 0 {
		t.Errorf("best calibration error = %v, want 0", res.Best[0].CalibError)
	}
	if res.Best[0].EvalError != 0 {
		t.Errorf("best evaluation error = %v, want 0", res.Best[0].EvalError)
	}
	// The grid report covers every expanded point.
	factory, _ := detect.Lookup("threshold")
	points, _ := detect.Expand(factory.Grid)
	if len(res.Grid) != len(points) {
		t.Errorf("grid report has %d points, expanded grid has %d", len(res.Grid), len(points))
	}
}

func TestRun_GridOrderMatchesExpansion(t *testing.T) {
	calib, eval := testSessions()
	res, err := Run("threshold-min", calib, eval, Config{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	factory, _ := detect.Lookup("threshold-min")
	points, _ := detect.Expand(factory.Grid)
	for i := range points {
		if !reflect.DeepEqual(res.Grid[i].Params, points[i]) {
			t.Fatalf("grid slot %d out of order: got %v, want %v",
				i, res.Grid[i].Params, points[i])
		}
	}
}

func TestRun_DeterministicAcrossWorkerCounts(t *testing.T) {
	calib, eval := testSessions()
	res1, err := Run("threshold-bound", calib, eval, Config{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	res8, err := Run("threshold-bound", calib, eval, Config{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res1, res8) {
		t.Fatal("result depends on worker count")
	}
}

func TestRun_TieBreakIsCanonical(t *testing.T) {
	calib, eval := testSessions()
	res, err := Run("threshold", calib, eval, Config{TopK: 5})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res.Best); i++ {
		a, b := res.Best[i-1], res.Best[i]
		if a.CalibError > b.CalibError {
			t.Fatalf("best not sorted by error at %d", i)
		}
		if a.CalibError == b.CalibError && a.Params.Key() >= b.Params.Key() {
			t.Errorf("tie at %d not broken canonically: %q vs %q",
				i, a.Params.Key(), b.Params.Key())
		}
	}
}

func TestRun_EvalNeverSelects(t *testing.T) {
	calib, _ := testSessions()
	// An adversarial evaluation set that would prefer a different point.
	eval := []dataset.Session{pulseSession("e1", 4, 15000)}

	res, err := Run("threshold", calib, eval, Config{TopK: 1})
	if err != nil {
		t.Fatal(err)
	}
	// Selection saw only the calibration set, so the winner still scores
	// zero there even though the eval set disagrees.
	if res.Best[0].CalibError != 0 {
		t.Errorf("calibration error = %v, want 0", res.Best[0].CalibError)
	}
	if res.Best[0].EvalError == 0 {
		t.Error("adversarial eval set unexpectedly scored zero")
	}
}

func TestRun_GridPointsHaveNoEvalError(t *testing.T) {
	calib, eval := testSessions()
	res, err := Run("threshold", calib, eval, Config{TopK: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, ps := range res.Grid {
		if ps.EvalError != 0 {
			t.Fatalf("grid point %q carries an eval error", ps.Params.Key())
		}
	}
}

func TestMeanAbsError(t *testing.T) {
	d := constDetector(10)
	sessions := []dataset.Session{
		{Name: "a", Mag: []float64{0}, Steps: 7},  // |10-7| = 3
		{Name: "b", Mag: []float64{0}, Steps: 15}, // |10-15| = 5
	}
	if got := meanAbsError(d, sessions); got != 4 {
		t.Errorf("mean abs error = %v, want 4", got)
	}
}

func TestMeanAbsError_EmptySubset(t *testing.T) {
	if got := meanAbsError(constDetector(0), nil); got != WorstError {
		t.Errorf("expected WorstError on empty subset, got %v", got)
	}
}

func TestMeanAbsError_PanicContained(t *testing.T) {
	sessions := []dataset.Session{{Name: "a", Mag: []float64{0}, Steps: 1}}
	if got := meanAbsError(panicDetector{}, sessions); got != WorstError {
		t.Errorf("expected WorstError after panic, got %v", got)
	}
}

type constDetector int

func (d constDetector) DetectSteps([]float64) int { return int(d) }

type panicDetector struct{}

func (panicDetector) DetectSteps([]float64) int { panic("boom") }

func TestRunAll_CoversRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("full-grid search")
	}
	calib, eval := testSessions()
	results, err := RunAll(calib, eval, Config{})
	if err != nil {
		t.Fatal(err)
	}
	names := detect.Names()
	if len(results) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(results))
	}
	for i, res := range results {
		if res.Algorithm != names[i] {
			t.Errorf("result %d is %q, want %q", i, res.Algorithm, names[i])
		}
		if len(res.Best) == 0 {
			t.Errorf("%s: no best points", res.Algorithm)
		}
	}
}
