package results

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/calibrate"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/detect"
)

// #region contract-types

// Contract is the persisted calibration.json document. Its encoding is
// stable: algorithms and grid points sort canonically and parameter maps
// marshal with sorted keys, so identical runs produce byte-identical
// files and different runs diff cleanly.
type Contract struct {
	Algorithms map[string]AlgorithmReport `json:"algorithms"`
}

// AlgorithmReport is one algorithm's entry in the contract.
type AlgorithmReport struct {
	Best []BestPoint `json:"best"`
	Grid []GridPoint `json:"grid"`
}

// BestPoint is a selected parameter point with both errors.
type BestPoint struct {
	Params     detect.Params `json:"params"`
	CalibError float64       `json:"calib_error"`
	EvalError  float64       `json:"eval_error"`
}

// GridPoint is one explored point with its calibration error.
type GridPoint struct {
	Params detect.Params `json:"params"`
	Error  float64       `json:"error"`
}

// #endregion contract-types

// #region build

// BuildContract assembles the contract document from calibration results.
func BuildContract(results []*calibrate.AlgorithmResult) *Contract {
	c := &Contract{Algorithms: make(map[string]AlgorithmReport, len(results))}
	for _, res := range results {
		report := AlgorithmReport{}
		for _, ps := range res.Best {
			report.Best = append(report.Best, BestPoint{
				Params:     ps.Params,
				CalibError: ps.CalibError,
				EvalError:  ps.EvalError,
			})
		}
		for _, ps := range res.Grid {
			report.Grid = append(report.Grid, GridPoint{
				Params: ps.Params,
				Error:  ps.CalibError,
			})
		}
		sort.Slice(report.Grid, func(i, j int) bool {
			return report.Grid[i].Params.Key() < report.Grid[j].Params.Key()
		})
		c.Algorithms[res.Algorithm] = report
	}
	return c
}

// #endregion build

// #region io

// WriteContract marshals the contract to path. Maps marshal with sorted
// keys, so the output is deterministic for identical results.
func WriteContract(c *Contract, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal contract: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write contract: %w", err)
	}
	return nil
}

// ReadContract loads a previously written contract.
func ReadContract(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract: %w", err)
	}
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse contract: %w", err)
	}
	return &c, nil
}

// #endregion io
