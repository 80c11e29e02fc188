// Package dataset loads labeled recordings from disk and produces the
// deterministic calibration/evaluation split.
package dataset

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/scl"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/series"
)

// #region types

// ErrEmptyDataset indicates a directory with no usable labeled recordings.
var ErrEmptyDataset = errors.New("dataset: no usable recordings")

// Session is one decoded, labeled recording. Immutable once loaded: the
// calibration workers share sessions read-only.
type Session struct {
	Name  string
	Mag   []float64
	Steps int
}

// #endregion types

// #region load

// Load decodes every .scl file under dir. Files that fail to decode or
// carry no step label are skipped with a warning rather than failing the
// whole run: one corrupt log must not invalidate a field session. Returns
// the usable sessions sorted by name and the number of skipped files.
func Load(dir string) ([]Session, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset dir: %w", err)
	}

	var sessions []Session
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".scl") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		rec, err := scl.DecodeFile(path)
		if err != nil {
			log.Printf("[DATASET] skipping %s: %v", entry.Name(), err)
			skipped++
			continue
		}
		if !rec.HasLabel {
			log.Printf("[DATASET] skipping %s: no step label", entry.Name())
			skipped++
			continue
		}
		sessions = append(sessions, Session{
			Name:  strings.TrimSuffix(entry.Name(), ".scl"),
			Mag:   series.Magnitudes(rec),
			Steps: int(rec.Steps),
		})
	}

	if len(sessions) == 0 {
		return nil, skipped, fmt.Errorf("%w in %s", ErrEmptyDataset, dir)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })
	return sessions, skipped, nil
}

// #endregion load
