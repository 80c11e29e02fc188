// Package results persists calibration outcomes: a stable JSON contract
// file for downstream tooling and an append-only SQLite run history.
package results

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/calibrate"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS calibration_runs (
	run_id        TEXT PRIMARY KEY,
	algorithm     TEXT NOT NULL,
	data_dir      TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	grid_size     INTEGER NOT NULL,
	calib_size    INTEGER NOT NULL,
	eval_size     INTEGER NOT NULL,
	calib_error   REAL NOT NULL,
	eval_error    REAL NOT NULL,
	best_params   TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS grid_points (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	params        TEXT NOT NULL,
	error         REAL NOT NULL,
	FOREIGN KEY (run_id) REFERENCES calibration_runs(run_id)
);
`
// #endregion schema

// #region store-struct
// Store records calibration runs in SQLite. Rows are append-only: a new
// run inserts new rows and never touches historical ones.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region run-meta
// RunMeta describes the provenance of one calibration run.
type RunMeta struct {
	DataDir   string
	Seed      int64
	CalibSize int
	EvalSize  int
}
// #endregion run-meta

// #region record-run
// RecordRun appends one algorithm's result to the history and returns the
// new run id.
func (s *Store) RecordRun(res *calibrate.AlgorithmResult, meta RunMeta) (string, error) {
	if len(res.Best) == 0 {
		return "", fmt.Errorf("record run: %s has no best point", res.Algorithm)
	}
	id := uuid.New().String()
	now := time.Now().UTC()
	best := res.Best[0]

	bestJSON, err := json.Marshal(best.Params)
	if err != nil {
		return "", fmt.Errorf("marshal best params: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO calibration_runs
		 (run_id, algorithm, data_dir, seed, grid_size, calib_size, eval_size,
		  calib_error, eval_error, best_params, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Algorithm, meta.DataDir, meta.Seed, len(res.Grid),
		meta.CalibSize, meta.EvalSize,
		best.CalibError, best.EvalError, string(bestJSON),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO grid_points (run_id, params, error) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare grid insert: %w", err)
	}
	defer stmt.Close()
	for _, ps := range res.Grid {
		paramsJSON, err := json.Marshal(ps.Params)
		if err != nil {
			return "", fmt.Errorf("marshal params: %w", err)
		}
		if _, err := stmt.Exec(id, string(paramsJSON), ps.CalibError); err != nil {
			return "", fmt.Errorf("insert grid point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}
// #endregion record-run

// #region run-row
// RunRow is one historical calibration run.
type RunRow struct {
	RunID      string
	Algorithm  string
	DataDir    string
	Seed       int64
	GridSize   int
	CalibSize  int
	EvalSize   int
	CalibError float64
	EvalError  float64
	BestParams string
	CreatedAt  time.Time
}
// #endregion run-row

// #region list-runs
// ListRuns returns the run history for one algorithm, newest first. An
// empty algorithm lists every run.
func (s *Store) ListRuns(algorithm string) ([]RunRow, error) {
	query := `SELECT run_id, algorithm, data_dir, seed, grid_size, calib_size,
	                 eval_size, calib_error, eval_error, best_params, created_at
	          FROM calibration_runs`
	args := []any{}
	if algorithm != "" {
		query += ` WHERE algorithm = ?`
		args = append(args, algorithm)
	}
	query += ` ORDER BY created_at DESC, run_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var created string
		if err := rows.Scan(&r.RunID, &r.Algorithm, &r.DataDir, &r.Seed,
			&r.GridSize, &r.CalibSize, &r.EvalSize,
			&r.CalibError, &r.EvalError, &r.BestParams, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
// #endregion list-runs

// #region count-grid-points
// CountGridPoints returns how many grid points a run recorded.
func (s *Store) CountGridPoints(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM grid_points WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count grid points: %w", err)
	}
	return n, nil
}
// #endregion count-grid-points
