// Package sweepdb stores the results of numerical accuracy sweeps in a
// sqlite database so error curves can be compared across runs and rendered
// by cmd/tools/sweep-chart.
package sweepdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle holding sweep runs and their samples.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the sweep database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sweep_runs (
			run_id TEXT PRIMARY KEY,
			dim INTEGER NOT NULL,
			samples INTEGER NOT NULL,
			max_exp_err DOUBLE NOT NULL,
			max_roundtrip_err DOUBLE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS sweep_samples (
			run_id TEXT NOT NULL,
			theta DOUBLE NOT NULL,
			exp_err DOUBLE NOT NULL,
			roundtrip_err DOUBLE NOT NULL,
			FOREIGN KEY(run_id) REFERENCES sweep_runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_sweep_samples_run
			ON sweep_samples(run_id, theta);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sweep schema: %w", err)
	}

	return &DB{db}, nil
}

// Run describes one accuracy sweep: a dimension, the number of samples
// taken, and the worst errors seen across the sweep.
type Run struct {
	RunID           string
	Dim             int
	Samples         int
	MaxExpErr       float64
	MaxRoundtripErr float64
	CreatedAt       time.Time
}

// Sample is one angle's measurement within a run. ExpErr is the Frobenius
// distance between the closed-form exponential and the generic matrix
// exponential; RoundtripErr is the coordinate distance after log(exp(x)).
type Sample struct {
	Theta        float64
	ExpErr       float64
	RoundtripErr float64
}

// InsertRun records a run and its samples in one transaction. A missing
// RunID is filled in with a fresh UUID; the summary error columns are
// computed from the samples. The (possibly generated) run ID is returned.
func (db *DB) InsertRun(run *Run, samples []Sample) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	run.Samples = len(samples)
	run.MaxExpErr = 0
	run.MaxRoundtripErr = 0
	for _, s := range samples {
		if s.ExpErr > run.MaxExpErr {
			run.MaxExpErr = s.ExpErr
		}
		if s.RoundtripErr > run.MaxRoundtripErr {
			run.MaxRoundtripErr = s.RoundtripErr
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO sweep_runs (run_id, dim, samples, max_exp_err, max_roundtrip_err) VALUES (?, ?, ?, ?, ?)",
		run.RunID, run.Dim, run.Samples, run.MaxExpErr, run.MaxRoundtripErr)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO sweep_samples (run_id, theta, exp_err, roundtrip_err) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for _, s := range samples {
		if _, err := stmt.Exec(run.RunID, s.Theta, s.ExpErr, s.RoundtripErr); err != nil {
			return "", fmt.Errorf("insert sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.RunID, nil
}

// LatestRun returns the most recently inserted run.
func (db *DB) LatestRun() (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, dim, samples, max_exp_err, max_roundtrip_err, created_at
		FROM sweep_runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	var r Run
	if err := row.Scan(&r.RunID, &r.Dim, &r.Samples, &r.MaxExpErr, &r.MaxRoundtripErr, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Samples returns all samples of a run ordered by angle.
func (db *DB) Samples(runID string) ([]Sample, error) {
	rows, err := db.Query(
		"SELECT theta, exp_err, roundtrip_err FROM sweep_samples WHERE run_id = ? ORDER BY theta",
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.Theta, &s.ExpErr, &s.RoundtripErr); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
