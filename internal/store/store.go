package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	source        TEXT,
	sample_count  INTEGER NOT NULL,
	columns_json  TEXT NOT NULL,
	config_json   TEXT NOT NULL,
	report_json   TEXT NOT NULL,
	min_distance  REAL NOT NULL,
	max_slope     REAL NOT NULL,
	dg_crit       REAL NOT NULL,
	flagged_count INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT,
	trigger_type  TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	reason        TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// #endregion schema

// #region store-struct
// Store persists diagnostic runs in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
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

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region save-run
// SaveRun persists a completed diagnostic run and returns the stored record
// with its assigned run ID. Reports containing NaN or Inf values cannot be
// serialized and are rejected with a marshal error.
func (s *Store) SaveRun(cols sample.Columns, config pipeline.Config, report *pipeline.DiagnosticReport, source string) (RunRecord, error) {
	rec := RunRecord{
		RunID:       uuid.New().String(),
		Source:      source,
		SampleCount: report.SampleCount(),
		Columns:     cols,
		Config:      config,
		Report:      report,
		CreatedAt:   time.Now().UTC(),
	}

	colsJSON, err := json.Marshal(cols)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshal columns: %w", err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshal config: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (run_id, source, sample_count, columns_json, config_json, report_json,
		                   min_distance, max_slope, dg_crit, flagged_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, nullIfEmpty(source), rec.SampleCount, string(colsJSON), string(configJSON), string(reportJSON),
		report.Phase0.MinDistance, report.Phase0.MaxSlope, report.Phase0.DGCrit, report.Phase0.FlaggedCount,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

// #endregion save-run

// #region get-run
// GetRun retrieves a stored run by ID, including columns and report.
func (s *Store) GetRun(id string) (RunRecord, error) {
	var rec RunRecord
	var source sql.NullString
	var colsJSON, configJSON, reportJSON, createdStr string

	err := s.db.QueryRow(
		`SELECT run_id, source, sample_count, columns_json, config_json, report_json, created_at
		 FROM runs WHERE run_id = ?`, id,
	).Scan(&rec.RunID, &source, &rec.SampleCount, &colsJSON, &configJSON, &reportJSON, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", id, err)
	}

	if source.Valid {
		rec.Source = source.String
	}
	if err := json.Unmarshal([]byte(colsJSON), &rec.Columns); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal columns: %w", err)
	}
	if err := json.Unmarshal([]byte(configJSON), &rec.Config); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal config: %w", err)
	}
	rec.Report = &pipeline.DiagnosticReport{}
	if err := json.Unmarshal([]byte(reportJSON), rec.Report); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal report: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion get-run

// #region list-runs
// ListRuns returns summaries of the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT run_id, source, sample_count, min_distance, max_slope, dg_crit, flagged_count, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var rs RunSummary
		var source sql.NullString
		var createdStr string
		if err := rows.Scan(&rs.RunID, &source, &rs.SampleCount, &rs.MinDistance,
			&rs.MaxSlope, &rs.DGCrit, &rs.FlaggedCount, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if source.Valid {
			rs.Source = source.String
		}
		rs.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		summaries = append(summaries, rs)
	}
	return summaries, rows.Err()
}

// #endregion list-runs

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
