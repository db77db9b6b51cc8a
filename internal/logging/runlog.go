package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-run
// LogRun writes an audit entry to the run_log table.
func LogRun(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_log (run_id, trigger_type, outcome, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		nullIfEmpty(entry.RunID),
		entry.TriggerType,
		entry.Outcome,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log run: %w", err)
	}
	return nil
}

// #endregion log-run

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
