package logging

import "time"

// #region entry
// Entry is a single row in the run_log audit table.
type Entry struct {
	RunID       string
	TriggerType string // "api_diagnose" | "replay"
	Outcome     string // "ok" | "rejected" | "error"
	Reason      string
	CreatedAt   time.Time
}

// #endregion entry
