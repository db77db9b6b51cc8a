package store

import (
	"time"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region run-record
// RunRecord is one persisted diagnostic run: the input columns, the config
// that was active, the full report, and denormalized summary scalars for
// cheap listing.
type RunRecord struct {
	RunID       string
	Source      string
	SampleCount int
	Columns     sample.Columns
	Config      pipeline.Config
	Report      *pipeline.DiagnosticReport
	CreatedAt   time.Time
}

// #endregion run-record

// #region run-summary
// RunSummary is the listing view of a stored run, without the input columns
// or the full report payload.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	Source       string    `json:"source,omitempty"`
	SampleCount  int       `json:"sample_count"`
	MinDistance  float64   `json:"min_distance"`
	MaxSlope     float64   `json:"max_slope"`
	DGCrit       float64   `json:"dg_crit"`
	FlaggedCount int       `json:"flagged_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// #endregion run-summary
