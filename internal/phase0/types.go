package phase0

// #region square
// Square is the fixed safe operating rectangle in (Z, Sigma) space.
// Process-wide constants, never mutated after construction.
type Square struct {
	ZMin     float64 `json:"z_min"`
	ZMax     float64 `json:"z_max"`
	SigmaMin float64 `json:"sigma_min"`
	SigmaMax float64 `json:"sigma_max"`
}

// DefaultSquare returns the nominal safe rectangle.
func DefaultSquare() Square {
	return Square{
		ZMin:     0.30,
		ZMax:     0.90,
		SigmaMin: 0.15,
		SigmaMax: 0.85,
	}
}

// #endregion square

// #region detector-config
// DetectorConfig holds the early-warning thresholds.
type DetectorConfig struct {
	// DCrit is the critical wall-proximity band width.
	DCrit float64 `json:"d_crit"`

	// SlopePercentile selects the dGdt percentile, computed over the batch
	// itself, used as the pressure threshold. Per-batch on purpose: the
	// detection sensitivity follows the scale of each dataset instead of an
	// absolute slope cutoff.
	SlopePercentile float64 `json:"slope_percentile"`
}

// DefaultDetectorConfig returns the standard early-warning thresholds.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		DCrit:           0.05,
		SlopePercentile: 90,
	}
}

// #endregion detector-config

// #region report
// Report carries per-sample early-warning flags and summary statistics.
// DistanceToWall may be negative when a point sits outside the rectangle on
// some axis; negative distances are meaningful and are never clamped.
type Report struct {
	DistanceToWall []float64 `json:"distance_to_wall"`
	ProximityFlag  []bool    `json:"proximity_flag"`
	PressureFlag   []bool    `json:"pressure_flag"`
	Phase0Flag     []bool    `json:"phase0_flag"`

	MinDistance  float64 `json:"min_distance"`
	MaxSlope     float64 `json:"max_slope"`
	DGCrit       float64 `json:"dg_crit"`
	FlaggedCount int     `json:"flagged_count"`
}

// Len returns the number of samples covered by the report.
func (r Report) Len() int { return len(r.Phase0Flag) }

// #endregion report
