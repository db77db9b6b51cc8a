package phase

// #region label
// Label enumerates the named operating zones for a single (Z, Sigma) point.
type Label string

const (
	LabelDeadZone   Label = "dead_zone"
	LabelDangerZone Label = "danger_zone"
	LabelSafeZone   Label = "safe_zone"
)

// #endregion label

// #region config
// Config holds the zone thresholds for manual-mode classification. These are
// independent of the safe-rectangle bounds used by the early-warning
// detector: tuning one must not move the other.
type Config struct {
	DeadZoneZMax       float64 `json:"dead_zone_z_max"`       // Z below this is the dead zone
	DangerZoneZMin     float64 `json:"danger_zone_z_min"`     // Z above this with starved export is the danger zone
	DangerZoneSigmaMax float64 `json:"danger_zone_sigma_max"` // Sigma below this counts as starved export
}

// DefaultConfig returns the standard zone thresholds.
func DefaultConfig() Config {
	return Config{
		DeadZoneZMax:       0.3,
		DangerZoneZMin:     0.7,
		DangerZoneSigmaMax: 0.15,
	}
}

// #endregion config

// #region classification
// Classification pairs a zone label with its operator interpretation.
type Classification struct {
	Label   Label  `json:"label"`
	Message string `json:"message"`
}

// #endregion classification
