package proxy

// #region config
// Config holds the normalization tunables.
type Config struct {
	// Epsilon pads the min-max denominator so a constant column normalizes
	// to zero instead of dividing by zero.
	Epsilon float64 `json:"epsilon"`
}

// DefaultConfig returns the standard normalization guard.
func DefaultConfig() Config {
	return Config{Epsilon: 1e-6}
}

// #endregion config

// #region series
// Series holds the normalized proxy trajectories, index-aligned with the
// input batch. Z and Sigma are nominally in [0, 1]; the epsilon guard can
// bias them slightly on near-constant input, and non-finite raw values
// propagate through unchanged.
type Series struct {
	Time  []float64 `json:"time"`
	Z     []float64 `json:"z"`
	Sigma []float64 `json:"sigma"`

	// Degenerate-range observations: set when the normalization range of the
	// corresponding raw column collapsed below epsilon, so the normalized
	// values are near-arbitrary. Soft condition, never fatal.
	ZRangeDegenerate     bool `json:"z_range_degenerate"`
	SigmaRangeDegenerate bool `json:"sigma_range_degenerate"`
}

// Len returns the number of samples in the series.
func (s Series) Len() int { return len(s.Z) }

// #endregion series
