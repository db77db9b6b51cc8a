package gate

import "errors"

// #region errors
// ErrSeriesTooShort is returned when a series has fewer than two samples,
// which leaves the slope undefined.
var ErrSeriesTooShort = errors.New("gate series needs at least 2 samples")

// #endregion errors

// #region series
// Series holds the Gate Product trajectory and its slope, index-aligned with
// the proxy series it was derived from. Immutable once computed.
type Series struct {
	Time []float64 `json:"time"`
	G    []float64 `json:"g"`
	DGdt []float64 `json:"dgdt"`
}

// Len returns the number of samples in the series.
func (s Series) Len() int { return len(s.G) }

// #endregion series
