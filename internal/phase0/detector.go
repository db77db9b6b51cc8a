package phase0

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sandy-lab/zsigma-diag/internal/gate"
	"github.com/sandy-lab/zsigma-diag/internal/proxy"
)

// #region detector

// Detector evaluates wall proximity and slope excess over a whole series.
// Proximity flags an impending geometric exit from the safe rectangle;
// pressure flags abnormal acceleration of the Gate Product even while still
// inside it, a leading indicator independent of position.
type Detector struct {
	square Square
	config DetectorConfig
}

// NewDetector creates a detector for the given rectangle and thresholds.
func NewDetector(square Square, config DetectorConfig) *Detector {
	return &Detector{square: square, config: config}
}

// #endregion detector

// #region detect

// Detect produces per-sample flags and summary statistics. The pressure
// threshold dG_crit is recomputed from this batch's own dGdt distribution on
// every call; it is never reused across batches. Non-finite values in the
// inputs propagate into distances, thresholds and flags untrapped.
func (d *Detector) Detect(p proxy.Series, g gate.Series) Report {
	n := p.Len()
	r := Report{
		DistanceToWall: make([]float64, n),
		ProximityFlag:  make([]bool, n),
		PressureFlag:   make([]bool, n),
		Phase0Flag:     make([]bool, n),
		DGCrit:         slopeThreshold(g.DGdt, d.config.SlopePercentile),
	}

	for i := 0; i < n; i++ {
		dist := d.wallDistance(p.Z[i], p.Sigma[i])
		r.DistanceToWall[i] = dist
		r.ProximityFlag[i] = dist < d.config.DCrit
		r.PressureFlag[i] = g.DGdt[i] > r.DGCrit
		r.Phase0Flag[i] = r.ProximityFlag[i] || r.PressureFlag[i]

		if i == 0 || dist < r.MinDistance {
			r.MinDistance = dist
		}
		if i == 0 || g.DGdt[i] > r.MaxSlope {
			r.MaxSlope = g.DGdt[i]
		}
		if r.Phase0Flag[i] {
			r.FlaggedCount++
		}
	}
	return r
}

// wallDistance is the signed distance to the nearest rectangle wall: the
// minimum of the four per-axis margins, negative outside the rectangle.
func (d *Detector) wallDistance(z, sigma float64) float64 {
	dist := z - d.square.ZMin
	for _, m := range []float64{
		d.square.ZMax - z,
		sigma - d.square.SigmaMin,
		d.square.SigmaMax - sigma,
	} {
		if m < dist {
			dist = m
		}
	}
	return dist
}

// slopeThreshold computes the empirical percentile of the slope values.
func slopeThreshold(dgdt []float64, percentile float64) float64 {
	sorted := make([]float64, len(dgdt))
	copy(sorted, dgdt)
	sort.Float64s(sorted)
	return stat.Quantile(percentile/100, stat.Empirical, sorted, nil)
}

// #endregion detect
