package proxy

import (
	"gonum.org/v1/gonum/floats"

	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region weights

// Sigma_raw blend weights over the exhaust observables.
const (
	radiatedFractionWeight = 0.5
	elmFrequencyWeight     = 0.4
	elmEnergyDropWeight    = 0.3
)

// #endregion weights

// #region computer

// Computer derives the normalized confinement proxy Z and entropy-export
// proxy Sigma from a batch of raw observables.
type Computer struct {
	config Config
}

// NewComputer creates a Computer with the given configuration.
func NewComputer(config Config) *Computer {
	return &Computer{config: config}
}

// #endregion computer

// #region compute

// Compute is a pure function of the batch: same input, same output, no side
// effects. Output length equals input length and index order is preserved.
//
// Non-finite intermediates are not trapped: a zero P_input makes the radiated
// fraction +/-Inf or NaN, which propagates into Sigma and onward for the
// caller to inspect.
func (c *Computer) Compute(batch sample.Batch) Series {
	n := batch.Len()
	s := Series{
		Time:  batch.Times(),
		Z:     make([]float64, n),
		Sigma: make([]float64, n),
	}
	if n == 0 {
		return s
	}

	h := make([]float64, n)
	sigmaRaw := make([]float64, n)
	for i, row := range batch {
		h[i] = row.H98Y2
		fRad := row.PRad / row.PInput
		sigmaRaw[i] = radiatedFractionWeight*fRad +
			elmFrequencyWeight*row.FELM -
			elmEnergyDropWeight*row.DeltaWELM
	}

	s.Z, s.ZRangeDegenerate = c.normalize(h)
	s.Sigma, s.SigmaRangeDegenerate = c.normalize(sigmaRaw)
	return s
}

// normalize min-max scales values into [0, 1] with the epsilon denominator
// guard. The degenerate flag reports a collapsed range.
func (c *Computer) normalize(values []float64) ([]float64, bool) {
	lo := floats.Min(values)
	hi := floats.Max(values)
	span := hi - lo

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - lo) / (span + c.config.Epsilon)
	}
	return out, span < c.config.Epsilon
}

// #endregion compute
