package gate

import (
	"github.com/sandy-lab/zsigma-diag/internal/proxy"
)

// #region scalar

// Product computes the Gate Product G = (1 - Z) * Sigma for a single point.
// Total over [0,1]^2; no error paths.
func Product(z, sigma float64) float64 {
	return (1 - z) * sigma
}

// #endregion scalar

// #region series

// Compute derives the Gate Product series and its slope from a proxy series.
// The slope is a finite-difference gradient with respect to sample index:
// central differences in the interior, one-sided at both endpoints.
//
// A series shorter than two samples cannot form a gradient and fails with
// ErrSeriesTooShort rather than emitting a sentinel.
func Compute(p proxy.Series) (Series, error) {
	n := p.Len()
	if n < 2 {
		return Series{}, ErrSeriesTooShort
	}

	g := make([]float64, n)
	for i := 0; i < n; i++ {
		g[i] = Product(p.Z[i], p.Sigma[i])
	}

	return Series{
		Time: p.Time,
		G:    g,
		DGdt: gradient(g),
	}, nil
}

// gradient computes the index-spaced numerical gradient of values.
// len(values) >= 2 is the caller's contract.
func gradient(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	out[0] = values[1] - values[0]
	out[n-1] = values[n-1] - values[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (values[i+1] - values[i-1]) / 2
	}
	return out
}

// #endregion series
