package pipeline

import (
	"fmt"

	"github.com/sandy-lab/zsigma-diag/internal/gate"
	"github.com/sandy-lab/zsigma-diag/internal/phase"
	"github.com/sandy-lab/zsigma-diag/internal/phase0"
	"github.com/sandy-lab/zsigma-diag/internal/proxy"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region diagnose

// Diagnose runs the full batch pipeline: proxies, Gate Product series,
// early-warning detection. The whole result is recomputed from scratch on
// every call; there is no incremental path and no shared mutable state, so
// concurrent calls with different batches are independent.
//
// A batch shorter than two rows fails with sample.ErrInsufficientData before
// any partial result is produced. Degenerate normalization ranges are
// reported as warnings, not errors.
func Diagnose(batch sample.Batch, config Config) (*DiagnosticReport, error) {
	if batch.Len() < 2 {
		return nil, sample.ErrInsufficientData
	}

	proxies := proxy.NewComputer(config.Proxy).Compute(batch)

	gateSeries, err := gate.Compute(proxies)
	if err != nil {
		return nil, fmt.Errorf("gate series: %w", err)
	}

	detector := phase0.NewDetector(config.Square, config.Detector)
	report := &DiagnosticReport{
		Proxies: proxies,
		Gate:    gateSeries,
		Phase0:  detector.Detect(proxies, gateSeries),
	}

	if proxies.ZRangeDegenerate {
		report.Warnings = append(report.Warnings, "H98y2 range is degenerate; Z values are near-arbitrary")
	}
	if proxies.SigmaRangeDegenerate {
		report.Warnings = append(report.Warnings, "Sigma_raw range is degenerate; Sigma values are near-arbitrary")
	}
	return report, nil
}

// #endregion diagnose

// #region manual

// Manual classifies a single (Z, Sigma) pair, e.g. from an interactive
// control, and attaches the scalar Gate Product. Pure and total.
func Manual(z, sigma float64, config Config) ManualReport {
	c := phase.Classify(z, sigma, config.Phase)
	return ManualReport{
		Z:           z,
		Sigma:       sigma,
		GateProduct: gate.Product(z, sigma),
		Label:       c.Label,
		Message:     c.Message,
	}
}

// #endregion manual
