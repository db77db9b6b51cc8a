package pipeline

import (
	"github.com/sandy-lab/zsigma-diag/internal/gate"
	"github.com/sandy-lab/zsigma-diag/internal/phase"
	"github.com/sandy-lab/zsigma-diag/internal/phase0"
	"github.com/sandy-lab/zsigma-diag/internal/proxy"
)

// #region config
// Config bundles the tunables for every pipeline stage. Serialized alongside
// each stored run so a result can always be tied to the thresholds that
// produced it.
type Config struct {
	Proxy    proxy.Config          `json:"proxy"`
	Phase    phase.Config          `json:"phase"`
	Square   phase0.Square         `json:"square"`
	Detector phase0.DetectorConfig `json:"detector"`
}

// DefaultConfig returns the standard configuration for all stages.
func DefaultConfig() Config {
	return Config{
		Proxy:    proxy.DefaultConfig(),
		Phase:    phase.DefaultConfig(),
		Square:   phase0.DefaultSquare(),
		Detector: phase0.DefaultDetectorConfig(),
	}
}

// #endregion config

// #region report
// DiagnosticReport is the aggregate read-only result of a batch run.
type DiagnosticReport struct {
	Proxies  proxy.Series  `json:"proxies"`
	Gate     gate.Series   `json:"gate"`
	Phase0   phase0.Report `json:"phase0"`
	Warnings []string      `json:"warnings,omitempty"`
}

// SampleCount returns the number of input rows covered by the report.
func (r *DiagnosticReport) SampleCount() int { return r.Proxies.Len() }

// #endregion report

// #region manual-report
// ManualReport is the result of classifying a single externally supplied
// (Z, Sigma) pair, independent of any series.
type ManualReport struct {
	Z           float64     `json:"z"`
	Sigma       float64     `json:"sigma"`
	GateProduct float64     `json:"gate_product"`
	Label       phase.Label `json:"label"`
	Message     string      `json:"message"`
}

// #endregion manual-report
