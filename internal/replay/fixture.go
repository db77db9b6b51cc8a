package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a recorded
// input batch plus the expectations the pipeline must reproduce.
type Fixture struct {
	Description  string           `json:"description"`
	Source       string           `json:"source,omitempty"`
	Config       *pipeline.Config `json:"config,omitempty"` // nil means defaults
	Columns      sample.Columns   `json:"columns"`
	Expected     Expected         `json:"expected"`
	ManualChecks []ManualCheck    `json:"manual_checks,omitempty"`
}

// Expected captures the batch-level expectations. ExpectedError, when set,
// asserts that the pipeline fails with a matching message instead of
// producing a report.
type Expected struct {
	ExpectedError string   `json:"expected_error,omitempty"`
	SampleCount   int      `json:"sample_count"`
	FlaggedCount  int      `json:"flagged_count"`
	MinDistance   float64  `json:"min_distance"`
	MaxSlope      float64  `json:"max_slope"`
	DGCrit        float64  `json:"dg_crit"`
	Phase0Flags   []bool   `json:"phase0_flags,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ManualCheck asserts the manual-mode label for a single (Z, Sigma) pair.
type ManualCheck struct {
	Z     float64 `json:"z"`
	Sigma float64 `json:"sigma"`
	Label string  `json:"label"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// PipelineConfig resolves the fixture's config, falling back to defaults.
func (f *Fixture) PipelineConfig() pipeline.Config {
	if f.Config != nil {
		return *f.Config
	}
	return pipeline.DefaultConfig()
}

// #endregion fixture-loader
