package replay

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixtureParsesConfigAndColumns(t *testing.T) {
	f := loadTestFixture(t, "ramp_discharge.json")

	if f.Config == nil {
		t.Fatal("fixture carries an explicit config")
	}
	if f.Config.Proxy.Epsilon != 0 {
		t.Fatalf("epsilon=%v, want 0", f.Config.Proxy.Epsilon)
	}
	if got := f.PipelineConfig().Detector.SlopePercentile; got != 90 {
		t.Fatalf("slope percentile %v, want 90", got)
	}
	if len(f.Columns["time"]) != 4 {
		t.Fatalf("time column has %d values, want 4", len(f.Columns["time"]))
	}
	if len(f.ManualChecks) != 3 {
		t.Fatalf("expected 3 manual checks, got %d", len(f.ManualChecks))
	}
}

func TestPipelineConfigDefaultsWhenOmitted(t *testing.T) {
	f := loadTestFixture(t, "single_row.json")
	if f.Config != nil {
		t.Fatal("fixture should omit config")
	}
	cfg := f.PipelineConfig()
	if cfg.Proxy.Epsilon != 1e-6 || cfg.Detector.DCrit != 0.05 {
		t.Fatalf("omitted config must resolve to defaults, got %+v", cfg)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadFixtureMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected parse error")
	}
}
