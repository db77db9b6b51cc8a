package replay

import (
	"fmt"
	"math"
	"strings"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region types

// floatTolerance bounds acceptable drift when comparing recorded scalars
// against a fresh pipeline run.
const floatTolerance = 1e-9

// Check is one named comparison between a fixture expectation and the
// replayed pipeline output.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Result aggregates all checks for one fixture.
type Result struct {
	Description string
	Checks      []Check
	Passed      bool
}

// #endregion types

// #region run

// Run replays a fixture through the pipeline entirely in memory and compares
// the output against the recorded expectations.
func Run(f *Fixture) Result {
	r := Result{Description: f.Description, Passed: true}
	config := f.PipelineConfig()

	report, err := diagnose(f.Columns, config)

	if f.Expected.ExpectedError != "" {
		if err == nil {
			r.fail("expected_error", fmt.Sprintf("expected error containing %q, pipeline succeeded", f.Expected.ExpectedError))
		} else if !strings.Contains(err.Error(), f.Expected.ExpectedError) {
			r.fail("expected_error", fmt.Sprintf("error %q does not contain %q", err.Error(), f.Expected.ExpectedError))
		} else {
			r.pass("expected_error")
		}
		runManualChecks(&r, f, config)
		return r
	}

	if err != nil {
		r.fail("pipeline", fmt.Sprintf("unexpected error: %v", err))
		return r
	}

	r.checkInt("sample_count", f.Expected.SampleCount, report.SampleCount())
	r.checkInt("flagged_count", f.Expected.FlaggedCount, report.Phase0.FlaggedCount)
	r.checkFloat("min_distance", f.Expected.MinDistance, report.Phase0.MinDistance)
	r.checkFloat("max_slope", f.Expected.MaxSlope, report.Phase0.MaxSlope)
	r.checkFloat("dg_crit", f.Expected.DGCrit, report.Phase0.DGCrit)

	if f.Expected.Phase0Flags != nil {
		r.checkFlags("phase0_flags", f.Expected.Phase0Flags, report.Phase0.Phase0Flag)
	}
	if f.Expected.Warnings != nil {
		r.checkStrings("warnings", f.Expected.Warnings, report.Warnings)
	}

	runManualChecks(&r, f, config)
	return r
}

func diagnose(cols sample.Columns, config pipeline.Config) (*pipeline.DiagnosticReport, error) {
	batch, err := sample.FromColumns(cols)
	if err != nil {
		return nil, err
	}
	return pipeline.Diagnose(batch, config)
}

func runManualChecks(r *Result, f *Fixture, config pipeline.Config) {
	for i, mc := range f.ManualChecks {
		name := fmt.Sprintf("manual_checks[%d]", i)
		got := pipeline.Manual(mc.Z, mc.Sigma, config)
		if string(got.Label) == mc.Label {
			r.pass(name)
		} else {
			r.fail(name, fmt.Sprintf("(%v, %v): label %s, want %s", mc.Z, mc.Sigma, got.Label, mc.Label))
		}
	}
}

// #endregion run

// #region checks

func (r *Result) pass(name string) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: true})
}

func (r *Result) fail(name, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: false, Detail: detail})
	r.Passed = false
}

func (r *Result) checkInt(name string, want, got int) {
	if want == got {
		r.pass(name)
		return
	}
	r.fail(name, fmt.Sprintf("got %d, want %d", got, want))
}

func (r *Result) checkFloat(name string, want, got float64) {
	if math.Abs(want-got) <= floatTolerance {
		r.pass(name)
		return
	}
	r.fail(name, fmt.Sprintf("got %v, want %v", got, want))
}

func (r *Result) checkFlags(name string, want, got []bool) {
	if len(want) != len(got) {
		r.fail(name, fmt.Sprintf("got %d flags, want %d", len(got), len(want)))
		return
	}
	for i := range want {
		if want[i] != got[i] {
			r.fail(name, fmt.Sprintf("flag %d: got %v, want %v", i, got[i], want[i]))
			return
		}
	}
	r.pass(name)
}

func (r *Result) checkStrings(name string, want, got []string) {
	if len(want) != len(got) {
		r.fail(name, fmt.Sprintf("got %d entries, want %d", len(got), len(want)))
		return
	}
	for i := range want {
		if want[i] != got[i] {
			r.fail(name, fmt.Sprintf("entry %d: got %q, want %q", i, got[i], want[i]))
			return
		}
	}
	r.pass(name)
}

// #endregion checks
