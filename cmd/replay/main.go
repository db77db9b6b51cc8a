package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/sandy-lab/zsigma-diag/internal/logging"
	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/replay"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
	"github.com/sandy-lab/zsigma-diag/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to zsigma_runs.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	last := flag.Int("last", 20, "number of most recent runs to replay (DB mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/zsigma_runs.db [--last N]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *last)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	result := replay.Run(f)

	fmt.Printf("Fixture: %s\n\n", result.Description)
	fmt.Printf("%-28s| %-6s| %s\n", "Check", "Result", "Detail")
	fmt.Printf("%-28s+%-7s+%s\n", "----------------------------", "-------", "------")

	failed := 0
	for _, c := range result.Checks {
		status := "OK"
		if !c.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%-28s| %-6s| %s\n", c.Name, status, c.Detail)
	}

	fmt.Printf("\nSummary: %d checks, %d failed\n", len(result.Checks), failed)
	if !result.Passed {
		return 1
	}
	return 0
}

// #endregion fixture-mode

// #region db-mode

// runDBMode re-runs the stored input columns of the most recent runs through
// the current pipeline and compares the summary values against what was
// persisted at diagnosis time.
func runDBMode(dbPath string, last int) int {
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	summaries, err := st.ListRuns(last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list runs: %v\n", err)
		return 2
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found in store")
		return 2
	}

	fmt.Printf("%-10s| %-8s| %-8s| %s\n", "Run", "Stored", "Replayed", "Match")
	fmt.Printf("%-10s+%-9s+%-9s+%s\n", "----------", "---------", "---------", "------")

	diverged := 0
	for _, sum := range summaries {
		rec, err := st.GetRun(sum.RunID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "get run %s: %v\n", sum.RunID, err)
			return 2
		}

		match, detail := replayRun(rec)
		status := "OK"
		outcome := "ok"
		if !match {
			status = "DIFF"
			outcome = "rejected"
			diverged++
		}
		fmt.Printf("%-10s| %-8d| %-8s| %s\n", shortID(rec.RunID), rec.Report.Phase0.FlaggedCount, detail, status)

		if err := logging.LogRun(st.DB(), logging.Entry{
			RunID:       rec.RunID,
			TriggerType: "replay",
			Outcome:     outcome,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "run log: %v\n", err)
		}
	}

	fmt.Printf("\nSummary: %d runs, %d diverge\n", len(summaries), diverged)
	if diverged > 0 {
		return 1
	}
	return 0
}

// replayRun re-diagnoses one stored run and compares the phase-0 summary.
func replayRun(rec store.RunRecord) (bool, string) {
	batch, err := sample.FromColumns(rec.Columns)
	if err != nil {
		return false, fmt.Sprintf("rebuild batch: %v", err)
	}
	report, err := pipeline.Diagnose(batch, rec.Config)
	if err != nil {
		return false, fmt.Sprintf("diagnose: %v", err)
	}

	stored := rec.Report.Phase0
	got := report.Phase0
	if got.FlaggedCount != stored.FlaggedCount ||
		!floatsClose(got.MinDistance, stored.MinDistance) ||
		!floatsClose(got.MaxSlope, stored.MaxSlope) ||
		!floatsClose(got.DGCrit, stored.DGCrit) {
		return false, fmt.Sprintf("flagged=%d min=%.4g", got.FlaggedCount, got.MinDistance)
	}
	return true, fmt.Sprintf("%d", got.FlaggedCount)
}

func floatsClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion db-mode
