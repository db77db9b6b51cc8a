package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sandy-lab/zsigma-diag/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to zsigma_runs.db")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/zsigma_runs.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *runID != "" {
		err = runDetailMode(st, *runID, *jsonOut)
	} else {
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(st *store.Store, last int, jsonOut bool) error {
	summaries, err := st.ListRuns(last)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	fmt.Printf("%-10s| %-14s| %-7s| %-9s| %-9s| %-8s| %-7s| %s\n",
		"Run", "Source", "Samples", "MinDist", "MaxSlope", "dGcrit", "Flagged", "Created")
	for _, s := range summaries {
		fmt.Printf("%-10s| %-14s| %-7d| %-9.4f| %-9.4f| %-8.4f| %-7d| %s\n",
			shortID(s.RunID), s.Source, s.SampleCount,
			s.MinDistance, s.MaxSlope, s.DGCrit, s.FlaggedCount,
			s.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(st *store.Store, runID string, jsonOut bool) error {
	rec, err := st.GetRun(runID)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec.Report)
	}

	p0 := rec.Report.Phase0
	fmt.Printf("Run %s (source=%s, %d samples, created %s)\n",
		rec.RunID, rec.Source, rec.SampleCount, rec.CreatedAt.Format(time.RFC3339))
	fmt.Printf("  min distance %.4f | max slope %.4f | dG_crit %.4f | %d flagged\n\n",
		p0.MinDistance, p0.MaxSlope, p0.DGCrit, p0.FlaggedCount)

	for _, w := range rec.Report.Warnings {
		fmt.Printf("  WARNING: %s\n", w)
	}
	if len(rec.Report.Warnings) > 0 {
		fmt.Println()
	}

	fmt.Printf("%-8s| %-8s| %-8s| %-8s| %-8s| %-8s| %s\n",
		"Time", "Z", "Sigma", "G", "dG/dt", "Dist", "Phase0")
	g := rec.Report.Gate
	px := rec.Report.Proxies
	for i := range px.Time {
		flag := ""
		if p0.Phase0Flag[i] {
			flag = "FLAG"
		}
		fmt.Printf("%-8.3f| %-8.4f| %-8.4f| %-8.4f| %-8.4f| %-8.4f| %s\n",
			px.Time[i], px.Z[i], px.Sigma[i], g.G[i], g.DGdt[i],
			p0.DistanceToWall[i], flag)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion detail-mode
