package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/replay"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
)

// #region main

func main() {
	csvPath := flag.String("csv", "", "input CSV with one column per signal")
	outPath := flag.String("out", "", "output fixture JSON path")
	description := flag.String("description", "exported discharge fixture", "fixture description")
	source := flag.String("source", "cli_export", "fixture source tag")
	flag.Parse()

	if *csvPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --csv path/to/discharge.csv --out path/to/fixture.json")
		os.Exit(2)
	}

	if err := run(*csvPath, *outPath, *description, *source); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(csvPath, outPath, description, source string) error {
	cols, err := readColumns(csvPath)
	if err != nil {
		return err
	}

	config := pipeline.DefaultConfig()
	f := replay.Fixture{
		Description: description,
		Source:      source,
		Config:      &config,
		Columns:     cols,
	}

	// Run the pipeline once and record its output as the expectation. A
	// failing batch is exported as an expected-error fixture.
	batch, err := sample.FromColumns(cols)
	if err == nil {
		var report *pipeline.DiagnosticReport
		report, err = pipeline.Diagnose(batch, config)
		if err == nil {
			p0 := report.Phase0
			f.Expected = replay.Expected{
				SampleCount:  report.SampleCount(),
				FlaggedCount: p0.FlaggedCount,
				MinDistance:  p0.MinDistance,
				MaxSlope:     p0.MaxSlope,
				DGCrit:       p0.DGCrit,
				Phase0Flags:  p0.Phase0Flag,
				Warnings:     report.Warnings,
			}
		}
	}
	if err != nil {
		f.Expected = replay.Expected{ExpectedError: err.Error()}
	}

	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Printf("wrote %s (%d samples)\n", outPath, len(cols["time"]))
	return nil
}

// #endregion export

// #region csv

// readColumns parses a header CSV into named float columns. Empty cells in
// optional columns are skipped; empty cells in required columns are an error.
func readColumns(path string) (sample.Columns, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv %s has no data rows", path)
	}

	header := records[0]
	cols := make(sample.Columns, len(header))
	for _, name := range header {
		cols[name] = make([]float64, 0, len(records)-1)
	}

	for rowNum, row := range records[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", rowNum+2, len(row), len(header))
		}
		for i, cell := range row {
			if cell == "" && header[i] == sample.ColumnTauE {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", rowNum+2, header[i], err)
			}
			cols[header[i]] = append(cols[header[i]], v)
		}
	}

	// Drop an entirely-empty optional column rather than exporting [].
	if tau, ok := cols[sample.ColumnTauE]; ok && len(tau) == 0 {
		delete(cols, sample.ColumnTauE)
	}
	return cols, nil
}

// #endregion csv
