package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sandy-lab/zsigma-diag/internal/store"
)

// #region chart-index

// handleChartIndex renders a minimal dashboard linking the debug charts for
// a stored run. Debugging-only endpoints; no auth.
func (s *Server) handleChartIndex(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html><html><head><title>Diagnostic Charts</title></head><body>
<h2>Run %s</h2>
<ul>
<li><a href="/debug/charts/map?run_id=%s">Z&ndash;&Sigma; operating map</a></li>
<li><a href="/debug/charts/gate?run_id=%s">Gate Product and slope</a></li>
</ul>
</body></html>`, runID, runID, runID)
}

// #endregion chart-index

// #region map-chart

// handleMapChart renders the (Z, Sigma) trajectory of a stored run as an
// HTML scatter, with phase-0 flagged samples in their own series and the
// safe rectangle drawn as a sampled perimeter.
func (s *Server) handleMapChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.chartRun(w, r)
	if !ok {
		return
	}

	p := rec.Report.Proxies
	flags := rec.Report.Phase0.Phase0Flag
	nominal := make([]opts.ScatterData, 0, len(p.Z))
	flagged := make([]opts.ScatterData, 0)
	for i := range p.Z {
		d := opts.ScatterData{Value: []interface{}{p.Z[i], p.Sigma[i]}}
		if flags[i] {
			flagged = append(flagged, d)
		} else {
			nominal = append(nominal, d)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Z-Sigma Operating Map", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Z-Sigma Operating Map",
			Subtitle: fmt.Sprintf("run=%s samples=%d flagged=%d", shortID(rec.RunID), rec.SampleCount, rec.Report.Phase0.FlaggedCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 1, Name: "Z (confinement)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "Sigma (entropy export)", NameLocation: "middle", NameGap: 30}),
	)

	scatter.AddSeries("trajectory", nominal, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	scatter.AddSeries("phase-0 flagged", flagged, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	scatter.AddSeries("safe rectangle", squarePerimeter(rec), charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	s.renderChart(w, scatter.Render)
}

// squarePerimeter samples the safe-rectangle outline so it renders inside a
// plain scatter without a second chart type.
func squarePerimeter(rec store.RunRecord) []opts.ScatterData {
	sq := rec.Config.Square
	const steps = 20
	out := make([]opts.ScatterData, 0, 4*steps)
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		z := sq.ZMin + t*(sq.ZMax-sq.ZMin)
		sig := sq.SigmaMin + t*(sq.SigmaMax-sq.SigmaMin)
		out = append(out,
			opts.ScatterData{Value: []interface{}{z, sq.SigmaMin}},
			opts.ScatterData{Value: []interface{}{z, sq.SigmaMax}},
			opts.ScatterData{Value: []interface{}{sq.ZMin, sig}},
			opts.ScatterData{Value: []interface{}{sq.ZMax, sig}},
		)
	}
	return out
}

// #endregion map-chart

// #region gate-chart

// handleGateChart renders G and dGdt over time for a stored run.
func (s *Server) handleGateChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.chartRun(w, r)
	if !ok {
		return
	}

	g := rec.Report.Gate
	labels := make([]string, len(g.Time))
	gData := make([]opts.LineData, len(g.G))
	slopeData := make([]opts.LineData, len(g.DGdt))
	for i := range g.Time {
		labels[i] = strconv.FormatFloat(g.Time[i], 'g', 6, 64)
		gData[i] = opts.LineData{Value: g.G[i]}
		slopeData[i] = opts.LineData{Value: g.DGdt[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Gate Product", Width: "1100px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Gate Product G = (1-Z)*Sigma",
			Subtitle: fmt.Sprintf("run=%s dg_crit=%.6f max_slope=%.6f", shortID(rec.RunID), rec.Report.Phase0.DGCrit, rec.Report.Phase0.MaxSlope),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("G", gData)
	line.AddSeries("dG/dt", slopeData)

	s.renderChart(w, line.Render)
}

// #endregion gate-chart

// #region chart-helpers

// chartRun loads the run named by the run_id query param, writing the error
// response itself when missing.
func (s *Server) chartRun(w http.ResponseWriter, r *http.Request) (store.RunRecord, bool) {
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "run_id query parameter required")
		return store.RunRecord{}, false
	}
	rec, err := s.store.GetRun(runID)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return store.RunRecord{}, false
	}
	return rec, true
}

func (s *Server) renderChart(w http.ResponseWriter, render func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion chart-helpers
