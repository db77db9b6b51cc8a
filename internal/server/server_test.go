package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewServer(st, pipeline.DefaultConfig())
}

func diagnoseBody() string {
	return `{
		"source": "http-test",
		"columns": {
			"time":       [0, 1, 2, 3],
			"H98y2":      [0.8, 1.0, 1.2, 1.1],
			"P_rad":      [2, 3, 4, 5],
			"P_input":    [10, 10, 10, 10],
			"f_ELM":      [0.1, 0.2, 0.3, 0.4],
			"DeltaW_ELM": [0, 0.1, 0.1, 0.2]
		}
	}`
}

func postDiagnose(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(w, req)
	return w
}

func TestDiagnoseEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := postDiagnose(t, s, diagnoseBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		RunID  string                     `json:"run_id"`
		Report *pipeline.DiagnosticReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	require.NotNil(t, resp.Report)
	assert.Equal(t, 4, resp.Report.SampleCount())
	assert.Len(t, resp.Report.Phase0.Phase0Flag, 4)
}

func TestDiagnoseMissingColumns(t *testing.T) {
	s := newTestServer(t)
	w := postDiagnose(t, s, `{"columns": {"time": [0, 1]}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "H98y2")
	assert.Contains(t, w.Body.String(), "missing required columns")
}

func TestDiagnoseInsufficientData(t *testing.T) {
	s := newTestServer(t)
	w := postDiagnose(t, s, `{
		"columns": {
			"time": [0], "H98y2": [1.0], "P_rad": [2],
			"P_input": [10], "f_ELM": [0.1], "DeltaW_ELM": [0]
		}
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 2 samples")
}

func TestDiagnoseInvalidJSON(t *testing.T) {
	s := newTestServer(t)
	w := postDiagnose(t, s, "{nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassifyEndpoint(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/classify?z=0.85&sigma=0.30", nil)
	w := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp pipeline.ManualReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "safe_zone", string(resp.Label))
	assert.InDelta(t, 0.1050, resp.GateProduct, 1e-12)
	assert.NotEmpty(t, resp.Message)
}

func TestClassifyRejectsNonNumeric(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/classify?z=abc&sigma=0.3", nil)
	w := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunsEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := postDiagnose(t, s, diagnoseBody())
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	listReq := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	lw := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(lw, listReq)
	require.Equal(t, http.StatusOK, lw.Code)

	var summaries []store.RunSummary
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, resp.RunID, summaries[0].RunID)
	assert.Equal(t, "http-test", summaries[0].Source)

	getReq := httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID, nil)
	gw := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(gw, getReq)
	require.Equal(t, http.StatusOK, gw.Code)
	assert.Contains(t, gw.Body.String(), resp.RunID)

	missReq := httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil)
	mw := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(mw, missReq)
	assert.Equal(t, http.StatusNotFound, mw.Code)
}

func TestRunsEmptyListIsArray(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	w := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestChartEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := postDiagnose(t, s, diagnoseBody())
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	for _, path := range []string{
		"/debug/charts?run_id=" + resp.RunID,
		"/debug/charts/map?run_id=" + resp.RunID,
		"/debug/charts/gate?run_id=" + resp.RunID,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		cw := httptest.NewRecorder()
		s.ServeMux().ServeHTTP(cw, req)
		require.Equal(t, http.StatusOK, cw.Code, path)
		assert.Contains(t, cw.Header().Get("Content-Type"), "text/html", path)
		assert.NotEmpty(t, cw.Body.String(), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/debug/charts/map", nil)
	cw := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(cw, req)
	assert.Equal(t, http.StatusBadRequest, cw.Code)
}
