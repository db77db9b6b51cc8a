package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/sandy-lab/zsigma-diag/internal/logging"
	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/sample"
	"github.com/sandy-lab/zsigma-diag/internal/store"
)

// #region server

// Server exposes the diagnostic pipeline over HTTP+JSON and serves debug
// charts of stored runs.
type Server struct {
	store  *store.Store
	config pipeline.Config
}

// NewServer creates a server around a run store, using config for every
// diagnose and classify request.
func NewServer(st *store.Store, config pipeline.Config) *Server {
	return &Server{store: st, config: config}
}

// ServeMux returns the routing table for the API and debug chart endpoints.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/diagnose", s.handleDiagnose)
	mux.HandleFunc("GET /api/classify", s.handleClassify)
	mux.HandleFunc("GET /api/runs", s.handleListRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /debug/charts", s.handleChartIndex)
	mux.HandleFunc("GET /debug/charts/map", s.handleMapChart)
	mux.HandleFunc("GET /debug/charts/gate", s.handleGateChart)
	return mux
}

// #endregion server

// #region middleware

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf("[%d] %s %s %vms",
			lrw.statusCode, r.Method, r.RequestURI,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// #endregion middleware

// #region diagnose

// diagnoseRequest is the POST /api/diagnose body.
type diagnoseRequest struct {
	Source  string         `json:"source,omitempty"`
	Columns sample.Columns `json:"columns"`
}

// diagnoseResponse wraps the report with the persisted run ID.
type diagnoseResponse struct {
	RunID  string                     `json:"run_id"`
	Report *pipeline.DiagnosticReport `json:"report"`
}

func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	batch, err := sample.FromColumns(req.Columns)
	if err != nil {
		s.auditFailure("api_diagnose", err)
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := pipeline.Diagnose(batch, s.config)
	if err != nil {
		s.auditFailure("api_diagnose", err)
		status := http.StatusBadRequest
		if !errors.Is(err, sample.ErrInsufficientData) {
			status = http.StatusInternalServerError
		}
		s.writeJSONError(w, status, err.Error())
		return
	}

	rec, err := s.store.SaveRun(req.Columns, s.config, report, req.Source)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "persist run: "+err.Error())
		return
	}
	if err := logging.LogRun(s.store.DB(), logging.Entry{
		RunID:       rec.RunID,
		TriggerType: "api_diagnose",
		Outcome:     "ok",
	}); err != nil {
		log.Printf("run log error: %v", err)
	}

	s.writeJSON(w, http.StatusOK, diagnoseResponse{RunID: rec.RunID, Report: report})
}

func (s *Server) auditFailure(trigger string, cause error) {
	if err := logging.LogRun(s.store.DB(), logging.Entry{
		TriggerType: trigger,
		Outcome:     "error",
		Reason:      cause.Error(),
	}); err != nil {
		log.Printf("run log error: %v", err)
	}
}

// #endregion diagnose

// #region classify

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	z, err := strconv.ParseFloat(r.URL.Query().Get("z"), 64)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "z must be a number")
		return
	}
	sigma, err := strconv.ParseFloat(r.URL.Query().Get("sigma"), 64)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "sigma must be a number")
		return
	}

	s.writeJSON(w, http.StatusOK, pipeline.Manual(z, sigma, s.config))
}

// #endregion classify

// #region runs

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	summaries, err := s.store.ListRuns(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []store.RunSummary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetRun(r.PathValue("id"))
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, diagnoseResponse{RunID: rec.RunID, Report: rec.Report})
}

// #endregion runs

// #region json-helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// #endregion json-helpers
