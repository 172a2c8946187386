// Package chi implements the HTTP API on top of the go-chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tracknorth/casematch/internal/domain"
	healthuc "github.com/tracknorth/casematch/internal/usecase/health"
	similaruc "github.com/tracknorth/casematch/internal/usecase/similar"
	tableuc "github.com/tracknorth/casematch/internal/usecase/table"
)

// Limits bounds client-supplied request parameters.
type Limits struct {
	DefaultTopK    int
	MaxTopK        int
	PreviewRows    int
	MaxPreviewRows int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the casematch API.
type Server struct {
	similar       *similaruc.Service
	table         *tableuc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	similar *similaruc.Service,
	table *tableuc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		similar: similar,
		table:   table,
		health:  health,
		limits:  limits,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCaseNotFound, http.StatusNotFound, ErrorCodeCaseNotFound),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/search", s.SearchSimilar)
	r.Get("/cases/{caseNumber}", s.GetCase)
	r.Get("/table-preview", s.TablePreview)
	r.Get("/status", s.TableStatus)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchSimilar handles POST /search.
func (s *Server) SearchSimilar(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	caseNumber := strings.TrimSpace(req.CaseNumber)
	if caseNumber == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "case_number is required")
		return
	}

	topK := s.limits.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	if topK < 1 || topK > s.limits.MaxTopK {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			fmt.Sprintf("top_k must be between 1 and %d", s.limits.MaxTopK))
		return
	}

	results, err := s.similar.SimilarCases(r.Context(), caseNumber, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SimilarCase, len(results))
	for i := range results {
		items[i] = similarCaseToDTO(&results[i])
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Success:      true,
		CaseNumber:   caseNumber,
		SimilarCases: items,
		TotalFound:   len(items),
	})
}

// GetCase handles GET /cases/{caseNumber}.
func (s *Server) GetCase(w http.ResponseWriter, r *http.Request) {
	caseNumber := chi.URLParam(r, "caseNumber")

	rec, err := s.table.Case(r.Context(), caseNumber)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, caseToDTO(&rec))
}

// TablePreview handles GET /table-preview.
func (s *Server) TablePreview(w http.ResponseWriter, r *http.Request) {
	rows := s.limits.PreviewRows
	if raw := r.URL.Query().Get("rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				"rows must be a positive integer")
			return
		}
		rows = n
	}
	if rows > s.limits.MaxPreviewRows {
		rows = s.limits.MaxPreviewRows
	}

	records, err := s.table.Preview(r.Context(), rows)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	info, err := s.table.Info(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]CaseResponse, len(records))
	for i := range records {
		items[i] = caseToDTO(&records[i])
	}

	writeJSON(w, http.StatusOK, PreviewResponse{
		Success: true,
		Table:   info.Table,
		Rows:    items,
	})
}

// TableStatus handles GET /status.
func (s *Server) TableStatus(w http.ResponseWriter, r *http.Request) {
	info, err := s.table.Info(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success:   true,
		Table:     info.Table,
		Rows:      info.Rows,
		VectorDim: info.VectorDim,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func similarCaseToDTO(res *domain.SimilarityResult) SimilarCase {
	meta := res.Meta()
	return SimilarCase{
		CaseNumber:      res.Number(),
		SimilarityScore: res.Score(),
		Title:           meta.Title,
		Resolution:      meta.Resolution,
		AssignmentGroup: meta.AssignmentGroup,
		CaseType:        meta.CaseType,
		Status:          meta.Status,
	}
}

func caseToDTO(rec *domain.CaseRecord) CaseResponse {
	meta := rec.Meta()
	return CaseResponse{
		CaseNumber:      rec.Number(),
		Title:           meta.Title,
		Resolution:      meta.Resolution,
		AssignmentGroup: meta.AssignmentGroup,
		CaseType:        meta.CaseType,
		Status:          meta.Status,
		VectorDim:       rec.Vector().Dim(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCaseNotFound,
		domain.ErrNoFeatureVector,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
