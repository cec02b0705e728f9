// Package chi exposes the evaluation pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/metrics"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
	healthuc "github.com/qirion-cloud/qaoad/internal/usecase/health"
)

const maxSweepSize = 1000

// Error codes returned in the error envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeBackendError     = "backend_error"
	codeInternalError    = "internal_error"
)

// Server hosts the evaluation API.
type Server struct {
	evaluator    evaluate.Evaluator
	sweeper      *evaluate.Sweeper
	health       *healthuc.Service
	backendKind  domain.BackendKind
	defaultShots int
	logger       *zap.Logger
}

// NewServer creates an HTTP API server. defaultShots applies when a request
// does not carry its own shot count; it is ignored by the exact backend.
func NewServer(
	evaluator evaluate.Evaluator,
	sweeper *evaluate.Sweeper,
	health *healthuc.Service,
	backendKind domain.BackendKind,
	defaultShots int,
	logger *zap.Logger,
) *Server {
	return &Server{
		evaluator:    evaluator,
		sweeper:      sweeper,
		health:       health,
		backendKind:  backendKind,
		defaultShots: defaultShots,
		logger:       logger,
	}
}

// Router builds the chi router with metrics and auth middleware.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chiv5.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Post("/v1/evaluations", s.CreateEvaluation)
	r.Post("/v1/sweeps", s.CreateSweep)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	return r
}

// CreateEvaluation handles POST /v1/evaluations.
func (s *Server) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	params, opts, err := paramsFromSpec(req.circuitSpecDTO)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	res, err := s.evaluator.Evaluate(r.Context(), evaluate.Request{
		Params:  params,
		Angles:  domain.Angles{Betas: req.Betas, Gammas: req.Gammas},
		Options: opts,
		Shots:   s.resolveShots(req.Shots),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluationToDTO(res, string(s.backendKind)))
}

// CreateSweep handles POST /v1/sweeps.
func (s *Server) CreateSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.AngleSets) == 0 || len(req.AngleSets) > maxSweepSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"angle_sets count must be between 1 and 1000")
		return
	}

	params, opts, err := paramsFromSpec(req.circuitSpecDTO)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	angleSets := make([]domain.Angles, len(req.AngleSets))
	for i, as := range req.AngleSets {
		angleSets[i] = domain.Angles{Betas: as.Betas, Gammas: as.Gammas}
	}

	results, err := s.sweeper.Sweep(r.Context(), evaluate.SweepRequest{
		Params:    params,
		Options:   opts,
		Shots:     s.resolveShots(req.Shots),
		AngleSets: angleSets,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]evaluationResponseDTO, len(results))
	for i, res := range results {
		item := evaluationToDTO(res, string(s.backendKind))
		item.Counts = nil // sweep responses stay compact
		items[i] = item
	}

	writeJSON(w, http.StatusOK, sweepResponseDTO{Items: items, Count: len(items)})
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

	writeJSON(w, httpStatus, healthResponseDTO{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// resolveShots picks the request override or the configured default.
func (s *Server) resolveShots(override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	return s.defaultShots
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupportedTerm):
		s.logger.Warn("validation error", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeValidationFailed, safeDomainMessage(err))
	case errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, domain.ErrDeviceResolution),
		errors.Is(err, domain.ErrExecution):
		s.logger.Warn("backend error", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeBackendError, safeDomainMessage(err))
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// safeDomainMessage returns an error message for the client without exposing
// internals. The connectivity failures carry fixed, client-facing text and
// are passed through whole; other errors fall back to their sentinel.
func safeDomainMessage(err error) string {
	var authErr *domain.AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}
	var devErr *domain.DeviceResolutionError
	if errors.As(err, &devErr) {
		return devErr.Error()
	}

	sentinels := []error{
		domain.ErrValidation,
		domain.ErrUnsupportedTerm,
		domain.ErrExecution,
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponseDTO{
		Code:    code,
		Message: message,
	})
}
