// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/okian/artistly/internal/adapters/present"
	"github.com/okian/artistly/internal/adapters/repository"
	"github.com/okian/artistly/internal/adapters/session"
	"github.com/okian/artistly/internal/domain/dashboard"
	"github.com/okian/artistly/internal/domain/dedupe"
	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/internal/domain/vocab"
)

const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Idempotency keys for onboarding submissions.
	dedupe.Deduper

	Catalog() repository.Store
	Sessions() *session.Store

	// Submissions returns the dashboard collection. Callers must not modify it.
	Submissions() []model.Submission

	Now() time.Time

	// MaxSearchLength caps search terms in runes. Zero means unlimited.
	MaxSearchLength() int
	// DefaultView is used when a request does not pick grid or list.
	DefaultView() present.Mode
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	catalogHandler    *CatalogHandler
	sessionHandler    *SessionHandler
	onboardingHandler *OnboardingHandler
	dashboardHandler  *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		catalogHandler:    NewCatalogHandler(deps),
		sessionHandler:    NewSessionHandler(deps),
		onboardingHandler: NewOnboardingHandler(deps),
		dashboardHandler:  NewDashboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /artists", MetricsMiddleware(s.catalogHandler.HandleListArtists, "artists"))
	mux.HandleFunc("GET /artists/{id}", MetricsMiddleware(s.catalogHandler.HandleGetArtist, "artist"))
	mux.HandleFunc("GET /categories", MetricsMiddleware(s.catalogHandler.HandleCategories, "categories"))
	mux.HandleFunc("GET /options", MetricsMiddleware(s.catalogHandler.HandleOptions, "options"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionHandler.HandleDelete, "session"))
	mux.HandleFunc("GET /sessions/{id}/artists", MetricsMiddleware(s.sessionHandler.HandleArtists, "session_artists"))
	mux.HandleFunc("POST /sessions/{id}/filters", MetricsMiddleware(s.sessionHandler.HandleFilters, "session_filters"))

	mux.HandleFunc("GET /sessions/{id}/onboarding", MetricsMiddleware(s.onboardingHandler.HandleGet, "onboarding"))
	mux.HandleFunc("POST /sessions/{id}/onboarding", MetricsMiddleware(s.onboardingHandler.HandleAction, "onboarding"))
	mux.HandleFunc("POST /sessions/{id}/onboarding/submit", MetricsMiddleware(s.onboardingHandler.HandleSubmit, "onboarding_submit"))

	mux.HandleFunc("GET /dashboard/submissions", MetricsMiddleware(s.dashboardHandler.HandleList, "dashboard_submissions"))
	mux.HandleFunc("GET /dashboard/stats", MetricsMiddleware(s.dashboardHandler.HandleStats, "dashboard_stats"))
	mux.HandleFunc("POST /dashboard/submissions/{id}/status", MetricsMiddleware(s.dashboardHandler.HandleStatusChange, "dashboard_status"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// validationResponse is the 422 body for a blocked onboarding step.
type validationResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Step    onboarding.Step         `json:"step"`
	Fields  []onboarding.FieldError `json:"fields"`
	Warning string                  `json:"warning,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	if verr, ok := onboarding.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Code:    "validation_failed",
			Message: verr.Message(),
			Step:    verr.Step,
			Fields:  verr.Fields,
			Warning: verr.Warning,
		})
		return
	}

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBackpressure),
		errors.Is(err, onboarding.ErrSubmitFailed):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, ErrConflict),
		errors.Is(err, onboarding.ErrNotReady),
		errors.Is(err, dashboard.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, filter.ErrUnknownFacet),
		errors.Is(err, filter.ErrUnknownValue),
		errors.Is(err, filter.ErrTermTooLong),
		errors.Is(err, filter.ErrUnknownSort),
		errors.Is(err, vocab.ErrUnknownFacet),
		errors.Is(err, onboarding.ErrUnknownField),
		errors.Is(err, onboarding.ErrUnknownValue),
		errors.Is(err, dashboard.ErrInvalidQuery),
		errors.Is(err, present.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
