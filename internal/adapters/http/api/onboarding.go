package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/artistly/internal/adapters/session"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/pkg/metrics"
)

// IdempotencyHeader carries the client key guarding a submission.
const IdempotencyHeader = "Idempotency-Key"

// Onboarding actions accepted by POST /sessions/{id}/onboarding.
const (
	ActionSet            = "set"
	ActionToggleCategory = "toggle_category"
	ActionToggleLanguage = "toggle_language"
	ActionNext           = "next"
	ActionPrev           = "prev"
)

type onboardingRequest struct {
	Action string `json:"action"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
}

type onboardingResponse struct {
	Step    onboarding.Step       `json:"step"`
	Steps   []onboarding.StepInfo `json:"steps"`
	Form    onboarding.Snapshot   `json:"form"`
	Notices []onboarding.Notice   `json:"notices"`
}

type submitResponse struct {
	Status        string `json:"status"`
	Duplicate     bool   `json:"duplicate"`
	ApplicationID string `json:"applicationId"`
	Message       string `json:"message,omitempty"`
}

func onboardingView(s *session.Session) onboardingResponse {
	return onboardingResponse{
		Step:    s.Form.Step(),
		Steps:   onboarding.Steps(),
		Form:    s.Form.Snapshot(),
		Notices: s.DrainNotices(),
	}
}

// OnboardingHandler drives the artist onboarding form of a session.
type OnboardingHandler struct {
	deps Dependencies
}

// NewOnboardingHandler creates a new onboarding handler.
func NewOnboardingHandler(deps Dependencies) *OnboardingHandler {
	return &OnboardingHandler{deps: deps}
}

// HandleGet handles GET /sessions/{id}/onboarding.
func (h *OnboardingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var resp onboardingResponse
	err := h.deps.Sessions().With(r.Context(), r.PathValue("id"), func(s *session.Session) error {
		resp = onboardingView(s)
		return nil
	})
	if err != nil {
		writeDomainError(w, Wrap("api.get_onboarding", err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleAction handles POST /sessions/{id}/onboarding. A blocked next step
// answers 422 with the field messages; the notice stays in the session inbox.
func (h *OnboardingHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	const op = "api.onboarding_action"
	var req onboardingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	var resp onboardingResponse
	err := h.deps.Sessions().With(r.Context(), r.PathValue("id"), func(s *session.Session) error {
		if err := applyFormAction(r, s.Form, req); err != nil {
			return err
		}
		resp = onboardingView(s)
		return nil
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func applyFormAction(r *http.Request, f *onboarding.Form, req onboardingRequest) error {
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case ActionSet:
		return f.Set(req.Field, req.Value)
	case ActionToggleCategory:
		_, err := f.ToggleCategory(req.Value)
		return err
	case ActionToggleLanguage:
		_, err := f.ToggleLanguage(req.Value)
		return err
	case ActionNext:
		return f.Next(r.Context())
	case ActionPrev:
		f.Prev()
		return nil
	}
	return fmt.Errorf("%w: unknown onboarding action %q", ErrBadRequest, req.Action)
}

// HandleSubmit handles POST /sessions/{id}/onboarding/submit.
//
// With an Idempotency-Key header a replay returns the first acknowledgement.
// A replay that arrives while the first attempt is still running gets 409.
// Failed attempts release the key so the client may retry with it.
func (h *OnboardingHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.onboarding_submit"
	ctx := r.Context()
	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))

	if key != "" && h.deps.SeenAndRecord(ctx, key) {
		if ack, ok := h.deps.Result(ctx, key); ok {
			metrics.RecordApplicationDuplicate()
			writeJSON(w, http.StatusOK, submitResponse{Status: "duplicate", Duplicate: true, ApplicationID: ack})
			return
		}
		writeDomainError(w, WrapKind(op, ErrConflict, fmt.Errorf("submission with key %q in progress", key)))
		return
	}

	var appID string
	err := h.deps.Sessions().With(ctx, r.PathValue("id"), func(s *session.Session) error {
		app, err := s.Form.Submit(ctx)
		if err != nil {
			return err
		}
		appID = app.ID
		return nil
	})
	if err != nil {
		if key != "" {
			h.deps.Unrecord(ctx, key)
		}
		writeDomainError(w, Wrap(op, err))
		return
	}

	if key != "" {
		h.deps.Acknowledge(ctx, key, appID)
	}
	writeJSON(w, http.StatusAccepted, submitResponse{
		Status:        "accepted",
		ApplicationID: appID,
		Message:       onboarding.SuccessMessage,
	})
}
