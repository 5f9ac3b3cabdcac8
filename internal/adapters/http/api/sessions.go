package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/artistly/internal/adapters/session"
	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/internal/domain/vocab"
	"github.com/okian/artistly/pkg/metrics"
)

// Filter actions accepted by POST /sessions/{id}/filters.
const (
	FilterToggle = "toggle"
	FilterRemove = "remove"
	FilterSearch = "search"
	FilterClear  = "clear"
	FilterSeed   = "seed"
)

type filterRequest struct {
	Action string `json:"action"`
	Facet  string `json:"facet,omitempty"`
	Value  string `json:"value,omitempty"`
	Term   string `json:"term,omitempty"`
}

type filtersResponse struct {
	Filters       filter.Snapshot `json:"filters"`
	ActiveFilters int             `json:"activeFilters"`
	Chips         []filter.Chip   `json:"chips"`
	Seeded        bool            `json:"seeded"`
}

type sessionResponse struct {
	ID         string              `json:"id"`
	CreatedAt  time.Time           `json:"createdAt"`
	Filters    filtersResponse     `json:"filters"`
	Onboarding onboarding.Snapshot `json:"onboarding"`
	Notices    []onboarding.Notice `json:"notices"`
}

func filtersView(s *filter.State) filtersResponse {
	return filtersResponse{
		Filters:       s.Snapshot(),
		ActiveFilters: s.ActiveCount(),
		Chips:         s.ActiveValues(),
		Seeded:        s.Seeded(),
	}
}

func sessionView(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		Filters:    filtersView(s.Filters),
		Onboarding: s.Form.Snapshot(),
		Notices:    s.DrainNotices(),
	}
}

// SessionHandler serves per-visitor browse state.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// HandleCreate handles POST /sessions[?category=]. The optional category is
// the navigation parameter that pre-selects one category.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	sess, err := h.deps.Sessions().Create(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
	if err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	var resp sessionResponse
	err = h.deps.Sessions().With(r.Context(), sess.ID, func(s *session.Session) error {
		resp = sessionView(s)
		return nil
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /sessions/{id}. Pending notices are drained.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var resp sessionResponse
	err := h.deps.Sessions().With(r.Context(), r.PathValue("id"), func(s *session.Session) error {
		resp = sessionView(s)
		return nil
	})
	if err != nil {
		writeDomainError(w, Wrap("api.get_session", err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /sessions/{id}.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.deps.Sessions().Delete(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// HandleArtists handles GET /sessions/{id}/artists: the catalog filtered by
// the session's state.
func (h *SessionHandler) HandleArtists(w http.ResponseWriter, r *http.Request) {
	const op = "api.session_artists"
	listing, err := parseListing(r.URL.Query(), h.deps.DefaultView())
	if err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	catalog := h.deps.Catalog()
	artists, err := catalog.List(r.Context())
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}

	var state *filter.State
	err = h.deps.Sessions().With(r.Context(), r.PathValue("id"), func(s *session.Session) error {
		state = s.Filters.Clone()
		return nil
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	result := filter.Apply(artists, state)
	filter.Sort(result, listing.order)
	metrics.RecordFilterQuery("session", len(result))

	writeListing(w, r, listing, result, len(artists), catalog.Vocabulary(r.Context()), state)
}

// HandleFilters handles POST /sessions/{id}/filters.
func (h *SessionHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.session_filters"
	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	var resp filtersResponse
	err := h.deps.Sessions().With(r.Context(), r.PathValue("id"), func(s *session.Session) error {
		if err := applyFilterAction(s.Filters, req); err != nil {
			return err
		}
		resp = filtersView(s.Filters)
		return nil
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func applyFilterAction(s *filter.State, req filterRequest) error {
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case FilterToggle:
		f, err := vocab.ParseFacet(req.Facet)
		if err != nil {
			return err
		}
		_, err = s.Toggle(f, req.Value)
		return err
	case FilterRemove:
		// A chip only knows its value; the facet is optional.
		if req.Facet == "" {
			s.RemoveValue(req.Value)
			return nil
		}
		f, err := vocab.ParseFacet(req.Facet)
		if err != nil {
			return err
		}
		_, err = s.Remove(f, req.Value)
		return err
	case FilterSearch:
		return s.SetTerm(req.Term)
	case FilterClear:
		s.ClearAll()
		return nil
	case FilterSeed:
		_, err := s.SeedCategory(req.Value)
		return err
	}
	return fmt.Errorf("%w: unknown filter action %q", ErrBadRequest, req.Action)
}
