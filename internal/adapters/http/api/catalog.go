package api

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/artistly/internal/adapters/present"
	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/vocab"
	"github.com/okian/artistly/pkg/metrics"
)

// artistsResponse is the JSON body of a filtered catalog listing.
type artistsResponse struct {
	Artists       []model.Artist  `json:"artists"`
	Count         int             `json:"count"`
	Total         int             `json:"total"`
	Summary       string          `json:"summary"`
	View          present.Mode    `json:"view"`
	Sort          filter.Order    `json:"sort"`
	Filters       filter.Snapshot `json:"filters"`
	ActiveFilters int             `json:"activeFilters"`
	Chips         []filter.Chip   `json:"chips"`
}

// CatalogHandler serves the read-only catalog.
type CatalogHandler struct {
	deps Dependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleListArtists handles GET /artists. Filters come from the query string
// and nothing is remembered between requests.
func (h *CatalogHandler) HandleListArtists(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_artists"
	catalog := h.deps.Catalog()
	q := r.URL.Query()

	state, err := stateFromQuery(catalog.Vocabulary(r.Context()), q, h.deps.MaxSearchLength())
	if err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	listing, err := parseListing(q, h.deps.DefaultView())
	if err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	artists, err := catalog.List(r.Context())
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	result := filter.Apply(artists, state)
	filter.Sort(result, listing.order)
	metrics.RecordFilterQuery("stateless", len(result))

	writeListing(w, r, listing, result, len(artists), catalog.Vocabulary(r.Context()), state)
}

// HandleGetArtist handles GET /artists/{id}.
func (h *CatalogHandler) HandleGetArtist(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_artist"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeDomainError(w, NewKind(op, ErrBadRequest))
		return
	}
	a, err := h.deps.Catalog().Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleCategories handles GET /categories.
func (h *CatalogHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.deps.Catalog().Categories(r.Context())
	if err != nil {
		writeDomainError(w, Wrap("api.categories", err))
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// HandleOptions handles GET /options, the closed vocabularies.
func (h *CatalogHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Catalog().Vocabulary(r.Context()))
}

// listing holds presentation parameters shared by the stateless and the
// session artist listings.
type listing struct {
	mode    present.Mode
	order   filter.Order
	text    bool
	sidebar bool
}

func parseListing(q url.Values, fallback present.Mode) (listing, error) {
	l := listing{mode: fallback}
	if v := q.Get("view"); v != "" {
		mode, err := present.ParseMode(v)
		if err != nil {
			return listing{}, err
		}
		l.mode = mode
	}
	order, err := filter.ParseOrder(q.Get("sort"))
	if err != nil {
		return listing{}, err
	}
	l.order = order
	l.text = strings.EqualFold(q.Get("format"), "text")
	l.sidebar = q.Has("sidebar") && q.Get("sidebar") != "0" && !strings.EqualFold(q.Get("sidebar"), "false")
	return l, nil
}

// wantsText reports whether the client asked for the plain-text rendering.
func wantsText(r *http.Request, l listing) bool {
	if l.text {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/plain") && !strings.Contains(accept, "application/json")
}

func writeListing(w http.ResponseWriter, r *http.Request, l listing, result []model.Artist, total int, v *vocab.Vocabulary, state *filter.State) {
	if wantsText(r, l) {
		view := present.View{Mode: l.mode, Artists: result, Total: total}
		if l.sidebar {
			view.Sidebar = &present.Sidebar{Vocabulary: v, Filters: state}
		}
		var buf bytes.Buffer
		if err := present.Render(&buf, view); err != nil {
			writeDomainError(w, Wrap("api.render", err))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	writeJSON(w, http.StatusOK, artistsResponse{
		Artists:       result,
		Count:         len(result),
		Total:         total,
		Summary:       present.ResultLine(len(result)),
		View:          l.mode,
		Sort:          l.order,
		Filters:       state.Snapshot(),
		ActiveFilters: state.ActiveCount(),
		Chips:         state.ActiveValues(),
	})
}

// stateFromQuery builds a filter state from q, category, location and
// fee_range parameters. Facet parameters may repeat.
func stateFromQuery(v *vocab.Vocabulary, q url.Values, maxTerm int) (*filter.State, error) {
	s := filter.NewState(v, filter.WithMaxTermLength(maxTerm))
	if err := s.SetTerm(q.Get("q")); err != nil {
		return nil, err
	}
	params := []struct {
		name  string
		facet vocab.Facet
	}{
		{"category", vocab.FacetCategory},
		{"location", vocab.FacetLocation},
		{"fee_range", vocab.FacetFeeRange},
	}
	for _, p := range params {
		for _, value := range q[p.name] {
			if _, err := s.Add(p.facet, value); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
