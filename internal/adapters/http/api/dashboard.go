package api

import (
	"fmt"
	"net/http"

	"github.com/okian/artistly/internal/domain/dashboard"
	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/pkg/metrics"
)

type submissionsResponse struct {
	Submissions []model.Submission `json:"submissions"`
	Count       int                `json:"count"`
	Query       dashboard.Query    `json:"query"`
}

type statsResponse struct {
	dashboard.Stats
	ApprovalRate    float64 `json:"approvalRate"`
	ApprovalPercent string  `json:"approvalPercent"`
}

type statusChangeRequest struct {
	Status string `json:"status"`
}

// DashboardHandler serves the reviewer dashboard.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleList handles GET /dashboard/submissions?q=&status=&category=.
func (h *DashboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard_list"
	params := r.URL.Query()
	q := dashboard.Query{
		Term:     params.Get("q"),
		Status:   params.Get("status"),
		Category: params.Get("category"),
	}
	if err := q.Validate(); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	subs := dashboard.Filter(h.deps.Submissions(), q)
	metrics.RecordFilterQuery("dashboard", len(subs))
	writeJSON(w, http.StatusOK, submissionsResponse{Submissions: subs, Count: len(subs), Query: q})
}

// HandleStats handles GET /dashboard/stats. Stats always cover every
// submission regardless of any filter.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	st := dashboard.ComputeStats(h.deps.Submissions())
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:           st,
		ApprovalRate:    st.ApprovalRate(),
		ApprovalPercent: st.ApprovalPercent(),
	})
}

// HandleStatusChange handles POST /dashboard/submissions/{id}/status. The
// request is validated and echoed back; the collection is never changed.
func (h *DashboardHandler) HandleStatusChange(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard_status"
	var req statusChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	to, err := model.ParseStatus(req.Status)
	if err != nil {
		metrics.RecordStatusChangeRequest("unknown", "invalid")
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	id := r.PathValue("id")
	sub, ok := dashboard.Find(h.deps.Submissions(), id)
	if !ok {
		metrics.RecordStatusChangeRequest(string(to), "not_found")
		writeDomainError(w, WrapKind(op, ErrNotFound, fmt.Errorf("submission %q", id)))
		return
	}

	change, err := dashboard.RequestStatusChange(sub, to, h.deps.Now())
	if err != nil {
		metrics.RecordStatusChangeRequest(string(to), "rejected")
		writeDomainError(w, Wrap(op, err))
		return
	}
	metrics.RecordStatusChangeRequest(string(to), "not_persisted")
	writeJSON(w, http.StatusAccepted, change)
}
