package dashboard

import (
	"fmt"

	"github.com/okian/artistly/internal/domain/model"
)

// Stats aggregates the full submission collection.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// ComputeStats counts submissions by status in one pass.
func ComputeStats(subs []model.Submission) Stats {
	st := Stats{Total: len(subs)}
	for _, s := range subs {
		switch s.Status {
		case model.StatusPending:
			st.Pending++
		case model.StatusApproved:
			st.Approved++
		case model.StatusRejected:
			st.Rejected++
		}
	}
	return st
}

// ApprovalRate is approved/total in [0,1]. An empty collection yields 0.
func (s Stats) ApprovalRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Approved) / float64(s.Total)
}

// ApprovalPercent formats ApprovalRate with one decimal, e.g. "33.3%".
func (s Stats) ApprovalPercent() string {
	return fmt.Sprintf("%.1f%%", s.ApprovalRate()*100)
}
