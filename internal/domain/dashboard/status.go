package dashboard

import (
	"fmt"
	"time"

	"github.com/okian/artistly/internal/domain/model"
)

// RequestStatusChange validates a review decision and describes it. Only
// pending submissions can be approved or rejected. Nothing is stored: the
// returned change has Persisted=false and sub is not modified.
func RequestStatusChange(sub model.Submission, to model.Status, now time.Time) (model.StatusChange, error) {
	if to != model.StatusApproved && to != model.StatusRejected {
		return model.StatusChange{}, fmt.Errorf("%w: cannot move to %q", ErrInvalidTransition, to)
	}
	if sub.Status != model.StatusPending {
		return model.StatusChange{}, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, sub.ID, sub.Status)
	}
	return model.StatusChange{
		SubmissionID: sub.ID,
		From:         sub.Status,
		To:           to,
		RequestedAt:  now.UTC(),
		Persisted:    false,
	}, nil
}
