package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the review state of a dashboard submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected}
}

// ParseStatus converts s (case-insensitive) into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Submission is an artist under review on the dashboard.
type Submission struct {
	Artist
	Status      Status    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StatusChange describes a requested review decision. Submissions are not
// mutated; Persisted is always false.
type StatusChange struct {
	SubmissionID string    `json:"submissionId"`
	From         Status    `json:"from"`
	To           Status    `json:"to"`
	RequestedAt  time.Time `json:"requestedAt"`
	Persisted    bool      `json:"persisted"`
}
