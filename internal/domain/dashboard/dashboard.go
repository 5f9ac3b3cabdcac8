// Package dashboard is the reviewer view over mock submissions: filtering,
// aggregate stats and the status change contract.
package dashboard

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/model"
)

const (
	// All disables the status or category facet.
	All = "all"

	submittedWindow = 30 * 24 * time.Hour
	updatedWindow   = 7 * 24 * time.Hour
)

// BuildSubmissions derives mock submissions from artists. Status cycles
// pending, approved, rejected by index; timestamps fall within the last 30
// days (submitted) and 7 days (updated) before now.
func BuildSubmissions(artists []model.Artist, now time.Time, rng *rand.Rand) []model.Submission {
	statuses := model.Statuses()
	out := make([]model.Submission, len(artists))
	for i, a := range artists {
		out[i] = model.Submission{
			Artist:      a.Clone(),
			Status:      statuses[i%len(statuses)],
			SubmittedAt: now.Add(-time.Duration(rng.Int64N(int64(submittedWindow)))),
			LastUpdated: now.Add(-time.Duration(rng.Int64N(int64(updatedWindow)))),
		}
	}
	return out
}

// NewRand returns a deterministic generator for seed, or a clock-seeded one
// when seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)) //nolint:gosec // mock data
}

// Query selects submissions. Empty Status or Category means All.
type Query struct {
	Term     string `json:"term"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// Validate rejects unknown status values.
func (q Query) Validate() error {
	if q.Status == "" || strings.EqualFold(q.Status, All) {
		return nil
	}
	if _, err := model.ParseStatus(q.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

// Filter returns the submissions matching q in input order. The term matches
// name or location; the category facet matches any category containing it.
func Filter(subs []model.Submission, q Query) []model.Submission {
	term := filter.Normalize(q.Term)
	status := strings.ToLower(strings.TrimSpace(q.Status))
	category := strings.TrimSpace(q.Category)
	if strings.EqualFold(category, All) {
		category = ""
	}
	category = filter.Normalize(category)

	out := make([]model.Submission, 0, len(subs))
	for _, s := range subs {
		if term != "" &&
			!strings.Contains(filter.Normalize(s.Name), term) &&
			!strings.Contains(filter.Normalize(s.Location), term) {
			continue
		}
		if status != "" && status != All && string(s.Status) != status {
			continue
		}
		if category != "" && !slices.ContainsFunc(s.Categories, func(c string) bool {
			return strings.Contains(filter.Normalize(c), category)
		}) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Find returns the submission with id.
func Find(subs []model.Submission, id string) (model.Submission, bool) {
	i := slices.IndexFunc(subs, func(s model.Submission) bool { return s.ID == id })
	if i < 0 {
		return model.Submission{}, false
	}
	return subs[i], true
}
