package filter

import (
	"slices"

	"github.com/okian/artistly/internal/domain/model"
)

// Matches reports whether a passes every facet of s and the search term.
// Facets combine with AND; values within a facet combine with OR.
func Matches(a model.Artist, s *State) bool {
	return newMatcher(s).match(a)
}

// Apply returns the artists matching s, preserving input order.
func Apply(artists []model.Artist, s *State) []model.Artist {
	m := newMatcher(s)
	out := make([]model.Artist, 0, len(artists))
	for _, a := range artists {
		if m.match(a) {
			out = append(out, a)
		}
	}
	return out
}

// matcher caches the normalized term across one Apply pass.
type matcher struct {
	term       string
	categories []string
	locations  []string
	feeRanges  []string
}

func newMatcher(s *State) matcher {
	return matcher{
		term:       Normalize(s.term),
		categories: s.categories,
		locations:  s.locations,
		feeRanges:  s.feeRanges,
	}
}

func (m matcher) match(a model.Artist) bool {
	return m.matchTerm(a) &&
		(len(m.categories) == 0 || slices.ContainsFunc(a.Categories, func(c string) bool {
			return slices.Contains(m.categories, c)
		})) &&
		(len(m.locations) == 0 || slices.Contains(m.locations, a.Location)) &&
		(len(m.feeRanges) == 0 || slices.Contains(m.feeRanges, a.FeeRange))
}

func (m matcher) matchTerm(a model.Artist) bool {
	if m.term == "" {
		return true
	}
	if containsLower(a.Name, m.term) || containsLower(a.Bio, m.term) || containsLower(a.Location, m.term) {
		return true
	}
	return slices.ContainsFunc(a.Categories, func(c string) bool {
		return containsLower(c, m.term)
	})
}
