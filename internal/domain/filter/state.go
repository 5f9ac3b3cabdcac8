// Package filter implements the artist search predicate and the filter state
// container behind the catalog sidebar.
package filter

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/okian/artistly/internal/domain/vocab"
)

// chipOrder is the facet order used to list and resolve active chips.
var chipOrder = []vocab.Facet{vocab.FacetCategory, vocab.FacetLocation, vocab.FacetFeeRange} //nolint:gochecknoglobals // fixed order

// Chip is one active facet selection.
type Chip struct {
	Facet vocab.Facet `json:"facet"`
	Value string      `json:"value"`
}

// Snapshot is the serialisable form of a State.
type Snapshot struct {
	Term       string   `json:"term"`
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	FeeRanges  []string `json:"feeRanges"`
}

// State holds the search term and the selected values of the category,
// location and fee range facets. Each facet is an insertion-ordered set of
// vocabulary values. State is not safe for concurrent use.
type State struct {
	vocab   *vocab.Vocabulary
	maxTerm int

	term       string
	categories []string
	locations  []string
	feeRanges  []string

	seeded bool
}

// NewState returns an empty State validating against v.
func NewState(v *vocab.Vocabulary, opts ...Option) *State {
	s := &State{vocab: v}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *State) set(f vocab.Facet) (*[]string, error) {
	switch f {
	case vocab.FacetCategory:
		return &s.categories, nil
	case vocab.FacetLocation:
		return &s.locations, nil
	case vocab.FacetFeeRange:
		return &s.feeRanges, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFacet, f)
}

func (s *State) checkValue(f vocab.Facet, value string) error {
	if s.vocab != nil && !s.vocab.Has(f, value) {
		return fmt.Errorf("%w: %s %q", ErrUnknownValue, f, value)
	}
	return nil
}

// Add selects value. It reports whether the selection changed.
func (s *State) Add(f vocab.Facet, value string) (bool, error) {
	set, err := s.set(f)
	if err != nil {
		return false, err
	}
	if err := s.checkValue(f, value); err != nil {
		return false, err
	}
	if slices.Contains(*set, value) {
		return false, nil
	}
	*set = append(*set, value)
	return true, nil
}

// Remove deselects value. It reports whether the selection changed.
func (s *State) Remove(f vocab.Facet, value string) (bool, error) {
	set, err := s.set(f)
	if err != nil {
		return false, err
	}
	i := slices.Index(*set, value)
	if i < 0 {
		return false, nil
	}
	*set = slices.Delete(*set, i, i+1)
	return true, nil
}

// Toggle flips the selection of value and returns whether it is now selected.
func (s *State) Toggle(f vocab.Facet, value string) (bool, error) {
	if s.Has(f, value) {
		_, err := s.Remove(f, value)
		return false, err
	}
	if _, err := s.Add(f, value); err != nil {
		return false, err
	}
	return true, nil
}

// Has reports whether value is selected in facet.
func (s *State) Has(f vocab.Facet, value string) bool {
	set, err := s.set(f)
	if err != nil {
		return false
	}
	return slices.Contains(*set, value)
}

// Values returns a copy of the selected values of facet in selection order.
func (s *State) Values(f vocab.Facet) []string {
	set, err := s.set(f)
	if err != nil {
		return nil
	}
	return slices.Clone(*set)
}

// Len returns the number of selected values in facet.
func (s *State) Len(f vocab.Facet) int {
	set, err := s.set(f)
	if err != nil {
		return 0
	}
	return len(*set)
}

// Term returns the raw search term.
func (s *State) Term() string { return s.term }

// SetTerm replaces the search term. Surrounding whitespace is kept so that
// the stored term matches what the visitor typed.
func (s *State) SetTerm(term string) error {
	if s.maxTerm > 0 && utf8.RuneCountInString(term) > s.maxTerm {
		return fmt.Errorf("%w: %d runes, max %d", ErrTermTooLong, utf8.RuneCountInString(term), s.maxTerm)
	}
	s.term = term
	return nil
}

// ClearAll empties the term and every facet.
func (s *State) ClearAll() {
	s.term = ""
	s.categories = nil
	s.locations = nil
	s.feeRanges = nil
}

// SeedCategory applies an externally supplied category once. Later calls are
// no-ops, as is a call made while the category facet already has selections.
// It reports whether value was added. Unknown values are rejected without
// consuming the seed.
func (s *State) SeedCategory(value string) (bool, error) {
	if s.seeded || value == "" {
		return false, nil
	}
	if len(s.categories) > 0 {
		s.seeded = true
		return false, nil
	}
	if err := s.checkValue(vocab.FacetCategory, value); err != nil {
		return false, err
	}
	s.seeded = true
	s.categories = append(s.categories, value)
	return true, nil
}

// Seeded reports whether the one-shot category seed has been consumed.
func (s *State) Seeded() bool { return s.seeded }

// ActiveCount returns the number of selected facet values.
func (s *State) ActiveCount() int {
	return len(s.categories) + len(s.locations) + len(s.feeRanges)
}

// IsZero reports whether no term and no facet value is set.
func (s *State) IsZero() bool {
	return s.ActiveCount() == 0 && s.term == ""
}

// ActiveValues lists every selection as a chip: categories, then locations,
// then fee ranges.
func (s *State) ActiveValues() []Chip {
	chips := make([]Chip, 0, s.ActiveCount())
	for _, f := range chipOrder {
		set, _ := s.set(f)
		for _, v := range *set {
			chips = append(chips, Chip{Facet: f, Value: v})
		}
	}
	return chips
}

// RemoveValue removes a chip by value alone, resolving the facet in chip
// order. It returns the facet the value was removed from.
func (s *State) RemoveValue(value string) (vocab.Facet, bool) {
	for _, f := range chipOrder {
		if ok, _ := s.Remove(f, value); ok {
			return f, true
		}
	}
	return "", false
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Term:       s.term,
		Categories: append([]string{}, s.categories...),
		Locations:  append([]string{}, s.locations...),
		FeeRanges:  append([]string{}, s.feeRanges...),
	}
}

// Clone returns an independent copy sharing the vocabulary.
func (s *State) Clone() *State {
	c := *s
	c.categories = slices.Clone(s.categories)
	c.locations = slices.Clone(s.locations)
	c.feeRanges = slices.Clone(s.feeRanges)
	return &c
}
