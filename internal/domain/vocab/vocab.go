// Package vocab holds the closed vocabularies shared by the filter sidebar,
// the onboarding form and the dataset validator.
package vocab

import (
	"fmt"
	"slices"
)

// Facet names one independently selectable dimension.
type Facet string

const (
	FacetCategory Facet = "category"
	FacetLocation Facet = "location"
	FacetFeeRange Facet = "feeRange"
	FacetLanguage Facet = "language"
)

// ParseFacet accepts the facet names used on the wire.
func ParseFacet(s string) (Facet, error) {
	switch s {
	case "category", "categories":
		return FacetCategory, nil
	case "location", "locations":
		return FacetLocation, nil
	case "feeRange", "feeRanges", "fee_range", "fee":
		return FacetFeeRange, nil
	case "language", "languages":
		return FacetLanguage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFacet, s)
}

// Vocabulary is the set of legal facet values, in display order.
type Vocabulary struct {
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
	Locations  []string `json:"locations"`
	FeeRanges  []string `json:"feeRanges"`
}

// Values returns the ordered values for facet. The slice must not be modified.
func (v *Vocabulary) Values(f Facet) []string {
	switch f {
	case FacetCategory:
		return v.Categories
	case FacetLocation:
		return v.Locations
	case FacetFeeRange:
		return v.FeeRanges
	case FacetLanguage:
		return v.Languages
	}
	return nil
}

// Has reports whether value is legal for facet.
func (v *Vocabulary) Has(f Facet, value string) bool {
	return slices.Contains(v.Values(f), value)
}

// Validate returns ErrUnknownValue when value is not legal for facet.
func (v *Vocabulary) Validate(f Facet, value string) error {
	if v.Has(f, value) {
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrUnknownValue, f, value)
}

// Check verifies every facet is non-empty and free of duplicates.
func (v *Vocabulary) Check() error {
	for _, f := range []Facet{FacetCategory, FacetLanguage, FacetLocation, FacetFeeRange} {
		values := v.Values(f)
		if len(values) == 0 {
			return fmt.Errorf("%w: %s is empty", ErrInvalidVocabulary, f)
		}
		seen := make(map[string]struct{}, len(values))
		for _, value := range values {
			if value == "" {
				return fmt.Errorf("%w: %s has an empty value", ErrInvalidVocabulary, f)
			}
			if _, dup := seen[value]; dup {
				return fmt.Errorf("%w: %s lists %q twice", ErrInvalidVocabulary, f, value)
			}
			seen[value] = struct{}{}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (v *Vocabulary) Clone() *Vocabulary {
	return &Vocabulary{
		Categories: slices.Clone(v.Categories),
		Languages:  slices.Clone(v.Languages),
		Locations:  slices.Clone(v.Locations),
		FeeRanges:  slices.Clone(v.FeeRanges),
	}
}
