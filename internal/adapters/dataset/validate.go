package dataset

import (
	"fmt"
	"strings"

	"github.com/okian/artistly/internal/domain/vocab"
)

// Validate checks the record invariants: unique ids, non-empty categories and
// languages, and every facet value drawn from the vocabulary.
func Validate(ds *Dataset) error {
	v := ds.Vocabulary
	if v == nil {
		return fmt.Errorf("%w: missing vocabulary", ErrInvalidDataset)
	}
	if err := v.Check(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	seen := make(map[string]struct{}, len(ds.Artists))
	for i, a := range ds.Artists {
		where := fmt.Sprintf("artist[%d] %q", i, a.ID)
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("%w: artist[%d]: empty id", ErrInvalidDataset, i)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate id", ErrInvalidDataset, where)
		}
		seen[a.ID] = struct{}{}

		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: %s: empty name", ErrInvalidDataset, where)
		}
		if len(a.Categories) == 0 {
			return fmt.Errorf("%w: %s: no categories", ErrInvalidDataset, where)
		}
		if len(a.Languages) == 0 {
			return fmt.Errorf("%w: %s: no languages", ErrInvalidDataset, where)
		}
		for _, c := range a.Categories {
			if err := v.Validate(vocab.FacetCategory, c); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidDataset, where, err)
			}
		}
		for _, l := range a.Languages {
			if err := v.Validate(vocab.FacetLanguage, l); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidDataset, where, err)
			}
		}
		if err := v.Validate(vocab.FacetLocation, a.Location); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidDataset, where, err)
		}
		if err := v.Validate(vocab.FacetFeeRange, a.FeeRange); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidDataset, where, err)
		}
		if a.Rating < 0 || a.Rating > 5 {
			return fmt.Errorf("%w: %s: rating %.1f out of range", ErrInvalidDataset, where, a.Rating)
		}
		if a.ReviewCount < 0 {
			return fmt.Errorf("%w: %s: negative review count", ErrInvalidDataset, where)
		}
	}

	cats := make(map[string]struct{}, len(ds.Categories))
	for i, c := range ds.Categories {
		if _, dup := cats[c.ID]; dup || c.ID == "" {
			return fmt.Errorf("%w: category[%d]: missing or duplicate id %q", ErrInvalidDataset, i, c.ID)
		}
		cats[c.ID] = struct{}{}
		// Category names are used as category facet seeds.
		if err := v.Validate(vocab.FacetCategory, c.Name); err != nil {
			return fmt.Errorf("%w: category[%d]: %w", ErrInvalidDataset, i, err)
		}
	}
	return nil
}
