package repository

import (
	"context"
	"fmt"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/vocab"
	"github.com/okian/artistly/pkg/metrics"
)

// MemoryStore is an immutable Store built from a loaded dataset. It is safe
// for concurrent use without locking since nothing mutates it after New.
type MemoryStore struct {
	artists    []model.Artist
	byID       map[string]int
	categories []model.Category
	vocab      *vocab.Vocabulary
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore copies artists and categories into a new store.
func NewMemoryStore(_ context.Context, artists []model.Artist, categories []model.Category, v *vocab.Vocabulary, opts ...Option) *MemoryStore {
	cfg := options{recordMetrics: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if v == nil {
		v = &vocab.Vocabulary{}
	}

	s := &MemoryStore{
		artists:    make([]model.Artist, len(artists)),
		byID:       make(map[string]int, len(artists)),
		categories: append([]model.Category(nil), categories...),
		vocab:      v.Clone(),
	}
	for i, a := range artists {
		s.artists[i] = a.Clone()
		s.byID[a.ID] = i
	}
	if cfg.recordMetrics {
		metrics.UpdateCatalogSize(len(s.artists), len(s.categories))
	}
	return s
}

// List returns a copy of every artist in dataset order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Artist, len(s.artists))
	for i, a := range s.artists {
		out[i] = a.Clone()
	}
	return out, nil
}

// Get returns the artist with id.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Artist, error) {
	if err := ctx.Err(); err != nil {
		return model.Artist{}, err
	}
	i, ok := s.byID[id]
	if !ok {
		return model.Artist{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.artists[i].Clone(), nil
}

// Categories returns a copy of the categories.
func (s *MemoryStore) Categories(ctx context.Context) ([]model.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.Category(nil), s.categories...), nil
}

// Vocabulary returns a copy of the facet vocabularies.
func (s *MemoryStore) Vocabulary(_ context.Context) *vocab.Vocabulary {
	return s.vocab.Clone()
}

// Count returns the number of artists.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.artists)
}
