// Package repository defines the read-only catalog store.
package repository

import (
	"context"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/vocab"
)

// Store provides read access to the catalog loaded at startup.
type Store interface {
	// List returns every artist in dataset order. The slice is a copy.
	List(ctx context.Context) ([]model.Artist, error)

	// Get returns one artist. Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Artist, error)

	// Categories returns the presentational categories in dataset order.
	Categories(ctx context.Context) ([]model.Category, error)

	// Vocabulary returns the closed facet vocabularies.
	Vocabulary(ctx context.Context) *vocab.Vocabulary

	// Count returns the number of artists.
	Count(ctx context.Context) int
}
