// Package model contains domain models passed between layers.
package model

import "time"

// Artist is a read-only catalog record. JSON tags follow the dataset files.
type Artist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Categories  []string  `json:"categories"`
	Languages   []string  `json:"languages"`
	FeeRange    string    `json:"feeRange"`
	Location    string    `json:"location"`
	Image       string    `json:"image,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	IsVerified  bool      `json:"isVerified"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasCategory reports whether the artist is tagged with category.
func (a Artist) HasCategory(category string) bool {
	for _, c := range a.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with a.
func (a Artist) Clone() Artist {
	a.Categories = append([]string(nil), a.Categories...)
	a.Languages = append([]string(nil), a.Languages...)
	return a
}

// Category is a presentational grouping used by the landing page and to
// pre-seed the category facet.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}
