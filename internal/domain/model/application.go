package model

import "time"

// Application is the record packaged by a completed onboarding form.
type Application struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Categories  []string  `json:"categories"`
	Languages   []string  `json:"languages"`
	FeeRange    string    `json:"feeRange"`
	Location    string    `json:"location"`
	Image       string    `json:"image,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}
