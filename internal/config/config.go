// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and ARTISTLY_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// View modes accepted by DefaultView.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetDir points at a directory holding artists.json, categories.json
	// and options.json. Empty means the embedded dataset.
	DatasetDir string `koanf:"dataset_dir"`

	// SubmissionQueueSize bounds the in-memory application queue.
	SubmissionQueueSize int `koanf:"submission_queue_size"`

	// SubmissionWorkerCount sets the number of sink workers.
	SubmissionWorkerCount int `koanf:"submission_worker_count"`

	// DedupeSize caps the number of remembered idempotency keys.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxSessions caps live visitor sessions; the oldest is evicted first.
	MaxSessions int `koanf:"max_sessions"`

	// MaxSearchLength caps the free-text search term in runes.
	MaxSearchLength int `koanf:"max_search_length"`

	// SubmissionSeed seeds the mock dashboard submissions. Zero uses the clock.
	SubmissionSeed int64 `koanf:"submission_seed"`

	// DefaultView is the card layout used when a request does not pick one.
	DefaultView string `koanf:"default_view"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		SubmissionQueueSize:   1_024,
		SubmissionWorkerCount: runtime.NumCPU(),
		DedupeSize:            10_000,
		MaxSessions:           5_000,
		MaxSearchLength:       128,
		DefaultView:           ViewGrid,
	}
}

// Validate checks the values Load cannot express through types alone.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.DefaultView {
	case ViewGrid, ViewList:
	default:
		return fmt.Errorf("%w: default_view must be %q or %q, got %q", ErrInvalidConfig, ViewGrid, ViewList, c.DefaultView)
	}
	if c.SubmissionQueueSize <= 0 {
		return fmt.Errorf("%w: submission_queue_size must be positive", ErrInvalidConfig)
	}
	if c.SubmissionWorkerCount <= 0 {
		return fmt.Errorf("%w: submission_worker_count must be positive", ErrInvalidConfig)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	}
	if c.MaxSearchLength <= 0 {
		return fmt.Errorf("%w: max_search_length must be positive", ErrInvalidConfig)
	}
	return nil
}
