package session

import (
	"time"

	"github.com/okian/artistly/internal/domain/onboarding"
)

// Option configures a Store.
type Option func(*Store)

// WithMaxSessions caps live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithMaxSearchLength caps the search term of every new session.
func WithMaxSearchLength(n int) Option {
	return func(s *Store) {
		s.maxTerm = n
	}
}

// WithFormOptions passes options to every new onboarding form.
func WithFormOptions(opts ...onboarding.Option) Option {
	return func(s *Store) {
		s.formOpts = append(s.formOpts, opts...)
	}
}

// WithClock overrides time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
