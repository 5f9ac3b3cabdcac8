package service

import (
	"time"

	"github.com/okian/artistly/internal/adapters/mq/worker"
	"github.com/okian/artistly/internal/adapters/present"
	"github.com/okian/artistly/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetDir loads the catalog from dir instead of the embedded copy.
func WithDatasetDir(dir string) Option {
	return func(s *Service) {
		s.datasetDir = dir
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the submission queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the idempotency key cache size.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxSessions caps the number of live visitor sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithMaxSearchLength caps the search term length in runes.
func WithMaxSearchLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSearchLength = n
		}
	}
}

// WithSubmissionSeed seeds the mock dashboard submissions.
func WithSubmissionSeed(seed int64) Option {
	return func(s *Service) {
		s.submissionSeed = seed
	}
}

// WithDefaultView sets the card layout used when a request names none.
func WithDefaultView(mode present.Mode) Option {
	return func(s *Service) {
		if mode != "" {
			s.defaultView = mode
		}
	}
}

// WithSink replaces the downstream consumer of submitted applications.
func WithSink(sink worker.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
