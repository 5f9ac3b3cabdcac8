// Package service composes the catalog, sessions, submission pipeline and
// dashboard into the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/artistly/internal/adapters/dataset"
	"github.com/okian/artistly/internal/adapters/mq/queue"
	"github.com/okian/artistly/internal/adapters/mq/worker"
	"github.com/okian/artistly/internal/adapters/present"
	"github.com/okian/artistly/internal/adapters/repository"
	"github.com/okian/artistly/internal/adapters/session"
	"github.com/okian/artistly/internal/domain/dashboard"
	"github.com/okian/artistly/internal/domain/dedupe"
	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/pkg/logger"
	"github.com/okian/artistly/pkg/metrics"
)

// Service implements the API dependencies for the artist marketplace.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog     *repository.MemoryStore
	deduper     dedupe.Deduper
	queue       *queue.InMemoryQueue
	workerPool  *worker.Pool
	sessions    *session.Store
	submissions []model.Submission

	// Configuration
	datasetDir      string
	workerCount     int
	queueSize       int
	dedupeSize      int
	maxSessions     int
	maxSearchLength int
	submissionSeed  int64
	defaultView     present.Mode
	sink            worker.Sink
	now             func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		queueSize:       1_024,
		dedupeSize:      10_000,
		maxSessions:     5_000,
		maxSearchLength: 128,
		defaultView:     present.ModeGrid,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and starts the submission pipeline. Calling Start
// on a running service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting artist service...")

	ds, err := dataset.Load(ctx, s.datasetDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}
	s.catalog = repository.NewMemoryStore(ctx, ds.Artists, ds.Categories, ds.Vocabulary)
	s.submissions = dashboard.BuildSubmissions(ds.Artists, s.now(), dashboard.NewRand(s.submissionSeed))

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	sink := s.sink
	if sink == nil {
		sink = worker.NewLogSink(s.logger.Named("sink"))
	}
	s.workerPool = worker.NewPool(s.workerCount, s.queue, sink, worker.WithLogger(s.logger))
	// Workers outlive ctx; Stop closes the queue and waits for them to drain it.
	s.workerPool.Start(context.WithoutCancel(ctx))

	s.sessions = session.NewStore(ds.Vocabulary,
		session.WithMaxSessions(s.maxSessions),
		session.WithMaxSearchLength(s.maxSearchLength),
		session.WithClock(s.now),
		session.WithFormOptions(
			onboarding.WithSink(queue.NewSink(s.queue)),
			onboarding.WithClock(s.now),
			onboarding.WithLogger(s.logger.Named("onboarding")),
		),
	)

	s.started = true
	s.logger.Info(ctx, "artist service started",
		logger.Int("artists", len(ds.Artists)),
		logger.Int("categories", len(ds.Categories)),
		logger.Int("submissions", len(s.submissions)),
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop drains the submission queue and shuts the workers down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping artist service...")

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "artist service stopped",
		logger.Int("processed", int(s.workerPool.Processed())),
		logger.Int("failed", int(s.workerPool.Failed())),
	)
}

// Catalog returns the read-only artist store.
func (s *Service) Catalog() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Sessions returns the visitor session store.
func (s *Service) Sessions() *session.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions
}

// Submissions returns the mock dashboard submissions built at start.
func (s *Service) Submissions() []model.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submissions
}

// Now returns the service clock.
func (s *Service) Now() time.Time { return s.now() }

// MaxSearchLength returns the configured search term cap.
func (s *Service) MaxSearchLength() int { return s.maxSearchLength }

// DefaultView returns the configured card layout.
func (s *Service) DefaultView() present.Mode { return s.defaultView }

// SeenAndRecord atomically checks if an idempotency key was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	return s.deduper.SeenAndRecord(ctx, key)
}

// Acknowledge stores the application id answered for key.
func (s *Service) Acknowledge(ctx context.Context, key, ack string) {
	s.deduper.Acknowledge(ctx, key, ack)
}

// Result returns the application id stored for key.
func (s *Service) Result(ctx context.Context, key string) (string, bool) {
	return s.deduper.Result(ctx, key)
}

// Unrecord forgets key so the client can retry with it.
func (s *Service) Unrecord(ctx context.Context, key string) {
	s.deduper.Unrecord(ctx, key)
}

// Size returns the current number of remembered idempotency keys.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"maxSessions": s.maxSessions,
		"defaultView": string(s.defaultView),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		approval := dashboard.ComputeStats(s.submissions)

		stats["queueLength"] = queueLen
		stats["artists"] = s.catalog.Count(ctx)
		stats["sessions"] = s.sessions.Len()
		stats["submissions"] = len(s.submissions)
		stats["approvalPercent"] = approval.ApprovalPercent()
		stats["applicationsProcessed"] = s.workerPool.Processed()
		stats["applicationsFailed"] = s.workerPool.Failed()
		stats["idempotencyKeys"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerPool.Size())
		metrics.UpdateActiveSessions(s.sessions.Len())
	}

	return stats
}
