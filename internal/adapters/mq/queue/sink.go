package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/pkg/metrics"
)

// Sink hands completed applications to a Queue. It satisfies the onboarding
// form's submission collaborator; a refused enqueue surfaces as
// ErrBackpressure so the visitor can retry.
type Sink struct {
	q Queue
}

// NewSink wraps q.
func NewSink(q Queue) *Sink {
	return &Sink{q: q}
}

// Submit enqueues app.
func (s *Sink) Submit(ctx context.Context, app model.Application) error { //nolint:gocritic // hugeParam: matches Sink contract
	err := s.q.Enqueue(ctx, app)
	switch {
	case err == nil:
		metrics.RecordApplicationSubmitted()
		return nil
	case errors.Is(err, ErrFull):
		metrics.RecordApplicationRejected("backpressure")
	case errors.Is(err, ErrClosed):
		metrics.RecordApplicationRejected("closed")
	default:
		metrics.RecordApplicationRejected("error")
	}
	return fmt.Errorf("%w: %w", ErrBackpressure, err)
}
