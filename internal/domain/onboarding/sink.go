package onboarding

import (
	"context"

	"github.com/okian/artistly/internal/domain/model"
)

// SuccessMessage is sent to the notifier after a successful submit.
const SuccessMessage = "Application submitted successfully! We'll review your profile and get back to you soon."

// FailureMessage is sent to the notifier when the sink refuses an application.
const FailureMessage = "We couldn't submit your application. Please try again."

// Sink accepts a completed application or reports why it could not.
type Sink interface {
	Submit(ctx context.Context, app model.Application) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, app model.Application) error

// Submit calls fn.
func (fn SinkFunc) Submit(ctx context.Context, app model.Application) error { return fn(ctx, app) }

// Level is the severity of a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a visitor-facing message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notices. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, n Notice) { fn(ctx, n) }

type discard struct{}

func (discard) Submit(context.Context, model.Application) error { return nil }
func (discard) Notify(context.Context, Notice)                  {}
