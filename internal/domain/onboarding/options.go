package onboarding

import (
	"time"

	"github.com/okian/artistly/pkg/logger"
)

// Option configures a Form.
type Option func(*Form)

// WithSink sets the collaborator that receives completed applications.
func WithSink(s Sink) Option {
	return func(f *Form) {
		if s != nil {
			f.sink = s
		}
	}
}

// WithNotifier sets the collaborator that receives visitor-facing messages.
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithClock overrides time.Now for application timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithIDGenerator overrides the application id generator.
func WithIDGenerator(gen func() string) Option {
	return func(f *Form) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// WithLogger sets the form logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}
