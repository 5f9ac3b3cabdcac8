package worker

import (
	"context"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/pkg/logger"
)

// LogSink logs each application and discards it. There is no review backend.
type LogSink struct {
	logger logger.Logger
}

// NewLogSink returns a LogSink writing to l.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.Nop()
	}
	return &LogSink{logger: l}
}

// Submit logs app.
func (s *LogSink) Submit(ctx context.Context, app model.Application) error { //nolint:gocritic // hugeParam: matches Sink contract
	s.logger.Info(ctx, "application received",
		logger.String("application_id", app.ID),
		logger.String("name", app.Name),
		logger.Int("bio_length", len([]rune(app.Bio))),
		logger.Strings("categories", app.Categories),
		logger.Strings("languages", app.Languages),
		logger.String("fee_range", app.FeeRange),
		logger.String("location", app.Location),
		logger.Bool("has_image", app.Image != ""),
		logger.String("submitted_at", app.SubmittedAt.Format("2006-01-02T15:04:05Z07:00")),
	)
	return nil
}
