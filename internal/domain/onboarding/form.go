// Package onboarding implements the four-step artist application form as an
// explicit state machine: an ordinal step plus a validation gate per step.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/vocab"
	"github.com/okian/artistly/pkg/logger"
	"github.com/okian/artistly/pkg/metrics"
)

// Transition outcomes reported to metrics.
const (
	outcomeAdvanced = "advanced"
	outcomeBlocked  = "blocked"
	outcomeBack     = "back"
	outcomeClamped  = "clamped"
)

// Form holds the accumulated answers and the current step. It is not safe
// for concurrent use.
type Form struct {
	vocab    *vocab.Vocabulary
	sink     Sink
	notifier Notifier
	now      func() time.Time
	newID    func() string
	log      logger.Logger

	step       Step
	name       string
	bio        string
	categories []string
	languages  []string
	feeRange   string
	location   string
	image      string
}

// Snapshot is the serialisable form state.
type Snapshot struct {
	Step       Step     `json:"step"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
	FeeRange   string   `json:"feeRange"`
	Location   string   `json:"location"`
	Image      string   `json:"image,omitempty"`
}

// NewForm returns a form on step 1 validating choices against v.
func NewForm(v *vocab.Vocabulary, opts ...Option) *Form {
	f := &Form{
		vocab:    v,
		sink:     discard{},
		notifier: discard{},
		now:      time.Now,
		newID:    uuid.NewString,
		log:      logger.Nop(),
		step:     firstStep,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Step returns the current step.
func (f *Form) Step() Step { return f.step }

// Set assigns a scalar field by name.
func (f *Form) Set(field, value string) error {
	switch field {
	case FieldName:
		f.name = value
	case FieldBio:
		f.bio = value
	case FieldFeeRange, "fee_range":
		f.feeRange = value
	case FieldLocation:
		f.location = value
	case FieldImage:
		f.image = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (f *Form) SetName(v string)     { f.name = v }
func (f *Form) SetBio(v string)      { f.bio = v }
func (f *Form) SetFeeRange(v string) { f.feeRange = v }
func (f *Form) SetLocation(v string) { f.location = v }

// SetImage stores an image reference. No upload happens.
func (f *Form) SetImage(v string) { f.image = v }

// ToggleCategory flips category and reports whether it is now selected.
func (f *Form) ToggleCategory(category string) (bool, error) {
	return f.toggle(&f.categories, vocab.FacetCategory, category)
}

// ToggleLanguage flips language and reports whether it is now selected.
func (f *Form) ToggleLanguage(language string) (bool, error) {
	return f.toggle(&f.languages, vocab.FacetLanguage, language)
}

func (f *Form) toggle(set *[]string, facet vocab.Facet, value string) (bool, error) {
	if i := slices.Index(*set, value); i >= 0 {
		*set = slices.Delete(*set, i, i+1)
		return false, nil
	}
	if f.vocab != nil && !f.vocab.Has(facet, value) {
		return false, fmt.Errorf("%w: %s %q", ErrUnknownValue, facet, value)
	}
	*set = append(*set, value)
	return true, nil
}

// Next validates the current step and advances by one. On failure the step
// is unchanged, the visitor is notified and a *ValidationError is returned.
// On the last step Next does nothing.
func (f *Form) Next(ctx context.Context) error {
	from := f.step
	if from >= lastStep {
		metrics.RecordOnboardingTransition(int(from), outcomeClamped)
		return nil
	}
	if verr := f.validateStep(from); verr != nil {
		metrics.RecordOnboardingTransition(int(from), outcomeBlocked)
		f.notifier.Notify(ctx, Notice{Level: LevelError, Message: verr.Message()})
		f.log.Debug(ctx, "step blocked", logger.Int("step", int(from)), logger.String("reason", verr.Message()))
		return verr
	}
	f.step++
	metrics.RecordOnboardingTransition(int(from), outcomeAdvanced)
	return nil
}

// Prev moves back one step, stopping at step 1. It never validates.
func (f *Form) Prev() {
	if f.step <= firstStep {
		metrics.RecordOnboardingTransition(int(f.step), outcomeClamped)
		return
	}
	metrics.RecordOnboardingTransition(int(f.step), outcomeBack)
	f.step--
}

// Validate checks every step gate without moving.
func (f *Form) Validate() *ValidationError {
	for s := firstStep; s < lastStep; s++ {
		if verr := f.validateStep(s); verr != nil {
			return verr
		}
	}
	return nil
}

// Submit packages the answers into an Application and hands it to the sink.
// It requires the review step. On success the visitor is notified and the
// form resets to step 1; on failure the answers are kept.
func (f *Form) Submit(ctx context.Context) (model.Application, error) {
	if f.step != lastStep {
		return model.Application{}, fmt.Errorf("%w: on step %d", ErrNotReady, f.step)
	}
	if verr := f.Validate(); verr != nil {
		f.notifier.Notify(ctx, Notice{Level: LevelError, Message: verr.Message()})
		return model.Application{}, verr
	}

	app := f.application()
	if err := f.sink.Submit(ctx, app); err != nil {
		f.notifier.Notify(ctx, Notice{Level: LevelError, Message: FailureMessage})
		f.log.Warn(ctx, "application not accepted", logger.String("application_id", app.ID), logger.Error(err))
		return model.Application{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	f.log.Info(ctx, "application submitted",
		logger.String("application_id", app.ID),
		logger.String("name", app.Name),
		logger.Strings("categories", app.Categories),
		logger.Strings("languages", app.Languages),
		logger.String("fee_range", app.FeeRange),
		logger.String("location", app.Location),
	)
	f.notifier.Notify(ctx, Notice{Level: LevelSuccess, Message: SuccessMessage})
	f.Reset()
	return app, nil
}

func (f *Form) application() model.Application {
	return model.Application{
		ID:          f.newID(),
		Name:        f.name,
		Bio:         f.bio,
		Categories:  slices.Clone(f.categories),
		Languages:   slices.Clone(f.languages),
		FeeRange:    f.feeRange,
		Location:    f.location,
		Image:       f.image,
		SubmittedAt: f.now().UTC(),
	}
}

// Reset returns the form to step 1 with every answer cleared.
func (f *Form) Reset() {
	f.step = firstStep
	f.name, f.bio = "", ""
	f.categories, f.languages = nil, nil
	f.feeRange, f.location, f.image = "", "", ""
}

// Snapshot returns a copy of the form state.
func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		Step:       f.step,
		Name:       f.name,
		Bio:        f.bio,
		Categories: append([]string{}, f.categories...),
		Languages:  append([]string{}, f.languages...),
		FeeRange:   f.feeRange,
		Location:   f.location,
		Image:      f.image,
	}
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
