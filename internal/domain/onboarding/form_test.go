package onboarding_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okian/artistly/internal/domain/model"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/internal/domain/vocab"
	"github.com/smartystreets/goconvey/convey"
)

func testVocab() *vocab.Vocabulary {
	return &vocab.Vocabulary{
		Categories: []string{"Singer", "Dancer", "DJ"},
		Languages:  []string{"English", "Hindi"},
		Locations:  []string{"Mumbai", "Delhi"},
		FeeRanges:  []string{"low", "high"},
	}
}

type recorder struct {
	apps    []model.Application
	notices []onboarding.Notice
	fail    error
}

func (r *recorder) Submit(_ context.Context, app model.Application) error {
	if r.fail != nil {
		return r.fail
	}
	r.apps = append(r.apps, app)
	return nil
}

func (r *recorder) Notify(_ context.Context, n onboarding.Notice) {
	r.notices = append(r.notices, n)
}

func newForm(r *recorder) *onboarding.Form {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return onboarding.NewForm(testVocab(),
		onboarding.WithSink(r),
		onboarding.WithNotifier(r),
		onboarding.WithClock(func() time.Time { return fixed }),
		onboarding.WithIDGenerator(func() string { return "app-1" }),
	)
}

func fillToReview(ctx context.Context, f *onboarding.Form) {
	f.SetName("Priya")
	f.SetBio(strings.Repeat("b", 50))
	convey.So(f.Next(ctx), convey.ShouldBeNil)
	_, _ = f.ToggleCategory("Singer")
	_, _ = f.ToggleLanguage("Hindi")
	convey.So(f.Next(ctx), convey.ShouldBeNil)
	f.SetFeeRange("low")
	f.SetLocation("Mumbai")
	convey.So(f.Next(ctx), convey.ShouldBeNil)
	convey.So(f.Step(), convey.ShouldEqual, onboarding.StepReview)
}

func TestStepOneGate(t *testing.T) {
	convey.Convey("Given a form on step 1 with a valid name", t, func() {
		ctx := context.Background()
		r := &recorder{}
		f := newForm(r)
		f.SetName("Priya")

		convey.Convey("When the bio is 49 characters", func() {
			f.SetBio(strings.Repeat("x", 49))
			err := f.Next(ctx)

			convey.Convey("Then the step stays at 1 with a bio message", func() {
				verr, ok := onboarding.AsValidationError(err)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepPersonal)
				convey.So(verr.Field(onboarding.FieldBio), convey.ShouldEqual, "Bio must be at least 50 characters")
				convey.So(r.notices, convey.ShouldHaveLength, 1)
				convey.So(r.notices[0].Level, convey.ShouldEqual, onboarding.LevelError)
			})
		})

		convey.Convey("When the bio is 50 characters", func() {
			f.SetBio(strings.Repeat("x", 50))

			convey.Convey("Then the form advances to step 2", func() {
				convey.So(f.Next(ctx), convey.ShouldBeNil)
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepSkills)
			})
		})

		convey.Convey("When the bio is 501 characters", func() {
			f.SetBio(strings.Repeat("x", 501))
			err := f.Next(ctx)
			verr, _ := onboarding.AsValidationError(err)
			convey.So(verr.Field(onboarding.FieldBio), convey.ShouldContainSubstring, "500")
			convey.So(f.Step(), convey.ShouldEqual, onboarding.StepPersonal)
		})

		convey.Convey("When the bio is 500 multi-byte characters", func() {
			f.SetBio(strings.Repeat("é", 500))
			convey.So(f.Next(ctx), convey.ShouldBeNil)
		})

		convey.Convey("When the name is two characters counting a space", func() {
			f.SetName(" P")
			f.SetBio(strings.Repeat("x", 60))
			convey.So(f.Next(ctx), convey.ShouldBeNil)
		})

		convey.Convey("When the name is one character", func() {
			f.SetName("P")
			f.SetBio(strings.Repeat("x", 60))
			err := f.Next(ctx)
			verr, _ := onboarding.AsValidationError(err)
			convey.So(verr.Field(onboarding.FieldName), convey.ShouldEqual, "Name must be at least 2 characters")
			convey.So(verr.Field(onboarding.FieldBio), convey.ShouldBeEmpty)
		})
	})
}

func TestStepTwoAndThreeGates(t *testing.T) {
	convey.Convey("Given a form on step 2", t, func() {
		ctx := context.Background()
		r := &recorder{}
		f := newForm(r)
		f.SetName("Priya")
		f.SetBio(strings.Repeat("x", 50))
		convey.So(f.Next(ctx), convey.ShouldBeNil)

		convey.Convey("When only a category is selected", func() {
			_, _ = f.ToggleCategory("DJ")
			err := f.Next(ctx)

			convey.Convey("Then a single consolidated warning is reported", func() {
				verr, ok := onboarding.AsValidationError(err)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(verr.Warning, convey.ShouldEqual, onboarding.SelectionWarning)
				convey.So(verr.Message(), convey.ShouldEqual, onboarding.SelectionWarning)
				convey.So(r.notices[len(r.notices)-1].Message, convey.ShouldEqual, onboarding.SelectionWarning)
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepSkills)
			})
		})

		convey.Convey("When toggling an unknown or repeated value", func() {
			_, err := f.ToggleLanguage("Klingon")
			convey.So(errors.Is(err, onboarding.ErrUnknownValue), convey.ShouldBeTrue)
			on, _ := f.ToggleLanguage("Hindi")
			off, _ := f.ToggleLanguage("Hindi")
			convey.So(on, convey.ShouldBeTrue)
			convey.So(off, convey.ShouldBeFalse)
			convey.So(f.Snapshot().Languages, convey.ShouldBeEmpty)
		})

		convey.Convey("When both selections exist and step 3 is reached", func() {
			_, _ = f.ToggleCategory("DJ")
			_, _ = f.ToggleLanguage("English")
			convey.So(f.Next(ctx), convey.ShouldBeNil)

			convey.Convey("Then fee range and location must come from the vocabulary", func() {
				err := f.Next(ctx)
				verr, _ := onboarding.AsValidationError(err)
				convey.So(verr.Field(onboarding.FieldFeeRange), convey.ShouldEqual, "Please select a fee range")
				convey.So(verr.Field(onboarding.FieldLocation), convey.ShouldEqual, "Please select a location")

				f.SetFeeRange("free")
				f.SetLocation("Delhi")
				err = f.Next(ctx)
				verr, _ = onboarding.AsValidationError(err)
				convey.So(verr.Field(onboarding.FieldFeeRange), convey.ShouldEqual, "Please select a valid fee range")
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepPricing)

				f.SetFeeRange("high")
				convey.So(f.Next(ctx), convey.ShouldBeNil)
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepReview)
			})
		})
	})
}

func TestNavigationClamps(t *testing.T) {
	convey.Convey("Given a new form", t, func() {
		ctx := context.Background()
		f := newForm(&recorder{})

		convey.Convey("When going back from step 1", func() {
			f.Prev()
			convey.So(f.Step(), convey.ShouldEqual, onboarding.StepPersonal)
		})

		convey.Convey("When at the review step", func() {
			fillToReview(ctx, f)

			convey.Convey("Then Next stays at 4 and Prev goes to 3", func() {
				convey.So(f.Next(ctx), convey.ShouldBeNil)
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepReview)
				f.Prev()
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepPricing)
			})
		})

		convey.Convey("Then Steps lists the four screens", func() {
			steps := onboarding.Steps()
			convey.So(steps, convey.ShouldHaveLength, 4)
			convey.So(steps[0].Title, convey.ShouldEqual, "Personal Info")
			convey.So(steps[3].Title, convey.ShouldEqual, "Review & Submit")
		})
	})
}

func TestSubmit(t *testing.T) {
	convey.Convey("Given a form", t, func() {
		ctx := context.Background()
		r := &recorder{}
		f := newForm(r)

		convey.Convey("When submitting before the review step", func() {
			_, err := f.Submit(ctx)
			convey.So(errors.Is(err, onboarding.ErrNotReady), convey.ShouldBeTrue)
		})

		convey.Convey("When submitting a complete form", func() {
			fillToReview(ctx, f)
			app, err := f.Submit(ctx)

			convey.Convey("Then the sink receives one record and the form resets", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.apps, convey.ShouldHaveLength, 1)
				convey.So(app.ID, convey.ShouldEqual, "app-1")
				convey.So(app.Categories, convey.ShouldResemble, []string{"Singer"})
				convey.So(app.Languages, convey.ShouldResemble, []string{"Hindi"})
				convey.So(app.Location, convey.ShouldEqual, "Mumbai")
				convey.So(app.SubmittedAt.Year(), convey.ShouldEqual, 2024)
				convey.So(r.notices[len(r.notices)-1], convey.ShouldResemble,
					onboarding.Notice{Level: onboarding.LevelSuccess, Message: onboarding.SuccessMessage})

				snap := f.Snapshot()
				convey.So(snap.Step, convey.ShouldEqual, onboarding.StepPersonal)
				convey.So(snap.Name, convey.ShouldBeEmpty)
				convey.So(snap.Categories, convey.ShouldBeEmpty)
				convey.So(snap.Languages, convey.ShouldBeEmpty)
				convey.So(snap.FeeRange, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the sink fails", func() {
			fillToReview(ctx, f)
			r.fail = errors.New("queue full")
			_, err := f.Submit(ctx)

			convey.Convey("Then answers are kept and the failure is reported", func() {
				convey.So(errors.Is(err, onboarding.ErrSubmitFailed), convey.ShouldBeTrue)
				convey.So(f.Step(), convey.ShouldEqual, onboarding.StepReview)
				convey.So(f.Snapshot().Name, convey.ShouldEqual, "Priya")
				convey.So(r.notices[len(r.notices)-1].Level, convey.ShouldEqual, onboarding.LevelError)
			})
		})

		convey.Convey("When an answer is cleared after reaching review", func() {
			fillToReview(ctx, f)
			f.SetLocation("")
			_, err := f.Submit(ctx)
			_, ok := onboarding.AsValidationError(err)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(r.apps, convey.ShouldBeEmpty)
		})

		convey.Convey("When setting fields by name", func() {
			convey.So(f.Set(onboarding.FieldName, "Arjun"), convey.ShouldBeNil)
			convey.So(f.Set("fee_range", "low"), convey.ShouldBeNil)
			convey.So(f.Set(onboarding.FieldImage, "https://example.com/a.jpg"), convey.ShouldBeNil)
			convey.So(errors.Is(f.Set("age", "30"), onboarding.ErrUnknownField), convey.ShouldBeTrue)
			snap := f.Snapshot()
			convey.So(snap.Name, convey.ShouldEqual, "Arjun")
			convey.So(snap.FeeRange, convey.ShouldEqual, "low")
			convey.So(snap.Image, convey.ShouldEqual, "https://example.com/a.jpg")
		})
	})
}
