package session_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/okian/artistly/internal/adapters/session"
	"github.com/okian/artistly/internal/domain/filter"
	"github.com/okian/artistly/internal/domain/onboarding"
	"github.com/okian/artistly/internal/domain/vocab"
	. "github.com/smartystreets/goconvey/convey"
)

func testVocab() *vocab.Vocabulary {
	return &vocab.Vocabulary{
		Categories: []string{"Singer", "DJ"},
		Languages:  []string{"English"},
		Locations:  []string{"Mumbai"},
		FeeRanges:  []string{"low"},
	}
}

func TestStore(t *testing.T) {
	Convey("Given a session store", t, func() {
		ctx := context.Background()
		store := session.NewStore(testVocab(), session.WithMaxSessions(2), session.WithMaxSearchLength(5))

		Convey("When creating a session with a category seed", func() {
			sess, err := store.Create(ctx, "Singer")

			Convey("Then the category is pre-selected once", func() {
				So(err, ShouldBeNil)
				So(sess.ID, ShouldNotBeEmpty)
				err := store.With(ctx, sess.ID, func(s *session.Session) error {
					So(s.Filters.Values(vocab.FacetCategory), ShouldResemble, []string{"Singer"})
					applied, _ := s.Filters.SeedCategory("Singer")
					So(applied, ShouldBeFalse)
					return nil
				})
				So(err, ShouldBeNil)
			})
		})

		Convey("When the seed is unknown", func() {
			_, err := store.Create(ctx, "Juggler")
			So(errors.Is(err, filter.ErrUnknownValue), ShouldBeTrue)
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("When the search cap applies", func() {
			sess, _ := store.Create(ctx, "")
			err := store.With(ctx, sess.ID, func(s *session.Session) error {
				return s.Filters.SetTerm("toolong")
			})
			So(errors.Is(err, filter.ErrTermTooLong), ShouldBeTrue)
		})

		Convey("When more sessions than the cap are created", func() {
			first, _ := store.Create(ctx, "")
			_, _ = store.Create(ctx, "")
			_, _ = store.Create(ctx, "")

			Convey("Then the oldest is evicted", func() {
				So(store.Len(), ShouldEqual, 2)
				err := store.With(ctx, first.ID, func(*session.Session) error { return nil })
				So(errors.Is(err, session.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the form reports notices", func() {
			sess, _ := store.Create(ctx, "")
			_ = store.With(ctx, sess.ID, func(s *session.Session) error {
				_ = s.Form.Next(ctx)
				return nil
			})

			Convey("Then they are delivered to the session inbox once", func() {
				_ = store.With(ctx, sess.ID, func(s *session.Session) error {
					notices := s.DrainNotices()
					So(notices, ShouldHaveLength, 1)
					So(notices[0].Level, ShouldEqual, onboarding.LevelError)
					So(s.DrainNotices(), ShouldBeEmpty)
					return nil
				})
			})
		})

		Convey("When many notices pile up", func() {
			sess, _ := store.Create(ctx, "")
			_ = store.With(ctx, sess.ID, func(s *session.Session) error {
				for i := 0; i < 30; i++ {
					s.Notify(ctx, onboarding.Notice{Message: fmt.Sprint(i)})
				}
				notices := s.DrainNotices()
				So(notices, ShouldHaveLength, 20)
				So(notices[0].Message, ShouldEqual, "10")
				return nil
			})
		})

		Convey("When deleting", func() {
			sess, _ := store.Create(ctx, "")
			store.Delete(ctx, sess.ID)
			store.Delete(ctx, "unknown")
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("When a session is mutated concurrently", func() {
			big := session.NewStore(testVocab())
			sess, _ := big.Create(ctx, "")
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = big.With(ctx, sess.ID, func(s *session.Session) error {
						_, err := s.Filters.Toggle(vocab.FacetCategory, "DJ")
						return err
					})
				}()
			}
			wg.Wait()

			Convey("Then every toggle is applied exactly once", func() {
				_ = big.With(ctx, sess.ID, func(s *session.Session) error {
					So(s.Filters.Len(vocab.FacetCategory), ShouldEqual, 0)
					So(strings.Join(s.Filters.Values(vocab.FacetCategory), ","), ShouldBeEmpty)
					return nil
				})
			})
		})
	})
}
