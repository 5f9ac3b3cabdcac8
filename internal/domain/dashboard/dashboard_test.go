package dashboard_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/artistly/internal/domain/dashboard"
	"github.com/okian/artistly/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func artists() []model.Artist {
	return []model.Artist{
		{ID: "1", Name: "Priya Sharma", Location: "Mumbai", Categories: []string{"Singer"}},
		{ID: "2", Name: "DJ Arjun", Location: "Mumbai", Categories: []string{"DJ"}},
		{ID: "3", Name: "Ananya", Location: "Chennai", Categories: []string{"Dancer"}},
		{ID: "4", Name: "Rahul", Location: "Delhi", Categories: []string{"Speaker", "Singer"}},
		{ID: "5", Name: "Nisha", Location: "Delhi", Categories: []string{"DJ"}},
	}
}

func ids(subs []model.Submission) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestBuildSubmissions(t *testing.T) {
	convey.Convey("Given artists and a seeded generator", t, func() {
		subs := dashboard.BuildSubmissions(artists(), now, dashboard.NewRand(7))

		convey.Convey("Then status cycles by index", func() {
			convey.So(subs[0].Status, convey.ShouldEqual, model.StatusPending)
			convey.So(subs[1].Status, convey.ShouldEqual, model.StatusApproved)
			convey.So(subs[2].Status, convey.ShouldEqual, model.StatusRejected)
			convey.So(subs[3].Status, convey.ShouldEqual, model.StatusPending)
		})

		convey.Convey("Then timestamps fall within their windows", func() {
			for _, s := range subs {
				convey.So(s.SubmittedAt.After(now.Add(-30*24*time.Hour)), convey.ShouldBeTrue)
				convey.So(s.SubmittedAt.After(now), convey.ShouldBeFalse)
				convey.So(s.LastUpdated.After(now.Add(-7*24*time.Hour)), convey.ShouldBeTrue)
				convey.So(s.LastUpdated.After(now), convey.ShouldBeFalse)
			}
		})

		convey.Convey("Then the same seed yields the same data", func() {
			again := dashboard.BuildSubmissions(artists(), now, dashboard.NewRand(7))
			convey.So(again[4].SubmittedAt, convey.ShouldEqual, subs[4].SubmittedAt)
		})
	})
}

func TestFilter(t *testing.T) {
	convey.Convey("Given mock submissions", t, func() {
		subs := dashboard.BuildSubmissions(artists(), now, dashboard.NewRand(1))

		convey.Convey("When no facet is set", func() {
			convey.So(ids(dashboard.Filter(subs, dashboard.Query{Status: dashboard.All, Category: dashboard.All})),
				convey.ShouldResemble, []string{"1", "2", "3", "4", "5"})
		})

		convey.Convey("When searching by name or location", func() {
			convey.So(ids(dashboard.Filter(subs, dashboard.Query{Term: "mumbai"})), convey.ShouldResemble, []string{"1", "2"})
			convey.So(ids(dashboard.Filter(subs, dashboard.Query{Term: "NISH"})), convey.ShouldResemble, []string{"5"})
		})

		convey.Convey("When the term only appears in a category", func() {
			convey.So(dashboard.Filter(subs, dashboard.Query{Term: "speaker"}), convey.ShouldBeEmpty)
		})

		convey.Convey("When the term carries surrounding spaces", func() {
			convey.So(dashboard.Filter(subs, dashboard.Query{Term: " mumbai "}), convey.ShouldBeEmpty)
			convey.So(dashboard.Filter(subs, dashboard.Query{Term: "   "}), convey.ShouldBeEmpty)
		})

		convey.Convey("When filtering by status", func() {
			convey.So(ids(dashboard.Filter(subs, dashboard.Query{Status: "pending"})), convey.ShouldResemble, []string{"1", "4"})
		})

		convey.Convey("When filtering by category substring", func() {
			convey.So(ids(dashboard.Filter(subs, dashboard.Query{Category: "sing"})), convey.ShouldResemble, []string{"1", "4"})
			convey.So(ids(dashboard.Filter(subs, dashboard.Query{Category: "dj", Term: "delhi"})), convey.ShouldResemble, []string{"5"})
		})

		convey.Convey("When finding by id", func() {
			s, ok := dashboard.Find(subs, "3")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s.Name, convey.ShouldEqual, "Ananya")
			_, ok = dashboard.Find(subs, "x")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When validating queries", func() {
			convey.So(dashboard.Query{Status: "ALL"}.Validate(), convey.ShouldBeNil)
			convey.So(dashboard.Query{Status: "approved"}.Validate(), convey.ShouldBeNil)
			err := dashboard.Query{Status: "archived"}.Validate()
			convey.So(errors.Is(err, dashboard.ErrInvalidQuery), convey.ShouldBeTrue)
		})
	})
}

func TestStats(t *testing.T) {
	convey.Convey("Given mock submissions", t, func() {
		subs := dashboard.BuildSubmissions(artists(), now, dashboard.NewRand(1))

		convey.Convey("Then stats cover the unfiltered universe", func() {
			st := dashboard.ComputeStats(subs)
			convey.So(st, convey.ShouldResemble, dashboard.Stats{Total: 5, Pending: 2, Approved: 2, Rejected: 1})
			convey.So(st.ApprovalRate(), convey.ShouldAlmostEqual, 0.4)
			convey.So(st.ApprovalPercent(), convey.ShouldEqual, "40.0%")
		})

		convey.Convey("When there are no submissions", func() {
			st := dashboard.ComputeStats(nil)

			convey.Convey("Then the approval rate is defined", func() {
				convey.So(st.Total, convey.ShouldEqual, 0)
				convey.So(math.IsNaN(st.ApprovalRate()), convey.ShouldBeFalse)
				convey.So(st.ApprovalRate(), convey.ShouldEqual, 0)
				convey.So(st.ApprovalPercent(), convey.ShouldEqual, "0.0%")
			})
		})

		convey.Convey("When one of three is approved", func() {
			st := dashboard.Stats{Total: 3, Approved: 1}
			convey.So(st.ApprovalPercent(), convey.ShouldEqual, "33.3%")
		})
	})
}

func TestRequestStatusChange(t *testing.T) {
	convey.Convey("Given a pending and an approved submission", t, func() {
		subs := dashboard.BuildSubmissions(artists(), now, dashboard.NewRand(1))
		pending, approved := subs[0], subs[1]

		convey.Convey("When approving the pending one", func() {
			change, err := dashboard.RequestStatusChange(pending, model.StatusApproved, now)

			convey.Convey("Then the change is described but not persisted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(change.From, convey.ShouldEqual, model.StatusPending)
				convey.So(change.To, convey.ShouldEqual, model.StatusApproved)
				convey.So(change.Persisted, convey.ShouldBeFalse)
				convey.So(subs[0].Status, convey.ShouldEqual, model.StatusPending)
			})
		})

		convey.Convey("When deciding an already decided submission", func() {
			_, err := dashboard.RequestStatusChange(approved, model.StatusRejected, now)
			convey.So(errors.Is(err, dashboard.ErrInvalidTransition), convey.ShouldBeTrue)
		})

		convey.Convey("When moving back to pending", func() {
			_, err := dashboard.RequestStatusChange(pending, model.StatusPending, now)
			convey.So(errors.Is(err, dashboard.ErrInvalidTransition), convey.ShouldBeTrue)
		})
	})
}
