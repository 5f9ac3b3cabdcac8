package model_test

import (
	"testing"

	model "github.com/okian/artistly/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestArtist(t *testing.T) {
	convey.Convey("Given an Artist", t, func() {
		a := model.Artist{ID: "1", Name: "Aarav", Categories: []string{"DJ", "Singer"}, Languages: []string{"Hindi"}}

		convey.Convey("When checking categories", func() {
			convey.So(a.HasCategory("DJ"), convey.ShouldBeTrue)
			convey.So(a.HasCategory("dj"), convey.ShouldBeFalse)
			convey.So(a.HasCategory("Dancer"), convey.ShouldBeFalse)
		})

		convey.Convey("When cloning", func() {
			c := a.Clone()
			c.Categories[0] = "Dancer"
			c.Languages[0] = "English"

			convey.Convey("Then the original should be untouched", func() {
				convey.So(a.Categories[0], convey.ShouldEqual, "DJ")
				convey.So(a.Languages[0], convey.ShouldEqual, "Hindi")
				convey.So(c.Name, convey.ShouldEqual, "Aarav")
			})
		})
	})
}

func TestParseStatus(t *testing.T) {
	convey.Convey("Given status strings", t, func() {
		convey.Convey("When they name a known status", func() {
			for in, want := range map[string]model.Status{
				"pending":    model.StatusPending,
				"APPROVED":   model.StatusApproved,
				" rejected ": model.StatusRejected,
			} {
				got, err := model.ParseStatus(in)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, want)
			}
		})

		convey.Convey("When they do not", func() {
			_, err := model.ParseStatus("archived")
			convey.So(err, convey.ShouldNotBeNil)
			_, err = model.ParseStatus("all")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then Statuses lists all three in order", func() {
			convey.So(model.Statuses(), convey.ShouldResemble,
				[]model.Status{model.StatusPending, model.StatusApproved, model.StatusRejected})
		})
	})
}
