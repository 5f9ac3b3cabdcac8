package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/artistly/internal/adapters/present"
	"github.com/okian/artistly/internal/domain/filter"
)

func browse(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func TestBrowse(t *testing.T) {
	convey.Convey("Given the embedded catalog", t, func() {
		convey.Convey("When filtering by location in list view", func() {
			out, err := browse("-location", "Goa", "-view", "list")

			convey.Convey("Then only the matching artist should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Showing 1 artist of 12")
				convey.So(out, convey.ShouldContainSubstring, "Marco Fernandes")
				convey.So(out, convey.ShouldNotContainSubstring, "Priya Sharma")
			})
		})

		convey.Convey("When a seed category is combined with the sidebar", func() {
			out, err := browse("-seed", "DJ", "-sidebar")

			convey.Convey("Then the seeded chip should be shown as active", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Filters (1 active)")
				convey.So(out, convey.ShouldContainSubstring, "[x] DJ")
				convey.So(out, convey.ShouldContainSubstring, "DJ Arjun")
			})
		})

		convey.Convey("When nothing matches", func() {
			out, err := browse("-q", "no such performer")

			convey.Convey("Then the empty state should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "No artists found")
			})
		})

		convey.Convey("When a repeated category flag is given", func() {
			out, err := browse("-category", "DJ", "-category", "Band", "-view", "list")

			convey.Convey("Then the categories should be combined with OR", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "DJ Arjun")
				convey.So(out, convey.ShouldContainSubstring, "The Monsoon Collective")
			})
		})

		convey.Convey("When arguments are invalid", func() {
			_, err := browse("-location", "Atlantis")
			convey.So(errors.Is(err, filter.ErrUnknownValue), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "-location")

			_, err = browse("-view", "carousel")
			convey.So(errors.Is(err, present.ErrUnknownMode), convey.ShouldBeTrue)

			_, err = browse("-sort", "price")
			convey.So(errors.Is(err, filter.ErrUnknownSort), convey.ShouldBeTrue)

			_, err = browse("-help")
			convey.So(errors.Is(err, flag.ErrHelp), convey.ShouldBeTrue)
		})

		convey.Convey("When the search term names a location", func() {
			out, err := browse("-q", "kolkata", "-view", "list")

			convey.Convey("Then the artist based there should be found", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Showing 1 artist of 12")
				convey.So(out, convey.ShouldContainSubstring, "Sourav Banerjee")
			})

			convey.Convey("And the usage text should say locations are searched", func() {
				var errOut bytes.Buffer
				_, err := parseFlags([]string{"-help"}, &errOut)
				convey.So(errors.Is(err, flag.ErrHelp), convey.ShouldBeTrue)
				convey.So(errOut.String(), convey.ShouldContainSubstring, "name, bio, location and categories")
			})
		})
	})
}
