package convert_test

import (
	"errors"
	"testing"

	"github.com/MohamedMohamady125/projectusa/internal/domain/convert"
	"github.com/MohamedMohamady125/projectusa/internal/domain/course"
	"github.com/MohamedMohamady125/projectusa/internal/domain/model"
	"github.com/MohamedMohamady125/projectusa/pkg/swimtime"
	. "github.com/smartystreets/goconvey/convey"
)

func mustTime(s string) swimtime.Time {
	t, err := swimtime.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestConvert(t *testing.T) {
	Convey("Given a converter over the published table", t, func() {
		c := convert.New()

		Convey("When converting a 100 free SCY 50.00 to LCM", func() {
			r := model.SwimResult{
				Event:  course.Event{Distance: 100, Stroke: course.Freestyle},
				Course: course.SCY,
				Time:   mustTime("50.00"),
			}
			got, err := c.Convert(r, course.LCM)

			Convey("Then the published 1.1566 factor applies", func() {
				So(err, ShouldBeNil)
				So(got.Factor, ShouldEqual, 1.1566)
				So(got.Time.String(), ShouldEqual, "57.83")
				So(got.Course, ShouldEqual, course.LCM)
				So(got.Event, ShouldResemble, r.Event)
			})
		})

		Convey("When converting to the same course", func() {
			r := model.SwimResult{
				Event:  course.Event{Distance: 200, Stroke: course.Backstroke},
				Course: course.SCM,
				Time:   mustTime("2:01.50"),
			}
			got, err := c.Convert(r, course.SCM)

			Convey("Then it short-circuits with factor 1.0 and the time unchanged", func() {
				So(err, ShouldBeNil)
				So(got.Factor, ShouldEqual, 1.0)
				So(got.Time, ShouldEqual, r.Time)
			})
		})

		Convey("When converting a distance freestyle across courses", func() {
			r := model.SwimResult{
				Event:  course.Event{Distance: 400, Stroke: course.Freestyle},
				Course: course.LCM,
				Time:   mustTime("4:00.00"),
			}
			got, err := c.Convert(r, course.SCY)

			Convey("Then the equivalent event is the 500 yard free", func() {
				So(err, ShouldBeNil)
				So(got.Event, ShouldResemble, course.Event{Distance: 500, Stroke: course.Freestyle})
				So(got.Factor, ShouldEqual, 0.8655)
				// 240.00s * 0.8655 = 207.72s
				So(got.Time.String(), ShouldEqual, "3:27.72")
			})
		})

		Convey("When the factor table has no entry for the pair", func() {
			r := model.SwimResult{
				Event:  course.Event{Distance: 100, Stroke: course.Backstroke},
				Course: course.SCY,
				Time:   mustTime("52.00"),
			}
			_, err := c.Convert(r, course.SCM)

			Convey("Then it fails with ErrUnavailable instead of guessing", func() {
				So(errors.Is(err, convert.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the input itself is malformed", func() {
			r := model.SwimResult{
				Event:  course.Event{Distance: 100, Stroke: "sidestroke"},
				Course: course.SCY,
				Time:   mustTime("52.00"),
			}
			_, err := c.Convert(r, course.LCM)
			So(errors.Is(err, convert.ErrInvalidResult), ShouldBeTrue)

			r = model.SwimResult{
				Event:  course.Event{Distance: 100, Stroke: course.Freestyle},
				Course: course.SCY,
				Time:   0,
			}
			_, err = c.Convert(r, course.LCM)
			So(errors.Is(err, convert.ErrInvalidResult), ShouldBeTrue)
		})

		Convey("When converting the same input twice", func() {
			r := model.SwimResult{
				Event:  course.Event{Distance: 200, Stroke: course.Breaststroke},
				Course: course.LCM,
				Time:   mustTime("2:25.31"),
			}
			first, err1 := c.Convert(r, course.SCY)
			second, err2 := c.Convert(r, course.SCY)

			Convey("Then the outputs are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})
	})
}

func TestRoundTripTolerance(t *testing.T) {
	Convey("Given conversions there and back again", t, func() {
		c := convert.New()
		const toleranceCentis = 5 // ±0.05s; factors are empirical, not exact inverses

		cases := []model.SwimResult{
			{Event: course.Event{Distance: 100, Stroke: course.Freestyle}, Course: course.SCY, Time: mustTime("45.80")},
			{Event: course.Event{Distance: 200, Stroke: course.Butterfly}, Course: course.LCM, Time: mustTime("2:01.11")},
			{Event: course.Event{Distance: 100, Stroke: course.Breaststroke}, Course: course.LCM, Time: mustTime("1:03.50")},
			{Event: course.Event{Distance: 200, Stroke: course.IndividualMedley}, Course: course.SCY, Time: mustTime("1:49.40")},
		}

		for _, r := range cases {
			target := course.LCM
			if r.Course == course.LCM {
				target = course.SCY
			}

			out, err := c.Convert(r, target)
			So(err, ShouldBeNil)

			back, err := c.Convert(model.SwimResult{Event: out.Event, Course: out.Course, Time: out.Time}, r.Course)
			So(err, ShouldBeNil)

			diff := int64(back.Time - r.Time)
			if diff < 0 {
				diff = -diff
			}
			So(diff, ShouldBeLessThanOrEqualTo, toleranceCentis)
		}
	})
}

func TestConvertMany(t *testing.T) {
	Convey("Given a batch with one malformed slot", t, func() {
		c := convert.New()
		batch := []model.SwimResult{
			{Event: course.Event{Distance: 50, Stroke: course.Freestyle}, Course: course.SCY, Time: mustTime("21.90")},
			{Event: course.Event{Distance: 50, Stroke: course.Freestyle}, Course: course.SCY, Time: -1},
			{Event: course.Event{Distance: 100, Stroke: course.Backstroke}, Course: course.SCY, Time: mustTime("49.72")},
		}

		outcomes := c.ConvertMany(batch, course.LCM)

		Convey("Then the failure stays in its slot and the rest convert", func() {
			So(len(outcomes), ShouldEqual, 3)
			So(outcomes[0].Err, ShouldBeNil)
			So(outcomes[1].Err, ShouldNotBeNil)
			So(errors.Is(outcomes[1].Err, convert.ErrInvalidResult), ShouldBeTrue)
			So(outcomes[2].Err, ShouldBeNil)
			So(outcomes[0].Result.Factor, ShouldEqual, 1.1566)
			So(outcomes[2].Result.Factor, ShouldEqual, 1.1682)
		})
	})
}

func TestFactorOverrides(t *testing.T) {
	Convey("Given a converter with a republished factor", t, func() {
		ev := course.Event{Distance: 100, Stroke: course.Freestyle}
		c := convert.New(convert.WithFactor(ev, course.SCY, course.LCM, 1.16))

		got, err := c.Convert(model.SwimResult{Event: ev, Course: course.SCY, Time: mustTime("50.00")}, course.LCM)

		Convey("Then the override wins over the built-in table", func() {
			So(err, ShouldBeNil)
			So(got.Factor, ShouldEqual, 1.16)
			So(got.Time.String(), ShouldEqual, "58.00")
		})
	})
}
