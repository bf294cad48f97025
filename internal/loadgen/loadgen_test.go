package loadgen

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatSeconds(t *testing.T) {
	Convey("Given the wire time formatter", t, func() {
		Convey("Sub-minute times keep two digit seconds", func() {
			So(formatSeconds(19.85), ShouldEqual, "19.85")
			So(formatSeconds(8.5), ShouldEqual, "08.50")
		})

		Convey("Longer times carry a minutes part", func() {
			So(formatSeconds(65.0), ShouldEqual, "1:05.00")
			So(formatSeconds(927.33), ShouldEqual, "15:27.33")
		})
	})
}

func TestGenerate(t *testing.T) {
	Convey("Given a generation config", t, func() {
		cfg := &Config{NumTimes: 200, NumSwimmers: 10}
		stats := &Stats{}

		subs := Generate(cfg, stats)

		Convey("Every submission id is unique", func() {
			seen := make(map[string]bool, len(subs))
			for _, sub := range subs {
				So(seen[sub.SubmissionID], ShouldBeFalse)
				seen[sub.SubmissionID] = true
			}
		})

		Convey("Swimmers repeat across submissions", func() {
			swimmers := make(map[string]bool)
			for _, sub := range subs {
				swimmers[sub.SwimmerID] = true
			}
			So(len(swimmers), ShouldBeLessThanOrEqualTo, cfg.NumSwimmers)
		})

		Convey("The stats record the generated count", func() {
			So(stats.TimesGenerated, ShouldEqual, 200)
		})
	})
}
