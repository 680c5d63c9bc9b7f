package threat_test

import (
	"testing"

	event "github.com/pitchlab/gaffer/internal/domain/event"
	threat "github.com/pitchlab/gaffer/internal/domain/threat"
	xg "github.com/pitchlab/gaffer/internal/domain/xg"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	teams := [2]string{"Rovers", "Wanderers"}

	Convey("Given scored shots", t, func() {
		Convey("The zone is the mean of high-quality chances in pitch coordinates", func() {
			shots := []xg.ShotRecord{
				{Team: "Rovers", XG: 0.6, Location: event.Point{X: 110, Y: 40}},
				{Team: "Rovers", XG: 0.4, Location: event.Point{X: 100, Y: 60}},
				{Team: "Rovers", XG: 0.1, Location: event.Point{X: 60, Y: 10}}, // below threshold
			}
			zones := threat.Compute(shots, teams)

			want := event.Point{
				X: (110.0/120*105 + 100.0/120*105) / 2,
				Y: (40.0/80*68 + 60.0/80*68) / 2,
			}
			So(zones["Rovers"].X, ShouldAlmostEqual, want.X, 1e-9)
			So(zones["Rovers"].Y, ShouldAlmostEqual, want.Y, 1e-9)
		})

		Convey("A team with no high-quality chances gets its default zone", func() {
			zones := threat.Compute(nil, teams)
			So(zones["Rovers"], ShouldResemble, event.Point{X: 90, Y: 34})
			So(zones["Wanderers"], ShouldResemble, event.Point{X: 10, Y: 34})
		})

		Convey("A shot exactly at the threshold does not count", func() {
			shots := []xg.ShotRecord{
				{Team: "Wanderers", XG: threat.Threshold, Location: event.Point{X: 110, Y: 40}},
			}
			zones := threat.Compute(shots, teams)
			So(zones["Wanderers"], ShouldResemble, event.Point{X: 10, Y: 34})
		})

		Convey("The midpoint sits halfway between both zones", func() {
			zones := threat.Compute(nil, teams)
			mid := zones.Midpoint(teams)
			So(mid.X, ShouldAlmostEqual, 50.0, 1e-9)
			So(mid.Y, ShouldAlmostEqual, 34.0, 1e-9)
		})
	})
}
