package event_test

import (
	"testing"

	event "github.com/pitchlab/gaffer/internal/domain/event"
	. "github.com/smartystreets/goconvey/convey"
)

func TestShotGeometry(t *testing.T) {
	Convey("Given shot locations in the feed frame", t, func() {
		Convey("A shot 20 units straight in front of goal", func() {
			dist, angle := event.ShotGeometry(event.Point{X: 100, Y: 40})
			So(dist, ShouldAlmostEqual, 20.0, 1e-9)
			So(angle, ShouldAlmostEqual, 0.0, 1e-9)
		})

		Convey("A shot on the goal line center has zero distance", func() {
			dist, _ := event.ShotGeometry(event.Point{X: 120, Y: 40})
			So(dist, ShouldAlmostEqual, 0.0, 1e-9)
		})

		Convey("A diagonal shot has a 45 degree angle", func() {
			dist, angle := event.ShotGeometry(event.Point{X: 110, Y: 30})
			So(angle, ShouldAlmostEqual, 45.0, 1e-9)
			So(dist, ShouldBeGreaterThan, 14)
			So(dist, ShouldBeLessThan, 15)
		})

		Convey("Angle is symmetric across the goal center", func() {
			_, above := event.ShotGeometry(event.Point{X: 110, Y: 50})
			_, below := event.ShotGeometry(event.Point{X: 110, Y: 30})
			So(above, ShouldAlmostEqual, below, 1e-9)
		})
	})
}

func TestPointConversion(t *testing.T) {
	Convey("Given feed-frame points", t, func() {
		Convey("The far corner maps to the pitch far corner", func() {
			p := event.Point{X: 120, Y: 80}.ToPitch()
			So(p.X, ShouldAlmostEqual, 105.0, 1e-9)
			So(p.Y, ShouldAlmostEqual, 68.0, 1e-9)
		})

		Convey("The center maps to the pitch center", func() {
			p := event.Point{X: 60, Y: 40}.ToPitch()
			So(p.X, ShouldAlmostEqual, 52.5, 1e-9)
			So(p.Y, ShouldAlmostEqual, 34.0, 1e-9)
		})
	})
}

func TestInMemoryStore(t *testing.T) {
	teams := [2]string{"Rovers", "Wanderers"}
	feed := []event.Event{
		{ID: "e1", Minute: 3, Type: event.TypePass, Team: "Rovers"},
		{ID: "e2", Minute: 7, Type: event.TypeShot, Team: "Wanderers"},
		{ID: "e3", Minute: 12, Type: event.TypePass, Team: "Rovers"},
		{ID: "e2", Minute: 7, Type: event.TypeShot, Team: "Wanderers"}, // replayed chunk
	}

	Convey("Given a store built from a feed with a replayed event", t, func() {
		store, err := event.NewInMemoryStore(feed, teams)
		So(err, ShouldBeNil)

		Convey("The duplicate is dropped and counted", func() {
			So(store.Len(), ShouldEqual, 3)
			So(store.Duplicates(), ShouldEqual, 1)
		})

		Convey("Type queries cut on minute, inclusive", func() {
			So(store.ByTypeUpTo(event.TypePass, 3), ShouldHaveLength, 1)
			So(store.ByTypeUpTo(event.TypePass, 12), ShouldHaveLength, 2)
			So(store.UpTo(7), ShouldHaveLength, 2)
			So(store.UpTo(0), ShouldBeEmpty)
		})

		Convey("Opponent resolves both ways and rejects strangers", func() {
			opp, err := store.Opponent("Rovers")
			So(err, ShouldBeNil)
			So(opp, ShouldEqual, "Wanderers")

			_, err = store.Opponent("Corinthians")
			So(err, ShouldWrap, event.ErrUnknownTeam)
		})
	})

	Convey("Given invalid feeds", t, func() {
		Convey("An empty feed is rejected", func() {
			_, err := event.NewInMemoryStore(nil, teams)
			So(err, ShouldWrap, event.ErrEmptyMatch)
		})

		Convey("A missing event id is rejected", func() {
			_, err := event.NewInMemoryStore([]event.Event{{Minute: 1}}, teams)
			So(err, ShouldWrap, event.ErrMissingID)
		})

		Convey("An out-of-range minute is rejected", func() {
			_, err := event.NewInMemoryStore([]event.Event{{ID: "x", Minute: 121}}, teams)
			So(err, ShouldWrap, event.ErrMinuteRange)
		})

		Convey("An event from a third team is rejected", func() {
			_, err := event.NewInMemoryStore([]event.Event{{ID: "x", Minute: 1, Team: "Corinthians"}}, teams)
			So(err, ShouldWrap, event.ErrUnknownTeam)
		})

		Convey("Identical team names are rejected", func() {
			_, err := event.NewInMemoryStore([]event.Event{{ID: "x", Minute: 1}}, [2]string{"Rovers", "Rovers"})
			So(err, ShouldWrap, event.ErrTwoTeamsOnly)
		})
	})
}

func TestValidateMinute(t *testing.T) {
	Convey("Given minute requests", t, func() {
		So(event.ValidateMinute(1), ShouldBeNil)
		So(event.ValidateMinute(120), ShouldBeNil)
		So(event.ValidateMinute(0), ShouldWrap, event.ErrMinuteRange)
		So(event.ValidateMinute(121), ShouldWrap, event.ErrMinuteRange)
	})
}
