package sim_test

import (
	"math"
	"math/rand"
	"testing"

	event "github.com/pitchlab/gaffer/internal/domain/event"
	sim "github.com/pitchlab/gaffer/internal/domain/sim"
	squad "github.com/pitchlab/gaffer/internal/domain/squad"
	. "github.com/smartystreets/goconvey/convey"
)

var teams = [2]string{"Rovers", "Wanderers"}

func roster() []squad.Player {
	return []squad.Player{
		{ID: "rov-gk", Team: "Rovers", Role: squad.RoleGK, Start: event.Point{X: 5, Y: 34}},
		{ID: "rov-def", Team: "Rovers", Role: squad.RoleDEF, Start: event.Point{X: 20, Y: 20}},
		{ID: "rov-mid", Team: "Rovers", Role: squad.RoleMID, Start: event.Point{X: 50, Y: 34}},
		{ID: "rov-fwd", Team: "Rovers", Role: squad.RoleFWD, Start: event.Point{X: 70, Y: 40}},
		{ID: "wan-fwd", Team: "Wanderers", Role: squad.RoleFWD, Start: event.Point{X: 30, Y: 30}},
	}
}

func buildStore(t *testing.T, feed []event.Event) event.Store {
	t.Helper()
	store, err := event.NewInMemoryStore(feed, teams)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store
}

func TestTickBounds(t *testing.T) {
	Convey("Given a running simulator", t, func() {
		store := buildStore(t, []event.Event{
			{ID: "e1", Minute: 1, Type: event.TypePass, Team: "Rovers", Player: "rov-mid",
				Location: &event.Point{X: 60, Y: 40}, EndLocation: &event.Point{X: 90, Y: 50}, Recipient: "rov-fwd"},
			{ID: "e2", Minute: 2, Type: event.TypeShot, Team: "Rovers", Player: "rov-fwd",
				Location: &event.Point{X: 110, Y: 40}},
		})
		s, err := sim.New(roster(), store, sim.WithRand(rand.New(rand.NewSource(1))))
		So(err, ShouldBeNil)

		Convey("Every position stays inside its role bounds over many ticks", func() {
			for i := 0; i < 200; i++ {
				s.Tick()
				for _, st := range s.States() {
					b := squad.BoundsFor(st.Player.Role, st.Player.Team == teams[0])
					So(b.Contains(st.Position), ShouldBeTrue)
				}
			}
		})

		Convey("The keeper never leaves its goal box", func() {
			for i := 0; i < 100; i++ {
				s.Tick()
			}
			pos, err := s.Position("rov-gk")
			So(err, ShouldBeNil)
			So(pos.X, ShouldBeLessThanOrEqualTo, 18.0)
			So(pos.Y, ShouldBeBetweenOrEqual, 22.0, 46.0)
		})

		Convey("Tick count and current minute advance with the event stream", func() {
			So(s.TickCount(), ShouldEqual, 0)
			So(s.CurrentMinute(), ShouldEqual, 1)
			s.Tick()
			So(s.TickCount(), ShouldEqual, 1)
			So(s.CurrentMinute(), ShouldEqual, 1)
			s.Tick()
			So(s.CurrentMinute(), ShouldEqual, 2)
		})
	})

	Convey("Given a feed opening with a minute-0 kickoff", t, func() {
		store := buildStore(t, []event.Event{
			{ID: "e0", Minute: 0, Type: event.TypePass, Team: "Rovers", Player: "rov-mid",
				Location: &event.Point{X: 60, Y: 40}},
			{ID: "e1", Minute: 2, Type: event.TypeCarry, Team: "Rovers", Player: "rov-fwd",
				Location: &event.Point{X: 70, Y: 40}},
		})
		s, err := sim.New(roster(), store, sim.WithRand(rand.New(rand.NewSource(1))))
		So(err, ShouldBeNil)

		Convey("The reported minute never drops below the valid range", func() {
			s.Tick()
			So(s.CurrentMinute(), ShouldEqual, event.MinMinute)
			s.Tick()
			So(s.CurrentMinute(), ShouldEqual, 2)
		})
	})
}

func TestEventSnapping(t *testing.T) {
	Convey("Given a feed that keeps targeting the same actor", t, func() {
		loc := event.Point{X: 110, Y: 40}
		store := buildStore(t, []event.Event{
			{ID: "e1", Minute: 1, Type: event.TypeShot, Team: "Rovers", Player: "rov-fwd", Location: &loc},
		})
		s, err := sim.New(roster(), store, sim.WithRand(rand.New(rand.NewSource(1))))
		So(err, ShouldBeNil)

		Convey("The actor converges toward the event's pitch location", func() {
			target := loc.ToPitch()
			for i := 0; i < 60; i++ {
				s.Tick()
			}
			pos, err := s.Position("rov-fwd")
			So(err, ShouldBeNil)
			So(math.Hypot(pos.X-target.X, pos.Y-target.Y), ShouldBeLessThan, 1.0)
		})
	})

	Convey("Given a completed pass", t, func() {
		end := event.Point{X: 100, Y: 50}
		store := buildStore(t, []event.Event{
			{ID: "e1", Minute: 1, Type: event.TypePass, Team: "Rovers", Player: "rov-mid",
				Location: &event.Point{X: 60, Y: 40}, EndLocation: &end, Recipient: "rov-fwd"},
		})
		s, err := sim.New(roster(), store, sim.WithRand(rand.New(rand.NewSource(1))))
		So(err, ShouldBeNil)

		Convey("The recipient converges toward the pass end location", func() {
			target := end.ToPitch()
			for i := 0; i < 60; i++ {
				s.Tick()
			}
			pos, err := s.Position("rov-fwd")
			So(err, ShouldBeNil)
			So(math.Hypot(pos.X-target.X, pos.Y-target.Y), ShouldBeLessThan, 1.0)
		})
	})

	Convey("Given an incomplete pass", t, func() {
		end := event.Point{X: 100, Y: 50}
		store := buildStore(t, []event.Event{
			{ID: "e1", Minute: 1, Type: event.TypePass, Team: "Rovers", Player: "rov-mid",
				Location: &event.Point{X: 60, Y: 40}, EndLocation: &end, Recipient: "rov-fwd", Outcome: "Incomplete"},
		})
		s, err := sim.New(roster(), store, sim.WithRand(rand.New(rand.NewSource(1))))
		So(err, ShouldBeNil)

		Convey("The recipient is not snapped to the end location", func() {
			target := end.ToPitch()
			for i := 0; i < 60; i++ {
				s.Tick()
			}
			pos, err := s.Position("rov-fwd")
			So(err, ShouldBeNil)
			So(math.Hypot(pos.X-target.X, pos.Y-target.Y), ShouldBeGreaterThan, 1.0)
		})
	})
}

func TestDeterminism(t *testing.T) {
	Convey("Two simulators with the same seed walk the same path", t, func() {
		feed := []event.Event{
			{ID: "e1", Minute: 1, Type: event.TypePass, Team: "Rovers", Player: "rov-mid",
				Location: &event.Point{X: 60, Y: 40}},
			{ID: "e2", Minute: 3, Type: event.TypeDuel, Team: "Wanderers", Player: "wan-fwd",
				Location: &event.Point{X: 40, Y: 20}},
		}
		a, err := sim.New(roster(), buildStore(t, feed), sim.WithRand(rand.New(rand.NewSource(9))))
		So(err, ShouldBeNil)
		b, err := sim.New(roster(), buildStore(t, feed), sim.WithRand(rand.New(rand.NewSource(9))))
		So(err, ShouldBeNil)

		for i := 0; i < 50; i++ {
			a.Tick()
			b.Tick()
		}
		So(a.States(), ShouldResemble, b.States())
	})
}

func TestSimulatorErrors(t *testing.T) {
	Convey("Given invalid simulator inputs", t, func() {
		store := buildStore(t, []event.Event{
			{ID: "e1", Minute: 1, Type: event.TypePass, Team: "Rovers"},
		})

		Convey("An empty roster is rejected", func() {
			_, err := sim.New(nil, store)
			So(err, ShouldWrap, sim.ErrEmptyRoster)
		})

		Convey("An invalid role is rejected", func() {
			bad := []squad.Player{{ID: "x", Team: "Rovers", Role: squad.Role("LIBERO")}}
			_, err := sim.New(bad, store)
			So(err, ShouldWrap, sim.ErrInvalidRole)
		})

		Convey("An unknown player id is a terminal lookup error", func() {
			s, err := sim.New(roster(), store)
			So(err, ShouldBeNil)
			_, err = s.Position("ghost")
			So(err, ShouldWrap, sim.ErrUnknownPlayer)
			_, err = s.Lookup("ghost")
			So(err, ShouldWrap, sim.ErrUnknownPlayer)
		})
	})
}
