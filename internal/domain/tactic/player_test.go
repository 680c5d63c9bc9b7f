package tactic_test

import (
	"math/rand"
	"testing"

	event "github.com/pitchlab/gaffer/internal/domain/event"
	squad "github.com/pitchlab/gaffer/internal/domain/squad"
	stats "github.com/pitchlab/gaffer/internal/domain/stats"
	tactic "github.com/pitchlab/gaffer/internal/domain/tactic"
	"github.com/pitchlab/gaffer/internal/domain/threat"
	. "github.com/smartystreets/goconvey/convey"
)

var playerTeams = [2]string{"Rovers", "Wanderers"}

func zones() threat.Map {
	return threat.Map{
		"Rovers":    {X: 90, Y: 34},
		"Wanderers": {X: 20, Y: 30},
	}
}

func player(id string, team string, role squad.Role) squad.Player {
	return squad.Player{ID: id, Team: team, Role: role}
}

func TestOptimalPoint(t *testing.T) {
	engine := tactic.NewPlayerEngine(zones(), playerTeams)

	Convey("Optimal points follow the role", t, func() {
		Convey("Forwards aim at their own zone of threat", func() {
			p := engine.OptimalPoint(player("f", "Rovers", squad.RoleFWD))
			So(p, ShouldResemble, event.Point{X: 90, Y: 34})
		})

		Convey("Defenders guard the opponent's zone", func() {
			p := engine.OptimalPoint(player("d", "Rovers", squad.RoleDEF))
			So(p, ShouldResemble, event.Point{X: 20, Y: 30})
		})

		Convey("Midfielders hold the midpoint of both zones", func() {
			p := engine.OptimalPoint(player("m", "Rovers", squad.RoleMID))
			So(p, ShouldResemble, event.Point{X: 55, Y: 32})
		})

		Convey("Keepers anchor by their own goal, mirrored per direction", func() {
			So(engine.OptimalPoint(player("g", "Rovers", squad.RoleGK)), ShouldResemble, event.Point{X: 5, Y: 34})
			So(engine.OptimalPoint(player("g", "Wanderers", squad.RoleGK)), ShouldResemble, event.Point{X: 100, Y: 34})
		})
	})
}

func TestSpatialCascade(t *testing.T) {
	Convey("Given the player cascade", t, func() {
		engine := tactic.NewPlayerEngine(zones(), playerTeams, tactic.WithVarietyChance(0))
		lead := stats.Snapshot{Team: "Rovers", XGDifferential: 0.7}
		tight := stats.Snapshot{Team: "Rovers", XGDifferential: 0.1}

		Convey("A forward far behind the optimal point is told to advance", func() {
			advice := engine.Advise(player("f", "Rovers", squad.RoleFWD), event.Point{X: 60, Y: 34}, lead, 3)
			So(advice.Rule, ShouldEqual, "fwd/advance")
			So(advice.Suggestion, ShouldContainSubstring, "Surge forward")
			So(advice.OptimalPoint, ShouldResemble, event.Point{X: 90, Y: 34})
			So(advice.Tick, ShouldEqual, 3)
		})

		Convey("The cautious phrasing is used without a clear lead", func() {
			advice := engine.Advise(player("f", "Rovers", squad.RoleFWD), event.Point{X: 60, Y: 34}, tight, 0)
			So(advice.Rule, ShouldEqual, "fwd/advance")
			So(advice.Suggestion, ShouldContainSubstring, "Advance cautiously")
		})

		Convey("A wide forward near the optimal x cuts inside", func() {
			advice := engine.Advise(player("f", "Rovers", squad.RoleFWD), event.Point{X: 88, Y: 60}, lead, 0)
			So(advice.Rule, ShouldEqual, "fwd/cut-inside")
		})

		Convey("Direction flips for the team attacking low x", func() {
			// A Wanderers forward at x=80 is far behind its optimal x=20.
			advice := engine.Advise(player("f", "Wanderers", squad.RoleFWD), event.Point{X: 80, Y: 30}, stats.Snapshot{Team: "Wanderers"}, 0)
			So(advice.Rule, ShouldEqual, "fwd/advance")
		})

		Convey("A defender pushed past its zone recovers", func() {
			advice := engine.Advise(player("d", "Rovers", squad.RoleDEF), event.Point{X: 40, Y: 30}, lead, 0)
			So(advice.Rule, ShouldEqual, "def/recover")
		})

		Convey("A deep midfielder is pushed forward", func() {
			advice := engine.Advise(player("m", "Rovers", squad.RoleMID), event.Point{X: 30, Y: 34}, lead, 0)
			So(advice.Rule, ShouldEqual, "mid/push")
		})

		Convey("A keeper off its line recovers it", func() {
			advice := engine.Advise(player("g", "Rovers", squad.RoleGK), event.Point{X: 15, Y: 34}, lead, 0)
			So(advice.Rule, ShouldEqual, "gk/recover-line")
		})

		Convey("History advice is appended by first match", func() {
			p := player("f", "Rovers", squad.RoleFWD)
			p.History = squad.History{Goals: 5}
			advice := engine.Advise(p, event.Point{X: 60, Y: 34}, lead, 0)
			So(advice.Suggestion, ShouldContainSubstring, "top scoring form")

			p.History = squad.History{Goals: 1, Assists: 3}
			advice = engine.Advise(p, event.Point{X: 60, Y: 34}, lead, 0)
			So(advice.Suggestion, ShouldContainSubstring, "vision")

			p.History = squad.History{}
			advice = engine.Advise(p, event.Point{X: 60, Y: 34}, lead, 0)
			So(advice.Suggestion, ShouldContainSubstring, "composed and disciplined")
		})
	})
}

func TestVarietyPhrasing(t *testing.T) {
	// On-point, centered forward position that reaches the default branch:
	// depth 60 is not past 85 and x matches the optimal.
	pos := event.Point{X: 60, Y: 34}
	custom := threat.Map{"Rovers": {X: 60, Y: 34}, "Wanderers": {X: 20, Y: 30}}
	lead := stats.Snapshot{Team: "Rovers", XGDifferential: 0.7}
	fwd := player("f", "Rovers", squad.RoleFWD)

	Convey("Given the default branch", t, func() {
		Convey("With variety forced on, the link-play phrasing is used", func() {
			engine := tactic.NewPlayerEngine(custom, playerTeams,
				tactic.WithVarietyChance(1),
				tactic.WithPlayerRand(rand.New(rand.NewSource(1))),
			)
			advice := engine.Advise(fwd, pos, lead, 0)
			So(advice.Rule, ShouldEqual, "fwd/default")
			So(advice.Suggestion, ShouldContainSubstring, "link play")

			Convey("And the optimal point is unaffected", func() {
				So(advice.OptimalPoint, ShouldResemble, event.Point{X: 60, Y: 34})
			})
		})

		Convey("With variety off, the standard phrasing is used", func() {
			engine := tactic.NewPlayerEngine(custom, playerTeams, tactic.WithVarietyChance(0))
			advice := engine.Advise(fwd, pos, lead, 0)
			So(advice.Rule, ShouldEqual, "fwd/default")
			So(advice.Suggestion, ShouldContainSubstring, "finish clinically")
			So(advice.OptimalPoint, ShouldResemble, event.Point{X: 60, Y: 34})
		})
	})
}
