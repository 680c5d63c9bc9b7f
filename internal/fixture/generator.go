// Package fixture generates a deterministic synthetic match so tests and
// the demo CLI can exercise the engine without a feed export.
package fixture

import (
	"fmt"
	"math/rand"

	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/squad"
)

// Default fixture teams; index 0 attacks toward the high-x goal.
var defaultTeams = [2]string{"Rovers", "Wanderers"}

// Generation tuning constants.
const (
	matchMinutes   = 90
	eventsPerMin   = 5
	passShare      = 0.55
	carryShare     = 0.70 // cumulative
	pressureShare  = 0.82
	duelShare      = 0.92 // remainder are shots
	passFailChance = 0.2
	duelWonChance  = 0.5
)

// Generate builds a full synthetic match: events in the feed frame, a
// 22-player roster, and the team pair. Deterministic for a fixed seed.
// The shot mix always contains both goals and misses so the model fit
// never sees single-class labels.
func Generate(seed int64) ([]event.Event, []squad.Player, [2]string) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic fixture
	teams := defaultTeams
	players := Roster(teams)

	byTeam := map[string][]squad.Player{}
	for _, p := range players {
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}

	var events []event.Event
	goals, misses := 0, 0
	seq := 0
	for minute := 1; minute <= matchMinutes; minute++ {
		for i := 0; i < eventsPerMin; i++ {
			seq++
			team := teams[rng.Intn(2)]
			actor := byTeam[team][rng.Intn(len(byTeam[team]))]
			e := event.Event{
				ID:             fmt.Sprintf("evt-%05d", seq),
				Minute:         minute,
				Team:           team,
				Player:         actor.ID,
				PossessionTeam: team,
			}

			switch roll := rng.Float64(); {
			case roll < passShare:
				e.Type = event.TypePass
				e.Location = randomPoint(rng)
				e.EndLocation = randomPoint(rng)
				recipient := byTeam[team][rng.Intn(len(byTeam[team]))]
				e.Recipient = recipient.ID
				if rng.Float64() < passFailChance {
					e.Outcome = "Incomplete"
				}
			case roll < carryShare:
				e.Type = event.TypeCarry
				e.Location = randomPoint(rng)
				e.EndLocation = randomPoint(rng)
			case roll < pressureShare:
				e.Type = event.TypePressure
				e.Location = randomPoint(rng)
			case roll < duelShare:
				e.Type = event.TypeDuel
				e.Location = randomPoint(rng)
				if rng.Float64() < duelWonChance {
					e.Outcome = "Won"
				}
			default:
				e = shotEvent(rng, e)
				if e.Outcome == event.OutcomeGoal {
					goals++
				} else {
					misses++
				}
			}
			events = append(events, e)
		}
	}

	// Guarantee both label classes regardless of seed.
	if goals == 0 {
		events = append(events, forcedShot(rng, "evt-goal", teams[0], byTeam[teams[0]][10].ID, true))
	}
	if misses == 0 {
		events = append(events, forcedShot(rng, "evt-miss", teams[1], byTeam[teams[1]][10].ID, false))
	}

	return events, players, teams
}

// shotEvent fills in a shot near the goal mouth with a freeze frame. The
// goal chance falls off with distance so the fitted model has signal.
func shotEvent(rng *rand.Rand, e event.Event) event.Event {
	loc := event.Point{
		X: 95 + rng.Float64()*24,
		Y: 20 + rng.Float64()*40,
	}
	e.Type = event.TypeShot
	e.Location = &loc
	e.ShotType = event.ShotTypeOpenPlay
	if rng.Float64() < 0.15 {
		e.ShotType = event.ShotTypeFreeKick
	}
	if rng.Float64() < 0.1 {
		e.Technique = "Volley"
	}
	if rng.Float64() < 0.2 {
		e.BodyPart = "Head"
	}
	e.UnderPressure = rng.Float64() < 0.3
	e.KeyPass = rng.Float64() < 0.25
	e.FreezeFrame = freezeFrame(rng, loc)

	dist, _ := event.ShotGeometry(loc)
	if rng.Float64() < clamp(0.9-dist/35, 0.05, 0.9) {
		e.Outcome = event.OutcomeGoal
	} else {
		e.Outcome = "Saved"
	}
	return e
}

// forcedShot injects one unambiguous shot of the requested class.
func forcedShot(rng *rand.Rand, id, team, player string, goal bool) event.Event {
	loc := event.Point{X: 117, Y: 40}
	outcome := event.OutcomeGoal
	if !goal {
		loc = event.Point{X: 85, Y: 15}
		outcome = "Off T"
	}
	return event.Event{
		ID:             id,
		Minute:         matchMinutes,
		Type:           event.TypeShot,
		Team:           team,
		Player:         player,
		PossessionTeam: team,
		Location:       &loc,
		ShotType:       event.ShotTypeOpenPlay,
		Outcome:        outcome,
		FreezeFrame:    freezeFrame(rng, loc),
	}
}

func freezeFrame(rng *rand.Rand, shot event.Point) []event.FreezeEntry {
	entries := []event.FreezeEntry{
		{Location: event.Point{X: 119, Y: 39 + rng.Float64()*2}, Keeper: true},
	}
	for i := 0; i < 3; i++ {
		entries = append(entries, event.FreezeEntry{
			Location: event.Point{
				X: shot.X + rng.Float64()*8 - 4,
				Y: shot.Y + rng.Float64()*8 - 4,
			},
		})
	}
	return entries
}

func randomPoint(rng *rand.Rand) *event.Point {
	return &event.Point{
		X: rng.Float64() * event.FeedLength,
		Y: rng.Float64() * event.FeedWidth,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Roster builds a 4-3-3 eleven for each team with start positions in the
// pitch frame and plausible pre-match stats.
func Roster(teams [2]string) []squad.Player {
	var players []squad.Player
	for side, team := range teams {
		attacksHighX := side == 0
		for i, slot := range formation() {
			start := slot.start
			if !attacksHighX {
				start.X = event.PitchLength - start.X
			}
			players = append(players, squad.Player{
				ID:    fmt.Sprintf("%s-%02d", team, i+1),
				Name:  fmt.Sprintf("%s %d", team, i+1),
				Team:  team,
				Role:  slot.role,
				Start: start,
				History: squad.History{
					Matches:   6,
					Goals:     slot.goals,
					Assists:   slot.assists,
					Passes:    slot.passes,
					AvgRating: slot.rating,
				},
			})
		}
	}
	return players
}

type formationSlot struct {
	role    squad.Role
	start   event.Point
	goals   int
	assists int
	passes  int
	rating  float64
}

func formation() []formationSlot {
	return []formationSlot{
		{role: squad.RoleGK, start: event.Point{X: 5, Y: 34}, passes: 50, rating: 7.2},
		{role: squad.RoleDEF, start: event.Point{X: 20, Y: 10}, goals: 1, assists: 1, passes: 170, rating: 7.4},
		{role: squad.RoleDEF, start: event.Point{X: 20, Y: 28}, passes: 120, rating: 7.5},
		{role: squad.RoleDEF, start: event.Point{X: 20, Y: 44}, passes: 180, rating: 7.4},
		{role: squad.RoleDEF, start: event.Point{X: 20, Y: 60}, passes: 150, rating: 7.3},
		{role: squad.RoleMID, start: event.Point{X: 40, Y: 20}, assists: 1, passes: 290, rating: 7.6},
		{role: squad.RoleMID, start: event.Point{X: 45, Y: 34}, passes: 200, rating: 7.3},
		{role: squad.RoleMID, start: event.Point{X: 40, Y: 48}, goals: 1, assists: 1, passes: 250, rating: 7.7},
		{role: squad.RoleFWD, start: event.Point{X: 60, Y: 20}, goals: 1, assists: 1, passes: 120, rating: 7.5},
		{role: squad.RoleFWD, start: event.Point{X: 65, Y: 34}, goals: 5, assists: 3, passes: 320, rating: 8.4},
		{role: squad.RoleFWD, start: event.Point{X: 70, Y: 48}, goals: 4, passes: 180, rating: 7.9},
	}
}
