// Package threat locates each team's zone of threat: the mean pitch-frame
// coordinate of its high-quality chances, used as an attacking or defensive
// target reference.
package threat

import (
	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/xg"
)

// Threshold above which a shot counts as a high-quality chance.
const Threshold = 0.3

// Fallback zones near the opposing penalty area, mirrored per attacking
// direction (pitch frame).
var (
	defaultHighGoalZone = event.Point{X: 90, Y: 34} // team attacking high-x
	defaultLowGoalZone  = event.Point{X: 10, Y: 34} // team attacking low-x
)

// Map holds one current zone per team, keyed by team name.
type Map map[string]event.Point

// Compute derives each team's zone from its above-threshold chances, with
// the mirrored fixed default when none exist. teams[0] attacks toward the
// high-x goal. Computed once per session; it reflects match-wide shot
// quality, not instantaneous state.
func Compute(shots []xg.ShotRecord, teams [2]string) Map {
	zones := Map{
		teams[0]: defaultHighGoalZone,
		teams[1]: defaultLowGoalZone,
	}

	for _, team := range teams {
		var sum event.Point
		n := 0
		for _, r := range shots {
			if r.Team != team || r.XG <= Threshold {
				continue
			}
			p := r.Location.ToPitch()
			sum.X += p.X
			sum.Y += p.Y
			n++
		}
		if n > 0 {
			zones[team] = event.Point{X: sum.X / float64(n), Y: sum.Y / float64(n)}
		}
	}
	return zones
}

// Midpoint returns the point halfway between both teams' zones.
func (m Map) Midpoint(teams [2]string) event.Point {
	a, b := m[teams[0]], m[teams[1]]
	return event.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
