// Package squad defines the player roster model: identity, role, movement
// bounds, and historical stats used by the player-level advisor.
package squad

import "github.com/pitchlab/gaffer/internal/domain/event"

// Role is a player's positional role.
type Role string

// Recognized roles.
const (
	RoleGK  Role = "GK"
	RoleDEF Role = "DEF"
	RoleMID Role = "MID"
	RoleFWD Role = "FWD"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleGK, RoleDEF, RoleMID, RoleFWD:
		return true
	}
	return false
}

// History carries a player's pre-match statistics.
type History struct {
	Matches   int     `json:"matches"`
	Goals     int     `json:"goals"`
	Assists   int     `json:"assists"`
	Passes    int     `json:"passes"`
	AvgRating float64 `json:"avg_rating"`
}

// Player is one roster entry. Start is in the pitch frame.
type Player struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Team    string      `json:"team"`
	Role    Role        `json:"role"`
	Start   event.Point `json:"start"`
	History History     `json:"history"`
}

// Bounds is the movement rectangle a player is confined to (pitch frame).
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Clip forces p into the rectangle.
func (b Bounds) Clip(p event.Point) event.Point {
	if p.X < b.MinX {
		p.X = b.MinX
	}
	if p.X > b.MaxX {
		p.X = b.MaxX
	}
	if p.Y < b.MinY {
		p.Y = b.MinY
	}
	if p.Y > b.MaxY {
		p.Y = b.MaxY
	}
	return p
}

// Contains reports whether p lies inside the rectangle.
func (b Bounds) Contains(p event.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Pitch-frame bound constants.
const (
	halfwayLine  = event.PitchLength / 2
	goalBoxDepth = 18.0
	goalBoxYLow  = 22.0
	goalBoxYHigh = 46.0
)

// BoundsFor returns the movement rectangle for a role. attacksHighX marks
// the team defending the low-x goal: its keeper stays near x=0, its
// defenders in the low-x half, its forwards in the high-x half.
// Midfielders roam the full pitch.
func BoundsFor(role Role, attacksHighX bool) Bounds {
	full := Bounds{MinX: 0, MaxX: event.PitchLength, MinY: 0, MaxY: event.PitchWidth}
	switch role {
	case RoleGK:
		if attacksHighX {
			return Bounds{MinX: 0, MaxX: goalBoxDepth, MinY: goalBoxYLow, MaxY: goalBoxYHigh}
		}
		return Bounds{MinX: event.PitchLength - goalBoxDepth, MaxX: event.PitchLength, MinY: goalBoxYLow, MaxY: goalBoxYHigh}
	case RoleDEF:
		if attacksHighX {
			return Bounds{MinX: 0, MaxX: halfwayLine, MinY: 0, MaxY: event.PitchWidth}
		}
		return Bounds{MinX: halfwayLine, MaxX: event.PitchLength, MinY: 0, MaxY: event.PitchWidth}
	case RoleFWD:
		if attacksHighX {
			return Bounds{MinX: halfwayLine, MaxX: event.PitchLength, MinY: 0, MaxY: event.PitchWidth}
		}
		return Bounds{MinX: 0, MaxX: halfwayLine, MinY: 0, MaxY: event.PitchWidth}
	default: // RoleMID
		return full
	}
}

// GoalPoint is the fixed keeper anchor near the team's own goal.
func GoalPoint(attacksHighX bool) event.Point {
	if attacksHighX {
		return event.Point{X: 5, Y: 34}
	}
	return event.Point{X: 100, Y: 34}
}
