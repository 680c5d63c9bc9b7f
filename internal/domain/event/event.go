// Package event defines the match event model and the in-memory store
// the rest of the engine reads from. Events arrive in the feed's 120x80
// coordinate frame; pitch-frame helpers convert to the 105x68 frame used
// for positioning and zone computations.
package event

import "math"

// Pitch dimensions for the positioning frame.
const (
	PitchLength = 105.0
	PitchWidth  = 68.0

	// Feed frame dimensions (StatsBomb-style).
	FeedLength = 120.0
	FeedWidth  = 80.0
)

// Goal center in the feed frame; all shots are normalized to attack this goal.
const (
	goalX = FeedLength
	goalY = FeedWidth / 2
)

// Type classifies a match event.
type Type string

// Event types the engine consumes. The feed may carry others; they still
// count toward possession but drive no component directly.
const (
	TypeShot     Type = "Shot"
	TypePass     Type = "Pass"
	TypePressure Type = "Pressure"
	TypeDuel     Type = "Duel"
	TypeCarry    Type = "Carry"
)

// Shot subtype names used by the set-piece rule.
const (
	ShotTypeOpenPlay = "Open Play"
	ShotTypeFreeKick = "Free Kick"
	ShotTypeCorner   = "Corner"
)

// Outcome values with special meaning. An empty Outcome means the feed
// recorded none, which for passes means the pass completed.
const (
	OutcomeGoal = "Goal"
)

// Point is a coordinate pair in either frame; the holder knows which.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToPitch converts a feed-frame point to the 105x68 pitch frame.
func (p Point) ToPitch() Point {
	return Point{
		X: p.X / FeedLength * PitchLength,
		Y: p.Y / FeedWidth * PitchWidth,
	}
}

// DistanceTo returns the euclidean distance to q in the same frame.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// FreezeEntry is one player captured in a shot freeze frame.
type FreezeEntry struct {
	Location Point `json:"location"`
	Teammate bool  `json:"teammate"`
	Keeper   bool  `json:"keeper"`
}

// Event is one immutable record from the match feed.
type Event struct {
	ID             string        `json:"id"`
	Minute         int           `json:"minute"`
	Type           Type          `json:"type"`
	Team           string        `json:"team"`
	Player         string        `json:"player,omitempty"`
	Recipient      string        `json:"recipient,omitempty"` // pass recipient
	Location       *Point        `json:"location,omitempty"`  // feed frame
	EndLocation    *Point        `json:"end_location,omitempty"`
	Outcome        string        `json:"outcome,omitempty"`
	PossessionTeam string        `json:"possession_team,omitempty"`
	BodyPart       string        `json:"body_part,omitempty"`
	ShotType       string        `json:"shot_type,omitempty"`
	Technique      string        `json:"technique,omitempty"`
	UnderPressure  bool          `json:"under_pressure,omitempty"`
	KeyPass        bool          `json:"key_pass,omitempty"`
	FreezeFrame    []FreezeEntry `json:"freeze_frame,omitempty"`
}

// IsGoal reports whether a shot event ended in a goal.
func (e Event) IsGoal() bool {
	return e.Type == TypeShot && e.Outcome == OutcomeGoal
}

// ShotGeometry returns the distance to the goal center and the absolute
// angle (degrees) between the shot location and the goal line, both in the
// feed frame. A shot straight in front of goal has angle 0.
func ShotGeometry(loc Point) (distance, angle float64) {
	dx := goalX - loc.X
	dy := goalY - loc.Y
	distance = math.Hypot(dx, dy)
	angle = math.Abs(math.Atan2(dy, dx)) * 180 / math.Pi
	return distance, angle
}
