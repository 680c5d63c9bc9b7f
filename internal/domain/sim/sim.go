// Package sim runs the continuous player-position simulator: event-driven
// target snapping blended with smoothed random motion inside role-specific
// bounds. Ticks are discrete and externally driven; the caller decides
// cadence.
package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/squad"
)

// Default motion configuration constants.
const (
	defaultSmoothing        = 0.3 // weight toward the target per tick
	defaultAggressiveChance = 0.2
	defaultRandomSeed       = 42

	keeperJitter     = 0.2
	normalJitter     = 0.5
	aggressiveJitter = 2.0
)

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithSmoothing sets the per-tick blend weight toward the target.
func WithSmoothing(f float64) Option {
	return func(s *Simulator) {
		if f > 0 && f <= 1 {
			s.smoothing = f
		}
	}
}

// WithAggressiveChance sets the probability of a burst displacement for
// outfield players.
func WithAggressiveChance(p float64) Option {
	return func(s *Simulator) {
		if p >= 0 && p <= 1 {
			s.aggressiveChance = p
		}
	}
}

// WithRand injects the random source so tests can force both motion
// branches deterministically.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// State is the mutable per-player position record. Owned exclusively by
// the simulator; a player persists for the lifetime of the session.
type State struct {
	Player   squad.Player `json:"player"`
	Position event.Point  `json:"position"` // pitch frame
}

// Simulator advances every tracked player by one step per Tick call.
// Updates are serialized internally so concurrent tick and read callers
// keep the single-writer discipline.
type Simulator struct {
	mu      sync.Mutex
	states  map[string]*State
	order   []string // stable iteration order over players
	bounds  map[string]squad.Bounds
	events  []event.Event
	highX   string // team attacking toward high x
	tick    int
	rng     *rand.Rand
	smoothing        float64
	aggressiveChance float64
}

// New builds a simulator for the roster, fed by the match's event sequence.
// teams[0] attacks toward the high-x goal.
func New(players []squad.Player, store event.Store, opts ...Option) (*Simulator, error) {
	if len(players) == 0 {
		return nil, ErrEmptyRoster
	}

	s := &Simulator{
		states:           make(map[string]*State, len(players)),
		bounds:           make(map[string]squad.Bounds, len(players)),
		events:           store.All(),
		highX:            store.Teams()[0],
		rng:              rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // reproducible motion
		smoothing:        defaultSmoothing,
		aggressiveChance: defaultAggressiveChance,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, p := range players {
		if !p.Role.Valid() {
			return nil, fmt.Errorf("player %s: role %q: %w", p.ID, p.Role, ErrInvalidRole)
		}
		b := squad.BoundsFor(p.Role, p.Team == s.highX)
		s.states[p.ID] = &State{Player: p, Position: b.Clip(p.Start)}
		s.bounds[p.ID] = b
		s.order = append(s.order, p.ID)
	}
	sort.Strings(s.order)

	return s, nil
}

// Tick advances every player by one step. The current match event snaps
// its actor (and a completed pass's recipient) toward the event location;
// everyone else drifts with smoothed random motion. All positions are
// clipped to role bounds before committing.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.events[s.tick%len(s.events)]
	s.tick++

	targeted := make(map[string]event.Point, 2)
	if e.Player != "" && e.Location != nil {
		if _, ok := s.states[e.Player]; ok {
			targeted[e.Player] = e.Location.ToPitch()
		}
	}
	if e.Type == event.TypePass && e.Recipient != "" && e.EndLocation != nil && e.Outcome == "" {
		if _, ok := s.states[e.Recipient]; ok {
			targeted[e.Recipient] = e.EndLocation.ToPitch()
		}
	}

	for _, id := range s.order {
		st := s.states[id]
		target, snapped := targeted[id]
		if !snapped {
			target = s.drift(st)
		}
		st.Position = s.bounds[id].Clip(s.blend(st.Position, target))
	}
}

// drift picks a random displacement target for a player not referenced by
// the current event: keepers get small jitter, outfield players a moderate
// one with an occasional aggressive burst.
func (s *Simulator) drift(st *State) event.Point {
	limit := normalJitter
	switch {
	case st.Player.Role == squad.RoleGK:
		limit = keeperJitter
	case s.rng.Float64() < s.aggressiveChance:
		limit = aggressiveJitter
	}
	return event.Point{
		X: st.Position.X + s.uniform(limit),
		Y: st.Position.Y + s.uniform(limit),
	}
}

// blend applies exponential smoothing toward the target; per-tick
// displacement stays bounded because the weight is fixed.
func (s *Simulator) blend(pos, target event.Point) event.Point {
	return event.Point{
		X: pos.X + s.smoothing*(target.X-pos.X),
		Y: pos.Y + s.smoothing*(target.Y-pos.Y),
	}
}

// uniform draws from [-limit, limit].
func (s *Simulator) uniform(limit float64) float64 {
	return (s.rng.Float64()*2 - 1) * limit
}

// Position returns a player's current pitch-frame position.
func (s *Simulator) Position(id string) (event.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return event.Point{}, fmt.Errorf("%q: %w", id, ErrUnknownPlayer)
	}
	return st.Position, nil
}

// Lookup returns a player's full state.
func (s *Simulator) Lookup(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return State{}, fmt.Errorf("%q: %w", id, ErrUnknownPlayer)
	}
	return *st, nil
}

// States returns a snapshot of every player's state in stable order.
func (s *Simulator) States() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]State, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.states[id])
	}
	return out
}

// CurrentMinute reports the minute of the most recently applied event, or
// the match start before the first tick. Kickoff events carry minute 0 in
// the feed; the reported minute never drops below MinMinute so the value
// is always a valid snapshot minute.
func (s *Simulator) CurrentMinute() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tick == 0 || len(s.events) == 0 {
		return event.MinMinute
	}
	m := s.events[(s.tick-1)%len(s.events)].Minute
	if m < event.MinMinute {
		return event.MinMinute
	}
	return m
}

// TickCount reports how many ticks have run.
func (s *Simulator) TickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}
