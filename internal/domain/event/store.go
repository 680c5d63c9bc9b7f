package event

import (
	"fmt"
	"sort"
)

// Valid match-relative minute range.
const (
	MinMinute = 1
	MaxMinute = 120
)

// Store is a read-only, queryable view of one match's events.
type Store interface {
	// All returns every event in feed order.
	All() []Event

	// ByType returns events of one type, in feed order.
	ByType(t Type) []Event

	// ByTypeUpTo returns events of one type with Minute <= minute.
	ByTypeUpTo(t Type, minute int) []Event

	// UpTo returns all events with Minute <= minute.
	UpTo(minute int) []Event

	// Teams returns both team names; index 0 attacks toward the high-x goal.
	Teams() [2]string

	// Opponent resolves the other team, or an error for an unknown name.
	Opponent(team string) (string, error)

	// Len reports the number of stored events.
	Len() int
}

// InMemoryStore implements Store over a finite, already-fetched feed.
// Events are immutable once ingested.
type InMemoryStore struct {
	events []Event
	byType map[Type][]Event
	teams  [2]string
	seen   map[string]struct{}

	duplicates int
}

// NewInMemoryStore ingests the feed and builds the type index. Events with
// an ID already ingested are dropped so replayed feed chunks stay
// idempotent. Returns an error when the feed is empty, carries an event
// without an ID, an out-of-range minute, or does not resolve to exactly
// two teams. The teams slice fixes attacking orientation: teams[0] attacks
// toward the high-x goal.
func NewInMemoryStore(events []Event, teams [2]string) (*InMemoryStore, error) {
	if len(events) == 0 {
		return nil, ErrEmptyMatch
	}
	if teams[0] == "" || teams[1] == "" || teams[0] == teams[1] {
		return nil, ErrTwoTeamsOnly
	}

	s := &InMemoryStore{
		byType: make(map[Type][]Event),
		teams:  teams,
		seen:   make(map[string]struct{}, len(events)),
	}

	for i, e := range events {
		if e.ID == "" {
			return nil, fmt.Errorf("event %d: %w", i, ErrMissingID)
		}
		if e.Minute < 0 || e.Minute > MaxMinute {
			return nil, fmt.Errorf("event %s: minute %d: %w", e.ID, e.Minute, ErrMinuteRange)
		}
		if e.Team != "" && e.Team != teams[0] && e.Team != teams[1] {
			return nil, fmt.Errorf("event %s: team %q: %w", e.ID, e.Team, ErrUnknownTeam)
		}
		if _, dup := s.seen[e.ID]; dup {
			s.duplicates++
			continue
		}
		s.seen[e.ID] = struct{}{}
		s.events = append(s.events, e)
		s.byType[e.Type] = append(s.byType[e.Type], e)
	}

	if len(s.events) == 0 {
		return nil, ErrEmptyMatch
	}

	// Keep feed order stable even if the feed itself arrived unsorted by
	// minute; queries below cut on Minute, not position.
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].Minute < s.events[j].Minute
	})
	for t := range s.byType {
		evs := s.byType[t]
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].Minute < evs[j].Minute
		})
	}

	return s, nil
}

// All returns every event in minute order.
func (s *InMemoryStore) All() []Event {
	return s.events
}

// ByType returns events of one type.
func (s *InMemoryStore) ByType(t Type) []Event {
	return s.byType[t]
}

// ByTypeUpTo returns events of one type with Minute <= minute.
func (s *InMemoryStore) ByTypeUpTo(t Type, minute int) []Event {
	return cutByMinute(s.byType[t], minute)
}

// UpTo returns all events with Minute <= minute.
func (s *InMemoryStore) UpTo(minute int) []Event {
	return cutByMinute(s.events, minute)
}

// Teams returns both team names.
func (s *InMemoryStore) Teams() [2]string {
	return s.teams
}

// Opponent resolves the other team.
func (s *InMemoryStore) Opponent(team string) (string, error) {
	switch team {
	case s.teams[0]:
		return s.teams[1], nil
	case s.teams[1]:
		return s.teams[0], nil
	default:
		return "", fmt.Errorf("%q: %w", team, ErrUnknownTeam)
	}
}

// Len reports the number of stored events.
func (s *InMemoryStore) Len() int {
	return len(s.events)
}

// Duplicates reports how many feed records were dropped on ingest.
func (s *InMemoryStore) Duplicates() int {
	return s.duplicates
}

// ValidateMinute rejects minute requests outside [MinMinute, MaxMinute].
func ValidateMinute(minute int) error {
	if minute < MinMinute || minute > MaxMinute {
		return fmt.Errorf("minute %d: %w", minute, ErrMinuteRange)
	}
	return nil
}

// cutByMinute returns the prefix of evs (sorted by minute) with
// Minute <= minute.
func cutByMinute(evs []Event, minute int) []Event {
	n := sort.Search(len(evs), func(i int) bool {
		return evs[i].Minute > minute
	})
	return evs[:n]
}
