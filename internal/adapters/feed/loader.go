// Package feed loads match event and roster exports from JSON files.
//
// Exports are expected in the feed coordinate frame (120x80). Events with
// no id get one assigned so the duplicate guard downstream stays usable.
package feed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/pitchlab/gaffer/internal/domain/event"
	"github.com/pitchlab/gaffer/internal/domain/squad"
)

// LoadEvents reads a JSON array of match events from path.
func LoadEvents(path string) ([]event.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events %s: %w", path, err)
	}

	var events []event.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("decode events %s: %w", path, err)
	}

	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
	}
	return events, nil
}

// LoadRoster reads a JSON array of players from path and derives the team
// pair from roster order; the first team listed attacks the high-x goal.
func LoadRoster(path string) ([]squad.Player, [2]string, error) {
	var teams [2]string

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, teams, fmt.Errorf("read roster %s: %w", path, err)
	}

	var players []squad.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, teams, fmt.Errorf("decode roster %s: %w", path, err)
	}
	if len(players) == 0 {
		return nil, teams, ErrEmptyRoster
	}

	seen := map[string]bool{}
	var order []string
	for _, p := range players {
		if p.ID == "" || p.Team == "" || !p.Role.Valid() {
			return nil, teams, fmt.Errorf("%w: %q", ErrPlayerFields, p.ID)
		}
		if !seen[p.Team] {
			seen[p.Team] = true
			order = append(order, p.Team)
		}
	}
	if len(order) != 2 {
		return nil, teams, fmt.Errorf("%w: got %d", ErrRosterTeams, len(order))
	}

	teams[0], teams[1] = order[0], order[1]
	return players, teams, nil
}
