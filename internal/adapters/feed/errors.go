package feed

import "errors"

// Sentinel kinds for feed loading errors.
var (
	ErrEmptyRoster  = errors.New("roster file holds no players")
	ErrRosterTeams  = errors.New("roster must list exactly two teams")
	ErrPlayerFields = errors.New("player entry is missing id, team or role")
)
