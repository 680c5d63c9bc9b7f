package event

import "errors"

// Sentinel kinds for store errors.
var (
	ErrMinuteRange  = errors.New("minute out of range")
	ErrMissingID    = errors.New("event missing id")
	ErrUnknownTeam  = errors.New("unknown team")
	ErrEmptyMatch   = errors.New("match has no events")
	ErrTwoTeamsOnly = errors.New("match must have exactly two teams")
)
