package sim

import "errors"

// Sentinel kinds for simulator errors.
var (
	ErrUnknownPlayer = errors.New("unknown player")
	ErrEmptyRoster   = errors.New("empty roster")
	ErrInvalidRole   = errors.New("invalid role")
)
