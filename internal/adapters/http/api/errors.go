package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadMinute     = errors.New("minute must be an integer")
	ErrMissingPlayer = errors.New("missing player id")
)
