package service

import "errors"

// Sentinel kinds for service lifecycle errors.
var (
	ErrNotStarted = errors.New("service has not been started")
)
