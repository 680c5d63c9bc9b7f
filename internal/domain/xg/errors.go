package xg

import "errors"

// Sentinel kinds for model fitting.
var (
	ErrNoShots          = errors.New("no shots to fit on")
	ErrDegenerateLabels = errors.New("labels are single-class")
	ErrNotFitted        = errors.New("model not fitted")
	ErrFeatureWidth     = errors.New("inconsistent feature width")
)
