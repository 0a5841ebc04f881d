package service

import "errors"

// Sentinel kinds for service errors. Their text is what API clients see,
// with the first letter capitalized.
var (
	ErrNoEvents   = errors.New("could not find any upcoming events")
	ErrNoFights   = errors.New("no fights found for this event")
	ErrFetchEvent = errors.New("failed to fetch event data")
	ErrInvalidID  = errors.New("invalid event id")
)
