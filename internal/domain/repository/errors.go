package repository

import "errors"

var (
	// ErrUpstreamUnavailable is returned when the datastore cannot be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
