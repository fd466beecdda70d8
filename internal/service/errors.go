package service

import "errors"

var (
	// ErrUnknownLeague is returned for league tags outside the supported set
	ErrUnknownLeague = errors.New("unknown league")
	// ErrUpstreamUnavailable is returned when no upstream data could be fetched
	ErrUpstreamUnavailable = errors.New("data unavailable")
)
