package entity

import "errors"

// Domain error sentinels, matched with errors.Is at the delivery layer.
var (
	// ErrUpstreamUnavailable search or LLM API did not succeed
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrStorage cache or conversation log read/write failed
	ErrStorage = errors.New("storage failure")

	// ErrInvalidInput request is missing a required value
	ErrInvalidInput = errors.New("invalid input")
)
