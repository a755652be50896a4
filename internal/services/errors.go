package services

import "errors"

var (
	// ErrInvalidInput is returned for malformed profile or job records,
	// detected before any encoding work happens.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEncodingUnavailable is returned when the embedding backend cannot be
	// reached. It fails the whole ranking call: a silently-zeroed score would
	// be indistinguishable from a legitimate low-similarity result.
	ErrEncodingUnavailable = errors.New("embedding backend unavailable")
)
