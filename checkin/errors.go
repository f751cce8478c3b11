package checkin

import "errors"

var (
	// ErrInvalidAnswer is returned when an answer is missing or outside 1-5.
	// Raised before any store access; an invalid submission never writes.
	ErrInvalidAnswer = errors.New("answer missing or out of range")

	// ErrNotAuthenticated is returned when no user id is available. The
	// engine refuses to query the store with a zero key.
	ErrNotAuthenticated = errors.New("not authenticated")
)
