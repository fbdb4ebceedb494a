package model

import "errors"

// Error kinds surfaced to callers. Each maps to a distinct machine-readable
// failure response; they are never collapsed into a generic error.
var (
	// ErrNotFound means a session or catalog entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExpired means a session is past its TTL.
	ErrExpired = errors.New("session expired")
	// ErrUnauthorized means the shared secret is missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPaused means the maintenance gate is active.
	ErrPaused = errors.New("service paused")
	// ErrNoMatch means no catalog entry satisfies the draw filters.
	ErrNoMatch = errors.New("no matching entry")
	// ErrUnreadable means a single file's tags could not be parsed. It is
	// recovered locally by the tag extractor and never aborts a scan.
	ErrUnreadable = errors.New("unreadable tags")
)
