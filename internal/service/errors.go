package service

import "errors"

var (
	// ErrOffline is returned by operations that cannot be staged locally and
	// therefore refuse to run without connectivity (bulk deletions).
	ErrOffline = errors.New("client is offline")

	// ErrNotStarted is returned when a note service operation runs before
	// Start has wired the change feed and owner.
	ErrNotStarted = errors.New("note service is not started")
)
