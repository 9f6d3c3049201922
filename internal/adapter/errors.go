package adapter

import "errors"

// Sentinel errors mapped from transport-level failures. Callers match them
// with errors.Is; the concrete HTTP status or network error is wrapped
// underneath.
var (
	// ErrRemoteUnavailable is returned when the notes server cannot be
	// reached or answers with a server-side failure.
	ErrRemoteUnavailable = errors.New("remote note store unavailable")

	// ErrPermissionDenied is returned when the server rejects the caller's
	// authorization (401 or 403).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when the target note does not exist within the
	// caller's ownership scope.
	ErrNotFound = errors.New("note not found")
)
