package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")

	// ErrNoteIDRequired is returned when a note route is called without the
	// {id} path parameter.
	ErrNoteIDRequired = errors.New("note id is required")

	// ErrSubjectRequired is returned by the bulk delete endpoint when the
	// "subject" query parameter is missing or empty.
	ErrSubjectRequired = errors.New("subject query parameter is required")
)
