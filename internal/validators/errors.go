package validators

import "errors"

var (
	// ErrValidation is the root of the validation error taxonomy. Every
	// validation failure wraps it, so callers can match the whole family
	// with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("note validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyContent  = errors.New("content is required")
	ErrInvalidOwner  = errors.New("invalid owner id")
	ErrEmptySubject  = errors.New("subject is required")
	ErrNoUpdateField = errors.New("at least one field must be provided for update")
)
