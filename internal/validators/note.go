package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrinek/notesync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldOwner   = "owner"
	FieldSubject = "subject"
)

// NoteValidator validates notes and partial note updates.
type NoteValidator struct {
}

func NewNoteValidator() Validator {
	return &NoteValidator{}
}

func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Note:
		return v.validateNote(ctx, value, fields...)
	case *models.Note:
		return v.validateNote(ctx, *value, fields...)

	case models.NoteUpdate:
		return v.validateNoteUpdate(ctx, value)
	case *models.NoteUpdate:
		return v.validateNoteUpdate(ctx, *value)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *NoteValidator) validateNote(_ context.Context, note models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldContent}
	}

	for _, field := range fields {
		switch field {
		case FieldTitle:
			if strings.TrimSpace(note.Title) == "" {
				return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
			}
		case FieldContent:
			if strings.TrimSpace(note.Content) == "" {
				return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyContent)
			}
		case FieldOwner:
			if note.UserID <= 0 {
				return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidOwner)
			}
		case FieldSubject:
			if strings.TrimSpace(note.Subject) == "" {
				return fmt.Errorf("%w: %w", ErrValidation, ErrEmptySubject)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *NoteValidator) validateNoteUpdate(_ context.Context, update models.NoteUpdate) error {
	if update.Title == nil && update.Content == nil && update.Subject == nil &&
		update.Folder == nil && update.Tags == nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNoUpdateField)
	}

	// A partial update may leave title or content untouched, but it must not
	// blank them out.
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyContent)
	}

	return nil
}
