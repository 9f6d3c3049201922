package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrinek/notesync/models"
)

func TestNoteValidator_Validate(t *testing.T) {
	v := NewNoteValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		note    models.Note
		fields  []string
		wantErr error
	}{
		{
			name: "valid note",
			note: models.Note{Title: "Biology", Content: "Mitochondria"},
		},
		{
			name:    "empty title",
			note:    models.Note{Content: "text"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			note:    models.Note{Title: "   ", Content: "text"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty content",
			note:    models.Note{Title: "Biology"},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "owner field scoped",
			note:    models.Note{Title: "t", Content: "c"},
			fields:  []string{FieldOwner},
			wantErr: ErrInvalidOwner,
		},
		{
			name:   "owner field scoped valid",
			note:   models.Note{UserID: 3},
			fields: []string{FieldOwner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.note, tt.fields...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNoteValidator_ValidateUpdate(t *testing.T) {
	v := NewNoteValidator()
	ctx := context.Background()

	title := "new title"
	empty := " "

	require.NoError(t, v.Validate(ctx, models.NoteUpdate{Title: &title}))

	err := v.Validate(ctx, models.NoteUpdate{})
	assert.ErrorIs(t, err, ErrNoUpdateField)

	err = v.Validate(ctx, models.NoteUpdate{Title: &empty})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	err = v.Validate(ctx, models.NoteUpdate{Content: &empty})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestNoteValidator_UnsupportedType(t *testing.T) {
	v := NewNoteValidator()

	err := v.Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
