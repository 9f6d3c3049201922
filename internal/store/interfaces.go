package store

import (
	"context"

	"github.com/andrinek/notesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository is the server-side store for the notes table.
type NoteRepository interface {
	GetAll(ctx context.Context, ownerID int64) ([]models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Update(ctx context.Context, ownerID int64, id string, update models.NoteUpdate) error
	Delete(ctx context.Context, ownerID int64, id string) error
	DeleteBySubject(ctx context.Context, ownerID int64, subject string) error
}
