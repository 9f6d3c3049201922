package service

import (
	"context"

	"github.com/andrinek/notesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// NoteService is the server-side application service behind the HTTP API.
type NoteService interface {
	GetAll(ctx context.Context, ownerID int64) ([]models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Update(ctx context.Context, ownerID int64, id string, update models.NoteUpdate) error
	Delete(ctx context.Context, ownerID int64, id string) error
	DeleteBySubject(ctx context.Context, ownerID int64, subject string) error
}

// ChangePublisher signals note-table mutations to subscribed clients.
type ChangePublisher interface {
	Publish(ownerID int64) error
}
