package service

import (
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/store"
)

type Services struct {
	NoteService NoteService
}

func NewServices(storages *store.Storages, publisher ChangePublisher, log *logger.Logger) *Services {
	return &Services{
		NoteService: NewNoteService(storages.Notes, publisher, log),
	}
}
