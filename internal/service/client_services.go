package service

import (
	"github.com/andrinek/notesync/internal/adapter"
	"github.com/andrinek/notesync/internal/connectivity"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/store"
)

type ClientServices struct {
	Notifier    Notifier
	SyncService ClientSyncService
	NoteService ClientNoteService
}

func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteNoteStore,
	feed adapter.ChangeFeed,
	monitor *connectivity.Monitor,
	notifier Notifier,
	log *logger.Logger,
) *ClientServices {
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	return &ClientServices{
		Notifier:    notifier,
		SyncService: NewClientSyncService(storages.Outbox, remote, notifier, log),
		NoteService: NewClientNoteService(remote, storages, feed, monitor, notifier, log),
	}
}
