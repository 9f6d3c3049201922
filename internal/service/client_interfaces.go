package service

import (
	"context"

	"github.com/andrinek/notesync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Notifier delivers short user-visible notices (sync progress, staged-write
// warnings). The TUI installs its own implementation; everything else falls
// back to the log-backed one.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// ClientSyncService drains the offline outbox into the remote store once
// connectivity returns.
type ClientSyncService interface {
	// Drain snapshots the outbox, attempts a remote create per entry and
	// unconditionally clears the queue afterwards, so a poison entry can
	// never wedge the client in a retry loop. The returned report carries
	// the total and the success count.
	Drain(ctx context.Context, ownerID int64) (models.SyncReport, error)
}

// ClientNoteService is the single in-memory source of truth the UI reads
// notes from.
type ClientNoteService interface {
	// Start subscribes to the remote change feed for ownerID and performs an
	// initial refresh. Must be called exactly once before other operations.
	Start(ctx context.Context, ownerID int64) error

	// Stop unsubscribes from the change feed.
	Stop()

	// Notes returns the current in-memory collection.
	Notes() []models.Note

	// Refresh re-reads the collection. While online it fetches from the
	// remote and refreshes the local cache; while offline it serves the
	// outbox queue ahead of the cached list.
	Refresh(ctx context.Context) error

	// CreateNote validates the note, then routes it to the remote store
	// (online) or the outbox (offline). A failed online create is NOT
	// demoted to the queue.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// UpdateNote applies a partial update to a synced note. Requires
	// connectivity; edits are not staged.
	UpdateNote(ctx context.Context, id string, update models.NoteUpdate) error

	// DeleteNote removes a single synced note. Online-only; deletions are
	// never staged.
	DeleteNote(ctx context.Context, id string) error

	// DeleteNotesForSubject bulk-removes a subject's notes. Blocked entirely
	// while offline: deletions are never staged.
	DeleteNotesForSubject(ctx context.Context, subject string) error

	// OnUpdate registers the callback invoked with the new collection after
	// every refresh or optimistic mutation.
	OnUpdate(fn func([]models.Note))
}
