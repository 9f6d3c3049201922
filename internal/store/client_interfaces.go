package store

import (
	"context"

	"github.com/andrinek/notesync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// OutboxRepository is the durable local queue of notes written while offline.
// The queue is append-and-drain: entries are never updated in place, and the
// sync engine clears the whole queue after a drain pass regardless of
// per-entry outcome.
type OutboxRepository interface {
	// Enqueue stages note for later remote persistence. It assigns a locally
	// generated offline id, stamps the queue time and fills defaults
	// (subject, created_at) before inserting. The constructed entry is
	// returned even when the insert fails so callers can degrade to
	// in-memory behaviour.
	Enqueue(ctx context.Context, ownerID int64, note models.Note) (models.OutboxEntry, error)

	// List returns the queued entries for ownerID in enqueue order.
	List(ctx context.Context, ownerID int64) ([]models.OutboxEntry, error)

	// Clear removes every queued entry for ownerID.
	Clear(ctx context.Context, ownerID int64) error
}

// NoteCacheRepository stores the last note list fetched from the remote so
// the client has something to show while disconnected.
type NoteCacheRepository interface {
	// ReplaceAll atomically swaps the cached list for ownerID.
	ReplaceAll(ctx context.Context, ownerID int64, notes []models.Note) error

	// GetAll returns the cached notes for ownerID ordered by created_at
	// descending.
	GetAll(ctx context.Context, ownerID int64) ([]models.Note, error)
}
