package models

import "time"

// OutboxEntry is a note payload awaiting remote persistence. Entries are
// created when a write is attempted while offline and consumed by the sync
// engine's drain pass.
type OutboxEntry struct {
	// Note is the staged payload. Its ID carries the OfflineIDPrefix.
	Note Note `json:"note"`

	// Offline marks the entry's provenance for display purposes.
	Offline bool `json:"offline"`

	// OwnerID is the user the note will be created for on sync.
	OwnerID int64 `json:"owner_id"`

	// QueuedAt is the client timestamp of the enqueue.
	QueuedAt time.Time `json:"queued_at"`
}
