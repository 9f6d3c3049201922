package models

import (
	"strings"
	"time"
)

// SubjectGeneral is the subject assigned to notes created without an explicit
// subject.
const SubjectGeneral = "General"

// OfflineIDPrefix marks note ids that were generated locally while the client
// was disconnected. The server assigns a durable id once the note syncs; until
// then the prefix tells the UI (and the sync engine) the note's provenance.
const OfflineIDPrefix = "offline-"

// Note is the durable study-note entity shared by the client and the server.
// It mirrors the remote table row. Client-side writes touch only Title,
// Content, Tags, Subject, Folder and the ownership key; the display attributes
// and the summary are produced elsewhere.
type Note struct {
	// ID is the server-assigned identifier for synced notes, or a locally
	// generated OfflineIDPrefix-ed uuid for notes still waiting in the outbox.
	ID string `json:"id"`

	// UserID is the ownership key. Supplied at write time; every note belongs
	// to exactly one user.
	UserID int64 `json:"user_id"`

	// Title must be non-empty before the note may be persisted anywhere.
	Title string `json:"title"`

	// Content may contain rich markup. Must be non-empty before persisting.
	Content string `json:"content"`

	// Tags keep their insertion order for display.
	Tags []string `json:"tags"`

	// Subject groups notes; defaults to SubjectGeneral.
	Subject string `json:"subject"`

	// SubjectColor and CustomColor are optional display attributes.
	SubjectColor *string `json:"subject_color,omitempty"`
	CustomColor  *string `json:"custom_color,omitempty"`

	// Summary is produced by an external collaborator, never written here.
	Summary *string `json:"summary,omitempty"`

	// Folder is a free-form label.
	Folder string `json:"folder"`

	// CreatedAt is client-assigned for offline notes, server-assigned
	// otherwise.
	CreatedAt time.Time `json:"created_at"`
}

// IsOffline reports whether the note carries a locally generated id, i.e. it
// has not been confirmed by the remote store yet.
func (n *Note) IsOffline() bool {
	return strings.HasPrefix(n.ID, OfflineIDPrefix)
}

// WordCount returns the whitespace-delimited token count of the note content.
func (n *Note) WordCount() int {
	return len(strings.Fields(n.Content))
}

// NoteUpdate carries a partial set of note fields for an update call.
// Nil pointers (and a nil Tags slice) mean "leave unchanged".
type NoteUpdate struct {
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Subject *string  `json:"subject,omitempty"`
	Folder  *string  `json:"folder,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}
