package tui

import (
	"time"

	"github.com/andrinek/notesync/models"
)

// statusMsg carries a short user-visible notice (sync progress, staged-write
// warnings) into the running program. The Notifier sends these.
type statusMsg struct {
	text string
}

// notesUpdatedMsg is pushed whenever the note collection changes, either
// after an explicit refresh or after a change-feed signal.
type notesUpdatedMsg struct {
	notes []models.Note
}

type refreshDoneMsg struct {
	err error
}

type createDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	subject string
	err     error
}

type noteDeletedMsg struct {
	err error
}

type copiedMsg struct{}

// editTickMsg drives periodic redraws of the editor status line while an
// autosave session is open.
type editTickMsg time.Time
