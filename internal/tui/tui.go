// Package tui implements the interactive terminal client: a note list with
// a detail view, a creation form, and an autosaving editor backed by
// [session.Editor]. Service notices (sync progress, staged-write warnings)
// arrive through [Notifier] and surface on the status line.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrinek/notesync/internal/connectivity"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/models"
)

type TUI struct {
	services *service.ClientServices
	monitor  *connectivity.Monitor
	notifier *Notifier

	logger *logger.Logger
}

func New(services *service.ClientServices, monitor *connectivity.Monitor, notifier *Notifier, log *logger.Logger) (*TUI, error) {
	return &TUI{
		services: services,
		monitor:  monitor,
		notifier: notifier,
		logger:   log,
	}, nil
}

// Run blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newMainLoopModel(ctx, t.services, t.monitor)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if t.notifier != nil {
		t.notifier.Attach(program)
	}
	t.services.NoteService.OnUpdate(func(notes []models.Note) {
		program.Send(notesUpdatedMsg{notes: notes})
	})

	_, err := program.Run()
	return err
}
