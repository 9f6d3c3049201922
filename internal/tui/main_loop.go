// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrinek/notesync/internal/connectivity"
	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/internal/session"
	"github.com/andrinek/notesync/models"
)

type uiMode int

const (
	modeList uiMode = iota
	modeDetail
	modeCreate
	modeEdit
	modeConfirmDelete
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	monitor  *connectivity.Monitor

	mode    uiMode
	notes   []models.Note
	idx     int
	loading bool
	status  string
	errMsg  string

	createInputs  []textinput.Model
	createFocus   int
	createArea    textarea.Model
	createSaving  bool
	createErr     string
	createSession *session.Editor
	createSaver   *draftSaver

	editNote    models.Note
	editSession *session.Editor
	editSubject textinput.Model
	editArea    textarea.Model
	editFocus   int

	confirmSubject string
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, monitor *connectivity.Monitor) mainLoopModel {
	return mainLoopModel{
		ctx:      ctx,
		services: services,
		monitor:  monitor,
		loading:  true,
		notes:    services.NoteService.Notes(),
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdRefresh()
}

func (m mainLoopModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.services.NoteService.Refresh(m.ctx)}
	}
}

func (m mainLoopModel) cmdCreate(note models.Note) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.NoteService.CreateNote(m.ctx, note)
		return createDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdDeleteNote(id string) tea.Cmd {
	return func() tea.Msg {
		return noteDeletedMsg{err: m.services.NoteService.DeleteNote(m.ctx, id)}
	}
}

func (m mainLoopModel) cmdDeleteSubject(subject string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{
			subject: subject,
			err:     m.services.NoteService.DeleteNotesForSubject(m.ctx, subject),
		}
	}
}

func (m mainLoopModel) current() (models.Note, bool) {
	if m.idx < 0 || m.idx >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[m.idx], true
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = msg.text
		return m, nil
	case notesUpdatedMsg:
		m.loading = false
		m.notes = msg.notes
		if m.idx >= len(m.notes) {
			m.idx = len(m.notes) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case refreshDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.notes = m.services.NoteService.Notes()
		return m, nil
	case createDoneMsg:
		m.createSaving = false
		if msg.err != nil {
			m.createErr = msg.err.Error()
			return m, nil
		}
		m = m.closeCreateSession()
		m.status = "note created"
		m.errMsg = ""
		return m, nil
	case deleteDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("deleted all notes in %q", msg.subject)
		m.errMsg = ""
		return m, nil
	case noteDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.mode = modeList
		m.status = "note deleted"
		m.errMsg = ""
		return m, nil
	case copiedMsg:
		m.status = "copied to clipboard"
		return m, nil
	case editTickMsg:
		if m.mode == modeEdit || m.mode == modeCreate {
			return m, m.cmdEditTick()
		}
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeEdit:
			return m.updateEdit(msg)
		}
		return m, nil
	}

	// The editor screens own ctrl+c so an open session is closed (without
	// flushing pending edits) before the program exits.
	if m.mode != modeEdit && m.mode != modeCreate && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeCreate:
		return m.updateCreate(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeDetail:
		return m.updateDetail(keyMsg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	}

	return m.updateList(keyMsg)
}

func (m mainLoopModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.notes)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.newNote):
		m.startCreate()
		return m, m.cmdEditTick()
	case key.Matches(keyMsg, keys.refresh):
		m.loading = true
		m.status = ""
		return m, m.cmdRefresh()
	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); !ok {
			m.status = "no notes"
			return m, nil
		}
		m.mode = modeDetail
	case key.Matches(keyMsg, keys.edit):
		note, ok := m.current()
		if !ok {
			m.status = "no notes"
			return m, nil
		}
		return m.startEdit(note)
	case key.Matches(keyMsg, keys.delete):
		note, ok := m.current()
		if !ok {
			m.status = "no notes"
			return m, nil
		}
		m.confirmSubject = note.Subject
		m.mode = modeConfirmDelete
	}

	return m, nil
}

func (m mainLoopModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		subject := m.confirmSubject
		m.confirmSubject = ""
		m.mode = modeList
		return m, m.cmdDeleteSubject(subject)
	case key.Matches(keyMsg, keys.no):
		m.confirmSubject = ""
		m.mode = modeList
	}
	return m, nil
}

func (m mainLoopModel) View() string {
	switch m.mode {
	case modeCreate:
		return m.viewCreate()
	case modeEdit:
		return m.viewEdit()
	case modeDetail:
		return m.viewDetail()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	}

	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	out := ""

	if m.loading {
		return renderPage("NOTES", "loading...", listHotKeys)
	}

	out += m.connectionLine() + "\n"

	if m.errMsg != "" {
		out += errorStyle.Render("error: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += statusStyle.Render(m.status) + "\n"
	}

	if len(m.notes) == 0 {
		out += "\nno notes yet — press n to create one\n"
	} else {
		out += "\n"
		out += "    │ Title                    │ Subject         │ Words\n"
		out += "────┼──────────────────────────┼─────────────────┼──────\n"
		for i, note := range m.notes {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}

			marker := " "
			if note.IsOffline() {
				marker = "±"
			}

			out += fmt.Sprintf(
				"%s %s │ %-24s │ %-15s │ %d\n",
				cursor,
				marker,
				fitText(note.Title, 24),
				fitText(note.Subject, 15),
				note.WordCount(),
			)
		}
	}

	return renderPage("NOTES", strings.TrimRight(out, "\n"), listHotKeys)
}

const listHotKeys = "n: new │ enter: open │ e: edit │ r: refresh │ ctrl+d: delete subject │ ↑/↓: nav │ q: quit"

func (m mainLoopModel) viewConfirmDelete() string {
	body := fmt.Sprintf("Delete ALL notes in subject %q?\n\nThis cannot be undone.", m.confirmSubject)
	return renderPage("DELETE SUBJECT", confirmStyle.Render(body), "y: delete │ n/esc: cancel")
}

func (m mainLoopModel) connectionLine() string {
	if m.monitor != nil && !m.monitor.Online() {
		return offlineStyle.Render("OFFLINE — new notes are staged locally")
	}
	return statusStyle.Render("ONLINE")
}

func (m mainLoopModel) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: fmt.Sprintf("copy failed: %v", err)}
		}
		return copiedMsg{}
	}
}
