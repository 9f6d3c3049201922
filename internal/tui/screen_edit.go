// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrinek/notesync/internal/session"
	"github.com/andrinek/notesync/models"
)

func (m mainLoopModel) startEdit(note models.Note) (tea.Model, tea.Cmd) {
	if note.IsOffline() {
		m.status = "staged notes cannot be edited until they sync"
		return m, nil
	}

	subject := textinput.New()
	subject.Width = 40
	subject.SetValue(note.Subject)

	content := textarea.New()
	content.SetWidth(54)
	content.SetHeight(10)
	content.SetValue(note.Content)
	content.Focus()

	m.editNote = note
	m.editSubject = subject
	m.editArea = content
	m.editFocus = 1
	m.editSession = session.NewEditor(session.Config{
		Variant:  session.VariantDesktop,
		AutoSave: true,
		Note:     note,
		Save:     m.makeSaveFunc(note.ID),
		Notifier: m.services.Notifier,
	})
	m.mode = modeEdit

	return m, m.cmdEditTick()
}

func (m mainLoopModel) makeSaveFunc(noteID string) session.SaveFunc {
	return func(ctx context.Context, update models.NoteUpdate) error {
		return m.services.NoteService.UpdateNote(ctx, noteID, update)
	}
}

func (m mainLoopModel) cmdEditTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return editTickMsg(t)
	})
}

func (m mainLoopModel) closeEditSession() mainLoopModel {
	if m.editSession != nil {
		// Close never flushes: pending edits are dropped on purpose.
		m.editSession.Close()
		m.editSession = nil
	}
	m.mode = modeList
	return m
}

func (m mainLoopModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editSession == nil {
		m.mode = modeList
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			m = m.closeEditSession()
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m = m.closeEditSession()
			m.loading = true
			return m, m.cmdRefresh()
		case key.Matches(keyMsg, keys.save):
			sess := m.editSession
			ctx := m.ctx
			return m, func() tea.Msg {
				_ = sess.Save(ctx)
				return editTickMsg(time.Now())
			}
		case key.Matches(keyMsg, keys.lecture):
			sess := m.editSession
			ctx := m.ctx
			return m, func() tea.Msg {
				if sess.LectureMode() {
					sess.ExitLectureMode()
				} else {
					_ = sess.EnterLectureMode(ctx)
				}
				return editTickMsg(time.Now())
			}
		case key.Matches(keyMsg, keys.auto):
			sess := m.editSession
			ctx := m.ctx
			return m, func() tea.Msg {
				_ = sess.SetAutoSave(ctx, !sess.AutoSaveEnabled())
				return editTickMsg(time.Now())
			}
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
			if m.editFocus == 0 {
				m.editFocus = 1
				m.editSubject.Blur()
				m.editArea.Focus()
			} else {
				m.editFocus = 0
				m.editArea.Blur()
				m.editSubject.Focus()
			}
			return m, nil
		}
	}

	// Lecture mode is read-only; widget state must not drift from the
	// session snapshot.
	if m.editSession.LectureMode() {
		return m, nil
	}

	var cmd tea.Cmd
	if m.editFocus == 0 {
		m.editSubject, cmd = m.editSubject.Update(msg)
		m.editSession.SetSubject(m.ctx, m.editSubject.Value())
	} else {
		m.editArea, cmd = m.editArea.Update(msg)
		m.editSession.SetContent(m.ctx, m.editArea.Value())
	}

	return m, cmd
}

func (m mainLoopModel) viewEdit() string {
	sess := m.editSession
	if sess == nil {
		return renderPage("EDIT NOTE", "no open session", "esc: back")
	}

	out := m.connectionLine() + "\n"
	out += m.sessionStatusLine(sess, session.VariantDesktop) + "\n\n"
	out += "Subject  : [ " + m.editSubject.View() + " ]\n\n"
	out += m.editArea.View() + "\n"

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status) + "\n"
	}

	hotKeys := "ctrl+s: save │ ctrl+l: lecture mode │ ctrl+a: autosave │ tab: field │ esc: close"
	return renderPage("EDIT: "+fitText(m.editNote.Title, 40), strings.TrimRight(out, "\n"), hotKeys)
}

func (m mainLoopModel) sessionStatusLine(sess *session.Editor, variant session.Variant) string {
	parts := []string{sess.State().String(), fmt.Sprintf("%d words", sess.WordCount())}

	if sess.AutoSaveEnabled() {
		parts = append(parts, fmt.Sprintf("autosave %s", variant.Debounce()))
	} else {
		parts = append(parts, "autosave off")
	}

	if last := sess.LastSavedAt(); !last.IsZero() {
		parts = append(parts, "saved "+last.Format("15:04:05"))
	}

	line := strings.Join(parts, " │ ")
	if sess.LectureMode() {
		line += " │ " + offlineStyle.Render("LECTURE MODE — editing paused")
	}

	return helpStyle.Render(line)
}
