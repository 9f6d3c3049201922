package tui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/internal/session"
	"github.com/andrinek/notesync/models"
)

// draftSaver backs the new-note dialog session. The first save creates the
// note; once the store has confirmed an id, later saves become updates to it.
// A draft staged offline keeps its local id and cannot be updated until it
// syncs, so follow-up saves fail and the session stays dirty.
type draftSaver struct {
	notes service.ClientNoteService

	mu     sync.Mutex
	title  string
	noteID string
}

func (s *draftSaver) setTitle(title string) {
	s.mu.Lock()
	s.title = strings.TrimSpace(title)
	s.mu.Unlock()
}

func (s *draftSaver) save(ctx context.Context, update models.NoteUpdate) error {
	s.mu.Lock()
	title, noteID := s.title, s.noteID
	s.mu.Unlock()

	if noteID != "" {
		if strings.HasPrefix(noteID, models.OfflineIDPrefix) {
			return errors.New("staged note cannot be updated until it syncs")
		}
		return s.notes.UpdateNote(ctx, noteID, update)
	}

	note := models.Note{Title: title}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Subject != nil {
		note.Subject = strings.TrimSpace(*update.Subject)
	}

	created, err := s.notes.CreateNote(ctx, note)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.noteID = created.ID
	s.mu.Unlock()
	return nil
}

func (m *mainLoopModel) startCreate() {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Width = 40
	title.Focus()

	subject := textinput.New()
	subject.Placeholder = "Subject (empty = General)"
	subject.Width = 40

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.SetWidth(54)
	content.SetHeight(8)

	m.createInputs = []textinput.Model{title, subject}
	m.createFocus = 0
	m.createArea = content
	m.createSaving = false
	m.createErr = ""

	// Autosave starts disabled and is switched on once the draft has both a
	// title and content; an empty draft must never be auto-created.
	m.createSaver = &draftSaver{notes: m.services.NoteService}
	m.createSession = session.NewEditor(session.Config{
		Variant:  session.VariantDialog,
		AutoSave: false,
		Save:     m.createSaver.save,
		Notifier: m.services.Notifier,
	})
	m.mode = modeCreate
}

// createFocus cycles title (0), subject (1), content (2).
func (m *mainLoopModel) setCreateFocus(focus int) {
	m.createFocus = (focus + 3) % 3

	for i := range m.createInputs {
		if i == m.createFocus {
			m.createInputs[i].Focus()
		} else {
			m.createInputs[i].Blur()
		}
	}
	if m.createFocus == 2 {
		m.createArea.Focus()
	} else {
		m.createArea.Blur()
	}
}

func (m mainLoopModel) closeCreateSession() mainLoopModel {
	if m.createSession != nil {
		// Close never flushes: an unsaved draft is dropped on purpose. A note
		// the dialog autosave already created stays created.
		m.createSession.Close()
		m.createSession = nil
		m.createSaver = nil
	}
	m.mode = modeList
	return m
}

// draftViable reports whether the dialog holds enough of a note to persist.
func (m mainLoopModel) draftViable() bool {
	return strings.TrimSpace(m.createInputs[0].Value()) != "" &&
		strings.TrimSpace(m.createArea.Value()) != ""
}

// cmdGateCreateAutoSave aligns the session's autosave flag with draft
// viability. Runs as a command: enabling autosave on a dirty session issues
// an immediate save, which must not block the update loop.
func (m mainLoopModel) cmdGateCreateAutoSave() tea.Cmd {
	sess := m.createSession
	ctx := m.ctx
	viable := m.draftViable()
	if sess == nil || sess.AutoSaveEnabled() == viable {
		return nil
	}
	return func() tea.Msg {
		_ = sess.SetAutoSave(ctx, viable)
		return nil
	}
}

func (m mainLoopModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.createSession == nil {
		m.mode = modeList
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			m = m.closeCreateSession()
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m = m.closeCreateSession()
			m.loading = true
			return m, m.cmdRefresh()
		case key.Matches(keyMsg, keys.tab):
			m.setCreateFocus(m.createFocus + 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setCreateFocus(m.createFocus - 1)
			return m, nil
		case key.Matches(keyMsg, keys.save):
			if m.createSaving {
				return m, nil
			}

			if strings.TrimSpace(m.createInputs[0].Value()) == "" {
				m.createErr = "title is required"
				return m, nil
			}
			if strings.TrimSpace(m.createArea.Value()) == "" {
				m.createErr = "content is required"
				return m, nil
			}

			m.createErr = ""
			m.createSaving = true
			sess := m.createSession
			ctx := m.ctx
			return m, func() tea.Msg {
				return createDoneMsg{err: sess.Save(ctx)}
			}
		}
	}

	var cmd tea.Cmd
	if m.createFocus == 2 {
		m.createArea, cmd = m.createArea.Update(msg)
		m.createSession.SetContent(m.ctx, m.createArea.Value())
	} else {
		m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
		switch m.createFocus {
		case 0:
			m.createSaver.setTitle(m.createInputs[0].Value())
		case 1:
			m.createSession.SetSubject(m.ctx, m.createInputs[1].Value())
		}
	}

	return m, tea.Batch(cmd, m.cmdGateCreateAutoSave())
}

func (m mainLoopModel) viewCreate() string {
	out := m.connectionLine() + "\n"
	if m.createSession != nil {
		out += m.sessionStatusLine(m.createSession, session.VariantDialog) + "\n"
	}
	out += "\n"
	out += "Title    : [ " + m.createInputs[0].View() + " ]\n"
	out += "Subject  : [ " + m.createInputs[1].View() + " ]\n\n"
	out += "Content:\n"
	out += m.createArea.View() + "\n"

	if m.createSaving {
		out += "\nsaving...\n"
	}
	if m.createErr != "" {
		out += "\n" + errorStyle.Render("error: "+m.createErr) + "\n"
	}

	return renderPage("NEW NOTE", strings.TrimRight(out, "\n"), "tab: next field │ ctrl+s: save │ esc: cancel")
}
