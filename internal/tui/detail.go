package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	note, ok := m.current()
	if !ok {
		m.mode = modeList
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.mode = modeList
	case key.Matches(keyMsg, keys.edit):
		return m.startEdit(note)
	case key.Matches(keyMsg, keys.copy):
		return m, m.copyToClipboard(note.Content)
	case key.Matches(keyMsg, keys.delete):
		return m, m.cmdDeleteNote(note.ID)
	}

	return m, nil
}

func (m mainLoopModel) viewDetail() string {
	note, ok := m.current()
	if !ok {
		return renderPage("NOTE", "note not found", "esc: back")
	}

	out := ""
	out += "Title    : " + note.Title + "\n"
	out += "Subject  : " + note.Subject + "\n"
	if len(note.Tags) > 0 {
		out += "Tags     : " + strings.Join(note.Tags, ", ") + "\n"
	}
	if note.Folder != "" {
		out += "Folder   : " + note.Folder + "\n"
	}
	out += fmt.Sprintf("Words    : %d\n", note.WordCount())
	if note.IsOffline() {
		out += offlineStyle.Render("Pending  : staged locally, syncs when back online") + "\n"
	}
	if note.Summary != nil && *note.Summary != "" {
		out += "\nSummary:\n" + *note.Summary + "\n"
	}
	out += "\n" + note.Content + "\n"

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status) + "\n"
	}

	return renderPage("NOTE", strings.TrimRight(out, "\n"), "e: edit │ c: copy │ ctrl+d: delete │ esc: back")
}
