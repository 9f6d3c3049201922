package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrinek/notesync/internal/service"
)

// Notifier routes service notices into the running bubbletea program as
// status line updates. Until [Attach] is called (the services are wired
// before the program exists) notices fall through to the fallback.
type Notifier struct {
	mu       sync.Mutex
	program  *tea.Program
	fallback service.Notifier
}

func NewNotifier(fallback service.Notifier) *Notifier {
	return &Notifier{fallback: fallback}
}

// Attach binds the notifier to a running program. Safe to call once the
// program has been constructed; notices arriving earlier are logged instead.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

func (n *Notifier) Notify(ctx context.Context, message string) {
	n.mu.Lock()
	program := n.program
	n.mu.Unlock()

	if program == nil {
		if n.fallback != nil {
			n.fallback.Notify(ctx, message)
		}
		return
	}

	program.Send(statusMsg{text: message})
}
