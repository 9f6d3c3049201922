// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

// Package session implements the editor autosave state machine. One Editor
// tracks a single open note: whether the buffer diverges from the last-saved
// snapshot, when a debounced autosave should fire, and which triggers are
// suppressed while lecture mode renders the note read-only.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/andrinek/notesync/internal/clock"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/models"
)

// State describes the editor's relation to its last-saved snapshot.
type State int

const (
	// Clean means the buffer matches the snapshot.
	Clean State = iota
	// Dirty means content or subject diverges from the snapshot.
	Dirty
	// Saving is the transient state while a save round-trip is in flight.
	Saving
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Saving:
		return "saving"
	default:
		return "unknown"
	}
}

// Variant selects the autosave debounce cadence. The two editor surfaces
// intentionally differ: the always-visible dialog saves aggressively, the
// fullscreen editor waits much longer (and longer still on desktop).
type Variant int

const (
	VariantDialog Variant = iota
	VariantMobile
	VariantDesktop
)

const (
	debounceDialog  = 2 * time.Second
	debounceMobile  = 30 * time.Second
	debounceDesktop = 60 * time.Second
)

// Debounce returns the autosave delay for the variant.
func (v Variant) Debounce() time.Duration {
	switch v {
	case VariantMobile:
		return debounceMobile
	case VariantDesktop:
		return debounceDesktop
	default:
		return debounceDialog
	}
}

// SaveFunc persists the editor's pending changes. It receives only the fields
// tracked by the session.
type SaveFunc func(ctx context.Context, update models.NoteUpdate) error

type stopper interface {
	Stop() bool
}

// Config wires a new editor session.
type Config struct {
	Variant  Variant
	AutoSave bool

	// Note provides the initial snapshot (content, subject) and the target
	// id for saves.
	Note models.Note

	Save     SaveFunc
	Notifier service.Notifier
	Clock    clock.Clock
	Logger   *logger.Logger
}

// Editor is the per-note autosave session. All methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Editor struct {
	noteID   string
	variant  Variant
	save     SaveFunc
	notifier service.Notifier
	clock    clock.Clock
	logger   *logger.Logger

	// newTimer is swapped in tests for a hand-fired fake
	newTimer func(d time.Duration, fn func()) stopper

	mu          sync.Mutex
	state       State
	autoSave    bool
	lectureMode bool
	closed      bool

	content, subject           string
	snapContent, snapSubject   string
	wordCount                  int
	lastSavedAt                time.Time
	timer                      stopper
}

func NewEditor(cfg Config) *Editor {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = service.NewLogNotifier(cfg.Logger)
	}

	return &Editor{
		noteID:      cfg.Note.ID,
		variant:     cfg.Variant,
		save:        cfg.Save,
		notifier:    cfg.Notifier,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		newTimer:    func(d time.Duration, fn func()) stopper { return time.AfterFunc(d, fn) },
		autoSave:    cfg.AutoSave,
		content:     cfg.Note.Content,
		subject:     cfg.Note.Subject,
		snapContent: cfg.Note.Content,
		snapSubject: cfg.Note.Subject,
		wordCount:   len(strings.Fields(cfg.Note.Content)),
	}
}

// SetContent records an edit to the note body. Ignored in lecture mode and
// after close. Word count is recomputed on every change; a qualifying change
// restarts the autosave debounce window.
func (e *Editor) SetContent(ctx context.Context, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lectureMode || e.closed {
		return
	}

	e.content = content
	e.wordCount = len(strings.Fields(content))
	e.reconcileDirtyLocked()
}

// SetSubject records a subject change, which dirties the session exactly like
// a content edit.
func (e *Editor) SetSubject(ctx context.Context, subject string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lectureMode || e.closed {
		return
	}

	e.subject = subject
	e.reconcileDirtyLocked()
}

// reconcileDirtyLocked recomputes the state from snapshot divergence and
// (re)starts the debounce timer on a dirty transition or repeat edit.
func (e *Editor) reconcileDirtyLocked() {
	if e.content == e.snapContent && e.subject == e.snapSubject {
		e.state = Clean
		e.cancelTimerLocked()
		return
	}

	e.state = Dirty
	if e.autoSave {
		e.restartTimerLocked()
	}
}

func (e *Editor) restartTimerLocked() {
	e.cancelTimerLocked()
	e.timer = e.newTimer(e.variant.Debounce(), e.onDebounce)
}

func (e *Editor) cancelTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// onDebounce fires when the debounce window elapses without another edit.
// The save only proceeds if the session is still dirty, autosave is still
// enabled and lecture mode has not been entered in the meantime.
func (e *Editor) onDebounce() {
	e.mu.Lock()
	e.timer = nil
	if e.state != Dirty || !e.autoSave || e.lectureMode || e.closed {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.performSave(context.Background())
}

// Save issues a manual save (button or Ctrl/Cmd+S). Any pending debounce is
// cancelled. Suppressed entirely in lecture mode. Saving a clean session is
// a no-op.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.lectureMode || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.cancelTimerLocked()
	if e.state != Dirty {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	return e.performSave(ctx)
}

// performSave runs the save round-trip. The lock is dropped while the remote
// call is in flight so typing is never blocked on the network; edits that
// arrive mid-save leave the session dirty afterwards.
func (e *Editor) performSave(ctx context.Context) error {
	e.mu.Lock()
	if e.state == Saving {
		e.mu.Unlock()
		return nil
	}
	e.state = Saving
	content, subject := e.content, e.subject
	e.mu.Unlock()

	update := models.NoteUpdate{Content: &content, Subject: &subject}
	err := e.save(ctx, update)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		// failure leaves the session dirty, never silently "clean"
		e.state = Dirty
		e.logger.Err(err).Str("note_id", e.noteID).Msg("autosave failed")
		e.notifier.Notify(ctx, "failed to save note")
		return err
	}

	e.snapContent, e.snapSubject = content, subject
	e.lastSavedAt = e.clock.Now()

	if e.content == e.snapContent && e.subject == e.snapSubject {
		e.state = Clean
	} else {
		// user kept typing during the round-trip
		e.state = Dirty
		if e.autoSave && !e.lectureMode {
			e.restartTimerLocked()
		}
	}

	return nil
}

// SetAutoSave toggles the autosave feature. Enabling it while dirty issues an
// immediate save; disabling it cancels any pending debounce.
func (e *Editor) SetAutoSave(ctx context.Context, enabled bool) error {
	e.mu.Lock()
	if e.closed || e.autoSave == enabled {
		e.mu.Unlock()
		return nil
	}
	e.autoSave = enabled

	if !enabled {
		e.cancelTimerLocked()
		e.mu.Unlock()
		return nil
	}

	dirty := e.state == Dirty && !e.lectureMode
	e.mu.Unlock()

	if dirty {
		return e.performSave(ctx)
	}
	return nil
}

// EnterLectureMode switches the note to read-only rendering. A dirty session
// is saved exactly once on the way in; while lecture mode is active every
// save trigger is suppressed. When that save fails the switch is declined,
// otherwise the user would be parked read-only on unsaved changes with every
// save trigger suppressed.
func (e *Editor) EnterLectureMode(ctx context.Context) error {
	e.mu.Lock()
	if e.lectureMode || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.cancelTimerLocked()
	dirty := e.state == Dirty
	e.mu.Unlock()

	if dirty {
		if err := e.performSave(ctx); err != nil {
			return err
		}
	}

	e.mu.Lock()
	e.lectureMode = true
	e.cancelTimerLocked()
	e.mu.Unlock()

	return nil
}

// ExitLectureMode re-enables editing. No save is triggered.
func (e *Editor) ExitLectureMode() {
	e.mu.Lock()
	e.lectureMode = false
	e.mu.Unlock()
}

// Close tears the session down. Deliberately no flush: unsaved changes are
// lost unless one of the save paths ran first.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTimerLocked()
	e.closed = true
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor) WordCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wordCount
}

// LastSavedAt returns the time of the last successful save, zero if none.
func (e *Editor) LastSavedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSavedAt
}

func (e *Editor) LectureMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lectureMode
}

func (e *Editor) AutoSaveEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoSave
}

func (e *Editor) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

func (e *Editor) Subject() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subject
}
