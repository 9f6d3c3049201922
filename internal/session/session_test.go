// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/andrinek/notesync/internal/clock"
	"github.com/andrinek/notesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// timerLog captures debounce timers so tests can fire them by hand.
type timerLog struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (l *timerLog) newTimer(d time.Duration, fn func()) stopper {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := &fakeTimer{d: d, fn: fn}
	l.timers = append(l.timers, t)
	return t
}

func (l *timerLog) last(t *testing.T) *fakeTimer {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.timers, "expected a debounce timer to be armed")
	return l.timers[len(l.timers)-1]
}

func (l *timerLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// saveRecorder counts saves and records the last payload.
type saveRecorder struct {
	mu      sync.Mutex
	calls   int
	last    models.NoteUpdate
	fail    error
}

func (r *saveRecorder) save(_ context.Context, update models.NoteUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.last = update
	return r.fail
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestEditor(t *testing.T, variant Variant, autoSave bool) (*Editor, *saveRecorder, *timerLog, *clock.Mock) {
	t.Helper()

	rec := &saveRecorder{}
	timers := &timerLog{}
	mockClock := clock.NewMock()

	ed := NewEditor(Config{
		Variant:  variant,
		AutoSave: autoSave,
		Note:     models.Note{ID: "n1", Content: "initial words here", Subject: "Math"},
		Save:     rec.save,
		Clock:    mockClock,
	})
	ed.newTimer = timers.newTimer

	return ed, rec, timers, mockClock
}

func TestEditor_InitialState(t *testing.T) {
	ed, _, timers, _ := newTestEditor(t, VariantDialog, true)

	assert.Equal(t, Clean, ed.State())
	assert.Equal(t, 3, ed.WordCount())
	assert.True(t, ed.LastSavedAt().IsZero())
	assert.Zero(t, timers.count())
}

func TestVariant_Debounce(t *testing.T) {
	assert.Equal(t, 2*time.Second, VariantDialog.Debounce())
	assert.Equal(t, 30*time.Second, VariantMobile.Debounce())
	assert.Equal(t, 60*time.Second, VariantDesktop.Debounce())
}

func TestEditor_EditDirtiesAndArmsDebounce(t *testing.T) {
	ed, _, timers, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	ed.SetContent(ctx, "changed")

	assert.Equal(t, Dirty, ed.State())
	assert.Equal(t, 1, ed.WordCount())
	assert.Equal(t, 2*time.Second, timers.last(t).d)
}

func TestEditor_EveryQualifyingEditRestartsDebounce(t *testing.T) {
	ed, _, timers, _ := newTestEditor(t, VariantMobile, true)
	ctx := context.Background()

	ed.SetContent(ctx, "one")
	first := timers.last(t)
	ed.SetContent(ctx, "one two")
	second := timers.last(t)

	assert.True(t, first.stopped, "earlier timer must be cancelled")
	assert.NotSame(t, first, second)
	assert.Equal(t, 30*time.Second, second.d)
}

func TestEditor_DebounceFiresAndSaves(t *testing.T) {
	ed, rec, timers, mockClock := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	savedAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	mockClock.SetNow(savedAt)

	ed.SetContent(ctx, "new body")
	timers.last(t).fn()

	assert.Equal(t, Clean, ed.State())
	assert.Equal(t, 1, rec.count())
	require.NotNil(t, rec.last.Content)
	assert.Equal(t, "new body", *rec.last.Content)
	require.NotNil(t, rec.last.Subject)
	assert.Equal(t, "Math", *rec.last.Subject)
	assert.Equal(t, savedAt, ed.LastSavedAt())
}

func TestEditor_DebounceSuppressedWhenNoLongerDirty(t *testing.T) {
	ed, rec, timers, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	ed.SetContent(ctx, "changed")
	fired := timers.last(t)

	// typing back to the snapshot returns the session to clean
	ed.SetContent(ctx, "initial words here")
	assert.Equal(t, Clean, ed.State())

	fired.fn() // stale timer firing anyway must not save
	assert.Zero(t, rec.count())
}

func TestEditor_ManualSaveCancelsDebounce(t *testing.T) {
	ed, rec, timers, _ := newTestEditor(t, VariantDesktop, true)
	ctx := context.Background()

	ed.SetContent(ctx, "changed")
	pending := timers.last(t)

	require.NoError(t, ed.Save(ctx))

	assert.True(t, pending.stopped)
	assert.Equal(t, Clean, ed.State())
	assert.Equal(t, 1, rec.count())
}

func TestEditor_ManualSaveWhileCleanIsNoop(t *testing.T) {
	ed, rec, _, _ := newTestEditor(t, VariantDialog, true)

	require.NoError(t, ed.Save(context.Background()))
	assert.Zero(t, rec.count())
}

func TestEditor_SaveFailureKeepsDirty(t *testing.T) {
	ed, rec, _, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	rec.fail = errors.New("network down")
	ed.SetContent(ctx, "changed")

	err := ed.Save(ctx)
	require.Error(t, err)

	assert.Equal(t, Dirty, ed.State())
	assert.True(t, ed.LastSavedAt().IsZero())

	// a retry after recovery succeeds and cleans the session
	rec.fail = nil
	require.NoError(t, ed.Save(ctx))
	assert.Equal(t, Clean, ed.State())
	assert.Equal(t, 2, rec.count())
}

func TestEditor_SubjectChangeDirties(t *testing.T) {
	ed, rec, _, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	ed.SetSubject(ctx, "Physics")
	assert.Equal(t, Dirty, ed.State())

	require.NoError(t, ed.Save(ctx))
	require.NotNil(t, rec.last.Subject)
	assert.Equal(t, "Physics", *rec.last.Subject)
}

func TestEditor_AutoSaveToggleOnWhileDirtySavesImmediately(t *testing.T) {
	ed, rec, timers, _ := newTestEditor(t, VariantDialog, false)
	ctx := context.Background()

	ed.SetContent(ctx, "changed")
	assert.Equal(t, Dirty, ed.State())
	assert.Zero(t, timers.count(), "autosave disabled must not arm a timer")

	require.NoError(t, ed.SetAutoSave(ctx, true))
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, Clean, ed.State())
}

func TestEditor_AutoSaveToggleOffCancelsDebounce(t *testing.T) {
	ed, rec, timers, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	ed.SetContent(ctx, "changed")
	pending := timers.last(t)

	require.NoError(t, ed.SetAutoSave(ctx, false))
	assert.True(t, pending.stopped)
	assert.Zero(t, rec.count())
}

func TestEditor_EnterLectureModeWhileDirtySavesOnce(t *testing.T) {
	ed, rec, _, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	ed.SetContent(ctx, "changed")
	require.NoError(t, ed.EnterLectureMode(ctx))

	assert.True(t, ed.LectureMode())
	assert.Equal(t, 1, rec.count())

	// all triggers are suppressed while in lecture mode
	ed.SetContent(ctx, "edit during lecture")
	require.NoError(t, ed.Save(ctx))
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "changed", ed.Content(), "lecture mode renders read-only")
}

func TestEditor_EnterLectureModeDeclinedWhenSaveFails(t *testing.T) {
	ed, rec, _, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	rec.fail = errors.New("network down")
	ed.SetContent(ctx, "changed")

	require.Error(t, ed.EnterLectureMode(ctx))

	// the switch is declined so the unsaved changes keep their triggers
	assert.False(t, ed.LectureMode())
	assert.Equal(t, Dirty, ed.State())

	rec.fail = nil
	require.NoError(t, ed.EnterLectureMode(ctx))
	assert.True(t, ed.LectureMode())
	assert.Equal(t, Clean, ed.State())
}

func TestEditor_EnterLectureModeWhileCleanDoesNotSave(t *testing.T) {
	ed, rec, _, _ := newTestEditor(t, VariantDialog, true)

	require.NoError(t, ed.EnterLectureMode(context.Background()))
	assert.Zero(t, rec.count())
}

func TestEditor_ExitLectureModeRestoresEditing(t *testing.T) {
	ed, _, _, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	require.NoError(t, ed.EnterLectureMode(ctx))
	ed.ExitLectureMode()

	ed.SetContent(ctx, "editable again")
	assert.Equal(t, Dirty, ed.State())
}

func TestEditor_CloseDoesNotFlush(t *testing.T) {
	ed, rec, timers, _ := newTestEditor(t, VariantDialog, true)
	ctx := context.Background()

	ed.SetContent(ctx, "unsaved work")
	pending := timers.last(t)

	ed.Close()

	assert.True(t, pending.stopped)
	assert.Zero(t, rec.count(), "closing must not issue an implicit save")

	// the session is inert after close
	ed.SetContent(ctx, "more")
	require.NoError(t, ed.Save(ctx))
	assert.Zero(t, rec.count())
}

func TestEditor_EditDuringSaveStaysDirty(t *testing.T) {
	rec := &saveRecorder{}
	timers := &timerLog{}

	var ed *Editor
	blockingSave := func(ctx context.Context, update models.NoteUpdate) error {
		// simulate an edit arriving while the round-trip is in flight
		ed.SetContent(ctx, "typed during save")
		return rec.save(ctx, update)
	}

	ed = NewEditor(Config{
		Variant:  VariantDialog,
		AutoSave: false,
		Note:     models.Note{ID: "n1", Content: "initial", Subject: "Math"},
		Save:     blockingSave,
		Clock:    clock.NewMock(),
	})
	ed.newTimer = timers.newTimer

	ctx := context.Background()
	ed.SetContent(ctx, "first edit")
	require.NoError(t, ed.Save(ctx))

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, Dirty, ed.State(), "mid-save edit leaves the session dirty")
}
