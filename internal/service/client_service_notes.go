// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrinek/notesync/internal/adapter"
	"github.com/andrinek/notesync/internal/connectivity"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/store"
	"github.com/andrinek/notesync/internal/validators"
	"github.com/andrinek/notesync/models"
)

type clientNoteService struct {
	remote    adapter.RemoteNoteStore
	outbox    store.OutboxRepository
	cache     store.NoteCacheRepository
	feed      adapter.ChangeFeed
	monitor   *connectivity.Monitor
	notifier  Notifier
	validator validators.Validator
	logger    *logger.Logger

	mu       sync.RWMutex
	started  bool
	ownerID  int64
	notes    []models.Note
	listener func([]models.Note)
	unsub    func()
}

func NewClientNoteService(
	remote adapter.RemoteNoteStore,
	storages *store.ClientStorages,
	feed adapter.ChangeFeed,
	monitor *connectivity.Monitor,
	notifier Notifier,
	log *logger.Logger,
) ClientNoteService {
	if log == nil {
		log = logger.Nop()
	}
	return &clientNoteService{
		remote:    remote,
		outbox:    storages.Outbox,
		cache:     storages.NoteCache,
		feed:      feed,
		monitor:   monitor,
		notifier:  notifier,
		validator: validators.NewNoteValidator(),
		logger:    log,
	}
}

func (s *clientNoteService) Start(ctx context.Context, ownerID int64) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.ownerID = ownerID
	s.mu.Unlock()

	// subscribed once; every signal triggers a full re-fetch, there is no
	// incremental patching. A nil feed means the broker was unreachable at
	// startup; the client runs without live updates.
	if s.feed != nil {
		unsub, err := s.feed.SubscribeChanges(ownerID, func() {
			if refreshErr := s.Refresh(context.Background()); refreshErr != nil {
				s.logger.Err(refreshErr).Msg("refresh after change signal failed")
			}
		})
		if err != nil {
			s.logger.Err(err).Int64("owner_id", ownerID).Msg("change feed subscription failed")
		} else {
			s.mu.Lock()
			s.unsub = unsub
			s.mu.Unlock()
		}
	}

	return s.Refresh(ctx)
}

func (s *clientNoteService) Stop() {
	s.mu.Lock()
	unsub := s.unsub
	s.unsub = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (s *clientNoteService) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]models.Note, len(s.notes))
	copy(notes, s.notes)
	return notes
}

func (s *clientNoteService) OnUpdate(fn func([]models.Note)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Refresh rebuilds the in-memory collection. Online: remote fetch, cache the
// result. Offline: queued outbox notes are shown ahead of the cached list so
// locally staged work stays visible.
func (s *clientNoteService) Refresh(ctx context.Context) error {
	ownerID, err := s.owner()
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)

	if s.monitor.Online() {
		fetched, fetchErr := s.remote.FetchAll(ctx, ownerID)
		if fetchErr != nil {
			log.Err(fetchErr).
				Str("func", "clientNoteService.Refresh").
				Int64("owner_id", ownerID).
				Msg("remote fetch failed, falling back to cache")
			return s.refreshOffline(ctx, ownerID)
		}

		if cacheErr := s.cache.ReplaceAll(ctx, ownerID, fetched); cacheErr != nil {
			// cache is best-effort, losing it only hurts the next offline view
			log.Err(cacheErr).
				Str("func", "clientNoteService.Refresh").
				Int64("owner_id", ownerID).
				Msg("failed to refresh note cache")
		}

		s.setNotes(fetched)
		return nil
	}

	return s.refreshOffline(ctx, ownerID)
}

func (s *clientNoteService) refreshOffline(ctx context.Context, ownerID int64) error {
	log := logger.FromContext(ctx)

	cached, err := s.cache.GetAll(ctx, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "clientNoteService.refreshOffline").
			Int64("owner_id", ownerID).
			Msg("failed to read note cache")
		cached = nil
	}

	entries, err := s.outbox.List(ctx, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "clientNoteService.refreshOffline").
			Int64("owner_id", ownerID).
			Msg("failed to read outbox")
		entries = nil
	}

	merged := make([]models.Note, 0, len(entries)+len(cached))
	for _, entry := range entries {
		merged = append(merged, entry.Note)
	}
	merged = append(merged, cached...)

	s.setNotes(merged)
	return nil
}

func (s *clientNoteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	ownerID, err := s.owner()
	if err != nil {
		return models.Note{}, err
	}
	log := logger.FromContext(ctx)

	// validated before any I/O, an empty note never reaches either store
	if err = s.validator.Validate(ctx, note); err != nil {
		return models.Note{}, err
	}

	if !s.monitor.Online() {
		entry, enqueueErr := s.outbox.Enqueue(ctx, ownerID, note)
		if enqueueErr != nil {
			// degrade to a no-op: losing the staging slot must not block
			// the editing flow, the entry is still shown optimistically
			log.Err(enqueueErr).
				Str("func", "clientNoteService.CreateNote").
				Int64("owner_id", ownerID).
				Msg("failed to persist outbox entry")
		}

		s.prependNote(entry.Note)
		return entry.Note, nil
	}

	// a failed online create is surfaced, never demoted to the queue
	created, err := s.remote.Create(ctx, note, ownerID)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	if err = s.Refresh(ctx); err != nil {
		log.Err(err).Msg("refresh after create failed")
	}

	return created, nil
}

func (s *clientNoteService) UpdateNote(ctx context.Context, id string, update models.NoteUpdate) error {
	if _, err := s.owner(); err != nil {
		return err
	}

	if err := s.validator.Validate(ctx, update); err != nil {
		return err
	}

	if !s.monitor.Online() {
		return ErrOffline
	}

	if err := s.remote.Update(ctx, id, update); err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	if err := s.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("refresh after update failed")
	}

	return nil
}

// DeleteNotesForSubject is blocked entirely while offline. Unlike creation,
// deletions are never staged: replaying a stale bulk delete after reconnect
// could wipe notes edited elsewhere in the meantime.
func (s *clientNoteService) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.owner(); err != nil {
		return err
	}

	if !s.monitor.Online() {
		return fmt.Errorf("%w: deletion requires a connection", ErrOffline)
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if err := s.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("refresh after delete failed")
	}

	return nil
}

func (s *clientNoteService) DeleteNotesForSubject(ctx context.Context, subject string) error {
	if _, err := s.owner(); err != nil {
		return err
	}

	if err := s.validator.Validate(ctx, models.Note{Subject: subject}, validators.FieldSubject); err != nil {
		return err
	}

	if !s.monitor.Online() {
		return fmt.Errorf("%w: subject deletion requires a connection", ErrOffline)
	}

	if err := s.remote.DeleteBySubject(ctx, subject); err != nil {
		return fmt.Errorf("delete subject %q: %w", subject, err)
	}

	if err := s.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("refresh after subject delete failed")
	}

	return nil
}

func (s *clientNoteService) owner() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0, ErrNotStarted
	}
	return s.ownerID, nil
}

func (s *clientNoteService) setNotes(notes []models.Note) {
	s.mu.Lock()
	s.notes = notes
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(notes)
	}
}

func (s *clientNoteService) prependNote(note models.Note) {
	s.mu.Lock()
	s.notes = append([]models.Note{note}, s.notes...)
	notes := make([]models.Note, len(s.notes))
	copy(notes, s.notes)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(notes)
	}
}
