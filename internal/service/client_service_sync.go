// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package service

import (
	"context"
	"fmt"

	"github.com/andrinek/notesync/internal/adapter"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/store"
	"github.com/andrinek/notesync/models"
)

type clientSyncService struct {
	outbox   store.OutboxRepository
	remote   adapter.RemoteNoteStore
	notifier Notifier
	logger   *logger.Logger
}

func NewClientSyncService(outbox store.OutboxRepository, remote adapter.RemoteNoteStore, notifier Notifier, log *logger.Logger) ClientSyncService {
	if log == nil {
		log = logger.Nop()
	}
	return &clientSyncService{
		outbox:   outbox,
		remote:   remote,
		notifier: notifier,
		logger:   log,
	}
}

// Drain converts queued entries into durable remote notes and reports the
// outcome. The queue is cleared even when some creates fail: per-entry
// failures are logged and aggregated into the report, never retried. The
// caller is expected to refresh the note collection afterwards.
func (s *clientSyncService) Drain(ctx context.Context, ownerID int64) (models.SyncReport, error) {
	log := logger.FromContext(ctx)

	// snapshot; entries enqueued after this point belong to the next pass
	entries, err := s.outbox.List(ctx, ownerID)
	if err != nil {
		return models.SyncReport{}, fmt.Errorf("snapshot outbox: %w", err)
	}

	if len(entries) == 0 {
		s.notifier.Notify(ctx, "back online")
		return models.SyncReport{}, nil
	}

	s.notifier.Notify(ctx, fmt.Sprintf("back online, syncing %d notes...", len(entries)))

	report := models.SyncReport{Total: len(entries)}
	for _, entry := range entries {
		if _, createErr := s.remote.Create(ctx, entry.Note, ownerID); createErr != nil {
			log.Err(createErr).
				Str("func", "clientSyncService.Drain").
				Str("note_id", entry.Note.ID).
				Int64("owner_id", ownerID).
				Msg("failed to sync queued note")
			continue
		}
		report.Synced++
	}

	// unconditional: a permanently-invalid entry must not wedge the queue,
	// even though that drops entries whose failure was transient
	if clearErr := s.outbox.Clear(ctx, ownerID); clearErr != nil {
		log.Err(clearErr).
			Str("func", "clientSyncService.Drain").
			Int64("owner_id", ownerID).
			Msg("failed to clear outbox after drain")
	}

	s.notifier.Notify(ctx, fmt.Sprintf("synced %d of %d notes", report.Synced, report.Total))

	return report, nil
}
