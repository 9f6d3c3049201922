// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/andrinek/notesync/internal/connectivity"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/service"
)

// DrainWorker converts connectivity transitions into sync passes. Exactly one
// drain runs per offline-to-online transition (per transition, not per
// subscriber), and a slow ticker re-drains periodically as a safety net for
// entries staged while a drain was already in flight.
type DrainWorker struct {
	syncService service.ClientSyncService
	noteService service.ClientNoteService
	notifier    service.Notifier
	monitor     *connectivity.Monitor
	logger      *logger.Logger
	ownerID     int64
	interval    time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	unsub  func()
	wg     sync.WaitGroup
}

func NewDrainWorker(
	syncService service.ClientSyncService,
	noteService service.ClientNoteService,
	notifier service.Notifier,
	monitor *connectivity.Monitor,
	ownerID int64,
	interval time.Duration,
	log *logger.Logger,
) *DrainWorker {
	if log == nil {
		log = logger.Nop()
	}
	return &DrainWorker{
		syncService: syncService,
		noteService: noteService,
		notifier:    notifier,
		monitor:     monitor,
		logger:      log,
		ownerID:     ownerID,
		interval:    interval,
	}
}

// Run implements Worker.
func (w *DrainWorker) Run() {
	w.Start(context.Background())
}

// Start subscribes to connectivity transitions and launches the periodic
// ticker. If interval is zero or negative it defaults to 5 minutes. Stops any
// previously running instance first.
func (w *DrainWorker) Start(ctx context.Context) {
	interval := w.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.unsub = w.monitor.Subscribe(func(online bool) {
		if !online {
			w.notifier.Notify(jobCtx, "connection lost, new notes will be staged locally")
			return
		}
		// one drain per transition; subscribers never see repeats
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.drainOnce(jobCtx)
		}()
	})
	// Entries persisted by an earlier offline run have no transition to
	// ride: when the client comes up already online, drain right away
	// instead of waiting out the first tick.
	if w.monitor.Online() {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.drainOnce(jobCtx)
		}()
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if w.monitor.Online() {
					w.drainOnce(jobCtx)
				}
			}
		}
	}()
}

// Stop cancels the background goroutines and blocks until they exit. Safe to
// call when the worker is not running.
func (w *DrainWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	unsub := w.unsub
	w.cancel = nil
	w.unsub = nil
	w.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *DrainWorker) drainOnce(ctx context.Context) {
	report, err := w.syncService.Drain(ctx, w.ownerID)
	if err != nil {
		w.logger.Err(err).Int64("owner_id", w.ownerID).Msg("outbox drain failed")
		return
	}

	if report.Failed() > 0 {
		w.logger.Warn().
			Int("total", report.Total).
			Int("synced", report.Synced).
			Msg("drain completed with failures")
	}

	if err = w.noteService.Refresh(ctx); err != nil {
		w.logger.Err(err).Msg("refresh after drain failed")
	}
}
