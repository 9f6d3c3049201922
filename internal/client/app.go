package client

import (
	"context"
	"fmt"

	"github.com/andrinek/notesync/internal/adapter"
	"github.com/andrinek/notesync/internal/config"
	"github.com/andrinek/notesync/internal/connectivity"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/internal/store"
	"github.com/andrinek/notesync/internal/tui"
	"github.com/andrinek/notesync/internal/utils"
	"github.com/andrinek/notesync/internal/workers"
)

type App struct {
	services *service.ClientServices
	monitor  *connectivity.Monitor
	workers  *workers.Workers
	drain    *workers.DrainWorker
	feed     *adapter.NATSChangeFeed
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	ownerID, err := utils.ParseUserIDFromJWT(cfg.Auth.Token)
	if err != nil {
		return nil, fmt.Errorf("parse owner id from token: %w", err)
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	remote := adapter.NewHTTPNoteStore(adapter.HTTPClientConfig{
		BaseURL: cfg.Remote.BaseURL,
		Token:   cfg.Auth.Token,
		Timeout: cfg.Remote.RequestTimeout,
	})

	monitor := connectivity.NewMonitor(false, log)

	// The broker connection carries both the change feed and the
	// connectivity signal. When it is unreachable at startup the client
	// simply begins offline.
	feed, err := adapter.NewNATSChangeFeed(cfg.Broker.URL)
	if err != nil {
		log.Warn().Err(err).Msg("broker unreachable, starting offline")
		feed = nil
	} else {
		monitor.BindNATS(feed.Conn())
	}

	notifier := tui.NewNotifier(service.NewLogNotifier(log))

	var changeFeed adapter.ChangeFeed
	if feed != nil {
		changeFeed = feed
	}

	svcs := service.NewClientServices(storages, remote, changeFeed, monitor, notifier, log)

	drain := workers.NewDrainWorker(
		svcs.SyncService,
		svcs.NoteService,
		notifier,
		monitor,
		ownerID,
		cfg.Workers.SyncInterval,
		log,
	)

	ui, err := tui.New(svcs, monitor, notifier, log)
	if err != nil {
		return nil, fmt.Errorf("create tui: %w", err)
	}

	app := &App{
		services: svcs,
		monitor:  monitor,
		workers:  workers.NewWorkers(drain),
		drain:    drain,
		feed:     feed,
		tui:      ui,
		logger:   log,
	}

	if err := svcs.NoteService.Start(context.Background(), ownerID); err != nil {
		return nil, fmt.Errorf("start note service: %w", err)
	}

	return app, nil
}

func (a *App) Run() error {
	a.workers.Run()
	defer a.shutdown()

	return a.tui.Run(context.Background())
}

func (a *App) shutdown() {
	a.drain.Stop()
	a.services.NoteService.Stop()
	if a.feed != nil {
		a.feed.Close()
	}
}
