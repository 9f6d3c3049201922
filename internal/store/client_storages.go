package store

import (
	"context"
	"fmt"

	"github.com/andrinek/notesync/internal/config"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/migrations"
)

// ClientStorages groups the client-side repositories into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	// Outbox is the SQLite-backed queue of notes written while offline.
	Outbox OutboxRepository

	// NoteCache holds the last note list fetched from the remote.
	NoteCache NoteCacheRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations.
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := migrations.MigrateClient(db.DB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Outbox:    NewOutboxRepository(db, logger),
		NoteCache: NewNoteCacheRepository(db, logger),
	}, nil
}
