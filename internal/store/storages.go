package store

import (
	"context"
	"fmt"

	"github.com/andrinek/notesync/internal/config"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/migrations"
)

// Storages groups the server-side repositories.
type Storages struct {
	Notes NoteRepository
}

// NewStorages connects to PostgreSQL, runs pending migrations and returns the
// wired server repositories.
func NewStorages(cfg config.ServerStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := migrations.MigrateServer(db.DB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Notes: NewNoteRepository(db, logger),
	}, nil
}
