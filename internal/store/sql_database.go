package store

import (
	"database/sql"

	"github.com/andrinek/notesync/internal/logger"
)

// DB wraps *sql.DB with the application logger. The same wrapper is shared by
// the SQLite client store and the PostgreSQL server store; the dialect is
// fixed at connect time.
type DB struct {
	*sql.DB
	logger *logger.Logger
}
