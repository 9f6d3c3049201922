package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:     db,
		logger: logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func newTestOutboxRepo(t *testing.T, db *sql.DB, now time.Time) *outboxRepository {
	t.Helper()
	repo := NewOutboxRepository(newDBFromSQL(db), logger.Nop()).(*outboxRepository)
	repo.now = func() time.Time { return now }
	return repo
}

var outboxColumns = []string{
	"note_id", "owner_id", "title", "content", "subject",
	"folder", "tags", "created_at", "queued_at",
}

func TestOutboxRepository_Enqueue(t *testing.T) {
	db, mock := newTestDB(t)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	repo := newTestOutboxRepo(t, db, now)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WithArgs(
			sqlmock.AnyArg(), // generated offline id
			int64(42),
			"Photosynthesis",
			"light reactions",
			models.SubjectGeneral,
			"",
			`["biology"]`,
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry, err := repo.Enqueue(testContext(), 42, models.Note{
		Title:   "Photosynthesis",
		Content: "light reactions",
		Tags:    []string{"biology"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, entry.Offline)
	assert.True(t, entry.Note.IsOffline())
	assert.Equal(t, int64(42), entry.OwnerID)
	assert.Equal(t, models.SubjectGeneral, entry.Note.Subject)
	assert.Equal(t, now, entry.QueuedAt)
}

func TestOutboxRepository_EnqueueReturnsEntryOnFailure(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestOutboxRepo(t, db, time.Now())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WillReturnError(errors.New("disk full"))

	// the entry must still come back so callers can degrade to in-memory
	entry, err := repo.Enqueue(testContext(), 1, models.Note{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.True(t, entry.Note.IsOffline())
	assert.Equal(t, "t", entry.Note.Title)
}

func TestOutboxRepository_List(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestOutboxRepo(t, db, time.Now())

	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	queued := created.Add(time.Minute)

	rows := sqlmock.NewRows(outboxColumns).
		AddRow("offline-a", int64(42), "First", "one", "Math", "", `[]`, created, queued).
		AddRow("offline-b", int64(42), "Second", "two", "Math", "", `["exam"]`, created, queued.Add(time.Second))

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox")).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	entries, err := repo.List(testContext(), 42)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "offline-a", entries[0].Note.ID)
	assert.Equal(t, int64(42), entries[0].Note.UserID)
	assert.True(t, entries[0].Offline)
	assert.Equal(t, []string{"exam"}, entries[1].Note.Tags)
}

func TestOutboxRepository_ListEmpty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestOutboxRepo(t, db, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(outboxColumns))

	entries, err := repo.List(testContext(), 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOutboxRepository_Clear(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestOutboxRepo(t, db, time.Now())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Clear(testContext(), 42))
	require.NoError(t, mock.ExpectationsWereMet())
}
