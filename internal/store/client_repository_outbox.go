package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/utils"
	"github.com/andrinek/notesync/models"
)

type outboxRepository struct {
	*DB
	logger *logger.Logger
	uuid   *utils.UUIDGenerator
	now    func() time.Time
}

func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	return &outboxRepository{
		DB:     db,
		logger: logger,
		uuid:   utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

func (o *outboxRepository) Enqueue(ctx context.Context, ownerID int64, note models.Note) (models.OutboxEntry, error) {
	log := logger.FromContext(ctx)

	note.ID = o.uuid.GenerateOffline()
	note.UserID = ownerID
	if note.Subject == "" {
		note.Subject = models.SubjectGeneral
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = o.now()
	}

	entry := models.OutboxEntry{
		Note:     note,
		Offline:  true,
		OwnerID:  ownerID,
		QueuedAt: o.now(),
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return entry, fmt.Errorf("encode tags (note_id=%s): %w", note.ID, err)
	}

	_, err = o.DB.ExecContext(ctx, enqueueOutboxEntry,
		note.ID,
		ownerID,
		note.Title,
		note.Content,
		note.Subject,
		note.Folder,
		string(tags),
		note.CreatedAt,
		entry.QueuedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Enqueue").
			Int64("owner_id", ownerID).
			Str("note_id", note.ID).
			Msg("failed to insert outbox entry")
		return entry, fmt.Errorf("failed to enqueue note (note_id=%s): %w", note.ID, err)
	}

	return entry, nil
}

func (o *outboxRepository) List(ctx context.Context, ownerID int64) ([]models.OutboxEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := o.DB.QueryContext(ctx, listOutboxEntries, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.List").
			Int64("owner_id", ownerID).
			Msg("failed to query outbox entries")
		return nil, fmt.Errorf("%w: list outbox: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.OutboxEntry

	for rows.Next() {
		var (
			entry models.OutboxEntry
			tags  string
		)

		scanErr := rows.Scan(
			&entry.Note.ID,
			&entry.OwnerID,
			&entry.Note.Title,
			&entry.Note.Content,
			&entry.Note.Subject,
			&entry.Note.Folder,
			&tags,
			&entry.Note.CreatedAt,
			&entry.QueuedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "outboxRepository.List").
				Int64("owner_id", ownerID).
				Msg("failed to scan outbox row")
			return nil, fmt.Errorf("%w: outbox row: %w", ErrScanningRows, scanErr)
		}

		if tags != "" {
			if err = json.Unmarshal([]byte(tags), &entry.Note.Tags); err != nil {
				return nil, fmt.Errorf("decode tags (note_id=%s): %w", entry.Note.ID, err)
			}
		}

		entry.Note.UserID = entry.OwnerID
		entry.Offline = true
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "outboxRepository.List").
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating outbox rows: %w", rowsErr)
	}

	return entries, nil
}

func (o *outboxRepository) Clear(ctx context.Context, ownerID int64) error {
	log := logger.FromContext(ctx)

	_, err := o.DB.ExecContext(ctx, clearOutboxEntries, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Clear").
			Int64("owner_id", ownerID).
			Msg("failed to clear outbox")
		return fmt.Errorf("failed to clear outbox (owner_id=%d): %w", ownerID, err)
	}

	return nil
}
