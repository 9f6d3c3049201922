package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/models"
)

type noteCacheRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteCacheRepository(db *DB, logger *logger.Logger) NoteCacheRepository {
	return &noteCacheRepository{
		DB:     db,
		logger: logger,
	}
}

// ReplaceAll swaps the cached list inside a transaction so a crash between
// clear and insert cannot leave a half-written cache behind.
func (n *noteCacheRepository) ReplaceAll(ctx context.Context, ownerID int64, notes []models.Note) error {
	log := logger.FromContext(ctx)

	tx, err := n.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteCacheRepository.ReplaceAll").
			Int64("owner_id", ownerID).
			Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err = tx.ExecContext(ctx, clearCachedNotes, ownerID); err != nil {
		log.Err(err).
			Str("func", "noteCacheRepository.ReplaceAll").
			Int64("owner_id", ownerID).
			Msg("failed to clear cached notes")
		return fmt.Errorf("failed to clear note cache: %w", err)
	}

	for _, note := range notes {
		tags, tagsErr := json.Marshal(note.Tags)
		if tagsErr != nil {
			return fmt.Errorf("encode tags (note_id=%s): %w", note.ID, tagsErr)
		}

		_, err = tx.ExecContext(ctx, insertCachedNote,
			note.ID,
			ownerID,
			note.Title,
			note.Content,
			note.Subject,
			note.SubjectColor,
			note.CustomColor,
			note.Summary,
			note.Folder,
			string(tags),
			note.CreatedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "noteCacheRepository.ReplaceAll").
				Int64("owner_id", ownerID).
				Str("note_id", note.ID).
				Msg("failed to insert cached note")
			return fmt.Errorf("failed to cache note (note_id=%s): %w", note.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "noteCacheRepository.ReplaceAll").
			Int64("owner_id", ownerID).
			Msg("failed to commit cache transaction")
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}

	return nil
}

func (n *noteCacheRepository) GetAll(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := n.DB.QueryContext(ctx, getAllCachedNotes, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "noteCacheRepository.GetAll").
			Int64("owner_id", ownerID).
			Msg("failed to query cached notes")
		return nil, fmt.Errorf("%w: cached notes: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note

	for rows.Next() {
		var (
			note models.Note
			tags string
		)

		scanErr := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.Subject,
			&note.SubjectColor,
			&note.CustomColor,
			&note.Summary,
			&note.Folder,
			&tags,
			&note.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteCacheRepository.GetAll").
				Int64("owner_id", ownerID).
				Msg("failed to scan cached note row")
			return nil, fmt.Errorf("%w: cached note row: %w", ErrScanningRows, scanErr)
		}

		if tags != "" {
			if err = json.Unmarshal([]byte(tags), &note.Tags); err != nil {
				return nil, fmt.Errorf("decode tags (note_id=%s): %w", note.ID, err)
			}
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteCacheRepository.GetAll").
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating cached note rows: %w", rowsErr)
	}

	return notes, nil
}
