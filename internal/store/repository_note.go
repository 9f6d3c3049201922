// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/utils"
	"github.com/andrinek/notesync/models"
)

// psql builds queries with $N placeholders for the pgx driver.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var noteColumns = []string{
	"id",
	"user_id",
	"title",
	"content",
	"tags",
	"subject",
	"subject_color",
	"custom_color",
	"summary",
	"folder",
	"created_at",
}

type noteRepository struct {
	*DB
	logger     *logger.Logger
	classifier *PostgresErrorClassifier
	uuid       *utils.UUIDGenerator
	now        func() time.Time
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:         db,
		logger:     logger,
		classifier: NewPostgresErrorClassifier(),
		uuid:       utils.NewUUIDGenerator(),
		now:        time.Now,
	}
}

func (n *noteRepository) GetAll(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: select notes: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := n.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetAll").
			Int64("user_id", ownerID).
			Msg("failed to query notes")
		return nil, fmt.Errorf("%w: select notes: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note

	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.GetAll").
				Int64("user_id", ownerID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: note row: %w", ErrScanningRows, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteRepository.GetAll").
			Int64("user_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating note rows: %w", rowsErr)
	}

	return notes, nil
}

func (n *noteRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	// offline ids are client-local; the server always assigns its own
	note.ID = n.uuid.Generate()
	// Notes drained from an offline queue arrive with the creation time the
	// client recorded; that time is kept. Only notes created online get the
	// server clock.
	if note.CreatedAt.IsZero() {
		note.CreatedAt = n.now().UTC()
	}
	if note.Subject == "" {
		note.Subject = models.SubjectGeneral
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return models.Note{}, fmt.Errorf("encode tags: %w", err)
	}

	query, args, err := psql.
		Insert("notes").
		Columns(noteColumns...).
		Values(
			note.ID,
			note.UserID,
			note.Title,
			note.Content,
			string(tags),
			note.Subject,
			note.SubjectColor,
			note.CustomColor,
			note.Summary,
			note.Folder,
			note.CreatedAt,
		).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: insert note: %w", ErrBuildingSQLQuery, err)
	}

	err = n.execRetryable(ctx, query, args...)
	if isUniqueViolation(err) {
		log.Warn().
			Str("func", "noteRepository.Create").
			Str("note_id", note.ID).
			Msg("note id collision, not retrying")
		return models.Note{}, fmt.Errorf("%w (id=%s)", ErrNoteAlreadyExists, note.ID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Create").
			Int64("user_id", note.UserID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}

	return note, nil
}

func (n *noteRepository) Update(ctx context.Context, ownerID int64, id string, update models.NoteUpdate) error {
	log := logger.FromContext(ctx)

	builder := psql.Update("notes")
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}
	if update.Subject != nil {
		builder = builder.Set("subject", *update.Subject)
	}
	if update.Folder != nil {
		builder = builder.Set("folder", *update.Folder)
	}
	if update.Tags != nil {
		tags, err := json.Marshal(update.Tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		builder = builder.Set("tags", string(tags))
	}

	query, args, err := builder.
		Where(sq.Eq{"user_id": ownerID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: update note: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := n.execRetryableAffected(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Update").
			Int64("user_id", ownerID).
			Str("note_id", id).
			Msg("failed to update note")
		return fmt.Errorf("failed to update note (id=%s): %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrNoteNotFound, id)
	}

	return nil
}

func (n *noteRepository) Delete(ctx context.Context, ownerID int64, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete("notes").
		Where(sq.Eq{"user_id": ownerID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: delete note: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := n.execRetryableAffected(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Delete").
			Int64("user_id", ownerID).
			Str("note_id", id).
			Msg("failed to delete note")
		return fmt.Errorf("failed to delete note (id=%s): %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrNoteNotFound, id)
	}

	return nil
}

func (n *noteRepository) DeleteBySubject(ctx context.Context, ownerID int64, subject string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete("notes").
		Where(sq.Eq{"user_id": ownerID, "subject": subject}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: delete subject: %w", ErrBuildingSQLQuery, err)
	}

	// deleting zero notes is fine, the subject may already be empty
	if _, err = n.execRetryableAffected(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteBySubject").
			Int64("user_id", ownerID).
			Str("subject", subject).
			Msg("failed to delete notes by subject")
		return fmt.Errorf("failed to delete subject %q: %w", subject, err)
	}

	return nil
}

// execRetryable runs a DML statement, retrying once when the classifier deems
// the failure transient (connection loss, deadlock rollback).
func (n *noteRepository) execRetryable(ctx context.Context, query string, args ...any) error {
	_, err := n.execRetryableAffected(ctx, query, args...)
	return err
}

func (n *noteRepository) execRetryableAffected(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := n.DB.ExecContext(ctx, query, args...)
	if err != nil && n.classifier.Classify(err) == Retryable {
		n.logger.Warn().Err(err).Msg("retrying transient database error")
		result, err = n.DB.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var (
		note models.Note
		tags sql.NullString
	)

	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&tags,
		&note.Subject,
		&note.SubjectColor,
		&note.CustomColor,
		&note.Summary,
		&note.Folder,
		&note.CreatedAt,
	)
	if err != nil {
		return models.Note{}, err
	}

	if tags.Valid && tags.String != "" {
		if err = json.Unmarshal([]byte(tags.String), &note.Tags); err != nil {
			return models.Note{}, fmt.Errorf("decode tags (note_id=%s): %w", note.ID, err)
		}
	}

	return note, nil
}
