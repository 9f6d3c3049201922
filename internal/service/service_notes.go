// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package service

import (
	"context"
	"fmt"

	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/store"
	"github.com/andrinek/notesync/internal/validators"
	"github.com/andrinek/notesync/models"
)

type noteService struct {
	repo      store.NoteRepository
	publisher ChangePublisher
	validator validators.Validator
	logger    *logger.Logger
}

// NewNoteService wires the server note service. publisher may be nil when the
// change feed broker is not configured; mutations then simply go unannounced.
func NewNoteService(repo store.NoteRepository, publisher ChangePublisher, log *logger.Logger) NoteService {
	if log == nil {
		log = logger.Nop()
	}
	return &noteService{
		repo:      repo,
		publisher: publisher,
		validator: validators.NewNoteValidator(),
		logger:    log,
	}
}

func (s *noteService) GetAll(ctx context.Context, ownerID int64) ([]models.Note, error) {
	notes, err := s.repo.GetAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Create(ctx context.Context, note models.Note) (models.Note, error) {
	if err := s.validator.Validate(ctx, note, validators.FieldTitle, validators.FieldContent, validators.FieldOwner); err != nil {
		return models.Note{}, err
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.publishChange(ctx, created.UserID)
	return created, nil
}

func (s *noteService) Update(ctx context.Context, ownerID int64, id string, update models.NoteUpdate) error {
	if err := s.validator.Validate(ctx, update); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, ownerID, id, update); err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	s.publishChange(ctx, ownerID)
	return nil
}

func (s *noteService) Delete(ctx context.Context, ownerID int64, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.publishChange(ctx, ownerID)
	return nil
}

func (s *noteService) DeleteBySubject(ctx context.Context, ownerID int64, subject string) error {
	if err := s.validator.Validate(ctx, models.Note{Subject: subject}, validators.FieldSubject); err != nil {
		return err
	}

	if err := s.repo.DeleteBySubject(ctx, ownerID, subject); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}

	s.publishChange(ctx, ownerID)
	return nil
}

func (s *noteService) publishChange(ctx context.Context, ownerID int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ownerID); err != nil {
		// the feed is best-effort, clients reconcile on the next fetch
		logger.FromContext(ctx).Err(err).
			Int64("owner_id", ownerID).
			Msg("failed to publish change signal")
	}
}
