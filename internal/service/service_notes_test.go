// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andrinek/notesync/internal/mock"
	"github.com/andrinek/notesync/internal/validators"
	"github.com/andrinek/notesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServerSvc(t *testing.T, ctrl *gomock.Controller) (NoteService, *mock.MockNoteRepository, *mock.MockChangePublisher) {
	t.Helper()
	repo := mock.NewMockNoteRepository(ctrl)
	publisher := mock.NewMockChangePublisher(ctrl)
	return NewNoteService(repo, publisher, nil), repo, publisher
}

func TestNoteService_CreatePublishesChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, publisher := newTestServerSvc(t, ctrl)
	ctx := context.Background()

	note := models.Note{UserID: 7, Title: "Quiz prep", Content: "chapters 3-5"}
	stored := note
	stored.ID = "srv-1"

	repo.EXPECT().Create(ctx, note).Return(stored, nil)
	publisher.EXPECT().Publish(int64(7)).Return(nil)

	created, err := svc.Create(ctx, note)
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
}

func TestNoteService_CreateRejectsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerSvc(t, ctrl)

	tests := []struct {
		name string
		note models.Note
	}{
		{name: "empty title", note: models.Note{UserID: 1, Content: "c"}},
		{name: "empty content", note: models.Note{UserID: 1, Title: "t"}},
		{name: "missing owner", note: models.Note{Title: "t", Content: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.note)
			require.ErrorIs(t, err, validators.ErrValidation)
		})
	}
}

func TestNoteService_CreatePublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, publisher := newTestServerSvc(t, ctrl)
	ctx := context.Background()

	note := models.Note{UserID: 7, Title: "t", Content: "c"}
	repo.EXPECT().Create(ctx, note).Return(note, nil)
	publisher.EXPECT().Publish(int64(7)).Return(errors.New("broker down"))

	_, err := svc.Create(ctx, note)
	require.NoError(t, err)
}

func TestNoteService_DeleteBySubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, publisher := newTestServerSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().DeleteBySubject(ctx, int64(7), "Chemistry").Return(nil)
	publisher.EXPECT().Publish(int64(7)).Return(nil)

	require.NoError(t, svc.DeleteBySubject(ctx, 7, "Chemistry"))
}

func TestNoteService_DeleteBySubjectRejectsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerSvc(t, ctrl)

	err := svc.DeleteBySubject(context.Background(), 7, "   ")
	require.ErrorIs(t, err, validators.ErrValidation)
}

func TestNoteService_UpdateWithoutPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockNoteRepository(ctrl)
	svc := NewNoteService(repo, nil, nil)
	ctx := context.Background()

	title := "renamed"
	update := models.NoteUpdate{Title: &title}
	repo.EXPECT().Update(ctx, int64(7), "n1", update).Return(nil)

	require.NoError(t, svc.Update(ctx, 7, "n1", update))
}
