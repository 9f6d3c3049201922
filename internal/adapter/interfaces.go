// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

// Package adapter provides transport-layer abstractions for communicating
// with the hosted notes backend.
//
// The primary abstraction is [RemoteNoteStore], which decouples the service
// layer from the underlying protocol; the package ships an HTTP/REST
// implementation ([NewHTTPNoteStore]) built on resty. The realtime
// "something changed" channel is abstracted as [ChangeFeed] with a NATS
// implementation.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrPermissionDenied] for 401/403,
// [ErrRemoteUnavailable] for transport failures and 5xx).
package adapter

import (
	"context"

	"github.com/andrinek/notesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteNoteStore defines transport-agnostic CRUD against the hosted notes
// table. No retries are built in at this layer; retry policy belongs to the
// sync engine.
type RemoteNoteStore interface {
	// FetchAll returns all notes owned by ownerID ordered by created_at
	// descending. Returns [ErrRemoteUnavailable] (wrapped) on transport
	// error.
	FetchAll(ctx context.Context, ownerID int64) ([]models.Note, error)

	// Create persists a new note for ownerID. The note must carry a
	// non-empty title and content; this is checked before any I/O and
	// surfaces as a validators.ErrValidation. Returns the created note as
	// stored by the server (with the server-assigned id and timestamp).
	Create(ctx context.Context, note models.Note, ownerID int64) (models.Note, error)

	// Update applies a partial field update to the note with the given id.
	// Returns [ErrNotFound] (wrapped) if the id does not exist within the
	// caller's ownership scope.
	Update(ctx context.Context, id string, update models.NoteUpdate) error

	// Delete removes the note with the given id.
	Delete(ctx context.Context, id string) error

	// DeleteBySubject bulk-removes every note belonging to the subject.
	// Subject removal is a named user action, so this is first-class rather
	// than a client-side loop over ids.
	DeleteBySubject(ctx context.Context, subject string) error
}

// ChangeFeed is the black-box realtime event source for the notes table.
// The callback receives no payload: a delivery only means "something
// changed, re-fetch if you care". Own writes are included.
type ChangeFeed interface {
	// SubscribeChanges registers fn to run on every change signal scoped to
	// ownerID. The returned function unsubscribes.
	SubscribeChanges(ownerID int64, fn func()) (func(), error)

	// Close tears down the underlying connection.
	Close()
}
