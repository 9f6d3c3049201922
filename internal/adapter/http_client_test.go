// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrinek/notesync/internal/validators"
	"github.com/andrinek/notesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPNoteStore_FetchAll(t *testing.T) {
	notes := []models.Note{
		{ID: "2", Title: "Binary trees", Content: "left, right", Subject: models.SubjectGeneral},
		{ID: "1", Title: "Big-O", Content: "growth rates", Subject: models.SubjectGeneral},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/notes", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"notes":  notes,
			"length": len(notes),
		}))
	}))
	defer srv.Close()

	store := NewHTTPNoteStore(HTTPClientConfig{BaseURL: srv.URL, Token: "test-token"})

	got, err := store.FetchAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}

func TestHTTPNoteStore_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/notes", r.URL.Path)

		var in models.Note
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, int64(7), in.UserID)

		in.ID = "42"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(in))
	}))
	defer srv.Close()

	store := NewHTTPNoteStore(HTTPClientConfig{BaseURL: srv.URL})

	created, err := store.Create(context.Background(), models.Note{
		Title:   "SQL joins",
		Content: "inner vs outer",
		Subject: "Databases",
	}, 7)
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)
	assert.Equal(t, "SQL joins", created.Title)
}

func TestHTTPNoteStore_CreateValidatesBeforeRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := NewHTTPNoteStore(HTTPClientConfig{BaseURL: srv.URL})

	_, err := store.Create(context.Background(), models.Note{Title: "   ", Content: "body"}, 1)
	require.ErrorIs(t, err, validators.ErrValidation)
	assert.Zero(t, requests, "invalid note must not reach the wire")
}

func TestHTTPNoteStore_DeleteBySubject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/notes", r.URL.Path)
		require.Equal(t, "Linear Algebra", r.URL.Query().Get("subject"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := NewHTTPNoteStore(HTTPClientConfig{BaseURL: srv.URL})
	require.NoError(t, store.DeleteBySubject(context.Background(), "Linear Algebra"))
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrPermissionDenied},
		{name: "forbidden", status: http.StatusForbidden, want: ErrPermissionDenied},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, want: ErrRemoteUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			store := NewHTTPNoteStore(HTTPClientConfig{BaseURL: srv.URL})
			err := store.Delete(context.Background(), "1")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHTTPNoteStore_TransportErrorIsUnavailable(t *testing.T) {
	// point at a closed listener
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	store := NewHTTPNoteStore(HTTPClientConfig{BaseURL: url})
	_, err := store.FetchAll(context.Background(), 1)
	require.ErrorIs(t, err, ErrRemoteUnavailable)
}
