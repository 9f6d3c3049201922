// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/andrinek/notesync/internal/validators"
	"github.com/andrinek/notesync/models"
	"github.com/go-resty/resty/v2"
)

type HTTPClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type httpNoteStore struct {
	client    *resty.Client
	validator validators.Validator

	mu    sync.RWMutex
	token string
}

// NewHTTPNoteStore builds a RemoteNoteStore speaking the REST API exposed by
// the notesync server. Zero-value config fields fall back to localhost and a
// 15 second timeout.
func NewHTTPNoteStore(cfg HTTPClientConfig) RemoteNoteStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpNoteStore{
		client:    cli,
		validator: validators.NewNoteValidator(),
		token:     strings.TrimSpace(cfg.Token),
	}
}

func (h *httpNoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpNoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpNoteStore) FetchAll(ctx context.Context, ownerID int64) ([]models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("fetch notes request: %w: %w", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	// mirrors the server's list envelope
	var listResponse struct {
		Notes  []models.Note `json:"notes"`
		Length int           `json:"length"`
	}
	if err = json.Unmarshal(resp.Body(), &listResponse); err != nil {
		return nil, fmt.Errorf("decode notes response: %w", err)
	}
	return listResponse.Notes, nil
}

func (h *httpNoteStore) Create(ctx context.Context, note models.Note, ownerID int64) (models.Note, error) {
	if err := h.validator.Validate(ctx, note); err != nil {
		return models.Note{}, err
	}

	note.UserID = ownerID
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(note).
		Post("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w: %w", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var created models.Note
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Note{}, fmt.Errorf("decode created note: %w", err)
	}
	return created, nil
}

func (h *httpNoteStore) Update(ctx context.Context, id string, update models.NoteUpdate) error {
	if err := h.validator.Validate(ctx, update); err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Patch("/api/notes/" + id)
	if err != nil {
		return fmt.Errorf("update note request: %w: %w", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpNoteStore) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/notes/" + id)
	if err != nil {
		return fmt.Errorf("delete note request: %w: %w", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpNoteStore) DeleteBySubject(ctx context.Context, subject string) error {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("subject", subject).
		Delete("/api/notes")
	if err != nil {
		return fmt.Errorf("delete subject request: %w: %w", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpNoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrPermissionDenied
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d", ErrRemoteUnavailable, code)
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, body)
}
