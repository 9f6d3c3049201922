// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/utils"
	"github.com/andrinek/notesync/models"
)

// noteListResponse is the payload of GET /api/notes.
type noteListResponse struct {
	Notes  []models.Note `json:"notes"`
	Length int           `json:"length"`
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listNotes").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	notes, err := h.services.NoteService.GetAll(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listNotes").Msg("error getting user notes")
		http.Error(w, "error getting user notes", statusFromError(err))
		return
	}

	response := noteListResponse{
		Notes:  notes,
		Length: len(notes),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createNote").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var noteFromBody models.Note
	if err := json.NewDecoder(r.Body).Decode(&noteFromBody); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// Ownership comes from the token, never from the body.
	noteFromBody.UserID = userID

	created, err := h.services.NoteService.Create(ctx, noteFromBody)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("error creating note")
		http.Error(w, "error creating note", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updateNote").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	noteID := chi.URLParam(r, "id")
	if noteID == "" {
		log.Error().Str("func", "*Handler.updateNote").Msg("no note ID was given")
		http.Error(w, ErrNoteIDRequired.Error(), http.StatusBadRequest)
		return
	}

	var update models.NoteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Update(ctx, userID, noteID, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("error updating note")
		http.Error(w, "error updating note", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteNote").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	noteID := chi.URLParam(r, "id")
	if noteID == "" {
		log.Error().Str("func", "*Handler.deleteNote").Msg("no note ID was given")
		http.Error(w, ErrNoteIDRequired.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Delete(ctx, userID, noteID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Msg("error deleting note")
		http.Error(w, "error deleting note", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteNotesBySubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteNotesBySubject").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	subject := r.URL.Query().Get("subject")
	if subject == "" {
		log.Error().Str("func", "*Handler.deleteNotesBySubject").Msg("no subject was given")
		http.Error(w, ErrSubjectRequired.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.DeleteBySubject(ctx, userID, subject); err != nil {
		log.Err(err).Str("func", "*Handler.deleteNotesBySubject").Msg("error deleting notes by subject")
		http.Error(w, "error deleting notes by subject", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
