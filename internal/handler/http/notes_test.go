package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andrinek/notesync/internal/config"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/mock"
	"github.com/andrinek/notesync/internal/service"
	"github.com/andrinek/notesync/internal/store"
	"github.com/andrinek/notesync/internal/validators"
	"github.com/andrinek/notesync/models"
)

// ---- Helpers ----

func newNotesHandler(t *testing.T) (*Handler, *mock.MockNoteService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	noteSvc := mock.NewMockNoteService(ctrl)

	h := &Handler{
		services: &service.Services{NoteService: noteSvc},
		authConfig: config.ServerAuth{
			TokenSignKey: testSignKey,
			TokenIssuer:  testIssuer,
		},
		logger: logger.Nop(),
	}

	return h, noteSvc
}

// doRequest drives the full router so that routing, tracing and auth run
// exactly as they do in production.
func doRequest(h *Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// ---- Route-level tests ----

func TestHealth_NoAuthRequired(t *testing.T) {
	h, _ := newNotesHandler(t)

	rr := doRequest(h, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNotesRoutes_RequireAuth(t *testing.T) {
	h, _ := newNotesHandler(t)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodPatch, "/api/notes/some-id"},
		{http.MethodDelete, "/api/notes/some-id"},
		{http.MethodDelete, "/api/notes?subject=Math"},
	}

	for _, route := range routes {
		t.Run(fmt.Sprintf("%s %s", route.method, route.target), func(t *testing.T) {
			rr := doRequest(h, route.method, route.target, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestListNotes_Success(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	notes := []models.Note{
		{ID: "n-1", UserID: 42, Title: "Derivatives", Content: "chain rule", Subject: "Math"},
		{ID: "n-2", UserID: 42, Title: "Momentum", Content: "p = mv", Subject: "Physics"},
	}
	noteSvc.EXPECT().GetAll(gomock.Any(), int64(42)).Return(notes, nil)

	rr := doRequest(h, http.MethodGet, "/api/notes", token, nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var response noteListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Length)
	assert.Equal(t, notes, response.Notes)
}

func TestCreateNote_OwnershipComesFromToken(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	// The body claims a different owner; the handler must overwrite it.
	body := models.Note{UserID: 999, Title: "Derivatives", Content: "chain rule", Subject: "Math"}

	noteSvc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Equal(t, int64(42), note.UserID)
			note.ID = "server-id"
			return note, nil
		})

	rr := doRequest(h, http.MethodPost, "/api/notes", token, body)

	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "server-id", created.ID)
	assert.Equal(t, int64(42), created.UserID)
}

func TestCreateNote_ValidationErrorMapsTo400(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	noteSvc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(models.Note{}, fmt.Errorf("%w: %w", validators.ErrValidation, validators.ErrEmptyTitle))

	rr := doRequest(h, http.MethodPost, "/api/notes", token, models.Note{Content: "no title"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateNote_InvalidJSON(t *testing.T) {
	h, _ := newNotesHandler(t)
	token := issueTestToken(t, 42)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateNote_Success(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	newContent := "updated content"
	noteSvc.EXPECT().
		Update(gomock.Any(), int64(42), "n-1", models.NoteUpdate{Content: &newContent}).
		Return(nil)

	rr := doRequest(h, http.MethodPatch, "/api/notes/n-1", token, models.NoteUpdate{Content: &newContent})

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateNote_NotFoundMapsTo404(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	newContent := "updated content"
	noteSvc.EXPECT().
		Update(gomock.Any(), int64(42), "missing", gomock.Any()).
		Return(store.ErrNoteNotFound)

	rr := doRequest(h, http.MethodPatch, "/api/notes/missing", token, models.NoteUpdate{Content: &newContent})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteNote_Success(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	noteSvc.EXPECT().Delete(gomock.Any(), int64(42), "n-1").Return(nil)

	rr := doRequest(h, http.MethodDelete, "/api/notes/n-1", token, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeleteNotesBySubject_Success(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	noteSvc.EXPECT().DeleteBySubject(gomock.Any(), int64(42), "Math").Return(nil)

	rr := doRequest(h, http.MethodDelete, "/api/notes?subject=Math", token, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeleteNotesBySubject_MissingSubject(t *testing.T) {
	h, _ := newNotesHandler(t)
	token := issueTestToken(t, 42)

	rr := doRequest(h, http.MethodDelete, "/api/notes", token, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListNotes_ServiceError(t *testing.T) {
	h, noteSvc := newNotesHandler(t)
	token := issueTestToken(t, 42)

	noteSvc.EXPECT().
		GetAll(gomock.Any(), int64(42)).
		Return(nil, errors.New("database exploded"))

	rr := doRequest(h, http.MethodGet, "/api/notes", token, nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestInit_TraceIDHeaderAlwaysSet(t *testing.T) {
	h, _ := newNotesHandler(t)

	rr := doRequest(h, http.MethodGet, "/api/health", "", nil)

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_TraceIDHeaderEchoedFromRequest(t *testing.T) {
	h, _ := newNotesHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(traceIDHeader, "incoming-trace")

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, "incoming-trace", rr.Header().Get(traceIDHeader))
}
