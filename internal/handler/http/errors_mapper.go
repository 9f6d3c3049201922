package http

import (
	"errors"
	"net/http"

	"github.com/andrinek/notesync/internal/store"
	"github.com/andrinek/notesync/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation: http.StatusBadRequest,

	store.ErrNoteNotFound:      http.StatusNotFound,
	store.ErrNoteAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

// statusFromError maps service and store sentinels to HTTP status codes.
// Unrecognized errors fall through to 500.
func statusFromError(err error) int {
	for sentinel, status := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return status
		}
	}

	return http.StatusInternalServerError
}
