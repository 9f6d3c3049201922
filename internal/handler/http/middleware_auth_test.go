package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrinek/notesync/internal/config"
	"github.com/andrinek/notesync/internal/logger"
	"github.com/andrinek/notesync/internal/utils"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "notesync-test"
)

// ---- Helpers ----

func newAuthOnlyHandler() *Handler {
	return &Handler{
		authConfig: config.ServerAuth{
			TokenSignKey: testSignKey,
			TokenIssuer:  testIssuer,
		},
		logger: logger.Nop(),
	}
}

// injectNopLogger puts a nop logger into the request context so that
// logger.FromRequest does not fall back to the global logger.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

func issueTestToken(t *testing.T, userID int64) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, userID, time.Hour, testSignKey)
	require.NoError(t, err)

	return token.SignedString
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ---- auth middleware tests ----

func TestAuth_ValidTokenPassesUserIDToContext(t *testing.T) {
	h := newAuthOnlyHandler()
	tokenString := issueTestToken(t, 42)

	var gotUserID int64
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, found = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(h, "Bearer "+tokenString, next)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, found)
	assert.Equal(t, int64(42), gotUserID)
}

func TestAuth_MissingHeaderRejected(t *testing.T) {
	h := newAuthOnlyHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	rr := executeAuth(h, "", next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_MalformedHeaderRejected(t *testing.T) {
	h := newAuthOnlyHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	rr := executeAuth(h, "Bearer", next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_GarbageTokenRejected(t *testing.T) {
	h := newAuthOnlyHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	rr := executeAuth(h, "Bearer not-a-jwt", next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_WrongIssuerRejected(t *testing.T) {
	h := newAuthOnlyHandler()

	token, err := utils.GenerateJWTToken("someone-else", 42, time.Hour, testSignKey)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	rr := executeAuth(h, "Bearer "+token.SignedString, next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_WrongSignKeyRejected(t *testing.T) {
	h := newAuthOnlyHandler()

	token, err := utils.GenerateJWTToken(testIssuer, 42, time.Hour, "other-key")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	rr := executeAuth(h, "Bearer "+token.SignedString, next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
