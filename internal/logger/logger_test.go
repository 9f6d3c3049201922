package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsRoleField(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("test-role")
	log.Logger = log.Output(&buf)

	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	// must not panic and must not write anywhere
	log.Error().Msg("dropped")
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("scope", "ctx").Logger()
	ctx := base.WithContext(context.Background())

	log := FromContext(ctx)
	log.Info().Msg("scoped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx", entry["scope"])
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("scope", "req").Logger()

	r := httptest.NewRequest("GET", "/api/notes", nil)
	r = r.WithContext(base.WithContext(r.Context()))

	log := FromRequest(r)
	log.Info().Msg("scoped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req", entry["scope"])
}
