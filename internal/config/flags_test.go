package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{name: "localhost with port", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip with port", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "empty host", input: ":8080", want: ":8080"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()
	require.NoError(t, cfg.validate())

	cfg.Remote.BaseURL = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidRemoteConfigs)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := &ServerConfig{}
	cfg.applyDefaults()
	// no DSN and no sign key out of the box
	require.Error(t, cfg.validate())

	cfg.Storage.DB.DSN = "postgres://localhost/notes"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAuthConfigs)

	cfg.Auth.TokenSignKey = "secret"
	assert.NoError(t, cfg.validate())
}
