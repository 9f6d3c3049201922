package config

import (
	"fmt"
	"time"
)

// ServerAuth holds token issuing and validation settings for the server.
type ServerAuth struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ServerHTTP holds listen address and timeout settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerDB holds the postgres connection settings.
type ServerDB struct {
	DSN string
}

// ServerStorage groups server storage backend settings.
type ServerStorage struct {
	DB ServerDB
}

// ServerBroker holds NATS settings for publishing change signals.
type ServerBroker struct {
	URL string
}

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	Auth    ServerAuth
	Server  ServerHTTP
	Storage ServerStorage
	Broker  ServerBroker
}

// GetServerConfig builds and validates a server-specific config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Auth: ServerAuth{
			TokenSignKey:  cfg.Auth.TokenSignKey,
			TokenIssuer:   cfg.Auth.TokenIssuer,
			TokenDuration: cfg.Auth.TokenDuration,
		},
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Storage: ServerStorage{
			DB: ServerDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Broker: ServerBroker{
			URL: cfg.Broker.URL,
		},
	}

	serverCfg.applyDefaults()

	if err := serverCfg.validate(); err != nil {
		return nil, fmt.Errorf("server config validation: %w", err)
	}

	return serverCfg, nil
}

func (cfg *ServerConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = "notesync"
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = 24 * time.Hour
	}
}
