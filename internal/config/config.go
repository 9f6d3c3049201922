// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for notesync.
// It aggregates all sub-configurations and is populated by merging values
// from a .env file, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds token signing settings shared by the server (issuing and
	// validating) and the client (attaching).
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds persistence settings: the server's postgres DSN or the
	// client's local sqlite path, depending on which binary loads it.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the notes server.
	Server Server `envPrefix:"SERVER_"`

	// Remote holds the client-side transport settings for reaching the notes
	// server.
	Remote Remote `envPrefix:"REMOTE_"`

	// Broker holds the NATS connection settings used for the realtime
	// "notes changed" channel and connectivity signalling.
	Broker Broker `envPrefix:"BROKER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds JWT token settings.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify bearer tokens.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a token remains valid (e.g. "24h").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Token is a pre-issued bearer token used by the client binary; the
	// owner id is extracted from its subject claim.
	// Env: AUTH_TOKEN
	Token string `env:"TOKEN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Remote holds client-side settings for outbound calls to the notes server.
type Remote struct {
	// BaseURL is the root URL of the notes server API.
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the per-request timeout for outbound calls.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Broker holds NATS connection settings.
type Broker struct {
	// URL is the NATS server URL (e.g. "nats://localhost:4222").
	// Env: BROKER_URL
	URL string `env:"URL"`
}

// Storage groups the configuration for persistence backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for a database backend.
type DB struct {
	// DSN is the connection string: a PostgreSQL URI for the server, a
	// sqlite file path for the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the periodic sync worker runs in
	// addition to reconnect-triggered drains.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables (after best-effort .env loading)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotenv().
		withEnv().
		withFlags().
		withJSON().
		build()
}
