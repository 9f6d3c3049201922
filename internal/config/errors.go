package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when the database DSN is missing.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")

	// ErrInvalidRemoteConfigs is returned when the client's remote base URL
	// or request timeout is missing.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configs")

	// ErrInvalidServerConfigs is returned when the server listen address is
	// missing.
	ErrInvalidServerConfigs = errors.New("invalid server configs")

	// ErrInvalidWorkerConfigs is returned when the sync interval is unset.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configs")

	// ErrInvalidAuthConfigs is returned when token settings required by the
	// loading binary are missing.
	ErrInvalidAuthConfigs = errors.New("invalid auth configs")
)
