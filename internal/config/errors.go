package config

import "errors"

// Validation errors returned when a configuration group is incomplete.
var (
	// ErrInvalidAdapterConfigs: missing backend address, zone or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs: empty or in-memory client DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs: missing hash key or token sign key.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs: non-positive sync interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidServerConfigs: missing listen address or page size.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
