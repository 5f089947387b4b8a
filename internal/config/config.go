// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the merged configuration shared by both binaries.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	App           App           `envPrefix:"APP_"`
	Storage       Storage       `envPrefix:"STORAGE_"`
	Server        Server        `envPrefix:"SERVER_"`
	Adapter       Adapter       `envPrefix:"ADAPTER_"`
	Workers       Workers       `envPrefix:"WORKERS_"`
	Notifications Notifications `envPrefix:"NOTIFICATIONS_"`
	Telemetry     Telemetry     `envPrefix:"TELEMETRY_"`

	// JSONFilePath is the optional JSON file merged last.
	// Env: CONFIG. Flags: -c, -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds secrets and identity settings.
type App struct {
	// HashKey signs request bodies and webhook deliveries (HMAC-SHA256).
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// TokenSignKey signs and verifies bearer tokens on the backend.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// LogFile is where the client writes its rotated log. Empty means stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the database connection string. The client expects a SQLite
// file path, the backend a PostgreSQL DSN (empty selects the in-memory
// repository).
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server configures the reference backend.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PageSize is the default and maximum number of changes per feed page.
	// Env: SERVER_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// FeedEpoch is stamped into every cursor. Changing it invalidates all
	// cursors handed out before.
	// Env: SERVER_FEED_EPOCH
	FeedEpoch string `env:"FEED_EPOCH"`

	// IssueToken makes the server binary print a token for the given
	// principal and exit. Flag only.
	IssueToken string
}

// Adapter configures the client's connection to the backend.
type Adapter struct {
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Zone names the record zone the client synchronizes.
	// Env: ADAPTER_ZONE
	Zone string `env:"ZONE"`

	// Token is the bearer token presented to the backend.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// RequestsPerSecond limits outgoing requests. Zero disables the limit.
	// Env: ADAPTER_RPS
	RequestsPerSecond float64 `env:"RPS"`

	// Env: ADAPTER_BURST
	Burst int `env:"BURST"`

	// PageSize is the requested change feed page size.
	// Env: ADAPTER_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// Websocket enables the push notification stream.
	// Env: ADAPTER_WEBSOCKET
	Websocket bool `env:"WEBSOCKET"`

	// Env: ADAPTER_RECONNECT_MAX_WAIT
	ReconnectMaxWait time.Duration `env:"RECONNECT_MAX_WAIT"`
}

// Workers configures the client's background sync.
type Workers struct {
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ResyncDelay is the pause before a full resync after the backend
	// invalidated the change cursor.
	// Env: WORKERS_RESYNC_DELAY
	ResyncDelay time.Duration `env:"RESYNC_DELAY"`
}

// Notifications configures the client's webhook receiver.
type Notifications struct {
	// WebhookAddress is the host:port the webhook listens on. Empty
	// disables the webhook.
	// Env: NOTIFICATIONS_WEBHOOK_ADDRESS
	WebhookAddress string `env:"WEBHOOK_ADDRESS"`
}

// Telemetry configures OTLP export. An empty endpoint keeps the global
// OpenTelemetry providers as no-ops.
type Telemetry struct {
	// Env: TELEMETRY_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// Env: TELEMETRY_INSECURE
	Insecure bool `env:"INSECURE"`

	// Env: TELEMETRY_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`
}

// GetStructuredConfig merges env, command-line flags and the optional JSON
// file and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
