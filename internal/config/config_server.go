package config

import (
	"fmt"
	"time"
)

// Backend defaults applied to zero values.
const (
	DefaultServerAddress = "localhost:8080"
	DefaultPageSize      = 100
	DefaultFeedEpoch     = "1"
	DefaultTokenIssuer   = "sync-backend"
	DefaultTokenDuration = 24 * time.Hour
)

// ServerApp holds backend secrets and token settings.
type ServerApp struct {
	HashKey       string
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ServerConfig is the backend view of [StructuredConfig].
type ServerConfig struct {
	App            ServerApp
	HTTPAddress    string
	RequestTimeout time.Duration
	DSN            string
	PageSize       int
	FeedEpoch      string
	IssueToken     string
	Telemetry      ClientTelemetry
}

// GetServerConfig loads the merged configuration, fills backend defaults
// and validates the backend view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App: ServerApp{
			HashKey:       cfg.App.HashKey,
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
		},
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
		PageSize:       cfg.Server.PageSize,
		FeedEpoch:      cfg.Server.FeedEpoch,
		IssueToken:     cfg.Server.IssueToken,
		Telemetry: ClientTelemetry{
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			Insecure:     cfg.Telemetry.Insecure,
			ServiceName:  cfg.Telemetry.ServiceName,
		},
	}

	if serverCfg.HTTPAddress == "" {
		serverCfg.HTTPAddress = DefaultServerAddress
	}
	if serverCfg.RequestTimeout == 0 {
		serverCfg.RequestTimeout = DefaultRequestTimeout
	}
	if serverCfg.PageSize == 0 {
		serverCfg.PageSize = DefaultPageSize
	}
	if serverCfg.FeedEpoch == "" {
		serverCfg.FeedEpoch = DefaultFeedEpoch
	}
	if serverCfg.App.TokenIssuer == "" {
		serverCfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if serverCfg.App.TokenDuration == 0 {
		serverCfg.App.TokenDuration = DefaultTokenDuration
	}
	if serverCfg.Telemetry.ServiceName == "" {
		serverCfg.Telemetry.ServiceName = "sync-backend"
	}

	return serverCfg
}
