package config

import (
	"fmt"
	"time"
)

// Client defaults applied to zero values.
const (
	DefaultSyncInterval   = 5 * time.Minute
	DefaultResyncDelay    = 3 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultZone           = "notes"
	DefaultClientDSN      = "sync.db"
)

// ClientApp holds client-side secrets and logging settings.
type ClientApp struct {
	// HashKey signs outgoing mutations and verifies webhook deliveries.
	HashKey string
	// LogFile is the rotated log file path. Empty logs to stdout.
	LogFile string
}

// ClientAdapter holds the client's connection settings to the backend.
type ClientAdapter struct {
	HTTPAddress       string
	Zone              string
	Token             string
	RequestTimeout    time.Duration
	RetryCount        int
	RequestsPerSecond float64
	Burst             int
	PageSize          int
	Websocket         bool
	ReconnectMaxWait  time.Duration
}

// ClientDB holds the SQLite database path.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers holds background sync settings.
type ClientWorkers struct {
	SyncInterval time.Duration
	ResyncDelay  time.Duration
}

// ClientNotifications holds webhook receiver settings.
type ClientNotifications struct {
	WebhookAddress string
}

// ClientTelemetry holds OTLP export settings.
type ClientTelemetry struct {
	OTLPEndpoint string
	Insecure     bool
	ServiceName  string
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App           ClientApp
	Adapter       ClientAdapter
	Storage       ClientStorage
	Workers       ClientWorkers
	Notifications ClientNotifications
	Telemetry     ClientTelemetry
}

// GetClientConfig loads the merged configuration, fills client defaults and
// validates the client view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			LogFile: cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:       cfg.Adapter.HTTPAddress,
			Zone:              cfg.Adapter.Zone,
			Token:             cfg.Adapter.Token,
			RequestTimeout:    cfg.Adapter.RequestTimeout,
			RetryCount:        cfg.Adapter.RetryCount,
			RequestsPerSecond: cfg.Adapter.RequestsPerSecond,
			Burst:             cfg.Adapter.Burst,
			PageSize:          cfg.Adapter.PageSize,
			Websocket:         cfg.Adapter.Websocket,
			ReconnectMaxWait:  cfg.Adapter.ReconnectMaxWait,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			ResyncDelay:  cfg.Workers.ResyncDelay,
		},
		Notifications: ClientNotifications{
			WebhookAddress: cfg.Notifications.WebhookAddress,
		},
		Telemetry: ClientTelemetry{
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			Insecure:     cfg.Telemetry.Insecure,
			ServiceName:  cfg.Telemetry.ServiceName,
		},
	}

	if clientCfg.Adapter.Zone == "" {
		clientCfg.Adapter.Zone = DefaultZone
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultClientDSN
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if clientCfg.Workers.ResyncDelay == 0 {
		clientCfg.Workers.ResyncDelay = DefaultResyncDelay
	}
	if clientCfg.Telemetry.ServiceName == "" {
		clientCfg.Telemetry.ServiceName = "sync-client"
	}

	return clientCfg
}
