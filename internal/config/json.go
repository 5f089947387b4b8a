package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, using
// [Duration] so durations can be written as "30s".
type StructuredJSONConfig struct {
	App struct {
		HashKey       string   `json:"hash_key"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		LogFile       string   `json:"log_file"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		PageSize       int      `json:"page_size"`
		FeedEpoch      string   `json:"feed_epoch"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress       string   `json:"http_address"`
		Zone              string   `json:"zone"`
		Token             string   `json:"token"`
		RequestTimeout    Duration `json:"request_timeout"`
		RetryCount        int      `json:"retry_count"`
		RequestsPerSecond float64  `json:"rps"`
		Burst             int      `json:"burst"`
		PageSize          int      `json:"page_size"`
		Websocket         bool     `json:"websocket"`
		ReconnectMaxWait  Duration `json:"reconnect_max_wait"`
	} `json:"adapter"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		ResyncDelay  Duration `json:"resync_delay"`
	} `json:"workers"`

	Notifications struct {
		WebhookAddress string `json:"webhook_address"`
	} `json:"notifications"`

	Telemetry struct {
		OTLPEndpoint string `json:"otlp_endpoint"`
		Insecure     bool   `json:"insecure"`
		ServiceName  string `json:"service_name"`
	} `json:"telemetry"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			HashKey:       j.App.HashKey,
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: time.Duration(j.App.TokenDuration),
			LogFile:       j.App.LogFile,
		},
		Storage: Storage{DB: DB{DSN: j.Storage.DB.DSN}},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			PageSize:       j.Server.PageSize,
			FeedEpoch:      j.Server.FeedEpoch,
		},
		Adapter: Adapter{
			HTTPAddress:       j.Adapter.HTTPAddress,
			Zone:              j.Adapter.Zone,
			Token:             j.Adapter.Token,
			RequestTimeout:    time.Duration(j.Adapter.RequestTimeout),
			RetryCount:        j.Adapter.RetryCount,
			RequestsPerSecond: j.Adapter.RequestsPerSecond,
			Burst:             j.Adapter.Burst,
			PageSize:          j.Adapter.PageSize,
			Websocket:         j.Adapter.Websocket,
			ReconnectMaxWait:  time.Duration(j.Adapter.ReconnectMaxWait),
		},
		Workers: Workers{
			SyncInterval: time.Duration(j.Workers.SyncInterval),
			ResyncDelay:  time.Duration(j.Workers.ResyncDelay),
		},
		Notifications: Notifications{WebhookAddress: j.Notifications.WebhookAddress},
		Telemetry: Telemetry{
			OTLPEndpoint: j.Telemetry.OTLPEndpoint,
			Insecure:     j.Telemetry.Insecure,
			ServiceName:  j.Telemetry.ServiceName,
		},
	}, nil
}

// Duration accepts "1h30m" style strings or nanosecond numbers in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
