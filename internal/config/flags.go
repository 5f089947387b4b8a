package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// NetAddress holds a host:port pair. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line flags shared by both binaries.
//
// Flags:
//
//	-a              backend listen address host:port
//	-d              database DSN
//	-c / -config    JSON config file path
//	-hash-key       HMAC key for request and webhook signatures
//	-token-sign-key / -token-issuer / -token-duration  backend token settings
//	-request-timeout  backend request timeout
//	-page-size      backend change feed page size
//	-feed-epoch     backend cursor epoch
//	-issue-token    print a token for the given principal and exit
//	-r              remote backend address for the client
//	-zone / -token  client zone and bearer token
//	-adapter-timeout / -retries / -rps / -burst / -adapter-page-size / -ws
//	-sync-interval / -resync-delay
//	-webhook        client webhook listen address host:port
//	-otlp / -otlp-insecure
//	-log-file       client log file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(programName(), flag.ContinueOnError)

	var serverAddress, webhookAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Backend listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "HMAC key for request signatures")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Client log file")

	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Backend request timeout (e.g., 30s)")
	fs.IntVar(&cfg.Server.PageSize, "page-size", 0, "Backend change feed page size")
	fs.StringVar(&cfg.Server.FeedEpoch, "feed-epoch", "", "Backend cursor epoch")
	fs.StringVar(&cfg.Server.IssueToken, "issue-token", "", "Print a token for the principal and exit")

	fs.StringVar(&cfg.Adapter.HTTPAddress, "r", "", "Remote backend address")
	fs.StringVar(&cfg.Adapter.Zone, "zone", "", "Record zone")
	fs.StringVar(&cfg.Adapter.Token, "token", "", "Bearer token")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "adapter-timeout", 0, "Remote request timeout")
	fs.IntVar(&cfg.Adapter.RetryCount, "retries", 0, "Retries for 5xx and 429 responses")
	fs.Float64Var(&cfg.Adapter.RequestsPerSecond, "rps", 0, "Remote requests per second, 0 is unlimited")
	fs.IntVar(&cfg.Adapter.Burst, "burst", 0, "Remote request burst")
	fs.IntVar(&cfg.Adapter.PageSize, "adapter-page-size", 0, "Requested change feed page size")
	fs.BoolVar(&cfg.Adapter.Websocket, "ws", false, "Subscribe to the websocket notification stream")

	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync interval")
	fs.DurationVar(&cfg.Workers.ResyncDelay, "resync-delay", 0, "Delay before a full resync")

	fs.Var(&webhookAddress, "webhook", "Webhook listen address host:port")

	fs.StringVar(&cfg.Telemetry.OTLPEndpoint, "otlp", "", "OTLP gRPC endpoint")
	fs.BoolVar(&cfg.Telemetry.Insecure, "otlp-insecure", false, "Disable TLS for OTLP")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Notifications.WebhookAddress = webhookAddress.String()

	return cfg, nil
}

func programName() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "sync"
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
