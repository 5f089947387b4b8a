package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	handler "github.com/MKhiriev/go-sync-engine/internal/handler/http"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/server"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/telemetry"
	"github.com/MKhiriev/go-sync-engine/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("sync-backend")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry disabled")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Err(err).Msg("error flushing telemetry")
		}
	}()

	repo, closeRepo, err := newRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating record repository")
	}
	defer closeRepo()

	services, err := service.NewServices(repo, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.IssueToken != "" {
		token, err := services.AuthService.CreateToken(ctx, cfg.IssueToken)
		if err != nil {
			log.Fatal().Err(err).Msg("error issuing token")
		}
		fmt.Println(token.SignedString)
		return
	}

	srv, err := server.NewServer(handler.NewHandler(services, cfg, log).Init(), cfg.HTTPAddress, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newRepository picks PostgreSQL when a DSN is configured and the in-memory
// repository otherwise.
func newRepository(ctx context.Context, cfg *config.ServerConfig, log *logger.Logger) (store.RecordRepository, func(), error) {
	if cfg.DSN == "" {
		log.Warn().Msg("no database DSN, records are kept in memory")
		return store.NewMemoryRecordRepository(), func() {}, nil
	}

	db, err := store.NewConnectPostgres(ctx, cfg.DSN, log)
	if err != nil {
		return nil, nil, err
	}

	return store.NewPostgresRecordRepository(db, log), func() { _ = db.Close() }, nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
