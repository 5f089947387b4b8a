package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	handler "github.com/MKhiriev/go-sync-engine/internal/handler/http"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/server"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/telemetry"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/internal/workers"
	"github.com/MKhiriev/go-sync-engine/models"
)

// noteKind separates notes from other record kinds in local_records.
const noteKind = "note"

const telemetryShutdownTimeout = 5 * time.Second

type App struct {
	db     *store.DB
	local  store.LocalStore[*models.Note]
	remote adapter.RemoteInterface
	engine service.SyncEngine[*models.Note]

	// workers holds the sync job and, if enabled, the websocket subscriber.
	workers *workers.Workers
	// webhook is nil when no webhook address is configured.
	webhook server.Server

	shutdownTelemetry telemetry.ShutdownFunc

	logger *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		// telemetry is optional
		log.Warn().Err(err).Str("func", "NewApp").Msg("telemetry disabled")
	}

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	remote, err := adapter.NewHTTPRemote(cfg.Adapter, cfg.App, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	app := &App{
		db:                db,
		local:             store.NewSQLiteLocalStore(db, noteKind, models.NewNote, utils.NewUUIDGenerator(), log),
		remote:            remote,
		shutdownTelemetry: shutdownTelemetry,
		logger:            log,
	}

	app.engine, err = service.NewSyncEngine(ctx, app.local, remote, store.NewSQLiteStateStore(db),
		service.EngineOptions[*models.Note]{
			Hooks:       app.hooks(),
			ResyncDelay: cfg.Workers.ResyncDelay,
		}, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sync engine: %w", err)
	}

	background := []workers.Worker{service.NewSyncJob(app.engine, cfg.Workers.SyncInterval, log)}
	if cfg.Adapter.Websocket {
		subscriber, err := adapter.NewWebsocketSubscriber(cfg.Adapter, app.handleNotification, log)
		if err != nil {
			app.engine.Close()
			_ = db.Close()
			return nil, fmt.Errorf("create notification subscriber: %w", err)
		}
		background = append(background, subscriber)
	}
	app.workers = workers.NewWorkers(background...)

	if cfg.Notifications.WebhookAddress != "" {
		webhook := handler.NewWebhookHandler(app.engine, cfg.App.HashKey, log)
		app.webhook, err = server.NewServer(webhook.Init(), cfg.Notifications.WebhookAddress, log)
		if err != nil {
			app.engine.Close()
			_ = db.Close()
			return nil, fmt.Errorf("create webhook server: %w", err)
		}
	}

	return app, nil
}

// Run prepares the remote zone, checks the account, runs a first sync and
// then keeps the background workers going until ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if err := a.remote.Setup(ctx); err != nil {
		a.logger.Err(err).Str("func", "*App.Run").Msg("remote setup failed")
	}

	a.checkIdentity(ctx)

	if err := a.engine.Sync(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "*App.Run").Msg("initial sync finished with errors")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	webhookErr := make(chan error, 1)
	if a.webhook != nil {
		go func() {
			webhookErr <- a.webhook.Serve(ctx)
		}()
	}

	select {
	case <-ctx.Done():
		if a.webhook != nil {
			return <-webhookErr
		}
		return nil
	case err := <-webhookErr:
		return fmt.Errorf("webhook server: %w", err)
	}
}

func (a *App) checkIdentity(ctx context.Context) {
	log := a.logger

	state, err := a.engine.CheckRemoteIdentityChanged(ctx)
	if err != nil {
		log.Warn().Err(err).Str("func", "*App.checkIdentity").Msg("remote identity unknown")
		return
	}

	switch state {
	case models.IdentityChanged:
		log.Warn().Str("func", "*App.checkIdentity").Msg("remote account changed since the last session")
	default:
		log.Info().Str("func", "*App.checkIdentity").Str("state", state.String()).Msg("remote identity checked")
	}
}

func (a *App) handleNotification(ctx context.Context, n models.Notification) {
	if err := a.engine.HandleNotification(ctx, n); err != nil {
		a.logger.Err(err).Str("func", "*App.handleNotification").
			Str("notification", n.String()).
			Msg("failed to apply notification")
	}
}

func (a *App) hooks() service.Hooks[*models.Note] {
	event := func(msg string) func(n *models.Note) {
		return func(n *models.Note) {
			a.logger.Info().Str("local_id", n.LocalID).
				Str("remote_id", n.RemoteID).
				Str("title", n.Title).
				Msg(msg)
		}
	}

	return service.Hooks[*models.Note]{
		OnInsert: event("note received"),
		OnUpdate: event("note updated remotely"),
		OnDelete: event("note deleted remotely"),
	}
}

func (a *App) close() {
	a.engine.Close()

	var errs []error
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close local database: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer cancel()
	if err := a.shutdownTelemetry(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		a.logger.Err(err).Str("func", "*App.close").Msg("error releasing client resources")
	}
}
