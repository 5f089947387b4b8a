package service

import (
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Services groups the backend services.
type Services struct {
	RecordService   RecordService
	AuthService     AuthService
	AppInfoService  AppInfoService
	NotificationHub NotificationHub
}

func NewServices(repo store.RecordRepository, cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hub := NewNotificationHub(logger)

	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		RecordService:   NewRecordService(repo, hub, utils.NewUUIDGenerator(), cfg.FeedEpoch, cfg.PageSize, logger),
		AuthService:     NewAuthService(cfg.App, logger),
		AppInfoService:  appInfo,
		NotificationHub: hub,
	}, nil
}
