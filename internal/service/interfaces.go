package service

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

// RecordService is the backend side of the record API. The principal is
// taken from the request context.
type RecordService interface {
	EnsureZone(ctx context.Context, zone string) error
	CreateRecord(ctx context.Context, zone string, payload models.Payload) (models.RemoteRecord, error)
	GetRecord(ctx context.Context, zone, id string) (models.RemoteRecord, error)

	// ModifyRecord replaces the record's payload. The modification date is
	// always assigned by the backend.
	ModifyRecord(ctx context.Context, zone string, record models.RemoteRecord) ([]models.RemoteRecord, error)
	DeleteRecord(ctx context.Context, zone, id string) error

	// Changes returns the feed page following cursor. An unusable cursor
	// yields a page with CursorInvalidated set.
	Changes(ctx context.Context, zone string, cursor models.Cursor, limit int) (models.ChangePage, error)
}

// NotificationPublisher fans record changes out to subscribers.
type NotificationPublisher interface {
	Publish(principal, zone string, n models.Notification)
}

// NotificationHub lets connections subscribe to a zone's notifications.
type NotificationHub interface {
	NotificationPublisher

	// Subscribe returns a channel of notifications and a function that
	// ends the subscription and closes the channel.
	Subscribe(principal, zone string) (<-chan models.Notification, func())
}

type AuthService interface {
	CreateToken(ctx context.Context, principal string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
