package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=server_interfaces.go -destination=../mock/server_store_mock.go -package=mock

// RecordRepository stores the backend's zones, records and change log.
// Every call is scoped to one principal and zone.
//
// Mutations append to the change log in the same transaction as the record
// write.
type RecordRepository interface {
	// EnsureZone creates the zone if it does not exist.
	EnsureZone(ctx context.Context, principal, zone string) error
	ZoneExists(ctx context.Context, principal, zone string) (bool, error)

	CreateRecord(ctx context.Context, principal, zone string, record models.RemoteRecord) error

	// GetRecord returns ErrRecordNotFound for absent or deleted records.
	GetRecord(ctx context.Context, principal, zone, id string) (models.RemoteRecord, error)

	// UpdateRecord replaces payload and modification date of a live record.
	UpdateRecord(ctx context.Context, principal, zone string, record models.RemoteRecord) error

	DeleteRecord(ctx context.Context, principal, zone, id string, deletedAt time.Time) error

	// Changes returns up to limit change log entries with Seq > afterSeq,
	// oldest first, together with the zone's current head sequence.
	Changes(ctx context.Context, principal, zone string, afterSeq int64, limit int) (changes []models.Change, head int64, err error)
}
