// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote record backend.
//
// [RemoteInterface] is the capability set the sync engine needs from a
// backend: single-record CRUD, the paged change feed and the principal
// identity. The package ships an HTTP implementation ([NewHTTPRemote]) and a
// websocket listener for push notifications ([NewWebsocketSubscriber]).
//
// HTTP status codes are mapped to the sentinel errors in errors.go so callers
// can use [errors.Is] without knowing the transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_mock.go -package=mock

// RemoteInterface is implemented by backend adapters.
type RemoteInterface interface {
	// Setup prepares the remote record zone. It is idempotent.
	Setup(ctx context.Context) error

	// CreateRecord stores payload as a new record and returns its identifier.
	CreateRecord(ctx context.Context, payload models.Payload) (string, error)

	// FetchRecord returns the record with remoteID. A missing record yields
	// an error matching [ErrNotFound].
	FetchRecord(ctx context.Context, remoteID string) (models.RemoteRecord, error)

	// ModifyRecord saves record and returns the records the backend stored
	// together with their identifiers.
	ModifyRecord(ctx context.Context, record models.RemoteRecord) ([]models.RemoteRecord, []string, error)

	// DeleteRecord removes the record with remoteID.
	DeleteRecord(ctx context.Context, remoteID string) error

	// FetchChanges returns the page of changes following cursor. A nil
	// cursor requests the full history. Invalidation of cursor is reported
	// through ChangePage.CursorInvalidated, not as an error.
	FetchChanges(ctx context.Context, cursor models.Cursor) (models.ChangePage, error)

	// FetchPrincipalIdentity returns the stable identity of the
	// authenticated account.
	FetchPrincipalIdentity(ctx context.Context) (string, error)
}

// NotificationHandler consumes inbound push notifications.
type NotificationHandler func(ctx context.Context, n models.Notification)
