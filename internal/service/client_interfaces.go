// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

// SyncEngine keeps a LocalStore of T consistent with a RemoteInterface.
//
// Every operation body runs on the engine's serial queue, so local writes
// and remote calls issued by the engine never overlap. Mutations are not
// blocked by a running sync cycle and may interleave with its phases.
type SyncEngine[T models.Syncable] interface {
	// Create builds a blank record, lets mutate fill it, stores it locally
	// and pushes it. The record is returned even when the push fails; it
	// then stays dirty until the next sync uploads it.
	Create(ctx context.Context, mutate func(T) T) (T, error)

	// Update persists the record returned by mutate, stamps it with the
	// current time and pushes it with fetch-merge-modify.
	Update(ctx context.Context, mutate func() T) error

	// Delete removes the record locally and then on the remote if it was
	// ever pushed. A remote failure does not restore the local record.
	Delete(ctx context.Context, record T) error

	// Sync runs one sync cycle: download, upload, cursor commit. Cursor
	// invalidation restarts the cycle from the beginning of history after
	// the resync delay. Per-record failures are returned together as a
	// *PartialSyncError.
	Sync(ctx context.Context) error

	// SyncAsync runs Sync in its own goroutine and passes the result to
	// completion, if not nil.
	SyncAsync(ctx context.Context, completion func(error))

	IsSyncing() bool

	// HandleNotification applies a push notification.
	HandleNotification(ctx context.Context, n models.Notification) error

	// CheckRemoteIdentityChanged compares the remote principal with the
	// one seen by the previous session and persists the current one.
	CheckRemoteIdentityChanged(ctx context.Context) (models.IdentityState, error)

	// Close stops the serial queue. Later calls fail with
	// workers.ErrQueueStopped.
	Close()
}

// RecordApplier is the part of the engine a NotificationRouter drives.
type RecordApplier interface {
	// RefreshRecord fetches remoteID and writes it into the local store
	// without comparing modification dates. Fetch failures match
	// errRemoteFetch.
	RefreshRecord(ctx context.Context, remoteID string) error

	// RemoveRecord deletes the local record bound to remoteID, if any.
	RemoveRecord(ctx context.Context, remoteID string) error
}

// Syncer is the slice of SyncEngine the periodic job needs.
type Syncer interface {
	Sync(ctx context.Context) error
	IsSyncing() bool
}

// SyncJob runs Syncer.Sync on a ticker.
type SyncJob interface {
	Start(ctx context.Context)
	Stop()
}

// Hooks receive remote-origin changes applied to the local store. They are
// called after the engine's queue released the change, in the order the
// changes were applied, so they may call back into the engine.
type Hooks[T models.Syncable] struct {
	OnInsert func(record T)
	OnUpdate func(record T)
	OnDelete func(record T)
}

// EngineOptions tunes a SyncEngine. Zero values take defaults.
type EngineOptions[T models.Syncable] struct {
	Hooks Hooks[T]

	// ResyncDelay is the wait before rerunning a cycle whose cursor was
	// invalidated.
	ResyncDelay time.Duration
}
