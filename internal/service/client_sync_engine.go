// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/workers"
	"github.com/MKhiriev/go-sync-engine/models"
)

type hookKind int

const (
	hookInsert hookKind = iota
	hookUpdate
	hookDelete
)

// hookEvent is a listener notification collected inside a queue task and
// delivered after the task returns.
type hookEvent[T models.Syncable] struct {
	kind   hookKind
	record T
}

type syncEngine[T models.Syncable] struct {
	local  store.LocalStore[T]
	remote adapter.RemoteInterface
	state  *syncState
	queue  *workers.SerialQueue
	router *NotificationRouter

	hooks       Hooks[T]
	resyncDelay time.Duration
	now         func() time.Time

	syncing atomic.Bool

	telemetry engineTelemetry
	logger    *logger.Logger
}

// NewSyncEngine loads the persisted cursor and principal identity from
// state and starts the engine's serial queue.
func NewSyncEngine[T models.Syncable](
	ctx context.Context,
	local store.LocalStore[T],
	remote adapter.RemoteInterface,
	state store.StateStore,
	opts EngineOptions[T],
	log *logger.Logger,
) (SyncEngine[T], error) {
	st, err := loadSyncState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("load sync state: %w", err)
	}

	if opts.ResyncDelay <= 0 {
		opts.ResyncDelay = config.DefaultResyncDelay
	}

	e := &syncEngine[T]{
		local:       local,
		remote:      remote,
		state:       st,
		queue:       workers.NewSerialQueue(),
		hooks:       opts.Hooks,
		resyncDelay: opts.ResyncDelay,
		now:         time.Now,
		telemetry:   newEngineTelemetry(log),
		logger:      log,
	}
	e.router = NewNotificationRouter(e, log)

	// the queue outlives ctx; Close stops it
	e.queue.Start(context.WithoutCancel(ctx))

	return e, nil
}

func (e *syncEngine[T]) IsSyncing() bool {
	return e.syncing.Load()
}

func (e *syncEngine[T]) Close() {
	e.queue.Stop()
}

// do runs fn on the queue and delivers the hook events it produced.
func (e *syncEngine[T]) do(ctx context.Context, fn func(ctx context.Context, events *[]hookEvent[T]) error) error {
	var events []hookEvent[T]
	err := e.queue.Do(ctx, func(ctx context.Context) error {
		return fn(ctx, &events)
	})
	e.fire(events)
	return err
}

func (e *syncEngine[T]) fire(events []hookEvent[T]) {
	for _, ev := range events {
		var hook func(T)
		switch ev.kind {
		case hookInsert:
			hook = e.hooks.OnInsert
		case hookUpdate:
			hook = e.hooks.OnUpdate
		case hookDelete:
			hook = e.hooks.OnDelete
		}
		if hook != nil {
			hook(ev.record)
		}
	}
}

// applyRemoteRecord writes a remote record into the local store.
//
// Without a local match the record is inserted as synced. With a match and
// compareDates set, the remote wins only when strictly newer; otherwise the
// local record is kept and marked dirty for the upload phase. Without
// compareDates the remote always wins.
func (e *syncEngine[T]) applyRemoteRecord(ctx context.Context, remote models.RemoteRecord, compareDates bool, events *[]hookEvent[T], stats *cycleStats) error {
	log := logger.FromContext(ctx)

	record, found, err := e.local.RecordByRemoteID(ctx, remote.Identifier)
	if err != nil {
		return fmt.Errorf("look up %s: %w", remote.Identifier, err)
	}

	if !found {
		record, err = e.local.NewRecord(ctx)
		if err != nil {
			return fmt.Errorf("new record for %s: %w", remote.Identifier, err)
		}
		if err = record.ApplyPayload(remote.Payload.Only(record.SyncFields())); err != nil {
			return fmt.Errorf("apply payload of %s: %w", remote.Identifier, err)
		}
		meta := record.Meta()
		meta.RemoteID = remote.Identifier
		meta.ModifiedAt = remote.ModificationDate
		meta.Synced = true

		if err = e.local.Add(ctx, record); err != nil {
			return fmt.Errorf("insert %s: %w", remote.Identifier, err)
		}

		log.Debug().Str("func", "syncEngine.applyRemoteRecord").
			Str("remote_id", remote.Identifier).
			Msg("remote record inserted")
		*events = append(*events, hookEvent[T]{kind: hookInsert, record: record})
		stats.Inserted++
		return nil
	}

	current := e.local.PayloadOf(record)
	incoming := remote.Payload.Only(record.SyncFields())
	changed := !current.Clone().Merge(incoming).Equal(current)

	if compareDates && !remote.IsNewerThan(e.local.ModificationDate(record)) {
		if !changed {
			// an echo of our own upload carries the local content; marking it
			// dirty would reupload it and bump the remote timestamp every cycle
			return nil
		}
		// local wins: keep the payload, push it in the upload phase
		if e.local.SyncStatus(record) {
			if err = e.local.SetSyncStatus(ctx, record, false); err != nil {
				return fmt.Errorf("mark %s dirty: %w", remote.Identifier, err)
			}
		}
		log.Debug().Str("func", "syncEngine.applyRemoteRecord").
			Str("remote_id", remote.Identifier).
			Msg("local record is not older than remote, deferring reupload")
		stats.Conflicts++
		return nil
	}

	if changed {
		if err = e.local.ApplyPayload(ctx, record, incoming); err != nil {
			return fmt.Errorf("overwrite %s: %w", remote.Identifier, err)
		}
	}
	if err = e.local.SetModificationDate(ctx, record, remote.ModificationDate); err != nil {
		return fmt.Errorf("stamp %s: %w", remote.Identifier, err)
	}
	if err = e.local.SetSyncStatus(ctx, record, true); err != nil {
		return fmt.Errorf("mark %s synced: %w", remote.Identifier, err)
	}

	if changed {
		log.Debug().Str("func", "syncEngine.applyRemoteRecord").
			Str("remote_id", remote.Identifier).
			Msg("local record overwritten by remote")
		*events = append(*events, hookEvent[T]{kind: hookUpdate, record: record})
		stats.Updated++
	}
	return nil
}

// applyRemoteDeletion deletes the local record bound to remoteID. No remote
// call is made.
func (e *syncEngine[T]) applyRemoteDeletion(ctx context.Context, remoteID string, events *[]hookEvent[T], stats *cycleStats) error {
	record, found, err := e.local.RecordByRemoteID(ctx, remoteID)
	if err != nil {
		return fmt.Errorf("look up %s: %w", remoteID, err)
	}
	if !found {
		return nil
	}

	if err = e.local.Delete(ctx, record); err != nil {
		return fmt.Errorf("delete %s: %w", remoteID, err)
	}

	logger.FromContext(ctx).Debug().Str("func", "syncEngine.applyRemoteDeletion").
		Str("remote_id", remoteID).
		Msg("local record deleted by remote")
	*events = append(*events, hookEvent[T]{kind: hookDelete, record: record})
	stats.Deleted++
	return nil
}
