package service

import (
	"context"
	"fmt"
	"reflect"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

func (e *syncEngine[T]) Create(ctx context.Context, mutate func(T) T) (T, error) {
	var created T

	err := e.do(ctx, func(ctx context.Context, _ *[]hookEvent[T]) error {
		record, err := e.local.NewRecord(ctx)
		if err != nil {
			return fmt.Errorf("new record: %w", err)
		}
		if mutate != nil {
			record = mutate(record)
		}
		if isNil(record) {
			return ErrInvalidRecord
		}

		meta := record.Meta()
		meta.RemoteID = ""
		meta.Synced = false
		meta.ModifiedAt = e.now()

		if err = e.local.Add(ctx, record); err != nil {
			return fmt.Errorf("add record locally: %w", err)
		}
		created = record

		return e.pushCreate(ctx, record)
	})

	return created, err
}

func (e *syncEngine[T]) Update(ctx context.Context, mutate func() T) error {
	return e.do(ctx, func(ctx context.Context, _ *[]hookEvent[T]) error {
		if mutate == nil {
			return ErrInvalidRecord
		}
		record := mutate()
		if isNil(record) {
			return ErrInvalidRecord
		}

		if err := e.local.Save(ctx, record); err != nil {
			return fmt.Errorf("save record locally: %w", err)
		}
		if err := e.local.SetModificationDate(ctx, record, e.now()); err != nil {
			return fmt.Errorf("stamp record: %w", err)
		}
		if err := e.local.SetSyncStatus(ctx, record, false); err != nil {
			return fmt.Errorf("mark record dirty: %w", err)
		}

		if e.local.RemoteID(record) == "" {
			return ErrNotYetSynced
		}

		return e.pushUpdate(ctx, record)
	})
}

func (e *syncEngine[T]) Delete(ctx context.Context, record T) error {
	if isNil(record) {
		return ErrInvalidRecord
	}

	return e.do(ctx, func(ctx context.Context, _ *[]hookEvent[T]) error {
		remoteID := e.local.RemoteID(record)

		if err := e.local.Delete(ctx, record); err != nil {
			return fmt.Errorf("delete record locally: %w", err)
		}
		if remoteID == "" {
			return nil
		}

		if err := e.remote.DeleteRecord(ctx, remoteID); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "syncEngine.Delete").
				Str("remote_id", remoteID).
				Msg("remote delete failed")
			return fmt.Errorf("delete %s on remote: %w", remoteID, mapAdapterError(err))
		}
		return nil
	})
}

// pushCreate creates record on the remote and binds the returned id. On
// failure the record stays local-only and dirty.
func (e *syncEngine[T]) pushCreate(ctx context.Context, record T) error {
	remoteID, err := e.remote.CreateRecord(ctx, e.local.PayloadOf(record))
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "syncEngine.pushCreate").
			Str("local_id", record.Meta().LocalID).
			Msg("remote create failed, record stays dirty")
		return fmt.Errorf("create on remote: %w", mapAdapterError(err))
	}

	if err = e.local.SetRemoteID(ctx, record, remoteID); err != nil {
		return fmt.Errorf("bind remote id %s: %w", remoteID, err)
	}
	if err = e.local.SetSyncStatus(ctx, record, true); err != nil {
		return fmt.Errorf("mark %s synced: %w", remoteID, err)
	}
	return nil
}

// pushUpdate fetches the current remote record, merges the local payload
// into it and saves it back. A failed fetch unbinds the remote id so the
// next upload recreates the record.
func (e *syncEngine[T]) pushUpdate(ctx context.Context, record T) error {
	log := logger.FromContext(ctx)
	remoteID := e.local.RemoteID(record)

	fetched, err := e.remote.FetchRecord(ctx, remoteID)
	if err != nil {
		log.Warn().Err(err).Str("func", "syncEngine.pushUpdate").
			Str("remote_id", remoteID).
			Msg("fetch before modify failed, unbinding remote id")
		if clearErr := e.local.SetRemoteID(ctx, record, ""); clearErr != nil {
			log.Err(clearErr).Str("func", "syncEngine.pushUpdate").Msg("failed to clear remote id")
		}
		if clearErr := e.local.SetSyncStatus(ctx, record, false); clearErr != nil {
			log.Err(clearErr).Str("func", "syncEngine.pushUpdate").Msg("failed to mark record dirty")
		}
		return fmt.Errorf("fetch %s: %w", remoteID, mapAdapterError(err))
	}

	fetched.Identifier = remoteID
	fetched.Payload = fetched.Payload.Clone().Merge(e.local.PayloadOf(record))
	fetched.ModificationDate = e.local.ModificationDate(record)

	if _, _, err = e.remote.ModifyRecord(ctx, fetched); err != nil {
		log.Warn().Err(err).Str("func", "syncEngine.pushUpdate").
			Str("remote_id", remoteID).
			Msg("remote modify failed, record stays dirty")
		return fmt.Errorf("modify %s: %w", remoteID, mapAdapterError(err))
	}

	if err = e.local.SetSyncStatus(ctx, record, true); err != nil {
		return fmt.Errorf("mark %s synced: %w", remoteID, err)
	}
	return nil
}

func isNil[T models.Syncable](record T) bool {
	if any(record) == nil {
		return true
	}
	v := reflect.ValueOf(record)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
