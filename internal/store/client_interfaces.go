// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds persistence for both binaries.
//
// Client side: [LocalStore] keeps the synchronized records and their
// bookkeeping, [StateStore] keeps the engine's durable key/value state
// (change cursor and principal identity). Both have SQLite and in-memory
// implementations.
//
// Backend side: [RecordRepository] stores zones, records and the change log
// in PostgreSQL or in memory.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStore persists records of type T on the client.
//
// Getters read the bookkeeping from the record value; setters update the
// value and persist the change without touching the domain payload.
type LocalStore[T models.Syncable] interface {
	// NewRecord returns a blank record with a fresh local id. It is not
	// persisted until Add.
	NewRecord(ctx context.Context) (T, error)

	AllRecords(ctx context.Context) ([]T, error)

	// RecordByRemoteID returns the record bound to remoteID. found is false
	// when there is none or remoteID is empty.
	RecordByRemoteID(ctx context.Context, remoteID string) (record T, found bool, err error)

	Add(ctx context.Context, record T) error

	// Save persists the record's payload after a caller mutation.
	Save(ctx context.Context, record T) error

	Delete(ctx context.Context, record T) error

	// UnsyncedRecords lists records whose sync status is false.
	UnsyncedRecords(ctx context.Context) ([]T, error)

	RemoteID(record T) string
	SetRemoteID(ctx context.Context, record T, remoteID string) error

	ModificationDate(record T) time.Time
	SetModificationDate(ctx context.Context, record T, modifiedAt time.Time) error

	SyncStatus(record T) bool
	SetSyncStatus(ctx context.Context, record T, synced bool) error

	// PayloadOf returns the record's synchronized fields.
	PayloadOf(record T) models.Payload

	// ApplyPayload overwrites the record's synchronized fields and persists
	// them.
	ApplyPayload(ctx context.Context, record T, payload models.Payload) error
}

// StateStore is a small durable key/value map.
type StateStore interface {
	// Load returns the value under key; ok is false when the key is absent.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
