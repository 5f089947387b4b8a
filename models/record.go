// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncMeta is the bookkeeping a local record carries next to its domain
// payload.
type SyncMeta struct {
	// LocalID identifies the record inside the local store. Never sent to
	// the remote.
	LocalID string `json:"-"`

	// RemoteID is the backend identifier. Empty means the record was never
	// pushed.
	RemoteID string `json:"-"`

	// ModifiedAt is the modification timestamp last written locally or
	// taken from the remote record.
	ModifiedAt time.Time `json:"-"`

	// Synced is true when the local payload matches the last known remote
	// state for RemoteID.
	Synced bool `json:"-"`
}

// Meta returns m itself so that any struct embedding SyncMeta exposes its
// bookkeeping through the Syncable contract.
func (m *SyncMeta) Meta() *SyncMeta {
	return m
}

// Syncable is implemented by domain records that take part in
// synchronization.
type Syncable interface {
	// Meta returns a pointer to the record's bookkeeping fields.
	Meta() *SyncMeta

	// SyncFields lists the payload keys that participate in sync.
	SyncFields() []string

	// Payload returns the current values of SyncFields.
	Payload() Payload

	// ApplyPayload overwrites the record's synchronized fields from p.
	// Keys missing from p are left untouched.
	ApplyPayload(p Payload) error
}

// RemoteRecord is the backend representation of a record.
type RemoteRecord struct {
	Identifier       string    `json:"id"`
	ModificationDate time.Time `json:"modified_at"`
	Payload          Payload   `json:"payload"`
}

// IsNewerThan reports whether r was modified strictly after t.
func (r RemoteRecord) IsNewerThan(t time.Time) bool {
	return r.ModificationDate.After(t)
}
