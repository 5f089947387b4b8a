package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

// MemoryLocalStore keeps records in memory. The stored values are the
// record pointers themselves, so callers observe every change in place.
type MemoryLocalStore[T models.Syncable] struct {
	mu        sync.RWMutex
	records   map[string]T
	order     []string
	newRecord func() T
	ids       utils.IDGenerator
}

func NewMemoryLocalStore[T models.Syncable](newRecord func() T, ids utils.IDGenerator) *MemoryLocalStore[T] {
	return &MemoryLocalStore[T]{
		records:   make(map[string]T),
		newRecord: newRecord,
		ids:       ids,
	}
}

func (s *MemoryLocalStore[T]) NewRecord(_ context.Context) (T, error) {
	record := s.newRecord()
	record.Meta().LocalID = s.ids.Generate()
	return record, nil
}

func (s *MemoryLocalStore[T]) AllRecords(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *MemoryLocalStore[T]) UnsyncedRecords(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, id := range s.order {
		if record := s.records[id]; !record.Meta().Synced {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *MemoryLocalStore[T]) RecordByRemoteID(_ context.Context, remoteID string) (T, bool, error) {
	var zero T
	if remoteID == "" {
		return zero, false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if record := s.records[id]; record.Meta().RemoteID == remoteID {
			return record, true, nil
		}
	}
	return zero, false, nil
}

func (s *MemoryLocalStore[T]) Add(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := record.Meta()
	if meta.LocalID == "" {
		meta.LocalID = s.ids.Generate()
	}
	if s.remoteIDTaken(meta.RemoteID, meta.LocalID) {
		return ErrDuplicateRemoteID
	}
	if _, ok := s.records[meta.LocalID]; !ok {
		s.order = append(s.order, meta.LocalID)
	}
	s.records[meta.LocalID] = record
	return nil
}

func (s *MemoryLocalStore[T]) Save(_ context.Context, record T) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkStored(record)
}

func (s *MemoryLocalStore[T]) Delete(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	localID := record.Meta().LocalID
	if localID == "" {
		return ErrRecordNotStored
	}
	delete(s.records, localID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == localID })
	return nil
}

func (s *MemoryLocalStore[T]) RemoteID(record T) string {
	return record.Meta().RemoteID
}

func (s *MemoryLocalStore[T]) SetRemoteID(_ context.Context, record T, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStored(record); err != nil {
		return err
	}
	if s.remoteIDTaken(remoteID, record.Meta().LocalID) {
		return ErrDuplicateRemoteID
	}
	record.Meta().RemoteID = remoteID
	return nil
}

func (s *MemoryLocalStore[T]) ModificationDate(record T) time.Time {
	return record.Meta().ModifiedAt
}

func (s *MemoryLocalStore[T]) SetModificationDate(_ context.Context, record T, modifiedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStored(record); err != nil {
		return err
	}
	record.Meta().ModifiedAt = modifiedAt
	return nil
}

func (s *MemoryLocalStore[T]) SyncStatus(record T) bool {
	return record.Meta().Synced
}

func (s *MemoryLocalStore[T]) SetSyncStatus(_ context.Context, record T, synced bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStored(record); err != nil {
		return err
	}
	record.Meta().Synced = synced
	return nil
}

func (s *MemoryLocalStore[T]) PayloadOf(record T) models.Payload {
	return record.Payload()
}

func (s *MemoryLocalStore[T]) ApplyPayload(_ context.Context, record T, payload models.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStored(record); err != nil {
		return err
	}
	return record.ApplyPayload(payload.Only(record.SyncFields()))
}

// checkStored expects s.mu to be held.
func (s *MemoryLocalStore[T]) checkStored(record T) error {
	localID := record.Meta().LocalID
	if localID == "" {
		return ErrRecordNotStored
	}
	if _, ok := s.records[localID]; !ok {
		return ErrRecordNotFound
	}
	return nil
}

// remoteIDTaken expects s.mu to be held.
func (s *MemoryLocalStore[T]) remoteIDTaken(remoteID, exceptLocalID string) bool {
	if remoteID == "" {
		return false
	}
	for id, record := range s.records {
		if id != exceptLocalID && record.Meta().RemoteID == remoteID {
			return true
		}
	}
	return false
}
