package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

type zoneKey struct {
	principal string
	zone      string
}

type memoryZone struct {
	records map[string]*memoryRecord
	changes []memoryChange
	seq     int64
}

type memoryRecord struct {
	record  models.RemoteRecord
	deleted bool
}

type memoryChange struct {
	seq      int64
	recordID string
}

type memoryRecordRepository struct {
	mu    sync.RWMutex
	zones map[zoneKey]*memoryZone
}

// NewMemoryRecordRepository returns a RecordRepository that lives in
// process memory. Used when no database DSN is configured.
func NewMemoryRecordRepository() RecordRepository {
	return &memoryRecordRepository{zones: make(map[zoneKey]*memoryZone)}
}

func (r *memoryRecordRepository) EnsureZone(_ context.Context, principal, zone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := zoneKey{principal, zone}
	if _, ok := r.zones[key]; !ok {
		r.zones[key] = &memoryZone{records: make(map[string]*memoryRecord)}
	}
	return nil
}

func (r *memoryRecordRepository) ZoneExists(_ context.Context, principal, zone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.zones[zoneKey{principal, zone}]
	return ok, nil
}

func (r *memoryRecordRepository) CreateRecord(_ context.Context, principal, zone string, record models.RemoteRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	z, err := r.zone(principal, zone)
	if err != nil {
		return err
	}
	if _, ok := z.records[record.Identifier]; ok {
		return fmt.Errorf("%w: record %s already exists", ErrExecutingStatement, record.Identifier)
	}

	record.Payload = record.Payload.Clone()
	z.records[record.Identifier] = &memoryRecord{record: record}
	z.appendChange(record.Identifier)
	return nil
}

func (r *memoryRecordRepository) GetRecord(_ context.Context, principal, zone, id string) (models.RemoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, err := r.zone(principal, zone)
	if err != nil {
		return models.RemoteRecord{}, err
	}
	stored, ok := z.records[id]
	if !ok || stored.deleted {
		return models.RemoteRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	out := stored.record
	out.Payload = out.Payload.Clone()
	return out, nil
}

func (r *memoryRecordRepository) UpdateRecord(_ context.Context, principal, zone string, record models.RemoteRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	z, err := r.zone(principal, zone)
	if err != nil {
		return err
	}
	stored, ok := z.records[record.Identifier]
	if !ok || stored.deleted {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, record.Identifier)
	}

	record.Payload = record.Payload.Clone()
	stored.record = record
	z.appendChange(record.Identifier)
	return nil
}

func (r *memoryRecordRepository) DeleteRecord(_ context.Context, principal, zone, id string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	z, err := r.zone(principal, zone)
	if err != nil {
		return err
	}
	stored, ok := z.records[id]
	if !ok || stored.deleted {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	stored.deleted = true
	stored.record.ModificationDate = deletedAt
	z.appendChange(id)
	return nil
}

func (r *memoryRecordRepository) Changes(_ context.Context, principal, zone string, afterSeq int64, limit int) ([]models.Change, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, err := r.zone(principal, zone)
	if err != nil {
		return nil, 0, err
	}

	var out []models.Change
	for _, c := range z.changes {
		if c.seq <= afterSeq {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}

		stored := z.records[c.recordID]
		change := models.Change{
			Seq:      c.seq,
			RecordID: c.recordID,
			Deleted:  stored.deleted,
			Record: models.RemoteRecord{
				Identifier:       c.recordID,
				ModificationDate: stored.record.ModificationDate,
			},
		}
		if !stored.deleted {
			change.Record.Payload = stored.record.Payload.Clone()
		}
		out = append(out, change)
	}

	return out, z.seq, nil
}

// zone expects r.mu to be held.
func (r *memoryRecordRepository) zone(principal, zone string) (*memoryZone, error) {
	z, ok := r.zones[zoneKey{principal, zone}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, zone)
	}
	return z, nil
}

func (z *memoryZone) appendChange(recordID string) {
	z.seq++
	z.changes = append(z.changes, memoryChange{seq: z.seq, recordID: recordID})
}
