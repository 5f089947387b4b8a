package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

// SQLiteLocalStore keeps records of one kind in the local_records table.
// Several kinds may share a database.
type SQLiteLocalStore[T models.Syncable] struct {
	db        *DB
	kind      string
	newRecord func() T
	ids       utils.IDGenerator
	logger    *logger.Logger
}

// NewSQLiteLocalStore returns a store for records of the given kind.
// newRecord must return a fresh zero record on each call.
func NewSQLiteLocalStore[T models.Syncable](db *DB, kind string, newRecord func() T, ids utils.IDGenerator, log *logger.Logger) *SQLiteLocalStore[T] {
	return &SQLiteLocalStore[T]{
		db:        db,
		kind:      kind,
		newRecord: newRecord,
		ids:       ids,
		logger:    log,
	}
}

func (s *SQLiteLocalStore[T]) NewRecord(_ context.Context) (T, error) {
	record := s.newRecord()
	record.Meta().LocalID = s.ids.Generate()
	return record, nil
}

func (s *SQLiteLocalStore[T]) AllRecords(ctx context.Context) ([]T, error) {
	return s.selectRecords(ctx, localRecordFilter{})
}

func (s *SQLiteLocalStore[T]) UnsyncedRecords(ctx context.Context) ([]T, error) {
	return s.selectRecords(ctx, localRecordFilter{OnlyUnsynced: true})
}

func (s *SQLiteLocalStore[T]) RecordByRemoteID(ctx context.Context, remoteID string) (T, bool, error) {
	var zero T
	if remoteID == "" {
		return zero, false, nil
	}

	records, err := s.selectRecords(ctx, localRecordFilter{RemoteID: remoteID})
	if err != nil {
		return zero, false, err
	}
	if len(records) == 0 {
		return zero, false, nil
	}

	return records[0], true, nil
}

func (s *SQLiteLocalStore[T]) Add(ctx context.Context, record T) error {
	log := logger.FromContext(ctx)

	meta := record.Meta()
	if meta.LocalID == "" {
		meta.LocalID = s.ids.Generate()
	}

	payload, err := json.Marshal(record.Payload())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}

	query, args, err := buildInsertLocalRecordQuery(s.kind, localRecordRow{
		LocalID:    meta.LocalID,
		RemoteID:   nullableString(meta.RemoteID),
		ModifiedAt: unixNano(meta.ModifiedAt),
		Synced:     meta.Synced,
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateRemoteID, meta.RemoteID)
		}
		log.Err(err).
			Str("func", "SQLiteLocalStore.Add").
			Str("local_id", meta.LocalID).
			Msg("failed to insert local record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *SQLiteLocalStore[T]) Save(ctx context.Context, record T) error {
	payload, err := json.Marshal(record.Payload())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}
	return s.update(ctx, record, map[string]any{"payload": payload})
}

func (s *SQLiteLocalStore[T]) Delete(ctx context.Context, record T) error {
	log := logger.FromContext(ctx)

	localID := record.Meta().LocalID
	if localID == "" {
		return ErrRecordNotStored
	}

	query, args, err := buildDeleteLocalRecordQuery(s.kind, localID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "SQLiteLocalStore.Delete").
			Str("local_id", localID).
			Msg("failed to delete local record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *SQLiteLocalStore[T]) RemoteID(record T) string {
	return record.Meta().RemoteID
}

func (s *SQLiteLocalStore[T]) SetRemoteID(ctx context.Context, record T, remoteID string) error {
	if err := s.update(ctx, record, map[string]any{"remote_id": nullableString(remoteID)}); err != nil {
		return err
	}
	record.Meta().RemoteID = remoteID
	return nil
}

func (s *SQLiteLocalStore[T]) ModificationDate(record T) time.Time {
	return record.Meta().ModifiedAt
}

func (s *SQLiteLocalStore[T]) SetModificationDate(ctx context.Context, record T, modifiedAt time.Time) error {
	if err := s.update(ctx, record, map[string]any{"modified_at": unixNano(modifiedAt)}); err != nil {
		return err
	}
	record.Meta().ModifiedAt = modifiedAt
	return nil
}

func (s *SQLiteLocalStore[T]) SyncStatus(record T) bool {
	return record.Meta().Synced
}

func (s *SQLiteLocalStore[T]) SetSyncStatus(ctx context.Context, record T, synced bool) error {
	if err := s.update(ctx, record, map[string]any{"synced": synced}); err != nil {
		return err
	}
	record.Meta().Synced = synced
	return nil
}

func (s *SQLiteLocalStore[T]) PayloadOf(record T) models.Payload {
	return record.Payload()
}

func (s *SQLiteLocalStore[T]) ApplyPayload(ctx context.Context, record T, payload models.Payload) error {
	if err := record.ApplyPayload(payload.Only(record.SyncFields())); err != nil {
		return err
	}
	return s.Save(ctx, record)
}

func (s *SQLiteLocalStore[T]) update(ctx context.Context, record T, set map[string]any) error {
	log := logger.FromContext(ctx)

	localID := record.Meta().LocalID
	if localID == "" {
		return ErrRecordNotStored
	}

	query, args, err := buildUpdateLocalRecordQuery(s.kind, localID, set)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRemoteID
		}
		log.Err(err).
			Str("func", "SQLiteLocalStore.update").
			Str("local_id", localID).
			Msg("failed to update local record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: local id %s", ErrRecordNotFound, localID)
	}

	return nil
}

func (s *SQLiteLocalStore[T]) selectRecords(ctx context.Context, filter localRecordFilter) ([]T, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLocalRecordsQuery(s.kind, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "SQLiteLocalStore.selectRecords").
			Str("kind", s.kind).
			Msg("failed to query local records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var (
			row      localRecordRow
			remoteID sql.NullString
		)
		if err = rows.Scan(&row.LocalID, &remoteID, &row.ModifiedAt, &row.Synced, &row.Payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		record, err := s.decode(row, remoteID.String)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (s *SQLiteLocalStore[T]) decode(row localRecordRow, remoteID string) (T, error) {
	var zero T

	var payload models.Payload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return zero, fmt.Errorf("%w: local id %s: %w", ErrDecodingPayload, row.LocalID, err)
	}

	record := s.newRecord()
	if err := record.ApplyPayload(payload); err != nil {
		return zero, fmt.Errorf("%w: local id %s: %w", ErrDecodingPayload, row.LocalID, err)
	}

	*record.Meta() = models.SyncMeta{
		LocalID:    row.LocalID,
		RemoteID:   remoteID,
		ModifiedAt: fromUnixNano(row.ModifiedAt),
		Synced:     row.Synced,
	}

	return record, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// unixNano maps the zero time to 0; time.Time{}.UnixNano is out of range.
func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
