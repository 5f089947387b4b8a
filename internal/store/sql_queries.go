package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	localRecordsTable = "local_records"
	syncStateTable    = "sync_state"

	zonesTable   = "zones"
	recordsTable = "records"
	changesTable = "changes"
)

var (
	sqliteBuilder   = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	postgresBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
)

var localRecordColumns = []string{"local_id", "remote_id", "modified_at", "synced", "payload"}

// localRecordRow is the storage form of a local record.
type localRecordRow struct {
	LocalID    string
	RemoteID   *string
	ModifiedAt int64
	Synced     bool
	Payload    []byte
}

// localRecordFilter narrows buildSelectLocalRecordsQuery. Zero value selects
// every record of the kind.
type localRecordFilter struct {
	RemoteID     string
	OnlyUnsynced bool
}

func buildSelectLocalRecordsQuery(kind string, filter localRecordFilter) (string, []any, error) {
	q := sqliteBuilder.
		Select(localRecordColumns...).
		From(localRecordsTable).
		Where(sq.Eq{"kind": kind})

	if filter.RemoteID != "" {
		q = q.Where(sq.Eq{"remote_id": filter.RemoteID})
	}
	if filter.OnlyUnsynced {
		q = q.Where(sq.Eq{"synced": false})
	}

	return q.OrderBy("local_id").ToSql()
}

func buildInsertLocalRecordQuery(kind string, row localRecordRow) (string, []any, error) {
	return sqliteBuilder.
		Insert(localRecordsTable).
		Columns(append([]string{"kind"}, localRecordColumns...)...).
		Values(kind, row.LocalID, row.RemoteID, row.ModifiedAt, row.Synced, row.Payload).
		ToSql()
}

// buildUpdateLocalRecordQuery updates the given columns of one record.
func buildUpdateLocalRecordQuery(kind, localID string, set map[string]any) (string, []any, error) {
	return sqliteBuilder.
		Update(localRecordsTable).
		SetMap(set).
		Where(sq.Eq{"kind": kind, "local_id": localID}).
		ToSql()
}

func buildDeleteLocalRecordQuery(kind, localID string) (string, []any, error) {
	return sqliteBuilder.
		Delete(localRecordsTable).
		Where(sq.Eq{"kind": kind, "local_id": localID}).
		ToSql()
}

func buildSelectStateQuery(key string) (string, []any, error) {
	return sqliteBuilder.
		Select("value").
		From(syncStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildUpsertStateQuery(key string, value []byte, now time.Time) (string, []any, error) {
	return sqliteBuilder.
		Insert(syncStateTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now.UnixNano()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteStateQuery(key string) (string, []any, error) {
	return sqliteBuilder.
		Delete(syncStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

// Backend queries.

func buildEnsureZoneQuery(principal, zone string, now time.Time) (string, []any, error) {
	return postgresBuilder.
		Insert(zonesTable).
		Columns("principal", "name", "created_at").
		Values(principal, zone, now).
		Suffix("ON CONFLICT (principal, name) DO NOTHING").
		ToSql()
}

func buildZoneExistsQuery(principal, zone string) (string, []any, error) {
	return postgresBuilder.
		Select("1").
		From(zonesTable).
		Where(sq.Eq{"principal": principal, "name": zone}).
		ToSql()
}

func buildInsertRecordQuery(principal, zone, id string, payload []byte, modifiedAt time.Time) (string, []any, error) {
	return postgresBuilder.
		Insert(recordsTable).
		Columns("id", "principal", "zone", "payload", "modified_at", "deleted").
		Values(id, principal, zone, payload, modifiedAt, false).
		ToSql()
}

func buildSelectRecordQuery(principal, zone, id string) (string, []any, error) {
	return postgresBuilder.
		Select("id", "payload", "modified_at").
		From(recordsTable).
		Where(sq.Eq{"id": id, "principal": principal, "zone": zone, "deleted": false}).
		ToSql()
}

func buildUpdateRecordQuery(principal, zone, id string, payload []byte, modifiedAt time.Time) (string, []any, error) {
	return postgresBuilder.
		Update(recordsTable).
		Set("payload", payload).
		Set("modified_at", modifiedAt).
		Where(sq.Eq{"id": id, "principal": principal, "zone": zone, "deleted": false}).
		ToSql()
}

func buildSoftDeleteRecordQuery(principal, zone, id string, deletedAt time.Time) (string, []any, error) {
	return postgresBuilder.
		Update(recordsTable).
		Set("deleted", true).
		Set("modified_at", deletedAt).
		Where(sq.Eq{"id": id, "principal": principal, "zone": zone, "deleted": false}).
		ToSql()
}

func buildInsertChangeQuery(principal, zone, recordID string, deleted bool, at time.Time) (string, []any, error) {
	return postgresBuilder.
		Insert(changesTable).
		Columns("principal", "zone", "record_id", "deleted", "changed_at").
		Values(principal, zone, recordID, deleted, at).
		ToSql()
}

// buildSelectChangesQuery joins the change log with the current record
// state, oldest change first.
func buildSelectChangesQuery(principal, zone string, afterSeq int64, limit int) (string, []any, error) {
	q := postgresBuilder.
		Select("c.seq", "c.record_id", "r.deleted", "r.payload", "r.modified_at").
		From(changesTable + " c").
		Join(recordsTable + " r ON r.id = c.record_id").
		Where(sq.Eq{"c.principal": principal, "c.zone": zone}).
		Where(sq.Gt{"c.seq": afterSeq}).
		OrderBy("c.seq")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	return q.ToSql()
}

func buildSelectHeadSeqQuery(principal, zone string) (string, []any, error) {
	return postgresBuilder.
		Select("COALESCE(MAX(seq), 0)").
		From(changesTable).
		Where(sq.Eq{"principal": principal, "zone": zone}).
		ToSql()
}
