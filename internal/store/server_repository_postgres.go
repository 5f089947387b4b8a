package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

type postgresRecordRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewPostgresRecordRepository returns a RecordRepository over db.
func NewPostgresRecordRepository(db *DB, log *logger.Logger) RecordRepository {
	return &postgresRecordRepository{
		db:     db,
		now:    time.Now,
		logger: log,
	}
}

func (r *postgresRecordRepository) EnsureZone(ctx context.Context, principal, zone string) error {
	query, args, err := buildEnsureZoneQuery(principal, zone, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "postgresRecordRepository.EnsureZone").
			Str("zone", zone).
			Msg("failed to create zone")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *postgresRecordRepository) ZoneExists(ctx context.Context, principal, zone string) (bool, error) {
	query, args, err := buildZoneExistsQuery(principal, zone)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return true, nil
}

func (r *postgresRecordRepository) CreateRecord(ctx context.Context, principal, zone string, record models.RemoteRecord) error {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildInsertRecordQuery(principal, zone, record.Identifier, payload, record.ModificationDate)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if isPgUniqueViolation(err) {
				return fmt.Errorf("%w: record %s already exists", ErrExecutingStatement, record.Identifier)
			}
			logger.FromContext(ctx).Err(err).
				Str("func", "postgresRecordRepository.CreateRecord").
				Str("record_id", record.Identifier).
				Msg("failed to insert record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return appendChange(ctx, tx, principal, zone, record.Identifier, false, record.ModificationDate)
	})
}

func (r *postgresRecordRepository) GetRecord(ctx context.Context, principal, zone, id string) (models.RemoteRecord, error) {
	query, args, err := buildSelectRecordQuery(principal, zone, id)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		record  models.RemoteRecord
		payload []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&record.Identifier, &payload, &record.ModificationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RemoteRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "postgresRecordRepository.GetRecord").
			Str("record_id", id).
			Msg("failed to get record")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal(payload, &record.Payload); err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}
	record.ModificationDate = record.ModificationDate.UTC()

	return record, nil
}

func (r *postgresRecordRepository) UpdateRecord(ctx context.Context, principal, zone string, record models.RemoteRecord) error {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildUpdateRecordQuery(principal, zone, record.Identifier, payload, record.ModificationDate)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err = execOne(ctx, tx, query, args, record.Identifier); err != nil {
			return err
		}

		return appendChange(ctx, tx, principal, zone, record.Identifier, false, record.ModificationDate)
	})
}

func (r *postgresRecordRepository) DeleteRecord(ctx context.Context, principal, zone, id string, deletedAt time.Time) error {
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildSoftDeleteRecordQuery(principal, zone, id, deletedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err = execOne(ctx, tx, query, args, id); err != nil {
			return err
		}

		return appendChange(ctx, tx, principal, zone, id, true, deletedAt)
	})
}

func (r *postgresRecordRepository) Changes(ctx context.Context, principal, zone string, afterSeq int64, limit int) ([]models.Change, int64, error) {
	log := logger.FromContext(ctx)

	headQuery, headArgs, err := buildSelectHeadSeqQuery(principal, zone)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var head int64
	if err = r.db.QueryRowContext(ctx, headQuery, headArgs...).Scan(&head); err != nil {
		log.Err(err).Str("func", "postgresRecordRepository.Changes").Msg("failed to read head sequence")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	query, args, err := buildSelectChangesQuery(principal, zone, afterSeq, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "postgresRecordRepository.Changes").Msg("failed to query change log")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var changes []models.Change
	for rows.Next() {
		var (
			change  models.Change
			payload []byte
		)
		if err = rows.Scan(&change.Seq, &change.RecordID, &change.Deleted, &payload, &change.Record.ModificationDate); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		change.Record.Identifier = change.RecordID
		change.Record.ModificationDate = change.Record.ModificationDate.UTC()
		if !change.Deleted {
			if err = json.Unmarshal(payload, &change.Record.Payload); err != nil {
				return nil, 0, fmt.Errorf("%w: %w", ErrDecodingPayload, err)
			}
		}
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, head, nil
}

func appendChange(ctx context.Context, tx *sql.Tx, principal, zone, recordID string, deleted bool, at time.Time) error {
	query, args, err := buildInsertChangeQuery(principal, zone, recordID, deleted, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// execOne runs a statement that must touch exactly one live record.
func execOne(ctx context.Context, tx *sql.Tx, query string, args []any, id string) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}
