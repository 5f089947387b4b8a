package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

// SQLiteStateStore keeps engine state in the sync_state table.
type SQLiteStateStore struct {
	db  *DB
	now func() time.Time
}

func NewSQLiteStateStore(db *DB) *SQLiteStateStore {
	return &SQLiteStateStore{db: db, now: time.Now}
}

func (s *SQLiteStateStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := buildSelectStateQuery(key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "SQLiteStateStore.Load").
			Str("key", key).
			Msg("failed to load state")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, true, nil
}

func (s *SQLiteStateStore) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := buildUpsertStateQuery(key, value, s.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "SQLiteStateStore.Save").
			Str("key", key).
			Msg("failed to save state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *SQLiteStateStore) Delete(ctx context.Context, key string) error {
	query, args, err := buildDeleteStateQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// MemoryStateStore is a StateStore backed by a map.
type MemoryStateStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{values: make(map[string][]byte)}
}

func (s *MemoryStateStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return slices.Clone(v), ok, nil
}

func (s *MemoryStateStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = slices.Clone(value)
	return nil
}

func (s *MemoryStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
