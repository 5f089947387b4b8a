package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Keys of the engine's durable state.
const (
	stateKeyCursor    = "last_cursor"
	stateKeyPrincipal = "last_principal_identity"
)

// syncState caches the persisted cursor and principal identity. It is
// loaded once at engine construction and written through on every change.
type syncState struct {
	store store.StateStore

	mu           sync.RWMutex
	cursor       models.Cursor
	principal    string
	hasPrincipal bool
}

func loadSyncState(ctx context.Context, st store.StateStore) (*syncState, error) {
	s := &syncState{store: st}

	cursor, ok, err := st.Load(ctx, stateKeyCursor)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", stateKeyCursor, err)
	}
	if ok && len(cursor) > 0 {
		s.cursor = models.Cursor(cursor)
	}

	principal, ok, err := st.Load(ctx, stateKeyPrincipal)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", stateKeyPrincipal, err)
	}
	if ok {
		s.principal = string(principal)
		s.hasPrincipal = true
	}

	return s, nil
}

func (s *syncState) Cursor() models.Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// SetCursor persists cursor. A zero cursor removes the key.
func (s *syncState) SetCursor(ctx context.Context, cursor models.Cursor) error {
	var err error
	if cursor.IsZero() {
		err = s.store.Delete(ctx, stateKeyCursor)
	} else {
		err = s.store.Save(ctx, stateKeyCursor, cursor)
	}
	if err != nil {
		return fmt.Errorf("persist cursor: %w", err)
	}

	s.mu.Lock()
	s.cursor = cursor
	s.mu.Unlock()
	return nil
}

func (s *syncState) Principal() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal, s.hasPrincipal
}

func (s *syncState) SetPrincipal(ctx context.Context, principal string) error {
	if err := s.store.Save(ctx, stateKeyPrincipal, []byte(principal)); err != nil {
		return fmt.Errorf("persist principal identity: %w", err)
	}

	s.mu.Lock()
	s.principal = principal
	s.hasPrincipal = true
	s.mu.Unlock()
	return nil
}
