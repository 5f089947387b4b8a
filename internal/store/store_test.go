package store

import (
	"context"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// seqIDs выдаёт предсказуемые идентификаторы: id-1, id-2, ...
type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) Generate() string {
	return "id-" + strconv.FormatInt(g.n.Add(1), 10)
}

func newTestSQLite(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(testContext(), config.ClientDB{DSN: filepath.Join(t.TempDir(), "sync.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newNote(title string, priority int64) *models.Note {
	n := models.NewNote()
	n.Title = title
	n.Priority = priority
	return n
}
