package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/models"
)

func TestMemoryRecordRepository_ZoneRequired(t *testing.T) {
	ctx := testContext()
	r := NewMemoryRecordRepository()

	ok, err := r.ZoneExists(ctx, "alice", "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	err = r.CreateRecord(ctx, "alice", "notes", models.RemoteRecord{Identifier: "R1"})
	require.ErrorIs(t, err, ErrZoneNotFound)

	require.NoError(t, r.EnsureZone(ctx, "alice", "notes"))
	require.NoError(t, r.EnsureZone(ctx, "alice", "notes"))

	ok, err = r.ZoneExists(ctx, "alice", "notes")
	require.NoError(t, err)
	assert.True(t, ok)

	// зоны разных принципалов не пересекаются
	ok, err = r.ZoneExists(ctx, "bob", "notes")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRecordRepository_CRUDAndChanges(t *testing.T) {
	ctx := testContext()
	r := NewMemoryRecordRepository()
	require.NoError(t, r.EnsureZone(ctx, "alice", "notes"))

	t0 := time.Unix(1000, 0).UTC()
	rec := models.RemoteRecord{Identifier: "R1", ModificationDate: t0, Payload: models.Payload{"title": "hi"}}
	require.NoError(t, r.CreateRecord(ctx, "alice", "notes", rec))
	require.Error(t, r.CreateRecord(ctx, "alice", "notes", rec))

	got, err := r.GetRecord(ctx, "alice", "notes", "R1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	rec.Payload = models.Payload{"title": "bye"}
	rec.ModificationDate = t0.Add(time.Second)
	require.NoError(t, r.UpdateRecord(ctx, "alice", "notes", rec))

	require.NoError(t, r.CreateRecord(ctx, "alice", "notes", models.RemoteRecord{Identifier: "R2", ModificationDate: t0, Payload: models.Payload{}}))
	require.NoError(t, r.DeleteRecord(ctx, "alice", "notes", "R2", t0.Add(2*time.Second)))
	require.ErrorIs(t, r.DeleteRecord(ctx, "alice", "notes", "R2", t0), ErrRecordNotFound)

	_, err = r.GetRecord(ctx, "alice", "notes", "R2")
	require.ErrorIs(t, err, ErrRecordNotFound)
	require.ErrorIs(t, r.UpdateRecord(ctx, "alice", "notes", models.RemoteRecord{Identifier: "R2"}), ErrRecordNotFound)

	changes, head, err := r.Changes(ctx, "alice", "notes", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), head)
	require.Len(t, changes, 4)

	// записи в журнале отражают текущее состояние
	assert.Equal(t, "R1", changes[0].RecordID)
	assert.False(t, changes[0].Deleted)
	assert.Equal(t, "bye", changes[0].Record.Payload["title"])
	assert.True(t, changes[3].Deleted)
	assert.Nil(t, changes[3].Record.Payload)

	page, head, err := r.Changes(ctx, "alice", "notes", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), head)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].Seq)
	assert.Equal(t, int64(3), page[1].Seq)

	page, _, err = r.Changes(ctx, "alice", "notes", 4, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryRecordRepository_ReturnsCopies(t *testing.T) {
	ctx := testContext()
	r := NewMemoryRecordRepository()
	require.NoError(t, r.EnsureZone(ctx, "alice", "notes"))

	payload := models.Payload{"title": "hi"}
	require.NoError(t, r.CreateRecord(ctx, "alice", "notes", models.RemoteRecord{Identifier: "R1", Payload: payload}))
	payload["title"] = "mutated"

	got, err := r.GetRecord(ctx, "alice", "notes", "R1")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Payload["title"])
}
