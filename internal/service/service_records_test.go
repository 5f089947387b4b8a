package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

const testZone = "notes"

// spyPublisher запоминает опубликованные уведомления.
type spyPublisher struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (p *spyPublisher) Publish(_, _ string, n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
}

func (p *spyPublisher) all() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Notification(nil), p.sent...)
}

func principalContext(principal string) context.Context {
	return utils.WithPrincipal(testContext(), principal)
}

func newTestRecordService(t *testing.T, pageSize int) (*recordService, *spyPublisher) {
	t.Helper()

	pub := &spyPublisher{}
	svc := NewRecordService(store.NewMemoryRecordRepository(), pub, &seqIDs{}, "1", pageSize, logger.Nop()).(*recordService)
	require.NoError(t, svc.EnsureZone(principalContext("alice"), testZone))
	return svc, pub
}

func drainFeed(t *testing.T, ctx context.Context, svc RecordService, cursor models.Cursor) (models.ChangePage, models.Cursor) {
	t.Helper()

	var all models.ChangePage
	for range 100 {
		page, err := svc.Changes(ctx, testZone, cursor, 0)
		require.NoError(t, err)
		require.False(t, page.CursorInvalidated)
		all.ChangedRecords = append(all.ChangedRecords, page.ChangedRecords...)
		all.DeletedIdentifiers = append(all.DeletedIdentifiers, page.DeletedIdentifiers...)
		cursor = page.NewCursor
		if !page.MorePages {
			return all, cursor
		}
	}
	t.Fatal("лента не закончилась")
	return all, cursor
}

// ── Зоны и принципал ─────────────────────────────────────────────────────────

func TestRecordService_RequiresPrincipal(t *testing.T) {
	svc, _ := newTestRecordService(t, 10)

	_, err := svc.CreateRecord(testContext(), testZone, models.Payload{"a": 1})
	assert.ErrorIs(t, err, ErrNoPrincipal)

	assert.ErrorIs(t, svc.EnsureZone(testContext(), testZone), ErrNoPrincipal)
}

func TestRecordService_Zones(t *testing.T) {
	svc, _ := newTestRecordService(t, 10)

	assert.ErrorIs(t, svc.EnsureZone(principalContext("alice"), "bad zone!"), ErrInvalidZone)

	// зона другого принципала не видна
	_, err := svc.CreateRecord(principalContext("bob"), testZone, models.Payload{"a": 1})
	assert.ErrorIs(t, err, ErrZoneNotFound)

	// повторный EnsureZone не ошибка
	assert.NoError(t, svc.EnsureZone(principalContext("alice"), testZone))
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

func TestRecordService_CRUD(t *testing.T) {
	svc, pub := newTestRecordService(t, 10)
	ctx := principalContext("alice")

	created, err := svc.CreateRecord(ctx, testZone, models.Payload{"title": "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Identifier)
	assert.Equal(t, time.UTC, created.ModificationDate.Location())

	got, err := svc.GetRecord(ctx, testZone, created.Identifier)
	require.NoError(t, err)
	assert.True(t, got.Payload.Equal(created.Payload))

	// клиентская дата игнорируется, бэкенд ставит свою
	modified, err := svc.ModifyRecord(ctx, testZone, models.RemoteRecord{
		Identifier:       created.Identifier,
		ModificationDate: time.Unix(0, 0),
		Payload:          models.Payload{"title": "bye"},
	})
	require.NoError(t, err)
	require.Len(t, modified, 1)
	assert.True(t, modified[0].ModificationDate.After(created.ModificationDate))

	require.NoError(t, svc.DeleteRecord(ctx, testZone, created.Identifier))
	_, err = svc.GetRecord(ctx, testZone, created.Identifier)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	err = svc.DeleteRecord(ctx, testZone, created.Identifier)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	reasons := make([]models.NotificationReason, 0, 3)
	for _, n := range pub.all() {
		assert.Equal(t, created.Identifier, n.RecordID)
		reasons = append(reasons, n.Reason)
	}
	assert.Equal(t, []models.NotificationReason{
		models.NotificationCreated, models.NotificationUpdated, models.NotificationDeleted,
	}, reasons)
}

func TestRecordService_InvalidInput(t *testing.T) {
	svc, pub := newTestRecordService(t, 10)
	ctx := principalContext("alice")

	_, err := svc.CreateRecord(ctx, testZone, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.ModifyRecord(ctx, testZone, models.RemoteRecord{Payload: models.Payload{}})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.ModifyRecord(ctx, testZone, models.RemoteRecord{Identifier: "nope", Payload: models.Payload{}})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	assert.Empty(t, pub.all())
}

func TestRecordService_TickIsStrictlyIncreasing(t *testing.T) {
	svc, _ := newTestRecordService(t, 10)
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600))
	svc.now = func() time.Time { return frozen }

	first := svc.tick()
	second := svc.tick()

	assert.Equal(t, time.UTC, first.Location())
	assert.Zero(t, first.Nanosecond()%int(time.Microsecond))
	assert.Equal(t, time.Microsecond, second.Sub(first))
}

// ── Changes ──────────────────────────────────────────────────────────────────

func TestRecordService_Changes_PagesAndDedups(t *testing.T) {
	svc, _ := newTestRecordService(t, 2)
	ctx := principalContext("alice")

	a, _ := svc.CreateRecord(ctx, testZone, models.Payload{"n": 1})
	b, _ := svc.CreateRecord(ctx, testZone, models.Payload{"n": 2})
	c, _ := svc.CreateRecord(ctx, testZone, models.Payload{"n": 3})
	_, err := svc.ModifyRecord(ctx, testZone, models.RemoteRecord{Identifier: a.Identifier, Payload: models.Payload{"n": 10}})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRecord(ctx, testZone, b.Identifier))

	first, err := svc.Changes(ctx, testZone, nil, 0)
	require.NoError(t, err)
	assert.True(t, first.MorePages)
	require.Len(t, first.ChangedRecords, 1, "a в текущем состоянии")
	assert.Equal(t, a.Identifier, first.ChangedRecords[0].Identifier)
	assert.Equal(t, []string{b.Identifier}, first.DeletedIdentifiers)

	all, cursor := drainFeed(t, ctx, svc, nil)
	ids := map[string]models.Payload{}
	for _, r := range all.ChangedRecords {
		ids[r.Identifier] = r.Payload
	}
	assert.Contains(t, ids, c.Identifier)
	n, _ := ids[a.Identifier].Int("n")
	assert.EqualValues(t, 10, n)
	assert.Contains(t, all.DeletedIdentifiers, b.Identifier)

	// после конца ленты новых изменений нет
	empty, err := svc.Changes(ctx, testZone, cursor, 0)
	require.NoError(t, err)
	assert.Empty(t, empty.ChangedRecords)
	assert.Empty(t, empty.DeletedIdentifiers)
	assert.False(t, empty.MorePages)
	assert.Equal(t, cursor, empty.NewCursor)
}

func TestRecordService_Changes_InvalidCursor(t *testing.T) {
	svc, _ := newTestRecordService(t, 10)
	ctx := principalContext("alice")
	_, err := svc.CreateRecord(ctx, testZone, models.Payload{"n": 1})
	require.NoError(t, err)

	foreign, _ := json.Marshal(feedCursor{Epoch: "0", Seq: 1})
	ahead, _ := json.Marshal(feedCursor{Epoch: "1", Seq: 99})

	for name, cursor := range map[string]models.Cursor{
		"чужая эпоха":  foreign,
		"впереди лога": ahead,
		"мусор":        models.Cursor("not json"),
	} {
		t.Run(name, func(t *testing.T) {
			page, err := svc.Changes(ctx, testZone, cursor, 0)
			require.NoError(t, err)
			assert.True(t, page.CursorInvalidated)
			assert.Empty(t, page.ChangedRecords)
		})
	}
}

func TestRecordService_Changes_EpochRotation(t *testing.T) {
	svc, _ := newTestRecordService(t, 10)
	ctx := principalContext("alice")
	_, err := svc.CreateRecord(ctx, testZone, models.Payload{"n": 1})
	require.NoError(t, err)

	_, cursor := drainFeed(t, ctx, svc, nil)

	svc.epoch = "2"
	page, err := svc.Changes(ctx, testZone, cursor, 0)
	require.NoError(t, err)
	assert.True(t, page.CursorInvalidated)

	// с пустого курсора лента снова доступна целиком
	all, _ := drainFeed(t, ctx, svc, nil)
	assert.Len(t, all.ChangedRecords, 1)
}
