package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

// ── sample: тестовый тип записи ──

const (
	fieldString = "string"
	fieldInt    = "int"
)

type sample struct {
	models.SyncMeta

	Str string
	Num int64
}

func newSample() *sample { return &sample{} }

func (s *sample) SyncFields() []string { return []string{fieldString, fieldInt} }

func (s *sample) Payload() models.Payload {
	return models.Payload{fieldString: s.Str, fieldInt: s.Num}
}

func (s *sample) ApplyPayload(p models.Payload) error {
	if _, ok := p[fieldString]; ok {
		v, ok := p.String(fieldString)
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrPayloadFieldType, fieldString)
		}
		s.Str = v
	}
	if _, ok := p[fieldInt]; ok {
		v, ok := p.Int(fieldInt)
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrPayloadFieldType, fieldInt)
		}
		s.Num = v
	}
	return nil
}

// ── fakeClock: каждое обращение сдвигает время на секунду ──

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// ── fakeRemote: in-memory бэкенд со счётчиками вызовов ──

type fakeChange struct {
	seq int64
	id  string
}

type fakeRemote struct {
	mu sync.Mutex

	clock    *fakeClock
	records  map[string]models.RemoteRecord
	deleted  map[string]bool
	log      []fakeChange
	seq      int64
	nextID   int
	pageSize int
	identity string

	// invalidate отвечает CursorInvalidated на столько вызовов FetchChanges
	invalidate int

	feedErr     error
	createErr   func(models.Payload) error
	fetchErr    error
	modifyErr   error
	deleteErr   error
	identityErr error

	creates, fetches, modifies, deletes, feeds int
	feedCursors                                []models.Cursor
}

func newFakeRemote(clock *fakeClock) *fakeRemote {
	return &fakeRemote{
		clock:    clock,
		records:  make(map[string]models.RemoteRecord),
		deleted:  make(map[string]bool),
		identity: "alice",
	}
}

var _ adapter.RemoteInterface = (*fakeRemote)(nil)

func (f *fakeRemote) Setup(context.Context) error { return nil }

func (f *fakeRemote) CreateRecord(_ context.Context, payload models.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		if err := f.createErr(payload); err != nil {
			return "", err
		}
	}
	f.creates++
	f.nextID++
	id := "R" + strconv.Itoa(f.nextID)
	f.putLocked(id, payload, f.clock.Now())
	return id, nil
}

func (f *fakeRemote) FetchRecord(_ context.Context, remoteID string) (models.RemoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++
	if f.fetchErr != nil {
		return models.RemoteRecord{}, f.fetchErr
	}
	rec, ok := f.records[remoteID]
	if !ok || f.deleted[remoteID] {
		return models.RemoteRecord{}, adapter.ErrNotFound
	}
	rec.Payload = rec.Payload.Clone()
	return rec, nil
}

func (f *fakeRemote) ModifyRecord(_ context.Context, record models.RemoteRecord) ([]models.RemoteRecord, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.modifyErr != nil {
		return nil, nil, f.modifyErr
	}
	if _, ok := f.records[record.Identifier]; !ok || f.deleted[record.Identifier] {
		return nil, nil, adapter.ErrNotFound
	}
	f.modifies++
	stored := f.putLocked(record.Identifier, record.Payload, f.clock.Now())
	return []models.RemoteRecord{stored}, []string{stored.Identifier}, nil
}

func (f *fakeRemote) DeleteRecord(_ context.Context, remoteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.records[remoteID]; !ok || f.deleted[remoteID] {
		return adapter.ErrNotFound
	}
	f.removeLocked(remoteID)
	return nil
}

func (f *fakeRemote) FetchChanges(_ context.Context, cursor models.Cursor) (models.ChangePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.feeds++
	f.feedCursors = append(f.feedCursors, cursor)
	if f.feedErr != nil {
		return models.ChangePage{}, f.feedErr
	}
	if f.invalidate > 0 {
		f.invalidate--
		return models.ChangePage{CursorInvalidated: true}, nil
	}

	var after int64
	if !cursor.IsZero() {
		n, err := strconv.ParseInt(string(cursor), 10, 64)
		if err != nil {
			return models.ChangePage{CursorInvalidated: true}, nil
		}
		after = n
	}

	var (
		page models.ChangePage
		seen = map[string]bool{}
		last = after
	)
	for _, c := range f.log {
		if c.seq <= after {
			continue
		}
		if f.pageSize > 0 && len(seen) == f.pageSize {
			page.MorePages = true
			break
		}
		last = c.seq
		if seen[c.id] {
			continue
		}
		seen[c.id] = true
		if f.deleted[c.id] {
			page.DeletedIdentifiers = append(page.DeletedIdentifiers, c.id)
			continue
		}
		rec := f.records[c.id]
		rec.Payload = rec.Payload.Clone()
		page.ChangedRecords = append(page.ChangedRecords, rec)
	}
	page.NewCursor = models.Cursor(strconv.FormatInt(last, 10))
	return page, nil
}

func (f *fakeRemote) FetchPrincipalIdentity(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.identityErr != nil {
		return "", f.identityErr
	}
	return f.identity, nil
}

// seed создаёт или меняет запись «с другого устройства», без учёта в
// счётчиках. Нулевой at берёт время из часов.
func (f *fakeRemote) seed(id string, payload models.Payload, at time.Time) models.RemoteRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	if at.IsZero() {
		at = f.clock.Now()
	}
	return f.putLocked(id, payload, at)
}

// remove удаляет запись «с другого устройства».
func (f *fakeRemote) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(id)
}

func (f *fakeRemote) record(id string) (models.RemoteRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	return rec, ok && !f.deleted[id]
}

func (f *fakeRemote) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id := range f.records {
		if !f.deleted[id] {
			n++
		}
	}
	return n
}

type remoteCounters struct {
	creates, fetches, modifies, deletes, feeds int
}

func (f *fakeRemote) counters() remoteCounters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return remoteCounters{f.creates, f.fetches, f.modifies, f.deletes, f.feeds}
}

func (f *fakeRemote) putLocked(id string, payload models.Payload, at time.Time) models.RemoteRecord {
	rec := models.RemoteRecord{Identifier: id, ModificationDate: at, Payload: payload.Clone()}
	f.records[id] = rec
	delete(f.deleted, id)
	f.seq++
	f.log = append(f.log, fakeChange{seq: f.seq, id: id})
	return rec
}

func (f *fakeRemote) removeLocked(id string) {
	f.deleted[id] = true
	f.seq++
	f.log = append(f.log, fakeChange{seq: f.seq, id: id})
}

// ── hookRecorder ──

type hookRecorder struct {
	mu                        sync.Mutex
	inserts, updates, deletes []string
}

func (h *hookRecorder) hooks() Hooks[*sample] {
	return Hooks[*sample]{
		OnInsert: func(r *sample) { h.add(&h.inserts, r) },
		OnUpdate: func(r *sample) { h.add(&h.updates, r) },
		OnDelete: func(r *sample) { h.add(&h.deletes, r) },
	}
}

func (h *hookRecorder) add(list *[]string, r *sample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	*list = append(*list, r.RemoteID)
}

func (h *hookRecorder) counts() (inserts, updates, deletes int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.inserts), len(h.updates), len(h.deletes)
}

// ── spyStateStore считает удаления ключей ──

type spyStateStore struct {
	*store.MemoryStateStore

	mu      sync.Mutex
	deletes map[string]int
}

func newSpyStateStore() *spyStateStore {
	return &spyStateStore{MemoryStateStore: store.NewMemoryStateStore(), deletes: map[string]int{}}
}

func (s *spyStateStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deletes[key]++
	s.mu.Unlock()
	return s.MemoryStateStore.Delete(ctx, key)
}

func (s *spyStateStore) deleted(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes[key]
}
