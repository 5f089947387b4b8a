package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

var zoneNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// feedCursor is the backend's cursor content. Clients never look inside.
type feedCursor struct {
	Epoch string `json:"e"`
	Seq   int64  `json:"s"`
}

type recordService struct {
	repo      store.RecordRepository
	publisher NotificationPublisher
	ids       utils.IDGenerator

	epoch    string
	pageSize int

	clockMu sync.Mutex
	lastNow time.Time
	now     func() time.Time

	logger *logger.Logger
}

// NewRecordService returns the backend record service. Cursors issued under
// a different epoch are answered with an invalidated page, so changing the
// epoch forces every client into a full resync.
func NewRecordService(repo store.RecordRepository, publisher NotificationPublisher, ids utils.IDGenerator, epoch string, pageSize int, logger *logger.Logger) RecordService {
	return &recordService{
		repo:      repo,
		publisher: publisher,
		ids:       ids,
		epoch:     epoch,
		pageSize:  pageSize,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *recordService) EnsureZone(ctx context.Context, zone string) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return err
	}
	if !zoneNamePattern.MatchString(zone) {
		return ErrInvalidZone
	}

	return s.repo.EnsureZone(ctx, principal, zone)
}

func (s *recordService) CreateRecord(ctx context.Context, zone string, payload models.Payload) (models.RemoteRecord, error) {
	principal, err := s.checkZone(ctx, zone)
	if err != nil {
		return models.RemoteRecord{}, err
	}
	if payload == nil {
		return models.RemoteRecord{}, ErrInvalidDataProvided
	}

	record := models.RemoteRecord{
		Identifier:       s.ids.Generate(),
		ModificationDate: s.tick(),
		Payload:          payload,
	}
	if err = s.repo.CreateRecord(ctx, principal, zone, record); err != nil {
		return models.RemoteRecord{}, fmt.Errorf("create record: %w", err)
	}

	s.publish(ctx, principal, zone, models.NotificationCreated, record.Identifier)
	return record, nil
}

func (s *recordService) GetRecord(ctx context.Context, zone, id string) (models.RemoteRecord, error) {
	principal, err := s.checkZone(ctx, zone)
	if err != nil {
		return models.RemoteRecord{}, err
	}

	return s.repo.GetRecord(ctx, principal, zone, id)
}

func (s *recordService) ModifyRecord(ctx context.Context, zone string, record models.RemoteRecord) ([]models.RemoteRecord, error) {
	principal, err := s.checkZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	if record.Identifier == "" || record.Payload == nil {
		return nil, ErrInvalidDataProvided
	}

	record.ModificationDate = s.tick()
	if err = s.repo.UpdateRecord(ctx, principal, zone, record); err != nil {
		return nil, fmt.Errorf("modify record: %w", err)
	}

	s.publish(ctx, principal, zone, models.NotificationUpdated, record.Identifier)
	return []models.RemoteRecord{record}, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, zone, id string) error {
	principal, err := s.checkZone(ctx, zone)
	if err != nil {
		return err
	}

	if err = s.repo.DeleteRecord(ctx, principal, zone, id, s.tick()); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.publish(ctx, principal, zone, models.NotificationDeleted, id)
	return nil
}

func (s *recordService) Changes(ctx context.Context, zone string, cursor models.Cursor, limit int) (models.ChangePage, error) {
	log := logger.FromContext(ctx)

	principal, err := s.checkZone(ctx, zone)
	if err != nil {
		return models.ChangePage{}, err
	}
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	var after feedCursor
	if !cursor.IsZero() {
		if err = json.Unmarshal(cursor, &after); err != nil || after.Epoch != s.epoch || after.Seq < 0 {
			log.Info().Str("func", "recordService.Changes").Str("zone", zone).Msg("rejecting foreign cursor")
			return models.ChangePage{CursorInvalidated: true}, nil
		}
	}

	changes, head, err := s.repo.Changes(ctx, principal, zone, after.Seq, limit)
	if err != nil {
		return models.ChangePage{}, fmt.Errorf("read change log: %w", err)
	}
	if after.Seq > head {
		log.Info().Str("func", "recordService.Changes").Str("zone", zone).Msg("cursor is ahead of the change log")
		return models.ChangePage{CursorInvalidated: true}, nil
	}

	page := buildChangePage(changes)

	last := after.Seq
	if n := len(changes); n > 0 {
		last = changes[n-1].Seq
	}
	page.MorePages = last < head
	page.NewCursor, err = json.Marshal(feedCursor{Epoch: s.epoch, Seq: last})
	if err != nil {
		return models.ChangePage{}, fmt.Errorf("encode cursor: %w", err)
	}

	return page, nil
}

// buildChangePage folds log entries into one entry per record. Entries carry
// the record's current state, so a record that is deleted by now is only
// reported as deleted.
func buildChangePage(changes []models.Change) models.ChangePage {
	var page models.ChangePage
	seen := make(map[string]struct{}, len(changes))

	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		if _, ok := seen[c.RecordID]; ok {
			continue
		}
		seen[c.RecordID] = struct{}{}

		if c.Deleted {
			page.DeletedIdentifiers = append(page.DeletedIdentifiers, c.RecordID)
		} else {
			page.ChangedRecords = append(page.ChangedRecords, c.Record)
		}
	}

	reverse(page.ChangedRecords)
	reverse(page.DeletedIdentifiers)
	return page
}

func reverse[S ~[]E, E any](s S) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func (s *recordService) checkZone(ctx context.Context, zone string) (string, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return "", err
	}

	exists, err := s.repo.ZoneExists(ctx, principal, zone)
	if err != nil {
		return "", fmt.Errorf("check zone: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrZoneNotFound, zone)
	}
	return principal, nil
}

// tick returns a UTC timestamp strictly after every timestamp it returned
// before, so a later write always wins a last-write-wins comparison.
func (s *recordService) tick() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(s.lastNow) {
		now = s.lastNow.Add(time.Microsecond)
	}
	s.lastNow = now
	return now
}

func (s *recordService) publish(ctx context.Context, principal, zone string, reason models.NotificationReason, id string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(principal, zone, models.Notification{Reason: reason, RecordID: id})
	logger.FromContext(ctx).Debug().Str("func", "recordService.publish").
		Str("reason", string(reason)).
		Str("remote_id", id).
		Msg("notification published")
}

func principalFrom(ctx context.Context) (string, error) {
	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok || principal == "" {
		return "", ErrNoPrincipal
	}
	return principal, nil
}
