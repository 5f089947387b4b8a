package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// stubApplier запоминает вызовы и возвращает заданные ошибки.
type stubApplier struct {
	refreshed, removed []string
	refreshErr         error
	removeErr          error
}

func (s *stubApplier) RefreshRecord(_ context.Context, remoteID string) error {
	s.refreshed = append(s.refreshed, remoteID)
	return s.refreshErr
}

func (s *stubApplier) RemoveRecord(_ context.Context, remoteID string) error {
	s.removed = append(s.removed, remoteID)
	return s.removeErr
}

// ── HandleNotification ───────────────────────────────────────────────────────

func TestNotificationRouter_Routes(t *testing.T) {
	tests := []struct {
		name          string
		reason        models.NotificationReason
		wantRefreshed []string
		wantRemoved   []string
	}{
		{name: "created", reason: models.NotificationCreated, wantRefreshed: []string{"R1"}},
		{name: "updated", reason: models.NotificationUpdated, wantRefreshed: []string{"R1"}},
		{name: "deleted", reason: models.NotificationDeleted, wantRemoved: []string{"R1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := &stubApplier{}
			router := NewNotificationRouter(applier, logger.Nop())

			err := router.HandleNotification(testContext(), models.Notification{Reason: tt.reason, RecordID: "R1"})

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRefreshed, applier.refreshed)
			assert.Equal(t, tt.wantRemoved, applier.removed)
		})
	}
}

func TestNotificationRouter_DropsFetchFailures(t *testing.T) {
	applier := &stubApplier{refreshErr: fmt.Errorf("%w: R1: %w", errRemoteFetch, ErrRemoteUnavailable)}
	router := NewNotificationRouter(applier, logger.Nop())

	err := router.HandleNotification(testContext(), models.Notification{Reason: models.NotificationUpdated, RecordID: "R1"})

	assert.NoError(t, err)
}

func TestNotificationRouter_PropagatesApplyErrors(t *testing.T) {
	storeErr := errors.New("disk full")
	applier := &stubApplier{refreshErr: storeErr, removeErr: storeErr}
	router := NewNotificationRouter(applier, logger.Nop())

	err := router.HandleNotification(testContext(), models.Notification{Reason: models.NotificationCreated, RecordID: "R1"})
	assert.ErrorIs(t, err, storeErr)

	err = router.HandleNotification(testContext(), models.Notification{Reason: models.NotificationDeleted, RecordID: "R1"})
	assert.ErrorIs(t, err, storeErr)
}

func TestNotificationRouter_RejectsInvalid(t *testing.T) {
	applier := &stubApplier{}
	router := NewNotificationRouter(applier, logger.Nop())

	assert.ErrorIs(t, router.HandleNotification(testContext(), models.Notification{Reason: "renamed", RecordID: "R1"}), ErrUnknownNotificationReason)
	assert.ErrorIs(t, router.HandleNotification(testContext(), models.Notification{Reason: models.NotificationDeleted}), ErrEmptyRecordID)
	assert.Empty(t, applier.refreshed)
	assert.Empty(t, applier.removed)
}

func TestNotificationRouter_Handle_LogsErrors(t *testing.T) {
	applier := &stubApplier{removeErr: errors.New("boom")}
	router := NewNotificationRouter(applier, logger.Nop())

	assert.NotPanics(t, func() {
		router.Handle(testContext(), models.Notification{Reason: models.NotificationDeleted, RecordID: "R1"})
	})
	assert.Equal(t, []string{"R1"}, applier.removed)
}
