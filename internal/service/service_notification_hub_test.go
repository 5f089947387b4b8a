package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

func receive(t *testing.T, ch <-chan models.Notification) models.Notification {
	t.Helper()

	select {
	case n, ok := <-ch:
		require.True(t, ok, "канал закрыт")
		return n
	case <-time.After(time.Second):
		t.Fatal("уведомление не пришло")
		return models.Notification{}
	}
}

func TestNotificationHub_DeliversToZoneSubscribers(t *testing.T) {
	hub := NewNotificationHub(logger.Nop())

	a1, cancelA1 := hub.Subscribe("alice", "notes")
	defer cancelA1()
	a2, cancelA2 := hub.Subscribe("alice", "notes")
	defer cancelA2()
	other, cancelOther := hub.Subscribe("bob", "notes")
	defer cancelOther()

	n := models.Notification{Reason: models.NotificationCreated, RecordID: "R1"}
	hub.Publish("alice", "notes", n)

	assert.Equal(t, n, receive(t, a1))
	assert.Equal(t, n, receive(t, a2))
	assert.Empty(t, other, "уведомления другого принципала не доставляются")
}

func TestNotificationHub_CancelClosesChannel(t *testing.T) {
	hub := NewNotificationHub(logger.Nop())

	ch, cancel := hub.Subscribe("alice", "notes")
	cancel()
	cancel() // повторный вызов безопасен

	_, ok := <-ch
	assert.False(t, ok)

	// публикация без подписчиков не паникует
	assert.NotPanics(t, func() {
		hub.Publish("alice", "notes", models.Notification{Reason: models.NotificationDeleted, RecordID: "R1"})
	})
}

func TestNotificationHub_PublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewNotificationHub(logger.Nop())
	ch, cancel := hub.Subscribe("alice", "notes")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for range subscriberBuffer + 10 {
			hub.Publish("alice", "notes", models.Notification{Reason: models.NotificationUpdated, RecordID: "R1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish заблокировался")
	}
	assert.Len(t, ch, subscriberBuffer)
}
