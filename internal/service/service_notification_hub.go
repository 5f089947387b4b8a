package service

import (
	"sync"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// subscriberBuffer is how many notifications a slow subscriber may lag
// behind before new ones are dropped for it.
const subscriberBuffer = 64

type subscription struct {
	ch chan models.Notification
}

type notificationHub struct {
	mu   sync.RWMutex
	subs map[zoneKey]map[*subscription]struct{}

	logger *logger.Logger
}

type zoneKey struct {
	principal string
	zone      string
}

// NewNotificationHub returns an in-process pub/sub for record
// notifications, keyed by principal and zone.
func NewNotificationHub(logger *logger.Logger) NotificationHub {
	return &notificationHub{
		subs:   make(map[zoneKey]map[*subscription]struct{}),
		logger: logger,
	}
}

func (h *notificationHub) Subscribe(principal, zone string) (<-chan models.Notification, func()) {
	key := zoneKey{principal, zone}
	sub := &subscription{ch: make(chan models.Notification, subscriberBuffer)}

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[*subscription]struct{})
	}
	h.subs[key][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[key], sub)
			if len(h.subs[key]) == 0 {
				delete(h.subs, key)
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}

// Publish never blocks; a subscriber with a full buffer misses n and
// catches up through the change feed.
func (h *notificationHub) Publish(principal, zone string, n models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[zoneKey{principal, zone}] {
		select {
		case sub.ch <- n:
		default:
			h.logger.Warn().Str("func", "notificationHub.Publish").
				Str("zone", zone).
				Str("notification", n.String()).
				Msg("subscriber buffer full, notification dropped")
		}
	}
}
