package models

import "fmt"

// NotificationReason is the kind of change announced by a push notification.
type NotificationReason string

const (
	NotificationCreated NotificationReason = "created"
	NotificationUpdated NotificationReason = "updated"
	NotificationDeleted NotificationReason = "deleted"
)

// Valid reports whether r is one of the known reasons.
func (r NotificationReason) Valid() bool {
	switch r {
	case NotificationCreated, NotificationUpdated, NotificationDeleted:
		return true
	}
	return false
}

// Notification is an inbound (reason, remote identifier) pair.
type Notification struct {
	Reason   NotificationReason `json:"reason"`
	RecordID string             `json:"record_id"`
}

func (n Notification) String() string {
	return fmt.Sprintf("%s:%s", n.Reason, n.RecordID)
}
