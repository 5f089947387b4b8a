// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// NotificationRouter turns push notifications into record applications.
//
// Created and updated records are fetched and written unconditionally: the
// fetch is a direct read of the backend, so no timestamp comparison is made.
// Fetch failures are dropped; the next full sync picks the change up.
type NotificationRouter struct {
	applier RecordApplier
	logger  *logger.Logger
}

func NewNotificationRouter(applier RecordApplier, logger *logger.Logger) *NotificationRouter {
	return &NotificationRouter{applier: applier, logger: logger}
}

func (r *NotificationRouter) HandleNotification(ctx context.Context, n models.Notification) error {
	log := logger.FromContext(ctx)

	if !n.Reason.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownNotificationReason, n.Reason)
	}
	if n.RecordID == "" {
		return ErrEmptyRecordID
	}

	switch n.Reason {
	case models.NotificationCreated, models.NotificationUpdated:
		err := r.applier.RefreshRecord(ctx, n.RecordID)
		if errors.Is(err, errRemoteFetch) {
			log.Info().Err(err).Str("func", "NotificationRouter.HandleNotification").
				Str("reason", string(n.Reason)).
				Str("remote_id", n.RecordID).
				Msg("notification dropped, fetch failed")
			return nil
		}
		return err

	default:
		return r.applier.RemoveRecord(ctx, n.RecordID)
	}
}

// Handle adapts HandleNotification to adapter.NotificationHandler. Errors
// are logged.
func (r *NotificationRouter) Handle(ctx context.Context, n models.Notification) {
	if err := r.HandleNotification(ctx, n); err != nil {
		r.logger.Err(err).Str("func", "NotificationRouter.Handle").
			Str("notification", n.String()).
			Msg("failed to apply notification")
	}
}
