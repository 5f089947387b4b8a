package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/models"
)

func (e *syncEngine[T]) HandleNotification(ctx context.Context, n models.Notification) error {
	return e.router.HandleNotification(ctx, n)
}

func (e *syncEngine[T]) RefreshRecord(ctx context.Context, remoteID string) error {
	return e.do(ctx, func(ctx context.Context, events *[]hookEvent[T]) error {
		record, err := e.remote.FetchRecord(ctx, remoteID)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errRemoteFetch, remoteID, mapAdapterError(err))
		}
		if record.Identifier == "" {
			record.Identifier = remoteID
		}

		var stats cycleStats
		return e.applyRemoteRecord(ctx, record, false, events, &stats)
	})
}

func (e *syncEngine[T]) RemoveRecord(ctx context.Context, remoteID string) error {
	return e.do(ctx, func(ctx context.Context, events *[]hookEvent[T]) error {
		var stats cycleStats
		return e.applyRemoteDeletion(ctx, remoteID, events, &stats)
	})
}

func (e *syncEngine[T]) CheckRemoteIdentityChanged(ctx context.Context) (models.IdentityState, error) {
	var state models.IdentityState

	err := e.do(ctx, func(ctx context.Context, _ *[]hookEvent[T]) error {
		identity, err := e.remote.FetchPrincipalIdentity(ctx)
		if err != nil {
			return fmt.Errorf("fetch principal identity: %w", mapAdapterError(err))
		}

		previous, known := e.state.Principal()
		switch {
		case !known:
			state = models.IdentityFirstSync
		case previous == identity:
			state = models.IdentityAlreadySynced
			return nil
		default:
			state = models.IdentityChanged
		}

		return e.state.SetPrincipal(ctx, identity)
	})

	return state, err
}
