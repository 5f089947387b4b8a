package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// cycleResult is what one pass over the three phases produced.
type cycleResult struct {
	invalidated bool
	errs        []error
	stats       cycleStats
}

func (e *syncEngine[T]) Sync(ctx context.Context) error {
	if !e.syncing.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer e.syncing.Store(false)

	log := logger.FromContext(ctx)

	ctx, span := e.telemetry.tracer.Start(ctx, spanCycle)
	defer span.End()

	delay := backoff.WithContext(backoff.NewConstantBackOff(e.resyncDelay), ctx)

	for attempt := 1; ; attempt++ {
		var res cycleResult
		err := e.do(ctx, func(ctx context.Context, events *[]hookEvent[T]) error {
			res = e.runCycle(ctx, events)
			return nil
		})
		if err != nil {
			span.RecordError(err)
			return err
		}

		e.telemetry.record(ctx, span, res.stats)

		if !res.invalidated {
			err = newPartialSyncError(res.errs)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, ErrPartialSyncFailure.Error())
				log.Warn().Err(err).Str("func", "syncEngine.Sync").Msg("sync cycle finished with errors")
			} else {
				log.Debug().Str("func", "syncEngine.Sync").Int("attempts", attempt).Msg("sync cycle finished")
			}
			return err
		}

		e.telemetry.cntResyncs.Add(ctx, 1)
		span.SetAttributes(attribute.Int("sync.attempts", attempt+1))

		wait := delay.NextBackOff()
		if wait == backoff.Stop {
			return errors.Join(ctx.Err(), newPartialSyncError(res.errs))
		}
		log.Info().Str("func", "syncEngine.Sync").
			Dur("delay", wait).
			Msg("change cursor invalidated, resyncing from the beginning")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			// uploads of the finished pass are reported along with the cancellation
			timer.Stop()
			return errors.Join(ctx.Err(), newPartialSyncError(res.errs))
		case <-timer.C:
		}
	}
}

func (e *syncEngine[T]) SyncAsync(ctx context.Context, completion func(error)) {
	go func() {
		err := e.Sync(ctx)
		if completion != nil {
			completion(err)
		}
	}()
}

// runCycle executes download, upload and cursor commit. It runs on the
// queue.
func (e *syncEngine[T]) runCycle(ctx context.Context, events *[]hookEvent[T]) cycleResult {
	var res cycleResult

	cursor, invalidated, err := e.download(ctx, events, &res)
	if err != nil {
		res.errs = append(res.errs, err)
	}

	e.upload(ctx, &res)

	if invalidated {
		// the rerun starts from the beginning of history
		res.invalidated = true
		cursor = nil
	}
	if err = e.commitCursor(ctx, cursor); err != nil {
		res.errs = append(res.errs, err)
	}
	return res
}

// download applies the change feed page by page starting at the persisted
// cursor. It returns the cursor of the last fully applied page. A feed or
// local store error stops the download.
func (e *syncEngine[T]) download(ctx context.Context, events *[]hookEvent[T], res *cycleResult) (models.Cursor, bool, error) {
	ctx, span := e.telemetry.tracer.Start(ctx, spanDownload)
	defer span.End()

	log := logger.FromContext(ctx)
	cursor := e.state.Cursor()

	for pages := 0; ; pages++ {
		page, err := e.remote.FetchChanges(ctx, cursor)
		if err != nil {
			log.Warn().Err(err).Str("func", "syncEngine.download").
				Int("pages", pages).
				Msg("change feed failed")
			span.RecordError(err)
			return cursor, false, fmt.Errorf("fetch changes: %w", mapAdapterError(err))
		}
		if page.CursorInvalidated {
			span.SetAttributes(attribute.Bool("sync.cursor_invalidated", true))
			return nil, true, nil
		}

		for _, record := range page.ChangedRecords {
			if err = e.applyRemoteRecord(ctx, record, true, events, &res.stats); err != nil {
				res.stats.Failed++
				return cursor, false, fmt.Errorf("apply remote change: %w", err)
			}
		}
		for _, id := range page.DeletedIdentifiers {
			if err = e.applyRemoteDeletion(ctx, id, events, &res.stats); err != nil {
				res.stats.Failed++
				return cursor, false, fmt.Errorf("apply remote deletion: %w", err)
			}
		}

		if !page.NewCursor.IsZero() {
			cursor = page.NewCursor
		}
		if !page.MorePages {
			span.SetAttributes(attribute.Int("sync.pages", pages+1))
			return cursor, false, nil
		}
	}
}

// upload pushes every dirty record. Failures are collected per record.
func (e *syncEngine[T]) upload(ctx context.Context, res *cycleResult) {
	ctx, span := e.telemetry.tracer.Start(ctx, spanUpload)
	defer span.End()

	records, err := e.local.UnsyncedRecords(ctx)
	if err != nil {
		res.errs = append(res.errs, fmt.Errorf("list unsynced records: %w", err))
		return
	}
	span.SetAttributes(attribute.Int("sync.unsynced", len(records)))

	for _, record := range records {
		localID := record.Meta().LocalID

		if e.local.RemoteID(record) == "" {
			err = e.pushCreate(ctx, record)
		} else {
			err = e.pushUpdate(ctx, record)
		}
		if err != nil {
			res.stats.Failed++
			res.errs = append(res.errs, fmt.Errorf("upload record %s: %w", localID, err))
			continue
		}
		res.stats.Uploaded++
	}
}

func (e *syncEngine[T]) commitCursor(ctx context.Context, cursor models.Cursor) error {
	ctx, span := e.telemetry.tracer.Start(ctx, spanCommit)
	defer span.End()

	if bytes.Equal(cursor, e.state.Cursor()) {
		return nil
	}
	if err := e.state.SetCursor(ctx, cursor); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
