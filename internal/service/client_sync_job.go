package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

type syncJob struct {
	syncer   Syncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that calls syncer.Sync every interval. A
// non-positive interval falls back to config.DefaultSyncInterval. The job
// is idle until Start is called.
func NewSyncJob(syncer Syncer, interval time.Duration, logger *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}
	return &syncJob{syncer: syncer, interval: interval, logger: logger}
}

// Start stops any previously running loop, then launches a goroutine that
// ticks until ctx is cancelled or Stop is called. Ticks that find a cycle
// still running are skipped.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *syncJob) tick(ctx context.Context) {
	if j.syncer.IsSyncing() {
		j.logger.Debug().Str("func", "syncJob.tick").Msg("sync still running, tick skipped")
		return
	}

	err := j.syncer.Sync(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress), errors.Is(err, context.Canceled):
	default:
		j.logger.Err(err).Str("func", "syncJob.tick").Msg("scheduled sync failed")
	}
}

// Stop cancels the loop and waits for it to exit. Safe to call when the job
// is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
