package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

const (
	otelScope = "github.com/MKhiriev/go-sync-engine/service"

	spanCycle    = "sync.cycle"
	spanDownload = "sync.download"
	spanUpload   = "sync.upload"
	spanCommit   = "sync.commit"

	metricInserted  = "syncengine.records.inserted"
	metricUpdated   = "syncengine.records.updated"
	metricDeleted   = "syncengine.records.deleted"
	metricConflicts = "syncengine.records.conflicts"
	metricUploaded  = "syncengine.records.uploaded"
	metricFailed    = "syncengine.records.failed"
	metricResyncs   = "syncengine.cursor.invalidations"
)

// cycleStats counts what one sync cycle did.
type cycleStats struct {
	Inserted  int
	Updated   int
	Deleted   int
	Conflicts int
	Uploaded  int
	Failed    int
}

// engineTelemetry holds the engine's OTel instruments. They are no-ops
// unless a global provider was installed.
type engineTelemetry struct {
	tracer trace.Tracer

	cntInserted  metric.Int64Counter
	cntUpdated   metric.Int64Counter
	cntDeleted   metric.Int64Counter
	cntConflicts metric.Int64Counter
	cntUploaded  metric.Int64Counter
	cntFailed    metric.Int64Counter
	cntResyncs   metric.Int64Counter
}

func newEngineTelemetry(log *logger.Logger) engineTelemetry {
	meter := otel.Meter(otelScope)

	mustCounter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			log.Err(err).Str("func", "newEngineTelemetry").Str("name", name).Msg("creating OTel counter")
			return noop.Int64Counter{}
		}
		return c
	}

	return engineTelemetry{
		tracer:       otel.Tracer(otelScope),
		cntInserted:  mustCounter(metricInserted, "Remote records materialized locally"),
		cntUpdated:   mustCounter(metricUpdated, "Local records overwritten by remote state"),
		cntDeleted:   mustCounter(metricDeleted, "Local records deleted by remote deletions"),
		cntConflicts: mustCounter(metricConflicts, "Remote changes older than the local record"),
		cntUploaded:  mustCounter(metricUploaded, "Dirty records pushed during upload"),
		cntFailed:    mustCounter(metricFailed, "Records that failed to sync"),
		cntResyncs:   mustCounter(metricResyncs, "Change cursors invalidated by the remote"),
	}
}

func (t engineTelemetry) record(ctx context.Context, span trace.Span, stats cycleStats) {
	add := func(c metric.Int64Counter, n int) {
		if n > 0 {
			c.Add(ctx, int64(n))
		}
	}
	add(t.cntInserted, stats.Inserted)
	add(t.cntUpdated, stats.Updated)
	add(t.cntDeleted, stats.Deleted)
	add(t.cntConflicts, stats.Conflicts)
	add(t.cntUploaded, stats.Uploaded)
	add(t.cntFailed, stats.Failed)

	span.SetAttributes(
		attribute.Int("sync.inserted", stats.Inserted),
		attribute.Int("sync.updated", stats.Updated),
		attribute.Int("sync.deleted", stats.Deleted),
		attribute.Int("sync.conflicts", stats.Conflicts),
		attribute.Int("sync.uploaded", stats.Uploaded),
		attribute.Int("sync.failed", stats.Failed),
	)
}
