package projections

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"factguard-backend/application/ports"
)

// maxSkippedPositions caps how many skipped event positions a rebuild
// result retains; the count is always exact.
const maxSkippedPositions = 100

// RebuildResult records the outcome of one full rebuild. Skipped events
// are surfaced here rather than only logged, so operators can detect
// silent divergence between the log and the views.
type RebuildResult struct {
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration_ns"`
	EventsTotal      int           `json:"events_total"`
	EventsApplied    int           `json:"events_applied"`
	EventsSkipped    int           `json:"events_skipped"`
	SkippedPositions []int64       `json:"skipped_positions,omitempty"`
}

// RebuildAll replays the entire event history into freshly reset views.
// Concurrent rebuilds are rejected, not queued: a call while another
// rebuild is running logs a warning and returns immediately. A failure to
// read the history is returned as *RebuildError with the guard cleared so
// the caller can retry. Individual handler failures do not abort the
// replay; they are logged, counted and skipped.
func (p *Projector) RebuildAll(ctx context.Context) error {
	if !p.rebuilding.CompareAndSwap(false, true) {
		p.logger.Warn("Rebuild already in progress, ignoring request")
		return nil
	}
	defer p.rebuilding.Store(false)

	ctx, span := p.tracer.Start(ctx, "projections.rebuildAll")
	defer span.End()

	// Holding the apply lock for the whole replay keeps live single-event
	// applies from interleaving with the rebuild.
	p.applyMu.Lock()
	defer p.applyMu.Unlock()

	p.logger.Info("Starting full view rebuild")
	result := RebuildResult{StartedAt: time.Now()}

	p.store.Reset()

	history, err := p.source.ReadEvents(ctx, ports.AllStreams, ports.FromBeginning)
	if err != nil {
		p.logger.Error("Failed to read event history for rebuild", zap.Error(err))
		span.RecordError(err)
		return &RebuildError{Err: err}
	}

	result.EventsTotal = len(history)
	for _, ev := range history {
		if err := p.applyLocked(ctx, ev); err != nil {
			result.EventsSkipped++
			if len(result.SkippedPositions) < maxSkippedPositions {
				result.SkippedPositions = append(result.SkippedPositions, ev.GlobalPosition)
			}
			p.logger.Error("Skipping event during rebuild",
				zap.String("eventType", ev.Type),
				zap.Int64("position", ev.GlobalPosition),
				zap.Error(err))
			continue
		}
		result.EventsApplied++
	}

	result.Duration = time.Since(result.StartedAt)
	p.setLastRebuild(result)

	if p.metrics != nil {
		p.metrics.Rebuilds.Inc()
		p.metrics.RebuildDuration.Observe(result.Duration.Seconds())
	}
	span.SetAttributes(
		attribute.Int("rebuild.events_total", result.EventsTotal),
		attribute.Int("rebuild.events_skipped", result.EventsSkipped),
	)

	p.logger.Info("Completed full view rebuild",
		zap.Int("eventsTotal", result.EventsTotal),
		zap.Int("eventsApplied", result.EventsApplied),
		zap.Int("eventsSkipped", result.EventsSkipped),
		zap.Duration("duration", result.Duration))

	return nil
}
