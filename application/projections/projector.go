package projections

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"factguard-backend/application/ports"
	"factguard-backend/domain/events"
	"factguard-backend/pkg/observability"
)

// Projector is the single apply path for the read model. It routes each
// event through the handler for its kind, collects the resulting delta
// set and applies it to the view store as one atomic unit. Events must be
// fed in non-decreasing global position order; the projector serializes
// all mutation but does not reorder.
type Projector struct {
	store    *ViewStore
	source   ports.EventSource
	logger   *zap.Logger
	metrics  *observability.Collector
	validate *validator.Validate
	tracer   trace.Tracer

	// applyMu serializes single-event apply against full rebuild so the
	// two can never interleave.
	applyMu    sync.Mutex
	rebuilding atomic.Bool

	statsMu     sync.Mutex
	stats       ProjectorStats
	lastRebuild *RebuildResult
}

// ProjectorStats summarizes apply-path activity since process start.
type ProjectorStats struct {
	EventsProcessed  int64   `json:"events_processed"`
	EventsSkipped    int64   `json:"events_skipped"`
	UnknownEvents    int64   `json:"unknown_events"`
	LastEventTime    int64   `json:"last_event_time"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
}

// Health is the diagnostics snapshot reported to operators.
type Health struct {
	Status       string         `json:"status"`
	Stats        map[string]int `json:"stats,omitempty"`
	IsRebuilding bool           `json:"is_rebuilding"`
	LastRebuild  *RebuildResult `json:"last_rebuild,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// NewProjector creates a projector over the given event source and view
// store. The metrics collector may be nil when metrics are disabled.
func NewProjector(source ports.EventSource, store *ViewStore, metrics *observability.Collector, logger *zap.Logger) *Projector {
	return &Projector{
		store:    store,
		source:   source,
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(),
		tracer:   otel.Tracer("factguard-backend/projections"),
	}
}

// Apply processes a single event. Unknown event types are logged and
// skipped without error or mutation. Handler failures are returned as
// *ProjectionError and leave every view untouched.
func (p *Projector) Apply(ctx context.Context, ev events.Envelope) error {
	p.applyMu.Lock()
	defer p.applyMu.Unlock()
	return p.applyLocked(ctx, ev)
}

// applyLocked is the apply path body. Callers must hold applyMu.
func (p *Projector) applyLocked(ctx context.Context, ev events.Envelope) error {
	_, span := p.tracer.Start(ctx, "projections.apply",
		trace.WithAttributes(
			attribute.String("event.type", ev.Type),
			attribute.Int64("event.position", ev.GlobalPosition),
		))
	defer span.End()

	startTime := time.Now()

	kind := ev.Kind()
	handler := p.handlerFor(kind)
	if handler == nil {
		// Forward-compatibility: event types this engine does not know
		// yet are accepted and ignored.
		p.logger.Info("No handler registered for event type, skipping",
			zap.String("eventType", ev.Type),
			zap.Int64("position", ev.GlobalPosition))
		p.recordUnknown()
		if p.metrics != nil {
			p.metrics.UnknownEvents.Inc()
		}
		return nil
	}

	deltas, err := handler(ev, p.store)
	if err != nil {
		p.recordSkipped()
		if p.metrics != nil {
			p.metrics.EventsSkipped.Inc()
		}
		return &ProjectionError{
			EventID:   ev.EventID,
			EventType: ev.Type,
			Position:  ev.GlobalPosition,
			Err:       err,
		}
	}

	p.store.apply(deltas)
	p.recordProcessed(startTime)

	if p.metrics != nil {
		p.metrics.EventsApplied.WithLabelValues(ev.Type).Inc()
		p.metrics.ApplyDuration.Observe(time.Since(startTime).Seconds())
		for name, count := range p.store.GetViewStats() {
			p.metrics.ViewEntries.WithLabelValues(name).Set(float64(count))
		}
	}

	if ce := p.logger.Check(zap.DebugLevel, "Applied event"); ce != nil {
		ops := make([]string, len(deltas))
		for i, d := range deltas {
			ops[i] = d.Op()
		}
		ce.Write(
			zap.String("eventType", ev.Type),
			zap.Int64("position", ev.GlobalPosition),
			zap.Strings("deltas", ops),
		)
	}

	return nil
}

// IsRebuilding reports whether a full rebuild is currently in progress.
func (p *Projector) IsRebuilding() bool {
	return p.rebuilding.Load()
}

// GetView returns a snapshot of the named view.
func (p *Projector) GetView(name string) (map[string]interface{}, error) {
	return p.store.GetView(name)
}

// GetAllViews returns a snapshot of every view.
func (p *Projector) GetAllViews() map[string]map[string]interface{} {
	return p.store.GetAllViews()
}

// GetViewStats returns the entry count per view.
func (p *Projector) GetViewStats() map[string]int {
	return p.store.GetViewStats()
}

// Stats returns a copy of the apply-path statistics.
func (p *Projector) Stats() ProjectorStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

// LastRebuild returns the result of the most recent completed rebuild, or
// nil if none has run.
func (p *Projector) LastRebuild() *RebuildResult {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	if p.lastRebuild == nil {
		return nil
	}
	cp := *p.lastRebuild
	cp.SkippedPositions = append([]int64{}, p.lastRebuild.SkippedPositions...)
	return &cp
}

// HealthCheck reports overall projection health. Failures while computing
// stats are caught and reported as unhealthy, never propagated.
func (p *Projector) HealthCheck() Health {
	h := Health{
		Status:       "healthy",
		IsRebuilding: p.IsRebuilding(),
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				h.Status = "unhealthy"
				h.Error = fmt.Sprintf("failed to compute view stats: %v", r)
				p.logger.Error("Health check failed", zap.Any("panic", r))
			}
		}()
		h.Stats = p.store.GetViewStats()
		h.LastRebuild = p.LastRebuild()
	}()

	return h
}

// decode unmarshals and validates an event payload into out.
func (p *Projector) decode(ev events.Envelope, out interface{}) error {
	if err := json.Unmarshal(ev.Data, out); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	if err := p.validate.Struct(out); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (p *Projector) recordProcessed(startTime time.Time) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.EventsProcessed++
	p.stats.LastEventTime = time.Now().Unix()
	latency := float64(time.Since(startTime).Microseconds()) / 1000.0
	// Simple moving average for latency
	p.stats.AverageLatencyMs = (p.stats.AverageLatencyMs*float64(p.stats.EventsProcessed-1) + latency) / float64(p.stats.EventsProcessed)
}

func (p *Projector) recordSkipped() {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.EventsSkipped++
}

func (p *Projector) recordUnknown() {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.UnknownEvents++
}

func (p *Projector) setLastRebuild(result RebuildResult) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.lastRebuild = &result
}
