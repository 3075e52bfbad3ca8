package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global collector instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the projection engine
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// Apply-path metrics
	EventsApplied *prometheus.CounterVec
	EventsSkipped prometheus.Counter
	UnknownEvents prometheus.Counter
	ApplyDuration prometheus.Histogram

	// Rebuild metrics
	Rebuilds        prometheus.Counter
	RebuildDuration prometheus.Histogram

	// View metrics
	ViewEntries *prometheus.GaugeVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	eventsApplied := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_applied_total",
			Help:      "Total number of events applied to the read model",
		},
		[]string{"type"},
	)

	eventsSkipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_skipped_total",
			Help:      "Total number of events skipped due to handler errors",
		},
	)

	unknownEvents := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_unknown_total",
			Help:      "Total number of events with no registered handler",
		},
	)

	applyDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_apply_duration_seconds",
			Help:      "Duration of single event application",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	rebuilds := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Total number of completed full rebuilds",
		},
	)

	rebuildDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of full view rebuilds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	viewEntries := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "view_entries",
			Help:      "Current number of entries per materialized view",
		},
		[]string{"view"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	registry.MustRegister(
		eventsApplied,
		eventsSkipped,
		unknownEvents,
		applyDuration,
		rebuilds,
		rebuildDuration,
		viewEntries,
		httpRequests,
	)

	globalCollector = &Collector{
		registry:        registry,
		EventsApplied:   eventsApplied,
		EventsSkipped:   eventsSkipped,
		UnknownEvents:   unknownEvents,
		ApplyDuration:   applyDuration,
		Rebuilds:        rebuilds,
		RebuildDuration: rebuildDuration,
		ViewEntries:     viewEntries,
		HTTPRequests:    httpRequests,
	}
	return globalCollector
}

// Handler returns an HTTP handler exposing this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
