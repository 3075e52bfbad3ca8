package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"factguard-backend/application/projections"
	"factguard-backend/infrastructure/config"
	"factguard-backend/interfaces/http/rest/handlers"
	"factguard-backend/pkg/observability"
)

// Router assembles the ops HTTP surface: health, stats, the operator
// rebuild trigger and the metrics endpoint.
type Router struct {
	projector  *projections.Projector
	collector  *observability.Collector
	dynamic    *config.ConfigWatcher
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates the ops router. collector and dynamic may be nil.
func NewRouter(projector *projections.Projector, collector *observability.Collector, dynamic *config.ConfigWatcher, logger *zap.Logger, enableCORS bool) *Router {
	return &Router{
		projector:  projector,
		collector:  collector,
		dynamic:    dynamic,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup builds the chi handler tree.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(rt.requestLogger)
	r.Use(middleware.Recoverer)

	if rt.enableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	projectionHandler := handlers.NewProjectionHandler(rt.projector, rt.dynamic, rt.logger)

	r.Get("/healthz", projectionHandler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/views/stats", projectionHandler.GetViewStats)
		r.Post("/admin/rebuild", projectionHandler.Rebuild)
	})

	if rt.collector != nil {
		r.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	return r
}

// requestLogger logs each request and feeds the HTTP request counter.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)

		if rt.collector != nil {
			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = r.URL.Path
			}
			rt.collector.HTTPRequests.WithLabelValues(
				r.Method,
				routePattern,
				strconv.Itoa(ww.Status()),
			).Inc()
		}
	})
}
