package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"factguard-backend/application/projections"
	"factguard-backend/infrastructure/config"
	"factguard-backend/infrastructure/eventstore"
	"factguard-backend/interfaces/http/rest"
	"factguard-backend/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Tracing
	if cfg.EnableTracing {
		tp, err := observability.InitTracing(ctx, observability.TracingConfig{
			ServiceName: "factguard-projector",
			Environment: cfg.Environment,
			Endpoint:    cfg.TracingEndpoint,
		})
		if err != nil {
			logger.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Failed to shut down tracer provider", zap.Error(err))
			}
		}()
	}

	// Metrics
	var collector *observability.Collector
	if cfg.EnableMetrics {
		collector = observability.NewCollector("factguard")
	}

	// Dynamic configuration (optional)
	var dynamic *config.ConfigWatcher
	if path := os.Getenv("DYNAMIC_CONFIG_FILE"); path != "" {
		dynamic, err = config.NewConfigWatcher(path, logger)
		if err != nil {
			logger.Fatal("Failed to start config watcher", zap.Error(err))
		}
		defer dynamic.Stop()
		dynamic.OnChange(func(dc *config.DynamicConfig) {
			logger.Info("Dynamic configuration applied",
				zap.Bool("allowRemoteRebuild", dc.Features.AllowRemoteRebuild))
		})
	}

	// Event source. The in-memory store stands in for the platform event
	// store client; the breaker guards reads either way.
	// TODO: replace with the event store gRPC client once it is published.
	source := eventstore.NewBreakerSource(
		eventstore.NewMemoryStore(),
		eventstore.BreakerConfig{
			Name:             "event-source",
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
			MinRequests:      cfg.Breaker.MinRequests,
		},
		logger,
	)

	store := projections.NewViewStore()
	projector := projections.NewProjector(source, store, collector, logger)

	if cfg.RebuildOnStart {
		if err := projector.RebuildAll(ctx); err != nil {
			logger.Fatal("Initial rebuild failed", zap.Error(err))
		}
	}

	// HTTP server
	router := rest.NewRouter(projector, collector, dynamic, logger, cfg.EnableCORS)
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
