package eventstore

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"factguard-backend/application/ports"
	"factguard-backend/domain/events"
	appErrors "factguard-backend/pkg/errors"
)

// BreakerConfig holds configuration for the event source circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// ReadyToTrip parameters
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns a default configuration for the breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerSource decorates an EventSource with a circuit breaker so a
// flapping upstream store fails fast instead of stalling every rebuild
// attempt behind timeouts.
type BreakerSource struct {
	inner  ports.EventSource
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewBreakerSource wraps an event source with a circuit breaker.
func NewBreakerSource(inner ports.EventSource, config BreakerConfig, logger *zap.Logger) *BreakerSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Event source circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &BreakerSource{
		inner:  inner,
		cb:     cb,
		logger: logger,
	}
}

// ReadEvents executes the underlying read through the circuit breaker.
// An open circuit is reported as an unavailable error.
func (b *BreakerSource) ReadEvents(ctx context.Context, streamSelector string, fromPosition int64) ([]events.Envelope, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ReadEvents(ctx, streamSelector, fromPosition)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, appErrors.NewUnavailable("event store circuit open", err)
		}
		return nil, err
	}
	return result.([]events.Envelope), nil
}
