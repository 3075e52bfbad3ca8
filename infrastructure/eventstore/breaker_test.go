package eventstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"factguard-backend/application/ports"
	"factguard-backend/domain/events"
	appErrors "factguard-backend/pkg/errors"
)

// flakySource fails every read until healed.
type flakySource struct {
	healthy bool
	calls   int
}

func (s *flakySource) ReadEvents(ctx context.Context, streamSelector string, fromPosition int64) ([]events.Envelope, error) {
	s.calls++
	if !s.healthy {
		return nil, errors.New("upstream unavailable")
	}
	return []events.Envelope{{EventID: "e1", Type: events.TypeUserCreated, GlobalPosition: 1}}, nil
}

func TestBreakerSource_PassesThroughWhenClosed(t *testing.T) {
	// Arrange
	inner := &flakySource{healthy: true}
	source := NewBreakerSource(inner, DefaultBreakerConfig("test"), zap.NewNop())

	// Act
	got, err := source.ReadEvents(context.Background(), ports.AllStreams, ports.FromBeginning)

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].EventID)
}

func TestBreakerSource_OpensAfterRepeatedFailures(t *testing.T) {
	// Arrange: one failure past the minimum request count trips the breaker
	config := BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
	inner := &flakySource{healthy: false}
	source := NewBreakerSource(inner, config, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := source.ReadEvents(context.Background(), ports.AllStreams, ports.FromBeginning)
		require.Error(t, err)
	}

	// Act: the breaker is now open, the inner source must not be called
	callsBefore := inner.calls
	_, err := source.ReadEvents(context.Background(), ports.AllStreams, ports.FromBeginning)

	// Assert
	require.Error(t, err)
	assert.True(t, appErrors.IsUnavailable(err))
	assert.Equal(t, callsBefore, inner.calls)
}
