package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"factguard-backend/application/ports"
	"factguard-backend/domain/events"
)

// MemoryStore is an in-memory, append-only event log implementing the
// EventSource read contract. It backs local development and tests; in
// production the projector reads from the platform event store through
// the same port.
type MemoryStore struct {
	mu     sync.RWMutex
	events []events.Envelope
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make([]events.Envelope, 0),
	}
}

// Append marshals data and appends a new event, assigning the next global
// position. Positions start at 1 and never repeat.
func (s *MemoryStore) Append(eventType, streamID string, data interface{}) (events.Envelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return events.Envelope{}, fmt.Errorf("failed to marshal event data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	env := events.Envelope{
		EventID:        uuid.NewString(),
		Type:           eventType,
		Data:           payload,
		StreamID:       streamID,
		GlobalPosition: int64(len(s.events)) + 1,
		Timestamp:      time.Now().UTC(),
	}
	s.events = append(s.events, env)
	return env, nil
}

// ReadEvents returns events ordered by global position, filtered by
// stream selector and starting position.
func (s *MemoryStore) ReadEvents(ctx context.Context, streamSelector string, fromPosition int64) ([]events.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]events.Envelope, 0, len(s.events))
	for _, ev := range s.events {
		if ev.GlobalPosition < fromPosition {
			continue
		}
		if streamSelector != ports.AllStreams && ev.StreamID != streamSelector {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// Len returns the number of events in the log.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
