package events

import (
	"encoding/json"
	"time"
)

// Envelope is the wire form of a domain event as read from the event store.
// Events are immutable and totally ordered by GlobalPosition across all
// streams; consumers must apply them in non-decreasing position order.
type Envelope struct {
	EventID        string          `json:"event_id"`
	Type           string          `json:"type"`
	Data           json.RawMessage `json:"data"`
	StreamID       string          `json:"stream_id"`
	GlobalPosition int64           `json:"global_position"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Kind returns the closed event kind for this envelope's type string.
func (e Envelope) Kind() Kind {
	return ParseKind(e.Type)
}
