package ports

import (
	"context"

	"factguard-backend/domain/events"
)

// AllStreams is the stream selector denoting every stream in the store.
const AllStreams = "*"

// FromBeginning reads history from the very first global position.
const FromBeginning int64 = 0

// EventSource is the read contract the projection engine consumes from the
// durable event store. The store itself is an external collaborator; this
// port only guarantees an ordered read.
type EventSource interface {
	// ReadEvents returns events for the selected stream (AllStreams for
	// every stream) whose global position is >= fromPosition, ordered by
	// GlobalPosition.
	ReadEvents(ctx context.Context, streamSelector string, fromPosition int64) ([]events.Envelope, error)
}
