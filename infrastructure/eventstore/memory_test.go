package eventstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factguard-backend/application/ports"
	"factguard-backend/domain/events"
)

func TestMemoryStore_AppendAssignsContiguousPositions(t *testing.T) {
	// Arrange
	store := NewMemoryStore()

	// Act
	first, err := store.Append(events.TypeUserCreated, "user-u1", map[string]string{"userId": "u1"})
	require.NoError(t, err)
	second, err := store.Append(events.TypeUserCreated, "user-u2", map[string]string{"userId": "u2"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(1), first.GlobalPosition)
	assert.Equal(t, int64(2), second.GlobalPosition)
	assert.NotEqual(t, first.EventID, second.EventID)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStore_ReadEventsFiltersByStream(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	_, err := store.Append(events.TypePostCreated, "post-p1", map[string]string{"postId": "p1", "authorId": "u1"})
	require.NoError(t, err)
	_, err = store.Append(events.TypePostCreated, "post-p2", map[string]string{"postId": "p2", "authorId": "u1"})
	require.NoError(t, err)
	_, err = store.Append(events.TypeCommentCreated, "post-p1", map[string]string{"commentId": "c1", "postId": "p1", "authorId": "u1"})
	require.NoError(t, err)

	// Act
	got, err := store.ReadEvents(context.Background(), "post-p1", ports.FromBeginning)

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, events.TypePostCreated, got[0].Type)
	assert.Equal(t, events.TypeCommentCreated, got[1].Type)
}

func TestMemoryStore_ReadEventsFromPosition(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		_, err := store.Append(events.TypeAlertCreated, "alert-stream", map[string]string{"alertId": "a"})
		require.NoError(t, err)
	}

	// Act
	got, err := store.ReadEvents(context.Background(), ports.AllStreams, 4)

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].GlobalPosition)
	assert.Equal(t, int64(5), got[1].GlobalPosition)
}

func TestMemoryStore_ReadEventsHonorsContext(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := store.ReadEvents(ctx, ports.AllStreams, ports.FromBeginning)

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
}
