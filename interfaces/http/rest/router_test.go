package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"factguard-backend/application/projections"
	"factguard-backend/domain/events"
	"factguard-backend/infrastructure/config"
	"factguard-backend/infrastructure/eventstore"
	"factguard-backend/pkg/common"
)

func newTestServer(t *testing.T, dynamic *config.ConfigWatcher) (*httptest.Server, *projections.Projector, *eventstore.MemoryStore) {
	t.Helper()

	store := eventstore.NewMemoryStore()
	_, err := store.Append(events.TypeUserCreated, "user-u1", events.UserCreatedPayload{
		UserID: "u1", Username: "alice",
	})
	require.NoError(t, err)

	projector := projections.NewProjector(store, projections.NewViewStore(), nil, zap.NewNop())
	router := NewRouter(projector, nil, dynamic, zap.NewNop(), false)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server, projector, store
}

func decodeResponse(t *testing.T, resp *http.Response) common.APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var body common.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRouter_HealthCheck(t *testing.T) {
	// Arrange
	server, _, _ := newTestServer(t, nil)

	// Act
	resp, err := http.Get(server.URL + "/healthz")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.True(t, body.Success)

	health := body.Data.(map[string]interface{})
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, false, health["is_rebuilding"])
}

func TestRouter_GetViewStats(t *testing.T) {
	// Arrange
	server, projector, _ := newTestServer(t, nil)
	require.NoError(t, projector.RebuildAll(context.Background()))

	// Act
	resp, err := http.Get(server.URL + "/api/views/stats")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	require.True(t, body.Success)

	data := body.Data.(map[string]interface{})
	views := data["views"].(map[string]interface{})
	assert.Equal(t, float64(1), views[projections.ViewUsers])
	assert.Contains(t, data, "projector")
}

func TestRouter_RebuildAccepted(t *testing.T) {
	// Arrange
	server, projector, _ := newTestServer(t, nil)

	// Act
	resp, err := http.Post(server.URL+"/api/admin/rebuild", "application/json", nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	// The replay runs in the background; wait for it to land
	require.Eventually(t, func() bool {
		return projector.GetViewStats()[projections.ViewUsers] == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRouter_RebuildDisabledByDynamicConfig(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "dynamic.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"features": {"allowRemoteRebuild": false}}`), 0o644))
	watcher, err := config.NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(watcher.Stop)

	server, _, _ := newTestServer(t, watcher)

	// Act
	resp, err := http.Post(server.URL+"/api/admin/rebuild", "application/json", nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "REBUILD_DISABLED", body.Error.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	// Arrange
	server, _, _ := newTestServer(t, nil)

	// Act
	resp, err := http.Get(server.URL + "/api/nope")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
