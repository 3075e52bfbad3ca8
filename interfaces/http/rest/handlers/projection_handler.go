package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"factguard-backend/application/projections"
	"factguard-backend/infrastructure/config"
	"factguard-backend/pkg/common"
)

// ProjectionHandler exposes projection diagnostics and the operator
// rebuild trigger. View contents are deliberately not served here.
type ProjectionHandler struct {
	projector *projections.Projector
	dynamic   *config.ConfigWatcher
	logger    *zap.Logger
}

// NewProjectionHandler creates a new projection handler. The dynamic
// config watcher may be nil.
func NewProjectionHandler(projector *projections.Projector, dynamic *config.ConfigWatcher, logger *zap.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		projector: projector,
		dynamic:   dynamic,
		logger:    logger,
	}
}

// HealthCheck handles GET /healthz
func (h *ProjectionHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.projector.HealthCheck()

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	common.RespondJSON(w, status, health)
}

// GetViewStats handles GET /api/views/stats
func (h *ProjectionHandler) GetViewStats(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"views":     h.projector.GetViewStats(),
		"projector": h.projector.Stats(),
	})
}

// Rebuild handles POST /api/admin/rebuild. The replay runs in the
// background; the response only acknowledges that it started.
func (h *ProjectionHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if h.dynamic != nil && !h.dynamic.Current().Features.AllowRemoteRebuild {
		common.RespondError(w, http.StatusForbidden, "REBUILD_DISABLED", "Remote rebuild is disabled by configuration")
		return
	}

	if h.projector.IsRebuilding() {
		common.RespondError(w, http.StatusConflict, "REBUILD_IN_PROGRESS", "A rebuild is already running")
		return
	}

	go func() {
		if err := h.projector.RebuildAll(context.Background()); err != nil {
			h.logger.Error("Operator-triggered rebuild failed", zap.Error(err))
		}
	}()

	common.RespondJSON(w, http.StatusAccepted, map[string]string{
		"status": "rebuild started",
	})
}
