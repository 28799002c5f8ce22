package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"slidepulse/pkg/contracts"
)

// HealthHandler handles health and version requests.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":         "healthy",
		"version":        contracts.Version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// VersionInfo handles GET /api/version.
func (h *HealthHandler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
