package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/teamboard/teamboard/internal/api/response"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the healthcheck endpoint.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /healthcheck.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("healthcheck failed", "error", err)
		response.JSON(w, http.StatusServiceUnavailable, map[string]bool{"ok": false})
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
