package api

import (
	"net/http"

	"github.com/akarpov/mentor-labs/internal/store"
	"github.com/go-chi/chi/v5"
)

// HealthHandler reports service and store health.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// RegisterHealth registers the health route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/api/health", h.HandleHealth)
}

// HandleHealth handles GET /api/health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	status := http.StatusOK
	if err := h.repo.Ping(r.Context()); err != nil {
		storeStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}
	JSON(w, status, map[string]string{
		"status": "ok",
		"store":  storeStatus,
	})
}
