// Package api provides HTTP handlers for the Mentor Labs API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akarpov/mentor-labs/internal/mentor"
	"github.com/akarpov/mentor-labs/internal/progress"
	"github.com/go-chi/chi/v5"
)

// Handler serves the catalog and profile endpoints.
type Handler struct {
	registry *mentor.Registry
	profiles *progress.Store
	logger   *slog.Logger
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(registry *mentor.Registry, profiles *progress.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry: registry,
		profiles: profiles,
		logger:   logger,
	}
}

// RegisterRoutes registers catalog and profile routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/mentors", func(r chi.Router) {
		r.Get("/", h.HandleListMentors)
		r.Get("/{mentorID}", h.HandleGetMentor)
	})
	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", h.HandleGetProfile)
		r.Put("/user", h.HandleSetUser)
		r.Patch("/progress", h.HandleUpdateProgress)
		r.Post("/sessions", h.HandleAddSession)
		r.Post("/journal", h.HandleAddJournalEntry)
		r.Patch("/journal/{entryID}", h.HandleUpdateJournalEntry)
		r.Post("/achievements", h.HandleAddAchievement)
		r.Post("/logout", h.HandleLogout)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
